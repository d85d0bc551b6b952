package parser

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/vovanwin/bitmaskgen/internal/model"
)

// Extensions расширения файлов, которые понимает ParseFile
var Extensions = []string{".toml", ".yaml", ".yml", ".go"}

// ParseFile читает файл спецификации, выбирая формат по расширению
func ParseFile(path string) ([]model.RawSpec, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "чтение файла %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return ParseTOML(path, b)
	case ".yaml", ".yml":
		return ParseYAML(path, b)
	case ".go":
		return ParseGo(path, b)
	default:
		return nil, errors.Errorf("%s: неподдерживаемый формат (допустимы: %s)", path, strings.Join(Extensions, ", "))
	}
}

// Supported сообщает, поддерживается ли расширение файла
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}
