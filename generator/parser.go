package generator

import (
	"github.com/pkg/errors"

	"github.com/vovanwin/bitmaskgen/internal/parser"
)

// Extensions расширения файлов спецификаций, которые понимает генератор
var Extensions = parser.Extensions

// ParseFile читает файл спецификации (.toml, .yaml, .yml или .go) и возвращает
// объявления битовых масок в порядке появления
func ParseFile(path string) ([]RawSpec, error) {
	return parser.ParseFile(path)
}

// ParseDir читает все файлы спецификаций директории в отсортированном порядке
func ParseDir(dir string) ([]RawSpec, error) {
	files, err := discover(dir)
	if err != nil {
		return nil, err
	}

	var out []RawSpec
	for _, f := range files {
		raws, err := parser.ParseFile(f)
		if err != nil {
			return nil, errors.Wrapf(err, "разбор %s", f)
		}
		out = append(out, raws...)
	}
	return out, nil
}
