// Package generator генерирует Go типы битовых масок из декларативных спецификаций.
package generator

import (
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/vovanwin/bitmaskgen/internal/diag"
	"github.com/vovanwin/bitmaskgen/internal/expand"
	gen "github.com/vovanwin/bitmaskgen/internal/generator"
	"github.com/vovanwin/bitmaskgen/internal/model"
	"github.com/vovanwin/bitmaskgen/internal/parser"
)

type (
	RawSpec       = model.RawSpec
	RawVariant    = model.RawVariant
	GeneratedType = model.GeneratedType
	Constant      = model.Constant
)

// Options настройки генерации
type Options struct {
	SpecDir   string   // Директория со спецификациями (default: ./bitmasks)
	Files     []string // Явный список файлов; если задан, SpecDir не сканируется
	OutputDir string   // Директория для генерации (default: .)
	Package   string   // Имя пакета (default: $GOPACKAGE или имя OutputDir)
	Describe  bool     // Писать YAML манифест рядом с кодом
}

// DefaultOptions настройки по умолчанию
func DefaultOptions() Options {
	return Options{
		SpecDir:   "./bitmasks",
		OutputDir: ".",
		Package:   os.Getenv("GOPACKAGE"),
	}
}

// Compile компилирует одно объявление в описание типа без записи файлов
func Compile(raw RawSpec) (*GeneratedType, error) {
	return gen.Build(raw)
}

// Render компилирует объявление и возвращает отформатированный Go код
func Render(raw RawSpec, pkg string) ([]byte, error) {
	gt, err := gen.Build(raw)
	if err != nil {
		return nil, err
	}
	return gen.Render(gt, pkg, "")
}

// Init создаёт пример спецификации в SpecDir
func Init(opts Options) error {
	if opts.SpecDir == "" {
		opts.SpecDir = DefaultOptions().SpecDir
	}
	return gen.Init(opts.SpecDir)
}

// Generate находит спецификации, компилирует их и пишет Go код
func Generate(opts Options) error {
	if opts.SpecDir == "" {
		opts.SpecDir = DefaultOptions().SpecDir
	}
	if opts.OutputDir == "" {
		opts.OutputDir = DefaultOptions().OutputDir
	}
	if opts.Package == "" {
		pkg, err := packageFromDir(opts.OutputDir)
		if err != nil {
			return err
		}
		opts.Package = pkg
	}
	if !token.IsIdentifier(opts.Package) {
		return errors.Errorf("недопустимое имя пакета %q", opts.Package)
	}

	files := opts.Files
	if len(files) == 0 {
		found, err := discover(opts.SpecDir)
		if err != nil {
			return err
		}
		files = found
	}
	if len(files) == 0 {
		return errors.Errorf("не найдены файлы спецификаций в %s", opts.SpecDir)
	}

	units, err := compileFiles(files)
	if err != nil {
		return err
	}
	if len(units) == 0 {
		return errors.Errorf("не найдены объявления битовых масок в %s", strings.Join(files, ", "))
	}

	for _, u := range units {
		written, err := gen.Generate(gen.Options{
			OutputDir:   opts.OutputDir,
			PackageName: opts.Package,
			Source:      filepath.Base(u.file),
			Describe:    opts.Describe,
		}, u.types)
		for _, w := range written {
			log.WithField("file", w).Info("generated")
		}
		if err != nil {
			return errors.Wrap(err, filepath.Base(u.file))
		}
	}
	return nil
}

// unit скомпилированные типы одного файла спецификации
type unit struct {
	file  string
	types []*model.GeneratedType
}

// compileFiles компилирует все файлы. Ничего не пишется, пока не проверены
// имена всего пакета.
func compileFiles(files []string) ([]unit, error) {
	scope := newPackageScope()
	var units []unit

	for _, f := range files {
		raws, err := parser.ParseFile(f)
		if err != nil {
			return nil, err
		}

		u := unit{file: f}
		for _, raw := range raws {
			if prev, dup := scope.types[raw.Name]; dup {
				return nil, diag.Errorf(diag.DuplicateName, raw.Pos, raw.Name, "тип %s уже объявлен в %s", raw.Name, prev)
			}
			scope.types[raw.Name] = f

			gt, err := gen.Build(raw)
			if err != nil {
				return nil, err
			}
			if err := scope.declare(gt, raw.Pos); err != nil {
				return nil, err
			}
			log.WithFields(log.Fields{
				"file":      filepath.Base(f),
				"type":      gt.Name,
				"width":     gt.Width.String(),
				"constants": len(gt.Constants),
			}).Debug("compiled")
			u.types = append(u.types, gt)
		}
		if len(u.types) == 0 {
			log.WithField("file", filepath.Base(f)).Debug("no bitmask declarations")
			continue
		}
		log.WithField("file", filepath.Base(f)).Info("parsed")
		units = append(units, u)
	}
	return units, nil
}

// packageScope идентификаторы, которые сгенерированные типы занимают в одном пакете
type packageScope struct {
	types  map[string]string // тип -> файл спецификации
	idents map[string]string // идентификатор -> тип
}

func newPackageScope() *packageScope {
	return &packageScope{
		types:  make(map[string]string),
		idents: make(map[string]string),
	}
}

func (s *packageScope) declare(gt *model.GeneratedType, pos model.Pos) error {
	names := expand.Reserved(gt.Name)
	for _, c := range gt.Constants {
		names = append(names, c.Ident)
	}
	for _, name := range names {
		if owner, dup := s.idents[name]; dup {
			return diag.Errorf(diag.DuplicateName, pos, name,
				"тип %s: идентификатор %s уже занят типом %s", gt.Name, name, owner)
		}
	}
	for _, name := range names {
		s.idents[name] = gt.Name
	}
	return nil
}

// discover возвращает файлы спецификаций из директории в отсортированном порядке.
// Сгенерированные файлы (код и манифесты) и тесты пропускаются.
func discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "чтение директории %s", dir)
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !parser.Supported(name) {
			continue
		}
		if strings.HasSuffix(name, "_bitmask.go") || strings.HasSuffix(name, "_bitmask.yaml") ||
			strings.HasSuffix(name, "_test.go") {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Strings(files)
	return files, nil
}

// packageFromDir выводит имя пакета из имени директории
func packageFromDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, "путь %s", dir)
	}
	name := strings.ReplaceAll(filepath.Base(abs), "-", "_")
	if !token.IsIdentifier(name) {
		return "", errors.Errorf("не удалось вывести имя пакета из %s, укажите -package", dir)
	}
	return name, nil
}
