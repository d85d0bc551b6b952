package generator

import (
	"bytes"
	"embed"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"

	"github.com/pkg/errors"
	"golang.org/x/tools/imports"

	"github.com/vovanwin/bitmaskgen/internal/model"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Options настройки генерации кода
type Options struct {
	OutputDir   string // Директория для сгенерированных файлов
	PackageName string // Имя пакета
	Source      string // Имя файла спецификации для заголовка
	Describe    bool   // Писать YAML манифест рядом с кодом
}

// Generate пишет <snake>_bitmask.go для каждого типа и возвращает пути записанных файлов
func Generate(opts Options, types []*model.GeneratedType) ([]string, error) {
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "создание директории")
	}

	var written []string
	for _, gt := range types {
		base := toSnakeName(gt.Name) + "_bitmask"
		outFile := filepath.Join(opts.OutputDir, base+".go")

		src, err := Render(gt, opts.PackageName, opts.Source)
		if err != nil {
			if src != nil {
				_ = os.WriteFile(outFile, src, 0o644)
			}
			return written, errors.Wrapf(err, "тип %s", gt.Name)
		}
		if err := os.WriteFile(outFile, src, 0o644); err != nil {
			return written, errors.Wrapf(err, "запись %s", outFile)
		}
		written = append(written, outFile)

		if opts.Describe {
			manifest, err := Describe(gt)
			if err != nil {
				return written, errors.Wrapf(err, "манифест %s", gt.Name)
			}
			mf := filepath.Join(opts.OutputDir, base+".yaml")
			if err := os.WriteFile(mf, manifest, 0o644); err != nil {
				return written, errors.Wrapf(err, "запись %s", mf)
			}
			written = append(written, mf)
		}
	}
	return written, nil
}

// Render выполняет шаблон для типа и форматирует результат.
// При ошибке форматирования возвращает неотформатированный код вместе с ошибкой.
func Render(gt *model.GeneratedType, pkg, source string) ([]byte, error) {
	tmplFile := "templates/bitmask.go.tmpl"
	if gt.Width.Wide() {
		tmplFile = "templates/wide.go.tmpl"
	}

	data, err := buildTypeTemplateData(gt, pkg, source)
	if err != nil {
		return nil, err
	}

	tmplB, err := templatesFS.ReadFile(tmplFile)
	if err != nil {
		return nil, errors.Wrapf(err, "чтение шаблона %s", tmplFile)
	}

	tmpl, err := template.New(filepath.Base(tmplFile)).Funcs(templateFuncs()).Parse(string(tmplB))
	if err != nil {
		return nil, errors.Wrapf(err, "парсинг шаблона %s", tmplFile)
	}

	buf := &bytes.Buffer{}
	if err := tmpl.Execute(buf, data); err != nil {
		return nil, errors.Wrapf(err, "выполнение шаблона %s", tmplFile)
	}

	formatted, err := imports.Process(toSnakeName(gt.Name)+"_bitmask.go", buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return buf.Bytes(), errors.Wrap(err, "форматирование кода")
	}
	return formatted, nil
}

// templateFuncs возвращает функции для использования в шаблонах
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"comment": formatComment,
	}
}

// formatComment форматирует комментарий для Go кода
func formatComment(comment string) string {
	if comment == "" {
		return ""
	}
	lines := strings.Split(comment, "\n")
	var result []string
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			result = append(result, "//")
			continue
		}
		result = append(result, "// "+line)
	}
	return strings.Join(result, "\n")
}

// constTemplateData данные одной константы в шаблоне
type constTemplateData struct {
	Name  string
	Ident string
	Expr  string
	Doc   string
	Hi    string // Старшее слово для 128-битных типов
	Lo    string // Младшее слово для 128-битных типов
}

// typeTemplateData данные типа в шаблоне
type typeTemplateData struct {
	Package    string
	Source     string
	Name       string
	Doc        string
	Storage    string
	Signed     bool
	FlagsIter  bool
	VecDebug   bool
	HasTable   bool
	AllFlags   string
	AllFlagsHi string
	AllFlagsLo string
	Constants  []constTemplateData
	Table      []constTemplateData
}

func buildTypeTemplateData(gt *model.GeneratedType, pkg, source string) (*typeTemplateData, error) {
	data := &typeTemplateData{
		Package:   pkg,
		Source:    source,
		Name:      gt.Name,
		Doc:       gt.Doc,
		Storage:   gt.Width.GoType(),
		Signed:    gt.Width.Signed(),
		FlagsIter: gt.Config.FlagsIter,
		VecDebug:  gt.Debug == model.DebugList,
		HasTable:  len(gt.Table) > 0 || gt.Config.FlagsIter || gt.Config.VecDebug,
		AllFlags:  allFlagsExpr(gt.AllFlags),
	}

	all := new(big.Int)
	for _, c := range gt.Constants {
		cd, err := buildConstTemplateData(gt, c)
		if err != nil {
			return nil, err
		}
		data.Constants = append(data.Constants, cd)
		if c.Kind == model.ConstFlag && c.Value != nil {
			all.Or(all, c.Value)
		}
	}
	for _, c := range gt.Table {
		data.Table = append(data.Table, constTemplateData{Name: c.Name, Ident: c.Ident})
	}
	data.AllFlagsHi, data.AllFlagsLo = splitWords(all)

	return data, nil
}

func buildConstTemplateData(gt *model.GeneratedType, c model.Constant) (constTemplateData, error) {
	cd := constTemplateData{
		Name:  c.Name,
		Ident: c.Ident,
		Expr:  c.Expr,
		Doc:   c.Doc,
	}
	if gt.Width.Wide() {
		if c.Value == nil {
			return cd, errors.Errorf("константа %s: значение не вычислено", c.Ident)
		}
		cd.Hi, cd.Lo = splitWords(c.Value)
	}
	return cd, nil
}

// allFlagsExpr объединяет идентификаторы флагов через |
func allFlagsExpr(idents []string) string {
	if len(idents) == 0 {
		return "0"
	}
	return strings.Join(idents, " | ")
}

var word = new(big.Int).SetUint64(^uint64(0))

// splitWords делит 128-битный остаток на старшее и младшее слово
func splitWords(v *big.Int) (hi, lo string) {
	l := new(big.Int).And(v, word)
	h := new(big.Int).Rsh(v, 64)
	h.And(h, word)
	return fmt.Sprintf("%#x", h), fmt.Sprintf("%#x", l)
}

// toSnakeName конвертирует CamelCase в snake_case для имен файлов
func toSnakeName(s string) string {
	rs := []rune(s)
	out := make([]rune, 0, len(rs)+4)
	for i, r := range rs {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(rs[i-1]) || unicode.IsDigit(rs[i-1]) ||
				(i+1 < len(rs) && unicode.IsLower(rs[i+1]) && unicode.IsUpper(rs[i-1]))) {
				out = append(out, '_')
			}
			r = unicode.ToLower(r)
		}
		out = append(out, r)
	}
	return string(out)
}
