package parser

import (
	"go/token"
	"go/types"
	"strings"

	"github.com/vovanwin/bitmaskgen/internal/diag"
	"github.com/vovanwin/bitmaskgen/internal/model"
)

// ParseWidth разбирает токен ширины. Пустой токен означает usize.
func ParseWidth(tok string, pos model.Pos) (model.Width, error) {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return model.WidthUsize, nil
	}
	for _, w := range model.Widths {
		if w.String() == tok {
			return w, nil
		}
	}
	return 0, diag.Errorf(diag.InvalidWidth, pos, tok,
		"недопустимый тип %q: ожидалось (un)signed целое (u8, u16, u32, u64, u128, usize, i8, i16, i32, i64, i128, isize)", tok)
}

// ParseConfig разбирает список опций через запятую.
// Допускается одна завершающая запятая.
func ParseConfig(clause string, pos model.Pos) (model.Config, error) {
	var cfg model.Config
	if strings.TrimSpace(clause) == "" {
		return cfg, nil
	}

	items := strings.Split(clause, ",")
	for i, item := range items {
		name := strings.TrimSpace(item)
		if name == "" {
			if i == len(items)-1 {
				continue
			}
			return cfg, diag.Errorf(diag.UnknownConfigOption, pos, "", "пустая опция конфигурации в %q", clause)
		}
		switch name {
		case "inverted_flags":
			cfg.InvertedFlags = true
		case "vec_debug":
			cfg.VecDebug = true
		case "flags_iter":
			cfg.FlagsIter = true
		default:
			return cfg, diag.Errorf(diag.UnknownConfigOption, pos, name, "неизвестная опция конфигурации %q", name)
		}
	}
	return cfg, nil
}

// importNames имена пакетов, которые импортирует сгенерированный файл
var importNames = map[string]bool{"fmt": true, "iter": true, "strings": true, "big": true}

// shadows сообщает, что идентификатор перекроет встроенное имя Go или импорт
// сгенерированного файла: type X uint8 рядом с const uint8 не скомпилируется.
func shadows(ident string) bool {
	return types.Universe.Lookup(ident) != nil || importNames[ident]
}

// Resolve превращает прочитанное объявление в Spec: ширина, конфигурация
// и варианты в порядке объявления. Выражения не вычисляются.
func Resolve(raw model.RawSpec) (*model.Spec, error) {
	if !token.IsIdentifier(raw.Name) || raw.Name == "_" {
		return nil, diag.Errorf(diag.InvalidName, raw.Pos, raw.Name, "недопустимое имя типа %q", raw.Name)
	}
	if shadows(raw.Name) {
		return nil, diag.Errorf(diag.InvalidName, raw.Pos, raw.Name, "имя типа %q совпадает со встроенным именем Go", raw.Name)
	}
	if raw.Prefix != "" && !token.IsIdentifier(raw.Prefix) {
		return nil, diag.Errorf(diag.InvalidName, raw.Pos, raw.Prefix, "недопустимый префикс %q", raw.Prefix)
	}

	width, err := ParseWidth(raw.Width, raw.Pos)
	if err != nil {
		return nil, err
	}
	cfg, err := ParseConfig(raw.Config, raw.Pos)
	if err != nil {
		return nil, err
	}

	spec := &model.Spec{
		Name:     raw.Name,
		Width:    width,
		Config:   cfg,
		Prefix:   raw.Prefix,
		Doc:      strings.TrimSpace(raw.Doc),
		Pos:      raw.Pos,
		Variants: make([]model.Variant, 0, len(raw.Variants)),
	}

	for _, rv := range raw.Variants {
		name := strings.TrimSpace(rv.Name)
		pos := rv.Pos
		if pos == (model.Pos{}) {
			pos = raw.Pos
		}
		if !token.IsIdentifier(name) || name == "_" {
			return nil, diag.Errorf(diag.InvalidName, pos, name, "недопустимое имя флага %q", name)
		}
		if ident := spec.Ident(name); shadows(ident) {
			return nil, diag.Errorf(diag.InvalidName, pos, name, "флаг %q: идентификатор %s совпадает со встроенным именем Go", name, ident)
		}
		spec.Variants = append(spec.Variants, model.Variant{
			Name: name,
			Expr: strings.TrimSpace(rv.Value),
			Doc:  strings.TrimSpace(rv.Doc),
			Pos:  pos,
		})
	}

	return spec, nil
}
