// Package expand строит дополнительные константы и метаданные по переключателям конфигурации.
package expand

import (
	"github.com/vovanwin/bitmaskgen/internal/diag"
	"github.com/vovanwin/bitmaskgen/internal/eval"
	"github.com/vovanwin/bitmaskgen/internal/model"
)

// Expansion результат раскрытия конфигурации
type Expansion struct {
	Constants []model.Constant    // Флаги и, при inverted_flags, их инверсии сразу после каждого
	AllFlags  []string            // Идентификаторы объявленных флагов
	Table     []model.Constant    // Таблица (имя, значение) для flags_iter и vec_debug
	Debug     model.DebugStrategy // Текстовое представление
}

// Expand раскрывает inverted_flags, flags_iter и vec_debug, сохраняя порядок флагов.
func Expand(spec *model.Spec, flags []model.Constant) (*Expansion, error) {
	ev := eval.New(spec.Width, spec.Name)
	exp := &Expansion{Debug: model.DebugRaw}

	for _, f := range flags {
		exp.Constants = append(exp.Constants, f)
		exp.AllFlags = append(exp.AllFlags, f.Ident)

		if !spec.Config.InvertedFlags {
			continue
		}
		inv := model.Constant{
			Name:     "Inverted" + f.Name,
			Ident:    spec.Ident("Inverted" + f.Name),
			Expr:     "^" + f.Ident,
			Doc:      f.Doc,
			Kind:     model.ConstInverted,
			Explicit: f.Explicit,
		}
		if f.Value != nil {
			inv.Value = ev.Not(f.Value)
		}
		exp.Constants = append(exp.Constants, inv)
	}

	if err := checkUnique(spec, exp.Constants); err != nil {
		return nil, err
	}

	if spec.Config.FlagsIter || spec.Config.VecDebug {
		exp.Table = append([]model.Constant(nil), exp.Constants...)
	}
	if spec.Config.VecDebug {
		exp.Debug = model.DebugList
	}

	return exp, nil
}

// Reserved возвращает имена, которые генератор занимает для типа
func Reserved(typeName string) []string {
	return []string{
		typeName,
		typeName + "FromBits",
		typeName + "AllBits",
		typeName + "AllFlags",
		typeName + "None",
		typeName + "Flags",
	}
}

func checkUnique(spec *model.Spec, consts []model.Constant) error {
	seen := make(map[string]bool, len(consts)+6)
	for _, r := range Reserved(spec.Name) {
		seen[r] = true
	}
	for _, c := range consts {
		if seen[c.Ident] {
			return diag.Errorf(diag.DuplicateName, spec.Pos, c.Ident, "имя константы %q уже занято", c.Ident)
		}
		seen[c.Ident] = true
	}
	return nil
}
