package generator

import (
	"github.com/vovanwin/bitmaskgen/internal/assign"
	"github.com/vovanwin/bitmaskgen/internal/expand"
	"github.com/vovanwin/bitmaskgen/internal/model"
	"github.com/vovanwin/bitmaskgen/internal/parser"
)

// Build компилирует одно объявление: разбор, назначение значений, раскрытие конфигурации.
// Функция чистая: одинаковый вход дает одинаковый результат.
func Build(raw model.RawSpec) (*model.GeneratedType, error) {
	spec, err := parser.Resolve(raw)
	if err != nil {
		return nil, err
	}

	flags, err := assign.Assign(spec)
	if err != nil {
		return nil, err
	}

	exp, err := expand.Expand(spec, flags)
	if err != nil {
		return nil, err
	}

	return &model.GeneratedType{
		Name:      spec.Name,
		Width:     spec.Width,
		Config:    spec.Config,
		Doc:       spec.Doc,
		Constants: exp.Constants,
		AllFlags:  exp.AllFlags,
		Table:     exp.Table,
		Debug:     exp.Debug,
	}, nil
}
