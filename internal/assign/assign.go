// Package assign назначает значения флагам битовой маски.
package assign

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"math/big"
	"strings"

	"github.com/vovanwin/bitmaskgen/internal/diag"
	"github.com/vovanwin/bitmaskgen/internal/eval"
	"github.com/vovanwin/bitmaskgen/internal/model"
)

// invertedPrefix префикс имен инвертированных флагов
const invertedPrefix = "Inverted"

// Assign вычисляет значение каждого варианта в порядке объявления.
//
// Счетчик позиции увеличивается только после варианта без явного значения:
// вариант по умолчанию на позиции k получает 1 << k, явный вариант сохраняет
// свое выражение. Явное выражение может ссылаться только на варианты, объявленные раньше.
func Assign(spec *model.Spec) ([]model.Constant, error) {
	index := make(map[string]int, len(spec.Variants))
	for i, v := range spec.Variants {
		if _, dup := index[v.Name]; dup {
			return nil, diag.Errorf(diag.DuplicateName, v.Pos, v.Name, "флаг %q объявлен повторно", v.Name)
		}
		index[v.Name] = i
	}

	ev := eval.New(spec.Width, spec.Name)
	out := make([]model.Constant, 0, len(spec.Variants))
	k := 0

	for i, v := range spec.Variants {
		c := model.Constant{
			Name:     v.Name,
			Ident:    spec.Ident(v.Name),
			Doc:      v.Doc,
			Kind:     model.ConstFlag,
			Explicit: v.Explicit(),
		}

		if !v.Explicit() {
			if k >= spec.Width.Size() {
				return nil, diag.Errorf(diag.FlagOverflow, v.Pos, v.Name,
					"флаг %q не помещается в %s: позиция %d вне %d бит", v.Name, spec.Width, k, spec.Width.Size())
			}
			c.Expr = DefaultExpr(spec.Width, k)
			c.Value = new(big.Int).Lsh(big.NewInt(1), uint(k))
			k++
		} else {
			x, err := parser.ParseExpr(v.Expr)
			if err != nil {
				return nil, diag.Errorf(diag.InvalidExpression, v.Pos, v.Expr, "флаг %q: недопустимое выражение %q", v.Name, v.Expr)
			}

			// вычисляем до переименования: окружение хранит объявленные имена
			val, evalErr := ev.Eval(x)
			if evalErr != nil && spec.Width.Wide() {
				return nil, located(evalErr, v)
			}

			changed, err := rewrite(spec, x, i, index)
			if err != nil {
				return nil, located(err, v)
			}
			c.Expr = v.Expr
			if changed {
				c.Expr = types.ExprString(x)
			}
			if evalErr == nil {
				c.Value = val
			}
		}

		if c.Value != nil {
			ev.Define(c.Name, c.Value)
			if spec.Config.InvertedFlags {
				ev.Define(invertedPrefix+c.Name, ev.Not(c.Value))
			}
		}
		out = append(out, c)
	}

	return out, nil
}

// DefaultExpr возвращает выражение для позиции k. Знаковый бит знаковой
// ширины записывается как -1 << k, иначе константа Go переполнится.
func DefaultExpr(w model.Width, k int) string {
	if w.Signed() && k == w.Size()-1 {
		return fmt.Sprintf("-1 << %d", k)
	}
	return fmt.Sprintf("1 << %d", k)
}

// rewrite заменяет ссылки на предыдущие варианты идентификаторами с префиксом
// и логическое ! на побитовое ^. Сообщает, изменилось ли выражение.
func rewrite(spec *model.Spec, x ast.Expr, self int, index map[string]int) (bool, error) {
	changed := false
	var err error

	var visit func(n ast.Node) bool
	visit = func(n ast.Node) bool {
		if err != nil {
			return false
		}
		switch n := n.(type) {
		case *ast.SelectorExpr:
			// pkg.Name ссылается за пределы спецификации
			ast.Inspect(n.X, visit)
			return false
		case *ast.UnaryExpr:
			if n.Op == token.NOT {
				n.Op = token.XOR
				changed = true
			}
		case *ast.Ident:
			name := n.Name
			idx, ok := index[name]
			if !ok && spec.Config.InvertedFlags && strings.HasPrefix(name, invertedPrefix) {
				idx, ok = index[strings.TrimPrefix(name, invertedPrefix)]
			}
			if !ok {
				return true
			}
			if idx >= self {
				err = diag.Errorf(diag.UnresolvedReference, model.Pos{}, name,
					"ссылка на %q до его объявления", name)
				return false
			}
			if ident := spec.Ident(name); ident != name {
				n.Name = ident
				changed = true
			}
		}
		return true
	}
	ast.Inspect(x, visit)

	return changed, err
}

// located дописывает позицию и имя флага в диагностику
func located(err error, v model.Variant) error {
	var d *diag.Error
	if !errors.As(err, &d) {
		return err
	}
	out := *d
	out.Pos = v.Pos
	out.Msg = fmt.Sprintf("флаг %q: %s", v.Name, d.Msg)
	return &out
}
