// Package eval вычисляет выражения значений флагов на заданной ширине хранилища.
//
// Вся арифметика выполняется по модулю 2^size (дополнительный код), так что
// результат совпадает с тем, что получит целое число фиксированной ширины.
package eval

import (
	"fmt"
	"go/ast"
	"go/constant"
	"go/parser"
	"go/token"
	"math/big"

	"github.com/vovanwin/bitmaskgen/internal/diag"
	"github.com/vovanwin/bitmaskgen/internal/model"
)

// maxShift ограничивает величину сдвига; все, что больше ширины, дает 0
const maxShift = 1 << 16

var conversions = map[string]bool{
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true, "uintptr": true,
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true, "byte": true, "rune": true,
}

// Evaluator вычисляет выражения в окружении уже определенных имен
type Evaluator struct {
	width    model.Width
	typeName string
	mask     *big.Int
	env      map[string]*big.Int
}

// New создает вычислитель для ширины w. typeName разрешается как преобразование T(x).
func New(w model.Width, typeName string) *Evaluator {
	mask := new(big.Int).Lsh(big.NewInt(1), uint(w.Size()))
	mask.Sub(mask, big.NewInt(1))
	return &Evaluator{
		width:    w,
		typeName: typeName,
		mask:     mask,
		env:      make(map[string]*big.Int),
	}
}

// Width возвращает ширину вычислителя
func (e *Evaluator) Width() model.Width {
	return e.width
}

// Define связывает имя со значением
func (e *Evaluator) Define(name string, v *big.Int) {
	e.env[name] = e.Norm(v)
}

// Lookup возвращает значение имени
func (e *Evaluator) Lookup(name string) (*big.Int, bool) {
	v, ok := e.env[name]
	if !ok {
		return nil, false
	}
	return new(big.Int).Set(v), true
}

// Norm приводит значение к остатку по модулю 2^size
func (e *Evaluator) Norm(v *big.Int) *big.Int {
	// And над отрицательным big.Int работает как над бесконечным дополнительным кодом
	return new(big.Int).And(v, e.mask)
}

// Signed интерпретирует остаток как знаковое число, если ширина знаковая
func (e *Evaluator) Signed(v *big.Int) *big.Int {
	n := e.Norm(v)
	if !e.width.Signed() || n.Bit(e.width.Size()-1) == 0 {
		return n
	}
	return n.Sub(n, new(big.Int).Add(e.mask, big.NewInt(1)))
}

// Not возвращает побитовое дополнение на всю ширину
func (e *Evaluator) Not(v *big.Int) *big.Int {
	return new(big.Int).Xor(e.Norm(v), e.mask)
}

// Mask возвращает значение со всеми установленными битами
func (e *Evaluator) Mask() *big.Int {
	return new(big.Int).Set(e.mask)
}

// Hex форматирует остаток как 0x с ведущими нулями на всю ширину
func (e *Evaluator) Hex(v *big.Int) string {
	return fmt.Sprintf("%#0*x", e.width.Size()/4+2, e.Norm(v))
}

// EvalString разбирает и вычисляет выражение
func (e *Evaluator) EvalString(src string) (*big.Int, error) {
	x, err := parser.ParseExpr(src)
	if err != nil {
		return nil, diag.Errorf(diag.InvalidExpression, model.Pos{}, src, "недопустимое выражение %q: %v", src, err)
	}
	return e.Eval(x)
}

// Eval вычисляет выражение
func (e *Evaluator) Eval(x ast.Expr) (*big.Int, error) {
	switch x := x.(type) {
	case *ast.BasicLit:
		return e.literal(x)

	case *ast.Ident:
		if v, ok := e.env[x.Name]; ok {
			return new(big.Int).Set(v), nil
		}
		return nil, diag.Errorf(diag.UnresolvedReference, model.Pos{}, x.Name, "неразрешенная ссылка %q", x.Name)

	case *ast.ParenExpr:
		return e.Eval(x.X)

	case *ast.UnaryExpr:
		v, err := e.Eval(x.X)
		if err != nil {
			return nil, err
		}
		switch x.Op {
		case token.XOR, token.NOT:
			return e.Not(v), nil
		case token.SUB:
			return e.Norm(new(big.Int).Neg(v)), nil
		case token.ADD:
			return v, nil
		}
		return nil, unsupported(x)

	case *ast.BinaryExpr:
		return e.binary(x)

	case *ast.CallExpr:
		// преобразование типа T(x)
		fun, ok := x.Fun.(*ast.Ident)
		if !ok || len(x.Args) != 1 || x.Ellipsis.IsValid() {
			return nil, unsupported(x)
		}
		if fun.Name != e.typeName && !conversions[fun.Name] {
			return nil, unsupported(x)
		}
		return e.Eval(x.Args[0])
	}
	return nil, unsupported(x)
}

func (e *Evaluator) literal(lit *ast.BasicLit) (*big.Int, error) {
	if lit.Kind != token.INT && lit.Kind != token.CHAR {
		return nil, diag.Errorf(diag.InvalidExpression, model.Pos{}, lit.Value, "ожидался целый литерал, получен %s", lit.Value)
	}
	v := constant.MakeFromLiteral(lit.Value, lit.Kind, 0)
	if v.Kind() != constant.Int {
		return nil, diag.Errorf(diag.InvalidExpression, model.Pos{}, lit.Value, "некорректный литерал %s", lit.Value)
	}
	switch n := constant.Val(v).(type) {
	case int64:
		return e.Norm(big.NewInt(n)), nil
	case *big.Int:
		return e.Norm(n), nil
	}
	return nil, diag.Errorf(diag.InvalidExpression, model.Pos{}, lit.Value, "некорректный литерал %s", lit.Value)
}

func (e *Evaluator) binary(x *ast.BinaryExpr) (*big.Int, error) {
	a, err := e.Eval(x.X)
	if err != nil {
		return nil, err
	}
	b, err := e.Eval(x.Y)
	if err != nil {
		return nil, err
	}

	r := new(big.Int)
	switch x.Op {
	case token.AND:
		r.And(a, b)
	case token.OR:
		r.Or(a, b)
	case token.XOR:
		r.Xor(a, b)
	case token.AND_NOT:
		r.AndNot(a, b)
	case token.ADD:
		r.Add(a, b)
	case token.SUB:
		r.Sub(a, b)
	case token.MUL:
		r.Mul(a, b)
	case token.SHL:
		n := shiftCount(b)
		if n >= uint(e.width.Size()) {
			return new(big.Int), nil
		}
		r.Lsh(a, n)
	case token.SHR:
		n := shiftCount(b)
		if n > uint(e.width.Size()) {
			n = uint(e.width.Size())
		}
		// арифметический сдвиг для знаковых ширин
		r.Rsh(e.Signed(a), n)
	default:
		return nil, unsupported(x)
	}
	return e.Norm(r), nil
}

func shiftCount(b *big.Int) uint {
	if !b.IsUint64() || b.Uint64() > maxShift {
		return maxShift
	}
	return uint(b.Uint64())
}

func unsupported(x ast.Expr) error {
	return diag.Errorf(diag.InvalidExpression, model.Pos{}, fmt.Sprintf("%T", x), "неподдерживаемое выражение %T", x)
}
