package model

import "strconv"

// Width представляет тип хранилища битовой маски
type Width int

const (
	WidthUsize Width = iota
	WidthU8
	WidthU16
	WidthU32
	WidthU64
	WidthU128
	WidthIsize
	WidthI8
	WidthI16
	WidthI32
	WidthI64
	WidthI128
)

// Widths перечисляет все допустимые ширины в порядке объявления
var Widths = []Width{
	WidthU8, WidthU16, WidthU32, WidthU64, WidthU128, WidthUsize,
	WidthI8, WidthI16, WidthI32, WidthI64, WidthI128, WidthIsize,
}

func (w Width) String() string {
	switch w {
	case WidthUsize:
		return "usize"
	case WidthU8:
		return "u8"
	case WidthU16:
		return "u16"
	case WidthU32:
		return "u32"
	case WidthU64:
		return "u64"
	case WidthU128:
		return "u128"
	case WidthIsize:
		return "isize"
	case WidthI8:
		return "i8"
	case WidthI16:
		return "i16"
	case WidthI32:
		return "i32"
	case WidthI64:
		return "i64"
	case WidthI128:
		return "i128"
	default:
		return "unknown"
	}
}

// GoType возвращает Go тип хранилища. Для 128-битных ширин Go типа нет.
func (w Width) GoType() string {
	switch w {
	case WidthUsize:
		return "uint"
	case WidthU8:
		return "uint8"
	case WidthU16:
		return "uint16"
	case WidthU32:
		return "uint32"
	case WidthU64:
		return "uint64"
	case WidthIsize:
		return "int"
	case WidthI8:
		return "int8"
	case WidthI16:
		return "int16"
	case WidthI32:
		return "int32"
	case WidthI64:
		return "int64"
	default:
		return ""
	}
}

// Size возвращает число бит. usize/isize считаются 64-битными,
// чтобы результат не зависел от платформы генератора.
func (w Width) Size() int {
	switch w {
	case WidthU8, WidthI8:
		return 8
	case WidthU16, WidthI16:
		return 16
	case WidthU32, WidthI32:
		return 32
	case WidthU128, WidthI128:
		return 128
	default:
		return 64
	}
}

// Signed сообщает, знаковое ли хранилище
func (w Width) Signed() bool {
	return w >= WidthIsize
}

// Wide сообщает, что хранилище шире любого целого типа Go
func (w Width) Wide() bool {
	return w == WidthU128 || w == WidthI128
}

// Config набор переключателей генерации
type Config struct {
	InvertedFlags bool // inverted_flags
	VecDebug      bool // vec_debug
	FlagsIter     bool // flags_iter
}

// Options возвращает включенные опции в каноническом порядке
func (c Config) Options() []string {
	var out []string
	if c.InvertedFlags {
		out = append(out, "inverted_flags")
	}
	if c.VecDebug {
		out = append(out, "vec_debug")
	}
	if c.FlagsIter {
		out = append(out, "flags_iter")
	}
	return out
}

// Pos позиция в исходном файле спецификации
type Pos struct {
	File string
	Line int
	Col  int
}

func (p Pos) String() string {
	s := p.File
	if p.Line > 0 {
		if s != "" {
			s += ":"
		}
		s += strconv.Itoa(p.Line)
		if p.Col > 0 {
			s += ":" + strconv.Itoa(p.Col)
		}
	}
	return s
}

// RawVariant вариант в том виде, в каком он прочитан из файла
type RawVariant struct {
	Name  string // Имя флага
	Value string // Явное выражение; пусто, если значения нет
	Doc   string // Документация
	Pos   Pos
}

// RawSpec одно объявление битовой маски до разбора
type RawSpec struct {
	Name     string // Имя типа
	Width    string // Токен ширины; пусто, если не указан
	Config   string // Строка конфигурации через запятую; пусто, если не указана
	Prefix   string // Префикс идентификаторов констант
	Doc      string
	Pos      Pos
	Variants []RawVariant
}

// Variant разобранный вариант
type Variant struct {
	Name string
	Expr string // Явное выражение без изменений; пусто для варианта по умолчанию
	Doc  string
	Pos  Pos
}

// Explicit сообщает, задано ли у варианта явное значение
func (v Variant) Explicit() bool {
	return v.Expr != ""
}

// Spec разобранное объявление битовой маски
type Spec struct {
	Name     string
	Width    Width
	Config   Config
	Prefix   string
	Doc      string
	Pos      Pos
	Variants []Variant
}

// Ident возвращает Go идентификатор константы с учетом префикса
func (s *Spec) Ident(name string) string {
	return s.Prefix + name
}
