package model

import "math/big"

// ConstKind представляет происхождение константы
type ConstKind int

const (
	ConstFlag ConstKind = iota
	ConstInverted
)

func (k ConstKind) String() string {
	switch k {
	case ConstFlag:
		return "flag"
	case ConstInverted:
		return "inverted"
	default:
		return "unknown"
	}
}

// Constant описывает одну сгенерированную константу
type Constant struct {
	Name     string    // Объявленное имя (Flag1, InvertedFlag1)
	Ident    string    // Go идентификатор с префиксом
	Expr     string    // Выражение значения на Go
	Value    *big.Int  // Значение по модулю 2^size; nil, если выражение ссылается наружу
	Doc      string    // Документация
	Kind     ConstKind // Флаг или инвертированный флаг
	Explicit bool      // Значение задано явно
}

// DebugStrategy способ текстового представления значения
type DebugStrategy int

const (
	DebugRaw  DebugStrategy = iota // Perm(5)
	DebugList                      // Perm[Flag1, Flag3]
)

func (d DebugStrategy) String() string {
	switch d {
	case DebugRaw:
		return "raw"
	case DebugList:
		return "list"
	default:
		return "unknown"
	}
}

// GeneratedType результат компиляции одной битовой маски
type GeneratedType struct {
	Name      string
	Width     Width
	Config    Config
	Doc       string
	Constants []Constant    // Все константы в порядке генерации
	AllFlags  []string      // Идентификаторы объявленных флагов (без инвертированных)
	Table     []Constant    // Таблица интроспекции; пуста без flags_iter и vec_debug
	Debug     DebugStrategy // Выбранное текстовое представление
}

// Lookup ищет константу по объявленному имени
func (g *GeneratedType) Lookup(name string) (Constant, bool) {
	for _, c := range g.Constants {
		if c.Name == name {
			return c, true
		}
	}
	return Constant{}, false
}
