// Package diag содержит диагностики компиляции спецификаций битовых масок.
package diag

import (
	"fmt"

	"github.com/vovanwin/bitmaskgen/internal/model"
)

// Kind класс ошибки компиляции
type Kind int

const (
	InvalidWidth Kind = iota + 1
	UnknownConfigOption
	UnresolvedReference
	InvalidName
	DuplicateName
	FlagOverflow
	InvalidExpression
)

func (k Kind) String() string {
	switch k {
	case InvalidWidth:
		return "InvalidWidth"
	case UnknownConfigOption:
		return "UnknownConfigOption"
	case UnresolvedReference:
		return "UnresolvedReference"
	case InvalidName:
		return "InvalidName"
	case DuplicateName:
		return "DuplicateName"
	case FlagOverflow:
		return "FlagOverflow"
	case InvalidExpression:
		return "InvalidExpression"
	default:
		return "Unknown"
	}
}

// Sentinel значения для errors.Is
var (
	ErrInvalidWidth        = &Error{Kind: InvalidWidth}
	ErrUnknownConfigOption = &Error{Kind: UnknownConfigOption}
	ErrUnresolvedReference = &Error{Kind: UnresolvedReference}
	ErrInvalidName         = &Error{Kind: InvalidName}
	ErrDuplicateName       = &Error{Kind: DuplicateName}
	ErrFlagOverflow        = &Error{Kind: FlagOverflow}
	ErrInvalidExpression   = &Error{Kind: InvalidExpression}
)

// Error диагностика, привязанная к месту в файле спецификации
type Error struct {
	Kind  Kind
	Pos   model.Pos
	Token string // Ошибочный токен или идентификатор
	Msg   string
}

// Errorf создает диагностику с форматированным сообщением
func Errorf(kind Kind, pos model.Pos, token string, format string, args ...any) *Error {
	return &Error{Kind: kind, Pos: pos, Token: token, Msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.String()
	}
	if p := e.Pos.String(); p != "" {
		return p + ": " + msg
	}
	return msg
}

// Is сравнивает только класс ошибки
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}
