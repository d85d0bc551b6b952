// Package perm показывает сгенерированные битовые маски на примере прав доступа.
package perm

//go:generate go run github.com/vovanwin/bitmaskgen/cmd/bitmaskgen -specs . -output . -package perm
