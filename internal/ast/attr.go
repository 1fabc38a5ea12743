package ast

import "abstractc/internal/source"

// Attr описывает атрибут вида `@name`, `@Mod.name` или `@name(args...)`.
type Attr struct {
	Name      string // последний сегмент имени
	Qualifier string // "Mod" для @Mod.name, пусто иначе
	Args      string // сырой текст между скобками
	Span      source.Span
}

// Spelled returns the attribute as written, without arguments.
func (a Attr) Spelled() string {
	if a.Qualifier != "" {
		return a.Qualifier + "." + a.Name
	}
	return a.Name
}
