package ast

// Visitor is called for every declaration with its lexical context.
// Returning false skips the declaration's members.
type Visitor func(d *Decl, ctx Context) bool

// Walk visits decls depth-first in source order.
func Walk(decls []*Decl, ctx Context, visit Visitor) {
	for _, d := range decls {
		if d == nil {
			continue
		}
		if !visit(d, ctx) {
			continue
		}
		if len(d.Members) > 0 {
			Walk(d.Members, ctx.Push(d), visit)
		}
	}
}
