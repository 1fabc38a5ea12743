package ast

// Context is the chain of declarations enclosing a node, innermost first.
type Context []*Decl

// Push returns a new context with d as the innermost entry. The receiver is
// left untouched so sibling walks can share prefixes safely.
func (c Context) Push(d *Decl) Context {
	out := make(Context, 0, len(c)+1)
	out = append(out, d)
	return append(out, c...)
}

// Innermost returns the closest enclosing declaration or nil.
func (c Context) Innermost() *Decl {
	if len(c) == 0 {
		return nil
	}
	return c[0]
}
