package macro

import "abstractc/internal/ast"

// ExpandClass runs the @abstractClass rule. It never reports: on a non-class
// the marker is a no-op, and a class with its own initializer delegates the
// guard to @abstractInit. Otherwise the result is exactly one synthesized
// zero-argument initializer whose body is the guard.
func ExpandClass(d *ast.Decl) []*ast.Decl {
	if !IsClass(d) || DeclaresOwnInitializer(d) {
		return nil
	}
	return []*ast.Decl{synthesizedInit(d.Name)}
}

func synthesizedInit(className string) *ast.Decl {
	return &ast.Decl{
		Kind:    ast.DeclInit,
		Keyword: "init",
		Name:    "init",
		Params:  "()",
		Body:    &ast.Body{Stmts: []ast.Stmt{MakeGuard(className)}},
	}
}
