package macro

import (
	"abstractc/internal/ast"
	"abstractc/internal/diag"
)

// ExpandInit runs the @abstractInit rule and returns the replacement body:
// the enclosing class's guard followed by the original statements in order.
// ok is false when a precondition failed; exactly one diagnostic was reported then.
func ExpandInit(d *ast.Decl, ctx ast.Context, marker ast.Attr, rep diag.Reporter) (body *ast.Body, ok bool) {
	class, ok := initRule.check(d, ctx, marker, rep)
	if !ok {
		return nil, false
	}
	body = &ast.Body{}
	var orig []ast.Stmt
	if d.Body != nil {
		orig = d.Body.Stmts
		body.Span = d.Body.Span
	}
	body.Stmts = make([]ast.Stmt, 0, len(orig)+1)
	body.Stmts = append(body.Stmts, MakeGuard(class.Name))
	body.Stmts = append(body.Stmts, orig...)
	return body, true
}
