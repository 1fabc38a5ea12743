package macro

import (
	"abstractc/internal/ast"
	"abstractc/internal/diag"
)

// ExpandMethod runs the @abstract rule. On success the method body becomes a
// single fatal stub; the original statements are discarded without inspection.
func ExpandMethod(d *ast.Decl, ctx ast.Context, marker ast.Attr, rep diag.Reporter) (body *ast.Body, ok bool) {
	if _, ok = methodRule.check(d, ctx, marker, rep); !ok {
		return nil, false
	}
	body = &ast.Body{Stmts: []ast.Stmt{MakeAbstractStub(d.Name)}}
	if d.Body != nil {
		body.Span = d.Body.Span
	}
	return body, true
}
