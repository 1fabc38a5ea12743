package macro

import (
	"abstractc/internal/ast"
	"abstractc/internal/diag"
)

// memberRule описывает одну из двух «членских» проверок: @abstractInit и @abstract
// отличаются только видом объявления и кодами ошибок.
type memberRule struct {
	marker          string
	kindOK          func(*ast.Decl) bool
	wrongKind       diag.Code
	outsideClass    diag.Code
	outsideAbstract diag.Code
	wrongKindMsg    string
}

var (
	initRule = memberRule{
		marker:          MarkerAbstractInit,
		kindOK:          IsInitializer,
		wrongKind:       diag.AbstractInitOnNonInitializer,
		outsideClass:    diag.AbstractInitOutsideClass,
		outsideAbstract: diag.AbstractInitOutsideAbstractClass,
		wrongKindMsg:    "initializers",
	}
	methodRule = memberRule{
		marker:          MarkerAbstract,
		kindOK:          IsMethod,
		wrongKind:       diag.AbstractOnNonFunction,
		outsideClass:    diag.AbstractOutsideClass,
		outsideAbstract: diag.AbstractOutsideAbstractClass,
		wrongKindMsg:    "functions",
	}
)

// check validates the preconditions in order and reports the first violation
// at the marker. It returns the enclosing abstract class on success.
func (r memberRule) check(d *ast.Decl, ctx ast.Context, marker ast.Attr, rep diag.Reporter) (*ast.Decl, bool) {
	if !r.kindOK(d) {
		r.report(rep, r.wrongKind, marker, "can only be used on "+r.wrongKindMsg)
		return nil, false
	}
	class := NearestEnclosingClass(ctx)
	if class == nil {
		r.report(rep, r.outsideClass, marker, "can only be used inside a class")
		return nil, false
	}
	if !HasAbstractClassMarker(class) {
		r.report(rep, r.outsideAbstract, marker, "can only be used inside @"+MarkerAbstractClass)
		return nil, false
	}
	return class, true
}

func (r memberRule) report(rep diag.Reporter, code diag.Code, marker ast.Attr, tail string) {
	if rep == nil {
		return
	}
	spelled := "@" + r.marker
	diag.ReportError(rep, code, marker.Span, spelled+" "+tail).
		WithFix("remove "+spelled, diag.TextEdit{Span: marker.Span}).
		Emit()
}
