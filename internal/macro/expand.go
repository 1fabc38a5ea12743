package macro

import (
	"context"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"

	"abstractc/internal/ast"
	"abstractc/internal/diag"
	"abstractc/internal/trace"
)

// Expand walks file in source order and dispatches every marker to its rule.
// Repeated markers of the same name on one declaration are applied once;
// different markers on one declaration are dispatched independently.
// The input tree is not modified.
func Expand(file *ast.File, rep diag.Reporter) []Expansion {
	if file == nil {
		return nil
	}
	return expandDecls(file.Decls, nil, rep)
}

func expandDecls(decls []*ast.Decl, ctx ast.Context, rep diag.Reporter) []Expansion {
	var out []Expansion
	ast.Walk(decls, ctx, func(d *ast.Decl, ctx ast.Context) bool {
		out = append(out, ExpandDecl(d, ctx, rep)...)
		return true
	})
	return out
}

// ExpandDecl applies the markers attached directly to d.
func ExpandDecl(d *ast.Decl, ctx ast.Context, rep diag.Reporter) []Expansion {
	var (
		out  []Expansion
		seen [3]bool
	)
	for _, attr := range d.Attrs {
		if !IsMarker(attr) {
			continue
		}
		idx := markerIndex(attr.Name)
		if seen[idx] {
			continue
		}
		seen[idx] = true
		if exp, ok := Dispatch(d, ctx, attr, rep); ok {
			out = append(out, exp)
		}
	}
	return out
}

// Dispatch runs the rule selected by marker. ok is false when the rule
// produced nothing, either because it reported or because there was nothing to do.
func Dispatch(d *ast.Decl, ctx ast.Context, marker ast.Attr, rep diag.Reporter) (Expansion, bool) {
	switch marker.Name {
	case MarkerAbstractClass:
		members := ExpandClass(d)
		if len(members) == 0 {
			return Expansion{}, false
		}
		return Expansion{Kind: AddMembers, Marker: marker, Target: d, Members: members}, true
	case MarkerAbstractInit:
		body, ok := ExpandInit(d, ctx, marker, rep)
		if !ok {
			return Expansion{}, false
		}
		return Expansion{Kind: ReplaceBody, Marker: marker, Target: d, Body: body}, true
	case MarkerAbstract:
		body, ok := ExpandMethod(d, ctx, marker, rep)
		if !ok {
			return Expansion{}, false
		}
		return Expansion{Kind: ReplaceBody, Marker: marker, Target: d, Body: body}, true
	}
	return Expansion{}, false
}

func markerIndex(name string) int {
	switch name {
	case MarkerAbstractInit:
		return 1
	case MarkerAbstract:
		return 2
	}
	return 0
}

// ExpandParallel is Expand with top-level declarations processed concurrently.
// Each worker reports into its own bag; expansions and diagnostics are merged
// back in source order, so the output equals Expand's.
func ExpandParallel(ctx context.Context, file *ast.File, jobs int, rep diag.Reporter) ([]Expansion, error) {
	if file == nil {
		return nil, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, "expand", trace.CurrentSpan(ctx).SpanID)
	defer span.End("")
	span.WithExtra("decls", strconv.Itoa(len(file.Decls)))

	results := make([][]Expansion, len(file.Decls))
	bags := make([]*diag.Bag, len(file.Decls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, d := range file.Decls {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			declSpan := trace.Begin(tracer, trace.ScopeDecl, "expand:"+d.Name, span.ID())
			bags[i] = diag.NewBag(0)
			results[i] = expandDecls([]*ast.Decl{d}, nil, diag.BagReporter{Bag: bags[i]})
			declSpan.End("")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []Expansion
	for i := range file.Decls {
		out = append(out, results[i]...)
		if rep == nil {
			continue
		}
		for _, d := range bags[i].Items() {
			rep.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes, d.Fixes)
		}
	}
	return out, nil
}
