package rewrite

import (
	"abstractc/internal/ast"
	"abstractc/internal/macro"
)

// ApplyTree returns a deep copy of file with exps installed and consumed
// markers removed. file itself is left untouched.
func ApplyTree(file *ast.File, exps []macro.Expansion) *ast.File {
	out := file.Clone()
	twins := make(map[*ast.Decl]*ast.Decl)
	pairDecls(file.Decls, out.Decls, twins)

	for _, e := range exps {
		dst := twins[e.Target]
		if dst == nil {
			continue
		}
		switch e.Kind {
		case macro.AddMembers:
			for _, m := range e.Members {
				dst.Members = append(dst.Members, m.Clone())
			}
		case macro.ReplaceBody:
			dst.Body = e.Body.Clone()
		}
	}
	ast.Walk(out.Decls, nil, func(d *ast.Decl, _ ast.Context) bool {
		d.Attrs = stripMarkers(d.Attrs)
		return true
	})
	return out
}

// pairDecls сопоставляет узлы оригинала и копии: Clone сохраняет форму дерева.
func pairDecls(orig, cp []*ast.Decl, twins map[*ast.Decl]*ast.Decl) {
	for i, d := range orig {
		twins[d] = cp[i]
		pairDecls(d.Members, cp[i].Members, twins)
	}
}

func stripMarkers(attrs []ast.Attr) []ast.Attr {
	var out []ast.Attr
	for _, a := range attrs {
		if !macro.IsMarker(a) {
			out = append(out, a)
		}
	}
	return out
}
