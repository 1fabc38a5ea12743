package rewrite

import (
	"abstractc/internal/ast"
	"abstractc/internal/diag"
	"abstractc/internal/macro"
	"abstractc/internal/source"
)

// Edits translates expansions of tree (parsed from file) into source edits.
// Every literal marker in tree is removed as well.
func Edits(file *source.File, tree *ast.File, exps []macro.Expansion) []diag.TextEdit {
	var edits []diag.TextEdit
	for _, e := range exps {
		switch e.Kind {
		case macro.AddMembers:
			edits = append(edits, memberInsertion(file, e.Target, e.Members))
		case macro.ReplaceBody:
			edits = append(edits, bodyEdit(file, e.Target, e.Body))
		}
	}
	ast.Walk(tree.Decls, nil, func(d *ast.Decl, _ ast.Context) bool {
		for _, a := range d.Attrs {
			if macro.IsMarker(a) {
				edits = append(edits, markerRemoval(file, a))
			}
		}
		return true
	})
	return edits
}

// Rewrite applies expansions to the source of file.
func Rewrite(file *source.File, tree *ast.File, exps []macro.Expansion) ([]byte, error) {
	return Apply(file.Content, Edits(file, tree, exps))
}

// memberInsertion вставляет синтезированные члены перед закрывающей '}' класса.
func memberInsertion(file *source.File, class *ast.Decl, members []*ast.Decl) diag.TextEdit {
	closeOff := class.MembersSpan.End - 1
	classIndent := file.Indent(class.Span.Start)
	memberIndent := classIndent + IndentUnit
	if len(class.Members) > 0 {
		if first := class.Members[0]; onOwnLine(file, first.Span.Start) {
			memberIndent = file.Indent(first.Span.Start)
		}
	}

	var text string
	for _, m := range members {
		text += memberIndent + RenderInit(m, memberIndent) + "\n"
	}
	pos := closeOff
	if onOwnLine(file, closeOff) {
		pos = file.LineStart(closeOff)
	} else {
		// "class A {}" или "... }" в конце строки с кодом
		text = "\n" + text + classIndent
	}
	return diag.TextEdit{Span: source.Span{File: file.ID, Start: pos, End: pos}, NewText: text}
}

// bodyEdit заменяет тело. Если новое тело лишь дописывает операторы перед
// исходными, а тело многострочное, вставляем только префикс сразу после '{'.
func bodyEdit(file *source.File, d *ast.Decl, body *ast.Body) diag.TextEdit {
	indent := file.Indent(d.Span.Start)
	if d.Body == nil {
		at := source.At(file.ID, d.HeaderEnd)
		return diag.TextEdit{Span: at, NewText: " " + RenderBody(body, indent)}
	}
	orig := d.Body
	open, closeOff := orig.Span.Start, orig.Span.End-1
	if prefix, ok := prependedStmts(orig.Stmts, body.Stmts); ok && lineOf(file, open) != lineOf(file, closeOff) {
		inner := indent + IndentUnit
		sameLine := false
		if len(orig.Stmts) > 0 {
			if first := orig.Stmts[0].Span.Start; onOwnLine(file, first) {
				inner = file.Indent(first)
			} else {
				sameLine = true
			}
		}
		var text string
		for _, s := range prefix {
			text += "\n" + inner + RenderStmt(s, inner)
		}
		if sameLine {
			// "{ stmt": первый оператор переносим на свою строку
			sp := source.Span{File: file.ID, Start: open + 1, End: orig.Stmts[0].Span.Start}
			return diag.TextEdit{Span: sp, NewText: text + "\n" + inner, OldText: file.Slice(sp)}
		}
		return diag.TextEdit{Span: source.At(file.ID, open+1), NewText: text}
	}
	return diag.TextEdit{Span: orig.Span, NewText: RenderBody(body, indent), OldText: file.Slice(orig.Span)}
}

func prependedStmts(orig, next []ast.Stmt) ([]ast.Stmt, bool) {
	if len(next) < len(orig) {
		return nil, false
	}
	k := len(next) - len(orig)
	for i, s := range orig {
		if next[k+i] != s {
			return nil, false
		}
	}
	return next[:k], true
}

// markerRemoval удаляет атрибут; если он один на строке, удаляется вся строка.
func markerRemoval(file *source.File, a ast.Attr) diag.TextEdit {
	start, end := a.Span.Start, a.Span.End
	content := file.Content
	for int(end) < len(content) && (content[end] == ' ' || content[end] == '\t') {
		end++
	}
	if onOwnLine(file, start) && (int(end) == len(content) || content[end] == '\n') {
		start = file.LineStart(start)
		if int(end) < len(content) {
			end++
		}
	}
	sp := source.Span{File: file.ID, Start: start, End: end}
	return diag.TextEdit{Span: sp, OldText: file.Slice(sp)}
}

// onOwnLine: before off there is only whitespace on its line.
func onOwnLine(file *source.File, off uint32) bool {
	return file.LineStart(off)+uint32(len(file.Indent(off))) == off
}

func lineOf(file *source.File, off uint32) uint32 {
	return file.LineStart(off)
}
