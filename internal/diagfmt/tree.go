package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"abstractc/internal/ast"
	"abstractc/internal/source"
)

type treeNode struct {
	label    string
	children []*treeNode
}

// FormatTree печатает дерево объявлений в виде
//
//	prog.swift
//	└─ class Vehicle @abstractClass
//	   └─ method start()
//	      └─ fatal "Method 'start' must be overridden in subclass"
//
// Synthesized nodes have empty spans and are printed without a position.
func FormatTree(w io.Writer, file *ast.File, fs *source.FileSet) error {
	header := file.Path
	if header == "" {
		header = "File"
	}
	root := &treeNode{label: header}
	for _, d := range file.Decls {
		root.children = append(root.children, buildDeclTreeNode(d, fs))
	}
	var b strings.Builder
	b.WriteString(root.label)
	b.WriteByte('\n')
	writeTreeChildren(&b, root.children, "")
	_, err := io.WriteString(w, b.String())
	return err
}

func buildDeclTreeNode(d *ast.Decl, fs *source.FileSet) *treeNode {
	var label strings.Builder
	switch d.Kind {
	case ast.DeclClass:
		label.WriteString("class " + d.Name)
		if len(d.Inherits) > 0 {
			label.WriteString(": " + strings.Join(d.Inherits, ", "))
		}
	case ast.DeclInit:
		label.WriteString(d.Name + d.Params)
	case ast.DeclMethod:
		label.WriteString("method " + d.Name + d.Params)
	default:
		text := strings.Join(strings.Fields(d.Text), " ")
		if d.Keyword != "" && d.Name != "" {
			text = d.Keyword + " " + d.Name
		}
		label.WriteString(text)
	}
	for _, a := range d.Attrs {
		label.WriteString(" @" + a.Spelled())
	}
	if len(d.Modifiers) > 0 {
		label.WriteString(" [" + strings.Join(d.Modifiers, " ") + "]")
	}
	if pos := formatSpan(d.Span, fs); pos != "" {
		label.WriteString(" (" + pos + ")")
	}

	node := &treeNode{label: label.String()}
	for _, m := range d.Members {
		node.children = append(node.children, buildDeclTreeNode(m, fs))
	}
	if d.Body != nil {
		for _, s := range d.Body.Stmts {
			node.children = append(node.children, &treeNode{label: formatStmt(s)})
		}
	}
	return node
}

func formatStmt(s ast.Stmt) string {
	switch s.Kind {
	case ast.StmtGuard:
		return fmt.Sprintf("guard %s %q", s.Class, s.Message)
	case ast.StmtFatal:
		return fmt.Sprintf("fatal %q", s.Message)
	}
	return strings.Join(strings.Fields(s.Text), " ")
}

func formatSpan(span source.Span, fs *source.FileSet) string {
	if span.Empty() || fs == nil {
		return ""
	}
	start, end := fs.Resolve(span)
	if start.Line == 0 {
		return ""
	}
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}

func writeTreeChildren(b *strings.Builder, children []*treeNode, prefix string) {
	for i, child := range children {
		last := i == len(children)-1
		branch, next := "├─ ", "│  "
		if last {
			branch, next = "└─ ", "   "
		}
		b.WriteString(prefix + branch + child.label + "\n")
		writeTreeChildren(b, child.children, prefix+next)
	}
}
