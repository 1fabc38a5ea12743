package diagfmt

import (
	"bytes"
	"testing"

	"abstractc/internal/ast"
	"abstractc/internal/source"
)

func TestFormatTree(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("prog.swift", []byte("class Vehicle {}\n"))
	file := &ast.File{ID: id, Path: "prog.swift", Decls: []*ast.Decl{
		{
			Kind:  ast.DeclClass,
			Name:  "Vehicle",
			Attrs: []ast.Attr{{Name: "abstractClass"}},
			Span:  source.Span{File: id, Start: 0, End: 16},
			Members: []*ast.Decl{
				{Kind: ast.DeclInit, Name: "init", Params: "()", Body: &ast.Body{Stmts: []ast.Stmt{
					{Kind: ast.StmtGuard, Class: "Vehicle", Message: "no"},
				}}},
				{Kind: ast.DeclMethod, Name: "start", Params: "()", Body: &ast.Body{Stmts: []ast.Stmt{
					{Kind: ast.StmtFatal, Message: "stub"},
				}}},
			},
		},
		{Kind: ast.DeclOther, Text: "let  car =\n  Car()"},
	}}

	var buf bytes.Buffer
	if err := FormatTree(&buf, file, fs); err != nil {
		t.Fatalf("FormatTree: %v", err)
	}
	want := `prog.swift
├─ class Vehicle @abstractClass (1:1-1:17)
│  ├─ init()
│  │  └─ guard Vehicle "no"
│  └─ method start()
│     └─ fatal "stub"
└─ let car = Car()
`
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}
