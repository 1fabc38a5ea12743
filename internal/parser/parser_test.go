package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"abstractc/internal/ast"
	"abstractc/internal/diag"
	"abstractc/internal/source"
)

func parseSource(t *testing.T, src string) (*ast.File, *diag.Bag, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.swift", []byte(src))
	bag := diag.NewBag(32)
	f := ParseFile(fs.Get(id), Options{Reporter: diag.BagReporter{Bag: bag}})
	return f, bag, fs.Get(id)
}

func stmtTexts(b *ast.Body) []string {
	if b == nil {
		return nil
	}
	out := make([]string, len(b.Stmts))
	for i, s := range b.Stmts {
		out[i] = s.Text
	}
	return out
}

func TestParseClientProgram(t *testing.T) {
	src, err := os.ReadFile(filepath.Join("..", "..", "testdata", "client.swift"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	f, bag, _ := parseSource(t, string(src))
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diag.FormatShortDiagnostics(bag.Items(), nil, false))
	}

	type shape struct {
		Kind    ast.DeclKind
		Keyword string
		Name    string
		Attrs   []string
	}
	var got []shape
	for _, d := range f.Decls {
		s := shape{Kind: d.Kind, Keyword: d.Keyword, Name: d.Name}
		for _, a := range d.Attrs {
			s.Attrs = append(s.Attrs, a.Name)
		}
		got = append(got, s)
	}
	want := []shape{
		{Kind: ast.DeclOther, Keyword: "import", Name: "SwiftAbstract"},
		{Kind: ast.DeclClass, Keyword: "class", Name: "Animal", Attrs: []string{"abstractClass"}},
		{Kind: ast.DeclClass, Keyword: "class", Name: "Person", Attrs: []string{"abstractClass"}},
		{Kind: ast.DeclClass, Keyword: "class", Name: "Vehicle", Attrs: []string{"abstractClass"}},
		{Kind: ast.DeclClass, Keyword: "class", Name: "Car"},
		{Kind: ast.DeclOther, Keyword: "let", Name: "car"},
		{Kind: ast.DeclOther},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("top-level shape mismatch (-want +got):\n%s", diff)
	}

	person := f.Decls[2]
	if len(person.Members) != 2 {
		t.Fatalf("Person members = %d, want 2", len(person.Members))
	}
	ctor := person.Members[1]
	if ctor.Kind != ast.DeclInit || ctor.Params != "(name: String)" || !ctor.HasAttr("abstractInit") {
		t.Errorf("Person.init = %+v", ctor)
	}
	if diff := cmp.Diff([]string{"self.name = name"}, stmtTexts(ctor.Body)); diff != "" {
		t.Errorf("init body (-want +got):\n%s", diff)
	}

	start := f.Decls[3].Members[0]
	if start.Kind != ast.DeclMethod || start.Name != "start" || !start.HasAttr("abstract") {
		t.Errorf("Vehicle.start = %+v", start)
	}
	car := f.Decls[4]
	if car.Parent() != "Vehicle" {
		t.Errorf("Car parent = %q", car.Parent())
	}
	if diff := cmp.Diff([]string{"override"}, car.Members[0].Modifiers); diff != "" {
		t.Errorf("modifiers (-want +got):\n%s", diff)
	}
	if f.Decls[6].Text != "car.start()" {
		t.Errorf("last statement = %q", f.Decls[6].Text)
	}
}

func TestParseStatementSplitting(t *testing.T) {
	src := `func f() {
    let a = 1; let b = 2
    if a == b {
        print("same")
    } else {
        print("different")
    }
    let c = a +
        b
    items
        .map { $0 }
}`
	f, bag, _ := parseSource(t, src)
	if bag.Len() != 0 {
		t.Fatalf("diagnostics: %v", bag.Items())
	}
	want := []string{
		"let a = 1",
		"let b = 2",
		"if a == b {\n        print(\"same\")\n    } else {\n        print(\"different\")\n    }",
		"let c = a +\n        b",
		"items\n        .map { $0 }",
	}
	if diff := cmp.Diff(want, stmtTexts(f.Decls[0].Body)); diff != "" {
		t.Errorf("statements (-want +got):\n%s", diff)
	}
}

func TestParseSpans(t *testing.T) {
	src := "@abstractClass\nclass A {\n    @abstract func f()\n}\n"
	f, bag, file := parseSource(t, src)
	if bag.Len() != 0 {
		t.Fatalf("diagnostics: %v", bag.Items())
	}
	cls := f.Decls[0]
	if got := file.Slice(cls.Span); got != "@abstractClass\nclass A {\n    @abstract func f()\n}" {
		t.Errorf("class span = %q", got)
	}
	if got := file.Slice(cls.Attrs[0].Span); got != "@abstractClass" {
		t.Errorf("attr span = %q", got)
	}
	if got := file.Slice(cls.MembersSpan); got[0] != '{' || got[len(got)-1] != '}' {
		t.Errorf("members span = %q", got)
	}
	m := cls.Members[0]
	if m.Body != nil {
		t.Errorf("body-less method got a body")
	}
	if got := string(file.Content[m.Span.Start:m.HeaderEnd]); got != "@abstract func f()" {
		t.Errorf("header = %q", got)
	}
}

func TestParseAttributes(t *testing.T) {
	f, bag, _ := parseSource(t, "@available(iOS 13, *) @Kit.abstractClass @objc class A: NSObject, Codable {}")
	if bag.Len() != 0 {
		t.Fatalf("diagnostics: %v", bag.Items())
	}
	got := f.Decls[0].Attrs
	want := []ast.Attr{
		{Name: "available", Args: "iOS 13, *"},
		{Name: "abstractClass", Qualifier: "Kit"},
		{Name: "objc"},
	}
	if diff := cmp.Diff(want, got, cmp.FilterPath(func(p cmp.Path) bool {
		return p.Last().String() == ".Span"
	}, cmp.Ignore())); diff != "" {
		t.Errorf("attrs (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"NSObject", "Codable"}, f.Decls[0].Inherits); diff != "" {
		t.Errorf("inherits (-want +got):\n%s", diff)
	}
}

func TestParseNestedAndModifiers(t *testing.T) {
	src := `class Outer {
    public class func make() -> Outer { return Outer() }
    private(set) var count = 0
    required init?(coder: Coder) {}
    struct Inner {
        func g() {}
    }
    deinit {}
}`
	f, bag, _ := parseSource(t, src)
	if bag.Len() != 0 {
		t.Fatalf("diagnostics: %v", bag.Items())
	}
	m := f.Decls[0].Members
	if len(m) != 5 {
		t.Fatalf("members = %d, want 5", len(m))
	}
	if diff := cmp.Diff([]string{"public", "class"}, m[0].Modifiers); diff != "" {
		t.Errorf("make modifiers (-want +got):\n%s", diff)
	}
	if m[1].Kind != ast.DeclOther || m[1].Keyword != "var" || m[1].Modifiers[0] != "private(set)" {
		t.Errorf("count = %+v", m[1])
	}
	if m[2].Kind != ast.DeclInit || m[2].Params != "(coder: Coder)" {
		t.Errorf("failable init = %+v", m[2])
	}
	if m[3].Kind != ast.DeclOther || m[3].Keyword != "struct" || len(m[3].Members) != 1 {
		t.Errorf("Inner = %+v", m[3])
	}
	if m[4].Keyword != "deinit" {
		t.Errorf("deinit = %+v", m[4])
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"unclosed class", "class A {\n  func f() {}\n", diag.SynUnclosedBrace},
		{"missing class name", "class {}", diag.SynExpectIdentifier},
		{"dangling attribute", "class A {\n  @abstract\n}", diag.SynAttributeDangling},
		{"stray brace", "}", diag.SynUnexpectedToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, bag, _ := parseSource(t, tt.src)
			found := false
			for _, d := range bag.Items() {
				if d.Code == tt.code {
					found = true
				}
			}
			if !found {
				t.Errorf("want %s, got %s", tt.code.ID(), diag.FormatShortDiagnostics(bag.Items(), nil, false))
			}
		})
	}
}
