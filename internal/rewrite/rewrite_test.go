package rewrite

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"abstractc/internal/ast"
	"abstractc/internal/diag"
	"abstractc/internal/macro"
	"abstractc/internal/parser"
	"abstractc/internal/source"
)

func expandSource(t *testing.T, src string) (*source.File, *ast.File, []macro.Expansion) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("in.swift", []byte(src)))
	bag := diag.NewBag(0)
	tree := parser.ParseFile(file, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	exps := macro.Expand(tree, diag.BagReporter{Bag: bag})
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics:\n%s", diag.FormatShortDiagnostics(bag.Items(), fs, false))
	}
	return file, tree, exps
}

func TestApplyOrdersAndChecks(t *testing.T) {
	content := []byte("abcdef")
	edits := []diag.TextEdit{
		{Span: source.Span{Start: 4, End: 6}, NewText: "XY", OldText: "ef"},
		{Span: source.Span{Start: 0, End: 0}, NewText: "<"},
		{Span: source.Span{Start: 0, End: 0}, NewText: "<"},
		{Span: source.Span{Start: 1, End: 2}, NewText: ""},
	}
	got, err := Apply(content, edits)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if string(got) != "<<acdXY" {
		t.Errorf("got %q", got)
	}
	if string(content) != "abcdef" {
		t.Errorf("input mutated: %q", content)
	}
}

func TestApplyErrors(t *testing.T) {
	content := []byte("abcdef")
	tests := []struct {
		name  string
		edits []diag.TextEdit
		want  error
	}{
		{"overlap", []diag.TextEdit{
			{Span: source.Span{Start: 0, End: 3}, NewText: "x"},
			{Span: source.Span{Start: 2, End: 4}, NewText: "y"},
		}, ErrConflict},
		{"insert inside replace", []diag.TextEdit{
			{Span: source.Span{Start: 1, End: 4}, NewText: "x"},
			{Span: source.Span{Start: 2, End: 2}, NewText: "y"},
		}, ErrConflict},
		{"stale", []diag.TextEdit{
			{Span: source.Span{Start: 0, End: 2}, NewText: "x", OldText: "zz"},
		}, ErrStale},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Apply(content, tt.edits); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
	if _, err := Apply(content, []diag.TextEdit{{Span: source.Span{Start: 5, End: 9}}}); err == nil {
		t.Errorf("out-of-range edit must fail")
	}
}

func TestRenderStmt(t *testing.T) {
	guard := RenderStmt(macro.MakeGuard("Vehicle"), "  ")
	want := "if type(of: self) == Vehicle.self {\n      fatalError(\"Cannot instantiate abstract class 'Vehicle' directly\")\n  }"
	if guard != want {
		t.Errorf("guard:\n%s\nwant:\n%s", guard, want)
	}
	if got := RenderStmt(macro.MakeAbstractStub("start"), ""); got != `fatalError("Method 'start' must be overridden in subclass")` {
		t.Errorf("stub = %s", got)
	}
	if got := quote(`a "b" \c`); got != `"a \"b\" \\c"` {
		t.Errorf("quote = %s", got)
	}
}

func TestRewriteClientProgram(t *testing.T) {
	src, err := os.ReadFile(filepath.Join("..", "..", "testdata", "client.swift"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	want, err := os.ReadFile(filepath.Join("..", "..", "testdata", "client.expanded.swift"))
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	file, tree, exps := expandSource(t, string(src))
	got, err := Rewrite(file, tree, exps)
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if diff := cmp.Diff(string(want), string(got)); diff != "" {
		t.Errorf("expanded source (-want +got):\n%s", diff)
	}
}

func TestRewriteShapes(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "empty inline class",
			src:  "@abstractClass class A {}\n",
			want: "class A {\n    init() {\n        if type(of: self) == A.self {\n            fatalError(\"Cannot instantiate abstract class 'A' directly\")\n        }\n    }\n}\n",
		},
		{
			name: "single line init body is re-rendered",
			src:  "@abstractClass\nclass B {\n  @abstractInit init() { setup() }\n}\n",
			want: "class B {\n  init() {\n      if type(of: self) == B.self {\n          fatalError(\"Cannot instantiate abstract class 'B' directly\")\n      }\n      setup()\n  }\n}\n",
		},
		{
			name: "first statement on the brace line moves below the guard",
			src:  "@abstractClass\nclass F {\n    let x: Int\n    @abstractInit\n    init(x: Int) { self.x = x\n        print(x)\n    }\n}\n",
			want: "class F {\n    let x: Int\n    init(x: Int) {\n        if type(of: self) == F.self {\n            fatalError(\"Cannot instantiate abstract class 'F' directly\")\n        }\n        self.x = x\n        print(x)\n    }\n}\n",
		},
		{
			name: "bodyless abstract method gets a body",
			src:  "@abstractClass\nclass C {\n    init() {}\n    @abstract func run() -> Int\n}\n",
			want: "class C {\n    init() {}\n    func run() -> Int {\n        fatalError(\"Method 'run' must be overridden in subclass\")\n    }\n}\n",
		},
		{
			name: "other attributes survive",
			src:  "@objc @abstractClass @available(x)\nclass D {\n    init() {}\n}\n",
			want: "@objc @available(x)\nclass D {\n    init() {}\n}\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, tree, exps := expandSource(t, tt.src)
			got, err := Rewrite(file, tree, exps)
			if err != nil {
				t.Fatalf("Rewrite: %v", err)
			}
			if diff := cmp.Diff(tt.want, string(got)); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplyTreeDoesNotMutateInput(t *testing.T) {
	_, tree, exps := expandSource(t, "@abstractClass\nclass V {\n    @abstract\n    func start() {\n        print(\"x\")\n    }\n}\n")
	before := tree.Clone()
	out := ApplyTree(tree, exps)
	if diff := cmp.Diff(before, tree); diff != "" {
		t.Fatalf("input mutated (-before +after):\n%s", diff)
	}

	class := out.Decls[0]
	if len(class.Attrs) != 0 {
		t.Errorf("class markers not stripped: %v", class.Attrs)
	}
	if len(class.Members) != 2 || class.Members[1].Kind != ast.DeclInit {
		t.Fatalf("members = %+v", class.Members)
	}
	start := class.Members[0]
	if diff := cmp.Diff([]ast.Stmt{macro.MakeAbstractStub("start")}, start.Body.Stmts); diff != "" {
		t.Errorf("start body (-want +got):\n%s", diff)
	}
	out.Decls[0].Members[1].Body.Stmts[0].Message = "changed"
	if exps[0].Members[0].Body.Stmts[0].Message == "changed" {
		t.Errorf("ApplyTree shares synthesized nodes with expansions")
	}
}

func TestEditsRemoveEveryMarker(t *testing.T) {
	file, tree, exps := expandSource(t, "@abstractClass @abstractClass\nclass E {\n    init() {}\n}\n")
	got, err := Rewrite(file, tree, exps)
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if strings.Contains(string(got), "@abstractClass") {
		t.Errorf("marker left in output:\n%s", got)
	}
}
