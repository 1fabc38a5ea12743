package lexer

import (
	"testing"

	"abstractc/internal/diag"
	"abstractc/internal/source"
	"abstractc/internal/token"
)

func lexAll(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.swift", []byte(src))
	bag := diag.NewBag(16)
	lx := New(fs.Get(id), Options{Reporter: diag.BagReporter{Bag: bag}})
	return lx.All(), bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestLexDeclarationHeader(t *testing.T) {
	toks, bag := lexAll(t, "@abstractClass\nclass Vehicle: Base {\n  @abstract func start() -> Int {}\n}")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	want := []token.Kind{
		token.At, token.Ident, token.KwClass, token.Ident, token.Colon, token.Ident, token.LBrace,
		token.At, token.Ident, token.KwFunc, token.Ident, token.LParen, token.RParen, token.Arrow, token.Ident,
		token.LBrace, token.RBrace, token.RBrace, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
	if !toks[2].NewlineBefore() {
		t.Errorf("'class' should follow a newline")
	}
	if toks[1].Text != "abstractClass" {
		t.Errorf("attribute name = %q", toks[1].Text)
	}
}

func TestLexStrings(t *testing.T) {
	tests := []struct {
		name string
		src  string
		text string
	}{
		{"plain", `"Starting vehicle"`, `"Starting vehicle"`},
		{"escaped quote", `"say \"hi\""`, `"say \"hi\""`},
		{"interpolation", `"Cannot \(name + ")") here"`, `"Cannot \(name + ")") here"`},
		{"multiline", "\"\"\"\na\nb\n\"\"\"", "\"\"\"\na\nb\n\"\"\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, bag := lexAll(t, tt.src)
			if bag.Len() != 0 {
				t.Fatalf("diagnostics: %v", bag.Items())
			}
			if toks[0].Kind != token.StringLit || toks[0].Text != tt.text {
				t.Errorf("got %v %q, want StringLit %q", toks[0].Kind, toks[0].Text, tt.text)
			}
		})
	}
}

func TestLexUnterminatedString(t *testing.T) {
	_, bag := lexAll(t, "\"abc\nlet x = 1")
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexUnterminatedString {
		t.Fatalf("got %v, want one LexUnterminatedString", bag.Items())
	}
}

func TestLexComments(t *testing.T) {
	toks, bag := lexAll(t, "/* outer /* inner */ still */ init // tail\n}")
	if bag.Len() != 0 {
		t.Fatalf("diagnostics: %v", bag.Items())
	}
	if toks[0].Kind != token.KwInit {
		t.Fatalf("first token = %v", toks[0].Kind)
	}
	if len(toks[0].Leading) != 2 || toks[0].Leading[0].Kind != token.TriviaBlockComment {
		t.Errorf("leading = %+v", toks[0].Leading)
	}
	if !toks[1].NewlineBefore() {
		t.Errorf("'}' should follow a newline")
	}
}

func TestLexOperators(t *testing.T) {
	toks, _ := lexAll(t, "a?.b != c == d -> e ... f! = g")
	want := []token.Kind{
		token.Ident, token.Question, token.Dot, token.Ident, token.Operator, token.Ident, token.Operator,
		token.Ident, token.Arrow, token.Ident, token.Operator, token.Ident, token.Bang, token.Assign, token.Ident, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d (%q) = %v, want %v", i, toks[i].Text, got[i], want[i])
		}
	}
}

func TestLexNormalizesIdentifiers(t *testing.T) {
	// "Cafe" + U+0301 vs precomposed "Café"
	toks, _ := lexAll(t, "Cafe\u0301 Caf\u00e9 `class`")
	if toks[0].Text != toks[1].Text {
		t.Errorf("NFC mismatch: %q vs %q", toks[0].Text, toks[1].Text)
	}
	if toks[2].Kind != token.Ident || toks[2].Text != "class" {
		t.Errorf("backtick ident = %v %q", toks[2].Kind, toks[2].Text)
	}
}
