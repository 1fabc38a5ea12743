package token

import "testing"

func TestLookupKeyword(t *testing.T) {
	for text, want := range map[string]Kind{"class": KwClass, "init": KwInit, "func": KwFunc} {
		got, ok := LookupKeyword(text)
		if !ok || got != want {
			t.Errorf("LookupKeyword(%q) = %v,%v want %v", text, got, ok, want)
		}
	}
	if _, ok := LookupKeyword("abstract"); ok {
		t.Errorf("abstract must stay an identifier")
	}
}

func TestNewlineBefore(t *testing.T) {
	tok := Token{Kind: Ident, Leading: []Trivia{{Kind: TriviaSpace}, {Kind: TriviaNewline}}}
	if !tok.NewlineBefore() {
		t.Errorf("expected newline")
	}
	tok = Token{Kind: Ident, Leading: []Trivia{{Kind: TriviaBlockComment, Text: "/* a\nb */"}}}
	if !tok.NewlineBefore() {
		t.Errorf("expected newline inside block comment")
	}
	tok = Token{Kind: Ident, Leading: []Trivia{{Kind: TriviaLineComment, Text: "// x"}}}
	if tok.NewlineBefore() {
		t.Errorf("line comment alone is not a newline")
	}
}

func TestKindString(t *testing.T) {
	if KwClass.String() != "class" || Arrow.String() != "->" || Kind(250).String() != "Unknown" {
		t.Errorf("unexpected kind names")
	}
}
