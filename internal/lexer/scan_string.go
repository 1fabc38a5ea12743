package lexer

import (
	"abstractc/internal/diag"
	"abstractc/internal/token"
)

// scanString reads "..." and """...""" literals. Interpolations \( ... ) may
// contain nested parentheses and string literals; they stay part of the token.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	multiline := lx.cursor.HasPrefix(`"""`)
	if multiline {
		lx.cursor.Off += 3
	} else {
		lx.cursor.Bump()
	}
	if !lx.scanStringBody(multiline) {
		sp := lx.cursor.SpanFrom(start)
		lx.report(diag.LexUnterminatedString, sp, "unterminated string literal")
		return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp)}
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) scanStringBody(multiline bool) bool {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case multiline && lx.cursor.HasPrefix(`"""`):
			lx.cursor.Off += 3
			return true
		case !multiline && b == '"':
			lx.cursor.Bump()
			return true
		case !multiline && b == '\n':
			return false
		case b == '\\' && lx.cursor.PeekAt(1) == '(':
			lx.cursor.Off += 2
			if !lx.scanInterpolation() {
				return false
			}
		case b == '\\':
			lx.cursor.Off += 2
		default:
			lx.cursor.Bump()
		}
	}
	return false
}

func (lx *Lexer) scanInterpolation() bool {
	depth := 1
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '(':
			depth++
			lx.cursor.Bump()
		case ')':
			depth--
			lx.cursor.Bump()
			if depth == 0 {
				return true
			}
		case '"':
			lx.cursor.Bump()
			if !lx.scanStringBody(false) {
				return false
			}
		case '\n':
			return false
		default:
			lx.cursor.Bump()
		}
	}
	return false
}
