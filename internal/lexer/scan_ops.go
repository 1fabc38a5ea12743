package lexer

import (
	"strings"

	"abstractc/internal/diag"
	"abstractc/internal/token"
)

const operatorChars = "+-*/%=<>!&|^~?."

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	b := lx.cursor.Bump()
	kind := token.Invalid
	switch b {
	case '@':
		kind = token.At
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	case ':':
		kind = token.Colon
	case ',':
		kind = token.Comma
	case ';':
		kind = token.Semicolon
	case '#', '$', '\\':
		// #if, $0 and key paths are opaque to declaration parsing
		kind = token.Operator
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	default:
		if strings.IndexByte(operatorChars, b) < 0 {
			sp := lx.cursor.SpanFrom(start)
			lx.report(diag.LexUnknownChar, sp, "unknown character")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		}
		kind = token.Operator
		// одиночные ? ! . не склеиваем, иначе ломается optional chaining
		if b == '?' || b == '!' || b == '.' {
			glue := (b == '!' && lx.cursor.Peek() == '=') || (b == '.' && lx.cursor.HasPrefix(".."))
			if !glue {
				break
			}
		}
		for !lx.cursor.EOF() && strings.IndexByte(operatorChars, lx.cursor.Peek()) >= 0 &&
			!lx.cursor.HasPrefix("//") && !lx.cursor.HasPrefix("/*") {
			lx.cursor.Bump()
		}
	}
	sp := lx.cursor.SpanFrom(start)
	if kind == token.Operator && b != '#' && b != '$' && b != '\\' {
		kind = classifyOperator(lx.text(sp))
	}
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

func classifyOperator(op string) token.Kind {
	switch op {
	case "->":
		return token.Arrow
	case "=":
		return token.Assign
	case "?":
		return token.Question
	case "!":
		return token.Bang
	case ".":
		return token.Dot
	}
	return token.Operator
}
