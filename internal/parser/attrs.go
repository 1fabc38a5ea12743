package parser

import (
	"abstractc/internal/ast"
	"abstractc/internal/diag"
	"abstractc/internal/token"
)

// parseAttrs читает подряд идущие @name, @Mod.name, @name(args).
func (p *Parser) parseAttrs() []ast.Attr {
	var attrs []ast.Attr
	for p.at(token.At) {
		at := p.advance()
		nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected attribute name after '@'")
		if !ok {
			continue
		}
		attr := ast.Attr{Name: nameTok.Text, Span: at.Span.Cover(nameTok.Span)}
		for p.at(token.Dot) && p.peekN(1).Kind == token.Ident && p.peekN(1).Span.Start == p.peek().Span.End {
			p.advance()
			seg := p.advance()
			if attr.Qualifier == "" {
				attr.Qualifier = attr.Name
			} else {
				attr.Qualifier += "." + attr.Name
			}
			attr.Name = seg.Text
			attr.Span = attr.Span.Cover(seg.Span)
		}
		// аргументы только вплотную: @available(...), но не "@objc (x)"
		if p.at(token.LParen) && p.peek().Span.Start == attr.Span.End {
			open := p.advance()
			if closeTok, ok := p.skipBalanced(token.LParen, token.RParen, open); ok {
				attr.Args = p.slice(open.Span.End, closeTok.Span.Start)
				attr.Span = attr.Span.Cover(closeTok.Span)
			}
		}
		attrs = append(attrs, attr)
	}
	return attrs
}

// parseModifiers читает модификаторы объявления. "class" считается
// модификатором только перед func/var/let/class ("class func f()").
func (p *Parser) parseModifiers() []string {
	var mods []string
	for {
		tok := p.peek()
		switch {
		case tok.Kind == token.Ident && token.IsModifier(tok.Text):
			p.advance()
			if p.at(token.LParen) && p.peekN(1).IsIdentText("set") {
				open := p.advance()
				p.skipBalanced(token.LParen, token.RParen, open)
				mods = append(mods, tok.Text+"(set)")
				continue
			}
			mods = append(mods, tok.Text)
		case tok.Kind == token.KwClass:
			switch p.peekN(1).Kind {
			case token.KwFunc, token.KwVar, token.KwLet:
				p.advance()
				mods = append(mods, "class")
			default:
				return mods
			}
		default:
			return mods
		}
	}
}

// skipBalanced съедает токены до парного close; open уже съеден.
func (p *Parser) skipBalanced(openKind, closeKind token.Kind, open token.Token) (token.Token, bool) {
	depth := 1
	for !p.at(token.EOF) {
		tok := p.advance()
		switch tok.Kind {
		case openKind:
			depth++
		case closeKind:
			depth--
			if depth == 0 {
				return tok, true
			}
		}
	}
	code := diag.SynUnclosedParen
	msg := "unclosed '('"
	if openKind == token.LBrace {
		code, msg = diag.SynUnclosedBrace, "unclosed '{'"
	}
	p.report(code, open.Span, msg)
	return token.Token{}, false
}
