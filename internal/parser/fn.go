package parser

import (
	"abstractc/internal/ast"
	"abstractc/internal/diag"
	"abstractc/internal/token"
)

// parseFuncLike: init[?|!](params) ... [{ body }] / func name<...>(params) ... [{ body }]
func (p *Parser) parseFuncLike(kind ast.DeclKind) *ast.Decl {
	kw := p.advance()
	d := &ast.Decl{Kind: kind, Keyword: kw.Text}
	if kind == ast.DeclInit {
		d.Name = "init"
		if p.atOr(token.Question, token.Bang) && p.peek().Span.Start == kw.Span.End {
			p.advance()
		}
	} else {
		switch tok := p.peek(); tok.Kind {
		case token.Ident, token.Operator, token.Assign, token.Bang, token.Question:
			d.Name = p.advance().Text
		default:
			p.report(diag.SynExpectIdentifier, tok.Span, "expected function name after 'func'")
		}
	}
	p.skipGenericParams()
	if open, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' to start the parameter list"); ok {
		if closeTok, ok := p.skipBalanced(token.LParen, token.RParen, open); ok {
			d.Params = p.slice(open.Span.Start, closeTok.Span.End)
		}
	}
	// throws / async / -> T / where ...
	for !p.atOr(token.LBrace, token.RBrace, token.Semicolon, token.EOF) && !p.peek().NewlineBefore() {
		tok := p.advance()
		if tok.Kind == token.LParen {
			p.skipBalanced(token.LParen, token.RParen, tok)
		}
	}
	d.HeaderEnd = p.lastSpan.End
	if p.at(token.LBrace) {
		d.Body = p.parseBody()
	}
	return d
}
