package parser

import (
	"strings"

	"abstractc/internal/ast"
	"abstractc/internal/diag"
	"abstractc/internal/token"
)

// parseItem разбирает одно объявление или оператор верхнего уровня / члена типа.
// Возвращает nil, если разбирать нечего (например, лишняя ';').
func (p *Parser) parseItem() *ast.Decl {
	if p.at(token.Semicolon) {
		p.advance()
		return nil
	}
	start := p.peek().Span
	attrs := p.parseAttrs()
	mods := p.parseModifiers()

	var d *ast.Decl
	switch p.peek().Kind {
	case token.KwClass:
		d = p.parseTypeDecl(ast.DeclClass)
	case token.KwStruct, token.KwEnum, token.KwProtocol, token.KwExtension, token.KwActor:
		d = p.parseTypeDecl(ast.DeclOther)
	case token.KwInit:
		d = p.parseFuncLike(ast.DeclInit)
	case token.KwFunc:
		d = p.parseFuncLike(ast.DeclMethod)
	case token.KwDeinit:
		d = p.parseDeinit()
	case token.RBrace, token.EOF:
		if len(attrs) > 0 || len(mods) > 0 {
			p.report(diag.SynAttributeDangling, start.Cover(p.lastSpan), "attribute is not followed by a declaration")
		}
		return nil
	default:
		d = p.parseOpaque()
	}
	d.Attrs = attrs
	d.Modifiers = mods
	d.Span = start.Cover(p.lastSpan)
	return d
}

// parseTypeDecl: class/struct/enum/protocol/extension/actor Name[<...>][: A, B][where ...] { members }
func (p *Parser) parseTypeDecl(kind ast.DeclKind) *ast.Decl {
	kw := p.advance()
	d := &ast.Decl{Kind: kind, Keyword: kw.Text}
	if name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected type name after '"+kw.Text+"'"); ok {
		d.Name = name.Text
		for p.at(token.Dot) && p.peekN(1).Kind == token.Ident {
			p.advance()
			d.Name += "." + p.advance().Text
		}
	}
	p.skipGenericParams()
	if p.at(token.Colon) {
		p.advance()
		d.Inherits = p.parseInheritance()
	}
	for !p.atOr(token.LBrace, token.RBrace, token.EOF) && !p.peek().NewlineBefore() {
		p.advance() // where-клаузы и прочее, что нас не интересует
	}
	d.HeaderEnd = p.lastSpan.End
	open, ok := p.expect(token.LBrace, diag.SynExpectBody, "expected '{' to start the body of '"+d.Name+"'")
	if !ok {
		return d
	}
	for !p.atOr(token.RBrace, token.EOF) && !p.enough() {
		if m := p.parseItem(); m != nil {
			d.Members = append(d.Members, m)
		}
	}
	if closeTok, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "unclosed '{' of '"+d.Name+"'"); ok {
		d.MembersSpan = open.Span.Cover(closeTok.Span)
	} else {
		d.MembersSpan = open.Span.Cover(p.lastSpan)
	}
	return d
}

// parseInheritance читает "A, B<C>, D.E" до '{' или where.
func (p *Parser) parseInheritance() []string {
	var out []string
	for {
		var b strings.Builder
		depth := 0
		for !p.atOr(token.LBrace, token.EOF) {
			tok := p.peek()
			if depth == 0 && (tok.Kind == token.Comma || tok.IsIdentText("where")) {
				break
			}
			depth += angleDelta(tok)
			b.WriteString(tok.Text)
			p.advance()
		}
		if b.Len() > 0 {
			out = append(out, b.String())
		}
		if !p.at(token.Comma) {
			return out
		}
		p.advance()
	}
}

// skipGenericParams пропускает <...> после имени.
func (p *Parser) skipGenericParams() {
	tok := p.peek()
	if tok.Kind != token.Operator || !strings.HasPrefix(tok.Text, "<") {
		return
	}
	depth := 0
	for !p.atOr(token.EOF, token.LBrace, token.LParen) {
		depth += angleDelta(p.advance())
		if depth <= 0 {
			return
		}
	}
}

// angleDelta считает баланс угловых скобок в операторе ("<", ">", ">>").
func angleDelta(tok token.Token) int {
	if tok.Kind != token.Operator {
		return 0
	}
	return strings.Count(tok.Text, "<") - strings.Count(tok.Text, ">")
}

func (p *Parser) parseDeinit() *ast.Decl {
	p.advance()
	d := &ast.Decl{Kind: ast.DeclOther, Keyword: "deinit", Name: "deinit"}
	d.HeaderEnd = p.lastSpan.End
	if p.at(token.LBrace) {
		d.Body = p.parseBody()
	}
	return d
}

// parseOpaque разбирает var/let/import/typealias и операторы верхнего уровня
// как один непрозрачный оператор.
func (p *Parser) parseOpaque() *ast.Decl {
	first := p.peek()
	d := &ast.Decl{Kind: ast.DeclOther}
	if first.IsKeyword() {
		d.Keyword = first.Text
		if next := p.peekN(1); next.Kind == token.Ident {
			d.Name = next.Text
		}
	}
	sp, ok := p.scanStatement()
	if !ok {
		// ни одного токена не съели — шагаем, чтобы не зациклиться
		tok := p.advance()
		p.report(diag.SynUnexpectedToken, tok.Span, "unexpected '"+tok.Text+"'")
		sp = tok.Span
	}
	d.Text = p.slice(sp.Start, sp.End)
	d.HeaderEnd = sp.End
	return d
}
