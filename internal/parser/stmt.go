package parser

import (
	"abstractc/internal/ast"
	"abstractc/internal/diag"
	"abstractc/internal/source"
	"abstractc/internal/token"
)

// parseBody разбирает { ... } в список непрозрачных операторов.
func (p *Parser) parseBody() *ast.Body {
	open := p.advance()
	body := &ast.Body{}
	for !p.atOr(token.RBrace, token.EOF) {
		if p.at(token.Semicolon) {
			p.advance()
			continue
		}
		sp, ok := p.scanStatement()
		if !ok {
			tok := p.advance()
			p.report(diag.SynUnexpectedToken, tok.Span, "unexpected '"+tok.Text+"'")
			continue
		}
		body.Stmts = append(body.Stmts, ast.Stmt{Kind: ast.StmtRaw, Text: p.slice(sp.Start, sp.End), Span: sp})
	}
	closeTok, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "unclosed '{'")
	if !ok {
		body.Span = open.Span.Cover(p.lastSpan)
		return body
	}
	body.Span = open.Span.Cover(closeTok.Span)
	return body
}

// scanStatement съедает один оператор: до ';' или перевода строки на нулевой
// глубине скобок, либо до незакрытой '}'. Возвращает span оператора.
func (p *Parser) scanStatement() (source.Span, bool) {
	depth := 0
	var sp source.Span
	consumed := false
	for !p.at(token.EOF) {
		tok := p.peek()
		if depth == 0 && consumed {
			if tok.Kind == token.Semicolon || tok.Kind == token.RBrace {
				break
			}
			if tok.NewlineBefore() && !continuesStatement(p.toks[p.pos-1], tok) {
				break
			}
		}
		if depth == 0 && !consumed && (tok.Kind == token.RBrace || tok.Kind == token.RParen || tok.Kind == token.RBracket) {
			return sp, false
		}
		switch tok.Kind {
		case token.LParen, token.LBrace, token.LBracket:
			depth++
		case token.RParen, token.RBrace, token.RBracket:
			depth--
		}
		p.advance()
		if !consumed {
			sp = tok.Span
			consumed = true
		} else {
			sp = sp.Cover(tok.Span)
		}
		if depth < 0 {
			break
		}
	}
	if depth > 0 {
		p.report(diag.SynUnclosedBrace, sp, "unbalanced brackets in statement")
	}
	return sp, consumed
}

// continuesStatement: перевод строки не завершает оператор, если строка
// заканчивается бинарным оператором или следующая начинается с '.'/оператора.
func continuesStatement(prev, next token.Token) bool {
	switch prev.Kind {
	case token.Operator, token.Assign, token.Dot, token.Comma, token.Arrow, token.Colon:
		return true
	}
	switch next.Kind {
	case token.Dot, token.Operator, token.Arrow:
		return true
	}
	return next.IsIdentText("else") || next.IsIdentText("catch")
}
