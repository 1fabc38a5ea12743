package parser

import (
	"slices"

	"abstractc/internal/ast"
	"abstractc/internal/diag"
	"abstractc/internal/lexer"
	"abstractc/internal/source"
	"abstractc/internal/token"
)

type Options struct {
	Reporter  diag.Reporter
	MaxErrors uint // 0 — без ограничений
}

// Parser — состояние парсера на один файл
type Parser struct {
	file     *source.File
	toks     []token.Token
	pos      int
	opts     Options
	errors   uint
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
}

// ParseFile разбирает один файл целиком. Ошибки уходят в opts.Reporter,
// дерево возвращается всегда (частичное при ошибках).
func ParseFile(file *source.File, opts Options) *ast.File {
	lx := lexer.New(file, lexer.Options{Reporter: opts.Reporter})
	p := Parser{
		file:     file,
		toks:     lx.All(),
		opts:     opts,
		lastSpan: source.At(file.ID, 0),
	}
	out := &ast.File{ID: file.ID, Path: file.Path}
	for !p.at(token.EOF) && !p.enough() {
		if p.at(token.RBrace) {
			p.report(diag.SynUnexpectedToken, p.peek().Span, "unexpected '}' at top level")
			p.advance()
			continue
		}
		if d := p.parseItem(); d != nil {
			out.Decls = append(out.Decls, d)
		}
	}
	return out
}

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

// peekN смотрит на n токенов вперёд (EOF, если дальше ничего нет).
func (p *Parser) peekN(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// advance — съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind != token.EOF {
		p.pos++
		p.lastSpan = tok.Span
	}
	return tok
}

func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.peek().Span
	if p.at(token.EOF) {
		sp = source.At(p.file.ID, p.lastSpan.End)
	}
	p.report(code, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp}, false
}

func (p *Parser) report(code diag.Code, sp source.Span, msg string) {
	p.errors++
	if p.opts.Reporter != nil {
		diag.ReportError(p.opts.Reporter, code, sp, msg).Emit()
	}
}

func (p *Parser) enough() bool {
	return p.opts.MaxErrors != 0 && p.errors >= p.opts.MaxErrors
}

func (p *Parser) slice(start, end uint32) string {
	return string(p.file.Content[start:end])
}
