package rewrite

import (
	"slices"
	"strings"

	"abstractc/internal/ast"
)

// IndentUnit is used when the surrounding code gives no better hint.
const IndentUnit = "    "

// RenderStmt renders one statement at the given indentation. Raw statements
// are returned verbatim; only the two synthesized shapes are rendered.
func RenderStmt(s ast.Stmt, indent string) string {
	switch s.Kind {
	case ast.StmtGuard:
		return "if type(of: self) == " + s.Class + ".self {\n" +
			indent + IndentUnit + "fatalError(" + quote(s.Message) + ")\n" +
			indent + "}"
	case ast.StmtFatal:
		return "fatalError(" + quote(s.Message) + ")"
	}
	return s.Text
}

// RenderBody renders "{ ... }" with statements one per line at indent+unit.
func RenderBody(b *ast.Body, indent string) string {
	var sb strings.Builder
	sb.WriteString("{\n")
	inner := indent + IndentUnit
	if b != nil {
		for _, s := range b.Stmts {
			sb.WriteString(inner)
			sb.WriteString(RenderStmt(s, inner))
			sb.WriteByte('\n')
		}
	}
	sb.WriteString(indent)
	sb.WriteString("}")
	return sb.String()
}

// RenderInit renders a synthesized initializer declaration.
func RenderInit(d *ast.Decl, indent string) string {
	params := d.Params
	if params == "" {
		params = "()"
	}
	return strings.Join(append(slices.Clone(d.Modifiers), "init"+params), " ") + " " + RenderBody(d.Body, indent)
}

// quote produces a string literal of the host language.
func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
