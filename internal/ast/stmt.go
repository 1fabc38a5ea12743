package ast

import "abstractc/internal/source"

type StmtKind uint8

const (
	// StmtRaw is an original statement kept as source text.
	StmtRaw StmtKind = iota
	// StmtGuard fails when the receiver's exact dynamic type is Class.
	StmtGuard
	// StmtFatal fails unconditionally.
	StmtFatal
)

func (k StmtKind) String() string {
	switch k {
	case StmtRaw:
		return "raw"
	case StmtGuard:
		return "guard"
	case StmtFatal:
		return "fatal"
	}
	return "unknown"
}

// Stmt is an opaque unit of code. Only synthesized statements carry structure.
type Stmt struct {
	Kind    StmtKind
	Text    string      // StmtRaw
	Class   string      // StmtGuard: exact type compared against
	Message string      // StmtGuard, StmtFatal
	Span    source.Span // zero for synthesized statements
}

// Synthesized reports whether the statement was produced by an expansion.
func (s Stmt) Synthesized() bool {
	return s.Kind != StmtRaw
}

// Body is an ordered statement list with the span of its braces.
type Body struct {
	Stmts []Stmt
	Span  source.Span // '{' .. '}' inclusive; zero when synthesized
}

// Clone returns a copy whose statement slice can be modified freely.
func (b *Body) Clone() *Body {
	if b == nil {
		return nil
	}
	return &Body{Stmts: append([]Stmt(nil), b.Stmts...), Span: b.Span}
}
