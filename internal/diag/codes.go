package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexUnterminatedBlock  Code = 1003

	// Парсерные
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynUnclosedBrace     Code = 2002
	SynUnclosedParen     Code = 2003
	SynExpectIdentifier  Code = 2004
	SynExpectBody        Code = 2005
	SynAttributeDangling Code = 2006

	// Раскрытие маркеров abstractClass / abstractInit / abstract
	MacInfo                          Code = 3000
	AbstractInitOnNonInitializer     Code = 3001
	AbstractInitOutsideClass         Code = 3002
	AbstractInitOutsideAbstractClass Code = 3003
	AbstractOnNonFunction            Code = 3004
	AbstractOutsideClass             Code = 3005
	AbstractOutsideAbstractClass     Code = 3006

	IOLoadFileError Code = 4001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                      "Unknown error",
		LexInfo:                          "Lexical information",
		LexUnknownChar:                   "Unknown character",
		LexUnterminatedString:            "Unterminated string literal",
		LexUnterminatedBlock:             "Unterminated block comment",
		SynInfo:                          "Syntax information",
		SynUnexpectedToken:               "Unexpected token",
		SynUnclosedBrace:                 "Unclosed brace",
		SynUnclosedParen:                 "Unclosed parenthesis",
		SynExpectIdentifier:              "Expected identifier",
		SynExpectBody:                    "Expected declaration body",
		SynAttributeDangling:             "Attribute is not followed by a declaration",
		MacInfo:                          "Expansion information",
		AbstractInitOnNonInitializer:     "@abstractInit can only be used on initializers",
		AbstractInitOutsideClass:         "@abstractInit can only be used inside a class",
		AbstractInitOutsideAbstractClass: "@abstractInit can only be used inside @abstractClass",
		AbstractOnNonFunction:            "@abstract can only be used on functions",
		AbstractOutsideClass:             "@abstract can only be used inside a class",
		AbstractOutsideAbstractClass:     "@abstract can only be used inside @abstractClass",
		IOLoadFileError:                  "I/O load file error",
	}

	// stable identifiers surfaced to hosts; never renumbered
	codeName = map[Code]string{
		AbstractInitOnNonInitializer:     "abstractInitOnNonInitializer",
		AbstractInitOutsideClass:         "abstractInitOutsideClass",
		AbstractInitOutsideAbstractClass: "abstractInitOutsideAbstractClass",
		AbstractOnNonFunction:            "abstractOnNonFunction",
		AbstractOutsideClass:             "abstractOutsideClass",
		AbstractOutsideAbstractClass:     "abstractOutsideAbstractClass",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("MAC%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

// Name returns the symbolic identifier of the code. Expansion diagnostics use
// the names hosts already match on; other codes fall back to ID().
func (c Code) Name() string {
	if name, ok := codeName[c]; ok {
		return name
	}
	return c.ID()
}

// Domain groups codes the way hosts namespace message ids.
func (c Code) Domain() string {
	if c >= 3000 && c < 4000 {
		return "abstract"
	}
	return "abstractc"
}

// CodeByName resolves a symbolic identifier back to its Code.
func CodeByName(name string) (Code, bool) {
	for c, n := range codeName {
		if n == name {
			return c, true
		}
	}
	return UnknownCode, false
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
