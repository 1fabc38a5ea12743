package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	Ident
	IntLit
	FloatLit
	StringLit

	KwClass     // class
	KwStruct    // struct
	KwEnum      // enum
	KwProtocol  // protocol
	KwExtension // extension
	KwActor     // actor
	KwInit      // init
	KwDeinit    // deinit
	KwFunc      // func
	KwVar       // var
	KwLet       // let
	KwImport    // import
	KwTypealias // typealias

	At        // @
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
	Colon     // :
	Comma     // ,
	Dot       // .
	Semicolon // ;
	Arrow     // ->
	Question  // ?
	Bang      // !
	Assign    // =
	Operator  // any other operator run: + - == != && ...
)

var kindNames = [...]string{
	Invalid:     "Invalid",
	EOF:         "EOF",
	Ident:       "Ident",
	IntLit:      "IntLit",
	FloatLit:    "FloatLit",
	StringLit:   "StringLit",
	KwClass:     "class",
	KwStruct:    "struct",
	KwEnum:      "enum",
	KwProtocol:  "protocol",
	KwExtension: "extension",
	KwActor:     "actor",
	KwInit:      "init",
	KwDeinit:    "deinit",
	KwFunc:      "func",
	KwVar:       "var",
	KwLet:       "let",
	KwImport:    "import",
	KwTypealias: "typealias",
	At:          "@",
	LParen:      "(",
	RParen:      ")",
	LBrace:      "{",
	RBrace:      "}",
	LBracket:    "[",
	RBracket:    "]",
	Colon:       ":",
	Comma:       ",",
	Dot:         ".",
	Semicolon:   ";",
	Arrow:       "->",
	Question:    "?",
	Bang:        "!",
	Assign:      "=",
	Operator:    "Operator",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Unknown"
}
