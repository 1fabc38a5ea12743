package token

var keywords = map[string]Kind{
	"class":     KwClass,
	"struct":    KwStruct,
	"enum":      KwEnum,
	"protocol":  KwProtocol,
	"extension": KwExtension,
	"actor":     KwActor,
	"init":      KwInit,
	"deinit":    KwDeinit,
	"func":      KwFunc,
	"var":       KwVar,
	"let":       KwLet,
	"import":    KwImport,
	"typealias": KwTypealias,
}

// LookupKeyword returns the keyword kind for ident, if any.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// IsModifier reports whether ident is a declaration modifier.
// "class" is also a modifier in "class func"; the parser handles that case.
func IsModifier(ident string) bool {
	switch ident {
	case "public", "private", "fileprivate", "internal", "open", "final",
		"override", "required", "convenience", "static", "mutating",
		"nonmutating", "lazy", "weak", "unowned", "dynamic", "indirect", "nonisolated":
		return true
	}
	return false
}
