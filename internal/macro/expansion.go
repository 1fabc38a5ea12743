package macro

import "abstractc/internal/ast"

// ExpansionKind tells the rewriter how to install an expansion.
type ExpansionKind uint8

const (
	// AddMembers appends synthesized declarations to the target class.
	AddMembers ExpansionKind = iota
	// ReplaceBody installs a new body into the target initializer or method.
	ReplaceBody
)

func (k ExpansionKind) String() string {
	switch k {
	case AddMembers:
		return "add-members"
	case ReplaceBody:
		return "replace-body"
	}
	return "unknown"
}

// Expansion is the result of one successful rule application.
type Expansion struct {
	Kind    ExpansionKind
	Marker  ast.Attr
	Target  *ast.Decl   // declaration carrying the marker
	Members []*ast.Decl // AddMembers
	Body    *ast.Body   // ReplaceBody
}
