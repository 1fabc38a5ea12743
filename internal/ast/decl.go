package ast

import "abstractc/internal/source"

// DeclKind is the tag of a declaration node.
type DeclKind uint8

const (
	DeclOther DeclKind = iota
	DeclClass
	DeclInit
	DeclMethod
)

func (k DeclKind) String() string {
	switch k {
	case DeclClass:
		return "class"
	case DeclInit:
		return "init"
	case DeclMethod:
		return "method"
	}
	return "other"
}

// Decl is a declaration node. Fields not relevant for a kind stay zero.
type Decl struct {
	Kind      DeclKind
	Keyword   string // class, struct, enum, var, let, import ...; empty for top-level statements
	Name      string
	Attrs     []Attr
	Modifiers []string
	Params    string   // raw parameter clause of init/func, parens included
	Inherits  []string // inheritance clause; for classes the first entry is the parent
	Members   []*Decl
	Body      *Body
	Text      string // source text of Other declarations and statements

	Span        source.Span // attributes through the end of the declaration
	HeaderEnd   uint32      // offset right after the signature, where a body would start
	MembersSpan source.Span // '{' .. '}' of a type body
}

// HasAttr reports whether an attribute with the exact unqualified name is present.
func (d *Decl) HasAttr(name string) bool {
	for _, a := range d.Attrs {
		if a.Qualifier == "" && a.Name == name {
			return true
		}
	}
	return false
}

// Parent returns the superclass name of a class, if it names one.
func (d *Decl) Parent() string {
	if d.Kind != DeclClass || len(d.Inherits) == 0 {
		return ""
	}
	return d.Inherits[0]
}

// Clone deep-copies the declaration subtree.
func (d *Decl) Clone() *Decl {
	if d == nil {
		return nil
	}
	out := *d
	out.Attrs = append([]Attr(nil), d.Attrs...)
	out.Modifiers = append([]string(nil), d.Modifiers...)
	out.Inherits = append([]string(nil), d.Inherits...)
	out.Body = d.Body.Clone()
	if d.Members != nil {
		out.Members = make([]*Decl, len(d.Members))
		for i, m := range d.Members {
			out.Members[i] = m.Clone()
		}
	}
	return &out
}

// File is a parsed source file.
type File struct {
	ID    source.FileID
	Path  string
	Decls []*Decl
}

// Clone deep-copies the file.
func (f *File) Clone() *File {
	out := &File{ID: f.ID, Path: f.Path, Decls: make([]*Decl, len(f.Decls))}
	for i, d := range f.Decls {
		out.Decls[i] = d.Clone()
	}
	return out
}
