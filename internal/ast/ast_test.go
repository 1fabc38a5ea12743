package ast

import "testing"

func TestContextPushKeepsParent(t *testing.T) {
	outer := &Decl{Kind: DeclClass, Name: "Outer"}
	inner := &Decl{Kind: DeclClass, Name: "Inner"}
	base := Context{}.Push(outer)
	a := base.Push(inner)
	b := base.Push(&Decl{Name: "Other"})

	if a.Innermost() != inner || b.Innermost().Name != "Other" {
		t.Fatalf("unexpected innermost: %v / %v", a.Innermost().Name, b.Innermost().Name)
	}
	if len(base) != 1 || base[0] != outer {
		t.Fatalf("base context mutated: %v", base)
	}
	if (Context{}).Innermost() != nil {
		t.Errorf("empty context must have no innermost")
	}
}

func TestWalkOrderAndContext(t *testing.T) {
	m := &Decl{Kind: DeclMethod, Name: "start"}
	cls := &Decl{Kind: DeclClass, Name: "Vehicle", Members: []*Decl{m}}
	var names []string
	var methodCtx Context
	Walk([]*Decl{cls, {Name: "top"}}, nil, func(d *Decl, ctx Context) bool {
		names = append(names, d.Name)
		if d == m {
			methodCtx = ctx
		}
		return true
	})
	if got := len(names); got != 3 || names[0] != "Vehicle" || names[1] != "start" || names[2] != "top" {
		t.Fatalf("order = %v", names)
	}
	if methodCtx.Innermost() != cls {
		t.Errorf("method context = %v", methodCtx)
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := &Decl{
		Kind:    DeclClass,
		Name:    "A",
		Attrs:   []Attr{{Name: "abstractClass"}},
		Members: []*Decl{{Kind: DeclInit, Name: "init", Body: &Body{Stmts: []Stmt{{Kind: StmtRaw, Text: "x = 1"}}}}},
	}
	cp := orig.Clone()
	cp.Members[0].Body.Stmts[0].Text = "changed"
	cp.Attrs[0].Name = "changed"
	if orig.Members[0].Body.Stmts[0].Text != "x = 1" || orig.Attrs[0].Name != "abstractClass" {
		t.Fatalf("clone shares storage with original")
	}
}

func TestHasAttrIgnoresQualified(t *testing.T) {
	d := &Decl{Attrs: []Attr{{Name: "abstractClass", Qualifier: "Kit"}}}
	if d.HasAttr("abstractClass") {
		t.Errorf("qualified attribute must not match")
	}
	d.Attrs = append(d.Attrs, Attr{Name: "abstractClass"})
	if !d.HasAttr("abstractClass") {
		t.Errorf("plain attribute must match")
	}
}
