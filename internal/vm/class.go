package vm

import (
	"strings"

	"abstractc/internal/ast"
)

// Class is a runtime class. Its pointer is the type identity token compared
// by construction guards.
type Class struct {
	Name    string
	Parent  *Class
	Decl    *ast.Decl
	Inits   []*ast.Decl
	Methods map[string]*ast.Decl
	Fields  []*ast.Decl // stored properties (var/let members), in declaration order
}

// IsSubclassOf reports whether c is other or derives from it.
func (c *Class) IsSubclassOf(other *Class) bool {
	for k := c; k != nil; k = k.Parent {
		if k == other {
			return true
		}
	}
	return false
}

// LookupMethod resolves name dynamically, starting at c and walking up.
func (c *Class) LookupMethod(name string) (*ast.Decl, *Class) {
	for k := c; k != nil; k = k.Parent {
		if m, ok := k.Methods[name]; ok {
			return m, k
		}
	}
	return nil, nil
}

// findInit выбирает init по меткам аргументов.
func (c *Class) findInit(labels []string) *ast.Decl {
	for _, d := range c.Inits {
		if sameLabels(paramsOf(d), labels) {
			return d
		}
	}
	return nil
}

func newClass(d *ast.Decl, name string) *Class {
	c := &Class{Name: name, Decl: d, Methods: make(map[string]*ast.Decl)}
	for _, m := range d.Members {
		switch {
		case m.Kind == ast.DeclInit:
			c.Inits = append(c.Inits, m)
		case m.Kind == ast.DeclMethod:
			if !isStatic(m) {
				c.Methods[m.Name] = m
			}
		case m.Keyword == "var" || m.Keyword == "let":
			if !isStatic(m) {
				c.Fields = append(c.Fields, m)
			}
		}
	}
	return c
}

func isStatic(d *ast.Decl) bool {
	for _, mod := range d.Modifiers {
		if mod == "static" || mod == "class" {
			return true
		}
	}
	return false
}

// param is one entry of a parameter clause: `label name: Type = default`.
type param struct {
	Label   string // "" for `_`
	Name    string
	Default string
}

// paramsOf разбирает сырой текст "(a b: T, _ c: U = 1)".
func paramsOf(d *ast.Decl) []param {
	clause := strings.TrimSpace(d.Params)
	clause = strings.TrimPrefix(clause, "(")
	clause = strings.TrimSuffix(clause, ")")
	if strings.TrimSpace(clause) == "" {
		return nil
	}
	var out []param
	for _, part := range splitTopLevel(clause, ',') {
		head, def, _ := strings.Cut(part, "=")
		names, _, _ := strings.Cut(head, ":")
		fields := strings.Fields(names)
		if len(fields) == 0 {
			continue
		}
		p := param{Label: fields[0], Name: fields[len(fields)-1], Default: strings.TrimSpace(def)}
		if p.Label == "_" {
			p.Label = ""
		}
		out = append(out, p)
	}
	return out
}

// sameLabels: аргументы с умолчанием можно опустить, только с хвоста.
func sameLabels(params []param, labels []string) bool {
	if len(labels) > len(params) {
		return false
	}
	for i, p := range params {
		if i >= len(labels) {
			if p.Default == "" {
				return false
			}
			continue
		}
		if p.Label != labels[i] {
			return false
		}
	}
	return true
}

// splitTopLevel splits s at sep outside brackets and string literals.
func splitTopLevel(s string, sep byte) []string {
	var (
		out   []string
		depth int
		inStr bool
		start int
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inStr:
			if c == '\\' {
				i++
			} else if c == '"' {
				inStr = false
			}
		case c == '"':
			inStr = true
		case c == '>' && i > 0 && s[i-1] == '-':
			// "->" не закрывает угловую скобку
		case c == '(' || c == '[' || c == '{' || c == '<':
			depth++
		case c == ')' || c == ']' || c == '}' || c == '>':
			depth--
		case c == sep && depth == 0:
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return append(out, s[start:])
}
