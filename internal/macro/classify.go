package macro

import "abstractc/internal/ast"

func IsClass(d *ast.Decl) bool {
	return d != nil && d.Kind == ast.DeclClass
}

func IsInitializer(d *ast.Decl) bool {
	return d != nil && d.Kind == ast.DeclInit
}

func IsMethod(d *ast.Decl) bool {
	return d != nil && d.Kind == ast.DeclMethod
}

// HasAbstractClassMarker: точное совпадение имени атрибута, @Mod.abstractClass не считается.
func HasAbstractClassMarker(class *ast.Decl) bool {
	return IsClass(class) && class.HasAttr(MarkerAbstractClass)
}

// DeclaresOwnInitializer смотрит только на прямых членов класса, не в суперклассы.
func DeclaresOwnInitializer(class *ast.Decl) bool {
	if class == nil {
		return false
	}
	for _, m := range class.Members {
		if IsInitializer(m) {
			return true
		}
	}
	return false
}

// NearestEnclosingClass returns the first Class entry of ctx (innermost first),
// or nil. Non-class entries such as structs or extensions are skipped.
func NearestEnclosingClass(ctx ast.Context) *ast.Decl {
	for _, d := range ctx {
		if IsClass(d) {
			return d
		}
	}
	return nil
}
