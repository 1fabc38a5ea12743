package macro

import (
	"fmt"

	"abstractc/internal/ast"
)

// MakeGuard builds the construction guard for className: the receiver's exact
// dynamic type is compared with className and the program traps on a match.
// Subclasses never match, even when they run the same initializer.
func MakeGuard(className string) ast.Stmt {
	return ast.Stmt{
		Kind:    ast.StmtGuard,
		Class:   className,
		Message: GuardMessage(className),
	}
}

// MakeAbstractStub builds the unconditional trap installed into abstract methods.
func MakeAbstractStub(methodName string) ast.Stmt {
	return ast.Stmt{
		Kind:    ast.StmtFatal,
		Message: StubMessage(methodName),
	}
}

func GuardMessage(className string) string {
	return fmt.Sprintf("Cannot instantiate abstract class '%s' directly", className)
}

func StubMessage(methodName string) string {
	return fmt.Sprintf("Method '%s' must be overridden in subclass", methodName)
}
