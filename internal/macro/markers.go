package macro

import "abstractc/internal/ast"

// Marker names are matched literally, without namespaces or aliases.
const (
	MarkerAbstractClass = "abstractClass"
	MarkerAbstractInit  = "abstractInit"
	MarkerAbstract      = "abstract"
)

// IsMarker reports whether attr is one of the three expansion markers.
func IsMarker(attr ast.Attr) bool {
	if attr.Qualifier != "" {
		return false
	}
	switch attr.Name {
	case MarkerAbstractClass, MarkerAbstractInit, MarkerAbstract:
		return true
	}
	return false
}
