package diag

import (
	"abstractc/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

// TextEdit replaces Span with NewText. OldText, when set, must match the
// current content before the edit may be applied.
type TextEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

type Fix struct {
	Title string
	Edits []TextEdit
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}

// QualifiedID returns "<domain>.<name>", e.g. "abstract.abstractOutsideClass".
func (d Diagnostic) QualifiedID() string {
	return d.Code.Domain() + "." + d.Code.Name()
}
