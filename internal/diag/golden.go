package diag

import (
	"fmt"
	"strings"

	"abstractc/internal/source"
)

// FormatShortDiagnostics renders one line per diagnostic:
// "<path>:<line>:<col>: <SEV> <name>: <message>". The order of diags is kept.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if len(diags) == 0 {
		return ""
	}
	var b strings.Builder
	for _, d := range diags {
		b.WriteString(shortLine(fs, d.Primary, fmt.Sprintf("%s %s: %s", d.Severity, d.Code.Name(), d.Message)))
		if includeNotes {
			for _, n := range d.Notes {
				b.WriteString(shortLine(fs, n.Span, "  note: "+n.Msg))
			}
		}
	}
	return b.String()
}

func shortLine(fs *source.FileSet, sp source.Span, text string) string {
	path := "<unknown>"
	var lc source.LineCol
	if fs != nil {
		if f := fs.Get(sp.File); f != nil {
			path = f.Path
			lc, _ = fs.Resolve(sp)
		}
	}
	return fmt.Sprintf("%s:%d:%d: %s\n", path, lc.Line, lc.Col, text)
}
