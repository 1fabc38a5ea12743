package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"abstractc/internal/diag"
	"abstractc/internal/source"
)

type palette struct {
	err, warn, info *color.Color
	path, gutter    *color.Color
	caret, note     *color.Color
	added, removed  *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:     mk(color.FgRed, color.Bold),
		warn:    mk(color.FgYellow, color.Bold),
		info:    mk(color.FgCyan, color.Bold),
		path:    mk(color.Bold),
		gutter:  mk(color.FgBlue),
		caret:   mk(color.FgRed, color.Bold),
		note:    mk(color.FgCyan),
		added:   mk(color.FgGreen),
		removed: mk(color.FgRed),
	}
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид, в порядке bag.Items():
//
//	<path>:<line>:<col>: <SEV> <CODE> [<id>]: <Message>
//
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes и Fixes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		file := fs.Get(d.Primary.File)
		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s: %s %s [%s]: %s\n",
			p.path.Sprintf("%s:%d:%d", displayPath(file, fs, opts.PathMode), start.Line, start.Col),
			p.severity(d.Severity).Sprint(d.Severity.String()),
			d.Code.ID(),
			d.QualifiedID(),
			d.Message,
		)
		if file != nil {
			writeSnippet(w, p, fs, file, d.Primary, opts)
		}
		if opts.ShowNotes {
			for _, n := range d.Notes {
				nf := fs.Get(n.Span.File)
				pos, _ := fs.Resolve(n.Span)
				fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", p.note.Sprint("note:"), displayPath(nf, fs, opts.PathMode), pos.Line, pos.Col, n.Msg)
			}
		}
		if opts.ShowFixes {
			for _, fix := range d.Fixes {
				fmt.Fprintf(w, "  %s %s\n", p.note.Sprint("fix:"), fix.Title)
				if !opts.ShowPreview {
					continue
				}
				for _, edit := range fix.Edits {
					preview, err := buildFixEditPreview(fs, edit)
					if err != nil {
						continue
					}
					for _, l := range preview.before {
						fmt.Fprintf(w, "    %s\n", p.removed.Sprint("- "+l))
					}
					for _, l := range preview.after {
						fmt.Fprintf(w, "    %s\n", p.added.Sprint("+ "+l))
					}
				}
			}
		}
	}
}

// writeSnippet печатает строку span с Context строками выше и подчёркивание под ней.
// Многострочный span подчёркивается до конца первой строки.
func writeSnippet(w io.Writer, p palette, fs *source.FileSet, file *source.File, span source.Span, opts PrettyOpts) {
	start, end := fs.Resolve(span)
	if start.Line == 0 {
		return
	}
	first := start.Line
	if opts.Context > 0 {
		first = uint32(max(1, int(start.Line)-int(opts.Context))) // #nosec G115
	}
	digits := len(strconv.FormatUint(uint64(start.Line), 10))
	for ln := first; ln <= start.Line; ln++ {
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", digits, ln), clip(file.GetLine(ln), opts.Width))
	}

	line := file.GetLine(start.Line)
	col := min(int(start.Col)-1, len(line))
	stop := len(line)
	if end.Line == start.Line {
		stop = min(int(end.Col)-1, len(line))
	}
	width := max(runewidth.StringWidth(line[col:max(col, stop)]), 1)
	fmt.Fprintf(w, "%s %s%s\n",
		p.gutter.Sprintf("%*s |", digits, ""),
		caretPadding(line[:col]),
		p.caret.Sprint("^"+strings.Repeat("~", width-1)),
	)
}

// caretPadding keeps tabs and replaces everything else by its display width in spaces.
func caretPadding(prefix string) string {
	var b strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return b.String()
}

func clip(line string, width uint8) string {
	if width == 0 || runewidth.StringWidth(line) <= int(width) {
		return line
	}
	return runewidth.Truncate(line, int(width), "...")
}

// Short пишет по строке на диагностику, в формате diag.FormatShortDiagnostics.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, includeNotes bool) error {
	_, err := io.WriteString(w, diag.FormatShortDiagnostics(bag.Items(), fs, includeNotes))
	return err
}
