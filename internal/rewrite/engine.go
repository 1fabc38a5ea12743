package rewrite

import (
	"errors"
	"fmt"
	"slices"

	"abstractc/internal/diag"
)

var (
	// ErrConflict is returned when two edits overlap.
	ErrConflict = errors.New("rewrite: overlapping edits")
	// ErrStale is returned when an edit's OldText no longer matches the buffer.
	ErrStale = errors.New("rewrite: existing text does not match expected content")
)

// Apply returns content with all edits applied. Edit spans refer to the
// original content; insertions at the same offset keep their input order.
// Either every edit applies or none does.
func Apply(content []byte, edits []diag.TextEdit) ([]byte, error) {
	if len(edits) == 0 {
		return append([]byte(nil), content...), nil
	}
	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, func(a, b diag.TextEdit) int {
		if a.Span.Start != b.Span.Start {
			return int(a.Span.Start) - int(b.Span.Start)
		}
		// вставка перед заменой, начинающейся в той же точке
		return int(a.Span.Len()) - int(b.Span.Len())
	})
	for i := range sorted {
		for j := range i {
			if spansConflict(sorted[j], sorted[i]) {
				return nil, fmt.Errorf("%w: [%d,%d) and [%d,%d)", ErrConflict,
					sorted[j].Span.Start, sorted[j].Span.End, sorted[i].Span.Start, sorted[i].Span.End)
			}
		}
	}

	size := len(content)
	for _, e := range sorted {
		size += len(e.NewText) - int(e.Span.Len())
	}
	out := make([]byte, 0, max(size, 0))
	pos := 0
	for _, e := range sorted {
		start, end := int(e.Span.Start), int(e.Span.End)
		if start < pos || end < start || end > len(content) {
			return nil, fmt.Errorf("rewrite: edit span [%d,%d) out of range", start, end)
		}
		if e.OldText != "" && string(content[start:end]) != e.OldText {
			return nil, fmt.Errorf("%w at [%d,%d)", ErrStale, start, end)
		}
		out = append(out, content[pos:start]...)
		out = append(out, e.NewText...)
		pos = end
	}
	return append(out, content[pos:]...), nil
}

// spansConflict: полуинтервалы [Start, End). Две вставки не конфликтуют;
// вставка конфликтует с заменой, только если попадает строго внутрь неё.
func spansConflict(a, b diag.TextEdit) bool {
	aStart, aEnd := a.Span.Start, a.Span.End
	bStart, bEnd := b.Span.Start, b.Span.End
	switch {
	case aStart == aEnd && bStart == bEnd:
		return false
	case aStart == aEnd:
		return bStart < aStart && aStart < bEnd
	case bStart == bEnd:
		return aStart < bStart && bStart < aEnd
	}
	return aStart < bEnd && bStart < aEnd
}
