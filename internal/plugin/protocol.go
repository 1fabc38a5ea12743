package plugin

import (
	"abstractc/internal/diag"
	"abstractc/internal/macro"
	"abstractc/internal/rewrite"
)

// Operations understood by the server.
const (
	// OpExpandFile expands every marker of Source and returns the rewritten text.
	OpExpandFile = "expandFile"
	// OpExpandMarker expands the single marker whose '@' is at MarkerOffset.
	OpExpandMarker = "expandMarker"
	OpPing         = "ping"
	OpShutdown     = "shutdown"
)

// Request is one host call.
type Request struct {
	ID           uint64 `msgpack:"id"`
	Op           string `msgpack:"op"`
	Path         string `msgpack:"path,omitempty"`
	Source       []byte `msgpack:"source,omitempty"`
	MarkerOffset uint32 `msgpack:"marker_offset,omitempty"`
}

// Diagnostic is a diag.Diagnostic with byte offsets into the request source.
type Diagnostic struct {
	ID       string `msgpack:"id"` // abstract.<name>
	Code     string `msgpack:"code"`
	Severity string `msgpack:"severity"`
	Message  string `msgpack:"message"`
	Start    uint32 `msgpack:"start"`
	End      uint32 `msgpack:"end"`
}

// Expansion is a macro.Expansion rendered in the host surface syntax.
type Expansion struct {
	Kind        string   `msgpack:"kind"` // add-members | replace-body
	Marker      string   `msgpack:"marker"`
	Target      string   `msgpack:"target"`
	TargetStart uint32   `msgpack:"target_start"`
	TargetEnd   uint32   `msgpack:"target_end"`
	Members     []string `msgpack:"members,omitempty"`
	Body        string   `msgpack:"body,omitempty"`
}

// Response answers the Request with the same ID. Error is set for protocol
// level failures only; rule violations travel as Diagnostics.
type Response struct {
	ID          uint64       `msgpack:"id"`
	Expansions  []Expansion  `msgpack:"expansions,omitempty"`
	Diagnostics []Diagnostic `msgpack:"diagnostics,omitempty"`
	Output      []byte       `msgpack:"output,omitempty"`
	Error       string       `msgpack:"error,omitempty"`
}

func toWireDiagnostics(items []diag.Diagnostic) []Diagnostic {
	out := make([]Diagnostic, 0, len(items))
	for _, d := range items {
		out = append(out, Diagnostic{
			ID:       d.QualifiedID(),
			Code:     d.Code.ID(),
			Severity: d.Severity.String(),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		})
	}
	return out
}

func toWireExpansion(e macro.Expansion) Expansion {
	w := Expansion{
		Kind:        e.Kind.String(),
		Marker:      e.Marker.Name,
		Target:      e.Target.Name,
		TargetStart: e.Target.Span.Start,
		TargetEnd:   e.Target.Span.End,
	}
	for _, m := range e.Members {
		w.Members = append(w.Members, rewrite.RenderInit(m, ""))
	}
	if e.Body != nil {
		w.Body = rewrite.RenderBody(e.Body, "")
	}
	return w
}
