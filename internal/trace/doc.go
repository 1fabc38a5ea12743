// Package trace records phase spans of the abstractc pipeline.
//
//	abstractc expand --trace=- --trace-level=detail src/
//
// Levels gate scopes: phase shows driver and pass spans, detail adds per-file
// spans, debug adds per-declaration expansion spans. Tracers travel through
// context.Context:
//
//	ctx = trace.WithTracer(ctx, tr)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
//	defer span.End("")
package trace
