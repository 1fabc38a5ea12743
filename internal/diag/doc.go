// Package diag defines the diagnostic model shared by every phase: the lexer,
// the parser and the marker expansion rules.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error. Expansion rules only emit Error.
//   - Code – numeric identifier with a stable ID() ("MAC3005") and, for
//     expansion diagnostics, a symbolic Name() ("abstractOutsideClass") that
//     hosts match on. Domain() namespaces the name ("abstract").
//   - Message – short human oriented text.
//   - Primary – span of the offending attribute (or token).
//   - Notes / Fixes – optional context and text-edit suggestions.
//
// # Emitting diagnostics
//
// Producers talk to a Reporter and never to storage. BagReporter collects
// into a Bag; DedupReporter and MultiReporter compose. ReportBuilder offers
// the chained WithNote / WithFix / Emit style.
//
// Package diag performs no formatting beyond FormatShortDiagnostics; rendering
// lives in internal/diagfmt.
package diag
