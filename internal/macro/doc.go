// Package macro implements the abstract-class expansion rules.
//
// Three markers drive the rewrite:
//
//	@abstractClass  on a class        -> guarded zero-argument init, unless the class has its own
//	@abstractInit   on an initializer -> guard prepended to the original body
//	@abstract       on a method       -> body replaced by an unconditional fatal stub
//
// Rules are pure functions of (declaration, lexical context, marker). They never
// mutate the tree: results are returned as Expansion values and applied by
// package rewrite. Misuse is reported through diag.Reporter at the marker's span
// and yields an empty result for that declaration only.
package macro
