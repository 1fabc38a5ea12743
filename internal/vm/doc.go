// Package vm is a reference runtime for expanded programs.
//
// It executes a small subset of the host language: class declarations with
// single inheritance, initializer chains, dynamic method dispatch, stored
// properties, `let`/`var` bindings, assignments, string interpolation and
// print. Its purpose is to observe the runtime behavior of synthesized code:
// a guard compares the receiver's class identity with the abstract class and
// traps only on an exact match; a stub traps whenever it is reached.
package vm
