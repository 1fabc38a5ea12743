// Package rewrite installs macro expansions into a tree or into source text.
//
// ApplyTree works on a deep copy and never touches the parsed input. Source
// emission goes through text edits: original code is copied byte-for-byte and
// only synthesized statements are rendered, so the output keeps the author's
// formatting around every untouched declaration.
package rewrite
