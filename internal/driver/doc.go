// Package driver runs the expansion pipeline (parse, expand, rewrite) over
// single files and whole directories, with an optional on-disk result cache.
package driver
