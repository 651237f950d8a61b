// Package model defines core data structures for srctags.
package model

// Kind describes one definition kind a language can produce. Each language
// declares a closed table of kinds; the set is not extensible at runtime.
type Kind struct {
	Letter byte   // single-character code used in ctags output
	Name   string // singular label, e.g. "function"
	Plural string // plural label, e.g. "functions"
}

// Tag represents a single definition extracted from source code.
// Scope is the dot-joined path of enclosing named scopes, outermost first,
// or "" for a top-level definition.
type Tag struct {
	Name  string
	Kind  Kind
	Scope string
	Line  int
	File  string
}

// FileInfo holds the extracted tags for a single source file.
type FileInfo struct {
	Path     string
	Language string
	Tags     []Tag
}
