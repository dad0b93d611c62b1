package dompa

import (
	"errors"
)

// Fatal errors.  Only the document facade returns these.
var (
	MalformedDocumentErr = errors.New("malformed document")
	EmptyInputErr        = errors.New("empty input")
)

// Warnings.  The tokenizer and tree builder recover from these locally and
// report them through Document.Warnings.
var (
	EofErr              = errors.New("unexpected EOF")
	UnclosedTagErr      = errors.New("unclosed tag")
	EmptyContentErr     = errors.New("empty token content")
	TagMismatchErr      = errors.New("mismatched tags")
	DuplicateAttrErr    = errors.New("duplicate attribute")
	DoctypePlacementErr = errors.New("misplaced doctype")
)

// Errors returned when mutating a tree would break one of its invariants.
var (
	VoidChildErr  = errors.New("void element cannot have children")
	LeafChildErr  = errors.New("node kind cannot have children")
	AdoptErr      = errors.New("node already has a parent or would create a cycle")
	IndexErr      = errors.New("child index out of range")
	NotElementErr = errors.New("node is not an element")
	AttrNameErr   = errors.New("invalid attribute name")
)
