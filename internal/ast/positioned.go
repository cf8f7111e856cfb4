package ast

import (
	"lumen/internal/source"
)

// Positioned pairs an AST node with the span it was parsed from.
type Positioned[T any] struct {
	Span source.Span
	Node T
}

// At wraps node with span.
func At[T any](span source.Span, node T) Positioned[T] {
	return Positioned[T]{Span: span, Node: node}
}

// Name is an identifier occurrence in a declaration.
type Name struct {
	Span source.Span
	Text string
}

func (n Name) String() string { return n.Text }
