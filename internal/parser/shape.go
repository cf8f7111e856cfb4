package parser

import (
	"fmt"
	"strings"

	"lumen/internal/grammar"
	"lumen/internal/source"
)

// ShapeError is the panic payload raised when a parse tree does not have
// the shape the builders expect. It means the grammar and the builders
// disagree; it is never a user-facing diagnostic.
type ShapeError struct {
	Rule     grammar.Rule
	Context  string
	Expected []string
	Span     source.Span
	Text     string
}

func (e *ShapeError) Error() string {
	exp := ""
	if len(e.Expected) > 0 {
		exp = " (expected " + strings.Join(e.Expected, " | ") + ")"
	}
	return fmt.Sprintf("parser: unexpected %s in %s%s at %s: %q", e.Rule, e.Context, exp, e.Span, e.Text)
}

// unexpected aborts the build with full context about the offending node.
func (b *builder) unexpected(n *grammar.Node, context string, expected ...grammar.Rule) {
	names := make([]string, 0, len(expected))
	for _, r := range expected {
		names = append(names, r.String())
	}
	panic(&ShapeError{
		Rule:     n.Rule,
		Context:  context,
		Expected: names,
		Span:     b.span(n),
		Text:     n.Text(b.file),
	})
}

// want asserts the rule of n.
func (b *builder) want(n *grammar.Node, r grammar.Rule, context string) {
	if n == nil {
		panic(&ShapeError{Rule: r, Context: context + ": missing node"})
	}
	if n.Rule != r {
		b.unexpected(n, context, r)
	}
}

// only returns the single child of n, asserting there is exactly one.
func (b *builder) only(n *grammar.Node, context string) *grammar.Node {
	if len(n.Children) != 1 {
		panic(&ShapeError{
			Rule:    n.Rule,
			Context: fmt.Sprintf("%s: want 1 child, got %d", context, len(n.Children)),
			Span:    b.span(n),
			Text:    n.Text(b.file),
		})
	}
	return n.Children[0]
}
