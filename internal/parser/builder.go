package parser

import (
	"golang.org/x/text/unicode/norm"

	"lumen/internal/ast"
	"lumen/internal/grammar"
	"lumen/internal/source"
)

// builder turns parse-tree nodes of one file into AST nodes.
// It is stateless apart from the owning file.
type builder struct {
	file *source.File
}

func (b *builder) span(n *grammar.Node) source.Span {
	return b.file.Point(n.Range)
}

// ident returns NFC-normalised identifier text so that equal names
// written with different Unicode compositions compare equal.
func (b *builder) ident(n *grammar.Node) string {
	b.want(n, grammar.RuleIdent, "identifier")
	return norm.NFC.String(n.Text(b.file))
}

func (b *builder) name(n *grammar.Node) ast.Name {
	return ast.Name{Span: b.span(n), Text: b.ident(n)}
}
