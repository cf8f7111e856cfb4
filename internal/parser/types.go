package parser

import (
	"lumen/internal/ast"
	"lumen/internal/grammar"
)

// buildType: no children → Empty; ident type* → Named.
func (b *builder) buildType(n *grammar.Node) ast.Type {
	b.want(n, grammar.RuleType, "type")
	if len(n.Children) == 0 {
		return ast.Type{Span: b.span(n), Kind: ast.TypeEmpty}
	}
	t := ast.Type{
		Span: b.span(n),
		Kind: ast.TypeNamed,
		Name: b.ident(n.Children[0]),
	}
	if len(n.Children) > 1 {
		t.Args = make([]ast.Type, 0, len(n.Children)-1)
		for _, a := range n.Children[1:] {
			t.Args = append(t.Args, b.buildType(a))
		}
	}
	return t
}

func (b *builder) buildGenerics(n *grammar.Node) *ast.Generics {
	b.want(n, grammar.RuleGenerics, "generics")
	g := &ast.Generics{Span: b.span(n), Params: make([]ast.Name, 0, len(n.Children))}
	for _, p := range n.Children {
		g.Params = append(g.Params, b.name(p))
	}
	return g
}

// where_clause: constraint+, constraint: type type+
func (b *builder) buildWhere(n *grammar.Node) *ast.WhereClause {
	b.want(n, grammar.RuleWhereClause, "where clause")
	w := &ast.WhereClause{Span: b.span(n), Constraints: make([]ast.Constraint, 0, len(n.Children))}
	for _, c := range n.Children {
		b.want(c, grammar.RuleConstraint, "where clause")
		if len(c.Children) < 2 {
			b.unexpected(c, "constraint: want subject and bounds")
		}
		con := ast.Constraint{Span: b.span(c), Subject: b.buildType(c.Children[0])}
		for _, bound := range c.Children[1:] {
			con.Bounds = append(con.Bounds, b.buildType(bound))
		}
		w.Constraints = append(w.Constraints, con)
	}
	return w
}
