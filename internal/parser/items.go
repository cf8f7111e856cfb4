package parser

import (
	"lumen/internal/ast"
	"lumen/internal/grammar"
)

func (b *builder) buildFile(n *grammar.Node) *ast.File {
	b.want(n, grammar.RuleModule, "module")
	f := &ast.File{
		Span:  b.span(n),
		Ref:   b.file.Ref,
		Items: make([]ast.Item, 0, len(n.Children)),
	}
	for _, it := range n.Children {
		f.Items = append(f.Items, b.buildItem(it))
	}
	return f
}

func (b *builder) buildItem(n *grammar.Node) ast.Item {
	switch n.Rule {
	case grammar.RuleModDecl:
		return b.buildModDecl(n)
	case grammar.RuleFnDef:
		return b.buildFnDef(n)
	case grammar.RuleTraitDef:
		return b.buildTraitDef(n)
	case grammar.RuleImpl:
		return b.buildImpl(n)
	default:
		b.unexpected(n, "module item", grammar.RuleModDecl, grammar.RuleFnDef, grammar.RuleTraitDef, grammar.RuleImpl)
		return nil
	}
}

// children is a small cursor over a node's children for optional-slot rules.
type children struct {
	nodes []*grammar.Node
	pos   int
}

func (c *children) peek(r grammar.Rule) (*grammar.Node, bool) {
	if c.pos < len(c.nodes) && c.nodes[c.pos].Rule == r {
		n := c.nodes[c.pos]
		c.pos++
		return n, true
	}
	return nil, false
}

func (c *children) rest() []*grammar.Node {
	out := c.nodes[c.pos:]
	c.pos = len(c.nodes)
	return out
}

func (b *builder) expectChild(c *children, parent *grammar.Node, r grammar.Rule, context string) *grammar.Node {
	n, ok := c.peek(r)
	if !ok {
		if c.pos < len(c.nodes) {
			b.unexpected(c.nodes[c.pos], context, r)
		}
		b.unexpected(parent, context+": missing "+r.String(), r)
	}
	return n
}

// mod_decl: pub? ident
func (b *builder) buildModDecl(n *grammar.Node) *ast.ModDecl {
	c := &children{nodes: n.Children}
	_, pub := c.peek(grammar.RulePub)
	d := &ast.ModDecl{
		Span:   b.span(n),
		Public: pub,
		Name:   b.name(b.expectChild(c, n, grammar.RuleIdent, "mod declaration")),
	}
	if len(c.rest()) != 0 {
		b.unexpected(n, "mod declaration: trailing children")
	}
	return d
}

// buildFnHeader: pub? ident generics? args type? where_clause?
// The remaining children (the body, if any) are left in c.
func (b *builder) buildFnHeader(n *grammar.Node, c *children) ast.FnSig {
	_, pub := c.peek(grammar.RulePub)
	sig := ast.FnSig{
		Span:   b.span(n),
		Public: pub,
		Name:   b.name(b.expectChild(c, n, grammar.RuleIdent, "function")),
	}
	if g, ok := c.peek(grammar.RuleGenerics); ok {
		sig.Generics = b.buildGenerics(g)
	}
	args := b.expectChild(c, n, grammar.RuleArgs, "function")
	sig.Args = b.buildArgs(args)
	if t, ok := c.peek(grammar.RuleType); ok {
		sig.Ret = b.buildType(t)
	} else {
		sig.Ret = ast.Type{Span: sig.Name.Span, Kind: ast.TypeEmpty}
	}
	if w, ok := c.peek(grammar.RuleWhereClause); ok {
		sig.Where = b.buildWhere(w)
	}
	return sig
}

func (b *builder) buildFnDef(n *grammar.Node) *ast.FnDef {
	b.want(n, grammar.RuleFnDef, "function definition")
	c := &children{nodes: n.Children}
	sig := b.buildFnHeader(n, c)
	body := b.expectChild(c, n, grammar.RuleBlock, "function body")
	if len(c.rest()) != 0 {
		b.unexpected(n, "function definition: trailing children")
	}
	return &ast.FnDef{FnSig: sig, Body: b.buildBlock(body)}
}

func (b *builder) buildFnSig(n *grammar.Node) *ast.FnSig {
	b.want(n, grammar.RuleFnSig, "function signature")
	c := &children{nodes: n.Children}
	sig := b.buildFnHeader(n, c)
	if len(c.rest()) != 0 {
		b.unexpected(n, "function signature: trailing children")
	}
	return &sig
}

func (b *builder) buildArgs(n *grammar.Node) []ast.Arg {
	out := make([]ast.Arg, 0, len(n.Children))
	for _, a := range n.Children {
		b.want(a, grammar.RuleArg, "argument list")
		if len(a.Children) != 2 {
			b.unexpected(a, "argument: want ident and type")
		}
		out = append(out, ast.Arg{
			Span: b.span(a),
			Name: b.name(a.Children[0]),
			Type: b.buildType(a.Children[1]),
		})
	}
	return out
}

// trait_def: pub? ident generics? where_clause? (assoc_type | fn_def | fn_sig)*
func (b *builder) buildTraitDef(n *grammar.Node) *ast.TraitDef {
	c := &children{nodes: n.Children}
	_, pub := c.peek(grammar.RulePub)
	t := &ast.TraitDef{
		Span:   b.span(n),
		Public: pub,
		Name:   b.name(b.expectChild(c, n, grammar.RuleIdent, "trait")),
	}
	if g, ok := c.peek(grammar.RuleGenerics); ok {
		t.Generics = b.buildGenerics(g)
	}
	if w, ok := c.peek(grammar.RuleWhereClause); ok {
		t.Where = b.buildWhere(w)
	}
	for _, member := range c.rest() {
		switch member.Rule {
		case grammar.RuleAssocType:
			t.AssocTypes = append(t.AssocTypes, b.buildAssocType(member))
		case grammar.RuleFnDef:
			t.Methods = append(t.Methods, b.buildFnDef(member))
		case grammar.RuleFnSig:
			t.Signatures = append(t.Signatures, b.buildFnSig(member))
		default:
			b.unexpected(member, "trait body", grammar.RuleAssocType, grammar.RuleFnDef, grammar.RuleFnSig)
		}
	}
	return t
}

// assoc_type: ident generics? type*
func (b *builder) buildAssocType(n *grammar.Node) *ast.AssocType {
	c := &children{nodes: n.Children}
	at := &ast.AssocType{
		Span: b.span(n),
		Name: b.name(b.expectChild(c, n, grammar.RuleIdent, "associated type")),
	}
	if g, ok := c.peek(grammar.RuleGenerics); ok {
		at.Generics = b.buildGenerics(g)
	}
	for _, bound := range c.rest() {
		at.Bounds = append(at.Bounds, b.buildType(bound))
	}
	return at
}

// impl: generics? trait_ref? type where_clause? (assoc_binding | fn_def)*
// Trait and inherent impls share this builder; a trait reference turns the
// inherent form into a trait implementation.
func (b *builder) buildImpl(n *grammar.Node) ast.Item {
	c := &children{nodes: n.Children}
	impl := &ast.InherentImpl{Span: b.span(n)}
	if g, ok := c.peek(grammar.RuleGenerics); ok {
		impl.Generics = b.buildGenerics(g)
	}
	ref, hasTrait := c.peek(grammar.RuleTraitRef)
	impl.Target = b.buildType(b.expectChild(c, n, grammar.RuleType, "impl target"))
	if w, ok := c.peek(grammar.RuleWhereClause); ok {
		impl.Where = b.buildWhere(w)
	}
	for _, member := range c.rest() {
		switch member.Rule {
		case grammar.RuleAssocBinding:
			impl.Bindings = append(impl.Bindings, b.buildAssocBinding(member))
		case grammar.RuleFnDef:
			impl.Methods = append(impl.Methods, b.buildFnDef(member))
		default:
			b.unexpected(member, "impl body", grammar.RuleAssocBinding, grammar.RuleFnDef)
		}
	}
	if hasTrait {
		return impl.WithTrait(b.buildType(b.only(ref, "trait reference")))
	}
	return impl
}

// assoc_binding: ident generics? type
func (b *builder) buildAssocBinding(n *grammar.Node) *ast.AssocBinding {
	c := &children{nodes: n.Children}
	ab := &ast.AssocBinding{
		Span: b.span(n),
		Name: b.name(b.expectChild(c, n, grammar.RuleIdent, "associated type binding")),
	}
	if g, ok := c.peek(grammar.RuleGenerics); ok {
		ab.Generics = b.buildGenerics(g)
	}
	ab.Value = b.buildType(b.expectChild(c, n, grammar.RuleType, "associated type binding"))
	if len(c.rest()) != 0 {
		b.unexpected(n, "associated type binding: trailing children")
	}
	return ab
}
