package grammar

import (
	"fmt"
	"slices"

	"lumen/internal/lexer"
	"lumen/internal/source"
	"lumen/internal/token"
)

// Parse runs the grammar from the given start rule over the whole file.
// Supported start rules: RuleModule, RuleExpr, RuleType, RuleBlock.
// On rejection it returns a *SyntaxError for the first failure.
func Parse(file *source.File, start Rule) (*Node, error) {
	p := newParser(file)
	if p.err != nil {
		return nil, p.err
	}

	var n *Node
	switch start {
	case RuleModule:
		n = p.parseModule()
	case RuleExpr:
		n = p.parseExpr()
	case RuleType:
		n = p.parseType()
	case RuleBlock:
		n = p.parseBlock()
	default:
		return nil, fmt.Errorf("grammar: unsupported start rule %s", start)
	}
	if p.err == nil && !p.at(token.EOF) {
		p.fail("end of file")
	}
	if p.err != nil {
		return nil, p.err
	}
	return n, nil
}

type lexReporter struct {
	first *source.Range
	msg   string
}

func (r *lexReporter) Report(rng source.Range, msg string) {
	if r.first == nil {
		r.first = &rng
		r.msg = msg
	}
}

// parser — рекурсивный спуск по заранее собранному потоку токенов.
// Первая ошибка останавливает разбор: все parseX возвращают nil после неё.
type parser struct {
	file    *source.File
	toks    []token.Token
	pos     int
	lastEnd uint32
	err     *SyntaxError
}

func newParser(file *source.File) *parser {
	rep := &lexReporter{}
	lx := lexer.New(file, lexer.Options{Reporter: rep})
	p := &parser{file: file}
	for {
		tok := lx.Next()
		p.toks = append(p.toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	if rep.first != nil {
		p.err = &SyntaxError{
			Range: *rep.first,
			Span:  file.Point(*rep.first),
			Found: file.Text(*rep.first),
			Msg:   rep.msg,
		}
	}
	return p
}

func (p *parser) peek() token.Token { return p.toks[p.pos] }

func (p *parser) peekAt(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *parser) at(k token.Kind) bool { return p.peek().Kind == k }

func (p *parser) atAny(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

func (p *parser) advance() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
		p.lastEnd = tok.Range.End
	}
	return tok
}

// fail records a syntax error at the current token. Only the first one is kept.
func (p *parser) fail(expected ...string) {
	if p.err != nil {
		return
	}
	tok := p.peek()
	found := "end of file"
	if tok.Kind != token.EOF {
		found = fmt.Sprintf("%q", tok.Text)
	}
	p.err = &SyntaxError{
		Range:    tok.Range,
		Span:     p.file.Point(tok.Range),
		Expected: expected,
		Found:    found,
	}
}

func (p *parser) expect(k token.Kind, what string) bool {
	if p.err != nil {
		return false
	}
	if !p.at(k) {
		p.fail(what)
		return false
	}
	p.advance()
	return true
}

// open/close build a node spanning from the current token to the last consumed one.
func (p *parser) open(r Rule) *Node {
	return &Node{Rule: r, Range: source.Range{Start: p.peek().Range.Start}}
}

func (p *parser) close(n *Node) *Node {
	if p.err != nil {
		return nil
	}
	n.Range.End = max(p.lastEnd, n.Range.Start)
	return n
}

func (p *parser) leaf(r Rule) *Node {
	tok := p.advance()
	return &Node{Rule: r, Range: tok.Range}
}

func (p *parser) add(parent, child *Node) {
	if child != nil {
		parent.Children = append(parent.Children, child)
	}
}

func (p *parser) parseIdent() *Node {
	if p.err != nil {
		return nil
	}
	if !p.at(token.Ident) {
		p.fail("identifier")
		return nil
	}
	return p.leaf(RuleIdent)
}

// ===== Items =====

func (p *parser) parseModule() *Node {
	n := p.open(RuleModule)
	for p.err == nil && !p.at(token.EOF) {
		p.add(n, p.parseItem())
	}
	return p.close(n)
}

func (p *parser) parseItem() *Node {
	kind := p.peek().Kind
	if kind == token.KwPub {
		kind = p.peekAt(1).Kind
	}
	switch kind {
	case token.KwMod:
		return p.parseModDecl()
	case token.KwFn:
		return p.parseFn(false)
	case token.KwTrait:
		return p.parseTraitDef()
	case token.KwImpl:
		if p.at(token.KwPub) {
			p.advance()
			p.fail("mod", "fn", "trait")
			return nil
		}
		return p.parseImpl()
	default:
		if p.at(token.KwPub) {
			p.advance()
			p.fail("mod", "fn", "trait")
			return nil
		}
		p.fail("mod", "fn", "trait", "impl")
		return nil
	}
}

func (p *parser) parsePub(n *Node) {
	if p.at(token.KwPub) {
		p.add(n, p.leaf(RulePub))
	}
}

func (p *parser) parseModDecl() *Node {
	n := p.open(RuleModDecl)
	p.parsePub(n)
	p.expect(token.KwMod, "mod")
	p.add(n, p.parseIdent())
	p.expect(token.Semicolon, ";")
	return p.close(n)
}

// parseFn handles fn_def and, when allowSig is set, the bodiless fn_sig form.
func (p *parser) parseFn(allowSig bool) *Node {
	n := p.open(RuleFnDef)
	p.parsePub(n)
	p.expect(token.KwFn, "fn")
	p.add(n, p.parseIdent())
	if p.at(token.Lt) {
		p.add(n, p.parseGenerics())
	}
	p.add(n, p.parseArgs())
	if p.err == nil && p.at(token.Arrow) {
		p.advance()
		p.add(n, p.parseType())
	}
	if p.err == nil && p.at(token.KwWhere) {
		p.add(n, p.parseWhereClause())
	}
	if p.err != nil {
		return nil
	}
	if allowSig && p.at(token.Semicolon) {
		p.advance()
		n.Rule = RuleFnSig
		return p.close(n)
	}
	if !p.at(token.LBrace) {
		if allowSig {
			p.fail("{", ";")
		} else {
			p.fail("{")
		}
		return nil
	}
	p.add(n, p.parseBlock())
	return p.close(n)
}

func (p *parser) parseArgs() *Node {
	if !p.expect(token.LParen, "(") {
		return nil
	}
	n := p.open(RuleArgs)
	for p.err == nil && !p.at(token.RParen) {
		arg := p.open(RuleArg)
		p.add(arg, p.parseIdent())
		p.expect(token.Colon, ":")
		p.add(arg, p.parseType())
		p.add(n, p.close(arg))
		if p.err != nil || !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	n = p.close(n)
	if !p.expect(token.RParen, ")") {
		return nil
	}
	return n
}

func (p *parser) parseGenerics() *Node {
	n := p.open(RuleGenerics)
	p.expect(token.Lt, "<")
	p.add(n, p.parseIdent())
	for p.err == nil && p.at(token.Comma) {
		p.advance()
		if p.at(token.Gt) {
			break
		}
		p.add(n, p.parseIdent())
	}
	p.expect(token.Gt, ">")
	return p.close(n)
}

func (p *parser) parseWhereClause() *Node {
	n := p.open(RuleWhereClause)
	p.expect(token.KwWhere, "where")
	p.add(n, p.parseConstraint())
	for p.err == nil && p.at(token.Comma) {
		p.advance()
		if !p.atAny(token.Ident, token.LParen) {
			break
		}
		p.add(n, p.parseConstraint())
	}
	return p.close(n)
}

func (p *parser) parseConstraint() *Node {
	n := p.open(RuleConstraint)
	p.add(n, p.parseType())
	p.expect(token.Colon, ":")
	p.parseBounds(n)
	return p.close(n)
}

// parseBounds: bound ("+" bound)*
func (p *parser) parseBounds(n *Node) {
	p.add(n, p.parseType())
	for p.err == nil && p.at(token.Plus) {
		p.advance()
		p.add(n, p.parseType())
	}
}

func (p *parser) parseTraitDef() *Node {
	n := p.open(RuleTraitDef)
	p.parsePub(n)
	p.expect(token.KwTrait, "trait")
	p.add(n, p.parseIdent())
	if p.err == nil && p.at(token.Lt) {
		p.add(n, p.parseGenerics())
	}
	if p.err == nil && p.at(token.KwWhere) {
		p.add(n, p.parseWhereClause())
	}
	p.expect(token.LBrace, "{")
	for p.err == nil && !p.at(token.RBrace) {
		switch {
		case p.at(token.KwType):
			p.add(n, p.parseAssocType())
		case p.at(token.KwFn), p.at(token.KwPub) && p.peekAt(1).Kind == token.KwFn:
			p.add(n, p.parseFn(true))
		default:
			p.fail("type", "fn", "}")
		}
	}
	p.expect(token.RBrace, "}")
	return p.close(n)
}

func (p *parser) parseAssocType() *Node {
	n := p.open(RuleAssocType)
	p.expect(token.KwType, "type")
	p.add(n, p.parseIdent())
	if p.err == nil && p.at(token.Lt) {
		p.add(n, p.parseGenerics())
	}
	if p.err == nil && p.at(token.Colon) {
		p.advance()
		p.parseBounds(n)
	}
	p.expect(token.Semicolon, ";")
	return p.close(n)
}

// parseImpl: "impl" generics? (trait_ref "for")? type where_clause? "{" ... "}"
func (p *parser) parseImpl() *Node {
	n := p.open(RuleImpl)
	p.expect(token.KwImpl, "impl")
	if p.err == nil && p.at(token.Lt) {
		p.add(n, p.parseGenerics())
	}
	ref := p.open(RuleTraitRef)
	first := p.parseType()
	if p.err == nil && p.at(token.KwFor) {
		p.advance()
		ref.Children = []*Node{first}
		ref.Range.End = first.Range.End
		p.add(n, ref)
		p.add(n, p.parseType())
	} else {
		p.add(n, first)
	}
	if p.err == nil && p.at(token.KwWhere) {
		p.add(n, p.parseWhereClause())
	}
	p.expect(token.LBrace, "{")
	for p.err == nil && !p.at(token.RBrace) {
		switch {
		case p.at(token.KwType):
			p.add(n, p.parseAssocBinding())
		case p.at(token.KwFn), p.at(token.KwPub) && p.peekAt(1).Kind == token.KwFn:
			p.add(n, p.parseFn(false))
		default:
			p.fail("type", "fn", "}")
		}
	}
	p.expect(token.RBrace, "}")
	return p.close(n)
}

func (p *parser) parseAssocBinding() *Node {
	n := p.open(RuleAssocBinding)
	p.expect(token.KwType, "type")
	p.add(n, p.parseIdent())
	if p.err == nil && p.at(token.Lt) {
		p.add(n, p.parseGenerics())
	}
	p.expect(token.Assign, "=")
	p.add(n, p.parseType())
	p.expect(token.Semicolon, ";")
	return p.close(n)
}

// parseType: "(" ")" | ident ("<" type ("," type)* ">")?
func (p *parser) parseType() *Node {
	if p.err != nil {
		return nil
	}
	n := p.open(RuleType)
	switch {
	case p.at(token.LParen):
		p.advance()
		p.expect(token.RParen, ")")
	case p.at(token.Ident):
		p.add(n, p.parseIdent())
		if p.at(token.Lt) {
			p.advance()
			p.add(n, p.parseType())
			for p.err == nil && p.at(token.Comma) {
				p.advance()
				if p.at(token.Gt) {
					break
				}
				p.add(n, p.parseType())
			}
			p.expect(token.Gt, ">")
		}
	default:
		p.fail("type")
	}
	return p.close(n)
}

// ===== Blocks and expressions =====

func (p *parser) parseBlock() *Node {
	if p.err != nil {
		return nil
	}
	n := p.open(RuleBlock)
	p.expect(token.LBrace, "{")
	for p.err == nil && !p.at(token.RBrace) {
		st := p.open(RuleStatement)
		p.add(st, p.parseExpr())
		if p.err != nil {
			break
		}
		switch {
		case p.at(token.Semicolon):
			p.advance()
			st.Rule = RuleNonReturningStatement
		case p.at(token.RBrace):
			// хвостовое выражение блока
		default:
			p.fail(";", "}")
		}
		p.add(n, p.close(st))
	}
	p.expect(token.RBrace, "}")
	return p.close(n)
}

func binopRule(k token.Kind) (Rule, bool) {
	switch k {
	case token.Plus:
		return RuleAdd, true
	case token.Minus:
		return RuleSubtract, true
	case token.Star:
		return RuleMultiply, true
	case token.Slash:
		return RuleDivide, true
	case token.Caret:
		return RulePower, true
	default:
		return 0, false
	}
}

// parseExpr produces a flat expr node: term (op term)*.
// Precedence is applied later by the expression builder.
func (p *parser) parseExpr() *Node {
	if p.err != nil {
		return nil
	}
	n := p.open(RuleExpr)
	p.add(n, p.parseTerm())
	for p.err == nil {
		r, ok := binopRule(p.peek().Kind)
		if !ok {
			break
		}
		p.add(n, p.leaf(r))
		p.add(n, p.parseTerm())
	}
	return p.close(n)
}

func (p *parser) parseTerm() *Node {
	if p.err != nil {
		return nil
	}
	n := p.open(RuleTerm)
	for p.at(token.Bang) {
		u := p.open(RuleUnary)
		p.add(u, p.leaf(RuleNot))
		p.add(n, p.close(u))
	}
	if p.at(token.LParen) {
		paren := p.open(RuleParen)
		p.advance()
		p.add(paren, p.parseExpr())
		p.expect(token.RParen, ")")
		p.add(n, p.close(paren))
	} else {
		p.add(n, p.parseValue())
	}
	for p.err == nil && p.at(token.LParen) {
		p.add(n, p.parseFnCall())
	}
	return p.close(n)
}

func (p *parser) parseFnCall() *Node {
	n := p.open(RuleFnCall)
	p.expect(token.LParen, "(")
	for p.err == nil && !p.at(token.RParen) {
		p.add(n, p.parseExpr())
		if p.err != nil || !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	p.expect(token.RParen, ")")
	return p.close(n)
}

func (p *parser) parseValue() *Node {
	if p.err != nil {
		return nil
	}
	n := p.open(RuleValue)
	switch p.peek().Kind {
	case token.NumberLit:
		p.add(n, p.leaf(RuleNum))
	case token.StringLit:
		p.add(n, p.leaf(RuleString))
	case token.KwIf:
		p.add(n, p.parseIfExpr())
	case token.Ident:
		p.add(n, p.parseIdentPath())
	default:
		p.fail("expression")
	}
	return p.close(n)
}

func (p *parser) parseIfExpr() *Node {
	n := p.open(RuleIfExpr)
	p.expect(token.KwIf, "if")
	p.add(n, p.parseExpr())
	p.add(n, p.parseBlock())
	for p.err == nil && p.at(token.KwElseIf) {
		c := p.open(RuleElseIfClause)
		p.advance()
		p.add(c, p.parseExpr())
		p.add(c, p.parseBlock())
		p.add(n, p.close(c))
	}
	if p.err == nil && p.at(token.KwElse) {
		c := p.open(RuleElseClause)
		p.advance()
		p.add(c, p.parseBlock())
		p.add(n, p.close(c))
	}
	return p.close(n)
}

func (p *parser) parseIdentPath() *Node {
	n := p.open(RuleIdentPath)
	p.add(n, p.parseIdent())
	for p.err == nil && p.at(token.ColonColon) {
		p.advance()
		p.add(n, p.parseIdent())
	}
	return p.close(n)
}
