package parser

import (
	"errors"
	"strconv"
	"strings"

	"lumen/internal/ast"
	"lumen/internal/grammar"
	"lumen/internal/source"
)

// climber walks the flat `term (op term)*` children of one expr node.
type climber struct {
	b     *builder
	nodes []*grammar.Node
	pos   int
}

// buildExpr converts an expr node via precedence climbing.
func (b *builder) buildExpr(n *grammar.Node) *ast.Expr {
	b.want(n, grammar.RuleExpr, "expression")
	if len(n.Children)%2 == 0 {
		b.unexpected(n, "expression: want term (op term)*")
	}
	for i, ch := range n.Children {
		if (i%2 == 1) != ch.Rule.IsBinaryOp() {
			b.unexpected(ch, "expression: want term (op term)*")
		}
	}
	c := &climber{b: b, nodes: n.Children}
	e := c.climb(precAdditive)
	if c.pos != len(c.nodes) {
		b.unexpected(c.nodes[c.pos], "expression tail")
	}
	return e
}

// climb parses a left operand, then folds operators while their tier is >= minPrec.
func (c *climber) climb(minPrec int) *ast.Expr {
	left := c.operand()
	for c.pos < len(c.nodes) {
		opNode := c.nodes[c.pos]
		op, prec, rightAssoc := c.b.binaryOperator(opNode)
		if prec < minPrec {
			break
		}
		c.pos++

		nextMin := prec + 1
		if rightAssoc {
			nextMin = prec
		}
		right := c.climb(nextMin)

		e := ast.At[ast.ExprNode](source.Merge(left.Span, right.Span), &ast.Binary{
			Op:     op,
			Left:   left,
			OpSpan: c.b.span(opNode),
			Right:  right,
		})
		left = &e
	}
	return left
}

func (c *climber) operand() *ast.Expr {
	if c.pos >= len(c.nodes) {
		panic(&ShapeError{Rule: grammar.RuleTerm, Context: "expression: missing operand"})
	}
	n := c.nodes[c.pos]
	c.pos++
	return c.b.buildTerm(n)
}

// buildTerm: unary* (value | paren) fn_call*.
// Calls fold left to right; unary markers wrap the result afterwards, innermost first.
func (b *builder) buildTerm(n *grammar.Node) *ast.Expr {
	b.want(n, grammar.RuleTerm, "term")

	var unary []source.Span
	var middle *ast.Expr
	for _, ch := range n.Children {
		switch ch.Rule {
		case grammar.RuleUnary:
			if middle != nil {
				b.unexpected(ch, "term: unary after operand")
			}
			op := b.only(ch, "unary")
			b.want(op, grammar.RuleNot, "unary")
			unary = append(unary, b.span(ch))
		case grammar.RuleValue:
			middle = b.buildValue(ch)
		case grammar.RuleParen:
			inner := b.buildExpr(b.only(ch, "parenthesized expression"))
			inner.Span = b.span(ch)
			middle = inner
		case grammar.RuleFnCall:
			if middle == nil {
				b.unexpected(ch, "term: call without callee")
			}
			args := make([]*ast.Expr, 0, len(ch.Children))
			for _, a := range ch.Children {
				args = append(args, b.buildExpr(a))
			}
			call := ast.At[ast.ExprNode](source.Merge(middle.Span, b.span(ch)), &ast.Call{
				Callee: middle,
				Args:   args,
			})
			middle = &call
		default:
			b.unexpected(ch, "term", grammar.RuleUnary, grammar.RuleValue, grammar.RuleParen, grammar.RuleFnCall)
		}
	}
	if middle == nil {
		b.unexpected(n, "term: missing operand", grammar.RuleValue, grammar.RuleParen)
	}
	for i := len(unary) - 1; i >= 0; i-- {
		not := ast.At[ast.ExprNode](source.Merge(unary[i], middle.Span), &ast.Not{Operand: middle})
		middle = &not
	}
	return middle
}

func (b *builder) buildValue(n *grammar.Node) *ast.Expr {
	b.want(n, grammar.RuleValue, "value")
	v := b.only(n, "value")
	sp := b.span(v)

	var node ast.ExprNode
	switch v.Rule {
	case grammar.RuleNum:
		node = b.buildNumber(v)
	case grammar.RuleString:
		node = &ast.Literal{Kind: ast.LitString, Str: b.unquote(v)}
	case grammar.RuleIfExpr:
		node = b.buildIf(v)
	case grammar.RuleIdentPath:
		path := make([]string, 0, len(v.Children))
		for _, seg := range v.Children {
			path = append(path, b.ident(seg))
		}
		node = &ast.Ident{Path: path}
	default:
		b.unexpected(v, "value", grammar.RuleNum, grammar.RuleString, grammar.RuleIfExpr, grammar.RuleIdentPath)
	}
	e := ast.At(sp, node)
	return &e
}

// buildNumber: целые без точки/экспоненты → Int, с ними → Float,
// целые, не влезающие в int64 → Number (float64).
func (b *builder) buildNumber(n *grammar.Node) *ast.Literal {
	text := n.Text(b.file)
	if !strings.ContainsAny(text, ".eE") {
		v, err := strconv.ParseInt(text, 10, 64)
		if err == nil {
			return &ast.Literal{Kind: ast.LitInt, Int: v}
		}
		if !errors.Is(err, strconv.ErrRange) {
			b.unexpected(n, "integer literal")
		}
		f, ferr := strconv.ParseFloat(text, 64)
		if ferr != nil {
			b.unexpected(n, "integer literal")
		}
		return &ast.Literal{Kind: ast.LitNumber, Float: f}
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		b.unexpected(n, "float literal")
	}
	return &ast.Literal{Kind: ast.LitFloat, Float: f}
}

// unquote strips the quotes and expands \" \\ \n \t.
func (b *builder) unquote(n *grammar.Node) string {
	raw := n.Text(b.file)
	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		b.unexpected(n, "string literal")
	}
	raw = raw[1 : len(raw)-1]
	if !strings.Contains(raw, `\`) {
		return raw
	}
	var sb strings.Builder
	sb.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		ch := raw[i]
		if ch != '\\' {
			sb.WriteByte(ch)
			continue
		}
		i++
		if i >= len(raw) {
			b.unexpected(n, "string escape")
		}
		switch raw[i] {
		case '"':
			sb.WriteByte('"')
		case '\\':
			sb.WriteByte('\\')
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		default:
			b.unexpected(n, "string escape")
		}
	}
	return sb.String()
}

// buildIf: expr block elseif_clause* else_clause?
func (b *builder) buildIf(n *grammar.Node) *ast.If {
	if len(n.Children) < 2 {
		b.unexpected(n, "if expression: want condition and block")
	}
	out := &ast.If{
		Cond: b.buildExpr(n.Children[0]),
		Then: b.buildBlock(n.Children[1]),
	}
	for _, ch := range n.Children[2:] {
		switch ch.Rule {
		case grammar.RuleElseIfClause:
			if out.Else != nil || len(ch.Children) != 2 {
				b.unexpected(ch, "if expression")
			}
			out.ElseIfs = append(out.ElseIfs, ast.ElseIf{
				Cond: b.buildExpr(ch.Children[0]),
				Body: b.buildBlock(ch.Children[1]),
			})
		case grammar.RuleElseClause:
			if out.Else != nil {
				b.unexpected(ch, "if expression: second else")
			}
			blk := b.buildBlock(b.only(ch, "else clause"))
			out.Else = &blk
		default:
			b.unexpected(ch, "if expression", grammar.RuleElseIfClause, grammar.RuleElseClause)
		}
	}
	return out
}

func (b *builder) buildBlock(n *grammar.Node) ast.Block {
	b.want(n, grammar.RuleBlock, "block")
	blk := ast.Block{Span: b.span(n), Stmts: make([]ast.Positioned[ast.Statement], 0, len(n.Children))}
	for _, st := range n.Children {
		var kind ast.StmtKind
		switch st.Rule {
		case grammar.RuleStatement:
			kind = ast.StmtReturning
		case grammar.RuleNonReturningStatement:
			kind = ast.StmtNonReturning
		default:
			b.unexpected(st, "block", grammar.RuleStatement, grammar.RuleNonReturningStatement)
		}
		e := b.buildExpr(b.only(st, "statement"))
		blk.Stmts = append(blk.Stmts, ast.At(b.span(st), ast.Statement{Kind: kind, Expr: *e}))
	}
	return blk
}
