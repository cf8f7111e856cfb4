package ast

import (
	"strconv"
	"strings"
)

// Sexpr renders an expression in constructor form, e.g. `Add(1, Mul(2, 3))`.
// Spans are omitted, so structurally equal trees render identically.
func Sexpr(e *Expr) string {
	var sb strings.Builder
	writeExpr(&sb, e)
	return sb.String()
}

func writeExpr(sb *strings.Builder, e *Expr) {
	if e == nil {
		sb.WriteString("<nil>")
		return
	}
	switch n := e.Node.(type) {
	case *Literal:
		sb.WriteString(formatLiteral(n))
	case *Ident:
		sb.WriteString(strings.Join(n.Path, "::"))
	case *Binary:
		sb.WriteString(n.Op.String())
		sb.WriteByte('(')
		writeExpr(sb, n.Left)
		sb.WriteString(", ")
		writeExpr(sb, n.Right)
		sb.WriteByte(')')
	case *Not:
		sb.WriteString("Not(")
		writeExpr(sb, n.Operand)
		sb.WriteByte(')')
	case *Call:
		sb.WriteString("Call(")
		writeExpr(sb, n.Callee)
		sb.WriteString(", [")
		for i, a := range n.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeExpr(sb, a)
		}
		sb.WriteString("])")
	case *If:
		sb.WriteString("If(")
		writeExpr(sb, n.Cond)
		sb.WriteString(", ")
		writeBlock(sb, n.Then)
		for _, c := range n.ElseIfs {
			sb.WriteString(", elseif ")
			writeExpr(sb, c.Cond)
			sb.WriteByte(' ')
			writeBlock(sb, c.Body)
		}
		if n.Else != nil {
			sb.WriteString(", else ")
			writeBlock(sb, *n.Else)
		}
		sb.WriteByte(')')
	default:
		sb.WriteString("?")
	}
}

func writeBlock(sb *strings.Builder, b Block) {
	sb.WriteByte('{')
	for i, st := range b.Stmts {
		if i > 0 {
			sb.WriteByte(' ')
		}
		writeExpr(sb, &st.Node.Expr)
		if st.Node.Kind == StmtNonReturning {
			sb.WriteByte(';')
		}
	}
	sb.WriteByte('}')
}

func formatLiteral(l *Literal) string {
	switch l.Kind {
	case LitInt:
		return strconv.FormatInt(l.Int, 10)
	case LitFloat, LitNumber:
		return strconv.FormatFloat(l.Float, 'g', -1, 64)
	case LitString:
		return strconv.Quote(l.Str)
	default:
		return "?"
	}
}

// FormatLiteral renders a literal value the way Sexpr does.
func FormatLiteral(l *Literal) string { return formatLiteral(l) }
