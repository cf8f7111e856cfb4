package ast

import (
	"lumen/internal/source"
)

// ExprNode is implemented by every expression payload.
type ExprNode interface {
	exprNode()
}

// Expr is a positioned expression. Sub-expressions are owned through pointers.
type Expr = Positioned[ExprNode]

// LitKind enumerates literal kinds.
type LitKind uint8

const (
	// LitNumber is a numeric literal that does not fit an int64; stored as float64.
	LitNumber LitKind = iota
	LitInt
	LitFloat
	LitString
)

func (k LitKind) String() string {
	switch k {
	case LitInt:
		return "Int"
	case LitFloat:
		return "Float"
	case LitString:
		return "String"
	default:
		return "Number"
	}
}

// Literal holds one literal value. Only the field matching Kind is meaningful.
type Literal struct {
	Kind  LitKind
	Int   int64
	Float float64 // LitFloat и LitNumber
	Str   string  // без кавычек, escape-последовательности раскрыты
}

// BinaryOp enumerates binary operators.
type BinaryOp uint8

const (
	BinaryAdd BinaryOp = iota
	BinarySub
	BinaryMul
	BinaryDiv
	BinaryPow
)

var binaryOpNames = [...]string{
	BinaryAdd: "Add",
	BinarySub: "Sub",
	BinaryMul: "Mul",
	BinaryDiv: "Div",
	BinaryPow: "Pow",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpNames) {
		return binaryOpNames[op]
	}
	return "BinaryOp(?)"
}

// Symbol returns the source spelling of the operator.
func (op BinaryOp) Symbol() string {
	switch op {
	case BinaryAdd:
		return "+"
	case BinarySub:
		return "-"
	case BinaryMul:
		return "*"
	case BinaryDiv:
		return "/"
	case BinaryPow:
		return "^"
	default:
		return "?"
	}
}

// Binary is `Left Op Right`. OpSpan locates the operator token itself.
type Binary struct {
	Op     BinaryOp
	Left   *Expr
	OpSpan source.Span
	Right  *Expr
}

// Not is logical negation.
type Not struct {
	Operand *Expr
}

// Call applies Callee to Args in order.
type Call struct {
	Callee *Expr
	Args   []*Expr
}

// ElseIf is one `elseif cond { ... }` clause.
type ElseIf struct {
	Cond *Expr
	Body Block
}

// If is a value-producing conditional. Else is nil when absent.
type If struct {
	Cond    *Expr
	Then    Block
	ElseIfs []ElseIf
	Else    *Block
}

// Ident is a `::`-separated path.
type Ident struct {
	Path []string
}

func (*Literal) exprNode() {}
func (*Binary) exprNode()  {}
func (*Not) exprNode()     {}
func (*Call) exprNode()    {}
func (*If) exprNode()      {}
func (*Ident) exprNode()   {}
