package ast

import (
	"lumen/internal/source"
)

type StmtKind uint8

const (
	// StmtReturning is a tail expression whose value escapes the block.
	StmtReturning StmtKind = iota
	// StmtNonReturning is an expression terminated by `;`.
	StmtNonReturning
)

func (k StmtKind) String() string {
	if k == StmtReturning {
		return "Returning"
	}
	return "NonReturning"
}

type Statement struct {
	Kind StmtKind
	Expr Expr
}

// Block is a braced statement sequence.
type Block struct {
	Span  source.Span
	Stmts []Positioned[Statement]
}

// Tail returns the returning statement's expression, if any.
func (b Block) Tail() (*Expr, bool) {
	if n := len(b.Stmts); n > 0 && b.Stmts[n-1].Node.Kind == StmtReturning {
		return &b.Stmts[n-1].Node.Expr, true
	}
	return nil, false
}
