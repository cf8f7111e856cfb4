package ast

import (
	"testing"

	"lumen/internal/source"
)

func lit(v int64) *Expr {
	e := At[ExprNode](source.Span{}, &Literal{Kind: LitInt, Int: v})
	return &e
}

func TestSexpr(t *testing.T) {
	call := At[ExprNode](source.Span{}, &Call{
		Callee: func() *Expr { e := At[ExprNode](source.Span{}, &Ident{Path: []string{"std", "f"}}); return &e }(),
		Args:   []*Expr{lit(1), lit(2)},
	})
	not := At[ExprNode](source.Span{}, &Not{Operand: &call})
	bin := At[ExprNode](source.Span{}, &Binary{Op: BinaryAdd, Left: &not, Right: lit(3)})
	if got, want := Sexpr(&bin), "Add(Not(Call(std::f, [1, 2])), 3)"; got != want {
		t.Fatalf("Sexpr = %q, want %q", got, want)
	}
}

func TestSexprIf(t *testing.T) {
	stmt := func(e *Expr, k StmtKind) Positioned[Statement] {
		return At(source.Span{}, Statement{Kind: k, Expr: *e})
	}
	elseBlock := Block{Stmts: []Positioned[Statement]{stmt(lit(3), StmtReturning)}}
	ifx := At[ExprNode](source.Span{}, &If{
		Cond: lit(1),
		Then: Block{Stmts: []Positioned[Statement]{stmt(lit(2), StmtNonReturning)}},
		ElseIfs: []ElseIf{{
			Cond: lit(4),
			Body: Block{},
		}},
		Else: &elseBlock,
	})
	if got, want := Sexpr(&ifx), "If(1, {2;}, elseif 4 {}, else {3})"; got != want {
		t.Fatalf("Sexpr = %q, want %q", got, want)
	}
}

func TestTypeString(t *testing.T) {
	ty := Type{Kind: TypeNamed, Name: "Map", Args: []Type{
		{Kind: TypeNamed, Name: "K"},
		{Kind: TypeNamed, Name: "Vec", Args: []Type{{Kind: TypeEmpty}}},
	}}
	if got := ty.String(); got != "Map<K, Vec<()>>" {
		t.Fatalf("String = %q", got)
	}
}

func TestWithTrait(t *testing.T) {
	impl := &InherentImpl{
		Target:  Type{Kind: TypeNamed, Name: "Num"},
		Methods: []*FnDef{{FnSig: FnSig{Name: Name{Text: "add"}}}},
	}
	ti := impl.WithTrait(Type{Kind: TypeNamed, Name: "Add"})
	if ti.Trait.Name != "Add" || ti.Target.Name != "Num" || len(ti.Methods) != 1 {
		t.Fatalf("WithTrait = %+v", ti)
	}
}

func TestBlockTail(t *testing.T) {
	b := Block{Stmts: []Positioned[Statement]{
		At(source.Span{}, Statement{Kind: StmtNonReturning, Expr: *lit(1)}),
		At(source.Span{}, Statement{Kind: StmtReturning, Expr: *lit(2)}),
	}}
	tail, ok := b.Tail()
	if !ok || Sexpr(tail) != "2" {
		t.Fatalf("Tail = %v, %v", tail, ok)
	}
	if _, ok := (Block{}).Tail(); ok {
		t.Fatal("empty block has no tail")
	}
}
