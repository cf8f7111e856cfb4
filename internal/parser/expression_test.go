package parser_test

import (
	"reflect"
	"testing"

	"lumen/internal/ast"
	"lumen/internal/grammar"
	"lumen/internal/parser"
)

func TestPrecedenceAndAssociativity(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"1+2*3", "Add(1, Mul(2, 3))"},
		{"1*2+3", "Add(Mul(1, 2), 3)"},
		{"2^3^2", "Pow(2, Pow(3, 2))"},
		{"1-2-3", "Sub(Sub(1, 2), 3)"},
		{"8/4/2", "Div(Div(8, 4), 2)"},
		{"2*3^2", "Mul(2, Pow(3, 2))"},
		{"2^3*2", "Mul(Pow(2, 3), 2)"},
		{"1-2+3*4^5^6/7", "Add(Sub(1, 2), Div(Mul(3, Pow(4, Pow(5, 6))), 7))"},
		{"(1+2)*3", "Mul(Add(1, 2), 3)"},
		{"a::b + c", "Add(a::b, c)"},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			if got := ast.Sexpr(parseExpr(t, tc.src)); got != tc.want {
				t.Fatalf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestCallsAndUnary(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"f(1)(2)", "Call(Call(f, [1]), [2])"},
		{"!!x()", "Not(Not(Call(x, [])))"},
		{"!f(1, 2 + 3)", "Not(Call(f, [1, Add(2, 3)]))"},
		{"!a + b", "Add(Not(a), b)"},
		{"(f)(1)", "Call(f, [1])"},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			if got := ast.Sexpr(parseExpr(t, tc.src)); got != tc.want {
				t.Fatalf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestLiterals(t *testing.T) {
	cases := []struct {
		src  string
		kind ast.LitKind
		want string
	}{
		{"42", ast.LitInt, "42"},
		{"1.5", ast.LitFloat, "1.5"},
		{"1e3", ast.LitFloat, "1000"},
		{"99999999999999999999", ast.LitNumber, "1e+20"},
		{`"a\"b\\c\n"`, ast.LitString, `"a\"b\\c\n"`},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			e := parseExpr(t, tc.src)
			lit, ok := e.Node.(*ast.Literal)
			if !ok {
				t.Fatalf("node = %T", e.Node)
			}
			if lit.Kind != tc.kind {
				t.Fatalf("kind = %s, want %s", lit.Kind, tc.kind)
			}
			if got := ast.FormatLiteral(lit); got != tc.want {
				t.Fatalf("value = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestBinarySpanIsMerged(t *testing.T) {
	e := parseExpr(t, "1+2")
	bin, ok := e.Node.(*ast.Binary)
	if !ok {
		t.Fatalf("node = %T", e.Node)
	}
	if bin.Left.Span.Start != lc(1, 1) || bin.Right.Span.Start != lc(1, 3) {
		t.Fatalf("operand spans = %s, %s", bin.Left.Span, bin.Right.Span)
	}
	if e.Span.Start != lc(1, 1) || e.Span.End != lc(1, 4) {
		t.Fatalf("binary span = %s", e.Span)
	}
	if bin.OpSpan.Start != lc(1, 2) || bin.OpSpan.End != lc(1, 3) {
		t.Fatalf("operator span = %s", bin.OpSpan)
	}
}

func TestCallSpanCoversCallee(t *testing.T) {
	e := parseExpr(t, "foo(1)(22)")
	outer := e.Node.(*ast.Call)
	inner := outer.Callee
	if inner.Span.Start != lc(1, 1) || inner.Span.End != lc(1, 7) {
		t.Fatalf("inner call span = %s", inner.Span)
	}
	if e.Span.Start != lc(1, 1) || e.Span.End != lc(1, 11) {
		t.Fatalf("outer call span = %s", e.Span)
	}
}

func TestNotSpans(t *testing.T) {
	e := parseExpr(t, "!!x")
	outer := e.Node.(*ast.Not)
	if e.Span.Start != lc(1, 1) || e.Span.End != lc(1, 4) {
		t.Fatalf("outer span = %s", e.Span)
	}
	if outer.Operand.Span.Start != lc(1, 2) {
		t.Fatalf("inner span = %s", outer.Operand.Span)
	}
}

func TestParenWidensSpan(t *testing.T) {
	e := parseExpr(t, "(1+2)*3")
	mul := e.Node.(*ast.Binary)
	if mul.Left.Span.Start != lc(1, 1) || mul.Left.Span.End != lc(1, 6) {
		t.Fatalf("paren span = %s", mul.Left.Span)
	}
}

func TestIfExpression(t *testing.T) {
	e := parseExpr(t, "if a { 1 } elseif b { 2; 3 } elseif c { 4 } else { 5 }")
	want := "If(a, {1}, elseif b {2; 3}, elseif c {4}, else {5})"
	if got := ast.Sexpr(e); got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
	noElse := parseExpr(t, "if a { 1 }")
	if ifx := noElse.Node.(*ast.If); ifx.Else != nil || len(ifx.ElseIfs) != 0 {
		t.Fatalf("if without else = %+v", ifx)
	}
}

func TestParseIsIdempotent(t *testing.T) {
	src := "!f(1, 2^3^4)(a::b) - if x { y(); z } else { 0.5 }"
	a := parseExpr(t, src)
	b := parseExpr(t, src)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("re-parse differs:\n%s\n%s", ast.Sexpr(a), ast.Sexpr(b))
	}
}

func TestIdentifiersAreNFC(t *testing.T) {
	// "é" как e + combining acute и как предсоставленный символ
	decomposed := parseExpr(t, "cafe\u0301")
	composed := parseExpr(t, "caf\u00e9")
	if ast.Sexpr(decomposed) != ast.Sexpr(composed) {
		t.Fatalf("identifiers differ: %q vs %q", ast.Sexpr(decomposed), ast.Sexpr(composed))
	}
}

func TestShapeErrorPanics(t *testing.T) {
	f := loadFile(t, "1")
	bad := &grammar.Node{Rule: grammar.RuleExpr, Children: []*grammar.Node{
		{Rule: grammar.RuleBlock},
	}}
	defer func() {
		r := recover()
		se, ok := r.(*parser.ShapeError)
		if !ok {
			t.Fatalf("recovered %v, want *ShapeError", r)
		}
		if se.Rule != grammar.RuleBlock || se.Context != "term" {
			t.Fatalf("shape error = %v", se)
		}
	}()
	parser.BuildExpr(f, bad)
}

func TestShapeErrorOnMisplacedOperator(t *testing.T) {
	f := loadFile(t, "1")
	term := func() *grammar.Node { return &grammar.Node{Rule: grammar.RuleTerm} }
	tests := []struct {
		name string
		kids []*grammar.Node
		rule grammar.Rule
	}{
		{"term in operator slot", []*grammar.Node{term(), term(), term()}, grammar.RuleTerm},
		{"operator in operand slot", []*grammar.Node{{Rule: grammar.RuleAdd}, term(), term()}, grammar.RuleAdd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				se, ok := recover().(*parser.ShapeError)
				if !ok {
					t.Fatal("want *ShapeError")
				}
				if se.Rule != tt.rule || se.Context != "expression: want term (op term)*" {
					t.Fatalf("shape error = %v", se)
				}
			}()
			parser.BuildExpr(f, &grammar.Node{Rule: grammar.RuleExpr, Children: tt.kids})
		})
	}
}
