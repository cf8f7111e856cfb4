package grammar_test

import (
	"errors"
	"strings"
	"testing"

	"lumen/internal/grammar"
	"lumen/internal/source"
)

func loadFile(t *testing.T, text string) *source.File {
	t.Helper()
	fs := source.NewFileSet()
	f, err := fs.Load(fs.AddVirtual("test.lm", []byte(text)))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return f
}

func mustParse(t *testing.T, text string, start grammar.Rule) (*source.File, *grammar.Node) {
	t.Helper()
	f := loadFile(t, text)
	n, err := grammar.Parse(f, start)
	if err != nil {
		t.Fatalf("parse %q: %v", text, err)
	}
	return f, n
}

func rules(n *grammar.Node) []string {
	out := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		out = append(out, c.Rule.String())
	}
	return out
}

func TestExprIsFlat(t *testing.T) {
	_, n := mustParse(t, "1 + 2 * 3 ^ 4", grammar.RuleExpr)
	got := strings.Join(rules(n), " ")
	want := "term add term multiply term power term"
	if got != want {
		t.Fatalf("expr children = %q, want %q", got, want)
	}
}

func TestTermShape(t *testing.T) {
	f, n := mustParse(t, "!!f(1, 2)()", grammar.RuleExpr)
	term := n.Children[0]
	got := strings.Join(rules(term), " ")
	if got != "unary unary value fn_call fn_call" {
		t.Fatalf("term children = %q", got)
	}
	if txt := term.Children[3].Text(f); txt != "(1, 2)" {
		t.Fatalf("first call text = %q", txt)
	}
	if len(term.Children[3].Children) != 2 {
		t.Fatalf("first call args = %d", len(term.Children[3].Children))
	}
}

func TestParenRangeIncludesDelimiters(t *testing.T) {
	f, n := mustParse(t, "(1 + 2) * 3", grammar.RuleExpr)
	paren := n.Children[0].Children[0]
	if paren.Rule != grammar.RuleParen {
		t.Fatalf("rule = %s", paren.Rule)
	}
	if txt := paren.Text(f); txt != "(1 + 2)" {
		t.Fatalf("paren text = %q", txt)
	}
}

func TestModuleItems(t *testing.T) {
	src := `
pub mod util;
mod inner;
pub fn main() -> num { 1 }
trait Add<Other> {
	type Target;
	fn add(self: Self, other: Other) -> Target;
	fn zero() -> Target { 0 }
}
impl Add<num> for num {
	type Target = num;
	fn add(self: Self, other: num) -> Target { self + other }
}
impl<T> Wrapper<T> where T: Add + Copy {
	fn get(self: Self) -> T { self }
}
`
	_, n := mustParse(t, src, grammar.RuleModule)
	got := strings.Join(rules(n), " ")
	want := "mod_decl mod_decl fn_def trait_def impl impl"
	if got != want {
		t.Fatalf("items = %q, want %q", got, want)
	}
	trait := n.Children[3]
	if got := strings.Join(rules(trait), " "); got != "ident generics assoc_type fn_sig fn_def" {
		t.Fatalf("trait children = %q", got)
	}
	traitImpl := n.Children[4]
	if got := strings.Join(rules(traitImpl), " "); got != "trait_ref type assoc_binding fn_def" {
		t.Fatalf("trait impl children = %q", got)
	}
	inherent := n.Children[5]
	if got := strings.Join(rules(inherent), " "); got != "generics type where_clause fn_def" {
		t.Fatalf("inherent impl children = %q", got)
	}
	where := inherent.Children[2]
	if len(where.Children) != 1 || len(where.Children[0].Children) != 3 {
		t.Fatalf("constraint shape = %s", grammar.Dump(loadFile(t, src), where))
	}
}

func TestBlockStatements(t *testing.T) {
	_, n := mustParse(t, "{ a(); b; c }", grammar.RuleBlock)
	got := strings.Join(rules(n), " ")
	want := "non_returning_statement non_returning_statement statement"
	if got != want {
		t.Fatalf("block = %q, want %q", got, want)
	}
}

func TestIfExprClauses(t *testing.T) {
	_, n := mustParse(t, "if a { 1 } elseif b { 2 } elseif c { 3 } else { 4 }", grammar.RuleExpr)
	ifx := n.Children[0].Children[0].Children[0]
	if ifx.Rule != grammar.RuleIfExpr {
		t.Fatalf("rule = %s", ifx.Rule)
	}
	got := strings.Join(rules(ifx), " ")
	want := "expr block elseif_clause elseif_clause else_clause"
	if got != want {
		t.Fatalf("if children = %q, want %q", got, want)
	}
}

func TestUnitType(t *testing.T) {
	_, n := mustParse(t, "()", grammar.RuleType)
	if n.Rule != grammar.RuleType || len(n.Children) != 0 {
		t.Fatalf("unit type = %+v", n)
	}
}

func TestSyntaxErrors(t *testing.T) {
	cases := []struct {
		name  string
		src   string
		start grammar.Rule
		want  string
	}{
		{"missing semicolon", "mod a", grammar.RuleModule, "expected ;, found end of file"},
		{"stray token", "1 2", grammar.RuleExpr, `expected end of file, found "2"`},
		{"middle tail expr", "{ a b }", grammar.RuleBlock, `expected one of ;, }, found "b"`},
		{"pub impl", "pub impl A {}", grammar.RuleModule, "expected one of mod, fn, trait"},
		{"lexer error", `fn a() { "x }`, grammar.RuleModule, "unterminated string literal"},
		{"sig outside trait", "fn a();", grammar.RuleModule, `expected {, found ";"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := loadFile(t, tc.src)
			_, err := grammar.Parse(f, tc.start)
			var se *grammar.SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("expected SyntaxError, got %v", err)
			}
			if !strings.Contains(se.Message(), tc.want) {
				t.Fatalf("message = %q, want substring %q", se.Message(), tc.want)
			}
		})
	}
}

func TestSyntaxErrorSpan(t *testing.T) {
	f := loadFile(t, "mod a;\nmod 1;")
	_, err := grammar.Parse(f, grammar.RuleModule)
	var se *grammar.SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("expected SyntaxError, got %v", err)
	}
	if se.Span.Start.Line != 2 || se.Span.Start.Col != 5 {
		t.Fatalf("span = %s", se.Span)
	}
}

func TestDump(t *testing.T) {
	f, n := mustParse(t, "a::b", grammar.RuleExpr)
	got := grammar.Dump(f, n)
	want := "expr [a::b]\n  term [a::b]\n    value [a::b]\n      ident_path [a::b]\n        ident [a]\n        ident [b]\n"
	if got != want {
		t.Fatalf("dump:\n%s\nwant:\n%s", got, want)
	}
}
