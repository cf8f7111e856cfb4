package parser_test

import (
	"testing"

	"lumen/internal/ast"
	"lumen/internal/diag"
	"lumen/internal/parser"
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

func parseExpr(t *testing.T, text string) *ast.Expr {
	t.Helper()
	bag := &diag.BagReporter{Bag: diag.NewBag(0)}
	e, err := parser.ParseExpr(loadFile(t, text), bag)
	if err != nil {
		t.Fatalf("parse %q: %v", text, err)
	}
	return e
}

func parseFile(t *testing.T, text string) *ast.File {
	t.Helper()
	bag := &diag.BagReporter{Bag: diag.NewBag(0)}
	f, err := parser.ParseFile(loadFile(t, text), bag)
	if err != nil {
		t.Fatalf("parse file: %v\n%s", err, diag.FormatShortDiagnostics(bag.Bag.Items(), "", true))
	}
	return f
}

// lc builds a line/column pair.
func lc(line, col uint32) source.LineCol {
	return source.LineCol{Line: line, Col: col}
}
