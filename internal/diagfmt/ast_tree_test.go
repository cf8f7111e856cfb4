package diagfmt

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lumen/internal/diag"
	"lumen/internal/module"
	"lumen/internal/parser"
	"lumen/internal/project"
	"lumen/internal/source"
)

func TestExprTree(t *testing.T) {
	fs := source.NewFileSet()
	file, err := fs.Load(fs.InsertRepl("1 + 2 * f(3)"))
	if err != nil {
		t.Fatal(err)
	}
	e, err := parser.ParseExpr(file, diag.NopReporter)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var buf bytes.Buffer
	if err := ExprTree(&buf, e); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"Add +",
		"├─ Int 1",
		"└─ Mul *",
		"   ├─ Int 2",
		"   └─ Call",
		"      ├─ Ident f",
		"      └─ arg",
		"         └─ Int 3",
		"",
	}, "\n")
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestModuleTree(t *testing.T) {
	dir := t.TempDir()
	write := func(rel, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, rel), []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	write("main.lm", "pub mod util;\nfn main() { util::id(1) }")
	write("util.lm", "pub fn id<T>(x: T) -> T { x }\ntrait Show { fn show(self: Self) -> String; }")

	fs := source.NewFileSetWithBase(dir)
	res := module.NewResolver(project.NewFiles(fs), nil)
	tree, err := res.LoadTree(context.Background(), source.PathRef(filepath.Join(dir, "main.lm")), module.Config{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	var buf bytes.Buffer
	if err := ModuleTree(&buf, tree, fs, PathModeRelative); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"mod main (main.lm)",
		"├─ pub mod util (util.lm)",
		"│  ├─ pub fn id<T>(x: T) -> T",
		"│  │  └─ ret",
		"│  │     └─ Ident x",
		"│  └─ trait Show",
		"│     └─ fn show(self: Self) -> String;",
		"└─ fn main() -> ()",
		"   └─ ret",
		"      └─ Call",
		"         ├─ Ident util::id",
		"         └─ arg",
		"            └─ Int 1",
		"",
	}, "\n")
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}
