package module

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lumen/internal/diag"
	"lumen/internal/project"
	"lumen/internal/source"
)

type fixture struct {
	fs   *source.FileSet
	bag  *diag.BagReporter
	res  *Resolver
	root string
}

// newFixture writes files (relative path → content) into a temp dir.
func newFixture(t *testing.T, files map[string]string) *fixture {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	fs := source.NewFileSet()
	bag := &diag.BagReporter{Bag: diag.NewBag(0)}
	return &fixture{fs: fs, bag: bag, res: NewResolver(project.NewFiles(fs), bag), root: dir}
}

func (f *fixture) path(rel string) string {
	return filepath.Join(f.root, filepath.FromSlash(rel))
}

func (f *fixture) load(t *testing.T, entry string, cfg Config) (*Tree, error) {
	t.Helper()
	return f.res.LoadTree(context.Background(), source.PathRef(f.path(entry)), cfg)
}

func (f *fixture) mustLoad(t *testing.T, entry string, cfg Config) *Tree {
	t.Helper()
	tree, err := f.load(t, entry, cfg)
	if err != nil {
		t.Fatalf("load: %v\n%s", err, diag.FormatShortDiagnostics(f.bag.Bag.Items(), f.root, true))
	}
	return tree
}

func expectCode(t *testing.T, err error, code diag.Code) *diag.Error {
	t.Helper()
	var de *diag.Error
	if !errors.As(err, &de) {
		t.Fatalf("err = %v, want *diag.Error", err)
	}
	if de.Code != code {
		t.Fatalf("code = %s, want %s (%v)", de.Code, code, err)
	}
	return de
}

func TestSiblingFileWinsOverDirectory(t *testing.T) {
	f := newFixture(t, map[string]string{
		"a/main.lm":         "mod util;",
		"a/util.lm":         "fn from_file() { 1 }",
		"a/util/mod.lm":     "fn from_dir() { 1 }",
		"a/other/unused.lm": "",
	})
	tree := f.mustLoad(t, "a/main.lm", Config{})
	util, err := tree.LookupInternal([]string{"util"})
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if _, ok := util.AST.Func("from_file"); !ok {
		t.Fatalf("picked %s, want sibling file", util.File)
	}
}

func TestDirectoryModule(t *testing.T) {
	f := newFixture(t, map[string]string{
		"a/main.lm":      "mod util;",
		"a/util/mod.lm":  "pub mod deep;",
		"a/util/deep.lm": "fn d() { 0 }",
	})
	tree := f.mustLoad(t, "a/main.lm", Config{})
	deep, err := tree.LookupInternal([]string{"util", "deep"})
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if deep.Name != "deep" || !strings.HasSuffix(deep.File.Path, "a/util/deep.lm") {
		t.Fatalf("deep = %s at %s", deep.Name, deep.File)
	}
}

func TestNestedFolderUnderOwnName(t *testing.T) {
	f := newFixture(t, map[string]string{
		"src/app.lm":         "mod net;",
		"src/app/net.lm":     "mod tcp;",
		"src/app/net/tcp.lm": "fn connect() { 0 }",
	})
	tree := f.mustLoad(t, "src/app.lm", Config{})
	if tree.Root.Name != "app" {
		t.Fatalf("root name = %s", tree.Root.Name)
	}
	tcp, err := tree.LookupInternal([]string{"net", "tcp"})
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if _, ok := tcp.AST.Func("connect"); !ok {
		t.Fatalf("tcp = %s", tcp.File)
	}
}

func TestModuleNotFoundAtDeclaration(t *testing.T) {
	f := newFixture(t, map[string]string{
		"a/main.lm": "fn main() { 0 }\nmod util;",
	})
	tree, err := f.load(t, "a/main.lm", Config{})
	if tree != nil {
		t.Fatal("partial tree returned")
	}
	de := expectCode(t, err, diag.ModuleNotFoundError)
	if de.Primary.Start != (source.LineCol{Line: 2, Col: 5}) || de.Primary.End != (source.LineCol{Line: 2, Col: 9}) {
		t.Fatalf("span = %s", de.Primary)
	}
	if !strings.Contains(de.Message, "util/mod.lm") {
		t.Fatalf("message does not list candidates: %s", de.Message)
	}
	if diag.ExitStatus(err) != int(diag.ModuleNotFoundError)+1 {
		t.Fatalf("exit status = %d", diag.ExitStatus(err))
	}
}

func TestSyntaxErrorInDeepChildAbortsBuild(t *testing.T) {
	f := newFixture(t, map[string]string{
		"main.lm":  "mod a;\nmod z;",
		"a.lm":     "mod b;",
		"a/b.lm":   "mod c;",
		"a/b/c.lm": "fn broken( { }",
		"z.lm":     "",
	})
	tree, err := f.load(t, "main.lm", Config{})
	if tree != nil {
		t.Fatal("partial tree returned")
	}
	de := expectCode(t, err, diag.SyntaxError)
	if !strings.HasSuffix(de.Primary.File.Path, "a/b/c.lm") {
		t.Fatalf("error in %s", de.Primary.File)
	}
	// z никогда не загружался: ошибка прервала сборку до него
	for _, d := range f.bag.Bag.Items() {
		if strings.HasSuffix(d.Primary.File.Path, "z.lm") {
			t.Fatalf("sibling after failure was resolved: %+v", d)
		}
	}
}

func TestDuplicateModule(t *testing.T) {
	f := newFixture(t, map[string]string{
		"main.lm": "pub mod a;\nmod a;",
		"a.lm":    "fn x() { 0 }",
	})
	_, err := f.load(t, "main.lm", Config{})
	de := expectCode(t, err, diag.DuplicateModule)
	if de.Primary.Start.Line != 2 {
		t.Fatalf("span = %s", de.Primary)
	}
	if len(de.Notes) != 1 || de.Notes[0].Span.Start.Line != 1 {
		t.Fatalf("notes = %+v", de.Notes)
	}
}

func TestModuleCycleIsDiagnosed(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		entry string
		at    string // file holding the declaration that closes the loop
		notes int
	}{
		{
			name:  "self",
			files: map[string]string{"main.lm": "mod main;"},
			entry: "main.lm",
			at:    "main.lm",
		},
		{
			name:  "mutual",
			files: map[string]string{"x.lm": "mod y;", "y.lm": "mod x;"},
			entry: "x.lm",
			at:    "y.lm",
			notes: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.files)
			tree, err := f.load(t, tt.entry, Config{})
			if tree != nil {
				t.Fatal("tree returned for a cycle")
			}
			de := expectCode(t, err, diag.ModuleCycle)
			if !strings.HasSuffix(de.Primary.File.Path, "/"+tt.at) {
				t.Fatalf("error in %s, want %s", de.Primary.File, tt.at)
			}
			if de.Primary.Start != (source.LineCol{Line: 1, Col: 5}) {
				t.Fatalf("span = %s", de.Primary)
			}
			if len(de.Notes) != tt.notes {
				t.Fatalf("notes = %+v", de.Notes)
			}
			if tt.notes > 0 && !strings.HasSuffix(de.Notes[0].Span.File.Path, "/"+tt.entry) {
				t.Fatalf("note in %s", de.Notes[0].Span.File)
			}
			if diag.ExitStatus(err) != int(diag.ModuleCycle)+1 {
				t.Fatalf("exit status = %d", diag.ExitStatus(err))
			}
		})
	}
}

func TestEmptyModuleIsInfo(t *testing.T) {
	f := newFixture(t, map[string]string{
		"main.lm":  "mod empty;",
		"empty.lm": "// nothing here",
	})
	f.mustLoad(t, "main.lm", Config{})
	items := f.bag.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.EmptyModule || items[0].Severity != diag.SevInfo {
		t.Fatalf("diagnostics = %+v", items)
	}
}

func TestDeclarationOrderAndVisibility(t *testing.T) {
	f := newFixture(t, map[string]string{
		"main.lm":  "pub mod zeta;\nmod alpha;\npub mod mid;",
		"zeta.lm":  "fn z() { 0 }",
		"alpha.lm": "fn a() { 0 }",
		"mid.lm":   "fn m() { 0 }",
	})
	tree := f.mustLoad(t, "main.lm", Config{})
	if got := strings.Join(tree.Root.Order, ","); got != "zeta,alpha,mid" {
		t.Fatalf("order = %s", got)
	}
	if !tree.Root.Children["zeta"].Public || tree.Root.Children["alpha"].Public {
		t.Fatal("visibility markers not recorded")
	}
	var visited []string
	_ = tree.Root.Walk(func(path []string, _ *Node) error {
		visited = append(visited, strings.Join(path, "::"))
		return nil
	})
	if got := strings.Join(visited, "|"); got != "|zeta|alpha|mid" {
		t.Fatalf("walk = %q", got)
	}
}

func TestAncestorVisibility(t *testing.T) {
	f := newFixture(t, map[string]string{
		"main.lm":        "mod priv;\npub mod open;",
		"priv.lm":        "pub mod inner;",
		"priv/inner.lm":  "fn i() { 0 }",
		"open.lm":        "pub mod inner;\nmod hidden;",
		"open/inner.lm":  "fn i() { 0 }",
		"open/hidden.lm": "fn h() { 0 }",
	})
	tree := f.mustLoad(t, "main.lm", Config{})

	_, err := tree.Lookup([]string{"priv", "inner"})
	var le *LookupError
	if !errors.As(err, &le) || le.Reason != LookupPrivate || le.Segment != 0 {
		t.Fatalf("priv::inner: err = %v", err)
	}
	if _, err := tree.Lookup([]string{"open", "inner"}); err != nil {
		t.Fatalf("open::inner: %v", err)
	}
	if _, err := tree.Lookup([]string{"open", "hidden"}); !errors.As(err, &le) || le.Segment != 1 {
		t.Fatalf("open::hidden: err = %v", err)
	}
	if _, err := tree.Lookup([]string{"open", "nope"}); !errors.As(err, &le) || le.Reason != LookupNotFound {
		t.Fatalf("open::nope: err = %v", err)
	}
	// внутри своего дерева видимость не проверяется
	if _, err := tree.LookupInternal([]string{"priv", "inner"}); err != nil {
		t.Fatalf("internal lookup: %v", err)
	}
}

func TestExternLibraries(t *testing.T) {
	f := newFixture(t, map[string]string{
		"app/main.lm":             "fn main() { 0 }",
		"vendor/json/lib.lm":      "pub mod parse;\nmod internal;",
		"vendor/json/parse.lm":    "pub fn parse() { 0 }",
		"vendor/json/internal.lm": "fn helper() { 0 }",
		"sys/core/lib.lm":         "pub mod num;",
		"sys/core/num.lm":         "fn add() { 0 }",
		"sys/std/lib.lm":          "pub mod io;",
		"sys/std/io.lm":           "fn print() { 0 }",
	})
	cfg := Config{
		Core:    f.path("sys/core/lib.lm"),
		Std:     f.path("sys/std/lib.lm"),
		Externs: []project.ExternBinding{{Name: "json", Path: f.path("vendor/json/lib.lm")}},
	}
	tree := f.mustLoad(t, "app/main.lm", cfg)

	if got := strings.Join(tree.ExternOrder, ","); got != "core,std,json" {
		t.Fatalf("externs = %s", got)
	}
	if _, err := tree.Lookup([]string{"json", "parse"}); err != nil {
		t.Fatalf("json::parse: %v", err)
	}
	var le *LookupError
	_, err := tree.Lookup([]string{"json", "internal"})
	if !errors.As(err, &le) || le.Reason != LookupPrivate || le.Segment != 1 || len(le.Path) != 2 {
		t.Fatalf("json::internal: err = %v (%+v)", err, le)
	}
	if tree.Root.AllowBuiltins {
		t.Error("user tree must not allow builtins")
	}
	if !tree.Externs["core"].Root.AllowBuiltins || !tree.Externs["std"].Root.Children["io"].Node.AllowBuiltins {
		t.Error("sysroot libraries must allow builtins throughout")
	}
	if tree.Externs["json"].Root.AllowBuiltins {
		t.Error("user extern must not allow builtins")
	}
	if _, ok := tree.Externs["std"].Extern("core"); !ok {
		t.Error("std should see core")
	}
	if _, ok := tree.Externs["json"].Extern("std"); !ok {
		t.Error("user library should see std")
	}
}

func TestNoStd(t *testing.T) {
	f := newFixture(t, map[string]string{
		"main.lm":         "fn main() { 0 }",
		"sys/core/lib.lm": "fn c() { 0 }",
	})
	tree := f.mustLoad(t, "main.lm", Config{
		Core:  f.path("sys/core/lib.lm"),
		Std:   f.path("sys/std/lib.lm"),
		NoStd: true,
	})
	if _, ok := tree.Extern("std"); ok {
		t.Fatal("std loaded despite NoStd")
	}
	if _, ok := tree.Extern("core"); !ok {
		t.Fatal("core missing")
	}
}

func TestShadowedExternWarns(t *testing.T) {
	f := newFixture(t, map[string]string{
		"main.lm":         "fn main() { 0 }",
		"sys/core/lib.lm": "fn c() { 0 }",
		"my/core.lm":      "fn mine() { 0 }",
	})
	tree := f.mustLoad(t, "main.lm", Config{
		Core:    f.path("sys/core/lib.lm"),
		Externs: []project.ExternBinding{{Name: "core", Path: f.path("my/core.lm")}},
	})
	if _, ok := tree.Externs["core"].Root.AST.Func("mine"); !ok {
		t.Fatal("user extern did not override core")
	}
	if !f.bag.Bag.HasWarnings() || f.bag.Bag.Items()[0].Code != diag.ShadowedExtern {
		t.Fatalf("diagnostics = %+v", f.bag.Bag.Items())
	}
}

func TestMissingLibraryRoot(t *testing.T) {
	f := newFixture(t, map[string]string{"main.lm": "fn main() { 0 }"})
	_, err := f.load(t, "main.lm", Config{
		Externs: []project.ExternBinding{{Name: "gone", Path: f.path("nope.lm")}},
	})
	expectCode(t, err, diag.ModuleNotFoundError)
}

func TestReplRootName(t *testing.T) {
	fs := source.NewFileSet()
	ref := fs.InsertRepl("fn main() { 0 }")
	res := NewResolver(project.NewFiles(fs), nil)
	tree, err := res.LoadTree(context.Background(), ref, Config{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if tree.Root.Name != ReplModuleName {
		t.Fatalf("root name = %s", tree.Root.Name)
	}
}

func TestRebuildIsStructurallyIdentical(t *testing.T) {
	f := newFixture(t, map[string]string{
		"main.lm": "pub mod a;\nfn main() { a::f(1 + 2) }",
		"a.lm":    "pub fn f(x: num) -> num { x ^ 2 }",
	})
	one := f.mustLoad(t, "main.lm", Config{})
	two := f.mustLoad(t, "main.lm", Config{})
	if one.Root.Count() != 2 || two.Root.Count() != 2 {
		t.Fatalf("counts = %d, %d", one.Root.Count(), two.Root.Count())
	}
	if one.Root.Children["a"].Node.AST == nil || len(two.Root.Children["a"].Node.AST.Items) != 1 {
		t.Fatal("child AST missing")
	}
}
