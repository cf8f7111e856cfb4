package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lumen/internal/diag"
	"lumen/internal/project"
	"lumen/internal/source"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	runTraceCleanup()
	return out.String(), err
}

func TestInitCreatesProject(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "hello-world")
	out, err := execute(t, "init", dir)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if !strings.Contains(out, "  - lumen.toml") || !strings.Contains(out, "  - main.lm") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	m, err := project.LoadManifest(filepath.Join(dir, project.ManifestName))
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}
	if m.Package.Name != "hello_world" || m.Package.Lib {
		t.Fatalf("package = %+v", m.Package)
	}
	if _, err := os.Stat(filepath.Join(dir, "main.lm")); err != nil {
		t.Fatalf("main.lm: %v", err)
	}

	if _, err := execute(t, "init", dir); err == nil || !strings.Contains(err.Error(), "already initialized") {
		t.Fatalf("second init err = %v", err)
	}
}

func TestProjectName(t *testing.T) {
	tests := []struct {
		dir  string
		want string
	}{
		{"/tmp/app", "app"},
		{"/tmp/my-app", "my_app"},
		{"/tmp/v1.2", "v1_2"},
		{"/tmp/1st", defaultProjectName},
	}
	for _, tt := range tests {
		if got := projectName(tt.dir); got != tt.want {
			t.Errorf("projectName(%q) = %q, want %q", tt.dir, got, tt.want)
		}
	}
}

func TestVersionJSON(t *testing.T) {
	out, err := execute(t, "version", "--format", "json", "--full")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if payload.Tool != "lumen" || payload.GitCommit != "unknown" {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestExitStatus(t *testing.T) {
	if got := exitStatus(nil); got != 0 {
		t.Fatalf("nil: %d", got)
	}
	err := diag.Raise(nil, diag.NewNonLocated(diag.NoMainError, "no main"))
	if got := exitStatus(err); got != diag.NoMainError.ExitStatus() {
		t.Fatalf("diag error: %d", got)
	}
	if got := exitStatus(errors.New("boom")); got == 0 {
		t.Fatal("plain error must fail")
	}
}

func TestRenderDiagnosticsQuiet(t *testing.T) {
	bag := diag.NewBag(0)
	bag.Add(diag.NewNonLocated(diag.EmptyModule, "module `m` has no items"))
	var buf bytes.Buffer
	if err := renderDiagnostics(&buf, bag, source.NewFileSet(), outputOptions{quiet: true, format: "short"}); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Fatalf("quiet printed %q", buf.String())
	}
	bag.Add(diag.NewNonLocated(diag.ModuleNotFoundError, "cannot find module `x`"))
	if err := renderDiagnostics(&buf, bag, source.NewFileSet(), outputOptions{quiet: true, format: "short"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "cannot find module `x`") || strings.Contains(buf.String(), "no items") {
		t.Fatalf("quiet output %q", buf.String())
	}
}

func TestReplDirUsesProjectRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, project.ManifestName), []byte("[package]\nname = \"p\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if got := replDir(sub); got != root {
		t.Fatalf("replDir = %s, want %s", got, root)
	}
}
