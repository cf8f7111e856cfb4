package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestInsertReplAssignsSequentialRefs(t *testing.T) {
	fs := NewFileSet()

	first := fs.InsertRepl("1 + 1")
	second := fs.InsertRepl("2 * 2")

	if first != ReplRef(0) || second != ReplRef(1) {
		t.Fatalf("unexpected refs: %v, %v", first, second)
	}
	if fs.ReplCount() != 2 {
		t.Fatalf("expected 2 buffers, got %d", fs.ReplCount())
	}

	file, err := fs.Load(second)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(file.Content) != "2 * 2" {
		t.Errorf("unexpected content %q", file.Content)
	}
	if file.Flags&FileVirtual == 0 {
		t.Error("expected repl buffer to be virtual")
	}
}

func TestLoadUnknownRepl(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(ReplRef(3)); !errors.Is(err, ErrUnknownReplBuffer) {
		t.Fatalf("expected ErrUnknownReplBuffer, got %v", err)
	}
}

func TestFileRefIdentity(t *testing.T) {
	if PathRef("a/./b.lm") != PathRef("a/b.lm") {
		t.Error("expected cleaned paths to be the same file")
	}
	if ReplRef(0) == PathRef("") {
		t.Error("repl ref must differ from path ref")
	}
	if ReplRef(1) == ReplRef(2) {
		t.Error("different repl indices must differ")
	}
}

func TestLoadNormalizesContent(t *testing.T) {
	dir := t.TempDir()

	crlf := filepath.Join(dir, "crlf.lm")
	if err := os.WriteFile(crlf, []byte("a\r\nb\r\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	bom := filepath.Join(dir, "bom.lm")
	if err := os.WriteFile(bom, []byte{0xEF, 0xBB, 0xBF, 'x', '\n'}, 0o600); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()

	file, err := fs.Load(PathRef(crlf))
	if err != nil {
		t.Fatalf("Load crlf: %v", err)
	}
	if string(file.Content) != "a\nb\n" {
		t.Errorf("expected CRLF to be normalized, got %q", file.Content)
	}
	if file.Flags&FileNormalizedCRLF == 0 {
		t.Error("expected FileNormalizedCRLF flag")
	}
	if file.GetLine(2) != "b" {
		t.Errorf("GetLine(2) = %q", file.GetLine(2))
	}

	file, err = fs.Load(PathRef(bom))
	if err != nil {
		t.Fatalf("Load bom: %v", err)
	}
	if string(file.Content) != "x\n" {
		t.Errorf("expected BOM to be removed, got %q", file.Content)
	}
	if file.Flags&FileHadBOM == 0 {
		t.Error("expected FileHadBOM flag")
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := NewFileSet()
	_, err := fs.Load(PathRef(filepath.Join(t.TempDir(), "nope.lm")))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	onDisk := filepath.Join(dir, "disk.lm")
	if err := os.WriteFile(onDisk, []byte("mod a;"), 0o600); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	virtual := fs.AddVirtual(filepath.Join(dir, "virtual.lm"), []byte(""))

	if !fs.Exists(PathRef(onDisk)) {
		t.Error("expected disk file to exist")
	}
	if !fs.Exists(virtual) {
		t.Error("expected virtual file to exist")
	}
	if fs.Exists(PathRef(dir)) {
		t.Error("a directory is not a source file")
	}
	if fs.Exists(PathRef(filepath.Join(dir, "missing.lm"))) {
		t.Error("missing file reported as existing")
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	file, err := fs.Load(fs.InsertRepl("first\nsecond\n"))
	if err != nil {
		t.Fatal(err)
	}
	cases := map[uint32]string{0: "", 1: "first", 2: "second", 3: "", 9: ""}
	for line, want := range cases {
		if got := file.GetLine(line); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", line, got, want)
		}
	}
}
