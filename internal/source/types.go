package source

import (
	"fmt"
	"path/filepath"
)

type (
	// FileKind tags the two kinds of source a FileRef can name.
	FileKind uint8
	// FileFlags encodes metadata about a source file.
	FileFlags uint8 // метаданные
)

const (
	// FileKindPath is a file on disk.
	FileKindPath FileKind = iota
	// FileKindRepl is an in-memory REPL buffer.
	FileKindRepl
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin)
	FileHadBOM
	FileNormalizedCRLF
)

// FileRef identifies a source: either a REPL buffer index or a normalized path.
// Two refs are the same file iff both tag and payload match, so FileRef is
// usable as a map key.
type FileRef struct {
	Kind FileKind
	Repl int
	Path string
}

// PathRef returns a FileRef for a file on disk.
func PathRef(path string) FileRef {
	return FileRef{Kind: FileKindPath, Path: normalizePath(path)}
}

// ReplRef returns a FileRef for the n-th REPL buffer.
func ReplRef(n int) FileRef {
	return FileRef{Kind: FileKindRepl, Repl: n}
}

// IsRepl reports whether the ref names a REPL buffer.
func (r FileRef) IsRepl() bool { return r.Kind == FileKindRepl }

// Dir returns the directory a file lives in; REPL buffers have none.
func (r FileRef) Dir() string {
	if r.IsRepl() {
		return ""
	}
	return filepath.Dir(filepath.FromSlash(r.Path))
}

func (r FileRef) String() string {
	if r.IsRepl() {
		return fmt.Sprintf("<repl:%d>", r.Repl)
	}
	return r.Path
}

// File captures metadata and content for a single source file.
type File struct {
	Ref     FileRef
	Content []byte
	LineIdx []uint32
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, in runes
}

// Less orders positions lexicographically by line, then column.
func (p LineCol) Less(other LineCol) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Col < other.Col
}

func (p LineCol) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Range is a raw byte range inside one file, as produced by the grammar.
type Range struct {
	Start uint32 // в байтах включительно
	End   uint32 // в байтах не включительно
}

// Len returns the number of bytes covered.
func (r Range) Len() uint32 {
	return r.End - r.Start
}
