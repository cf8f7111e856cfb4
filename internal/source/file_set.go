package source

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"fortio.org/safecast"
)

// ErrUnknownReplBuffer is returned when a REPL ref points past the stored buffers.
var ErrUnknownReplBuffer = errors.New("unknown repl buffer")

// FileSet is the source storage shared by a build: REPL buffers plus files
// read from disk. It records every file it hands out so diagnostics can
// render source lines later.
type FileSet struct {
	mu      sync.RWMutex
	repl    []*File
	files   map[FileRef]*File
	baseDir string // базовая директория для относительных путей
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make(map[FileRef]*File),
	}
}

// NewFileSetWithBase создаёт FileSet с заданной базовой директорией.
func NewFileSetWithBase(baseDir string) *FileSet {
	fileSet := NewFileSet()
	fileSet.baseDir = baseDir
	return fileSet
}

// SetBaseDir устанавливает базовую директорию для относительных путей.
func (fileSet *FileSet) SetBaseDir(dir string) {
	fileSet.baseDir = dir
}

// BaseDir возвращает текущую базовую директорию.
func (fileSet *FileSet) BaseDir() string {
	if fileSet.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return fileSet.baseDir
}

// InsertRepl stores a new REPL buffer and returns its ref. This is the only
// way the set grows outside of Load, and it must happen before the buffer is parsed.
func (fileSet *FileSet) InsertRepl(text string) FileRef {
	fileSet.mu.Lock()
	defer fileSet.mu.Unlock()

	ref := ReplRef(len(fileSet.repl))
	content := []byte(text)
	file := &File{
		Ref:     ref,
		Content: content,
		LineIdx: buildLineIndex(content),
		Flags:   FileVirtual,
	}
	fileSet.repl = append(fileSet.repl, file)
	fileSet.files[ref] = file
	return ref
}

// AddVirtual registers in-memory content under a path, shadowing the disk.
func (fileSet *FileSet) AddVirtual(path string, content []byte) FileRef {
	ref := PathRef(path)
	fileSet.mu.Lock()
	defer fileSet.mu.Unlock()
	fileSet.files[ref] = &File{
		Ref:     ref,
		Content: content,
		LineIdx: buildLineIndex(content),
		Flags:   FileVirtual,
	}
	return ref
}

// Exists reports whether ref names an existing regular file (or a known buffer).
func (fileSet *FileSet) Exists(ref FileRef) bool {
	fileSet.mu.RLock()
	_, ok := fileSet.files[ref]
	fileSet.mu.RUnlock()
	if ok {
		return true
	}
	if ref.IsRepl() {
		return false
	}
	st, err := os.Stat(filepath.FromSlash(ref.Path))
	return err == nil && st.Mode().IsRegular()
}

// Load returns the file behind ref, reading it from disk on first use.
// CRLF and a leading BOM are normalized away.
func (fileSet *FileSet) Load(ref FileRef) (*File, error) {
	fileSet.mu.RLock()
	file, ok := fileSet.files[ref]
	fileSet.mu.RUnlock()
	if ok {
		return file, nil
	}
	if ref.IsRepl() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownReplBuffer, ref.Repl)
	}

	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(filepath.FromSlash(ref.Path))
	if err != nil {
		return nil, err
	}
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		return nil, &fs.PathError{Op: "load", Path: ref.Path, Err: err}
	}

	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)

	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	file = &File{
		Ref:     ref,
		Content: content,
		LineIdx: buildLineIndex(content),
		Flags:   flags,
	}

	fileSet.mu.Lock()
	defer fileSet.mu.Unlock()
	if existing, ok := fileSet.files[ref]; ok {
		return existing, nil
	}
	fileSet.files[ref] = file
	return file, nil
}

// Get returns a file previously handed out by Load or InsertRepl.
func (fileSet *FileSet) Get(ref FileRef) (*File, bool) {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	file, ok := fileSet.files[ref]
	return file, ok
}

// ReplCount returns the number of stored REPL buffers.
func (fileSet *FileSet) ReplCount() int {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	return len(fileSet.repl)
}

// Text returns the source text covered by r.
func (f *File) Text(r Range) string {
	end := min(int(r.End), len(f.Content))
	start := min(int(r.Start), end)
	return string(f.Content[start:end])
}

// GetLine возвращает строку с заданным номером (1-based) из файла.
// Если строка не существует, возвращает пустую строку.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}
	lenLineIdx, err := safecast.Conv[uint32](len(f.LineIdx))
	if err != nil {
		panic(fmt.Errorf("line index length overflow: %w", err))
	}
	lenContent, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}

	var start, end uint32
	switch {
	case lineNum == 1:
		start = 0
	case lineNum-2 < lenLineIdx:
		start = f.LineIdx[lineNum-2] + 1
	default:
		return ""
	}
	if lineNum-1 < lenLineIdx {
		end = f.LineIdx[lineNum-1]
	} else {
		end = lenContent
	}
	if start > lenContent {
		return ""
	}
	return string(f.Content[start:end])
}

// FormatPath форматирует путь к файлу относительно baseDir.
func (f *File) FormatPath(baseDir string) string {
	if f.Ref.IsRepl() {
		return f.Ref.String()
	}
	if baseDir == "" {
		return f.Ref.Path
	}
	if rel, err := RelativePath(f.Ref.Path, baseDir); err == nil {
		return rel
	}
	return f.Ref.Path
}
