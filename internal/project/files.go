package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"lumen/internal/source"
)

// Ext is the source file extension.
const Ext = ".lm"

// ModFile is the file name of a directory module.
const ModFile = "mod" + Ext

var ErrModuleNotFound = errors.New("module not found")

// NotFoundError lists every candidate that was tried for a child module.
type NotFoundError struct {
	Module string
	Tried  []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("module %q not found (tried %s)", e.Module, strings.Join(e.Tried, ", "))
}

func (e *NotFoundError) Is(target error) bool { return target == ErrModuleNotFound }

// Files maps module declarations to source files and loads them.
// It is read-only during a build apart from the FileSet's load cache.
type Files struct {
	fs *source.FileSet
	// ReplDir anchors child lookups from REPL buffers; "" means the working directory.
	ReplDir string
}

func NewFiles(fs *source.FileSet) *Files {
	return &Files{fs: fs}
}

// FileSet returns the underlying storage.
func (f *Files) FileSet() *source.FileSet { return f.fs }

func (f *Files) dirOf(current source.FileRef) string {
	if current.IsRepl() {
		if f.ReplDir == "" {
			return "."
		}
		return f.ReplDir
	}
	return current.Dir()
}

// Candidates returns the lookup order for child declared in currentModule:
//
//	D/child.lm, D/child/mod.lm, D/currentModule/child.lm, D/currentModule/child/mod.lm
//
// where D is the directory of current.
func (f *Files) Candidates(current source.FileRef, currentModule, child string) []string {
	dir := f.dirOf(current)
	return []string{
		filepath.Join(dir, child+Ext),
		filepath.Join(dir, child, ModFile),
		filepath.Join(dir, currentModule, child+Ext),
		filepath.Join(dir, currentModule, child, ModFile),
	}
}

// ResolveChild returns the first existing candidate. When none exists the
// error is a *NotFoundError matching ErrModuleNotFound.
func (f *Files) ResolveChild(current source.FileRef, currentModule, child string) (source.FileRef, error) {
	tried := f.Candidates(current, currentModule, child)
	for _, c := range tried {
		ref := source.PathRef(c)
		if f.fs.Exists(ref) {
			return ref, nil
		}
	}
	for i := range tried {
		tried[i] = filepath.ToSlash(tried[i])
	}
	return source.FileRef{}, &NotFoundError{Module: child, Tried: tried}
}

// LoadSource returns the normalised content of ref.
func (f *Files) LoadSource(ref source.FileRef) (*source.File, error) {
	file, err := f.fs.Load(ref)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", ref, err)
	}
	return file, nil
}
