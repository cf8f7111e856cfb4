package diagfmt

import (
	"path/filepath"

	"lumen/internal/source"
)

func displayPath(ref source.FileRef, fs *source.FileSet, mode PathMode) string {
	if ref.IsRepl() {
		return ref.String()
	}
	base := ""
	if fs != nil {
		base = fs.BaseDir()
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(filepath.FromSlash(ref.Path)); err == nil {
			return filepath.ToSlash(abs)
		}
		return ref.Path
	case PathModeBasename:
		return filepath.Base(ref.Path)
	case PathModeRelative, PathModeAuto:
		if base == "" {
			return ref.Path
		}
		if rel, err := source.RelativePath(ref.Path, base); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return ref.Path
}
