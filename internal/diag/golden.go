package diag

import (
	"fmt"
	"path/filepath"
	"strings"

	"lumen/internal/source"
)

// FormatShortDiagnostics renders diagnostics one per line, in the order given:
//
//	error[1] util/main.lm:3:5 cannot find module `util`
//
// Non-located diagnostics print "-" instead of a position. Paths are shown
// relative to baseDir when possible.
func FormatShortDiagnostics(diags []Diagnostic, baseDir string, includeNotes bool) string {
	var b strings.Builder
	for _, d := range diags {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s %s %s", d.Code.ID(), formatLocation(d.Primary, baseDir), sanitizeMessage(d.Message))
		if !includeNotes {
			continue
		}
		for _, note := range d.Notes {
			fmt.Fprintf(&b, "\nnote %s %s", formatLocation(note.Span, baseDir), sanitizeMessage(note.Msg))
		}
	}
	return b.String()
}

func formatLocation(sp source.Span, baseDir string) string {
	if sp.IsZero() {
		return "-"
	}
	path := sp.File.String()
	if !sp.File.IsRepl() && baseDir != "" {
		if rel, err := source.RelativePath(sp.File.Path, baseDir); err == nil {
			path = rel
		}
	}
	return fmt.Sprintf("%s:%d:%d", filepath.ToSlash(path), sp.Start.Line, sp.Start.Col)
}

func sanitizeMessage(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}
