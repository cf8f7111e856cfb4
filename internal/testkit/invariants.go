// Package testkit holds checks shared by parser tests and fuzz harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"lumen/internal/ast"
	"lumen/internal/source"
)

// CheckSpanInvariants runs a minimal set of span checks on a parsed file:
// the file span lies inside the content, every item span is non-empty, lies
// inside the file span and starts after the previous item ends, and every
// function statement lies inside its body.
func CheckSpanInvariants(f *ast.File, sf *source.File) error {
	if f == nil || sf == nil {
		return fmt.Errorf("nil file")
	}
	n, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	end := sf.Point(source.Range{Start: n, End: n}).End
	if f.Span.File != sf.Ref {
		return fmt.Errorf("file span points to %s, want %s", f.Span.File, sf.Ref)
	}
	if end.Less(f.Span.End) {
		return fmt.Errorf("file span end beyond content: %s > %s", f.Span.End, end)
	}

	var prev source.Span
	for i, it := range f.Items {
		sp := it.ItemSpan()
		if sp.Empty() {
			return fmt.Errorf("item %d: empty span %s", i, sp)
		}
		if sp.File != sf.Ref {
			return fmt.Errorf("item %d: span file %s, want %s", i, sp.File, sf.Ref)
		}
		if !contains(f.Span, sp) {
			return fmt.Errorf("item %d: span %s is outside file span %s", i, sp, f.Span)
		}
		if i > 0 && sp.Start.Less(prev.End) {
			return fmt.Errorf("item %d: span %s overlaps previous item %s", i, sp, prev)
		}
		prev = sp
		if fn, ok := it.(*ast.FnDef); ok {
			if err := checkBlock(fn.Body); err != nil {
				return fmt.Errorf("fn %s: %w", fn.Name.Text, err)
			}
		}
	}
	return nil
}

func checkBlock(b ast.Block) error {
	for i, st := range b.Stmts {
		if !contains(b.Span, st.Span) {
			return fmt.Errorf("statement %d: span %s is outside block %s", i, st.Span, b.Span)
		}
	}
	return nil
}

func contains(outer, inner source.Span) bool {
	return !inner.Start.Less(outer.Start) && !outer.End.Less(inner.End)
}
