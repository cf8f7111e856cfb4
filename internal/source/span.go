package source

import (
	"fmt"
)

// Span is an immutable line/column range inside one file.
// End is exclusive: it points at the column right after the last character.
type Span struct {
	File  FileRef
	Start LineCol
	End   LineCol
}

// Point converts a raw byte range of f into a Span.
func (f *File) Point(r Range) Span {
	return Span{
		File:  f.Ref,
		Start: toLineCol(f.Content, f.LineIdx, r.Start),
		End:   toLineCol(f.Content, f.LineIdx, r.End),
	}
}

// Merge returns the tightest span enclosing every input span.
// All spans must come from the same file; at least one span is required,
// an empty call is a caller bug and panics.
func Merge(spans ...Span) Span {
	if len(spans) == 0 {
		panic("source.Merge: expected at least 1 span")
	}
	out := spans[0]
	for _, sp := range spans[1:] {
		if sp.File != out.File {
			panic(fmt.Sprintf("source.Merge: spans from different files %s and %s", out.File, sp.File))
		}
		if sp.Start.Less(out.Start) {
			out.Start = sp.Start
		}
		if out.End.Less(sp.End) {
			out.End = sp.End
		}
	}
	return out
}

// Cover is Merge for two spans.
func (s Span) Cover(other Span) Span {
	return Merge(s, other)
}

// Empty reports whether the span covers no characters.
func (s Span) Empty() bool {
	return s.Start == s.End
}

// IsZero reports whether the span was never set (non-located diagnostics).
func (s Span) IsZero() bool {
	return s == Span{}
}

func (s Span) String() string {
	return fmt.Sprintf("%s:%s-%s", s.File, s.Start, s.End)
}
