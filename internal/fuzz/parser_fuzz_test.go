package fuzztests

import (
	"testing"
	"time"

	"lumen/internal/ast"
	"lumen/internal/diag"
	"lumen/internal/parser"
	"lumen/internal/source"
	"lumen/internal/testkit"
)

// parseTimeout is the longest a single input may take before it counts as a hang.
const parseTimeout = 5 * time.Second

func parseInput(t *testing.T, input []byte, expr bool) {
	t.Helper()
	fs := source.NewFileSet()
	file, err := fs.Load(fs.AddVirtual("fuzz.lm", clamp(input)))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	bag := diag.NewBag(16)
	reporter := &diag.BagReporter{Bag: bag}
	if expr {
		_, err = parser.ParseExpr(file, reporter)
	} else {
		var parsed *ast.File
		parsed, err = parser.ParseFile(file, reporter)
		if err == nil {
			if ierr := testkit.CheckSpanInvariants(parsed, file); ierr != nil {
				t.Fatalf("span invariants on %q: %v", input, ierr)
			}
		}
	}
	if err != nil && !bag.HasErrors() {
		t.Fatalf("parse failed without a diagnostic: %v", err)
	}
}

func FuzzParserBuildsAST(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		parseInput(t, input, false)
	})
}

func FuzzParserExpr(f *testing.F) {
	f.Add([]byte("1 + 2 * 3"))
	f.Add([]byte("a::b(c, d) * !e"))
	f.Add([]byte("if x { 1 } else { 2 }"))
	f.Add([]byte("((1)"))
	f.Fuzz(func(t *testing.T, input []byte) {
		parseInput(t, input, true)
	})
}

// FuzzParserNoHang fails when a single parse runs past parseTimeout.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)
	f.Add([]byte("fn f() { { { { } } } }"))
	f.Add([]byte("fn f( { 0 }"))
	f.Add([]byte("trait T { fn f() }"))
	f.Add([]byte("impl<T for X {}"))

	f.Fuzz(func(t *testing.T, input []byte) {
		done := make(chan struct{})
		go func() {
			defer close(done)
			fs := source.NewFileSet()
			file, err := fs.Load(fs.AddVirtual("fuzz.lm", clamp(input)))
			if err != nil {
				return
			}
			_, _ = parser.ParseFile(file, diag.NopReporter)
		}()
		select {
		case <-done:
		case <-time.After(parseTimeout):
			t.Fatalf("parser hang detected after %v on %d bytes: %q", parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(append([]byte(nil), input[:maxLen]...), "..."...)
}
