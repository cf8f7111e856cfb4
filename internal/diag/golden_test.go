package diag

import (
	"errors"
	"fmt"
	"testing"

	"lumen/internal/source"
)

func TestFormatShortDiagnostics(t *testing.T) {
	file := source.PathRef("/workspace/app/main.lm")
	diags := []Diagnostic{
		New(ModuleNotFoundError, source.Span{
			File:  file,
			Start: source.LineCol{Line: 1, Col: 5},
			End:   source.LineCol{Line: 1, Col: 9},
		}, "cannot find module `util`\nlooked in 4 places").
			WithNote(source.Span{File: file, Start: source.LineCol{Line: 1, Col: 1}, End: source.LineCol{Line: 1, Col: 4}}, "declared here"),
		NewNonLocated(NoMainError, "library has no entry point"),
	}

	expected := "error[1] app/main.lm:1:5 cannot find module `util` looked in 4 places\n" +
		"note app/main.lm:1:1 declared here\n" +
		"error[2] - library has no entry point"

	if got := FormatShortDiagnostics(diags, "/workspace", true); got != expected {
		t.Fatalf("unexpected output:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestRaise(t *testing.T) {
	bag := NewBag(10)
	r := &BagReporter{Bag: bag}

	if err := Raise(r, NewNonLocated(EmptyModule, "empty")); err != nil {
		t.Fatalf("info must not abort, got %v", err)
	}
	if err := Raise(r, NewNonLocated(ShadowedExtern, "shadow")); err != nil {
		t.Fatalf("warning must not abort, got %v", err)
	}
	err := Raise(r, NewNonLocated(NoMainError, "no main"))
	var de *Error
	if !errors.As(err, &de) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if de.Code != NoMainError {
		t.Fatalf("unexpected code %v", de.Code)
	}
	if bag.Len() != 3 {
		t.Fatalf("expected all 3 diagnostics to be reported, got %d", bag.Len())
	}
	if !bag.HasErrors() || !bag.HasWarnings() {
		t.Fatal("bag must carry the error and the warning")
	}
}

func TestExitStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, 0},
		{"module not found", &Error{NewNonLocated(ModuleNotFoundError, "x")}, int(ModuleNotFoundError) + 1},
		{"no main wrapped", fmt.Errorf("build: %w", &Error{NewNonLocated(NoMainError, "x")}), int(NoMainError) + 1},
		{"plain error", errors.New("boom"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitStatus(tt.err); got != tt.want {
				t.Errorf("ExitStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCodeID(t *testing.T) {
	if got := ModuleNotFoundError.ID(); got != "error[1]" {
		t.Errorf("ModuleNotFoundError.ID() = %q", got)
	}
	if got := ShadowedExtern.ID(); got != "warning[7]" {
		t.Errorf("ShadowedExtern.ID() = %q", got)
	}
	if got := EmptyModule.ID(); got != "info[8]" {
		t.Errorf("EmptyModule.ID() = %q", got)
	}
	if got := ModuleCycle.ID(); got != "error[9]" {
		t.Errorf("ModuleCycle.ID() = %q", got)
	}
}

func TestBagLimitAndDedup(t *testing.T) {
	bag := NewBag(2)
	d := NewNonLocated(EmptyModule, "x")
	if !bag.Add(d) || !bag.Add(d) {
		t.Fatal("expected first two adds to succeed")
	}
	if bag.Add(d) {
		t.Fatal("expected limit to reject third add")
	}
	bag.Dedup()
	if bag.Len() != 1 {
		t.Fatalf("expected dedup to leave 1, got %d", bag.Len())
	}
}
