package diag

import (
	"errors"
	"fmt"
)

// Error is a diagnostic of error severity travelling as a Go error.
// It is what aborts a build; the CLI turns it into an exit status.
type Error struct {
	Diagnostic
}

func (e *Error) Error() string {
	if e.Located() {
		return fmt.Sprintf("%s: %s (%s)", e.Code.ID(), e.Message, e.Primary)
	}
	return fmt.Sprintf("%s: %s", e.Code.ID(), e.Message)
}

// ExitStatus returns the process status derived from the originating code.
func (e *Error) ExitStatus() int {
	return e.Code.ExitStatus()
}

// Raise reports d and, when it is an error, returns it as *Error so the
// caller can abort. Info and warnings are reported and yield nil.
func Raise(r Reporter, d Diagnostic) error {
	if r != nil {
		r.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes)
	}
	if !d.Severity.Aborts() {
		return nil
	}
	return &Error{Diagnostic: d}
}

// ExitStatus maps any error returned by a build to a process status:
// 0 for nil, the code-derived status for *Error, 1 otherwise.
func ExitStatus(err error) int {
	if err == nil {
		return 0
	}
	var de *Error
	if errors.As(err, &de) {
		return de.ExitStatus()
	}
	return 1
}
