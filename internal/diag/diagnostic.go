package diag

import (
	"lumen/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span // нулевой span — диагностика без позиции
	Notes    []Note
}

// Located reports whether the diagnostic points into a source file.
func (d Diagnostic) Located() bool {
	return !d.Primary.IsZero()
}
