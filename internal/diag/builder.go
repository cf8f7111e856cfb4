package diag

import "lumen/internal/source"

// New builds a located diagnostic with the code's own severity.
func New(code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: code.Severity(),
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

// NewNonLocated builds a diagnostic that has no source position.
func NewNonLocated(code Code, msg string) Diagnostic {
	return Diagnostic{
		Severity: code.Severity(),
		Code:     code,
		Message:  msg,
	}
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}
