package grammar

import (
	"fmt"
	"strings"

	"lumen/internal/source"
)

// SyntaxError is returned by Parse when the input is rejected.
type SyntaxError struct {
	Range    source.Range
	Span     source.Span
	Expected []string
	Found    string
	// Msg overrides the expected/found rendering (lexer failures).
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Span, e.Message())
}

// Message is the error text without location.
func (e *SyntaxError) Message() string {
	if e.Msg != "" {
		return e.Msg
	}
	switch len(e.Expected) {
	case 0:
		return "unexpected " + e.Found
	case 1:
		return fmt.Sprintf("expected %s, found %s", e.Expected[0], e.Found)
	default:
		return fmt.Sprintf("expected one of %s, found %s", strings.Join(e.Expected, ", "), e.Found)
	}
}
