// Package diag defines the diagnostic model shared by the front end.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error. Only Error aborts the operation that
//     raised it; the others are reported and execution continues.
//   - Code – small stable identifier (codes.go). Each code has a fixed
//     severity, and the process exit status of a failed build is
//     Code.ExitStatus().
//   - Message – short, actionable text.
//   - Primary – source.Span the diagnostic points at. The zero span marks a
//     non-located diagnostic (e.g. a missing entry point in a library build).
//   - Notes – optional secondary spans.
//
// # Emitting
//
// Producers report through a Reporter. Raise reports a diagnostic and, for
// errors, returns it as *Error so the caller can return it up the stack;
// ReportBuilder does the same with chained notes. BagReporter collects into a
// Bag, FuncReporter surfaces diagnostics immediately (no batching across files).
//
// Package diag does no formatting beyond the single-line short form in
// golden.go; rendering with source context lives in internal/diagfmt.
package diag
