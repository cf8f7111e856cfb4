// Package token defines lexical token kinds for the lumen grammar.
// Invariants:
//   - Token.Text is the exact source slice covered by Token.Range.
//   - Comments and whitespace never appear in the token stream.
//   - Type names (number, string, Self, ...) are identifiers; only the
//     grammar's structural words are keywords.
package token
