package lexer

import (
	"lumen/internal/token"
)

// "..." с escape \" \\ \n \t. Неизвестный escape или незакрытая строка → Invalid + Reporter.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '"' {
			lx.cursor.Bump()
			return lx.emit(token.StringLit, start)
		}
		if b == '\\' {
			escMark := lx.cursor.Mark()
			lx.cursor.Bump()
			switch lx.cursor.Peek() {
			case '"', '\\', 'n', 't':
				lx.cursor.Bump()
				continue
			default:
				lx.cursor.Bump()
				lx.report(lx.cursor.RangeFrom(escMark), "unknown escape sequence")
				lx.skipToStringEnd()
				return lx.emit(token.Invalid, start)
			}
		}
		if b == '\n' {
			tok := lx.emit(token.Invalid, start)
			lx.report(tok.Range, "newline in string literal")
			return tok
		}
		lx.cursor.Bump()
	}
	// EOF без закрывающей кавычки
	tok := lx.emit(token.Invalid, start)
	lx.report(tok.Range, "unterminated string literal")
	return tok
}

func (lx *Lexer) skipToStringEnd() {
	for !lx.cursor.EOF() {
		switch lx.cursor.Bump() {
		case '"':
			return
		case '\n':
			return
		case '\\':
			lx.cursor.Bump()
		}
	}
}
