package lexer

import (
	"lumen/internal/source"
)

// Reporter — тонкий интерфейс, чтобы не тянуть diag сюда.
// Лексер **только вызывает** его; решение, что делать с ошибкой, за вызывающим.
type Reporter interface {
	Report(rng source.Range, msg string)
}

type Options struct {
	Reporter Reporter // может быть nil — тогда ошибки игнорируем (но продолжаем лексить)
}

func (lx *Lexer) report(rng source.Range, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(rng, msg)
	}
}
