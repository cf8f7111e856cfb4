package token

var keywords = map[string]Kind{
	"fn":     KwFn,
	"pub":    KwPub,
	"mod":    KwMod,
	"trait":  KwTrait,
	"impl":   KwImpl,
	"for":    KwFor,
	"type":   KwType,
	"where":  KwWhere,
	"if":     KwIf,
	"elseif": KwElseIf,
	"else":   KwElse,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые — только lowercase версии распознаются.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
