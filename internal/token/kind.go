package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// NumberLit is an unsigned decimal literal, optionally with fraction/exponent.
	NumberLit
	// StringLit is a double-quoted string literal including its quotes.
	StringLit

	KwFn     // fn
	KwPub    // pub
	KwMod    // mod
	KwTrait  // trait
	KwImpl   // impl
	KwFor    // for
	KwType   // type
	KwWhere  // where
	KwIf     // if
	KwElseIf // elseif
	KwElse   // else

	Plus       // +
	Minus      // -
	Star       // *
	Slash      // /
	Caret      // ^
	Bang       // !
	Assign     // =
	Lt         // <
	Gt         // >
	Colon      // :
	ColonColon // ::
	Semicolon  // ;
	Comma      // ,
	Arrow      // ->
	LParen     // (
	RParen     // )
	LBrace     // {
	RBrace     // }
)

var kindNames = [...]string{
	Invalid:    "invalid",
	EOF:        "end of file",
	Ident:      "identifier",
	NumberLit:  "number",
	StringLit:  "string",
	KwFn:       "'fn'",
	KwPub:      "'pub'",
	KwMod:      "'mod'",
	KwTrait:    "'trait'",
	KwImpl:     "'impl'",
	KwFor:      "'for'",
	KwType:     "'type'",
	KwWhere:    "'where'",
	KwIf:       "'if'",
	KwElseIf:   "'elseif'",
	KwElse:     "'else'",
	Plus:       "'+'",
	Minus:      "'-'",
	Star:       "'*'",
	Slash:      "'/'",
	Caret:      "'^'",
	Bang:       "'!'",
	Assign:     "'='",
	Lt:         "'<'",
	Gt:         "'>'",
	Colon:      "':'",
	ColonColon: "'::'",
	Semicolon:  "';'",
	Comma:      "','",
	Arrow:      "'->'",
	LParen:     "'('",
	RParen:     "')'",
	LBrace:     "'{'",
	RBrace:     "'}'",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}
