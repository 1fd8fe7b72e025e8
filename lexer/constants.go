package lexer

type Operator = string

var (
	Keywords = map[string]TokenKind{
		"let":    TokenLet,
		"fn":     TokenFn,
		"if":     TokenIf,
		"else":   TokenElse,
		"return": TokenReturn,
		"true":   TokenTrue,
		"false":  TokenFalse,
	}

	BinOperators = map[TokenKind]Operator{
		TokenEquals:    "==",
		TokenNotEquals: "!=",
		TokenGreater:   ">",
		TokenLess:      "<",
		TokenMultiply:  "*",
		TokenSlash:     "/",
		TokenPlus:      "+",
		TokenMinus:     "-",
	}

	UnaryOperators = map[TokenKind]Operator{
		TokenExclamation: "!",
		TokenMinus:       "-",
	}

	// single character units that never start a longer token
	singles = map[rune]TokenKind{
		'{': TokenCurlyBraceOpen,
		'}': TokenCurlyBraceClose,
		'[': TokenBracketOpen,
		']': TokenBracketClose,
		'(': TokenBraceOpen,
		')': TokenBraceClose,
		':': TokenColon,
		',': TokenComma,
		';': TokenSemicolon,
		'+': TokenPlus,
		'-': TokenMinus,
		'*': TokenMultiply,
		'/': TokenSlash,
		'<': TokenLess,
		'>': TokenGreater,
	}
)

// LookupIdent returns the keyword kind for text, or TokenIdentifier.
func LookupIdent(text string) TokenKind {
	if kind, ok := Keywords[text]; ok {
		return kind
	}
	return TokenIdentifier
}
