package lexer

import (
	"unicode"
)

func NewLexer(filePath string, content string) *Lexer {
	lexer := Lexer{
		Content:  []rune(content),
		FilePath: filePath,
		Row:      1,
		Col:      1,
		Cur:      0,
	}
	return &lexer
}

func (l *Lexer) readChar() {
	if l.Cur >= len(l.Content) {
		return
	}

	switch l.Content[l.Cur] {
	case '\n':
		l.Row++
		l.Col = 1
	default:
		l.Col++
	}

	l.Cur++
}

// peekChar returns the rune after the current one, or 0 past the end.
func (l *Lexer) peekChar() rune {
	if l.Cur+1 >= len(l.Content) {
		return 0
	}
	return l.Content[l.Cur+1]
}

// NextToken returns the next token of the input. Once the input is exhausted
// every call returns an EOF token.
func (l *Lexer) NextToken() Token {
	l.skipWhiteSpace()
	l.skipComment()

	token := Token{
		Pos: Position{Row: l.Row, Col: l.Col},
	}

	if l.Cur >= len(l.Content) {
		token.LiteralToken = LiteralToken{
			Kind: TokenEOF,
			Text: "",
		}
		return token
	}

	char := l.Content[l.Cur]

	switch {
	case char == '=':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			token.LiteralToken = LiteralToken{
				Kind: TokenEquals,
				Text: "==",
			}
		} else {
			l.readChar()
			token.LiteralToken = LiteralToken{
				Kind: TokenAssign,
				Text: "=",
			}
		}
	case char == '!':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			token.LiteralToken = LiteralToken{
				Kind: TokenNotEquals,
				Text: "!=",
			}
		} else {
			l.readChar()
			token.LiteralToken = LiteralToken{
				Kind: TokenExclamation,
				Text: "!",
			}
		}
	case char == '"':
		return l.readString()
	case isLetter(char):
		return l.readIdentifier()
	case isDigit(char):
		return l.readNumber()
	default:
		l.readChar()
		if kind, ok := singles[char]; ok {
			token.LiteralToken = LiteralToken{
				Kind: kind,
				Text: string(char),
			}
		} else {
			token.LiteralToken = LiteralToken{
				Kind: TokenIllegal,
				Text: string(char),
			}
		}
	}
	return token
}

// Tokenize drains the lexer, the last token is always EOF.
func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			break
		}
	}
	return tokens
}

func isLetter(char rune) bool {
	return unicode.IsLetter(char) || char == '_'
}

func isDigit(char rune) bool {
	return '0' <= char && char <= '9'
}

func (l *Lexer) readIdentifier() Token {
	startPos := l.Cur
	pos := Position{Row: l.Row, Col: l.Col}

	for l.Cur < len(l.Content) {
		char := l.Content[l.Cur]
		if isLetter(char) || isDigit(char) {
			l.readChar()
		} else {
			break
		}
	}

	text := string(l.Content[startPos:l.Cur])

	return Token{
		LiteralToken: LiteralToken{
			Kind: LookupIdent(text),
			Text: text,
		},
		Pos: pos,
	}
}

// readString reads a double quoted string. The content is kept verbatim, a
// backslash has no special meaning. A string left open at the end of the
// input comes back as an illegal token starting with the quote.
func (l *Lexer) readString() Token {
	pos := Position{Row: l.Row, Col: l.Col}

	l.readChar() // opening quote
	start := l.Cur

	for l.Cur < len(l.Content) && l.Content[l.Cur] != '"' {
		l.readChar()
	}

	if l.Cur >= len(l.Content) {
		return Token{
			LiteralToken: LiteralToken{
				Kind: TokenIllegal,
				Text: TokenQuote + string(l.Content[start:]),
			},
			Pos: pos,
		}
	}

	text := string(l.Content[start:l.Cur])
	l.readChar() // closing quote

	return Token{
		LiteralToken: LiteralToken{
			Kind: TokenString,
			Text: text,
		},
		Pos: pos,
	}
}

func (l *Lexer) readNumber() Token {
	startPos := l.Cur
	pos := Position{Row: l.Row, Col: l.Col}

	for l.Cur < len(l.Content) && isDigit(l.Content[l.Cur]) {
		l.readChar()
	}

	return Token{
		LiteralToken: LiteralToken{
			Kind: TokenInt,
			Text: string(l.Content[startPos:l.Cur]),
		},
		Pos: pos,
	}
}

func (l *Lexer) skipComment() {
	for l.Cur < len(l.Content) && string(l.Content[l.Cur]) == TokenComment {
		for l.Cur < len(l.Content) && l.Content[l.Cur] != '\n' {
			l.readChar()
		}
		l.skipWhiteSpace()
	}
}

func (l *Lexer) skipWhiteSpace() {
	for l.Cur < len(l.Content) && unicode.IsSpace(l.Content[l.Cur]) {
		l.readChar()
	}
}
