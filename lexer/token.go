package lexer

type TokenKind = string

const (
	// Keywords
	TokenLet    TokenKind = "let"
	TokenFn     TokenKind = "fn"
	TokenIf     TokenKind = "if"
	TokenElse   TokenKind = "else"
	TokenReturn TokenKind = "return"
	TokenTrue   TokenKind = "true"
	TokenFalse  TokenKind = "false"

	// Units
	TokenCurlyBraceOpen  TokenKind = "{"
	TokenCurlyBraceClose TokenKind = "}"
	TokenBracketOpen     TokenKind = "["
	TokenBracketClose    TokenKind = "]"
	TokenBraceOpen       TokenKind = "("
	TokenBraceClose      TokenKind = ")"
	TokenQuote           TokenKind = `"`
	TokenColon           TokenKind = ":"
	TokenComma           TokenKind = ","
	TokenSemicolon       TokenKind = ";"

	// Operators
	TokenAssign      TokenKind = "="
	TokenMinus       TokenKind = "-"
	TokenPlus        TokenKind = "+"
	TokenMultiply    TokenKind = "*"
	TokenSlash       TokenKind = "/"
	TokenExclamation TokenKind = "!"
	TokenEquals      TokenKind = "=="
	TokenNotEquals   TokenKind = "!="
	TokenGreater     TokenKind = ">"
	TokenLess        TokenKind = "<"

	// Comment
	TokenComment TokenKind = "#"

	TokenIdentifier TokenKind = "identifier"
	TokenInt        TokenKind = "int"
	TokenString     TokenKind = "string"

	// unrecognized input, the text carries the offending characters
	TokenIllegal TokenKind = "illegal"

	TokenEOF TokenKind = "EOF"
)

type LiteralToken struct {
	Text string
	Kind TokenKind
}

// Position is informational only, two tokens at different places are still
// the same token for structural comparisons.
type Position struct {
	Row int
	Col int
}

type Token struct {
	LiteralToken
	Pos Position `deep:"-"`
}

type Lexer struct {
	Content []rune
	// help mainly in error detection when having multi file execution
	FilePath string
	Row      int
	Col      int
	Cur      int
}
