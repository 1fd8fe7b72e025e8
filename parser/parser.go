package parser

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"monkey/ast"
	"monkey/internals"
	"monkey/lexer"
)

const (
	_ int = iota
	LOWEST
	EQUALS      // == !=
	LESSGREATER // > <
	SUM         // + -
	PRODUCT     // * /
	PREFIX      // -X or !X
	CALL        // myFunction(X)
	INDEX       // arr[i]
)

var precedences = map[lexer.TokenKind]int{
	lexer.TokenEquals:      EQUALS,
	lexer.TokenNotEquals:   EQUALS,
	lexer.TokenLess:        LESSGREATER,
	lexer.TokenGreater:     LESSGREATER,
	lexer.TokenPlus:        SUM,
	lexer.TokenMinus:       SUM,
	lexer.TokenSlash:       PRODUCT,
	lexer.TokenMultiply:    PRODUCT,
	lexer.TokenBraceOpen:   CALL,
	lexer.TokenBracketOpen: INDEX,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

type Option func(*Parser)

// WithFailFast stops parsing at the first syntax error instead of collecting
// every error of the input.
func WithFailFast() Option {
	return func(p *Parser) { p.failFast = true }
}

// WithTrace logs entry and exit of the parse functions at debug level.
func WithTrace(logger *slog.Logger) Option {
	return func(p *Parser) { p.tracer = logger }
}

type Parser struct {
	lexer          *lexer.Lexer
	FilePath       string
	errors         *internals.ErrorCollector
	prefixParseFns map[lexer.TokenKind]prefixParseFn
	infixParseFns  map[lexer.TokenKind]infixParseFn
	failFast       bool
	tracer         *slog.Logger
	traceLevel     int
	depth          int // unclosed '{' before curToken

	curToken  lexer.Token
	peekToken lexer.Token // one token lookahead
}

func NewParser(lex *lexer.Lexer, filepath string, opts ...Option) *Parser {
	p := Parser{
		lexer:          lex,
		FilePath:       filepath,
		errors:         internals.NewErrorCollector(),
		prefixParseFns: make(map[lexer.TokenKind]prefixParseFn),
		infixParseFns:  make(map[lexer.TokenKind]infixParseFn),
	}

	for _, opt := range opts {
		opt(&p)
	}

	// prefix/unary operators
	p.registerPrefix(lexer.TokenIdentifier, p.parseIdentifier)
	p.registerPrefix(lexer.TokenInt, p.parseIntLiteral)
	p.registerPrefix(lexer.TokenString, p.parseStringLiteral)
	p.registerPrefix(lexer.TokenTrue, p.parseBooleanLiteral)
	p.registerPrefix(lexer.TokenFalse, p.parseBooleanLiteral)
	for kind := range lexer.UnaryOperators {
		p.registerPrefix(kind, p.parsePrefixExpression)
	}
	p.registerPrefix(lexer.TokenBraceOpen, p.parseGroupedExpression)
	p.registerPrefix(lexer.TokenIf, p.parseIfExpression)
	p.registerPrefix(lexer.TokenFn, p.parseFunctionExpression)
	p.registerPrefix(lexer.TokenBracketOpen, p.parseArrayLiteral)
	p.registerPrefix(lexer.TokenCurlyBraceOpen, p.parseHashLiteral)

	// infix/binary operators
	for kind := range lexer.BinOperators {
		p.registerInfix(kind, p.parseInfixExpression)
	}
	p.registerInfix(lexer.TokenBraceOpen, p.parseCallExpression)
	p.registerInfix(lexer.TokenBracketOpen, p.parseIndexExpression)

	// set the tok position
	p.nextToken()
	p.nextToken()

	return &p
}

// ParseSource lexes and parses src in one go. When the returned error list is
// not empty the program must not be evaluated.
func ParseSource(filePath, src string, opts ...Option) (*ast.Program, []error) {
	p := NewParser(lexer.NewLexer(filePath, src), filePath, opts...)
	program := p.Parse()
	return program, p.Errors()
}

// Errors returns the syntax errors in the order they were found.
func (p *Parser) Errors() []error {
	return p.errors.Errors
}

func (p *Parser) nextToken() {
	switch p.curToken.Kind {
	case lexer.TokenCurlyBraceOpen:
		p.depth++
	case lexer.TokenCurlyBraceClose:
		if p.depth > 0 {
			p.depth--
		}
	}
	p.curToken = p.peekToken
	p.peekToken = p.lexer.NextToken()
}

func (p *Parser) curTokenKindIs(kind lexer.TokenKind) bool {
	return p.curToken.Kind == kind
}

func (p *Parser) peekTokenKindIs(kind lexer.TokenKind) bool {
	return p.peekToken.Kind == kind
}

// expectPeek advances only when the next token has the wanted kind.
func (p *Parser) expectPeek(kind lexer.TokenKind) bool {
	if p.peekTokenKindIs(kind) {
		p.nextToken()
		return true
	}
	p.peekError(kind)
	return false
}

func (p *Parser) peekPrecedence() int {
	if p, ok := precedences[p.peekToken.Kind]; ok {
		return p
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if p, ok := precedences[p.curToken.Kind]; ok {
		return p
	}
	return LOWEST
}

func (p *Parser) error(tok lexer.Token, msg ...interface{}) error {
	loc := fmt.Sprintf("%d:%d", tok.Pos.Row, tok.Pos.Col)
	if p.FilePath != "" {
		loc = p.FilePath + ":" + loc
	}
	return errors.New(loc + ": " + fmt.Sprint(msg...))
}

func (p *Parser) add(err error) {
	p.errors.Add(err)
}

func (p *Parser) peekError(kind lexer.TokenKind) {
	p.add(p.error(p.peekToken, "expected next token to be ", kind, ", got ", describe(p.peekToken), " instead"))
}

// describe names a token for error messages, illegal tokens carry their text.
func describe(tok lexer.Token) string {
	if tok.Kind == lexer.TokenIllegal {
		return fmt.Sprintf("%s %s", tok.Kind, tok.Text)
	}
	return tok.Kind
}

func (p *Parser) registerPrefix(tokenType lexer.TokenKind, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

func (p *Parser) registerInfix(tokenType lexer.TokenKind, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

// Parse reads statements until EOF. After a failed statement the parser skips
// to the next semicolon and carries on, unless it runs in fail fast mode.
func (p *Parser) Parse() *ast.Program {
	program := ast.Program{
		Statements: []ast.Statement{},
	}

	for !p.curTokenKindIs(lexer.TokenEOF) {
		before := p.errors.Len()
		depth := p.depth
		stmt := p.parseStatement()

		if p.errors.Len() > before {
			if p.failFast {
				break
			}
			p.sync(depth)
			continue
		}
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.nextToken()
	}

	return &program
}

// sync moves past the next semicolon at the brace depth the failed statement
// started at, or to EOF. Semicolons inside the statement's blocks are skipped.
func (p *Parser) sync(depth int) {
	for !p.curTokenKindIs(lexer.TokenEOF) {
		if p.curTokenKindIs(lexer.TokenSemicolon) && p.depth <= depth {
			p.nextToken()
			return
		}
		p.nextToken()
	}
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Kind {
	case lexer.TokenLet:
		return p.parseLetStatement()
	case lexer.TokenReturn:
		return p.parseReturnStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseLetStatement() ast.Statement {
	defer p.untrace(p.trace("parseLetStatement"))

	stmt := &ast.LetStatement{Token: p.curToken}

	if !p.expectPeek(lexer.TokenIdentifier) {
		return nil
	}

	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Text}

	if !p.expectPeek(lexer.TokenAssign) {
		return nil
	}

	p.nextToken()

	stmt.Value = p.parseExpression(LOWEST)
	if stmt.Value == nil {
		return nil
	}

	if p.peekTokenKindIs(lexer.TokenSemicolon) {
		p.nextToken()
	}

	return stmt
}

func (p *Parser) parseReturnStatement() ast.Statement {
	defer p.untrace(p.trace("parseReturnStatement"))

	stmt := &ast.ReturnStatement{Token: p.curToken}
	p.nextToken()

	stmt.ReturnValue = p.parseExpression(LOWEST)
	if stmt.ReturnValue == nil {
		return nil
	}

	if p.peekTokenKindIs(lexer.TokenSemicolon) {
		p.nextToken()
	}

	return stmt
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	defer p.untrace(p.trace("parseExpressionStatement"))

	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}

	stmt := &ast.ExpressionStatement{Expression: expr}

	if p.peekTokenKindIs(lexer.TokenSemicolon) {
		p.nextToken()
	}

	return stmt
}

// parseExpression is the Pratt loop: parse a prefix for the current token,
// then keep folding infix operators while the next operator binds tighter
// than precedence.
func (p *Parser) parseExpression(precedence int) ast.Expression {
	defer p.untrace(p.trace("parseExpression"))

	cur := p.curToken

	if cur.Kind == lexer.TokenIllegal {
		p.add(p.error(cur, "illegal token ", cur.Text))
		return nil
	}

	prefix := p.prefixParseFns[cur.Kind]
	if prefix == nil {
		p.add(p.error(cur, "no prefix parse function for ", cur.Kind, " found"))
		return nil
	}

	leftExp := prefix()

	for leftExp != nil && !p.peekTokenKindIs(lexer.TokenSemicolon) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Kind]
		if infix == nil {
			return leftExp
		}
		p.nextToken()
		leftExp = infix(leftExp)
	}

	return leftExp
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Text}
}

func (p *Parser) parseIntLiteral() ast.Expression {
	tok := p.curToken

	num, err := strconv.ParseInt(tok.Text, 10, 64)
	if err != nil {
		p.add(p.error(tok, "could not parse ", tok.Text, " as integer"))
		return nil
	}
	// leading zeros are dropped so the literal displays the way it parses
	tok.Text = strconv.FormatInt(num, 10)
	return &ast.IntegerLiteral{
		Token: tok,
		Value: num,
	}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{
		Token: p.curToken,
		Value: p.curToken.Text,
	}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{
		Token: p.curToken,
		Value: p.curTokenKindIs(lexer.TokenTrue),
	}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	defer p.untrace(p.trace("parsePrefixExpression"))

	tok := p.curToken
	p.nextToken()

	right := p.parseExpression(PREFIX)
	if right == nil {
		return nil
	}

	return &ast.UnaryExpression{
		Token:    tok,
		Operator: tok.Text,
		Right:    right,
	}
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	defer p.untrace(p.trace("parseInfixExpression"))

	tok := p.curToken
	precedence := p.curPrecedence()
	p.nextToken()

	// recursing with the operator's own precedence makes it left associative
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}

	return &ast.BinaryExpression{
		Token:    tok,
		Operator: tok.Text,
		Left:     left,
		Right:    right,
	}
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()

	exp := p.parseExpression(LOWEST)
	if exp == nil {
		return nil
	}

	if !p.expectPeek(lexer.TokenBraceClose) {
		return nil
	}
	return exp
}

func (p *Parser) parseIfExpression() ast.Expression {
	defer p.untrace(p.trace("parseIfExpression"))

	expr := &ast.IfExpression{Token: p.curToken}

	if !p.expectPeek(lexer.TokenBraceOpen) {
		return nil
	}

	p.nextToken()
	expr.Condition = p.parseExpression(LOWEST)
	if expr.Condition == nil {
		return nil
	}

	if !p.expectPeek(lexer.TokenBraceClose) {
		return nil
	}

	if !p.expectPeek(lexer.TokenCurlyBraceOpen) {
		return nil
	}

	expr.Consequence = p.parseBlockStatement()
	if expr.Consequence == nil {
		return nil
	}

	if p.peekTokenKindIs(lexer.TokenElse) {
		p.nextToken()

		if !p.expectPeek(lexer.TokenCurlyBraceOpen) {
			return nil
		}

		expr.Alternative = p.parseBlockStatement()
		if expr.Alternative == nil {
			return nil
		}
	}

	return expr
}

// parseBlockStatement expects the current token to be '{' and leaves the
// parser on the matching '}'.
func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	defer p.untrace(p.trace("parseBlockStatement"))

	block := &ast.BlockStatement{Token: p.curToken}
	block.Body = []ast.Statement{}

	p.nextToken()

	for !p.curTokenKindIs(lexer.TokenCurlyBraceClose) {
		if p.curTokenKindIs(lexer.TokenEOF) {
			p.add(p.error(p.curToken, "expected next token to be ", lexer.TokenCurlyBraceClose, ", got ", describe(p.curToken), " instead"))
			return nil
		}

		before := p.errors.Len()
		stmt := p.parseStatement()
		if p.errors.Len() > before {
			return nil
		}
		if stmt != nil {
			block.Body = append(block.Body, stmt)
		}
		p.nextToken()
	}

	return block
}

func (p *Parser) parseFunctionExpression() ast.Expression {
	defer p.untrace(p.trace("parseFunctionExpression"))

	expr := &ast.FunctionExpression{Token: p.curToken}

	if !p.expectPeek(lexer.TokenBraceOpen) {
		return nil
	}

	params, ok := p.parseFunctionParameters()
	if !ok {
		return nil
	}
	expr.Parameters = params

	if !p.expectPeek(lexer.TokenCurlyBraceOpen) {
		return nil
	}

	expr.Body = p.parseBlockStatement()
	if expr.Body == nil {
		return nil
	}

	return expr
}

func (p *Parser) parseFunctionParameters() ([]*ast.Identifier, bool) {
	identifiers := []*ast.Identifier{}

	if p.peekTokenKindIs(lexer.TokenBraceClose) {
		p.nextToken()
		return identifiers, true
	}

	if !p.expectPeek(lexer.TokenIdentifier) {
		return nil, false
	}
	identifiers = append(identifiers, &ast.Identifier{Token: p.curToken, Value: p.curToken.Text})

	for p.peekTokenKindIs(lexer.TokenComma) {
		p.nextToken()
		if !p.expectPeek(lexer.TokenIdentifier) {
			return nil, false
		}
		identifiers = append(identifiers, &ast.Identifier{Token: p.curToken, Value: p.curToken.Text})
	}

	if !p.expectPeek(lexer.TokenBraceClose) {
		return nil, false
	}

	return identifiers, true
}

func (p *Parser) parseCallExpression(function ast.Expression) ast.Expression {
	defer p.untrace(p.trace("parseCallExpression"))

	exp := &ast.CallExpression{Token: p.curToken, Function: function}

	args, ok := p.parseExpressionList(lexer.TokenBraceClose)
	if !ok {
		return nil
	}
	exp.Args = args

	return exp
}

// parseExpressionList parses comma separated expressions up to end, the
// current token being the opening delimiter.
func (p *Parser) parseExpressionList(end lexer.TokenKind) ([]ast.Expression, bool) {
	list := []ast.Expression{}

	if p.peekTokenKindIs(end) {
		p.nextToken()
		return list, true
	}

	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil, false
	}
	list = append(list, expr)

	for p.peekTokenKindIs(lexer.TokenComma) {
		p.nextToken()
		p.nextToken()
		expr := p.parseExpression(LOWEST)
		if expr == nil {
			return nil, false
		}
		list = append(list, expr)
	}

	if !p.expectPeek(end) {
		return nil, false
	}

	return list, true
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	defer p.untrace(p.trace("parseArrayLiteral"))

	array := &ast.ArrayLiteral{Token: p.curToken}

	elements, ok := p.parseExpressionList(lexer.TokenBracketClose)
	if !ok {
		return nil
	}
	array.Elements = elements

	return array
}

func (p *Parser) parseHashLiteral() ast.Expression {
	defer p.untrace(p.trace("parseHashLiteral"))

	hash := &ast.HashLiteral{Token: p.curToken, Pairs: []ast.HashPair{}}

	for !p.peekTokenKindIs(lexer.TokenCurlyBraceClose) {
		p.nextToken()
		key := p.parseExpression(LOWEST)
		if key == nil {
			return nil
		}

		if !p.expectPeek(lexer.TokenColon) {
			return nil
		}

		p.nextToken()
		value := p.parseExpression(LOWEST)
		if value == nil {
			return nil
		}

		hash.Pairs = append(hash.Pairs, ast.HashPair{Key: key, Value: value})

		if !p.peekTokenKindIs(lexer.TokenCurlyBraceClose) && !p.expectPeek(lexer.TokenComma) {
			return nil
		}
	}

	if !p.expectPeek(lexer.TokenCurlyBraceClose) {
		return nil
	}

	return hash
}

func (p *Parser) parseIndexExpression(left ast.Expression) ast.Expression {
	defer p.untrace(p.trace("parseIndexExpression"))

	exp := &ast.IndexExpression{Token: p.curToken, Left: left}

	p.nextToken()
	exp.Index = p.parseExpression(LOWEST)
	if exp.Index == nil {
		return nil
	}

	if !p.expectPeek(lexer.TokenBracketClose) {
		return nil
	}

	return exp
}
