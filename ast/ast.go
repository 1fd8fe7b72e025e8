package ast

import (
	"bytes"
	"strconv"
	"strings"

	"monkey/lexer"
)

type Node interface {
	TokenLiteral() string
	String() string
	GetToken() lexer.Token
}

type Statement interface {
	Node
	statementNode()
}

type Expression interface {
	Node
	expressionNode()
}

type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	} else {
		return ""
	}
}

func (p *Program) GetToken() lexer.Token {
	if len(p.Statements) > 0 {
		return p.Statements[0].GetToken()
	}
	return lexer.Token{}
}

func (p *Program) String() string {
	var out bytes.Buffer
	writeStatements(&out, p.Statements)
	return out.String()
}

// writeStatements renders statements so that the output parses back into the
// same statements: expression statements followed by another statement get a
// semicolon, otherwise `a (b)` would come back as a call.
func writeStatements(out *bytes.Buffer, stmts []Statement) {
	for idx, s := range stmts {
		if idx > 0 {
			out.WriteString(" ")
		}
		out.WriteString(s.String())
		if _, ok := s.(*ExpressionStatement); ok && idx+1 < len(stmts) {
			out.WriteString(";")
		}
	}
}

type LetStatement struct {
	Token lexer.Token // the 'let' token
	Name  *Identifier
	Value Expression
}

func (ls *LetStatement) statementNode()        {}
func (ls *LetStatement) TokenLiteral() string  { return ls.Token.Text }
func (ls *LetStatement) GetToken() lexer.Token { return ls.Token }
func (ls *LetStatement) String() string {
	var out bytes.Buffer
	out.WriteString(ls.TokenLiteral() + " ")
	out.WriteString(ls.Name.String())
	out.WriteString(" = ")
	if ls.Value != nil {
		out.WriteString(ls.Value.String())
	}
	out.WriteString(";")
	return out.String()
}

type ReturnStatement struct {
	Token       lexer.Token // the 'return' token
	ReturnValue Expression
}

func (rs *ReturnStatement) statementNode()        {}
func (rs *ReturnStatement) TokenLiteral() string  { return rs.Token.Text }
func (rs *ReturnStatement) GetToken() lexer.Token { return rs.Token }
func (rs *ReturnStatement) String() string {
	var out bytes.Buffer
	out.WriteString(rs.TokenLiteral() + " ")
	if rs.ReturnValue != nil {
		out.WriteString(rs.ReturnValue.String())
	}
	out.WriteString(";")
	return out.String()
}

// ExpressionStatement borrows the token of its expression, so `(a + b)` and
// `a + b` produce the same statement.
type ExpressionStatement struct {
	Expression Expression
}

func (es *ExpressionStatement) statementNode()        {}
func (es *ExpressionStatement) TokenLiteral() string  { return es.Expression.TokenLiteral() }
func (es *ExpressionStatement) GetToken() lexer.Token { return es.Expression.GetToken() }
func (es *ExpressionStatement) String() string {
	if es.Expression != nil {
		return es.Expression.String()
	}
	return ""
}

type BlockStatement struct {
	Token lexer.Token // the '{' token
	Body  []Statement
}

func (bs *BlockStatement) statementNode()        {}
func (bs *BlockStatement) TokenLiteral() string  { return bs.Token.Text }
func (bs *BlockStatement) GetToken() lexer.Token { return bs.Token }
func (bs *BlockStatement) String() string {
	if len(bs.Body) == 0 {
		return "{ }"
	}
	var out bytes.Buffer
	out.WriteString("{ ")
	writeStatements(&out, bs.Body)
	out.WriteString(" }")
	return out.String()
}

type Identifier struct {
	Token lexer.Token // the identifier token
	Value string
}

func (i *Identifier) expressionNode()       {}
func (i *Identifier) TokenLiteral() string  { return i.Token.Text }
func (i *Identifier) GetToken() lexer.Token { return i.Token }
func (i *Identifier) String() string        { return i.Value }

type IntegerLiteral struct {
	Token lexer.Token
	Value int64
}

func (il *IntegerLiteral) expressionNode()       {}
func (il *IntegerLiteral) TokenLiteral() string  { return il.Token.Text }
func (il *IntegerLiteral) GetToken() lexer.Token { return il.Token }
func (il *IntegerLiteral) String() string        { return strconv.FormatInt(il.Value, 10) }

type StringLiteral struct {
	Token lexer.Token
	Value string
}

func (sl *StringLiteral) expressionNode()       {}
func (sl *StringLiteral) TokenLiteral() string  { return sl.Token.Text }
func (sl *StringLiteral) GetToken() lexer.Token { return sl.Token }
func (sl *StringLiteral) String() string {
	var out bytes.Buffer
	out.WriteString(`"`)
	out.WriteString(sl.Value)
	out.WriteString(`"`)
	return out.String()
}

type BooleanLiteral struct {
	Token lexer.Token
	Value bool
}

func (bl *BooleanLiteral) expressionNode()       {}
func (bl *BooleanLiteral) TokenLiteral() string  { return bl.Token.Text }
func (bl *BooleanLiteral) GetToken() lexer.Token { return bl.Token }
func (bl *BooleanLiteral) String() string        { return strconv.FormatBool(bl.Value) }

type ArrayLiteral struct {
	Token    lexer.Token // the '[' token
	Elements []Expression
}

func (al *ArrayLiteral) expressionNode()       {}
func (al *ArrayLiteral) TokenLiteral() string  { return al.Token.Text }
func (al *ArrayLiteral) GetToken() lexer.Token { return al.Token }
func (al *ArrayLiteral) String() string {
	var out bytes.Buffer
	elements := make([]string, 0, len(al.Elements))
	for _, elem := range al.Elements {
		elements = append(elements, elem.String())
	}
	out.WriteString("[")
	out.WriteString(strings.Join(elements, ", "))
	out.WriteString("]")
	return out.String()
}

type HashPair struct {
	Key   Expression
	Value Expression
}

// HashLiteral keeps its pairs in source order, which is also the order they
// are evaluated in.
type HashLiteral struct {
	Token lexer.Token // the '{' token
	Pairs []HashPair
}

func (hl *HashLiteral) expressionNode()       {}
func (hl *HashLiteral) TokenLiteral() string  { return hl.Token.Text }
func (hl *HashLiteral) GetToken() lexer.Token { return hl.Token }
func (hl *HashLiteral) String() string {
	var out bytes.Buffer
	pairs := make([]string, 0, len(hl.Pairs))
	for _, pair := range hl.Pairs {
		pairs = append(pairs, pair.Key.String()+": "+pair.Value.String())
	}
	out.WriteString("{")
	out.WriteString(strings.Join(pairs, ", "))
	out.WriteString("}")
	return out.String()
}

type UnaryExpression struct {
	Token    lexer.Token // the operator token
	Operator string
	Right    Expression
}

func (u *UnaryExpression) expressionNode()       {}
func (u *UnaryExpression) TokenLiteral() string  { return u.Token.Text }
func (u *UnaryExpression) GetToken() lexer.Token { return u.Token }
func (u *UnaryExpression) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(u.Operator)
	out.WriteString(u.Right.String())
	out.WriteString(")")
	return out.String()
}

type BinaryExpression struct {
	Token    lexer.Token // the operator token
	Operator string
	Left     Expression
	Right    Expression
}

func (b *BinaryExpression) expressionNode()       {}
func (b *BinaryExpression) TokenLiteral() string  { return b.Token.Text }
func (b *BinaryExpression) GetToken() lexer.Token { return b.Token }
func (b *BinaryExpression) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(b.Left.String())
	out.WriteString(" " + b.Operator + " ")
	out.WriteString(b.Right.String())
	out.WriteString(")")
	return out.String()
}

type IfExpression struct {
	Token       lexer.Token // the 'if' token
	Condition   Expression
	Consequence *BlockStatement
	Alternative *BlockStatement
}

func (ie *IfExpression) expressionNode()       {}
func (ie *IfExpression) TokenLiteral() string  { return ie.Token.Text }
func (ie *IfExpression) GetToken() lexer.Token { return ie.Token }
func (ie *IfExpression) String() string {
	var out bytes.Buffer
	out.WriteString("if (")
	out.WriteString(ie.Condition.String())
	out.WriteString(") ")
	out.WriteString(ie.Consequence.String())
	if ie.Alternative != nil {
		out.WriteString(" else ")
		out.WriteString(ie.Alternative.String())
	}
	return out.String()
}

type FunctionExpression struct {
	Token      lexer.Token // the 'fn' token
	Parameters []*Identifier
	Body       *BlockStatement
}

func (fn *FunctionExpression) expressionNode()       {}
func (fn *FunctionExpression) TokenLiteral() string  { return fn.Token.Text }
func (fn *FunctionExpression) GetToken() lexer.Token { return fn.Token }
func (fn *FunctionExpression) String() string {
	var out bytes.Buffer
	params := make([]string, 0, len(fn.Parameters))
	for _, p := range fn.Parameters {
		params = append(params, p.String())
	}
	out.WriteString(fn.TokenLiteral())
	out.WriteString("(")
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(") ")
	out.WriteString(fn.Body.String())
	return out.String()
}

type CallExpression struct {
	Token    lexer.Token // the '(' token
	Function Expression  // identifier, function literal or any expression yielding a function
	Args     []Expression
}

func (ce *CallExpression) expressionNode()       {}
func (ce *CallExpression) TokenLiteral() string  { return ce.Token.Text }
func (ce *CallExpression) GetToken() lexer.Token { return ce.Token }
func (ce *CallExpression) String() string {
	var out bytes.Buffer
	args := make([]string, 0, len(ce.Args))
	for _, a := range ce.Args {
		args = append(args, a.String())
	}
	out.WriteString(ce.Function.String())
	out.WriteString("(")
	out.WriteString(strings.Join(args, ", "))
	out.WriteString(")")
	return out.String()
}

type IndexExpression struct {
	Token lexer.Token // the '[' token
	Left  Expression
	Index Expression
}

func (ie *IndexExpression) expressionNode()       {}
func (ie *IndexExpression) TokenLiteral() string  { return ie.Token.Text }
func (ie *IndexExpression) GetToken() lexer.Token { return ie.Token }
func (ie *IndexExpression) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(ie.Left.String())
	out.WriteString("[")
	out.WriteString(ie.Index.String())
	out.WriteString("])")
	return out.String()
}
