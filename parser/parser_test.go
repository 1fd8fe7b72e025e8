package parser

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/go-test/deep"

	"monkey/ast"
	"monkey/internals"
)

func init() {
	// programs nest deeper than deep's default of 10 levels
	deep.MaxDepth = 100
}

func parse(t *testing.T, input string) *ast.Program {
	t.Helper()
	program, errs := ParseSource("", input)
	checkParserErrors(t, errs)
	return program
}

func checkParserErrors(t *testing.T, errs []error) {
	t.Helper()
	if len(errs) == 0 {
		return
	}
	t.Errorf("parser has %d errors", len(errs))
	for _, err := range errs {
		t.Errorf("parser error: %q", err)
	}
	t.FailNow()
}

func TestLetStatements(t *testing.T) {
	tests := []struct {
		input              string
		expectedIdentifier string
		expectedValue      string
	}{
		{"let x = 5;", "x", "5"},
		{"let y = true;", "y", "true"},
		{"let foobar = y", "foobar", "y"},
		{`let s = "hi";`, "s", `"hi"`},
	}

	for _, tt := range tests {
		program := parse(t, tt.input)

		if len(program.Statements) != 1 {
			t.Fatalf("program.Statements does not contain 1 statement. got=%d", len(program.Statements))
		}

		stmt, ok := program.Statements[0].(*ast.LetStatement)
		if !ok {
			t.Fatalf("stmt not *ast.LetStatement. got=%T", program.Statements[0])
		}
		if stmt.Name.Value != tt.expectedIdentifier {
			t.Errorf("stmt.Name.Value not %q. got=%q", tt.expectedIdentifier, stmt.Name.Value)
		}
		if stmt.Value.String() != tt.expectedValue {
			t.Errorf("stmt.Value not %q. got=%q", tt.expectedValue, stmt.Value.String())
		}
	}
}

func TestReturnStatements(t *testing.T) {
	tests := []struct {
		input         string
		expectedValue string
	}{
		{"return 5;", "5"},
		{"return true;", "true"},
		{"return foobar", "foobar"},
		{"return a + b;", "(a + b)"},
	}

	for _, tt := range tests {
		program := parse(t, tt.input)

		if len(program.Statements) != 1 {
			t.Fatalf("program.Statements does not contain 1 statement. got=%d", len(program.Statements))
		}
		stmt, ok := program.Statements[0].(*ast.ReturnStatement)
		if !ok {
			t.Fatalf("stmt not *ast.ReturnStatement. got=%T", program.Statements[0])
		}
		if stmt.TokenLiteral() != "return" {
			t.Errorf("TokenLiteral not 'return', got %q", stmt.TokenLiteral())
		}
		if stmt.ReturnValue.String() != tt.expectedValue {
			t.Errorf("ReturnValue not %q. got=%q", tt.expectedValue, stmt.ReturnValue.String())
		}
	}
}

func TestLiteralExpressions(t *testing.T) {
	program := parse(t, `foobar; 5; true; false; "hello world";`)

	expected := []ast.Expression{
		&ast.Identifier{Value: "foobar"},
		&ast.IntegerLiteral{Value: 5},
		&ast.BooleanLiteral{Value: true},
		&ast.BooleanLiteral{Value: false},
		&ast.StringLiteral{Value: "hello world"},
	}

	if len(program.Statements) != len(expected) {
		t.Fatalf("expected %d statements, got %d", len(expected), len(program.Statements))
	}

	for i, want := range expected {
		stmt, ok := program.Statements[i].(*ast.ExpressionStatement)
		if !ok {
			t.Fatalf("statement %d is not *ast.ExpressionStatement. got=%T", i, program.Statements[i])
		}
		got := stmt.Expression
		// tokens are not part of the comparison here, drop them
		switch e := got.(type) {
		case *ast.Identifier:
			got = &ast.Identifier{Value: e.Value}
		case *ast.IntegerLiteral:
			got = &ast.IntegerLiteral{Value: e.Value}
		case *ast.BooleanLiteral:
			got = &ast.BooleanLiteral{Value: e.Value}
		case *ast.StringLiteral:
			got = &ast.StringLiteral{Value: e.Value}
		}
		if diff := deep.Equal(got, want); diff != nil {
			t.Errorf("statement %d: %v", i, diff)
		}
	}
}

func TestOperatorPrecedenceParsing(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"-a * b", "((-a) * b)"},
		{"!-a", "(!(-a))"},
		{"!!5", "(!(!5))"},
		{"a + b + c", "((a + b) + c)"},
		{"a + b - c", "((a + b) - c)"},
		{"a * b * c", "((a * b) * c)"},
		{"a * b / c", "((a * b) / c)"},
		{"a - b - c", "((a - b) - c)"},
		{"a + b / c", "(a + (b / c))"},
		{"a + b * c + d / e - f", "(((a + (b * c)) + (d / e)) - f)"},
		{"3 + 4; -5 * 5", "(3 + 4); ((-5) * 5)"},
		{"5 > 4 == 3 < 4", "((5 > 4) == (3 < 4))"},
		{"5 < 4 != 3 > 4", "((5 < 4) != (3 > 4))"},
		{"3 + 4 * 5 == 3 * 1 + 4 * 5", "((3 + (4 * 5)) == ((3 * 1) + (4 * 5)))"},
		{"true", "true"},
		{"3 > 5 == false", "((3 > 5) == false)"},
		{"3 < 5 == true", "((3 < 5) == true)"},
		{"1 + (2 + 3) + 4", "((1 + (2 + 3)) + 4)"},
		{"(5 + 5) * 2", "((5 + 5) * 2)"},
		{"5 + 5 * 2", "(5 + (5 * 2))"},
		{"2 / (5 + 5)", "(2 / (5 + 5))"},
		{"-(5 + 5)", "(-(5 + 5))"},
		{"!(true == true)", "(!(true == true))"},
		{"a + add(b * c) + d", "((a + add((b * c))) + d)"},
		{"add(a, b, 1, 2 * 3, 4 + 5, add(6, 7 * 8))", "add(a, b, 1, (2 * 3), (4 + 5), add(6, (7 * 8)))"},
		{"add(a + b + c * d / f + g)", "add((((a + b) + ((c * d) / f)) + g))"},
		{"a * [1, 2, 3, 4][b * c] * d", "((a * ([1, 2, 3, 4][(b * c)])) * d)"},
		{"add(a * b[2], b[1], 2 * [1, 2][1])", "add((a * (b[2])), (b[1]), (2 * ([1, 2][1])))"},
		{"-a[0]", "(-(a[0]))"},
		{"f(1)(2)", "f(1)(2)"},
		{"fn(x) { x }(5)", "fn(x) { x }(5)"},
	}

	for _, tt := range tests {
		program := parse(t, tt.input)
		if actual := program.String(); actual != tt.expected {
			t.Errorf("input %q: expected=%q, got=%q", tt.input, tt.expected, actual)
		}
	}
}

func TestIfExpression(t *testing.T) {
	program := parse(t, `if (x < y) { x } else { y; z }`)

	if len(program.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.Statements))
	}
	stmt := program.Statements[0].(*ast.ExpressionStatement)
	exp, ok := stmt.Expression.(*ast.IfExpression)
	if !ok {
		t.Fatalf("expression is not *ast.IfExpression. got=%T", stmt.Expression)
	}
	if exp.Condition.String() != "(x < y)" {
		t.Errorf("condition wrong, got %q", exp.Condition.String())
	}
	if len(exp.Consequence.Body) != 1 {
		t.Errorf("consequence is not 1 statement. got=%d", len(exp.Consequence.Body))
	}
	if exp.Alternative == nil || len(exp.Alternative.Body) != 2 {
		t.Fatalf("alternative should hold 2 statements, got %+v", exp.Alternative)
	}

	program = parse(t, `if (x) { }`)
	exp = program.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.IfExpression)
	if exp.Alternative != nil {
		t.Errorf("alternative should be nil, got %v", exp.Alternative)
	}
	if len(exp.Consequence.Body) != 0 {
		t.Errorf("consequence should be empty, got %v", exp.Consequence)
	}
}

func TestFunctionParameterParsing(t *testing.T) {
	tests := []struct {
		input          string
		expectedParams []string
	}{
		{input: "fn() {};", expectedParams: []string{}},
		{input: "fn(x) {};", expectedParams: []string{"x"}},
		{input: "fn(x, y, z) {};", expectedParams: []string{"x", "y", "z"}},
	}

	for _, tt := range tests {
		program := parse(t, tt.input)
		stmt := program.Statements[0].(*ast.ExpressionStatement)
		function, ok := stmt.Expression.(*ast.FunctionExpression)
		if !ok {
			t.Fatalf("expression is not *ast.FunctionExpression. got=%T", stmt.Expression)
		}

		params := make([]string, 0, len(function.Parameters))
		for _, p := range function.Parameters {
			params = append(params, p.Value)
		}
		if diff := deep.Equal(params, tt.expectedParams); diff != nil {
			t.Errorf("input %q: %v", tt.input, diff)
		}
	}
}

func TestHashLiteralKeepsSourceOrder(t *testing.T) {
	program := parse(t, `{"one": 1, true: 2, 3: 4 + 5}`)

	hash, ok := program.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.HashLiteral)
	if !ok {
		t.Fatalf("expression is not *ast.HashLiteral. got=%T", program.Statements[0])
	}

	keys := []string{}
	values := []string{}
	for _, pair := range hash.Pairs {
		keys = append(keys, pair.Key.String())
		values = append(values, pair.Value.String())
	}

	if diff := deep.Equal(keys, []string{`"one"`, "true", "3"}); diff != nil {
		t.Error(diff)
	}
	if diff := deep.Equal(values, []string{"1", "2", "(4 + 5)"}); diff != nil {
		t.Error(diff)
	}

	program = parse(t, "{}")
	hash = program.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.HashLiteral)
	if len(hash.Pairs) != 0 {
		t.Errorf("empty hash should have no pairs, got %d", len(hash.Pairs))
	}
}

func TestOptionalSemicolons(t *testing.T) {
	program := parse(t, "let a = 1\nlet b = 2\na + b")
	if len(program.Statements) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(program.Statements))
	}

	program = parse(t, "fn(x) { let y = x; y }")
	fn := program.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.FunctionExpression)
	if len(fn.Body.Body) != 2 {
		t.Errorf("expected 2 body statements, got %d", len(fn.Body.Body))
	}
}

func TestParserErrors(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"let x 5;", []string{"1:7: expected next token to be =, got int instead"}},
		{"let = 10;", []string{"1:5: expected next token to be identifier, got = instead"}},
		{
			"let x 5;\nlet = 10;\nlet 838383;",
			[]string{
				"1:7: expected next token to be =, got int instead",
				"2:5: expected next token to be identifier, got = instead",
				"3:5: expected next token to be identifier, got int instead",
			},
		},
		{"if (x { 1 }", []string{"1:7: expected next token to be ), got { instead"}},
		{"if (x) { 1", []string{"1:11: expected next token to be }, got EOF instead"}},
		{"fn(x, y { x }", []string{"1:9: expected next token to be ), got { instead"}},
		{"(1 + 2", []string{"1:7: expected next token to be ), got EOF instead"}},
		{"1 + @", []string{"1:5: illegal token @"}},
		{"let a = 1 @ 2", []string{"1:11: illegal token @"}},
		{"{1: 2", []string{"1:6: expected next token to be ,, got EOF instead"}},
		{`"abc`, []string{`1:1: illegal token "abc`}},
		{"}", []string{"1:1: no prefix parse function for } found"}},
		{"99999999999999999999", []string{"1:1: could not parse 99999999999999999999 as integer"}},
		{
			"let f = fn() { let = 1; 2 }; let g = 3;",
			[]string{"1:20: expected next token to be identifier, got = instead"},
		},
		{
			"let f = fn() { if (x) { let = 1; } }; let = 2; let h = {\"a\": @}; 4",
			[]string{
				"1:29: expected next token to be identifier, got = instead",
				"1:43: expected next token to be identifier, got = instead",
				"1:62: illegal token @",
			},
		},
	}

	for _, tt := range tests {
		_, errs := ParseSource("", tt.input)
		msgs := make([]string, 0, len(errs))
		for _, err := range errs {
			msgs = append(msgs, err.Error())
		}
		if diff := deep.Equal(msgs, tt.expected); diff != nil {
			t.Errorf("input %q: %v", tt.input, diff)
		}
	}
}

func TestErrorsCarryFilePath(t *testing.T) {
	_, errs := ParseSource("main.mk", "let = 1")
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	expected := "main.mk:1:5: expected next token to be identifier, got = instead"
	if errs[0].Error() != expected {
		t.Errorf("expected %q, got %q", expected, errs[0].Error())
	}
}

func TestFailFast(t *testing.T) {
	input := "let x 5;\nlet = 10;\nlet 838383;"

	_, errs := ParseSource("", input, WithFailFast())
	if len(errs) != 1 {
		t.Fatalf("fail fast should stop at the first error, got %d errors", len(errs))
	}

	_, errs = ParseSource("", input)
	if len(errs) != 3 {
		t.Fatalf("default mode should collect every error, got %d errors", len(errs))
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"5 + 5 * 2",
		"(5 + 5) * 2",
		"-a * !b == c",
		"let add = fn(a, b) { return a + b; }; add(1, 2 * 3)",
		"let newAdder = fn(x) { fn(y) { x + y } }; let addTwo = newAdder(2); addTwo(3);",
		`if (1 < 2) { "yes" } else { "no"; 3 }`,
		"if (x) { }",
		`{"a": [1, 2, {true: fn() { }}], 3: "b"}["a"][2]`,
		"[1, 2, 3][1 + 1]",
		"fn(x) { x }(5); f(1)(2)",
		"a; (b)",
		"let f = fn() { if (true) { return 1; } 2 };",
		"007 + 0010 * [00]",
	}

	for _, input := range inputs {
		first := parse(t, input)
		display := first.String()

		second, errs := ParseSource("", display)
		if len(errs) != 0 {
			t.Fatalf("input %q: re-parsing %q failed: %v", input, display, errs)
		}

		if diff := deep.Equal(first, second); diff != nil {
			t.Errorf("input %q (display %q): %v", input, display, diff)
		}
		if second.String() != display {
			t.Errorf("display is not stable: %q then %q", display, second.String())
		}
	}
}

func TestTrace(t *testing.T) {
	var buf bytes.Buffer
	logger := internals.NewLogger(&buf, slog.LevelDebug)

	_, errs := ParseSource("", "1 + 2", WithTrace(logger))
	checkParserErrors(t, errs)

	out := buf.String()
	for _, want := range []string{"BEGIN parseExpression", "END parseInfixExpression"} {
		if !strings.Contains(out, want) {
			t.Errorf("trace output is missing %q:\n%s", want, out)
		}
	}
}
