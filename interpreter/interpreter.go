package interpreter

import (
	"fmt"
	"log/slog"

	"monkey/ast"
	"monkey/internals"
	"monkey/lexer"
	"monkey/object"
	"monkey/stdlib"
)

const DefaultMaxCallDepth = 10000

type Option func(*Interpreter)

// WithLogger sets the logger used for debug traces of function calls.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Interpreter) { i.logger = logger }
}

// WithMaxCallDepth bounds the nesting of user function calls, zero or less
// keeps the default.
func WithMaxCallDepth(depth int) Option {
	return func(i *Interpreter) {
		if depth > 0 {
			i.maxCallDepth = depth
		}
	}
}

type Interpreter struct {
	builtins     object.Module
	logger       *slog.Logger
	maxCallDepth int
	depth        int
}

func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		builtins:     stdlib.New(nil),
		logger:       internals.DiscardLogger(),
		maxCallDepth: DefaultMaxCallDepth,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

func newError(format string, a ...interface{}) *object.Error {
	return &object.Error{Message: fmt.Sprintf(format, a...)}
}

// isSignal reports errors and return values, both of which stop the
// evaluation of the enclosing expression and travel up to the call boundary.
func isSignal(obj object.Object) bool {
	if obj != nil {
		rt := obj.Type()
		return rt == object.ERROR_OBJ || rt == object.RETURN_VALUE_OBJ
	}
	return false
}

func typeMismatch(op string, left, right object.Object) *object.Error {
	return newError("type mismatch: %s %s %s", left.Type(), op, right.Type())
}

// Evaluate runs node in env. A failed evaluation comes back as the error,
// which is always an *object.Error.
func (i *Interpreter) Evaluate(node ast.Node, env *object.Environment) (object.Object, error) {
	result := unwrapReturnValue(i.Eval(node, env))
	if result == nil {
		return object.NULL, nil
	}
	if err, ok := result.(*object.Error); ok {
		return nil, err
	}
	return result, nil
}

// Eval evaluates node in env. Statements that produce no value, like let,
// return nil.
func (i *Interpreter) Eval(node ast.Node, env *object.Environment) object.Object {
	switch nd := node.(type) {
	case *ast.Program:
		return i.evalProgram(nd.Statements, env)

	case *ast.ExpressionStatement:
		return i.Eval(nd.Expression, env)

	case *ast.IntegerLiteral:
		return &object.Integer{
			Value: nd.Value,
		}
	case *ast.StringLiteral:
		return &object.String{
			Value: nd.Value,
		}
	case *ast.BooleanLiteral:
		return object.NativeBoolToBooleanObject(nd.Value)

	case *ast.ArrayLiteral:
		elements := i.evalExpressions(nd.Elements, env)
		if len(elements) == 1 && isSignal(elements[0]) {
			return elements[0]
		}
		return &object.Array{Elements: elements}

	case *ast.HashLiteral:
		return i.evalHashLiteral(nd, env)

	case *ast.IndexExpression:
		left := i.Eval(nd.Left, env)
		if isSignal(left) {
			return left
		}
		index := i.Eval(nd.Index, env)
		if isSignal(index) {
			return index
		}
		return i.evalIndexExpression(left, index)

	case *ast.LetStatement:
		val := i.Eval(nd.Value, env)
		if isSignal(val) {
			return val
		}
		env.Define(nd.Name.Value, val)

	case *ast.Identifier:
		return i.evalIdentifier(nd, env)

	case *ast.FunctionExpression:
		return &object.Function{Parameters: nd.Parameters, Env: env, Body: nd.Body}

	case *ast.CallExpression:
		function := i.Eval(nd.Function, env)
		if isSignal(function) {
			return function
		}
		args := i.evalExpressions(nd.Args, env)
		if len(args) == 1 && isSignal(args[0]) {
			return args[0]
		}
		return i.applyFunction(function, args)

	case *ast.ReturnStatement:
		val := i.Eval(nd.ReturnValue, env)
		if isSignal(val) {
			return val
		}
		return &object.ReturnValue{Value: val}

	case *ast.BlockStatement:
		return i.evalBlockStatement(nd, env)

	case *ast.IfExpression:
		return i.evalIfExpression(nd, env)

	case *ast.UnaryExpression:
		right := i.Eval(nd.Right, env)
		if isSignal(right) {
			return right
		}
		return i.evalUnaryExpression(nd.Operator, right)

	case *ast.BinaryExpression:
		left := i.Eval(nd.Left, env)
		if isSignal(left) {
			return left
		}
		right := i.Eval(nd.Right, env)
		if isSignal(right) {
			return right
		}
		return i.evalBinaryExpression(nd.Operator, left, right)

	default:
		return newError("unknown node: %T", node)
	}
	return nil
}

// evalProgram yields the value of the last statement that produced one, a
// return at the top level ends the program with its value.
func (i *Interpreter) evalProgram(stmts []ast.Statement, env *object.Environment) object.Object {
	var result object.Object = object.NULL
	for _, statement := range stmts {
		evaluated := i.Eval(statement, env)
		if evaluated == nil {
			continue
		}
		result = evaluated

		switch res := result.(type) {
		case *object.ReturnValue:
			return res.Value
		case *object.Error:
			return result
		}
	}

	return result
}

// evalBlockStatement runs in the scope it is given. Return values and errors
// are handed up unwrapped so they stop every enclosing block.
func (i *Interpreter) evalBlockStatement(block *ast.BlockStatement, env *object.Environment) object.Object {
	var result object.Object = object.NULL
	for _, statement := range block.Body {
		evaluated := i.Eval(statement, env)
		if evaluated == nil {
			continue
		}
		result = evaluated

		if isSignal(result) {
			return result
		}
	}

	return result
}

// evalExpressions evaluates left to right, the first error or return value is
// returned alone.
func (i *Interpreter) evalExpressions(exps []ast.Expression, env *object.Environment) []object.Object {
	result := make([]object.Object, 0, len(exps))
	for _, e := range exps {
		evaluated := i.Eval(e, env)
		if isSignal(evaluated) {
			return []object.Object{evaluated}
		}
		result = append(result, evaluated)
	}
	return result
}

// evalHashLiteral evaluates each key before its value, and stops at the
// first key that cannot be hashed.
func (i *Interpreter) evalHashLiteral(node *ast.HashLiteral, env *object.Environment) object.Object {
	hash := object.NewHash()

	for _, pair := range node.Pairs {
		key := i.Eval(pair.Key, env)
		if isSignal(key) {
			return key
		}

		hashKey, ok := key.(object.Hashable)
		if !ok {
			return newError("unusable as hash key: %s", key.Type())
		}

		value := i.Eval(pair.Value, env)
		if isSignal(value) {
			return value
		}

		hash.Set(hashKey, value)
	}

	return hash
}

func (i *Interpreter) evalIndexExpression(left, index object.Object) object.Object {
	switch left := left.(type) {
	case *object.Array:
		idx, ok := index.(*object.Integer)
		if !ok {
			return newError("index operator not supported: %s[%s]", left.Type(), index.Type())
		}
		return evalArrayIndexExpression(left, idx)

	case *object.Hash:
		return evalHashIndexExpression(left, index)

	default:
		return newError("index operator not supported: %s", left.Type())
	}
}

// out of range indexes give null
func evalArrayIndexExpression(array *object.Array, index *object.Integer) object.Object {
	idx := index.Value
	max := int64(len(array.Elements) - 1)

	if idx < 0 || idx > max {
		return object.NULL
	}

	return array.Elements[idx]
}

func evalHashIndexExpression(hash *object.Hash, index object.Object) object.Object {
	key, ok := index.(object.Hashable)
	if !ok {
		return newError("unusable as hash key: %s", index.Type())
	}

	value, ok := hash.Get(key)
	if !ok {
		return object.NULL
	}

	return value
}

func (i *Interpreter) evalIdentifier(identifier *ast.Identifier, env *object.Environment) object.Object {
	if obj, ok := env.Resolve(identifier.Value); ok {
		return obj
	}

	if builtin, ok := i.lookupBuiltin(identifier.Value); ok {
		return builtin
	}

	return newError("identifier not found: %s", identifier.Value)
}

func (i *Interpreter) applyFunction(fn object.Object, args []object.Object) object.Object {
	switch fn := fn.(type) {
	case *object.Function:
		argSize := len(args)
		fnParamSize := len(fn.Parameters)

		if argSize != fnParamSize {
			return newError("wrong number of arguments: want=%d, got=%d",
				fnParamSize, argSize)
		}

		if i.depth >= i.maxCallDepth {
			return newError("maximum call depth exceeded")
		}

		i.depth++
		defer func() { i.depth-- }()

		i.logger.Debug("apply function",
			slog.Int("args", argSize),
			slog.Int("depth", i.depth),
		)

		extendedEnv := extendFunctionEnv(fn, args)
		evaluated := i.Eval(fn.Body, extendedEnv)
		return unwrapReturnValue(evaluated)

	case *object.Builtin:
		i.logger.Debug("apply builtin",
			slog.String("builtin", fn.Name),
			slog.Int("args", len(args)),
		)

		if result := fn.Fn(args...); result != nil {
			return result
		}
		return object.NULL

	default:
		return newError("not a function: %s", fn.Type())
	}
}

// extendFunctionEnv opens the call scope, enclosed by the scope the function
// was created in and not by the caller's.
func extendFunctionEnv(
	fn *object.Function,
	args []object.Object,
) *object.Environment {
	env := object.NewEnvironment(fn.Env)
	for paramIdx, param := range fn.Parameters {
		env.Define(param.Value, args[paramIdx])
	}
	return env
}

func unwrapReturnValue(obj object.Object) object.Object {
	if returnValue, ok := obj.(*object.ReturnValue); ok {
		return returnValue.Value
	}
	return obj
}

func (i *Interpreter) evalIfExpression(nd *ast.IfExpression, env *object.Environment) object.Object {
	condition := i.Eval(nd.Condition, env)
	if isSignal(condition) {
		return condition
	}

	if isTruthy(condition) {
		return i.Eval(nd.Consequence, env)
	}
	if nd.Alternative != nil {
		return i.Eval(nd.Alternative, env)
	}
	return object.NULL
}

// only false and null are falsy
func isTruthy(obj object.Object) bool {
	switch obj := obj.(type) {
	case *object.Boolean:
		return obj.Value
	case *object.Null:
		return false
	default:
		return true
	}
}

func (i *Interpreter) evalUnaryExpression(op string, right object.Object) object.Object {
	switch op {
	case lexer.TokenExclamation:
		return object.NativeBoolToBooleanObject(!isTruthy(right))
	case lexer.TokenMinus:
		return i.evalMinusPrefixOperatorExpression(right)
	default:
		return newError("unknown operator: %s%s", op, right.Type())
	}
}

func (i *Interpreter) evalMinusPrefixOperatorExpression(right object.Object) object.Object {
	switch right := right.(type) {
	case *object.Integer:
		return &object.Integer{
			Value: -right.Value,
		}
	default:
		return newError("unknown operator: -%s", right.Type())
	}
}

// evalBinaryExpression dispatches on the operand types. Any operator the
// types do not define is a type mismatch, same types included.
func (i *Interpreter) evalBinaryExpression(op string, left, right object.Object) object.Object {
	switch {
	case left.Type() != right.Type():
		return typeMismatch(op, left, right)

	case left.Type() == object.INTEGER_OBJ:
		return i.evalIntegerInfixExpression(op, left.(*object.Integer), right.(*object.Integer))

	case left.Type() == object.STRING_OBJ:
		return i.evalStringInfixExpression(op, left.(*object.String), right.(*object.String))

	case left.Type() == object.BOOLEAN_OBJ || left.Type() == object.NULL_OBJ:
		return i.evalEqualityExpression(op, left, right)

	default:
		return typeMismatch(op, left, right)
	}
}

func (i *Interpreter) evalIntegerInfixExpression(op string, left, right *object.Integer) object.Object {
	switch op {
	// arithmetic operations
	case lexer.TokenMultiply:
		return &object.Integer{
			Value: left.Value * right.Value,
		}
	case lexer.TokenSlash:
		if right.Value == 0 {
			return newError("division by zero")
		}
		return &object.Integer{
			Value: left.Value / right.Value,
		}
	case lexer.TokenPlus:
		return &object.Integer{
			Value: left.Value + right.Value,
		}
	case lexer.TokenMinus:
		return &object.Integer{
			Value: left.Value - right.Value,
		}

		// comparison operators
	case lexer.TokenGreater:
		return object.NativeBoolToBooleanObject(left.Value > right.Value)
	case lexer.TokenLess:
		return object.NativeBoolToBooleanObject(left.Value < right.Value)
	case lexer.TokenNotEquals:
		return object.NativeBoolToBooleanObject(left.Value != right.Value)
	case lexer.TokenEquals:
		return object.NativeBoolToBooleanObject(left.Value == right.Value)

	default:
		return typeMismatch(op, left, right)
	}
}

func (i *Interpreter) evalStringInfixExpression(op string, left, right *object.String) object.Object {
	switch op {
	case lexer.TokenPlus:
		return &object.String{
			Value: left.Value + right.Value,
		}

	// comparison
	case lexer.TokenEquals:
		return object.NativeBoolToBooleanObject(left.Value == right.Value)
	case lexer.TokenNotEquals:
		return object.NativeBoolToBooleanObject(left.Value != right.Value)

	default:
		return typeMismatch(op, left, right)
	}
}

// evalEqualityExpression compares booleans and nulls by value.
func (i *Interpreter) evalEqualityExpression(op string, left, right object.Object) object.Object {
	switch op {
	case lexer.TokenEquals:
		return object.NativeBoolToBooleanObject(object.ObjectEquals(left, right))
	case lexer.TokenNotEquals:
		return object.NativeBoolToBooleanObject(!object.ObjectEquals(left, right))
	default:
		return typeMismatch(op, left, right)
	}
}
