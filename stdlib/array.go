package stdlib

import (
	"monkey/object"
)

// array module definition
var arrayModule = object.Module{
	"len":   builtin("len", length),
	"first": funcA("first", first),
	"last":  funcA("last", last),
	"rest":  funcA("rest", rest),
	"push":  builtin("push", push),
}

// length counts the bytes of a string or the elements of an array.
func length(args ...object.Object) object.Object {
	if err := checkArity(args, 1); err != nil {
		return err
	}

	switch arg := args[0].(type) {
	case *object.String:
		return &object.Integer{Value: int64(len(arg.Value))}
	case *object.Array:
		return &object.Integer{Value: int64(len(arg.Elements))}
	default:
		return newError("argument to `len` not supported, got %s",
			args[0].Type())
	}
}

func first(array *object.Array) object.Object {
	if len(array.Elements) == 0 {
		return object.NULL
	}
	return array.Elements[0]
}

func last(array *object.Array) object.Object {
	if len(array.Elements) == 0 {
		return object.NULL
	}
	return array.Elements[len(array.Elements)-1]
}

// rest returns a new array without the first element, null for an empty one.
func rest(array *object.Array) object.Object {
	size := len(array.Elements)
	if size == 0 {
		return object.NULL
	}

	elements := make([]object.Object, size-1)
	copy(elements, array.Elements[1:])
	return &object.Array{Elements: elements}
}

// push returns a new array with the value appended, the argument is left
// untouched.
func push(args ...object.Object) object.Object {
	if err := checkArity(args, 2); err != nil {
		return err
	}

	array, ok := args[0].(*object.Array)
	if !ok {
		return typeError("push", object.ARRAY_OBJ, args[0])
	}

	size := len(array.Elements)
	elements := make([]object.Object, size+1)
	copy(elements, array.Elements)
	elements[size] = args[1]

	return &object.Array{Elements: elements}
}
