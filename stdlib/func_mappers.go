package stdlib

import (
	"monkey/object"
)

func checkArity(args []object.Object, want int) *object.Error {
	if len(args) != want {
		return newError("wrong number of arguments. got=%d, want=%d",
			len(args), want)
	}
	return nil
}

func typeError(name string, want object.ObjectType, got object.Object) *object.Error {
	return newError("argument to `%s` must be %s, got %s", name, want, got.Type())
}

// maps a function taking a single array
// to a builtin function
func funcA(name string, fn func(*object.Array) object.Object) *object.Builtin {
	return builtin(name, func(args ...object.Object) object.Object {
		if err := checkArity(args, 1); err != nil {
			return err
		}

		array, ok := args[0].(*object.Array)
		if !ok {
			return typeError(name, object.ARRAY_OBJ, args[0])
		}

		return fn(array)
	})
}

// maps a function taking a single hash
// to a builtin function
func funcH(name string, fn func(*object.Hash) object.Object) *object.Builtin {
	return builtin(name, func(args ...object.Object) object.Object {
		if err := checkArity(args, 1); err != nil {
			return err
		}

		hash, ok := args[0].(*object.Hash)
		if !ok {
			return typeError(name, object.HASH_OBJ, args[0])
		}

		return fn(hash)
	})
}
