package object

// Environment binds names to values. Lookups that miss walk out to the
// enclosing environment.
type Environment struct {
	outer *Environment
	store map[string]Object
}

// NewEnvironment creates a scope enclosed by outer, nil for the top level.
func NewEnvironment(outer *Environment) *Environment {
	s := make(map[string]Object)
	return &Environment{
		outer: outer,
		store: s,
	}
}

func (e *Environment) Resolve(name string) (Object, bool) {
	obj, ok := e.store[name]
	if !ok && e.outer != nil {
		obj, ok = e.outer.Resolve(name)
	}
	return obj, ok
}

// Define binds name in this scope, replacing an earlier binding of the same
// scope. Outer scopes are never touched.
func (e *Environment) Define(name string, val Object) Object {
	e.store[name] = val
	return val
}
