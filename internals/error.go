package internals

// This file handles an error collector obj

type ErrorCollector struct {
	Errors []error
}

func NewErrorCollector() *ErrorCollector {
	return &ErrorCollector{
		Errors: make([]error, 0),
	}
}

func (ec *ErrorCollector) Add(err error) {
	if err == nil {
		return
	}
	ec.Errors = append(ec.Errors, err)
}

func (ec *ErrorCollector) Len() int {
	return len(ec.Errors)
}
