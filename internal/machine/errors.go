package machine

import "errors"

var (
	errEmptyStack   = errors.New("empty stack")
	errDivideByZero = errors.New("division by zero")
)
