package weighing

import "errors"

var (
	ErrInvalidUnit            = errors.New("unsupported weight unit")
	ErrInvalidWeight          = errors.New("weight must be greater than zero")
	ErrInvalidEffectiveWeight = errors.New("effective weight is zero or negative after deductions")
	ErrCapacityExceeded       = errors.New("item weights exceed the available capacity")
)
