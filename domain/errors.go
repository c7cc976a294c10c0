package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrQueryType is returned by [Validator.Validate] when the query is
	// not a document.
	ErrQueryType = errors.New("query should be a document")
)

// ErrCompArgType is returned by [Validator.Validate] when an operator is
// given an argument of invalid shape, such as a non-list $in or a $mod that
// is not a 2-number list.
type ErrCompArgType struct {
	Comp   string
	Want   string
	Actual any
}

// Error implements [error].
func (e ErrCompArgType) Error() string {
	return fmt.Sprintf(
		"%s value should be of type %s, got %T",
		e.Comp, e.Want, e.Actual,
	)
}

// ErrCannotCompare is returned by [Comparer.Compare] when called with two
// values from different type families.
type ErrCannotCompare struct {
	A any
	B any
}

// Error implements [error].
func (e ErrCannotCompare) Error() string {
	return fmt.Sprintf("cannot compare values of types %T and %T", e.A, e.B)
}
