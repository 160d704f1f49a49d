package plane

import "errors"

var (
	// ErrInvalidArgument is returned for values of the wrong shape, count or
	// range. Operations failing with it leave all state untouched.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDegenerateInterval is returned when an input interval has zero
	// length and a value cannot be mapped out of it.
	ErrDegenerateInterval = errors.New("degenerate interval")

	// ErrMissingPrecondition is returned when an operation needs some setup
	// that has not been done yet.
	ErrMissingPrecondition = errors.New("missing precondition")
)
