package ion

import (
	"errors"
	"fmt"
)

// ErrAlreadyExists is returned when creating a cell under a key that is
// already registered.
var ErrAlreadyExists = errors.New("key already exists")

// ErrNotFound is returned when reading, writing, or subscribing to a
// key that is not registered.
var ErrNotFound = errors.New("key not found")

// ComputeError wraps a failure raised by a computed cell's compute
// function. The cell's cached value and dirty flag are left untouched,
// so calling the read again retries the computation.
type ComputeError struct {
	// Key is the computed cell that failed.
	Key string

	// Err is the error returned by the compute function.
	Err error
}

// Error returns the error message.
func (e *ComputeError) Error() string {
	return fmt.Sprintf("compute %q: %v", e.Key, e.Err)
}

// Unwrap returns the underlying compute function error.
func (e *ComputeError) Unwrap() error {
	return e.Err
}
