// internal/app/relation/errors.go
package relation

import (
	"errors"
	"fmt"

	"github.com/dalemusser/clubhub/internal/app/policy/clubpolicy"
)

// ErrNotAuthenticated is returned when an operation that needs an acting
// user was called without one.
var ErrNotAuthenticated = clubpolicy.ErrNotAuthenticated

// ErrForbidden is returned when the acting user is neither a super-admin
// nor an admin of the club being mutated. Gated operations return it
// before any write is attempted.
var ErrForbidden = errors.New("user is not a club admin")

// PersistenceError wraps a store read/write failure with the operation
// that hit it. Writes already applied before the failure stand; the
// caller sees exactly where the sequence stopped.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func persistErr(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}
