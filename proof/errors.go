package proof

import (
	"errors"
	"fmt"
)

// Failure kinds shared across schemes. Schemes wrap them so callers can match
// with errors.Is regardless of the concrete scheme.
var (
	ErrUnsatisfied   = errors.New("witness does not satisfy instance")
	ErrInvalidProof  = errors.New("proof rejected")
	ErrMalformed     = errors.New("malformed input")
	ErrNilRandomness = errors.New("nil randomness source")
)

type Op string

const (
	OpCreate Op = "create"
	OpVerify Op = "verify"
)

// Error records the scheme and operation a failure came from.
type Error struct {
	Scheme string
	Op     Op
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s::%v", e.Scheme, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Errorf wraps an error for scheme and op, formatting like fmt.Errorf.
func Errorf(scheme string, op Op, format string, args ...any) error {
	return &Error{Scheme: scheme, Op: op, Err: fmt.Errorf(format, args...)}
}

// BatchError reports the position of the first failing item of a batch.
type BatchError struct {
	Index int
	Err   error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("item %d::%v", e.Index, e.Err)
}

func (e *BatchError) Unwrap() error { return e.Err }

// Rejected reports whether err means a proof was rejected by a verifier.
func Rejected(err error) bool {
	return errors.Is(err, ErrInvalidProof)
}
