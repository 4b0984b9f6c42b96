package ingest

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput indicates input with no JSON value in it.
	ErrEmptyInput = errors.New("ingest: empty input")

	// ErrUnknownFormat indicates JSON that is neither a network, a
	// simulation result nor a list of them.
	ErrUnknownFormat = errors.New("ingest: unrecognized input shape")

	// ErrResultIndex indicates a result selection outside the result list.
	ErrResultIndex = errors.New("ingest: result index out of range")
)

// DecodeError wraps a decode failure of one element of a result list.
type DecodeError struct {
	Index   int
	Wrapped error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("result %d: %v", e.Index, e.Wrapped)
}

func (e *DecodeError) Unwrap() error {
	return e.Wrapped
}
