package api

import (
	"errors"
	"fmt"
)

// ErrNetwork marks transport-level failures (connection refused, timeout,
// interrupted body). The request may never have reached the backend.
var ErrNetwork = errors.New("network error, try again")

// ErrBadResponse marks a 2xx response whose body could not be decoded
var ErrBadResponse = errors.New("malformed server response")

// Error is a non-2xx response from the backend
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server returned %d", e.Status)
}
