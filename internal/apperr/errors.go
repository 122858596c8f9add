package apperr

import (
	"errors"
	"fmt"
)

// ErrValidation is returned when a required field is missing before a
// backend call is made; it never reaches the network.
var ErrValidation = errors.New("invalid input")

// ErrAuthExpired signals an HTTP 401 from the backend. It is a global
// session-expiry signal and must be propagated, never swallowed.
var ErrAuthExpired = errors.New("session expired")

// ErrUnavailable signals that the backend was unreachable or the request
// was cut off by transport failure rather than an application response.
var ErrUnavailable = errors.New("backend unavailable")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// BackendError carries a non-2xx backend response. The message is whatever
// the backend sent, surfaced to the operator verbatim.
type BackendError struct {
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend error: status %d", e.Status)
	}
	return fmt.Sprintf("backend error: status %d: %s", e.Status, e.Message)
}

// AsBackend unwraps a BackendError if err carries one.
func AsBackend(err error) (*BackendError, bool) {
	var be *BackendError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
