// Package httperr represents expected, client-facing failures as plain
// values. Validation, existence checks and pagination all report problems
// through *Error so callers can compose fallible steps uniformly and the
// HTTP boundary can map them to a status without inspecting message text.
package httperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(status int, message string) *Error {
	return &Error{
		Status:  status,
		Message: message,
	}
}

func BadRequestf(format string, args ...any) *Error {
	return New(http.StatusBadRequest, fmt.Sprintf(format, args...))
}

func NotFoundf(format string, args ...any) *Error {
	return New(http.StatusNotFound, fmt.Sprintf(format, args...))
}

// FromError reports whether err carries a client-facing failure anywhere in
// its chain, so it still matches after being wrapped with a stack.
func FromError(err error) (*Error, bool) {
	var clientErr *Error
	if errors.As(err, &clientErr) {
		return clientErr, true
	}
	return nil, false
}
