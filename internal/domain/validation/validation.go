// Package validation holds the error type for rejected user input. Its message is safe to
// return to API callers verbatim.
package validation

import "errors"

// Error is a rejected-input error.
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

// New returns an *Error with msg.
func New(msg string) error {
	return &Error{Message: msg}
}

// As unwraps err to an *Error.
func As(err error) (*Error, bool) {
	var verr *Error
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
