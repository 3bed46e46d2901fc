package errcode

import "errors"

// Error attaches a Code to an underlying error. Packages build these
// through their errors.go constructor functions.
type Error struct {
	Code Code
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New wraps err with the given code.
func New(code Code, err error) *Error {
	return &Error{Code: code, Err: err}
}

// CodeOf extracts the Code from err, or UnknownError if err carries
// none.
func CodeOf(err error) Code {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return UnknownError
}
