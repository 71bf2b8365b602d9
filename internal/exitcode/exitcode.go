// Package exitcode defines the process exit contract so batch scripts can
// branch on what went wrong.
package exitcode

import (
	"errors"
	"fmt"
)

const (
	OK           = 0 // both files processed (or skipped by request)
	Failure      = 1 // unhandled error
	Declined     = 2 // user declined a required confirmation
	NoQCFiles    = 3 // no model-compiler scripts found
	EmptyFile    = 4 // an input file was present but empty
	Unreadable   = 5 // an input file could not be opened
	MarkerDesync = 6 // VRD marker block no longer matches file content
)

// Error carries an exit code across component boundaries up to main.
type Error struct {
	Code int
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("exit %d: %v", e.Code, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New wraps err with a code.
func New(code int, err error) *Error {
	return &Error{Code: code, Err: err}
}

// Newf wraps a formatted message with a code.
func Newf(code int, format string, args ...interface{}) *Error {
	return &Error{Code: code, Err: fmt.Errorf(format, args...)}
}

// CodeOf extracts the exit code from an error chain, defaulting to the
// generic failure code.
func CodeOf(err error) int {
	if err == nil {
		return OK
	}
	var xe *Error
	if errors.As(err, &xe) {
		return xe.Code
	}
	return Failure
}
