package cmd

import (
	"errors"
	"fmt"
)

// Process exit codes.
const (
	ExitSuccess         = 0
	ExitUnexpectedError = 1
	ExitInputError      = 2
)

// errUnexpected is shown to the user for failures that are not caused by input.
var errUnexpected = errors.New("unexpected failure during inventory scan.")

// ExitError carries the exit code for an error returned from a RunE handler.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func inputFailure(err error) error {
	return &ExitError{Code: ExitInputError, Err: err}
}

func unexpectedFailure() error {
	return &ExitError{Code: ExitUnexpectedError, Err: errUnexpected}
}
