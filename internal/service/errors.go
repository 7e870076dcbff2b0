package service

import (
	"errors"
	"fmt"
	"io/fs"
)

// Input validation failures. InputError wraps one of these.
var (
	ErrInputNotFound            = errors.New("input folder does not exist")
	ErrInputNotDirectory        = errors.New("input path is not a directory")
	ErrInputUnreadable          = errors.New("input folder is not readable")
	ErrOutputParentNotDirectory = errors.New("output parent path is not a directory")
	ErrOutputParentUnwritable   = errors.New("output directory is not writable")
)

// InputError reports an input or output path that failed validation before
// scanning started.
type InputError struct {
	Kind error
	Path string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%v: %s", e.Kind, e.Path)
}

func (e *InputError) Unwrap() error {
	return e.Kind
}

// IsInputError reports whether err is caused by invalid user input: a
// validation failure or a permission error on one of the given paths.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie) || errors.Is(err, fs.ErrPermission)
}
