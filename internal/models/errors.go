package models

import (
	goerrors "errors"

	"github.com/pkg/errors"
)

var (
	ErrDuplicate    = errors.New("entity already exists")
	ErrNotFound     = errors.New("entity not found")
	ErrInvalidGrade = errors.New("grade must be within [0, 10]")
	ErrIO           = errors.New("io failure")
)

// IOError is an import or export failure. It matches ErrIO and unwraps to
// the underlying os error.
type IOError struct {
	Op     string
	Path   string
	nested error
}

func NewIOError(op, path string, err error) *IOError {
	return &IOError{Op: op, Path: path, nested: err}
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return e.Op + ": " + e.nested.Error()
	}
	return e.Op + " " + e.Path + ": " + e.nested.Error()
}

func (e *IOError) Unwrap() error {
	return e.nested
}

func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

func IsIOError(err error) bool {
	ioError := &IOError{}
	return goerrors.As(err, &ioError)
}
