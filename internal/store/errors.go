package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the target file does not exist.
	ErrNotFound = errors.New("no such file")

	// ErrNotRegularFile is returned when loading a record for a directory.
	ErrNotRegularFile = errors.New("not a regular file")
)

// OpError records a failed store operation and the path it concerned.
type OpError struct {
	Op      string
	Backend string
	Path    string
	Err     error
}

func (e *OpError) Error() string {
	if e.Backend == "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s (%s store): %v", e.Op, e.Path, e.Backend, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}
