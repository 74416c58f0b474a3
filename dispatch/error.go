package dispatch

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicate = errors.New("duplicate handler")
	ErrNoBuild   = errors.New("no build func")
	ErrBadName   = errors.New("bad handler name")
)

// A RenderError is the failure of a handler producing a response,
// captured along with the stack at the point of failure.
type RenderError struct {
	Accessor string
	Err      error
	Stack    []byte
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("%s: %s", e.Accessor, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
