package schema

import (
	"errors"
	"fmt"
)

var ErrAlreadyDistributed = errors.New("schema: common fields already distributed")

// Error is a fatal schema problem tied to a source line.
type Error struct {
	Line   int
	Text   string
	Reason string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Reason
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	if e.Line == 0 {
		return "schema: " + msg
	}
	if e.Text == "" {
		return fmt.Sprintf("schema: line %d: %s", e.Line, msg)
	}
	return fmt.Sprintf("schema: line %d: %s (%s)", e.Line, msg, e.Text)
}

func (e *Error) Unwrap() error {
	return e.Err
}
