package wire

import (
	"errors"
	"fmt"
)

var (
	ErrTruncatedHeader = errors.New("wire: truncated header")
	ErrTruncatedBody   = errors.New("wire: truncated body")
	ErrMalformedLength = errors.New("wire: malformed length")
	ErrUnknownKind     = errors.New("wire: unknown message kind")
	ErrBufferOverflow  = errors.New("wire: buffer overflow")
)

// CodecError attributes a codec failure to a message and, when known, a field.
type CodecError struct {
	Message string
	Field   string
	Err     error
}

func (e *CodecError) Error() string {
	switch {
	case e.Message == "":
		return e.Err.Error()
	case e.Field == "":
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	default:
		return fmt.Sprintf("%s.%s: %v", e.Message, e.Field, e.Err)
	}
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

// Fail wraps err with the message and field it was raised for.
func Fail(message, field string, err error) error {
	return &CodecError{Message: message, Field: field, Err: err}
}
