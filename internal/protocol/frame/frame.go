// Package frame splits a byte stream into whole messages using the length
// header every message of a class starts with.
package frame

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/danmuck/msgc/internal/protocol/schema"
	"github.com/danmuck/msgc/pkg/wire"
)

var (
	ErrShortHeader     = errors.New("frame: short length header")
	ErrLengthTooSmall  = errors.New("frame: length smaller than its own header")
	ErrMessageTooLarge = errors.New("frame: message too large")
	ErrLengthMismatch  = errors.New("frame: length header disagrees with message size")
	ErrNoLengthHeader  = errors.New("frame: schema has no length header")
	ErrMixedLayouts    = errors.New("frame: classes place the length header differently")
)

// Layout locates the length header inside a message.
type Layout struct {
	Offset int
	Width  int
}

// End is the number of bytes needed to read the header.
func (l Layout) End() int {
	return l.Offset + l.Width
}

// LayoutFor derives the length header position shared by every message of s.
func LayoutFor(s *schema.Schema) (Layout, error) {
	var (
		out   Layout
		found bool
	)
	for _, m := range s.Messages {
		if m.Length == nil {
			continue
		}
		off, ok := m.Offset(m.Length.Name)
		if !ok {
			return Layout{}, fmt.Errorf("frame: %s: length header %q follows a guarded field", m.FullName(), m.Length.Name)
		}
		l := Layout{Offset: off, Width: m.Length.Type.Width}
		if found && l != out {
			return Layout{}, ErrMixedLayouts
		}
		out, found = l, true
	}
	if !found {
		return Layout{}, ErrNoLengthHeader
	}
	return out, nil
}

// Limits constrains decode/encode memory use.
type Limits struct {
	MaxMessageBytes int
}

func DefaultLimits() Limits {
	return Limits{MaxMessageBytes: 64 * 1024}
}

// Reader yields one message per call to Next.
type Reader struct {
	br     *bufio.Reader
	layout Layout
	limits Limits
}

func NewReader(r io.Reader, layout Layout, limits Limits) *Reader {
	return &Reader{br: bufio.NewReader(r), layout: layout, limits: limits}
}

// Next returns the next whole message, header included. It returns io.EOF
// only at a clean message boundary.
func (r *Reader) Next() ([]byte, error) {
	head, err := r.br.Peek(r.layout.End())
	if err != nil {
		if errors.Is(err, io.EOF) && len(head) == 0 {
			return nil, io.EOF
		}
		if errors.Is(err, io.EOF) || errors.Is(err, bufio.ErrBufferFull) {
			return nil, ErrShortHeader
		}
		return nil, err
	}

	total, err := wire.NewReader(head[r.layout.Offset:]).Uint(r.layout.Width)
	if err != nil {
		return nil, err
	}
	if int64(total) < int64(r.layout.End()) {
		return nil, ErrLengthTooSmall
	}
	if int64(total) > int64(r.limits.MaxMessageBytes) {
		return nil, ErrMessageTooLarge
	}

	msg := make([]byte, total)
	if _, err := io.ReadFull(r.br, msg); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("frame: message truncated: %w", wire.ErrTruncatedBody)
		}
		return nil, err
	}
	return msg, nil
}

// WriteMessage writes one encoded message after checking its length header.
func WriteMessage(w io.Writer, msg []byte, layout Layout, limits Limits) error {
	if len(msg) > limits.MaxMessageBytes {
		return ErrMessageTooLarge
	}
	if len(msg) < layout.End() {
		return ErrShortHeader
	}
	total, err := wire.NewReader(msg[layout.Offset:]).Uint(layout.Width)
	if err != nil {
		return err
	}
	if int64(total) != int64(len(msg)) {
		return ErrLengthMismatch
	}
	_, err = w.Write(msg)
	return err
}
