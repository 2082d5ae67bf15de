package wire

import "encoding/binary"

// MaxStringLen is the longest string payload a one-byte length prefix can carry.
const MaxStringLen = 255

// Reader is a decode cursor over a caller-owned buffer. Decoded strings are
// copied; decoded arrays alias the buffer.
type Reader struct {
	buf []byte
	off int
}

func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int {
	return r.off
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.off
}

func (r *Reader) take(n int) ([]byte, error) {
	if r.Remaining() < n {
		return nil, ErrTruncatedBody
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *Reader) Uint8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) Uint16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (r *Reader) Uint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// Uint reads a big-endian integer of width 1, 2 or 4 bytes.
func (r *Reader) Uint(width int) (uint32, error) {
	switch width {
	case 1:
		v, err := r.Uint8()
		return uint32(v), err
	case 2:
		v, err := r.Uint16()
		return uint32(v), err
	case 4:
		return r.Uint32()
	default:
		return 0, ErrMalformedLength
	}
}

// String reads a length-delimited string: one length byte, the payload and a
// NUL terminator.
func (r *Reader) String() (string, error) {
	if r.Remaining() < 2 {
		return "", ErrTruncatedBody
	}
	n := int(r.buf[r.off])
	if n+2 > r.Remaining() {
		return "", ErrMalformedLength
	}
	if r.buf[r.off+1+n] != 0 {
		return "", ErrMalformedLength
	}
	s := string(r.buf[r.off+1 : r.off+1+n])
	r.off += n + 2
	return s, nil
}

// Array reads a four-byte big-endian length followed by that many bytes.
func (r *Reader) Array() ([]byte, error) {
	if r.Remaining() < 4 {
		return nil, ErrTruncatedBody
	}
	n := binary.BigEndian.Uint32(r.buf[r.off:])
	if uint64(n) > uint64(r.Remaining()-4) {
		return nil, ErrMalformedLength
	}
	r.off += 4
	b := r.buf[r.off : r.off+int(n) : r.off+int(n)]
	r.off += int(n)
	return b, nil
}

// PeekTag reads a width-byte big-endian tag at offset without consuming
// anything. It reports false when buf is shorter than minSize or too short to
// hold the tag.
func PeekTag(buf []byte, offset, width, minSize int) (uint32, bool) {
	if len(buf) < minSize || offset < 0 || len(buf) < offset+width {
		return 0, false
	}
	r := NewReader(buf[offset : offset+width])
	v, err := r.Uint(width)
	if err != nil {
		return 0, false
	}
	return v, true
}
