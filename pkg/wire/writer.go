package wire

import "encoding/binary"

// Writer is an encode cursor over a caller-owned buffer whose length is the
// encode capacity.
type Writer struct {
	buf []byte
	off int
}

func NewWriter(buf []byte) *Writer {
	return &Writer{buf: buf}
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return w.off
}

// Available returns the remaining capacity.
func (w *Writer) Available() int {
	return len(w.buf) - w.off
}

func (w *Writer) grab(n int) ([]byte, error) {
	if w.Available() < n {
		return nil, ErrBufferOverflow
	}
	b := w.buf[w.off : w.off+n]
	w.off += n
	return b, nil
}

// Reserve skips n bytes and returns their offset for a later Patch.
func (w *Writer) Reserve(n int) (int, error) {
	at := w.off
	if _, err := w.grab(n); err != nil {
		return 0, err
	}
	return at, nil
}

func (w *Writer) PutUint8(v uint8) error {
	b, err := w.grab(1)
	if err != nil {
		return err
	}
	b[0] = v
	return nil
}

func (w *Writer) PutUint16(v uint16) error {
	b, err := w.grab(2)
	if err != nil {
		return err
	}
	binary.BigEndian.PutUint16(b, v)
	return nil
}

func (w *Writer) PutUint32(v uint32) error {
	b, err := w.grab(4)
	if err != nil {
		return err
	}
	binary.BigEndian.PutUint32(b, v)
	return nil
}

// PutUint writes v big-endian using width 1, 2 or 4 bytes. Bits above the
// width are dropped, matching a store into a narrower field.
func (w *Writer) PutUint(width int, v uint32) error {
	switch width {
	case 1:
		return w.PutUint8(uint8(v))
	case 2:
		return w.PutUint16(uint16(v))
	case 4:
		return w.PutUint32(v)
	default:
		return ErrMalformedLength
	}
}

// PutString writes s as one length byte, the payload and a NUL terminator.
func (w *Writer) PutString(s string) error {
	if len(s) > MaxStringLen {
		return ErrBufferOverflow
	}
	b, err := w.grab(len(s) + 2)
	if err != nil {
		return err
	}
	b[0] = byte(len(s))
	copy(b[1:], s)
	b[len(s)+1] = 0
	return nil
}

// PutArray writes a four-byte big-endian length followed by data.
func (w *Writer) PutArray(data []byte) error {
	if uint64(len(data)) > uint64(^uint32(0)) {
		return ErrBufferOverflow
	}
	b, err := w.grab(4 + len(data))
	if err != nil {
		return err
	}
	binary.BigEndian.PutUint32(b, uint32(len(data)))
	copy(b[4:], data)
	return nil
}

// Patch stores v big-endian into a previously reserved slot. A value that does
// not fit the slot width is a BufferOverflow.
func (w *Writer) Patch(at, width int, v int) error {
	if at < 0 || at+width > w.off {
		return ErrBufferOverflow
	}
	if v < 0 || uint64(v) > maxForWidth(width) {
		return ErrBufferOverflow
	}
	b := w.buf[at : at+width]
	switch width {
	case 1:
		b[0] = byte(v)
	case 2:
		binary.BigEndian.PutUint16(b, uint16(v))
	case 4:
		binary.BigEndian.PutUint32(b, uint32(v))
	default:
		return ErrMalformedLength
	}
	return nil
}

func maxForWidth(width int) uint64 {
	if width >= 8 {
		return ^uint64(0)
	}
	return 1<<(8*uint(width)) - 1
}
