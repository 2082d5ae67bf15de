package wire

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterReaderIntegersBigEndian(t *testing.T) {
	buf := make([]byte, 7)
	w := NewWriter(buf)
	require.NoError(t, w.PutUint8(0x01))
	require.NoError(t, w.PutUint16(0x0203))
	require.NoError(t, w.PutUint32(0x04050607))
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7}, buf)
	assert.Equal(t, 0, w.Available())

	r := NewReader(buf)
	a, err := r.Uint(1)
	require.NoError(t, err)
	b, err := r.Uint(2)
	require.NoError(t, err)
	c, err := r.Uint(4)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0x01, 0x0203, 0x04050607}, []uint32{a, b, c})
	assert.Equal(t, 0, r.Remaining())
}

func TestWriterOverflowLeavesCursor(t *testing.T) {
	w := NewWriter(make([]byte, 3))
	require.NoError(t, w.PutUint16(1))
	err := w.PutUint32(2)
	assert.ErrorIs(t, err, ErrBufferOverflow)
	assert.Equal(t, 2, w.Len())
}

func TestStringRoundTrip(t *testing.T) {
	buf := make([]byte, 16)
	w := NewWriter(buf)
	require.NoError(t, w.PutString("abc"))
	assert.Equal(t, []byte{3, 'a', 'b', 'c', 0}, buf[:w.Len()])

	r := NewReader(buf[:w.Len()])
	s, err := r.String()
	require.NoError(t, err)
	assert.Equal(t, "abc", s)
	assert.Equal(t, 5, r.Offset())
}

func TestStringTooLongOverflows(t *testing.T) {
	long := make([]byte, MaxStringLen+1)
	for i := range long {
		long[i] = 'x'
	}
	err := NewWriter(make([]byte, 512)).PutString(string(long))
	assert.ErrorIs(t, err, ErrBufferOverflow)
}

func TestStringDecodeFailures(t *testing.T) {
	_, err := NewReader([]byte{1}).String()
	assert.ErrorIs(t, err, ErrTruncatedBody)

	_, err = NewReader([]byte{5, 'a', 0}).String()
	assert.ErrorIs(t, err, ErrMalformedLength)

	_, err = NewReader([]byte{1, 'a', 'b'}).String()
	assert.ErrorIs(t, err, ErrMalformedLength)
}

func TestArrayRoundTripAliasesBuffer(t *testing.T) {
	buf := make([]byte, 16)
	w := NewWriter(buf)
	require.NoError(t, w.PutArray([]byte{9, 8, 7}))
	assert.Equal(t, 7, w.Len())

	r := NewReader(buf[:w.Len()])
	data, err := r.Array()
	require.NoError(t, err)
	assert.Equal(t, []byte{9, 8, 7}, data)
	buf[4] = 1
	assert.Equal(t, byte(1), data[0])
}

func TestArrayDeclaredLengthExceedsRemaining(t *testing.T) {
	_, err := NewReader([]byte{0, 0, 0, 9, 1, 2}).Array()
	assert.ErrorIs(t, err, ErrMalformedLength)

	_, err = NewReader([]byte{0, 0}).Array()
	assert.ErrorIs(t, err, ErrTruncatedBody)
}

func TestPatchRejectsValuesWiderThanSlot(t *testing.T) {
	w := NewWriter(make([]byte, 300))
	at, err := w.Reserve(1)
	require.NoError(t, err)
	_, err = w.Reserve(299)
	require.NoError(t, err)
	assert.ErrorIs(t, w.Patch(at, 1, w.Len()), ErrBufferOverflow)
	assert.NoError(t, w.Patch(at, 1, 255))
}

func TestPeekTag(t *testing.T) {
	v, ok := PeekTag([]byte{0x63, 0, 0, 0}, 0, 1, 4)
	assert.True(t, ok)
	assert.Equal(t, uint32(0x63), v)

	_, ok = PeekTag([]byte{0, 0, 0}, 0, 1, 4)
	assert.False(t, ok)

	v, ok = PeekTag([]byte{0, 5, 1, 0, 7}, 2, 1, 4)
	assert.True(t, ok)
	assert.Equal(t, uint32(1), v)

	_, ok = PeekTag([]byte{0, 0, 0, 0}, 3, 2, 4)
	assert.False(t, ok)
}

func TestFormatterTruncates(t *testing.T) {
	f := NewFormatter(8)
	f.Printf("ping/%s { ", "request")
	f.WriteString("more")
	assert.Equal(t, "ping/req", f.String())

	assert.Equal(t, "", func() string {
		f := NewFormatter(-1)
		f.WriteString("x")
		return f.String()
	}())
}

func TestQuoteAndBool(t *testing.T) {
	assert.Equal(t, NullString, Quote(""))
	assert.Equal(t, `"a b"`, Quote("a b"))
	assert.Equal(t, uint32(1), Bool(true))
	assert.Equal(t, uint32(0), Bool(false))
}

func TestCodecErrorUnwraps(t *testing.T) {
	err := Fail("ping/request", "seq", ErrTruncatedBody)
	assert.True(t, errors.Is(err, ErrTruncatedBody))
	assert.Equal(t, "ping/request.seq: wire: truncated body", err.Error())
	assert.Equal(t, "ping/request: wire: unknown message kind", Fail("ping/request", "", ErrUnknownKind).Error())
	assert.Equal(t, "wire: unknown message kind", Fail("", "", ErrUnknownKind).Error())
}
