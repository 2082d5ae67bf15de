package frame

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/danmuck/msgc/internal/protocol/codec"
	"github.com/danmuck/msgc/internal/protocol/schema"
	"github.com/danmuck/msgc/internal/testutil/testlog"
	"github.com/danmuck/msgc/pkg/wire"
)

const streamSchema = `
*/request
.hdr_length: word
.hdr_type: byte

ping/request
.seq: word

say/request
.text: string
`

func streamCodec(t *testing.T) (*codec.Codec, Layout) {
	t.Helper()
	s, err := schema.ParseString(streamSchema, schema.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	c, err := codec.New(s, codec.DefaultOptions())
	if err != nil {
		t.Fatalf("codec: %v", err)
	}
	layout, err := LayoutFor(s)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	return c, layout
}

func TestReadWriteMessageRoundTrip(t *testing.T) {
	testlog.Start(t)
	c, layout := streamCodec(t)
	if layout != (Layout{Offset: 0, Width: 2}) {
		t.Fatalf("layout: %+v", layout)
	}

	recs := []*codec.Record{
		codec.NewRecord(0).Set("hdr_type", codec.Int(0)).Set("seq", codec.Int(1)),
		codec.NewRecord(1).Set("hdr_type", codec.Int(1)).Set("text", codec.Str("hello")),
		codec.NewRecord(0).Set("hdr_type", codec.Int(0)).Set("seq", codec.Int(2)),
	}
	var stream bytes.Buffer
	scratch := make([]byte, 64)
	for _, rec := range recs {
		n, err := c.Encode(rec, scratch, nil)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		if err := WriteMessage(&stream, scratch[:n], layout, DefaultLimits()); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	r := NewReader(&stream, layout, DefaultLimits())
	var got []int
	for {
		msg, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		rec, err := c.DecodeKind(int(msg[2]), msg, nil)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		got = append(got, rec.Kind)
	}
	if len(got) != 3 || got[0] != 0 || got[1] != 1 || got[2] != 0 {
		t.Fatalf("kinds: %v", got)
	}
}

func TestReaderShortHeader(t *testing.T) {
	testlog.Start(t)
	r := NewReader(bytes.NewReader([]byte{0x00}), Layout{Width: 2}, DefaultLimits())
	if _, err := r.Next(); !errors.Is(err, ErrShortHeader) {
		t.Fatalf("expected ErrShortHeader, got %v", err)
	}
}

func TestReaderLengthTooSmall(t *testing.T) {
	testlog.Start(t)
	r := NewReader(bytes.NewReader([]byte{0x00, 0x01, 0x00}), Layout{Width: 2}, DefaultLimits())
	if _, err := r.Next(); !errors.Is(err, ErrLengthTooSmall) {
		t.Fatalf("expected ErrLengthTooSmall, got %v", err)
	}
}

func TestReaderLimits(t *testing.T) {
	testlog.Start(t)
	r := NewReader(bytes.NewReader([]byte{0x01, 0x00, 0x00}), Layout{Width: 2}, Limits{MaxMessageBytes: 128})
	if _, err := r.Next(); !errors.Is(err, ErrMessageTooLarge) {
		t.Fatalf("expected ErrMessageTooLarge, got %v", err)
	}
}

func TestReaderTruncatedMessage(t *testing.T) {
	testlog.Start(t)
	r := NewReader(bytes.NewReader([]byte{0x00, 0x08, 0x00, 0x01}), Layout{Width: 2}, DefaultLimits())
	if _, err := r.Next(); !errors.Is(err, wire.ErrTruncatedBody) {
		t.Fatalf("expected ErrTruncatedBody, got %v", err)
	}
}

func TestWriteMessageMismatch(t *testing.T) {
	testlog.Start(t)
	var out bytes.Buffer
	err := WriteMessage(&out, []byte{0x00, 0x09, 0x00}, Layout{Width: 2}, DefaultLimits())
	if !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("nothing should be written")
	}
}

func TestLayoutFor(t *testing.T) {
	testlog.Start(t)
	s, err := schema.ParseString("a/request\n.x: byte\n", schema.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := LayoutFor(s); !errors.Is(err, ErrNoLengthHeader) {
		t.Fatalf("expected ErrNoLengthHeader, got %v", err)
	}

	s, err = schema.ParseString("*/request\n.len: word\n*/answer\n.len: longword\na/request\nb/answer\n", schema.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := LayoutFor(s); !errors.Is(err, ErrMixedLayouts) {
		t.Fatalf("expected ErrMixedLayouts, got %v", err)
	}

	s, err = schema.ParseString("*/request\n.kind: byte\n.len: word\na/request\n", schema.Options{LengthField: "len"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	layout, err := LayoutFor(s)
	if err != nil || layout != (Layout{Offset: 1, Width: 2}) {
		t.Fatalf("layout: %+v %v", layout, err)
	}
}
