package rlaunch

import (
	"errors"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/danmuck/msgc/internal/config"
	"github.com/danmuck/msgc/internal/emit"
	"github.com/danmuck/msgc/internal/protocol/codec"
	"github.com/danmuck/msgc/internal/protocol/schema"
	"github.com/danmuck/msgc/internal/testutil/testlog"
	"github.com/danmuck/msgc/pkg/wire"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodePing(t *testing.T) {
	testlog.Start(t)
	buf := make([]byte, 16)
	n, err := Encode(&PingRequest{HdrType: uint8(KindPingRequest), HdrSequenceNum: 7}, buf, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x06, 0x00, 0x00, 0x00, 0x07}, buf[:n])

	msg, err := Decode(buf[:n], nil)
	require.NoError(t, err)
	assert.Equal(t, &PingRequest{HdrSequenceNum: 7}, msg)
	assert.Equal(t, "ping/request { hdr_flags=0 hdr_type=0 hdr_sequence_num=7 | ", Describe(msg, 256))
}

func TestDecodeUnknownKind(t *testing.T) {
	testlog.Start(t)
	_, err := Decode([]byte{0x00, 0x06, 0x00, 0x63, 0x00, 0x07}, nil)
	assert.ErrorIs(t, err, wire.ErrUnknownKind)
	_, err = Decode([]byte{0x00, 0x06, 0x00}, nil)
	assert.ErrorIs(t, err, wire.ErrUnknownKind)

	_, err = Decode([]byte{0x00, 0x06, 0x00, 0x00, 0x00}, nil)
	assert.ErrorIs(t, err, wire.ErrTruncatedHeader)

	assert.Equal(t, "bogus", KindName(KindBogus))
	assert.Equal(t, "bogus", KindName(KindMax+1))
	assert.Equal(t, "spawn/request", KindSpawnRequest.String())
}

func TestGuardOnEarlierField(t *testing.T) {
	testlog.Start(t)
	buf := make([]byte, 32)
	dir := &OpenHandleAnswer{HdrType: uint8(KindOpenHandleAnswer), HdrInReplyTo: 9, Type: 2, Handle: 0x0a0b0c0d, Size: 77}
	n, err := Encode(dir, buf, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x0b, 0x00, 0x03, 0x00, 0x09, 0x02, 0x0a, 0x0b, 0x0c, 0x0d}, buf[:n])

	msg, err := Decode(buf[:n], nil)
	require.NoError(t, err)
	got := msg.(*OpenHandleAnswer)
	assert.Equal(t, uint32(0), got.Size)
	assert.Equal(t, uint32(0x0a0b0c0d), got.Handle)

	file := &OpenHandleAnswer{HdrType: uint8(KindOpenHandleAnswer), HdrInReplyTo: 9, Type: 1, Handle: 1, Size: 4096}
	n, err = Encode(file, buf, nil)
	require.NoError(t, err)
	assert.Equal(t, 15, n)
	msg, err = Decode(buf[:n], nil)
	require.NoError(t, err)
	assert.Equal(t, file, msg)
	assert.Contains(t, Describe(msg, 256), "size=4096 [G] ")
}

func TestAnswerErrorCode(t *testing.T) {
	testlog.Start(t)
	buf := make([]byte, 16)
	failed := &PingAnswer{HdrFlags: 2, HdrType: uint8(KindPingAnswer), HdrInReplyTo: 7, HdrError: 5}
	n, err := Encode(failed, buf, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x07, 0x02, 0x01, 0x00, 0x07, 0x05}, buf[:n])
	msg, err := Decode(buf[:n], nil)
	require.NoError(t, err)
	assert.Equal(t, failed, msg)

	ok := &PingAnswer{HdrType: uint8(KindPingAnswer), HdrInReplyTo: 7, HdrError: 5}
	n, err = Encode(ok, buf, nil)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	msg, err = Decode(buf[:n], nil)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), msg.(*PingAnswer).HdrError)
}

func TestFlagGuardAndStrings(t *testing.T) {
	testlog.Start(t)
	buf := make([]byte, 64)
	spawn := &SpawnRequest{HdrType: uint8(KindSpawnRequest), HdrSequenceNum: 1, StdinHandle: 3, Command: "c:run"}
	redirect := Flags{"redirect_input": true}

	n, err := Encode(spawn, buf, redirect)
	require.NoError(t, err)
	assert.Equal(t, 6+4+7, n)
	msg, err := Decode(buf[:n], redirect)
	require.NoError(t, err)
	assert.Equal(t, spawn, msg)

	n, err = Encode(spawn, buf, nil)
	require.NoError(t, err)
	assert.Equal(t, 6+7, n)
	msg, err = Decode(buf[:n], nil)
	require.NoError(t, err)
	assert.Equal(t, "c:run", msg.(*SpawnRequest).Command)
	assert.Equal(t, uint32(0), msg.(*SpawnRequest).StdinHandle)

	assert.Contains(t, Describe(&OpenHandleRequest{}, 256), "path=<null> ")
}

func TestEncodeFailures(t *testing.T) {
	testlog.Start(t)
	buf := make([]byte, 8)
	_, err := Encode(&ReadFileAnswer{HdrType: uint8(KindReadFileAnswer), Data: make([]byte, 16)}, buf, nil)
	require.ErrorIs(t, err, wire.ErrBufferOverflow)
	assert.Equal(t, []byte{0x00, 0x00}, buf[:2], "length header is patched only on success")

	_, err = Encode(nil, buf, nil)
	assert.ErrorIs(t, err, wire.ErrUnknownKind)
	var none *PingRequest
	_, err = Encode(none, buf, nil)
	assert.ErrorIs(t, err, wire.ErrUnknownKind)
	assert.Equal(t, "bogus", Describe(nil, 16))

	big := make([]byte, 1<<16)
	_, err = Encode(&ReadFileAnswer{Data: big}, make([]byte, 1<<17), nil)
	assert.ErrorIs(t, err, wire.ErrBufferOverflow)

	var ce *wire.CodecError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "read_file/answer", ce.Message)
}

func TestDecodeMalformed(t *testing.T) {
	testlog.Start(t)
	buf := make([]byte, 32)
	n, err := Encode(&ReadFileAnswer{HdrType: uint8(KindReadFileAnswer), Data: []byte{1, 2, 3}}, buf, nil)
	require.NoError(t, err)

	msg := append([]byte(nil), buf[:n]...)
	msg[9] = 0x7f
	_, err = Decode(msg, nil)
	assert.ErrorIs(t, err, wire.ErrMalformedLength)

	_, err = Decode(buf[:8], nil)
	assert.ErrorIs(t, err, wire.ErrTruncatedBody)
}

// loadCodec builds the data-driven codec from the same schema and config the
// checked-in files were generated from.
func loadCodec(t *testing.T) (*codec.Codec, config.Config) {
	t.Helper()
	cfg, err := config.Load("msgc.toml")
	require.NoError(t, err)
	f, err := os.Open(cfg.Schema)
	require.NoError(t, err)
	defer f.Close()
	s, err := schema.Parse(f, cfg.SchemaOptions())
	require.NoError(t, err)
	c, err := codec.New(s, cfg.DispatchOptions())
	require.NoError(t, err)
	return c, cfg
}

func TestMatchesDataDrivenCodec(t *testing.T) {
	testlog.Start(t)
	c, _ := loadCodec(t)
	flags := Flags{"redirect_input": true}
	cases := []struct {
		msg Message
		rec *codec.Record
	}{
		{
			&PingRequest{HdrType: 0, HdrSequenceNum: 7},
			codec.NewRecord(0).Set("hdr_type", codec.Int(0)).Set("hdr_sequence_num", codec.Int(7)),
		},
		{
			&OpenHandleRequest{HdrType: 2, HdrSequenceNum: 3, Flags: 1, Path: "s:startup"},
			codec.NewRecord(2).Set("hdr_type", codec.Int(2)).Set("hdr_sequence_num", codec.Int(3)).
				Set("flags", codec.Int(1)).Set("path", codec.Str("s:startup")),
		},
		{
			&OpenHandleAnswer{HdrFlags: 2, HdrType: 3, HdrInReplyTo: 3, HdrError: 4, Type: 1, Handle: 8, Size: 100},
			codec.NewRecord(3).Set("hdr_flags", codec.Int(2)).Set("hdr_type", codec.Int(3)).
				Set("hdr_in_reply_to", codec.Int(3)).Set("hdr_error", codec.Int(4)).
				Set("type", codec.Int(1)).Set("handle", codec.Int(8)).Set("size", codec.Int(100)),
		},
		{
			&ReadFileAnswer{HdrType: 5, Data: []byte("payload")},
			codec.NewRecord(5).Set("hdr_type", codec.Int(5)).Set("data", codec.Bytes([]byte("payload"))),
		},
		{
			&SpawnRequest{HdrType: 6, StdinHandle: 2, Command: "list"},
			codec.NewRecord(6).Set("hdr_type", codec.Int(6)).Set("stdin_handle", codec.Int(2)).
				Set("command", codec.Str("list")),
		},
	}
	for _, tc := range cases {
		name := KindName(tc.msg.Kind())
		gen := make([]byte, 64)
		n, err := Encode(tc.msg, gen, flags)
		require.NoError(t, err, name)
		data := make([]byte, 64)
		m, err := c.Encode(tc.rec, data, codec.Flags(flags))
		require.NoError(t, err, name)
		require.Equal(t, gen[:n], data[:m], name)

		rec, err := c.Decode(gen[:n], codec.Flags(flags))
		require.NoError(t, err, name)
		for field, want := range tc.rec.Values {
			if diff := cmp.Diff(want, rec.Values[field], cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("%s.%s decode (-want +got):\n%s", name, field, diff)
			}
		}
		assert.Equal(t, Describe(tc.msg, 256), c.Describe(rec, 256), name)
		assert.Equal(t, name, c.KindName(rec.Kind))
	}
}

func declNames(t *testing.T, name string, src []byte) []string {
	t.Helper()
	f, err := parser.ParseFile(token.NewFileSet(), name, src, 0)
	require.NoError(t, err)
	var out []string
	for _, d := range f.Decls {
		switch d := d.(type) {
		case *ast.FuncDecl:
			out = append(out, d.Name.Name)
		case *ast.GenDecl:
			for _, s := range d.Specs {
				switch s := s.(type) {
				case *ast.TypeSpec:
					out = append(out, s.Name.Name)
				case *ast.ValueSpec:
					for _, n := range s.Names {
						out = append(out, n.Name)
					}
				}
			}
		}
	}
	sort.Strings(out)
	return out
}

func TestCheckedInFilesMatchGenerator(t *testing.T) {
	testlog.Start(t)
	c, cfg := loadCodec(t)
	arts, err := emit.Generate(c.Schema(), cfg.EmitOptions())
	require.NoError(t, err)
	for _, a := range arts {
		onDisk, err := os.ReadFile(filepath.Join(".", a.Name))
		require.NoError(t, err, a.Name)
		assert.Equal(t, declNames(t, a.Name, a.Data), declNames(t, a.Name, onDisk), a.Name)
	}
}
