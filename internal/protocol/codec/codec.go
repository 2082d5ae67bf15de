// Package codec runs the per-message decode, encode and describe procedures
// directly over a compiled schema. It behaves exactly like the Go source the
// emitter generates and backs the CLI's describe command.
package codec

import (
	"errors"
	"fmt"

	"github.com/danmuck/msgc/internal/protocol/schema"
	"github.com/danmuck/msgc/pkg/wire"
	"github.com/rs/zerolog/log"
)

// BogusName is returned by KindName for discriminants outside the schema.
const BogusName = "bogus"

var ErrNotDistributed = errors.New("codec: schema common fields not distributed")

// RangeError reports an integer value that does not fit its field.
type RangeError struct {
	Message string
	Field   string
	Value   uint32
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("codec: %s.%s: value %d does not fit the field", e.Message, e.Field, e.Value)
}

// Options locate the kind tag peeked before decoding.
type Options struct {
	TagOffset   int
	TagWidth    int
	MinPeekSize int
}

func DefaultOptions() Options {
	return Options{TagOffset: 0, TagWidth: 1, MinPeekSize: 4}
}

// Validate checks the tag fits inside the peeked prefix.
func (o Options) Validate() error {
	switch o.TagWidth {
	case 1, 2, 4:
	default:
		return fmt.Errorf("codec: tag width %d not in {1,2,4}", o.TagWidth)
	}
	if o.TagOffset < 0 {
		return fmt.Errorf("codec: negative tag offset %d", o.TagOffset)
	}
	if o.MinPeekSize < o.TagOffset+o.TagWidth {
		return fmt.Errorf("codec: min peek size %d shorter than tag end %d", o.MinPeekSize, o.TagOffset+o.TagWidth)
	}
	return nil
}

// Codec dispatches on discriminant through tables built once from a schema.
// It holds no mutable state and is safe for concurrent use.
type Codec struct {
	schema    *schema.Schema
	opts      Options
	decoders  []decodeFunc
	encoders  []encodeFunc
	describer []describeFunc
}

func New(s *schema.Schema, opts Options) (*Codec, error) {
	if !s.Distributed() {
		return nil, ErrNotDistributed
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	c := &Codec{
		schema:    s,
		opts:      opts,
		decoders:  make([]decodeFunc, len(s.Messages)),
		encoders:  make([]encodeFunc, len(s.Messages)),
		describer: make([]describeFunc, len(s.Messages)),
	}
	for i, m := range s.Messages {
		p := compileMessage(m)
		c.decoders[i] = p.decode
		c.encoders[i] = p.encode
		c.describer[i] = p.describe
	}
	log.Debug().Int("messages", len(s.Messages)).Msg("codec tables built")
	return c, nil
}

// Schema returns the schema the codec was built from.
func (c *Codec) Schema() *schema.Schema {
	return c.schema
}

// PeekKind reads the kind tag without consuming input. It returns -1 when the
// buffer is too short or the tag is outside the schema.
func (c *Codec) PeekKind(buf []byte) int {
	tag, ok := wire.PeekTag(buf, c.opts.TagOffset, c.opts.TagWidth, c.opts.MinPeekSize)
	if !ok || int64(tag) > int64(c.schema.MaxDiscriminant()) {
		return -1
	}
	return int(tag)
}

// Decode peeks the kind tag and decodes buf with that message's procedure.
func (c *Codec) Decode(buf []byte, flags Flags) (*Record, error) {
	kind := c.PeekKind(buf)
	if kind < 0 {
		return nil, wire.Fail("", "", wire.ErrUnknownKind)
	}
	return c.decoders[kind](buf, flags)
}

// DecodeKind decodes buf as the given message kind without peeking.
func (c *Codec) DecodeKind(kind int, buf []byte, flags Flags) (*Record, error) {
	if !c.valid(kind) {
		return nil, wire.Fail("", "", wire.ErrUnknownKind)
	}
	return c.decoders[kind](buf, flags)
}

// Encode writes rec into buf using the procedure selected by rec.Kind and
// returns the encoded length. len(buf) is the capacity.
func (c *Codec) Encode(rec *Record, buf []byte, flags Flags) (int, error) {
	if rec == nil || !c.valid(rec.Kind) {
		return 0, wire.Fail("", "", wire.ErrUnknownKind)
	}
	return c.encoders[rec.Kind](rec, buf, flags)
}

// Describe renders rec in at most max bytes.
func (c *Codec) Describe(rec *Record, max int) string {
	if rec == nil || !c.valid(rec.Kind) {
		f := wire.NewFormatter(max)
		f.WriteString(BogusName)
		return f.String()
	}
	return c.describer[rec.Kind](rec, max)
}

// KindName maps a discriminant to "<name>/<class>".
func (c *Codec) KindName(kind int) string {
	if !c.valid(kind) {
		return BogusName
	}
	return c.schema.Messages[kind].FullName()
}

func (c *Codec) valid(kind int) bool {
	return kind >= 0 && kind < len(c.schema.Messages)
}
