package codec

import (
	"github.com/danmuck/msgc/internal/protocol/guard"
	"github.com/danmuck/msgc/internal/protocol/schema"
	"github.com/danmuck/msgc/internal/protocol/wiretype"
	"github.com/danmuck/msgc/pkg/wire"
)

type (
	decodeFunc   func(buf []byte, flags Flags) (*Record, error)
	encodeFunc   func(rec *Record, buf []byte, flags Flags) (int, error)
	describeFunc func(rec *Record, max int) string
)

// procs are the three procedures derived for one message.
type procs struct {
	decode   decodeFunc
	encode   encodeFunc
	describe describeFunc
}

func compileMessage(m *schema.Message) procs {
	return procs{
		decode:   func(buf []byte, flags Flags) (*Record, error) { return decodeMessage(m, buf, flags) },
		encode:   func(rec *Record, buf []byte, flags Flags) (int, error) { return encodeMessage(m, rec, buf, flags) },
		describe: func(rec *Record, max int) string { return describeMessage(m, rec, max) },
	}
}

func present(f *schema.Field, e env) bool {
	return f.Guard == nil || guard.Holds(f.Guard, e)
}

func decodeMessage(m *schema.Message, buf []byte, flags Flags) (*Record, error) {
	name := m.FullName()
	if len(buf) < m.FixedSize {
		return nil, wire.Fail(name, "", wire.ErrTruncatedHeader)
	}
	rec := NewRecord(m.Discriminant)
	for _, f := range m.Fields {
		if f != m.Length {
			rec.Values[f.Name] = Value{}
		}
	}
	e := env{rec: rec, flags: flags}
	r := wire.NewReader(buf)

	for _, f := range m.FixedFields {
		if !present(f, e) {
			continue
		}
		v, err := r.Uint(f.Type.Width)
		if err != nil {
			return nil, wire.Fail(name, f.Name, err)
		}
		if f != m.Length {
			rec.Values[f.Name] = Int(v)
		}
	}

	for _, f := range m.VariableFields {
		if !present(f, e) {
			continue
		}
		switch f.Type {
		case wiretype.String:
			s, err := r.String()
			if err != nil {
				return nil, wire.Fail(name, f.Name, err)
			}
			rec.Values[f.Name] = Str(s)
		case wiretype.Array:
			b, err := r.Array()
			if err != nil {
				return nil, wire.Fail(name, f.Name, err)
			}
			rec.Values[f.Name] = Bytes(b)
		}
	}
	return rec, nil
}

func encodeMessage(m *schema.Message, rec *Record, buf []byte, flags Flags) (int, error) {
	name := m.FullName()
	e := env{rec: rec, flags: flags}
	w := wire.NewWriter(buf)
	lengthAt := 0

	for _, f := range m.FixedFields {
		if f == m.Length {
			at, err := w.Reserve(f.Type.Width)
			if err != nil {
				return 0, wire.Fail(name, f.Name, err)
			}
			lengthAt = at
			continue
		}
		if !present(f, e) {
			continue
		}
		v := rec.Values[f.Name].Int
		if uint64(v) > maxValue(f.Type.Width) {
			return 0, &RangeError{Message: name, Field: f.Name, Value: v}
		}
		if err := w.PutUint(f.Type.Width, v); err != nil {
			return 0, wire.Fail(name, f.Name, err)
		}
	}

	for _, f := range m.VariableFields {
		if !present(f, e) {
			continue
		}
		var err error
		switch f.Type {
		case wiretype.String:
			err = w.PutString(rec.Values[f.Name].Str)
		case wiretype.Array:
			err = w.PutArray(rec.Values[f.Name].Bytes)
		}
		if err != nil {
			return 0, wire.Fail(name, f.Name, err)
		}
	}

	if m.Length != nil {
		if err := w.Patch(lengthAt, m.Length.Type.Width, w.Len()); err != nil {
			return 0, wire.Fail(name, m.Length.Name, err)
		}
	}
	return w.Len(), nil
}

func describeMessage(m *schema.Message, rec *Record, max int) string {
	f := wire.NewFormatter(max)
	f.Printf("%s { ", m.FullName())
	for _, field := range m.FixedFields {
		if field == m.Length {
			continue
		}
		f.Printf("%s=%d ", field.Name, rec.Values[field.Name].Int)
		if field.Guarded() {
			f.WriteString("[G] ")
		}
	}
	f.WriteString("| ")
	for _, field := range m.VariableFields {
		switch field.Type {
		case wiretype.String:
			f.Printf("%s=%s ", field.Name, wire.Quote(rec.Values[field.Name].Str))
		case wiretype.Array:
			f.Printf("%s=array(%d) ", field.Name, len(rec.Values[field.Name].Bytes))
		}
		if field.Guarded() {
			f.WriteString("[G] ")
		}
	}
	return f.String()
}

func maxValue(width int) uint64 {
	return 1<<(8*uint(width)) - 1
}
