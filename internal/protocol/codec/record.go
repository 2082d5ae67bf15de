package codec

import (
	"github.com/danmuck/msgc/internal/protocol/guard"
	"github.com/danmuck/msgc/pkg/wire"
)

// Flags are the caller-supplied context flags guards may name. A missing
// flag is false.
type Flags map[string]bool

// Value holds one field value. Integer fields use Int, string fields Str and
// array fields Bytes.
type Value struct {
	Int   uint32
	Str   string
	Bytes []byte
}

func Int(v uint32) Value   { return Value{Int: v} }
func Str(s string) Value   { return Value{Str: s} }
func Bytes(b []byte) Value { return Value{Bytes: b} }

// Record is a message instance keyed by field name. Kind is the discriminant
// of the message it belongs to; the length header never appears in Values.
type Record struct {
	Kind   int
	Values map[string]Value
}

func NewRecord(kind int) *Record {
	return &Record{Kind: kind, Values: make(map[string]Value)}
}

// Set stores v under name and returns r for chaining.
func (r *Record) Set(name string, v Value) *Record {
	if r.Values == nil {
		r.Values = make(map[string]Value)
	}
	r.Values[name] = v
	return r
}

func (r *Record) Int(name string) uint32 {
	return r.Values[name].Int
}

func (r *Record) Str(name string) string {
	return r.Values[name].Str
}

func (r *Record) Bytes(name string) []byte {
	return r.Values[name].Bytes
}

// env resolves guard identifiers against a record and the caller's flags.
type env struct {
	rec   *Record
	flags Flags
}

func (e env) Lookup(id *guard.Ident) uint32 {
	if id.Ref == guard.RefField {
		return e.rec.Values[id.Name].Int
	}
	return wire.Bool(e.flags[id.Name])
}
