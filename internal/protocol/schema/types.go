package schema

import (
	"github.com/danmuck/msgc/internal/protocol/guard"
	"github.com/danmuck/msgc/internal/protocol/wiretype"
)

// Class partitions messages into requests and answers.
type Class string

const (
	ClassRequest Class = "request"
	ClassAnswer  Class = "answer"
)

// Classes lists every class in wire-stable order.
var Classes = []Class{ClassRequest, ClassAnswer}

func parseClass(raw string) (Class, bool) {
	switch Class(raw) {
	case ClassRequest, ClassAnswer:
		return Class(raw), true
	}
	return "", false
}

// CommonName is the header name selecting a class's common field set.
const CommonName = "*"

// Field is one named, typed slot of a message.
type Field struct {
	Name string
	Type wiretype.Type
	// Guard is nil when the field is always present.
	Guard guard.Expr
	// GuardSource is the bracketed expression as written.
	GuardSource string
	Line        int
}

// Guarded reports whether the field is conditionally present.
func (f *Field) Guarded() bool {
	return f.Guard != nil
}

func (f *Field) clone() *Field {
	c := *f
	if f.Guard != nil {
		c.Guard = guard.Clone(f.Guard)
	}
	return &c
}

// Message is one concrete wire message. After distribution Fields holds the
// class's common fields followed by the message's own fields.
type Message struct {
	Name         string
	Class        Class
	Discriminant int
	Line         int

	Fields         []*Field
	FixedFields    []*Field
	VariableFields []*Field
	// FixedSize sums the widths of unguarded fixed fields only.
	FixedSize int
	// Length is the field patched with the encoded total, nil if the class
	// declares no common fields.
	Length *Field
}

// FullName renders the "<name>/<class>" display name.
func (m *Message) FullName() string {
	return m.Name + "/" + string(m.Class)
}

// Field returns the field called name.
func (m *Message) Field(name string) (*Field, bool) {
	for _, f := range m.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// Offset returns the wire offset of a fixed field when every fixed field
// before it is unguarded.
func (m *Message) Offset(name string) (int, bool) {
	off := 0
	for _, f := range m.FixedFields {
		if f.Name == name {
			return off, true
		}
		if f.Guarded() {
			return 0, false
		}
		off += f.Type.Width
	}
	return 0, false
}

func (m *Message) layout() {
	m.FixedFields = m.FixedFields[:0]
	m.VariableFields = m.VariableFields[:0]
	m.FixedSize = 0
	for _, f := range m.Fields {
		if f.Type.IsVariable() {
			m.VariableFields = append(m.VariableFields, f)
			continue
		}
		m.FixedFields = append(m.FixedFields, f)
		if !f.Guarded() {
			m.FixedSize += f.Type.Width
		}
	}
}

// CommonFieldSet holds the fields declared under "*/<class>". It is not a
// Message and never enters a dispatch table.
type CommonFieldSet struct {
	Class  Class
	Fields []*Field
}

// Schema is the compiled protocol: concrete messages in discriminant order.
type Schema struct {
	Messages []*Message
	Common   map[Class]*CommonFieldSet

	distributed bool
}

func newSchema() *Schema {
	s := &Schema{Common: make(map[Class]*CommonFieldSet, len(Classes))}
	for _, c := range Classes {
		s.Common[c] = &CommonFieldSet{Class: c}
	}
	return s
}

// MaxDiscriminant is the highest valid discriminant, -1 for an empty schema.
func (s *Schema) MaxDiscriminant() int {
	return len(s.Messages) - 1
}

// Distributed reports whether common fields have been merged in.
func (s *Schema) Distributed() bool {
	return s.distributed
}

// Lookup finds a message by name and class.
func (s *Schema) Lookup(name string, class Class) (*Message, bool) {
	for _, m := range s.Messages {
		if m.Name == name && m.Class == class {
			return m, true
		}
	}
	return nil, false
}
