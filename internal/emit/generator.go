// Package emit turns a distributed schema into Go source: an interface
// artifact holding the message types and an implementation artifact holding
// the decode, encode and describe procedures with their dispatch tables.
package emit

import (
	"errors"
	"fmt"
	"go/format"
	"go/token"
	"strings"

	"github.com/danmuck/msgc/internal/protocol/codec"
	"github.com/danmuck/msgc/internal/protocol/schema"
	"github.com/rs/zerolog/log"
)

// Header marks every generated file.
const Header = "// Code generated by msgc. DO NOT EDIT."

const DefaultRuntimeImport = "github.com/danmuck/msgc/pkg/wire"

var ErrNotDistributed = errors.New("emit: schema common fields not distributed")

type Options struct {
	// Package is the Go package name of the generated files.
	Package string
	// Prefix names the artifacts <prefix>_types.go and <prefix>_codec.go.
	Prefix        string
	RuntimeImport string
	Dispatch      codec.Options
}

func (o Options) validate() error {
	if !token.IsIdentifier(o.Package) {
		return fmt.Errorf("emit: package %q is not a Go identifier", o.Package)
	}
	if o.Prefix == "" || strings.ContainsAny(o.Prefix, `/\`) {
		return fmt.Errorf("emit: invalid artifact prefix %q", o.Prefix)
	}
	return o.Dispatch.Validate()
}

// Artifact is one generated file.
type Artifact struct {
	Name string
	Data []byte
}

// Generate renders both artifacts in memory. Nothing is returned unless both
// render and format cleanly. Output depends only on s and opts.
func Generate(s *schema.Schema, opts Options) ([]Artifact, error) {
	if !s.Distributed() {
		return nil, ErrNotDistributed
	}
	if opts.RuntimeImport == "" {
		opts.RuntimeImport = DefaultRuntimeImport
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	names, err := resolveNames(s)
	if err != nil {
		return nil, err
	}
	g := &generator{schema: s, opts: opts, names: names}

	types, err := g.render(g.typesFile)
	if err != nil {
		return nil, fmt.Errorf("types artifact: %w", err)
	}
	impl, err := g.render(g.codecFile)
	if err != nil {
		return nil, fmt.Errorf("codec artifact: %w", err)
	}
	arts := []Artifact{
		{Name: opts.Prefix + "_types.go", Data: types},
		{Name: opts.Prefix + "_codec.go", Data: impl},
	}
	log.Debug().
		Str("package", opts.Package).
		Int("types_bytes", len(types)).
		Int("codec_bytes", len(impl)).
		Msg("artifacts rendered")
	return arts, nil
}

type generator struct {
	schema *schema.Schema
	opts   Options
	names  []messageNames
	out    strings.Builder
}

func (g *generator) line(format string, args ...any) {
	fmt.Fprintf(&g.out, format+"\n", args...)
}

func (g *generator) render(body func() error) ([]byte, error) {
	g.out.Reset()
	g.line("%s", Header)
	g.line("")
	g.line("package %s", g.opts.Package)
	g.line("")
	if err := body(); err != nil {
		return nil, err
	}
	src, err := format.Source([]byte(g.out.String()))
	if err != nil {
		return nil, fmt.Errorf("emit: gofmt: %w", err)
	}
	return src, nil
}

func (g *generator) typesFile() error {
	g.line("// Kind identifies a message by its discriminant.")
	g.line("type Kind int")
	g.line("")
	if len(g.names) > 0 {
		g.line("const (")
		for i, n := range g.names {
			if i == 0 {
				g.line("%s Kind = iota", n.Kind)
				continue
			}
			g.line("%s", n.Kind)
		}
		g.line(")")
		g.line("")
	}
	g.line("// KindMax is the largest valid discriminant.")
	g.line("const KindMax Kind = %d", g.schema.MaxDiscriminant())
	g.line("")
	g.line("// KindBogus is reported for buffers whose kind cannot be determined.")
	g.line("const KindBogus Kind = -1")
	g.line("")
	g.line("func (k Kind) String() string { return KindName(k) }")
	g.line("")
	g.line("// Flags are the context flags guards may name. A missing flag is false.")
	g.line("type Flags map[string]bool")
	g.line("")
	g.line("// Message is implemented by every message struct; the concrete type is the")
	g.line("// active variant.")
	g.line("type Message interface {")
	g.line("Kind() Kind")
	g.line("}")
	g.line("")
	g.line("// DecodeFunc decodes one message from buf.")
	g.line("type DecodeFunc func(buf []byte, flags Flags) (Message, error)")
	g.line("")
	g.line("// EncodeFunc writes msg into buf and returns the encoded length.")
	g.line("type EncodeFunc func(msg Message, buf []byte, flags Flags) (int, error)")
	g.line("")
	g.line("// DescribeFunc renders msg in at most max bytes.")
	g.line("type DescribeFunc func(msg Message, max int) string")

	for i, m := range g.schema.Messages {
		n := g.names[i]
		g.line("")
		g.line("// %s is %s.", n.Type, m.FullName())
		g.line("type %s struct {", n.Type)
		for _, f := range m.Fields {
			if f == m.Length {
				continue
			}
			g.line("%s %s", n.field(f), f.Type.GoType)
		}
		g.line("}")
		g.line("")
		g.line("func (*%s) Kind() Kind { return %s }", n.Type, n.Kind)
	}
	return nil
}

func (g *generator) codecFile() error {
	g.line("import %q", g.opts.RuntimeImport)
	for i, m := range g.schema.Messages {
		n := g.names[i]
		if err := g.decodeFunc(m, n); err != nil {
			return err
		}
		if err := g.encodeFunc(m, n); err != nil {
			return err
		}
		g.describeFunc(m, n)
	}
	g.tables()
	g.dispatch()
	return nil
}

func (g *generator) cond(m *schema.Message, n messageNames, f *schema.Field) (string, error) {
	return guardCond(f.Guard, func(name string) string {
		ref, _ := m.Field(name)
		return n.field(ref)
	})
}

func widthBits(width int) int {
	return 8 * width
}

func (g *generator) decodeFunc(m *schema.Message, n messageNames) error {
	name := m.FullName()
	g.line("")
	g.line("func decode%s(buf []byte, flags Flags) (Message, error) {", n.Type)
	if m.FixedSize > 0 {
		g.line("if len(buf) < %d {", m.FixedSize)
		g.line("return nil, wire.Fail(%q, \"\", wire.ErrTruncatedHeader)", name)
		g.line("}")
	}
	g.line("m := &%s{}", n.Type)
	if len(m.Fields) > 0 {
		g.line("r := wire.NewReader(buf)")
		g.line("var err error")
	}
	emit := func(f *schema.Field, read string) error {
		target := "_"
		if f != m.Length {
			target = "m." + n.field(f)
		}
		if f.Guarded() {
			c, err := g.cond(m, n, f)
			if err != nil {
				return err
			}
			g.line("if %s {", c)
		}
		g.line("if %s, err = r.%s; err != nil {", target, read)
		g.line("return nil, wire.Fail(%q, %q, err)", name, f.Name)
		g.line("}")
		if f.Guarded() {
			g.line("}")
		}
		return nil
	}
	for _, f := range m.FixedFields {
		if err := emit(f, fmt.Sprintf("Uint%d()", widthBits(f.Type.Width))); err != nil {
			return err
		}
	}
	for _, f := range m.VariableFields {
		read := "Array()"
		if f.Type.Name == "string" {
			read = "String()"
		}
		if err := emit(f, read); err != nil {
			return err
		}
	}
	g.line("return m, nil")
	g.line("}")
	return nil
}

// usesStruct reports whether m has any field besides the length header.
func usesStruct(m *schema.Message) bool {
	for _, f := range m.Fields {
		if f != m.Length {
			return true
		}
	}
	return false
}

func (g *generator) encodeFunc(m *schema.Message, n messageNames) error {
	name := m.FullName()
	g.line("")
	g.line("func encode%s(msg Message, buf []byte, flags Flags) (int, error) {", n.Type)
	if usesStruct(m) {
		g.line("m, ok := msg.(*%s)", n.Type)
		g.line("if !ok || m == nil {")
	} else {
		g.line("if _, ok := msg.(*%s); !ok {", n.Type)
	}
	g.line("return 0, wire.Fail(%q, \"\", wire.ErrUnknownKind)", name)
	g.line("}")
	g.line("w := wire.NewWriter(buf)")
	if len(m.Fields) > 0 {
		g.line("var err error")
	}
	if m.Length != nil {
		g.line("var at int")
	}
	emit := func(f *schema.Field, write string) error {
		if f.Guarded() {
			c, err := g.cond(m, n, f)
			if err != nil {
				return err
			}
			g.line("if %s {", c)
		}
		g.line("if err = w.%s; err != nil {", write)
		g.line("return 0, wire.Fail(%q, %q, err)", name, f.Name)
		g.line("}")
		if f.Guarded() {
			g.line("}")
		}
		return nil
	}
	for _, f := range m.FixedFields {
		if f == m.Length {
			g.line("if at, err = w.Reserve(%d); err != nil {", f.Type.Width)
			g.line("return 0, wire.Fail(%q, %q, err)", name, f.Name)
			g.line("}")
			continue
		}
		if err := emit(f, fmt.Sprintf("PutUint%d(m.%s)", widthBits(f.Type.Width), n.field(f))); err != nil {
			return err
		}
	}
	for _, f := range m.VariableFields {
		write := fmt.Sprintf("PutArray(m.%s)", n.field(f))
		if f.Type.Name == "string" {
			write = fmt.Sprintf("PutString(m.%s)", n.field(f))
		}
		if err := emit(f, write); err != nil {
			return err
		}
	}
	if m.Length != nil {
		g.line("if err = w.Patch(at, %d, w.Len()); err != nil {", m.Length.Type.Width)
		g.line("return 0, wire.Fail(%q, %q, err)", name, m.Length.Name)
		g.line("}")
	}
	g.line("return w.Len(), nil")
	g.line("}")
	return nil
}

func (g *generator) describeFunc(m *schema.Message, n messageNames) {
	g.line("")
	g.line("func describe%s(msg Message, max int) string {", n.Type)
	if usesStruct(m) {
		g.line("m, ok := msg.(*%s)", n.Type)
		g.line("if !ok || m == nil {")
	} else {
		g.line("if _, ok := msg.(*%s); !ok {", n.Type)
	}
	g.line("return describeBogus(max)")
	g.line("}")
	g.line("f := wire.NewFormatter(max)")
	g.line("f.WriteString(%q)", m.FullName()+" { ")
	tag := func(f *schema.Field) {
		if f.Guarded() {
			g.line("f.WriteString(\"[G] \")")
		}
	}
	for _, f := range m.FixedFields {
		if f == m.Length {
			continue
		}
		g.line("f.Printf(%q, m.%s)", f.Name+"=%d ", n.field(f))
		tag(f)
	}
	g.line("f.WriteString(\"| \")")
	for _, f := range m.VariableFields {
		if f.Type.Name == "string" {
			g.line("f.Printf(%q, wire.Quote(m.%s))", f.Name+"=%s ", n.field(f))
		} else {
			g.line("f.Printf(%q, len(m.%s))", f.Name+"=array(%d) ", n.field(f))
		}
		tag(f)
	}
	g.line("return f.String()")
	g.line("}")
}

func (g *generator) tables() {
	for _, t := range []struct{ name, typ, prefix string }{
		{"decoders", "DecodeFunc", "decode"},
		{"encoders", "EncodeFunc", "encode"},
		{"describers", "DescribeFunc", "describe"},
	} {
		g.line("")
		g.line("var %s = []%s{", t.name, t.typ)
		for _, n := range g.names {
			g.line("%s%s,", t.prefix, n.Type)
		}
		g.line("}")
	}
}

func (g *generator) dispatch() {
	d := g.opts.Dispatch
	g.line("")
	g.line("func peekKind(buf []byte) Kind {")
	g.line("tag, ok := wire.PeekTag(buf, %d, %d, %d)", d.TagOffset, d.TagWidth, d.MinPeekSize)
	g.line("if !ok || int64(tag) > int64(KindMax) {")
	g.line("return KindBogus")
	g.line("}")
	g.line("return Kind(tag)")
	g.line("}")
	g.line("")
	g.line("// Decode peeks the kind tag of buf and decodes the message it names.")
	g.line("func Decode(buf []byte, flags Flags) (Message, error) {")
	g.line("k := peekKind(buf)")
	g.line("if k == KindBogus {")
	g.line("return nil, wire.Fail(\"\", \"\", wire.ErrUnknownKind)")
	g.line("}")
	g.line("return decoders[k](buf, flags)")
	g.line("}")
	g.line("")
	g.line("// Encode writes msg into buf and returns the encoded length. len(buf) is")
	g.line("// the capacity; the length header is patched only on success.")
	g.line("func Encode(msg Message, buf []byte, flags Flags) (int, error) {")
	g.line("if msg == nil || msg.Kind() < 0 || msg.Kind() > KindMax {")
	g.line("return 0, wire.Fail(\"\", \"\", wire.ErrUnknownKind)")
	g.line("}")
	g.line("return encoders[msg.Kind()](msg, buf, flags)")
	g.line("}")
	g.line("")
	g.line("// Describe renders msg in at most max bytes.")
	g.line("func Describe(msg Message, max int) string {")
	g.line("if msg == nil || msg.Kind() < 0 || msg.Kind() > KindMax {")
	g.line("return describeBogus(max)")
	g.line("}")
	g.line("return describers[msg.Kind()](msg, max)")
	g.line("}")
	g.line("")
	g.line("func describeBogus(max int) string {")
	g.line("f := wire.NewFormatter(max)")
	g.line("f.WriteString(%q)", codec.BogusName)
	g.line("return f.String()")
	g.line("}")
	g.line("")
	g.line("// KindName maps a discriminant to \"<name>/<class>\".")
	g.line("func KindName(k Kind) string {")
	g.line("switch k {")
	for i, m := range g.schema.Messages {
		g.line("case %s:", g.names[i].Kind)
		g.line("return %q", m.FullName())
	}
	g.line("default:")
	g.line("return %q", codec.BogusName)
	g.line("}")
	g.line("}")
}
