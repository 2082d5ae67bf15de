package wiretype

import "sort"

// Variable is the Width reported by variable-length types.
const Variable = -1

// Type is one primitive wire type.
type Type struct {
	Name  string
	Width int
	// GoType is the Go type generated records use for the field.
	GoType string
}

// IsVariable reports whether the encoded width depends on the value.
func (t Type) IsVariable() bool {
	return t.Width == Variable
}

var (
	Byte     = Type{Name: "byte", Width: 1, GoType: "uint8"}
	Word     = Type{Name: "word", Width: 2, GoType: "uint16"}
	Longword = Type{Name: "longword", Width: 4, GoType: "uint32"}
	String   = Type{Name: "string", Width: Variable, GoType: "string"}
	Array    = Type{Name: "array", Width: Variable, GoType: "[]byte"}
)

var registry = map[string]Type{
	Byte.Name:     Byte,
	Word.Name:     Word,
	Longword.Name: Longword,
	String.Name:   String,
	Array.Name:    Array,
}

// Lookup returns the wire type registered under name.
func Lookup(name string) (Type, bool) {
	t, ok := registry[name]
	return t, ok
}

// All returns every registered type ordered by name.
func All() []Type {
	out := make([]Type, 0, len(registry))
	for _, t := range registry {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
