package emit

import (
	"fmt"
	"go/token"
	"strings"

	"github.com/danmuck/msgc/internal/protocol/schema"
)

// reserved are the package-level identifiers every generated package declares.
var reserved = []string{
	"Kind", "KindMax", "KindBogus", "Flags", "Message",
	"DecodeFunc", "EncodeFunc", "DescribeFunc",
	"Decode", "Encode", "Describe", "KindName",
}

// NameError reports a schema name that cannot become a Go identifier.
type NameError struct {
	Message string
	Field   string
	Reason  string
}

func (e *NameError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("emit: %s: %s", e.Message, e.Reason)
	}
	return fmt.Sprintf("emit: %s.%s: %s", e.Message, e.Field, e.Reason)
}

// GoName converts a snake_case schema name into an exported Go identifier.
func GoName(raw string) string {
	var b strings.Builder
	for _, part := range strings.Split(raw, "_") {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

type messageNames struct {
	Type   string
	Kind   string
	fields map[*schema.Field]string
}

func (n messageNames) field(f *schema.Field) string {
	return n.fields[f]
}

// resolveNames assigns Go names to every message and field and rejects
// collisions with each other and with the generated declarations.
func resolveNames(s *schema.Schema) ([]messageNames, error) {
	taken := make(map[string]string, len(reserved)+2*len(s.Messages))
	for _, id := range reserved {
		taken[id] = "generated declaration"
	}
	claim := func(m *schema.Message, id string) error {
		if !token.IsIdentifier(id) || !token.IsExported(id) {
			return &NameError{Message: m.FullName(), Reason: fmt.Sprintf("%q is not an exported Go identifier", id)}
		}
		if owner, ok := taken[id]; ok {
			return &NameError{Message: m.FullName(), Reason: fmt.Sprintf("Go name %s collides with %s", id, owner)}
		}
		taken[id] = m.FullName()
		return nil
	}

	out := make([]messageNames, len(s.Messages))
	for i, m := range s.Messages {
		typ := GoName(m.Name) + GoName(string(m.Class))
		if err := claim(m, typ); err != nil {
			return nil, err
		}
		if err := claim(m, "Kind"+typ); err != nil {
			return nil, err
		}
		n := messageNames{Type: typ, Kind: "Kind" + typ, fields: make(map[*schema.Field]string, len(m.Fields))}
		seen := map[string]string{"Kind": "the Kind method"}
		for _, f := range m.Fields {
			if f == m.Length {
				continue
			}
			id := GoName(f.Name)
			if !token.IsIdentifier(id) || !token.IsExported(id) {
				return nil, &NameError{Message: m.FullName(), Field: f.Name, Reason: fmt.Sprintf("%q is not an exported Go identifier", id)}
			}
			if owner, ok := seen[id]; ok {
				return nil, &NameError{Message: m.FullName(), Field: f.Name, Reason: fmt.Sprintf("Go name %s collides with %s", id, owner)}
			}
			seen[id] = "field " + f.Name
			n.fields[f] = id
		}
		out[i] = n
	}
	return out, nil
}
