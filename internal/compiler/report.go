package compiler

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/danmuck/msgc/internal/protocol/schema"
	"github.com/olekukonko/tablewriter"
)

// Report writes one row per message: discriminant, name, fixed size and the
// field layout. Offsets are printed while they are static; a guarded fixed
// field makes every later offset depend on the guard.
func Report(w io.Writer, s *schema.Schema) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Kind", "Message", "Fixed", "Fields"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	for _, m := range s.Messages {
		table.Append([]string{
			strconv.Itoa(m.Discriminant),
			m.FullName(),
			strconv.Itoa(m.FixedSize),
			layoutString(m),
		})
	}
	table.Render()
}

func layoutString(m *schema.Message) string {
	parts := make([]string, 0, len(m.Fields))
	for _, f := range m.FixedFields {
		p := f.Name
		if off, ok := m.Offset(f.Name); ok {
			p = fmt.Sprintf("%s@%d", f.Name, off)
		}
		if f == m.Length {
			p += "(len)"
		}
		if f.Guarded() {
			p += "[" + f.GuardSource + "]"
		}
		parts = append(parts, p)
	}
	for _, f := range m.VariableFields {
		p := f.Name + ":" + f.Type.Name
		if f.Guarded() {
			p += "[" + f.GuardSource + "]"
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, " ")
}
