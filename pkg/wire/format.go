package wire

import (
	"fmt"
	"strings"
)

// NullString is how Describe renders an unset string.
const NullString = "<null>"

// Formatter accumulates describe output and never grows past its limit.
type Formatter struct {
	b   strings.Builder
	max int
}

func NewFormatter(max int) *Formatter {
	if max < 0 {
		max = 0
	}
	return &Formatter{max: max}
}

func (f *Formatter) Printf(format string, args ...any) {
	f.WriteString(fmt.Sprintf(format, args...))
}

func (f *Formatter) WriteString(s string) {
	room := f.max - f.b.Len()
	if room <= 0 {
		return
	}
	if len(s) > room {
		s = s[:room]
	}
	f.b.WriteString(s)
}

func (f *Formatter) String() string {
	return f.b.String()
}

// Quote renders a string field value for Describe.
func Quote(s string) string {
	if s == "" {
		return NullString
	}
	return `"` + s + `"`
}

// Bool maps a guard flag onto its integer value.
func Bool(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
