package schema

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/danmuck/msgc/internal/protocol/guard"
	"github.com/danmuck/msgc/internal/protocol/wiretype"
	"github.com/rs/zerolog/log"
)

var (
	reHeader = regexp.MustCompile(`^(\*|\w+)\s*/\s*(\w+)$`)
	reField  = regexp.MustCompile(`^\.(\w+)\s*:\s*(\w+)\s*(?:\[\s*(.*?)\s*\])?$`)
)

// Options tune distribution.
type Options struct {
	// LengthField names the common field patched with the encoded length.
	// Empty selects the first common field of each class.
	LengthField string
}

// Parse reads schema text and returns a distributed schema.
func Parse(r io.Reader, opts Options) (*Schema, error) {
	s, err := ParseRaw(r)
	if err != nil {
		return nil, err
	}
	if err := Distribute(s, opts); err != nil {
		return nil, err
	}
	return s, nil
}

// ParseString is Parse over a string.
func ParseString(src string, opts Options) (*Schema, error) {
	return Parse(strings.NewReader(src), opts)
}

// ParseRaw reads schema text without distributing common fields. The first
// error aborts the whole parse.
func ParseRaw(r io.Reader) (*Schema, error) {
	s := newSchema()
	var (
		currentFields *[]*Field
		current       string
	)
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !strings.HasPrefix(line, ".") {
			m := reHeader.FindStringSubmatch(line)
			if m == nil {
				return nil, lineError(lineNo, line, "illegal line")
			}
			class, ok := parseClass(m[2])
			if !ok {
				return nil, lineError(lineNo, line, fmt.Sprintf("unknown class %q", m[2]))
			}
			if m[1] == CommonName {
				currentFields = &s.Common[class].Fields
				current = CommonName + "/" + string(class)
				continue
			}
			if _, dup := s.Lookup(m[1], class); dup {
				return nil, lineError(lineNo, line, "duplicate message")
			}
			msg := &Message{
				Name:         m[1],
				Class:        class,
				Discriminant: len(s.Messages),
				Line:         lineNo,
			}
			s.Messages = append(s.Messages, msg)
			currentFields = &msg.Fields
			current = msg.FullName()
			continue
		}

		m := reField.FindStringSubmatch(line)
		if m == nil {
			return nil, lineError(lineNo, line, "illegal line")
		}
		if currentFields == nil {
			return nil, lineError(lineNo, line, "field declared before any message header")
		}
		typ, ok := wiretype.Lookup(m[2])
		if !ok {
			return nil, lineError(lineNo, line, fmt.Sprintf("unknown type %q (known: %s)", m[2], knownTypes()))
		}
		for _, prev := range *currentFields {
			if prev.Name == m[1] {
				return nil, lineError(lineNo, line, fmt.Sprintf("duplicate field %q", m[1]))
			}
		}
		f := &Field{Name: m[1], Type: typ, Line: lineNo}
		if strings.Contains(line, "[") {
			if m[3] == "" {
				return nil, lineError(lineNo, line, "empty guard")
			}
			expr, err := guard.Parse(m[3])
			if err != nil {
				return nil, &Error{Line: lineNo, Text: line, Reason: "bad guard", Err: err}
			}
			f.Guard = expr
			f.GuardSource = m[3]
		}
		*currentFields = append(*currentFields, f)
		log.Trace().Str("message", current).Str("field", f.Name).Str("type", typ.Name).Msg("schema field")
	}
	if err := sc.Err(); err != nil {
		return nil, &Error{Line: lineNo, Reason: "read failed", Err: err}
	}
	log.Debug().Int("messages", len(s.Messages)).Int("lines", lineNo).Msg("schema parsed")
	return s, nil
}

func knownTypes() string {
	all := wiretype.All()
	names := make([]string, len(all))
	for i, t := range all {
		names[i] = t.Name
	}
	return strings.Join(names, ", ")
}

func lineError(line int, text, reason string) error {
	log.Error().Int("line", line).Str("text", text).Msg(reason)
	return &Error{Line: line, Text: text, Reason: reason}
}
