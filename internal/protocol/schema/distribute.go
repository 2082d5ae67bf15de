package schema

import (
	"fmt"

	"github.com/danmuck/msgc/internal/protocol/guard"
	"github.com/rs/zerolog/log"
)

// Distribute prepends each class's common fields, in declared order, to every
// concrete message of that class, then lays out fixed and variable fields,
// resolves guard references and selects the length header. It runs once.
func Distribute(s *Schema, opts Options) error {
	if s.distributed {
		return ErrAlreadyDistributed
	}
	for _, class := range Classes {
		if err := checkLengthField(s.Common[class], opts.LengthField); err != nil {
			return err
		}
	}
	for _, msg := range s.Messages {
		common := s.Common[msg.Class].Fields
		fields := make([]*Field, 0, len(common)+len(msg.Fields))
		for _, f := range common {
			fields = append(fields, f.clone())
		}
		for _, own := range msg.Fields {
			for _, f := range common {
				if f.Name == own.Name {
					return &Error{
						Line:   own.Line,
						Reason: fmt.Sprintf("field %q of %s shadows a common %s field", own.Name, msg.FullName(), msg.Class),
					}
				}
			}
		}
		msg.Fields = append(fields, msg.Fields...)
		msg.layout()
		msg.Length = lengthField(msg, len(common), opts.LengthField)
		if err := resolveGuards(msg); err != nil {
			return err
		}
		log.Debug().
			Str("message", msg.FullName()).
			Int("discriminant", msg.Discriminant).
			Int("fixed_size", msg.FixedSize).
			Int("fields", len(msg.Fields)).
			Msg("message laid out")
	}
	s.distributed = true
	return nil
}

func checkLengthField(set *CommonFieldSet, name string) error {
	if len(set.Fields) == 0 {
		return nil
	}
	f := set.Fields[0]
	if name != "" {
		f = nil
		for _, candidate := range set.Fields {
			if candidate.Name == name {
				f = candidate
				break
			}
		}
		if f == nil {
			return &Error{Reason: fmt.Sprintf("length field %q is not a common %s field", name, set.Class)}
		}
	}
	if f.Type.IsVariable() || f.Guarded() {
		return &Error{
			Line:   f.Line,
			Reason: fmt.Sprintf("length field %q of class %s must be fixed-size and unguarded", f.Name, set.Class),
		}
	}
	return nil
}

func lengthField(msg *Message, commonCount int, name string) *Field {
	if commonCount == 0 {
		return nil
	}
	if name == "" {
		return msg.Fields[0]
	}
	f, _ := msg.Field(name)
	return f
}

// resolveGuards binds every guard identifier to either a fixed field decoded
// before the guarded field or a context flag. The length header is only known
// once encoding finishes, so guards cannot read it.
func resolveGuards(msg *Message) error {
	decodedBefore := func(target *Field) map[string]bool {
		seen := make(map[string]bool)
		for _, f := range msg.FixedFields {
			if f == target {
				return seen
			}
			seen[f.Name] = true
		}
		return seen
	}
	for _, f := range msg.Fields {
		if f.Guard == nil {
			continue
		}
		before := decodedBefore(f)
		for _, id := range guard.Idents(f.Guard) {
			ref, ok := msg.Field(id.Name)
			switch {
			case !ok:
				id.Ref = guard.RefFlag
			case ref == msg.Length:
				return &Error{
					Line:   f.Line,
					Reason: fmt.Sprintf("guard of %s.%s references the length header %q", msg.FullName(), f.Name, id.Name),
				}
			case before[id.Name]:
				id.Ref = guard.RefField
			case ref.Type.IsVariable():
				return &Error{
					Line:   f.Line,
					Reason: fmt.Sprintf("guard of %s.%s references variable-length field %q", msg.FullName(), f.Name, id.Name),
				}
			default:
				return &Error{
					Line:   f.Line,
					Reason: fmt.Sprintf("guard of %s.%s references %q before it is decoded", msg.FullName(), f.Name, id.Name),
				}
			}
		}
	}
	return nil
}
