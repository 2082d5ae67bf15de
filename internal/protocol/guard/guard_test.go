package guard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapEnv map[string]uint32

func (m mapEnv) Lookup(id *Ident) uint32 { return m[id.Name] }

func TestParsePrecedence(t *testing.T) {
	cases := map[string]string{
		"has_extra":                  "has_extra",
		"a || b && c":                "(a || (b && c))",
		"flags & 0x2 == 2":           "((flags & 2) == 2)",
		"!verbose":                   "!verbose",
		"!(a || b)":                  "!(a || b)",
		"type == 1 && size >= 16":    "((type == 1) && (size >= 16))",
		"(a)":                        "a",
		"  kind  !=  3  ":            "(kind != 3)",
		"a & b & c":                  "((a & b) & c)",
		"x == 0":                     "(x == 0)",
		"x == 0x1F":                  "(x == 31)",
		"x == 10":                    "(x == 10)",
		"x < 1 || y > 2 || z <= 3":   "(((x < 1) || (y > 2)) || (z <= 3))",
	}
	for src, want := range cases {
		e, err := Parse(src)
		require.NoError(t, err, src)
		assert.Equal(t, want, e.String(), src)
	}
}

func TestParseErrors(t *testing.T) {
	bad := []string{"", "a ==", "(a", "a b", "a $ b", "0xZZ", "0x", "017", "0b11", "1_0", "0o7", "0X1F", "4294967296", "== 1", "a == b == c"}
	for _, src := range bad {
		_, err := Parse(src)
		require.Error(t, err, src)
		var se *SyntaxError
		assert.True(t, errors.As(err, &se), src)
	}
}

func TestEval(t *testing.T) {
	env := mapEnv{"type": 1, "flags": 6, "has_extra": 0}
	cases := map[string]bool{
		"type == 1":              true,
		"type != 1":              false,
		"flags & 2":              true,
		"flags & 1":              false,
		"has_extra":              false,
		"!has_extra":             true,
		"has_extra || type":      true,
		"has_extra && type":      false,
		"unknown_flag":           false,
		"(flags & 4) == 4":       true,
		"type < 2 && flags >= 6": true,
	}
	for src, want := range cases {
		e, err := Parse(src)
		require.NoError(t, err, src)
		assert.Equal(t, want, Holds(e, env), src)
	}
}

func TestIdentsInSourceOrder(t *testing.T) {
	e, err := Parse("a && (b || !c) && 3 == d")
	require.NoError(t, err)
	var names []string
	for _, id := range Idents(e) {
		names = append(names, id.Name)
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, names)
}

func TestIsLogical(t *testing.T) {
	for src, want := range map[string]bool{"a": false, "a & 1": false, "a == 1": true, "!a": true, "a || b": true, "7": false} {
		e, err := Parse(src)
		require.NoError(t, err)
		assert.Equal(t, want, IsLogical(e), src)
	}
}

func TestCloneIsDeep(t *testing.T) {
	e, err := Parse("a && b == 2")
	require.NoError(t, err)
	c := Clone(e)
	assert.Equal(t, e.String(), c.String())
	Idents(c)[0].Ref = RefFlag
	assert.Equal(t, RefUnresolved, Idents(e)[0].Ref)
}
