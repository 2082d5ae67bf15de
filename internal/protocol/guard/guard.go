// Package guard parses and evaluates the bracketed presence predicates that
// make a schema field optional on the wire.
//
// Every node evaluates to an unsigned 32-bit value; a guard holds when its
// value is non-zero. Comparisons and logical operators yield 0 or 1.
package guard

import (
	"strconv"
)

type Op string

const (
	OpOr     Op = "||"
	OpAnd    Op = "&&"
	OpEq     Op = "=="
	OpNe     Op = "!="
	OpLt     Op = "<"
	OpLe     Op = "<="
	OpGt     Op = ">"
	OpGe     Op = ">="
	OpBitAnd Op = "&"
)

// Ref says what an identifier names once the schema has resolved it.
type Ref int

const (
	RefUnresolved Ref = iota
	// RefField is a fixed field decoded earlier in the same message.
	RefField
	// RefFlag is a caller-supplied context flag.
	RefFlag
)

func (r Ref) String() string {
	switch r {
	case RefField:
		return "field"
	case RefFlag:
		return "flag"
	default:
		return "unresolved"
	}
}

// Expr is a node of a guard expression tree.
type Expr interface {
	String() string
	node()
}

type Binary struct {
	Op   Op
	L, R Expr
}

type Not struct {
	X Expr
}

type Ident struct {
	Name string
	Ref  Ref
}

type Int struct {
	V uint32
}

func (*Binary) node() {}
func (*Not) node()    {}
func (*Ident) node()  {}
func (*Int) node()    {}

func (b *Binary) String() string { return "(" + b.L.String() + " " + string(b.Op) + " " + b.R.String() + ")" }
func (n *Not) String() string    { return "!" + n.X.String() }
func (i *Ident) String() string  { return i.Name }
func (i *Int) String() string    { return strconv.FormatUint(uint64(i.V), 10) }

// Env resolves identifier values during evaluation.
type Env interface {
	Lookup(id *Ident) uint32
}

// Holds reports whether e is true in env.
func Holds(e Expr, env Env) bool {
	return Value(e, env) != 0
}

// Value evaluates e in env.
func Value(e Expr, env Env) uint32 {
	switch n := e.(type) {
	case *Int:
		return n.V
	case *Ident:
		return env.Lookup(n)
	case *Not:
		return b2u(Value(n.X, env) == 0)
	case *Binary:
		switch n.Op {
		case OpOr:
			return b2u(Holds(n.L, env) || Holds(n.R, env))
		case OpAnd:
			return b2u(Holds(n.L, env) && Holds(n.R, env))
		}
		l, r := Value(n.L, env), Value(n.R, env)
		switch n.Op {
		case OpEq:
			return b2u(l == r)
		case OpNe:
			return b2u(l != r)
		case OpLt:
			return b2u(l < r)
		case OpLe:
			return b2u(l <= r)
		case OpGt:
			return b2u(l > r)
		case OpGe:
			return b2u(l >= r)
		case OpBitAnd:
			return l & r
		}
	}
	return 0
}

// Idents returns every identifier in e in source order.
func Idents(e Expr) []*Ident {
	var out []*Ident
	var walk func(Expr)
	walk = func(e Expr) {
		switch n := e.(type) {
		case *Ident:
			out = append(out, n)
		case *Not:
			walk(n.X)
		case *Binary:
			walk(n.L)
			walk(n.R)
		}
	}
	walk(e)
	return out
}

// IsLogical reports whether e always evaluates to 0 or 1.
func IsLogical(e Expr) bool {
	switch n := e.(type) {
	case *Not:
		return true
	case *Binary:
		return n.Op != OpBitAnd
	}
	return false
}

func b2u(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// Clone returns a deep copy of e so identifiers can be resolved per message.
func Clone(e Expr) Expr {
	switch n := e.(type) {
	case *Int:
		c := *n
		return &c
	case *Ident:
		c := *n
		return &c
	case *Not:
		return &Not{X: Clone(n.X)}
	case *Binary:
		return &Binary{Op: n.Op, L: Clone(n.L), R: Clone(n.R)}
	}
	return nil
}
