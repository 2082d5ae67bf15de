package emit

import (
	"fmt"
	"strconv"

	"github.com/danmuck/msgc/internal/protocol/guard"
)

// Go operator precedence, used to decide where parentheses are needed.
const (
	precOr      = 1
	precAnd     = 2
	precCmp     = 3
	precBitAnd  = 5
	precPrimary = 6
)

func opPrec(op guard.Op) int {
	switch op {
	case guard.OpOr:
		return precOr
	case guard.OpAnd:
		return precAnd
	case guard.OpBitAnd:
		return precBitAnd
	}
	return precCmp
}

// guardCond renders a resolved guard as a Go boolean expression. Fields read
// from the message struct m, flags from the caller's Flags map.
func guardCond(e guard.Expr, field func(name string) string) (string, error) {
	return guardOperand(e, true, 0, field)
}

// guardExpr renders e and reports whether the result is a Go bool and the
// precedence of its outermost operator.
func guardExpr(e guard.Expr, field func(name string) string) (string, bool, int, error) {
	switch n := e.(type) {
	case *guard.Int:
		return strconv.FormatUint(uint64(n.V), 10), false, precPrimary, nil
	case *guard.Ident:
		switch n.Ref {
		case guard.RefField:
			return fmt.Sprintf("uint32(m.%s)", field(n.Name)), false, precPrimary, nil
		case guard.RefFlag:
			return fmt.Sprintf("flags[%q]", n.Name), true, precPrimary, nil
		}
		return "", false, 0, fmt.Errorf("emit: guard identifier %q is unresolved", n.Name)
	case *guard.Not:
		x, err := guardOperand(n.X, true, precPrimary, field)
		if err != nil {
			return "", false, 0, err
		}
		return "!" + x, guard.IsLogical(n), precPrimary, nil
	case *guard.Binary:
		prec := opPrec(n.Op)
		logical := prec <= precAnd
		l, err := guardOperand(n.L, logical, prec, field)
		if err != nil {
			return "", false, 0, err
		}
		r, err := guardOperand(n.R, logical, prec, field)
		if err != nil {
			return "", false, 0, err
		}
		return l + " " + string(n.Op) + " " + r, guard.IsLogical(n), prec, nil
	}
	return "", false, 0, fmt.Errorf("emit: unknown guard node %T", e)
}

// guardOperand renders e coerced to bool or uint32, parenthesized when it
// binds looser than its parent operator.
func guardOperand(e guard.Expr, wantBool bool, parent int, field func(name string) string) (string, error) {
	code, isBool, prec, err := guardExpr(e, field)
	if err != nil {
		return "", err
	}
	switch {
	case wantBool && !isBool:
		if prec < precBitAnd {
			code = "(" + code + ")"
		}
		code, prec = code+" != 0", precCmp
	case !wantBool && isBool:
		code, prec = "wire.Bool("+code+")", precPrimary
	}
	if prec < parent || (prec == parent && prec == precCmp) {
		code = "(" + code + ")"
	}
	return code, nil
}
