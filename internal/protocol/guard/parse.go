package guard

import (
	"fmt"
	"strconv"
	"strings"
)

// SyntaxError reports a malformed guard expression.
type SyntaxError struct {
	Expr   string
	Offset int
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("guard: %s at offset %d in %q", e.Reason, e.Offset, e.Expr)
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokInt
	tokOp
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

var operators = []string{"||", "&&", "==", "!=", "<=", ">=", "<", ">", "!", "&", "(", ")"}

func lex(src string) ([]token, error) {
	var toks []token
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case isIdentStart(c):
			j := i + 1
			for j < len(src) && isIdentPart(src[j]) {
				j++
			}
			toks = append(toks, token{kind: tokIdent, text: src[i:j], pos: i})
			i = j
		case c >= '0' && c <= '9':
			j := i + 1
			for j < len(src) && isIdentPart(src[j]) {
				j++
			}
			toks = append(toks, token{kind: tokInt, text: src[i:j], pos: i})
			i = j
		default:
			op := ""
			for _, candidate := range operators {
				if strings.HasPrefix(src[i:], candidate) {
					op = candidate
					break
				}
			}
			if op == "" {
				return nil, &SyntaxError{Expr: src, Offset: i, Reason: fmt.Sprintf("unexpected character %q", c)}
			}
			toks = append(toks, token{kind: tokOp, text: op, pos: i})
			i += len(op)
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(src)})
	return toks, nil
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

type parser struct {
	src  string
	toks []token
	pos  int
}

// Parse builds an expression tree from src. Identifiers come back unresolved.
func Parse(src string) (Expr, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{src: src, toks: toks}
	if p.peek().kind == tokEOF {
		return nil, p.fail("empty expression")
	}
	e, err := p.or()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, p.fail(fmt.Sprintf("unexpected %q", t.text))
	}
	return e, nil
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) accept(ops ...string) (string, bool) {
	t := p.peek()
	if t.kind != tokOp {
		return "", false
	}
	for _, op := range ops {
		if t.text == op {
			p.pos++
			return op, true
		}
	}
	return "", false
}

func (p *parser) fail(reason string) error {
	return &SyntaxError{Expr: p.src, Offset: p.peek().pos, Reason: reason}
}

func (p *parser) or() (Expr, error) {
	l, err := p.and()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.accept(string(OpOr)); !ok {
			return l, nil
		}
		r, err := p.and()
		if err != nil {
			return nil, err
		}
		l = &Binary{Op: OpOr, L: l, R: r}
	}
}

func (p *parser) and() (Expr, error) {
	l, err := p.cmp()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.accept(string(OpAnd)); !ok {
			return l, nil
		}
		r, err := p.cmp()
		if err != nil {
			return nil, err
		}
		l = &Binary{Op: OpAnd, L: l, R: r}
	}
}

func (p *parser) cmp() (Expr, error) {
	l, err := p.bits()
	if err != nil {
		return nil, err
	}
	op, ok := p.accept("==", "!=", "<=", ">=", "<", ">")
	if !ok {
		return l, nil
	}
	r, err := p.bits()
	if err != nil {
		return nil, err
	}
	return &Binary{Op: Op(op), L: l, R: r}, nil
}

func (p *parser) bits() (Expr, error) {
	l, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.accept(string(OpBitAnd)); !ok {
			return l, nil
		}
		r, err := p.unary()
		if err != nil {
			return nil, err
		}
		l = &Binary{Op: OpBitAnd, L: l, R: r}
	}
}

func (p *parser) unary() (Expr, error) {
	if _, ok := p.accept("!"); ok {
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &Not{X: x}, nil
	}
	return p.primary()
}

func (p *parser) primary() (Expr, error) {
	t := p.peek()
	switch t.kind {
	case tokIdent:
		p.next()
		return &Ident{Name: t.text}, nil
	case tokInt:
		p.next()
		v, err := parseInt(t.text)
		if err != nil {
			return nil, &SyntaxError{Expr: p.src, Offset: t.pos, Reason: fmt.Sprintf("bad integer %q", t.text)}
		}
		return &Int{V: uint32(v)}, nil
	case tokOp:
		if t.text == "(" {
			p.next()
			e, err := p.or()
			if err != nil {
				return nil, err
			}
			if _, ok := p.accept(")"); !ok {
				return nil, p.fail("missing )")
			}
			return e, nil
		}
		return nil, p.fail(fmt.Sprintf("unexpected %q", t.text))
	default:
		return nil, p.fail("unexpected end of expression")
	}
}

// parseInt accepts decimal without leading zeros or 0x hex.
func parseInt(text string) (uint64, error) {
	if hex, ok := strings.CutPrefix(text, "0x"); ok {
		if hex == "" || strings.Trim(hex, "0123456789abcdefABCDEF") != "" {
			return 0, strconv.ErrSyntax
		}
		return strconv.ParseUint(hex, 16, 32)
	}
	if strings.Trim(text, "0123456789") != "" || (len(text) > 1 && text[0] == '0') {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseUint(text, 10, 32)
}
