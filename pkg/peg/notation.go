package peg

import (
	"fmt"
	"unicode"
)

// ParseExpr compiles the declarative rule notation:
//
//	a, b      sequence
//	a | b     ordered choice (binds loosest)
//	[ a ]     optional
//	{ a }     zero or more
//	a+        one or more
//	( a )     grouping
//	'x' "x"   literal text
//	name      reference to another rule
func ParseExpr(definition string) (Expr, error) {
	n := &notation{src: []rune(definition)}
	expr, err := n.choice()
	if err != nil {
		return nil, err
	}
	n.skipSpace()
	if n.pos < len(n.src) {
		return nil, n.errorf("unexpected %q", string(n.src[n.pos]))
	}
	return expr, nil
}

type notation struct {
	src []rune
	pos int
}

func (n *notation) errorf(format string, args ...any) error {
	return fmt.Errorf("notation offset %d: %s", n.pos, fmt.Sprintf(format, args...))
}

func (n *notation) skipSpace() {
	for n.pos < len(n.src) && unicode.IsSpace(n.src[n.pos]) {
		n.pos++
	}
}

func (n *notation) peek() (rune, bool) {
	n.skipSpace()
	if n.pos >= len(n.src) {
		return 0, false
	}
	return n.src[n.pos], true
}

func (n *notation) accept(r rune) bool {
	if next, ok := n.peek(); ok && next == r {
		n.pos++
		return true
	}
	return false
}

func (n *notation) choice() (Expr, error) {
	first, err := n.sequence()
	if err != nil {
		return nil, err
	}
	alternatives := []Expr{first}
	for n.accept('|') {
		next, err := n.sequence()
		if err != nil {
			return nil, err
		}
		alternatives = append(alternatives, next)
	}
	if len(alternatives) == 1 {
		return first, nil
	}
	return Or(alternatives...), nil
}

func (n *notation) sequence() (Expr, error) {
	first, err := n.postfix()
	if err != nil {
		return nil, err
	}
	items := []Expr{first}
	for n.accept(',') {
		next, err := n.postfix()
		if err != nil {
			return nil, err
		}
		items = append(items, next)
	}
	return Seq(items...), nil
}

func (n *notation) postfix() (Expr, error) {
	expr, err := n.primary()
	if err != nil {
		return nil, err
	}
	for n.accept('+') {
		expr = Some(expr)
	}
	return expr, nil
}

func (n *notation) primary() (Expr, error) {
	r, ok := n.peek()
	if !ok {
		return nil, n.errorf("unexpected end of definition")
	}
	switch {
	case r == '[':
		return n.enclosed('[', ']', Opt)
	case r == '{':
		return n.enclosed('{', '}', Many)
	case r == '(':
		return n.enclosed('(', ')', func(e Expr) Expr { return e })
	case r == '\'' || r == '"':
		return n.literal(r)
	case isNameRune(r):
		start := n.pos
		for n.pos < len(n.src) && isNameRune(n.src[n.pos]) {
			n.pos++
		}
		return R(string(n.src[start:n.pos])), nil
	default:
		return nil, n.errorf("unexpected %q", string(r))
	}
}

func (n *notation) enclosed(open, close rune, wrap func(Expr) Expr) (Expr, error) {
	n.accept(open)
	inner, err := n.choice()
	if err != nil {
		return nil, err
	}
	if !n.accept(close) {
		return nil, n.errorf("expected %q", string(close))
	}
	return wrap(inner), nil
}

func (n *notation) literal(quote rune) (Expr, error) {
	n.pos++
	start := n.pos
	for n.pos < len(n.src) && n.src[n.pos] != quote {
		n.pos++
	}
	if n.pos >= len(n.src) {
		return nil, n.errorf("unterminated literal")
	}
	text := string(n.src[start:n.pos])
	n.pos++
	if text == "" {
		return nil, n.errorf("empty literal")
	}
	return Lit(text), nil
}

func isNameRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
