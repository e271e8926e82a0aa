package peg

import (
	"fmt"
	"strings"
)

// Expr is a combinator node of a rule definition.
type Expr interface {
	fmt.Stringer
	match(s *state, pos int) outcome
}

// outcome is the internal form of a match attempt. end is an offset into the
// input; the public Result turns it back into a remaining-token slice.
type outcome struct {
	end   int
	value any
	alt   int
	ok    bool
}

func fail() outcome { return outcome{} }

// Maybe is the raw value of an Optional expression.
type Maybe struct {
	Present bool
	Value   any
}

// Sequence matches every item in order or nothing at all. Its raw value is a
// []any with one entry per item.
type Sequence struct {
	Items []Expr
}

func (e *Sequence) match(s *state, pos int) outcome {
	values := make([]any, 0, len(e.Items))
	cur := pos
	for _, item := range e.Items {
		out := item.match(s, cur)
		if !out.ok {
			return fail()
		}
		values = append(values, out.value)
		cur = out.end
	}
	return outcome{end: cur, value: values, ok: true}
}

func (e *Sequence) String() string { return joinExprs(e.Items, ", ") }

// Choice tries alternatives in order and commits to the first that matches.
type Choice struct {
	Alternatives []Expr
}

func (e *Choice) match(s *state, pos int) outcome {
	for idx, alt := range e.Alternatives {
		out := alt.match(s, pos)
		if out.ok {
			out.alt = idx
			return out
		}
	}
	return fail()
}

func (e *Choice) String() string { return joinExprs(e.Alternatives, " | ") }

// Optional always succeeds.
type Optional struct {
	Expr Expr
}

func (e *Optional) match(s *state, pos int) outcome {
	out := e.Expr.match(s, pos)
	if !out.ok {
		return outcome{end: pos, value: Maybe{}, ok: true}
	}
	return outcome{end: out.end, value: Maybe{Present: true, Value: out.value}, ok: true}
}

func (e *Optional) String() string { return "[ " + e.Expr.String() + " ]" }

// ZeroOrMore repeats greedily and never backtracks into its own repetitions.
type ZeroOrMore struct {
	Expr Expr
}

func (e *ZeroOrMore) match(s *state, pos int) outcome {
	values, end := repeat(s, e.Expr, pos)
	return outcome{end: end, value: values, ok: true}
}

func (e *ZeroOrMore) String() string { return "{ " + e.Expr.String() + " }" }

// OneOrMore is ZeroOrMore that requires a first match.
type OneOrMore struct {
	Expr Expr
}

func (e *OneOrMore) match(s *state, pos int) outcome {
	values, end := repeat(s, e.Expr, pos)
	if len(values) == 0 {
		return fail()
	}
	return outcome{end: end, value: values, ok: true}
}

func (e *OneOrMore) String() string { return wrapComposite(e.Expr) + "+" }

func repeat(s *state, expr Expr, pos int) ([]any, int) {
	values := []any{}
	cur := pos
	for {
		out := expr.match(s, cur)
		// an empty match would repeat forever
		if !out.ok || out.end == cur {
			return values, cur
		}
		values = append(values, out.value)
		cur = out.end
	}
}

// Literal matches an exact run of characters. Its raw value is the text.
type Literal struct {
	Text string

	runes []rune
}

func (e *Literal) match(s *state, pos int) outcome {
	runes := e.runes
	if runes == nil {
		runes = []rune(e.Text)
	}
	if pos+len(runes) > len(s.input) {
		s.miss(pos, e.String())
		return fail()
	}
	for idx, r := range runes {
		if s.input[pos+idx] != r {
			s.miss(pos, e.String())
			return fail()
		}
	}
	return outcome{end: pos + len(runes), value: e.Text, ok: true}
}

func (e *Literal) String() string { return fmt.Sprintf("%q", e.Text) }

// PredicateFunc inspects the remaining input and reports how many runes it
// consumes and the raw value for them.
type PredicateFunc func(rest []rune) (n int, value any, ok bool)

// Predicate is a terminal decided by a function over the token stream.
type Predicate struct {
	Name string
	Fn   PredicateFunc
}

func (e *Predicate) match(s *state, pos int) outcome {
	n, value, ok := e.Fn(s.input[pos:])
	if !ok || n < 0 || pos+n > len(s.input) {
		s.miss(pos, e.Name)
		return fail()
	}
	return outcome{end: pos + n, value: value, ok: true}
}

func (e *Predicate) String() string { return "<" + e.Name + ">" }

// Ref refers to another rule by name. Matching a Ref applies that rule's
// reducer to the raw match.
type Ref struct {
	Name string
}

func (e *Ref) match(s *state, pos int) outcome {
	return s.matchRule(e.Name, pos)
}

func (e *Ref) String() string { return e.Name }

// Constructors.

func Seq(items ...Expr) Expr {
	if len(items) == 1 {
		return items[0]
	}
	return &Sequence{Items: items}
}

func Or(alternatives ...Expr) Expr {
	return &Choice{Alternatives: alternatives}
}

func Opt(expr Expr) Expr { return &Optional{Expr: expr} }

func Many(expr Expr) Expr { return &ZeroOrMore{Expr: expr} }

func Some(expr Expr) Expr { return &OneOrMore{Expr: expr} }

func Lit(text string) Expr { return &Literal{Text: text, runes: []rune(text)} }

func R(name string) Expr { return &Ref{Name: name} }

func Pred(name string, fn PredicateFunc) Expr {
	return &Predicate{Name: name, Fn: fn}
}

// Char is a predicate consuming a single rune accepted by fn. The raw value
// is the rune as a string.
func Char(name string, fn func(rune) bool) Expr {
	return Pred(name, func(rest []rune) (int, any, bool) {
		if len(rest) == 0 || !fn(rest[0]) {
			return 0, nil, false
		}
		return 1, string(rest[0]), true
	})
}

func joinExprs(exprs []Expr, sep string) string {
	parts := make([]string, len(exprs))
	for idx, e := range exprs {
		parts[idx] = wrapComposite(e)
	}
	return strings.Join(parts, sep)
}

func wrapComposite(e Expr) string {
	switch e.(type) {
	case *Sequence, *Choice:
		return "( " + e.String() + " )"
	default:
		return e.String()
	}
}

// walk visits e and every sub-expression.
func walk(e Expr, fn func(Expr)) {
	fn(e)
	switch n := e.(type) {
	case *Sequence:
		for _, item := range n.Items {
			walk(item, fn)
		}
	case *Choice:
		for _, alt := range n.Alternatives {
			walk(alt, fn)
		}
	case *Optional:
		walk(n.Expr, fn)
	case *ZeroOrMore:
		walk(n.Expr, fn)
	case *OneOrMore:
		walk(n.Expr, fn)
	}
}
