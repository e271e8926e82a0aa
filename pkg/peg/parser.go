package peg

import "sort"

type compiledRule struct {
	expr      Expr
	transform Transform
}

// Parser matches token streams against a compiled grammar. It holds no
// per-parse state and may be shared.
type Parser struct {
	rules   map[string]compiledRule
	ruleIDs map[string]int
	memoize bool
}

// ParserOption configures a Parser at compile time.
type ParserOption func(*Parser)

// NoMemo disables packrat memoisation of rule matches.
func NoMemo() ParserOption {
	return func(p *Parser) { p.memoize = false }
}

// Result is a successful match: the structured value, the tokens left over
// and the ordinal of the top-level alternative that matched.
type Result struct {
	Rest  []rune
	Value any
	Alt   int
}

// Match applies rule to the front of tokens. It does not require the whole
// stream to be consumed.
func (p *Parser) Match(rule string, tokens []rune) (Result, bool) {
	s := p.newState(tokens)
	out := s.matchRule(rule, 0)
	if !out.ok {
		return Result{}, false
	}
	return Result{Rest: tokens[out.end:], Value: out.value, Alt: out.alt}, true
}

// Parse matches goal against the whole of input and returns its structured
// value. Input the goal cannot consume yields a *SyntaxError.
func (p *Parser) Parse(goal string, input string) (any, error) {
	return p.ParseRunes(goal, []rune(input))
}

// ParseRunes is Parse over a pre-split token stream.
func (p *Parser) ParseRunes(goal string, tokens []rune) (any, error) {
	s := p.newState(tokens)
	out := s.matchRule(goal, 0)
	if out.ok && out.end == len(tokens) {
		return out.value, nil
	}
	consumed := 0
	if out.ok {
		consumed = out.end
	}
	line, column := Locate(tokens, consumed)
	return nil, &SyntaxError{
		Offset:   consumed,
		Line:     line,
		Column:   column,
		Farthest: s.farthest,
		Expected: s.expectedList(),
	}
}

type memoKey struct {
	rule int
	pos  int
}

type state struct {
	parser *Parser
	input  []rune
	memo   map[memoKey]outcome

	farthest int
	expected map[string]struct{}
}

func (p *Parser) newState(tokens []rune) *state {
	s := &state{parser: p, input: tokens, expected: make(map[string]struct{})}
	if p.memoize {
		s.memo = make(map[memoKey]outcome)
	}
	return s
}

func (s *state) matchRule(name string, pos int) outcome {
	rule, ok := s.parser.rules[name]
	if !ok {
		return fail()
	}
	var key memoKey
	if s.memo != nil {
		key = memoKey{rule: s.parser.ruleIDs[name], pos: pos}
		if cached, hit := s.memo[key]; hit {
			return cached
		}
	}
	out := rule.expr.match(s, pos)
	if out.ok {
		out.value = rule.transform.apply(out.value, out.alt)
	}
	if s.memo != nil {
		s.memo[key] = out
	}
	return out
}

// miss records a terminal failure for diagnostics.
func (s *state) miss(pos int, what string) {
	switch {
	case pos > s.farthest:
		s.farthest = pos
		s.expected = map[string]struct{}{what: {}}
	case pos == s.farthest:
		s.expected[what] = struct{}{}
	}
}

func (s *state) expectedList() []string {
	out := make([]string, 0, len(s.expected))
	for what := range s.expected {
		out = append(out, what)
	}
	sort.Strings(out)
	return out
}
