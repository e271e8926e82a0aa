package peg

import (
	"fmt"
	"sort"
)

// Grammar is a set of named rules.
type Grammar struct {
	rules map[string]Expr
	order []string
}

func NewGrammar() *Grammar {
	return &Grammar{rules: make(map[string]Expr)}
}

// Define adds a rule. Names must be unique.
func (g *Grammar) Define(name string, expr Expr) error {
	if name == "" {
		return fmt.Errorf("grammar: rule name must not be empty")
	}
	if expr == nil {
		return fmt.Errorf("grammar: rule %q has no definition", name)
	}
	if _, exists := g.rules[name]; exists {
		return fmt.Errorf("grammar: rule %q defined twice", name)
	}
	g.rules[name] = expr
	g.order = append(g.order, name)
	return nil
}

// DefineString adds a rule written in the declarative notation accepted by
// ParseExpr.
func (g *Grammar) DefineString(name, definition string) error {
	expr, err := ParseExpr(definition)
	if err != nil {
		return fmt.Errorf("grammar: rule %q: %w", name, err)
	}
	return g.Define(name, expr)
}

// Rule returns the definition of name.
func (g *Grammar) Rule(name string) (Expr, bool) {
	expr, ok := g.rules[name]
	return expr, ok
}

// Names lists rules in definition order.
func (g *Grammar) Names() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Compile checks that every reference resolves and that structure only
// names defined rules, then returns a parser for the grammar.
func (g *Grammar) Compile(structure Structure, opts ...ParserOption) (*Parser, error) {
	var errs GrammarError
	for _, name := range g.order {
		walk(g.rules[name], func(e Expr) {
			if ref, ok := e.(*Ref); ok {
				if _, defined := g.rules[ref.Name]; !defined {
					errs.Issues = append(errs.Issues, fmt.Sprintf("rule %q references undefined rule %q", name, ref.Name))
				}
			}
		})
	}

	names := make([]string, 0, len(structure))
	for name := range structure {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		expr, defined := g.rules[name]
		if !defined {
			errs.Issues = append(errs.Issues, fmt.Sprintf("structure names undefined rule %q", name))
			continue
		}
		t := structure[name]
		if t.alternatives == nil {
			continue
		}
		count := 1
		if choice, ok := expr.(*Choice); ok {
			count = len(choice.Alternatives)
		}
		if len(t.alternatives) > count {
			errs.Issues = append(errs.Issues, fmt.Sprintf("structure for %q has %d reducers but the rule has %d alternatives", name, len(t.alternatives), count))
		}
	}
	if len(errs.Issues) > 0 {
		return nil, &errs
	}

	p := &Parser{
		rules:   make(map[string]compiledRule, len(g.rules)),
		ruleIDs: make(map[string]int, len(g.rules)),
		memoize: true,
	}
	for idx, name := range g.order {
		p.rules[name] = compiledRule{expr: g.rules[name], transform: structure[name]}
		p.ruleIDs[name] = idx
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}
