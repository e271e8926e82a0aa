package language

import (
	"fmt"
	"strings"

	"github.com/turbomaze/raptor-lang/pkg/ast"
	"github.com/turbomaze/raptor-lang/pkg/peg"
)

// Parser turns raptor source into an ast.Program.
type Parser struct {
	grammar  *peg.Grammar
	peg      *peg.Parser
	keywords map[string]struct{}
}

// NewParser compiles the grammar with builtins reserved as capability
// names.
func NewParser(builtins ...string) (*Parser, error) {
	g, err := NewGrammar(builtins...)
	if err != nil {
		return nil, err
	}
	compiled, err := g.Compile(Structure())
	if err != nil {
		return nil, err
	}
	return &Parser{grammar: g, peg: compiled, keywords: keywordSet(builtins)}, nil
}

// Parse parses a whole program. Failures are *peg.SyntaxError.
func (p *Parser) Parse(source string) (*ast.Program, error) {
	value, err := p.peg.Parse("program", normalizeSource(source))
	if err != nil {
		return nil, err
	}
	program, ok := value.(*ast.Program)
	if !ok {
		return nil, fmt.Errorf("language: program reduced to %T", value)
	}
	return program, nil
}

// ParseRule parses source as a single rule of the grammar, for example
// "expression", and returns its reduced value.
func (p *Parser) ParseRule(rule, source string) (any, error) {
	return p.peg.Parse(rule, normalizeSource(source))
}

// IsKeyword reports whether name is reserved.
func (p *Parser) IsKeyword(name string) bool {
	_, ok := p.keywords[name]
	return ok
}

// Rules renders the grammar one rule per line, in definition order.
func (p *Parser) Rules() string {
	var b strings.Builder
	for _, name := range p.grammar.Names() {
		expr, _ := p.grammar.Rule(name)
		fmt.Fprintf(&b, "%s = %s\n", name, expr)
	}
	return b.String()
}
