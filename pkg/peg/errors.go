package peg

import (
	"fmt"
	"strings"
)

// SyntaxError reports input the goal rule could not consume entirely.
type SyntaxError struct {
	// Offset is the number of runes the goal rule consumed before stopping.
	Offset int
	Line   int
	Column int

	// Farthest is the furthest offset at which any terminal was tried and
	// failed; Expected names those terminals.
	Farthest int
	Expected []string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error on line %d column %d", e.Line, e.Column)
}

// Detail describes what the parser was looking for at the farthest failure.
func (e *SyntaxError) Detail() string {
	if len(e.Expected) == 0 {
		return ""
	}
	return fmt.Sprintf("at offset %d expected one of: %s", e.Farthest, strings.Join(e.Expected, ", "))
}

// Locate converts a rune offset into a 1-based line and the number of runes
// since the last newline (the offset itself on the first line).
func Locate(tokens []rune, offset int) (line, column int) {
	if offset > len(tokens) {
		offset = len(tokens)
	}
	line = 1
	column = offset
	for idx := 0; idx < offset; idx++ {
		if tokens[idx] == '\n' {
			line++
			column = offset - idx - 1
		}
	}
	return line, column
}

// GrammarError aggregates problems found while compiling a grammar.
type GrammarError struct {
	Issues []string
}

func (e *GrammarError) Error() string {
	if len(e.Issues) == 0 {
		return "grammar: invalid definition"
	}
	var b strings.Builder
	b.WriteString("grammar validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}
