package language

import (
	"sort"
	"strings"

	"github.com/turbomaze/raptor-lang/pkg/peg"
)

// Reserved words that can never be identifiers. Built-in capability names
// are added per grammar.
var baseKeywords = []string{"return", ":", "and", "or", "not", "true", "false"}

// rules lists the grammar in the declarative notation, in the order the
// statements and expressions are tried.
var rules = []struct {
	name       string
	definition string
}{
	{"program", "[ extendedSpace ], statements, [ extendedSpace ]"},
	{"statements", "statement, { newlineStatement }"},
	{"newlineStatement", "spaceNewlineSpace, [ extendedSpace ], statement"},
	{"statement", "assignment | return | function | ifElse | if | call | chainCall"},

	{"function", "identifier, [ space ], parameterList, [ extendedSpace ], block"},
	{"call", "labeledValue, argumentList | builtInFunction, argumentList"},
	{"chainCall", "parenthesized, arrowExpression+"},
	{"parameterList", "{ fatArrowIdentifier }"},
	{"argumentList", "{ arrowExpression }"},
	{"fatArrowIdentifier", "fatArrow, [ space ], identifier, [ space ]"},
	{"arrowExpression", "[ space ], arrow, [ space ], expression"},
	{"ifElse", "expression, [ space ], block, [ extendedSpace ], elseWord, [ extendedSpace ], block"},
	{"if", "expression, [ space ], block"},
	{"block", "leftBrace, [ extendedSpace ], statements, [ extendedSpace ], rightBrace"},
	{"return", "returnWord, [ space ], topExpression"},
	{"assignment", "labeledValue, [ space ], eq, [ space ], topExpression"},
	{"topExpression", "chainCall | expression"},

	{"expression", "boolTerm, { orBoolTerm } | list"},
	{"orBoolTerm", "space, or, space, boolTerm"},
	{"boolTerm", "notBoolGroup, { andNotBoolGroup }"},
	{"andNotBoolGroup", "space, and, space, notBoolGroup"},
	{"notBoolGroup", "[ not ], boolGroup"},
	{"boolGroup", "boolRelation | call | labeledValue | true | false"},
	{"boolRelation", "numExpression, [ boolOpNumExpression ]"},
	{"boolOpNumExpression", "[ space ], binBoolOp, [ space ], numExpression"},
	{"binBoolOp", "lteq | gteq | lt | gt | eqeq | notEq"},
	{"numExpression", "term, { weakNumOpTerm }"},
	{"weakNumOpTerm", "[ space ], weakNumOp, [ space ], term"},
	{"weakNumOp", "plus | minus"},
	{"term", "group, { strongNumOpGroup }"},
	{"strongNumOpGroup", "[ space ], strongNumOp, [ space ], group"},
	{"strongNumOp", "mod | times | divide"},
	{"group", "number | boolean | call | labeledValue | parenthesized"},
	{"parenthesized", "left, [ space ], expression, [ space ], right"},

	{"labeledValue", "listAccess | identifier"},
	{"list", "leftBracket, [ extendedSpace ], [ values ], [ extendedSpace ], rightBracket"},
	{"values", "value, { commaValue }"},
	{"commaValue", "[ space ], comma, [ extendedSpace ], value"},
	{"value", "expression"},
	{"listAccess", "identifier, underscore, indexList"},
	{"indexList", "numExpression, { commaIndex }"},
	{"commaIndex", "comma, numExpression"},

	{"number", "decimal | integer"},
	{"decimal", "[ negative ], wholeNumber, dot, fractionalPart"},
	{"fractionalPart", "{ zero }, wholeNumber | zero+"},
	{"integer", "[ negative ], wholeNumber"},
	{"wholeNumber", "nonzeroDigit, { digit } | zero"},
	{"boolean", "true | false"},

	{"extendedSpace", "spaceNewlineSpace+ | space"},
	{"spaceNewlineSpace", "[ space ], newline, [ space ]"},
	{"not", "'!', [ space ] | 'not', space"},
}

// words are keyword terminals. They match whole words only, so `truest` or
// `returnx` stay identifiers.
var words = map[string]string{
	"returnWord": "return",
	"and":        "and",
	"or":         "or",
	"true":       "true",
	"false":      "false",
}

// terminals maps single lexemes to their rule names.
var terminals = map[string]string{
	"elseWord":     ":",
	"fatArrow":     "=>",
	"arrow":        "->",
	"eq":           "=",
	"lteq":         "<=",
	"gteq":         ">=",
	"lt":           "<",
	"gt":           ">",
	"eqeq":         "==",
	"notEq":        "!=",
	"plus":         "+",
	"minus":        "-",
	"mod":          "%",
	"times":        "*",
	"divide":       "/",
	"left":         "(",
	"right":        ")",
	"leftBrace":    "{",
	"rightBrace":   "}",
	"leftBracket":  "[",
	"rightBracket": "]",
	"comma":        ",",
	"underscore":   "_",
	"dot":          ".",
	"negative":     "-",
	"zero":         "0",
	"newline":      "\n",
}

// NewGrammar builds the rule set. builtins are reserved as keywords and
// recognised by the builtInFunction rule.
func NewGrammar(builtins ...string) (*peg.Grammar, error) {
	keywords := keywordSet(builtins)
	g := peg.NewGrammar()
	for _, rule := range rules {
		if err := g.DefineString(rule.name, rule.definition); err != nil {
			return nil, err
		}
	}

	names := make([]string, 0, len(terminals))
	for name := range terminals {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := g.Define(name, peg.Lit(terminals[name])); err != nil {
			return nil, err
		}
	}

	names = names[:0]
	for name := range words {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := g.Define(name, peg.Pred(name, wordMatcher(words[name]))); err != nil {
			return nil, err
		}
	}

	others := []struct {
		name string
		expr peg.Expr
	}{
		{"space", peg.Pred("space", matchSpace)},
		{"nonzeroDigit", peg.Char("nonzeroDigit", func(r rune) bool { return r >= '1' && r <= '9' })},
		{"digit", peg.Char("digit", isDigit)},
		{"identifier", peg.Pred("identifier", identifierMatcher(keywords))},
		{"builtInFunction", peg.Pred("builtInFunction", builtInMatcher(builtins))},
	}
	for _, other := range others {
		if err := g.Define(other.name, other.expr); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func keywordSet(builtins []string) map[string]struct{} {
	set := make(map[string]struct{}, len(baseKeywords)+len(builtins))
	for _, kw := range baseKeywords {
		set[kw] = struct{}{}
	}
	for _, name := range builtins {
		set[name] = struct{}{}
	}
	return set
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isBlank(r rune) bool {
	return r == ' ' || r == '\t'
}

func matchSpace(rest []rune) (int, any, bool) {
	n := 0
	for n < len(rest) && isBlank(rest[n]) {
		n++
	}
	if n == 0 {
		return 0, nil, false
	}
	return n, string(rest[:n]), true
}

func wordLength(rest []rune) int {
	if len(rest) == 0 || !isLetter(rest[0]) {
		return 0
	}
	n := 1
	for n < len(rest) && (isLetter(rest[n]) || isDigit(rest[n])) {
		n++
	}
	return n
}

func identifierMatcher(keywords map[string]struct{}) peg.PredicateFunc {
	return func(rest []rune) (int, any, bool) {
		n := wordLength(rest)
		if n == 0 {
			return 0, nil, false
		}
		word := string(rest[:n])
		if _, reserved := keywords[word]; reserved {
			return 0, nil, false
		}
		return n, word, true
	}
}

func wordMatcher(word string) peg.PredicateFunc {
	return func(rest []rune) (int, any, bool) {
		n := wordLength(rest)
		if n == 0 || string(rest[:n]) != word {
			return 0, nil, false
		}
		return n, word, true
	}
}

// builtInMatcher accepts a whole word naming a capability, so a name that
// prefixes another (or prefixes an identifier) never matches early.
func builtInMatcher(builtins []string) peg.PredicateFunc {
	names := make(map[string]struct{}, len(builtins))
	for _, name := range builtins {
		names[name] = struct{}{}
	}
	return func(rest []rune) (int, any, bool) {
		n := wordLength(rest)
		if n == 0 {
			return 0, nil, false
		}
		word := string(rest[:n])
		if _, ok := names[word]; !ok {
			return 0, nil, false
		}
		return n, word, true
	}
}

// normalizeSource folds CRLF line endings so the grammar only deals with \n.
func normalizeSource(source string) string {
	return strings.ReplaceAll(source, "\r\n", "\n")
}
