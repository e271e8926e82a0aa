package language

import (
	"math"

	"github.com/turbomaze/raptor-lang/pkg/ast"
	"github.com/turbomaze/raptor-lang/pkg/peg"
)

// digitRun is the reduced form of a whole number: its value and how many
// digits were written.
type digitRun struct {
	value  float64
	digits int
}

// Structure returns the reducers that turn raw matches of the grammar into
// ast nodes.
func Structure() peg.Structure {
	return peg.Structure{
		"program": peg.Reduce(func(raw any) any {
			return ast.NewProgram(statements(items(raw)[1]))
		}),
		"statements": peg.Reduce(func(raw any) any {
			parts := items(raw)
			out := []ast.Statement{statement(parts[0])}
			for _, tail := range items(parts[1]) {
				out = append(out, statement(tail))
			}
			return out
		}),
		"newlineStatement": peg.Reduce(nth(2)),

		"function": peg.Reduce(func(raw any) any {
			parts := items(raw)
			return ast.NewFunction(parts[0].(string), names(parts[2]), statements(parts[4]))
		}),
		"call": peg.Alternatives(
			func(raw any) any {
				parts := items(raw)
				callee := expression(parts[0])
				args := expressions(parts[1])
				if len(args) == 0 {
					return callee
				}
				return ast.NewCall(callee, args)
			},
			func(raw any) any {
				parts := items(raw)
				return ast.NewBuiltIn(parts[0].(string), expressions(parts[1]))
			},
		),
		// A parenthesized callee may only start a statement or the value of
		// a return or assignment; in argument position "(g) -> 4" is two
		// arguments.
		"chainCall": peg.Reduce(func(raw any) any {
			parts := items(raw)
			return ast.NewCall(expression(parts[0]), expressions(parts[1]))
		}),
		"parameterList":      peg.Reduce(func(raw any) any { return names(raw) }),
		"argumentList":       peg.Reduce(func(raw any) any { return expressions(raw) }),
		"fatArrowIdentifier": peg.Reduce(nth(2)),
		"arrowExpression":    peg.Reduce(nth(3)),
		"ifElse": peg.Reduce(func(raw any) any {
			parts := items(raw)
			return ast.NewIfElse(expression(parts[0]), statements(parts[2]), statements(parts[6]))
		}),
		"if": peg.Reduce(func(raw any) any {
			parts := items(raw)
			return ast.NewIf(expression(parts[0]), statements(parts[2]))
		}),
		"block": peg.Reduce(nth(2)),
		"return": peg.Reduce(func(raw any) any {
			return ast.NewReturn(expression(items(raw)[2]))
		}),
		"assignment": peg.Reduce(func(raw any) any {
			parts := items(raw)
			return ast.NewAssignment(parts[0].(ast.AssignmentTarget), expression(parts[4]))
		}),

		"expression":    peg.Alternatives(chainOperators, nil),
		"boolTerm":      peg.Reduce(chainOperators),
		"numExpression": peg.Reduce(chainOperators),
		"term":          peg.Reduce(chainOperators),
		"notBoolGroup": peg.Reduce(func(raw any) any {
			parts := items(raw)
			if _, negated := present(parts[0]); negated {
				return ast.NewOperator("not", expression(parts[1]))
			}
			return parts[1]
		}),
		"boolRelation": peg.Reduce(func(raw any) any {
			parts := items(raw)
			rel, ok := present(parts[1])
			if !ok {
				return parts[0]
			}
			tail := items(rel)
			return ast.NewOperator(tail[1].(string), expression(parts[0]), expression(tail[3]))
		}),
		"parenthesized": peg.Reduce(nth(2)),

		"labeledValue": peg.Alternatives(nil, func(raw any) any {
			return ast.NewIdentifier(raw.(string))
		}),
		"list": peg.Reduce(func(raw any) any {
			if values, ok := present(items(raw)[2]); ok {
				return ast.NewList(expressions(values))
			}
			return ast.NewList([]ast.Expression{})
		}),
		"values": peg.Reduce(func(raw any) any {
			parts := items(raw)
			out := []ast.Expression{expression(parts[0])}
			return append(out, expressions(parts[1])...)
		}),
		"commaValue": peg.Reduce(nth(3)),
		"listAccess": peg.Reduce(func(raw any) any {
			parts := items(raw)
			return ast.NewAccess(parts[0].(string), expressions(parts[2]))
		}),
		"indexList": peg.Reduce(func(raw any) any {
			parts := items(raw)
			out := []ast.Expression{expression(parts[0])}
			return append(out, expressions(parts[1])...)
		}),
		"commaIndex": peg.Reduce(nth(1)),

		"decimal": peg.Reduce(func(raw any) any {
			parts := items(raw)
			value := parts[1].(digitRun).value + parts[3].(float64)
			return ast.NewNumberLiteral(signed(parts[0], value))
		}),
		"fractionalPart": peg.Alternatives(
			func(raw any) any {
				parts := items(raw)
				run := parts[1].(digitRun)
				return run.value / math.Pow(10, float64(len(items(parts[0]))+run.digits))
			},
			func(any) any { return 0.0 },
		),
		"integer": peg.Reduce(func(raw any) any {
			parts := items(raw)
			return ast.NewNumberLiteral(signed(parts[0], parts[1].(digitRun).value))
		}),
		"wholeNumber": peg.Alternatives(
			func(raw any) any {
				parts := items(raw)
				digits := append([]any{parts[0]}, items(parts[1])...)
				run := digitRun{}
				for _, d := range digits {
					run.value = run.value*10 + float64(d.(string)[0]-'0')
					run.digits++
				}
				return run
			},
			func(any) any { return digitRun{value: 0, digits: 1} },
		),
		"true":  peg.Reduce(func(any) any { return ast.NewBooleanLiteral(true) }),
		"false": peg.Reduce(func(any) any { return ast.NewBooleanLiteral(false) }),
	}
}

// chainOperators folds `operand, { [_, op, _, operand] }` left to right.
func chainOperators(raw any) any {
	parts := items(raw)
	left := expression(parts[0])
	for _, tail := range items(parts[1]) {
		link := items(tail)
		left = ast.NewOperator(link[1].(string), left, expression(link[3]))
	}
	return left
}

func nth(idx int) peg.Reducer {
	return func(raw any) any { return items(raw)[idx] }
}

func items(raw any) []any {
	if list, ok := raw.([]any); ok {
		return list
	}
	return nil
}

func present(raw any) (any, bool) {
	m, ok := raw.(peg.Maybe)
	return m.Value, ok && m.Present
}

func signed(negative any, value float64) float64 {
	if _, ok := present(negative); ok {
		return -value
	}
	return value
}

func expression(raw any) ast.Expression {
	expr, _ := raw.(ast.Expression)
	return expr
}

func statement(raw any) ast.Statement {
	stmt, _ := raw.(ast.Statement)
	return stmt
}

func expressions(raw any) []ast.Expression {
	if already, ok := raw.([]ast.Expression); ok {
		return already
	}
	list := items(raw)
	out := make([]ast.Expression, 0, len(list))
	for _, item := range list {
		out = append(out, expression(item))
	}
	return out
}

func statements(raw any) []ast.Statement {
	if already, ok := raw.([]ast.Statement); ok {
		return already
	}
	list := items(raw)
	out := make([]ast.Statement, 0, len(list))
	for _, item := range list {
		out = append(out, statement(item))
	}
	return out
}

func names(raw any) []string {
	if already, ok := raw.([]string); ok {
		return already
	}
	list := items(raw)
	out := make([]string, 0, len(list))
	for _, item := range list {
		out = append(out, item.(string))
	}
	return out
}
