package interpreter

import (
	"math"

	"github.com/turbomaze/raptor-lang/pkg/ast"
	"github.com/turbomaze/raptor-lang/pkg/runtime"
)

type arithmeticFunc func(a, b float64) float64

var arithmetic = map[string]arithmeticFunc{
	"+": func(a, b float64) float64 { return a + b },
	"-": func(a, b float64) float64 { return a - b },
	"*": func(a, b float64) float64 { return a * b },
	"/": func(a, b float64) float64 { return math.Floor(a / b) },
	"%": math.Mod,
}

var comparisons = map[string]func(a, b float64) bool{
	">":  func(a, b float64) bool { return a > b },
	"<":  func(a, b float64) bool { return a < b },
	">=": func(a, b float64) bool { return a >= b },
	"<=": func(a, b float64) bool { return a <= b },
	"==": func(a, b float64) bool { return a == b },
	"!=": func(a, b float64) bool { return a != b },
}

var connectives = map[string]func(a, b bool) bool{
	"and": func(a, b bool) bool { return a && b },
	"or":  func(a, b bool) bool { return a || b },
}

// evaluateOperator evaluates every operand before checking any of them, so
// both sides of "and" and "or" always run.
func (x *execution) evaluateOperator(op *ast.Operator, env *runtime.Environment) (runtime.Value, error) {
	if err := x.step(StepOperator); err != nil {
		return nil, err
	}
	arity := 2
	switch {
	case op.Name == "not":
		arity = 1
	case arithmetic[op.Name] != nil, comparisons[op.Name] != nil, connectives[op.Name] != nil:
	default:
		return nil, x.fail(ErrUnknownOperator, "Unknown operator %q.", op.Name)
	}
	if len(op.Arguments) != arity {
		return nil, x.fail(ErrUnknownOperator, "operator %q takes %d arguments, got %d.", op.Name, arity, len(op.Arguments))
	}
	args, err := x.evaluateArguments(op.Arguments, env)
	if err != nil {
		return nil, err
	}

	if op.Name == "not" {
		b, ok := args[0].(runtime.BoolValue)
		if !ok {
			return nil, x.typeMismatch("first", op.Name, runtime.KindBool)
		}
		return runtime.BoolValue{Val: !b.Val}, nil
	}
	if fn := connectives[op.Name]; fn != nil {
		a, ok := args[0].(runtime.BoolValue)
		if !ok {
			return nil, x.typeMismatch("first", op.Name, runtime.KindBool)
		}
		b, ok := args[1].(runtime.BoolValue)
		if !ok {
			return nil, x.typeMismatch("second", op.Name, runtime.KindBool)
		}
		return runtime.BoolValue{Val: fn(a.Val, b.Val)}, nil
	}

	a, ok := args[0].(runtime.NumberValue)
	if !ok {
		return nil, x.typeMismatch("first", op.Name, runtime.KindNumber)
	}
	b, ok := args[1].(runtime.NumberValue)
	if !ok {
		return nil, x.typeMismatch("second", op.Name, runtime.KindNumber)
	}
	if fn := comparisons[op.Name]; fn != nil {
		return runtime.BoolValue{Val: fn(a.Val, b.Val)}, nil
	}
	result := arithmetic[op.Name](a.Val, b.Val)
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return nil, x.fail(ErrImproperResult, "operation %q returned an improper result.", op.Name)
	}
	return runtime.NumberValue{Val: result}, nil
}
