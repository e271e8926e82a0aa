package interpreter

import (
	"errors"
	"fmt"
	"math"

	"github.com/turbomaze/raptor-lang/pkg/ast"
	"github.com/turbomaze/raptor-lang/pkg/runtime"
)

func (x *execution) evaluate(expr ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	if err := x.step(StepExpression); err != nil {
		return nil, err
	}
	switch n := expr.(type) {
	case *ast.NumberLiteral:
		return runtime.NumberValue{Val: n.Value}, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.List:
		elements := make([]runtime.Value, 0, len(n.Elements))
		for _, el := range n.Elements {
			value, err := x.evaluate(el, env)
			if err != nil {
				return nil, err
			}
			elements = append(elements, value)
		}
		return runtime.NewList(elements...), nil
	case *ast.Identifier:
		return x.lookup(n.Name, env)
	case *ast.Access:
		base, err := x.evaluate(ast.NewIdentifier(n.Name), env)
		if err != nil {
			return nil, err
		}
		indices, err := x.evaluateIndices(n.Indices, env)
		if err != nil {
			return nil, err
		}
		return x.walkIndices(base, indices)
	case *ast.Call:
		if len(n.Arguments) == 0 {
			return x.evaluate(n.Callee, env)
		}
		return x.applyCall(n.Callee, n.Arguments, env)
	case *ast.BuiltIn:
		if len(n.Arguments) == 0 {
			return runtime.BuiltInValue{Name: n.Name}, nil
		}
		return x.callBuiltIn(n.Name, n.Arguments, env)
	case *ast.Operator:
		return x.evaluateOperator(n, env)
	case nil:
		return nil, x.fail(ErrInvalidStatement, "missing expression.")
	default:
		return nil, x.fail(ErrInvalidStatement, "cannot evaluate %s.", expr.NodeType())
	}
}

func (x *execution) lookup(name string, env *runtime.Environment) (runtime.Value, error) {
	if value, ok := env.Lookup(name); ok {
		return value, nil
	}
	if x.isBuiltIn(name) {
		return runtime.BuiltInValue{Name: name}, nil
	}
	return nil, x.fail(ErrUndefinedIdentifier, "identifier %q does not refer to an in-scope variable or function.", name)
}

func (x *execution) isBuiltIn(name string) bool {
	_, ok := x.reserved[name]
	return ok
}

func (x *execution) evaluateArguments(exprs []ast.Expression, env *runtime.Environment) ([]runtime.Value, error) {
	args := make([]runtime.Value, 0, len(exprs))
	for _, expr := range exprs {
		value, err := x.evaluate(expr, env)
		if err != nil {
			return nil, err
		}
		args = append(args, value)
	}
	return args, nil
}

// evaluateIndices requires every index to be a whole number.
func (x *execution) evaluateIndices(exprs []ast.Expression, env *runtime.Environment) ([]int, error) {
	indices := make([]int, 0, len(exprs))
	for _, expr := range exprs {
		value, err := x.evaluate(expr, env)
		if err != nil {
			return nil, err
		}
		num, ok := value.(runtime.NumberValue)
		if !ok || num.Val != math.Trunc(num.Val) || math.IsInf(num.Val, 0) {
			return nil, x.fail(ErrInvalidAccess, "invalid array access.")
		}
		indices = append(indices, int(num.Val))
	}
	return indices, nil
}

func (x *execution) walkIndices(value runtime.Value, indices []int) (runtime.Value, error) {
	for _, idx := range indices {
		list, ok := value.(*runtime.ListValue)
		if !ok || idx < 0 || idx >= len(list.Elements) {
			return nil, x.fail(ErrInvalidAccess, "invalid array access.")
		}
		value = list.Elements[idx]
	}
	return value, nil
}

// applyCall resolves callee, evaluates the arguments left to right in the
// caller's scope and applies them.
func (x *execution) applyCall(callee ast.Expression, argExprs []ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	if err := x.step(StepFunction); err != nil {
		return nil, err
	}
	target, err := x.resolveCallee(callee, env)
	if err != nil {
		return nil, err
	}
	args, err := x.evaluateArguments(argExprs, env)
	if err != nil {
		return nil, err
	}
	switch fn := target.(type) {
	case *runtime.FunctionValue:
		return x.applyFunction(fn, args, env)
	case runtime.BuiltInValue:
		return x.invokeBuiltIn(fn.Name, args)
	default:
		return nil, x.fail(ErrNotCallable, "expression does not evaluate to a function.")
	}
}

func (x *execution) resolveCallee(callee ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	if id, ok := callee.(*ast.Identifier); ok {
		value, found := env.Lookup(id.Name)
		if found {
			switch value.(type) {
			case *runtime.FunctionValue, runtime.BuiltInValue:
				return value, nil
			}
		}
		return nil, x.fail(ErrUndefinedFunction, "function with name %q is undefined or not in scope.", id.Name)
	}
	value, err := x.evaluate(callee, env)
	if err != nil {
		return nil, err
	}
	switch value.(type) {
	case *runtime.FunctionValue, runtime.BuiltInValue:
		return value, nil
	}
	return nil, x.fail(ErrNotCallable, "expression does not evaluate to a function.")
}

// applyFunction curries when too few arguments are supplied, otherwise runs
// the body in a fresh frame. Extra arguments are ignored.
func (x *execution) applyFunction(fn *runtime.FunctionValue, args []runtime.Value, env *runtime.Environment) (runtime.Value, error) {
	if len(args) < len(fn.Parameters) {
		return fn.Partial(args), nil
	}
	frame := env.CallFrame(fn, args)
	_, err := x.runBlock(fn.Body(), frame)
	if ret, ok := err.(returnSignal); ok {
		return ret.value, nil
	}
	if err != nil {
		return nil, err
	}
	return runtime.NoValue{}, nil
}

func (x *execution) callBuiltIn(name string, argExprs []ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	if err := x.step(StepBuiltIn); err != nil {
		return nil, err
	}
	args, err := x.evaluateArguments(argExprs, env)
	if err != nil {
		return nil, err
	}
	return x.dispatchBuiltIn(name, args)
}

func (x *execution) invokeBuiltIn(name string, args []runtime.Value) (runtime.Value, error) {
	if err := x.step(StepBuiltIn); err != nil {
		return nil, err
	}
	return x.dispatchBuiltIn(name, args)
}

func (x *execution) dispatchBuiltIn(name string, args []runtime.Value) (runtime.Value, error) {
	fn, ok := x.builtins[name]
	if !ok || fn == nil {
		return runtime.NoValue{}, nil
	}
	value, err := fn(args)
	if err != nil {
		var ierr *Error
		if errors.As(err, &ierr) {
			return nil, ierr
		}
		return nil, &Error{
			Code:    RuntimeError,
			Message: fmt.Sprintf("builtIn %q failed: %v", name, err),
			Stats:   x.stats,
			Err:     errors.Join(ErrBuiltInFailed, err),
		}
	}
	if value == nil {
		return runtime.NoValue{}, nil
	}
	return value, nil
}
