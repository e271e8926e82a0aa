package interpreter

import (
	"github.com/turbomaze/raptor-lang/pkg/ast"
	"github.com/turbomaze/raptor-lang/pkg/runtime"
)

// runBlock executes statements in order against env. A return anywhere
// inside, including nested conditional bodies, unwinds as a returnSignal.
func (x *execution) runBlock(stmts []ast.Statement, env *runtime.Environment) (runtime.Value, error) {
	if err := x.step(StepBlock); err != nil {
		return nil, err
	}
	for _, stmt := range stmts {
		if err := x.executeStatement(stmt, env); err != nil {
			return nil, err
		}
	}
	return runtime.NoValue{}, nil
}

func (x *execution) executeStatement(stmt ast.Statement, env *runtime.Environment) error {
	if err := x.step(StepStatement); err != nil {
		return err
	}
	switch n := stmt.(type) {
	case *ast.Function:
		env.Define(n.Name, runtime.NewFunction(n))
		return nil
	case *ast.Return:
		value, err := x.evaluate(n.Value, env)
		if err != nil {
			return err
		}
		return returnSignal{value: value}
	case *ast.Assignment:
		return x.executeAssignment(n, env)
	case *ast.If:
		pass, err := x.evaluatePredicate(n.Predicate, env)
		if err != nil || !pass {
			return err
		}
		_, err = x.runBlock(n.Body, env)
		return err
	case *ast.IfElse:
		pass, err := x.evaluatePredicate(n.Predicate, env)
		if err != nil {
			return err
		}
		body := n.Else
		if pass {
			body = n.Body
		}
		_, err = x.runBlock(body, env)
		return err
	case *ast.Call:
		_, err := x.applyCall(n.Callee, n.Arguments, env)
		return err
	case *ast.BuiltIn:
		_, err := x.callBuiltIn(n.Name, n.Arguments, env)
		return err
	case *ast.Identifier:
		return x.executeBareIdentifier(n.Name, env)
	default:
		return x.fail(ErrInvalidStatement, "%s is not a valid statement.", stmt.NodeType())
	}
}

// executeBareIdentifier treats a lone name as a zero-argument call.
func (x *execution) executeBareIdentifier(name string, env *runtime.Environment) error {
	if value, ok := env.Lookup(name); ok {
		switch v := value.(type) {
		case *runtime.FunctionValue:
			_, err := x.applyCall(ast.NewIdentifier(name), nil, env)
			return err
		case runtime.BuiltInValue:
			_, err := x.invokeBuiltIn(v.Name, nil)
			return err
		}
	} else if x.isBuiltIn(name) {
		_, err := x.callBuiltIn(name, nil, env)
		return err
	}
	return x.fail(ErrInvalidStatement, "lone identifier %q is not a valid statement.", name)
}

func (x *execution) evaluatePredicate(expr ast.Expression, env *runtime.Environment) (bool, error) {
	value, err := x.evaluate(expr, env)
	if err != nil {
		return false, err
	}
	b, ok := value.(runtime.BoolValue)
	if !ok {
		return false, x.fail(ErrTypeMismatch, "expected the predicate of a conditional to be of type %q.", runtime.KindBool.String())
	}
	return b.Val, nil
}

func (x *execution) executeAssignment(assign *ast.Assignment, env *runtime.Environment) error {
	switch target := assign.Target.(type) {
	case *ast.Identifier:
		value, err := x.evaluate(assign.Value, env)
		if err != nil {
			return err
		}
		env.Define(target.Name, value)
		return nil
	case *ast.Access:
		base, err := x.evaluate(ast.NewIdentifier(target.Name), env)
		if err != nil {
			return err
		}
		indices, err := x.evaluateIndices(target.Indices, env)
		if err != nil {
			return err
		}
		if len(indices) == 0 {
			return x.fail(ErrInvalidAccess, "invalid array access.")
		}
		list, err := x.walkIndices(base, indices[:len(indices)-1])
		if err != nil {
			return err
		}
		container, ok := list.(*runtime.ListValue)
		if !ok {
			return x.fail(ErrInvalidAccess, "invalid array access.")
		}
		last := indices[len(indices)-1]
		if last < 0 || last > len(container.Elements) {
			return x.fail(ErrInvalidAccess, "invalid array access.")
		}
		value, err := x.evaluate(assign.Value, env)
		if err != nil {
			return err
		}
		// writing one past the end grows the list in place
		if last == len(container.Elements) {
			container.Elements = append(container.Elements, value)
		} else {
			container.Elements[last] = value
		}
		return nil
	default:
		return x.fail(ErrInvalidStatement, "cannot assign to %s.", assign.Target.NodeType())
	}
}
