package ast

// Literal and identifier helpers.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Num(value float64) *NumberLiteral {
	return NewNumberLiteral(value)
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

func Lst(elements ...Expression) *List {
	return NewList(elements)
}

func Idx(name string, indices ...Expression) *Access {
	return NewAccess(name, indices)
}

func Op(name string, args ...Expression) *Operator {
	return NewOperator(name, args...)
}

// Call helpers.

func Invoke(name string, args ...Expression) *Call {
	return NewCall(ID(name), args)
}

func InvokeExpr(callee Expression, args ...Expression) *Call {
	return NewCall(callee, args)
}

func CallBuiltin(name string, args ...Expression) *BuiltIn {
	return NewBuiltIn(name, args)
}

// Statement helpers.

func Prog(body ...Statement) *Program {
	return NewProgram(body)
}

func Fn(name string, params []string, body ...Statement) *Function {
	return NewFunction(name, params, body)
}

func Ret(value Expression) *Return {
	return NewReturn(value)
}

func Assign(name string, value Expression) *Assignment {
	return NewAssignment(ID(name), value)
}

func AssignAt(target *Access, value Expression) *Assignment {
	return NewAssignment(target, value)
}

func IfThen(predicate Expression, body ...Statement) *If {
	return NewIf(predicate, body)
}

func Branch(predicate Expression, body []Statement, alternative []Statement) *IfElse {
	return NewIfElse(predicate, body, alternative)
}

// Stmts collects statements for Branch bodies.
func Stmts(stmts ...Statement) []Statement {
	return stmts
}
