package ast

// Size counts the nodes of a tree. Every node counts one plus its children,
// and every sequence (statements, parameters, arguments, elements, indices)
// counts one plus its members. Parameter names count one each. A program
// counts as its statement list; a call's callee and an assignment's target
// are not counted.
func Size(node Node) int {
	if node == nil {
		return 1
	}
	if prog, ok := node.(*Program); ok {
		return sizeOfStatements(prog.Body)
	}
	count := 1
	switch n := node.(type) {
	case *Function:
		count += 1 + len(n.Parameters)
		count += sizeOfStatements(n.Body)
	case *Call:
		count += sizeOfExpressions(n.Arguments)
	case *BuiltIn:
		count += sizeOfExpressions(n.Arguments)
	case *Return:
		count += Size(n.Value)
	case *Assignment:
		count += Size(n.Value)
	case *If:
		count += Size(n.Predicate)
		count += sizeOfStatements(n.Body)
	case *IfElse:
		count += Size(n.Predicate)
		count += sizeOfStatements(n.Body)
		count += sizeOfStatements(n.Else)
	case *Operator:
		count += sizeOfExpressions(n.Arguments)
	case *Access:
		count += sizeOfExpressions(n.Indices)
	case *List:
		count += sizeOfExpressions(n.Elements)
	}
	return count
}

func sizeOfStatements(stmts []Statement) int {
	count := 1
	for _, stmt := range stmts {
		count += Size(stmt)
	}
	return count
}

func sizeOfExpressions(exprs []Expression) int {
	count := 1
	for _, expr := range exprs {
		count += Size(expr)
	}
	return count
}
