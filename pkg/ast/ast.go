package ast

type NodeType string

const (
	NodeProgram        NodeType = "Program"
	NodeFunction       NodeType = "Function"
	NodeCall           NodeType = "Call"
	NodeBuiltIn        NodeType = "BuiltIn"
	NodeReturn         NodeType = "Return"
	NodeAssignment     NodeType = "Assignment"
	NodeIf             NodeType = "If"
	NodeIfElse         NodeType = "IfElse"
	NodeOperator       NodeType = "Operator"
	NodeAccess         NodeType = "Access"
	NodeList           NodeType = "List"
	NodeNumberLiteral  NodeType = "NumberLiteral"
	NodeBooleanLiteral NodeType = "BooleanLiteral"
	NodeIdentifier     NodeType = "Identifier"
)

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces.

// Expression nodes may also appear where a statement is expected; the
// interpreter decides which of them are meaningful there.
type Expression interface {
	Node
	expressionNode()
	statementNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// AssignmentTarget is either a plain identifier or an indexed list access.
type AssignmentTarget interface {
	Node
	assignmentTargetNode()
}

type assignmentTargetMarker struct{}

func (assignmentTargetMarker) assignmentTargetNode() {}

// Program is the root of a parsed source text.
type Program struct {
	nodeImpl

	Body []Statement `json:"body"`
}

func NewProgram(body []Statement) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Body: body}
}

// Function binds Name to a callable. Parameters are positional.
type Function struct {
	nodeImpl
	statementMarker

	Name       string      `json:"name"`
	Parameters []string    `json:"parameters"`
	Body       []Statement `json:"body"`
}

func NewFunction(name string, params []string, body []Statement) *Function {
	return &Function{nodeImpl: newNodeImpl(NodeFunction), Name: name, Parameters: params, Body: body}
}

// Call invokes a user function. Callee is usually an Identifier but may be
// any expression that yields a function.
type Call struct {
	nodeImpl
	expressionMarker
	statementMarker

	Callee    Expression   `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

func NewCall(callee Expression, args []Expression) *Call {
	return &Call{nodeImpl: newNodeImpl(NodeCall), Callee: callee, Arguments: args}
}

// BuiltIn invokes a host capability by name.
type BuiltIn struct {
	nodeImpl
	expressionMarker
	statementMarker

	Name      string       `json:"name"`
	Arguments []Expression `json:"arguments"`
}

func NewBuiltIn(name string, args []Expression) *BuiltIn {
	return &BuiltIn{nodeImpl: newNodeImpl(NodeBuiltIn), Name: name, Arguments: args}
}

type Return struct {
	nodeImpl
	statementMarker

	Value Expression `json:"value"`
}

func NewReturn(value Expression) *Return {
	return &Return{nodeImpl: newNodeImpl(NodeReturn), Value: value}
}

type Assignment struct {
	nodeImpl
	statementMarker

	Target AssignmentTarget `json:"target"`
	Value  Expression       `json:"value"`
}

func NewAssignment(target AssignmentTarget, value Expression) *Assignment {
	return &Assignment{nodeImpl: newNodeImpl(NodeAssignment), Target: target, Value: value}
}

type If struct {
	nodeImpl
	statementMarker

	Predicate Expression  `json:"predicate"`
	Body      []Statement `json:"body"`
}

func NewIf(predicate Expression, body []Statement) *If {
	return &If{nodeImpl: newNodeImpl(NodeIf), Predicate: predicate, Body: body}
}

type IfElse struct {
	nodeImpl
	statementMarker

	Predicate Expression  `json:"predicate"`
	Body      []Statement `json:"body"`
	Else      []Statement `json:"else"`
}

func NewIfElse(predicate Expression, body, alternative []Statement) *IfElse {
	return &IfElse{nodeImpl: newNodeImpl(NodeIfElse), Predicate: predicate, Body: body, Else: alternative}
}

// Operator applies a binary or unary primitive ("+", "<=", "and", "not", ...).
type Operator struct {
	nodeImpl
	expressionMarker
	statementMarker

	Name      string       `json:"name"`
	Arguments []Expression `json:"arguments"`
}

func NewOperator(name string, args ...Expression) *Operator {
	return &Operator{nodeImpl: newNodeImpl(NodeOperator), Name: name, Arguments: args}
}

// Access indexes into the list bound to Name, one index per nesting level.
type Access struct {
	nodeImpl
	expressionMarker
	statementMarker
	assignmentTargetMarker

	Name    string       `json:"name"`
	Indices []Expression `json:"indices"`
}

func NewAccess(name string, indices []Expression) *Access {
	return &Access{nodeImpl: newNodeImpl(NodeAccess), Name: name, Indices: indices}
}

type List struct {
	nodeImpl
	expressionMarker
	statementMarker

	Elements []Expression `json:"elements"`
}

func NewList(elements []Expression) *List {
	return &List{nodeImpl: newNodeImpl(NodeList), Elements: elements}
}

type NumberLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker

	Value float64 `json:"value"`
}

func NewNumberLiteral(value float64) *NumberLiteral {
	return &NumberLiteral{nodeImpl: newNodeImpl(NodeNumberLiteral), Value: value}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

type Identifier struct {
	nodeImpl
	expressionMarker
	statementMarker
	assignmentTargetMarker

	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}
