package runtime

import (
	"fmt"

	"github.com/turbomaze/raptor-lang/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNumber Kind = iota
	KindBool
	KindList
	KindFunction
	KindBuiltIn
	KindNone
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindList:
		return "list"
	case KindFunction:
		return "function"
	case KindBuiltIn:
		return "builtIn"
	case KindNone:
		return "none"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind { return KindNumber }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

// NoValue is produced by capabilities that return nothing and by calls to
// names the host did not supply.
type NoValue struct{}

func (NoValue) Kind() Kind { return KindNone }

//-----------------------------------------------------------------------------
// Lists
//-----------------------------------------------------------------------------

// ListValue is shared by reference: every binding that holds the same
// *ListValue observes element updates made through any of them.
type ListValue struct {
	Elements []Value
}

func (v *ListValue) Kind() Kind { return KindList }

func NewList(elements ...Value) *ListValue {
	return &ListValue{Elements: elements}
}

//-----------------------------------------------------------------------------
// Callables
//-----------------------------------------------------------------------------

// Binding is a parameter name fixed to a value by partial application.
type Binding struct {
	Name  string
	Value Value
}

// FunctionValue is a callable produced by a function definition or by
// partially applying another FunctionValue. Parameters lists only the
// parameters that still need arguments. Instances are never mutated.
type FunctionValue struct {
	Definition *ast.Function
	Parameters []string
	Partials   []Binding
}

func (v *FunctionValue) Kind() Kind { return KindFunction }

// NewFunction wraps a definition with no arguments applied.
func NewFunction(def *ast.Function) *FunctionValue {
	params := make([]string, len(def.Parameters))
	copy(params, def.Parameters)
	return &FunctionValue{Definition: def, Parameters: params}
}

// Name reports the name the function was defined under.
func (v *FunctionValue) Name() string {
	if v.Definition == nil {
		return ""
	}
	return v.Definition.Name
}

// Body returns the statements shared by every partial application of the
// underlying definition.
func (v *FunctionValue) Body() []ast.Statement {
	if v.Definition == nil {
		return nil
	}
	return v.Definition.Body
}

// Partial binds args to the leading remaining parameters and returns the
// resulting function. Extra arguments are ignored.
func (v *FunctionValue) Partial(args []Value) *FunctionValue {
	n := len(args)
	if n > len(v.Parameters) {
		n = len(v.Parameters)
	}
	partials := make([]Binding, 0, len(v.Partials)+n)
	partials = append(partials, v.Partials...)
	for idx := 0; idx < n; idx++ {
		partials = append(partials, Binding{Name: v.Parameters[idx], Value: args[idx]})
	}
	remaining := make([]string, len(v.Parameters)-n)
	copy(remaining, v.Parameters[n:])
	return &FunctionValue{Definition: v.Definition, Parameters: remaining, Partials: partials}
}

// NativeFunc implements a host capability.
type NativeFunc func(args []Value) (Value, error)

// BuiltInValue refers to a host capability by name.
type BuiltInValue struct {
	Name string
}

func (v BuiltInValue) Kind() Kind { return KindBuiltIn }
