package runtime

import (
	"testing"

	"github.com/turbomaze/raptor-lang/pkg/ast"
)

func TestEnvironmentDefineAndLookup(t *testing.T) {
	env := NewEnvironment()
	env.Define("x", NumberValue{Val: 1})
	got, ok := env.Lookup("x")
	if !ok {
		t.Fatalf("expected binding for x")
	}
	if num, ok := got.(NumberValue); !ok || num.Val != 1 {
		t.Fatalf("unexpected value %#v", got)
	}
	if _, ok := env.Lookup("y"); ok {
		t.Fatalf("expected y to be unbound")
	}
	env.Define("x", BoolValue{Val: true})
	if got, _ := env.Lookup("x"); got.Kind() != KindBool {
		t.Fatalf("expected redefinition to replace x, got %#v", got)
	}
}

func TestEnvironmentKeysSorted(t *testing.T) {
	env := NewEnvironment()
	env.Define("b", NumberValue{Val: 2})
	env.Define("a", NumberValue{Val: 1})
	keys := env.Keys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("unexpected keys %v", keys)
	}
}

func TestCallFrameCopiesOnlyFunctions(t *testing.T) {
	caller := NewEnvironment()
	helper := NewFunction(ast.Fn("helper", nil))
	caller.Define("helper", helper)
	caller.Define("secret", NumberValue{Val: 42})

	callee := NewFunction(ast.Fn("f", []string{"a"}))
	frame := caller.CallFrame(callee, []Value{NumberValue{Val: 7}})

	if _, ok := frame.Lookup("secret"); ok {
		t.Fatalf("callee frame must not see caller values")
	}
	if got, ok := frame.Lookup("helper"); !ok || got != Value(helper) {
		t.Fatalf("callee frame missing caller function, got %#v", got)
	}
	if got, ok := frame.Lookup("a"); !ok || got.(NumberValue).Val != 7 {
		t.Fatalf("parameter not bound, got %#v", got)
	}
}

func TestCallFramePartialsOverrideParameters(t *testing.T) {
	caller := NewEnvironment()
	caller.Define("a", NewFunction(ast.Fn("a", nil)))
	fn := NewFunction(ast.Fn("f", []string{"a", "b"})).Partial([]Value{NumberValue{Val: 1}})
	frame := caller.CallFrame(fn, []Value{NumberValue{Val: 2}})

	a, _ := frame.Lookup("a")
	b, _ := frame.Lookup("b")
	if a.(NumberValue).Val != 1 || b.(NumberValue).Val != 2 {
		t.Fatalf("unexpected bindings a=%#v b=%#v", a, b)
	}
}
