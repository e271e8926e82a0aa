package runtime

import (
	"testing"

	"github.com/turbomaze/raptor-lang/pkg/ast"
)

func TestPartialLeavesOriginalUntouched(t *testing.T) {
	def := ast.Fn("add", []string{"a", "b", "c"})
	fn := NewFunction(def)
	partial := fn.Partial([]Value{NumberValue{Val: 5}})

	if len(fn.Parameters) != 3 || len(fn.Partials) != 0 {
		t.Fatalf("original function mutated: %#v", fn)
	}
	if len(partial.Parameters) != 2 || partial.Parameters[0] != "b" {
		t.Fatalf("unexpected remaining parameters %v", partial.Parameters)
	}
	if len(partial.Partials) != 1 || partial.Partials[0].Name != "a" {
		t.Fatalf("unexpected partials %#v", partial.Partials)
	}
	if partial.Definition != def {
		t.Fatalf("partial application must share the definition")
	}

	again := partial.Partial([]Value{NumberValue{Val: 6}, NumberValue{Val: 7}, NumberValue{Val: 8}})
	if len(again.Parameters) != 0 || len(again.Partials) != 3 {
		t.Fatalf("extra arguments should be ignored: %#v", again)
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		value Value
		want  string
	}{
		{NumberValue{Val: 101}, "101"},
		{NumberValue{Val: -3.25}, "-3.25"},
		{BoolValue{Val: true}, "true"},
		{NewList(NumberValue{Val: 1}, NewList(BoolValue{Val: false})), "[1, [false]]"},
		{NoValue{}, "none"},
		{NewFunction(ast.Fn("f", []string{"a", "b"})), "<function f/2>"},
		{BuiltInValue{Name: "log"}, "<builtIn log>"},
	}
	for _, tc := range cases {
		if got := Format(tc.value); got != tc.want {
			t.Fatalf("Format(%#v) = %q, want %q", tc.value, got, tc.want)
		}
	}
}
