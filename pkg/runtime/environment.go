package runtime

import "sort"

// Environment holds the bindings of a single call frame. Frames never chain:
// a callee sees only what the caller copied into its fresh environment.
type Environment struct {
	values map[string]Value
}

// NewEnvironment creates an empty frame.
func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]Value)}
}

// Snapshot returns a copy of the current bindings.
func (e *Environment) Snapshot() map[string]Value {
	out := make(map[string]Value, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out
}

// Define inserts or replaces a binding.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Lookup retrieves a binding.
func (e *Environment) Lookup(name string) (Value, bool) {
	v, ok := e.values[name]
	return v, ok
}

// Keys returns the bindings in sorted order (useful for determinism in tests).
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Functions returns the function-valued bindings, the only bindings a
// caller passes down to a callee frame.
func (e *Environment) Functions() map[string]*FunctionValue {
	out := make(map[string]*FunctionValue)
	for k, v := range e.values {
		if fn, ok := v.(*FunctionValue); ok {
			out[k] = fn
		}
	}
	return out
}

// CallFrame builds the environment for invoking fn with args: the caller's
// functions first, then parameters, then partially applied bindings.
func (e *Environment) CallFrame(fn *FunctionValue, args []Value) *Environment {
	frame := NewEnvironment()
	for name, value := range e.Functions() {
		frame.Define(name, value)
	}
	for idx, name := range fn.Parameters {
		if idx < len(args) {
			frame.Define(name, args[idx])
		}
	}
	for _, partial := range fn.Partials {
		frame.Define(partial.Name, partial.Value)
	}
	return frame
}
