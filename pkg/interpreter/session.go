package interpreter

import (
	"context"

	"github.com/turbomaze/raptor-lang/pkg/runtime"
)

// Session evaluates a sequence of sources against one top-level scope, so
// functions and variables defined by one Eval remain visible to the next.
// Limits apply to each Eval separately.
type Session struct {
	interp *Interpreter
	limits Limits
	env    *runtime.Environment
}

func (i *Interpreter) NewSession(limits Limits) *Session {
	return &Session{interp: i, limits: limits, env: runtime.NewEnvironment()}
}

func (s *Session) Eval(source string) (runtime.Value, *Stats, error) {
	return s.EvalContext(context.Background(), source)
}

func (s *Session) EvalContext(ctx context.Context, source string) (runtime.Value, *Stats, error) {
	program, err := s.interp.Parse(source)
	if err != nil {
		return nil, nil, err
	}
	stats := NewStats()
	value, err := s.interp.execute(ctx, program, s.env, s.limits, stats)
	return value, stats, err
}

// Bindings returns the session's top-level names in sorted order.
func (s *Session) Bindings() []string {
	return s.env.Keys()
}

// Values returns a copy of the session's top-level bindings.
func (s *Session) Values() map[string]runtime.Value {
	return s.env.Snapshot()
}

// Lookup returns the value bound to name at the top level.
func (s *Session) Lookup(name string) (runtime.Value, bool) {
	return s.env.Lookup(name)
}
