package interpreter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/turbomaze/raptor-lang/pkg/runtime"
)

// Limits bounds a single run. Zero means unlimited.
type Limits struct {
	// Code caps the number of AST nodes, checked before execution.
	Code int `json:"code" yaml:"code"`
	// Compute caps the total number of evaluation steps.
	Compute int `json:"compute" yaml:"compute"`
}

func Unlimited() Limits { return Limits{} }

// StepKind names a category of evaluation step.
type StepKind string

const (
	StepStatement  StepKind = "statement"
	StepExpression StepKind = "expression"
	StepOperator   StepKind = "operator"
	StepFunction   StepKind = "function"
	StepBuiltIn    StepKind = "builtIn"
	StepBlock      StepKind = "block"
)

// StepKinds lists every kind in reporting order.
var StepKinds = []StepKind{StepStatement, StepExpression, StepOperator, StepFunction, StepBuiltIn, StepBlock}

// Stats accumulates over one run and is shared by every evaluation call in it.
type Stats struct {
	ASTSize int
	Elapsed time.Duration
	Steps   int
	Counts  map[StepKind]int
}

func NewStats() *Stats {
	return &Stats{Counts: make(map[StepKind]int, len(StepKinds))}
}

// Count returns the number of steps of kind taken so far.
func (s *Stats) Count(kind StepKind) int {
	if s == nil {
		return 0
	}
	return s.Counts[kind]
}

// Map renders the stats with the keys hosts expect: astSize, time (in
// milliseconds), steps and one counter per step kind.
func (s *Stats) Map() map[string]any {
	out := map[string]any{
		"astSize": s.ASTSize,
		"time":    s.Elapsed.Milliseconds(),
		"steps":   s.Steps,
	}
	for _, kind := range StepKinds {
		out[string(kind)] = s.Counts[kind]
	}
	return out
}

func (s *Stats) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Map())
}

func (s *Stats) String() string {
	return fmt.Sprintf("steps=%d astSize=%d time=%s", s.Steps, s.ASTSize, s.Elapsed)
}

func (s *Stats) reset() {
	s.ASTSize = 0
	s.Elapsed = 0
	s.Steps = 0
	s.Counts = make(map[StepKind]int, len(StepKinds))
}

// execution carries the per-run context through every evaluation call.
type execution struct {
	ctx      context.Context
	limits   Limits
	stats    *Stats
	builtins map[string]runtime.NativeFunc
	reserved map[string]struct{}
}

// step records one unit of work and enforces the compute limit.
func (x *execution) step(kind StepKind) error {
	x.stats.Counts[kind]++
	x.stats.Steps++
	if x.limits.Compute > 0 && x.stats.Steps > x.limits.Compute {
		return &Error{Code: ComputeExceeded, Message: ErrTooMuchCompute.Error(), Stats: x.stats, Err: ErrTooMuchCompute}
	}
	if err := x.ctx.Err(); err != nil {
		return &Error{
			Code:    ComputeExceeded,
			Message: fmt.Sprintf("%s: %v", ErrTooMuchCompute, err),
			Stats:   x.stats,
			Err:     fmt.Errorf("%w: %w", ErrTooMuchCompute, err),
		}
	}
	return nil
}
