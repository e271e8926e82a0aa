package interpreter

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/turbomaze/raptor-lang/pkg/ast"
	"github.com/turbomaze/raptor-lang/pkg/language"
	"github.com/turbomaze/raptor-lang/pkg/peg"
	"github.com/turbomaze/raptor-lang/pkg/runtime"
)

// Interpreter parses and runs raptor programs against an injected table of
// host capabilities. It holds no per-run state and may be reused.
type Interpreter struct {
	parser   *language.Parser
	builtins map[string]runtime.NativeFunc
	reserved map[string]struct{}
}

// Option configures an Interpreter.
type Option func(*config)

type config struct {
	reserved []string
}

// WithReserved reserves capability names that have no implementation in
// the table. Calls to them evaluate to no value.
func WithReserved(names ...string) Option {
	return func(c *config) { c.reserved = append(c.reserved, names...) }
}

// New returns an interpreter whose grammar reserves every capability name.
func New(builtins map[string]runtime.NativeFunc, opts ...Option) (*Interpreter, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	table := make(map[string]runtime.NativeFunc, len(builtins))
	reserved := make(map[string]struct{}, len(builtins)+len(cfg.reserved))
	for name, fn := range builtins {
		table[name] = fn
		reserved[name] = struct{}{}
	}
	for _, name := range cfg.reserved {
		reserved[name] = struct{}{}
	}
	names := make([]string, 0, len(reserved))
	for name := range reserved {
		names = append(names, name)
	}
	sort.Strings(names)

	parser, err := language.NewParser(names...)
	if err != nil {
		return nil, err
	}
	return &Interpreter{parser: parser, builtins: table, reserved: reserved}, nil
}

// BuiltIns lists the reserved capability names in sorted order.
func (i *Interpreter) BuiltIns() []string {
	names := make([]string, 0, len(i.reserved))
	for name := range i.reserved {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Grammar describes the rules the interpreter parses with, one per line.
func (i *Interpreter) Grammar() string {
	return i.parser.Rules()
}

// Parse converts source into a program. Syntax errors are returned as
// *Error with Code SyntaxError and the failure position in Data.
func (i *Interpreter) Parse(source string) (*ast.Program, error) {
	program, err := i.parser.Parse(source)
	if err == nil {
		return program, nil
	}
	var syn *peg.SyntaxError
	if errors.As(err, &syn) {
		return nil, &Error{
			Code:    SyntaxError,
			Message: syn.Error(),
			Data:    &Position{Line: syn.Line, Column: syn.Column},
			Err:     errors.Join(ErrSyntax, syn),
		}
	}
	return nil, err
}

// Interpret parses and runs source. stats may be nil; when supplied it is
// reset and then filled in whether or not the run succeeds.
func (i *Interpreter) Interpret(source string, limits Limits, stats *Stats) (runtime.Value, error) {
	return i.InterpretContext(context.Background(), source, limits, stats)
}

// InterpretContext is Interpret with a host deadline. Cancellation surfaces
// as a ComputeExceeded error.
func (i *Interpreter) InterpretContext(ctx context.Context, source string, limits Limits, stats *Stats) (runtime.Value, error) {
	program, err := i.Parse(source)
	if err != nil {
		return nil, err
	}
	return i.ExecuteContext(ctx, program, limits, stats)
}

// Execute runs an already parsed program in a fresh top-level scope.
func (i *Interpreter) Execute(program *ast.Program, limits Limits, stats *Stats) (runtime.Value, error) {
	return i.ExecuteContext(context.Background(), program, limits, stats)
}

func (i *Interpreter) ExecuteContext(ctx context.Context, program *ast.Program, limits Limits, stats *Stats) (runtime.Value, error) {
	return i.execute(ctx, program, runtime.NewEnvironment(), limits, stats)
}

func (i *Interpreter) execute(ctx context.Context, program *ast.Program, env *runtime.Environment, limits Limits, stats *Stats) (runtime.Value, error) {
	if stats == nil {
		stats = NewStats()
	} else {
		stats.reset()
	}
	size := ast.Size(program)
	stats.ASTSize = size
	if limits.Code > 0 && size > limits.Code {
		return nil, &Error{Code: CodeSizeExceeded, Message: ErrTooMuchCode.Error(), Err: ErrTooMuchCode}
	}

	x := &execution{
		ctx:      ctx,
		limits:   limits,
		stats:    stats,
		builtins: i.builtins,
		reserved: i.reserved,
	}
	start := time.Now()
	result, err := x.runBlock(program.Body, env)
	stats.Elapsed = time.Since(start)
	if ret, ok := err.(returnSignal); ok {
		return ret.value, nil
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}
