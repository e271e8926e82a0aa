// Package stdlib provides the capability tables a host can hand to the
// interpreter.
package stdlib

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/turbomaze/raptor-lang/pkg/runtime"
)

// Host is what a library may touch outside the interpreter.
type Host struct {
	Stdout io.Writer
	Rand   *rand.Rand
}

// DefaultHost writes to os.Stdout and seeds from the clock.
func DefaultHost() Host {
	return Host{Stdout: os.Stdout, Rand: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Library builds a capability table bound to host.
type Library func(host Host) map[string]runtime.NativeFunc

var libraries = map[string]Library{
	"std": Std,
}

// Libraries returns the named libraries selectable from the CLI.
func Libraries() map[string]Library {
	out := make(map[string]Library, len(libraries))
	for name, lib := range libraries {
		out[name] = lib
	}
	return out
}

// Names lists the library names in sorted order.
func Names() []string {
	names := make([]string, 0, len(libraries))
	for name := range libraries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func Lookup(name string) (Library, error) {
	lib, ok := libraries[name]
	if !ok {
		return nil, fmt.Errorf("unknown library %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return lib, nil
}

// Std is the default table: log and random.
func Std(host Host) map[string]runtime.NativeFunc {
	if host.Stdout == nil {
		host.Stdout = io.Discard
	}
	if host.Rand == nil {
		host.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return map[string]runtime.NativeFunc{
		"log":    logFunc(host.Stdout),
		"random": randomFunc(host.Rand),
	}
}

// logFunc prints its arguments separated by spaces and returns no value.
func logFunc(out io.Writer) runtime.NativeFunc {
	return func(args []runtime.Value) (runtime.Value, error) {
		parts := make([]string, len(args))
		for idx, arg := range args {
			parts[idx] = runtime.Format(arg)
		}
		if _, err := fmt.Fprintln(out, strings.Join(parts, " ")); err != nil {
			return nil, err
		}
		return runtime.NoValue{}, nil
	}
}

// randomFunc returns a whole number in [0, n).
func randomFunc(rng *rand.Rand) runtime.NativeFunc {
	return func(args []runtime.Value) (runtime.Value, error) {
		if len(args) == 0 {
			return nil, fmt.Errorf("random expects one number")
		}
		n, ok := args[0].(runtime.NumberValue)
		if !ok {
			return nil, fmt.Errorf("random expects a number, got %s", args[0].Kind())
		}
		return runtime.NumberValue{Val: math.Floor(n.Val * rng.Float64())}, nil
	}
}
