package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/turbomaze/raptor-lang/pkg/driver"
	"github.com/turbomaze/raptor-lang/pkg/interpreter"
	"github.com/turbomaze/raptor-lang/pkg/peg"
	"github.com/turbomaze/raptor-lang/pkg/runtime"
	"github.com/turbomaze/raptor-lang/pkg/stdlib"
)

func runProgram(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	library := fs.String("library", "", "capability library to load")
	code := fs.Int("code", 0, "code size limit in AST nodes (0 for unlimited)")
	compute := fs.Int("compute", 0, "compute limit in evaluation steps (0 for unlimited)")
	configPath := fs.String("config", "", "path to "+driver.ConfigFileName)
	stats := fs.Bool("stats", true, "print runtime stats after a successful run")
	statsQuery := fs.String("stats-query", "", "jq query applied to the runtime stats")
	timeout := fs.Duration("timeout", 0, "wall-clock limit for the run")
	repo := fs.String("repo", "", "git repository to read the program from")
	rev := fs.String("rev", "", "revision to check out with --repo")
	verbose := fs.Bool("verbose", false, "trace config and source loading")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "raptor run requires exactly one source file")
		return 1
	}
	logger := newLogger(*verbose)

	var src *driver.Source
	var err error
	start := "."
	if *repo != "" {
		src, err = driver.FetchGitSource(*repo, *rev, fs.Arg(0))
	} else {
		if *rev != "" {
			fmt.Fprintln(os.Stderr, "--rev requires --repo")
			return 1
		}
		src, err = driver.LoadFile(fs.Arg(0))
		if err == nil {
			start = src.Dir
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load source: %v\n", err)
		return 1
	}
	logger.Printf("source %s (%d bytes)", src.Name, len(src.Text))

	cfg, err := driver.ResolveConfig(*configPath, start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 1
	}
	if cfg.Path != "" {
		logger.Printf("config %s", cfg.Path)
	}

	// flags given explicitly win over the config
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "library":
			cfg.Library = *library
		case "code":
			cfg.Limits.Code = *code
		case "compute":
			cfg.Limits.Compute = *compute
		case "stats":
			cfg.Stats = *stats
		case "timeout":
			cfg.Timeout = *timeout
		}
	})
	logger.Printf("library %s, limits code=%d compute=%d", cfg.Library, cfg.Limits.Code, cfg.Limits.Compute)

	interp, err := newInterpreter(cfg.Library)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	ctx := context.Background()
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}
	runStats := interpreter.NewStats()
	result, err := interp.InterpretContext(ctx, src.Text, cfg.Limits, runStats)
	if err != nil {
		return reportError(err)
	}
	logger.Printf("finished: %s", runStats)

	if _, none := result.(runtime.NoValue); !none {
		fmt.Fprintln(os.Stdout, runtime.Format(result))
	}
	if !cfg.Stats && *statsQuery == "" {
		return 0
	}
	fmt.Fprintln(os.Stdout, "\n=== RUNTIME STATS ===")
	if *statsQuery != "" {
		lines, err := driver.QueryStats(runStats, *statsQuery)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
		for _, line := range lines {
			fmt.Fprintln(os.Stdout, line)
		}
		return 0
	}
	data, err := driver.StatsJSON(runStats)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	fmt.Fprintln(os.Stdout, string(data))
	return 0
}

func newInterpreter(library string) (*interpreter.Interpreter, error) {
	lib, err := stdlib.Lookup(library)
	if err != nil {
		return nil, err
	}
	return interpreter.New(lib(stdlib.DefaultHost()))
}

// reportError prints a run failure under the heading for its kind.
func reportError(err error) int {
	var ierr *interpreter.Error
	if !errors.As(err, &ierr) {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	switch ierr.Code {
	case interpreter.RuntimeError:
		fmt.Fprintln(os.Stdout, "=== RUNTIME ERROR ===")
	case interpreter.SyntaxError:
		fmt.Fprintln(os.Stdout, "=== SYNTAX ERROR ===")
	default:
		fmt.Fprintln(os.Stdout, "=== LIMIT ERROR ===")
	}
	fmt.Fprintln(os.Stdout, ierr.Message)
	var syn *peg.SyntaxError
	if errors.As(err, &syn) {
		if detail := syn.Detail(); strings.TrimSpace(detail) != "" {
			fmt.Fprintln(os.Stdout, detail)
		}
	}
	return 1
}
