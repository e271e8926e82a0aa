package main

import (
	"fmt"
	"io"
	"log"
	"os"
)

const cliToolVersion = "raptor 0.4.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	switch args[0] {
	case "--help", "-h", "help":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	case "run":
		return runProgram(args[1:])
	case "parse":
		return runParse(args[1:])
	case "repl":
		return runRepl(args[1:])
	default:
		return runProgram(args)
	}
}

// newLogger traces what the CLI loads when verbose is set.
func newLogger(verbose bool) *log.Logger {
	out := io.Discard
	if verbose {
		out = os.Stderr
	}
	return log.New(out, "raptor: ", 0)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  raptor run [flags] <file>")
	fmt.Fprintln(os.Stderr, "  raptor run [flags] --repo <url> [--rev <revision>] <path>")
	fmt.Fprintln(os.Stderr, "  raptor parse [--json] <file> | raptor parse --grammar")
	fmt.Fprintln(os.Stderr, "  raptor repl")
	fmt.Fprintln(os.Stderr, "  raptor version")
}
