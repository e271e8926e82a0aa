package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"

	"github.com/turbomaze/raptor-lang/pkg/driver"
)

var astDumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func runParse(args []string) int {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	asJSON := fs.Bool("json", false, "print the AST as JSON")
	library := fs.String("library", "std", "capability library whose names are reserved")
	grammar := fs.Bool("grammar", false, "print the grammar rules instead of parsing a file")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *grammar {
		interp, err := newInterpreter(*library)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
		fmt.Fprint(os.Stdout, interp.Grammar())
		return 0
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "raptor parse requires exactly one source file")
		return 1
	}
	src, err := driver.LoadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load source: %v\n", err)
		return 1
	}
	interp, err := newInterpreter(*library)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	program, err := interp.Parse(src.Text)
	if err != nil {
		return reportError(err)
	}

	if *asJSON {
		data, err := json.MarshalIndent(program, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
		fmt.Fprintln(os.Stdout, string(data))
		return 0
	}
	astDumper.Fdump(os.Stdout, program)
	return 0
}
