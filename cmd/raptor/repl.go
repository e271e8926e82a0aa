package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/turbomaze/raptor-lang/pkg/driver"
	"github.com/turbomaze/raptor-lang/pkg/interpreter"
	"github.com/turbomaze/raptor-lang/pkg/runtime"
)

const (
	promptMain = "raptor> "
	promptCont = "   ...> "
)

func runRepl(args []string) int {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	library := fs.String("library", "std", "capability library to load")
	code := fs.Int("code", driver.DefaultCodeLimit, "code size limit per entry (0 for unlimited)")
	compute := fs.Int("compute", driver.DefaultComputeLimit, "compute limit per entry (0 for unlimited)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	interp, err := newInterpreter(*library)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	session := interp.NewSession(interpreter.Limits{Code: *code, Compute: *compute})

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	fmt.Fprintf(os.Stdout, "%s (type :quit to exit)\n", cliToolVersion)
	return replLoop(ln.Prompt, session, os.Stdout, os.Stderr, func(entry string) {
		ln.AppendHistory(strings.ReplaceAll(entry, "\n", " "))
	})
}

// replLoop evaluates entries until input ends or :quit is entered.
func replLoop(read func(prompt string) (string, error), session *interpreter.Session, out, errOut io.Writer, remember func(string)) int {
	for {
		entry, ok := readEntry(read)
		if !ok {
			fmt.Fprintln(out)
			return 0
		}
		trimmed := strings.TrimSpace(entry)
		switch {
		case trimmed == "":
			continue
		case trimmed == ":quit":
			return 0
		case trimmed == ":bindings":
			values := session.Values()
			for _, name := range session.Bindings() {
				fmt.Fprintf(out, "%s = %s\n", name, runtime.Format(values[name]))
			}
			continue
		case strings.HasPrefix(trimmed, ":"):
			fmt.Fprintln(out, "unknown command. Type :quit to exit.")
			continue
		}

		val, _, err := session.Eval(entry)
		remember(entry)
		if err != nil {
			fmt.Fprintln(errOut, err.Error())
			continue
		}
		if _, none := val.(runtime.NoValue); !none {
			fmt.Fprintln(out, runtime.Format(val))
		}
	}
}

// readEntry keeps reading lines while brackets are left open. An aborted
// prompt discards the partial entry.
func readEntry(read func(prompt string) (string, error)) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := read(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if openBrackets(b.String()) <= 0 {
			return b.String(), true
		}
	}
}

func openBrackets(src string) int {
	depth := 0
	for _, r := range src {
		switch r {
		case '{', '[', '(':
			depth++
		case '}', ']', ')':
			depth--
		}
	}
	return depth
}
