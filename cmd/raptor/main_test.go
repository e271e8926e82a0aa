package main

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/turbomaze/raptor-lang/pkg/interpreter"
)

func writeProgram(t *testing.T, dir, name, source string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestRunPrintsResultAndStats(t *testing.T) {
	path := writeProgram(t, t.TempDir(), "main.rap", "log -> 1 -> true\nreturn 3\n")
	code, stdout, stderr := captureCLI(t, []string{"run", path})
	if code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr %q)", code, stderr)
	}
	for _, want := range []string{"1 true\n", "3\n", "=== RUNTIME STATS ===\n", `"steps":`} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("stdout missing %q:\n%s", want, stdout)
		}
	}
}

func TestRunShortcutAcceptsSourceFile(t *testing.T) {
	path := writeProgram(t, t.TempDir(), "main.rap", "return 1 + 1\n")
	code, stdout, _ := captureCLI(t, []string{path})
	if code != 0 || !strings.HasPrefix(stdout, "2\n") {
		t.Fatalf("unexpected result %d %q", code, stdout)
	}
	code, stdout, _ = captureCLI(t, []string{"--stats=false", path})
	if code != 0 || stdout != "2\n" {
		t.Fatalf("expected run flags to be accepted, got %d %q", code, stdout)
	}
}

func TestRunStatsQuery(t *testing.T) {
	path := writeProgram(t, t.TempDir(), "main.rap", "return 1\n")
	code, stdout, stderr := captureCLI(t, []string{"run", "--stats-query", ".steps", path})
	if code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr %q)", code, stderr)
	}
	if !strings.HasSuffix(stdout, "=== RUNTIME STATS ===\n3\n") {
		t.Fatalf("unexpected stdout %q", stdout)
	}

	code, stdout, _ = captureCLI(t, []string{"run", "--stats=false", path})
	if code != 0 || stdout != "1\n" {
		t.Fatalf("expected only the result, got %d %q", code, stdout)
	}
}

func TestRunReportsErrors(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name    string
		source  string
		args    []string
		heading string
		message string
	}{
		{"runtime", "return true + 1\n", nil, "=== RUNTIME ERROR ===", `expected the first argument of the "+" function to be of type "number".`},
		{"compute", "f => n {\n  return f -> n\n}\nreturn f -> 1\n", []string{"--compute", "50"}, "=== LIMIT ERROR ===", "too much compute"},
		{"code", "return [1, 2, 3]\n", []string{"--code", "3"}, "=== LIMIT ERROR ===", "too much code"},
		{"syntax", "a = 1\nb = = 2\n", nil, "=== SYNTAX ERROR ===", "syntax error on line 2 column 2"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeProgram(t, dir, tc.name+".rap", tc.source)
			args := append([]string{"run"}, tc.args...)
			code, stdout, _ := captureCLI(t, append(args, path))
			if code != 1 {
				t.Fatalf("expected exit 1, got %d", code)
			}
			if !strings.HasPrefix(stdout, tc.heading+"\n"+tc.message+"\n") {
				t.Fatalf("unexpected stdout %q", stdout)
			}
		})
	}
}

func TestRunUsesNearestConfig(t *testing.T) {
	root := t.TempDir()
	writeProgram(t, root, "raptor.yml", "limits:\n  code: 3\nstats: false\n")
	path := writeProgram(t, root, filepath.Join("src", "main.rap"), "return [1, 2, 3]\n")

	code, stdout, _ := captureCLI(t, []string{"run", path})
	if code != 1 || !strings.Contains(stdout, "too much code") {
		t.Fatalf("expected the config's code limit to apply, got %d %q", code, stdout)
	}

	code, stdout, _ = captureCLI(t, []string{"run", "--code", "0", path})
	if code != 0 || stdout != "[1, 2, 3]\n" {
		t.Fatalf("expected flags to override the config, got %d %q", code, stdout)
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	path := writeProgram(t, t.TempDir(), "main.rap", "return 1\n")
	code, _, stderr := captureCLI(t, []string{"run", "--library", "fancy", path})
	if code != 1 || !strings.Contains(stderr, `unknown library "fancy"`) {
		t.Fatalf("expected an unknown library error, got %d %q", code, stderr)
	}
	code, _, stderr = captureCLI(t, []string{"run", filepath.Join(t.TempDir(), "missing.rap")})
	if code != 1 || !strings.Contains(stderr, "failed to load source") {
		t.Fatalf("expected a load error, got %d %q", code, stderr)
	}
	code, _, _ = captureCLI(t, []string{"run"})
	if code != 1 {
		t.Fatalf("expected exit 1 without a file, got %d", code)
	}
}

func TestRunVerboseLogs(t *testing.T) {
	path := writeProgram(t, t.TempDir(), "main.rap", "return 1\n")
	code, _, stderr := captureCLI(t, []string{"run", "--verbose", path})
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(stderr, "raptor: source ") || !strings.Contains(stderr, "raptor: finished: steps=3") {
		t.Fatalf("unexpected trace %q", stderr)
	}
}

func TestRunFromGitRepository(t *testing.T) {
	dir := t.TempDir()
	writeProgram(t, dir, filepath.Join("programs", "main.rap"), "return 10\n")
	first := initGitRepo(t, dir)
	writeProgram(t, dir, filepath.Join("programs", "main.rap"), "return 20\n")
	initGitRepo(t, dir)

	code, stdout, stderr := captureCLI(t, []string{"run", "--stats=false", "--repo", dir, "programs/main.rap"})
	if code != 0 || stdout != "20\n" {
		t.Fatalf("unexpected HEAD run %d %q (stderr %q)", code, stdout, stderr)
	}
	code, stdout, stderr = captureCLI(t, []string{"run", "--stats=false", "--repo", dir, "--rev", first, "programs/main.rap"})
	if code != 0 || stdout != "10\n" {
		t.Fatalf("unexpected pinned run %d %q (stderr %q)", code, stdout, stderr)
	}
}

func TestParseCommand(t *testing.T) {
	path := writeProgram(t, t.TempDir(), "main.rap", "return 1 + 2\n")
	code, stdout, _ := captureCLI(t, []string{"parse", "--json", path})
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	for _, want := range []string{`"type": "Program"`, `"type": "Return"`, `"name": "+"`} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("json dump missing %s:\n%s", want, stdout)
		}
	}

	code, stdout, _ = captureCLI(t, []string{"parse", path})
	if code != 0 || !strings.Contains(stdout, "ast.Return") || !strings.Contains(stdout, "ast.NumberLiteral") {
		t.Fatalf("unexpected dump %d:\n%s", code, stdout)
	}

	code, stdout, _ = captureCLI(t, []string{"parse", "--grammar"})
	if code != 0 || !strings.HasPrefix(stdout, "program = [ extendedSpace ], statements, [ extendedSpace ]\n") {
		t.Fatalf("unexpected grammar listing %d:\n%s", code, stdout)
	}
}

func TestVersion(t *testing.T) {
	code, stdout, _ := captureCLI(t, []string{"version"})
	if code != 0 || strings.TrimSpace(stdout) != cliToolVersion {
		t.Fatalf("unexpected version output %d %q", code, stdout)
	}
}

func TestReplLoop(t *testing.T) {
	interp, err := newInterpreter("std")
	if err != nil {
		t.Fatalf("newInterpreter: %v", err)
	}
	session := interp.NewSession(interpreter.Limits{Code: 1000, Compute: 1000})
	lines := []string{
		"inc => x {",
		"  return x + 1",
		"}",
		"return inc -> 2",
		":bindings",
		"return nope",
		":what",
		":quit",
		"return 99",
	}
	var prompts []string
	read := func(prompt string) (string, error) {
		prompts = append(prompts, prompt)
		if len(lines) == 0 {
			return "", io.EOF
		}
		line := lines[0]
		lines = lines[1:]
		return line, nil
	}
	var out, errOut bytes.Buffer
	var history []string
	code := replLoop(read, session, &out, &errOut, func(entry string) { history = append(history, entry) })
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if got := out.String(); got != "3\ninc = <function inc/1>\nunknown command. Type :quit to exit.\n" {
		t.Fatalf("unexpected output %q", got)
	}
	if !strings.Contains(errOut.String(), `identifier "nope"`) {
		t.Fatalf("unexpected errors %q", errOut.String())
	}
	if len(lines) != 1 {
		t.Fatalf(":quit should stop reading, %d lines left", len(lines))
	}
	if prompts[1] != promptCont || prompts[3] != promptMain {
		t.Fatalf("unexpected prompts %q", prompts)
	}
	if len(history) != 3 || !strings.Contains(history[0], "\n") {
		t.Fatalf("unexpected history %q", history)
	}
}

func TestReplLoopEndsOnEOF(t *testing.T) {
	interp, err := newInterpreter("std")
	if err != nil {
		t.Fatalf("newInterpreter: %v", err)
	}
	read := func(string) (string, error) { return "", io.EOF }
	var out bytes.Buffer
	if code := replLoop(read, interp.NewSession(interpreter.Unlimited()), &out, io.Discard, func(string) {}); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if out.String() != "\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func initGitRepo(t *testing.T, dir string) string {
	t.Helper()
	repo, err := git.PlainOpen(dir)
	if err != nil {
		repo, err = git.PlainInit(dir, false)
		if err != nil {
			t.Fatalf("PlainInit: %v", err)
		}
	}
	worktree, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	if err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == filepath.Join(dir, ".git") {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if _, err := worktree.Add(filepath.ToSlash(rel)); err != nil {
			return err
		}
		return nil
	}); err != nil {
		t.Fatalf("stage files: %v", err)
	}
	hash, err := worktree.Commit("update", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Raptor CLI",
			Email: "raptor@example.com",
			When:  time.Now(),
		},
	})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	return hash.String()
}

func captureCLI(t *testing.T, args []string) (int, string, string) {
	t.Helper()

	stdout := os.Stdout
	stderr := os.Stderr

	rOut, wOut, err := os.Pipe()
	if err != nil {
		t.Fatalf("stdout pipe: %v", err)
	}
	rErr, wErr, err := os.Pipe()
	if err != nil {
		t.Fatalf("stderr pipe: %v", err)
	}

	os.Stdout = wOut
	os.Stderr = wErr

	code := run(args)

	if err := wOut.Close(); err != nil {
		t.Fatalf("stdout close: %v", err)
	}
	if err := wErr.Close(); err != nil {
		t.Fatalf("stderr close: %v", err)
	}

	os.Stdout = stdout
	os.Stderr = stderr

	outBytes, err := io.ReadAll(rOut)
	if err != nil {
		t.Fatalf("stdout read: %v", err)
	}
	errBytes, err := io.ReadAll(rErr)
	if err != nil {
		t.Fatalf("stderr read: %v", err)
	}
	rOut.Close()
	rErr.Close()
	return code, string(outBytes), string(errBytes)
}
