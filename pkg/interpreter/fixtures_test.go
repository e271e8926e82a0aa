package interpreter

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/turbomaze/raptor-lang/pkg/runtime"
)

type fixtureManifest struct {
	Description string `yaml:"description"`
	Source      string `yaml:"source"`
	Limits      Limits `yaml:"limits"`
	Expect      struct {
		Result string   `yaml:"result"`
		Stdout []string `yaml:"stdout"`
		Error  *struct {
			Code    string `yaml:"code"`
			Message string `yaml:"message"`
		} `yaml:"error"`
	} `yaml:"expect"`
}

func readFixture(t *testing.T, path string) fixtureManifest {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture %s: %v", path, err)
	}
	var manifest fixtureManifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&manifest); err != nil {
		t.Fatalf("parse fixture %s: %v", path, err)
	}
	if strings.TrimSpace(manifest.Source) == "" {
		t.Fatalf("fixture %s has no source", path)
	}
	return manifest
}

// printBuiltins records log output as lines so fixtures can assert on it.
func printBuiltins(stdout *[]string) map[string]runtime.NativeFunc {
	return map[string]runtime.NativeFunc{
		"log": func(args []runtime.Value) (runtime.Value, error) {
			parts := make([]string, len(args))
			for idx, arg := range args {
				parts[idx] = runtime.Format(arg)
			}
			*stdout = append(*stdout, strings.Join(parts, " "))
			return nil, nil
		},
	}
}

func TestFixtures(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "fixtures", "*.yml"))
	if err != nil {
		t.Fatalf("glob fixtures: %v", err)
	}
	if len(paths) == 0 {
		t.Fatalf("no fixtures found")
	}
	for _, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), ".yml")
		t.Run(name, func(t *testing.T) {
			manifest := readFixture(t, path)
			var stdout []string
			interp := newTestInterpreter(t, printBuiltins(&stdout))
			result, err := interp.Interpret(manifest.Source, manifest.Limits, nil)

			if want := manifest.Expect.Error; want != nil {
				var ierr *Error
				if !errors.As(err, &ierr) {
					t.Fatalf("expected %s error, got %v", want.Code, err)
				}
				if ierr.Code.String() != want.Code {
					t.Fatalf("expected %s error, got %s: %v", want.Code, ierr.Code, err)
				}
				if want.Message != "" && ierr.Message != want.Message {
					t.Fatalf("message = %q, want %q", ierr.Message, want.Message)
				}
			} else {
				if err != nil {
					t.Fatalf("evaluation error: %v", err)
				}
				if got := runtime.Format(result); got != manifest.Expect.Result {
					t.Fatalf("result = %s, want %s", got, manifest.Expect.Result)
				}
			}
			if len(manifest.Expect.Stdout) > 0 && strings.Join(stdout, "\n") != strings.Join(manifest.Expect.Stdout, "\n") {
				t.Fatalf("stdout = %q, want %q", stdout, manifest.Expect.Stdout)
			}
		})
	}
}
