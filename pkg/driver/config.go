package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/turbomaze/raptor-lang/pkg/interpreter"
	"github.com/turbomaze/raptor-lang/pkg/stdlib"
)

// ConfigFileName is the per-project settings file searched for next to a
// program.
const ConfigFileName = "raptor.yml"

var ErrConfigNotFound = errors.New(ConfigFileName + " not found")

// Default limits used when no config sets them.
const (
	DefaultCodeLimit    = 1000
	DefaultComputeLimit = 100000
)

// Config represents the parsed contents of raptor.yml.
type Config struct {
	// Path is empty for the built-in defaults.
	Path    string
	Library string
	Limits  interpreter.Limits
	Timeout time.Duration
	// Stats controls whether runs print their stats report.
	Stats bool
}

type configFile struct {
	Library string       `yaml:"library"`
	Limits  *limitsEntry `yaml:"limits"`
	Timeout string       `yaml:"timeout"`
	Stats   *bool        `yaml:"stats"`
}

type limitsEntry struct {
	Code    *int `yaml:"code"`
	Compute *int `yaml:"compute"`
}

// ValidationError aggregates config validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

func DefaultConfig() *Config {
	return &Config{
		Library: "std",
		Limits:  interpreter.Limits{Code: DefaultCodeLimit, Compute: DefaultComputeLimit},
		Stats:   true,
	}
}

// LoadConfig parses raptor.yml from disk. Fields left out keep their
// defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			cfg := DefaultConfig()
			cfg.Path = absPath
			return cfg, nil
		}
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}
	return raw.toConfig(absPath)
}

func (raw configFile) toConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.Path = path
	if raw.Stats != nil {
		cfg.Stats = *raw.Stats
	}

	var errs ValidationError
	if lib := strings.TrimSpace(raw.Library); lib != "" {
		if _, err := stdlib.Lookup(lib); err != nil {
			errs.Issues = append(errs.Issues, fmt.Sprintf("library: %v", err))
		}
		cfg.Library = lib
	}
	if raw.Limits != nil {
		if raw.Limits.Code != nil {
			if *raw.Limits.Code < 0 {
				errs.Issues = append(errs.Issues, "limits.code must not be negative")
			}
			cfg.Limits.Code = *raw.Limits.Code
		}
		if raw.Limits.Compute != nil {
			if *raw.Limits.Compute < 0 {
				errs.Issues = append(errs.Issues, "limits.compute must not be negative")
			}
			cfg.Limits.Compute = *raw.Limits.Compute
		}
	}
	if timeout := strings.TrimSpace(raw.Timeout); timeout != "" {
		d, err := time.ParseDuration(timeout)
		switch {
		case err != nil:
			errs.Issues = append(errs.Issues, fmt.Sprintf("timeout %q is not a duration", timeout))
		case d < 0:
			errs.Issues = append(errs.Issues, "timeout must not be negative")
		default:
			cfg.Timeout = d
		}
	}

	if len(errs.Issues) > 0 {
		return nil, &errs
	}
	return cfg, nil
}

// FindConfig walks up from start to the nearest raptor.yml.
func FindConfig(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve start directory %q: %w", start, err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	origin := dir
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found from %s upwards: %w", ConfigFileName, origin, ErrConfigNotFound)
		}
		dir = parent
	}
}

// ResolveConfig loads explicit when set, otherwise the nearest raptor.yml
// above start, otherwise the defaults.
func ResolveConfig(explicit, start string) (*Config, error) {
	if explicit != "" {
		return LoadConfig(explicit)
	}
	if start == "" {
		return DefaultConfig(), nil
	}
	path, err := FindConfig(start)
	if err != nil {
		if errors.Is(err, ErrConfigNotFound) {
			return DefaultConfig(), nil
		}
		return nil, err
	}
	return LoadConfig(path)
}
