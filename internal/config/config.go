package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/fmtlint/fmtlint/internal/types"
)

// FileName is the per-directory configuration file fmtlint discovers.
const FileName = ".fmtlint.yaml"

// Formatter describes the external formatter invocation.
type Formatter struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args,omitempty"`
}

// Config is the effective configuration for one checked file.
type Config struct {
	Name       string         `yaml:"name"`
	Severity   types.Severity `yaml:"severity"`
	Extensions []string       `yaml:"extensions"`
	Ignore     []string       `yaml:"ignore,omitempty"`
	Formatter  Formatter      `yaml:"formatter"`

	// Options is a free-form tree of formatter-specific settings. It is
	// merged hierarchically like the rest of the config and rendered into
	// command-line flags by the runner.
	Options map[string]any `yaml:"options,omitempty"`
}

// Default returns the configuration used when no config file is found.
func Default() *Config {
	return &Config{
		Name:       "fmtlint",
		Severity:   types.SeverityWarning,
		Extensions: []string{".go"},
		Formatter:  Formatter{Command: "gofmt"},
	}
}

// LoadTree reads one configuration file into a raw tree. A missing file
// yields a nil tree and no error; a malformed file yields an error so the
// caller can decide whether to treat it as fatal or as "no override".
func LoadTree(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return tree, nil
}

// Discover returns the configuration files that apply to dir, ordered from
// the filesystem root downward so that nearer files merge over farther ones.
func Discover(dir string) []string {
	var found []string
	for {
		candidate := filepath.Join(dir, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			found = append(found, candidate)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	// walked bottom-up; reverse to root-first
	for i, j := 0, len(found)-1; i < j; i, j = i+1, j-1 {
		found[i], found[j] = found[j], found[i]
	}
	return found
}

// fromTree decodes a merged raw tree onto the defaults. Keys absent from the
// tree keep their default values.
func fromTree(tree any) (*Config, error) {
	cfg := Default()
	if tree == nil {
		return cfg, nil
	}
	data, err := yaml.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("encoding merged config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decoding merged config: %w", err)
	}
	return cfg, nil
}

// Resolver computes and caches the effective configuration per directory.
// Safe for concurrent use; the engine calls it from parallel file workers.
type Resolver struct {
	logger    *zap.Logger
	explicit  string
	overrides map[string]any

	mu    sync.Mutex
	byDir map[string]*Config
}

// NewResolver builds a resolver. When explicit is non-empty, discovery is
// skipped and only that file (plus overrides) applies. overrides is the
// inline tree from CLI flags and merges last, winning every conflict.
func NewResolver(logger *zap.Logger, explicit string, overrides map[string]any) *Resolver {
	return &Resolver{
		logger:    logger,
		explicit:  explicit,
		overrides: overrides,
		byDir:     make(map[string]*Config),
	}
}

// ForFile returns the effective configuration for path.
func (r *Resolver) ForFile(path string) (*Config, error) {
	return r.ForDir(filepath.Dir(path))
}

// ForDir returns the effective configuration governing files in dir.
func (r *Resolver) ForDir(dir string) (*Config, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}
	dir = abs

	r.mu.Lock()
	defer r.mu.Unlock()

	if cfg, ok := r.byDir[dir]; ok {
		return cfg, nil
	}

	cfg, err := r.resolve(dir)
	if err != nil {
		return nil, err
	}
	r.byDir[dir] = cfg
	return cfg, nil
}

func (r *Resolver) resolve(dir string) (*Config, error) {
	var tree any

	if r.explicit != "" {
		t, err := LoadTree(r.explicit)
		if err != nil {
			return nil, err
		}
		if t == nil {
			return nil, fmt.Errorf("config file not found: %s", r.explicit)
		}
		tree = Merge(tree, t)
	} else {
		for _, path := range Discover(dir) {
			t, err := LoadTree(path)
			if err != nil {
				// A broken discovered config must not take the whole run
				// down; it contributes nothing.
				if r.logger != nil {
					r.logger.Warn("Skipping malformed config file", zap.String("path", path), zap.Error(err))
				}
				continue
			}
			tree = Merge(tree, t)
		}
	}

	if len(r.overrides) > 0 {
		tree = Merge(tree, r.overrides)
	}

	return fromTree(tree)
}
