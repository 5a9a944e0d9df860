// Package config loads generator and logging settings from YAML with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/samdwyer/wavecollapse/internal/logger"
	"github.com/samdwyer/wavecollapse/internal/wfc"
)

// Config is the whole configuration file.
type Config struct {
	Generator GeneratorConfig `yaml:"generator"`
	Logging   logger.Config   `yaml:"logging"`
}

// GeneratorConfig controls how grids are generated.
type GeneratorConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`

	// Seed for the random source. Zero means no random source: ties go to
	// the lowest index and cells collapse to their lowest tile.
	Seed int64 `yaml:"seed"`

	// Rules is a rule file path. When empty, Preset names an embedded one.
	Rules  string `yaml:"rules"`
	Preset string `yaml:"preset"`

	// Strategy is one of auto, lowest, random or support.
	Strategy string `yaml:"strategy"`

	// Attempts is the number of seeds raced in parallel; each attempt i
	// uses Seed+i.
	Attempts int `yaml:"attempts"`

	// BacktrackDepth of zero disables backtracking.
	BacktrackDepth int `yaml:"backtrack_depth"`
	MaxRestores    int `yaml:"max_restores"`

	// MaxIterations of zero means no limit.
	MaxIterations int `yaml:"max_iterations"`

	// StepDelayMS is the pause between steps when the viewer auto-runs.
	StepDelayMS int `yaml:"step_delay_ms"`
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Generator: GeneratorConfig{
			Rows:        20,
			Cols:        40,
			Preset:      "terrain",
			Strategy:    "auto",
			Attempts:    1,
			StepDelayMS: 30,
		},
		Logging: logger.DefaultConfig(),
	}
}

// Load reads a YAML file over the defaults and then applies environment
// overrides. A missing file is not an error; the defaults are used.
func Load(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			logger.Debug("Config file not found, using defaults", "path", path)
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := config.Generator.ApplyEnv(); err != nil {
		return nil, err
	}
	config.Logging = config.Logging.ApplyEnv()

	return config, nil
}

// ApplyEnv applies WFC_* environment variable overrides.
func (g *GeneratorConfig) ApplyEnv() error {
	var errs []error

	envInt := func(name string, dst *int) {
		if v := os.Getenv(name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				return
			}
			*dst = n
		}
	}

	envInt("WFC_ROWS", &g.Rows)
	envInt("WFC_COLS", &g.Cols)
	envInt("WFC_ATTEMPTS", &g.Attempts)

	if v := os.Getenv("WFC_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("WFC_SEED: %w", err))
		} else {
			g.Seed = seed
		}
	}
	if v := os.Getenv("WFC_RULES"); v != "" {
		g.Rules = v
	}
	if v := os.Getenv("WFC_PRESET"); v != "" {
		g.Preset = v
	}
	if v := os.Getenv("WFC_STRATEGY"); v != "" {
		g.Strategy = v
	}

	return errors.Join(errs...)
}

// Validate reports every setting that cannot produce a run.
func (g *GeneratorConfig) Validate() error {
	var errs []error
	if g.Rows < 1 || g.Cols < 1 {
		errs = append(errs, fmt.Errorf("grid must be at least 1x1, got %dx%d", g.Rows, g.Cols))
	}
	if g.Attempts < 1 {
		errs = append(errs, fmt.Errorf("attempts must be at least 1, got %d", g.Attempts))
	}
	if g.BacktrackDepth < 0 || g.MaxRestores < 0 || g.MaxIterations < 0 {
		errs = append(errs, errors.New("backtrack_depth, max_restores and max_iterations cannot be negative"))
	}
	if g.Rules == "" && g.Preset == "" {
		errs = append(errs, errors.New("either rules or preset must be set"))
	}
	if _, err := wfc.ParseStrategy(g.Strategy); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Options translates the settings into solver options. The seed is left
// out when Race supplies one per attempt.
func (g *GeneratorConfig) Options(withSeed bool) ([]wfc.Option, error) {
	strategy, err := wfc.ParseStrategy(g.Strategy)
	if err != nil {
		return nil, err
	}
	opts := []wfc.Option{
		wfc.WithStrategy(strategy),
		wfc.WithBacktracking(g.BacktrackDepth, g.MaxRestores),
		wfc.WithMaxIterations(g.MaxIterations),
	}
	if withSeed && g.Seed != 0 {
		opts = append(opts, wfc.WithSeed(g.Seed))
	}
	return opts, nil
}
