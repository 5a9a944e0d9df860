package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wavecollapse.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Generator.Rows != 20 || config.Generator.Cols != 40 {
		t.Errorf("default grid = %dx%d, want 20x40", config.Generator.Rows, config.Generator.Cols)
	}
	if config.Generator.Preset != "terrain" {
		t.Errorf("default preset = %q", config.Generator.Preset)
	}
	if config.Generator.Attempts != 1 {
		t.Errorf("default attempts = %d", config.Generator.Attempts)
	}
	if err := config.Generator.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
	if config.Logging.Level != "WARN" {
		t.Errorf("default log level = %q", config.Logging.Level)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	config, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if config.Generator.Rows != DefaultConfig().Generator.Rows {
		t.Errorf("rows = %d, want default", config.Generator.Rows)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, `
generator:
  rows: 8
  cols: 12
  seed: 42
  strategy: support
  backtrack_depth: 16
logging:
  level: DEBUG
`)

	config, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	g := config.Generator
	if g.Rows != 8 || g.Cols != 12 || g.Seed != 42 {
		t.Errorf("generator = %+v", g)
	}
	if g.Strategy != "support" || g.BacktrackDepth != 16 {
		t.Errorf("strategy = %q, depth = %d", g.Strategy, g.BacktrackDepth)
	}
	// Keys left out keep their defaults.
	if g.Preset != "terrain" || g.Attempts != 1 {
		t.Errorf("preset = %q, attempts = %d; want defaults", g.Preset, g.Attempts)
	}
	if config.Logging.Level != "DEBUG" {
		t.Errorf("log level = %q", config.Logging.Level)
	}
	if !config.Logging.ConsoleEnabled {
		t.Error("console logging should stay enabled when not mentioned")
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := writeConfig(t, "generator: [not, a, map]\n")
	if _, err := Load(path); err == nil {
		t.Error("Load should fail on malformed YAML")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("WFC_ROWS", "5")
	t.Setenv("WFC_COLS", "6")
	t.Setenv("WFC_SEED", "-9")
	t.Setenv("WFC_RULES", "tiles.rules")
	t.Setenv("WFC_PRESET", "roads")
	t.Setenv("WFC_STRATEGY", "random")
	t.Setenv("WFC_ATTEMPTS", "4")
	t.Setenv("LOG_LEVEL", "ERROR")

	config, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	g := config.Generator
	if g.Rows != 5 || g.Cols != 6 || g.Seed != -9 || g.Attempts != 4 {
		t.Errorf("numeric overrides not applied: %+v", g)
	}
	if g.Rules != "tiles.rules" || g.Preset != "roads" || g.Strategy != "random" {
		t.Errorf("string overrides not applied: %+v", g)
	}
	if config.Logging.Level != "ERROR" {
		t.Errorf("log level = %q", config.Logging.Level)
	}
}

func TestEnvOverridesRejectGarbage(t *testing.T) {
	t.Setenv("WFC_ROWS", "many")
	t.Setenv("WFC_SEED", "0x")

	_, err := Load("")
	if err == nil {
		t.Fatal("Load should fail on non-numeric overrides")
	}
	for _, name := range []string{"WFC_ROWS", "WFC_SEED"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q should mention %s", err, name)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GeneratorConfig)
		want   string
	}{
		{"zero rows", func(g *GeneratorConfig) { g.Rows = 0 }, "at least 1x1"},
		{"zero attempts", func(g *GeneratorConfig) { g.Attempts = 0 }, "attempts"},
		{"negative depth", func(g *GeneratorConfig) { g.BacktrackDepth = -1 }, "negative"},
		{"no source", func(g *GeneratorConfig) { g.Preset = "" }, "rules or preset"},
		{"bad strategy", func(g *GeneratorConfig) { g.Strategy = "greedy" }, "greedy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := DefaultConfig().Generator
			tt.mutate(&g)
			err := g.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.want)
			}
		})
	}
}

func TestOptions(t *testing.T) {
	g := DefaultConfig().Generator
	g.Seed = 7

	withSeed, err := g.Options(true)
	if err != nil {
		t.Fatal(err)
	}
	withoutSeed, err := g.Options(false)
	if err != nil {
		t.Fatal(err)
	}
	if len(withSeed) != len(withoutSeed)+1 {
		t.Errorf("seed option count: %d vs %d", len(withSeed), len(withoutSeed))
	}

	g.Strategy = "nope"
	if _, err := g.Options(true); err == nil {
		t.Error("Options should reject an unknown strategy")
	}
}
