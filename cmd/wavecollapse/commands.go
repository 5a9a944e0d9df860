package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/samdwyer/wavecollapse/internal/config"
	"github.com/samdwyer/wavecollapse/internal/logger"
	"github.com/samdwyer/wavecollapse/internal/telemetry"
)

// app is the state shared by every command of one invocation.
type app struct {
	configPath string
	cfg        *config.Config
	shutdown   func(context.Context) error
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "wavecollapse",
		Short: "Generate tile grids with wave function collapse",
		Long: `wavecollapse fills a grid with tiles so that every pair of neighbors
satisfies a set of adjacency rules, using the wave function collapse
algorithm. Rules come from a [TILE_n] rule file or an embedded preset.`,
		SilenceUsage:       true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "wavecollapse.yaml", "YAML config file")

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Solve a grid and print it",
		Args:  cobra.NoArgs,
		RunE:  a.runGenerate,
	}
	addGeneratorFlags(generateCmd)
	generateCmd.Flags().String("format", "glyphs", "output format: glyphs or ids")

	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "Step through a solve interactively in the terminal",
		Long: `view draws the grid as it collapses. Resolved cells show their tile and
unresolved cells show how many tiles they could still become.

Keys: space steps once, enter runs, esc pauses, r resets with the next
seed and q quits.`,
		Args: cobra.NoArgs,
		RunE: a.runView,
	}
	addGeneratorFlags(viewCmd)
	viewCmd.Flags().Duration("delay", 0, "pause between steps while running (e.g. 50ms)")

	checkCmd := &cobra.Command{
		Use:   "check [rules-file|-]",
		Short: "Parse a rule file and report problems",
		Long: `check parses a rule file, or stdin when given "-", and reports skipped
lines and asymmetric rules. With no argument it checks the configured
rule file or preset. It exits non-zero when anything is reported.`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.runCheck,
	}
	checkCmd.Flags().String("preset", "", "check an embedded preset instead of a file")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "List the embedded rule presets",
		Args:  cobra.NoArgs,
		RunE:  a.runPresets,
	}

	rootCmd.AddCommand(generateCmd, viewCmd, checkCmd, presetsCmd)
	return rootCmd
}

func addGeneratorFlags(c *cobra.Command) {
	f := c.Flags()
	f.Int("rows", 0, "grid rows")
	f.Int("cols", 0, "grid columns")
	f.Int64("seed", 0, "random seed; 0 collapses deterministically")
	f.String("rules", "", "rule file path")
	f.String("preset", "", "embedded preset (see the presets command)")
	f.String("strategy", "", "collapse strategy: auto, lowest, random or support")
	f.Int("attempts", 0, "seeds to race in parallel")
	f.Int("backtrack", 0, "collapse decisions to keep for backtracking; 0 disables")
	f.Int("max-restores", 0, "cap on backtracking restores per run; 0 means no cap")
	f.Int("max-iterations", 0, "cap on iterations per run; 0 means no cap")
}

// generatorConfig returns the configured generator settings with any flags
// the user set applied on top.
func (a *app) generatorConfig(c *cobra.Command) (config.GeneratorConfig, error) {
	g := a.cfg.Generator
	f := c.Flags()

	ints := map[string]*int{
		"rows":           &g.Rows,
		"cols":           &g.Cols,
		"attempts":       &g.Attempts,
		"backtrack":      &g.BacktrackDepth,
		"max-restores":   &g.MaxRestores,
		"max-iterations": &g.MaxIterations,
	}
	for name, dst := range ints {
		if !f.Changed(name) {
			continue
		}
		v, err := f.GetInt(name)
		if err != nil {
			return g, err
		}
		*dst = v
	}

	if f.Changed("seed") {
		seed, err := f.GetInt64("seed")
		if err != nil {
			return g, err
		}
		g.Seed = seed
	}
	if f.Changed("strategy") {
		g.Strategy, _ = f.GetString("strategy")
	}
	// An explicit preset beats a configured rule file, and vice versa.
	if f.Changed("preset") {
		g.Preset, _ = f.GetString("preset")
		g.Rules = ""
	}
	if f.Changed("rules") {
		g.Rules, _ = f.GetString("rules")
	}
	if f.Changed("delay") {
		delay, err := f.GetDuration("delay")
		if err != nil {
			return g, err
		}
		g.StepDelayMS = int(delay / time.Millisecond)
	}

	return g, g.Validate()
}

func (a *app) setup(c *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if err := logger.Initialize(cfg.Logging); err != nil {
		return err
	}
	logger.Debug("Configuration loaded", "path", a.configPath, "command", c.Name())

	if telemetry.Enabled() {
		shutdown, err := telemetry.Setup(c.Context())
		if err != nil {
			logger.Warning("Telemetry setup failed, continuing without traces", "error", err)
		} else {
			a.shutdown = shutdown
		}
	}
	return nil
}

func (a *app) teardown(c *cobra.Command, args []string) error {
	if a.shutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.shutdown(ctx); err != nil {
			logger.Warning("Telemetry shutdown failed", "error", err)
		}
	}
	return logger.Close()
}
