package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samdwyer/wavecollapse/internal/config"
	"github.com/samdwyer/wavecollapse/internal/logger"
	"github.com/samdwyer/wavecollapse/internal/ui"
	"github.com/samdwyer/wavecollapse/internal/wfc"
)

func (a *app) runGenerate(c *cobra.Command, args []string) error {
	g, err := a.generatorConfig(c)
	if err != nil {
		return err
	}
	format, _ := c.Flags().GetString("format")
	if format != "glyphs" && format != "ids" {
		return fmt.Errorf("unknown format %q, want glyphs or ids", format)
	}

	loaded, err := loadRules(g)
	if err != nil {
		return err
	}

	s, seed, err := solve(c, g, loaded.ruleset)
	if err != nil {
		if wfc.Failed(err) {
			return fmt.Errorf("no valid %dx%d grid for %s: %w", g.Rows, g.Cols, loaded.name, err)
		}
		return err
	}

	stats := s.Stats()
	logger.Info("Generated grid",
		"source", loaded.name,
		"rows", g.Rows,
		"cols", g.Cols,
		"seed", seed,
		"iterations", stats.Iterations,
		"restores", stats.Restores,
		"duration", stats.Duration,
		"run_id", s.RunID(),
	)

	if format == "ids" {
		return ui.WriteIDs(c.OutOrStdout(), s.Output())
	}
	return ui.WriteText(c.OutOrStdout(), s.Output(), loaded.palette)
}

// solve runs one solver, or races several seeds when more than one attempt
// is configured. It returns the seed that produced the grid.
func solve(c *cobra.Command, g config.GeneratorConfig, rs *wfc.Ruleset) (*wfc.Solver, int64, error) {
	ctx := c.Context()

	if g.Attempts > 1 {
		opts, err := g.Options(false)
		if err != nil {
			return nil, 0, err
		}
		first := g.Seed
		if first == 0 {
			first = wfc.DefaultSeed
		}
		return wfc.Race(ctx, rs, g.Rows, g.Cols, wfc.Seeds(first, g.Attempts), opts...)
	}

	opts, err := g.Options(true)
	if err != nil {
		return nil, 0, err
	}
	s := wfc.NewSolver(opts...)
	s.UseRuleset(rs)
	if err := s.Initialize(g.Rows, g.Cols); err != nil {
		return nil, 0, err
	}
	if _, err := s.Run(ctx); err != nil {
		return nil, 0, err
	}
	return s, g.Seed, nil
}
