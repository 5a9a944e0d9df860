package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/samdwyer/wavecollapse/internal/viewer"
)

func (a *app) runView(c *cobra.Command, args []string) error {
	g, err := a.generatorConfig(c)
	if err != nil {
		return err
	}
	loaded, err := loadRules(g)
	if err != nil {
		return err
	}
	opts, err := g.Options(false)
	if err != nil {
		return err
	}

	v, err := viewer.New(viewer.Config{
		Ruleset:   loaded.ruleset,
		Rows:      g.Rows,
		Cols:      g.Cols,
		Seed:      g.Seed,
		Options:   opts,
		Palette:   loaded.palette,
		StepDelay: time.Duration(g.StepDelayMS) * time.Millisecond,
		Title:     loaded.name,
	})
	if err != nil {
		return err
	}
	return v.Run(c.Context())
}
