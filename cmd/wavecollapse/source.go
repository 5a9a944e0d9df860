package main

import (
	"fmt"

	"github.com/samdwyer/wavecollapse/internal/config"
	"github.com/samdwyer/wavecollapse/internal/gamedata"
	"github.com/samdwyer/wavecollapse/internal/logger"
	"github.com/samdwyer/wavecollapse/internal/rules"
	"github.com/samdwyer/wavecollapse/internal/ui"
	"github.com/samdwyer/wavecollapse/internal/wfc"
)

// loadedRules is a built ruleset with the palette used to draw it.
type loadedRules struct {
	name    string
	ruleset *wfc.Ruleset
	palette ui.Palette
}

// sourceFor picks the rule file when one is configured, else the preset.
func sourceFor(g config.GeneratorConfig) (rules.Source, ui.Palette, error) {
	if g.Rules != "" {
		return rules.FileSource{Path: g.Rules}, ui.IDPalette{}, nil
	}
	registry, err := gamedata.LoadPresetRegistry()
	if err != nil {
		return nil, nil, err
	}
	preset, err := registry.Lookup(g.Preset)
	if err != nil {
		return nil, nil, err
	}
	return rules.PresetSource{Preset: preset}, preset, nil
}

func loadRules(g config.GeneratorConfig) (*loadedRules, error) {
	src, palette, err := sourceFor(g)
	if err != nil {
		return nil, err
	}
	res, err := src.Load()
	if err != nil {
		return nil, err
	}
	rs, err := res.Ruleset()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.Name(), err)
	}
	if asym := rs.Asymmetries(); len(asym) > 0 {
		logger.Warning("Rules are not symmetric, run check for details",
			"source", src.Name(),
			"count", len(asym),
		)
	}
	return &loadedRules{name: src.Name(), ruleset: rs, palette: palette}, nil
}
