package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samdwyer/wavecollapse/internal/gamedata"
)

func (a *app) runPresets(c *cobra.Command, args []string) error {
	registry, err := gamedata.LoadPresetRegistry()
	if err != nil {
		return err
	}
	out := c.OutOrStdout()
	for _, id := range registry.IDs() {
		p := registry.GetByID(id)
		glyphs := make([]rune, 0, len(p.Tiles))
		for _, t := range p.Tiles {
			glyphs = append(glyphs, t.GlyphRune())
		}
		fmt.Fprintf(out, "%-10s %2d tiles  %s  %s\n", p.ID, len(p.Tiles), string(glyphs), p.Description)
	}
	return nil
}
