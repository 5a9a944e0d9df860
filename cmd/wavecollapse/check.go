package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samdwyer/wavecollapse/internal/gamedata"
	"github.com/samdwyer/wavecollapse/internal/rules"
)

func (a *app) runCheck(c *cobra.Command, args []string) error {
	src, err := a.checkSource(c, args)
	if err != nil {
		return err
	}
	res, err := src.Load()
	if err != nil {
		return err
	}

	out := c.OutOrStdout()
	fmt.Fprintf(out, "%s: %d tiles\n", src.Name(), len(res.Tiles))

	problems := len(res.Diagnostics)
	for _, d := range res.Diagnostics {
		fmt.Fprintf(out, "  %s\n", d)
	}

	rs, err := res.Ruleset()
	if err != nil {
		fmt.Fprintf(out, "  %v\n", err)
		problems++
	} else {
		for _, asym := range rs.Asymmetries() {
			fmt.Fprintf(out, "  asymmetric: %s\n", asym)
			problems++
		}
	}

	if problems > 0 {
		return fmt.Errorf("%s: %d problems found", src.Name(), problems)
	}
	fmt.Fprintln(out, "  ok")
	return nil
}

func (a *app) checkSource(c *cobra.Command, args []string) (rules.Source, error) {
	if len(args) == 1 {
		if args[0] == "-" {
			return rules.ReaderSource{Reader: c.InOrStdin(), Label: "stdin"}, nil
		}
		return rules.FileSource{Path: args[0]}, nil
	}

	if c.Flags().Changed("preset") {
		id, _ := c.Flags().GetString("preset")
		registry, err := gamedata.LoadPresetRegistry()
		if err != nil {
			return nil, err
		}
		preset, err := registry.Lookup(id)
		if err != nil {
			return nil, err
		}
		return rules.PresetSource{Preset: preset}, nil
	}

	src, _, err := sourceFor(a.cfg.Generator)
	return src, err
}
