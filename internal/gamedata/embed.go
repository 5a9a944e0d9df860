// Package gamedata provides the embedded rule presets and their palettes.
package gamedata

import "embed"

// dataFS embeds the preset catalog and rule files at build time.
//
//go:embed *.json *.rules
var dataFS embed.FS
