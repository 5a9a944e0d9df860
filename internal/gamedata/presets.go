package gamedata

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// TileStyle describes how one tile of a preset is drawn.
type TileStyle struct {
	Name  string `json:"name"`  // Display name (e.g., "Sand")
	Glyph string `json:"glyph"` // Single character for rendering (e.g., ".")
	Color string `json:"color"` // Hex color code (e.g., "#FDE68A")
}

// GlyphRune returns the glyph as a rune for rendering.
func (s TileStyle) GlyphRune() rune {
	r, size := utf8.DecodeRuneInString(s.Glyph)
	if size == 0 || r == utf8.RuneError {
		return '?'
	}
	return r
}

// TCellColor returns the color as a tcell.Color.
func (s TileStyle) TCellColor() tcell.Color {
	color, err := ParseHexColor(s.Color)
	if err != nil {
		return tcell.ColorWhite
	}
	return color
}

// PresetDef is a named rule file plus the palette for its tiles. Palette
// entries are indexed by tile ID.
type PresetDef struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	File        string      `json:"file"`
	Tiles       []TileStyle `json:"tiles"`
}

// Rules returns the preset's rule file contents.
func (p *PresetDef) Rules() ([]byte, error) {
	return ReadFile(p.File)
}

// Style returns the palette entry for a tile ID. Unknown IDs get a
// placeholder so a short palette never breaks rendering.
func (p *PresetDef) Style(id int) TileStyle {
	if id < 0 || id >= len(p.Tiles) {
		return TileStyle{Name: "unknown", Glyph: "?", Color: "#FF00FF"}
	}
	return p.Tiles[id]
}

// PresetsFile represents the structure of presets.json.
type PresetsFile struct {
	Presets []PresetDef `json:"presets"`
}

// LoadPresets loads preset definitions from the embedded presets.json file.
func LoadPresets() ([]PresetDef, error) {
	file, err := Load[PresetsFile]("presets.json")
	if err != nil {
		return nil, err
	}
	return file.Presets, nil
}
