package ui

import "github.com/samdwyer/wavecollapse/internal/gamedata"

// Palette maps tile IDs to glyphs and colors. *gamedata.PresetDef is one.
type Palette interface {
	Style(id int) gamedata.TileStyle
}

// idGlyphs has one symbol per possible tile ID.
const idGlyphs = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ@&"

var idColors = []string{"#E6194B", "#3CB44B", "#FFE119", "#4363D8", "#F58231", "#911EB4", "#46F0F0", "#F032E6"}

// IDPalette draws each tile as its ID in base 36 and beyond, for rule files
// that come without a palette.
type IDPalette struct{}

// Style implements Palette.
func (IDPalette) Style(id int) gamedata.TileStyle {
	if id < 0 || id >= len(idGlyphs) {
		return gamedata.TileStyle{Name: "unknown", Glyph: "?", Color: "#FFFFFF"}
	}
	return gamedata.TileStyle{
		Name:  "tile " + idGlyphs[id:id+1],
		Glyph: idGlyphs[id : id+1],
		Color: idColors[id%len(idColors)],
	}
}
