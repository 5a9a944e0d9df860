package ui

import (
	"bufio"
	"io"
	"strconv"

	"github.com/samdwyer/wavecollapse/internal/wfc"
)

// WriteText writes one line per grid row using each tile's palette glyph.
// Unresolved cells are written as '?'.
func WriteText(w io.Writer, out *wfc.OutputGrid, palette Palette) error {
	if palette == nil {
		palette = IDPalette{}
	}
	bw := bufio.NewWriter(w)
	for row := range out.Rows() {
		for _, tile := range out.Row(row) {
			if tile == wfc.Unresolved {
				bw.WriteRune('?')
				continue
			}
			bw.WriteRune(palette.Style(int(tile)).GlyphRune())
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteIDs writes the numeric tile IDs, space separated, one row per line.
// Unresolved cells are written as -1.
func WriteIDs(w io.Writer, out *wfc.OutputGrid) error {
	bw := bufio.NewWriter(w)
	for row := range out.Rows() {
		for col, tile := range out.Row(row) {
			if col > 0 {
				bw.WriteByte(' ')
			}
			if tile == wfc.Unresolved {
				bw.WriteString("-1")
				continue
			}
			bw.WriteString(strconv.Itoa(int(tile)))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
