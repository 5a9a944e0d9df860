package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/wavecollapse/internal/wfc"
)

var (
	pendingStyle      = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	contradictedStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorRed).Bold(true)
	statusStyle       = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

// Renderer draws a solver's wave to the screen.
type Renderer struct {
	screen  *Screen
	palette Palette
}

// NewRenderer creates a renderer for the given screen and palette.
func NewRenderer(screen *Screen, palette Palette) *Renderer {
	if palette == nil {
		palette = IDPalette{}
	}
	return &Renderer{screen: screen, palette: palette}
}

// Render draws the grid followed by status lines below it. Resolved cells
// use the palette; unresolved ones show how many options remain.
func (r *Renderer) Render(s *wfc.Solver, status ...string) {
	r.screen.Clear()

	bad, failed := wfc.ContradictionIndex(s.Err())
	if out := s.Output(); out != nil {
		for i, tile := range out.All() {
			glyph, style := r.look(s, i, tile)
			if failed && i == bad {
				style = contradictedStyle
			}
			r.screen.SetContent(i%out.Cols(), i/out.Cols(), glyph, style)
		}
	}

	for i, line := range status {
		r.RenderMessage(line, s.Rows()+1+i)
	}
	r.screen.Show()
}

func (r *Renderer) look(s *wfc.Solver, index int, tile wfc.TileID) (rune, tcell.Style) {
	if tile != wfc.Unresolved {
		ts := r.palette.Style(int(tile))
		return ts.GlyphRune(), tcell.StyleDefault.Foreground(ts.TCellColor())
	}
	cell, err := s.Cell(index)
	if err != nil {
		return '?', pendingStyle
	}
	return entropyRune(cell.Entropy), pendingStyle
}

// entropyRune shows small option counts as digits and the rest as '+'.
func entropyRune(n int) rune {
	switch {
	case n <= 0:
		return 'x'
	case n <= 9:
		return rune('0' + n)
	default:
		return '+'
	}
}

// RenderMessage displays a message on row y.
func (r *Renderer) RenderMessage(msg string, y int) {
	r.screen.DrawText(0, y, msg, statusStyle)
}
