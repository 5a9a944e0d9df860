package wfc

import (
	"fmt"
	"iter"
)

// OutputGrid is the read-only result of a run: one tile per cell, or
// Unresolved for cells that have not collapsed. Entries appear the moment
// their cell collapses, so a grid can be observed mid-run.
type OutputGrid struct {
	rows  int
	cols  int
	tiles []TileID
}

func newOutputGrid(rows, cols int) *OutputGrid {
	o := &OutputGrid{
		rows:  rows,
		cols:  cols,
		tiles: make([]TileID, rows*cols),
	}
	o.reset()
	return o
}

func (o *OutputGrid) reset() {
	for i := range o.tiles {
		o.tiles[i] = Unresolved
	}
}

// sync rebuilds every entry from the wave, used after a checkpoint restore.
func (o *OutputGrid) sync(g *Grid) {
	for i := range g.cells {
		if g.cells[i].Collapsed {
			o.tiles[i] = g.cells[i].Possibilities.First()
		} else {
			o.tiles[i] = Unresolved
		}
	}
}

// Rows returns the grid height.
func (o *OutputGrid) Rows() int { return o.rows }

// Cols returns the grid width.
func (o *OutputGrid) Cols() int { return o.cols }

// Len returns the number of cells.
func (o *OutputGrid) Len() int { return len(o.tiles) }

// At returns the tile at index, or ErrIndexOutOfRange.
func (o *OutputGrid) At(index int) (TileID, error) {
	if index < 0 || index >= len(o.tiles) {
		return Unresolved, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, len(o.tiles))
	}
	return o.tiles[index], nil
}

// Get returns the tile at index without a bounds check beyond the runtime's
// own: an out-of-range index panics. Use At for untrusted input.
func (o *OutputGrid) Get(index int) TileID {
	return o.tiles[index]
}

// TileAt returns the tile at row, col.
func (o *OutputGrid) TileAt(row, col int) (TileID, error) {
	if row < 0 || row >= o.rows || col < 0 || col >= o.cols {
		return Unresolved, fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrIndexOutOfRange, row, col, o.rows, o.cols)
	}
	return o.tiles[row*o.cols+col], nil
}

// Resolved reports whether every cell holds a tile.
func (o *OutputGrid) Resolved() bool {
	for _, t := range o.tiles {
		if t == Unresolved {
			return false
		}
	}
	return true
}

// All iterates the grid in row-major order.
func (o *OutputGrid) All() iter.Seq2[int, TileID] {
	return func(yield func(int, TileID) bool) {
		for i, t := range o.tiles {
			if !yield(i, t) {
				return
			}
		}
	}
}

// Row returns a copy of one row.
func (o *OutputGrid) Row(row int) []TileID {
	if row < 0 || row >= o.rows {
		return nil
	}
	out := make([]TileID, o.cols)
	copy(out, o.tiles[row*o.cols:(row+1)*o.cols])
	return out
}

// Snapshot returns a copy of every entry in row-major order.
func (o *OutputGrid) Snapshot() []TileID {
	out := make([]TileID, len(o.tiles))
	copy(out, o.tiles)
	return out
}
