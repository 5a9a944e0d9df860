package wfc

// Cell is one grid position in the wave.
type Cell struct {
	Possibilities TileSet
	Collapsed     bool
	// Entropy is the number of tiles still possible. Zero means contradiction.
	Entropy int
}

// Grid is the wave: a row-major array of cells addressed by row*cols+col.
type Grid struct {
	rows  int
	cols  int
	cells []Cell
}

func newGrid(rows, cols int, full TileSet) *Grid {
	g := &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]Cell, rows*cols),
	}
	g.reset(full)
	return g
}

// reset gives every cell the full tile universe.
func (g *Grid) reset(full TileSet) {
	entropy := full.Count()
	for i := range g.cells {
		g.cells[i] = Cell{Possibilities: full, Entropy: entropy}
	}
}

// Rows returns the grid height.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the grid width.
func (g *Grid) Cols() int { return g.cols }

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.cells) }

// Index converts a row and column to a cell index.
func (g *Grid) Index(row, col int) int { return row*g.cols + col }

// Coords converts a cell index to its row and column.
func (g *Grid) Coords(index int) (row, col int) {
	return index / g.cols, index % g.cols
}

// InBounds reports whether index addresses a cell.
func (g *Grid) InBounds(index int) bool {
	return index >= 0 && index < len(g.cells)
}

// Cell returns a copy of the cell at index. Index must be in bounds.
func (g *Grid) Cell(index int) Cell {
	return g.cells[index]
}

// Neighbor returns the index of the cell next to index in direction d, and
// false when that would leave the grid.
func (g *Grid) Neighbor(index int, d Direction) (int, bool) {
	row, col := g.Coords(index)
	switch d {
	case Up:
		if row > 0 {
			return index - g.cols, true
		}
	case Down:
		if row < g.rows-1 {
			return index + g.cols, true
		}
	case Left:
		if col > 0 {
			return index - 1, true
		}
	case Right:
		if col < g.cols-1 {
			return index + 1, true
		}
	}
	return -1, false
}

// Neighbors returns the in-bounds neighbors of index in Up, Down, Left,
// Right order. Corner cells have two, edge cells three, interior cells four.
func (g *Grid) Neighbors(index int) []int {
	out := make([]int, 0, 4)
	for _, d := range Directions {
		if n, ok := g.Neighbor(index, d); ok {
			out = append(out, n)
		}
	}
	return out
}

// Restrict intersects the cell's possibilities with allowed and reports
// whether anything was removed.
func (g *Grid) Restrict(index int, allowed TileSet) bool {
	c := &g.cells[index]
	next := c.Possibilities & allowed
	if next == c.Possibilities {
		return false
	}
	c.Possibilities = next
	c.Entropy = next.Count()
	return true
}

// commit marks a cell as collapsed to exactly one tile.
func (g *Grid) commit(index int, id TileID) {
	c := &g.cells[index]
	c.Possibilities = SetOf(id)
	c.Entropy = 1
	c.Collapsed = true
}

// Collapsed returns the number of collapsed cells.
func (g *Grid) Collapsed() int {
	n := 0
	for i := range g.cells {
		if g.cells[i].Collapsed {
			n++
		}
	}
	return n
}
