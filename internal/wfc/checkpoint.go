package wfc

// checkpoint records the wave as it was just before a collapse decision.
type checkpoint struct {
	index int    // collapsed cell
	tile  TileID // tile it was collapsed to
	slot  int    // arena slot holding the snapshot
}

// checkpoints is a bounded stack of wave snapshots. Snapshots live in one
// preallocated arena of depth slots; a slot is written once on push and only
// read until it is popped. When the stack is full the oldest checkpoint is
// evicted and its slot reused, so the solver can only rewind depth decisions.
type checkpoints struct {
	cells int
	depth int

	options   []TileSet
	collapsed []bool

	stack []checkpoint
	free  []int
}

func newCheckpoints(cells, depth int) *checkpoints {
	cp := &checkpoints{
		cells: cells,
		depth: depth,
		stack: make([]checkpoint, 0, depth),
		free:  make([]int, 0, depth),
	}
	cp.reset()
	return cp
}

func (cp *checkpoints) reset() {
	cp.stack = cp.stack[:0]
	cp.free = cp.free[:0]
	for slot := cp.depth - 1; slot >= 0; slot-- {
		cp.free = append(cp.free, slot)
	}
}

// Len returns the number of decisions that can still be rewound.
func (cp *checkpoints) Len() int {
	return len(cp.stack)
}

// push snapshots g before index collapses to tile.
func (cp *checkpoints) push(g *Grid, index int, tile TileID) {
	if cp.depth <= 0 {
		return
	}
	if cp.options == nil {
		cp.options = make([]TileSet, cp.depth*cp.cells)
		cp.collapsed = make([]bool, cp.depth*cp.cells)
	}

	var slot int
	if n := len(cp.free); n > 0 {
		slot = cp.free[n-1]
		cp.free = cp.free[:n-1]
	} else {
		slot = cp.stack[0].slot
		copy(cp.stack, cp.stack[1:])
		cp.stack = cp.stack[:len(cp.stack)-1]
	}

	base := slot * cp.cells
	for i := range g.cells {
		cp.options[base+i] = g.cells[i].Possibilities
		cp.collapsed[base+i] = g.cells[i].Collapsed
	}
	cp.stack = append(cp.stack, checkpoint{index: index, tile: tile, slot: slot})
}

// pop restores g to the most recent snapshot and returns the decision that
// was taken from it. ok is false when there is nothing left to rewind.
func (cp *checkpoints) pop(g *Grid) (checkpoint, bool) {
	n := len(cp.stack)
	if n == 0 {
		return checkpoint{}, false
	}
	top := cp.stack[n-1]
	cp.stack = cp.stack[:n-1]

	base := top.slot * cp.cells
	for i := range g.cells {
		opts := cp.options[base+i]
		g.cells[i] = Cell{
			Possibilities: opts,
			Collapsed:     cp.collapsed[base+i],
			Entropy:       opts.Count(),
		}
	}
	cp.free = append(cp.free, top.slot)
	return top, true
}
