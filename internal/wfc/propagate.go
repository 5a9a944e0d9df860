package wfc

// propagator restores arc consistency after a cell shrinks. It keeps its
// worklist and queued flags between calls so a run allocates them once.
type propagator struct {
	queue  []int
	queued []bool
}

func newPropagator(cells int) *propagator {
	return &propagator{
		queue:  make([]int, 0, 64),
		queued: make([]bool, cells),
	}
}

// resize makes the queued flags match a grid of the given size.
func (p *propagator) resize(cells int) {
	if cap(p.queued) >= cells {
		p.queued = p.queued[:cells]
	} else {
		p.queued = make([]bool, cells)
	}
	p.clear()
}

func (p *propagator) clear() {
	for _, i := range p.queue {
		p.queued[i] = false
	}
	p.queue = p.queue[:0]
}

// propagate walks outward from start, shrinking each neighbor to the tiles
// its neighbor still supports. It returns the number of cells that shrank,
// and a *ContradictionError as soon as any cell runs out of options.
func (p *propagator) propagate(g *Grid, rs *Ruleset, start int) (int, error) {
	p.clear()
	p.queue = append(p.queue, start)
	p.queued[start] = true
	shrunk := 0

	// The slice head moves forward; the backing array is reused on the next call.
	for head := 0; head < len(p.queue); head++ {
		c := p.queue[head]
		p.queued[c] = false

		options := g.cells[c].Possibilities
		if options.Empty() {
			p.clear()
			return shrunk, &ContradictionError{Index: c}
		}

		for _, d := range Directions {
			n, ok := g.Neighbor(c, d)
			if !ok {
				continue
			}
			if !g.Restrict(n, rs.Support(options, d)) {
				continue
			}
			shrunk++
			if g.cells[n].Possibilities.Empty() {
				p.clear()
				return shrunk, &ContradictionError{Index: n}
			}
			if !p.queued[n] {
				p.queued[n] = true
				p.queue = append(p.queue, n)
			}
		}
	}

	p.clear()
	return shrunk, nil
}
