package wfc

import (
	"errors"
	"testing"
)

func TestPropagateChain(t *testing.T) {
	// Each tile only tolerates itself, so pinning one end pins the row.
	rs := mustRuleset(t, []Tile{uniform(SetOf(0)), uniform(SetOf(1))})
	g := newGrid(1, 4, rs.Full())
	p := newPropagator(g.Len())

	g.Restrict(0, SetOf(1))
	shrunk, err := p.propagate(g, rs, 0)
	if err != nil {
		t.Fatalf("propagate: %v", err)
	}
	if shrunk != 3 {
		t.Errorf("shrunk = %d, want 3", shrunk)
	}
	for i := 0; i < g.Len(); i++ {
		if c := g.Cell(i); c.Possibilities != SetOf(1) || c.Entropy != 1 {
			t.Errorf("cell %d = %+v, want {1}", i, c)
		}
	}
}

func TestPropagateNoChange(t *testing.T) {
	rs := mustRuleset(t, terrainTiles())
	g := newGrid(3, 3, rs.Full())
	p := newPropagator(g.Len())

	// Sand supports every tile, so nothing narrows.
	g.Restrict(4, SetOf(1))
	shrunk, err := p.propagate(g, rs, 4)
	if err != nil {
		t.Fatalf("propagate: %v", err)
	}
	if shrunk != 0 {
		t.Errorf("shrunk = %d, want 0", shrunk)
	}
}

func TestPropagateTwoColoring(t *testing.T) {
	rs := mustRuleset(t, checkerTiles())
	g := newGrid(4, 5, rs.Full())
	p := newPropagator(g.Len())

	g.Restrict(0, SetOf(0))
	if _, err := p.propagate(g, rs, 0); err != nil {
		t.Fatalf("propagate: %v", err)
	}
	for i := 0; i < g.Len(); i++ {
		row, col := g.Coords(i)
		want := SetOf(TileID((row + col) % 2))
		if got := g.Cell(i).Possibilities; got != want {
			t.Errorf("cell %d = %v, want %v", i, got, want)
		}
	}
}

func TestPropagateContradiction(t *testing.T) {
	rs := mustRuleset(t, isolatedTiles())
	g := newGrid(1, 2, rs.Full())
	p := newPropagator(g.Len())

	g.commit(0, 0)
	_, err := p.propagate(g, rs, 0)
	if !errors.Is(err, ErrContradiction) {
		t.Fatalf("propagate error = %v, want contradiction", err)
	}
	if idx, ok := ContradictionIndex(err); !ok || idx != 1 {
		t.Errorf("contradiction index = %d, %v; want 1", idx, ok)
	}

	for i, q := range p.queued {
		if q {
			t.Errorf("cell %d still queued after contradiction", i)
		}
	}
	if len(p.queue) != 0 {
		t.Errorf("queue not drained: %v", p.queue)
	}
}

func TestPropagateMonotonic(t *testing.T) {
	rs := mustRuleset(t, terrainTiles())
	g := newGrid(5, 5, rs.Full())
	p := newPropagator(g.Len())

	before := make([]int, g.Len())
	for i := range before {
		before[i] = g.Cell(i).Entropy
	}

	for _, pin := range []struct {
		index int
		tile  TileID
	}{{0, 0}, {24, 2}, {12, 0}} {
		g.Restrict(pin.index, SetOf(pin.tile))
		if _, err := p.propagate(g, rs, pin.index); err != nil {
			t.Fatalf("propagate from %d: %v", pin.index, err)
		}
		for i := range before {
			now := g.Cell(i).Entropy
			if now > before[i] {
				t.Errorf("cell %d entropy grew from %d to %d", i, before[i], now)
			}
			before[i] = now
		}
	}
}
