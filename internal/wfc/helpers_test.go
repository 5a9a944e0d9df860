package wfc

import "testing"

// uniform returns a tile with the same compatibility in every direction.
func uniform(allowed TileSet) Tile {
	return Tile{Compat: [4]TileSet{allowed, allowed, allowed, allowed}}
}

// terrainTiles is water(0), sand(1), grass(2): neighbors may differ by at
// most one step. Sand fits next to everything, so no partial assignment can
// contradict.
func terrainTiles() []Tile {
	return []Tile{
		uniform(SetOf(0, 1)),
		uniform(SetOf(0, 1, 2)),
		uniform(SetOf(1, 2)),
	}
}

// checkerTiles forces every neighbor to differ.
func checkerTiles() []Tile {
	return []Tile{
		uniform(SetOf(1)),
		uniform(SetOf(0)),
	}
}

// isolatedTiles allows vertical pairs but forbids every horizontal pairing.
func isolatedTiles() []Tile {
	vertical := SetOf(0, 1)
	return []Tile{
		{Compat: [4]TileSet{Up: vertical, Down: vertical}},
		{Compat: [4]TileSet{Up: vertical, Down: vertical}},
	}
}

// deadEndTiles: tile 0 allows nothing to its right, so the lowest-ID choice
// on the left cell of a 1x2 grid fails, while tile 1 then tile 0 works.
func deadEndTiles() []Tile {
	all := SetOf(0, 1)
	return []Tile{
		{Compat: [4]TileSet{Up: all, Down: all, Left: SetOf(1), Right: 0}},
		{Compat: [4]TileSet{Up: all, Down: all, Left: SetOf(1), Right: all}},
	}
}

func mustRuleset(t *testing.T, tiles []Tile) *Ruleset {
	t.Helper()
	rs, err := NewRuleset(tiles)
	if err != nil {
		t.Fatalf("NewRuleset: %v", err)
	}
	return rs
}

func newSolver(t *testing.T, tiles []Tile, rows, cols int, opts ...Option) *Solver {
	t.Helper()
	s := NewSolver(opts...)
	if err := s.LoadRuleset(tiles); err != nil {
		t.Fatalf("LoadRuleset: %v", err)
	}
	if err := s.Initialize(rows, cols); err != nil {
		t.Fatalf("Initialize(%d, %d): %v", rows, cols, err)
	}
	return s
}

// assertConsistent checks every adjacent pair of the output against the rules.
func assertConsistent(t *testing.T, s *Solver) {
	t.Helper()
	out := s.Output()
	rs := s.Ruleset()
	for i, tile := range out.All() {
		if tile == Unresolved {
			t.Fatalf("cell %d unresolved", i)
		}
		for _, d := range Directions {
			n, ok := s.grid.Neighbor(i, d)
			if !ok {
				continue
			}
			other := out.Get(n)
			if !rs.Allowed(tile, d).Has(other) {
				t.Errorf("cell %d (tile %d) has tile %d %s, which it does not allow", i, tile, other, d)
			}
		}
	}
}
