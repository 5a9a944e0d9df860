package wfc

import (
	"errors"
	"slices"
	"testing"
)

func TestTileSetBasics(t *testing.T) {
	if FullSet(0) != 0 {
		t.Errorf("FullSet(0) = %v", FullSet(0))
	}
	if got := FullSet(3); got != SetOf(0, 1, 2) {
		t.Errorf("FullSet(3) = %v", got)
	}
	if got := FullSet(MaxTiles).Count(); got != MaxTiles {
		t.Errorf("FullSet(64).Count() = %d", got)
	}

	s := SetOf(5, 1, 9)
	if s.Count() != 3 {
		t.Errorf("Count = %d, want 3", s.Count())
	}
	if !s.Has(5) || s.Has(2) {
		t.Errorf("Has mismatch for %v", s)
	}
	if s.First() != 1 {
		t.Errorf("First = %d, want 1", s.First())
	}
	if got := s.IDs(); !slices.Equal(got, []TileID{1, 5, 9}) {
		t.Errorf("IDs = %v", got)
	}
	if s.Nth(2) != 9 || s.Nth(3) != Unresolved || s.Nth(-1) != Unresolved {
		t.Errorf("Nth mismatch for %v", s)
	}
	if s.Without(5) != SetOf(1, 9) {
		t.Errorf("Without(5) = %v", s.Without(5))
	}
	if s.String() != "{1 5 9}" {
		t.Errorf("String = %q", s.String())
	}
	if TileSet(0).First() != Unresolved {
		t.Error("First of empty set should be Unresolved")
	}
	if SetOf(Unresolved) != 0 {
		t.Error("SetOf should ignore IDs past MaxTiles")
	}
}

func TestDirectionOpposite(t *testing.T) {
	pairs := map[Direction]Direction{Up: Down, Down: Up, Left: Right, Right: Left}
	for d, want := range pairs {
		if got := d.Opposite(); got != want {
			t.Errorf("%s.Opposite() = %s, want %s", d, got, want)
		}
	}

	for _, d := range Directions {
		parsed, ok := ParseDirection(d.String())
		if !ok || parsed != d {
			t.Errorf("ParseDirection(%q) = %v, %v", d.String(), parsed, ok)
		}
	}
	if _, ok := ParseDirection("north"); ok {
		t.Error("ParseDirection should reject unknown keys")
	}
}

func TestNewRuleset(t *testing.T) {
	if _, err := NewRuleset(nil); !errors.Is(err, ErrEmptyRuleset) {
		t.Errorf("NewRuleset(nil) error = %v, want ErrEmptyRuleset", err)
	}

	tooMany := make([]Tile, MaxTiles+1)
	if _, err := NewRuleset(tooMany); !errors.Is(err, ErrTooManyTiles) {
		t.Errorf("NewRuleset(65 tiles) error = %v, want ErrTooManyTiles", err)
	}

	// Bits past the last tile are dropped and IDs follow positions.
	rs := mustRuleset(t, []Tile{
		{ID: 7, Compat: [4]TileSet{Right: SetOf(0, 1, 5)}},
		{ID: 3, Compat: [4]TileSet{Left: SetOf(0)}},
	})
	if rs.Len() != 2 || rs.Full() != SetOf(0, 1) {
		t.Fatalf("Len = %d, Full = %v", rs.Len(), rs.Full())
	}
	if got := rs.Allowed(0, Right); got != SetOf(0, 1) {
		t.Errorf("Allowed(0, right) = %v, want {0 1}", got)
	}
	tile, ok := rs.Tile(1)
	if !ok || tile.ID != 1 {
		t.Errorf("Tile(1) = %+v, %v", tile, ok)
	}
	if _, ok := rs.Tile(2); ok {
		t.Error("Tile(2) should not exist")
	}
	if rs.Allowed(9, Up) != 0 {
		t.Error("Allowed for an unknown tile should be empty")
	}
}

func TestRulesetSupport(t *testing.T) {
	rs := mustRuleset(t, terrainTiles())

	tests := []struct {
		options TileSet
		want    TileSet
	}{
		{SetOf(0), SetOf(0, 1)},
		{SetOf(2), SetOf(1, 2)},
		{SetOf(0, 2), SetOf(0, 1, 2)},
		{0, 0},
	}
	for _, tt := range tests {
		if got := rs.Support(tt.options, Left); got != tt.want {
			t.Errorf("Support(%v) = %v, want %v", tt.options, got, tt.want)
		}
	}
}

func TestRulesetAsymmetries(t *testing.T) {
	if got := mustRuleset(t, terrainTiles()).Asymmetries(); len(got) != 0 {
		t.Errorf("terrain should be symmetric, got %v", got)
	}
	if got := mustRuleset(t, deadEndTiles()).Asymmetries(); len(got) != 0 {
		t.Errorf("dead-end tiles should be symmetric, got %v", got)
	}

	// Tile 0 allows 1 on its right, but tile 1 forbids 0 on its left.
	rs := mustRuleset(t, []Tile{
		{Compat: [4]TileSet{Right: SetOf(1)}},
		{},
	})
	got := rs.Asymmetries()
	want := []Asymmetry{{From: 0, To: 1, Dir: Right}}
	if !slices.Equal(got, want) {
		t.Errorf("Asymmetries = %v, want %v", got, want)
	}
}
