package wfc

import (
	"context"
	"errors"
	"slices"
	"testing"
)

func TestRaceSolves(t *testing.T) {
	rs := mustRuleset(t, terrainTiles())
	seeds := Seeds(100, 4)

	s, seed, err := Race(context.Background(), rs, 6, 6, seeds)
	if err != nil {
		t.Fatalf("Race: %v", err)
	}
	if !slices.Contains(seeds, seed) {
		t.Errorf("winning seed %d not among %v", seed, seeds)
	}
	if s.State() != StateSolved {
		t.Errorf("winner state = %s", s.State())
	}
	assertConsistent(t, s)

	// The winner's grid is reproducible from its seed alone.
	again := newSolver(t, terrainTiles(), 6, 6)
	if _, err := again.Run(context.Background(), WithSeed(seed)); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(again.Output().Snapshot(), s.Output().Snapshot()) {
		t.Error("rerunning the winning seed produced a different grid")
	}
}

func TestRaceAllFail(t *testing.T) {
	rs := mustRuleset(t, isolatedTiles())

	_, _, err := Race(context.Background(), rs, 1, 2, Seeds(1, 3))
	if !errors.Is(err, ErrContradiction) {
		t.Errorf("Race error = %v, want contradiction", err)
	}
}

func TestRaceBadInput(t *testing.T) {
	if _, _, err := Race(context.Background(), nil, 2, 2, nil); !errors.Is(err, ErrEmptyRuleset) {
		t.Errorf("nil ruleset error = %v", err)
	}
	rs := mustRuleset(t, terrainTiles())
	if _, _, err := Race(context.Background(), rs, 0, 2, nil); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("zero rows error = %v", err)
	}
}

func TestSeeds(t *testing.T) {
	if got := Seeds(5, 3); !slices.Equal(got, []int64{5, 6, 7}) {
		t.Errorf("Seeds(5, 3) = %v", got)
	}
}
