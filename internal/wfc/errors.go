package wfc

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions is returned when a grid would have no cells.
	ErrInvalidDimensions = errors.New("wfc: grid must have at least one row and one column")
	// ErrEmptyRuleset is returned when no tiles are loaded.
	ErrEmptyRuleset = errors.New("wfc: ruleset has no tiles")
	// ErrTooManyTiles is returned when a ruleset exceeds MaxTiles.
	ErrTooManyTiles = errors.New("wfc: too many tiles")
	// ErrNotInitialized is returned when running before Initialize.
	ErrNotInitialized = errors.New("wfc: solver not initialized")
	// ErrIndexOutOfRange is returned by bounds-checked grid access.
	ErrIndexOutOfRange = errors.New("wfc: index out of range")
	// ErrInvariantViolated is returned when selection finds an uncollapsed
	// cell with no options left that propagation failed to report.
	ErrInvariantViolated = errors.New("wfc: invariant violated")
	// ErrIterationLimit is returned when a run exceeds its iteration cap.
	ErrIterationLimit = errors.New("wfc: iteration limit reached")
	// ErrContradiction matches any *ContradictionError via errors.Is.
	ErrContradiction = errors.New("wfc: contradiction")
)

// ContradictionError reports the cell whose possibility set became empty.
type ContradictionError struct {
	Index int
}

func (e *ContradictionError) Error() string {
	return fmt.Sprintf("wfc: contradiction at cell %d", e.Index)
}

// Is lets errors.Is(err, ErrContradiction) match.
func (e *ContradictionError) Is(target error) bool {
	return target == ErrContradiction
}

// ContradictionIndex extracts the failing cell from err.
func ContradictionIndex(err error) (int, bool) {
	var ce *ContradictionError
	if errors.As(err, &ce) {
		return ce.Index, true
	}
	return -1, false
}
