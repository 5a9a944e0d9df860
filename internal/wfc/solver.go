package wfc

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/wavecollapse/internal/logger"
	"github.com/samdwyer/wavecollapse/internal/telemetry"
)

// State is the solver's lifecycle stage.
type State int

const (
	// StateUninitialized means dimensions or ruleset are still missing.
	StateUninitialized State = iota
	// StateReady means the wave is fresh and no cell has collapsed.
	StateReady
	// StateRunning means at least one iteration has run.
	StateRunning
	// StateSolved means every cell collapsed.
	StateSolved
	// StateFailed means the run hit a contradiction or another error.
	StateFailed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StateSolved:
		return "solved"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Done reports whether the state is terminal.
func (s State) Done() bool {
	return s == StateSolved || s == StateFailed
}

// Stats counts the work done by the current run.
type Stats struct {
	Iterations     int // cells collapsed, including ones later rewound
	Propagations   int // propagate calls
	Shrinks        int // neighbor possibility sets narrowed by propagation
	Contradictions int // contradictions hit, including recovered ones
	Restores       int // checkpoint rewinds
	Duration       time.Duration
}

// Solver runs Wave Function Collapse on one grid. It owns its wave and
// output exclusively and must not be used from more than one goroutine.
// Independent solvers may share a Ruleset.
type Solver struct {
	base options
	opts options

	rules *Ruleset
	rows  int
	cols  int

	grid  *Grid
	out   *OutputGrid
	prop  *propagator
	cps   *checkpoints
	state State

	collapsed int
	stats     Stats
	failure   error
	runID     string
	started   time.Time
}

// NewSolver creates a solver. Options given here apply to every run; Run
// accepts further options on top of them.
func NewSolver(opts ...Option) *Solver {
	s := &Solver{}
	for _, opt := range opts {
		opt(&s.base)
	}
	s.opts = s.base.resolved()
	return s
}

// LoadRuleset builds and loads a ruleset from tiles.
func (s *Solver) LoadRuleset(tiles []Tile) error {
	rs, err := NewRuleset(tiles)
	if err != nil {
		return err
	}
	s.UseRuleset(rs)
	return nil
}

// LoadFrom loads the tiles supplied by a loader.
func (s *Solver) LoadFrom(l TileLoader) error {
	tiles, err := l.LoadTiles()
	if err != nil {
		return fmt.Errorf("load tiles: %w", err)
	}
	return s.LoadRuleset(tiles)
}

// UseRuleset loads an already built ruleset. If the solver has dimensions
// the wave is reset for the new tiles.
func (s *Solver) UseRuleset(rs *Ruleset) {
	s.rules = rs
	if s.rows > 0 {
		s.reset()
	}
}

// Ruleset returns the loaded ruleset, or nil.
func (s *Solver) Ruleset() *Ruleset {
	return s.rules
}

// Initialize sizes the grid and resets every cell to the full tile set.
// Calling it again starts a fresh solve. Invalid dimensions leave the solver
// untouched.
func (s *Solver) Initialize(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}
	if rows > math.MaxInt32/cols {
		return fmt.Errorf("%w: %dx%d overflows", ErrInvalidDimensions, rows, cols)
	}

	s.rows, s.cols = rows, cols
	s.grid = nil
	s.out = newOutputGrid(rows, cols)
	s.reset()
	return nil
}

// reset rebuilds the wave for the current dimensions and ruleset.
func (s *Solver) reset() {
	s.configure(nil)
	s.stats = Stats{}
	s.failure = nil
	s.collapsed = 0
	s.runID = uuid.NewString()

	cells := s.rows * s.cols
	if s.out == nil || s.out.Len() != cells {
		s.out = newOutputGrid(s.rows, s.cols)
	}
	s.out.reset()

	if s.rules == nil {
		s.state = StateUninitialized
		return
	}

	if s.grid == nil || s.grid.Len() != cells {
		s.grid = newGrid(s.rows, s.cols, s.rules.Full())
	} else {
		s.grid.reset(s.rules.Full())
	}
	if s.prop == nil {
		s.prop = newPropagator(cells)
	} else {
		s.prop.resize(cells)
	}
	s.state = StateReady
}

// configure applies per-run options on top of the solver's base options.
func (s *Solver) configure(opts []Option) {
	o := s.base
	for _, opt := range opts {
		opt(&o)
	}
	s.opts = o.resolved()

	cells := s.rows * s.cols
	if s.opts.backtrackDepth <= 0 {
		s.cps = nil
		return
	}
	if s.cps == nil || s.cps.cells != cells || s.cps.depth != s.opts.backtrackDepth {
		s.cps = newCheckpoints(cells, s.opts.backtrackDepth)
	} else {
		s.cps.reset()
	}
}

// Run collapses cells until the grid is solved or fails. A nil error means
// solved; a *ContradictionError means propagation emptied a cell. Run
// continues a solve already advanced by Step, in which case opts are
// ignored; on a finished solver it starts over from a fresh wave. The
// context is checked between iterations.
func (s *Solver) Run(ctx context.Context, opts ...Option) (Stats, error) {
	if s.rules == nil {
		return Stats{}, ErrEmptyRuleset
	}
	if s.rows == 0 {
		return Stats{}, ErrNotInitialized
	}
	if s.state.Done() {
		s.reset()
	}
	if s.state == StateReady {
		s.configure(opts)
	}

	tracer := telemetry.Tracer("wfc")
	ctx, span := tracer.Start(ctx, "wfc.run")
	defer span.End()

	start := time.Now()
	logger.Debug("wfc run starting",
		"run_id", s.runID,
		"rows", s.rows,
		"cols", s.cols,
		"tiles", s.rules.Len(),
		"strategy", s.opts.strategy.String(),
		"backtrack_depth", s.opts.backtrackDepth,
		"collapsed", s.collapsed,
	)

	var err error
	for !s.state.Done() {
		if err = ctx.Err(); err != nil {
			s.fail(err)
			break
		}
		if s.opts.maxIterations > 0 && s.stats.Iterations >= s.opts.maxIterations {
			err = fmt.Errorf("%w: %d", ErrIterationLimit, s.opts.maxIterations)
			s.fail(err)
			break
		}
		if _, err = s.step(); err != nil {
			break
		}
	}

	s.stats.Duration += time.Since(start)
	s.finish(ctx, span, err)
	return s.stats, err
}

// Step runs one iteration: select the most constrained cell, collapse it,
// and propagate. It returns the state afterwards. On a finished solver it
// does nothing and returns the run's error, if any. The step that finishes
// the grid records the run the same way Run does.
func (s *Solver) Step() (State, error) {
	if s.state != StateReady && s.state != StateRunning {
		return s.step()
	}

	start := time.Now()
	state, err := s.step()
	s.stats.Duration += time.Since(start)

	if state.Done() {
		ctx := context.Background()
		_, span := telemetry.Tracer("wfc").Start(ctx, "wfc.run", trace.WithTimestamp(s.started))
		s.finish(ctx, span, err)
		span.End()
	}
	return state, err
}

// finish tags the run span, records metrics, and logs the outcome.
func (s *Solver) finish(ctx context.Context, span trace.Span, err error) {
	outcome := s.state.String()

	span.SetAttributes(
		attribute.String("wfc.run_id", s.runID),
		attribute.Int("grid.rows", s.rows),
		attribute.Int("grid.cols", s.cols),
		attribute.Int("ruleset.tiles", s.rules.Len()),
		attribute.String("wfc.strategy", s.opts.strategy.String()),
		attribute.String("wfc.outcome", outcome),
		attribute.Int("wfc.iterations", s.stats.Iterations),
		attribute.Int("wfc.restores", s.stats.Restores),
		attribute.Int64("wfc.duration_ms", s.stats.Duration.Milliseconds()),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	recordRunMetrics(ctx, outcome, s.stats, s.stats.Duration)

	if err != nil {
		logger.Info("wfc run failed", "run_id", s.runID, "iterations", s.stats.Iterations, "error", err)
	} else {
		logger.Debug("wfc run solved", "run_id", s.runID, "iterations", s.stats.Iterations, "restores", s.stats.Restores)
	}
}

func (s *Solver) step() (State, error) {
	switch s.state {
	case StateUninitialized:
		if s.rules == nil {
			return s.state, ErrEmptyRuleset
		}
		return s.state, ErrNotInitialized
	case StateSolved, StateFailed:
		return s.state, s.failure
	case StateReady:
		s.started = time.Now()
	}
	s.state = StateRunning

	index, err := s.selectCell()
	if err != nil {
		s.fail(err)
		return s.state, err
	}
	if index < 0 {
		s.state = StateSolved
		return s.state, nil
	}

	tile := s.choose(index)
	if s.cps != nil {
		s.cps.push(s.grid, index, tile)
	}
	s.grid.commit(index, tile)
	s.out.tiles[index] = tile
	s.collapsed++
	s.stats.Iterations++

	if err := s.propagateFrom(index); err != nil {
		s.stats.Contradictions++
		if s.cps != nil {
			err = s.backtrack(err)
		}
		if err != nil {
			s.fail(err)
			return s.state, err
		}
	}

	if s.collapsed == s.grid.Len() {
		s.state = StateSolved
	}
	return s.state, nil
}

func (s *Solver) propagateFrom(index int) error {
	s.stats.Propagations++
	shrunk, err := s.prop.propagate(s.grid, s.rules, index)
	s.stats.Shrinks += shrunk
	return err
}

// backtrack rewinds to the latest checkpoint, rules out the tile chosen
// there, and propagates that exclusion. It keeps rewinding while that
// produces contradictions, and returns the last one when it runs out of
// checkpoints or restores.
func (s *Solver) backtrack(cause error) error {
	for {
		if s.opts.maxRestores > 0 && s.stats.Restores >= s.opts.maxRestores {
			return cause
		}
		cp, ok := s.cps.pop(s.grid)
		if !ok {
			return cause
		}
		s.stats.Restores++
		s.out.sync(s.grid)
		s.collapsed = s.grid.Collapsed()

		logger.Debug("wfc rewinding",
			"run_id", s.runID,
			"cell", cp.index,
			"excluded_tile", int(cp.tile),
			"depth", s.cps.Len(),
		)

		s.grid.Restrict(cp.index, s.rules.Full().Without(cp.tile))
		if s.grid.cells[cp.index].Possibilities.Empty() {
			s.stats.Contradictions++
			cause = &ContradictionError{Index: cp.index}
			continue
		}
		if err := s.propagateFrom(cp.index); err != nil {
			s.stats.Contradictions++
			cause = err
			continue
		}
		return nil
	}
}

// selectCell returns the uncollapsed cell with the fewest options, or -1
// when every cell has collapsed. Ties go to the lowest index, or to a
// uniformly random tied cell when a random source is set.
func (s *Solver) selectCell() (int, error) {
	best := -1
	bestEntropy := math.MaxInt
	ties := 0

	for i := range s.grid.cells {
		c := &s.grid.cells[i]
		if c.Collapsed {
			continue
		}
		if c.Entropy == 0 {
			return -1, fmt.Errorf("%w: uncollapsed cell %d has no options", ErrInvariantViolated, i)
		}
		switch {
		case c.Entropy < bestEntropy:
			best, bestEntropy, ties = i, c.Entropy, 1
		case c.Entropy == bestEntropy && s.opts.rng != nil:
			ties++
			if s.opts.rng.Intn(ties) == 0 {
				best = i
			}
		}
	}
	return best, nil
}

// choose picks the tile a cell collapses to.
func (s *Solver) choose(index int) TileID {
	options := s.grid.cells[index].Possibilities
	switch s.opts.strategy {
	case StrategyRandom:
		return options.Nth(s.opts.rng.Intn(options.Count()))
	case StrategySupport:
		return s.bestSupported(index, options)
	default:
		return options.First()
	}
}

// bestSupported returns the option that keeps the most tiles possible
// across the cell's neighbors.
func (s *Solver) bestSupported(index int, options TileSet) TileID {
	best := Unresolved
	bestScore := -1
	for _, t := range options.IDs() {
		score := 0
		for _, d := range Directions {
			n, ok := s.grid.Neighbor(index, d)
			if !ok {
				continue
			}
			score += (s.rules.Allowed(t, d) & s.grid.cells[n].Possibilities).Count()
		}
		if score > bestScore {
			best, bestScore = t, score
		}
	}
	return best
}

func (s *Solver) fail(err error) {
	s.state = StateFailed
	s.failure = err
}

// State returns the lifecycle stage.
func (s *Solver) State() State { return s.state }

// Err returns the error that ended the run, or nil.
func (s *Solver) Err() error { return s.failure }

// Stats returns the counters of the current run.
func (s *Solver) Stats() Stats { return s.stats }

// RunID identifies the current run in logs and traces.
func (s *Solver) RunID() string { return s.runID }

// Rows returns the grid height.
func (s *Solver) Rows() int { return s.rows }

// Cols returns the grid width.
func (s *Solver) Cols() int { return s.cols }

// Size returns the number of cells.
func (s *Solver) Size() int { return s.rows * s.cols }

// Output returns the read-only output grid, or nil before Initialize.
func (s *Solver) Output() *OutputGrid { return s.out }

// OutputAt returns the tile at index, Unresolved if it has not collapsed,
// or ErrIndexOutOfRange.
func (s *Solver) OutputAt(index int) (TileID, error) {
	if s.out == nil {
		return Unresolved, ErrNotInitialized
	}
	return s.out.At(index)
}

// Cell returns a copy of the wave cell at index.
func (s *Solver) Cell(index int) (Cell, error) {
	if s.grid == nil {
		return Cell{}, ErrNotInitialized
	}
	if !s.grid.InBounds(index) {
		return Cell{}, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, s.grid.Len())
	}
	return s.grid.Cell(index), nil
}

// Neighbors returns the in-bounds neighbors of index in Up, Down, Left,
// Right order.
func (s *Solver) Neighbors(index int) ([]int, error) {
	if s.rows == 0 {
		return nil, ErrNotInitialized
	}
	if index < 0 || index >= s.Size() {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, s.Size())
	}
	g := Grid{rows: s.rows, cols: s.cols}
	return g.Neighbors(index), nil
}

// Failed reports whether err ended a run because of the grid itself, as
// opposed to caller mistakes like missing tiles or bad dimensions.
func Failed(err error) bool {
	return errors.Is(err, ErrContradiction) || errors.Is(err, ErrInvariantViolated)
}
