package wfc

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/samdwyer/wavecollapse/internal/logger"
)

// errRaceWon stops the other attempts once one has solved the grid.
var errRaceWon = errors.New("wfc: race won")

// Race runs one independent solver per seed concurrently and returns the
// first that solves the grid, with its seed. Every attempt owns its own wave
// and output; only the ruleset is shared. When all attempts fail the errors
// are joined.
func Race(ctx context.Context, rs *Ruleset, rows, cols int, seeds []int64, opts ...Option) (*Solver, int64, error) {
	if rs == nil {
		return nil, 0, ErrEmptyRuleset
	}
	if rows <= 0 || cols <= 0 {
		return nil, 0, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}
	if len(seeds) == 0 {
		seeds = []int64{DefaultSeed}
	}

	g, gctx := errgroup.WithContext(ctx)

	var (
		mu       sync.Mutex
		winner   *Solver
		winSeed  int64
		failures []error
	)

	for _, seed := range seeds {
		g.Go(func() error {
			s := NewSolver(opts...)
			s.UseRuleset(rs)
			if err := s.Initialize(rows, cols); err != nil {
				return err
			}

			_, err := s.Run(gctx, WithSeed(seed))

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if gctx.Err() == nil {
					failures = append(failures, fmt.Errorf("seed %d: %w", seed, err))
				}
				return nil
			}
			if winner == nil {
				winner, winSeed = s, seed
			}
			return errRaceWon
		})
	}

	err := g.Wait()
	if winner != nil {
		logger.Debug("wfc race won", "seed", winSeed, "attempts", len(seeds), "run_id", winner.RunID())
		return winner, winSeed, nil
	}
	if err != nil && !errors.Is(err, errRaceWon) {
		return nil, 0, err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, 0, ctxErr
	}
	return nil, 0, errors.Join(failures...)
}

// Seeds returns n consecutive seeds starting at first.
func Seeds(first int64, n int) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = first + int64(i)
	}
	return out
}
