package wfc

import (
	"fmt"
	"math/rand"
	"strings"
)

// DefaultSeed seeds the random source when a random strategy is requested
// without one, so such runs are still reproducible.
const DefaultSeed int64 = 1

// Strategy decides which remaining tile a cell collapses to.
type Strategy int

const (
	// StrategyAuto picks StrategyRandom when a random source is set and
	// StrategyLowest otherwise.
	StrategyAuto Strategy = iota
	// StrategyLowest collapses to the lowest remaining tile ID.
	StrategyLowest
	// StrategyRandom collapses to a uniformly random remaining tile.
	StrategyRandom
	// StrategySupport collapses to the tile that leaves the neighbors the
	// most options, breaking ties by lowest ID.
	StrategySupport
)

// String returns the strategy's config name.
func (s Strategy) String() string {
	switch s {
	case StrategyAuto:
		return "auto"
	case StrategyLowest:
		return "lowest"
	case StrategyRandom:
		return "random"
	case StrategySupport:
		return "support"
	default:
		return "unknown"
	}
}

// ParseStrategy maps a config name to a Strategy. An empty name is auto.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return StrategyAuto, nil
	case "lowest":
		return StrategyLowest, nil
	case "random":
		return StrategyRandom, nil
	case "support":
		return StrategySupport, nil
	default:
		return StrategyAuto, fmt.Errorf("unknown collapse strategy %q", name)
	}
}

type options struct {
	rng            *rand.Rand
	strategy       Strategy
	backtrackDepth int
	maxRestores    int
	maxIterations  int
}

// resolved fills in the strategy and random source a run actually uses.
func (o options) resolved() options {
	if o.strategy == StrategyAuto {
		if o.rng != nil {
			o.strategy = StrategyRandom
		} else {
			o.strategy = StrategyLowest
		}
	}
	if o.strategy == StrategyRandom && o.rng == nil {
		o.rng = rand.New(rand.NewSource(DefaultSeed))
	}
	return o
}

// Option configures a Solver or a single Run.
type Option func(*options)

// WithRand supplies the random source used for tie-breaks between equally
// constrained cells and for random collapse. Without one, selection is
// deterministic: lowest cell index wins.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		o.rng = rng
	}
}

// WithSeed is WithRand with a fresh source seeded from seed.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.rng = rand.New(rand.NewSource(seed))
	}
}

// WithStrategy sets the collapse strategy.
func WithStrategy(s Strategy) Option {
	return func(o *options) {
		o.strategy = s
	}
}

// WithBacktracking lets a run rewind up to depth collapse decisions after a
// contradiction instead of failing. maxRestores caps the total number of
// rewinds in one run; zero means no cap. A depth of zero disables it.
func WithBacktracking(depth, maxRestores int) Option {
	return func(o *options) {
		if depth < 0 {
			depth = 0
		}
		if maxRestores < 0 {
			maxRestores = 0
		}
		o.backtrackDepth = depth
		o.maxRestores = maxRestores
	}
}

// WithMaxIterations stops a run with ErrIterationLimit after n iterations.
// Zero means no limit.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		if n < 0 {
			n = 0
		}
		o.maxIterations = n
	}
}
