package viewer

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/wavecollapse/internal/logger"
	"github.com/samdwyer/wavecollapse/internal/telemetry"
	"github.com/samdwyer/wavecollapse/internal/ui"
	"github.com/samdwyer/wavecollapse/internal/wfc"
)

const helpLine = "space step  enter run  esc pause  r reset  q quit"

// tick is posted by the ticker to advance a running solver.
type tick struct{}

// quit is posted when the context ends.
type quit struct{}

// Config describes the grid the viewer generates.
type Config struct {
	Ruleset *wfc.Ruleset
	Rows    int
	Cols    int
	// Seed of zero starts without a random source; resets move to seed 1.
	Seed      int64
	Options   []wfc.Option
	Palette   ui.Palette
	StepDelay time.Duration
	Title     string
}

// Viewer holds the interactive session state.
type Viewer struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	cfg      Config
	solver   *wfc.Solver
	seed     int64
	mode     Mode
	running  bool
	steps    int
}

// New opens the terminal and prepares a solver.
func New(cfg Config) (*Viewer, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	v, err := NewWithScreen(screen, cfg)
	if err != nil {
		screen.Close()
		return nil, err
	}
	return v, nil
}

// NewWithScreen prepares a solver that draws to an existing screen.
func NewWithScreen(screen *ui.Screen, cfg Config) (*Viewer, error) {
	if cfg.StepDelay <= 0 {
		cfg.StepDelay = 30 * time.Millisecond
	}
	v := &Viewer{
		screen:   screen,
		renderer: ui.NewRenderer(screen, cfg.Palette),
		cfg:      cfg,
		seed:     cfg.Seed,
		running:  true,
	}
	if err := v.reset(); err != nil {
		return nil, err
	}
	return v, nil
}

// reset starts a fresh solver with the current seed.
func (v *Viewer) reset() error {
	opts := v.cfg.Options
	if v.seed != 0 {
		opts = append(opts[:len(opts):len(opts)], wfc.WithSeed(v.seed))
	}
	s := wfc.NewSolver(opts...)
	s.UseRuleset(v.cfg.Ruleset)
	if err := s.Initialize(v.cfg.Rows, v.cfg.Cols); err != nil {
		return err
	}
	v.solver = s
	v.mode = ModePaused
	logger.Debug("Viewer reset", "seed", v.seed, "run_id", s.RunID())
	return nil
}

// Solver returns the solver being shown.
func (v *Viewer) Solver() *wfc.Solver { return v.solver }

// Mode returns the current mode.
func (v *Viewer) Mode() Mode { return v.mode }

// Seed returns the seed of the current solver, zero when it has none.
func (v *Viewer) Seed() int64 { return v.seed }

// Run executes the event loop until the user quits or ctx ends.
func (v *Viewer) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("viewer")
	ctx, span := tracer.Start(ctx, "viewer.session")
	defer span.End()

	done := make(chan struct{})
	go v.ticker(ctx, done)

	for v.running {
		v.render()
		v.handleEvent(v.screen.PollEvent())
	}

	close(done)
	span.SetAttributes(
		attribute.Int64("viewer.last_seed", v.seed),
		attribute.Int("viewer.steps", v.steps),
		attribute.String("viewer.final_state", v.solver.State().String()),
	)
	v.screen.Close()
	return nil
}

func (v *Viewer) ticker(ctx context.Context, done <-chan struct{}) {
	t := time.NewTicker(v.cfg.StepDelay)
	defer t.Stop()
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			_ = v.screen.Interrupt(quit{})
			return
		case <-t.C:
			_ = v.screen.Interrupt(tick{})
		}
	}
}

func (v *Viewer) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		v.handleKey(ev)
	case *tcell.EventResize:
		v.screen.Sync()
	case *tcell.EventInterrupt:
		switch ev.Data().(type) {
		case tick:
			if v.mode == ModeRunning {
				v.step()
			}
		case quit:
			v.running = false
		}
	case nil:
		v.running = false
	}
}

func (v *Viewer) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		v.running = false
	case tcell.KeyEscape:
		if v.mode == ModeRunning {
			v.mode = ModePaused
		}
	case tcell.KeyEnter:
		if v.mode == ModePaused {
			v.mode = ModeRunning
		}
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			if v.mode == ModePaused {
				v.step()
			}
		case 'r', 'R':
			v.seed++
			if err := v.reset(); err != nil {
				logger.Error("Viewer reset failed", "seed", v.seed, "error", err)
				v.running = false
			}
		case 'q', 'Q':
			v.running = false
		}
	}
}

func (v *Viewer) step() {
	state, err := v.solver.Step()
	v.steps++
	if !state.Done() {
		return
	}
	v.mode = ModeDone
	if err != nil {
		logger.Info("Viewer run failed", "seed", v.seed, "run_id", v.solver.RunID(), "error", err)
		return
	}
	logger.Debug("Viewer run solved", "seed", v.seed, "run_id", v.solver.RunID())
}

func (v *Viewer) render() {
	v.renderer.Render(v.solver, v.status(), helpLine)
}

func (v *Viewer) status() string {
	s := v.solver
	resolved := 0
	for _, tile := range s.Output().All() {
		if tile != wfc.Unresolved {
			resolved++
		}
	}
	stats := s.Stats()
	line := fmt.Sprintf("%s seed %d  %s  %d/%d  iter %d  restores %d",
		v.cfg.Title, v.seed, v.mode, resolved, s.Size(), stats.Iterations, stats.Restores)
	if err := s.Err(); err != nil {
		line += "  " + err.Error()
	}
	return line
}
