// Package viewer runs a solver interactively in the terminal, one step or
// one run at a time.
package viewer

// Mode is what the viewer does between key presses.
type Mode int

const (
	// ModePaused waits for the user to step.
	ModePaused Mode = iota
	// ModeRunning steps on every tick until the solver finishes.
	ModeRunning
	// ModeDone shows a solved or failed grid until reset or quit.
	ModeDone
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModePaused:
		return "paused"
	case ModeRunning:
		return "running"
	case ModeDone:
		return "done"
	default:
		return "unknown"
	}
}
