package client

import (
	"time"

	"github.com/miniapp-factory/square-invasion/internal/engine"
	"github.com/miniapp-factory/square-invasion/internal/input"
)

// Screen is what the client is currently showing.
type Screen int

const (
	ScreenStart    Screen = iota // Title screen
	ScreenPlaying                // Active gameplay
	ScreenGameOver               // Player was hit or an enemy got through
	ScreenWon                    // Match won
	ScreenShutdown               // Server is shutting down
)

// screenFor maps a match phase onto the screen that shows it.
func screenFor(p engine.Phase) Screen {
	switch p {
	case engine.PhasePlaying:
		return ScreenPlaying
	case engine.PhaseGameOver:
		return ScreenGameOver
	case engine.PhaseWon:
		return ScreenWon
	default:
		return ScreenStart
	}
}

// ClientState holds per-connection view state. The match itself lives on
// the server; the client only keeps what it needs to draw.
type ClientState struct {
	Input         input.Input
	Screen        Screen
	Running       bool          // Client loop running
	delta         time.Duration // Frame delta time (client-side)
	shutdownTimer float64       // Countdown before auto-disconnect on shutdown
	isInactive    bool          // Whether the client is in inactive warning state
	lastResult    *matchResult  // Most recent finished match
	endedAt       time.Time     // When the client last saw a match end

	// Previous frame, for full clears on transitions
	prevScreen  Screen
	wasInactive bool
}

// matchResult is the outcome of one finished match.
type matchResult struct {
	Phase engine.Phase
	Hits  int
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		Screen:     ScreenStart,
		prevScreen: ScreenStart,
		Running:    true,
	}
}
