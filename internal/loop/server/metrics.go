package server

import (
	"sync/atomic"
	"time"
)

// Metrics records counters for every session hosted by a Server.
type Metrics struct {
	Frames         atomic.Int64 // Server loop iterations
	Steps          atomic.Int64 // Fixed simulation steps across all sessions
	InputsAccepted atomic.Int64 // Inputs that changed a match
	InputsIgnored  atomic.Int64 // Inputs that did not apply to the phase
	InputsDropped  atomic.Int64 // Inputs lost to a full queue
	MatchesStarted atomic.Int64
	MatchesWon     atomic.Int64
	MatchesLost    atomic.Int64
	SessionsOpened atomic.Int64
	SessionsClosed atomic.Int64
	TotalFrameNs   atomic.Int64 // Time spent simulating
}

// AddFrame records one loop iteration that ran steps fixed steps.
func (m *Metrics) AddFrame(steps int, elapsed time.Duration) {
	m.Frames.Add(1)
	m.Steps.Add(int64(steps))
	m.TotalFrameNs.Add(elapsed.Nanoseconds())
}

// Snapshot returns a read-only copy suitable for JSON output.
func (m *Metrics) Snapshot() map[string]any {
	frames := m.Frames.Load()
	total := m.TotalFrameNs.Load()
	var avgMs float64
	if frames > 0 {
		avgMs = float64(total) / float64(frames) / 1e6
	}
	return map[string]any{
		"frames":          frames,
		"steps":           m.Steps.Load(),
		"inputs_accepted": m.InputsAccepted.Load(),
		"inputs_ignored":  m.InputsIgnored.Load(),
		"inputs_dropped":  m.InputsDropped.Load(),
		"matches_started": m.MatchesStarted.Load(),
		"matches_won":     m.MatchesWon.Load(),
		"matches_lost":    m.MatchesLost.Load(),
		"sessions_opened": m.SessionsOpened.Load(),
		"sessions_closed": m.SessionsClosed.Load(),
		"avg_frame_ms":    avgMs,
	}
}
