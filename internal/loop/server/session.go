package server

import (
	"sync/atomic"
	"time"

	"github.com/miniapp-factory/square-invasion/internal/engine"
	"github.com/miniapp-factory/square-invasion/internal/loop/config"
)

// SessionEvent is a notification the server sends to one session.
type SessionEvent struct {
	Type  SessionEventType
	Phase engine.Phase // For EventMatchEnded
	Hits  int          // For EventMatchEnded
}

// SessionEventType identifies the type of session event.
type SessionEventType int

const (
	EventMatchEnded SessionEventType = iota
	EventServerShutdown
)

// Session is one player's match. The engine is only touched by the server
// loop; clients queue inputs and read published snapshots.
type Session struct {
	ID       int
	Username string

	engine    *engine.Engine
	inputs    chan engine.Event
	events    chan SessionEvent
	snapshot  atomic.Pointer[engine.Snapshot]
	lastPhase engine.Phase
	best      atomic.Int64
	metrics   *Metrics
}

func newSession(id int, username string, eng *engine.Engine, m *Metrics) *Session {
	s := &Session{
		ID:        id,
		Username:  username,
		engine:    eng,
		inputs:    make(chan engine.Event, config.InputQueueSize),
		events:    make(chan SessionEvent, config.EventQueueSize),
		lastPhase: eng.Phase(),
		metrics:   m,
	}
	s.snapshot.Store(eng.Snapshot())
	return s
}

// SendInput queues an input for the next frame. Returns false if the queue
// is full and the input was dropped.
func (s *Session) SendInput(ev engine.Event) bool {
	select {
	case s.inputs <- ev:
		return true
	default:
		s.metrics.InputsDropped.Add(1)
		return false
	}
}

// Snapshot returns the most recently published match state.
func (s *Session) Snapshot() *engine.Snapshot {
	return s.snapshot.Load()
}

// Events delivers server notifications. Closed when the session is closed.
func (s *Session) Events() <-chan SessionEvent {
	return s.events
}

// Best returns the session's best hit count over finished matches.
func (s *Session) Best() int {
	return int(s.best.Load())
}

// step drains queued inputs, advances the match by delta and publishes a
// fresh snapshot. Called by the server loop only.
func (s *Session) step(delta time.Duration) (steps int, ended bool) {
	for drained := false; !drained; {
		select {
		case ev := <-s.inputs:
			if s.engine.OnInput(ev) {
				s.metrics.InputsAccepted.Add(1)
			} else {
				s.metrics.InputsIgnored.Add(1)
			}
		default:
			drained = true
		}
	}

	steps = s.engine.Advance(delta)
	snap := s.engine.Snapshot()
	s.snapshot.Store(snap)

	if snap.Phase == s.lastPhase {
		return steps, false
	}
	s.lastPhase = snap.Phase
	switch snap.Phase {
	case engine.PhasePlaying:
		s.metrics.MatchesStarted.Add(1)
	case engine.PhaseWon, engine.PhaseGameOver:
		if snap.Phase == engine.PhaseWon {
			s.metrics.MatchesWon.Add(1)
		} else {
			s.metrics.MatchesLost.Add(1)
		}
		if int64(snap.HitCount) > s.best.Load() {
			s.best.Store(int64(snap.HitCount))
		}
		s.notify(SessionEvent{Type: EventMatchEnded, Phase: snap.Phase, Hits: snap.HitCount})
		return steps, true
	}
	return steps, false
}

func (s *Session) notify(ev SessionEvent) {
	select {
	case s.events <- ev:
	default:
	}
}
