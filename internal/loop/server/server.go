// Package server hosts matches for connected players. One goroutine runs the
// loop that advances every session; clients only queue inputs and read
// published snapshots.
package server

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/miniapp-factory/square-invasion/internal/engine"
	"github.com/miniapp-factory/square-invasion/internal/loop/config"
)

// GameServer is the interface clients use to communicate with the game server.
// Decouples the Client from the concrete Server implementation.
type GameServer interface {
	Open(username string) *Session
	Close(id int)
	TopScores() []TopScoreEntry
}

// EngineFactory builds the engine for a new session.
type EngineFactory func() *engine.Engine

// Server manages the sessions of every connected player.
type Server struct {
	newEngine EngineFactory
	log       *zap.SugaredLogger

	mu          sync.RWMutex
	sessions    map[int]*Session
	nextID      int
	leaderboard *Leaderboard

	metrics Metrics
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// NewServer creates a server that builds one engine per session.
func NewServer(newEngine EngineFactory, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		newEngine:   newEngine,
		log:         log.Sugar(),
		sessions:    make(map[int]*Session),
		nextID:      1,
		leaderboard: NewLeaderboard(config.TopScoresCount),
	}
}

// Run starts the server loop. Blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) {
	ticker := time.NewTicker(config.ServerTickTime)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Tick(now.Sub(last))
			last = now
		}
	}
}

// Tick advances every session by delta. Run calls it once per server frame.
func (s *Server) Tick(delta time.Duration) {
	start := time.Now()
	steps := 0

	s.mu.Lock()
	for _, sess := range s.sessions {
		n, ended := sess.step(delta)
		steps += n
		if ended {
			snap := sess.Snapshot()
			s.leaderboard.Record(sess.ID, sess.Username, snap.HitCount)
			s.log.Infow("match ended",
				"session", sess.ID,
				"user", sess.Username,
				"phase", snap.Phase.String(),
				"hits", snap.HitCount,
				"elapsedMs", snap.ElapsedMs,
			)
		}
	}
	s.mu.Unlock()

	s.metrics.AddFrame(steps, time.Since(start))
}

// Open registers a new session with a fresh engine.
func (s *Server) Open(username string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	sess := newSession(id, username, s.newEngine(), &s.metrics)
	s.sessions[id] = sess
	s.metrics.SessionsOpened.Add(1)
	s.log.Infow("session opened", "session", id, "user", username)
	return sess
}

// Close removes a session and closes its event channel.
func (s *Server) Close(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return
	}
	close(sess.events)
	delete(s.sessions, id)
	s.metrics.SessionsClosed.Add(1)
	s.log.Infow("session closed", "session", id, "user", sess.Username, "best", sess.Best())
}

// Count returns the number of open sessions.
func (s *Server) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// TopScores returns the best finished matches across all sessions.
func (s *Server) TopScores() []TopScoreEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.leaderboard.Top()
}

// Metrics returns the server's counters.
func (s *Server) Metrics() *Metrics {
	return &s.metrics
}

// Shutdown gracefully shuts down the server by notifying all sessions and
// waiting for them to close (up to the given timeout).
// The caller should cancel the server context after Shutdown returns.
func (s *Server) Shutdown(timeout time.Duration) {
	s.mu.RLock()
	for _, sess := range s.sessions {
		sess.notify(SessionEvent{Type: EventServerShutdown})
	}
	s.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		if s.Count() == 0 {
			return
		}
		select {
		case <-deadline:
			s.log.Warnw("shutdown timed out", "sessions", s.Count())
			return
		case <-ticker.C:
		}
	}
}
