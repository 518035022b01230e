package server

import (
	"context"
	"testing"
	"time"

	"github.com/miniapp-factory/square-invasion/internal/engine"
)

func quietEngine() *engine.Engine {
	cfg := engine.DefaultConfig()
	cfg.EnemySpawnInterval = time.Hour
	cfg.Features = engine.ClassicFeatures()
	return engine.New(cfg, engine.WithSeed(1))
}

func newTestServer() *Server {
	return NewServer(quietEngine, nil)
}

func TestOpenPublishesInitialSnapshot(t *testing.T) {
	s := newTestServer()
	sess := s.Open("alice")

	if s.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", s.Count())
	}
	snap := sess.Snapshot()
	if snap == nil || snap.Phase != engine.PhaseStart {
		t.Fatalf("initial snapshot = %+v", snap)
	}
}

func TestSessionInputsApplyOnTick(t *testing.T) {
	s := newTestServer()
	sess := s.Open("alice")

	sess.SendInput(engine.EventStart)
	sess.SendInput(engine.EventFire)
	sess.SendInput(engine.EventStart) // Ignored while playing
	if sess.Snapshot().Phase != engine.PhaseStart {
		t.Fatal("input applied before the server ticked")
	}

	s.Tick(16 * time.Millisecond)

	snap := sess.Snapshot()
	if snap.Phase != engine.PhasePlaying {
		t.Fatalf("phase = %v, want playing", snap.Phase)
	}
	if len(snap.Projectiles) != 1 {
		t.Fatalf("%d projectiles, want 1", len(snap.Projectiles))
	}
	m := s.Metrics()
	if m.InputsAccepted.Load() != 2 || m.InputsIgnored.Load() != 1 {
		t.Fatalf("accepted=%d ignored=%d", m.InputsAccepted.Load(), m.InputsIgnored.Load())
	}
	if m.MatchesStarted.Load() != 1 || m.Steps.Load() != 1 {
		t.Fatalf("started=%d steps=%d", m.MatchesStarted.Load(), m.Steps.Load())
	}
}

func TestSendInputDropsWhenFull(t *testing.T) {
	s := newTestServer()
	sess := s.Open("alice")

	dropped := 0
	for range cap(sess.inputs) + 3 {
		if !sess.SendInput(engine.EventFire) {
			dropped++
		}
	}
	if dropped != 3 || s.Metrics().InputsDropped.Load() != 3 {
		t.Fatalf("dropped=%d metric=%d, want 3", dropped, s.Metrics().InputsDropped.Load())
	}
}

func TestMatchEndNotifiesAndRecordsScore(t *testing.T) {
	s := NewServer(func() *engine.Engine {
		cfg := engine.DefaultConfig()
		cfg.Features = engine.ClassicFeatures()
		cfg.EnemySpawnInterval = time.Hour
		cfg.MatchDuration = 32 * time.Millisecond
		return engine.New(cfg, engine.WithSeed(1))
	}, nil)
	sess := s.Open("bob")
	sess.SendInput(engine.EventStart)

	s.Tick(16 * time.Millisecond)
	s.Tick(16 * time.Millisecond)

	select {
	case ev := <-sess.Events():
		if ev.Type != EventMatchEnded || ev.Phase != engine.PhaseWon {
			t.Fatalf("event = %+v", ev)
		}
	default:
		t.Fatal("no match-ended event")
	}
	top := s.TopScores()
	if len(top) != 1 || top[0].Username != "bob" {
		t.Fatalf("top scores = %+v", top)
	}
	if s.Metrics().MatchesWon.Load() != 1 {
		t.Fatal("won match not counted")
	}
}

func TestCloseClosesEvents(t *testing.T) {
	s := newTestServer()
	sess := s.Open("alice")
	s.Close(sess.ID)
	s.Close(sess.ID)

	if _, ok := <-sess.Events(); ok {
		t.Fatal("events channel still open")
	}
	if s.Count() != 0 {
		t.Fatalf("Count() = %d after close", s.Count())
	}
}

func TestShutdownNotifiesSessions(t *testing.T) {
	s := newTestServer()
	sess := s.Open("alice")

	go func() {
		for ev := range sess.Events() {
			if ev.Type == EventServerShutdown {
				s.Close(sess.ID)
			}
		}
	}()

	done := make(chan struct{})
	go func() {
		s.Shutdown(5 * time.Second)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Shutdown did not return")
	}
	if s.Count() != 0 {
		t.Fatal("session still open after shutdown")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	s := newTestServer()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestLeaderboard(t *testing.T) {
	l := NewLeaderboard(2)
	l.Record(1, "a", 3)
	l.Record(2, "b", 5)
	l.Record(1, "a", 2) // Lower than a's best, ignored
	l.Record(3, "c", 3) // Ties a, ranks after the earlier session

	top := l.Top()
	if len(top) != 2 || top[0].Username != "b" || top[1].Username != "a" {
		t.Fatalf("top = %+v", top)
	}

	l.Record(3, "c", 9)
	if top := l.Top(); top[0].Username != "c" || top[0].Score != 9 {
		t.Fatalf("top after improvement = %+v", top)
	}
}
