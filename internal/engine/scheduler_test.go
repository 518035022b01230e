package engine

import (
	"slices"
	"testing"
	"time"
)

func TestSchedulerOrder(t *testing.T) {
	s := NewScheduler()
	var got []string
	record := func(name string) func() { return func() { got = append(got, name) } }

	s.After("b", 20*time.Millisecond, record("b"))
	s.After("a", 10*time.Millisecond, record("a"))
	s.After("c", 10*time.Millisecond, record("c"))

	if n := s.Advance(10 * time.Millisecond); n != 2 {
		t.Fatalf("fired %d timers at 10ms, want 2", n)
	}
	s.Advance(20 * time.Millisecond)

	if want := []string{"a", "c", "b"}; !slices.Equal(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
	if s.Len() != 0 {
		t.Fatalf("Len() = %d after all one-shots fired", s.Len())
	}
}

func TestSchedulerEvery(t *testing.T) {
	s := NewScheduler()
	count := 0
	s.Every("tick", 10*time.Millisecond, func() { count++ })

	s.Advance(35 * time.Millisecond)
	if count != 3 {
		t.Fatalf("count = %d, want 3", count)
	}
	if s.Pending("tick") != 1 {
		t.Fatalf("Pending(tick) = %d, want 1", s.Pending("tick"))
	}

	s.Advance(40 * time.Millisecond)
	if count != 4 {
		t.Fatalf("count = %d, want 4", count)
	}
}

func TestSchedulerEveryRejectsZeroInterval(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Every(0) did not panic")
		}
	}()
	NewScheduler().Every("bad", 0, func() {})
}

func TestSchedulerCancel(t *testing.T) {
	s := NewScheduler()
	fired := false
	id := s.After("once", 10*time.Millisecond, func() { fired = true })

	if !s.Cancel(id) {
		t.Fatal("Cancel returned false for a pending timer")
	}
	if s.Cancel(id) {
		t.Fatal("Cancel returned true twice")
	}
	s.Advance(time.Second)
	if fired {
		t.Fatal("cancelled timer fired")
	}
}

func TestSchedulerCancelNamed(t *testing.T) {
	s := NewScheduler()
	s.After("shot", time.Millisecond, func() {})
	s.After("shot", 2*time.Millisecond, func() {})
	s.After("other", time.Millisecond, func() {})

	if n := s.CancelNamed("shot"); n != 2 {
		t.Fatalf("CancelNamed = %d, want 2", n)
	}
	if s.Pending("shot") != 0 || s.Pending("other") != 1 {
		t.Fatalf("pending shot=%d other=%d", s.Pending("shot"), s.Pending("other"))
	}
}

func TestSchedulerReset(t *testing.T) {
	s := NewScheduler()
	fired := 0
	s.Every("spawn", 10*time.Millisecond, func() { fired++ })
	s.After("end", 50*time.Millisecond, func() { fired++ })

	gen := s.Generation()
	s.Reset()
	if s.Generation() != gen+1 {
		t.Fatalf("Generation() = %d, want %d", s.Generation(), gen+1)
	}
	if s.Len() != 0 {
		t.Fatalf("Len() = %d after Reset", s.Len())
	}
	if n := s.Advance(time.Second); n != 0 || fired != 0 {
		t.Fatalf("fired %d timers after Reset", fired)
	}
}

func TestSchedulerResetFromCallback(t *testing.T) {
	s := NewScheduler()
	var got []string

	s.After("end", 10*time.Millisecond, func() {
		got = append(got, "end")
		s.Reset()
		s.After("next", 5*time.Millisecond, func() { got = append(got, "next") })
	})
	s.After("stale", 10*time.Millisecond, func() { got = append(got, "stale") })

	s.Advance(10 * time.Millisecond)
	s.Advance(15 * time.Millisecond)

	if want := []string{"end", "next"}; !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSchedulerCallbackSchedulesDueTimer(t *testing.T) {
	s := NewScheduler()
	var got []string
	s.After("a", 10*time.Millisecond, func() {
		got = append(got, "a")
		s.After("b", 0, func() { got = append(got, "b") })
	})

	if n := s.Advance(10 * time.Millisecond); n != 2 {
		t.Fatalf("fired %d, want 2", n)
	}
	if want := []string{"a", "b"}; !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSchedulerClockNeverRewinds(t *testing.T) {
	s := NewScheduler()
	s.Advance(time.Second)
	s.Advance(time.Millisecond)
	if s.Now() != time.Second {
		t.Fatalf("Now() = %v, want 1s", s.Now())
	}
}
