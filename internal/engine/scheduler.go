package engine

import (
	"cmp"
	"slices"
	"time"
)

// Timer names used by the engine.
const (
	TimerEnemySpawn    = "enemy-spawn"
	TimerPinkSpawn     = "pink-spawn"
	TimerRainSpawn     = "rain-spawn"
	TimerPowerUpFirst  = "powerup-first"
	TimerPowerUpSecond = "powerup-second"
	TimerPowerUpThird  = "powerup-third"
	TimerUFOWave       = "ufo-wave"
	TimerMatchEnd      = "match-end"
	TimerEnemyShot     = "enemy-shot"
)

// TimerID identifies one scheduled timer.
type TimerID uint64

type timer struct {
	id    TimerID
	name  string
	due   time.Duration
	every time.Duration // zero for one-shot timers
	gen   uint64
	fn    func()
}

// Scheduler runs named callbacks on the simulation clock. Time only moves
// when Advance is called, so callbacks interleave deterministically with
// ticks. Every timer is tagged with the generation it was created in;
// Reset starts a new generation and no callback of an older one runs.
type Scheduler struct {
	timers []timer // sorted by (due, id)
	now    time.Duration
	gen    uint64
	nextID TimerID
}

// NewScheduler creates an empty scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{nextID: 1}
}

// Now returns the current scheduler time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Generation returns the current generation.
func (s *Scheduler) Generation() uint64 {
	return s.gen
}

// After schedules fn to run once, delay from now.
func (s *Scheduler) After(name string, delay time.Duration, fn func()) TimerID {
	return s.add(name, delay, 0, fn)
}

// Every schedules fn to run each interval, first one interval from now.
// Panics if interval is not positive.
func (s *Scheduler) Every(name string, interval time.Duration, fn func()) TimerID {
	if interval <= 0 {
		panic("engine: non-positive timer interval for " + name)
	}
	return s.add(name, interval, interval, fn)
}

func (s *Scheduler) add(name string, delay, every time.Duration, fn func()) TimerID {
	if delay < 0 {
		delay = 0
	}
	t := timer{
		id:    s.nextID,
		name:  name,
		due:   s.now + delay,
		every: every,
		gen:   s.gen,
		fn:    fn,
	}
	s.nextID++
	s.insert(t)
	return t.id
}

func (s *Scheduler) insert(t timer) {
	i, _ := slices.BinarySearchFunc(s.timers, t, compareTimers)
	s.timers = slices.Insert(s.timers, i, t)
}

func compareTimers(a, b timer) int {
	if c := cmp.Compare(a.due, b.due); c != 0 {
		return c
	}
	return cmp.Compare(a.id, b.id)
}

// Cancel stops one timer. Returns false if it already fired or was cancelled.
func (s *Scheduler) Cancel(id TimerID) bool {
	i := slices.IndexFunc(s.timers, func(t timer) bool { return t.id == id })
	if i < 0 {
		return false
	}
	s.timers = slices.Delete(s.timers, i, i+1)
	return true
}

// CancelNamed stops every timer with the given name and returns how many.
func (s *Scheduler) CancelNamed(name string) int {
	before := len(s.timers)
	s.timers = slices.DeleteFunc(s.timers, func(t timer) bool { return t.name == name })
	return before - len(s.timers)
}

// Pending returns how many timers with the given name are scheduled.
func (s *Scheduler) Pending(name string) int {
	n := 0
	for _, t := range s.timers {
		if t.name == name {
			n++
		}
	}
	return n
}

// Len returns the number of scheduled timers.
func (s *Scheduler) Len() int {
	return len(s.timers)
}

// Reset cancels every timer and starts a new generation.
func (s *Scheduler) Reset() {
	clear(s.timers)
	s.timers = s.timers[:0]
	s.gen++
}

// Advance moves the clock to now and runs every timer due by then, in due
// order. Callbacks may schedule or cancel timers, including resetting the
// scheduler. Returns the number of callbacks run.
func (s *Scheduler) Advance(now time.Duration) int {
	if now > s.now {
		s.now = now
	}
	fired := 0
	for len(s.timers) > 0 && s.timers[0].due <= s.now {
		t := s.timers[0]
		s.timers = slices.Delete(s.timers, 0, 1)
		if t.gen != s.gen {
			continue
		}
		if t.every > 0 {
			next := t
			next.due += t.every
			s.insert(next)
		}
		t.fn()
		fired++
	}
	return fired
}
