// Package engine runs a single match of the game: a fixed-step simulation
// driven by real elapsed time, with all timed behavior owned by an explicit
// scheduler. The engine is not safe for concurrent use; one goroutine owns it
// and publishes snapshots to readers.
package engine

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/miniapp-factory/square-invasion/internal/object"
	"github.com/miniapp-factory/square-invasion/internal/physics"
)

// gridCellSize covers the largest fixed hit box, so a 3x3 cell query finds
// every candidate.
const gridCellSize = 20

// Rand is the source of randomness for spawn positions and sizes.
type Rand interface {
	Float64() float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random source.
func WithRand(r Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithSeed seeds a private random source, making spawns reproducible.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.rng = rand.New(rand.NewSource(seed)) }
}

// WithLogger sets the logger for phase transitions and spawns.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// ids holds one counter per population. Counters survive restarts so ids
// stay unique for the lifetime of the engine.
type ids struct {
	enemy           object.IDs
	ufo             object.IDs
	projectile      object.IDs
	enemyProjectile object.IDs
	powerUp         object.IDs
	particle        object.IDs
}

// Engine owns every entity of a match.
type Engine struct {
	cfg   Config
	field object.Field
	rng   Rand
	log   *zap.Logger
	sched *Scheduler

	phase     Phase
	now       time.Duration // Simulation clock, advanced one Step at a time
	accum     time.Duration // Real time not yet simulated
	ticks     uint64
	startedAt time.Duration
	endedAt   time.Duration

	player           object.Player
	weapon           object.Weapon
	enemies          []object.Enemy
	ufos             []object.UFO
	projectiles      []object.Projectile
	enemyProjectiles []object.Projectile
	powerUp          *object.PowerUp
	particles        []object.Particle
	hitCount         int

	ufoSpawned     bool
	firstCollected bool

	ids ids

	// Pre-tick copies and broad phase, reused across ticks
	prevEnemies          []object.Enemy
	prevProjectiles      []object.Projectile
	prevEnemyProjectiles []object.Projectile
	consumed             []bool
	grid                 *physics.SpatialGrid
}

// New creates an engine in the Start phase.
func New(cfg Config, opts ...Option) *Engine {
	e := &Engine{
		cfg:   cfg,
		field: object.Field{Width: cfg.Width, Height: cfg.Height},
		log:   zap.NewNop(),
		sched: NewScheduler(),
		phase: PhaseStart,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	e.grid = physics.NewSpatialGrid(cfg.Width, cfg.Height, gridCellSize)
	e.player = object.NewPlayer(cfg.PlayerX, cfg.PlayerY)
	e.weapon = object.NewWeapon()
	return e
}

// Config returns the rules the engine was created with.
func (e *Engine) Config() Config {
	return e.cfg
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// HitCount returns the number of enemies destroyed this match.
func (e *Engine) HitCount() int {
	return e.hitCount
}

// Now returns the simulation clock.
func (e *Engine) Now() time.Duration {
	return e.now
}

// Ticks returns the number of gameplay ticks simulated this match.
func (e *Engine) Ticks() uint64 {
	return e.ticks
}

// Elapsed returns the time since the match started. It stops at the
// terminal transition.
func (e *Engine) Elapsed() time.Duration {
	switch e.phase {
	case PhasePlaying:
		return e.now - e.startedAt
	case PhaseGameOver, PhaseWon:
		return e.endedAt - e.startedAt
	default:
		return 0
	}
}

// Scheduler exposes the timer queue, mainly for inspection.
func (e *Engine) Scheduler() *Scheduler {
	return e.sched
}

// Advance accumulates real elapsed time and runs as many fixed steps as it
// covers, up to MaxCatchUp. Time beyond that is dropped. Returns the number
// of steps run.
func (e *Engine) Advance(delta time.Duration) int {
	if delta > 0 {
		e.accum += delta
	}
	steps := 0
	for e.accum >= e.cfg.Step && steps < e.cfg.MaxCatchUp {
		e.accum -= e.cfg.Step
		e.Step()
		steps++
	}
	if e.accum >= e.cfg.Step {
		e.log.Debug("dropping simulation backlog", zap.Duration("backlog", e.accum))
		e.accum %= e.cfg.Step
	}
	return steps
}

// Step advances the clock by one fixed step: due timers run first, then one
// gameplay tick if a match is in progress.
func (e *Engine) Step() {
	e.now += e.cfg.Step
	e.sched.Advance(e.now)
	if e.phase == PhasePlaying {
		e.tick()
	}
}

// begin enters Playing with every population cleared.
func (e *Engine) begin() {
	e.sched.Reset()

	e.player = object.NewPlayer(e.cfg.PlayerX, e.cfg.PlayerY)
	e.weapon = object.NewWeapon()
	e.enemies = e.enemies[:0]
	e.ufos = e.ufos[:0]
	e.projectiles = e.projectiles[:0]
	e.enemyProjectiles = e.enemyProjectiles[:0]
	e.powerUp = nil
	e.particles = e.particles[:0]
	e.hitCount = 0
	e.ufoSpawned = false
	e.firstCollected = false
	e.ticks = 0

	e.phase = PhasePlaying
	e.startedAt = e.now
	e.endedAt = e.now
	e.arm()

	e.log.Info("match started",
		zap.Uint64("generation", e.sched.Generation()),
		zap.Bool("powerUps", e.cfg.Features.PowerUps),
		zap.Bool("ufoWave", e.cfg.Features.UFOWave),
		zap.Bool("enemyFire", e.cfg.Features.EnemyFire),
	)
}

// finish moves to a terminal phase and cancels every timer.
func (e *Engine) finish(phase Phase, reason string) {
	if e.phase != PhasePlaying {
		return
	}
	e.phase = phase
	e.endedAt = e.now
	e.sched.Reset()
	e.log.Info("match ended",
		zap.Stringer("phase", phase),
		zap.String("reason", reason),
		zap.Int("hits", e.hitCount),
		zap.Duration("elapsed", e.Elapsed()),
	)
}
