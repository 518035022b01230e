package engine

import "github.com/miniapp-factory/square-invasion/internal/object"

// Snapshot is an immutable copy of the observable match state.
type Snapshot struct {
	Phase            Phase               `json:"phase"`
	Tick             uint64              `json:"tick"`
	ElapsedMs        int64               `json:"elapsedMs"`
	Player           object.Player       `json:"player"`
	Weapon           object.Weapon       `json:"weapon"`
	Enemies          []object.Enemy      `json:"enemies"`
	UFOs             []object.UFO        `json:"ufos"`
	Projectiles      []object.Projectile `json:"projectiles"`
	EnemyProjectiles []object.Projectile `json:"enemyProjectiles"`
	PowerUp          *object.PowerUp     `json:"powerUp,omitempty"`
	HitCount         int                 `json:"hitCount"`
	Particles        []object.Particle   `json:"decorativeParticles"`
	UFOWaveSpawned   bool                `json:"ufoWaveSpawned"`
}

// Guns returns how many projectiles one Fire launches.
func (s *Snapshot) Guns() int {
	return len(s.Weapon.Offsets())
}

// Snapshot copies the current state. The result shares nothing with the
// engine and may be handed to other goroutines.
func (e *Engine) Snapshot() *Snapshot {
	s := &Snapshot{
		Phase:            e.phase,
		Tick:             e.ticks,
		ElapsedMs:        e.Elapsed().Milliseconds(),
		Player:           e.player,
		Weapon:           e.weapon,
		Enemies:          clone(e.enemies),
		UFOs:             clone(e.ufos),
		Projectiles:      clone(e.projectiles),
		EnemyProjectiles: clone(e.enemyProjectiles),
		HitCount:         e.hitCount,
		Particles:        clone(e.particles),
		UFOWaveSpawned:   e.ufoSpawned,
	}
	if e.powerUp != nil {
		p := *e.powerUp
		s.PowerUp = &p
	}
	return s
}

// clone copies items into a non-nil slice so empty collections encode as [].
func clone[T any](items []T) []T {
	return append(make([]T, 0, len(items)), items...)
}
