package engine

import (
	"github.com/miniapp-factory/square-invasion/internal/loop/config"
	"github.com/miniapp-factory/square-invasion/internal/object"
	"github.com/miniapp-factory/square-invasion/internal/physics"
)

// tick runs one gameplay step. Collisions are tested against the positions
// projectiles and enemies had before this tick moved them, so every hit
// lags movement by one tick. A terminal transition ends the tick.
func (e *Engine) tick() {
	e.ticks++

	e.prevEnemies = append(e.prevEnemies[:0], e.enemies...)
	e.prevProjectiles = append(e.prevProjectiles[:0], e.projectiles...)
	e.prevEnemyProjectiles = append(e.prevEnemyProjectiles[:0], e.enemyProjectiles...)

	e.move()

	if e.playerHit() {
		e.finish(PhaseGameOver, "player hit")
		return
	}

	e.indexProjectiles()
	e.resolveEnemyHits()
	e.resolveUFOHits()
	e.resolvePowerUpHit()

	if e.breached() {
		e.finish(PhaseGameOver, "enemy breached")
		return
	}
	if e.ufoSpawned && len(e.ufos) == 0 {
		e.finish(PhaseWon, "ufo wave destroyed")
		return
	}

	if e.cfg.Features.EnemyFire {
		e.fireEnemies()
	}
}

// move advances every population and drops what left the field.
func (e *Engine) move() {
	ctx := object.UpdateContext{Field: e.field}

	e.enemies = object.Sweep(e.enemies, ctx)
	e.ufos = object.Sweep(e.ufos, ctx)
	e.projectiles = object.Sweep(e.projectiles, ctx)
	e.enemyProjectiles = object.Sweep(e.enemyProjectiles, ctx)
	e.particles = object.Sweep(e.particles, ctx)

	if e.powerUp != nil && e.powerUp.Update(ctx) {
		e.powerUp = nil
	}
}

func (e *Engine) playerHit() bool {
	for _, p := range e.prevEnemyProjectiles {
		if physics.BoxOverlap(p.X, p.Y, e.player.X, e.player.Y, config.PlayerHitHalfExtent) {
			return true
		}
	}
	return false
}

// indexProjectiles fills the broad phase with the pre-tick player
// projectiles. Grid entries are indices into prevProjectiles.
func (e *Engine) indexProjectiles() {
	e.grid.Clear()
	for i, p := range e.prevProjectiles {
		e.grid.Insert(p.X, p.Y, i)
	}
	if cap(e.consumed) < len(e.prevProjectiles) {
		e.consumed = make([]bool, len(e.prevProjectiles))
	}
	e.consumed = e.consumed[:len(e.prevProjectiles)]
	clear(e.consumed)
}

// hitBy reports whether any pre-tick projectile lies inside the box around
// (x, y). Projectiles are not consumed.
func (e *Engine) hitBy(x, y, halfExtent float64) bool {
	hit := false
	e.grid.QueryAround(x, y, func(i int) bool {
		p := e.prevProjectiles[i]
		hit = physics.BoxOverlap(p.X, p.Y, x, y, halfExtent)
		return hit
	})
	return hit
}

// resolveEnemyHits destroys every enemy a projectile touched. One projectile
// may destroy several enemies.
func (e *Engine) resolveEnemyHits() {
	if e.grid.Len() == 0 || len(e.enemies) == 0 {
		return
	}
	var destroyed int
	e.enemies, destroyed = object.Remove(e.enemies, func(en *object.Enemy) bool {
		return e.hitBy(en.X, en.Y, config.EnemyHitHalfExtent)
	})
	e.hitCount += destroyed
}

// resolveUFOHits takes one health per projectile touching a UFO. Each
// projectile is spent on the first UFO it touches.
func (e *Engine) resolveUFOHits() {
	if e.grid.Len() == 0 || len(e.ufos) == 0 {
		return
	}
	spent := 0
	for i := range e.ufos {
		u := &e.ufos[i]
		e.grid.QueryAround(u.X, u.Y, func(j int) bool {
			if e.consumed[j] {
				return false
			}
			p := e.prevProjectiles[j]
			if !physics.BoxOverlap(p.X, p.Y, u.X, u.Y, config.UFOHitHalfExtent) {
				return false
			}
			e.consumed[j] = true
			spent++
			return u.Hit()
		})
	}
	if spent == 0 {
		return
	}

	e.ufos, _ = object.Remove(e.ufos, func(u *object.UFO) bool { return u.Destroyed() })
	e.projectiles, _ = object.Remove(e.projectiles, func(p *object.Projectile) bool {
		return e.spent(p.ID)
	})
}

func (e *Engine) spent(id int) bool {
	for i, p := range e.prevProjectiles {
		if p.ID == id {
			return e.consumed[i]
		}
	}
	return false
}

func (e *Engine) resolvePowerUpHit() {
	if e.powerUp == nil {
		return
	}
	pu := *e.powerUp
	half := pu.Size / 2
	for _, p := range e.prevProjectiles {
		if physics.BoxOverlap(p.X, p.Y, pu.X, pu.Y, half) {
			e.powerUp = nil
			e.collect(pu.Type)
			return
		}
	}
}

func (e *Engine) breached() bool {
	for _, en := range e.prevEnemies {
		if en.Breached(e.field) {
			return true
		}
	}
	return false
}
