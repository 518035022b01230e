package engine

import (
	"go.uber.org/zap"

	"github.com/miniapp-factory/square-invasion/internal/loop/config"
	"github.com/miniapp-factory/square-invasion/internal/object"
)

// arm schedules the timers of a fresh match.
func (e *Engine) arm() {
	e.sched.Every(TimerEnemySpawn, e.cfg.EnemySpawnInterval, e.spawnEnemy)
	e.sched.After(TimerMatchEnd, e.cfg.MatchDuration, func() {
		e.finish(PhaseWon, "time")
	})

	f := e.cfg.Features
	if f.Decorations {
		e.sched.Every(TimerPinkSpawn, e.cfg.PinkSpawnInterval, e.spawnPink)
		e.sched.Every(TimerRainSpawn, e.cfg.RainSpawnInterval, e.spawnRain)
	}
	if f.PowerUps {
		e.sched.After(TimerPowerUpFirst, e.cfg.PowerUpFirstDelay, func() {
			e.spawnPowerUp(object.TierFirst)
		})
	}
	if f.UFOWave {
		e.sched.After(TimerUFOWave, e.cfg.UFOWaveDelay, e.spawnUFOWave)
	}
}

// between maps the next random value onto [lo, hi).
func (e *Engine) between(lo, hi float64) float64 {
	return lo + e.rng.Float64()*(hi-lo)
}

func (e *Engine) spawnEnemy() {
	if e.Elapsed() >= e.cfg.MatchDuration {
		return
	}
	x := e.between(config.EnemyMargin, e.cfg.Width-config.EnemyMargin)
	enemy := object.NewEnemy(e.ids.enemy.Next(), x, e.cfg.EnemySpeed)
	e.enemies = append(e.enemies, enemy)
	e.log.Debug("enemy spawned", zap.Int("id", enemy.ID), zap.Float64("x", x))
}

func (e *Engine) spawnPink() {
	x := e.between(0, e.cfg.Width)
	size := e.between(config.PinkMinSize, config.PinkMaxSize)
	speed := e.between(config.PinkMinSpeed, config.PinkMaxSpeed)
	e.particles = append(e.particles, object.NewPinkSquare(e.ids.particle.Next(), x, size, speed))
}

func (e *Engine) spawnRain() {
	x := e.between(0, e.cfg.Width)
	shade := min(int(e.rng.Float64()*config.RainShades), config.RainShades-1)
	e.particles = append(e.particles, object.NewRainSquare(
		e.ids.particle.Next(), x, config.RainSize, config.RainSpeed, config.RainCullMargin, shade,
	))
}

// spawnPowerUp drops a power-up of the given tier, replacing any still on
// the field.
func (e *Engine) spawnPowerUp(tier object.Tier) {
	x := e.between(0, e.cfg.Width)
	p := object.NewPowerUp(e.ids.powerUp.Next(), x, e.cfg.PowerUpSize, e.cfg.PowerUpSpeed, tier)
	e.powerUp = &p
	e.log.Debug("power-up spawned", zap.Stringer("tier", tier), zap.Float64("x", x))
}

func (e *Engine) spawnUFOWave() {
	if e.ufoSpawned {
		return
	}
	for _, s := range object.Stations(e.field) {
		e.ufos = append(e.ufos, object.NewUFO(e.ids.ufo.Next(), s[0], s[1], e.cfg.UFOHealth, e.cfg.UFOSpeed))
	}
	e.ufoSpawned = true
	e.log.Info("ufo wave spawned", zap.Int("count", len(e.ufos)))
}

// collect applies a power-up tier. The first pickup arms the later tiers.
func (e *Engine) collect(tier object.Tier) {
	e.weapon.Apply(tier)
	e.log.Debug("power-up collected", zap.Stringer("tier", tier), zap.Int("level", e.weapon.Level))
	if tier != object.TierFirst || e.firstCollected {
		return
	}
	e.firstCollected = true
	e.sched.After(TimerPowerUpSecond, e.cfg.PowerUpSecondDelay, func() {
		e.spawnPowerUp(object.TierSecond)
	})
	e.sched.After(TimerPowerUpThird, e.cfg.PowerUpThirdDelay, func() {
		e.spawnPowerUp(object.TierThird)
	})
}

// fireEnemies gives every enemy that has not fired yet its two shots: one
// now and one after EnemySecondShotDelay from the same position.
func (e *Engine) fireEnemies() {
	elapsed := e.Elapsed()
	if elapsed <= e.cfg.EnemyFireStart || elapsed >= e.cfg.MatchDuration {
		return
	}
	for i := range e.enemies {
		en := &e.enemies[i]
		if en.Fired {
			continue
		}
		en.Fired = true
		x, y := en.X, en.Y
		e.spawnEnemyProjectile(x, y)
		e.sched.After(TimerEnemyShot, e.cfg.EnemySecondShotDelay, func() {
			e.spawnEnemyProjectile(x, y)
		})
	}
}

func (e *Engine) spawnEnemyProjectile(x, y float64) {
	p := object.NewEnemyProjectile(e.ids.enemyProjectile.Next(), x, y, e.cfg.ProjectileSpeed)
	e.enemyProjectiles = append(e.enemyProjectiles, p)
}
