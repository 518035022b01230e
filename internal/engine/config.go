package engine

import (
	"time"

	"github.com/miniapp-factory/square-invasion/internal/loop/config"
)

// Features toggles the optional mechanics of a match. The simplest variant
// of the game has none of them: enemies fall and the player shoots.
type Features struct {
	PowerUps    bool `toml:"power_ups" json:"powerUps"`
	UFOWave     bool `toml:"ufo_wave" json:"ufoWave"`
	EnemyFire   bool `toml:"enemy_fire" json:"enemyFire"`
	Decorations bool `toml:"decorations" json:"decorations"`
}

// FullFeatures enables every mechanic.
func FullFeatures() Features {
	return Features{PowerUps: true, UFOWave: true, EnemyFire: true, Decorations: true}
}

// ClassicFeatures disables every optional mechanic.
func ClassicFeatures() Features {
	return Features{}
}

// Config holds the rules of a match. DefaultConfig mirrors the constants in
// the loop/config package; tests override individual fields.
type Config struct {
	Width  float64
	Height float64

	Step       time.Duration // Fixed simulation step
	MaxCatchUp int           // Max steps per Advance call

	Features Features

	PlayerX  float64
	PlayerY  float64
	MoveStep float64

	EnemySpeed         float64
	EnemySpawnInterval time.Duration

	ProjectileSpeed      float64
	EnemyFireStart       time.Duration
	EnemySecondShotDelay time.Duration

	MatchDuration time.Duration

	PowerUpFirstDelay  time.Duration
	PowerUpSecondDelay time.Duration
	PowerUpThirdDelay  time.Duration
	PowerUpSize        float64
	PowerUpSpeed       float64

	UFOWaveDelay time.Duration
	UFOHealth    int
	UFOSpeed     float64

	PinkSpawnInterval time.Duration
	RainSpawnInterval time.Duration
}

// DefaultConfig returns the full-featured rules of the game.
func DefaultConfig() Config {
	return Config{
		Width:      config.GameWidth,
		Height:     config.GameHeight,
		Step:       config.TickStep,
		MaxCatchUp: config.MaxCatchUp,
		Features:   FullFeatures(),

		PlayerX:  config.PlayerX,
		PlayerY:  config.PlayerY,
		MoveStep: config.MoveStep,

		EnemySpeed:         config.EnemySpeed,
		EnemySpawnInterval: config.EnemySpawnInterval,

		ProjectileSpeed:      config.ProjectileSpeed,
		EnemyFireStart:       config.EnemyFireStart,
		EnemySecondShotDelay: config.EnemySecondShotDelay,

		MatchDuration: config.MatchDuration,

		PowerUpFirstDelay:  config.PowerUpFirstDelay,
		PowerUpSecondDelay: config.PowerUpSecondDelay,
		PowerUpThirdDelay:  config.PowerUpThirdDelay,
		PowerUpSize:        config.PowerUpSize,
		PowerUpSpeed:       config.PowerUpSpeed,

		UFOWaveDelay: config.UFOWaveDelay,
		UFOHealth:    config.UFOHealth,
		UFOSpeed:     config.UFOSpeed,

		PinkSpawnInterval: config.PinkSpawnInterval,
		RainSpawnInterval: config.RainSpawnInterval,
	}
}
