// Package config centralizes all tunable game parameters.
package config

import "time"

// Playfield dimensions in logical pixels.
const (
	GameWidth  = 400
	GameHeight = 600
)

// Player
const (
	PlayerX      = GameWidth / 2    // Start column
	PlayerY      = GameHeight - 100 // Fixed row
	PlayerMargin = 20               // Closest the player may get to either side
	MoveStep     = 40               // Pixels per MoveLeft/MoveRight
	MuzzleOffset = 20               // Projectiles leave this far above the player
)

// Enemies
const (
	EnemySpawnInterval = 2000 * time.Millisecond
	EnemySpeed         = 1.5 // px per tick
	EnemySpawnY        = -20
	EnemyMargin        = 20 // Spawn column range is [EnemyMargin, GameWidth-EnemyMargin]
	EnemyCullMargin    = 20 // Culled at y >= GameHeight+EnemyCullMargin
)

// Projectiles
const (
	ProjectileSpeed      = 3.0 // px per tick, player and enemy alike
	ProjectileCullY      = -20 // Player projectiles are kept while y > ProjectileCullY
	EnemyFireStart       = 20 * time.Second
	EnemySecondShotDelay = 500 * time.Millisecond
)

// Collision half-extents (axis-aligned boxes, strict comparison).
const (
	PlayerHitHalfExtent = 10
	EnemyHitHalfExtent  = 20
	UFOHitHalfExtent    = 20
)

// Power-ups
const (
	PowerUpFirstDelay  = 10 * time.Second // After match start
	PowerUpSecondDelay = 30 * time.Second // After the first power-up is collected
	PowerUpThirdDelay  = 65 * time.Second // After the first power-up is collected
	PowerUpSize        = 30
	PowerUpSpeed       = 1.0
)

// UFO wave
const (
	UFOWaveDelay    = 60 * time.Second
	UFOHealth       = 20
	UFOSpeed        = 0.5
	UFOEdgeMargin   = 20
	UFOStationInset = 50
	UFOStationY     = 20
	UFOWaveSize     = 3
	UFOStartHeading = 1
)

// Match
const (
	MatchDuration = 120 * time.Second
)

// Decorative particles
const (
	PinkSpawnInterval = 500 * time.Millisecond
	PinkMinSize       = 5.0
	PinkMaxSize       = 15.0
	PinkMinSpeed      = 0.5
	PinkMaxSpeed      = 2.0

	RainSpawnInterval = 500 * time.Millisecond
	RainSize          = 10.0
	RainSpeed         = 2.0
	RainCullMargin    = 10.0
	RainShades        = 5
)

// Simulation clock
const (
	TickStep   = 16 * time.Millisecond
	MaxCatchUp = 8 // Fixed steps per Advance call before excess time is dropped
)

// Shutdown and end screens
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
	RestartGuardSeconds    = 1.0  // End screens ignore restart keys this long
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 30
	ClientTargetFrameTime = time.Second / ClientTargetFPS
	MaxTermWidth          = 100 // Render area is clamped to this many columns
	MaxTermHeight         = 50  // and this many rows
	MaxUsernameLength     = 16
)

// Server tick rate
const (
	ServerTickRate = 60
	ServerTickTime = time.Second / ServerTickRate
	InputQueueSize = 64
	EventQueueSize = 16
	TopScoresCount = 5
)
