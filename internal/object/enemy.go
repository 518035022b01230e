package object

import "github.com/miniapp-factory/square-invasion/internal/loop/config"

// Enemy is a descending invader.
type Enemy struct {
	ID    int     `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Speed float64 `json:"-"` // px per tick, downward
	Fired bool    `json:"fired"`
}

// NewEnemy creates an enemy entering from above the field at column x.
func NewEnemy(id int, x, speed float64) Enemy {
	return Enemy{
		ID:    id,
		X:     x,
		Y:     config.EnemySpawnY,
		Speed: speed,
	}
}

// Update moves the enemy down. Enemies are culled EnemyCullMargin below the field.
func (e *Enemy) Update(ctx UpdateContext) bool {
	e.Y += e.Speed
	return e.Y >= ctx.Field.Height+config.EnemyCullMargin
}

// Breached reports whether the enemy got past the bottom of the field.
func (e Enemy) Breached(field Field) bool {
	return e.Y > field.Height
}
