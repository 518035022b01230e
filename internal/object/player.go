package object

import (
	"github.com/miniapp-factory/square-invasion/internal/loop/config"
	"github.com/miniapp-factory/square-invasion/internal/physics"
)

// Player is the player-controlled gunship at the bottom of the field.
type Player struct {
	X float64 `json:"x"`
	Y float64 `json:"y"` // Fixed for the whole match
}

// NewPlayer creates the player at the given position.
func NewPlayer(x, y float64) Player {
	return Player{X: x, Y: y}
}

// Move shifts the player horizontally, keeping it PlayerMargin away from
// both field edges.
func (p *Player) Move(dx float64, field Field) {
	p.X = physics.Clamp(p.X+dx, config.PlayerMargin, field.Width-config.PlayerMargin)
}

// Muzzle returns where projectiles fired with the given offset appear.
func (p Player) Muzzle(offset float64) (float64, float64) {
	return p.X + offset, p.Y - config.MuzzleOffset
}
