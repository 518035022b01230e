package object

import "github.com/miniapp-factory/square-invasion/internal/loop/config"

// Owner tells whose gun fired a projectile.
type Owner int

const (
	OwnerPlayer Owner = iota
	OwnerEnemy
)

// Projectile is a bullet travelling straight up (player) or down (enemy).
type Projectile struct {
	ID    int     `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Owner Owner   `json:"-"`
	Speed float64 `json:"-"` // px per tick, always positive
}

// NewProjectile creates a player projectile travelling up.
func NewProjectile(id int, x, y, speed float64) Projectile {
	return Projectile{ID: id, X: x, Y: y, Owner: OwnerPlayer, Speed: speed}
}

// NewEnemyProjectile creates an enemy projectile travelling down.
func NewEnemyProjectile(id int, x, y, speed float64) Projectile {
	return Projectile{ID: id, X: x, Y: y, Owner: OwnerEnemy, Speed: speed}
}

// Update moves the projectile. Player shots are kept while y > ProjectileCullY,
// enemy shots while they are above the bottom edge.
func (p *Projectile) Update(ctx UpdateContext) bool {
	if p.Owner == OwnerEnemy {
		p.Y += p.Speed
		return p.Y >= ctx.Field.Height
	}
	p.Y -= p.Speed
	return p.Y <= config.ProjectileCullY
}
