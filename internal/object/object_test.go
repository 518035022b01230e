package object

import (
	"slices"
	"testing"

	"github.com/miniapp-factory/square-invasion/internal/loop/config"
)

var field = Field{Width: config.GameWidth, Height: config.GameHeight}

func TestSweepCullsEnemiesPastBound(t *testing.T) {
	ctx := UpdateContext{Field: field}
	enemies := []Enemy{
		NewEnemy(0, 100, config.EnemySpeed),
		{ID: 1, X: 50, Y: config.GameHeight + config.EnemyCullMargin - 1, Speed: config.EnemySpeed},
		{ID: 2, X: 60, Y: 300, Speed: config.EnemySpeed},
	}

	enemies = Sweep(enemies, ctx)

	if len(enemies) != 2 {
		t.Fatalf("len = %d, want 2", len(enemies))
	}
	if enemies[0].ID != 0 || enemies[1].ID != 2 {
		t.Errorf("kept ids %d,%d, want 0,2", enemies[0].ID, enemies[1].ID)
	}
	if enemies[0].Y != config.EnemySpawnY+config.EnemySpeed {
		t.Errorf("enemy y = %v, want %v", enemies[0].Y, config.EnemySpawnY+config.EnemySpeed)
	}
	for _, e := range enemies {
		if e.Y >= config.GameHeight+config.EnemyCullMargin {
			t.Errorf("enemy %d kept past despawn bound at y=%v", e.ID, e.Y)
		}
	}
}

func TestProjectileDespawnBounds(t *testing.T) {
	ctx := UpdateContext{Field: field}
	shots := []Projectile{
		NewProjectile(0, 10, -16, config.ProjectileSpeed), // reaches -19, kept
		NewProjectile(1, 10, -17, config.ProjectileSpeed), // reaches -20, dropped
		NewEnemyProjectile(2, 10, config.GameHeight-4, config.ProjectileSpeed),
		NewEnemyProjectile(3, 10, config.GameHeight-3, config.ProjectileSpeed),
	}

	shots = Sweep(shots, ctx)

	var ids []int
	for _, s := range shots {
		ids = append(ids, s.ID)
	}
	if !slices.Equal(ids, []int{0, 2}) {
		t.Errorf("kept %v, want [0 2]", ids)
	}
}

func TestPlayerMoveClamps(t *testing.T) {
	p := NewPlayer(config.PlayerX, config.PlayerY)
	for range 20 {
		p.Move(-config.MoveStep, field)
		if p.X < config.PlayerMargin || p.X > config.GameWidth-config.PlayerMargin {
			t.Fatalf("x = %v out of bounds", p.X)
		}
	}
	if p.X != config.PlayerMargin {
		t.Errorf("x = %v, want %v", p.X, config.PlayerMargin)
	}
	for range 20 {
		p.Move(config.MoveStep, field)
	}
	if p.X != config.GameWidth-config.PlayerMargin {
		t.Errorf("x = %v, want %v", p.X, config.GameWidth-config.PlayerMargin)
	}
	x, y := p.Muzzle(-10)
	if x != p.X-10 || y != config.PlayerY-config.MuzzleOffset {
		t.Errorf("muzzle = (%v,%v)", x, y)
	}
}

func TestUFOBouncesOffEdges(t *testing.T) {
	ctx := UpdateContext{Field: field}
	u := NewUFO(0, config.GameWidth-config.UFOEdgeMargin-0.25, config.UFOStationY, config.UFOHealth, config.UFOSpeed)

	u.Update(ctx)

	if u.Direction != -1 {
		t.Fatalf("direction = %d, want -1", u.Direction)
	}
	want := config.GameWidth - config.UFOEdgeMargin - 0.75
	if u.X != want {
		t.Errorf("x = %v, want %v (reflected, not clamped)", u.X, want)
	}

	u.Update(ctx)
	if u.X != want-config.UFOSpeed {
		t.Errorf("x after second step = %v, want %v", u.X, want-config.UFOSpeed)
	}

	left := UFO{X: config.UFOEdgeMargin + 0.2, Direction: -1, Speed: config.UFOSpeed, Health: 1}
	left.Update(ctx)
	if left.Direction != 1 {
		t.Errorf("left edge direction = %d, want 1", left.Direction)
	}
}

func TestUFOStaysInsideFieldWhilePatrolling(t *testing.T) {
	ctx := UpdateContext{Field: field}
	var ufos []UFO
	for i, s := range Stations(field) {
		ufos = append(ufos, NewUFO(i, s[0], s[1], config.UFOHealth, config.UFOSpeed))
	}
	for range 5000 {
		ufos = Sweep(ufos, ctx)
		for _, u := range ufos {
			if u.X < config.UFOEdgeMargin-config.UFOSpeed || u.X > config.GameWidth-config.UFOEdgeMargin+config.UFOSpeed {
				t.Fatalf("ufo %d escaped to x=%v", u.ID, u.X)
			}
		}
	}
	if len(ufos) != config.UFOWaveSize {
		t.Errorf("len = %d, want %d", len(ufos), config.UFOWaveSize)
	}
}

func TestUFOHit(t *testing.T) {
	u := NewUFO(0, 100, 20, 2, config.UFOSpeed)
	if u.Hit() {
		t.Fatal("destroyed after one hit")
	}
	if !u.Hit() || !u.Destroyed() {
		t.Fatal("not destroyed after two hits")
	}
	if !u.Hit() || u.Health != 0 {
		t.Errorf("health = %d, want 0", u.Health)
	}
}

func TestWeaponOffsets(t *testing.T) {
	tests := []struct {
		name  string
		tiers []Tier
		want  int
	}{
		{"none", nil, 1},
		{"first", []Tier{TierFirst}, 3},
		{"first then second", []Tier{TierFirst, TierSecond}, 5},
		{"all three", []Tier{TierFirst, TierSecond, TierThird}, 7},
		{"second without first", []Tier{TierSecond}, 5},
		{"third then second", []Tier{TierThird, TierSecond}, 5},
		{"third then first", []Tier{TierThird, TierFirst}, 7},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWeapon()
			for _, tier := range tc.tiers {
				w.Apply(tier)
			}
			got := w.Offsets()
			if len(got) != tc.want {
				t.Fatalf("len(offsets) = %d, want %d", len(got), tc.want)
			}
			if got[len(got)/2] != 0 {
				t.Errorf("middle offset = %v, want 0", got[len(got)/2])
			}
		})
	}
}

func TestPowerUpAndParticlesCull(t *testing.T) {
	ctx := UpdateContext{Field: field}
	p := NewPowerUp(0, 100, config.PowerUpSize, config.PowerUpSpeed, TierFirst)
	if p.Y != -config.PowerUpSize {
		t.Fatalf("spawn y = %v", p.Y)
	}
	p.Y = config.GameHeight + config.PowerUpSize - 1
	if !p.Update(ctx) {
		t.Error("power-up kept past bound")
	}

	parts := []Particle{
		NewPinkSquare(0, 10, 8, 2),
		NewRainSquare(1, 10, config.RainSize, config.RainSpeed, config.RainCullMargin, 3),
	}
	parts[0].Y = config.GameHeight + 7
	parts[1].Y = config.GameHeight
	parts = Sweep(parts, ctx)
	if len(parts) != 1 || parts[0].Kind != ParticleRain {
		t.Errorf("kept %+v, want only the rain square", parts)
	}
}

func TestRemoveAndIDs(t *testing.T) {
	var ids IDs
	items := []Enemy{{ID: ids.Next()}, {ID: ids.Next()}, {ID: ids.Next()}}
	items, n := Remove(items, func(e *Enemy) bool { return e.ID == 1 })
	if n != 1 || len(items) != 2 || items[1].ID != 2 {
		t.Errorf("Remove = %+v, %d", items, n)
	}
	if ids.Peek() != 3 {
		t.Errorf("Peek = %d, want 3", ids.Peek())
	}
}
