package object

import "github.com/miniapp-factory/square-invasion/internal/loop/config"

// UFO is a boss unit of the end-game wave. It patrols horizontally and
// takes several hits to destroy.
type UFO struct {
	ID        int     `json:"id"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Direction int     `json:"direction"` // -1 or +1
	Health    int     `json:"health"`
	Speed     float64 `json:"-"`
}

// NewUFO creates a UFO at a station heading right.
func NewUFO(id int, x, y float64, health int, speed float64) UFO {
	return UFO{
		ID:        id,
		X:         x,
		Y:         y,
		Direction: config.UFOStartHeading,
		Health:    health,
		Speed:     speed,
	}
}

// Stations returns the fixed spawn points of the UFO wave.
func Stations(field Field) [config.UFOWaveSize][2]float64 {
	return [config.UFOWaveSize][2]float64{
		{config.UFOStationInset, config.UFOStationY},
		{field.Width / 2, config.UFOStationY},
		{field.Width - config.UFOStationInset, config.UFOStationY},
	}
}

// Update patrols the UFO. A step that would bring it within UFOEdgeMargin of
// an edge is reflected: the heading flips and the UFO steps back instead.
// UFOs never leave the field, so they are never culled here.
func (u *UFO) Update(ctx UpdateContext) bool {
	step := float64(u.Direction) * u.Speed
	next := u.X + step
	if next < config.UFOEdgeMargin || next > ctx.Field.Width-config.UFOEdgeMargin {
		u.X -= step
		u.Direction = -u.Direction
		return false
	}
	u.X = next
	return false
}

// Hit removes one point of health. Returns true when the UFO is destroyed.
func (u *UFO) Hit() bool {
	if u.Health > 0 {
		u.Health--
	}
	return u.Health <= 0
}

// Destroyed reports whether the UFO has no health left.
func (u UFO) Destroyed() bool {
	return u.Health <= 0
}
