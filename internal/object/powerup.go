package object

// Tier identifies which power-up pickup was collected.
type Tier int

const (
	TierFirst Tier = iota + 1
	TierSecond
	TierThird
)

// String returns the wire name of the tier.
func (t Tier) String() string {
	switch t {
	case TierFirst:
		return "first"
	case TierSecond:
		return "second"
	case TierThird:
		return "third"
	default:
		return "none"
	}
}

// MarshalText encodes the tier by name.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// PowerUp is a falling pickup that upgrades the player's gun when shot.
type PowerUp struct {
	ID    int     `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Size  float64 `json:"size"`
	Speed float64 `json:"speed"`
	Type  Tier    `json:"type"`
}

// NewPowerUp creates a pickup entering just above the field at column x.
func NewPowerUp(id int, x, size, speed float64, tier Tier) PowerUp {
	return PowerUp{
		ID:    id,
		X:     x,
		Y:     -size,
		Size:  size,
		Speed: speed,
		Type:  tier,
	}
}

// Update lets the pickup fall. It is culled once fully below the field.
func (p *PowerUp) Update(ctx UpdateContext) bool {
	p.Y += p.Speed
	return p.Y >= ctx.Field.Height+p.Size
}

// Weapon levels set by the second and third pickups.
const (
	LevelBase   = 1
	LevelSecond = 5
	LevelThird  = 7
)

var (
	patternSingle = []float64{0}
	patternFirst  = []float64{-10, 0, 10}
	patternSecond = []float64{-20, -10, 0, 10, 20}
	patternThird  = []float64{-30, -20, -10, 0, 10, 20, 30}
)

// Weapon is the player's multi-shot state.
type Weapon struct {
	Armed bool `json:"armed"` // First pickup collected
	Level int  `json:"level"` // LevelBase, LevelSecond or LevelThird
}

// NewWeapon returns the single-shot starting weapon.
func NewWeapon() Weapon {
	return Weapon{Level: LevelBase}
}

// Apply upgrades the weapon for a collected tier. A later pickup overwrites
// the level set by an earlier one.
func (w *Weapon) Apply(t Tier) {
	switch t {
	case TierFirst:
		w.Armed = true
	case TierSecond:
		w.Level = LevelSecond
	case TierThird:
		w.Level = LevelThird
	}
}

// Offsets returns the horizontal muzzle offsets of one volley. The returned
// slice is shared and must not be modified.
func (w Weapon) Offsets() []float64 {
	switch {
	case w.Level == LevelThird:
		return patternThird
	case w.Level == LevelSecond:
		return patternSecond
	case w.Armed:
		return patternFirst
	default:
		return patternSingle
	}
}
