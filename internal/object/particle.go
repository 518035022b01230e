package object

// ParticleKind distinguishes the decorative drift populations.
type ParticleKind int

const (
	ParticlePink ParticleKind = iota // Translucent squares of random size and speed
	ParticleRain                     // Small shaded squares falling at a steady rate
)

// String returns the wire name of the kind.
func (k ParticleKind) String() string {
	if k == ParticleRain {
		return "rain"
	}
	return "pink"
}

// MarshalText encodes the kind by name.
func (k ParticleKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Particle is a purely visual square. It never collides.
type Particle struct {
	ID     int          `json:"id"`
	Kind   ParticleKind `json:"kind"`
	X      float64      `json:"x"`
	Y      float64      `json:"y"`
	Size   float64      `json:"size"`
	Speed  float64      `json:"speed"`
	Shade  int          `json:"shade"`
	Margin float64      `json:"-"` // Culled at y >= field height + Margin
}

// NewPinkSquare creates a pink square entering just above the field.
// Pink squares are culled once fully below the field.
func NewPinkSquare(id int, x, size, speed float64) Particle {
	return Particle{
		ID:     id,
		Kind:   ParticlePink,
		X:      x,
		Y:      -size,
		Size:   size,
		Speed:  speed,
		Margin: size,
	}
}

// NewRainSquare creates a shaded rain square at the top edge.
func NewRainSquare(id int, x, size, speed, margin float64, shade int) Particle {
	return Particle{
		ID:     id,
		Kind:   ParticleRain,
		X:      x,
		Y:      -size,
		Size:   size,
		Speed:  speed,
		Shade:  shade,
		Margin: margin,
	}
}

// Update lets the particle drift down.
func (p *Particle) Update(ctx UpdateContext) bool {
	p.Y += p.Speed
	return p.Y >= ctx.Field.Height+p.Margin
}
