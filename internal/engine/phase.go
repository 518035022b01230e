package engine

import "fmt"

// Phase is the coarse state of a match.
type Phase int

const (
	PhaseStart    Phase = iota // Title screen, nothing simulated
	PhasePlaying               // Active gameplay
	PhaseGameOver              // Player was hit or an enemy got through
	PhaseWon                   // UFO wave destroyed or the match timer ran out
)

var phaseNames = [...]string{
	PhaseStart:    "start",
	PhasePlaying:  "playing",
	PhaseGameOver: "gameover",
	PhaseWon:      "won",
}

// String returns the wire name of the phase.
func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

// Terminal reports whether the phase ends a match.
func (p Phase) Terminal() bool {
	return p == PhaseGameOver || p == PhaseWon
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a phase name.
func (p *Phase) UnmarshalText(text []byte) error {
	for i, name := range phaseNames {
		if name == string(text) {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}
