// Package draw renders to ANSI terminals: a colored half-block canvas plus
// helpers for cursor control and chunked output.
package draw

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Shade characters from lightest to darkest.
var Shades = []rune{' ', '░', '▒', '▓', '█'}

// ShadeLevel returns a shade character for a value between 0.0 (empty) and 1.0 (solid).
func ShadeLevel(intensity float64) rune {
	if intensity <= 0 {
		return Shades[0]
	}
	if intensity >= 1 {
		return Shades[len(Shades)-1]
	}
	idx := int(intensity * float64(len(Shades)-1))
	return Shades[idx]
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Text colors for overlays.
const (
	ColorReset       = "\033[0m"
	ColorBold        = "\033[1m"
	ColorBrightCyan  = "\033[96m"
	ColorNeonGreen   = "\033[38;5;82m"
	ColorBrightRed   = "\033[91m"
	ColorBrightWhite = "\033[97m"
	ColorPurple      = "\033[38;5;135m"
)

// Ink is a canvas pixel color. The zero value is an empty pixel.
type Ink uint8

const (
	InkNone Ink = iota
	InkWhite
	InkRed
	InkGreen
	InkYellow
	InkOrange
	InkCyan
	InkMagenta
	InkPink
	InkPurple
	InkGray0 // Darkest of the gray ramp; Gray(n) counts up from here
	InkGray1
	InkGray2
	InkGray3
	InkGray4
)

// inkColors maps inks to xterm-256 palette indices.
var inkColors = [...]int{
	InkWhite:   15,
	InkRed:     196,
	InkGreen:   46,
	InkYellow:  226,
	InkOrange:  208,
	InkCyan:    51,
	InkMagenta: 201,
	InkPink:    213,
	InkPurple:  93,
	InkGray0:   240,
	InkGray1:   243,
	InkGray2:   246,
	InkGray3:   249,
	InkGray4:   252,
}

// GrayLevels is the number of inks on the gray ramp.
const GrayLevels = int(InkGray4-InkGray0) + 1

// Gray returns the ink for a gray ramp level, clamped to the ramp.
func Gray(level int) Ink {
	level = max(0, min(level, GrayLevels-1))
	return InkGray0 + Ink(level)
}

// xterm returns the palette index of the ink.
func (i Ink) xterm() int {
	if int(i) >= len(inkColors) {
		return inkColors[InkWhite]
	}
	return inkColors[i]
}
