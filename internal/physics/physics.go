// Package physics provides collision detection and distance utilities.
package physics

import "math"

// Chebyshev returns the Chebyshev (chessboard) distance between two points.
func Chebyshev(x1, y1, x2, y2 float64) float64 {
	return math.Max(math.Abs(x2-x1), math.Abs(y2-y1))
}

// BoxOverlap reports whether point (px, py) lies strictly inside the
// axis-aligned box of the given half-extent centered on (cx, cy).
func BoxOverlap(px, py, cx, cy, halfExtent float64) bool {
	return math.Abs(px-cx) < halfExtent && math.Abs(py-cy) < halfExtent
}

// Clamp limits v to the closed range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
