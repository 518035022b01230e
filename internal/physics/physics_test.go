package physics

import (
	"slices"
	"testing"
)

func TestBoxOverlap(t *testing.T) {
	tests := []struct {
		name   string
		px, py float64
		cx, cy float64
		half   float64
		want   bool
	}{
		{"centered", 100, 100, 100, 100, 20, true},
		{"inside corner", 105, 105, 100, 100, 20, true},
		{"far on x", 200, 100, 100, 100, 20, false},
		{"exactly on edge is outside", 120, 100, 100, 100, 20, false},
		{"just inside edge", 119.9, 80.1, 100, 100, 20, true},
		{"diagonal beyond circle but inside box", 114, 114, 100, 100, 15, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := BoxOverlap(tc.px, tc.py, tc.cx, tc.cy, tc.half); got != tc.want {
				t.Errorf("BoxOverlap(%v,%v,%v,%v,%v) = %v, want %v", tc.px, tc.py, tc.cx, tc.cy, tc.half, got, tc.want)
			}
		})
	}
}

func TestChebyshev(t *testing.T) {
	if got := Chebyshev(0, 0, 3, -4); got != 4 {
		t.Errorf("Chebyshev = %v, want 4", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct{ v, want float64 }{
		{-5, 20},
		{20, 20},
		{200, 200},
		{380, 380},
		{999, 380},
	}
	for _, tc := range tests {
		if got := Clamp(tc.v, 20, 380); got != tc.want {
			t.Errorf("Clamp(%v) = %v, want %v", tc.v, got, tc.want)
		}
	}
}

func TestSpatialGridQueryAround(t *testing.T) {
	g := NewSpatialGrid(400, 600, 20)
	g.Insert(105, 105, 0)
	g.Insert(300, 300, 1)
	g.Insert(10, -15, 2) // above the field, clamped into row 0

	var found []int
	g.QueryAround(100, 100, func(i int) bool {
		found = append(found, i)
		return false
	})
	if !slices.Equal(found, []int{0}) {
		t.Errorf("near (100,100) found %v, want [0]", found)
	}

	found = found[:0]
	g.QueryAround(5, 3, func(i int) bool {
		found = append(found, i)
		return false
	})
	if !slices.Contains(found, 2) {
		t.Errorf("near (5,3) found %v, want to include clamped item 2", found)
	}

	if g.Len() != 3 {
		t.Errorf("Len = %d, want 3", g.Len())
	}
	g.Clear()
	if g.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", g.Len())
	}
	g.QueryAround(105, 105, func(i int) bool {
		t.Errorf("unexpected item %d after Clear", i)
		return false
	})
}

func TestSpatialGridEarlyStop(t *testing.T) {
	g := NewSpatialGrid(100, 100, 20)
	for i := range 5 {
		g.Insert(50, 50, i)
	}
	calls := 0
	g.QueryAround(50, 50, func(int) bool {
		calls++
		return true
	})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

// Items within the cell size of the query point must always be candidates.
func TestSpatialGridNeighborhoodCompleteness(t *testing.T) {
	g := NewSpatialGrid(400, 600, 20)
	points := [][2]float64{{0, 0}, {19.9, 19.9}, {39.9, 0}, {399, 599}, {200, -19}, {-5, 300}}
	for i, p := range points {
		g.Insert(p[0], p[1], i)
	}
	for qi, q := range points {
		for pi, p := range points {
			if !BoxOverlap(p[0], p[1], q[0], q[1], 20) {
				continue
			}
			hit := false
			g.QueryAround(q[0], q[1], func(i int) bool {
				if i == pi {
					hit = true
					return true
				}
				return false
			})
			if !hit {
				t.Errorf("query %d missed overlapping item %d", qi, pi)
			}
		}
	}
}
