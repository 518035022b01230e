package draw

import (
	"bytes"
	"strings"
	"testing"
)

func TestFillRectScales(t *testing.T) {
	// 40x30 cells over an 80x120 field: two logical px per column and per sub-pixel row.
	c := NewScaledCanvas(40, 30, 80, 120)
	c.FillRect(40, 60, 4, 4, InkRed)

	for _, p := range [][2]int{{19, 29}, {20, 30}, {19, 30}, {20, 29}} {
		if got := c.Pixel(p[0], p[1]); got != InkRed {
			t.Errorf("pixel %v = %v, want red", p, got)
		}
	}
	for _, p := range [][2]int{{18, 29}, {21, 30}, {19, 28}, {20, 31}} {
		if got := c.Pixel(p[0], p[1]); got != InkNone {
			t.Errorf("pixel %v = %v, want empty", p, got)
		}
	}
}

func TestFillRectCoversAtLeastOnePixel(t *testing.T) {
	c := NewScaledCanvas(40, 30, 80, 120)
	c.FillRect(21, 21, 0.4, 0.4, InkYellow)
	if c.Pixel(10, 10) != InkYellow {
		t.Fatal("tiny rectangle vanished")
	}
}

func TestFillRectClipsToCanvas(t *testing.T) {
	c := NewScaledCanvas(40, 30, 80, 120)
	c.FillRect(0, -5, 40, 40, InkGreen)
	c.FillRect(80, 120, 40, 40, InkGreen)
	if c.Pixel(0, 0) != InkGreen || c.Pixel(39, 59) != InkGreen {
		t.Fatal("edge rectangles not drawn")
	}
}

func TestRenderOnlyEmitsChanges(t *testing.T) {
	c := NewCanvas(10, 5)
	c.FillRect(2, 3, 2, 2, InkWhite)

	var first bytes.Buffer
	c.Render(&first)
	if !strings.ContainsRune(first.String(), BlockFull) {
		t.Fatalf("first render %q has no full block", first.String())
	}

	var second bytes.Buffer
	c.Render(&second)
	if second.Len() != 0 {
		t.Fatalf("unchanged frame rendered %q", second.String())
	}

	c.Clear()
	var third bytes.Buffer
	c.Render(&third)
	if !strings.Contains(third.String(), " ") {
		t.Fatalf("erased cell not blanked: %q", third.String())
	}
}

func TestMarkTextDirtyRepaints(t *testing.T) {
	c := NewCanvas(10, 5)
	c.Render(&bytes.Buffer{})

	c.MarkTextDirty(3, 2, 4)
	var out bytes.Buffer
	c.Render(&out)
	if got := strings.Count(out.String(), " "); got != 4 {
		t.Fatalf("repainted %d cells, want 4 (%q)", got, out.String())
	}
	// Out of range marks are ignored.
	c.MarkTextDirty(8, 9, 10)
	c.MarkTextDirty(-3, 1, 2)
}

func TestForceRedraw(t *testing.T) {
	c := NewCanvas(10, 5)
	c.FillRect(2, 3, 2, 2, InkCyan)
	c.Render(&bytes.Buffer{})

	c.ForceRedraw()
	var out bytes.Buffer
	c.Render(&out)
	if !strings.ContainsRune(out.String(), BlockFull) {
		t.Fatal("ForceRedraw did not repaint drawn cells")
	}
}

func TestCellStyle(t *testing.T) {
	tests := []struct {
		in   cell
		want rune
	}{
		{cell{}, BlockEmpty},
		{cell{top: InkRed, bottom: InkRed}, BlockFull},
		{cell{top: InkRed}, BlockUpperHalf},
		{cell{bottom: InkRed}, BlockLowerHalf},
		{cell{top: InkRed, bottom: InkGreen}, BlockUpperHalf},
	}
	for _, tt := range tests {
		if _, got := cellStyle(tt.in); got != tt.want {
			t.Errorf("cellStyle(%+v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGrayClamps(t *testing.T) {
	if Gray(-1) != InkGray0 || Gray(99) != InkGray4 || Gray(2) != InkGray2 {
		t.Fatal("Gray does not clamp to the ramp")
	}
}

func TestDrawPolygonFills(t *testing.T) {
	c := NewCanvas(20, 10)
	c.DrawPolygon([]Point{{2, 2}, {12, 2}, {12, 12}, {2, 12}}, InkGreen, true)
	if c.Pixel(7, 7) != InkGreen {
		t.Fatal("polygon interior not filled")
	}
	if c.Pixel(15, 15) != InkNone {
		t.Fatal("fill leaked outside the polygon")
	}
}

func TestShadeLevel(t *testing.T) {
	if ShadeLevel(0) != ' ' || ShadeLevel(1) != BlockFull || ShadeLevel(0.5) != '▒' {
		t.Fatal("unexpected shade mapping")
	}
}
