package geom

import (
	"testing"
	"testing/quick"
)

func TestNodeBoundaryScenarios(t *testing.T) {
	center := Pt(100, 100)

	left := NodeBoundaryIntersection(center, center, Pt(0, 100))
	if Distance(left, Pt(25, 100)) > 0.01 {
		t.Errorf("Left: expected (25,100), got %v", left)
	}
	top := NodeBoundaryIntersection(center, center, Pt(100, 0))
	if Distance(top, Pt(100, 70)) > 0.01 {
		t.Errorf("Top: expected (100,70), got %v", top)
	}
}

func TestNodeBoundaryMatchesRectangle(t *testing.T) {
	f := func(cx, cy, tx, ty, ex, ey int16) bool {
		center := Pt(float64(cx), float64(cy))
		target := Pt(float64(tx), float64(ty))
		ext := Pt(float64(ex), float64(ey))
		a := NodeBoundaryIntersection(center, target, ext)
		b := RectangleIntersection(Rect{X: center.X, Y: center.Y, W: 150, H: 60}, ext, target)
		return Distance(a, b) <= 0.01
	}
	if err := quick.Check(f, &quick.Config{MaxCount: 1000}); err != nil {
		t.Error(err)
	}
}

func TestAttachmentSide(t *testing.T) {
	r := NodeRect(Pt(0, 0))

	tests := []struct {
		name string
		p    Point
		want Side
	}{
		{"right", Pt(75, 10), SideRight},
		{"left", Pt(-75, -5), SideLeft},
		{"top", Pt(20, -30), SideTop},
		{"bottom", Pt(-40, 30), SideBottom},
		{"corner", Pt(75, 30), SideRight},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := AttachmentSide(r, tc.p); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}

	if got := AttachmentSide(Rect{}, Pt(1, 1)); got != SideRight {
		t.Errorf("Empty rect should report right, got %v", got)
	}
}

func TestRectHelpers(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 20, H: 10}
	if r.Min() != (Point{0, 5}) || r.Max() != (Point{20, 15}) {
		t.Errorf("Min/Max wrong: %v %v", r.Min(), r.Max())
	}
	if !r.Contains(Pt(20, 15)) || r.Contains(Pt(21, 10)) {
		t.Error("Contains should include the boundary and exclude outside points")
	}
	if len(r.Corners()) != 4 {
		t.Errorf("Expected 4 corners, got %d", len(r.Corners()))
	}
}
