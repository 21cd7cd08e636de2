package geom

import (
	"math"
	"testing"
)

func TestSelfLoopControlPoints(t *testing.T) {
	node := NodeRect(Pt(100, 100))
	params := DefaultSelfLoopParams()

	points := SelfLoopControlPoints(node, params)

	if len(points) != 7 {
		t.Fatalf("Expected 7 points, got %d", len(points))
	}

	// P0 and P6 should be on the right face (cx + w/2 = 175).
	if math.Abs(points[0].X-175) > 1e-9 || math.Abs(points[6].X-175) > 1e-9 {
		t.Errorf("Ports should sit on x=175, got %.2f and %.2f", points[0].X, points[6].X)
	}

	if points[3].X <= node.X+node.W/2 {
		t.Errorf("Apex should be right of the node, got X=%.2f", points[3].X)
	}

	if math.Abs(points[0].Y-points[6].Y) < 5 {
		t.Error("P0 and P6 should have different Y values for arrowhead direction")
	}
}

func TestSelfLoopControlPointsTop(t *testing.T) {
	node := NodeRect(Pt(100, 100))
	params := DefaultSelfLoopParams()
	params.Side = SideTop

	points := SelfLoopControlPoints(node, params)

	if points[3].Y >= node.Y-node.H/2 {
		t.Errorf("Apex should be above the node for SideTop, got Y=%.2f", points[3].Y)
	}
	if math.Abs(points[0].Y-70) > 1e-9 {
		t.Errorf("P0.Y expected 70, got %.2f", points[0].Y)
	}
}

func TestSelfLoopIndexSpacing(t *testing.T) {
	node := NodeRect(Pt(0, 0))
	params := DefaultSelfLoopParams()
	first := SelfLoopControlPoints(node, params)
	params.Index = 1
	second := SelfLoopControlPoints(node, params)

	if second[3].X-first[3].X != params.Spacing {
		t.Errorf("Second loop apex should be %.1f further out, got %.2f", params.Spacing, second[3].X-first[3].X)
	}
}

func TestSelfLoopPoint(t *testing.T) {
	points := SelfLoopControlPoints(NodeRect(Pt(0, 0)), DefaultSelfLoopParams())
	if SelfLoopPoint(points, 0) != points[0] {
		t.Error("t=0 should be the tail port")
	}
	if SelfLoopPoint(points, 0.5) != points[3] {
		t.Error("t=0.5 should be the apex")
	}
	if SelfLoopPoint(points, 1) != points[6] {
		t.Error("t=1 should be the head port")
	}
	if SelfLoopPoint(nil, 0.5) != (Point{}) {
		t.Error("No points should give the zero point")
	}
}

func TestSelfLoopBounds(t *testing.T) {
	points := SelfLoopControlPoints(NodeRect(Pt(100, 100)), DefaultSelfLoopParams())

	minX, minY, maxX, maxY := SelfLoopBounds(points)

	for i, p := range points {
		if p.X < minX || p.X > maxX || p.Y < minY || p.Y > maxY {
			t.Errorf("Point %d (%.2f, %.2f) outside bounds [%.2f-%.2f, %.2f-%.2f]",
				i, p.X, p.Y, minX, maxX, minY, maxY)
		}
	}
}

func TestSelfLoopLabelPosition(t *testing.T) {
	points := SelfLoopControlPoints(NodeRect(Pt(100, 100)), DefaultSelfLoopParams())

	labelW, labelH := 50.0, 14.0
	pos := SelfLoopLabelPosition(points, SideRight, labelW, labelH)

	apex := points[3]
	if pos.X <= apex.X {
		t.Errorf("Label X=%.2f should be right of apex X=%.2f", pos.X, apex.X)
	}
	if math.Abs(pos.Y-apex.Y) > labelH {
		t.Errorf("Label Y=%.2f should be near apex Y=%.2f", pos.Y, apex.Y)
	}
}

func TestSelfLoopLabelPositionShortSlice(t *testing.T) {
	if got := SelfLoopLabelPosition(nil, SideRight, 50, 14); got != (Point{}) {
		t.Errorf("Empty loop should anchor at origin, got %v", got)
	}
	short := []Point{Pt(3, 4), Pt(5, 6), Pt(7, 8)}
	if got := SelfLoopLabelPosition(short, SideTop, 50, 14); got != short[0] {
		t.Errorf("Short loop should anchor at its first point, got %v", got)
	}
}

func TestChooseSelfLoopSide(t *testing.T) {
	if got := ChooseSelfLoopSide(nil); got != SideRight {
		t.Errorf("Free node should loop right, got %v", got)
	}
	if got := ChooseSelfLoopSide(map[Side]bool{SideRight: true}); got != SideTop {
		t.Errorf("Expected top when right is taken, got %v", got)
	}
	all := map[Side]bool{SideRight: true, SideTop: true, SideLeft: true, SideBottom: true}
	if got := ChooseSelfLoopSide(all); got != SideRight {
		t.Errorf("Expected right when all faces are taken, got %v", got)
	}
}
