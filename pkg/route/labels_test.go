package route

import (
	"math"
	"testing"

	"github.com/ha1tch/edgeroute/pkg/geom"
)

func TestRectOverlap(t *testing.T) {
	tests := []struct {
		name     string
		a, b     geom.Rect
		expected float64
	}{
		{
			name:     "No overlap - horizontally separated",
			a:        geom.Rect{X: 0, Y: 0, W: 10, H: 10},
			b:        geom.Rect{X: 20, Y: 0, W: 10, H: 10},
			expected: 0,
		},
		{
			name:     "No overlap - vertically separated",
			a:        geom.Rect{X: 0, Y: 0, W: 10, H: 10},
			b:        geom.Rect{X: 0, Y: 20, W: 10, H: 10},
			expected: 0,
		},
		{
			name:     "Full overlap (same rect)",
			a:        geom.Rect{X: 0, Y: 0, W: 10, H: 10},
			b:        geom.Rect{X: 0, Y: 0, W: 10, H: 10},
			expected: 100,
		},
		{
			name:     "Partial overlap",
			a:        geom.Rect{X: 0, Y: 0, W: 10, H: 10},
			b:        geom.Rect{X: 5, Y: 5, W: 10, H: 10},
			expected: 25,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := RectOverlap(tc.a, tc.b)
			if math.Abs(result-tc.expected) > 0.01 {
				t.Errorf("Expected overlap %.2f, got %.2f", tc.expected, result)
			}
		})
	}
}

func TestLabelPlacer(t *testing.T) {
	obstacles := []geom.Rect{
		{X: 100, Y: 100, W: 80, H: 60},
	}
	placer := NewLabelPlacer(obstacles)

	anchor := geom.Pt(150, 100) // right edge of the node
	labelW, labelH, gap := 40.0, 14.0, 8.0

	pos := placer.PlaceLabel(anchor, labelW, labelH, gap)

	labelRect := geom.Rect{X: pos.X, Y: pos.Y, W: labelW, H: labelH}
	if overlap := RectOverlap(labelRect, obstacles[0]); overlap > 0 {
		t.Errorf("Label at (%.2f, %.2f) overlaps the node (overlap=%.2f)", pos.X, pos.Y, overlap)
	}
	if len(placer.Obstacles()) != 2 {
		t.Errorf("Placed label should become an obstacle, have %d", len(placer.Obstacles()))
	}
}

func TestLabelPlacerOnCurve(t *testing.T) {
	obstacles := []geom.Rect{
		{X: 100, Y: 100, W: 60, H: 40},
		{X: 250, Y: 100, W: 60, H: 40},
	}
	placer := NewLabelPlacer(obstacles)

	first := placer.PlaceLabelOnCurve(geom.Pt(175, 100), geom.Pt(1, 0), 40, 14, 10)
	if first != geom.Pt(175, 100) {
		t.Errorf("Clear on-curve spot should be used as is, got %v", first)
	}

	// Same spot again: the first label now blocks it.
	second := placer.PlaceLabelOnCurve(geom.Pt(175, 100), geom.Pt(1, 0), 40, 14, 10)
	if second == first {
		t.Error("Second label should slide away from the first")
	}
	if math.Abs(second.X-175) > 1e-9 {
		t.Errorf("Slide should be perpendicular to a horizontal edge, got %v", second)
	}
	labelRect := geom.Rect{X: second.X, Y: second.Y, W: 40, H: 14}
	for i, obs := range obstacles {
		if RectOverlap(labelRect, obs) > 0 {
			t.Errorf("Label overlaps node %d", i)
		}
	}
}

func TestLabelPlacerDegenerateTangent(t *testing.T) {
	placer := NewLabelPlacer(nil)
	p := geom.Pt(3, 4)
	if got := placer.PlaceLabelOnCurve(p, geom.Point{}, 10, 10, 5); got != p {
		t.Errorf("Zero tangent should keep the curve point, got %v", got)
	}
}
