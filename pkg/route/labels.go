package route

import (
	"math"

	"github.com/ha1tch/edgeroute/pkg/geom"
)

// RectOverlap returns the overlap area between two rectangles.
// Returns 0 if they don't overlap.
func RectOverlap(a, b geom.Rect) float64 {
	overlapX := (a.W/2 + b.W/2) - math.Abs(a.X-b.X)
	overlapY := (a.H/2 + b.H/2) - math.Abs(a.Y-b.Y)

	if overlapX <= 0 || overlapY <= 0 {
		return 0
	}
	return overlapX * overlapY
}

// LabelPlacer manages label placement with collision avoidance. Every label
// it places becomes an obstacle for the next one.
type LabelPlacer struct {
	obstacles []geom.Rect
}

// NewLabelPlacer creates a LabelPlacer with initial obstacles (node boxes).
func NewLabelPlacer(nodes []geom.Rect) *LabelPlacer {
	obstacles := make([]geom.Rect, len(nodes))
	copy(obstacles, nodes)
	return &LabelPlacer{obstacles: obstacles}
}

// Obstacles returns the rectangles currently occupied.
func (lp *LabelPlacer) Obstacles() []geom.Rect {
	return lp.obstacles
}

func (lp *LabelPlacer) overlap(r geom.Rect) float64 {
	total := 0.0
	for _, obs := range lp.obstacles {
		total += RectOverlap(r, obs)
	}
	return total
}

func (lp *LabelPlacer) claim(pos geom.Point, w, h float64) geom.Point {
	lp.obstacles = append(lp.obstacles, geom.Rect{X: pos.X, Y: pos.Y, W: w, H: h})
	return pos
}

// PlaceLabel finds the best position for a label near an anchor point.
// The anchor itself is tried first, then the four sides, then the diagonals.
// If every candidate overlaps, the one with least overlap wins.
func (lp *LabelPlacer) PlaceLabel(anchor geom.Point, labelW, labelH, gap float64) geom.Point {
	dx := labelW/2 + gap
	dy := labelH/2 + gap
	candidates := []geom.Point{
		anchor,
		{X: anchor.X, Y: anchor.Y - dy}, // above
		{X: anchor.X, Y: anchor.Y + dy}, // below
		{X: anchor.X + dx, Y: anchor.Y}, // right
		{X: anchor.X - dx, Y: anchor.Y}, // left
		{X: anchor.X + dx, Y: anchor.Y - dy},
		{X: anchor.X - dx, Y: anchor.Y - dy},
		{X: anchor.X + dx, Y: anchor.Y + dy},
		{X: anchor.X - dx, Y: anchor.Y + dy},
	}

	bestPos := candidates[0]
	bestOverlap := math.MaxFloat64

	for _, pos := range candidates {
		total := lp.overlap(geom.Rect{X: pos.X, Y: pos.Y, W: labelW, H: labelH})
		if total == 0 {
			return lp.claim(pos, labelW, labelH)
		}
		if total < bestOverlap {
			bestOverlap = total
			bestPos = pos
		}
	}

	return lp.claim(bestPos, labelW, labelH)
}

// PlaceLabelOnCurve places a label at a point on an edge, sliding it
// perpendicular to the curve tangent by ±offset and ±2·offset until it is
// clear. If nothing is clear the label stays on the curve.
func (lp *LabelPlacer) PlaceLabelOnCurve(curvePoint, tangent geom.Point, labelW, labelH, offset float64) geom.Point {
	perp, ok := geom.Normalize(tangent.Perp())
	if !ok {
		return lp.claim(curvePoint, labelW, labelH)
	}

	for _, k := range []float64{0, 1, -1, 2, -2} {
		pos := curvePoint.Add(perp.Scale(offset * k))
		if lp.overlap(geom.Rect{X: pos.X, Y: pos.Y, W: labelW, H: labelH}) == 0 {
			return lp.claim(pos, labelW, labelH)
		}
	}

	return lp.claim(curvePoint, labelW, labelH)
}
