package geom

import "math"

// LabelProbes are the curve parameters tried, in order, when a label
// candidate overlaps an endpoint node.
var LabelProbes = []float64{0.5, 0.4, 0.6, 0.3, 0.7, 0.2, 0.8}

// ArrowPosition returns the arrow tip and its rotation for an edge. The tip
// sits distance units back from the target along the curve's final tangent
// so the arrowhead does not cover the node border. A distance of 0 or less
// gives the exact target point.
func ArrowPosition(c Curve, distance float64) (Point, float64) {
	tangent := BezierTangent(c, 1)
	angle := 0.0
	if tangent.Length() >= epsilon {
		angle = math.Atan2(tangent.Y, tangent.X)
	}
	if distance <= 0 {
		return c.Target, angle
	}
	n, ok := Normalize(tangent)
	if !ok {
		return c.Target, angle
	}
	return c.Target.Sub(n.Scale(distance)), angle
}

// ArrowHead returns the triangle of an arrowhead pointing along angle with
// its tip at tip: tip, left wing, right wing.
func ArrowHead(tip Point, angle, length, width float64) [3]Point {
	dir := Point{math.Cos(angle), math.Sin(angle)}
	base := tip.Sub(dir.Scale(length))
	wing := dir.Perp().Scale(width / 2)
	return [3]Point{tip, base.Add(wing), base.Sub(wing)}
}

// LabelPosition moves a label off the endpoint nodes. A candidate farther
// than nodeRadius from both curve endpoints is returned unchanged. Otherwise
// the curve is probed at LabelProbes and the first clear point wins; if none
// is clear the candidate is returned as is.
func LabelPosition(candidate Point, c Curve, nodeRadius float64) Point {
	if !collidesWithEndpoints(candidate, c, nodeRadius) {
		return candidate
	}
	for _, t := range LabelProbes {
		p := BezierPoint(c, t)
		if !collidesWithEndpoints(p, c, nodeRadius) {
			return p
		}
	}
	return candidate
}

func collidesWithEndpoints(p Point, c Curve, r float64) bool {
	return Distance(p, c.Source) < r || Distance(p, c.Target) < r
}
