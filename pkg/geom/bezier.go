// Quadratic Bézier helpers for curved edges.

package geom

import "math"

// Side names a face of a node box.
type Side int

const (
	SideRight  Side = iota // Default
	SideLeft
	SideTop
	SideBottom
)

func (s Side) String() string {
	switch s {
	case SideRight:
		return "right"
	case SideLeft:
		return "left"
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	}
	return "unknown"
}

// MarshalText encodes the side by name.
func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// DefaultEdgeSpacing is the distance between neighbouring parallel edges.
const DefaultEdgeSpacing = 30.0

// Curve is one quadratic Bézier segment: the visible path of an edge after
// its endpoints have been trimmed to the node boundaries.
type Curve struct {
	Source  Point `json:"source"`
	Control Point `json:"control"`
	Target  Point `json:"target"`
}

// StraightCurve returns a curve whose control point is the chord midpoint.
func StraightCurve(source, target Point) Curve {
	return Curve{Source: source, Control: Midpoint(source, target), Target: target}
}

// ControlPoint places the control point of the edge source→target: the
// chord midpoint displaced by offset along the chord's normal (-dy, dx).
// A positive offset bends the edge to the left of its direction of travel
// in screen space.
//
// The two Side arguments name the attachment faces and are reserved; they
// do not change the result. The normal of a horizontal chord is already
// vertical and vice versa, and a zero offset leaves the midpoint where it
// is. A zero-length chord returns the shared point.
func ControlPoint(source, target Point, _, _ Side, offset float64) Point {
	d := target.Sub(source)
	n, ok := Normalize(d.Perp())
	if !ok {
		return source
	}
	mid := Midpoint(source, target)
	if offset == 0 {
		return mid
	}
	return mid.Add(n.Scale(offset))
}

// EdgeOffset returns the signed offset of edge index among count parallel
// edges using DefaultEdgeSpacing.
func EdgeOffset(index, count int) float64 {
	return EdgeOffsetSpacing(index, count, DefaultEdgeSpacing)
}

// EdgeOffsetSpacing spreads count parallel edges symmetrically around zero,
// spacing apart. A single edge, and the middle edge of an odd group, gets 0.
func EdgeOffsetSpacing(index, count int, spacing float64) float64 {
	if count <= 1 {
		return 0
	}
	// Doubled to keep the centre exact for odd and even counts.
	return float64(2*index-(count-1)) * spacing / 2
}

// BezierPoint evaluates B(t) = (1-t)²·S + 2(1-t)t·C + t²·T.
// t <= 0 returns S and t >= 1 returns T, exactly.
func BezierPoint(c Curve, t float64) Point {
	if t <= 0 {
		return c.Source
	}
	if t >= 1 {
		return c.Target
	}
	u := 1 - t
	a, b, e := u*u, 2*u*t, t*t
	return Point{
		X: a*c.Source.X + b*c.Control.X + e*c.Target.X,
		Y: a*c.Source.Y + b*c.Control.Y + e*c.Target.Y,
	}
}

// BezierTangent returns the derivative B'(t) = 2(1-t)(C-S) + 2t(T-C).
// If it vanishes (control point on an endpoint) the chord T-S is returned.
func BezierTangent(c Curve, t float64) Point {
	t = math.Max(0, math.Min(1, t))
	u := 1 - t
	d := c.Control.Sub(c.Source).Scale(2 * u).Add(c.Target.Sub(c.Control).Scale(2 * t))
	if d.Length() < epsilon {
		return c.Target.Sub(c.Source)
	}
	return d
}

// BezierTangentAngle returns the direction of travel at t in radians.
// A curve with no direction at all reports 0.
func BezierTangentAngle(c Curve, t float64) float64 {
	d := BezierTangent(c, t)
	if d.Length() < epsilon {
		return 0
	}
	return math.Atan2(d.Y, d.X)
}

// SampleCurve returns n+1 evenly spaced (in t) points from S to T.
func SampleCurve(c Curve, n int) []Point {
	if n < 1 {
		n = 1
	}
	pts := make([]Point, n+1)
	for i := 0; i <= n; i++ {
		pts[i] = BezierPoint(c, float64(i)/float64(n))
	}
	return pts
}

// CurveLength approximates the arc length with a polyline of the given
// number of segments.
func CurveLength(c Curve, segments int) float64 {
	pts := SampleCurve(c, segments)
	total := 0.0
	for i := 1; i < len(pts); i++ {
		total += Distance(pts[i-1], pts[i])
	}
	return total
}

// CubicPoint evaluates a cubic Bézier segment p0..p3 at t.
func CubicPoint(p0, p1, p2, p3 Point, t float64) Point {
	if t <= 0 {
		return p0
	}
	if t >= 1 {
		return p3
	}
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	c := 3 * u * t * t
	d := t * t * t
	return Point{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}
