// Boundary intersection solvers.
// Each solver answers the same question for a different shape: where does the
// ray from an external point (line) through a reference point (target, usually
// the shape's centre) cross the shape's perimeter on the side facing the
// external point.

package geom

import "math"

// MinDirectionLength is the shortest external-to-reference distance for
// which a direction is considered defined. Closer points get the shape's
// fallback point.
const MinDirectionLength = 1.0

// parallelEpsilon rejects edge/ray pairs whose 2x2 system is singular.
const parallelEpsilon = 1e-12

// Circle is a circle given by centre and radius. R must be positive.
type Circle struct {
	CX, CY float64
	R      float64
}

// Ellipse represents an axis-aligned ellipse.
type Ellipse struct {
	CX, CY float64 // Center
	RX, RY float64 // Radii
}

// Rect represents an axis-aligned rectangle.
type Rect struct {
	X float64 `json:"x"` // Center
	Y float64 `json:"y"`
	W float64 `json:"w"` // Full width and height
	H float64 `json:"h"`
}

// Center returns the centre of r.
func (r Rect) Center() Point {
	return Point{r.X, r.Y}
}

// Min returns the top-left corner.
func (r Rect) Min() Point {
	return Point{r.X - r.W/2, r.Y - r.H/2}
}

// Max returns the bottom-right corner.
func (r Rect) Max() Point {
	return Point{r.X + r.W/2, r.Y + r.H/2}
}

// Contains reports whether p lies inside r or on its boundary.
func (r Rect) Contains(p Point) bool {
	return math.Abs(p.X-r.X) <= r.W/2 && math.Abs(p.Y-r.Y) <= r.H/2
}

// Corners returns the corners clockwise from the top-left (screen space).
func (r Rect) Corners() []Point {
	mn, mx := r.Min(), r.Max()
	return []Point{{mn.X, mn.Y}, {mx.X, mn.Y}, {mx.X, mx.Y}, {mn.X, mx.Y}}
}

// CircleFallback is the point CircleIntersection returns when no direction
// can be derived: the rightmost point of the circle.
func CircleFallback(c Circle) Point {
	return Point{c.CX + c.R, c.CY}
}

// RectFallback is the point RectangleIntersection returns when no direction
// can be derived: the midpoint of the right edge.
func RectFallback(r Rect) Point {
	return Point{r.X + r.W/2, r.Y}
}

// EllipseFallback is the rightmost point of e.
func EllipseFallback(e Ellipse) Point {
	return Point{e.CX + e.RX, e.CY}
}

// CircleIntersection returns the point on the circle's perimeter in the
// direction of line as seen from target.
func CircleIntersection(c Circle, line, target Point) Point {
	d := line.Sub(target)
	l := d.Length()
	if l < MinDirectionLength {
		return CircleFallback(c)
	}
	return Point{c.CX + d.X/l*c.R, c.CY + d.Y/l*c.R}
}

// RectangleIntersection returns the point where the ray leaving the centre
// of r parallel to (line - target) crosses the rectangle's edge. With
// target at the centre this is the boundary point facing line.
//
// The exit edge is picked by comparing the ray's slope to the rectangle's
// aspect ratio; a ray through a corner may report either adjoining edge.
func RectangleIntersection(r Rect, line, target Point) Point {
	dx := line.X - target.X
	dy := line.Y - target.Y
	if math.Hypot(dx, dy) < MinDirectionLength {
		return RectFallback(r)
	}

	hw, hh := r.W/2, r.H/2
	adx, ady := math.Abs(dx), math.Abs(dy)

	// |dy/dx| < h/w, rearranged to avoid dividing by dx
	if ady*r.W < r.H*adx {
		x := r.X + math.Copysign(hw, dx)
		return Point{x, r.Y + dy*hw/adx}
	}
	if ady < epsilon {
		return RectFallback(r)
	}
	y := r.Y + math.Copysign(hh, dy)
	return Point{r.X + dx*hh/ady, y}
}

// EllipseIntersection returns the point on the ellipse edge in the direction
// of line as seen from target.
func EllipseIntersection(e Ellipse, line, target Point) Point {
	d := line.Sub(target)
	if d.Length() < MinDirectionLength || e.RX <= 0 || e.RY <= 0 {
		return EllipseFallback(e)
	}
	n, _ := Normalize(d)
	// For (x/rx)² + (y/ry)² = 1 the point along n is at distance t.
	t := 1.0 / math.Sqrt((n.X*n.X)/(e.RX*e.RX)+(n.Y*n.Y)/(e.RY*e.RY))
	return Point{e.CX + n.X*t, e.CY + n.Y*t}
}

// PolygonIntersection walks every edge of the polygon (including the closing
// edge from the last vertex back to the first) and returns the crossing of
// the ray from line through target that lies closest to line.
//
// Fallbacks: no vertices returns line; fewer than three vertices, or line and
// target closer than MinDirectionLength, returns the first vertex; a ray that
// misses every edge returns line.
func PolygonIntersection(vertices []Point, line, target Point) Point {
	n := len(vertices)
	if n == 0 {
		return line
	}
	if n < 3 {
		return vertices[0]
	}

	d := target.Sub(line)
	if d.Length() < MinDirectionLength {
		return vertices[0]
	}

	bestS := math.Inf(1)
	found := false
	for i := 0; i < n; i++ {
		s, ok := raySegment(line, d, vertices[i], vertices[(i+1)%n])
		if ok && s < bestS {
			bestS = s
			found = true
		}
	}
	if !found {
		return line
	}
	return line.Add(d.Scale(bestS))
}

// raySegment intersects the ray o + s·d (s >= 0) with the segment a→b.
// It returns the ray parameter s of the crossing.
func raySegment(o, d, a, b Point) (float64, bool) {
	e := b.Sub(a)
	denom := d.Cross(e)
	if math.Abs(denom) < parallelEpsilon {
		return 0, false
	}
	ao := a.Sub(o)
	s := ao.Cross(e) / denom
	t := ao.Cross(d) / denom
	if s < 0 || t < 0 || t > 1 {
		return 0, false
	}
	return s, true
}
