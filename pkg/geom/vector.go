// Package geom computes where diagram edges meet node boundaries and how the
// curved edge between them is shaped.
//
// All functions are pure and take and return plain values, so they are safe
// to call from any number of goroutines. None of them panics or produces
// NaN/Inf for finite input: degenerate geometry (zero-length vectors,
// overlapping points, polygons with fewer than three vertices) resolves to a
// named fallback instead.
package geom

import "math"

// Point represents a 2D coordinate. Y grows downward, as on an SVG canvas.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// epsilon below which a vector is treated as having no direction.
const epsilon = 1e-9

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Scale returns p*k.
func (p Point) Scale(k float64) Point {
	return Point{p.X * k, p.Y * k}
}

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the z component of the 3D cross product of p and q.
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Length returns the euclidean length of p.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Perp returns p rotated by 90 degrees: (-y, x).
func (p Point) Perp() Point {
	return Point{-p.Y, p.X}
}

// Distance returns the distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point {
	return Point{(a.X + b.X) / 2, (a.Y + b.Y) / 2}
}

// Lerp interpolates linearly from a (t=0) to b (t=1).
func Lerp(a, b Point, t float64) Point {
	return Point{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

// Normalize returns v scaled to unit length. For vectors shorter than
// epsilon it returns the zero vector and false.
func Normalize(v Point) (Point, bool) {
	l := v.Length()
	if l < epsilon {
		return Point{}, false
	}
	return Point{v.X / l, v.Y / l}, true
}

// Collinear reports whether a, b and c lie on one line, allowing the cross
// product of (b-a) and (c-a) to deviate from zero by tol.
func Collinear(a, b, c Point, tol float64) bool {
	return math.Abs(b.Sub(a).Cross(c.Sub(a))) <= tol
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// NormalizeAngle maps an angle in radians into (-π, π].
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}
