package geom

import "math"

// Node box dimensions in logical units. Every node is drawn at this size.
const (
	NodeWidth  = 150.0
	NodeHeight = 60.0
)

// NodeRect returns the box of a node centred at center.
func NodeRect(center Point) Rect {
	return Rect{X: center.X, Y: center.Y, W: NodeWidth, H: NodeHeight}
}

// NodeBoundaryIntersection returns where the ray from line toward the node
// crosses the node's box. It is RectangleIntersection with the node size
// filled in, so callers never need the literal dimensions.
func NodeBoundaryIntersection(center, target, line Point) Point {
	return RectangleIntersection(NodeRect(center), line, target)
}

// AttachmentSide reports which face of r the boundary point p sits on.
// Points on a corner resolve to the vertical face.
func AttachmentSide(r Rect, p Point) Side {
	if r.W <= 0 || r.H <= 0 {
		return SideRight
	}
	dx := (p.X - r.X) / (r.W / 2)
	dy := (p.Y - r.Y) / (r.H / 2)
	if math.Abs(dx) >= math.Abs(dy) {
		if dx < 0 {
			return SideLeft
		}
		return SideRight
	}
	if dy < 0 {
		return SideTop
	}
	return SideBottom
}
