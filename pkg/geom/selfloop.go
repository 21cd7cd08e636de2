// Self-loop geometry: edges whose source and target are the same node.
// A chord of zero length has no normal to bend along, so these edges are
// drawn as a loop leaving and re-entering one face of the node box.

package geom

// SelfLoopParams configures self-loop placement.
type SelfLoopParams struct {
	Side       Side
	Index      int     // 0-based index for multiple self-loops on the same node
	BaseOffset float64 // Distance from node edge to loop apex
	Spacing    float64 // Additional offset per loop index
	PortOffset float64 // Offset of ports from the face centre, as a fraction of the half-extent
}

// DefaultSelfLoopParams returns standard parameters.
func DefaultSelfLoopParams() SelfLoopParams {
	return SelfLoopParams{
		Side:       SideRight,
		Index:      0,
		BaseOffset: 25.0,
		Spacing:    18.0,
		PortOffset: 0.35,
	}
}

// SelfLoopControlPoints computes the 7 control points of a self-loop on the
// given node box. Points P0-P6 form two cubic Bézier segments:
//
//	Segment 1: P0, P1, P2, P3 (tail to apex)
//	Segment 2: P3, P4, P5, P6 (apex to head)
func SelfLoopControlPoints(node Rect, params SelfLoopParams) []Point {
	cx, cy := node.X, node.Y
	hw, hh := node.W/2, node.H/2

	offset := params.BaseOffset + float64(params.Index)*params.Spacing

	switch params.Side {
	case SideLeft:
		return horizontalLoop(cx, cy, hw, hh, offset, params.PortOffset, -1)
	case SideTop:
		return verticalLoop(cx, cy, hw, hh, offset, params.PortOffset, -1)
	case SideBottom:
		return verticalLoop(cx, cy, hw, hh, offset, params.PortOffset, 1)
	default:
		return horizontalLoop(cx, cy, hw, hh, offset, params.PortOffset, 1)
	}
}

// horizontalLoop builds a loop on the right (dir=1) or left (dir=-1) face.
func horizontalLoop(cx, cy, hw, hh, offset, portFrac, dir float64) []Point {
	portY := hh * portFrac
	spread := hh * 0.5
	reach := hw + offset
	edge := cx + dir*hw
	return []Point{
		{edge, cy - portY},                          // P0: tail port
		{edge + dir*reach*0.4, cy - portY - spread}, // P1
		{cx + dir*reach, cy - spread},               // P2
		{cx + dir*reach, cy},                        // P3: apex
		{cx + dir*reach, cy + spread},               // P4
		{edge + dir*reach*0.4, cy + portY + spread}, // P5
		{edge, cy + portY},                          // P6: head port
	}
}

// verticalLoop builds a loop on the bottom (dir=1) or top (dir=-1) face.
func verticalLoop(cx, cy, hw, hh, offset, portFrac, dir float64) []Point {
	portX := hw * portFrac
	spread := hh * 0.5
	reach := hh + offset
	edge := cy + dir*hh
	return []Point{
		{cx - portX, edge},
		{cx - portX - spread, edge + dir*reach*0.4},
		{cx - spread, cy + dir*reach},
		{cx, cy + dir*reach}, // apex
		{cx + spread, cy + dir*reach},
		{cx + portX + spread, edge + dir*reach*0.4},
		{cx + portX, edge},
	}
}

// SelfLoopPoint evaluates the loop at t ∈ [0,1] across both segments.
func SelfLoopPoint(points []Point, t float64) Point {
	if len(points) < 7 {
		if len(points) == 0 {
			return Point{}
		}
		return points[0]
	}
	if t < 0.5 {
		return CubicPoint(points[0], points[1], points[2], points[3], t*2)
	}
	return CubicPoint(points[3], points[4], points[5], points[6], t*2-1)
}

// SelfLoopLabelPosition returns the label anchor for a self-loop. A slice
// shorter than seven points anchors at its first point, or the origin.
func SelfLoopLabelPosition(points []Point, side Side, labelWidth, labelHeight float64) Point {
	if len(points) < 7 {
		if len(points) == 0 {
			return Point{}
		}
		return points[0]
	}
	apex := points[3]
	gap := 6.0

	switch side {
	case SideRight:
		return Point{apex.X + gap + labelWidth/2, apex.Y}
	case SideLeft:
		return Point{apex.X - gap - labelWidth/2, apex.Y}
	case SideTop:
		return Point{apex.X, apex.Y - gap - labelHeight/2}
	case SideBottom:
		return Point{apex.X, apex.Y + gap + labelHeight/2}
	}
	return apex
}

// SelfLoopBounds returns the bounding box of the self-loop.
func SelfLoopBounds(points []Point) (minX, minY, maxX, maxY float64) {
	if len(points) == 0 {
		return 0, 0, 0, 0
	}

	minX, minY = points[0].X, points[0].Y
	maxX, maxY = points[0].X, points[0].Y

	for _, p := range points {
		if p.X < minX {
			minX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	// Bézier curves stay inside the control hull; 10% margin for strokes.
	dx := (maxX - minX) * 0.1
	dy := (maxY - minY) * 0.1
	return minX - dx, minY - dy, maxX + dx, maxY + dy
}

// ChooseSelfLoopSide picks the first face not used by other edges, in the
// order right, top, left, bottom. If every face is taken it stays right.
func ChooseSelfLoopSide(occupied map[Side]bool) Side {
	for _, side := range []Side{SideRight, SideTop, SideLeft, SideBottom} {
		if !occupied[side] {
			return side
		}
	}
	return SideRight
}
