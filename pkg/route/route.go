// Package route turns a graph into drawable edge geometry: trimmed curve
// endpoints, control points, arrow tips, label anchors and stroke widths.
package route

import (
	"encoding/json"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/samber/lo"

	"github.com/ha1tch/edgeroute/pkg/geom"
	"github.com/ha1tch/edgeroute/pkg/graph"
)

// Options controls route computation.
type Options struct {
	EdgeSpacing float64             // distance between parallel edges
	ArrowGap    float64             // arrow tip distance short of the node border
	LabelRadius float64             // node collision radius for label placement
	LabelGap    float64             // perpendicular slide step for crowded labels
	CharWidth   float64             // estimated label width per character
	LabelHeight float64             // label box height
	Thickness   geom.ThicknessScale // weight to stroke width
	GridColumns int                 // columns for nodes without a position
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		EdgeSpacing: geom.DefaultEdgeSpacing,
		ArrowGap:    2,
		LabelRadius: 45,
		LabelGap:    10,
		CharWidth:   7,
		LabelHeight: 14,
		Thickness:   geom.DefaultThicknessScale(),
		GridColumns: 4,
	}
}

// NodeBox is a node's drawn box.
type NodeBox struct {
	ID  string    `json:"id"`
	Box geom.Rect `json:"box"`
}

// EdgeRoute is the complete geometry of one edge.
type EdgeRoute struct {
	ID         string       `json:"id"`
	From       string       `json:"from"`
	To         string       `json:"to"`
	Label      string       `json:"label,omitempty"`
	Curve      geom.Curve   `json:"curve"`
	Loop       []geom.Point `json:"loop,omitempty"` // 7 cubic control points for self-loops
	SourceSide geom.Side    `json:"source_side"`
	TargetSide geom.Side    `json:"target_side"`
	Offset     float64      `json:"offset"`
	Arrow      geom.Point   `json:"arrow"`
	ArrowAngle float64      `json:"arrow_angle"`
	LabelAt    geom.Point   `json:"label_at"`
	Thickness  float64      `json:"thickness"`
}

// IsSelfLoop reports whether the route is a loop on one node.
func (r EdgeRoute) IsSelfLoop() bool {
	return len(r.Loop) == 7
}

// PointAt evaluates the drawn path at t ∈ [0,1].
func (r EdgeRoute) PointAt(t float64) geom.Point {
	if r.IsSelfLoop() {
		return geom.SelfLoopPoint(r.Loop, t)
	}
	return geom.BezierPoint(r.Curve, t)
}

// Result holds routed geometry for a whole graph.
type Result struct {
	Nodes map[string]NodeBox `json:"nodes"`
	Edges []EdgeRoute        `json:"edges"`
	MinX  float64            `json:"min_x"`
	MinY  float64            `json:"min_y"`
	MaxX  float64            `json:"max_x"`
	MaxY  float64            `json:"max_y"`
}

// Width returns the extent of the result along X.
func (r *Result) Width() float64 { return r.MaxX - r.MinX }

// Height returns the extent of the result along Y.
func (r *Result) Height() float64 { return r.MaxY - r.MinY }

// ToJSON encodes a result.
func ToJSON(res *Result, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(res, "", "  ")
	}
	return json.Marshal(res)
}

// pairKey identifies the unordered node pair of an edge.
type pairKey struct {
	a, b string
}

func keyOf(e graph.Edge) pairKey {
	if e.From <= e.To {
		return pairKey{e.From, e.To}
	}
	return pairKey{e.To, e.From}
}

// Compute routes every edge of g. The graph is not modified; nodes without
// a position are laid out on a grid in a private copy.
func Compute(g *graph.Graph, opts Options) (*Result, error) {
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("invalid graph: %w", err)
	}
	nodes := placedNodes(g, opts)

	centers := make(map[string]geom.Point, len(nodes))
	res := &Result{Nodes: make(map[string]NodeBox, len(nodes))}
	for _, n := range nodes {
		centers[n.ID] = n.Center()
		res.Nodes[n.ID] = NodeBox{ID: n.ID, Box: geom.NodeRect(n.Center())}
	}

	placer := NewLabelPlacer(lo.Map(nodes, func(n graph.Node, _ int) geom.Rect {
		return geom.NodeRect(n.Center())
	}))

	indices := lo.Range(len(g.Edges))
	groups := lo.GroupBy(indices, func(i int) pairKey { return keyOf(g.Edges[i]) })

	res.Edges = make([]EdgeRoute, len(g.Edges))
	occupied := make(map[string]map[geom.Side]bool)
	mark := func(id string, side geom.Side) {
		if occupied[id] == nil {
			occupied[id] = make(map[geom.Side]bool)
		}
		occupied[id][side] = true
	}

	// Straight and curved edges first so self-loops can avoid their faces.
	for _, i := range indices {
		e := g.Edges[i]
		if e.IsSelfLoop() {
			continue
		}
		group := groups[keyOf(e)]
		pos := lo.IndexOf(group, i)
		offset := geom.EdgeOffsetSpacing(pos, len(group), opts.EdgeSpacing)
		if k := keyOf(e); e.From != k.a {
			// The normal flips with direction; flip back so A→B and B→A
			// edges in one group stay apart.
			offset = -offset
		}

		r := routeEdge(e, centers[e.From], centers[e.To], offset, opts, placer)
		mark(e.From, r.SourceSide)
		mark(e.To, r.TargetSide)
		res.Edges[i] = r
	}

	loopCount := make(map[string]int)
	for _, i := range indices {
		e := g.Edges[i]
		if !e.IsSelfLoop() {
			continue
		}
		idx := loopCount[e.From]
		loopCount[e.From]++
		res.Edges[i] = routeSelfLoop(e, centers[e.From], idx, occupied[e.From], opts, placer)
	}

	res.computeBounds(opts)
	return res, nil
}

// placedNodes returns the graph's nodes with every node positioned.
func placedNodes(g *graph.Graph, opts Options) []graph.Node {
	for _, n := range g.Nodes {
		if !n.Placed {
			tmp := &graph.Graph{Nodes: append([]graph.Node(nil), g.Nodes...)}
			tmp.AutoPlace(opts.GridColumns, geom.NodeWidth*2, geom.NodeHeight*3)
			return tmp.Nodes
		}
	}
	return g.Nodes
}

func routeEdge(e graph.Edge, from, to geom.Point, offset float64, opts Options, placer *LabelPlacer) EdgeRoute {
	start := geom.NodeBoundaryIntersection(from, from, to)
	end := geom.NodeBoundaryIntersection(to, to, from)
	srcSide := geom.AttachmentSide(geom.NodeRect(from), start)
	dstSide := geom.AttachmentSide(geom.NodeRect(to), end)

	curve := geom.Curve{
		Source:  start,
		Control: geom.ControlPoint(start, end, srcSide, dstSide, offset),
		Target:  end,
	}
	tip, angle := geom.ArrowPosition(curve, opts.ArrowGap)

	r := EdgeRoute{
		ID:         e.ID,
		From:       e.From,
		To:         e.To,
		Label:      e.Label,
		Curve:      curve,
		SourceSide: srcSide,
		TargetSide: dstSide,
		Offset:     offset,
		Arrow:      tip,
		ArrowAngle: angle,
		Thickness:  opts.Thickness.Width(e.Weight),
	}

	mid := geom.BezierPoint(curve, 0.5)
	anchor := geom.LabelPosition(mid, curve, opts.LabelRadius)
	r.LabelAt = anchor
	if e.Label != "" {
		w, h := labelSize(e.Label, opts)
		r.LabelAt = placer.PlaceLabelOnCurve(anchor, geom.BezierTangent(curve, 0.5), w, h, opts.LabelGap)
	}
	return r
}

func routeSelfLoop(e graph.Edge, center geom.Point, index int, occupied map[geom.Side]bool, opts Options, placer *LabelPlacer) EdgeRoute {
	params := geom.DefaultSelfLoopParams()
	params.Side = geom.ChooseSelfLoopSide(occupied)
	params.Index = index
	points := geom.SelfLoopControlPoints(geom.NodeRect(center), params)

	// The head segment ends at P6 travelling from P5.
	head := points[6]
	angle := math.Atan2(head.Y-points[5].Y, head.X-points[5].X)
	tip := head
	if dir, ok := geom.Normalize(head.Sub(points[5])); ok && opts.ArrowGap > 0 {
		tip = head.Sub(dir.Scale(opts.ArrowGap))
	}

	r := EdgeRoute{
		ID:         e.ID,
		From:       e.From,
		To:         e.To,
		Label:      e.Label,
		Curve:      geom.Curve{Source: points[0], Control: points[3], Target: points[6]},
		Loop:       points,
		SourceSide: params.Side,
		TargetSide: params.Side,
		Arrow:      tip,
		ArrowAngle: angle,
		Thickness:  opts.Thickness.Width(e.Weight),
	}

	w, h := labelSize(e.Label, opts)
	r.LabelAt = geom.SelfLoopLabelPosition(points, params.Side, w, h)
	if e.Label != "" {
		r.LabelAt = placer.PlaceLabel(r.LabelAt, w, h, opts.LabelGap)
	}
	return r
}

func labelSize(label string, opts Options) (float64, float64) {
	return float64(utf8.RuneCountInString(label)) * opts.CharWidth, opts.LabelHeight
}

// computeBounds takes the union of node boxes, curve hulls and label boxes.
func (r *Result) computeBounds(opts Options) {
	first := true
	add := func(x, y float64) {
		if first {
			r.MinX, r.MaxX, r.MinY, r.MaxY = x, x, y, y
			first = false
			return
		}
		r.MinX = math.Min(r.MinX, x)
		r.MaxX = math.Max(r.MaxX, x)
		r.MinY = math.Min(r.MinY, y)
		r.MaxY = math.Max(r.MaxY, y)
	}

	for _, n := range r.Nodes {
		mn, mx := n.Box.Min(), n.Box.Max()
		add(mn.X, mn.Y)
		add(mx.X, mx.Y)
	}
	for _, e := range r.Edges {
		if e.IsSelfLoop() {
			minX, minY, maxX, maxY := geom.SelfLoopBounds(e.Loop)
			add(minX, minY)
			add(maxX, maxY)
		} else {
			for _, p := range []geom.Point{e.Curve.Source, e.Curve.Control, e.Curve.Target} {
				add(p.X, p.Y)
			}
		}
		if e.Label != "" {
			w, h := labelSize(e.Label, opts)
			add(e.LabelAt.X-w/2, e.LabelAt.Y-h/2)
			add(e.LabelAt.X+w/2, e.LabelAt.Y+h/2)
		}
	}
}
