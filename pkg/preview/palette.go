// Package preview draws routed graphs to SVG and PNG so edge geometry can be
// inspected by eye. It draws node boxes, curves, arrowheads and labels; it is
// not a styled node renderer.
package preview

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ha1tch/edgeroute/pkg/graph"
)

// Colors used in rendering
var (
	colorWhite    = mustHex("#ffffff")
	colorInk      = mustHex("#333333")
	colorGray     = mustHex("#666666")
	colorGuide    = mustHex("#c8a2c8") // control point guides
	colorProgress = mustHex("#e0e0e0") // empty progress track
	progressLow   = mustHex("#e53935")
	progressHigh  = mustHex("#43a047")
)

var typeFills = map[graph.NodeType]colorful.Color{
	graph.TypeRequirement: mustHex("#e3f2fd"),
	graph.TypeTask:        mustHex("#e8f5e9"),
	graph.TypeRisk:        mustHex("#ffebee"),
	graph.TypeProject:     mustHex("#ede7f6"),
	graph.TypeMilestone:   mustHex("#fff3e0"),
	graph.TypeDecision:    mustHex("#fffde7"),
}

var statusStrokes = map[graph.Status]colorful.Color{
	graph.StatusTodo:       mustHex("#757575"),
	graph.StatusInProgress: mustHex("#1565c0"),
	graph.StatusBlocked:    mustHex("#c62828"),
	graph.StatusDone:       mustHex("#2e7d32"),
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err) // constant table, cannot fail
	}
	return c
}

// NodeFill returns the box fill for a node type.
func NodeFill(t graph.NodeType) colorful.Color {
	if c, ok := typeFills[t]; ok {
		return c
	}
	return colorWhite
}

// StatusStroke returns the box outline colour for a status.
func StatusStroke(s graph.Status) colorful.Color {
	if c, ok := statusStrokes[s]; ok {
		return c
	}
	return colorInk
}

// ProgressColor blends from red at 0 to green at 1 in HCL space, which keeps
// the midpoint from turning muddy brown.
func ProgressColor(fraction float64) colorful.Color {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	return progressLow.BlendHcl(progressHigh, fraction).Clamped()
}

// rgba converts to an opaque image colour.
func rgba(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
