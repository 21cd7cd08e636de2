package main

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ha1tch/edgeroute/pkg/geom"
	"github.com/ha1tch/edgeroute/pkg/graph"
	"github.com/ha1tch/edgeroute/pkg/preview"
	"github.com/ha1tch/edgeroute/pkg/route"
)

// Styles
var (
	styleDefault  = tcell.StyleDefault
	styleEdge     = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	styleEdgeSel  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleArrow    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleLabel    = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleControl  = tcell.StyleDefault.Foreground(tcell.NewRGBColor(200, 162, 200)) // Lilac
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleMsgInfo  = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorNavy)
	styleHelp     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleNodeText = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
)

// arrowGlyphs are indexed by direction in 45° steps, clockwise from east
// (screen Y grows downward).
var arrowGlyphs = []rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

// arrowGlyph returns the arrow closest to angle (radians, Y down).
func arrowGlyph(angle float64) rune {
	idx := int(math.Round(angle / (math.Pi / 4)))
	return arrowGlyphs[((idx%8)+8)%8]
}

// lineGlyph picks a box-drawing rune for a step of (dx, dy) cells.
func lineGlyph(dx, dy float64) rune {
	adx, ady := math.Abs(dx), math.Abs(dy)
	switch {
	case adx < 1e-9 && ady < 1e-9:
		return '·'
	case ady <= adx*math.Tan(math.Pi/8):
		return '─'
	case adx <= ady*math.Tan(math.Pi/8):
		return '│'
	case dx*dy > 0:
		return '╲'
	default:
		return '╱'
	}
}

// colorStyle converts a palette colour to a tcell foreground.
func colorStyle(c colorful.Color) tcell.Style {
	r, g, b := c.Clamped().RGB255()
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
}

// cellScale returns routing units per cell along X and Y at the current zoom.
func (v *Viewer) cellScale() (float64, float64) {
	return v.config.ScaleX / v.zoom, v.config.ScaleY / v.zoom
}

// toCell maps a routing point to a screen cell.
func (v *Viewer) toCell(p geom.Point) (int, int) {
	sx, sy := v.cellScale()
	x := int(math.Round((p.X-v.result.MinX)/sx)) + 1 - v.offsetX
	y := int(math.Round((p.Y-v.result.MinY)/sy)) + 1 - v.offsetY
	return x, y
}

func (v *Viewer) draw() {
	v.screen.Clear()
	w, h := v.screen.Size()
	canvasH := h - 2

	if v.result != nil {
		for i, e := range v.result.Edges {
			style := styleEdge
			if i == v.selected {
				style = styleEdgeSel
			}
			v.drawEdge(e, style, w, canvasH)
		}
		for _, n := range v.graph.Nodes {
			if box, ok := v.result.Nodes[n.ID]; ok {
				v.drawNode(n, box.Box, w, canvasH)
			}
		}
		for i, e := range v.result.Edges {
			style := styleArrow
			if i == v.selected {
				style = styleEdgeSel
			}
			x, y := v.toCell(e.Arrow)
			v.setCell(x, y, arrowGlyph(e.ArrowAngle), style, w, canvasH)
		}
		if v.config.ShowLabels {
			for _, e := range v.result.Edges {
				if e.Label == "" {
					continue
				}
				x, y := v.toCell(e.LabelAt)
				v.drawClipped(x-len([]rune(e.Label))/2, y, e.Label, styleLabel, w, canvasH)
			}
		}
	}

	v.drawStatusBar(w, h)
}

func (v *Viewer) setCell(x, y int, r rune, style tcell.Style, w, h int) {
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	v.screen.SetContent(x, y, r, nil, style)
}

// drawClipped draws a string, skipping cells outside the canvas.
func (v *Viewer) drawClipped(x, y int, s string, style tcell.Style, w, h int) {
	for i, r := range []rune(s) {
		v.setCell(x+i, y, r, style, w, h)
	}
}

func (v *Viewer) drawEdge(e route.EdgeRoute, style tcell.Style, w, h int) {
	sx, sy := v.cellScale()

	var pts []geom.Point
	if e.IsSelfLoop() {
		for i := 0; i <= 40; i++ {
			pts = append(pts, geom.SelfLoopPoint(e.Loop, float64(i)/40))
		}
	} else {
		cells := geom.CurveLength(e.Curve, 16) / math.Min(sx, sy)
		pts = geom.SampleCurve(e.Curve, int(math.Max(8, cells*2)))
	}

	for i := 1; i < len(pts); i++ {
		d := pts[i].Sub(pts[i-1])
		x, y := v.toCell(geom.Midpoint(pts[i-1], pts[i]))
		v.setCell(x, y, lineGlyph(d.X/sx, d.Y/sy), style, w, h)
	}

	if v.config.ShowControls && !e.IsSelfLoop() {
		x, y := v.toCell(e.Curve.Control)
		v.setCell(x, y, '◆', styleControl, w, h)
	}
}

func (v *Viewer) drawNode(n graph.Node, box geom.Rect, w, h int) {
	x0, y0 := v.toCell(box.Min())
	x1, y1 := v.toCell(box.Max())
	if x1-x0 < 2 {
		x1 = x0 + 2
	}
	if y1-y0 < 2 {
		y1 = y0 + 2
	}
	border := colorStyle(preview.StatusStroke(n.Status))

	for x := x0 + 1; x < x1; x++ {
		v.setCell(x, y0, '─', border, w, h)
		v.setCell(x, y1, '─', border, w, h)
	}
	for y := y0 + 1; y < y1; y++ {
		v.setCell(x0, y, '│', border, w, h)
		v.setCell(x1, y, '│', border, w, h)
		for x := x0 + 1; x < x1; x++ {
			v.setCell(x, y, ' ', styleDefault, w, h)
		}
	}
	v.setCell(x0, y0, '┌', border, w, h)
	v.setCell(x1, y0, '┐', border, w, h)
	v.setCell(x0, y1, '└', border, w, h)
	v.setCell(x1, y1, '┘', border, w, h)

	label := truncate(n.DisplayLabel(), x1-x0-1)
	cx := x0 + (x1-x0+1-len([]rune(label)))/2
	v.drawClipped(cx, (y0+y1)/2, label, styleNodeText, w, h)

	if n.Progress.Max > n.Progress.Min {
		pct := fmt.Sprintf("%d%%", n.Progress.Percent())
		v.drawClipped(x1-len(pct), y1, pct, colorStyle(preview.ProgressColor(n.Progress.Fraction())), w, h)
	}
}

func (v *Viewer) drawStatusBar(w, h int) {
	status := fmt.Sprintf(" %s  %d nodes  %d edges  zoom %.2fx ",
		filepath.Base(v.filename), len(v.graph.Nodes), len(v.graph.Edges), v.zoom)
	if v.selected >= 0 && v.selected < len(v.result.Edges) {
		status += " " + edgeSummary(v.result.Edges[v.selected])
	}
	style := styleStatus
	if v.message != "" {
		status = " " + v.message
		style = styleMsgInfo
	}
	for x := 0; x < w; x++ {
		v.screen.SetContent(x, h-2, ' ', nil, style)
	}
	v.drawString(0, h-2, truncate(status, w), style)
	v.drawString(0, h-1, truncate(helpString, w), styleHelp)
}

const helpString = "←↑↓→ pan  +/- zoom  0 reset  Tab edge  l labels  c controls  r reload  s save  q quit"

// edgeSummary describes a routed edge on one line.
func edgeSummary(e route.EdgeRoute) string {
	if e.IsSelfLoop() {
		return fmt.Sprintf("%s: %s loop on %s", e.ID, e.From, e.SourceSide)
	}
	return fmt.Sprintf("%s: %s→%s %s→%s offset %.1f width %.1f",
		e.ID, e.From, e.To, e.SourceSide, e.TargetSide, e.Offset, e.Thickness)
}

func (v *Viewer) drawString(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		v.screen.SetContent(x+i, y, r, nil, style)
	}
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if maxLen <= 0 {
		return ""
	}
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-1]) + "…"
}
