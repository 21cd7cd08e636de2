package preview

import (
	"fmt"
	"io"
	"math"
	"unicode/utf8"

	svg "github.com/ajstarks/svgo"

	"github.com/ha1tch/edgeroute/pkg/geom"
	"github.com/ha1tch/edgeroute/pkg/graph"
	"github.com/ha1tch/edgeroute/pkg/route"
)

// SVGOptions controls SVG rendering.
type SVGOptions struct {
	Padding      int     // space around the routed bounds
	Scale        float64 // routing units to pixels
	FontSize     int     // node label size
	LabelSize    int     // edge label size (0 = FontSize - 2)
	Title        string  // document title
	ShowControls bool    // draw control points and their guides
}

// DefaultSVGOptions returns sensible defaults.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Padding:  40,
		Scale:    1,
		FontSize: 14,
	}
}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}

// RenderSVG writes routed geometry as an SVG document.
func RenderSVG(w io.Writer, g *graph.Graph, res *route.Result, opts SVGOptions) error {
	if opts.FontSize <= 0 {
		opts.FontSize = 14
	}
	if opts.LabelSize <= 0 {
		opts.LabelSize = opts.FontSize - 2
	}
	f := newFrame(res, opts.Scale, opts.Padding)

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(f.width, f.height)
	if opts.Title != "" {
		canvas.Title(opts.Title)
	}
	canvas.Rect(0, 0, f.width, f.height, "fill:#ffffff")

	canvas.Gid("nodes")
	for _, n := range g.Nodes {
		box, ok := res.Nodes[n.ID]
		if !ok {
			continue
		}
		svgNode(canvas, n, f.rect(box.Box), opts)
	}
	canvas.Gend()

	canvas.Gid("edges")
	for _, e := range res.Edges {
		svgEdge(canvas, f, e, opts)
	}
	canvas.Gend()

	canvas.Gid("labels")
	for _, e := range res.Edges {
		if e.Label == "" {
			continue
		}
		svgLabel(canvas, f.pt(e.LabelAt), e.Label, opts.LabelSize)
	}
	canvas.Gend()

	canvas.End()
	if ew.err != nil {
		return fmt.Errorf("writing svg: %w", ew.err)
	}
	return nil
}

func svgNode(canvas *svg.SVG, n graph.Node, box geom.Rect, opts SVGOptions) {
	x, y := ipt(box.Min())
	w, h := int(math.Round(box.W)), int(math.Round(box.H))
	canvas.Roundrect(x, y, w, h, 6, 6, fmt.Sprintf("fill:%s;stroke:%s;stroke-width:2",
		NodeFill(n.Type).Hex(), StatusStroke(n.Status).Hex()))

	if n.Progress.Max > n.Progress.Min {
		trackW := w - 12
		canvas.Rect(x+6, y+h-8, trackW, 4, "fill:"+colorProgress.Hex())
		if filled := int(math.Round(float64(trackW) * n.Progress.Fraction())); filled > 0 {
			canvas.Rect(x+6, y+h-8, filled, 4, "fill:"+ProgressColor(n.Progress.Fraction()).Hex())
		}
	}

	cx, cy := ipt(box.Center())
	canvas.Text(cx, cy+opts.FontSize/3, n.DisplayLabel(), fmt.Sprintf(
		"text-anchor:middle;font-family:sans-serif;font-size:%dpx;fill:%s", opts.FontSize, colorInk.Hex()))
}

func svgEdge(canvas *svg.SVG, f frame, e route.EdgeRoute, opts SVGOptions) {
	width := e.Thickness * f.scale
	style := fmt.Sprintf("fill:none;stroke:%s;stroke-width:%.2f", colorInk.Hex(), width)

	if e.IsSelfLoop() {
		p := make([]geom.Point, len(e.Loop))
		for i, q := range e.Loop {
			p[i] = f.pt(q)
		}
		canvas.Path(fmt.Sprintf("M%.2f,%.2f C%.2f,%.2f %.2f,%.2f %.2f,%.2f C%.2f,%.2f %.2f,%.2f %.2f,%.2f",
			p[0].X, p[0].Y, p[1].X, p[1].Y, p[2].X, p[2].Y, p[3].X, p[3].Y,
			p[4].X, p[4].Y, p[5].X, p[5].Y, p[6].X, p[6].Y), style)
	} else {
		s, c, t := f.pt(e.Curve.Source), f.pt(e.Curve.Control), f.pt(e.Curve.Target)
		canvas.Path(fmt.Sprintf("M%.2f,%.2f Q%.2f,%.2f %.2f,%.2f", s.X, s.Y, c.X, c.Y, t.X, t.Y), style)
		if opts.ShowControls {
			guide := fmt.Sprintf("fill:none;stroke:%s;stroke-dasharray:4,3", colorGuide.Hex())
			sx, sy := ipt(s)
			cx, cy := ipt(c)
			tx, ty := ipt(t)
			canvas.Line(sx, sy, cx, cy, guide)
			canvas.Line(cx, cy, tx, ty, guide)
			canvas.Circle(cx, cy, 3, "fill:"+colorGuide.Hex())
		}
	}

	head := geom.ArrowHead(f.pt(e.Arrow), e.ArrowAngle, 8+width, 6+width)
	xs := make([]int, 3)
	ys := make([]int, 3)
	for i, p := range head {
		xs[i], ys[i] = ipt(p)
	}
	canvas.Polygon(xs, ys, "fill:"+colorInk.Hex())
}

func svgLabel(canvas *svg.SVG, at geom.Point, label string, size int) {
	w := int(math.Ceil(float64(utf8.RuneCountInString(label)*size) * 0.6))
	x, y := ipt(at)
	canvas.Rect(x-w/2-2, y-size/2-2, w+4, size+4, "fill:#ffffff;fill-opacity:0.85")
	canvas.Text(x, y+size/3, label, fmt.Sprintf(
		"text-anchor:middle;font-family:sans-serif;font-size:%dpx;fill:%s", size, colorGray.Hex()))
}
