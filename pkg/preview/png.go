package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/ha1tch/edgeroute/pkg/geom"
	"github.com/ha1tch/edgeroute/pkg/graph"
	"github.com/ha1tch/edgeroute/pkg/route"
)

// supersample is the render multiplier before downsampling.
const supersample = 4

// PNGOptions configures PNG rendering.
type PNGOptions struct {
	Padding      int
	Scale        float64 // routing units to output pixels
	FontSize     float64
	ShowControls bool
}

// DefaultPNGOptions returns sensible defaults for PNG rendering.
func DefaultPNGOptions() PNGOptions {
	return PNGOptions{
		Padding:  40,
		Scale:    1,
		FontSize: 13,
	}
}

// renderContext holds the large image and drawing parameters.
type renderContext struct {
	img   *image.RGBA
	frame frame
	ss    float64 // supersample factor
	face  font.Face
}

func newRenderContext(img *image.RGBA, f frame, fontSize float64) (*renderContext, error) {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    fontSize * supersample,
		DPI:     72,
		Hinting: font.HintingNone, // supersampled instead
	})
	if err != nil {
		return nil, fmt.Errorf("creating font face: %w", err)
	}
	return &renderContext{img: img, frame: f, ss: supersample, face: face}, nil
}

// px maps a routing point to large-image pixels.
func (ctx *renderContext) px(p geom.Point) geom.Point {
	return ctx.frame.pt(p).Scale(ctx.ss)
}

// RenderPNG renders routed geometry to PNG.
// Uses 4x supersampling for smoother output.
func RenderPNG(w io.Writer, g *graph.Graph, res *route.Result, opts PNGOptions) error {
	if opts.FontSize <= 0 {
		opts.FontSize = 13
	}
	f := newFrame(res, opts.Scale, opts.Padding)
	if f.width <= 0 || f.height <= 0 {
		return fmt.Errorf("empty image %dx%d", f.width, f.height)
	}

	large := image.NewRGBA(image.Rect(0, 0, f.width*supersample, f.height*supersample))
	ctx, err := newRenderContext(large, f, opts.FontSize*f.scale)
	if err != nil {
		return err
	}
	renderPNGInternal(ctx, g, res, opts)

	final := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	draw.CatmullRom.Scale(final, final.Bounds(), large, large.Bounds(), draw.Over, nil)

	if err := png.Encode(w, final); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

func renderPNGInternal(ctx *renderContext, g *graph.Graph, res *route.Result, opts PNGOptions) {
	draw.Draw(ctx.img, ctx.img.Bounds(), image.NewUniform(rgba(colorWhite)), image.Point{}, draw.Src)

	for _, n := range g.Nodes {
		box, ok := res.Nodes[n.ID]
		if !ok {
			continue
		}
		drawNodePNG(ctx, n, box.Box)
	}

	for _, e := range res.Edges {
		drawEdgePNG(ctx, e, opts.ShowControls)
	}

	for _, e := range res.Edges {
		if e.Label == "" {
			continue
		}
		at := ctx.px(e.LabelAt)
		drawTextCentered(ctx, int(at.X), int(at.Y), e.Label, rgba(colorGray))
	}
}

func drawNodePNG(ctx *renderContext, n graph.Node, box geom.Rect) {
	mn, mx := ctx.px(box.Min()), ctx.px(box.Max())
	r := image.Rect(int(mn.X), int(mn.Y), int(mx.X), int(mx.Y))
	fillRect(ctx, r, rgba(NodeFill(n.Type)))
	strokeRect(ctx, r, 2*ctx.ss*ctx.frame.scale, rgba(StatusStroke(n.Status)))

	if n.Progress.Max > n.Progress.Min {
		inset := int(6 * ctx.ss * ctx.frame.scale)
		barH := int(4 * ctx.ss * ctx.frame.scale)
		track := image.Rect(r.Min.X+inset, r.Max.Y-inset-barH, r.Max.X-inset, r.Max.Y-inset)
		fillRect(ctx, track, rgba(colorProgress))
		frac := n.Progress.Fraction()
		filled := track
		filled.Max.X = track.Min.X + int(math.Round(float64(track.Dx())*frac))
		fillRect(ctx, filled, rgba(ProgressColor(frac)))
	}

	c := ctx.px(box.Center())
	drawTextCentered(ctx, int(c.X), int(c.Y), n.DisplayLabel(), rgba(colorInk))
}

func drawEdgePNG(ctx *renderContext, e route.EdgeRoute, showControls bool) {
	width := e.Thickness * ctx.ss * ctx.frame.scale
	ink := rgba(colorInk)

	var path []geom.Point
	if e.IsSelfLoop() {
		for i := 0; i <= 100; i++ {
			path = append(path, ctx.px(geom.SelfLoopPoint(e.Loop, float64(i)/100)))
		}
	} else {
		for _, p := range geom.SampleCurve(e.Curve, 100) {
			path = append(path, ctx.px(p))
		}
		if showControls {
			guide := rgba(colorGuide)
			c := ctx.px(e.Curve.Control)
			drawLine(ctx, ctx.px(e.Curve.Source), c, ctx.ss, guide)
			drawLine(ctx, c, ctx.px(e.Curve.Target), ctx.ss, guide)
		}
	}
	for i := 1; i < len(path); i++ {
		drawLine(ctx, path[i-1], path[i], width, ink)
	}

	head := geom.ArrowHead(ctx.px(e.Arrow), e.ArrowAngle, width+8*ctx.ss, width+6*ctx.ss)
	fillTriangle(ctx, head, ink)
}

// drawLine draws a line between two points with the given thickness.
func drawLine(ctx *renderContext, a, b geom.Point, thickness float64, c color.Color) {
	img := ctx.img
	d := b.Sub(a)
	steps := math.Max(math.Abs(d.X), math.Abs(d.Y))
	if steps < 1 {
		steps = 1
	}
	half := thickness / 2

	perp, ok := geom.Normalize(d.Perp())
	if !ok {
		for ty := -half; ty <= half; ty++ {
			for tx := -half; tx <= half; tx++ {
				img.Set(int(a.X+tx), int(a.Y+ty), c)
			}
		}
		return
	}

	for i := 0.0; i <= steps; i++ {
		p := geom.Lerp(a, b, i/steps)
		for offset := -half; offset <= half; offset += 0.5 {
			img.Set(int(p.X+perp.X*offset), int(p.Y+perp.Y*offset), c)
		}
	}
}

// fillTriangle fills a triangle by testing pixel centres in its bounding box.
func fillTriangle(ctx *renderContext, tri [3]geom.Point, c color.Color) {
	minX := math.Floor(math.Min(tri[0].X, math.Min(tri[1].X, tri[2].X)))
	maxX := math.Ceil(math.Max(tri[0].X, math.Max(tri[1].X, tri[2].X)))
	minY := math.Floor(math.Min(tri[0].Y, math.Min(tri[1].Y, tri[2].Y)))
	maxY := math.Ceil(math.Max(tri[0].Y, math.Max(tri[1].Y, tri[2].Y)))

	edge := func(a, b, p geom.Point) float64 { return b.Sub(a).Cross(p.Sub(a)) }
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := geom.Pt(x+0.5, y+0.5)
			w0 := edge(tri[0], tri[1], p)
			w1 := edge(tri[1], tri[2], p)
			w2 := edge(tri[2], tri[0], p)
			if (w0 >= 0 && w1 >= 0 && w2 >= 0) || (w0 <= 0 && w1 <= 0 && w2 <= 0) {
				ctx.img.Set(int(x), int(y), c)
			}
		}
	}
}

func fillRect(ctx *renderContext, r image.Rectangle, c color.Color) {
	draw.Draw(ctx.img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func strokeRect(ctx *renderContext, r image.Rectangle, thickness float64, c color.Color) {
	t := int(math.Max(1, math.Round(thickness)))
	fillRect(ctx, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+t), c)
	fillRect(ctx, image.Rect(r.Min.X, r.Max.Y-t, r.Max.X, r.Max.Y), c)
	fillRect(ctx, image.Rect(r.Min.X, r.Min.Y, r.Min.X+t, r.Max.Y), c)
	fillRect(ctx, image.Rect(r.Max.X-t, r.Min.Y, r.Max.X, r.Max.Y), c)
}

// drawTextCentered draws text centred at the given position using Go Regular.
func drawTextCentered(ctx *renderContext, x, y int, text string, c color.Color) {
	width := font.MeasureString(ctx.face, text).Ceil()

	// Cap height is roughly 0.7 of ascent; half of that puts caps on y.
	ascent := ctx.face.Metrics().Ascent.Ceil()
	baselineY := y + int(float64(ascent)*0.35)

	d := &font.Drawer{
		Dst:  ctx.img,
		Src:  image.NewUniform(c),
		Face: ctx.face,
		Dot:  fixed.Point26_6{X: fixed.I(x - width/2), Y: fixed.I(baselineY)},
	}
	d.DrawString(text)
}
