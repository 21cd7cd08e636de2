package preview

import (
	"math"

	"github.com/ha1tch/edgeroute/pkg/geom"
	"github.com/ha1tch/edgeroute/pkg/route"
)

// frame maps routing coordinates onto a canvas with padding and scale.
type frame struct {
	minX, minY float64
	scale      float64
	pad        float64
	width      int
	height     int
}

func newFrame(res *route.Result, scale float64, pad int) frame {
	if scale <= 0 {
		scale = 1
	}
	return frame{
		minX:   res.MinX,
		minY:   res.MinY,
		scale:  scale,
		pad:    float64(pad),
		width:  int(math.Ceil(res.Width()*scale)) + 2*pad,
		height: int(math.Ceil(res.Height()*scale)) + 2*pad,
	}
}

func (f frame) pt(p geom.Point) geom.Point {
	return geom.Point{
		X: (p.X-f.minX)*f.scale + f.pad,
		Y: (p.Y-f.minY)*f.scale + f.pad,
	}
}

func (f frame) rect(r geom.Rect) geom.Rect {
	c := f.pt(r.Center())
	return geom.Rect{X: c.X, Y: c.Y, W: r.W * f.scale, H: r.H * f.scale}
}

// ipt rounds a canvas point to whole pixels.
func ipt(p geom.Point) (int, int) {
	return int(math.Round(p.X)), int(math.Round(p.Y))
}
