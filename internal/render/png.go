package render

import (
	"fmt"
	"io"
	"math"

	"streetgrade/internal/graph"

	"github.com/fogleman/gg"
	"github.com/paulmach/orb"
)

// Options controls PNG rendering
type Options struct {
	Width     int
	NodeSize  float64 // diameter in pixels
	EdgeWidth float64
	EdgeColor string // hex
	BgColor   string // hex
	Colormap  string
}

// DefaultOptions match a dark map with thin grey streets
func DefaultOptions() Options {
	return Options{
		Width:     1600,
		NodeSize:  5,
		EdgeWidth: 1,
		EdgeColor: "#333333",
		BgColor:   "#000000",
		Colormap:  DefaultColormap,
	}
}

// maxAspect caps the image height relative to its width
const maxAspect = 4

// projection maps lon/lat to pixels with an equirectangular projection
// scaled by the cosine of the mid latitude
type projection struct {
	bound  orb.Bound
	kx     float64
	scale  float64
	pad    float64
	height int
}

func newProjection(bound orb.Bound, width int) projection {
	p := projection{bound: bound, pad: math.Max(10, float64(width)*0.02)}

	midLat := (bound.Min.Lat() + bound.Max.Lat()) / 2
	p.kx = math.Cos(midLat * math.Pi / 180)

	spanX := (bound.Max.Lon() - bound.Min.Lon()) * p.kx
	spanY := bound.Max.Lat() - bound.Min.Lat()
	inner := float64(width) - 2*p.pad

	switch {
	case spanX == 0 && spanY == 0:
		p.scale = 1
		p.height = width
		return p
	case spanX == 0:
		p.scale = inner / spanY
	default:
		p.scale = inner / spanX
	}

	h := spanY*p.scale + 2*p.pad
	if h > float64(width*maxAspect) {
		p.scale = (float64(width*maxAspect) - 2*p.pad) / spanY
		h = float64(width * maxAspect)
	}
	p.height = int(math.Ceil(h))
	return p
}

func (p projection) xy(pt orb.Point) (float64, float64) {
	x := p.pad + (pt.Lon()-p.bound.Min.Lon())*p.kx*p.scale
	y := p.pad + (p.bound.Max.Lat()-pt.Lat())*p.scale
	return x, y
}

// PNG draws the graph's edges and its nodes colored by elevation
func PNG(w io.Writer, g *graph.Graph, opts Options) error {
	if opts.Width <= 0 {
		return fmt.Errorf("invalid width %d", opts.Width)
	}

	colors, err := NodeColors(g, opts.Colormap)
	if err != nil {
		return err
	}

	proj := newProjection(g.Bound(), opts.Width)
	dc := gg.NewContext(opts.Width, proj.height)

	dc.SetHexColor(opts.BgColor)
	dc.Clear()

	dc.SetHexColor(opts.EdgeColor)
	dc.SetLineWidth(opts.EdgeWidth)
	for _, e := range g.Edges() {
		line := e.Geometry
		if len(line) < 2 {
			u, _ := g.Node(e.U)
			v, _ := g.Node(e.V)
			line = orb.LineString{u.Point, v.Point}
		}
		for i, pt := range line {
			x, y := proj.xy(pt)
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.Stroke()
	}

	radius := opts.NodeSize / 2
	for _, n := range g.Nodes() {
		x, y := proj.xy(n.Point)
		dc.SetColor(colors[n.ID])
		dc.DrawCircle(x, y, radius)
		dc.Fill()
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}
