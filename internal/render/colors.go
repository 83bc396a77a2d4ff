package render

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"streetgrade/internal/graph"

	"github.com/mazznoer/colorgrad"
	"github.com/paulmach/osm"
)

var ErrUnknownColormap = errors.New("unknown colormap")

// DefaultColormap is used when no colormap is configured
const DefaultColormap = "plasma"

var colormaps = map[string]func() colorgrad.Gradient{
	"plasma":  colorgrad.Plasma,
	"viridis": colorgrad.Viridis,
	"inferno": colorgrad.Inferno,
	"magma":   colorgrad.Magma,
	"cividis": colorgrad.Cividis,
	"turbo":   colorgrad.Turbo,
}

// Colormap returns the named gradient
func Colormap(name string) (colorgrad.Gradient, error) {
	if name == "" {
		name = DefaultColormap
	}
	newGradient, ok := colormaps[strings.ToLower(name)]
	if !ok {
		return colorgrad.Gradient{}, fmt.Errorf("%w: %q", ErrUnknownColormap, name)
	}
	return newGradient(), nil
}

// NodeColors maps each node's elevation linearly between the lowest and
// highest elevation in the graph onto the named colormap
func NodeColors(g *graph.Graph, colormap string) (map[osm.NodeID]color.Color, error) {
	grad, err := Colormap(colormap)
	if err != nil {
		return nil, err
	}

	if err := g.RequireElevations(); err != nil {
		return nil, err
	}

	nodes := g.Nodes()

	lo, hi, _ := g.ElevationRange()
	colors := make(map[osm.NodeID]color.Color, len(nodes))
	for _, n := range nodes {
		colors[n.ID] = grad.At(normalize(n.Elevation, lo, hi))
	}
	return colors, nil
}

// normalize maps v from [lo, hi] to [0, 1]; an empty range maps to 0
func normalize(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0
	}
	return (v - lo) / (hi - lo)
}
