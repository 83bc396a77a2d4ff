package render

import (
	"fmt"

	"streetgrade/internal/graph"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// FeatureCollection exports nodes as points and edges as lines, with their
// attributes as properties
func FeatureCollection(g *graph.Graph) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, n := range g.Nodes() {
		f := geojson.NewFeature(n.Point)
		f.ID = fmt.Sprintf("node/%d", n.ID)
		f.Properties["osmid"] = int64(n.ID)
		if n.HasElevation {
			f.Properties["elevation"] = n.Elevation
		}
		fc.Append(f)
	}

	for _, e := range g.Edges() {
		line := e.Geometry
		if len(line) < 2 {
			u, _ := g.Node(e.U)
			v, _ := g.Node(e.V)
			line = orb.LineString{u.Point, v.Point}
		}
		f := geojson.NewFeature(line)
		f.ID = fmt.Sprintf("edge/%d/%d/%d", e.U, e.V, e.Key)
		f.Properties["u"] = int64(e.U)
		f.Properties["v"] = int64(e.V)
		f.Properties["key"] = e.Key
		f.Properties["osmid"] = int64(e.WayID)
		f.Properties["length"] = e.Length
		f.Properties["oneway"] = e.Oneway
		if e.Name != "" {
			f.Properties["name"] = e.Name
		}
		if e.Highway != "" {
			f.Properties["highway"] = e.Highway
		}
		if e.HasGrade {
			f.Properties["grade"] = e.Grade
			f.Properties["grade_abs"] = e.GradeAbs
		}
		fc.Append(f)
	}

	return fc
}

// GeoJSON encodes the graph as a GeoJSON FeatureCollection
func GeoJSON(g *graph.Graph) ([]byte, error) {
	data, err := FeatureCollection(g).MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to encode geojson: %w", err)
	}
	return data, nil
}
