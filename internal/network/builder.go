package network

import (
	"fmt"
	"log/slog"

	"streetgrade/internal/graph"
	"streetgrade/internal/providers/overpass"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/osm"
)

// BuildStats describes what the builder kept and dropped
type BuildStats struct {
	Ways        int
	SkippedWays int
	Nodes       int
	Edges       int
}

// builder turns Overpass elements into a graph
type builder struct {
	networkType string
	simplify    bool
	logger      *slog.Logger
}

func (b *builder) build(elements []overpass.Element) (*graph.Graph, BuildStats, error) {
	var (
		stats  BuildStats
		points = make(map[osm.NodeID]orb.Point)
		ways   []overpass.Element
	)

	for _, e := range elements {
		switch e.Type {
		case osm.TypeNode:
			points[e.NodeID()] = orb.Point{e.Lon, e.Lat}
		case osm.TypeWay:
			if len(e.Nodes) < 2 {
				continue
			}
			ways = append(ways, e)
		}
	}

	endpoints := b.endpoints(ways)
	g := graph.New()

	for _, way := range ways {
		if missing, ok := firstMissing(way.Nodes, points); ok {
			b.logger.Warn("skipping way with unknown node",
				"way_id", way.ID,
				"node_id", missing,
			)
			stats.SkippedWays++
			continue
		}
		stats.Ways++

		if err := b.addWay(g, way, points, endpoints); err != nil {
			return nil, stats, err
		}
	}

	stats.Nodes = g.NodeCount()
	stats.Edges = g.EdgeCount()
	return g, stats, nil
}

// endpoints returns the nodes that stay in the graph: way ends and nodes
// referenced more than once. Without simplification every node stays.
func (b *builder) endpoints(ways []overpass.Element) map[osm.NodeID]bool {
	keep := make(map[osm.NodeID]bool)
	refs := make(map[osm.NodeID]int)

	for _, way := range ways {
		last := len(way.Nodes) - 1
		for i, id := range way.Nodes {
			// a closed way's last node repeats its first
			if i == last && id == way.Nodes[0] {
				continue
			}
			refs[id]++
			if !b.simplify || i == 0 || i == last || refs[id] > 1 {
				keep[id] = true
			}
		}
	}
	return keep
}

// addWay splits a way at kept nodes and adds one edge per piece, in the
// directions the way may be traversed
func (b *builder) addWay(g *graph.Graph, way overpass.Element, points map[osm.NodeID]orb.Point, keep map[osm.NodeID]bool) error {
	direction := onewayDirection(b.networkType, way.Tags)

	start := 0
	for i := 1; i < len(way.Nodes); i++ {
		if !keep[way.Nodes[i]] && i != len(way.Nodes)-1 {
			continue
		}

		segment := way.Nodes[start : i+1]
		line := make(orb.LineString, 0, len(segment))
		for _, id := range segment {
			line = append(line, points[id])
		}

		u, v := segment[0], segment[len(segment)-1]
		for _, id := range []osm.NodeID{u, v} {
			p := points[id]
			g.AddNode(id, p.Lat(), p.Lon())
		}

		base := graph.Edge{
			WayID:   way.WayID(),
			Name:    way.Tag("name"),
			Highway: way.Tag("highway"),
			Oneway:  direction != 0,
			Length:  geo.LengthHaversine(line),
		}

		if direction >= 0 {
			if err := addEdge(g, base, u, v, line); err != nil {
				return err
			}
		}
		if direction <= 0 {
			if err := addEdge(g, base, v, u, reversed(line)); err != nil {
				return err
			}
		}

		start = i
	}
	return nil
}

func addEdge(g *graph.Graph, base graph.Edge, u, v osm.NodeID, line orb.LineString) error {
	base.U, base.V = u, v
	base.Geometry = line
	if _, err := g.AddEdge(base); err != nil {
		return fmt.Errorf("failed to add edge for way %d: %w", base.WayID, err)
	}
	return nil
}

func reversed(line orb.LineString) orb.LineString {
	out := make(orb.LineString, len(line))
	for i, p := range line {
		out[len(line)-1-i] = p
	}
	return out
}

func firstMissing(ids []osm.NodeID, points map[osm.NodeID]orb.Point) (osm.NodeID, bool) {
	for _, id := range ids {
		if _, ok := points[id]; !ok {
			return id, true
		}
	}
	return 0, false
}
