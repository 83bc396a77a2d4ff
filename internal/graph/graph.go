// Package graph holds the street network as a directed multigraph.
//
// Nodes are street intersections or dead ends keyed by their OSM node id.
// Edges are road segments between two nodes; parallel edges between the same
// pair are told apart by Key. Iteration over nodes follows insertion order, so
// two passes over the same graph see the nodes in the same sequence.
package graph

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
)

var (
	ErrNodeNotFound     = errors.New("node not found")
	ErrInvalidEdge      = errors.New("invalid edge")
	ErrMissingElevation = errors.New("node has no elevation")
)

type Node struct {
	ID    osm.NodeID
	Point orb.Point // lon, lat

	// Set by elevation augmentation
	Elevation    float64
	HasElevation bool
}

func (n *Node) Lat() float64 { return n.Point.Lat() }
func (n *Node) Lon() float64 { return n.Point.Lon() }

// SetElevation stores an elevation in meters on the node
func (n *Node) SetElevation(meters float64) {
	n.Elevation = meters
	n.HasElevation = true
}

type Edge struct {
	U, V     osm.NodeID
	Key      int
	WayID    osm.WayID
	Name     string
	Highway  string
	Oneway   bool
	Length   float64        // meters
	Geometry orb.LineString // from U to V

	// Set by grade derivation
	Grade    float64
	GradeAbs float64
	HasGrade bool
}

// SetGrade stores a grade and its absolute value on the edge
func (e *Edge) SetGrade(grade float64) {
	e.Grade = grade
	if grade < 0 {
		e.GradeAbs = -grade
	} else {
		e.GradeAbs = grade
	}
	e.HasGrade = true
}

type pair struct {
	u, v osm.NodeID
}

type Graph struct {
	nodes map[osm.NodeID]*Node
	order []osm.NodeID
	edges []*Edge
	keys  map[pair]int
	out   map[osm.NodeID][]*Edge
}

func New() *Graph {
	return &Graph{
		nodes: make(map[osm.NodeID]*Node),
		keys:  make(map[pair]int),
		out:   make(map[osm.NodeID][]*Edge),
	}
}

// AddNode adds a node at the given coordinates. Adding an id that already
// exists returns the existing node unchanged.
func (g *Graph) AddNode(id osm.NodeID, lat, lon float64) *Node {
	if n, ok := g.nodes[id]; ok {
		return n
	}
	n := &Node{ID: id, Point: orb.Point{lon, lat}}
	g.nodes[id] = n
	g.order = append(g.order, id)
	return n
}

// AddEdge adds a directed edge from e.U to e.V, assigning the next free key
// for that pair. Both endpoints must already be in the graph.
func (g *Graph) AddEdge(e Edge) (*Edge, error) {
	if _, ok := g.nodes[e.U]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrNodeNotFound, e.U)
	}
	if _, ok := g.nodes[e.V]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrNodeNotFound, e.V)
	}
	if e.Length < 0 {
		return nil, fmt.Errorf("%w: negative length %f for %d->%d", ErrInvalidEdge, e.Length, e.U, e.V)
	}

	p := pair{e.U, e.V}
	e.Key = g.keys[p]
	g.keys[p]++

	edge := &e
	g.edges = append(g.edges, edge)
	g.out[e.U] = append(g.out[e.U], edge)
	return edge, nil
}

func (g *Graph) Node(id osm.NodeID) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		nodes = append(nodes, g.nodes[id])
	}
	return nodes
}

// Edges returns all edges in insertion order. The slice is a copy; the
// edges themselves are shared with the graph.
func (g *Graph) Edges() []*Edge {
	edges := make([]*Edge, len(g.edges))
	copy(edges, g.edges)
	return edges
}

// RequireElevations returns ErrMissingElevation for the first node, in
// insertion order, that has no elevation
func (g *Graph) RequireElevations() error {
	for _, id := range g.order {
		if !g.nodes[id].HasElevation {
			return fmt.Errorf("%w: %d", ErrMissingElevation, id)
		}
	}
	return nil
}

// OutEdges returns the edges leaving id
func (g *Graph) OutEdges(id osm.NodeID) []*Edge {
	return g.out[id]
}

func (g *Graph) NodeCount() int { return len(g.order) }
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Bound returns the bounding box of all node points
func (g *Graph) Bound() orb.Bound {
	if len(g.order) == 0 {
		return orb.Bound{}
	}
	mp := make(orb.MultiPoint, 0, len(g.order))
	for _, id := range g.order {
		mp = append(mp, g.nodes[id].Point)
	}
	return mp.Bound()
}

// ElevationRange returns the lowest and highest node elevation. ok is false
// when no node has an elevation yet.
func (g *Graph) ElevationRange() (lo, hi float64, ok bool) {
	for _, id := range g.order {
		n := g.nodes[id]
		if !n.HasElevation {
			continue
		}
		if !ok {
			lo, hi, ok = n.Elevation, n.Elevation, true
			continue
		}
		lo = min(lo, n.Elevation)
		hi = max(hi, n.Elevation)
	}
	return lo, hi, ok
}
