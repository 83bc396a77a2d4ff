package grade

import (
	"log/slog"

	"streetgrade/internal/graph"
	"streetgrade/internal/types"
)

// Stats summarizes the grades added to a graph
type Stats struct {
	Edges      int
	ZeroLength int
	MeanAbs    float64
	MaxAbs     float64
	Steepest   *graph.Edge
}

// Compute returns the grade of an edge rising from fromElevation to
// toElevation over length meters, rounded to precision. A zero-length edge
// has a grade of 0.
func Compute(fromElevation, toElevation, length float64, precision int) float64 {
	if length == 0 {
		return 0
	}
	return types.Round((toElevation-fromElevation)/length, precision)
}

// AddEdgeGrades sets Grade and GradeAbs on every edge. Every node must
// already have an elevation; if one does not, no edge is modified.
func AddEdgeGrades(g *graph.Graph, precision int, logger *slog.Logger) (Stats, error) {
	if err := g.RequireElevations(); err != nil {
		return Stats{}, err
	}

	var (
		stats Stats
		sum   float64
	)
	for _, e := range g.Edges() {
		u, _ := g.Node(e.U)
		v, _ := g.Node(e.V)

		if e.Length == 0 {
			stats.ZeroLength++
		}
		e.SetGrade(Compute(u.Elevation, v.Elevation, e.Length, precision))

		stats.Edges++
		sum += e.GradeAbs
		if stats.Steepest == nil || e.GradeAbs > stats.MaxAbs {
			stats.MaxAbs = e.GradeAbs
			stats.Steepest = e
		}
	}
	if stats.Edges > 0 {
		stats.MeanAbs = types.Round(sum/float64(stats.Edges), precision)
	}

	logger.Info("added grade attributes to all edges",
		"edges", stats.Edges,
		"zero_length_edges", stats.ZeroLength,
		"max_grade_abs", stats.MaxAbs,
	)

	return stats, nil
}
