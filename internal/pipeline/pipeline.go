package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"streetgrade/internal/elevation"
	"streetgrade/internal/grade"
	"streetgrade/internal/graph"
	"streetgrade/internal/network"
	"streetgrade/internal/timezone"
	"streetgrade/internal/types"
)

// Augmenter adds node elevations to a graph
type Augmenter interface {
	Augment(ctx context.Context, g *graph.Graph) (*elevation.Report, error)
}

// Request selects the street network to grade
type Request struct {
	Place       string
	Address     string
	Distance    float64
	NetworkType string
	Simplify    bool
}

// Summary describes a graded network
type Summary struct {
	Place            string          `json:"place"`
	Center           types.Coords    `json:"center"`
	Timezone         string          `json:"timezone"`
	Nodes            int             `json:"nodes"`
	Edges            int             `json:"edges"`
	MinElevation     types.Elevation `json:"min_elevation"`
	MaxElevation     types.Elevation `json:"max_elevation"`
	MeanGradeAbs     float64         `json:"mean_grade_abs"`
	MaxGradeAbs      float64         `json:"max_grade_abs"`
	SteepestStreet   string          `json:"steepest_street,omitempty"`
	ZeroLengthEdges  int             `json:"zero_length_edges"`
	ElevationBatches int             `json:"elevation_batches"`
	FailedBatches    int             `json:"failed_batches"`
	GeneratedAt      time.Time       `json:"generated_at"`
}

// Result is the graded network and everything learned while building it
type Result struct {
	Network   *network.Network
	Elevation *elevation.Report
	Grades    grade.Stats
	Summary   Summary
}

// Graph is a shortcut to the graded graph
func (r *Result) Graph() *graph.Graph {
	return r.Network.Graph
}

// Pipeline runs acquisition, elevation augmentation and grading in order
type Pipeline struct {
	network   network.Service
	augmenter Augmenter
	timezones timezone.Service
	precision int
	now       func() time.Time
	logger    *slog.Logger
}

// New creates a pipeline. precision is the number of decimal places grades
// are rounded to.
func New(networkService network.Service, augmenter Augmenter, timezones timezone.Service, precision int, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		network:   networkService,
		augmenter: augmenter,
		timezones: timezones,
		precision: precision,
		now:       time.Now,
		logger:    logger.With("component", "pipeline"),
	}
}

// Run fetches the street network, adds node elevations and edge grades
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	start := p.now()

	streets, err := p.network.Fetch(ctx, network.Query{
		Place:       req.Place,
		Address:     req.Address,
		Distance:    req.Distance,
		NetworkType: req.NetworkType,
		Simplify:    req.Simplify,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch street network: %w", err)
	}

	report, err := p.augmenter.Augment(ctx, streets.Graph)
	if err != nil {
		return nil, fmt.Errorf("failed to add node elevations: %w", err)
	}

	stats, err := grade.AddEdgeGrades(streets.Graph, p.precision, p.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to add edge grades: %w", err)
	}

	result := &Result{
		Network:   streets,
		Elevation: report,
		Grades:    stats,
	}
	result.Summary = p.summarize(result)

	p.logger.Info("graded street network",
		"place", result.Summary.Place,
		"nodes", result.Summary.Nodes,
		"edges", result.Summary.Edges,
		"duration", p.now().Sub(start),
	)

	return result, nil
}

func (p *Pipeline) summarize(r *Result) Summary {
	g := r.Network.Graph
	place := r.Network.Place

	s := Summary{
		Place:            place.DisplayName,
		Center:           place.Center,
		Nodes:            g.NodeCount(),
		Edges:            g.EdgeCount(),
		MeanGradeAbs:     r.Grades.MeanAbs,
		MaxGradeAbs:      r.Grades.MaxAbs,
		ZeroLengthEdges:  r.Grades.ZeroLength,
		ElevationBatches: r.Elevation.Batches,
		FailedBatches:    r.Elevation.FailedBatches,
	}

	if lo, hi, ok := g.ElevationRange(); ok {
		s.MinElevation = types.NewElevationFromMeters(lo)
		s.MaxElevation = types.NewElevationFromMeters(hi)
	}
	if r.Grades.Steepest != nil {
		s.SteepestStreet = r.Grades.Steepest.Name
	}

	loc := time.UTC
	if p.timezones != nil {
		tz, err := p.timezones.GetLocation(place.Center)
		if err != nil {
			// Offshore centers have no zone
			p.logger.Warn("falling back to UTC", "center", place.Center, "error", err)
		} else {
			loc = tz
		}
	}
	s.Timezone = loc.String()
	s.GeneratedAt = p.now().In(loc)

	return s
}
