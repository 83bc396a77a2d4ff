package elevation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"streetgrade/internal/graph"
	"streetgrade/internal/types"

	"github.com/paulmach/osm"
)

// DefaultBatchSize is the number of locations per request when none is configured
const DefaultBatchSize = 350

var ErrResultCountMismatch = errors.New("elevation result count does not match node count")

// Report summarizes one augmentation run
type Report struct {
	Nodes         int
	Results       int
	Batches       int
	FailedBatches int
	BatchResults  []BatchResult
}

// Augmenter adds elevations to graph nodes
type Augmenter struct {
	batcher   *Batcher
	provider  Provider
	precision int
	failFast  bool
	logger    *slog.Logger
}

type Options struct {
	BatchSize int
	Precision int
	// FailFast stops at the first failed batch instead of attempting the rest
	FailFast bool
}

func NewAugmenter(provider Provider, opts Options, logger *slog.Logger) (*Augmenter, error) {
	if opts.BatchSize == 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.Precision < 0 {
		return nil, fmt.Errorf("precision must not be negative, got %d", opts.Precision)
	}

	batcher, err := NewBatcher(provider, opts.BatchSize, logger)
	if err != nil {
		return nil, err
	}

	return &Augmenter{
		batcher:   batcher,
		provider:  provider,
		precision: opts.Precision,
		failFast:  opts.FailFast,
		logger:    logger.With("component", "elevation-augmenter"),
	}, nil
}

// plan is the node order and the matching request payload, built together
type plan struct {
	ids       []osm.NodeID
	locations []types.Coords
}

func newPlan(g *graph.Graph) plan {
	nodes := g.Nodes()
	p := plan{
		ids:       make([]osm.NodeID, len(nodes)),
		locations: make([]types.Coords, len(nodes)),
	}
	for i, n := range nodes {
		p.ids[i] = n.ID
		p.locations[i] = types.NewCoords(n.Lat(), n.Lon()).Rounded()
	}
	return p
}

// Augment looks up an elevation for every node and stores it, rounded, on
// the node. Nodes are only written once every node has a result; on error
// the graph is left untouched.
func (a *Augmenter) Augment(ctx context.Context, g *graph.Graph) (*Report, error) {
	p := newPlan(g)

	a.logger.Info("requesting node elevations",
		"url", a.provider.URL(),
		"nodes", len(p.ids),
		"calls", a.batcher.Calls(len(p.ids)),
	)

	results := a.batcher.Run(ctx, p.locations, a.failFast)

	report := &Report{
		Nodes:        len(p.ids),
		Batches:      len(results),
		BatchResults: results,
	}
	for _, r := range results {
		if !r.OK() {
			report.FailedBatches++
			if a.failFast {
				return report, r.Err
			}
			continue
		}
		report.Results += len(r.Elevations)
	}

	if report.Results != report.Nodes {
		a.logger.Error("elevation result count mismatch",
			"nodes", report.Nodes,
			"results", report.Results,
			"failed_batches", report.FailedBatches,
		)
		return report, fmt.Errorf("%w: graph has %d nodes but received %d results from elevation API",
			ErrResultCountMismatch, report.Nodes, report.Results)
	}

	a.logger.Info("received node elevations",
		"nodes", report.Nodes,
		"results", report.Results,
	)

	for _, r := range results {
		for i, elevation := range r.Elevations {
			n, ok := g.Node(p.ids[r.Offset+i])
			if !ok {
				return report, fmt.Errorf("%w: %d", graph.ErrNodeNotFound, p.ids[r.Offset+i])
			}
			n.SetElevation(types.Round(elevation, a.precision))
		}
	}

	a.logger.Info("added elevation data to all nodes")

	return report, nil
}

// Lookup returns one elevation per location, rounded to the configured
// precision, using the same batching as Augment
func (a *Augmenter) Lookup(ctx context.Context, locations []types.Coords) ([]float64, error) {
	rounded := make([]types.Coords, len(locations))
	for i, loc := range locations {
		rounded[i] = loc.Rounded()
	}

	elevations := make([]float64, 0, len(locations))
	for _, r := range a.batcher.Run(ctx, rounded, true) {
		if !r.OK() {
			return nil, r.Err
		}
		for _, e := range r.Elevations {
			elevations = append(elevations, types.Round(e, a.precision))
		}
	}
	return elevations, nil
}
