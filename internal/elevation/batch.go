package elevation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"streetgrade/internal/types"
)

var (
	ErrBatchSizeMismatch = errors.New("elevation API returned a different number of results than locations submitted")
	ErrMisaligned        = errors.New("elevation API results are not in submission order")
)

// alignmentTolerance is how far, in degrees, an echoed coordinate may drift
// from the submitted one. Submitted coordinates carry 5 decimal places.
const alignmentTolerance = 1e-5

// BatchResult is the outcome of one elevation request. Exactly one of
// Elevations and Err is set.
type BatchResult struct {
	Index      int // position of the batch in submission order
	Offset     int // position of the batch's first location in the full list
	Size       int // number of locations submitted
	Elevations []float64
	Err        error
}

func (r BatchResult) OK() bool {
	return r.Err == nil
}

// Batcher splits locations into fixed-size chunks and looks each chunk up
// with one synchronous request
type Batcher struct {
	provider  Provider
	batchSize int
	logger    *slog.Logger
}

func NewBatcher(provider Provider, batchSize int, logger *slog.Logger) (*Batcher, error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", batchSize)
	}
	return &Batcher{
		provider:  provider,
		batchSize: batchSize,
		logger:    logger.With("component", "elevation-batcher"),
	}, nil
}

// Calls returns the number of requests needed for n locations
func (b *Batcher) Calls(n int) int {
	return (n + b.batchSize - 1) / b.batchSize
}

// Run looks up every chunk in order. With stopOnError the run ends at the
// first failed batch and the results so far, including the failure, are
// returned; otherwise every batch is attempted.
func (b *Batcher) Run(ctx context.Context, locations []types.Coords, stopOnError bool) []BatchResult {
	results := make([]BatchResult, 0, b.Calls(len(locations)))

	for offset := 0; offset < len(locations); offset += b.batchSize {
		end := min(offset+b.batchSize, len(locations))
		result := b.lookup(ctx, len(results), offset, locations[offset:end])
		results = append(results, result)

		if !result.OK() {
			b.logger.Error("elevation batch failed",
				"batch", result.Index,
				"offset", result.Offset,
				"size", result.Size,
				"error", result.Err,
			)
			if stopOnError {
				break
			}
			continue
		}

		b.logger.Debug("elevation batch succeeded",
			"batch", result.Index,
			"offset", result.Offset,
			"size", result.Size,
		)
	}

	return results
}

func (b *Batcher) lookup(ctx context.Context, index, offset int, chunk []types.Coords) BatchResult {
	result := BatchResult{Index: index, Offset: offset, Size: len(chunk)}

	if err := ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	samples, err := b.provider.Lookup(ctx, chunk)
	if err != nil {
		result.Err = fmt.Errorf("failed to look up batch %d: %w", index, err)
		return result
	}
	if len(samples) != len(chunk) {
		result.Err = fmt.Errorf("batch %d: %w: submitted %d, received %d",
			index, ErrBatchSizeMismatch, len(chunk), len(samples))
		return result
	}

	elevations := make([]float64, len(samples))
	for i, s := range samples {
		if s.Location != nil && !sameLocation(*s.Location, chunk[i]) {
			result.Err = fmt.Errorf("batch %d: %w: position %d submitted (%f, %f), received (%f, %f)",
				index, ErrMisaligned, i,
				chunk[i].Latitude, chunk[i].Longitude,
				s.Location.Latitude, s.Location.Longitude)
			return result
		}
		elevations[i] = s.Elevation
	}

	result.Elevations = elevations
	return result
}

func sameLocation(a, b types.Coords) bool {
	return math.Abs(a.Latitude-b.Latitude) <= alignmentTolerance &&
		math.Abs(a.Longitude-b.Longitude) <= alignmentTolerance
}
