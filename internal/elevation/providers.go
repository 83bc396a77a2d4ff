package elevation

import (
	"context"
	"fmt"

	"streetgrade/internal/providers/openelevation"
	"streetgrade/internal/providers/openmeteo"
	"streetgrade/internal/types"
)

// Sample is one elevation returned for one submitted location. Location is
// set when the provider echoes the coordinate it answered for.
type Sample struct {
	Elevation float64
	Location  *types.Coords
}

// Provider looks up elevations for a batch of locations. It returns one
// sample per location in submission order.
type Provider interface {
	Lookup(ctx context.Context, locations []types.Coords) ([]Sample, error)
	// URL is the endpoint requests are sent to
	URL() string
}

// OpenElevationClient is the subset of openelevation.Client used here
type OpenElevationClient interface {
	Lookup(ctx context.Context, locations []openelevation.Location) (*openelevation.LookupAPIResponse, error)
	URL() string
}

// OpenMeteoClient is the subset of openmeteo.ElevationClient used here
type OpenMeteoClient interface {
	GetElevations(ctx context.Context, latitudes, longitudes []float64) (*openmeteo.ElevationAPIResponse, error)
	URL() string
}

type openElevationProvider struct {
	client OpenElevationClient
}

// NewOpenElevationProvider adapts an Open-Elevation client to Provider
func NewOpenElevationProvider(client OpenElevationClient) Provider {
	return &openElevationProvider{client: client}
}

func (p *openElevationProvider) URL() string { return p.client.URL() }

func (p *openElevationProvider) Lookup(ctx context.Context, locations []types.Coords) ([]Sample, error) {
	req := make([]openelevation.Location, len(locations))
	for i, loc := range locations {
		req[i] = openelevation.Location{Latitude: loc.Latitude, Longitude: loc.Longitude}
	}

	resp, err := p.client.Lookup(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, fmt.Errorf("elevation response is nil")
	}

	samples := make([]Sample, len(resp.Results))
	for i, r := range resp.Results {
		echoed := types.NewCoords(r.Latitude, r.Longitude)
		samples[i] = Sample{Elevation: r.Elevation, Location: &echoed}
	}
	return samples, nil
}

type openMeteoProvider struct {
	client OpenMeteoClient
}

// NewOpenMeteoProvider adapts an Open-Meteo elevation client to Provider
func NewOpenMeteoProvider(client OpenMeteoClient) Provider {
	return &openMeteoProvider{client: client}
}

func (p *openMeteoProvider) URL() string { return p.client.URL() }

func (p *openMeteoProvider) Lookup(ctx context.Context, locations []types.Coords) ([]Sample, error) {
	lats := make([]float64, len(locations))
	lons := make([]float64, len(locations))
	for i, loc := range locations {
		lats[i], lons[i] = loc.Latitude, loc.Longitude
	}

	resp, err := p.client.GetElevations(ctx, lats, lons)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, fmt.Errorf("elevation response is nil")
	}

	samples := make([]Sample, len(resp.Elevation))
	for i, e := range resp.Elevation {
		samples[i] = Sample{Elevation: e}
	}
	return samples, nil
}
