package main

import (
	"context"
	"fmt"

	"streetgrade/internal/types"

	"github.com/danielgtaylor/huma/v2"
)

// ElevationLookupInput is a list of locations to look up
type ElevationLookupInput struct {
	Body struct {
		Locations []types.Coords `json:"locations" minItems:"1" maxItems:"10000" doc:"Locations in decimal degrees"`
	}
}

// ElevationResult is the elevation of one location
type ElevationResult struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Elevation float64 `json:"elevation" doc:"Elevation in meters"`
}

// ElevationLookupOutput holds one result per submitted location, in order
type ElevationLookupOutput struct {
	Body struct {
		Results []ElevationResult `json:"results"`
	}
}

// handleElevationLookup looks up the elevation of each location
func (app *App) handleElevationLookup(ctx context.Context, input *ElevationLookupInput) (*ElevationLookupOutput, error) {
	locations := input.Body.Locations
	for i, loc := range locations {
		if !loc.Valid() {
			return nil, huma.Error400BadRequest(fmt.Sprintf("location %d is out of range: %+v", i, loc))
		}
	}

	elevations, err := app.elevation.Lookup(ctx, locations)
	if err != nil {
		return nil, app.toHTTPError(err, "failed to look up elevations")
	}
	if len(elevations) != len(locations) {
		app.logger.Error("elevation lookup returned wrong number of results",
			"locations", len(locations),
			"results", len(elevations),
		)
		return nil, huma.Error502BadGateway("failed to look up elevations")
	}

	resp := &ElevationLookupOutput{}
	resp.Body.Results = make([]ElevationResult, len(locations))
	for i, loc := range locations {
		rounded := loc.Rounded()
		resp.Body.Results[i] = ElevationResult{
			Latitude:  rounded.Latitude,
			Longitude: rounded.Longitude,
			Elevation: elevations[i],
		}
	}

	return resp, nil
}
