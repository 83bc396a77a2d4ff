package main

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// registerRoutes sets up all API endpoints
func (app *App) registerRoutes() {
	// Health check endpoint
	huma.Register(app.api, huma.Operation{
		OperationID: "ping",
		Method:      http.MethodGet,
		Path:        "/ping",
		Summary:     "Ping health check",
		Description: "Check if the API is running",
		Tags:        []string{"health"},
	}, app.handlePing)

	huma.Register(app.api, huma.Operation{
		OperationID: "get-network-grades",
		Method:      http.MethodGet,
		Path:        "/network/grades",
		Summary:     "Get street grades",
		Description: "Fetch the street network of a place or the area around an address, add node elevations and return every edge with its grade",
		Tags:        []string{"network"},
	}, app.handleGetGrades)

	huma.Register(app.api, huma.Operation{
		OperationID: "get-network-render",
		Method:      http.MethodGet,
		Path:        "/network/render",
		Summary:     "Render street network",
		Description: "Render the street network as a PNG with nodes colored by elevation",
		Tags:        []string{"network"},
	}, app.handleGetRender)

	huma.Register(app.api, huma.Operation{
		OperationID: "post-elevation-lookup",
		Method:      http.MethodPost,
		Path:        "/elevation/lookup",
		Summary:     "Look up elevations",
		Description: "Look up the elevation of each location, batched the same way as node augmentation",
		Tags:        []string{"elevation"},
	}, app.handleElevationLookup)
}
