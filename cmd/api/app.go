package main

import (
	"context"
	"log/slog"
	"net/http"

	"streetgrade/internal/config"
	"streetgrade/internal/pipeline"
	"streetgrade/internal/render"
	"streetgrade/internal/types"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
)

// Grader runs the street grade pipeline
type Grader interface {
	Run(ctx context.Context, req pipeline.Request) (*pipeline.Result, error)
}

// ElevationLookup returns one elevation per location
type ElevationLookup interface {
	Lookup(ctx context.Context, locations []types.Coords) ([]float64, error)
}

// App encapsulates application dependencies
type App struct {
	mux       *http.ServeMux
	api       huma.API
	logger    *slog.Logger
	grader    Grader
	elevation ElevationLookup
	network   config.NetworkConfig
	render    render.Options
}

// NewApp creates a new application wired to the real providers
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	p, augmenter, err := pipeline.NewFromConfig(cfg, logger)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()

	// Create Huma API with standard library adapter
	humaConfig := huma.DefaultConfig("Streetgrade API", "1.0.0")
	humaConfig.Info.Description = "Street network elevation and grade API"
	humaConfig.Servers = []*huma.Server{
		{URL: "http://localhost" + cfg.GetServerAddr(), Description: "Development server"},
	}

	app := NewAppWithServices(humago.New(mux, humaConfig), p, augmenter, cfg.Network, pipeline.RenderOptions(cfg.Render), logger)
	app.mux = mux

	logger.Info("application initialized",
		"elevation_provider", cfg.Elevation.Provider,
		"elevation_url", cfg.Elevation.URL,
	)

	return app, nil
}

// NewAppWithServices registers routes on api using the given services
func NewAppWithServices(api huma.API, grader Grader, lookup ElevationLookup, network config.NetworkConfig, renderOpts render.Options, logger *slog.Logger) *App {
	app := &App{
		api:       api,
		logger:    logger,
		grader:    grader,
		elevation: lookup,
		network:   network,
		render:    renderOpts,
	}

	app.registerRoutes()

	return app
}

// Run starts the HTTP server
func (app *App) Run(addr string) error {
	return http.ListenAndServe(addr, app.mux)
}
