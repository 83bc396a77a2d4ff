package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"streetgrade/internal/config"
	"streetgrade/internal/pipeline"
	"streetgrade/internal/render"

	"github.com/spf13/pflag"
)

func main() {
	flags := pflag.NewFlagSet("streetgrade", pflag.ExitOnError)
	flags.String("config", "", "Path to a config file")
	flags.String("place", "", "Place to fetch the street network for")
	flags.String("address", "", "Fetch the network around this address instead of a place")
	flags.Float64("distance", 0, "Radius in meters around --address")
	flags.String("network", "", "Network type: drive, walk or all")
	flags.String("provider", "", "Elevation provider: open-elevation or open-meteo")
	flags.Int("batch-size", 0, "Locations per elevation request")
	flags.String("output", "", "PNG output path")
	flags.String("geojson", "", "Also write the graded network as GeoJSON to this path")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	_ = flags.Parse(os.Args[1:])

	// Load configuration
	cfg, err := config.Load(flags)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("streetgrade failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	p, _, err := pipeline.NewFromConfig(cfg, logger)
	if err != nil {
		return err
	}

	result, err := p.Run(ctx, pipeline.RequestFromConfig(cfg.Network))
	if err != nil {
		return err
	}

	if err := writePNG(cfg.Render.Output, result, pipeline.RenderOptions(cfg.Render)); err != nil {
		return err
	}
	logger.Info("wrote graph image", "path", cfg.Render.Output)

	if cfg.Render.GeoJSON != "" {
		data, err := render.GeoJSON(result.Graph())
		if err != nil {
			return err
		}
		if err := os.WriteFile(cfg.Render.GeoJSON, data, 0o644); err != nil {
			return fmt.Errorf("failed to write geojson: %w", err)
		}
		logger.Info("wrote graph geojson", "path", cfg.Render.GeoJSON)
	}

	s := result.Summary
	logger.Info("summary",
		"place", s.Place,
		"timezone", s.Timezone,
		"nodes", s.Nodes,
		"edges", s.Edges,
		"min_elevation_m", s.MinElevation.Meters,
		"max_elevation_m", s.MaxElevation.Meters,
		"max_grade_abs", s.MaxGradeAbs,
		"steepest_street", s.SteepestStreet,
		"generated_at", s.GeneratedAt.Format("2006-01-02 15:04 MST"),
	)

	return nil
}

func writePNG(path string, result *pipeline.Result, opts render.Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := render.PNG(f, result.Graph(), opts); err != nil {
		f.Close()
		return fmt.Errorf("failed to render graph: %w", err)
	}
	return f.Close()
}
