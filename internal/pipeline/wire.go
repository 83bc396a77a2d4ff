package pipeline

import (
	"fmt"
	"log/slog"

	"streetgrade/internal/config"
	"streetgrade/internal/elevation"
	"streetgrade/internal/network"
	"streetgrade/internal/providers/openelevation"
	"streetgrade/internal/providers/openmeteo"
	"streetgrade/internal/render"
	"streetgrade/internal/timezone"
)

// NewElevationProvider builds the elevation provider named in the config
func NewElevationProvider(cfg config.ElevationConfig, logger *slog.Logger) (elevation.Provider, error) {
	switch cfg.Provider {
	case config.ProviderOpenElevation:
		return elevation.NewOpenElevationProvider(openelevation.NewClient(cfg.URL, cfg.Timeout, logger)), nil
	case config.ProviderOpenMeteo:
		return elevation.NewOpenMeteoProvider(openmeteo.NewElevationClient(cfg.URL, cfg.Timeout, logger)), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownProvider, cfg.Provider)
	}
}

// NewFromConfig wires a pipeline against the real providers. The augmenter is
// returned as well for callers that look up bare locations.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) (*Pipeline, *elevation.Augmenter, error) {
	provider, err := NewElevationProvider(cfg.Elevation, logger)
	if err != nil {
		return nil, nil, err
	}

	augmenter, err := elevation.NewAugmenter(provider, elevation.Options{
		BatchSize: cfg.Elevation.BatchSize,
		Precision: cfg.Elevation.Precision,
		FailFast:  cfg.Elevation.FailFast,
	}, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create elevation augmenter: %w", err)
	}

	timezones, err := timezone.NewService()
	if err != nil {
		return nil, nil, err
	}

	networkService := network.NewNetworkService(
		cfg.Providers.NominatimURL,
		cfg.Providers.OverpassURL,
		cfg.Providers.UserAgent,
		cfg.Providers.Timeout,
		logger,
	)

	return New(networkService, augmenter, timezones, cfg.Elevation.Precision, logger), augmenter, nil
}

// RenderOptions converts render settings to PNG options
func RenderOptions(cfg config.RenderConfig) render.Options {
	opts := render.DefaultOptions()
	if cfg.Width > 0 {
		opts.Width = cfg.Width
	}
	if cfg.NodeSize > 0 {
		opts.NodeSize = cfg.NodeSize
	}
	if cfg.EdgeColor != "" {
		opts.EdgeColor = cfg.EdgeColor
	}
	if cfg.BgColor != "" {
		opts.BgColor = cfg.BgColor
	}
	if cfg.Colormap != "" {
		opts.Colormap = cfg.Colormap
	}
	return opts
}

// RequestFromConfig builds a request from the network settings
func RequestFromConfig(cfg config.NetworkConfig) Request {
	return Request{
		Place:       cfg.Place,
		Address:     cfg.Address,
		Distance:    cfg.Distance,
		NetworkType: cfg.Type,
		Simplify:    cfg.Simplify,
	}
}
