package network

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"streetgrade/internal/graph"
	"streetgrade/internal/providers/openstreetmap"
	"streetgrade/internal/providers/overpass"
	"streetgrade/internal/types"

	"github.com/paulmach/orb"
)

// DefaultQueryTimeout is the server-side timeout, in seconds, sent with each Overpass query
const DefaultQueryTimeout = 180

var (
	ErrPlaceNotFound      = errors.New("place not found")
	ErrUnknownNetworkType = errors.New("unknown network type")
	ErrInvalidDistance    = errors.New("invalid distance")
	ErrEmptyNetwork       = errors.New("no streets found")
)

// Geocoder resolves a free-form place or address
type Geocoder interface {
	Search(ctx context.Context, query string, limit int) ([]openstreetmap.SearchAPIResponse, error)
}

// Downloader runs Overpass queries
type Downloader interface {
	Interpret(ctx context.Context, query string) (*overpass.Response, error)
}

// Query selects a street network. When Address is set the network is
// everything within Distance meters of it; otherwise it is the bounding box
// of Place.
type Query struct {
	Place       string
	Address     string
	Distance    float64
	NetworkType string
	Simplify    bool
}

// Network is a downloaded street graph and the place it covers
type Network struct {
	Place types.Place
	Graph *graph.Graph
	Stats BuildStats
}

// Service fetches street networks
type Service interface {
	Fetch(ctx context.Context, q Query) (*Network, error)
}

type networkService struct {
	geocoder   Geocoder
	downloader Downloader
	logger     *slog.Logger
}

// NewNetworkService creates a network service with real provider clients
func NewNetworkService(nominatimURL, overpassURL, userAgent string, timeout time.Duration, logger *slog.Logger) Service {
	return NewNetworkServiceWithProviders(
		openstreetmap.NewClient(nominatimURL, userAgent, timeout, logger),
		overpass.NewClient(overpassURL, userAgent, timeout, logger),
		logger,
	)
}

// NewNetworkServiceWithProviders creates a network service with custom providers
// This is useful for testing with mock providers
func NewNetworkServiceWithProviders(geocoder Geocoder, downloader Downloader, logger *slog.Logger) Service {
	return &networkService{
		geocoder:   geocoder,
		downloader: downloader,
		logger:     logger.With("component", "network-service"),
	}
}

// Fetch geocodes the query, downloads the matching ways and builds the graph
func (s *networkService) Fetch(ctx context.Context, q Query) (*Network, error) {
	filter, err := wayFilter(q.NetworkType)
	if err != nil {
		return nil, err
	}

	var (
		place   types.Place
		osmQL   string
		byPoint = strings.TrimSpace(q.Address) != ""
	)

	if byPoint {
		if q.Distance <= 0 {
			return nil, fmt.Errorf("%w: %f", ErrInvalidDistance, q.Distance)
		}
		place, err = s.geocode(ctx, q.Address)
		if err != nil {
			return nil, err
		}
		osmQL = overpass.AroundQuery(filter, place.Center.Point(), q.Distance, DefaultQueryTimeout)
	} else {
		place, err = s.geocode(ctx, q.Place)
		if err != nil {
			return nil, err
		}
		osmQL = overpass.BBoxQuery(filter, place.Bounds, DefaultQueryTimeout)
	}

	s.logger.Info("downloading street network",
		"place", place.DisplayName,
		"network_type", q.NetworkType,
		"by_address", byPoint,
	)

	resp, err := s.downloader.Interpret(ctx, osmQL)
	if err != nil {
		s.logger.Error("failed to download street network", "place", place.DisplayName, "error", err)
		return nil, fmt.Errorf("failed to download street network: %w", err)
	}

	b := &builder{networkType: q.NetworkType, simplify: q.Simplify, logger: s.logger}
	g, stats, err := b.build(resp.Elements)
	if err != nil {
		return nil, fmt.Errorf("failed to build graph: %w", err)
	}
	if g.NodeCount() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyNetwork, place.DisplayName)
	}

	s.logger.Info("built street network",
		"nodes", stats.Nodes,
		"edges", stats.Edges,
		"ways", stats.Ways,
		"skipped_ways", stats.SkippedWays,
	)

	return &Network{Place: place, Graph: g, Stats: stats}, nil
}

func (s *networkService) geocode(ctx context.Context, query string) (types.Place, error) {
	if strings.TrimSpace(query) == "" {
		return types.Place{}, fmt.Errorf("%w: empty query", ErrPlaceNotFound)
	}

	results, err := s.geocoder.Search(ctx, query, 1)
	if err != nil {
		return types.Place{}, fmt.Errorf("failed to geocode %q: %w", query, err)
	}
	if len(results) == 0 {
		return types.Place{}, fmt.Errorf("%w: %q", ErrPlaceNotFound, query)
	}

	return translatePlace(&results[0])
}

// translatePlace converts a Nominatim search result to the domain Place type
func translatePlace(resp *openstreetmap.SearchAPIResponse) (types.Place, error) {
	lat, err := strconv.ParseFloat(resp.Lat, 64)
	if err != nil {
		return types.Place{}, fmt.Errorf("invalid latitude %q: %w", resp.Lat, err)
	}
	lon, err := strconv.ParseFloat(resp.Lon, 64)
	if err != nil {
		return types.Place{}, fmt.Errorf("invalid longitude %q: %w", resp.Lon, err)
	}

	if len(resp.Boundingbox) != 4 {
		return types.Place{}, fmt.Errorf("expected 4 bounding box values, got %d", len(resp.Boundingbox))
	}
	var box [4]float64
	for i, raw := range resp.Boundingbox {
		box[i], err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return types.Place{}, fmt.Errorf("invalid bounding box value %q: %w", raw, err)
		}
	}

	name := resp.DisplayName
	if resp.Name != "" {
		name = resp.Name
	}

	return types.Place{
		Name:        name,
		DisplayName: resp.DisplayName,
		Center:      types.NewCoords(lat, lon),
		// Nominatim orders the box south, north, west, east
		Bounds: orb.Bound{
			Min: orb.Point{box[2], box[0]},
			Max: orb.Point{box[3], box[1]},
		},
	}, nil
}
