package openmeteo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// API Docs: https://open-meteo.com/en/docs/elevation-api
// Sample request: https://api.open-meteo.com/v1/elevation?latitude=39.1178,39.2&longitude=-106.4452,-106.5
const (
	BaseElevationURL = "https://api.open-meteo.com/v1/elevation"

	// MaxCoordinates is the most coordinates the API accepts in one request
	MaxCoordinates = 100
)

var ErrTooManyCoordinates = errors.New("too many coordinates")

type ElevationClient struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

func NewElevationClient(baseURL string, timeout time.Duration, logger *slog.Logger) *ElevationClient {
	if baseURL == "" {
		baseURL = BaseElevationURL
	}
	return &ElevationClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		logger:     logger.With("component", "openmeteo-elevation-client"),
	}
}

// URL returns the elevation endpoint
func (c *ElevationClient) URL() string {
	return c.baseURL
}

// GetElevations fetches one elevation per latitude/longitude pair, in order
func (c *ElevationClient) GetElevations(ctx context.Context, latitudes, longitudes []float64) (*ElevationAPIResponse, error) {
	if len(latitudes) != len(longitudes) {
		return nil, fmt.Errorf("got %d latitudes and %d longitudes", len(latitudes), len(longitudes))
	}
	if len(latitudes) > MaxCoordinates {
		return nil, fmt.Errorf("%w: %d exceeds %d", ErrTooManyCoordinates, len(latitudes), MaxCoordinates)
	}

	// Build URL with query parameters
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("latitude", joinFloats(latitudes))
	q.Set("longitude", joinFloats(longitudes))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	c.logger.Debug("requesting elevations", "url", c.baseURL, "locations", len(latitudes))

	// Make the HTTP request
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		var apiErr ErrorAPIResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Reason != "" {
			return nil, fmt.Errorf("fetch returned status %d: %s", resp.StatusCode, apiErr.Reason)
		}
		return nil, fmt.Errorf("fetch returned status %d: %s", resp.StatusCode, string(body))
	}

	// Parse the JSON response
	var apiResp ElevationAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &apiResp, nil
}

func joinFloats(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, ",")
}
