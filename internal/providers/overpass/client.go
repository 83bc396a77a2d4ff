package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// API Docs: https://wiki.openstreetmap.org/wiki/Overpass_API
// Sample request: POST https://overpass-api.de/api/interpreter data=[out:json];way(around:1000,37.79,-122.40)[highway];>;out body;
const (
	BaseURL = "https://overpass-api.de/api/interpreter"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     *slog.Logger
}

func NewClient(baseURL, userAgent string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		userAgent:  userAgent,
		logger:     logger.With("component", "overpass-client"),
	}
}

// Interpret runs an Overpass QL query that asks for JSON output
func (c *Client) Interpret(ctx context.Context, query string) (*Response, error) {
	data := url.Values{}
	data.Set("data", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug("querying overpass", "url", c.baseURL, "query", query)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("failed to query overpass", "error", err)
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("overpass API returned error",
			"status_code", resp.StatusCode,
			"response_body", string(body),
		)
		return nil, fmt.Errorf("fetch returned status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp Response
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	// Overpass reports timeouts and memory exhaustion as a remark on a 200 response
	if strings.Contains(apiResp.Remark, "error") {
		return nil, fmt.Errorf("query failed: %s", apiResp.Remark)
	}

	c.logger.Debug("successfully queried overpass", "element_count", len(apiResp.Elements))

	return &apiResp, nil
}
