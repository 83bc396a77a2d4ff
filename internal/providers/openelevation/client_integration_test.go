//go:build integration

package openelevation

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"
)

func TestClient_Lookup_Integration(t *testing.T) {
	// Test coordinates: 600 Montgomery St, San Francisco
	lat := 37.79518
	lon := -122.40279

	client := NewClient(BaseURL, 60*time.Second, slog.New(slog.NewTextHandler(os.Stderr, nil)))

	t.Logf("Making API call to Open-Elevation API...")
	t.Logf("Coordinates: lat=%f, lon=%f", lat, lon)

	resp, err := client.Lookup(context.Background(), []Location{{Latitude: lat, Longitude: lon}})
	if err != nil {
		t.Fatalf("Failed to get elevation: %v", err)
	}

	rawJSON, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal response: %v", err)
	}
	t.Logf("Raw API Response:\n%s", string(rawJSON))

	if len(resp.Results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(resp.Results))
	}

	// Sanity check - downtown San Francisco sits close to sea level
	if resp.Results[0].Elevation < -10 || resp.Results[0].Elevation > 300 {
		t.Errorf("Elevation seems unreasonable: %v meters", resp.Results[0].Elevation)
	}

	t.Log("✓ API call successful, response structure valid")
}
