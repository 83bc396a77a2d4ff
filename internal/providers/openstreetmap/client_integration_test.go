//go:build integration

package openstreetmap

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"
)

func TestClient_Search_Integration(t *testing.T) {
	query := "San Francisco, California, USA"

	client := NewClient(BaseURL, "streetgrade-integration-test", 30*time.Second, slog.New(slog.NewTextHandler(os.Stderr, nil)))

	t.Logf("Making API call to OpenStreetMap Nominatim API...")
	t.Logf("Query: %s", query)

	results, err := client.Search(context.Background(), query, 1)
	if err != nil {
		t.Fatalf("Failed to search: %v", err)
	}

	// Pretty print the raw response
	rawJSON, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal response: %v", err)
	}

	t.Logf("Raw API Response:\n%s", string(rawJSON))

	if len(results) == 0 {
		t.Fatal("No results returned")
	}

	resp := results[0]
	t.Logf("Location Details:")
	t.Logf("  Place ID: %d", resp.PlaceId)
	t.Logf("  Display Name: %s", resp.DisplayName)
	t.Logf("  Type: %s", resp.Type)
	t.Logf("  Class: %s", resp.Class)

	if resp.Lat == "" || resp.Lon == "" {
		t.Error("Lat/Lon fields are empty")
	}

	if resp.DisplayName == "" {
		t.Error("DisplayName is empty")
	}

	if len(resp.Boundingbox) != 4 {
		t.Errorf("Expected boundingbox to have 4 values, got %d", len(resp.Boundingbox))
	} else {
		t.Logf("  Bounding Box: %v", resp.Boundingbox)
	}

	t.Log("✓ API call successful, response structure valid")
}
