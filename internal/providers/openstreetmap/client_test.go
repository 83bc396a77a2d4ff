package openstreetmap

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClient_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("path = %q, want /search", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("q") != "San Francisco, California, USA" {
			t.Errorf("q = %q", q.Get("q"))
		}
		if q.Get("format") != "json" || q.Get("limit") != "1" {
			t.Errorf("format = %q, limit = %q", q.Get("format"), q.Get("limit"))
		}
		if ua := r.Header.Get("User-Agent"); ua != "streetgrade-test" {
			t.Errorf("User-Agent = %q, want streetgrade-test", ua)
		}
		_, _ = io.WriteString(w, `[{
			"place_id": 123,
			"osm_type": "relation",
			"osm_id": 111968,
			"lat": "37.7792588",
			"lon": "-122.4193286",
			"name": "San Francisco",
			"display_name": "San Francisco, California, United States",
			"boundingbox": ["37.6403143", "37.9298443", "-123.1738400", "-122.2817323"]
		}]`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "streetgrade-test", 0, discardLogger())
	results, err := client.Search(context.Background(), "San Francisco, California, USA", 1)
	if err != nil {
		t.Fatalf("Search() unexpected error = %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
	got := results[0]
	if got.Name != "San Francisco" {
		t.Errorf("Name = %q, want San Francisco", got.Name)
	}
	if got.Lat != "37.7792588" || got.Lon != "-122.4193286" {
		t.Errorf("Lat/Lon = %s/%s", got.Lat, got.Lon)
	}
	if len(got.Boundingbox) != 4 {
		t.Errorf("Expected boundingbox to have 4 values, got %d", len(got.Boundingbox))
	}
}

func TestClient_Search_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, "missing user agent")
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", 0, discardLogger())
	_, err := client.Search(context.Background(), "anywhere", 1)
	if err == nil {
		t.Fatal("Search() expected error but got none")
	}
	if !strings.Contains(err.Error(), "fetch returned status 403") {
		t.Errorf("Search() error = %v, want status 403", err)
	}
}
