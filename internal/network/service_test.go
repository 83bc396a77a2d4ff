package network

import (
	"context"
	"errors"
	"strings"
	"testing"

	"streetgrade/internal/providers/openstreetmap"
	"streetgrade/internal/providers/overpass"
)

type mockGeocoder struct {
	results []openstreetmap.SearchAPIResponse
	err     error
	queries []string
}

func (m *mockGeocoder) Search(ctx context.Context, query string, limit int) ([]openstreetmap.SearchAPIResponse, error) {
	m.queries = append(m.queries, query)
	return m.results, m.err
}

type mockDownloader struct {
	response *overpass.Response
	err      error
	queries  []string
}

func (m *mockDownloader) Interpret(ctx context.Context, query string) (*overpass.Response, error) {
	m.queries = append(m.queries, query)
	return m.response, m.err
}

func sanFrancisco() []openstreetmap.SearchAPIResponse {
	return []openstreetmap.SearchAPIResponse{{
		Lat:         "37.7792588",
		Lon:         "-122.4193286",
		Name:        "San Francisco",
		DisplayName: "San Francisco, California, United States",
		Boundingbox: []string{"37.6403143", "37.9298443", "-123.1738400", "-122.2817323"},
	}}
}

func TestNetworkService_Fetch(t *testing.T) {
	tests := []struct {
		name         string
		query        Query
		geocoder     *mockGeocoder
		downloader   *mockDownloader
		wantErr      error
		errContains  string
		wantGeocode  string
		queryContain string
	}{
		{
			name:         "place uses its bounding box",
			query:        Query{Place: "San Francisco", NetworkType: TypeDrive, Simplify: true},
			geocoder:     &mockGeocoder{results: sanFrancisco()},
			downloader:   &mockDownloader{response: &overpass.Response{Elements: crossing()}},
			wantGeocode:  "San Francisco",
			queryContain: "(37.6403143,-123.17384,37.9298443,-122.2817323)",
		},
		{
			name:         "address uses a radius",
			query:        Query{Place: "ignored", Address: "600 Montgomery St", Distance: 500, NetworkType: TypeDrive, Simplify: true},
			geocoder:     &mockGeocoder{results: sanFrancisco()},
			downloader:   &mockDownloader{response: &overpass.Response{Elements: crossing()}},
			wantGeocode:  "600 Montgomery St",
			queryContain: "(around:500,37.7792588,-122.4193286)",
		},
		{
			name:       "unknown network type",
			query:      Query{Place: "San Francisco", NetworkType: "boat"},
			geocoder:   &mockGeocoder{results: sanFrancisco()},
			downloader: &mockDownloader{},
			wantErr:    ErrUnknownNetworkType,
		},
		{
			name:       "place not found",
			query:      Query{Place: "Atlantis", NetworkType: TypeDrive},
			geocoder:   &mockGeocoder{},
			downloader: &mockDownloader{},
			wantErr:    ErrPlaceNotFound,
		},
		{
			name:       "address without distance",
			query:      Query{Address: "600 Montgomery St", NetworkType: TypeDrive},
			geocoder:   &mockGeocoder{results: sanFrancisco()},
			downloader: &mockDownloader{},
			wantErr:    ErrInvalidDistance,
		},
		{
			name:        "geocoder error",
			query:       Query{Place: "San Francisco", NetworkType: TypeDrive},
			geocoder:    &mockGeocoder{err: errors.New("nominatim down")},
			downloader:  &mockDownloader{},
			errContains: "failed to geocode",
		},
		{
			name:        "download error",
			query:       Query{Place: "San Francisco", NetworkType: TypeDrive},
			geocoder:    &mockGeocoder{results: sanFrancisco()},
			downloader:  &mockDownloader{err: errors.New("overpass busy")},
			errContains: "failed to download street network",
		},
		{
			name:       "empty network",
			query:      Query{Place: "San Francisco", NetworkType: TypeDrive},
			geocoder:   &mockGeocoder{results: sanFrancisco()},
			downloader: &mockDownloader{response: &overpass.Response{}},
			wantErr:    ErrEmptyNetwork,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewNetworkServiceWithProviders(tt.geocoder, tt.downloader, discardLogger())

			got, err := service.Fetch(context.Background(), tt.query)

			if tt.wantErr != nil || tt.errContains != "" {
				if err == nil {
					t.Fatal("Fetch() expected error but got none")
				}
				if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
					t.Errorf("Fetch() error = %v, want %v", err, tt.wantErr)
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("Fetch() error = %v, want error containing %q", err, tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("Fetch() unexpected error = %v", err)
			}

			if len(tt.geocoder.queries) != 1 || tt.geocoder.queries[0] != tt.wantGeocode {
				t.Errorf("geocoder queries = %v, want [%s]", tt.geocoder.queries, tt.wantGeocode)
			}
			if len(tt.downloader.queries) != 1 || !strings.Contains(tt.downloader.queries[0], tt.queryContain) {
				t.Errorf("overpass query = %v, want it to contain %s", tt.downloader.queries, tt.queryContain)
			}
			if got.Graph.NodeCount() != 5 {
				t.Errorf("NodeCount() = %d, want 5", got.Graph.NodeCount())
			}
			if got.Place.Name != "San Francisco" {
				t.Errorf("Place.Name = %q, want San Francisco", got.Place.Name)
			}
		})
	}
}

func TestTranslatePlace(t *testing.T) {
	place, err := translatePlace(&sanFrancisco()[0])
	if err != nil {
		t.Fatalf("translatePlace() unexpected error = %v", err)
	}
	if place.Center.Latitude != 37.7792588 || place.Center.Longitude != -122.4193286 {
		t.Errorf("Center = %+v", place.Center)
	}
	if place.Bounds.Min.Lat() != 37.6403143 || place.Bounds.Max.Lat() != 37.9298443 {
		t.Errorf("Bounds latitudes = %v..%v", place.Bounds.Min.Lat(), place.Bounds.Max.Lat())
	}
	if place.Bounds.Min.Lon() != -123.17384 || place.Bounds.Max.Lon() != -122.2817323 {
		t.Errorf("Bounds longitudes = %v..%v", place.Bounds.Min.Lon(), place.Bounds.Max.Lon())
	}
}

func TestTranslatePlace_Invalid(t *testing.T) {
	tests := []struct {
		name string
		resp openstreetmap.SearchAPIResponse
	}{
		{name: "bad latitude", resp: openstreetmap.SearchAPIResponse{Lat: "north", Lon: "1", Boundingbox: []string{"0", "1", "0", "1"}}},
		{name: "short bounding box", resp: openstreetmap.SearchAPIResponse{Lat: "1", Lon: "1", Boundingbox: []string{"0", "1"}}},
		{name: "bad bounding box", resp: openstreetmap.SearchAPIResponse{Lat: "1", Lon: "1", Boundingbox: []string{"0", "1", "x", "1"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := translatePlace(&tt.resp); err == nil {
				t.Error("translatePlace() expected error but got none")
			}
		})
	}
}
