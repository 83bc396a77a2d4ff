package elevation

import (
	"context"
	"errors"
	"testing"

	"streetgrade/internal/providers/openelevation"
	"streetgrade/internal/providers/openmeteo"
	"streetgrade/internal/types"

	"github.com/google/go-cmp/cmp"
)

type mockOpenElevationClient struct {
	got      []openelevation.Location
	response *openelevation.LookupAPIResponse
	err      error
}

func (m *mockOpenElevationClient) URL() string { return "http://open-elevation.test" }

func (m *mockOpenElevationClient) Lookup(ctx context.Context, locations []openelevation.Location) (*openelevation.LookupAPIResponse, error) {
	m.got = locations
	return m.response, m.err
}

type mockOpenMeteoClient struct {
	lats, lons []float64
	response   *openmeteo.ElevationAPIResponse
	err        error
}

func (m *mockOpenMeteoClient) URL() string { return "http://open-meteo.test" }

func (m *mockOpenMeteoClient) GetElevations(ctx context.Context, latitudes, longitudes []float64) (*openmeteo.ElevationAPIResponse, error) {
	m.lats, m.lons = latitudes, longitudes
	return m.response, m.err
}

func TestOpenElevationProvider_Lookup(t *testing.T) {
	client := &mockOpenElevationClient{
		response: &openelevation.LookupAPIResponse{Results: []openelevation.Result{
			{Latitude: 37.79518, Longitude: -122.40279, Elevation: 9.5},
		}},
	}
	provider := NewOpenElevationProvider(client)

	samples, err := provider.Lookup(context.Background(), []types.Coords{types.NewCoords(37.79518, -122.40279)})
	if err != nil {
		t.Fatalf("Lookup() unexpected error = %v", err)
	}

	if diff := cmp.Diff([]openelevation.Location{{Latitude: 37.79518, Longitude: -122.40279}}, client.got); diff != "" {
		t.Errorf("request mismatch (-want +got):\n%s", diff)
	}
	echoed := types.NewCoords(37.79518, -122.40279)
	if diff := cmp.Diff([]Sample{{Elevation: 9.5, Location: &echoed}}, samples); diff != "" {
		t.Errorf("samples mismatch (-want +got):\n%s", diff)
	}
	if provider.URL() != "http://open-elevation.test" {
		t.Errorf("URL() = %q", provider.URL())
	}
}

func TestOpenMeteoProvider_Lookup(t *testing.T) {
	client := &mockOpenMeteoClient{
		response: &openmeteo.ElevationAPIResponse{Elevation: []float64{2743.5, 3012}},
	}
	provider := NewOpenMeteoProvider(client)

	samples, err := provider.Lookup(context.Background(), []types.Coords{
		types.NewCoords(39.11539, -107.6584),
		types.NewCoords(39.2, -106.5),
	})
	if err != nil {
		t.Fatalf("Lookup() unexpected error = %v", err)
	}

	if diff := cmp.Diff([]float64{39.11539, 39.2}, client.lats); diff != "" {
		t.Errorf("latitudes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{-107.6584, -106.5}, client.lons); diff != "" {
		t.Errorf("longitudes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Sample{{Elevation: 2743.5}, {Elevation: 3012}}, samples); diff != "" {
		t.Errorf("samples mismatch (-want +got):\n%s", diff)
	}
}

func TestProviders_Errors(t *testing.T) {
	boom := errors.New("boom")
	loc := []types.Coords{types.NewCoords(1, 2)}

	tests := []struct {
		name     string
		provider Provider
	}{
		{name: "open-elevation client error", provider: NewOpenElevationProvider(&mockOpenElevationClient{err: boom})},
		{name: "open-elevation nil response", provider: NewOpenElevationProvider(&mockOpenElevationClient{})},
		{name: "open-meteo client error", provider: NewOpenMeteoProvider(&mockOpenMeteoClient{err: boom})},
		{name: "open-meteo nil response", provider: NewOpenMeteoProvider(&mockOpenMeteoClient{})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.provider.Lookup(context.Background(), loc); err == nil {
				t.Error("Lookup() expected error but got none")
			}
		})
	}
}
