package pipeline

import (
	"errors"
	"testing"

	"streetgrade/internal/config"
	"streetgrade/internal/render"

	"github.com/google/go-cmp/cmp"
)

func TestNewElevationProvider(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.ElevationConfig
		wantURL string
		wantErr error
	}{
		{
			name:    "open-elevation",
			cfg:     config.ElevationConfig{Provider: config.ProviderOpenElevation, URL: "http://elevation.test/api/v1/lookup"},
			wantURL: "http://elevation.test/api/v1/lookup",
		},
		{
			name:    "open-meteo",
			cfg:     config.ElevationConfig{Provider: config.ProviderOpenMeteo, URL: "http://meteo.test/v1/elevation"},
			wantURL: "http://meteo.test/v1/elevation",
		},
		{
			name:    "unknown",
			cfg:     config.ElevationConfig{Provider: "google"},
			wantErr: config.ErrUnknownProvider,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := NewElevationProvider(tt.cfg, testLogger())
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewElevationProvider() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewElevationProvider() unexpected error = %v", err)
			}
			if provider.URL() != tt.wantURL {
				t.Errorf("URL() = %q, want %q", provider.URL(), tt.wantURL)
			}
		})
	}
}

func TestRenderOptions(t *testing.T) {
	got := RenderOptions(config.RenderConfig{Width: 800, Colormap: "viridis"})

	want := render.DefaultOptions()
	want.Width = 800
	want.Colormap = "viridis"

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RenderOptions() mismatch (-want +got):\n%s", diff)
	}
}

func TestRequestFromConfig(t *testing.T) {
	got := RequestFromConfig(config.NetworkConfig{
		Place:    "Piedmont, California, USA",
		Address:  "1 Main St",
		Distance: 750,
		Type:     "walk",
		Simplify: true,
	})
	want := Request{
		Place:       "Piedmont, California, USA",
		Address:     "1 Main St",
		Distance:    750,
		NetworkType: "walk",
		Simplify:    true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RequestFromConfig() mismatch (-want +got):\n%s", diff)
	}
}
