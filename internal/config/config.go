package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Elevation provider names accepted in elevation.provider
const (
	ProviderOpenElevation = "open-elevation"
	ProviderOpenMeteo     = "open-meteo"
)

var (
	ErrInvalidBatchSize = errors.New("invalid elevation batch size")
	ErrInvalidPrecision = errors.New("invalid precision")
	ErrUnknownProvider  = errors.New("unknown elevation provider")
)

// maxBatchSize is the largest batch each provider accepts in one request
var maxBatchSize = map[string]int{
	ProviderOpenElevation: 1000,
	ProviderOpenMeteo:     100,
}

// defaultBatchSize is used when elevation.batchSize is left at 0
var defaultBatchSize = map[string]int{
	ProviderOpenElevation: 350,
	ProviderOpenMeteo:     100,
}

// defaultElevationURL is used when elevation.url is left empty
var defaultElevationURL = map[string]string{
	ProviderOpenElevation: "https://api.open-elevation.com/api/v1/lookup",
	ProviderOpenMeteo:     "https://api.open-meteo.com/v1/elevation",
}

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Network   NetworkConfig
	Elevation ElevationConfig
	Providers ProvidersConfig
	Render    RenderConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port int
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// NetworkConfig describes which street network to fetch
type NetworkConfig struct {
	Place    string  // Place name resolved through Nominatim
	Address  string  // When set, fetch around this address instead of the place
	Distance float64 // Radius in meters around Address
	Type     string  // drive, walk, all
	Simplify bool
}

// ElevationConfig holds elevation lookup configuration
type ElevationConfig struct {
	Provider  string // open-elevation, open-meteo
	URL       string
	BatchSize int
	Precision int
	FailFast  bool
	Timeout   time.Duration
}

// ProvidersConfig holds endpoints for the map data providers
type ProvidersConfig struct {
	NominatimURL string
	OverpassURL  string
	UserAgent    string
	Timeout      time.Duration
}

// RenderConfig holds visualization settings
type RenderConfig struct {
	Output    string
	GeoJSON   string
	Width     int
	NodeSize  float64
	EdgeColor string
	BgColor   string
	Colormap  string
}

// Load reads configuration from file, environment variables and, when given, command-line flags
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// Set config file name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.streetgrade")

	setDefaults(v)

	// Read from environment variables
	v.SetEnvPrefix("STREETGRADE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
		if f := flags.Lookup("config"); f != nil && f.Value.String() != "" {
			v.SetConfigFile(f.Value.String())
		}
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Elevation.URL == "" {
		cfg.Elevation.URL = defaultElevationURL[cfg.Elevation.Provider]
	}
	if cfg.Elevation.BatchSize == 0 {
		cfg.Elevation.BatchSize = defaultBatchSize[cfg.Elevation.Provider]
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("network.place", "San Francisco, California, USA")
	v.SetDefault("network.address", "")
	v.SetDefault("network.distance", 1000.0)
	v.SetDefault("network.type", "drive")
	v.SetDefault("network.simplify", true)

	v.SetDefault("elevation.provider", ProviderOpenElevation)
	v.SetDefault("elevation.url", "")
	v.SetDefault("elevation.batchSize", 0) // per provider
	v.SetDefault("elevation.precision", 3)
	v.SetDefault("elevation.failFast", false)
	v.SetDefault("elevation.timeout", 60*time.Second)

	v.SetDefault("providers.nominatimURL", "https://nominatim.openstreetmap.org")
	v.SetDefault("providers.overpassURL", "https://overpass-api.de/api/interpreter")
	v.SetDefault("providers.userAgent", "streetgrade/1.0")
	v.SetDefault("providers.timeout", 180*time.Second)

	v.SetDefault("render.output", "graph.png")
	v.SetDefault("render.geojson", "")
	v.SetDefault("render.width", 1600)
	v.SetDefault("render.nodeSize", 5.0)
	v.SetDefault("render.edgeColor", "#333333")
	v.SetDefault("render.bgColor", "#000000")
	v.SetDefault("render.colormap", "plasma")
}

// flagKeys maps command-line flag names to config keys
var flagKeys = map[string]string{
	"place":      "network.place",
	"address":    "network.address",
	"distance":   "network.distance",
	"network":    "network.type",
	"batch-size": "elevation.batchSize",
	"provider":   "elevation.provider",
	"output":     "render.output",
	"geojson":    "render.geojson",
	"log-level":  "log.level",
	"port":       "server.port",
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag %q: %w", name, err)
		}
	}
	return nil
}

// Validate checks the values that cannot be defaulted away
func (c *Config) Validate() error {
	limit, ok := maxBatchSize[c.Elevation.Provider]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownProvider, c.Elevation.Provider)
	}
	if c.Elevation.BatchSize <= 0 || c.Elevation.BatchSize > limit {
		return fmt.Errorf("%w: %d (must be between 1 and %d for %s)",
			ErrInvalidBatchSize, c.Elevation.BatchSize, limit, c.Elevation.Provider)
	}
	if c.Elevation.Precision < 0 || c.Elevation.Precision > 10 {
		return fmt.Errorf("%w: %d", ErrInvalidPrecision, c.Elevation.Precision)
	}
	return nil
}

// GetServerAddr returns the server address in the format ":port"
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// NewLogger creates a new slog.Logger based on the configuration
func (c *Config) NewLogger() *slog.Logger {
	// Parse log level
	var level slog.Level
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Choose handler based on format
	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default: // "text" or anything else
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
