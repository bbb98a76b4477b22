package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"

	"agroclimate/internal/models"
)

// DataPolicy decides when the page data is synthesized
type DataPolicy string

const (
	// PolicyPerRequest regenerates every series on every page
	PolicyPerRequest DataPolicy = "per-request"
	// PolicyStartup generates once and serves the same data for the process lifetime
	PolicyStartup DataPolicy = "startup"
)

// Config holds all configuration for the dashboard service
type Config struct {
	// Server configuration
	Port           string  `env:"PORT,default=8000"`
	StaticRoot     string  `env:"STATIC_ROOT,default=."`
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS,default=0"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST,default=5"`

	// Location shown on the map
	LocationName string  `env:"LOCATION_NAME,default=Bengaluru"`
	LocationLat  float64 `env:"LOCATION_LAT,default=12.9716"`
	LocationLon  float64 `env:"LOCATION_LON,default=77.5946"`
	MapZoom      int     `env:"MAP_ZOOM,default=4"`
	LocationFile string  `env:"LOCATION_FILE"`

	// Date window and charts
	DaysBack    int        `env:"DAYS_BACK,default=1825"`
	DaysForward int        `env:"DAYS_FORWARD,default=1825"`
	ChartHeight int        `env:"CHART_HEIGHT,default=400"`
	ChartsDir   string     `env:"CHARTS_DIR"`
	DataPolicy  DataPolicy `env:"DATA_POLICY,default=per-request"`

	// Service configuration
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	LogFormat   string `env:"LOG_FORMAT,default=json"`
}

// locationFile is the YAML layout of LOCATION_FILE
type locationFile struct {
	Location models.Location `yaml:"location"`
}

// Load loads configuration from environment variables, then applies the
// location file if one is set.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.LocationFile != "" {
		if err := cfg.LoadLocationFile(cfg.LocationFile); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadLocationFile overrides the location with the one described in a YAML
// file. Fields missing from the file keep their current values.
func (c *Config) LoadLocationFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read location file: %w", err)
	}

	lf := locationFile{Location: c.Location()}
	if err := yaml.Unmarshal(content, &lf); err != nil {
		return fmt.Errorf("failed to parse location file %s: %w", path, err)
	}

	c.LocationName = lf.Location.Name
	c.LocationLat = lf.Location.Latitude
	c.LocationLon = lf.Location.Longitude
	c.MapZoom = lf.Location.Zoom
	return nil
}

// Location returns the configured map location
func (c *Config) Location() models.Location {
	return models.Location{
		Name:      c.LocationName,
		Latitude:  c.LocationLat,
		Longitude: c.LocationLon,
		Zoom:      c.MapZoom,
	}
}

// Validate checks values envconfig cannot check on its own
func (c *Config) Validate() error {
	var errs []error

	switch c.DataPolicy {
	case PolicyPerRequest, PolicyStartup:
	default:
		errs = append(errs, fmt.Errorf("unsupported DATA_POLICY %q", c.DataPolicy))
	}
	if c.LocationName == "" {
		errs = append(errs, errors.New("LOCATION_NAME must not be empty"))
	}
	if c.LocationLat < -90 || c.LocationLat > 90 {
		errs = append(errs, fmt.Errorf("LOCATION_LAT %v out of range", c.LocationLat))
	}
	if c.LocationLon < -180 || c.LocationLon > 180 {
		errs = append(errs, fmt.Errorf("LOCATION_LON %v out of range", c.LocationLon))
	}
	if c.MapZoom < 0 || c.MapZoom > 19 {
		errs = append(errs, fmt.Errorf("MAP_ZOOM %d out of range", c.MapZoom))
	}
	if c.DaysBack < 0 || c.DaysForward < 0 {
		errs = append(errs, errors.New("DAYS_BACK and DAYS_FORWARD must not be negative"))
	}
	if c.DaysBack+c.DaysForward < 1 {
		errs = append(errs, errors.New("date window needs at least two days"))
	}
	if c.ChartHeight <= 0 {
		errs = append(errs, fmt.Errorf("CHART_HEIGHT %d must be positive", c.ChartHeight))
	}
	if c.RateLimitRPS < 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_RPS %v must not be negative", c.RateLimitRPS))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
