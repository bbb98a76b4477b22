package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		envVars     map[string]string
		expectError bool
		validate    func(*testing.T, *Config)
	}{
		{
			name:    "defaults",
			envVars: map[string]string{},
			validate: func(t *testing.T, cfg *Config) {
				if cfg.Port != "8000" {
					t.Errorf("Expected default Port to be '8000', got '%s'", cfg.Port)
				}
				if cfg.LocationName != "Bengaluru" {
					t.Errorf("Expected default LocationName to be 'Bengaluru', got '%s'", cfg.LocationName)
				}
				if cfg.LocationLat != 12.9716 || cfg.LocationLon != 77.5946 {
					t.Errorf("Unexpected default coordinates %v, %v", cfg.LocationLat, cfg.LocationLon)
				}
				if cfg.MapZoom != 4 {
					t.Errorf("Expected default MapZoom to be 4, got %d", cfg.MapZoom)
				}
				if cfg.DaysBack != 1825 || cfg.DaysForward != 1825 {
					t.Errorf("Expected a five year window each way, got %d/%d", cfg.DaysBack, cfg.DaysForward)
				}
				if cfg.ChartHeight != 400 {
					t.Errorf("Expected default ChartHeight to be 400, got %d", cfg.ChartHeight)
				}
				if cfg.DataPolicy != PolicyPerRequest {
					t.Errorf("Expected default DataPolicy to be per-request, got '%s'", cfg.DataPolicy)
				}
				if cfg.StaticRoot != "." {
					t.Errorf("Expected default StaticRoot to be '.', got '%s'", cfg.StaticRoot)
				}
				if cfg.RateLimitRPS != 0 {
					t.Errorf("Expected rate limiting disabled by default, got %v", cfg.RateLimitRPS)
				}
				if cfg.LogLevel != "info" || cfg.LogFormat != "json" {
					t.Errorf("Unexpected log defaults %s/%s", cfg.LogLevel, cfg.LogFormat)
				}
			},
		},
		{
			name: "custom configuration values",
			envVars: map[string]string{
				"PORT":           "9000",
				"LOCATION_NAME":  "Nairobi",
				"LOCATION_LAT":   "-1.2921",
				"LOCATION_LON":   "36.8219",
				"MAP_ZOOM":       "7",
				"DAYS_BACK":      "30",
				"DAYS_FORWARD":   "10",
				"CHART_HEIGHT":   "300",
				"DATA_POLICY":    "startup",
				"RATE_LIMIT_RPS": "2.5",
				"ENVIRONMENT":    "production",
				"LOG_LEVEL":      "debug",
				"LOG_FORMAT":     "text",
			},
			validate: func(t *testing.T, cfg *Config) {
				if cfg.Port != "9000" {
					t.Errorf("Expected Port to be '9000', got '%s'", cfg.Port)
				}
				loc := cfg.Location()
				if loc.Name != "Nairobi" || loc.Latitude != -1.2921 || loc.Longitude != 36.8219 || loc.Zoom != 7 {
					t.Errorf("Unexpected location %+v", loc)
				}
				if cfg.DaysBack != 30 || cfg.DaysForward != 10 {
					t.Errorf("Unexpected window %d/%d", cfg.DaysBack, cfg.DaysForward)
				}
				if cfg.DataPolicy != PolicyStartup {
					t.Errorf("Expected DataPolicy startup, got '%s'", cfg.DataPolicy)
				}
				if cfg.RateLimitRPS != 2.5 {
					t.Errorf("Expected RateLimitRPS 2.5, got %v", cfg.RateLimitRPS)
				}
				if cfg.Environment != "production" {
					t.Errorf("Expected Environment to be 'production', got '%s'", cfg.Environment)
				}
			},
		},
		{
			name:        "unknown data policy",
			envVars:     map[string]string{"DATA_POLICY": "hourly"},
			expectError: true,
		},
		{
			name:        "latitude out of range",
			envVars:     map[string]string{"LOCATION_LAT": "91"},
			expectError: true,
		},
		{
			name:        "malformed number",
			envVars:     map[string]string{"CHART_HEIGHT": "tall"},
			expectError: true,
		},
		{
			name:        "empty window",
			envVars:     map[string]string{"DAYS_BACK": "0", "DAYS_FORWARD": "0"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			cfg, err := Load(context.Background())

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error but got: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadLocationFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "location.yaml")
	content := "location:\n  name: Fresno\n  latitude: 36.7378\n  longitude: -119.7871\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LOCATION_FILE", path)

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	loc := cfg.Location()
	if loc.Name != "Fresno" || loc.Latitude != 36.7378 || loc.Longitude != -119.7871 {
		t.Errorf("Location file not applied: %+v", loc)
	}
	// zoom was not in the file
	if loc.Zoom != 4 {
		t.Errorf("Expected zoom to keep default 4, got %d", loc.Zoom)
	}
}

func TestLoadLocationFileErrors(t *testing.T) {
	clearEnv(t)

	t.Run("missing file", func(t *testing.T) {
		t.Setenv("LOCATION_FILE", filepath.Join(t.TempDir(), "nope.yaml"))
		if _, err := Load(context.Background()); err == nil {
			t.Error("Expected error for missing location file")
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("location: [unclosed"), 0644); err != nil {
			t.Fatal(err)
		}
		t.Setenv("LOCATION_FILE", path)
		if _, err := Load(context.Background()); err == nil {
			t.Error("Expected error for invalid location file")
		}
	})
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := &Config{
		LocationName: "",
		LocationLat:  100,
		LocationLon:  200,
		MapZoom:      30,
		DaysBack:     -1,
		ChartHeight:  0,
		DataPolicy:   "never",
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Expected validation error")
	}
	for _, want := range []string{"DATA_POLICY", "LOCATION_NAME", "LOCATION_LAT", "LOCATION_LON", "MAP_ZOOM", "CHART_HEIGHT"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Expected %s in error: %v", want, err)
		}
	}
}

// clearEnv unsets every variable Load reads, restoring them after the test
func clearEnv(t *testing.T) {
	t.Helper()
	envVars := []string{
		"PORT", "STATIC_ROOT", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
		"LOCATION_NAME", "LOCATION_LAT", "LOCATION_LON", "MAP_ZOOM", "LOCATION_FILE",
		"DAYS_BACK", "DAYS_FORWARD", "CHART_HEIGHT", "CHARTS_DIR", "DATA_POLICY",
		"ENVIRONMENT", "LOG_LEVEL", "LOG_FORMAT",
	}
	for _, env := range envVars {
		t.Setenv(env, "")
		os.Unsetenv(env)
	}
}
