package explain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"agroclimate/internal/mockdata"
	"agroclimate/internal/models"
)

func seriesOf(name string, values ...float64) models.Series {
	day := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := models.Series{Name: name}
	for i, v := range values {
		s.Points = append(s.Points, models.Point{Date: day.AddDate(0, 0, i), Value: v})
	}
	return s
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected Stats
	}{
		{"rising", []float64{1, 2, 3, 6}, Stats{Current: 6, Mean: 3, Trend: Increasing}},
		{"falling", []float64{4, 2, 0}, Stats{Current: 0, Mean: 2, Trend: Decreasing}},
		{"flat counts as decreasing", []float64{2, 5, 2}, Stats{Current: 2, Mean: 3, Trend: Decreasing}},
		{"single value", []float64{7}, Stats{Current: 7, Mean: 7, Trend: Decreasing}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.values)
			if got != tt.expected {
				t.Errorf("Summarize(%v) = %+v, expected %+v", tt.values, got, tt.expected)
			}
		})
	}
}

func TestSeverity(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{2.0, "severe"},
		{1.5000001, "severe"},
		{1.5, "moderate"},
		{0.5, "moderate"},
		{0, "mild"},
		{-0.5, "mild"},
	}

	for _, tt := range tests {
		if got := Severity(tt.value); got != tt.expected {
			t.Errorf("Severity(%v) = %s, expected %s", tt.value, got, tt.expected)
		}
	}
}

func TestComposeEveryCatalogSeries(t *testing.T) {
	for _, name := range mockdata.Names() {
		t.Run(name, func(t *testing.T) {
			text, err := Compose(seriesOf(name, 1, 2, 3))
			if err != nil {
				t.Fatalf("Compose failed: %v", err)
			}
			if strings.TrimSpace(text) == "" {
				t.Error("expected non-empty explanation")
			}
			if !Known(name) {
				t.Error("expected catalog name to be known")
			}
		})
	}
}

func TestComposeIsDeterministic(t *testing.T) {
	stats := Stats{Current: 4.2, Mean: 3.9, Trend: Increasing}
	for _, name := range mockdata.Names() {
		a, err := ComposeStats(name, stats)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		b, _ := ComposeStats(name, stats)
		if a != b {
			t.Errorf("%s: explanation changed between calls", name)
		}
	}
}

func TestComposeWording(t *testing.T) {
	tests := []struct {
		name     string
		series   models.Series
		contains []string
	}{
		{
			name:   "precipitation above and rising",
			series: seriesOf(mockdata.Precipitation, 2, 3, 7),
			contains: []string{
				"precipitation rate is 7.00 mm/day", "above the average of 4.00 mm/day",
				"trend is increasing", "potentially wetter",
			},
		},
		{
			name:     "evapotranspiration lower and falling",
			series:   seriesOf(mockdata.Evapotranspiration, 5, 4, 3),
			contains: []string{"3.00 mm/day, lower than the average of 4.00", "decreasing trend", "decreasing water demand"},
		},
		{
			name:     "humidity percent formatting",
			series:   seriesOf(mockdata.Humidity, 50, 70),
			contains: []string{"humidity level is 70.00%", "average of 60.00%", "more humid"},
		},
		{
			name:     "rainfall below and falling",
			series:   seriesOf(mockdata.Rainfall, 120, 100, 80),
			contains: []string{"monthly rainfall is 80.00 mm", "below the average of 100.00 mm", "decreased natural water"},
		},
		{
			name:     "drought severe and worsening",
			series:   seriesOf(mockdata.DroughtIndex, 0.1, 2.0),
			contains: []string{"drought index is 2.00", "severe drought", "worsening"},
		},
		{
			name:     "drought moderate boundary",
			series:   seriesOf(mockdata.DroughtIndex, 1.8, 1.5),
			contains: []string{"moderate drought", "improving"},
		},
		{
			name:     "drought mild boundary",
			series:   seriesOf(mockdata.DroughtIndex, 1, 0),
			contains: []string{"mild drought"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := Compose(tt.series)
			if err != nil {
				t.Fatalf("Compose failed: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(text, want) {
					t.Errorf("expected %q in %q", want, text)
				}
			}
		})
	}
}

func TestComposeUnknownSeries(t *testing.T) {
	_, err := Compose(seriesOf("Wind Speed (m/s)", 1, 2))
	if !errors.Is(err, ErrUnknownSeries) {
		t.Fatalf("expected ErrUnknownSeries, got %v", err)
	}
	if Known("Wind Speed (m/s)") {
		t.Error("expected unknown name not to be known")
	}
}

func TestComposeEmptySeries(t *testing.T) {
	_, err := Compose(models.Series{Name: mockdata.Humidity})
	if !errors.Is(err, ErrEmptySeries) {
		t.Fatalf("expected ErrEmptySeries, got %v", err)
	}
}
