package models

import (
	"testing"
	"time"
)

func TestWindowDays(t *testing.T) {
	start := time.Date(2025, 1, 1, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		window   Window
		expected int
	}{
		{"same day", Window{Start: start, End: start.Add(time.Hour)}, 1},
		{"one week", Window{Start: start, End: start.AddDate(0, 0, 7)}, 8},
		{"leap year", Window{Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)}, 366},
		{"reversed", Window{Start: start, End: start.AddDate(0, 0, -1)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.window.Days(); got != tt.expected {
				t.Errorf("Days() = %d, expected %d", got, tt.expected)
			}
		})
	}
}

func TestNewWindow(t *testing.T) {
	now := time.Date(2025, 6, 15, 18, 45, 0, 0, time.UTC)
	w := NewWindow(now, 1825, 1825)

	if w.Start != time.Date(2020, 6, 16, 0, 0, 0, 0, time.UTC) {
		t.Errorf("unexpected start %s", w.Start)
	}
	if w.End != time.Date(2030, 6, 14, 0, 0, 0, 0, time.UTC) {
		t.Errorf("unexpected end %s", w.End)
	}
	if w.Days() != 3651 {
		t.Errorf("expected 3651 days, got %d", w.Days())
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"Precipitation (mm/day)", "precipitation-mm-day"},
		{"Evapotranspiration (mm/day)", "evapotranspiration-mm-day"},
		{"Humidity (%)", "humidity"},
		{"Rainfall (mm/month)", "rainfall-mm-month"},
		{"Drought Index", "drought-index"},
		{"  padded  ", "padded"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.name); got != tt.expected {
				t.Errorf("Slugify(%q) = %q, expected %q", tt.name, got, tt.expected)
			}
		})
	}
}

func TestSeriesAccessors(t *testing.T) {
	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	s := Series{
		Name: "Drought Index",
		Points: []Point{
			{Date: day, Value: 1.5},
			{Date: day.AddDate(0, 0, 1), Value: -0.25},
		},
	}

	if s.Len() != 2 {
		t.Fatalf("expected 2 points, got %d", s.Len())
	}
	values := s.Values()
	if values[0] != 1.5 || values[1] != -0.25 {
		t.Errorf("unexpected values %v", values)
	}
	dates := s.Dates()
	if dates[0] != "2025-03-01" || dates[1] != "2025-03-02" {
		t.Errorf("unexpected dates %v", dates)
	}
	if s.Slug() != "drought-index" {
		t.Errorf("unexpected slug %s", s.Slug())
	}
}

func TestDatasetFind(t *testing.T) {
	d := &Dataset{Reports: []SeriesReport{
		{Series: Series{Name: "Humidity (%)"}, Explanation: "humid"},
		{Series: Series{Name: "Drought Index"}, Explanation: "dry"},
	}}

	r, ok := d.Find("drought-index")
	if !ok {
		t.Fatal("expected drought-index to be found")
	}
	if r.Explanation != "dry" {
		t.Errorf("unexpected explanation %q", r.Explanation)
	}
	if _, ok := d.Find("wind"); ok {
		t.Error("expected unknown slug to be missing")
	}
}
