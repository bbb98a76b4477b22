package models

import "time"

// Location is the fixed site the dashboard describes
type Location struct {
	Name      string  `json:"name" yaml:"name"`
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
	Zoom      int     `json:"zoom" yaml:"zoom"`
}

// SeriesReport pairs a generated series with the explanation derived from it
type SeriesReport struct {
	Series      Series `json:"series"`
	Explanation string `json:"explanation"`
}

// Dataset is everything one page is built from
type Dataset struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Location    Location       `json:"location"`
	Window      Window         `json:"window"`
	Reports     []SeriesReport `json:"reports"`
}

// Find returns the report whose series slug matches
func (d *Dataset) Find(slug string) (SeriesReport, bool) {
	for _, r := range d.Reports {
		if r.Series.Slug() == slug {
			return r, true
		}
	}
	return SeriesReport{}, false
}
