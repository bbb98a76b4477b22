package models

import (
	"strings"
	"time"
	"unicode"
)

// DateLayout is the layout used for series dates on the page and in charts
const DateLayout = "2006-01-02"

// Point is a single daily sample of a series
type Point struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Series is a named, date-ordered sequence of daily samples
type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// SeriesParams controls the shape of a synthesized series
type SeriesParams struct {
	Name      string  `json:"name"`
	Base      float64 `json:"base"`      // centre line of the trend
	Amplitude float64 `json:"amplitude"` // trend amplitude, noise sigma is Amplitude/4
	Frequency float64 `json:"frequency"` // full periods across the window
}

// Window is the inclusive date span covered by every series on a page
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Days returns the number of daily samples in the window, both ends included.
// A window whose end precedes its start has no samples.
func (w Window) Days() int {
	start := TruncateDay(w.Start)
	end := TruncateDay(w.End)
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// NewWindow builds a window around now spanning back and forward days
func NewWindow(now time.Time, back, forward int) Window {
	return Window{
		Start: TruncateDay(now.AddDate(0, 0, -back)),
		End:   TruncateDay(now.AddDate(0, 0, forward)),
	}
}

// TruncateDay drops the time of day, in UTC
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Len returns the number of points in the series
func (s Series) Len() int {
	return len(s.Points)
}

// Values returns the series values in date order
func (s Series) Values() []float64 {
	values := make([]float64, len(s.Points))
	for i, p := range s.Points {
		values[i] = p.Value
	}
	return values
}

// Dates returns the series dates formatted with DateLayout
func (s Series) Dates() []string {
	dates := make([]string, len(s.Points))
	for i, p := range s.Points {
		dates[i] = p.Date.Format(DateLayout)
	}
	return dates
}

// Slug returns the lowercase, hyphen-joined form of the series name.
// "Precipitation (mm/day)" becomes "precipitation-mm-day".
func (s Series) Slug() string {
	return Slugify(s.Name)
}

// Slugify converts a display name into an identifier safe for HTML ids and URLs
func Slugify(name string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}
