// Package explain turns a generated series into a short plain-language
// reading of its latest value, its average and its direction.
package explain

import (
	"errors"
	"fmt"

	"agroclimate/internal/mockdata"
	"agroclimate/internal/models"
)

var (
	// ErrUnknownSeries is returned for a series name with no formatter
	ErrUnknownSeries = errors.New("unknown series")
	// ErrEmptySeries is returned when there is nothing to summarize
	ErrEmptySeries = errors.New("series has no points")
)

const (
	Increasing = "increasing"
	Decreasing = "decreasing"
)

// Stats are the figures every explanation is built from
type Stats struct {
	Current float64
	Mean    float64
	Trend   string
}

// Rising reports whether the trend is increasing
func (s Stats) Rising() bool {
	return s.Trend == Increasing
}

// Above reports whether the current value is above the mean
func (s Stats) Above() bool {
	return s.Current > s.Mean
}

type formatter func(Stats) string

var formatters = map[string]formatter{
	mockdata.Precipitation: func(s Stats) string {
		return fmt.Sprintf("The current precipitation rate is %.2f mm/day, which is %s the average of %.2f mm/day. "+
			"The overall trend is %s, suggesting %s conditions in the future. "+
			"This could impact crop water requirements and irrigation planning.",
			s.Current, pick(s.Above(), "above", "below"), s.Mean, s.Trend, pick(s.Rising(), "potentially wetter", "drier"))
	},
	mockdata.Evapotranspiration: func(s Stats) string {
		return fmt.Sprintf("The current evapotranspiration rate is %.2f mm/day, %s than the average of %.2f mm/day. "+
			"With a %s trend, this indicates %s water demand from crops and soil, "+
			"which may affect irrigation scheduling and water resource management.",
			s.Current, pick(s.Above(), "higher", "lower"), s.Mean, s.Trend, pick(s.Rising(), "increasing", "decreasing"))
	},
	mockdata.Humidity: func(s Stats) string {
		return fmt.Sprintf("The current humidity level is %.2f%%, which is %s the average of %.2f%%. "+
			"The %s trend suggests %s conditions ahead, "+
			"potentially affecting crop health, disease risk, and irrigation efficiency.",
			s.Current, pick(s.Above(), "above", "below"), s.Mean, s.Trend, pick(s.Rising(), "more humid", "drier"))
	},
	mockdata.Rainfall: func(s Stats) string {
		return fmt.Sprintf("The current monthly rainfall is %.2f mm, which is %s the average of %.2f mm. "+
			"The %s trend indicates %s natural water availability, "+
			"which could influence irrigation needs and water storage strategies.",
			s.Current, pick(s.Above(), "above", "below"), s.Mean, s.Trend, pick(s.Rising(), "increased", "decreased"))
	},
	mockdata.DroughtIndex: func(s Stats) string {
		return fmt.Sprintf("The current drought index is %.2f, indicating %s drought conditions. "+
			"The %s trend suggests %s drought conditions in the future. "+
			"This could significantly impact water availability and irrigation requirements.",
			s.Current, Severity(s.Current), s.Trend, pick(s.Rising(), "worsening", "improving"))
	},
}

// Compose explains a generated series
func Compose(s models.Series) (string, error) {
	if s.Len() == 0 {
		return "", fmt.Errorf("%w: %s", ErrEmptySeries, s.Name)
	}
	return ComposeStats(s.Name, Summarize(s.Values()))
}

// ComposeStats explains already computed figures for the named series
func ComposeStats(name string, stats Stats) (string, error) {
	f, ok := formatters[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSeries, name)
	}
	return f(stats), nil
}

// Known reports whether name has a formatter
func Known(name string) bool {
	_, ok := formatters[name]
	return ok
}

// Summarize computes the last value, the mean and the first-to-last direction.
// values must not be empty.
func Summarize(values []float64) Stats {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	first, last := values[0], values[len(values)-1]
	return Stats{
		Current: last,
		Mean:    sum / float64(len(values)),
		Trend:   pick(last > first, Increasing, Decreasing),
	}
}

// Severity buckets a drought index value
func Severity(v float64) string {
	switch {
	case v > 1.5:
		return "severe"
	case v > 0:
		return "moderate"
	default:
		return "mild"
	}
}

func pick(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}
