// Package mockdata synthesizes the climate series shown on the dashboard.
// Values are a sinusoidal trend plus gaussian noise and carry no real
// measurements.
package mockdata

import (
	"math"
	"math/rand/v2"

	"agroclimate/internal/models"
)

// Series names, in page order
const (
	Precipitation      = "Precipitation (mm/day)"
	Evapotranspiration = "Evapotranspiration (mm/day)"
	Humidity           = "Humidity (%)"
	Rainfall           = "Rainfall (mm/month)"
	DroughtIndex       = "Drought Index"
)

// Catalog lists the parameters of every series on the page
var Catalog = []models.SeriesParams{
	{Name: Precipitation, Base: 5, Amplitude: 3, Frequency: 2},
	{Name: Evapotranspiration, Base: 3, Amplitude: 1, Frequency: 1.5},
	{Name: Humidity, Base: 60, Amplitude: 20, Frequency: 1},
	{Name: Rainfall, Base: 100, Amplitude: 50, Frequency: 1},
	{Name: DroughtIndex, Base: 0, Amplitude: 2, Frequency: 0.5},
}

// Names returns the catalog series names in page order
func Names() []string {
	names := make([]string, len(Catalog))
	for i, p := range Catalog {
		names[i] = p.Name
	}
	return names
}

// Generate samples one value per day across the window:
//
//	base + amplitude*sin(2π*frequency*i/n) + N(0, amplitude/4)
//
// A nil rng draws from the process-wide source, so repeated calls differ.
func Generate(window models.Window, p models.SeriesParams, rng *rand.Rand) models.Series {
	n := window.Days()
	series := models.Series{Name: p.Name, Points: make([]models.Point, n)}
	if n == 0 {
		return series
	}

	start := models.TruncateDay(window.Start)
	sigma := p.Amplitude / 4
	for i := 0; i < n; i++ {
		trend := p.Base + p.Amplitude*math.Sin(2*math.Pi*p.Frequency*float64(i)/float64(n))
		series.Points[i] = models.Point{
			Date:  start.AddDate(0, 0, i),
			Value: trend + normal(rng)*sigma,
		}
	}
	return series
}

// GenerateCatalog generates every catalog series over the same window
func GenerateCatalog(window models.Window, rng *rand.Rand) []models.Series {
	out := make([]models.Series, 0, len(Catalog))
	for _, p := range Catalog {
		out = append(out, Generate(window, p, rng))
	}
	return out
}

func normal(rng *rand.Rand) float64 {
	if rng == nil {
		return rand.NormFloat64()
	}
	return rng.NormFloat64()
}
