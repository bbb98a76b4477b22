package reports

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/jonboulle/clockwork"

	"agroclimate/internal/charts"
	"agroclimate/internal/config"
	"agroclimate/internal/explain"
	"agroclimate/internal/logger"
	"agroclimate/internal/mockdata"
	"agroclimate/internal/models"
)

// Generator produces datasets and the pages built from them
type Generator struct {
	location    models.Location
	daysBack    int
	daysForward int
	policy      config.DataPolicy

	clock   clockwork.Clock
	rng     *rand.Rand
	charts  *charts.ChartGenerator
	builder *HTMLBuilder
	log     *logger.Logger

	// startup policy only
	once     sync.Once
	snapshot *models.Dataset
	snapErr  error
}

// Option customizes a Generator
type Option func(*Generator)

// WithClock sets the time source for the date window
func WithClock(c clockwork.Clock) Option {
	return func(g *Generator) { g.clock = c }
}

// WithRand sets the noise source. The default is the process-wide source.
// A *rand.Rand is not safe for concurrent use, so share it only in tests.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) { g.rng = rng }
}

// NewGenerator creates a generator from configuration
func NewGenerator(cfg *config.Config, opts ...Option) *Generator {
	chartGen := charts.NewChartGenerator(cfg.ChartsDir, cfg.ChartHeight)
	g := &Generator{
		location:    cfg.Location(),
		daysBack:    cfg.DaysBack,
		daysForward: cfg.DaysForward,
		policy:      cfg.DataPolicy,
		clock:       clockwork.NewRealClock(),
		charts:      chartGen,
		builder:     NewHTMLBuilder(chartGen),
		log:         logger.GetGlobalLogger().WithComponent("generator"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Charts returns the chart generator shared with the page builder
func (g *Generator) Charts() *charts.ChartGenerator {
	return g.charts
}

// Dataset returns the data for one page. Under the per-request policy every
// call synthesizes fresh series; under the startup policy the first dataset
// is kept for the life of the generator.
func (g *Generator) Dataset(ctx context.Context) (*models.Dataset, error) {
	if g.policy != config.PolicyStartup {
		return g.Generate(ctx)
	}
	g.once.Do(func() {
		// a cancelled first request must not poison the snapshot
		g.snapshot, g.snapErr = g.Generate(context.WithoutCancel(ctx))
	})
	return g.snapshot, g.snapErr
}

// Generate synthesizes every catalog series and explains each one
func (g *Generator) Generate(ctx context.Context) (*models.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := g.clock.Now()
	window := models.NewWindow(now, g.daysBack, g.daysForward)

	ds := &models.Dataset{
		GeneratedAt: now,
		Location:    g.location,
		Window:      window,
		Reports:     make([]models.SeriesReport, 0, len(mockdata.Catalog)),
	}
	for _, s := range mockdata.GenerateCatalog(window, g.rng) {
		text, err := explain.Compose(s)
		if err != nil {
			return nil, fmt.Errorf("failed to explain %s: %w", s.Name, err)
		}
		ds.Reports = append(ds.Reports, models.SeriesReport{Series: s, Explanation: text})
	}

	g.log.Debug("dataset generated", map[string]interface{}{
		"series": len(ds.Reports),
		"days":   window.Days(),
		"policy": string(g.policy),
	})
	return ds, nil
}

// Series returns one series by slug. Under the startup policy it comes from
// the shared dataset; otherwise only that series is synthesized.
func (g *Generator) Series(ctx context.Context, slug string) (models.Series, bool, error) {
	if g.policy == config.PolicyStartup {
		ds, err := g.Dataset(ctx)
		if err != nil {
			return models.Series{}, false, err
		}
		r, ok := ds.Find(slug)
		return r.Series, ok, nil
	}

	if err := ctx.Err(); err != nil {
		return models.Series{}, false, err
	}
	for _, p := range mockdata.Catalog {
		if models.Slugify(p.Name) != slug {
			continue
		}
		window := models.NewWindow(g.clock.Now(), g.daysBack, g.daysForward)
		return mockdata.Generate(window, p, g.rng), true, nil
	}
	return models.Series{}, false, nil
}

// GeneratePage builds the complete HTML document
func (g *Generator) GeneratePage(ctx context.Context) (string, error) {
	ds, err := g.Dataset(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to generate dataset: %w", err)
	}
	return g.BuildPage(ds)
}

// BuildPage renders an existing dataset
func (g *Generator) BuildPage(ds *models.Dataset) (string, error) {
	page, err := g.builder.Build(ds)
	if err != nil {
		return "", fmt.Errorf("failed to build page: %w", err)
	}
	return page, nil
}
