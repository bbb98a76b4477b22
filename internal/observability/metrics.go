package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "agroclimate"

// Metrics holds the Prometheus counters and histograms for page and chart rendering.
type Metrics struct {
	PagesRendered  *prometheus.CounterVec // labels: host={listener,oneshot}
	RenderErrors   *prometheus.CounterVec // labels: stage={dataset,page,png}
	RenderDuration prometheus.Histogram
	PNGsRendered   prometheus.Counter
	RateLimited    prometheus.Counter
}

func newMetrics() *Metrics {
	return &Metrics{
		PagesRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pages_rendered_total",
			Help:      "Dashboard pages served, by host.",
		}, []string{"host"}),
		RenderErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "render_errors_total",
			Help:      "Failed renders, by stage.",
		}, []string{"stage"}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "page_render_duration_seconds",
			Help:      "Time to synthesize the data and build one page.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		PNGsRendered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chart_pngs_rendered_total",
			Help:      "Static chart images served.",
		}),
		RateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_requests_total",
			Help:      "Requests rejected by the rate limiter.",
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.PagesRendered,
		m.RenderErrors,
		m.RenderDuration,
		m.PNGsRendered,
		m.RateLimited,
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates Metrics registered with a fresh registry to
// avoid "already registered" panics when called from multiple tests.
func NewMetricsForTesting() (*Metrics, *prometheus.Registry) {
	m := newMetrics()
	reg := prometheus.NewRegistry()
	reg.MustRegister(m.collectors()...)
	return m, reg
}
