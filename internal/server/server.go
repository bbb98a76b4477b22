package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"agroclimate/internal/config"
	"agroclimate/internal/logger"
	"agroclimate/internal/observability"
	"agroclimate/internal/reports"
)

// Host names the process serving the dashboard; used as a metrics label
type Host string

const (
	HostListener Host = "listener"
	HostOneShot  Host = "oneshot"
)

// Server represents the dashboard HTTP server
type Server struct {
	Config    *config.Config
	Generator *reports.Generator
	Metrics   *observability.Metrics
	Host      Host

	gatherer prometheus.Gatherer
	limiter  *rate.Limiter
	static   http.Handler
	log      *logger.Logger
}

// NewServer creates a new server instance. gatherer backs /metrics.
func NewServer(cfg *config.Config, gen *reports.Generator, metrics *observability.Metrics, gatherer prometheus.Gatherer, host Host) *Server {
	s := &Server{
		Config:    cfg,
		Generator: gen,
		Metrics:   metrics,
		Host:      host,
		gatherer:  gatherer,
		static:    http.FileServer(http.Dir(cfg.StaticRoot)),
		log:       logger.GetGlobalLogger().WithComponent("server"),
	}
	if cfg.RateLimitRPS > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	}
	return s
}

// SetupRoutes configures HTTP routes for the server
func (s *Server) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.HandleHealth)
	mux.Handle("/metrics", readOnly(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	mux.HandleFunc("/charts/", s.HandleChartPNG)

	// Root path last (catch-all)
	mux.HandleFunc("/", s.HandleRoot)

	return mux
}

// Handler returns the routes wrapped in request logging and rate limiting
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.rateLimit(s.SetupRoutes()))
}
