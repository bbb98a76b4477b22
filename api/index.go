// Package handler is the one-shot entry point: every request, on any path,
// gets a freshly generated dashboard page.
package handler

import (
	"context"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"agroclimate/internal/config"
	"agroclimate/internal/logger"
	"agroclimate/internal/observability"
	"agroclimate/internal/reports"
	"agroclimate/internal/server"
)

var (
	initOnce sync.Once
	srv      *server.Server
	initErr  error
)

func setup() (*server.Server, error) {
	initOnce.Do(func() {
		cfg, err := config.Load(context.Background())
		if err != nil {
			initErr = err
			return
		}
		if err := logger.Configure(cfg.LogLevel, cfg.LogFormat); err != nil {
			initErr = err
			return
		}
		metrics := observability.NewMetrics()
		srv = server.NewServer(cfg, reports.NewGenerator(cfg), metrics, prometheus.DefaultGatherer, server.HostOneShot)
	})
	return srv, initErr
}

// Handler serves the dashboard page for any path
func Handler(w http.ResponseWriter, r *http.Request) {
	s, err := setup()
	if err != nil {
		logger.Error("one-shot handler setup failed", err)
		http.Error(w, "Failed to generate page", http.StatusInternalServerError)
		return
	}
	s.HandlePage(w, r)
}
