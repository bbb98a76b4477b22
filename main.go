package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"agroclimate/internal/config"
	"agroclimate/internal/logger"
	"agroclimate/internal/observability"
	"agroclimate/internal/reports"
	"agroclimate/internal/server"
)

const shutdownTimeout = 30 * time.Second

// newHTTPServer wires the dashboard routes for the persistent listener
func newHTTPServer(cfg *config.Config, metrics *observability.Metrics, gatherer prometheus.Gatherer) *http.Server {
	gen := reports.NewGenerator(cfg)
	srv := server.NewServer(cfg, gen, metrics, gatherer, server.HostListener)

	return &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := logger.Configure(cfg.LogLevel, cfg.LogFormat); err != nil {
		return fmt.Errorf("failed to configure logger: %w", err)
	}
	log := logger.GetGlobalLogger().WithComponent("main")

	log.Info("starting irrigation dashboard", logger.Fields{
		"port":        cfg.Port,
		"environment": cfg.Environment,
		"location":    cfg.LocationName,
		"data_policy": string(cfg.DataPolicy),
		"version":     config.GetVersion(),
	})

	httpServer := newHTTPServer(cfg, observability.NewMetrics(), prometheus.DefaultGatherer)

	errCh := make(chan error, 1)
	go func() {
		log.Infof("server listening on :%s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	log.Info("server stopped")
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logger.Error("dashboard exited", err)
		stop()
		os.Exit(1)
	}
}
