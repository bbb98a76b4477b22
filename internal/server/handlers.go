package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"agroclimate/internal/config"
	"agroclimate/internal/logger"
)

// HandleRoot serves the dashboard at "/" and static files everywhere else
func (s *Server) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}

	if r.URL.Path != "/" {
		s.static.ServeHTTP(w, r)
		return
	}
	s.HandlePage(w, r)
}

// HandlePage generates and writes a complete dashboard page regardless of path
func (s *Server) HandlePage(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}

	start := time.Now()
	page, err := s.Generator.GeneratePage(r.Context())
	if err != nil {
		s.Metrics.RenderErrors.WithLabelValues("page").Inc()
		s.log.Error("page generation failed", err, logger.Fields{"path": r.URL.Path})
		http.Error(w, "Failed to generate page", http.StatusInternalServerError)
		return
	}
	s.Metrics.RenderDuration.Observe(time.Since(start).Seconds())
	s.Metrics.PagesRendered.WithLabelValues(string(s.Host)).Inc()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, page) //nolint:errcheck // client went away
}

// HandleChartPNG serves /charts/{slug}.png as a static rendition of one series
func (s *Server) HandleChartPNG(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/charts/")
	slug, ok := strings.CutSuffix(name, ".png")
	if !ok || slug == "" || strings.Contains(slug, "/") {
		http.NotFound(w, r)
		return
	}

	series, found, err := s.Generator.Series(r.Context(), slug)
	if err != nil {
		s.Metrics.RenderErrors.WithLabelValues("dataset").Inc()
		s.log.Error("series generation failed", err, logger.Fields{"slug": slug})
		http.Error(w, "Failed to generate chart", http.StatusInternalServerError)
		return
	}
	if !found {
		http.NotFound(w, r)
		return
	}

	var buf bytes.Buffer
	if err := s.Generator.Charts().RenderPNG(series, &buf); err != nil {
		s.Metrics.RenderErrors.WithLabelValues("png").Inc()
		s.log.Error("chart rendering failed", err, logger.Fields{"slug": slug})
		http.Error(w, "Failed to generate chart", http.StatusInternalServerError)
		return
	}
	s.Metrics.PNGsRendered.Inc()

	w.Header().Set("Content-Type", GetContentType(name))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes()) //nolint:errcheck // client went away
}

// HandleHealth provides health check endpoint
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}

	health := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"version":     config.GetVersion(),
		"environment": s.Config.Environment,
		"data_policy": string(s.Config.DataPolicy),
		"checks": map[string]string{
			"config": "ok",
		},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(health) //nolint:errcheck // client went away
}
