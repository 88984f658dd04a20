// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/restpad/restpad/internal/domain/resource"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Resource returns a copy of the current shared resource.
	Resource(ctx context.Context) resource.Resource

	// MergeResource applies a patch to the shared resource atomically.
	MergeResource(ctx context.Context, p resource.Patch) (resource.Resource, error)

	// BuildResource constructs a fresh object from a full field set
	// without touching the shared resource.
	BuildResource(ctx context.Context, p resource.Patch) (resource.Resource, error)

	// GetStats exposes service statistics for the stats endpoint.
	GetStats() map[string]interface{}
}

// Server wires HTTP routes for the business API.
type Server struct {
	statusHandler   *StatusHandler
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	resourceHandler *ResourceHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		statusHandler:   NewStatusHandler(),
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(deps),
		resourceHandler: NewResourceHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", RequestIDMiddleware(MetricsMiddleware(s.healthHandler.HandleHealth, "healthz")))
	mux.HandleFunc("/stats", RequestIDMiddleware(MetricsMiddleware(s.statsHandler.HandleStats, "stats")))
	mux.HandleFunc("/test_resource", RequestIDMiddleware(MetricsMiddleware(s.resourceHandler.HandleResource, "test_resource")))
	mux.HandleFunc("/", RequestIDMiddleware(MetricsMiddleware(s.statusHandler.HandleStatus, "status")))
}

// errorResponse is the wire shape for every client error.
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Error: msg})
}
