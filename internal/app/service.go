// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"
	"time"

	repository "github.com/restpad/restpad/internal/adapters/repository"
	"github.com/restpad/restpad/internal/domain/resource"
	"github.com/restpad/restpad/pkg/logger"
)

// Service implements the API dependencies over the guarded store.
type Service struct {
	mu sync.RWMutex

	// Core components
	store repository.Store

	// Configuration
	defaults resource.Resource

	// State
	started   bool
	startedAt time.Time

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets a custom store implementation.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithDefaults sets the starting state of the shared resource.
func WithDefaults(r resource.Resource) Option {
	return func(s *Service) {
		s.defaults = r
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		defaults: resource.Default(),
		logger:   nil, // Will be replaced when the service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	if s.store == nil {
		s.store = repository.NewMemStore(repository.WithInitial(s.defaults))
	}

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "resource service started",
		logger.String("name", s.defaults.Name),
		logger.String("location", s.defaults.Location),
		logger.Int("endpoints", s.defaults.Endpoints),
		logger.Bool("has_values", s.defaults.HasValues),
	)

	return nil
}

// Stop shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.started = false
	s.logger.Info(context.Background(), "resource service stopped")
}

// Resource returns a copy of the current shared resource.
func (s *Service) Resource(ctx context.Context) resource.Resource {
	return s.store.Get(ctx)
}

// MergeResource applies a patch to the shared resource atomically.
func (s *Service) MergeResource(ctx context.Context, p resource.Patch) (resource.Resource, error) {
	updated, err := s.store.Merge(ctx, p)
	if err != nil {
		s.logger.Debug(ctx, "merge rejected", logger.Error(err))
		return updated, err
	}
	s.logger.Info(ctx, "resource merged",
		logger.Int("fields", len(p)),
		logger.Any("version", s.store.Version(ctx)),
	)
	return updated, nil
}

// BuildResource constructs a fresh object from a full field set. The
// shared resource is never touched.
func (s *Service) BuildResource(ctx context.Context, p resource.Patch) (resource.Resource, error) {
	built, err := resource.Build(p)
	if err != nil {
		s.logger.Debug(ctx, "build rejected", logger.Error(err))
		return resource.Resource{}, err
	}
	return built, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started": s.started,
	}

	if s.started {
		stats["uptime_seconds"] = int(time.Since(s.startedAt).Seconds())
		stats["resource_version"] = s.store.Version(ctx)
		if last := s.store.LastMerged(ctx); !last.IsZero() {
			stats["last_merged"] = last.Format(time.RFC3339)
		}
	}

	return stats
}
