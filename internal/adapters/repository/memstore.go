package repository

import (
	"context"
	"sync"
	"time"

	"github.com/restpad/restpad/internal/domain/resource"
	"github.com/restpad/restpad/pkg/metrics"
)

// MemStore is the RWMutex-guarded, in-memory Store implementation.
//
// Reads take the read lock and return a copy. Merge validates the whole
// patch against a copy under the write lock, so a rejected patch never
// leaves a partial update behind.
type MemStore struct {
	mu         sync.RWMutex
	current    resource.Resource
	version    uint64
	lastMerged time.Time
}

// NewMemStore creates a store seeded with the default resource unless
// overridden by options.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		current: resource.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns a copy of the current resource state.
func (s *MemStore) Get(_ context.Context) resource.Resource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	metrics.RecordResourceRead()
	return s.current
}

// Merge applies the patch atomically. Validation happens on a copy under
// the write lock; the stored resource only changes when every field in
// the patch is known and well-typed.
func (s *MemStore) Merge(_ context.Context, p resource.Patch) (resource.Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged, err := s.current.Merge(p)
	if err != nil {
		metrics.RecordMergeRejected()
		return s.current, err
	}

	s.current = merged
	s.version++
	s.lastMerged = time.Now()
	metrics.RecordResourceMerge()
	metrics.UpdateResourceVersion(s.version)
	return s.current, nil
}

// Version returns the number of merges applied since start.
func (s *MemStore) Version(_ context.Context) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// LastMerged returns the time of the most recent successful merge.
func (s *MemStore) LastMerged(_ context.Context) time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastMerged
}
