// Package repository defines the resource store interface and its
// in-memory implementation.
package repository

import (
	"context"
	"time"

	"github.com/restpad/restpad/internal/domain/resource"
)

// Store provides guarded access to the single shared Resource.
type Store interface {
	// Get returns a copy of the current resource state.
	Get(ctx context.Context) resource.Resource

	// Merge validates the patch against the current state and applies it
	// atomically. On any validation error the stored resource is left
	// untouched and the error is returned.
	Merge(ctx context.Context, p resource.Patch) (resource.Resource, error)

	// Version returns the number of merges applied since start.
	Version(ctx context.Context) uint64

	// LastMerged returns the time of the most recent successful merge,
	// or the zero time if none happened yet.
	LastMerged(ctx context.Context) time.Time
}
