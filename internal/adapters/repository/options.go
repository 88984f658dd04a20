package repository

import (
	"github.com/restpad/restpad/internal/domain/resource"
)

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithInitial seeds the store with a specific starting resource instead
// of the package default.
func WithInitial(r resource.Resource) Option {
	return func(s *MemStore) {
		s.current = r
	}
}
