// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// ResourceName through ResourceHasValues seed the shared resource
	// created at process start.
	ResourceName      string `koanf:"resource_name"`
	ResourceLocation  string `koanf:"resource_location"`
	ResourceEndpoints int    `koanf:"resource_endpoints"`
	ResourceHasValues bool   `koanf:"resource_has_values"`
}

// New creates a Config with compiled defaults. Context is accepted first
// to satisfy the project-wide convention; it is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":9080",
		ResourceName:      "example_resource",
		ResourceLocation:  "my_computer",
		ResourceEndpoints: 2,
		ResourceHasValues: true,
	}
}
