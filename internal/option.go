package internal

import "github.com/starford/arbor/internal/table"

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config *Config
	store  table.Store
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithStore serves records from store instead of the one named by
// records.path and records.format.
func WithStore(store table.Store) Option {
	return func(a *application) {
		a.store = store
	}
}
