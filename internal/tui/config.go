package tui

import (
	"github.com/exodash/exodash/internal/exoplanet"
	"github.com/exodash/exodash/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Backend   Backend
	History   HistoryStore
	Theme     themes.Theme
	Query     exoplanet.Query
	Threshold float64
	Width     int
	Height    int
	MockMode  bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:     themes.Default,
		Query:     exoplanet.DefaultQuery(),
		Threshold: exoplanet.DefaultThreshold,
		Width:     100,
		Height:    32,
	}
}

// WithBackend sets the backend client.
func WithBackend(b Backend) Option {
	return func(c *Config) {
		c.Backend = b
	}
}

// WithHistory sets the prediction history store.
func WithHistory(h HistoryStore) Option {
	return func(c *Config) {
		c.History = h
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithQuery sets the initial query.
func WithQuery(q exoplanet.Query) Option {
	return func(c *Config) {
		c.Query = q
	}
}

// WithThreshold sets the initial decision threshold.
func WithThreshold(t float64) Option {
	return func(c *Config) {
		c.Threshold = t
	}
}

// WithMockMode enables the local prediction fixture.
func WithMockMode(enabled bool) Option {
	return func(c *Config) {
		c.MockMode = enabled
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}
