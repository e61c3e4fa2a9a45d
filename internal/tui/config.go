package tui

import (
	"github.com/Veraticus/fintrack/internal/dashboard"
	"github.com/Veraticus/fintrack/internal/source"
	"github.com/Veraticus/fintrack/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme      themes.Theme
	Source     source.Source
	Dashboard  *dashboard.Dashboard
	Width      int
	Height     int
	ShowTotals bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:  themes.Default,
		Width:  80,
		Height: 24,
	}
}

// WithSource sets where transactions are loaded from. The dashboard is
// filled asynchronously on start and on reload.
func WithSource(src source.Source) Option {
	return func(c *Config) {
		c.Source = src
	}
}

// WithDashboard sets the dashboard holding query and sort state.
func WithDashboard(d *dashboard.Dashboard) Option {
	return func(c *Config) {
		c.Dashboard = d
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithTotals shows the per-currency totals panel on start.
func WithTotals(show bool) Option {
	return func(c *Config) {
		c.ShowTotals = show
	}
}
