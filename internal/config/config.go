// Package config loads fintrack settings from viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/fintrack/internal/common"
	"github.com/Veraticus/fintrack/internal/order"
	"github.com/spf13/viper"
)

// Data formats understood by the source layer.
const (
	FormatJSON   = "json"
	FormatYAML   = "yaml"
	FormatOFX    = "ofx"
	FormatSQLite = "sqlite"
)

// Defaults applied by Load.
const (
	DefaultDataPath  = "~/.fintrack/tracker.json"
	DefaultCurrency  = "NGN"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
)

// Config holds every setting fintrack reads.
type Config struct {
	Data    DataConfig    `mapstructure:"data"`
	View    ViewConfig    `mapstructure:"view"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// DataConfig locates the transaction store.
type DataConfig struct {
	Path     string `mapstructure:"path"`
	Format   string `mapstructure:"format"`
	Currency string `mapstructure:"currency"`
}

// ViewConfig holds presentation defaults.
type ViewConfig struct {
	Sort string `mapstructure:"sort"`
}

// LoggingConfig configures the slog default handler.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SetDefaults registers fintrack's defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("data.path", DefaultDataPath)
	v.SetDefault("data.format", "")
	v.SetDefault("data.currency", DefaultCurrency)
	v.SetDefault("view.sort", order.DefaultState().String())
	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	if v == nil {
		return nil, common.ErrMissingConfig
	}
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}

	cfg.Data.Path = ExpandPath(strings.TrimSpace(cfg.Data.Path))
	cfg.Data.Format = strings.ToLower(strings.TrimSpace(cfg.Data.Format))
	cfg.Data.Currency = strings.ToUpper(strings.TrimSpace(cfg.Data.Currency))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Data.Path == "" {
		return fmt.Errorf("%w: data.path is required", common.ErrInvalidConfig)
	}
	if c.Data.Format != "" {
		if _, err := ParseFormat(c.Data.Format); err != nil {
			return err
		}
	}
	if _, err := order.ParseState(c.View.Sort); err != nil {
		return fmt.Errorf("%w: view.sort: %w", common.ErrInvalidConfig, err)
	}
	if _, err := common.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("%w: log format %q", common.ErrInvalidConfig, c.Logging.Format)
	}
	return nil
}

// ResolvedFormat returns the configured format, or the one implied by the
// data path's extension when none is configured.
func (c *Config) ResolvedFormat() (string, error) {
	if c.Data.Format != "" {
		return ParseFormat(c.Data.Format)
	}
	return FormatForPath(c.Data.Path)
}

// SortState returns the configured initial sort.
func (c *Config) SortState() order.State {
	s, err := order.ParseState(c.View.Sort)
	if err != nil {
		return order.DefaultState()
	}
	return s
}

// ParseFormat validates a data format name.
func ParseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case FormatJSON, FormatYAML, FormatOFX, FormatSQLite:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "qfx":
		return FormatOFX, nil
	case "db", "sqlite3":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("%w: %q", common.ErrUnsupportedSource, s)
	}
}

// FormatForPath infers the data format from a file extension.
func FormatForPath(path string) (string, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: cannot infer format of %q", common.ErrUnsupportedSource, path)
	}
	return ParseFormat(ext)
}

// ExpandPath substitutes $VAR references and resolves a leading ~ or ~/ to
// the home directory. ~user forms are left alone.
func ExpandPath(path string) string {
	path = os.ExpandEnv(path)

	rest, ok := strings.CutPrefix(path, "~")
	if !ok || (rest != "" && rest[0] != '/') {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}
