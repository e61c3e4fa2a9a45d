// Package source loads transactions from tracker files, OFX statements and
// the SQLite ledger.
package source

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/fintrack/internal/common"
	"github.com/Veraticus/fintrack/internal/config"
	"github.com/Veraticus/fintrack/internal/model"
)

// Source supplies the full transaction collection.
type Source interface {
	Load(ctx context.Context) ([]model.Transaction, error)
}

// Open returns the source configured by cfg.
func Open(cfg *config.Config) (Source, error) {
	if cfg == nil {
		return nil, common.ErrMissingConfig
	}

	format, err := cfg.ResolvedFormat()
	if err != nil {
		return nil, err
	}
	return New(cfg.Data.Path, format, cfg.Data.Currency)
}

// ForPath returns a source for a single file, inferring its format from the
// extension.
func ForPath(path, defaultCurrency string) (Source, error) {
	format, err := config.FormatForPath(path)
	if err != nil {
		return nil, err
	}
	return New(path, format, defaultCurrency)
}

// New returns the source implementation for format.
func New(path, format, defaultCurrency string) (Source, error) {
	switch format {
	case config.FormatJSON, config.FormatYAML:
		return &JSONSource{Path: path, DefaultCurrency: defaultCurrency}, nil
	case config.FormatOFX:
		return &OFXSource{Path: path, DefaultCurrency: defaultCurrency}, nil
	case config.FormatSQLite:
		return &SQLiteSource{Path: path}, nil
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrUnsupportedSource, format)
	}
}

// validate checks every record and rejects duplicate ids.
func validate(path string, transactions []model.Transaction) error {
	seen := make(map[int64]struct{}, len(transactions))
	for i, txn := range transactions {
		if err := txn.Validate(); err != nil {
			return fmt.Errorf("%w: %s record %d: %w", common.ErrInvalidTransaction, path, i, err)
		}
		if _, dup := seen[txn.ID]; dup {
			return fmt.Errorf("%w: %s record %d: duplicate id %d", common.ErrInvalidTransaction, path, i, txn.ID)
		}
		seen[txn.ID] = struct{}{}
	}

	slog.Debug("Loaded transactions", "path", path, "count", len(transactions))
	return nil
}
