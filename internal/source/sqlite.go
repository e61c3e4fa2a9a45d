package source

import (
	"context"

	"github.com/Veraticus/fintrack/internal/model"
	"github.com/Veraticus/fintrack/internal/storage"
)

// SQLiteSource reads the ledger stored in a fintrack SQLite database.
type SQLiteSource struct {
	Path string
}

// Load opens the database, applies pending migrations and lists the ledger.
func (s *SQLiteSource) Load(ctx context.Context) ([]model.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	store, err := storage.NewSQLiteStorage(s.Path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(ctx); err != nil {
		return nil, err
	}

	transactions, err := store.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}
	if transactions == nil {
		transactions = []model.Transaction{}
	}

	if err := validate(s.Path, transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}
