package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/fintrack/internal/common"
	"github.com/Veraticus/fintrack/internal/model"
	"github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

var saveRetry = common.RetryOptions{
	MaxAttempts:  4,
	InitialDelay: 50 * time.Millisecond,
	MaxDelay:     time.Second,
}

// SaveTransactions upserts transactions by id in a single database transaction.
// Writes that hit a locked database are retried with backoff.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransactions(transactions); err != nil {
		return err
	}

	return common.WithRetry(ctx, func() error {
		err := s.saveTransactions(ctx, transactions)
		if err != nil && !isBusy(err) {
			return common.Permanent(err)
		}
		return err
	}, saveRetry)
}

// isBusy reports whether err is SQLite refusing a write because another connection holds the lock.
func isBusy(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
	}
	return false
}

func (s *SQLiteStorage) saveTransactions(ctx context.Context, transactions []model.Transaction) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions (id, date, remark, amount, currency, type)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			remark = excluded.remark,
			amount = excluded.amount,
			currency = excluded.currency,
			type = excluded.type
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, txn := range transactions {
		if _, err := stmt.ExecContext(ctx,
			txn.ID,
			txn.Date,
			txn.Remark,
			txn.Amount.String(),
			txn.Currency,
			string(txn.Type),
		); err != nil {
			return fmt.Errorf("failed to save transaction %d: %w", txn.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transactions: %w", err)
	}

	slog.Debug("Saved transactions", "count", len(transactions), "db", s.dbPath)
	return nil
}

// ListTransactions returns every stored transaction ordered by id.
func (s *SQLiteStorage) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.listTransactions(ctx, s.db)
}

func (s *SQLiteStorage) listTransactions(ctx context.Context, q queryable) ([]model.Transaction, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, date, remark, amount, currency, type
		FROM transactions
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanTransactions(rows)
}

// Count returns the number of stored transactions.
func (s *SQLiteStorage) Count(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM transactions").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

// NextID returns the id the next appended transaction should use.
func (s *SQLiteStorage) NextID(ctx context.Context) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var maxID sql.NullInt64
	if err := s.db.QueryRowContext(ctx, "SELECT MAX(id) FROM transactions").Scan(&maxID); err != nil {
		return 0, fmt.Errorf("failed to get max transaction id: %w", err)
	}
	return maxID.Int64 + 1, nil
}

func scanTransactions(rows *sql.Rows) ([]model.Transaction, error) {
	var transactions []model.Transaction

	for rows.Next() {
		var (
			txn     model.Transaction
			amount  string
			txnType string
		)
		if err := rows.Scan(&txn.ID, &txn.Date, &txn.Remark, &amount, &txn.Currency, &txnType); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		parsed, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("transaction %d has invalid amount %q: %w", txn.ID, amount, err)
		}
		txn.Amount = parsed
		txn.Type = model.TransactionType(txnType)

		transactions = append(transactions, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return transactions, nil
}
