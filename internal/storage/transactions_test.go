package storage

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Veraticus/fintrack/internal/common"
	"github.com/Veraticus/fintrack/internal/model"
	"github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLedger() []model.Transaction {
	return []model.Transaction{
		{ID: 2, Date: "02-01-2025", Remark: "Groceries", Amount: decimal.RequireFromString("-50.75"), Currency: "NGN", Type: model.TypeDebit},
		{ID: 1, Date: "01-01-2025", Remark: "Salary", Amount: decimal.NewFromInt(100), Currency: "NGN", Type: model.TypeCredit},
		{ID: 3, Date: "03-01-2025", Remark: "", Amount: decimal.RequireFromString("0.10"), Currency: "USD", Type: model.TypeCredit},
	}
}

func TestSaveAndListTransactions(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	require.NoError(t, s.SaveTransactions(ctx, sampleLedger()))

	got, err := s.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, "Salary", got[0].Remark)
	assert.Equal(t, model.TypeCredit, got[0].Type)

	assert.Equal(t, int64(2), got[1].ID)
	assert.True(t, got[1].Amount.Equal(decimal.RequireFromString("-50.75")), got[1].Amount.String())
	assert.Equal(t, "02-01-2025", got[1].Date)

	assert.Equal(t, "", got[2].Remark)
	assert.Equal(t, "0.1", got[2].Amount.String())

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestSaveTransactions_UpsertsByID(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	require.NoError(t, s.SaveTransactions(ctx, sampleLedger()))

	updated := sampleLedger()[1]
	updated.Remark = "Salary (corrected)"
	updated.Amount = decimal.NewFromInt(120)
	require.NoError(t, s.SaveTransactions(ctx, []model.Transaction{updated}))

	got, err := s.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Salary (corrected)", got[0].Remark)
	assert.True(t, got[0].Amount.Equal(decimal.NewFromInt(120)))
}

func TestSaveTransactions_Validation(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	assert.ErrorIs(t, s.SaveTransactions(ctx, nil), ErrEmptySlice)

	invalid := sampleLedger()
	invalid[2].Date = "2025-01-03"
	err := s.SaveTransactions(ctx, invalid)
	assert.ErrorIs(t, err, common.ErrInvalidTransaction)

	// Nothing from the rejected batch was written.
	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestNextID(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	next, err := s.NextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), next)

	require.NoError(t, s.SaveTransactions(ctx, sampleLedger()))

	next, err = s.NextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), next)
}

func TestListTransactions_Empty(t *testing.T) {
	got, err := newTestStorage(t).ListTransactions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestIsBusy(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want bool
	}{
		{name: "busy", err: sqlite3.Error{Code: sqlite3.ErrBusy}, want: true},
		{name: "locked wrapped", err: fmt.Errorf("failed to save transaction 1: %w", sqlite3.Error{Code: sqlite3.ErrLocked}), want: true},
		{name: "constraint", err: sqlite3.Error{Code: sqlite3.ErrConstraint}},
		{name: "plain", err: errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isBusy(tt.err))
		})
	}
}

func TestSaveTransactions_CanceledContext(t *testing.T) {
	s := newTestStorage(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Error(t, s.SaveTransactions(ctx, sampleLedger()))

	count, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}
