package storage

import (
	"context"
	"testing"

	"github.com/Veraticus/fintrack/internal/common"
	"github.com/Veraticus/fintrack/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidateContext(t *testing.T) {
	tests := []struct {
		ctx     context.Context
		name    string
		wantErr bool
	}{
		{
			name:    "valid context",
			ctx:     context.Background(),
			wantErr: false,
		},
		{
			name:    "nil context",
			ctx:     nil,
			wantErr: true,
		},
		{
			name: "canceled context still valid",
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			}(),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateContext(tt.ctx)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateContext() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateString(t *testing.T) {
	tests := []struct {
		name      string
		str       string
		paramName string
		wantErr   bool
	}{
		{
			name:      "valid string",
			str:       "test",
			paramName: "param",
			wantErr:   false,
		},
		{
			name:      "empty string",
			str:       "",
			paramName: "param",
			wantErr:   true,
		},
		{
			name:      "whitespace only",
			str:       "   ",
			paramName: "param",
			wantErr:   true,
		},
		{
			name:      "string with spaces",
			str:       "  test  ",
			paramName: "param",
			wantErr:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateString(tt.str, tt.paramName)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateString() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				assert.ErrorIs(t, err, ErrEmptyString)
				assert.Contains(t, err.Error(), tt.paramName)
			}
		})
	}
}

func TestValidateTransactions(t *testing.T) {
	valid := model.Transaction{
		ID:       1,
		Date:     "15-01-2024",
		Remark:   "Coffee",
		Amount:   decimal.RequireFromString("-4.50"),
		Currency: "NGN",
		Type:     model.TypeDebit,
	}

	tests := []struct {
		wantErr      error
		name         string
		transactions []model.Transaction
	}{
		{
			name:         "valid transactions",
			transactions: []model.Transaction{valid},
		},
		{
			name:         "empty slice",
			transactions: []model.Transaction{},
			wantErr:      ErrEmptySlice,
		},
		{
			name:         "nil slice",
			transactions: nil,
			wantErr:      ErrEmptySlice,
		},
		{
			name: "invalid date",
			transactions: []model.Transaction{
				valid,
				func() model.Transaction {
					txn := valid
					txn.ID = 2
					txn.Date = "2024-01-15"
					return txn
				}(),
			},
			wantErr: common.ErrInvalidTransaction,
		},
		{
			name: "missing currency",
			transactions: []model.Transaction{
				func() model.Transaction {
					txn := valid
					txn.Currency = ""
					return txn
				}(),
			},
			wantErr: common.ErrInvalidTransaction,
		},
		{
			name: "unknown type",
			transactions: []model.Transaction{
				func() model.Transaction {
					txn := valid
					txn.Type = "Refund"
					return txn
				}(),
			},
			wantErr: common.ErrInvalidTransaction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTransactions(tt.transactions)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateTransactions_ReportsIndex(t *testing.T) {
	txns := []model.Transaction{
		{ID: 1, Date: "01-01-2024", Amount: decimal.NewFromInt(1), Currency: "NGN", Type: model.TypeCredit},
		{ID: 2, Date: "bad", Amount: decimal.NewFromInt(1), Currency: "NGN", Type: model.TypeCredit},
	}

	err := validateTransactions(txns)
	assert.ErrorContains(t, err, "index 1")
}
