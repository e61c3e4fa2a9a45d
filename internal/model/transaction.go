package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the fixed textual format transaction dates are stored in (DD-MM-YYYY).
const DateLayout = "02-01-2006"

// ErrUnknownTransactionType is returned when a transaction type is not Credit or Debit.
var ErrUnknownTransactionType = errors.New("unknown transaction type")

// TransactionType is the kind of a transaction. It decides the sign
// convention, not the sign of Amount.
type TransactionType string

// Transaction types.
const (
	TypeCredit TransactionType = "Credit"
	TypeDebit  TransactionType = "Debit"
)

// TransactionTypes lists every known transaction type.
func TransactionTypes() []TransactionType {
	return []TransactionType{TypeCredit, TypeDebit}
}

// ParseTransactionType parses a transaction type case-insensitively.
// The original fintrack categories "income" and "expenses" are accepted as aliases.
func ParseTransactionType(s string) (TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "credit", "income":
		return TypeCredit, nil
	case "debit", "expense", "expenses":
		return TypeDebit, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTransactionType, s)
	}
}

// String returns the display name of the type.
func (t TransactionType) String() string {
	return string(t)
}

// Transaction represents a single financial ledger entry.
type Transaction struct {
	Date     string          `json:"date" yaml:"date"`
	Remark   string          `json:"remark" yaml:"remark"`
	Currency string          `json:"currency" yaml:"currency"`
	Type     TransactionType `json:"type" yaml:"type"`
	Amount   decimal.Decimal `json:"amount" yaml:"amount"`
	ID       int64           `json:"id" yaml:"id"`
}

// Time parses the stored date into a calendar value.
func (t Transaction) Time() (time.Time, error) {
	parsed, err := time.Parse(DateLayout, t.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q for transaction %d: %w", t.Date, t.ID, err)
	}
	return parsed, nil
}

// Validate checks that the transaction is well formed.
func (t Transaction) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("transaction id must be positive, got %d", t.ID)
	}
	if _, err := t.Time(); err != nil {
		return err
	}
	if _, err := ParseTransactionType(string(t.Type)); err != nil {
		return fmt.Errorf("transaction %d: %w", t.ID, err)
	}
	if strings.TrimSpace(t.Currency) == "" {
		return fmt.Errorf("transaction %d: currency is required", t.ID)
	}
	return nil
}

// FormatDate renders a calendar date in the stored layout.
func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}
