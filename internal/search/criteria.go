package search

import (
	"fmt"
	"time"

	"github.com/Veraticus/fintrack/internal/common"
	"github.com/Veraticus/fintrack/internal/model"
)

// Criteria holds structured filters applied before the text query.
// Nil fields are not set.
type Criteria struct {
	Type *model.TransactionType
	From *time.Time // inclusive
	To   *time.Time // inclusive
}

// IsZero reports whether no criterion is set.
func (c Criteria) IsZero() bool {
	return c.Type == nil && c.From == nil && c.To == nil
}

// Validate checks that the date bounds are ordered.
func (c Criteria) Validate() error {
	if c.From != nil && c.To != nil && c.To.Before(*c.From) {
		return fmt.Errorf("%w: %s is before %s", common.ErrInvalidDateRange,
			model.FormatDate(*c.To), model.FormatDate(*c.From))
	}
	return nil
}

// Apply returns the transactions satisfying every set criterion, in input order.
// With no criterion set it returns transactions itself.
// Transactions whose date cannot be parsed never satisfy a date bound.
func (c Criteria) Apply(transactions []model.Transaction) []model.Transaction {
	if c.IsZero() {
		return transactions
	}

	filtered := make([]model.Transaction, 0, len(transactions))
	for _, txn := range transactions {
		if c.matches(txn) {
			filtered = append(filtered, txn)
		}
	}
	return filtered
}

func (c Criteria) matches(txn model.Transaction) bool {
	if c.Type != nil && txn.Type != *c.Type {
		return false
	}

	if c.From == nil && c.To == nil {
		return true
	}

	d, err := txn.Time()
	if err != nil {
		return false
	}
	if c.From != nil && d.Before(*c.From) {
		return false
	}
	if c.To != nil && d.After(*c.To) {
		return false
	}
	return true
}

// ParseCriteria builds criteria from CLI-style values. Empty strings are unset.
// Dates use the stored DD-MM-YYYY layout.
func ParseCriteria(txnType, from, to string) (Criteria, error) {
	var c Criteria

	if txnType != "" {
		parsed, err := model.ParseTransactionType(txnType)
		if err != nil {
			return Criteria{}, fmt.Errorf("invalid type filter: %w", err)
		}
		c.Type = &parsed
	}

	if from != "" {
		d, err := time.Parse(model.DateLayout, from)
		if err != nil {
			return Criteria{}, fmt.Errorf("invalid start date %q (expected DD-MM-YYYY): %w", from, err)
		}
		c.From = &d
	}

	if to != "" {
		d, err := time.Parse(model.DateLayout, to)
		if err != nil {
			return Criteria{}, fmt.Errorf("invalid end date %q (expected DD-MM-YYYY): %w", to, err)
		}
		c.To = &d
	}

	if err := c.Validate(); err != nil {
		return Criteria{}, err
	}
	return c, nil
}
