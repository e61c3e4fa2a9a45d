// Package order sorts transactions by a single field and direction.
package order

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Veraticus/fintrack/internal/model"
)

// Sort returns a new slice with transactions ordered by key in direction dir.
// The sort is stable in both directions: transactions with equal keys keep
// their input order. The input slice is not modified.
//
// Dates compare as calendar values. Dates that cannot be parsed sort before
// every valid date. An unknown key panics.
func Sort(transactions []model.Transaction, key model.FieldKey, dir Direction) []model.Transaction {
	cmp := Comparator(key)
	if dir == Desc {
		asc := cmp
		cmp = func(a, b model.Transaction) int { return asc(b, a) }
	}

	sorted := slices.Clone(transactions)
	if sorted == nil {
		sorted = []model.Transaction{}
	}
	slices.SortStableFunc(sorted, cmp)
	return sorted
}

// SortState sorts by the key and direction held in s.
func SortState(transactions []model.Transaction, s State) []model.Transaction {
	return Sort(transactions, s.Key, s.Direction)
}

// Comparator returns the ascending comparison for key.
func Comparator(key model.FieldKey) func(a, b model.Transaction) int {
	switch key {
	case model.FieldDate:
		return compareDates
	case model.FieldAmount:
		return func(a, b model.Transaction) int { return a.Amount.Cmp(b.Amount) }
	case model.FieldRemark:
		return func(a, b model.Transaction) int { return strings.Compare(a.Remark, b.Remark) }
	case model.FieldCurrency:
		return func(a, b model.Transaction) int { return strings.Compare(a.Currency, b.Currency) }
	case model.FieldType:
		return func(a, b model.Transaction) int { return strings.Compare(string(a.Type), string(b.Type)) }
	default:
		panic(fmt.Sprintf("order: unknown sort key %q", string(key)))
	}
}

func compareDates(a, b model.Transaction) int {
	da, errA := a.Time()
	db, errB := b.Time()

	switch {
	case errA != nil && errB != nil:
		return 0
	case errA != nil:
		return -1
	case errB != nil:
		return 1
	}
	return da.Compare(db)
}
