// Package search filters transactions by a free-text query.
//
// A query matches a transaction when any of its searchable projections
// (remark, type, currency, amount and date renderings) contains the
// normalized query as a substring.
package search

import (
	"strings"

	"github.com/Veraticus/fintrack/internal/model"
)

// Normalize trims and lower-cases a raw query.
func Normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Filter returns the transactions matching query, in input order.
//
// An empty or whitespace-only query returns transactions itself, so callers
// can detect that no filtering happened.
func Filter(transactions []model.Transaction, query string) []model.Transaction {
	normalized := Normalize(query)
	if normalized == "" {
		return transactions
	}

	p := newProjector()
	filtered := make([]model.Transaction, 0, len(transactions))
	for _, txn := range transactions {
		if p.matches(txn, normalized) {
			filtered = append(filtered, txn)
		}
	}

	return filtered
}

// Matches reports whether txn matches an already normalized query.
func Matches(txn model.Transaction, normalized string) bool {
	if normalized == "" {
		return true
	}
	return newProjector().matches(txn, normalized)
}
