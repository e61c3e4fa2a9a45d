package dashboard

import (
	"time"

	"github.com/Veraticus/fintrack/internal/model"
	"github.com/shopspring/decimal"
)

// Summary describes a set of transactions at a glance.
type Summary struct {
	Earliest   string // DD-MM-YYYY, empty when no date parses
	Latest     string
	ByCurrency []CurrencyTotal
	Count      int
	Undated    int
}

// Average returns the mean transaction size, ignoring sign.
func (c CurrencyTotal) Average() decimal.Decimal {
	if c.Count == 0 {
		return decimal.Zero
	}
	return c.Credits.Add(c.Debits).DivRound(decimal.NewFromInt(int64(c.Count)), 2)
}

// Describe summarizes transactions: how many, the calendar range they span
// and per-currency totals.
func Describe(transactions []model.Transaction) Summary {
	summary := Summary{
		Count:      len(transactions),
		ByCurrency: Totals(transactions),
	}

	var earliest, latest time.Time
	for _, txn := range transactions {
		when, err := txn.Time()
		if err != nil {
			summary.Undated++
			continue
		}
		if earliest.IsZero() || when.Before(earliest) {
			earliest = when
		}
		if latest.IsZero() || when.After(latest) {
			latest = when
		}
	}

	if !earliest.IsZero() {
		summary.Earliest = model.FormatDate(earliest)
		summary.Latest = model.FormatDate(latest)
	}
	return summary
}

// Describe summarizes the transactions matching the current query and criteria.
func (d *Dashboard) Describe() Summary {
	return Describe(d.Filtered())
}
