package dashboard

import (
	"slices"
	"strings"

	"github.com/Veraticus/fintrack/internal/model"
	"github.com/shopspring/decimal"
)

// CurrencyTotal sums the transactions of one currency.
// The transaction type decides the sign; the stored sign of Amount is ignored.
type CurrencyTotal struct {
	Currency string
	Credits  decimal.Decimal
	Debits   decimal.Decimal
	Count    int
}

// Net returns credits minus debits.
func (c CurrencyTotal) Net() decimal.Decimal {
	return c.Credits.Sub(c.Debits)
}

// Totals computes per-currency totals of transactions, ordered by currency code.
func Totals(transactions []model.Transaction) []CurrencyTotal {
	byCurrency := make(map[string]*CurrencyTotal)

	for _, txn := range transactions {
		code := strings.ToUpper(txn.Currency)
		total, ok := byCurrency[code]
		if !ok {
			total = &CurrencyTotal{Currency: code}
			byCurrency[code] = total
		}

		total.Count++
		switch txn.Type {
		case model.TypeCredit:
			total.Credits = total.Credits.Add(txn.Amount.Abs())
		case model.TypeDebit:
			total.Debits = total.Debits.Add(txn.Amount.Abs())
		}
	}

	totals := make([]CurrencyTotal, 0, len(byCurrency))
	for _, total := range byCurrency {
		totals = append(totals, *total)
	}
	slices.SortFunc(totals, func(a, b CurrencyTotal) int {
		return strings.Compare(a.Currency, b.Currency)
	})

	return totals
}

// Totals computes per-currency totals of the rows currently displayed.
func (d *Dashboard) Totals() []CurrencyTotal {
	return Totals(d.Filtered())
}
