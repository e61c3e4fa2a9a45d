package search

import (
	"strings"

	"github.com/Veraticus/fintrack/internal/model"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Date renderings searched in addition to the stored DD-MM-YYYY string.
const (
	shortDateLayout = "1/2/2006"
	longDateLayout  = "Jan 2, 2006"
)

// projector renders the searchable projections of a transaction.
type projector struct {
	group string // thousands separator
	point string // decimal separator
}

// newProjector takes the separators from the English number format. Digits
// come from the decimal itself so large amounts stay exact.
func newProjector() projector {
	p := message.NewPrinter(language.English)
	return projector{
		group: strings.Trim(p.Sprintf("%d", 1000), "0123456789"),
		point: strings.Trim(p.Sprintf("%.1f", 0.5), "0123456789"),
	}
}

// Projections returns the lower-cased searchable renderings of txn.
func Projections(txn model.Transaction) []string {
	return newProjector().projections(txn)
}

func (p projector) projections(txn model.Transaction) []string {
	out := make([]string, 0, 8)
	out = append(out,
		strings.ToLower(txn.Remark),
		strings.ToLower(txn.Type.String()),
		strings.ToLower(txn.Currency),
		txn.Amount.String(),
		p.groupedAmount(txn.Amount),
		strings.ToLower(txn.Date),
	)

	if d, err := txn.Time(); err == nil {
		out = append(out,
			d.Format(shortDateLayout),
			strings.ToLower(d.Format(longDateLayout)),
		)
	}

	return out
}

// groupedAmount renders d with two decimals and grouped thousands, e.g. -1,234.50.
func (p projector) groupedAmount(d decimal.Decimal) string {
	fixed := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	b.WriteString(sign)
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteString(p.group)
		}
		b.WriteRune(digit)
	}
	b.WriteString(p.point)
	b.WriteString(frac)
	return b.String()
}

func (p projector) matches(txn model.Transaction, normalized string) bool {
	for _, projection := range p.projections(txn) {
		if strings.Contains(projection, normalized) {
			return true
		}
	}
	return false
}
