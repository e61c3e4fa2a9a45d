package dashboard

import (
	"fmt"

	"github.com/Veraticus/fintrack/internal/model"
	"github.com/Veraticus/fintrack/internal/order"
)

// EmptyState distinguishes why a view has no rows.
type EmptyState int

const (
	// EmptyNone indicates there are rows to display.
	EmptyNone EmptyState = iota
	// EmptyNoTransactions indicates the tracker holds no transactions at all.
	EmptyNoTransactions
	// EmptyNoResults indicates transactions exist but none match the filters.
	EmptyNoResults
)

// View is the display data of a dashboard at one point in time.
type View struct {
	Query      string
	Rows       []model.Transaction
	Columns    []model.Column
	Sort       order.State
	MatchCount int
	Total      int
	Hidden     int // rows dropped by Head or Tail
	Empty      EmptyState
	Filtering  bool // a non-blank query is active
	HasFilter  bool // a query or structured criteria are active
}

// IsEmpty returns true if there are no rows to display.
func (v View) IsEmpty() bool {
	return len(v.Rows) == 0
}

// Head keeps the first n rows. n <= 0 keeps every row.
func (v View) Head(n int) View {
	if n <= 0 || n >= len(v.Rows) {
		return v
	}
	v.Hidden += len(v.Rows) - n
	v.Rows = v.Rows[:n:n]
	return v
}

// Tail keeps the last n rows. n <= 0 keeps every row.
func (v View) Tail(n int) View {
	if n <= 0 || n >= len(v.Rows) {
		return v
	}
	v.Hidden += len(v.Rows) - n
	v.Rows = v.Rows[len(v.Rows)-n:]
	return v
}

// StatusLine summarizes the view for a header or footer.
func (v View) StatusLine() string {
	status := v.status()
	if v.Hidden > 0 {
		status += fmt.Sprintf(" (showing %d)", len(v.Rows))
	}
	return status
}

func (v View) status() string {
	switch v.Empty {
	case EmptyNoTransactions:
		return "No transactions recorded yet"
	case EmptyNoResults:
		if v.Filtering {
			return fmt.Sprintf("No transactions match %q", v.Query)
		}
		return "No transactions match the current filters"
	}

	if v.Filtering {
		return fmt.Sprintf("%d of %d transactions match %q", v.MatchCount, v.Total, v.Query)
	}
	if v.HasFilter {
		return fmt.Sprintf("%d of %d transactions", len(v.Rows)+v.Hidden, v.Total)
	}
	return fmt.Sprintf("%d transactions", v.Total)
}

// HeaderLabel returns the label of column c with the sort indicator when it is active.
func (v View) HeaderLabel(c model.Column) string {
	if c.Key == v.Sort.Key {
		return c.Label + " " + v.Sort.Direction.Indicator()
	}
	return c.Label
}

// Table renders the rows as cells, one slice per row, in column order.
func (v View) Table() [][]string {
	cells := make([][]string, len(v.Rows))
	for i, txn := range v.Rows {
		cells[i] = model.Row(v.Columns, txn)
	}
	return cells
}
