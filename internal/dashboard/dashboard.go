// Package dashboard composes the query filter and the sort engine into the
// state container that transaction views render from.
package dashboard

import (
	"log/slog"

	"github.com/Veraticus/fintrack/internal/model"
	"github.com/Veraticus/fintrack/internal/order"
	"github.com/Veraticus/fintrack/internal/search"
)

// Dashboard owns the query and sort state of one transaction view.
// It is not safe for concurrent use; the owning view is its only writer.
type Dashboard struct {
	logger   *slog.Logger
	all      []model.Transaction
	columns  []model.Column
	query    string
	criteria search.Criteria
	sort     order.State

	revision uint64 // bumped when the collection or criteria change
	filtered filterMemo
	sorted   sortMemo
}

type filterMemo struct {
	result   []model.Transaction
	query    string
	revision uint64
	seq      uint64 // identifies this filtered collection for the sort memo
	valid    bool
}

type sortMemo struct {
	result []model.Transaction
	state  order.State
	seq    uint64
	valid  bool
}

// Option is a functional option for configuring a Dashboard.
type Option func(*Dashboard)

// WithSort sets the initial sort state.
func WithSort(s order.State) Option {
	return func(d *Dashboard) {
		d.sort = s
	}
}

// WithQuery sets the initial query.
func WithQuery(q string) Option {
	return func(d *Dashboard) {
		d.query = q
	}
}

// WithCriteria sets structured filters applied before the query.
func WithCriteria(c search.Criteria) Option {
	return func(d *Dashboard) {
		d.criteria = c
	}
}

// WithColumns replaces the default column configuration.
func WithColumns(columns []model.Column) Option {
	return func(d *Dashboard) {
		d.columns = columns
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dashboard) {
		d.logger = logger
	}
}

// New creates a dashboard over transactions with an empty query and the
// default sort (date descending).
func New(transactions []model.Transaction, opts ...Option) *Dashboard {
	d := &Dashboard{
		all:     transactions,
		columns: model.DefaultColumns(),
		sort:    order.DefaultState(),
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// SetTransactions replaces the whole collection.
func (d *Dashboard) SetTransactions(transactions []model.Transaction) {
	d.all = transactions
	d.revision++
}

// Transactions returns the unfiltered collection.
func (d *Dashboard) Transactions() []model.Transaction {
	return d.all
}

// SetQuery sets the free-text query.
func (d *Dashboard) SetQuery(q string) {
	d.query = q
}

// Query returns the raw query as last set.
func (d *Dashboard) Query() string {
	return d.query
}

// SetCriteria replaces the structured filters.
func (d *Dashboard) SetCriteria(c search.Criteria) {
	d.criteria = c
	d.revision++
}

// Criteria returns the structured filters.
func (d *Dashboard) Criteria() search.Criteria {
	return d.criteria
}

// SelectColumn applies a header click on key and returns the new sort state.
func (d *Dashboard) SelectColumn(key model.FieldKey) order.State {
	d.sort = d.sort.Select(key)
	d.logger.Debug("Sort changed", "sort", d.sort.String())
	return d.sort
}

// SetSort replaces the sort state.
func (d *Dashboard) SetSort(s order.State) {
	d.sort = s
}

// SortState returns the active sort.
func (d *Dashboard) SortState() order.State {
	return d.sort
}

// Columns returns the column configuration.
func (d *Dashboard) Columns() []model.Column {
	return d.columns
}

// Filtering reports whether a non-blank query is active.
func (d *Dashboard) Filtering() bool {
	return search.Normalize(d.query) != ""
}

// Filtered returns the transactions matching the criteria and query, in
// collection order. With neither set it returns the collection itself.
func (d *Dashboard) Filtered() []model.Transaction {
	normalized := search.Normalize(d.query)
	if d.filtered.valid && d.filtered.revision == d.revision && d.filtered.query == normalized {
		return d.filtered.result
	}

	result := search.Filter(d.criteria.Apply(d.all), normalized)
	d.filtered = filterMemo{
		result:   result,
		query:    normalized,
		revision: d.revision,
		seq:      d.filtered.seq + 1,
		valid:    true,
	}

	d.logger.Debug("Filtered transactions",
		"query", normalized,
		"matched", len(result),
		"total", len(d.all))

	return result
}

// Rows returns the filtered transactions in display order.
func (d *Dashboard) Rows() []model.Transaction {
	filtered := d.Filtered()
	if d.sorted.valid && d.sorted.seq == d.filtered.seq && d.sorted.state == d.sort {
		return d.sorted.result
	}

	result := order.SortState(filtered, d.sort)
	d.sorted = sortMemo{
		result: result,
		state:  d.sort,
		seq:    d.filtered.seq,
		valid:  true,
	}

	return result
}

// MatchCount returns the number of matching transactions and whether a
// query is active. The count is only meaningful when active is true.
func (d *Dashboard) MatchCount() (count int, active bool) {
	if !d.Filtering() {
		return 0, false
	}
	return len(d.Filtered()), true
}

// View returns a snapshot of everything a renderer needs.
func (d *Dashboard) View() View {
	rows := d.Rows()
	count, filtering := d.MatchCount()

	v := View{
		Rows:       rows,
		Columns:    d.columns,
		Query:      d.query,
		Sort:       d.sort,
		Filtering:  filtering,
		HasFilter:  filtering || !d.criteria.IsZero(),
		MatchCount: count,
		Total:      len(d.all),
	}

	switch {
	case len(d.all) == 0:
		v.Empty = EmptyNoTransactions
	case len(rows) == 0:
		v.Empty = EmptyNoResults
	default:
		v.Empty = EmptyNone
	}

	return v
}
