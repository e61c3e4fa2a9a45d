// Package components contains the bubbletea components of the fintrack TUI.
package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/fintrack/internal/dashboard"
	"github.com/Veraticus/fintrack/internal/model"
	"github.com/Veraticus/fintrack/internal/tui/themes"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ListMode represents the current mode of the list.
type ListMode int

// List modes.
const (
	ModeNormal ListMode = iota
	ModeSearch
)

// cellPadding is the horizontal padding bubbles/table adds around each cell.
const cellPadding = 2

// TransactionListModel shows the dashboard's rows as a table with a live
// search input and header-driven sorting.
type TransactionListModel struct {
	theme       themes.Theme
	dash        *dashboard.Dashboard
	view        dashboard.View
	searchInput textinput.Model
	table       table.Model
	mode        ListMode
	focusCol    int
	width       int
	height      int
}

// NewTransactionList creates a transaction list over d.
func NewTransactionList(d *dashboard.Dashboard, theme themes.Theme) TransactionListModel {
	t := table.New(
		table.WithFocused(true),
		table.WithHeight(20),
	)

	s := table.DefaultStyles()
	s.Header = theme.Header
	s.Selected = theme.Selected
	t.SetStyles(s)

	searchInput := textinput.New()
	searchInput.Prompt = "/ "
	searchInput.PromptStyle = theme.SearchPrompt
	searchInput.Placeholder = "Search transactions..."
	searchInput.CharLimit = 64
	searchInput.SetValue(d.Query())

	m := TransactionListModel{
		theme:       theme,
		dash:        d,
		table:       t,
		searchInput: searchInput,
		mode:        ModeNormal,
		focusCol:    columnIndex(d.Columns(), d.SortState().Key),
		width:       80,
		height:      24,
	}
	m.refresh()

	return m
}

// Update handles messages.
func (m TransactionListModel) Update(msg tea.Msg) (TransactionListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode == ModeSearch {
			return m, m.handleSearchMode(msg)
		}
		if cmd, handled := m.handleNormalMode(msg); handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.Resize(msg.Width, msg.Height)
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// handleNormalMode handles key presses outside search. It reports whether
// the key was consumed; unconsumed keys go to the table for navigation.
func (m *TransactionListModel) handleNormalMode(msg tea.KeyMsg) (tea.Cmd, bool) {
	columns := m.dash.Columns()

	switch key := msg.String(); key {
	case "/":
		m.mode = ModeSearch
		m.searchInput.CursorEnd()
		return m.searchInput.Focus(), true

	case "esc":
		if m.dash.Query() != "" {
			m.setQuery("")
		}
		return nil, true

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		idx := int(key[0] - '1')
		if idx < len(columns) {
			m.focusCol = idx
			m.selectColumn(idx)
		}
		return nil, true

	case "left", "h":
		if len(columns) > 0 {
			m.focusCol = (m.focusCol - 1 + len(columns)) % len(columns)
			m.refresh()
		}
		return nil, true

	case "right", "l":
		if len(columns) > 0 {
			m.focusCol = (m.focusCol + 1) % len(columns)
			m.refresh()
		}
		return nil, true

	case "s":
		m.selectColumn(m.focusCol)
		return nil, true
	}

	return nil, false
}

// handleSearchMode routes keys to the search input and applies the query on
// every edit.
func (m *TransactionListModel) handleSearchMode(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		m.mode = ModeNormal
		m.searchInput.Blur()
		return nil

	case "esc":
		m.mode = ModeNormal
		m.searchInput.Blur()
		m.setQuery("")
		return nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() != m.dash.Query() {
		m.applyQuery(m.searchInput.Value())
	}
	return cmd
}

func (m *TransactionListModel) setQuery(q string) {
	m.searchInput.SetValue(q)
	m.applyQuery(q)
}

// applyQuery filters the dashboard and moves the cursor back to the first match.
func (m *TransactionListModel) applyQuery(q string) {
	m.dash.SetQuery(q)
	m.refresh()
	m.table.GotoTop()
}

func (m *TransactionListModel) selectColumn(idx int) {
	columns := m.dash.Columns()
	if idx < 0 || idx >= len(columns) {
		return
	}
	m.dash.SelectColumn(columns[idx].Key)
	m.refresh()
}

// refresh recomputes the view and pushes headers and rows into the table.
// A different row set sends the cursor back to the first row, so the visible
// window never starts past the last row.
func (m *TransactionListModel) refresh() {
	m.view = m.dash.View()
	m.table.SetColumns(m.buildColumns())

	rows := m.buildRows()
	changed := len(rows) != len(m.table.Rows())
	m.table.SetRows(rows)
	m.table.SetCursor(min(m.table.Cursor(), max(0, len(rows)-1)))
	if changed {
		m.table.GotoTop()
	}
}

// View renders the transaction list.
func (m TransactionListModel) View() string {
	if m.height < 6 {
		return "Terminal too small"
	}

	sections := []string{m.renderHeader()}
	if m.mode == ModeSearch || m.dash.Query() != "" {
		sections = append(sections, m.searchInput.View())
	}

	switch m.view.Empty {
	case dashboard.EmptyNoTransactions:
		sections = append(sections, "", m.theme.StatusInfo.Render(m.view.StatusLine()))
	case dashboard.EmptyNoResults:
		sections = append(sections, "", m.theme.StatusWarning.Render(m.view.StatusLine()))
	default:
		sections = append(sections, m.table.View())
	}

	sections = append(sections, m.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the title and match status.
func (m TransactionListModel) renderHeader() string {
	title := m.theme.Title.Render("Transactions")

	status := m.view.StatusLine()
	if m.view.Empty != dashboard.EmptyNone {
		status = fmt.Sprintf("%d transactions", m.view.Total)
	}
	status += fmt.Sprintf(" | Sort: %s %s", m.view.Sort.Key, m.view.Sort.Direction.Indicator())

	return lipgloss.JoinVertical(lipgloss.Left, title, m.theme.Subtitle.Render(status))
}

// renderFooter renders key hints for the current mode.
func (m TransactionListModel) renderFooter() string {
	var hints []string

	switch m.mode {
	case ModeNormal:
		hints = []string{
			"[↑↓] Navigate",
			"[/] Search",
			"[1-5] Sort",
			"[←→ s] Sort focused",
			"[?] Help",
		}
	case ModeSearch:
		hints = []string{
			"[Enter] Keep",
			"[Esc] Clear",
		}
	}

	return lipgloss.NewStyle().Foreground(m.theme.Muted).Render(strings.Join(hints, "  "))
}

// buildColumns builds table columns with the sort indicator on the active
// column and a marker on the focused one.
func (m TransactionListModel) buildColumns() []table.Column {
	columns := m.dash.Columns()
	widths := m.columnWidths(columns)

	out := make([]table.Column, len(columns))
	for i, c := range columns {
		title := m.view.HeaderLabel(c)
		if i == m.focusCol {
			title = "›" + title
		}
		out[i] = table.Column{Title: title, Width: widths[i]}
	}
	return out
}

// buildRows builds rows for the table.
func (m TransactionListModel) buildRows() []table.Row {
	columns := m.dash.Columns()
	widths := m.columnWidths(columns)

	rows := make([]table.Row, 0, len(m.view.Rows))
	for _, txn := range m.view.Rows {
		cells := model.Row(columns, txn)
		for i, c := range columns {
			if c.Key == model.FieldAmount {
				cells[i] = fmt.Sprintf("%*s", widths[i], cells[i])
			} else {
				cells[i] = truncate(cells[i], widths[i])
			}
		}
		rows = append(rows, table.Row(cells))
	}
	return rows
}

// columnWidths fits the configured widths into the component width, giving
// the remark column whatever is left over.
func (m TransactionListModel) columnWidths(columns []model.Column) []int {
	widths := make([]int, len(columns))
	fixed := 0
	remark := -1
	for i, c := range columns {
		widths[i] = c.Width
		if c.Key == model.FieldRemark {
			remark = i
			continue
		}
		fixed += c.Width + cellPadding
	}

	if remark >= 0 {
		available := m.width - 4 - fixed - cellPadding
		widths[remark] = max(12, available)
	}
	return widths
}

// Resize updates the component size.
func (m *TransactionListModel) Resize(width, height int) {
	m.width = width
	m.height = height

	// title, status, search line, footer and the table header
	m.table.SetHeight(max(1, height-6))
	m.refresh()
}

// Searching reports whether the search input has focus.
func (m TransactionListModel) Searching() bool {
	return m.mode == ModeSearch
}

// Cursor returns the index of the highlighted row.
func (m TransactionListModel) Cursor() int {
	return m.table.Cursor()
}

// FocusedColumn returns the index of the column "s" would sort by.
func (m TransactionListModel) FocusedColumn() int {
	return m.focusCol
}

// Dashboard returns the dashboard the list renders.
func (m TransactionListModel) Dashboard() *dashboard.Dashboard {
	return m.dash
}

func columnIndex(columns []model.Column, key model.FieldKey) int {
	for i, c := range columns {
		if c.Key == key {
			return i
		}
	}
	return 0
}

// Helper to truncate strings.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen || maxLen < 4 {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
