package cli

import (
	"fmt"
	"strings"

	"github.com/Veraticus/fintrack/internal/dashboard"
	"github.com/Veraticus/fintrack/internal/model"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// RenderView renders the composed rows of a dashboard view as a table with
// its status line underneath. Empty views render only the status line.
func RenderView(view dashboard.View) string {
	status := view.StatusLine()

	switch view.Empty {
	case dashboard.EmptyNoTransactions:
		return FormatInfo(status)
	case dashboard.EmptyNoResults:
		return FormatWarning(status)
	}

	headers := make([]string, len(view.Columns))
	for i, c := range view.Columns {
		headers[i] = view.HeaderLabel(c)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(RuleColor)).
		Headers(headers...).
		Rows(view.Table()...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			style := cellStyle
			if col >= len(view.Columns) || row < 0 || row >= len(view.Rows) {
				return style
			}
			if view.Columns[col].Key == model.FieldAmount {
				style = style.Align(lipgloss.Right)
				if view.Rows[row].Type == model.TypeDebit {
					return style.Foreground(DebitColor)
				}
				return style.Foreground(CreditColor)
			}
			return style
		})

	return t.Render() + "\n" + mutedStyle.Render(status)
}

// RenderTotals renders per-currency credit, debit and net sums in a box.
func RenderTotals(totals []dashboard.CurrencyTotal) string {
	if len(totals) == 0 {
		return ""
	}

	lines := make([]string, 0, len(totals))
	for _, total := range totals {
		lines = append(lines, fmt.Sprintf("%-4s %s %s  %s %s  %s %s  (%d)",
			total.Currency,
			mutedStyle.Render("in"), creditStyle.Render(total.Credits.StringFixed(2)),
			mutedStyle.Render("out"), debitStyle.Render(total.Debits.StringFixed(2)),
			mutedStyle.Render("net"), boldStyle.Render(total.Net().StringFixed(2)),
			total.Count))
	}

	return RenderBox("Totals", strings.Join(lines, "\n"))
}

// RenderSummary renders a describe summary: record count, date range and
// per-currency totals with the average transaction size.
func RenderSummary(summary dashboard.Summary) string {
	if summary.Count == 0 {
		return FormatInfo("No transactions to describe")
	}

	lines := []string{fmt.Sprintf("%s %d", mutedStyle.Render("records"), summary.Count)}
	if summary.Earliest != "" {
		lines = append(lines, fmt.Sprintf("%s %s to %s", mutedStyle.Render("period "), summary.Earliest, summary.Latest))
	}
	if summary.Undated > 0 {
		lines = append(lines, warnStyle.Render(fmt.Sprintf("%d records have unreadable dates", summary.Undated)))
	}

	for _, total := range summary.ByCurrency {
		lines = append(lines, fmt.Sprintf("%-4s %s %s  %s %s  %s %s  (%d)",
			total.Currency,
			mutedStyle.Render("in"), creditStyle.Render(total.Credits.StringFixed(2)),
			mutedStyle.Render("out"), debitStyle.Render(total.Debits.StringFixed(2)),
			mutedStyle.Render("avg"), boldStyle.Render(total.Average().StringFixed(2)),
			total.Count))
	}

	return RenderBox("Summary", strings.Join(lines, "\n"))
}
