package tui

import (
	"strings"

	"github.com/Veraticus/fintrack/internal/cli"
	"github.com/charmbracelet/lipgloss"
)

// renderLoading renders the loading screen.
func (m Model) renderLoading() string {
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		m.theme.Title.Render("fintrack"),
		"",
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Loading transactions..."),
	)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}

// renderMain renders the list with the optional totals panel, the last
// load error and the help line.
func (m Model) renderMain() string {
	sections := []string{m.list.View()}

	if m.showTotals {
		if totals := m.renderTotals(); totals != "" {
			sections = append(sections, totals)
		}
	}

	if m.lastError != nil {
		sections = append(sections, m.theme.StatusWarning.Render("Load failed: "+m.lastError.Error()))
	}

	sections = append(sections, m.help.View(m.keymap))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderTotals renders per-currency totals of the displayed rows.
func (m Model) renderTotals() string {
	return cli.RenderTotals(m.dash.Totals())
}

// totalsHeight is the number of lines the totals panel takes.
func (m Model) totalsHeight() int {
	totals := m.renderTotals()
	if totals == "" {
		return 0
	}
	return strings.Count(totals, "\n") + 1
}
