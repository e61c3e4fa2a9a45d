// Package cli renders fintrack output for the terminal using lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette, matching the TUI theme.
var (
	AccentColor = lipgloss.Color("#7c3aed") // violet
	CreditColor = lipgloss.Color("#22c55e") // green
	DebitColor  = lipgloss.Color("#ef4444") // red
	WarnColor   = lipgloss.Color("#f59e0b") // amber
	InfoColor   = lipgloss.Color("#3b82f6") // blue
	MutedColor  = lipgloss.Color("#737373")
	RuleColor   = lipgloss.Color("#404040")
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(AccentColor).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	creditStyle = lipgloss.NewStyle().Foreground(CreditColor)
	debitStyle  = lipgloss.NewStyle().Foreground(DebitColor)
	warnStyle   = lipgloss.NewStyle().Foreground(WarnColor)
	infoStyle   = lipgloss.NewStyle().Foreground(InfoColor)
	mutedStyle  = lipgloss.NewStyle().Foreground(MutedColor)
	boldStyle   = lipgloss.NewStyle().Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(RuleColor).
			Padding(0, 1)
)

// FormatSuccess renders a confirmation line.
func FormatSuccess(message string) string {
	return creditStyle.Render("✓ " + message)
}

// FormatError renders a failure line.
func FormatError(message string) string {
	return debitStyle.Render("✗ " + message)
}

// FormatWarning renders a caution line, such as an empty search result.
func FormatWarning(message string) string {
	return warnStyle.Render("! " + message)
}

// FormatInfo renders a neutral status line.
func FormatInfo(message string) string {
	return infoStyle.Render("· " + message)
}

// RenderBox frames content under a bold accent title.
func RenderBox(title, content string) string {
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.UnsetPadding().Render(title),
		content,
	))
}
