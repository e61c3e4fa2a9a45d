package tui

import (
	"context"

	"github.com/Veraticus/fintrack/internal/source"
	tea "github.com/charmbracelet/bubbletea"
)

// loadTransactions reads the whole collection from src.
func loadTransactions(ctx context.Context, src source.Source) tea.Cmd {
	return func() tea.Msg {
		transactions, err := src.Load(ctx)
		return transactionsLoadedMsg{
			transactions: transactions,
			err:          err,
		}
	}
}
