package tui

import (
	"context"

	"github.com/Veraticus/fintrack/internal/dashboard"
	"github.com/Veraticus/fintrack/internal/tui/components"
	"github.com/Veraticus/fintrack/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Model holds the main TUI state.
type Model struct {
	ctx        context.Context
	theme      themes.Theme
	lastError  error
	dash       *dashboard.Dashboard
	config     Config
	help       help.Model
	keymap     KeyMap
	list       components.TransactionListModel
	height     int
	width      int
	showTotals bool
	loading    bool
	quitting   bool
}

// newModel creates a new model with the given configuration.
func newModel(ctx context.Context, cfg Config) Model {
	d := cfg.Dashboard
	if d == nil {
		d = dashboard.New(nil)
	}

	m := Model{
		ctx:        ctx,
		theme:      cfg.Theme,
		dash:       d,
		config:     cfg,
		help:       help.New(),
		keymap:     DefaultKeyMap(),
		list:       components.NewTransactionList(d, cfg.Theme),
		width:      cfg.Width,
		height:     cfg.Height,
		showTotals: cfg.ShowTotals,
		loading:    cfg.Source != nil,
	}
	m.handleResize()

	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	if m.config.Source == nil {
		return nil
	}
	return loadTransactions(m.ctx, m.config.Source)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd, handled := m.handleGlobalKeys(msg); handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil

	case transactionsLoadedMsg:
		m.loading = false
		m.lastError = msg.err
		if msg.err == nil {
			m.dash.SetTransactions(msg.transactions)
		}
		m.handleResize()
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleGlobalKeys handles keys that work outside the search input. While
// searching only ForceQuit is global; everything else is typed into the query.
func (m *Model) handleGlobalKeys(msg tea.KeyMsg) (tea.Cmd, bool) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		m.quitting = true
		return tea.Quit, true
	}
	if m.list.Searching() {
		return nil, false
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return tea.Quit, true

	case key.Matches(msg, m.keymap.ToggleHelp):
		m.help.ShowAll = !m.help.ShowAll
		m.handleResize()
		return nil, true

	case key.Matches(msg, m.keymap.ToggleTotals):
		m.showTotals = !m.showTotals
		m.handleResize()
		return nil, true

	case key.Matches(msg, m.keymap.Refresh):
		if m.config.Source == nil {
			return nil, true
		}
		m.loading = true
		return loadTransactions(m.ctx, m.config.Source), true
	}

	return nil, false
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.loading && len(m.dash.Transactions()) == 0 {
		return m.renderLoading()
	}
	return m.renderMain()
}

// handleResize gives the list whatever the chrome around it leaves.
func (m *Model) handleResize() {
	m.help.Width = m.width

	chrome := 1 // help line
	if m.help.ShowAll {
		chrome = 5
	}
	if m.showTotals {
		chrome += m.totalsHeight()
	}
	if m.lastError != nil {
		chrome++
	}

	m.list.Resize(m.width, max(1, m.height-chrome))
}
