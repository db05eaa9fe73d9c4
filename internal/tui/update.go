package tui

import (
	"github.com/tinytelemetry/coinwatch/internal/dashboard"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.searchInput.Width = max(msg.Width-10, 10)
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKeyPress(msg)

	case tea.MouseMsg:
		return m, m.handleMouseEvent(msg)

	case spinner.TickMsg:
		return m, m.handleSpinnerTick(msg)

	case refreshTickMsg:
		return m, tea.Batch(m.afterIntent(m.coord.Refresh()), m.scheduleRefresh())

	case dashboard.ListLoadedMsg, dashboard.DetailLoadedMsg, dashboard.FocusDueMsg:
		cmd := m.coord.Update(msg)
		m.applyFocus()
		return m, cmd
	}

	if m.searchActive {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// afterIntent keeps the spinner running for a fetch an intent just started.
func (m *DashboardModel) afterIntent(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return tea.Batch(cmd, m.startSpinnerIfNeeded())
}

// applyFocus moves keyboard focus to the detail panel once the coordinator
// reports the focus delay as elapsed. Each request is honoured once.
func (m *DashboardModel) applyFocus() {
	f := m.state.Focus
	if !f.Fired || f.Seq == m.lastFocusSeq {
		return
	}
	m.lastFocusSeq = f.Seq
	if m.state.Selected != nil && !m.searchActive && !m.HasModal() {
		m.activeSection = SectionDetail
	}
}

func (m *DashboardModel) quit() tea.Cmd {
	m.Close()
	return tea.Quit
}

// handleKeyPress processes keyboard input
func (m *DashboardModel) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	if modal := m.TopModal(); modal != nil {
		pop, cmd := modal.Update(msg)
		if pop {
			m.PopModal()
		}
		return cmd
	}

	for _, entry := range m.inlineHandlers {
		if entry.isActive(m) {
			if handled, cmd := entry.handler.HandleKey(m, msg); handled {
				return cmd
			}
			break
		}
	}

	k := m.keys
	switch {
	case key.Matches(msg, k.ForceQuit), key.Matches(msg, k.Quit):
		return m.quit()

	case key.Matches(msg, k.Help):
		m.PushModal(NewHelpModal(m))
		return nil

	case key.Matches(msg, k.Escape):
		return m.handleEscape()

	case key.Matches(msg, k.Search):
		return m.startSearch()

	case key.Matches(msg, k.NextSection):
		if m.activeSection == SectionDetail || m.state.Selected == nil {
			m.activeSection = SectionList
		} else {
			m.activeSection = SectionDetail
		}
		return nil

	case key.Matches(msg, k.Currency):
		return m.afterIntent(m.coord.CycleCurrency())

	case key.Matches(msg, k.Theme):
		m.coord.ToggleTheme()
		return nil

	case key.Matches(msg, k.Refresh):
		return m.afterIntent(m.coord.Refresh())
	}

	if m.activeSection == SectionDetail {
		if key.Matches(msg, k.Watchlist) && m.state.Selected != nil {
			m.coord.ToggleWatchlist(m.state.Selected.Coin.ID)
		}
		return nil
	}

	switch {
	case key.Matches(msg, k.Up):
		m.moveCursor(-1)
	case key.Matches(msg, k.Down):
		m.moveCursor(1)
	case key.Matches(msg, k.PageUp):
		m.moveCursor(-m.listPageSize())
	case key.Matches(msg, k.PageDown):
		m.moveCursor(m.listPageSize())
	case key.Matches(msg, k.Home):
		m.cursor = 0
		m.clampCursor()
	case key.Matches(msg, k.End):
		m.cursor = len(m.visibleCoins()) - 1
		m.clampCursor()
	case key.Matches(msg, k.Enter):
		return m.selectCursor()
	case key.Matches(msg, k.Watchlist):
		if c, ok := m.cursorCoin(); ok {
			m.coord.ToggleWatchlist(c.ID)
		}
	}
	return nil
}

func (m *DashboardModel) handleEscape() tea.Cmd {
	switch {
	case m.activeSection == SectionDetail:
		m.activeSection = SectionList
	case m.state.Query != "":
		m.searchInput.SetValue("")
		m.coord.SetQuery("")
	default:
		m.coord.ClearSelection()
	}
	return nil
}

func (m *DashboardModel) selectCursor() tea.Cmd {
	c, ok := m.cursorCoin()
	if !ok {
		return nil
	}
	return m.afterIntent(m.coord.SelectCoin(c.ID))
}

// handleMouseEvent processes mouse interactions
func (m *DashboardModel) handleMouseEvent(msg tea.MouseMsg) tea.Cmd {
	if modal := m.TopModal(); modal != nil {
		pop, cmd := modal.Update(msg)
		if pop {
			m.PopModal()
		}
		return cmd
	}

	if msg.Action != tea.MouseActionPress {
		return nil
	}

	step := 1
	if m.reverseScrollWheel {
		step = -1
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.moveCursor(-step)
	case tea.MouseButtonWheelDown:
		m.moveCursor(step)
	case tea.MouseButtonLeft:
		if idx, ok := m.coinIndexAt(msg.X, msg.Y); ok {
			m.cursor = idx
			m.activeSection = SectionList
			return m.selectCursor()
		}
	}
	return nil
}
