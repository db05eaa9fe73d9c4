package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const loadingText = "Loading cryptocurrency data..."

// renderLoadingScreen renders the full-screen loader shown while the list
// fetch is in flight.
func (m *DashboardModel) renderLoadingScreen() string {
	st := stylesFor(m.state.DarkMode)
	text := m.spinner.View() + " " + st.Muted.Italic(true).Render(loadingText)
	return lipgloss.Place(max(m.width, 1), max(m.height, 1), lipgloss.Center, lipgloss.Center, text)
}

// handleSpinnerTick advances the spinner while a fetch is in flight and
// lets the tick chain lapse otherwise.
func (m *DashboardModel) handleSpinnerTick(msg spinner.TickMsg) tea.Cmd {
	if !m.busy() {
		m.spinning = false
		return nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return cmd
}

// startSpinnerIfNeeded schedules a spinner tick if a fetch is in flight and
// no tick is pending.
func (m *DashboardModel) startSpinnerIfNeeded() tea.Cmd {
	if m.spinning || !m.busy() {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}
