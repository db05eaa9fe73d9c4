package tui

import tea "github.com/charmbracelet/bubbletea"

type searchInputHandler struct{}

func (h searchInputHandler) HandleKey(m *DashboardModel, msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return true, m.quit()
	case "escape", "esc":
		m.stopSearch()
		m.searchInput.SetValue("")
		m.coord.SetQuery("")
		return true, nil
	case "enter":
		// Keep the query applied and hand the keyboard back to the list.
		m.stopSearch()
		return true, nil
	case "up", "down":
		m.stopSearch()
		return false, nil
	default:
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		m.coord.SetQuery(m.searchInput.Value())
		m.cursor, m.listOffset = 0, 0
		return true, cmd
	}
}

func (h searchInputHandler) HandleMouse(_ *DashboardModel, _ tea.MouseMsg) (bool, tea.Cmd) {
	return false, nil
}

func (m *DashboardModel) startSearch() tea.Cmd {
	m.searchActive = true
	m.activeSection = SectionSearch
	return m.searchInput.Focus()
}

func (m *DashboardModel) stopSearch() {
	m.searchActive = false
	m.searchInput.Blur()
	m.activeSection = SectionList
}
