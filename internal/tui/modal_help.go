package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

// renderHelpModal renders the help overlay using the provided viewport.
func (m *DashboardModel) renderHelpModal(vp *viewport.Model, width, height int) string {
	st := stylesFor(m.state.DarkMode)

	modalWidth := max(width-8, 30)
	modalHeight := max(height-4, 10)
	contentWidth := modalWidth - 4
	contentHeight := modalHeight - 4

	vp.Width = contentWidth
	vp.Height = contentHeight
	vp.SetContent(m.helpContent())

	contentPane := lipgloss.NewStyle().
		Width(contentWidth).
		Height(contentHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(st.palette.Border)).
		Render(vp.View())

	header := st.Title.Width(contentWidth).Render("Keyboard Shortcuts")
	statusBar := st.Muted.Render("up/down/Wheel: Scroll | ?/h: Toggle Help | ESC: Close")

	modal := lipgloss.JoinVertical(lipgloss.Left, header, contentPane, statusBar)

	finalModal := lipgloss.NewStyle().
		Width(modalWidth).
		Height(modalHeight).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(st.palette.Accent)).
		Render(modal)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, finalModal)
}

func (m *DashboardModel) helpContent() string {
	h := m.help
	h.ShowAll = true
	about := "Prices come from the CoinGecko public API. Stars are saved locally;\n" +
		"theme and currency start from the config file on every launch.\n\n"
	return about + h.FullHelpView(m.keys.FullHelp())
}
