package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/tinytelemetry/coinwatch/internal/currency"
	"github.com/tinytelemetry/coinwatch/internal/dashboard"

	"github.com/charmbracelet/lipgloss"
)

const (
	headerHeight     = 2
	searchHeight     = 1
	statusLineHeight = 1
	// sideBySideWidth is the narrowest terminal that shows list and chart
	// next to each other instead of stacked.
	sideBySideWidth = 110
	errorDisplayFor = 30 * time.Second
)

// layout is the computed placement of the list and detail boxes.
type layout struct {
	listX, listY, listW, listH         int
	detailX, detailY, detailW, detailH int
	showDetail                         bool
}

func (m *DashboardModel) showDetail() bool {
	return m.state.Selected != nil || m.state.SelectingID != ""
}

func (m *DashboardModel) computeLayout() layout {
	top := headerHeight + searchHeight
	bodyH := max(m.height-top-statusLineHeight, 4)
	l := layout{listY: top, listW: m.width, listH: bodyH}
	if !m.showDetail() {
		return l
	}

	l.showDetail = true
	if m.width >= sideBySideWidth {
		l.listW = m.width * 45 / 100
		l.detailX, l.detailY = l.listW, top
		l.detailW, l.detailH = m.width-l.listW, bodyH
		return l
	}
	l.listH = bodyH / 2
	l.detailY = top + l.listH
	l.detailW, l.detailH = m.width, bodyH-l.listH
	return l
}

// View renders the dashboard
func (m *DashboardModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "Initializing dashboard..."
	}
	if modal := m.TopModal(); modal != nil {
		return modal.View(m.width, m.height)
	}
	if m.state.ListStatus != dashboard.ListReady {
		return m.renderLoadingScreen()
	}
	return m.renderDashboard()
}

func (m *DashboardModel) renderDashboard() string {
	if m.height < 12 || m.width < 50 {
		return "Terminal too small. Resize to at least 50x12."
	}

	st := stylesFor(m.state.DarkMode)
	l := m.computeLayout()

	list := m.renderCoinList(st, l.listW, l.listH, m.activeSection != SectionDetail)
	body := list
	if l.showDetail {
		detail := m.renderDetail(st, l.detailW, l.detailH, m.activeSection == SectionDetail)
		if l.detailX > 0 {
			body = lipgloss.JoinHorizontal(lipgloss.Top, list, detail)
		} else {
			body = lipgloss.JoinVertical(lipgloss.Left, list, detail)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(st),
		m.renderSearchBar(st),
		body,
		m.renderStatusLine(st),
	)
}

func (m *DashboardModel) renderHeader(st styles) string {
	title := st.Title.Render("₿🚀 Crypto Tracker")

	themeIcon := "☀️"
	if !m.state.DarkMode {
		themeIcon = "🌙"
	}
	cur := m.state.Currency
	right := fmt.Sprintf("%s (%s)  %s", cur.Label(), currency.SymbolFor(cur), themeIcon)

	gap := max(m.width-lipgloss.Width(title)-lipgloss.Width(right), 1)
	line := title + strings.Repeat(" ", gap) + st.Accent.Render(right)
	return lipgloss.JoinVertical(lipgloss.Left, line, st.Subtitle.Render("Track real-time cryptocurrency prices"))
}

func (m *DashboardModel) renderSearchBar(st styles) string {
	if !m.searchActive && m.searchInput.Value() == "" {
		return st.Muted.Render("🔍 Search cryptocurrencies... (/)")
	}
	return m.searchInput.View()
}

// renderStatusLine renders the status/help line at the bottom of the screen
func (m *DashboardModel) renderStatusLine(st styles) string {
	w := max(m.width, 1)

	var left string
	if !m.searchActive {
		left = fmt.Sprintf("[%s]", m.activeSection)
	}

	var center string
	switch {
	case m.searchActive:
		center = "Type to filter • Enter: Apply • ESC: Clear"
	case w < 80:
		center = "?: Help • ↑↓ • Enter • w • c • q"
	default:
		center = m.help.ShortHelpView(m.keys.ShortHelp())
	}

	var info []string
	if m.state.Refreshing {
		info = append(info, m.spinner.View()+"refreshing")
	}
	if n := m.state.Watchlist.Len(); n > 0 {
		info = append(info, fmt.Sprintf("⭐ %d", n))
	}
	if msg := m.state.LastError; msg != "" && time.Since(m.state.LastErrorAt) < errorDisplayFor {
		info = append(info, st.Error.Render("⚠ "+msg))
	}
	right := strings.Join(info, " │ ")

	line := left
	if left != "" {
		line += " "
	}
	line += center
	gap := w - lipgloss.Width(line) - lipgloss.Width(right)
	if gap < 1 {
		// Drop the help text before the status info.
		line = left
		gap = max(w-lipgloss.Width(line)-lipgloss.Width(right), 1)
	}
	return st.Status.Width(w).MaxWidth(w).Render(line + strings.Repeat(" ", gap) + right)
}
