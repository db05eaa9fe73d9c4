package tui

import (
	"fmt"
	"strings"

	"github.com/tinytelemetry/coinwatch/internal/currency"
	"github.com/tinytelemetry/coinwatch/internal/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	starOn  = "⭐"
	starOff = "☆"

	priceColWidth  = 20
	changeColWidth = 10
	mcapColWidth   = 16
	// nameColMin is the narrowest name column before optional columns drop.
	nameColMin = 14
)

// listRows is the number of coin rows that fit in a list box of height h.
func listRows(h int) int {
	return max(h-3, 1) // border top/bottom + title
}

// listPageSize is the row count of the list box in the current layout.
func (m *DashboardModel) listPageSize() int {
	return listRows(m.computeLayout().listH)
}

// scrollOffset returns the first visible row so that cursor stays in view.
func scrollOffset(cursor, offset, rows int) int {
	if cursor < offset {
		return cursor
	}
	if cursor >= offset+rows {
		return cursor - rows + 1
	}
	return offset
}

// coinIndexAt maps a screen position to a visible coin index.
func (m *DashboardModel) coinIndexAt(x, y int) (int, bool) {
	l := m.computeLayout()
	if x < l.listX || x >= l.listX+l.listW {
		return 0, false
	}
	row := y - l.listY - 2 // border + title
	rows := listRows(l.listH)
	if row < 0 || row >= rows {
		return 0, false
	}
	idx := scrollOffset(m.cursor, m.listOffset, rows) + row
	if idx >= len(m.visibleCoins()) {
		return 0, false
	}
	return idx, true
}

func (m *DashboardModel) renderCoinList(st styles, width, height int, active bool) string {
	box := st.Section
	if active {
		box = st.ActiveSection
	}
	inner := max(width-4, 10)

	coins := m.visibleCoins()
	title := fmt.Sprintf("Top %d by market cap", len(m.state.Coins))
	if m.state.Query != "" {
		title = fmt.Sprintf("%d of %d match %q", len(coins), len(m.state.Coins), m.state.Query)
	}
	lines := []string{st.Title.Render(ansi.Truncate(title, inner, "…"))}

	rows := listRows(height)
	switch {
	case len(m.state.Coins) == 0:
		lines = append(lines, st.Muted.Render("No market data. Press r to retry."))
	case len(coins) == 0:
		lines = append(lines, st.Muted.Render("No coins match your search."))
	default:
		offset := scrollOffset(m.cursor, m.listOffset, rows)
		end := min(offset+rows, len(coins))
		for i := offset; i < end; i++ {
			c := coins[i]
			lines = append(lines, m.renderCoinRow(st, c, inner, active && i == m.cursor))
		}
	}

	return box.Width(width - 2).Height(height - 2).Render(strings.Join(lines, "\n"))
}

// renderCoinRow renders one list item: star, name, price, 24h change and
// market cap. Optional columns drop as the row narrows.
func (m *DashboardModel) renderCoinRow(st styles, c model.Coin, width int, selected bool) string {
	cur := m.state.ListCurrency

	star := st.Muted.Render(starOff + " ")
	if m.state.IsWatchlisted(c.ID) {
		star = st.Star.Render(starOn)
	}

	cursor := "  "
	if selected {
		cursor = st.Cursor.Render("▶ ")
	}

	price := currency.FormatMoney(cur, c.CurrentPrice)
	change := st.changeStyle(c.PriceChangePct.IsNegative()).Render(currency.FormatChange(c.PriceChangePct))
	mcap := "MCap " + currency.FormatMarketCap(cur, c.MarketCap)

	fixed := lipgloss.Width(cursor) + 3 // star column
	nameW := width - fixed - priceColWidth - changeColWidth - mcapColWidth
	showMcap := nameW >= nameColMin
	if !showMcap {
		nameW += mcapColWidth
	}
	showChange := nameW >= nameColMin
	if !showChange {
		nameW += changeColWidth
	}
	nameW = max(nameW, 4)

	name := fmt.Sprintf("%s (%s)", c.Name, strings.ToUpper(c.Symbol))
	nameCell := lipgloss.NewStyle().Width(nameW).Render(ansi.Truncate(name, nameW-1, "…"))
	if selected {
		nameCell = st.Cursor.Width(nameW).Render(ansi.Truncate(name, nameW-1, "…"))
	}

	var b strings.Builder
	b.WriteString(cursor)
	b.WriteString(lipgloss.NewStyle().Width(3).Render(star))
	b.WriteString(nameCell)
	b.WriteString(lipgloss.NewStyle().Width(priceColWidth).Align(lipgloss.Right).Render(price))
	if showChange {
		b.WriteString(lipgloss.NewStyle().Width(changeColWidth).Align(lipgloss.Right).Render(change))
	}
	if showMcap {
		b.WriteString(st.Muted.Width(mcapColWidth).Align(lipgloss.Right).Render(mcap))
	}
	return ansi.Truncate(b.String(), width, "")
}
