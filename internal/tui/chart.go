package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/tinytelemetry/coinwatch/internal/currency"
	"github.com/tinytelemetry/coinwatch/internal/model"

	"github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	// minChartHeight is the smallest plot that is still readable.
	minChartHeight = 5
	minChartWidth  = 20
)

// renderDetail renders the detail panel of the selected coin: a 7-day price
// chart, or the coin's static stats when no history is available.
func (m *DashboardModel) renderDetail(st styles, width, height int, active bool) string {
	box := st.Section
	if active {
		box = st.ActiveSection
	}
	inner := max(width-4, minChartWidth)
	innerH := max(height-2, 3)

	var body string
	switch d := m.state.Selected; {
	case d == nil:
		body = m.spinner.View() + " " + st.Muted.Render("Loading chart...")
	case d.HasChart():
		body = m.renderChartPanel(st, d, inner, innerH)
	default:
		body = m.renderChartUnavailable(st, d, inner)
	}

	if m.state.Selected != nil && m.state.SelectingID != "" {
		// A newer selection is loading; keep the current panel visible under it.
		body = m.spinner.View() + " " + st.Muted.Render("Loading "+m.state.SelectingID+"...") + "\n" + body
	}

	return box.Width(width - 2).Height(height - 2).MaxHeight(height).Render(body)
}

// detailHeader renders the title and the price / 24h change line.
func (m *DashboardModel) detailHeader(st styles, d *model.CoinDetail, title string, width int) string {
	c := d.Coin
	star := ""
	if m.state.IsWatchlisted(c.ID) {
		star = " " + starOn
	}
	heading := st.Title.Render(ansi.Truncate(title, width-3, "…")) + star

	price := lipgloss.NewStyle().Bold(true).Render(currency.FormatMoney(d.Currency, c.CurrentPrice))
	change := st.changeStyle(c.PriceChangePct.IsNegative()).Render(currency.FormatChange(c.PriceChangePct))
	line := price + "  " + change
	if d.Currency != m.state.Currency {
		line += "  " + st.Muted.Render("("+d.Currency.Label()+", reselect to update)")
	}
	return heading + "\n" + line
}

func (m *DashboardModel) renderChartPanel(st styles, d *model.CoinDetail, width, height int) string {
	header := m.detailHeader(st, d, fmt.Sprintf("%s Price Chart (7 Days)", d.Coin.Name), width)
	chartH := max(height-lipgloss.Height(header)-1, minChartHeight)
	return header + "\n\n" + renderPriceChart(st, d, width, chartH)
}

func (m *DashboardModel) renderChartUnavailable(st styles, d *model.CoinDetail, width int) string {
	c := d.Coin
	header := m.detailHeader(st, d, fmt.Sprintf("%s Price Information", c.Name), width)

	label := st.Muted.Width(14)
	lines := []string{
		header,
		"",
		st.Accent.Bold(true).Render("📈 Chart temporarily unavailable"),
		st.Muted.Width(width).Render(fmt.Sprintf(
			"Price data for %s is shown above. Chart will load when API limit resets.", c.Name)),
		"",
		label.Render("Market Cap") + currency.FormatMarketCap(d.Currency, c.MarketCap),
		label.Render("24h Volume") + currency.FormatVolume(d.Currency, c.TotalVolume),
	}
	return strings.Join(lines, "\n")
}

// chartBounds returns the time and value ranges of a series, widened so
// that a flat or single-point series still spans a drawable range.
func chartBounds(points []model.PricePoint) (minT, maxT time.Time, minY, maxY float64) {
	minT, maxT = points[0].Time, points[len(points)-1].Time
	minY = points[0].Price.InexactFloat64()
	maxY = minY
	for _, p := range points[1:] {
		v := p.Price.InexactFloat64()
		minY = min(minY, v)
		maxY = max(maxY, v)
	}
	if !maxT.After(minT) {
		maxT = minT.Add(time.Hour)
	}
	if maxY <= minY {
		pad := max(minY*0.01, 1e-8)
		minY, maxY = minY-pad, maxY+pad
	}
	return minT, maxT, minY, maxY
}

// renderPriceChart draws the price series as a braille line, coloured by the
// sign of the 24h change.
func renderPriceChart(st styles, d *model.CoinDetail, width, height int) string {
	minT, maxT, minY, maxY := chartBounds(d.Prices)
	cur := d.Currency

	chart := timeserieslinechart.New(width, height,
		timeserieslinechart.WithTimeRange(minT, maxT),
		timeserieslinechart.WithYRange(minY, maxY),
		timeserieslinechart.WithXLabelFormatter(timeserieslinechart.DateTimeLabelFormatter()),
		timeserieslinechart.WithYLabelFormatter(func(_ int, v float64) string {
			return currency.FormatAxisValue(cur, v)
		}),
	)
	chart.SetStyle(st.changeStyle(d.Coin.PriceChangePct.IsNegative()))
	for _, p := range d.Prices {
		chart.Push(timeserieslinechart.TimePoint{Time: p.Time, Value: p.Price.InexactFloat64()})
	}
	chart.DrawBraille()
	return chart.View()
}
