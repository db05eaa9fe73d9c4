package tui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tinytelemetry/coinwatch/internal/dashboard"
	"github.com/tinytelemetry/coinwatch/internal/model"
	"github.com/tinytelemetry/coinwatch/internal/watchlist"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
)

type stubMarket struct {
	coins      []model.Coin
	historyErr error
}

func (s *stubMarket) FetchMarketList(_ context.Context, _ model.Currency) ([]model.Coin, error) {
	return s.coins, nil
}

func (s *stubMarket) FetchPriceHistory(_ context.Context, _ string, _ model.Currency) ([]model.PricePoint, error) {
	if s.historyErr != nil {
		return nil, s.historyErr
	}
	start := time.Date(2026, 10, 7, 0, 0, 0, 0, time.UTC)
	points := make([]model.PricePoint, 24)
	for i := range points {
		points[i] = model.PricePoint{
			Time:  start.Add(time.Duration(i) * 7 * time.Hour),
			Price: decimal.NewFromInt(int64(66000 + i*50)),
		}
	}
	return points, nil
}

func testCoins() []model.Coin {
	return []model.Coin{
		{
			ID: "bitcoin", Name: "Bitcoin", Symbol: "btc",
			CurrentPrice:   decimal.RequireFromString("67000"),
			PriceChangePct: decimal.RequireFromString("1.25"),
			MarketCap:      decimal.RequireFromString("1300000000000"),
			TotalVolume:    decimal.NewNullDecimal(decimal.RequireFromString("35000000000")),
		},
		{
			ID: "ethereum", Name: "Ethereum", Symbol: "eth",
			CurrentPrice:   decimal.RequireFromString("3500.5"),
			PriceChangePct: decimal.RequireFromString("-2.5"),
			MarketCap:      decimal.RequireFromString("420000000000"),
		},
		{
			ID: "dogecoin", Name: "Dogecoin", Symbol: "doge",
			CurrentPrice:   decimal.RequireFromString("0.1234"),
			PriceChangePct: decimal.Zero,
			MarketCap:      decimal.RequireFromString("18000000000"),
		},
	}
}

func newTestModel(t *testing.T, market *stubMarket) (*DashboardModel, *watchlist.Store) {
	t.Helper()
	kv, err := watchlist.OpenFileKV(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("OpenFileKV: %v", err)
	}
	store := watchlist.NewStore(kv, "", nil)
	coord := dashboard.New(market, store, dashboard.Options{DarkMode: true})
	m := NewDashboardModel(coord, Config{})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, store
}

// start runs the first list fetch synchronously.
func start(t *testing.T, m *DashboardModel) {
	t.Helper()
	m.Update(m.coord.Start()())
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestView_LoadingScreenUntilListLands(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, &stubMarket{coins: testCoins()})
	cmd := m.coord.Start()
	if got := m.View(); !strings.Contains(got, loadingText) {
		t.Fatalf("view while loading missing %q", loadingText)
	}

	m.Update(cmd())
	if got := m.View(); strings.Contains(got, loadingText) {
		t.Fatal("loader still shown after list loaded")
	}
}

func TestView_RendersCoinRows(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, &stubMarket{coins: testCoins()})
	start(t, m)

	view := m.View()
	for _, want := range []string{
		"Crypto Tracker",
		"Bitcoin (BTC)",
		"$67,000.00",
		"1.25%",
		"-2.50%",
		"$1300.00B",
		"$0.12340000",
		starOff,
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestView_EmptyListAfterFailure(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, &stubMarket{})
	start(t, m)

	if got := m.View(); !strings.Contains(got, "No market data") {
		t.Fatal("empty list placeholder not rendered")
	}
}

func TestKeys_ToggleWatchlistPersists(t *testing.T) {
	t.Parallel()

	m, store := newTestModel(t, &stubMarket{coins: testCoins()})
	start(t, m)

	m.Update(keyRunes("w"))
	if !m.state.IsWatchlisted("bitcoin") {
		t.Fatal("bitcoin not starred")
	}
	if got := store.Load().IDs(); len(got) != 1 || got[0] != "bitcoin" {
		t.Fatalf("persisted = %v, want [bitcoin]", got)
	}
	if !strings.Contains(m.View(), starOn) {
		t.Fatal("star not rendered")
	}

	m.Update(keyRunes("w"))
	if m.state.IsWatchlisted("bitcoin") {
		t.Fatal("second toggle did not unstar")
	}
}

func TestKeys_SearchFiltersList(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, &stubMarket{coins: testCoins()})
	start(t, m)

	m.Update(keyRunes("/"))
	if !m.searchActive {
		t.Fatal("search not active")
	}
	for _, r := range "ETH" {
		m.Update(keyRunes(string(r)))
	}
	if got := m.state.Query; got != "ETH" {
		t.Fatalf("query = %q, want ETH", got)
	}
	if got := m.visibleCoins(); len(got) != 1 || got[0].ID != "ethereum" {
		t.Fatalf("visible = %+v", got)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.searchActive || m.state.Query != "ETH" {
		t.Fatalf("enter should keep query and leave search; active=%v query=%q", m.searchActive, m.state.Query)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.state.Query != "" || len(m.visibleCoins()) != 3 {
		t.Fatal("escape did not clear the query")
	}
}

func TestKeys_SelectMovesFocusAfterDelay(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, &stubMarket{coins: testCoins()})
	start(t, m)

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter produced no command")
	}
	if m.state.SelectingID != "ethereum" {
		t.Fatalf("selecting = %q, want ethereum", m.state.SelectingID)
	}

	// Feed only the fetch result; the focus timer is delivered by hand.
	m.Update(m.runDetailFetch(t, "ethereum"))
	if m.activeSection != SectionList {
		t.Fatal("focus moved before the delay elapsed")
	}
	m.Update(dashboard.FocusDueMsg{Seq: m.state.Focus.Seq})
	if m.activeSection != SectionDetail {
		t.Fatalf("section = %v, want detail", m.activeSection)
	}

	view := m.View()
	if !strings.Contains(view, "Ethereum Price Chart (7 Days)") {
		t.Fatal("chart title missing")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.activeSection != SectionList {
		t.Fatal("escape did not return to the list")
	}
}

func TestView_ChartUnavailable(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, &stubMarket{coins: testCoins(), historyErr: errors.New("429")})
	start(t, m)

	m.Update(m.runDetailFetch(t, "bitcoin"))
	view := m.View()
	for _, want := range []string{
		"Bitcoin Price Information",
		"Chart temporarily unavailable",
		"$1300.00B",
		"$35000.00M",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("error panel missing %q", want)
		}
	}
}

func TestKeys_CurrencyCycleRefetches(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, &stubMarket{coins: testCoins()})
	start(t, m)

	_, cmd := m.Update(keyRunes("c"))
	if cmd == nil {
		t.Fatal("currency change produced no fetch")
	}
	if m.state.Currency != model.CurrencyEUR {
		t.Fatalf("currency = %q, want eur", m.state.Currency)
	}
	if !strings.Contains(m.View(), loadingText) {
		t.Fatal("loader not shown during currency refetch")
	}
}

func TestKeys_ThemeToggle(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, &stubMarket{coins: testCoins()})
	start(t, m)

	m.Update(keyRunes("t"))
	if m.state.DarkMode {
		t.Fatal("theme did not toggle")
	}
}

func TestHelpModal_OpensAndCloses(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, &stubMarket{coins: testCoins()})
	start(t, m)

	m.Update(keyRunes("?"))
	if !m.HasModal() {
		t.Fatal("help modal not opened")
	}
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatal("help modal not rendered")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.HasModal() {
		t.Fatal("help modal not closed")
	}
}

func TestScrollOffset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cursor, offset, rows, want int
	}{
		{cursor: 0, offset: 0, rows: 10, want: 0},
		{cursor: 9, offset: 0, rows: 10, want: 0},
		{cursor: 10, offset: 0, rows: 10, want: 1},
		{cursor: 3, offset: 5, rows: 10, want: 3},
		{cursor: 49, offset: 0, rows: 10, want: 40},
	}
	for _, tt := range tests {
		if got := scrollOffset(tt.cursor, tt.offset, tt.rows); got != tt.want {
			t.Errorf("scrollOffset(%d, %d, %d) = %d, want %d", tt.cursor, tt.offset, tt.rows, got, tt.want)
		}
	}
}

func TestChartBounds_FlatSeries(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	points := []model.PricePoint{{Time: at, Price: decimal.NewFromInt(5)}}
	minT, maxT, minY, maxY := chartBounds(points)
	if !maxT.After(minT) {
		t.Fatal("time range is empty")
	}
	if !(minY < 5 && maxY > 5) {
		t.Fatalf("y range = [%v, %v], want to straddle 5", minY, maxY)
	}
}

// runDetailFetch selects coinID and runs the returned fetch command.
func (m *DashboardModel) runDetailFetch(t *testing.T, coinID string) tea.Msg {
	t.Helper()
	cmd := m.coord.SelectCoin(coinID)
	if cmd == nil {
		t.Fatalf("SelectCoin(%q) returned nil", coinID)
	}
	return cmd()
}
