package dashboard

import "github.com/tinytelemetry/coinwatch/internal/model"

// ListLoadedMsg carries the result of a list fetch back to the coordinator.
type ListLoadedMsg struct {
	Gen      uint64
	Currency model.Currency
	Coins    []model.Coin
	Err      error
}

// DetailLoadedMsg carries the result of a price history fetch.
type DetailLoadedMsg struct {
	Gen      uint64
	CoinID   string
	Currency model.Currency
	Fallback model.Coin // snapshot held when the coin was selected
	Points   []model.PricePoint
	Err      error
}

// FocusDueMsg fires when a FocusRequest delay elapses.
type FocusDueMsg struct {
	Seq uint64
}
