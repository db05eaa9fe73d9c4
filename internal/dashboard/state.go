// Package dashboard owns the dashboard's view state. A Coordinator
// sequences market-data fetches, applies user intents and publishes an
// immutable State snapshot to subscribers after every change.
package dashboard

import (
	"time"

	"github.com/tinytelemetry/coinwatch/internal/model"
	"github.com/tinytelemetry/coinwatch/internal/search"
	"github.com/tinytelemetry/coinwatch/internal/watchlist"
)

// ListStatus tracks the coin list fetch.
type ListStatus int

const (
	ListIdle ListStatus = iota
	ListLoading
	ListReady
)

func (s ListStatus) String() string {
	switch s {
	case ListLoading:
		return "loading"
	case ListReady:
		return "ready"
	default:
		return "idle"
	}
}

// DetailStatus tracks the price history fetch of the selected coin.
type DetailStatus int

const (
	DetailIdle DetailStatus = iota
	DetailLoading
	DetailReady
	DetailError
)

func (s DetailStatus) String() string {
	switch s {
	case DetailLoading:
		return "loading"
	case DetailReady:
		return "ready"
	case DetailError:
		return "error"
	default:
		return "idle"
	}
}

// FocusRequest asks the view to bring the detail panel into focus once
// Delay has elapsed. Seq increases with every request; Fired is set when
// the delay is over and the view should move focus.
type FocusRequest struct {
	Seq   uint64
	Delay time.Duration
	Fired bool
}

// State is one snapshot of the dashboard. Snapshots are values: slices and
// pointers inside are never mutated after publication, so subscribers may
// keep them without copying.
type State struct {
	Coins        []model.Coin
	ListCurrency model.Currency // currency Coins are priced in
	ListStatus   ListStatus
	Refreshing   bool // background refresh in flight
	Selected     *model.CoinDetail
	SelectingID  string // coin whose detail fetch is in flight
	DetailStatus DetailStatus
	Watchlist    watchlist.List
	Query        string
	Currency     model.Currency
	DarkMode     bool
	Focus        FocusRequest
	LastError    string
	LastErrorAt  time.Time
}

// Visible returns the coins matching the current query. It is derived on
// every call and never stored.
func (s State) Visible() []model.Coin {
	return search.Filter(s.Coins, s.Query)
}

// Loading reports whether the list fetch is in flight.
func (s State) Loading() bool {
	return s.ListStatus == ListLoading
}

// IsWatchlisted reports whether coinID is starred.
func (s State) IsWatchlisted(coinID string) bool {
	return s.Watchlist.Contains(coinID)
}
