package model

import "time"

// Shared defaults used by the CLI and the dashboard.
const (
	DefaultCurrency        = CurrencyUSD
	DefaultSkin            = "default"
	DefaultTheme           = "dark"
	DefaultAPIBaseURL      = "https://api.coingecko.com/api/v3"
	DefaultRequestTimeout  = 30 * time.Second
	DefaultFocusDelay      = 500 * time.Millisecond
	DefaultFocusErrorDelay = 300 * time.Millisecond
	DefaultWatchlistKey    = "cryptoWatchlist"

	// MarketListSize is the number of coins requested per list fetch.
	MarketListSize = 50
	// HistoryDays is the fixed price history window.
	HistoryDays = 7
)
