package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Coin is one tracked cryptocurrency's market snapshot, priced in the
// currency it was fetched with. Snapshots are replaced wholesale on every
// list refresh and never mutated.
type Coin struct {
	ID             string
	Name           string
	Symbol         string
	CurrentPrice   decimal.Decimal
	PriceChangePct decimal.Decimal // 24h, signed
	MarketCap      decimal.Decimal
	ImageURL       string
	TotalVolume    decimal.NullDecimal // 24h, optional
}

// PricePoint is one sample of a price history series.
type PricePoint struct {
	Time  time.Time
	Price decimal.Decimal
}

// CoinDetail is a coin snapshot plus its price history.
// When HasError is set the history fetch failed and Prices is nil,
// but Coin is still valid.
type CoinDetail struct {
	Coin     Coin
	Currency Currency
	Prices   []PricePoint
	HasError bool
}

// HasChart reports whether the detail carries a drawable series.
func (d *CoinDetail) HasChart() bool {
	return d != nil && !d.HasError && len(d.Prices) > 0
}
