package marketdata

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/tinytelemetry/coinwatch/internal/model"

	"github.com/shopspring/decimal"
)

// apiMarketCoin is one element of GET /coins/markets.
type apiMarketCoin struct {
	ID                       string              `json:"id"`
	Symbol                   string              `json:"symbol"`
	Name                     string              `json:"name"`
	Image                    string              `json:"image"`
	CurrentPrice             decimal.NullDecimal `json:"current_price"`
	MarketCap                decimal.NullDecimal `json:"market_cap"`
	TotalVolume              decimal.NullDecimal `json:"total_volume"`
	PriceChangePercentage24h decimal.NullDecimal `json:"price_change_percentage_24h"`
}

func (a apiMarketCoin) toDomain() (model.Coin, error) {
	switch {
	case a.ID == "":
		return model.Coin{}, errors.New("coin without id")
	case a.Name == "":
		return model.Coin{}, fmt.Errorf("coin %s: missing name", a.ID)
	case a.Symbol == "":
		return model.Coin{}, fmt.Errorf("coin %s: missing symbol", a.ID)
	}
	return model.Coin{
		ID:             a.ID,
		Name:           a.Name,
		Symbol:         a.Symbol,
		CurrentPrice:   a.CurrentPrice.Decimal,
		PriceChangePct: a.PriceChangePercentage24h.Decimal,
		MarketCap:      a.MarketCap.Decimal,
		ImageURL:       a.Image,
		TotalVolume:    a.TotalVolume,
	}, nil
}

// apiMarketChart is the body of GET /coins/{id}/market_chart.
// Prices is a pointer so an absent field is distinguishable from an empty one.
type apiMarketChart struct {
	Prices *[][]json.Number `json:"prices"`
}

func (a apiMarketChart) toDomain() ([]model.PricePoint, error) {
	if a.Prices == nil {
		return nil, errors.New("missing prices")
	}

	points := make([]model.PricePoint, 0, len(*a.Prices))
	for i, pair := range *a.Prices {
		if len(pair) < 2 {
			return nil, fmt.Errorf("prices[%d]: want [timestamp, price], got %d values", i, len(pair))
		}
		ts, err := parseMillis(pair[0])
		if err != nil {
			return nil, fmt.Errorf("prices[%d]: timestamp: %w", i, err)
		}
		price, err := decimal.NewFromString(pair[1].String())
		if err != nil {
			return nil, fmt.Errorf("prices[%d]: price: %w", i, err)
		}
		points = append(points, model.PricePoint{Time: ts, Price: price})
	}

	sort.SliceStable(points, func(i, j int) bool { return points[i].Time.Before(points[j].Time) })
	return points, nil
}

func parseMillis(n json.Number) (time.Time, error) {
	if ms, err := n.Int64(); err == nil {
		return time.UnixMilli(ms).UTC(), nil
	}
	f, err := n.Float64()
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(int64(f)).UTC(), nil
}
