package model

import (
	"fmt"
	"strings"
)

// Currency is a lowercase vs_currency code understood by the market-data provider.
type Currency string

const (
	CurrencyUSD Currency = "usd"
	CurrencyEUR Currency = "eur"
	CurrencyGBP Currency = "gbp"
	CurrencyINR Currency = "inr"
)

// SupportedCurrencies lists the selectable display currencies in picker order.
var SupportedCurrencies = []Currency{CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyINR}

// ParseCurrency normalizes code and checks it against SupportedCurrencies.
func ParseCurrency(code string) (Currency, error) {
	c := Currency(strings.ToLower(strings.TrimSpace(code)))
	for _, s := range SupportedCurrencies {
		if c == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unsupported currency %q", code)
}

// Next returns the supported currency after c, wrapping around.
// Unknown currencies move to the first entry.
func (c Currency) Next() Currency {
	for i, s := range SupportedCurrencies {
		if s == c {
			return SupportedCurrencies[(i+1)%len(SupportedCurrencies)]
		}
	}
	return SupportedCurrencies[0]
}

// Label returns the upper-case code, e.g. "USD".
func (c Currency) Label() string {
	return strings.ToUpper(string(c))
}
