// Package currency maps display currencies to symbols and formats market
// values for the dashboard.
package currency

import (
	"strings"

	"github.com/tinytelemetry/coinwatch/internal/model"

	"github.com/shopspring/decimal"
)

// DisplayPlaces is the precision history prices are rounded to.
const DisplayPlaces = 6

var symbols = map[model.Currency]string{
	model.CurrencyUSD: "$",
	model.CurrencyEUR: "€",
	model.CurrencyGBP: "£",
	model.CurrencyINR: "₹",
}

var (
	billion = decimal.New(1, 9)
	million = decimal.New(1, 6)
)

// SymbolFor returns the display symbol for c, defaulting to "$".
func SymbolFor(c model.Currency) string {
	if s, ok := symbols[model.Currency(strings.ToLower(string(c)))]; ok {
		return s
	}
	return "$"
}

// RoundDisplay rounds v to DisplayPlaces decimals.
func RoundDisplay(v decimal.Decimal) decimal.Decimal {
	return v.Round(DisplayPlaces)
}

// FormatBillions renders v in billions with two decimals, e.g. "2.50B".
func FormatBillions(v decimal.Decimal) string {
	return v.Div(billion).StringFixed(2) + "B"
}

// FormatMillions renders v in millions with two decimals, e.g. "12.30M".
func FormatMillions(v decimal.Decimal) string {
	return v.Div(million).StringFixed(2) + "M"
}

// FormatMarketCap renders a market capitalization, e.g. "$2.50B".
func FormatMarketCap(c model.Currency, v decimal.Decimal) string {
	return SymbolFor(c) + FormatBillions(v)
}

// FormatVolume renders a 24h volume in millions, or "N/A" when absent.
func FormatVolume(c model.Currency, v decimal.NullDecimal) string {
	if !v.Valid {
		return "N/A"
	}
	return SymbolFor(c) + FormatMillions(v.Decimal)
}

// FormatChange renders a percentage change with two decimals, e.g. "-1.25%".
func FormatChange(pct decimal.Decimal) string {
	return pct.StringFixed(2) + "%"
}

// FormatMoney prefixes FormatPrice with the currency symbol.
func FormatMoney(c model.Currency, v decimal.Decimal) string {
	return SymbolFor(c) + FormatPrice(v)
}

// FormatPrice renders a price for labels and chart axes. Values >= 1 are
// grouped with thousands separators and carry 2 to 6 fraction digits;
// sub-unit values carry a fixed 8 fraction digits.
func FormatPrice(v decimal.Decimal) string {
	if v.LessThan(decimal.NewFromInt(1)) {
		return v.StringFixed(8)
	}

	fixed := v.Round(6).StringFixed(6)
	intPart, frac, _ := strings.Cut(fixed, ".")
	frac = strings.TrimRight(frac, "0")
	for len(frac) < 2 {
		frac += "0"
	}
	return groupThousands(intPart) + "." + frac
}

// FormatAxisValue formats a chart axis value given as float64.
func FormatAxisValue(c model.Currency, v float64) string {
	return FormatMoney(c, decimal.NewFromFloat(v))
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
