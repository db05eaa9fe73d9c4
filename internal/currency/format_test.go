package currency

import (
	"testing"

	"github.com/tinytelemetry/coinwatch/internal/model"

	"github.com/shopspring/decimal"
)

func TestSymbolFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code model.Currency
		want string
	}{
		{"usd", "$"},
		{"eur", "€"},
		{"gbp", "£"},
		{"inr", "₹"},
		{"EUR", "€"},
		{"xyz", "$"},
		{"", "$"},
	}
	for _, tt := range tests {
		if got := SymbolFor(tt.code); got != tt.want {
			t.Errorf("SymbolFor(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestFormatMarketCap(t *testing.T) {
	t.Parallel()

	if got := FormatMarketCap(model.CurrencyUSD, decimal.NewFromInt(2_500_000_000)); got != "$2.50B" {
		t.Fatalf("FormatMarketCap = %q, want $2.50B", got)
	}
	if got := FormatMarketCap(model.CurrencyGBP, decimal.NewFromInt(1_234_567_890_123)); got != "£1234.57B" {
		t.Fatalf("FormatMarketCap = %q, want £1234.57B", got)
	}
}

func TestFormatVolume(t *testing.T) {
	t.Parallel()

	vol := decimal.NewNullDecimal(decimal.NewFromInt(12_345_678))
	if got := FormatVolume(model.CurrencyEUR, vol); got != "€12.35M" {
		t.Fatalf("FormatVolume = %q, want €12.35M", got)
	}
	if got := FormatVolume(model.CurrencyEUR, decimal.NullDecimal{}); got != "N/A" {
		t.Fatalf("FormatVolume(null) = %q, want N/A", got)
	}
}

func TestFormatPrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"1", "1.00"},
		{"42.5", "42.50"},
		{"1234.5", "1,234.50"},
		{"67123.123456789", "67,123.123457"},
		{"1000000", "1,000,000.00"},
		{"123456.1", "123,456.10"},
		{"0.5", "0.50000000"},
		{"0.000012345678", "0.00001235"},
		{"0", "0.00000000"},
	}
	for _, tt := range tests {
		got := FormatPrice(decimal.RequireFromString(tt.in))
		if got != tt.want {
			t.Errorf("FormatPrice(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatChange(t *testing.T) {
	t.Parallel()

	if got := FormatChange(decimal.RequireFromString("-1.2549")); got != "-1.25%" {
		t.Fatalf("FormatChange = %q, want -1.25%%", got)
	}
	if got := FormatChange(decimal.RequireFromString("3.1")); got != "3.10%" {
		t.Fatalf("FormatChange = %q, want 3.10%%", got)
	}
}

func TestRoundDisplay(t *testing.T) {
	t.Parallel()

	got := RoundDisplay(decimal.RequireFromString("0.123456789"))
	if !got.Equal(decimal.RequireFromString("0.123457")) {
		t.Fatalf("RoundDisplay = %s, want 0.123457", got)
	}
	if got.Exponent() < -DisplayPlaces {
		t.Fatalf("RoundDisplay kept %d places", -got.Exponent())
	}
}
