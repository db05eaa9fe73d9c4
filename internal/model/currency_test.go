package model

import "testing"

func TestParseCurrency(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Currency
		wantErr bool
	}{
		{in: "usd", want: CurrencyUSD},
		{in: " EUR ", want: CurrencyEUR},
		{in: "Gbp", want: CurrencyGBP},
		{in: "inr", want: CurrencyINR},
		{in: "xyz", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseCurrency(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseCurrency(%q) = %q, want error", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCurrency(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCurrency(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCurrencyNextWraps(t *testing.T) {
	t.Parallel()

	c := CurrencyUSD
	seen := make([]Currency, 0, len(SupportedCurrencies))
	for range SupportedCurrencies {
		seen = append(seen, c)
		c = c.Next()
	}
	if c != CurrencyUSD {
		t.Fatalf("cycle ended at %q, want usd", c)
	}
	if seen[1] != CurrencyEUR || seen[3] != CurrencyINR {
		t.Fatalf("cycle order = %v", seen)
	}
	if got := Currency("xyz").Next(); got != CurrencyUSD {
		t.Fatalf("unknown Next() = %q, want usd", got)
	}
}
