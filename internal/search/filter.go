// Package search derives the visible coin list from a free-text query.
package search

import (
	"strings"

	"github.com/tinytelemetry/coinwatch/internal/model"
)

// Filter returns the coins whose name or symbol contains query,
// case-insensitively, in their original order. An empty query returns
// coins unchanged.
func Filter(coins []model.Coin, query string) []model.Coin {
	if query == "" {
		return coins
	}
	q := strings.ToLower(query)

	out := make([]model.Coin, 0, len(coins))
	for _, c := range coins {
		if Matches(c, q) {
			out = append(out, c)
		}
	}
	return out
}

// Matches reports whether c matches an already lower-cased query.
func Matches(c model.Coin, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(c.Name), lowerQuery) ||
		strings.Contains(strings.ToLower(c.Symbol), lowerQuery)
}
