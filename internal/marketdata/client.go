// Package marketdata is the REST client for the CoinGecko v3 market API.
package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tinytelemetry/coinwatch/internal/model"

	"golang.org/x/sync/singleflight"
)

const maxErrorBody = 512

// Client issues single-attempt reads against the market-data provider.
// Identical requests in flight at the same time share one HTTP round trip.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	timeout    time.Duration
	group      singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. The client is copied
// before the request timeout is applied; nil keeps the default client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds every request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient creates a client for baseURL, e.g. "https://api.coingecko.com/api/v3".
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = model.DefaultAPIBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  "coinwatch",
		timeout:    model.DefaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	hc := http.Client{}
	if c.httpClient != nil {
		hc = *c.httpClient
	}
	hc.Timeout = c.timeout
	c.httpClient = &hc
	return c
}

// FetchMarketList returns up to model.MarketListSize coins ranked by
// descending market capitalization, priced in currency.
func (c *Client) FetchMarketList(ctx context.Context, currency model.Currency) ([]model.Coin, error) {
	params := url.Values{}
	params.Set("vs_currency", string(currency))
	params.Set("order", "market_cap_desc")
	params.Set("per_page", strconv.Itoa(model.MarketListSize))
	params.Set("page", "1")
	params.Set("sparkline", "false")
	params.Set("price_change_percentage", "24h")

	body, err := c.doGet(ctx, "/coins/markets?"+params.Encode())
	if err != nil {
		return nil, &FetchError{Op: "markets", Err: err}
	}

	var apiCoins []apiMarketCoin
	if err := json.Unmarshal(body, &apiCoins); err != nil {
		return nil, &FetchError{Op: "markets", Err: fmt.Errorf("decode: %w", err)}
	}

	coins := make([]model.Coin, 0, len(apiCoins))
	for i := range apiCoins {
		coin, err := apiCoins[i].toDomain()
		if err != nil {
			return nil, &FetchError{Op: "markets", Err: err}
		}
		coins = append(coins, coin)
	}
	return coins, nil
}

// FetchPriceHistory returns the model.HistoryDays price series for coinID,
// ordered by time ascending.
func (c *Client) FetchPriceHistory(ctx context.Context, coinID string, currency model.Currency) ([]model.PricePoint, error) {
	if coinID == "" {
		return nil, &FetchError{Op: "market_chart", Err: fmt.Errorf("empty coin id")}
	}

	params := url.Values{}
	params.Set("vs_currency", string(currency))
	params.Set("days", strconv.Itoa(model.HistoryDays))
	path := fmt.Sprintf("/coins/%s/market_chart?%s", url.PathEscape(coinID), params.Encode())

	body, err := c.doGet(ctx, path)
	if err != nil {
		return nil, &FetchError{Op: "market_chart", Err: err}
	}

	var chart apiMarketChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, &FetchError{Op: "market_chart", Err: fmt.Errorf("decode: %w", err)}
	}
	points, err := chart.toDomain()
	if err != nil {
		return nil, &FetchError{Op: "market_chart", Err: err}
	}
	return points, nil
}

func (c *Client) doGet(ctx context.Context, path string) ([]byte, error) {
	v, err, _ := c.group.Do(path, func() (any, error) {
		return c.get(ctx, path)
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
