package dashboard

import (
	"context"
	"time"

	"github.com/tinytelemetry/coinwatch/internal/currency"
	"github.com/tinytelemetry/coinwatch/internal/logging"
	"github.com/tinytelemetry/coinwatch/internal/model"
	"github.com/tinytelemetry/coinwatch/internal/watchlist"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

// MarketData is the remote read contract the coordinator depends on.
type MarketData interface {
	FetchMarketList(ctx context.Context, currency model.Currency) ([]model.Coin, error)
	FetchPriceHistory(ctx context.Context, coinID string, currency model.Currency) ([]model.PricePoint, error)
}

// WatchlistStore persists the watchlist.
type WatchlistStore interface {
	Load() watchlist.List
	Save(watchlist.List) error
}

// Options configures a Coordinator. Zero values select the defaults in model.
type Options struct {
	Context         context.Context
	Currency        model.Currency
	DarkMode        bool
	FocusDelay      time.Duration
	FocusErrorDelay time.Duration
	Logger          logrus.FieldLogger
}

type subscriber struct {
	id int
	fn func(State)
}

// Coordinator owns all mutable dashboard state.
//
// It is not safe for concurrent use: every method must be called from the
// Bubble Tea update loop. Fetches run inside the returned tea.Cmd values and
// report back through Update, so state only changes on that loop. Each fetch
// is tagged with a generation; a response whose generation is no longer the
// latest is dropped, so a slow response cannot overwrite a newer selection.
type Coordinator struct {
	ctx    context.Context
	market MarketData
	store  WatchlistStore
	log    logrus.FieldLogger

	focusDelay      time.Duration
	focusErrorDelay time.Duration

	state           State
	byID            map[string]int
	listGen         uint64
	detailGen       uint64
	watchlistLoaded bool

	subs      []subscriber
	nextSubID int
	now       func() time.Time
}

// New creates a coordinator in the idle state.
func New(market MarketData, store WatchlistStore, opts Options) *Coordinator {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Currency == "" {
		opts.Currency = model.DefaultCurrency
	}
	if opts.FocusDelay <= 0 {
		opts.FocusDelay = model.DefaultFocusDelay
	}
	if opts.FocusErrorDelay <= 0 {
		opts.FocusErrorDelay = model.DefaultFocusErrorDelay
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}

	return &Coordinator{
		ctx:             opts.Context,
		market:          market,
		store:           store,
		log:             opts.Logger,
		focusDelay:      opts.FocusDelay,
		focusErrorDelay: opts.FocusErrorDelay,
		state: State{
			Currency: opts.Currency,
			DarkMode: opts.DarkMode,
		},
		byID: make(map[string]int),
		now:  time.Now,
	}
}

// State returns the current snapshot.
func (c *Coordinator) State() State {
	return c.state
}

// Subscribe registers fn for every published snapshot and immediately
// delivers the current one. The returned func unregisters fn.
func (c *Coordinator) Subscribe(fn func(State)) (unsubscribe func()) {
	id := c.nextSubID
	c.nextSubID++
	c.subs = append(c.subs, subscriber{id: id, fn: fn})
	fn(c.state)

	return func() {
		for i, s := range c.subs {
			if s.id == id {
				c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
				return
			}
		}
	}
}

func (c *Coordinator) publish() {
	snapshot := c.state
	for _, s := range c.subs {
		s.fn(snapshot)
	}
}

// Start loads the watchlist (once per coordinator) and fetches the list in
// the current currency.
func (c *Coordinator) Start() tea.Cmd {
	if !c.watchlistLoaded {
		c.state.Watchlist = c.store.Load()
		c.watchlistLoaded = true
		c.log.WithField("count", c.state.Watchlist.Len()).Debug("watchlist loaded")
	}
	return c.fetchList(false)
}

// SetCurrency switches the display currency and re-fetches the list.
// An open detail is left as is, still priced in the currency it was
// fetched with, until the user selects a coin again.
func (c *Coordinator) SetCurrency(cur model.Currency) tea.Cmd {
	if cur == "" || cur == c.state.Currency {
		return nil
	}
	c.state.Currency = cur
	return c.fetchList(false)
}

// CycleCurrency moves to the next supported currency.
func (c *Coordinator) CycleCurrency() tea.Cmd {
	return c.SetCurrency(c.state.Currency.Next())
}

// Refresh re-fetches the list in the current currency without entering
// the loading state; the current list stays visible until the result lands.
func (c *Coordinator) Refresh() tea.Cmd {
	if c.state.ListStatus == ListLoading || !c.watchlistLoaded {
		return nil
	}
	return c.fetchList(true)
}

func (c *Coordinator) fetchList(background bool) tea.Cmd {
	c.listGen++
	gen := c.listGen
	cur := c.state.Currency
	if background {
		c.state.Refreshing = true
	} else {
		c.state.ListStatus = ListLoading
	}
	c.publish()

	ctx, market := c.ctx, c.market
	return func() tea.Msg {
		coins, err := market.FetchMarketList(ctx, cur)
		return ListLoadedMsg{Gen: gen, Currency: cur, Coins: coins, Err: err}
	}
}

// SelectCoin fetches the price history of a coin from the current list.
// Unknown coins are ignored.
func (c *Coordinator) SelectCoin(coinID string) tea.Cmd {
	coin, ok := c.coinByID(coinID)
	if !ok {
		c.log.WithField("coin", coinID).Warn("select: coin not in current list")
		return nil
	}

	c.detailGen++
	gen := c.detailGen
	cur := c.state.Currency
	c.state.SelectingID = coinID
	c.state.DetailStatus = DetailLoading
	c.publish()

	ctx, market := c.ctx, c.market
	return func() tea.Msg {
		points, err := market.FetchPriceHistory(ctx, coinID, cur)
		return DetailLoadedMsg{Gen: gen, CoinID: coinID, Currency: cur, Fallback: coin, Points: points, Err: err}
	}
}

// ToggleWatchlist flips coinID's membership and persists the full list.
// It never touches the network.
func (c *Coordinator) ToggleWatchlist(coinID string) {
	if coinID == "" {
		return
	}
	next := c.state.Watchlist.Toggle(coinID)
	c.state.Watchlist = next
	if err := c.store.Save(next); err != nil {
		c.log.WithError(err).WithField("coin", coinID).Error("watchlist: save failed")
		c.setError("watchlist not saved")
	}
	c.publish()
}

// SetQuery replaces the search text. The visible list is derived from it
// on read; no fetch happens.
func (c *Coordinator) SetQuery(q string) {
	if q == c.state.Query {
		return
	}
	c.state.Query = q
	c.publish()
}

// ToggleTheme flips between dark and light mode.
func (c *Coordinator) ToggleTheme() {
	c.state.DarkMode = !c.state.DarkMode
	c.publish()
}

// ClearSelection closes the detail view.
func (c *Coordinator) ClearSelection() {
	if c.state.Selected == nil && c.state.SelectingID == "" {
		return
	}
	// Bumping the generation drops any detail response still in flight.
	c.detailGen++
	c.state.Selected = nil
	c.state.SelectingID = ""
	c.state.DetailStatus = DetailIdle
	c.publish()
}

// Update applies fetch completions and focus timers. Other messages are
// ignored and yield a nil command.
func (c *Coordinator) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ListLoadedMsg:
		c.applyList(msg)
	case DetailLoadedMsg:
		return c.applyDetail(msg)
	case FocusDueMsg:
		c.applyFocus(msg)
	}
	return nil
}

func (c *Coordinator) applyList(msg ListLoadedMsg) {
	if msg.Gen != c.listGen {
		c.log.WithFields(logrus.Fields{"gen": msg.Gen, "latest": c.listGen}).Debug("list: dropping stale response")
		return
	}

	c.state.ListStatus = ListReady
	c.state.Refreshing = false

	if msg.Err != nil {
		c.log.WithError(msg.Err).WithField("currency", msg.Currency).Error("list: fetch failed")
		c.setError("market list unavailable")
		c.publish()
		return
	}

	coins := msg.Coins
	if coins == nil {
		coins = []model.Coin{}
	}
	c.state.Coins = coins
	c.state.ListCurrency = msg.Currency
	c.byID = make(map[string]int, len(coins))
	for i, coin := range coins {
		c.byID[coin.ID] = i
	}
	c.state.LastError = ""
	c.publish()
}

func (c *Coordinator) applyDetail(msg DetailLoadedMsg) tea.Cmd {
	if msg.Gen != c.detailGen {
		c.log.WithFields(logrus.Fields{"coin": msg.CoinID, "gen": msg.Gen, "latest": c.detailGen}).Debug("detail: dropping stale response")
		return nil
	}

	// Prefer the latest snapshot, but only while it is still priced in the
	// currency the history was fetched in.
	coin := msg.Fallback
	if msg.Currency == c.state.ListCurrency {
		if latest, ok := c.coinByID(msg.CoinID); ok {
			coin = latest
		}
	}

	detail := &model.CoinDetail{Coin: coin, Currency: msg.Currency}
	delay := c.focusDelay
	if msg.Err != nil {
		c.log.WithError(msg.Err).WithFields(logrus.Fields{"coin": msg.CoinID, "currency": msg.Currency}).Error("detail: fetch failed")
		detail.HasError = true
		delay = c.focusErrorDelay
		c.state.DetailStatus = DetailError
	} else {
		detail.Prices = make([]model.PricePoint, len(msg.Points))
		for i, p := range msg.Points {
			detail.Prices[i] = model.PricePoint{Time: p.Time, Price: currency.RoundDisplay(p.Price)}
		}
		c.state.DetailStatus = DetailReady
	}

	c.state.Selected = detail
	c.state.SelectingID = ""
	c.state.Focus = FocusRequest{Seq: c.state.Focus.Seq + 1, Delay: delay}
	seq := c.state.Focus.Seq
	c.publish()

	return tea.Tick(delay, func(time.Time) tea.Msg {
		return FocusDueMsg{Seq: seq}
	})
}

func (c *Coordinator) applyFocus(msg FocusDueMsg) {
	if msg.Seq != c.state.Focus.Seq || c.state.Focus.Fired {
		return
	}
	c.state.Focus.Fired = true
	c.publish()
}

func (c *Coordinator) coinByID(id string) (model.Coin, bool) {
	i, ok := c.byID[id]
	if !ok || i >= len(c.state.Coins) {
		return model.Coin{}, false
	}
	return c.state.Coins[i], true
}

func (c *Coordinator) setError(msg string) {
	c.state.LastError = msg
	c.state.LastErrorAt = c.now()
}
