package tui

import (
	"time"

	"github.com/tinytelemetry/coinwatch/internal/dashboard"
	"github.com/tinytelemetry/coinwatch/internal/model"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Section represents the focusable dashboard sections.
type Section int

const (
	SectionList   Section = iota // coin list
	SectionDetail                // chart / detail panel
	SectionSearch                // search bar
)

func (s Section) String() string {
	switch s {
	case SectionDetail:
		return "Chart"
	case SectionSearch:
		return "Search"
	default:
		return "Coins"
	}
}

// Config holds the TUI-only settings.
type Config struct {
	RefreshInterval    time.Duration // 0 disables periodic refresh
	ReverseScrollWheel bool
}

// SearchState holds the inline search bar state.
type SearchState struct {
	searchInput  textinput.Model
	searchActive bool
}

// ListViewState holds list cursor and scroll state.
type ListViewState struct {
	cursor     int
	listOffset int
}

// ModalStackState holds the modal stack.
type ModalStackState struct {
	modalStack []Modal
}

// DashboardModel renders the coordinator's State and turns key and mouse
// input into coordinator intents. It holds no market data of its own.
type DashboardModel struct {
	SearchState
	ListViewState
	ModalStackState

	coord       *dashboard.Coordinator
	state       dashboard.State
	unsubscribe func()

	keys    KeyMap
	help    help.Model
	spinner spinner.Model
	// spinning is set while a spinner tick is scheduled.
	spinning bool

	activeSection Section
	lastFocusSeq  uint64

	width  int
	height int

	refreshInterval    time.Duration
	reverseScrollWheel bool

	// Inline handlers for the search bar (not a modal, part of the layout).
	inlineHandlers []inlineHandlerEntry
}

// refreshTickMsg drives the optional periodic list refresh.
type refreshTickMsg time.Time

// NewDashboardModel creates the dashboard bound to coord.
func NewDashboardModel(coord *dashboard.Coordinator, cfg Config) *DashboardModel {
	ti := textinput.New()
	ti.Placeholder = "Search cryptocurrencies..."
	ti.Prompt = "🔍 "
	ti.CharLimit = 64

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &DashboardModel{
		SearchState:        SearchState{searchInput: ti},
		coord:              coord,
		keys:               DefaultKeyMap(),
		help:               help.New(),
		spinner:            sp,
		refreshInterval:    cfg.RefreshInterval,
		reverseScrollWheel: cfg.ReverseScrollWheel,
	}
	m.inlineHandlers = []inlineHandlerEntry{
		{isActive: func(m *DashboardModel) bool { return m.searchActive }, handler: searchInputHandler{}},
	}
	m.unsubscribe = coord.Subscribe(m.onState)
	return m
}

// onState receives every coordinator snapshot.
func (m *DashboardModel) onState(s dashboard.State) {
	m.state = s
	m.clampCursor()
}

// Init starts the first list fetch and the optional refresh ticker.
func (m *DashboardModel) Init() tea.Cmd {
	return tea.Batch(
		m.coord.Start(),
		m.startSpinnerIfNeeded(),
		m.scheduleRefresh(),
		textinput.Blink,
	)
}

// Close detaches the model from the coordinator.
func (m *DashboardModel) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

func (m *DashboardModel) scheduleRefresh() tea.Cmd {
	if m.refreshInterval <= 0 {
		return nil
	}
	return tea.Tick(m.refreshInterval, func(t time.Time) tea.Msg {
		return refreshTickMsg(t)
	})
}

// visibleCoins is the filtered list currently rendered.
func (m *DashboardModel) visibleCoins() []model.Coin {
	return m.state.Visible()
}

// cursorCoin returns the coin under the list cursor.
func (m *DashboardModel) cursorCoin() (model.Coin, bool) {
	coins := m.visibleCoins()
	if m.cursor < 0 || m.cursor >= len(coins) {
		return model.Coin{}, false
	}
	return coins[m.cursor], true
}

func (m *DashboardModel) clampCursor() {
	n := len(m.visibleCoins())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.listOffset > m.cursor {
		m.listOffset = m.cursor
	}
}

func (m *DashboardModel) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
	m.listOffset = scrollOffset(m.cursor, m.listOffset, m.listPageSize())
}

// busy reports whether any fetch is in flight.
func (m *DashboardModel) busy() bool {
	return m.state.ListStatus != dashboard.ListReady ||
		m.state.Refreshing ||
		m.state.DetailStatus == dashboard.DetailLoading
}

// PushModal pushes a modal, ignoring duplicates of the top one.
func (m *DashboardModel) PushModal(modal Modal) {
	if top := m.TopModal(); top != nil && top.ID() == modal.ID() {
		return
	}
	m.modalStack = append(m.modalStack, modal)
}

// PopModal removes the top modal.
func (m *DashboardModel) PopModal() {
	if len(m.modalStack) > 0 {
		m.modalStack = m.modalStack[:len(m.modalStack)-1]
	}
}

// TopModal returns the top modal, or nil.
func (m *DashboardModel) TopModal() Modal {
	if len(m.modalStack) == 0 {
		return nil
	}
	return m.modalStack[len(m.modalStack)-1]
}

// HasModal reports whether a modal is open.
func (m *DashboardModel) HasModal() bool {
	return len(m.modalStack) > 0
}
