package models

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"tickerdeck/config"
	"tickerdeck/market"
	"tickerdeck/sortable"
)

// App states
const (
	StateMenu = iota
	StateWatchlist
	StatePortfolio
	StateStrategies
	StateHelp
)

type AppModel struct {
	State  int
	Cursor int
	Width  int
	Height int

	Choices []string

	Watchlist  *WatchlistModel
	Portfolio  *PortfolioModel
	Strategies *StrategyModel

	Market *market.Client
	Cfg    *config.Config
	Log    *zap.Logger

	Err        string
	quotesBusy bool
	lastQuote  time.Time
}

func NewAppModel(cfg *config.Config, persist *sortable.Persister, mkt *market.Client, log *zap.Logger) *AppModel {
	if log == nil {
		log = zap.NewNop()
	}
	return &AppModel{
		State: StateMenu,
		Choices: []string{
			"📈 Watchlist",
			"💼 Portfolio",
			"🤖 Strategies",
			"❓ Help",
			"🚪 Exit",
		},
		Watchlist:  NewWatchlistModel(cfg.Panel("watchlist"), persist),
		Portfolio:  NewPortfolioModel(cfg.Panel("portfolio"), persist),
		Strategies: NewStrategyModel(cfg.Panel("strategies"), persist),
		Market:     mkt,
		Cfg:        cfg,
		Log:        log,
	}
}

// Message types
type tickMsg time.Time

type quotesMsg struct {
	quotes map[string]market.Quote
	err    error
}

func tickEvery(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *AppModel) fetchQuotesCmd() tea.Cmd {
	symbols := append(m.Watchlist.Symbols(), m.Portfolio.Symbols()...)
	mkt := m.Market
	return func() tea.Msg {
		quotes, err := mkt.Quotes(symbols)
		return quotesMsg{quotes: quotes, err: err}
	}
}

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		m.Watchlist.Init(),
		m.Portfolio.Init(),
		m.Strategies.Init(),
		m.fetchQuotesCmd(),
		tickEvery(m.Cfg.Refresh.QuoteInterval()),
	)
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		listHeight := msg.Height - 12
		m.Watchlist.List.SetSize(msg.Width, listHeight)
		m.Portfolio.List.SetSize(msg.Width, listHeight)
		m.Strategies.List.SetSize(msg.Width, listHeight)
		return m, nil

	case tickMsg:
		if m.quotesBusy {
			return m, tickEvery(m.Cfg.Refresh.QuoteInterval())
		}
		m.quotesBusy = true
		return m, tea.Batch(
			m.fetchQuotesCmd(),
			tickEvery(m.Cfg.Refresh.QuoteInterval()),
		)

	case quotesMsg:
		m.quotesBusy = false
		if msg.err != nil {
			m.Log.Warn("quote refresh failed", zap.Error(msg.err))
			return m, nil
		}
		m.lastQuote = time.Now()
		m.Watchlist.ApplyQuotes(msg.quotes)
		m.Portfolio.ApplyQuotes(msg.quotes)
		return m, nil

	case positionClosedMsg:
		m.Portfolio.FinishClose(msg.id)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	// Container-internal messages (debounce commits, persisted orders,
	// settle ticks) route themselves by tag.
	return m, tea.Batch(
		m.Watchlist.Update(msg),
		m.Portfolio.Update(msg),
		m.Strategies.Update(msg),
	)
}

func (m *AppModel) View() string {
	switch m.State {
	case StateMenu:
		return m.menuView()
	case StateWatchlist:
		return m.watchlistView()
	case StatePortfolio:
		return m.portfolioView()
	case StateStrategies:
		return m.strategiesView()
	case StateHelp:
		return m.helpView()
	default:
		return m.menuView()
	}
}

// dispatch routes a domain action to its panel. Actions are independent of
// drag state and never feed back into the ordering contract.
func (m *AppModel) dispatch(a sortable.Action) tea.Cmd {
	switch a.Kind {
	case sortable.ActionToggleAlert:
		m.Watchlist.ToggleAlert(a.ItemID)
	case sortable.ActionRemove:
		m.Watchlist.Remove(a.ItemID)
	case sortable.ActionCopySymbol:
		if err := m.Watchlist.CopySymbol(a.ItemID); err != nil {
			m.Err = fmt.Sprintf("Copy failed: %v", err)
		}
	case sortable.ActionClosePosition:
		return m.Portfolio.BeginClose(a.ItemID)
	case sortable.ActionStartStrategy:
		m.Strategies.SetStatus(a.ItemID, StrategyRunning)
	case sortable.ActionPauseStrategy:
		m.Strategies.SetStatus(a.ItemID, StrategyPaused)
	case sortable.ActionStopStrategy:
		m.Strategies.SetStatus(a.ItemID, StrategyStopped)
	}
	return nil
}
