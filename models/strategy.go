package models

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"tickerdeck/config"
	"tickerdeck/sortable"
	"tickerdeck/ui"
)

// Strategy lifecycle states.
const (
	StrategyRunning = "running"
	StrategyPaused  = "paused"
	StrategyStopped = "stopped"
)

// StrategyItem is one strategy row. Decision logic lives elsewhere; the row
// carries identity, lifecycle state, and derived performance numbers.
type StrategyItem struct {
	sortable.Row
	Name   string
	Symbol string
	Status string
	PnL    decimal.Decimal
	Wins   int
	Losses int
}

// WinRate is wins over total closed trades, in percent.
func (s *StrategyItem) WinRate() decimal.Decimal {
	total := s.Wins + s.Losses
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(s.Wins)).
		Div(decimal.NewFromInt(int64(total))).
		Mul(decimal.NewFromInt(100))
}

// StrategyModel owns the canonical strategy collection.
type StrategyModel struct {
	List *sortable.Container[*StrategyItem]
	rows []*StrategyItem
	Err  string
}

func NewStrategyModel(cfg config.PanelConfig, persist *sortable.Persister) *StrategyModel {
	s := &StrategyModel{
		rows: []*StrategyItem{
			newStrategy(0, "Momentum", "BTC", StrategyRunning, "412.50", 14, 6),
			newStrategy(1, "Scalping", "ETH", StrategyPaused, "-38.20", 22, 19),
			newStrategy(2, "Moving Average", "SOL", StrategyStopped, "105.75", 9, 4),
			newStrategy(3, "Mean Reversion", "LINK", StrategyRunning, "67.10", 11, 8),
		},
	}
	s.List = sortable.New(sortable.Options[*StrategyItem]{
		EnableVirtualization: cfg.Virtualize,
		MaxItems:             cfg.MaxItems,
		PersistOrder:         cfg.PersistOrder,
		StorageKey:           "strategies",
		AnimationPreset:      cfg.AnimationPreset,
		Handle:               sortable.HandleAlways,
		EmptyMessage:         "No strategies configured.",
		RenderItem:           renderStrategyRow,
		OnChange:             func(items []*StrategyItem) { s.rows = items },
		OnError:              func(err error) { s.Err = err.Error() },
	}, persist)
	s.List.SetItems(s.rows)
	return s
}

// strategyID slugs the strategy name into a stable row id. Ids must survive
// restarts or the persisted order record never matches the next session's rows.
func strategyID(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "-"))
}

func newStrategy(order int, name, symbol, status, pnl string, wins, losses int) *StrategyItem {
	return &StrategyItem{
		Row:    sortable.Row{ID: strategyID(name), Order: order},
		Name:   name,
		Symbol: symbol,
		Status: status,
		PnL:    decimal.RequireFromString(pnl),
		Wins:   wins,
		Losses: losses,
	}
}

func renderStrategyRow(it *StrategyItem, _ int) string {
	icon := "⏹"
	switch it.Status {
	case StrategyRunning:
		icon = "▶"
	case StrategyPaused:
		icon = "⏸"
	}
	return fmt.Sprintf("%s %-16s %-5s win %10s  pnl %s",
		icon, it.Name, it.Symbol, ui.FormatPercent(it.WinRate()), ui.FormatSignedMoney(it.PnL))
}

func (s *StrategyModel) Init() tea.Cmd { return s.List.Init() }

func (s *StrategyModel) Update(msg tea.Msg) tea.Cmd { return s.List.Update(msg) }

// SetStatus moves a strategy between lifecycle states. Stopping a paused
// strategy and starting a stopped one are both legal; the transition is a
// payload change, never an ordering change.
func (s *StrategyModel) SetStatus(id, status string) {
	for _, row := range s.rows {
		if row.ID == id {
			row.Status = status
			return
		}
	}
}

// ActiveCount counts running strategies.
func (s *StrategyModel) ActiveCount() int {
	n := 0
	for _, row := range s.rows {
		if row.Status == StrategyRunning {
			n++
		}
	}
	return n
}

// TotalPnL sums strategy P&L.
func (s *StrategyModel) TotalPnL() decimal.Decimal {
	total := decimal.Zero
	for _, row := range s.rows {
		total = total.Add(row.PnL)
	}
	return total
}

// OverallWinRate aggregates wins and losses across strategies, in percent.
func (s *StrategyModel) OverallWinRate() decimal.Decimal {
	wins, losses := 0, 0
	for _, row := range s.rows {
		wins += row.Wins
		losses += row.Losses
	}
	if wins+losses == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(wins)).
		Div(decimal.NewFromInt(int64(wins + losses))).
		Mul(decimal.NewFromInt(100))
}
