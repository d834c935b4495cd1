package models

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"tickerdeck/config"
	"tickerdeck/market"
	"tickerdeck/sortable"
	"tickerdeck/ui"
)

// PositionItem is one open position row. A position being closed renders
// inertly and is excluded from reordering until the close settles.
type PositionItem struct {
	sortable.Row
	Symbol    string
	Quantity  decimal.Decimal
	AvgCost   decimal.Decimal
	LastPrice decimal.Decimal
	Closing   bool
}

func (p *PositionItem) Disabled() bool { return p.Closing }

// MarketValue is quantity at the last seen price.
func (p *PositionItem) MarketValue() decimal.Decimal {
	return p.Quantity.Mul(p.LastPrice)
}

// CostBasis is quantity at average cost.
func (p *PositionItem) CostBasis() decimal.Decimal {
	return p.Quantity.Mul(p.AvgCost)
}

// PnL is the unrealized gain against cost basis.
func (p *PositionItem) PnL() decimal.Decimal {
	return p.MarketValue().Sub(p.CostBasis())
}

// positionClosedMsg fires when a simulated close fill settles.
type positionClosedMsg struct{ id string }

// PortfolioModel owns the canonical position collection.
type PortfolioModel struct {
	List *sortable.Container[*PositionItem]
	rows []*PositionItem
	Err  string
}

func NewPortfolioModel(cfg config.PanelConfig, persist *sortable.Persister) *PortfolioModel {
	p := &PortfolioModel{
		rows: []*PositionItem{
			newPosition(0, "BTC", "0.42", "58000"),
			newPosition(1, "ETH", "6.5", "2400"),
			newPosition(2, "SOL", "120", "95"),
			newPosition(3, "LINK", "400", "12.5"),
		},
	}
	p.List = sortable.New(sortable.Options[*PositionItem]{
		EnableVirtualization: cfg.Virtualize,
		MaxItems:             cfg.MaxItems,
		PersistOrder:         cfg.PersistOrder,
		StorageKey:           "portfolio",
		AnimationPreset:      cfg.AnimationPreset,
		Handle:               sortable.HandleHover,
		EmptyMessage:         "No open positions.",
		RenderItem:           renderPositionRow,
		OnChange:             func(items []*PositionItem) { p.rows = items },
		OnError:              func(err error) { p.Err = err.Error() },
	}, persist)
	p.List.SetItems(p.rows)
	return p
}

func newPosition(order int, symbol, qty, avgCost string) *PositionItem {
	return &PositionItem{
		Row:      sortable.Row{ID: symbol, Order: order},
		Symbol:   symbol,
		Quantity: decimal.RequireFromString(qty),
		AvgCost:  decimal.RequireFromString(avgCost),
	}
}

func renderPositionRow(it *PositionItem, _ int) string {
	if it.Closing {
		return fmt.Sprintf("%-6s closing...", it.Symbol)
	}
	return fmt.Sprintf("%-6s %12s @ %12s  mv %14s  pnl %s",
		it.Symbol,
		it.Quantity.String(),
		ui.FormatPrice(it.AvgCost),
		ui.FormatCompact(it.MarketValue()),
		ui.FormatSignedMoney(it.PnL()),
	)
}

func (p *PortfolioModel) Init() tea.Cmd { return p.List.Init() }

func (p *PortfolioModel) Update(msg tea.Msg) tea.Cmd { return p.List.Update(msg) }

// ApplyQuotes refreshes last prices in place.
func (p *PortfolioModel) ApplyQuotes(quotes map[string]market.Quote) {
	for _, row := range p.rows {
		if q, ok := quotes[row.Symbol]; ok {
			row.LastPrice = q.Price
		}
	}
}

// BeginClose marks a position as closing and schedules the simulated fill.
// The row goes inert immediately; the collection shrinks when the fill
// lands.
func (p *PortfolioModel) BeginClose(id string) tea.Cmd {
	for _, row := range p.rows {
		if row.ID == id && !row.Closing {
			row.Closing = true
			return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
				return positionClosedMsg{id: id}
			})
		}
	}
	return nil
}

// FinishClose removes the settled position and resyncs the container.
func (p *PortfolioModel) FinishClose(id string) {
	rows := p.rows[:0:0]
	for _, row := range p.rows {
		if row.ID != id {
			rows = append(rows, row)
		}
	}
	p.rows = rows
	p.List.SetItems(p.rows)
}

// Symbols lists position symbols for quote polling.
func (p *PortfolioModel) Symbols() []string {
	symbols := make([]string, 0, len(p.rows))
	for _, row := range p.rows {
		symbols = append(symbols, row.Symbol)
	}
	return symbols
}

// TotalValue sums market value across open positions.
func (p *PortfolioModel) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for _, row := range p.rows {
		total = total.Add(row.MarketValue())
	}
	return total
}

// AllocatedCapital sums cost basis across open positions.
func (p *PortfolioModel) AllocatedCapital() decimal.Decimal {
	total := decimal.Zero
	for _, row := range p.rows {
		total = total.Add(row.CostBasis())
	}
	return total
}

// TotalPnL is the aggregate unrealized gain.
func (p *PortfolioModel) TotalPnL() decimal.Decimal {
	return p.TotalValue().Sub(p.AllocatedCapital())
}
