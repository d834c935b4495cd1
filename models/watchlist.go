package models

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"tickerdeck/config"
	"tickerdeck/market"
	"tickerdeck/sortable"
	"tickerdeck/ui"
)

// WatchItem is one watchlist row. The symbol doubles as the stable row id.
type WatchItem struct {
	sortable.Row
	Symbol    string
	Name      string
	Price     decimal.Decimal
	Change24h decimal.Decimal
	Alert     bool
	HasQuote  bool
}

// WatchlistModel owns the canonical watchlist collection and adapts it onto
// the generic sortable container.
type WatchlistModel struct {
	List *sortable.Container[*WatchItem]
	rows []*WatchItem
	Err  string
}

var seedSymbols = []struct{ symbol, name string }{
	{"BTC", "Bitcoin"},
	{"ETH", "Ethereum"},
	{"SOL", "Solana"},
	{"DOGE", "Dogecoin"},
	{"ADA", "Cardano"},
	{"LINK", "Chainlink"},
	{"AVAX", "Avalanche"},
	{"DOT", "Polkadot"},
}

func NewWatchlistModel(cfg config.PanelConfig, persist *sortable.Persister) *WatchlistModel {
	w := &WatchlistModel{}
	for i, s := range seedSymbols {
		w.rows = append(w.rows, &WatchItem{
			Row:    sortable.Row{ID: s.symbol, Order: i},
			Symbol: s.symbol,
			Name:   s.name,
		})
	}
	w.List = sortable.New(sortable.Options[*WatchItem]{
		EnableMultiSelect:    cfg.MultiSelect,
		EnableVirtualization: cfg.Virtualize,
		MaxItems:             cfg.MaxItems,
		PersistOrder:         cfg.PersistOrder,
		StorageKey:           "watchlist",
		AnimationPreset:      cfg.AnimationPreset,
		Handle:               sortable.HandleHover,
		EmptyMessage:         "Watchlist is empty. Press 'n' to add a symbol.",
		RenderItem:           renderWatchRow,
		OnChange:             func(items []*WatchItem) { w.rows = items },
		OnError:              func(err error) { w.Err = err.Error() },
	}, persist)
	w.List.SetItems(w.rows)
	return w
}

func renderWatchRow(it *WatchItem, _ int) string {
	bell := " "
	if it.Alert {
		bell = "🔔"
	}
	price, change := "-", "-"
	if it.HasQuote {
		price = ui.FormatPrice(it.Price)
		change = ui.FormatPercent(it.Change24h)
	}
	return fmt.Sprintf("%-6s %-14s %14s %12s %s", it.Symbol, it.Name, price, change, bell)
}

func (w *WatchlistModel) Init() tea.Cmd { return w.List.Init() }

func (w *WatchlistModel) Update(msg tea.Msg) tea.Cmd { return w.List.Update(msg) }

// ApplyQuotes refreshes row payloads in place. Prices are display data; a
// quote refresh never touches the ordering pipeline.
func (w *WatchlistModel) ApplyQuotes(quotes map[string]market.Quote) {
	for _, row := range w.rows {
		if q, ok := quotes[row.Symbol]; ok {
			row.Price = q.Price
			row.Change24h = q.Change24h
			row.HasQuote = true
		}
	}
}

// ToggleAlert flips the alert flag for a row.
func (w *WatchlistModel) ToggleAlert(id string) {
	for _, row := range w.rows {
		if row.ID == id {
			row.Alert = !row.Alert
			return
		}
	}
}

// Remove drops a symbol from the canonical collection and resyncs the
// container to the new external truth.
func (w *WatchlistModel) Remove(id string) {
	rows := w.rows[:0:0]
	for _, row := range w.rows {
		if row.ID != id {
			rows = append(rows, row)
		}
	}
	w.rows = rows
	w.List.SetItems(w.rows)
}

// AddNext appends the first known symbol not already on the list.
func (w *WatchlistModel) AddNext() {
	present := make(map[string]bool, len(w.rows))
	for _, row := range w.rows {
		present[row.Symbol] = true
	}
	for _, s := range market.KnownSymbols() {
		if !present[s] {
			w.rows = append(w.rows, &WatchItem{
				Row:    sortable.Row{ID: s, Order: len(w.rows)},
				Symbol: s,
				Name:   s,
			})
			w.List.SetItems(w.rows)
			return
		}
	}
}

// CopySymbol puts a row's symbol on the system clipboard.
func (w *WatchlistModel) CopySymbol(id string) error {
	for _, row := range w.rows {
		if row.ID == id {
			return clipboard.WriteAll(row.Symbol)
		}
	}
	return fmt.Errorf("symbol %q not on watchlist", id)
}

// Symbols lists the canonical symbols, for quote polling.
func (w *WatchlistModel) Symbols() []string {
	symbols := make([]string, 0, len(w.rows))
	for _, row := range w.rows {
		symbols = append(symbols, row.Symbol)
	}
	return symbols
}

// DayChange sums the 24h move across quoted rows, a derived display value.
func (w *WatchlistModel) DayChange() decimal.Decimal {
	total := decimal.Zero
	for _, row := range w.rows {
		if row.HasQuote {
			total = total.Add(row.Change24h)
		}
	}
	return total
}

// AlertCount counts rows with the alert flag set.
func (w *WatchlistModel) AlertCount() int {
	n := 0
	for _, row := range w.rows {
		if row.Alert {
			n++
		}
	}
	return n
}
