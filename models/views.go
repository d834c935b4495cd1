package models

import (
	"fmt"
	"strings"

	"tickerdeck/sortable"
	"tickerdeck/ui"
)

func (m *AppModel) menuView() string {
	title := ui.TitleStyle.Render("⚡ TICKERDECK ⚡\nTerminal Trading Dashboard")

	var menu strings.Builder
	menu.WriteString("Choose a panel:\n\n")
	for i, choice := range m.Choices {
		cursor := " "
		if m.Cursor == i {
			cursor = ">"
			choice = ui.SelectedStyle.Render(choice)
		} else {
			choice = ui.UnselectedStyle.Render(choice)
		}
		menu.WriteString(fmt.Sprintf("%s %s\n", cursor, choice))
	}

	quoteStatus := "🔴 No quotes yet"
	if !m.lastQuote.IsZero() {
		quoteStatus = "🟢 Quotes as of " + m.lastQuote.Format("15:04:05")
	}
	footer := ui.InfoStyle.Render(fmt.Sprintf(
		"\nStatus: %s\nPress 'q' to quit • ↑↓ to navigate • Enter to select\nShortcuts: 1-Watchlist 2-Portfolio 3-Strategies",
		quoteStatus))

	return fmt.Sprintf("%s\n\n%s\n%s", title, ui.PanelStyle.Render(menu.String()), footer)
}

func (m *AppModel) panelChrome(title, summary, body, panelErr string) string {
	header := ui.HeaderStyle.Render(title)
	var content strings.Builder
	if m.Err != "" {
		content.WriteString(ui.NegativeStyle.Render("❌ "+m.Err) + "\n\n")
	}
	if panelErr != "" {
		content.WriteString(ui.NegativeStyle.Render("❌ "+panelErr) + "\n\n")
	}
	if summary != "" {
		content.WriteString(summary + "\n\n")
	}
	content.WriteString(body)
	footer := ui.InfoStyle.Render("j/k move • Space grab/drop • Enter drop • Esc cancel/back • R refresh")
	return fmt.Sprintf("%s\n%s\n%s", header, ui.PanelStyle.Render(content.String()), footer)
}

func (m *AppModel) watchlistView() string {
	summary := fmt.Sprintf("Σ 24h move %s  •  %d alerts  •  %d selected",
		ui.FormatPercent(m.Watchlist.DayChange()),
		m.Watchlist.AlertCount(),
		m.Watchlist.List.SelectedCount(),
	)
	body := m.Watchlist.List.View()
	return m.panelChrome("📈 WATCHLIST", summary, body, m.Watchlist.Err) +
		"\n" + ui.InfoStyle.Render("a alert • x remove • c copy • n add • v select")
}

func (m *AppModel) portfolioView() string {
	summary := fmt.Sprintf("Value %s  •  Allocated %s  •  P&L %s",
		ui.FormatMoney(m.Portfolio.TotalValue()),
		ui.FormatMoney(m.Portfolio.AllocatedCapital()),
		ui.FormatSignedMoney(m.Portfolio.TotalPnL()),
	)
	body := m.Portfolio.List.View()
	return m.panelChrome("💼 PORTFOLIO", summary, body, m.Portfolio.Err) +
		"\n" + ui.InfoStyle.Render("x close position")
}

func (m *AppModel) strategiesView() string {
	summary := fmt.Sprintf("%d active  •  win rate %s  •  P&L %s",
		m.Strategies.ActiveCount(),
		ui.FormatPercent(m.Strategies.OverallWinRate()),
		ui.FormatSignedMoney(m.Strategies.TotalPnL()),
	)
	body := m.Strategies.List.View()
	return m.panelChrome("🤖 STRATEGIES", summary, body, m.Strategies.Err) +
		"\n" + ui.InfoStyle.Render("s start • p pause • t stop")
}

func (m *AppModel) helpView() string {
	title := ui.HeaderStyle.Render("❓ HELP")

	content := fmt.Sprintf(`
⚡ TICKERDECK HELP
═════════════════

KEYBOARD SHORTCUTS:
  ↑↓ or jk    - Move cursor
  Space       - Grab / drop a row
  Enter       - Drop a grabbed row
  Esc         - Cancel grab / return to menu
  Q           - Quit (from main menu)
  R/F5        - Refresh quotes
  1/2/3       - Jump to Watchlist / Portfolio / Strategies

REORDERING:
  Grab a row with Space, move it with j/k, drop it with
  Space or Enter. The new order is saved after a short
  quiet period and restored on the next start. Esc puts
  a grabbed row back where it was.

PANEL ACTIONS:
  Watchlist   - a alert, x remove, c copy symbol, n add
  Portfolio   - x close position
  Strategies  - s start, p pause, t stop

NOTES:
  Rows being closed are dimmed and cannot be reordered.
  Quotes refresh in the background; prices are display
  data and never reorder your rows.
  Animation presets (per panel, config.yaml): %s
`, strings.Join(sortable.PresetNames(), ", "))

	footer := ui.InfoStyle.Render("Press 'Esc' to return to menu")
	return fmt.Sprintf("%s\n%s\n%s", title, ui.PanelStyle.Render(content), footer)
}
