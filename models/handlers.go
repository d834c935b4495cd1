package models

import (
	tea "github.com/charmbracelet/bubbletea"

	"tickerdeck/sortable"
)

func (m *AppModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "q":
		if m.State == StateMenu {
			return m, tea.Quit
		}
		if list := m.activeList(); list != nil && list.grabbed() {
			break // let the panel handler treat it as a normal key
		}
		m.State = StateMenu
		m.Err = ""
		return m, nil

	case "esc":
		// Cancel an in-progress grab before leaving a panel.
		if list := m.activeList(); list != nil && list.grabbed() {
			list.cancel()
			return m, nil
		}
		m.State = StateMenu
		m.Err = ""
		return m, nil

	case "1":
		m.State = StateWatchlist
		return m, nil
	case "2":
		m.State = StatePortfolio
		return m, nil
	case "3":
		m.State = StateStrategies
		return m, nil

	case "r", "f5":
		if !m.quotesBusy {
			m.quotesBusy = true
			return m, m.fetchQuotesCmd()
		}
		return m, nil
	}

	switch m.State {
	case StateMenu:
		return m.handleMenuKeys(msg)
	case StateWatchlist:
		return m.handleWatchlistKeys(msg)
	case StatePortfolio:
		return m.handlePortfolioKeys(msg)
	case StateStrategies:
		return m.handleStrategyKeys(msg)
	}
	return m, nil
}

// panelList narrows the three generic containers to the handful of drag ops
// the key handlers need.
type panelList interface {
	grabbed() bool
	cancel()
}

type listOps[T sortable.Item] struct{ c *sortable.Container[T] }

func (l listOps[T]) grabbed() bool { return l.c.Grabbed() }

func (l listOps[T]) cancel() { l.c.CancelGrab() }

func (m *AppModel) activeList() panelList {
	switch m.State {
	case StateWatchlist:
		return listOps[*WatchItem]{m.Watchlist.List}
	case StatePortfolio:
		return listOps[*PositionItem]{m.Portfolio.List}
	case StateStrategies:
		return listOps[*StrategyItem]{m.Strategies.List}
	}
	return nil
}

func (m *AppModel) handleMenuKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Choices)-1 {
			m.Cursor++
		}
	case "enter", " ":
		switch m.Cursor {
		case 0:
			m.State = StateWatchlist
		case 1:
			m.State = StatePortfolio
		case 2:
			m.State = StateStrategies
		case 3:
			m.State = StateHelp
		case 4:
			return m, tea.Quit
		}
	}
	return m, nil
}

// handleListKeys covers the movement and grab protocol shared by all panels:
// j/k move the cursor, space grabs and drops, enter drops.
func handleListKeys[T sortable.Item](list *sortable.Container[T], msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "up", "k":
		list.MoveCursor(-1)
		return nil, true
	case "down", "j":
		list.MoveCursor(1)
		return nil, true
	case " ":
		if list.Grabbed() {
			return list.Drop(), true
		}
		list.Grab()
		return nil, true
	case "enter":
		if list.Grabbed() {
			return list.Drop(), true
		}
		return nil, true
	case "v":
		list.ToggleSelect()
		return nil, true
	}
	return nil, false
}

func (m *AppModel) handleWatchlistKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if cmd, handled := handleListKeys(m.Watchlist.List, msg); handled {
		return m, cmd
	}
	switch msg.String() {
	case "a":
		if it, ok := m.Watchlist.List.CursorItem(); ok {
			return m, m.dispatch(sortable.Action{Kind: sortable.ActionToggleAlert, ItemID: it.Key()})
		}
	case "x", "d":
		if it, ok := m.Watchlist.List.CursorItem(); ok {
			return m, m.dispatch(sortable.Action{Kind: sortable.ActionRemove, ItemID: it.Key()})
		}
	case "c":
		if it, ok := m.Watchlist.List.CursorItem(); ok {
			return m, m.dispatch(sortable.Action{Kind: sortable.ActionCopySymbol, ItemID: it.Key()})
		}
	case "n":
		m.Watchlist.AddNext()
	}
	return m, nil
}

func (m *AppModel) handlePortfolioKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if cmd, handled := handleListKeys(m.Portfolio.List, msg); handled {
		return m, cmd
	}
	switch msg.String() {
	case "x":
		if it, ok := m.Portfolio.List.CursorItem(); ok {
			return m, m.dispatch(sortable.Action{Kind: sortable.ActionClosePosition, ItemID: it.Key()})
		}
	}
	return m, nil
}

func (m *AppModel) handleStrategyKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if cmd, handled := handleListKeys(m.Strategies.List, msg); handled {
		return m, cmd
	}
	it, ok := m.Strategies.List.CursorItem()
	if !ok {
		return m, nil
	}
	switch msg.String() {
	case "s":
		return m, m.dispatch(sortable.Action{Kind: sortable.ActionStartStrategy, ItemID: it.Key()})
	case "p":
		return m, m.dispatch(sortable.Action{Kind: sortable.ActionPauseStrategy, ItemID: it.Key()})
	case "t":
		return m, m.dispatch(sortable.Action{Kind: sortable.ActionStopStrategy, ItemID: it.Key()})
	}
	return m, nil
}
