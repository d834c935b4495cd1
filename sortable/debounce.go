package sortable

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DebounceInterval is the quiet period after the last reorder before the new
// sequence is committed to the caller.
const DebounceInterval = 150 * time.Millisecond

// commitMsg fires when a scheduled commit's quiet period elapses. The tag
// routes it to the owning container; the seq drops it when a newer update
// superseded it.
type commitMsg struct {
	tag string
	seq int
}

// orderLoadedMsg carries the persisted ordering read at mount.
type orderLoadedMsg struct {
	tag     string
	entries []OrderEntry
}

// settleMsg clears the drop-settle highlight.
type settleMsg struct {
	tag string
}

// pushUpdate replaces the locally visible sequence immediately and schedules
// a commit after the quiet period. A second push before the period elapses
// bumps the sequence number, so the earlier commitMsg is discarded and only
// the final sequence of a burst reaches the caller.
func (c *Container[T]) pushUpdate(next []T) tea.Cmd {
	c.items = next
	c.pending = true
	c.seq++
	tag, seq := c.tag, c.seq
	return tea.Tick(DebounceInterval, func(time.Time) tea.Msg {
		return commitMsg{tag: tag, seq: seq}
	})
}

// commit delivers the current view to the caller and mirrors it to the
// persistence layer, fire and forget.
func (c *Container[T]) commit() tea.Cmd {
	c.pending = false
	if c.opts.OnChange != nil {
		c.opts.OnChange(append([]T(nil), c.items...))
	}
	if !c.persistEnabled() {
		return nil
	}
	p, key := c.persist, c.opts.StorageKey
	entries := EntriesFor(c.items)
	return func() tea.Msg {
		p.Save(key, entries)
		return nil
	}
}
