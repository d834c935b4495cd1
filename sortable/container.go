// Package sortable implements a generic reorderable collection for bubbletea
// panels. A container composes windowed rendering, debounced commits, and
// durable order persistence around a caller-owned item slice; callers supply
// the per-row renderer and receive the committed sequence through OnChange.
package sortable

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"tickerdeck/ui"
)

// Options configures a container. Items with colliding keys are a caller
// error: grab tracking cannot tell them apart.
type Options[T Item] struct {
	EnableMultiSelect    bool
	EnableVirtualization bool
	// MaxItems is a display-only cap indicator; it never truncates data.
	MaxItems        int
	PersistOrder    bool
	StorageKey      string
	AnimationPreset string
	Handle          HandleMode
	ItemHeight      int
	EmptyMessage    string

	RenderItem func(item T, index int) string
	// OnChange receives the committed sequence after the debounce quiet
	// period. The slice is a fresh copy.
	OnChange func(items []T)
	// OnError receives drag-resolution errors; the visual state has already
	// reverted when it is called. Non-fatal.
	OnError func(err error)
}

// Container orchestrates the reorder protocol for one panel. All methods run
// on the bubbletea update loop; there is no internal locking.
type Container[T Item] struct {
	opts    Options[T]
	preset  Preset
	persist *Persister
	tag     string

	items    []T
	cursor   int
	scroll   int
	width    int
	height   int
	loading  bool
	grabKey  string
	grabFrom int
	selected map[string]struct{}

	settleKey string

	// debounce state, see debounce.go
	pending bool
	seq     int
}

// New builds a container. The persister may be nil when PersistOrder is off.
func New[T Item](opts Options[T], persist *Persister) *Container[T] {
	if opts.ItemHeight < 1 {
		opts.ItemHeight = 1
	}
	if opts.EmptyMessage == "" {
		opts.EmptyMessage = "Nothing here yet."
	}
	return &Container[T]{
		opts:     opts,
		preset:   PresetByName(opts.AnimationPreset),
		persist:  persist,
		tag:      uuid.NewString(),
		height:   10,
		selected: make(map[string]struct{}),
	}
}

func (c *Container[T]) persistEnabled() bool {
	return c.opts.PersistOrder && c.persist != nil && c.opts.StorageKey != ""
}

// Init loads the persisted ordering, once. The result is applied through the
// same debounce path as a user reorder.
func (c *Container[T]) Init() tea.Cmd {
	if !c.persistEnabled() {
		return nil
	}
	p, key, tag := c.persist, c.opts.StorageKey, c.tag
	return func() tea.Msg {
		return orderLoadedMsg{tag: tag, entries: p.Load(key)}
	}
}

// SetItems resynchronizes the view to the caller's canonical collection.
// External truth wins: any pending uncommitted local state is discarded and
// an in-progress grab is cancelled. The caller's slice is copied, never
// mutated in place.
func (c *Container[T]) SetItems(items []T) {
	c.items = append([]T(nil), items...)
	c.pending = false
	c.seq++
	c.grabKey = ""
	c.clampCursor()
	for key := range c.selected {
		if c.indexOf(key) < 0 {
			delete(c.selected, key)
		}
	}
}

// Items returns a copy of the current debounced view.
func (c *Container[T]) Items() []T {
	return append([]T(nil), c.items...)
}

func (c *Container[T]) Len() int { return len(c.items) }

func (c *Container[T]) Cursor() int { return c.cursor }

func (c *Container[T]) Grabbed() bool { return c.grabKey != "" }

func (c *Container[T]) Loading() bool { return c.loading }

func (c *Container[T]) Preset() Preset { return c.preset }

func (c *Container[T]) SetLoading(v bool) { c.loading = v }

// SetSize sets the viewport in terminal cells.
func (c *Container[T]) SetSize(width, height int) {
	c.width = width
	if height > 0 {
		c.height = height
	}
	c.ensureVisible()
}

// CursorItem returns the item under the cursor.
func (c *Container[T]) CursorItem() (T, bool) {
	var zero T
	if c.cursor < 0 || c.cursor >= len(c.items) {
		return zero, false
	}
	return c.items[c.cursor], true
}

func (c *Container[T]) indexOf(key string) int {
	for i, it := range c.items {
		if it.Key() == key {
			return i
		}
	}
	return -1
}

func (c *Container[T]) clampCursor() {
	if c.cursor >= len(c.items) {
		c.cursor = len(c.items) - 1
	}
	if c.cursor < 0 {
		c.cursor = 0
	}
	c.ensureVisible()
}

func (c *Container[T]) ensureVisible() {
	h := c.opts.ItemHeight
	top := c.cursor * h
	if top < c.scroll {
		c.scroll = top
	}
	if top+h > c.scroll+c.height {
		c.scroll = top + h - c.height
	}
	if c.scroll < 0 {
		c.scroll = 0
	}
}

// MoveCursor moves the cursor by delta rows. While a grab is active,
// disabled rows are skipped: they can be neither picked up nor dropped onto.
func (c *Container[T]) MoveCursor(delta int) {
	if len(c.items) == 0 || c.loading {
		return
	}
	step := 1
	if delta < 0 {
		step = -1
	}
	for delta != 0 {
		next := c.cursor + step
		if next < 0 || next >= len(c.items) {
			break
		}
		c.cursor = next
		if !(c.Grabbed() && c.items[c.cursor].Disabled()) {
			delta -= step
		}
	}
	// A grab may strand the cursor on a disabled row at the edge; walk back.
	if c.Grabbed() && c.cursor >= 0 && c.cursor < len(c.items) && c.items[c.cursor].Disabled() {
		for c.cursor > 0 && c.items[c.cursor].Disabled() {
			c.cursor--
		}
	}
	c.ensureVisible()
}

// Grab picks up the row under the cursor. Only one grab is permitted at a
// time; grabbing while a grab is active is a no-op, as is grabbing a
// disabled row.
func (c *Container[T]) Grab() {
	if c.Grabbed() || c.loading {
		return
	}
	it, ok := c.CursorItem()
	if !ok || it.Disabled() {
		return
	}
	c.grabKey = it.Key()
	c.grabFrom = c.cursor
}

// CancelGrab releases the grab with no mutation and no commit; the row
// returns to its pre-grab position.
func (c *Container[T]) CancelGrab() {
	if !c.Grabbed() {
		return
	}
	c.grabKey = ""
	c.cursor = c.grabFrom
	c.clampCursor()
}

// Drop completes the grab: the grabbed row moves to the cursor row's index
// with remove-then-insert semantics, order fields are re-stamped to the new
// zero-based sequence, and the result goes through the debounce layer. A
// drop onto the grabbed row itself is a no-op. Resolution failures revert
// the grab and are forwarded to OnError; they never escape the container.
func (c *Container[T]) Drop() tea.Cmd {
	if !c.Grabbed() {
		return nil
	}
	key := c.grabKey
	c.grabKey = ""

	over, ok := c.CursorItem()
	if !ok || over.Key() == key {
		c.cursor = c.grabFrom
		c.clampCursor()
		return nil
	}
	if over.Disabled() {
		c.cursor = c.grabFrom
		c.clampCursor()
		return nil
	}

	from := c.indexOf(key)
	to := c.indexOf(over.Key())
	if from < 0 || to < 0 {
		c.cursor = c.grabFrom
		c.clampCursor()
		c.fail(fmt.Errorf("reorder failed: rows %q and %q not both present", key, over.Key()))
		return nil
	}

	next := moveItem(c.items, from, to)
	for i, it := range next {
		it.SetOrderIndex(i)
	}
	c.cursor = to
	c.settleKey = key
	tag := c.tag
	return tea.Batch(
		c.pushUpdate(next),
		tea.Tick(c.preset.Duration, func(time.Time) tea.Msg {
			return settleMsg{tag: tag}
		}),
	)
}

func (c *Container[T]) fail(err error) {
	if c.opts.OnError != nil {
		c.opts.OnError(err)
	}
}

// ToggleSelect toggles the cursor row in the selection set. A no-op unless
// multi-select is enabled. Selection is display state only; it never affects
// ordering or persistence.
func (c *Container[T]) ToggleSelect() {
	if !c.opts.EnableMultiSelect {
		return
	}
	it, ok := c.CursorItem()
	if !ok {
		return
	}
	key := it.Key()
	if _, on := c.selected[key]; on {
		delete(c.selected, key)
	} else {
		c.selected[key] = struct{}{}
	}
}

// Selected reports whether the keyed row is in the selection set.
func (c *Container[T]) Selected(key string) bool {
	_, on := c.selected[key]
	return on
}

// SelectedCount returns the size of the selection set.
func (c *Container[T]) SelectedCount() int { return len(c.selected) }

// Update handles the container's own timer and persistence messages.
// Messages tagged for other containers pass through untouched, so several
// containers can share one program loop.
func (c *Container[T]) Update(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case commitMsg:
		if m.tag != c.tag || !c.pending || m.seq != c.seq {
			return nil
		}
		return c.commit()
	case orderLoadedMsg:
		if m.tag != c.tag || len(m.entries) == 0 {
			return nil
		}
		return c.pushUpdate(Reconcile(c.items, m.entries))
	case settleMsg:
		if m.tag == c.tag {
			c.settleKey = ""
		}
	}
	return nil
}

// View renders the panel body.
func (c *Container[T]) View() string {
	if c.loading {
		return ui.LoadingStyle.Render("⣾ Loading...")
	}
	if len(c.items) == 0 {
		return ui.DisabledStyle.Render(c.opts.EmptyMessage)
	}

	win := VisibleWindow(len(c.items), c.opts.ItemHeight, c.height, c.scroll, c.opts.EnableVirtualization)

	var b strings.Builder
	if win.Active && win.Start > 0 {
		b.WriteString(ui.DisabledStyle.Render(fmt.Sprintf("  … %d above", win.Start)) + "\n")
	}
	for i := win.Start; i < win.End; i++ {
		it := c.items[i]
		content := it.Key()
		if c.opts.RenderItem != nil {
			content = c.opts.RenderItem(it, i)
		}
		b.WriteString(renderRow(content, c.rowState(i), c.opts.Handle, c.Selected(it.Key())))
		b.WriteString("\n")
	}
	if win.Active && win.End < len(c.items) {
		b.WriteString(ui.DisabledStyle.Render(fmt.Sprintf("  … %d below", len(c.items)-win.End)) + "\n")
	}
	if c.opts.MaxItems > 0 && len(c.items) > c.opts.MaxItems {
		b.WriteString(ui.DisabledStyle.Render(fmt.Sprintf("  %d rows over the %d-row cap", len(c.items)-c.opts.MaxItems, c.opts.MaxItems)) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (c *Container[T]) rowState(i int) RowState {
	it := c.items[i]
	switch {
	case it.Disabled():
		return RowDisabled
	case c.Grabbed() && it.Key() == c.grabKey:
		return RowGrabbed
	case c.Grabbed() && i == c.cursor:
		return RowTarget
	case it.Key() == c.settleKey:
		return RowSettle
	case i == c.cursor:
		return RowHover
	}
	return RowIdle
}

// moveItem removes the element at from and reinserts it at to, preserving
// the relative order of everything else.
func moveItem[T any](items []T, from, to int) []T {
	out := append([]T(nil), items...)
	it := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out, it)
	copy(out[to+1:], out[to:len(out)-1])
	out[to] = it
	return out
}
