package sortable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRow struct {
	Row
	off bool
}

func (r *testRow) Disabled() bool { return r.off }

func newRows(keys ...string) []*testRow {
	rows := make([]*testRow, len(keys))
	for i, k := range keys {
		rows[i] = &testRow{Row: Row{ID: k, Order: i}}
	}
	return rows
}

func keysOf(rows []*testRow) []string {
	keys := make([]string, len(rows))
	for i, r := range rows {
		keys[i] = r.ID
	}
	return keys
}

func newTestContainer(opts Options[*testRow], keys ...string) *Container[*testRow] {
	c := New(opts, nil)
	c.SetItems(newRows(keys...))
	return c
}

// drag moves the cursor to fromKey, grabs, moves to overKey, and drops.
func drag(c *Container[*testRow], fromKey, overKey string) {
	c.cursor = c.indexOf(fromKey)
	c.Grab()
	c.cursor = c.indexOf(overKey)
	c.Drop()
}

func TestDropMovesItemAndRestampsOrder(t *testing.T) {
	c := newTestContainer(Options[*testRow]{}, "a", "b", "c", "d")

	drag(c, "a", "c")

	require.Equal(t, []string{"b", "c", "a", "d"}, keysOf(c.items))
	for i, r := range c.items {
		assert.Equal(t, i, r.Order, "order field must match position for %s", r.ID)
	}
}

func TestDropBackwardPreservesRelativeOrder(t *testing.T) {
	c := newTestContainer(Options[*testRow]{}, "a", "b", "c", "d")

	drag(c, "d", "b")

	assert.Equal(t, []string{"a", "d", "b", "c"}, keysOf(c.items))
}

func TestDropOnSelfIsIdempotent(t *testing.T) {
	var commits int
	c := newTestContainer(Options[*testRow]{
		OnChange: func([]*testRow) { commits++ },
	}, "a", "b", "c")

	drag(c, "b", "b")

	assert.Equal(t, []string{"a", "b", "c"}, keysOf(c.items))
	assert.False(t, c.pending)

	// Even a stray timer tick must not commit anything.
	c.Update(commitMsg{tag: c.tag, seq: c.seq})
	assert.Zero(t, commits)
}

func TestDropUnknownIDRevertsAndReportsError(t *testing.T) {
	var gotErr error
	var commits int
	c := newTestContainer(Options[*testRow]{
		OnChange: func([]*testRow) { commits++ },
		OnError:  func(err error) { gotErr = err },
	}, "a", "b", "c")

	c.cursor = 0
	c.Grab()
	c.grabKey = "ghost"
	c.cursor = 2
	cmd := c.Drop()

	assert.Nil(t, cmd)
	assert.Error(t, gotErr)
	assert.Equal(t, []string{"a", "b", "c"}, keysOf(c.items), "visual state must revert")
	assert.False(t, c.Grabbed())
	assert.Zero(t, commits)
}

func TestDebounceCoalescesBursts(t *testing.T) {
	var commits [][]string
	c := newTestContainer(Options[*testRow]{
		OnChange: func(items []*testRow) { commits = append(commits, keysOf(items)) },
	}, "a", "b", "c")

	drag(c, "a", "b") // b a c
	staleSeq := c.seq
	drag(c, "c", "b") // c b a
	drag(c, "a", "c") // a c b

	// The two superseded commits are dropped.
	c.Update(commitMsg{tag: c.tag, seq: staleSeq})
	require.Empty(t, commits)

	c.Update(commitMsg{tag: c.tag, seq: c.seq})
	require.Len(t, commits, 1)
	assert.Equal(t, keysOf(c.items), commits[0])
}

func TestCommitIgnoresOtherContainersMessages(t *testing.T) {
	var commits int
	c := newTestContainer(Options[*testRow]{
		OnChange: func([]*testRow) { commits++ },
	}, "a", "b")

	drag(c, "a", "b")
	c.Update(commitMsg{tag: "someone-else", seq: c.seq})
	assert.Zero(t, commits)

	c.Update(commitMsg{tag: c.tag, seq: c.seq})
	assert.Equal(t, 1, commits)
}

func TestSetItemsDiscardsPendingCommit(t *testing.T) {
	var commits int
	c := newTestContainer(Options[*testRow]{
		OnChange: func([]*testRow) { commits++ },
	}, "a", "b", "c")

	drag(c, "a", "c")
	pendingSeq := c.seq

	// External truth arrives: a row was deleted elsewhere.
	c.SetItems(newRows("a", "b"))

	c.Update(commitMsg{tag: c.tag, seq: pendingSeq})
	assert.Zero(t, commits, "pending local state must be discarded")
	assert.Equal(t, []string{"a", "b"}, keysOf(c.items))
}

func TestSetItemsCancelsActiveGrab(t *testing.T) {
	c := newTestContainer(Options[*testRow]{}, "a", "b", "c")

	c.cursor = 1
	c.Grab()
	require.True(t, c.Grabbed())

	c.SetItems(newRows("a", "c"))
	assert.False(t, c.Grabbed())
}

func TestDisabledRowCannotBeGrabbedOrTargeted(t *testing.T) {
	c := newTestContainer(Options[*testRow]{}, "a", "b", "c")
	c.items[1].off = true

	c.cursor = 1
	c.Grab()
	assert.False(t, c.Grabbed(), "disabled row must not grab")

	c.cursor = 0
	c.Grab()
	require.True(t, c.Grabbed())
	c.MoveCursor(1)
	assert.Equal(t, 2, c.cursor, "cursor must skip disabled rows while grabbing")

	// Forcing a drop on the disabled row is a no-op.
	c.Grab()
	c.cursor = 1
	cmd := c.Drop()
	assert.Nil(t, cmd)
	assert.Equal(t, []string{"a", "b", "c"}, keysOf(c.items))
}

func TestCancelGrabRestoresCursorWithoutCommit(t *testing.T) {
	var commits int
	c := newTestContainer(Options[*testRow]{
		OnChange: func([]*testRow) { commits++ },
	}, "a", "b", "c")

	c.cursor = 0
	c.Grab()
	c.MoveCursor(2)
	c.CancelGrab()

	assert.False(t, c.Grabbed())
	assert.Equal(t, 0, c.cursor)
	assert.Equal(t, []string{"a", "b", "c"}, keysOf(c.items))
	c.Update(commitMsg{tag: c.tag, seq: c.seq})
	assert.Zero(t, commits)
}

func TestSecondGrabIsNoOp(t *testing.T) {
	c := newTestContainer(Options[*testRow]{}, "a", "b")

	c.cursor = 0
	c.Grab()
	c.cursor = 1
	c.Grab()
	assert.Equal(t, "a", c.grabKey, "only one grab at a time")
}

func TestToggleSelectRequiresMultiSelect(t *testing.T) {
	c := newTestContainer(Options[*testRow]{}, "a", "b")
	c.ToggleSelect()
	assert.Zero(t, c.SelectedCount())

	c = newTestContainer(Options[*testRow]{EnableMultiSelect: true}, "a", "b")
	c.ToggleSelect()
	assert.Equal(t, 1, c.SelectedCount())
	assert.True(t, c.Selected("a"))

	// Selection never affects ordering.
	drag(c, "a", "b")
	assert.Equal(t, []string{"b", "a"}, keysOf(c.items))
	assert.True(t, c.Selected("a"))

	c.ToggleSelect() // cursor now on "a" after the drop
	assert.Zero(t, c.SelectedCount())
}

func TestLoadedOrderGoesThroughCommitPath(t *testing.T) {
	var commits [][]string
	c := newTestContainer(Options[*testRow]{
		OnChange: func(items []*testRow) { commits = append(commits, keysOf(items)) },
	}, "AAPL", "TSLA", "NVDA")

	c.Update(orderLoadedMsg{tag: c.tag, entries: []OrderEntry{
		{ID: "NVDA", Order: 0},
		{ID: "AAPL", Order: 1},
	}})

	assert.Equal(t, []string{"NVDA", "AAPL", "TSLA"}, keysOf(c.items),
		"unseen rows append last in prior relative order")
	require.True(t, c.pending, "restored order commits like a user reorder")

	c.Update(commitMsg{tag: c.tag, seq: c.seq})
	require.Len(t, commits, 1)
	assert.Equal(t, []string{"NVDA", "AAPL", "TSLA"}, commits[0])
}

func TestWatchlistReorderScenario(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	persist := NewPersister(store, nil, nil)

	var commits [][]string
	c := New(Options[*testRow]{
		PersistOrder: true,
		StorageKey:   "watchlist",
		OnChange:     func(items []*testRow) { commits = append(commits, keysOf(items)) },
	}, persist)
	c.SetItems(newRows("AAPL", "TSLA", "NVDA"))

	drag(c, "TSLA", "AAPL")
	assert.Equal(t, []string{"TSLA", "AAPL", "NVDA"}, keysOf(c.items),
		"reorder is visible immediately")
	require.Empty(t, commits, "commit waits for the quiet period")

	saveCmd := c.Update(commitMsg{tag: c.tag, seq: c.seq})
	require.Len(t, commits, 1)
	assert.Equal(t, []string{"TSLA", "AAPL", "NVDA"}, commits[0])

	require.NotNil(t, saveCmd)
	saveCmd() // run the fire-and-forget save

	entries, err := store.LoadOrder("watchlist")
	require.NoError(t, err)
	assert.Equal(t, []OrderEntry{
		{ID: "TSLA", Order: 0},
		{ID: "AAPL", Order: 1},
		{ID: "NVDA", Order: 2},
	}, entries)
}

func TestMoveItemTable(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     []string
	}{
		{"first to last", 0, 3, []string{"b", "c", "d", "a"}},
		{"last to first", 3, 0, []string{"d", "a", "b", "c"}},
		{"forward interior", 0, 2, []string{"b", "c", "a", "d"}},
		{"backward interior", 3, 1, []string{"a", "d", "b", "c"}},
		{"adjacent swap", 1, 2, []string{"a", "c", "b", "d"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := moveItem([]string{"a", "b", "c", "d"}, tt.from, tt.to)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestViewStates(t *testing.T) {
	c := newTestContainer(Options[*testRow]{EmptyMessage: "nothing to show"})
	assert.Contains(t, c.View(), "nothing to show")

	c.SetLoading(true)
	assert.Contains(t, c.View(), "Loading")
	c.SetLoading(false)

	c.SetItems(newRows("a", "b"))
	view := c.View()
	assert.Contains(t, view, "a")
	assert.Contains(t, view, "b")
}
