package sortable

import (
	"strings"

	"tickerdeck/ui"
)

// Item is the unit of reordering. The key must be stable across renders; it
// is the sole join key for grab tracking, windowing, and persisted order
// records. Items are owned by the caller; the container holds a transient,
// debounced view of the caller's collection and never copies payload data.
type Item interface {
	Key() string
	OrderIndex() int
	SetOrderIndex(int)
	Disabled() bool
}

// Row is an embeddable base carrying the id and position hint. Domain item
// types embed it by pointer and add their own payload.
type Row struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}

func (r *Row) Key() string { return r.ID }

func (r *Row) OrderIndex() int { return r.Order }

func (r *Row) SetOrderIndex(i int) { r.Order = i }

func (r *Row) Disabled() bool { return false }

// RowState describes the visual state of one rendered row.
type RowState int

const (
	RowIdle RowState = iota
	RowHover    // cursor rests on the row, no grab active
	RowGrabbed  // the row is being moved
	RowTarget   // another row is grabbed and would drop here
	RowSettle   // the row was just dropped
	RowDisabled // inert: no handle, no grab, dimmed
)

// HandleMode controls the grab-handle affordance. When no handle is shown
// the whole row acts as the grab surface.
type HandleMode int

const (
	HandleHover HandleMode = iota
	HandleAlways
	HandleNone
)

const handleGlyph = "≡"

// renderRow wraps caller-rendered content with the row chrome: grab handle,
// cursor, selection badge, and the style for the current state.
func renderRow(content string, st RowState, handle HandleMode, selected bool) string {
	var b strings.Builder

	switch {
	case st == RowGrabbed:
		b.WriteString("◆ ")
	case st == RowTarget:
		b.WriteString("▸ ")
	case st == RowHover:
		b.WriteString("> ")
	default:
		b.WriteString("  ")
	}

	showHandle := handle == HandleAlways || (handle == HandleHover && (st == RowHover || st == RowGrabbed))
	if st == RowDisabled {
		showHandle = false
	}
	if showHandle {
		b.WriteString(ui.HandleStyle.Render(handleGlyph) + " ")
	} else if handle != HandleNone {
		b.WriteString("  ")
	}

	if selected {
		b.WriteString(ui.BadgeStyle.Render("✓") + " ")
	}

	switch st {
	case RowGrabbed:
		return b.String() + ui.GrabbedStyle.Render(content)
	case RowTarget:
		return b.String() + ui.TargetStyle.Render(content)
	case RowSettle:
		return b.String() + ui.SettleStyle.Render(content)
	case RowDisabled:
		return b.String() + ui.DisabledStyle.Render(content)
	case RowHover:
		return b.String() + ui.SelectedStyle.Render(content)
	default:
		return b.String() + ui.UnselectedStyle.Render(content)
	}
}
