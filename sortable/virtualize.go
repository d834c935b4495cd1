package sortable

// VirtualizeThreshold is the item count above which windowed rendering kicks
// in. At or below it the full sequence is always rendered, regardless of the
// enabled flag.
const VirtualizeThreshold = 50

const overscan = 1

// Window is a derived, contiguous index range [Start, End) into the current
// item sequence. It is recomputed from the scroll offset on every render and
// never persisted.
type Window struct {
	Start  int
	End    int
	Active bool
}

// VisibleWindow computes the rows that must be rendered for the current
// viewport. Windowing activates only when enabled and count exceeds the
// threshold; otherwise the full range is returned untouched, so callers must
// not assume a window is active from the enabled flag alone.
//
// itemHeight must be positive; behavior is undefined otherwise.
func VisibleWindow(count, itemHeight, viewHeight, scrollTop int, enabled bool) Window {
	if !enabled || count <= VirtualizeThreshold {
		return Window{Start: 0, End: count}
	}

	first := scrollTop / itemHeight
	last := (scrollTop + viewHeight) / itemHeight

	start := first - overscan
	if start < 0 {
		start = 0
	}
	end := last + overscan + 1
	if end > count {
		end = count
	}
	if start > end {
		start = end
	}
	return Window{Start: start, End: end, Active: true}
}

// TotalHeight is the height of the full virtual content.
func TotalHeight(count, itemHeight int) int {
	return count * itemHeight
}

// RowOffset is the translate offset of a row; windowed rows are positioned
// absolutely and never reflow their siblings.
func RowOffset(index, itemHeight int) int {
	return index * itemHeight
}
