package sortable

// ActionKind tags a domain action raised from a row.
type ActionKind string

const (
	ActionRemove        ActionKind = "remove"
	ActionToggleAlert   ActionKind = "toggle_alert"
	ActionCopySymbol    ActionKind = "copy_symbol"
	ActionClosePosition ActionKind = "close_position"
	ActionStartStrategy ActionKind = "start_strategy"
	ActionPauseStrategy ActionKind = "pause_strategy"
	ActionStopStrategy  ActionKind = "stop_strategy"
)

// Action is the single tagged variant domain adapters dispatch instead of
// per-callback props. Actions are fired synchronously from user interaction
// and are independent of the reorder pipeline.
type Action struct {
	Kind   ActionKind
	ItemID string
}
