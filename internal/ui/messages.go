// This file defines message types for dashboard operations using the Bubble
// Tea command pattern. Every dashboard call returns one of these messages so
// views only ever render snapshots.

package ui

import (
	"aura/internal/tracker"
)

// =============================================================================
// Today Messages
// =============================================================================

// dayMsg carries the current day after an operation on it.
type dayMsg struct {
	op      string // what was done, for the status bar; empty for plain loads
	changed bool   // false when the operation was refused or had no effect
	state   tracker.DayState
	stats   tracker.Stats
	err     error
}

// rolledOverMsg is sent when the periodic check started a new day.
type rolledOverMsg struct {
	previous string
	archived bool
	err      error
}

// =============================================================================
// History Messages
// =============================================================================

// historyMsg carries history entries for the active filter.
type historyMsg struct {
	filter  historyFilter
	entries []tracker.HistoryEntry
	err     error
}

// historyChangedMsg is sent after a deletion or clear.
type historyChangedMsg struct {
	op      string
	changed bool
	err     error
}

// exportedMsg is sent when the history has been written to a file.
type exportedMsg struct {
	path string
	err  error
}
