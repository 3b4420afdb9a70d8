package tracker

// EventKind identifies what changed.
type EventKind int

const (
	// EventStateChanged follows any change to the current day.
	EventStateChanged EventKind = iota + 1
	// EventHistoryChanged follows an upsert, delete, clear or import.
	EventHistoryChanged
	// EventRolledOver follows a day rollover.
	EventRolledOver
	// EventPersistenceFailed follows a failed save.
	EventPersistenceFailed
)

func (k EventKind) String() string {
	switch k {
	case EventStateChanged:
		return "state_changed"
	case EventHistoryChanged:
		return "history_changed"
	case EventRolledOver:
		return "rolled_over"
	case EventPersistenceFailed:
		return "persistence_failed"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers after the dashboard changes.
type Event struct {
	Kind     EventKind
	Date     string // current day after the change
	Previous string // rolled-over day, EventRolledOver only
	Archived bool   // whether Previous was written to history
	Stats    Stats
	Err      error // EventPersistenceFailed only
}
