package tracker

import (
	"fmt"
	"strings"
)

// DefaultHabitIDs is the habit set used when none is configured.
var DefaultHabitIDs = []string{
	"exercise",
	"reading",
	"meditation",
	"healthy-meal",
	"sleep-early",
	"no-social-media",
}

// HabitSet is the fixed, ordered set of habit ids a dashboard tracks.
type HabitSet struct {
	ids   []string
	index map[string]int
}

// NewHabitSet builds a set from ids. The set must be non-empty and ids must be
// unique and non-blank.
func NewHabitSet(ids []string) (HabitSet, error) {
	if len(ids) == 0 {
		return HabitSet{}, fmt.Errorf("habit set is empty")
	}
	set := HabitSet{ids: make([]string, 0, len(ids)), index: make(map[string]int, len(ids))}
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			return HabitSet{}, fmt.Errorf("habit id is required")
		}
		if _, dup := set.index[id]; dup {
			return HabitSet{}, fmt.Errorf("duplicate habit id %q", id)
		}
		set.index[id] = len(set.ids)
		set.ids = append(set.ids, id)
	}
	return set, nil
}

// DefaultHabits returns the set built from DefaultHabitIDs.
func DefaultHabits() HabitSet {
	set, _ := NewHabitSet(DefaultHabitIDs)
	return set
}

// IDs returns the habit ids in configured order.
func (h HabitSet) IDs() []string {
	return append([]string(nil), h.ids...)
}

// Len returns the number of habits.
func (h HabitSet) Len() int { return len(h.ids) }

// Contains reports whether id is in the set.
func (h HabitSet) Contains(id string) bool {
	_, ok := h.index[id]
	return ok
}

// Completed counts the habits in the set marked true in habits.
func (h HabitSet) Completed(habits map[string]bool) int {
	n := 0
	for id, done := range habits {
		if done && h.Contains(id) {
			n++
		}
	}
	return n
}
