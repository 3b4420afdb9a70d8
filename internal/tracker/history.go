package tracker

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"aura/internal/logging"
	"aura/internal/storage"
)

// Keys of the two blobs in the key-value store.
const (
	StateKey   = "currentDayState"
	HistoryKey = "historyLog"
)

// AllHistory makes Query return every entry.
const AllHistory = -1

// HistoryEntry is a snapshot of one day plus the values derived from it.
type HistoryEntry struct {
	Date            string          `json:"date"`
	Habits          map[string]bool `json:"habits"`
	Mood            Mood            `json:"mood"`
	Water           int             `json:"water"`
	DarkMode        bool            `json:"darkMode,omitempty"`
	CompletedHabits int             `json:"completedHabits"`
	TotalHabits     int             `json:"totalHabits"`
	OverallScore    int             `json:"overallScore"`
	Timestamp       time.Time       `json:"timestamp"`
}

func newEntry(s DayState, totalHabits int, at time.Time) HistoryEntry {
	e := HistoryEntry{
		Date:        s.Date,
		Habits:      s.Clone().Habits,
		Mood:        s.Mood,
		Water:       s.Water,
		DarkMode:    s.DarkMode,
		TotalHabits: totalHabits,
		Timestamp:   at.UTC(),
	}
	e.derive()
	return e
}

// Score recomputes the overall score from the entry's own fields.
func (e HistoryEntry) Score() int {
	return Score(completedCount(e.Habits), e.TotalHabits, e.Mood, e.Water)
}

// Band returns the score band of the entry.
func (e HistoryEntry) Band() ScoreBand {
	return BandFor(e.OverallScore)
}

func (e *HistoryEntry) derive() {
	if e.Habits == nil {
		e.Habits = map[string]bool{}
	}
	e.CompletedHabits = clamp(completedCount(e.Habits), 0, e.TotalHabits)
	e.OverallScore = e.Score()
}

// Validate checks the fields an entry is scored from.
func (e HistoryEntry) Validate() error {
	if _, err := ParseDate(e.Date); err != nil {
		return err
	}
	if e.Mood != MoodUnset && !e.Mood.Valid() {
		return invalid("mood", e.Mood, ErrInvalidMood)
	}
	if e.Water < 0 || e.Water > MaxWater {
		return invalid("water", e.Water, ErrWaterOutOfRange)
	}
	if e.TotalHabits < 0 {
		return invalid("totalHabits", e.TotalHabits, ErrInvalidHabitID)
	}
	return nil
}

func (e HistoryEntry) clone() HistoryEntry {
	out := e
	out.Habits = make(map[string]bool, len(e.Habits))
	for id, done := range e.Habits {
		out.Habits[id] = done
	}
	return out
}

// Export is a serialized history document and its suggested file name.
type Export struct {
	Filename string
	Data     []byte
}

// ExportFilename returns the suggested export file name for day t.
func ExportFilename(t time.Time) string {
	return fmt.Sprintf("aura-life-dashboard-logs-%s.json", DateOf(t))
}

// HistoryLog maps calendar dates to HistoryEntry and persists the whole map
// under HistoryKey on every change.
type HistoryLog struct {
	store   storage.KV
	logger  *slog.Logger
	now     func() time.Time
	entries map[string]HistoryEntry
}

// LoadHistory reads the history log from store.
//
// The returned log is always usable. If the stored document cannot be read the
// log starts empty and a *PersistenceError is returned; individual entries that
// fail validation are dropped with a warning.
func LoadHistory(store storage.KV, logger *slog.Logger, now func() time.Time) (*HistoryLog, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	if now == nil {
		now = time.Now
	}
	h := &HistoryLog{store: store, logger: logger, now: now, entries: map[string]HistoryEntry{}}

	data, err := store.Get(HistoryKey)
	if errors.Is(err, storage.ErrNotFound) {
		return h, nil
	}
	if err != nil {
		logger.Error("history unreadable, starting empty", "error", err)
		return h, &PersistenceError{Op: "load", Key: HistoryKey, Err: err}
	}

	var raw map[string]HistoryEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		logger.Error("history undecodable, starting empty", "error", err)
		return h, &PersistenceError{Op: "load", Key: HistoryKey, Err: fmt.Errorf("decode: %w", err)}
	}
	for date, e := range raw {
		e.Date = date
		if err := e.Validate(); err != nil {
			logger.Warn("dropping invalid history entry", "date", date, "error", err)
			continue
		}
		e.derive()
		h.entries[date] = e
	}
	return h, nil
}

// Len returns the number of entries.
func (h *HistoryLog) Len() int { return len(h.entries) }

// Get returns the entry for date.
func (h *HistoryLog) Get(date string) (HistoryEntry, bool) {
	e, ok := h.entries[date]
	if !ok {
		return HistoryEntry{}, false
	}
	return e.clone(), true
}

// Upsert snapshots s under s.Date, replacing any entry for that date.
func (h *HistoryLog) Upsert(s DayState, totalHabits int) (HistoryEntry, error) {
	return h.upsertAt(s, totalHabits, h.now())
}

func (h *HistoryLog) upsertAt(s DayState, totalHabits int, at time.Time) (HistoryEntry, error) {
	e := newEntry(s, totalHabits, at)
	h.entries[e.Date] = e
	return e.clone(), h.save()
}

// Query returns entries newest first. With daysBack >= 0 only entries dated on
// or after today minus daysBack calendar days are returned. The result is never
// nil.
func (h *HistoryLog) Query(daysBack int) []HistoryEntry {
	return h.queryAt(daysBack, h.now())
}

func (h *HistoryLog) queryAt(daysBack int, now time.Time) []HistoryEntry {
	cutoff := ""
	if daysBack >= 0 {
		cutoff = DateOf(now.AddDate(0, 0, -daysBack))
	}
	out := make([]HistoryEntry, 0, len(h.entries))
	for date, e := range h.entries {
		// YYYY-MM-DD compares correctly as a string.
		if date >= cutoff {
			out = append(out, e.clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

// Delete removes the entry for date. Deleting a missing date changes nothing
// and reports false.
func (h *HistoryLog) Delete(date string) (bool, error) {
	if _, ok := h.entries[date]; !ok {
		return false, nil
	}
	delete(h.entries, date)
	return true, h.save()
}

// Clear removes every entry.
func (h *HistoryLog) Clear() error {
	h.entries = map[string]HistoryEntry{}
	return h.save()
}

// Export serializes the whole log as indented JSON keyed by date.
func (h *HistoryLog) Export() (Export, error) {
	return h.exportAt(h.now())
}

func (h *HistoryLog) exportAt(now time.Time) (Export, error) {
	data, err := h.marshal()
	if err != nil {
		return Export{}, err
	}
	return Export{Filename: ExportFilename(now), Data: data}, nil
}

// Rejection is an incoming entry Merge refused, in input order. Date is
// whatever the entry carried, possibly empty or malformed.
type Rejection struct {
	Index int
	Date  string
	Err   error
}

// MergeResult reports what Merge did with each incoming entry.
type MergeResult struct {
	Added    []string
	Existing []string
	Rejected []Rejection
}

// Merge adds entries whose date is not yet in the log. Entries dated today or
// later are rejected so that the current day stays owned by the live state.
// The log is saved once, and only if something was added.
func (h *HistoryLog) Merge(entries []HistoryEntry, today string) (MergeResult, error) {
	var res MergeResult
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			res.Rejected = append(res.Rejected, Rejection{Index: i, Date: e.Date, Err: err})
			continue
		}
		if e.Date >= today {
			res.Rejected = append(res.Rejected, Rejection{Index: i, Date: e.Date, Err: fmt.Errorf("date %s is not in the past", e.Date)})
			continue
		}
		if _, ok := h.entries[e.Date]; ok {
			res.Existing = append(res.Existing, e.Date)
			continue
		}
		e = e.clone()
		e.derive()
		if e.Timestamp.IsZero() {
			e.Timestamp = h.now().UTC()
		}
		h.entries[e.Date] = e
		res.Added = append(res.Added, e.Date)
	}
	sort.Strings(res.Added)
	sort.Strings(res.Existing)
	if len(res.Added) == 0 {
		return res, nil
	}
	return res, h.save()
}

func (h *HistoryLog) marshal() ([]byte, error) {
	data, err := json.MarshalIndent(h.entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serialize history: %w", err)
	}
	return data, nil
}

func (h *HistoryLog) save() error {
	data, err := h.marshal()
	if err == nil {
		err = h.store.Put(HistoryKey, data)
	}
	if err != nil {
		h.logger.Error("history not saved", "error", err)
		return &PersistenceError{Op: "save", Key: HistoryKey, Err: err}
	}
	return nil
}
