// Package tracker is the daily state and history core of aura.
//
// A Dashboard owns the current DayState and the HistoryLog. Every operation
// first resolves a pending day rollover, so the current day always matches the
// clock when the operation returns. Daily-data changes are upserted into the
// history under the day's date; dark mode and resets are not.
//
// A Dashboard is not safe for concurrent use.
package tracker

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"aura/internal/logging"
	"aura/internal/storage"
)

// Options configure Open. Every field is optional.
type Options struct {
	Store       storage.KV       // defaults to an in-memory store
	Habits      []string         // defaults to DefaultHabitIDs
	Now         func() time.Time // defaults to time.Now
	Confirm     Confirmer        // defaults to NeverConfirm
	Logger      *slog.Logger     // defaults to a discarding logger
	Subscribers []func(Event)    // registered before the load-time rollover check
}

// Dashboard is the DayState manager.
type Dashboard struct {
	store   storage.KV
	habits  HabitSet
	now     func() time.Time
	confirm Confirmer
	logger  *slog.Logger

	state   DayState
	history *HistoryLog

	subs    map[int]func(Event)
	nextSub int
}

// Open loads the current day and the history from opts.Store and resolves a
// rollover against the clock.
//
// Unreadable stored data never stops the dashboard from starting: the affected
// part falls back to its default, and the returned error (a join of
// *PersistenceError values) reports what happened alongside a usable Dashboard.
// Open returns a nil Dashboard only when opts.Habits is invalid.
func Open(opts Options) (*Dashboard, error) {
	ids := opts.Habits
	if len(ids) == 0 {
		ids = DefaultHabitIDs
	}
	habits, err := NewHabitSet(ids)
	if err != nil {
		return nil, fmt.Errorf("habits: %w", err)
	}

	d := &Dashboard{
		store:   opts.Store,
		habits:  habits,
		now:     opts.Now,
		confirm: opts.Confirm,
		logger:  opts.Logger,
		subs:    map[int]func(Event){},
	}
	if d.store == nil {
		d.store = storage.NewMemoryStore()
	}
	if d.now == nil {
		d.now = time.Now
	}
	if d.confirm == nil {
		d.confirm = NeverConfirm
	}
	if d.logger == nil {
		d.logger = logging.Discard()
	}
	for _, fn := range opts.Subscribers {
		d.Subscribe(fn)
	}

	now := d.now()
	var errs []error

	d.history, err = LoadHistory(d.store, d.logger, d.clock)
	errs = append(errs, err)

	d.state, err = d.loadState(now)
	errs = append(errs, err)

	_, err = d.rollover(now)
	errs = append(errs, err)

	return d, errors.Join(errs...)
}

func (d *Dashboard) clock() time.Time { return d.now() }

func (d *Dashboard) loadState(now time.Time) (DayState, error) {
	fallback := NewDayState(DateOf(now), false)

	data, err := d.store.Get(StateKey)
	if errors.Is(err, storage.ErrNotFound) {
		return fallback, nil
	}
	if err != nil {
		d.logger.Error("day state unreadable, starting fresh", "error", err)
		return fallback, &PersistenceError{Op: "load", Key: StateKey, Err: err}
	}

	var s DayState
	if err := json.Unmarshal(data, &s); err != nil {
		d.logger.Error("day state undecodable, starting fresh", "error", err)
		return fallback, &PersistenceError{Op: "load", Key: StateKey, Err: fmt.Errorf("decode: %w", err)}
	}
	if dropped := s.pruneHabits(d.habits); len(dropped) > 0 {
		d.logger.Warn("dropped habits no longer configured", "habits", dropped)
	}
	if err := s.Validate(d.habits); err != nil {
		d.logger.Error("day state invalid, starting fresh", "error", err)
		fallback.DarkMode = s.DarkMode
		return fallback, &PersistenceError{Op: "load", Key: StateKey, Err: err}
	}
	return s, nil
}

// SetNowFunc overrides the clock. Passing nil resets it to time.Now.
func (d *Dashboard) SetNowFunc(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	d.now = now
}

// SetConfirmer replaces the confirmation provider. Passing nil refuses all
// destructive operations.
func (d *Dashboard) SetConfirmer(c Confirmer) {
	if c == nil {
		c = NeverConfirm
	}
	d.confirm = c
}

// Subscribe registers fn for every Event and returns a function that removes it.
func (d *Dashboard) Subscribe(fn func(Event)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	id := d.nextSub
	d.nextSub++
	d.subs[id] = fn
	return func() { delete(d.subs, id) }
}

func (d *Dashboard) emit(ev Event) {
	if ev.Date == "" {
		ev.Date = d.state.Date
	}
	ev.Stats = d.Stats()
	for _, fn := range d.subs {
		fn(ev)
	}
}

// Habits returns the habit set.
func (d *Dashboard) Habits() HabitSet { return d.habits }

// State returns a copy of the current day.
func (d *Dashboard) State() DayState { return d.state.Clone() }

// Stats returns the derived values of the current day.
func (d *Dashboard) Stats() Stats { return StatsFor(d.state, d.habits) }

// History returns the history log. Changes should go through the Dashboard so
// confirmation and events apply.
func (d *Dashboard) History() *HistoryLog { return d.history }

// SetHabit marks habit id done or not done.
func (d *Dashboard) SetHabit(id string, completed bool) (Stats, error) {
	if !d.habits.Contains(id) {
		return Stats{}, invalid("habit", id, ErrInvalidHabitID)
	}
	now, rollErr := d.begin()
	d.state.Habits[id] = completed
	return d.Stats(), errors.Join(rollErr, d.commit(now, true))
}

// SetMood records the day's mood.
func (d *Dashboard) SetMood(m Mood) (Stats, error) {
	if !m.Valid() {
		return Stats{}, invalid("mood", m, ErrInvalidMood)
	}
	now, rollErr := d.begin()
	d.state.Mood = m
	return d.Stats(), errors.Join(rollErr, d.commit(now, true))
}

// AdjustWater adds delta units of water. A change that would leave
// [0, MaxWater] is ignored without error.
func (d *Dashboard) AdjustWater(delta int) (Stats, error) {
	now, rollErr := d.begin()
	next := d.state.Water + delta
	if delta == 0 || next < 0 || next > MaxWater {
		return d.Stats(), rollErr
	}
	d.state.Water = next
	return d.Stats(), errors.Join(rollErr, d.commit(now, true))
}

// ToggleDarkMode flips the theme preference and returns the new value.
func (d *Dashboard) ToggleDarkMode() (bool, error) {
	now, rollErr := d.begin()
	d.state.DarkMode = !d.state.DarkMode
	return d.state.DarkMode, errors.Join(rollErr, d.commit(now, false))
}

// ResetToday clears today's habits, mood and water after confirmation. The
// date and dark mode are kept and nothing is written to history.
func (d *Dashboard) ResetToday() (bool, error) {
	now, rollErr := d.begin()
	if !d.confirm.Confirm(PromptReset) {
		return false, rollErr
	}
	d.state = NewDayState(d.state.Date, d.state.DarkMode)
	d.logger.Info("day reset", "date", d.state.Date)
	return true, errors.Join(rollErr, d.commit(now, false))
}

// CheckRollover starts a new day if now falls on a different date than the
// current day. The outgoing day is archived under its own date unless it is
// empty. Calling it again for the same day does nothing.
func (d *Dashboard) CheckRollover(now time.Time) (bool, error) {
	return d.rollover(now)
}

func (d *Dashboard) begin() (time.Time, error) {
	now := d.now()
	_, err := d.rollover(now)
	return now, err
}

func (d *Dashboard) rollover(now time.Time) (bool, error) {
	today := DateOf(now)
	if d.state.Date == today {
		return false, nil
	}

	prev := d.state
	var errs []error
	archived := false
	if !prev.IsEmpty() {
		_, err := d.history.upsertAt(prev, d.habits.Len(), now)
		errs = append(errs, d.failed(err))
		archived = true
	}
	d.state = NewDayState(today, prev.DarkMode)
	errs = append(errs, d.failed(d.saveState()))

	d.logger.Info("new day started", "date", today, "previous", prev.Date, "archived", archived)
	d.emit(Event{Kind: EventRolledOver, Previous: prev.Date, Archived: archived})
	return true, errors.Join(errs...)
}

// commit saves the current day and, when archive is set, upserts it into the
// history. In-memory state stays as it is whether or not the saves succeed.
func (d *Dashboard) commit(now time.Time, archive bool) error {
	err := d.failed(d.saveState())
	d.emit(Event{Kind: EventStateChanged})
	if !archive {
		return err
	}
	_, herr := d.history.upsertAt(d.state, d.habits.Len(), now)
	d.emit(Event{Kind: EventHistoryChanged})
	return errors.Join(err, d.failed(herr))
}

func (d *Dashboard) saveState() error {
	data, err := json.Marshal(d.state)
	if err == nil {
		err = d.store.Put(StateKey, data)
	}
	if err != nil {
		d.logger.Error("day state not saved", "error", err)
		return &PersistenceError{Op: "save", Key: StateKey, Err: err}
	}
	return nil
}

// failed emits EventPersistenceFailed for a non-nil err and returns it.
func (d *Dashboard) failed(err error) error {
	if err != nil {
		d.emit(Event{Kind: EventPersistenceFailed, Err: err})
	}
	return err
}

// Query returns history entries newest first; see HistoryLog.Query.
func (d *Dashboard) Query(daysBack int) ([]HistoryEntry, error) {
	now, err := d.begin()
	return d.history.queryAt(daysBack, now), err
}

// DeleteHistoryEntry removes the entry for date after confirmation. A date with
// no entry is a no-op and is not confirmed.
func (d *Dashboard) DeleteHistoryEntry(date string) (bool, error) {
	_, rollErr := d.begin()
	if _, ok := d.history.Get(date); !ok {
		return false, rollErr
	}
	if !d.confirm.Confirm(DeletePrompt(date)) {
		return false, rollErr
	}
	deleted, err := d.history.Delete(date)
	d.logger.Info("history entry deleted", "date", date)
	d.emit(Event{Kind: EventHistoryChanged})
	return deleted, errors.Join(rollErr, d.failed(err))
}

// ClearHistory removes every history entry after confirmation.
func (d *Dashboard) ClearHistory() (bool, error) {
	if !d.confirm.Confirm(PromptClear) {
		return false, nil
	}
	_, rollErr := d.begin()
	n := d.history.Len()
	err := d.history.Clear()
	d.logger.Info("history cleared", "entries", n)
	d.emit(Event{Kind: EventHistoryChanged})
	return true, errors.Join(rollErr, d.failed(err))
}

// Export serializes the history with today's suggested file name.
func (d *Dashboard) Export() (Export, error) {
	now, rollErr := d.begin()
	exp, err := d.history.exportAt(now)
	return exp, errors.Join(rollErr, err)
}

// ImportHistory adds past entries whose dates are not yet in the history.
func (d *Dashboard) ImportHistory(entries []HistoryEntry) (MergeResult, error) {
	_, rollErr := d.begin()
	res, err := d.history.Merge(entries, d.state.Date)
	if len(res.Added) > 0 {
		d.logger.Info("history imported", "added", len(res.Added), "existing", len(res.Existing), "rejected", len(res.Rejected))
		d.emit(Event{Kind: EventHistoryChanged})
	}
	return res, errors.Join(rollErr, d.failed(err))
}
