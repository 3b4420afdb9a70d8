// This file contains tea.Cmd factories that wrap dashboard operations. The
// commands run off the event loop; a session lock serializes them because a
// Dashboard is not safe for concurrent use.

package ui

import (
	"sync"
	"time"

	"aura/internal/reports"
	"aura/internal/tracker"

	tea "github.com/charmbracelet/bubbletea"
)

// session guards the dashboard shared by all commands.
type session struct {
	mu   sync.Mutex
	dash *tracker.Dashboard
	sink reports.FileSink
}

func newSession(dash *tracker.Dashboard, exportDir string) *session {
	return &session{dash: dash, sink: reports.FileSink{Dir: exportDir}}
}

// do runs fn under the session lock as a command.
func (s *session) do(fn func(d *tracker.Dashboard) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		s.mu.Lock()
		defer s.mu.Unlock()
		return fn(s.dash)
	}
}

// confirmed runs fn with every confirmation approved. The UI has already
// asked the user by the time a destructive command runs.
func confirmed(d *tracker.Dashboard, fn func() (bool, error)) (bool, error) {
	d.SetConfirmer(tracker.AlwaysConfirm)
	defer d.SetConfirmer(tracker.NeverConfirm)
	return fn()
}

func snapshot(d *tracker.Dashboard, op string, changed bool, err error) dayMsg {
	return dayMsg{op: op, changed: changed, state: d.State(), stats: d.Stats(), err: err}
}

// =============================================================================
// Today Commands
// =============================================================================

// loadDayCmd returns a command that reads the current day.
func loadDayCmd(s *session) tea.Cmd {
	return s.do(func(d *tracker.Dashboard) tea.Msg {
		return snapshot(d, "", false, nil)
	})
}

// setHabitCmd returns a command that marks a habit done or not done.
func setHabitCmd(s *session, id string, done bool) tea.Cmd {
	return s.do(func(d *tracker.Dashboard) tea.Msg {
		_, err := d.SetHabit(id, done)
		return snapshot(d, "habit", true, err)
	})
}

// setMoodCmd returns a command that picks today's mood.
func setMoodCmd(s *session, m tracker.Mood) tea.Cmd {
	return s.do(func(d *tracker.Dashboard) tea.Msg {
		_, err := d.SetMood(m)
		return snapshot(d, "mood", true, err)
	})
}

// adjustWaterCmd returns a command that adds or removes glasses of water.
func adjustWaterCmd(s *session, delta int) tea.Cmd {
	return s.do(func(d *tracker.Dashboard) tea.Msg {
		before := d.State().Water
		_, err := d.AdjustWater(delta)
		return snapshot(d, "water", d.State().Water != before, err)
	})
}

// toggleDarkModeCmd returns a command that flips dark mode.
func toggleDarkModeCmd(s *session) tea.Cmd {
	return s.do(func(d *tracker.Dashboard) tea.Msg {
		_, err := d.ToggleDarkMode()
		return snapshot(d, "dark mode", true, err)
	})
}

// resetTodayCmd returns a command that clears today's data.
func resetTodayCmd(s *session) tea.Cmd {
	return s.do(func(d *tracker.Dashboard) tea.Msg {
		done, err := confirmed(d, d.ResetToday)
		return snapshot(d, "reset", done, err)
	})
}

// checkRolloverCmd returns a command that starts a new day if the date moved.
func checkRolloverCmd(s *session, now time.Time) tea.Cmd {
	return s.do(func(d *tracker.Dashboard) tea.Msg {
		prev := d.State()
		rolled, err := d.CheckRollover(now)
		if !rolled {
			return nil
		}
		return rolledOverMsg{previous: prev.Date, archived: !prev.IsEmpty(), err: err}
	})
}

// =============================================================================
// History Commands
// =============================================================================

// loadHistoryCmd returns a command that queries the history for filter.
func loadHistoryCmd(s *session, filter historyFilter) tea.Cmd {
	return s.do(func(d *tracker.Dashboard) tea.Msg {
		entries, err := d.Query(filter.daysBack())
		return historyMsg{filter: filter, entries: entries, err: err}
	})
}

// deleteEntryCmd returns a command that removes one day from the history.
func deleteEntryCmd(s *session, date string) tea.Cmd {
	return s.do(func(d *tracker.Dashboard) tea.Msg {
		done, err := confirmed(d, func() (bool, error) { return d.DeleteHistoryEntry(date) })
		return historyChangedMsg{op: "Deleted " + date, changed: done, err: err}
	})
}

// clearHistoryCmd returns a command that removes the whole history.
func clearHistoryCmd(s *session) tea.Cmd {
	return s.do(func(d *tracker.Dashboard) tea.Msg {
		done, err := confirmed(d, d.ClearHistory)
		return historyChangedMsg{op: "History cleared", changed: done, err: err}
	})
}

// exportCmd returns a command that writes the history export to the export
// directory.
func exportCmd(s *session) tea.Cmd {
	return s.do(func(d *tracker.Dashboard) tea.Msg {
		exp, err := d.Export()
		if err != nil {
			return exportedMsg{err: err}
		}
		if err := s.sink.Deliver(exp.Filename, exp.Data); err != nil {
			return exportedMsg{err: err}
		}
		return exportedMsg{path: s.sink.Path(exp.Filename)}
	})
}
