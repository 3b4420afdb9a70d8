package ui

import (
	"testing"
	"time"

	"aura/internal/tracker"
)

func TestHistoryFilter(t *testing.T) {
	tests := []struct {
		filter historyFilter
		days   int
		label  string
		next   historyFilter
	}{
		{filterAll, tracker.AllHistory, "All", filterWeek},
		{filterWeek, 7, "Last 7 days", filterMonth},
		{filterMonth, 30, "Last 30 days", filterAll},
	}
	for _, tt := range tests {
		if got := tt.filter.daysBack(); got != tt.days {
			t.Errorf("%v.daysBack() = %d, want %d", tt.filter, got, tt.days)
		}
		if got := tt.filter.String(); got != tt.label {
			t.Errorf("String() = %q, want %q", got, tt.label)
		}
		if got := tt.filter.next(); got != tt.next {
			t.Errorf("%v.next() = %v, want %v", tt.filter, got, tt.next)
		}
	}
}

func TestHistoryPane_FilterCycles(t *testing.T) {
	app, dash, _ := newTestApp(t, nil)
	importEntry(t, dash, "2025-06-01")
	importEntry(t, dash, "2025-05-01")
	drain(t, app, app.historyPane.LoadCmd())

	press(t, app, "2")
	if app.historyPane.Len() != 2 {
		t.Fatalf("all entries = %d, want 2", app.historyPane.Len())
	}

	press(t, app, "f")
	if app.historyPane.filter != filterWeek || app.historyPane.Len() != 0 {
		t.Errorf("week: filter=%v entries=%d, want 0", app.historyPane.filter, app.historyPane.Len())
	}
	press(t, app, "f")
	if app.historyPane.filter != filterMonth || app.historyPane.Len() != 1 {
		t.Errorf("month: filter=%v entries=%d, want 1", app.historyPane.filter, app.historyPane.Len())
	}
	if !contains(app.View(), "Last 30 days  (1 days)") {
		t.Error("view should show the active filter")
	}
	press(t, app, "f")
	if app.historyPane.filter != filterAll || app.historyPane.Len() != 2 {
		t.Errorf("all: filter=%v entries=%d, want 2", app.historyPane.filter, app.historyPane.Len())
	}
}

func TestHistoryPane_View(t *testing.T) {
	app, dash, _ := newTestApp(t, nil)
	importEntry(t, dash, "2025-06-01")
	drain(t, app, app.historyPane.LoadCmd())
	press(t, app, "2")

	view := app.historyPane.View()
	for _, want := range []string{"HISTORY", "2025-06-01", "1/6", "😊", "💧8", "Feeling good!", "saved 1 week ago"} {
		if !contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}
}

func TestHistoryPane_CursorAndScroll(t *testing.T) {
	setupTest(t)
	p := NewHistoryPane(nil, createTestStyles(), nil)
	p.SetFocused(true)
	p.SetSize(60, 12) // four visible rows

	var entries []tracker.HistoryEntry
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		entries = append(entries, tracker.HistoryEntry{Date: tracker.DateOf(start.AddDate(0, 0, -i)), TotalHabits: 6})
	}
	p.Update(historyMsg{filter: filterAll, entries: entries})

	p.Update(keyMsg("G"))
	if p.cursor != 9 {
		t.Errorf("cursor = %d, want 9", p.cursor)
	}
	if p.offset != 6 {
		t.Errorf("offset = %d, want 6", p.offset)
	}
	if e, ok := p.Selected(); !ok || e.Date != "2025-05-23" {
		t.Errorf("Selected = %v, %v", e.Date, ok)
	}

	p.Update(keyMsg("g"))
	if p.cursor != 0 || p.offset != 0 {
		t.Errorf("cursor=%d offset=%d, want 0,0", p.cursor, p.offset)
	}

	// A shorter reload keeps the cursor in range.
	p.cursor = 9
	p.Update(historyMsg{filter: filterAll, entries: entries[:3]})
	if p.cursor != 2 {
		t.Errorf("cursor = %d, want 2", p.cursor)
	}
}

func TestHistoryPane_Empty(t *testing.T) {
	setupTest(t)
	p := NewHistoryPane(nil, createTestStyles(), nil)
	p.SetSize(60, 20)

	if _, ok := p.Selected(); ok {
		t.Error("empty pane should have no selection")
	}
	if !contains(p.View(), "No history yet.") {
		t.Error("empty pane should say so")
	}
}

func TestHistoryPane_ErrorKeepsEntries(t *testing.T) {
	p := NewHistoryPane(nil, createTestStyles(), nil)
	p.Update(historyMsg{entries: []tracker.HistoryEntry{{Date: "2025-06-01"}}})
	p.Update(historyMsg{err: errTest})

	if p.Len() != 1 {
		t.Errorf("failed reload should keep the entries, got %d", p.Len())
	}
}
