package ui

import (
	"testing"

	"aura/internal/config"
	"aura/internal/tracker"
)

func TestStepMood(t *testing.T) {
	tests := []struct {
		name    string
		current tracker.Mood
		step    int
		want    tracker.Mood
	}{
		{"unset better", tracker.MoodUnset, 1, tracker.MoodTerrible},
		{"unset worse", tracker.MoodUnset, -1, tracker.MoodAmazing},
		{"okay better", tracker.MoodOkay, 1, tracker.MoodGood},
		{"okay worse", tracker.MoodOkay, -1, tracker.MoodBad},
		{"best stays", tracker.MoodAmazing, 1, tracker.MoodAmazing},
		{"worst stays", tracker.MoodTerrible, -1, tracker.MoodTerrible},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stepMood(tt.current, tt.step); got != tt.want {
				t.Errorf("stepMood(%q, %d) = %q, want %q", tt.current, tt.step, got, tt.want)
			}
		})
	}
}

func newTestTodayPane(t *testing.T) *TodayPane {
	t.Helper()
	setupTest(t)
	dash := newTestDashboard(t, newTestClock())
	p := NewTodayPane(newSession(dash, t.TempDir()), createTestStyles(), config.DefaultHabits(), nil)
	p.SetSize(70, 30)
	p.SetFocused(true)
	return p
}

func TestTodayPane_ViewEmptyDay(t *testing.T) {
	p := newTestTodayPane(t)
	p.setDay(tracker.NewDayState("2025-06-10", false), tracker.StatsFor(tracker.NewDayState("2025-06-10", false), tracker.DefaultHabits()))

	view := p.View()
	for _, want := range []string{"TODAY", "Habits  0/6", "[ ]", "Exercise", "How are you feeling?", "Water  0/8 glasses", "○○○○○○○○", "0% low"} {
		if !contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}
}

func TestTodayPane_ViewTrackedDay(t *testing.T) {
	p := newTestTodayPane(t)
	state := tracker.NewDayState("2025-06-10", false)
	state.Habits["exercise"] = true
	state.Mood = tracker.MoodAmazing
	state.Water = 10
	p.setDay(state, tracker.StatsFor(state, tracker.DefaultHabits()))

	view := p.View()
	for _, want := range []string{"Habits  1/6", "[✓]", "[🤩]", "Amazing day!", "●●●●●●●● +2", "Water  10/8 glasses"} {
		if !contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}
}

func TestTodayPane_UnfocusedIgnoresKeys(t *testing.T) {
	p := newTestTodayPane(t)
	p.SetFocused(false)

	if cmd := p.Update(keyMsg(" ")); cmd != nil {
		t.Error("unfocused pane should not toggle")
	}
	p.Update(keyMsg("j"))
	if p.cursor != 0 {
		t.Error("unfocused pane should not move the cursor")
	}
}

func TestTodayPane_CursorBounds(t *testing.T) {
	p := newTestTodayPane(t)

	p.Update(keyMsg("k"))
	if p.cursor != 0 {
		t.Errorf("cursor = %d, want 0", p.cursor)
	}
	p.Update(keyMsg("G"))
	if p.cursor != 5 {
		t.Errorf("cursor = %d, want 5", p.cursor)
	}
	p.Update(keyMsg("j"))
	if p.cursor != 5 {
		t.Errorf("cursor = %d, want 5", p.cursor)
	}
	p.Update(keyMsg("g"))
	if p.cursor != 0 {
		t.Errorf("cursor = %d, want 0", p.cursor)
	}
}

func TestRenderBar(t *testing.T) {
	setupTest(t)

	tests := []struct {
		pct  int
		want string
	}{
		{0, "░░░░░░░░░░"},
		{50, "█████░░░░░"},
		{100, "██████████"},
	}
	for _, tt := range tests {
		if got := renderBar("#48BB78", 10, tt.pct); got != tt.want {
			t.Errorf("renderBar(%d) = %q, want %q", tt.pct, got, tt.want)
		}
	}
}
