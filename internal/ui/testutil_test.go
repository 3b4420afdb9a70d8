package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"aura/internal/config"
	"aura/internal/storage"
	"aura/internal/tracker"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// setupTest prepares the test environment for deterministic rendering.
// It disables colors so views can be matched as plain text.
func setupTest(t *testing.T) {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
}

// testClock is a settable clock shared by the dashboard and the app.
type testClock struct{ t time.Time }

func (c *testClock) Now() time.Time { return c.t }

func newTestClock() *testClock {
	return &testClock{t: time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)}
}

// createTestStyles creates a default Styles instance for testing.
func createTestStyles() *Styles {
	return NewStylesFromTheme(&config.ThemeConfig{}, false)
}

// newTestDashboard opens a dashboard on an in-memory store.
func newTestDashboard(t *testing.T, clock *testClock) *tracker.Dashboard {
	t.Helper()
	dash, err := tracker.Open(tracker.Options{Store: storage.NewMemoryStore(), Now: clock.Now})
	if err != nil {
		t.Fatalf("failed to open dashboard: %v", err)
	}
	return dash
}

// newTestApp creates an app sized wide enough for both panes, with today and
// the history already loaded.
func newTestApp(t *testing.T, cfg *AppConfig) (*App, *tracker.Dashboard, *testClock) {
	t.Helper()
	setupTest(t)
	clock := newTestClock()
	dash := newTestDashboard(t, clock)
	if cfg == nil {
		cfg = &AppConfig{ConfirmDeletions: true, Habits: config.DefaultHabits()}
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = t.TempDir()
	}
	app := NewApp(dash, cfg)
	app.now = clock.Now
	app.historyPane.now = clock.Now
	app.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	drain(t, app, tea.Batch(loadDayCmd(app.session), app.historyPane.LoadCmd()))
	return app, dash, clock
}

// drain runs cmd and every command it leads to, feeding the resulting
// messages back into the app. Ticks are not fed back so the loop ends.
func drain(t *testing.T, a *App, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 100 {
			t.Fatal("command chain did not settle")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil, tickMsg, tea.QuitMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			_, next := a.Update(msg)
			queue = append(queue, next)
		}
	}
}

// press sends a key to the app and runs the resulting commands.
func press(t *testing.T, a *App, keys ...string) {
	t.Helper()
	for _, k := range keys {
		_, cmd := a.Update(keyMsg(k))
		drain(t, a, cmd)
	}
}

// keyMsg builds the KeyMsg Bubble Tea reports for k.
func keyMsg(k string) tea.KeyMsg {
	switch k {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+d":
		return tea.KeyMsg{Type: tea.KeyCtrlD}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// contains checks if s contains substr.
func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}

var errTest = errors.New("test error")
