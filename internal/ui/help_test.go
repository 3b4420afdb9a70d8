package ui

import (
	"strings"
	"testing"

	"aura/internal/config"
)

func newTestHelp(cfg *config.KeysConfig) *HelpOverlay {
	return NewHelpOverlay(createTestStyles(),
		NewGlobalKeyMap(cfg), NewTodayKeyMap(cfg), NewHistoryKeyMap(cfg), NewDialogKeyMap(cfg))
}

func TestHelpOverlay_ContentStructure(t *testing.T) {
	setupTest(t)

	help := newTestHelp(nil)
	help.SetSize(100, 40)
	output := help.View()

	for _, section := range []string{"Global", "Today", "History", "Dialogs"} {
		if !contains(output, section) {
			t.Errorf("help overlay should contain section: %s", section)
		}
	}

	for _, desc := range []string{"toggle habit", "better mood", "add glass", "filter", "delete day", "export", "dark mode", "reset today"} {
		if !contains(output, desc) {
			t.Errorf("help overlay should describe %q", desc)
		}
	}
}

func TestHelpOverlay_ShowsKeys(t *testing.T) {
	setupTest(t)

	help := newTestHelp(nil)
	help.SetSize(100, 40)
	output := help.View()

	for _, k := range []string{"space / enter", "k / up", "ctrl+d", "tab"} {
		if !contains(output, k) {
			t.Errorf("help overlay should show key %q", k)
		}
	}
}

func TestHelpOverlay_KeyLabelsStayOnOneRow(t *testing.T) {
	setupTest(t)

	help := newTestHelp(&config.KeysConfig{ToggleHabit: "space,enter,x", Quit: "ctrl+shift+q"})
	help.SetSize(100, 40)
	output := help.View()

	rows := map[string]string{
		"space / enter": "toggle habit",
		"ctrl+shift+q":  "quit",
	}
	for label, desc := range rows {
		found := false
		for _, line := range strings.Split(output, "\n") {
			if contains(line, label) {
				found = true
				if !contains(line, desc) {
					t.Errorf("key %q and %q should share a row, got %q", label, desc, line)
				}
			}
		}
		if !found {
			t.Errorf("help overlay should show key %q", label)
		}
	}
}

func TestHelpOverlay_CustomKeys(t *testing.T) {
	setupTest(t)

	help := newTestHelp(&config.KeysConfig{WaterAdd: "w,space"})
	help.SetSize(100, 40)
	output := help.View()

	if !contains(output, "w / space") {
		t.Error("help overlay should show custom keys")
	}
	if contains(output, "+ / =") {
		t.Error("replaced default keys should not be listed")
	}
}

func TestHelpOverlay_SmallTerminal(t *testing.T) {
	setupTest(t)

	help := newTestHelp(nil)
	help.SetSize(30, 20)

	if output := help.View(); !contains(output, "Keyboard") {
		t.Error("help overlay should render in a small terminal")
	}
}

func TestBindingKeys(t *testing.T) {
	tests := []struct {
		keys []string
		want string
	}{
		{[]string{"q"}, "q"},
		{[]string{" ", "enter"}, "space / enter"},
		{[]string{"y", "Y", "enter"}, "y / Y"},
	}
	for _, tt := range tests {
		if got := bindingKeys(binding("", "x", tt.keys...)); got != tt.want {
			t.Errorf("bindingKeys(%v) = %q, want %q", tt.keys, got, tt.want)
		}
	}
}
