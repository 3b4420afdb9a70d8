package ui

import (
	"reflect"
	"testing"

	"aura/internal/config"

	"github.com/charmbracelet/bubbles/key"
)

func TestParseKeys(t *testing.T) {
	tests := []struct {
		name     string
		custom   string
		defaults []string
		want     []string
	}{
		{"empty uses defaults", "", []string{"q", "ctrl+c"}, []string{"q", "ctrl+c"}},
		{"single", "x", []string{"q"}, []string{"x"}},
		{"list with spaces", " a , b ", []string{"q"}, []string{"a", "b"}},
		{"space name", "space,enter", nil, []string{" ", "enter"}},
		{"only commas", ",,", []string{"q"}, []string{"q"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseKeys(tt.custom, tt.defaults...); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseKeys(%q) = %q, want %q", tt.custom, got, tt.want)
			}
		})
	}
}

func TestKeyMaps_Defaults(t *testing.T) {
	global := NewGlobalKeyMap(nil)
	today := NewTodayKeyMap(nil)
	history := NewHistoryKeyMap(nil)
	dialog := NewDialogKeyMap(nil)

	tests := []struct {
		name    string
		binding key.Binding
		key     string
	}{
		{"quit", global.Quit, "q"},
		{"quit ctrl+c", global.Quit, "ctrl+c"},
		{"dark mode", global.DarkMode, "ctrl+d"},
		{"toggle space", today.Toggle, " "},
		{"toggle enter", today.Toggle, "enter"},
		{"mood next", today.MoodNext, "l"},
		{"water add", today.WaterAdd, "="},
		{"up", today.Up, "k"},
		{"filter", history.Filter, "f"},
		{"clear", history.Clear, "X"},
		{"confirm", dialog.Confirm, "y"},
		{"cancel", dialog.Cancel, "esc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !key.Matches(keyMsg(tt.key), tt.binding) {
				t.Errorf("%q should match %s", tt.key, tt.name)
			}
		})
	}
}

func TestKeyMaps_Custom(t *testing.T) {
	cfg := &config.KeysConfig{ToggleHabit: "t", WaterAdd: "w,space"}
	today := NewTodayKeyMap(cfg)

	if key.Matches(keyMsg(" "), today.Toggle) {
		t.Error("custom toggle should replace the defaults")
	}
	if !key.Matches(keyMsg("t"), today.Toggle) {
		t.Error("t should toggle")
	}
	if !key.Matches(keyMsg(" "), today.WaterAdd) {
		t.Error("space should add water")
	}
	if h := today.WaterAdd.Help(); h.Key != "w" || h.Desc != "add glass" {
		t.Errorf("help = %+v", h)
	}
}

func TestSpaceHelpLabel(t *testing.T) {
	if h := NewTodayKeyMap(nil).Toggle.Help(); h.Key != "space" {
		t.Errorf("toggle help key = %q, want space", h.Key)
	}
}
