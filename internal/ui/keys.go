// Package ui is the Bubble Tea front end of aura.
// This file defines key bindings using the Bubble Tea key package for
// type-safe key matching, help text generation, and user customization.
package ui

import (
	"strings"

	"aura/internal/config"

	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// Helpers
// =============================================================================

// parseKeys splits a comma-separated string into individual keys.
// If the input is empty, returns the default keys. "space" names the space
// bar, which Bubble Tea reports as " ".
func parseKeys(customKeys string, defaultKeys ...string) []string {
	if customKeys == "" {
		return defaultKeys
	}
	keys := strings.Split(customKeys, ",")
	result := make([]string, 0, len(keys))
	for _, k := range keys {
		trimmed := strings.TrimSpace(k)
		if trimmed == "space" {
			trimmed = " "
		}
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultKeys
	}
	return result
}

// helpKey returns the label shown for a binding's first key.
func helpKey(keys []string) string {
	if len(keys) == 0 {
		return ""
	}
	if keys[0] == " " {
		return "space"
	}
	return keys[0]
}

func binding(custom string, desc string, defaults ...string) key.Binding {
	keys := parseKeys(custom, defaults...)
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(helpKey(keys), desc))
}

// =============================================================================
// Global Keys (available in all contexts)
// =============================================================================

// GlobalKeyMap defines keys available throughout the application.
type GlobalKeyMap struct {
	Quit     key.Binding
	Help     key.Binding
	NextPane key.Binding
	Pane1    key.Binding
	Pane2    key.Binding
	DarkMode key.Binding
	Reset    key.Binding
}

// NewGlobalKeyMap creates global key bindings from config.
func NewGlobalKeyMap(cfg *config.KeysConfig) GlobalKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return GlobalKeyMap{
		Quit:     binding(cfg.Quit, "quit", "q", "ctrl+c"),
		Help:     binding(cfg.Help, "help", "?"),
		NextPane: binding(cfg.NextPane, "next pane", "tab"),
		Pane1:    binding(cfg.Pane1, "today", "1"),
		Pane2:    binding(cfg.Pane2, "history", "2"),
		DarkMode: binding(cfg.DarkMode, "dark mode", "ctrl+d"),
		Reset:    binding(cfg.Reset, "reset today", "ctrl+r"),
	}
}

// =============================================================================
// Navigation Keys (shared by list-based panes)
// =============================================================================

// NavigationKeyMap defines keys for list navigation.
type NavigationKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
}

// NewNavigationKeyMap creates navigation key bindings from config.
func NewNavigationKeyMap(cfg *config.KeysConfig) NavigationKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return NavigationKeyMap{
		Up:     binding(cfg.Up, "up", "k", "up"),
		Down:   binding(cfg.Down, "down", "j", "down"),
		Top:    binding(cfg.Top, "top", "g"),
		Bottom: binding(cfg.Bottom, "bottom", "G"),
	}
}

// =============================================================================
// Today Pane Keys
// =============================================================================

// TodayKeyMap defines keys for the today pane.
type TodayKeyMap struct {
	Toggle      key.Binding
	MoodPrev    key.Binding
	MoodNext    key.Binding
	WaterAdd    key.Binding
	WaterRemove key.Binding
	NavigationKeyMap
}

// NewTodayKeyMap creates today pane key bindings from config.
func NewTodayKeyMap(cfg *config.KeysConfig) TodayKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return TodayKeyMap{
		Toggle:           binding(cfg.ToggleHabit, "toggle habit", " ", "enter"),
		MoodPrev:         binding(cfg.MoodPrev, "worse mood", "h", "left"),
		MoodNext:         binding(cfg.MoodNext, "better mood", "l", "right"),
		WaterAdd:         binding(cfg.WaterAdd, "add glass", "+", "="),
		WaterRemove:      binding(cfg.WaterRemove, "remove glass", "-", "_"),
		NavigationKeyMap: NewNavigationKeyMap(cfg),
	}
}

// ShortHelp returns the short help for the today pane (implements help.KeyMap).
func (k TodayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.MoodNext, k.WaterAdd, k.WaterRemove}
}

// FullHelp returns the full help for the today pane (implements help.KeyMap).
func (k TodayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Up, k.Down, k.Top, k.Bottom},
		{k.MoodPrev, k.MoodNext},
		{k.WaterAdd, k.WaterRemove},
	}
}

// =============================================================================
// History Pane Keys
// =============================================================================

// HistoryKeyMap defines keys for the history pane.
type HistoryKeyMap struct {
	Filter key.Binding
	Delete key.Binding
	Clear  key.Binding
	Export key.Binding
	NavigationKeyMap
}

// NewHistoryKeyMap creates history pane key bindings from config.
func NewHistoryKeyMap(cfg *config.KeysConfig) HistoryKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return HistoryKeyMap{
		Filter:           binding(cfg.Filter, "filter", "f"),
		Delete:           binding(cfg.DeleteEntry, "delete day", "x"),
		Clear:            binding(cfg.ClearHistory, "clear all", "X"),
		Export:           binding(cfg.Export, "export", "e"),
		NavigationKeyMap: NewNavigationKeyMap(cfg),
	}
}

// ShortHelp returns the short help for the history pane (implements help.KeyMap).
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Filter, k.Delete, k.Export, k.Down}
}

// FullHelp returns the full help for the history pane (implements help.KeyMap).
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Filter, k.Delete, k.Clear, k.Export},
		{k.Up, k.Down, k.Top, k.Bottom},
	}
}

// =============================================================================
// Dialog Keys
// =============================================================================

// DialogKeyMap defines keys for the confirmation dialog.
type DialogKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// NewDialogKeyMap creates dialog key bindings from config.
func NewDialogKeyMap(cfg *config.KeysConfig) DialogKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return DialogKeyMap{
		Confirm: binding(cfg.Confirm, "confirm", "y", "Y", "enter"),
		Cancel:  binding(cfg.Cancel, "cancel", "n", "N", "esc"),
	}
}

// =============================================================================
// Help Overlay Keys
// =============================================================================

// HelpKeyMap defines keys for the help overlay.
type HelpKeyMap struct {
	Close key.Binding
}

// DefaultHelpKeyMap returns the default help overlay key bindings.
func DefaultHelpKeyMap() HelpKeyMap {
	return HelpKeyMap{
		Close: key.NewBinding(
			key.WithKeys("?", "esc", "q", "enter", " "),
			key.WithHelp("any key", "close"),
		),
	}
}
