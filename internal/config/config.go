// Package config handles configuration loading and defaults for aura.
// Configuration is loaded from XDG-compliant paths (typically ~/.config/aura/config.yaml).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"aura/internal/fsutil"
	"aura/internal/storage"
	"aura/internal/tracker"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	// DataDir overrides the default data directory (~/.aura)
	DataDir string `yaml:"data_dir,omitempty"`

	// Storage selects the persistence backend
	Storage StorageConfig `yaml:"storage,omitempty"`

	// Habits is the fixed habit set, in display order
	Habits []HabitConfig `yaml:"habits,omitempty"`

	// Theme customizes the visual appearance
	Theme ThemeConfig `yaml:"theme,omitempty"`

	// Keys customizes keyboard shortcuts
	Keys KeysConfig `yaml:"keys,omitempty"`

	// UX customizes user experience settings
	UX UXConfig `yaml:"ux,omitempty"`

	// Notifications configures desktop notifications
	Notifications NotificationConfig `yaml:"notifications,omitempty"`

	// Log configures the JSON log file in the data directory
	Log LogConfig `yaml:"log,omitempty"`
}

// StorageConfig selects where the day state and history live.
type StorageConfig struct {
	// Backend is one of "json", "sqlite" or "memory"
	Backend string `yaml:"backend,omitempty"`
}

// HabitConfig describes one tracked habit.
type HabitConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name,omitempty"`
	Icon string `yaml:"icon,omitempty"`
}

// Label returns the display name, falling back to the id.
func (h HabitConfig) Label() string {
	if h.Name != "" {
		return h.Name
	}
	return h.ID
}

// NotificationConfig defines desktop notification settings.
type NotificationConfig struct {
	// Enabled enables/disables notifications
	Enabled bool `yaml:"enabled,omitempty"`

	// Sound enables notification sounds
	Sound bool `yaml:"sound,omitempty"`
}

// LogConfig defines logging settings. LOG_LEVEL overrides Level.
type LogConfig struct {
	Level string `yaml:"level,omitempty"` // debug, info, warn, error
}

// ThemeConfig defines color and style settings.
type ThemeConfig struct {
	// Primary color for focused elements (hex, e.g., "#FF5733")
	Primary string `yaml:"primary,omitempty"`

	// Accent color for highlights (hex)
	Accent string `yaml:"accent,omitempty"`

	// Muted color for secondary text (hex)
	Muted string `yaml:"muted,omitempty"`

	// Background and Text apply in light mode; empty means terminal default
	Background string `yaml:"background,omitempty"`
	Text       string `yaml:"text,omitempty"`

	// DarkBackground and DarkText apply when dark mode is on
	DarkBackground string `yaml:"dark_background,omitempty"`
	DarkText       string `yaml:"dark_text,omitempty"`
}

// KeysConfig defines customizable keyboard shortcuts.
// Each field accepts a comma-separated list of key bindings.
// Examples: "q,ctrl+c", "tab", "j,down"
type KeysConfig struct {
	// Global keys
	Quit     string `yaml:"quit,omitempty"`      // default: "q,ctrl+c"
	Help     string `yaml:"help,omitempty"`      // default: "?"
	NextPane string `yaml:"next_pane,omitempty"` // default: "tab"
	Pane1    string `yaml:"pane_1,omitempty"`    // default: "1"
	Pane2    string `yaml:"pane_2,omitempty"`    // default: "2"
	DarkMode string `yaml:"dark_mode,omitempty"` // default: "ctrl+d"
	Reset    string `yaml:"reset,omitempty"`     // default: "ctrl+r"

	// Navigation keys
	Up     string `yaml:"up,omitempty"`     // default: "k,up"
	Down   string `yaml:"down,omitempty"`   // default: "j,down"
	Top    string `yaml:"top,omitempty"`    // default: "g"
	Bottom string `yaml:"bottom,omitempty"` // default: "G"

	// Today pane keys
	ToggleHabit string `yaml:"toggle_habit,omitempty"` // default: "space,enter"
	MoodPrev    string `yaml:"mood_prev,omitempty"`    // default: "h,left"
	MoodNext    string `yaml:"mood_next,omitempty"`    // default: "l,right"
	WaterAdd    string `yaml:"water_add,omitempty"`    // default: "+,="
	WaterRemove string `yaml:"water_remove,omitempty"` // default: "-,_"

	// History pane keys
	Filter       string `yaml:"filter,omitempty"`        // default: "f"
	DeleteEntry  string `yaml:"delete_entry,omitempty"`  // default: "x"
	ClearHistory string `yaml:"clear_history,omitempty"` // default: "X"
	Export       string `yaml:"export,omitempty"`        // default: "e"

	// Dialog keys
	Confirm string `yaml:"confirm,omitempty"` // default: "y,enter"
	Cancel  string `yaml:"cancel,omitempty"`  // default: "n,esc"
}

// fields lists every binding so merging does not need one branch per key.
func (k *KeysConfig) fields() []*string {
	return []*string{
		&k.Quit, &k.Help, &k.NextPane, &k.Pane1, &k.Pane2, &k.DarkMode, &k.Reset,
		&k.Up, &k.Down, &k.Top, &k.Bottom,
		&k.ToggleHabit, &k.MoodPrev, &k.MoodNext, &k.WaterAdd, &k.WaterRemove,
		&k.Filter, &k.DeleteEntry, &k.ClearHistory, &k.Export,
		&k.Confirm, &k.Cancel,
	}
}

// UXConfig defines user experience settings.
type UXConfig struct {
	// ConfirmDeletions asks before reset, delete and clear; when false they
	// proceed immediately
	ConfirmDeletions bool `yaml:"confirm_deletions,omitempty"` // default: true

	// NarrowLayoutThreshold is the terminal width below which to use stacked layout
	NarrowLayoutThreshold int `yaml:"narrow_layout_threshold,omitempty"` // default: 90
}

// DefaultHabits returns the built-in habit set.
func DefaultHabits() []HabitConfig {
	return []HabitConfig{
		{ID: "exercise", Name: "Exercise", Icon: "🏃"},
		{ID: "reading", Name: "Reading", Icon: "📚"},
		{ID: "meditation", Name: "Meditation", Icon: "🧘"},
		{ID: "healthy-meal", Name: "Healthy meal", Icon: "🥗"},
		{ID: "sleep-early", Name: "Sleep early", Icon: "😴"},
		{ID: "no-social-media", Name: "No social media", Icon: "📵"},
	}
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		DataDir: defaultDataDir(),
		Storage: StorageConfig{Backend: storage.BackendJSON},
		Habits:  DefaultHabits(),
		Theme: ThemeConfig{
			Primary:        "#667EEA", // Indigo
			Accent:         "#48BB78", // Green
			Muted:          "#718096", // Gray
			Background:     "",        // Terminal default
			Text:           "",        // Terminal default
			DarkBackground: "#1A202C",
			DarkText:       "#E2E8F0",
		},
		UX: UXConfig{
			ConfirmDeletions:      true,
			NarrowLayoutThreshold: 90,
		},
		Notifications: NotificationConfig{
			Enabled: false,
			Sound:   false,
		},
		Log: LogConfig{Level: "info"},
	}
}

// defaultDataDir returns the default data directory path.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".aura"
	}
	return filepath.Join(home, ".aura")
}

// configDir returns the configuration directory path (XDG compliant).
func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "aura")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "aura")
}

// Path returns the config file location, or "" when no home directory is known.
func Path() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads configuration from disk, merging with defaults.
// If no config file exists, returns default configuration.
func Load() (*Config, error) {
	return LoadFile(Path())
}

// LoadFile is Load for an explicit path.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var userCfg Config
	if err := yaml.Unmarshal(data, &userCfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	var doc yaml.Node
	_ = yaml.Unmarshal(data, &doc) // best-effort; fall back to conservative merge if this fails

	cfg.mergeFromYAML(&userCfg, &doc)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// mergeNonEmpty applies non-empty values from other to c.
// It does not touch booleans or slices (those require presence-aware merging).
func (c *Config) mergeNonEmpty(other *Config) {
	if other.DataDir != "" {
		c.DataDir = other.DataDir
	}
	if other.Storage.Backend != "" {
		c.Storage.Backend = other.Storage.Backend
	}

	theme := []struct {
		dst *string
		src string
	}{
		{&c.Theme.Primary, other.Theme.Primary},
		{&c.Theme.Accent, other.Theme.Accent},
		{&c.Theme.Muted, other.Theme.Muted},
		{&c.Theme.Background, other.Theme.Background},
		{&c.Theme.Text, other.Theme.Text},
		{&c.Theme.DarkBackground, other.Theme.DarkBackground},
		{&c.Theme.DarkText, other.Theme.DarkText},
	}
	for _, f := range theme {
		if f.src != "" {
			*f.dst = f.src
		}
	}

	dst, src := c.Keys.fields(), other.Keys.fields()
	for i := range dst {
		if *src[i] != "" {
			*dst[i] = *src[i]
		}
	}

	if other.UX.NarrowLayoutThreshold > 0 {
		c.UX.NarrowLayoutThreshold = other.UX.NarrowLayoutThreshold
	}
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
}

func (c *Config) mergeFromYAML(other *Config, doc *yaml.Node) {
	c.mergeNonEmpty(other)

	// Without presence information only non-empty lists are taken.
	if doc == nil || len(doc.Content) == 0 {
		if len(other.Habits) > 0 {
			c.Habits = other.Habits
		}
		return
	}

	if yamlHasPath(doc, "habits") {
		c.Habits = other.Habits
	}
	if yamlHasPath(doc, "ux", "confirm_deletions") {
		c.UX.ConfirmDeletions = other.UX.ConfirmDeletions
	}
	if yamlHasPath(doc, "notifications", "enabled") {
		c.Notifications.Enabled = other.Notifications.Enabled
	}
	if yamlHasPath(doc, "notifications", "sound") {
		c.Notifications.Sound = other.Notifications.Sound
	}
}

func yamlHasPath(doc *yaml.Node, path ...string) bool {
	if doc == nil || len(path) == 0 {
		return false
	}

	// Document -> root mapping.
	n := doc
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	for _, key := range path {
		if n == nil || n.Kind != yaml.MappingNode {
			return false
		}
		var next *yaml.Node
		for i := 0; i+1 < len(n.Content); i += 2 {
			if k := n.Content[i]; k.Kind == yaml.ScalarNode && k.Value == key {
				next = n.Content[i+1]
				break
			}
		}
		if next == nil {
			return false
		}
		n = next
	}
	return true
}

// Validate checks the values the dashboard cannot start without.
func (c *Config) Validate() error {
	if !storage.ValidBackend(c.Storage.Backend) {
		return fmt.Errorf("storage.backend: unknown backend %q", c.Storage.Backend)
	}
	if _, err := tracker.NewHabitSet(c.HabitIDs()); err != nil {
		return fmt.Errorf("habits: %w", err)
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}
	if c.UX.NarrowLayoutThreshold < 0 {
		return fmt.Errorf("ux.narrow_layout_threshold must not be negative")
	}
	return nil
}

// HabitIDs returns the configured habit ids in order.
func (c *Config) HabitIDs() []string {
	ids := make([]string, len(c.Habits))
	for i, h := range c.Habits {
		ids[i] = strings.TrimSpace(h.ID)
	}
	return ids
}

// Habit returns the configuration for id, or a bare entry when id is unknown.
func (c *Config) Habit(id string) HabitConfig {
	for _, h := range c.Habits {
		if h.ID == id {
			return h
		}
	}
	return HabitConfig{ID: id}
}

// Save writes the configuration to disk.
func (c *Config) Save() error {
	path := Path()
	if path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return fsutil.WriteFileAtomic(path, data, 0600)
}

// GetDataDir returns the resolved data directory path.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return defaultDataDir()
	}
	if c.DataDir == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return c.DataDir
	}
	if strings.HasPrefix(c.DataDir, "~/") || strings.HasPrefix(c.DataDir, `~\`) {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, c.DataDir[2:])
		}
	}
	return c.DataDir
}
