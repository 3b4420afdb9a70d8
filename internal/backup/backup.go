// Package backup provides backup and restore functionality for aura.
// A backup is a timestamped directory holding one JSON file per stored key
// plus a manifest, so it works the same whichever storage backend is in use.
package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pmezard/go-difflib/difflib"

	"aura/internal/fsutil"
	"aura/internal/storage"
	"aura/internal/tracker"
)

// Version constants for the backup format.
const (
	ManifestVersion = "1.0"
	ManifestFile    = "manifest.json"
	BackupsDir      = "backups"
)

// Keys are the store keys captured by a backup.
var Keys = []string{tracker.StateKey, tracker.HistoryKey}

const nameLayout = "2006-01-02_150405"

// Manager handles backup and restore operations.
type Manager struct {
	store      storage.KV
	backupDir  string // Path to backups directory (e.g., ~/.aura/backups)
	appVersion string // Application version for manifest
	now        func() time.Time
}

// Manifest contains metadata about a backup.
type Manifest struct {
	Version    string         `json:"version"`
	CreatedAt  time.Time      `json:"created_at"`
	AppVersion string         `json:"app_version"`
	Keys       []string       `json:"keys"`
	Stats      map[string]int `json:"stats"`
}

// BackupInfo contains summary information about a backup.
type BackupInfo struct {
	Name      string         // Directory name (2025-12-15_143022_123)
	Path      string         // Full path to backup directory
	CreatedAt time.Time      // When the backup was created
	Stats     map[string]int // history_days, habits_done
}

// NewManager creates a backup manager for store. Backups live in
// dataDir/backups.
func NewManager(store storage.KV, dataDir, appVersion string) *Manager {
	return &Manager{
		store:      store,
		backupDir:  filepath.Join(dataDir, BackupsDir),
		appVersion: appVersion,
		now:        time.Now,
	}
}

// SetNowFunc overrides the clock used to name backups. Passing nil resets it.
func (m *Manager) SetNowFunc(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	m.now = now
}

// Dir returns the directory holding the backups.
func (m *Manager) Dir() string {
	return m.backupDir
}

// Create snapshots every stored key.
// Returns the backup name (timestamp format) on success.
func (m *Manager) Create() (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	// Names carry milliseconds; bump until free so two backups in the same
	// millisecond (a safety backup right after a manual one) never collide.
	now := m.now()
	name := backupName(now)
	for fsutil.Exists(filepath.Join(m.backupDir, name)) {
		now = now.Add(time.Millisecond)
		name = backupName(now)
	}
	backupPath := filepath.Join(m.backupDir, name)
	if err := os.MkdirAll(backupPath, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup: %w", err)
	}

	var copied []string
	stats := make(map[string]int)
	for _, key := range Keys {
		data, err := m.store.Get(key)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			_ = os.RemoveAll(backupPath)
			return "", fmt.Errorf("failed to read %s: %w", key, err)
		}
		if err := fsutil.WriteFileAtomic(filepath.Join(backupPath, key+".json"), data, 0600); err != nil {
			_ = os.RemoveAll(backupPath)
			return "", fmt.Errorf("failed to copy %s: %w", key, err)
		}
		copied = append(copied, key)
		if stat, count, ok := countItems(key, data); ok {
			stats[stat] = count
		}
	}

	manifest := Manifest{
		Version:    ManifestVersion,
		CreatedAt:  now,
		AppVersion: m.appVersion,
		Keys:       copied,
		Stats:      stats,
	}
	if err := writeJSON(filepath.Join(backupPath, ManifestFile), manifest); err != nil {
		_ = os.RemoveAll(backupPath)
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}

	return name, nil
}

// List returns all available backups, sorted by creation time (newest first).
func (m *Manager) List() ([]BackupInfo, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []BackupInfo{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := m.info(entry.Name())
		if err != nil {
			continue // Skip invalid backups
		}
		backups = append(backups, *info)
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})
	return backups, nil
}

// Restore replaces the stored keys with the contents of a backup. Keys the
// backup does not hold are removed. Every file is validated before anything
// is written, and a safety backup of the current data is taken first.
// The returned name is that safety backup.
func (m *Manager) Restore(name string) (string, error) {
	backupPath, err := m.path(name)
	if err != nil {
		return "", err
	}

	snapshot, err := readSnapshot(backupPath)
	if err != nil {
		return "", fmt.Errorf("backup %s is unusable: %w", name, err)
	}

	safetyName, err := m.Create()
	if err != nil {
		return "", fmt.Errorf("failed to create safety backup: %w", err)
	}

	for _, key := range Keys {
		data, ok := snapshot[key]
		if !ok {
			err = m.store.Delete(key)
		} else {
			err = m.store.Put(key, data)
		}
		if err != nil {
			return safetyName, fmt.Errorf("failed to restore %s (safety backup: %s): %w", key, safetyName, err)
		}
	}
	return safetyName, nil
}

// RestoreLatest restores from the most recent backup and returns its name
// and the safety backup's name.
func (m *Manager) RestoreLatest() (restored, safety string, err error) {
	backups, err := m.List()
	if err != nil {
		return "", "", err
	}
	if len(backups) == 0 {
		return "", "", fmt.Errorf("no backups available")
	}
	safety, err = m.Restore(backups[0].Name)
	return backups[0].Name, safety, err
}

// Diff returns a unified diff from the current data to the backup's, one
// section per key. An empty string means restoring would change nothing.
func (m *Manager) Diff(name string) (string, error) {
	backupPath, err := m.path(name)
	if err != nil {
		return "", err
	}
	snapshot, err := readSnapshot(backupPath)
	if err != nil {
		return "", fmt.Errorf("backup %s is unusable: %w", name, err)
	}

	var out strings.Builder
	for _, key := range Keys {
		current, err := m.store.Get(key)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return "", fmt.Errorf("failed to read %s: %w", key, err)
		}
		text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(pretty(current)),
			B:        difflib.SplitLines(pretty(snapshot[key])),
			FromFile: "current/" + key,
			ToFile:   name + "/" + key,
			Context:  3,
		})
		if err != nil {
			return "", fmt.Errorf("diff %s: %w", key, err)
		}
		out.WriteString(text)
	}
	return out.String(), nil
}

// Delete removes a specific backup.
func (m *Manager) Delete(name string) error {
	backupPath, err := m.path(name)
	if err != nil {
		return err
	}
	return os.RemoveAll(backupPath)
}

// Prune removes old backups, keeping only the N most recent.
func (m *Manager) Prune(keepCount int) (int, error) {
	if keepCount < 0 {
		return 0, fmt.Errorf("keepCount must be non-negative")
	}

	backups, err := m.List()
	if err != nil {
		return 0, err
	}
	if len(backups) <= keepCount {
		return 0, nil
	}

	deleted := 0
	for _, backup := range backups[keepCount:] {
		if err := m.Delete(backup.Name); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

// GetBackup returns information about a specific backup.
func (m *Manager) GetBackup(name string) (*BackupInfo, error) {
	if _, err := m.path(name); err != nil {
		return nil, err
	}
	return m.info(name)
}

// Helper functions

func (m *Manager) path(name string) (string, error) {
	if err := validateBackupName(name); err != nil {
		return "", err
	}
	backupPath := filepath.Join(m.backupDir, name)
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return "", fmt.Errorf("backup not found: %s", name)
	}
	return backupPath, nil
}

func (m *Manager) info(name string) (*BackupInfo, error) {
	backupPath := filepath.Join(m.backupDir, name)

	var manifest Manifest
	if err := readJSON(filepath.Join(backupPath, ManifestFile), &manifest); err != nil {
		createdAt, parseErr := parseBackupName(name)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid backup: %s", name)
		}
		manifest.CreatedAt = createdAt
	}
	if manifest.Stats == nil {
		manifest.Stats = make(map[string]int)
	}

	return &BackupInfo{
		Name:      name,
		Path:      backupPath,
		CreatedAt: manifest.CreatedAt,
		Stats:     manifest.Stats,
	}, nil
}

// readSnapshot loads and validates every key file in a backup directory.
func readSnapshot(backupPath string) (map[string][]byte, error) {
	snapshot := make(map[string][]byte, len(Keys))
	for _, key := range Keys {
		data, err := os.ReadFile(filepath.Join(backupPath, key+".json"))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if !json.Valid(data) {
			return nil, fmt.Errorf("%s.json is not valid JSON", key)
		}
		snapshot[key] = data
	}
	if len(snapshot) == 0 {
		return nil, fmt.Errorf("backup holds no data")
	}
	return snapshot, nil
}

func backupName(t time.Time) string {
	return fmt.Sprintf("%s_%03d", t.Format(nameLayout), t.Nanosecond()/1e6)
}

func validateBackupName(name string) error {
	if name == "" {
		return fmt.Errorf("backup name is required")
	}
	if name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid backup name: %q", name)
	}
	if _, err := parseBackupName(name); err != nil {
		return fmt.Errorf("invalid backup name: %q", name)
	}
	return nil
}

// pretty re-indents JSON so diffs are line oriented whatever the backend
// stored.
func pretty(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return string(data)
	}
	buf.WriteByte('\n')
	return buf.String()
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, data, 0600)
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// countItems derives the manifest statistic for a stored key.
func countItems(key string, data []byte) (string, int, bool) {
	switch key {
	case tracker.HistoryKey:
		var log map[string]json.RawMessage
		if err := json.Unmarshal(data, &log); err != nil {
			return "", 0, false
		}
		return "history_days", len(log), true
	case tracker.StateKey:
		var state tracker.DayState
		if err := json.Unmarshal(data, &state); err != nil {
			return "", 0, false
		}
		done := 0
		for _, ok := range state.Habits {
			if ok {
				done++
			}
		}
		return "habits_done", done, true
	}
	return "", 0, false
}

// parseBackupName parses a backup directory name into a timestamp.
// Supports both 2006-01-02_150405 and 2006-01-02_150405_XXX.
func parseBackupName(name string) (time.Time, error) {
	if len(name) == 21 {
		baseTime, err := time.Parse(nameLayout, name[:17])
		if err != nil {
			return time.Time{}, err
		}
		if name[17] != '_' {
			return time.Time{}, fmt.Errorf("invalid backup format")
		}
		ms, err := strconv.Atoi(name[18:])
		if err != nil || ms < 0 || ms > 999 {
			return time.Time{}, fmt.Errorf("invalid milliseconds")
		}
		return baseTime.Add(time.Duration(ms) * time.Millisecond), nil
	}
	return time.Parse(nameLayout, name)
}
