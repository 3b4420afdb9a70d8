package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// backends returns a fresh instance of every backend rooted in a temp dir.
func backends(t *testing.T) map[string]KV {
	t.Helper()

	fileStore, err := NewFileStore(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	sqliteStore, err := OpenSQLite(filepath.Join(t.TempDir(), SQLiteFile))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { sqliteStore.Close() })

	return map[string]KV{
		BackendJSON:   fileStore,
		BackendSQLite: sqliteStore,
		BackendMemory: NewMemoryStore(),
	}
}

// =============================================================================
// Behaviour shared by all backends
// =============================================================================

func TestKV_GetMissing(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := kv.Get("currentDayState")
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("Get() error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestKV_PutGetOverwrite(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := kv.Put("historyLog", []byte(`{"2025-06-01":{}}`)); err != nil {
				t.Fatalf("Put() error = %v", err)
			}
			if err := kv.Put("historyLog", []byte(`{}`)); err != nil {
				t.Fatalf("second Put() error = %v", err)
			}

			got, err := kv.Get("historyLog")
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if string(got) != `{}` {
				t.Errorf("Get() = %q, want last written value", got)
			}
		})
	}
}

func TestKV_Delete(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := kv.Delete("never-written"); err != nil {
				t.Errorf("Delete() on missing key error = %v", err)
			}

			if err := kv.Put("currentDayState", []byte(`{}`)); err != nil {
				t.Fatal(err)
			}
			if err := kv.Delete("currentDayState"); err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			if _, err := kv.Get("currentDayState"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get() after Delete error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestKV_RejectsBadKeys(t *testing.T) {
	badKeys := []string{"", "   ", "../escape", "a/b", `a\b`, ".hidden"}
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for _, key := range badKeys {
				if err := kv.Put(key, []byte(`{}`)); err == nil {
					t.Errorf("Put(%q) expected error", key)
				}
			}
		})
	}
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	kv := NewMemoryStore()
	value := []byte(`{"a":1}`)
	if err := kv.Put("k", value); err != nil {
		t.Fatal(err)
	}
	value[2] = 'X'

	got, _ := kv.Get("k")
	if string(got) != `{"a":1}` {
		t.Errorf("stored value aliased caller buffer: %q", got)
	}
}

// =============================================================================
// Open
// =============================================================================

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		backend string
		wantErr bool
	}{
		{"", false},
		{"json", false},
		{"JSON", false},
		{"sqlite", false},
		{"memory", false},
		{"redis", true},
	}
	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			kv, err := Open(tt.backend, dir, nil)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Open() expected error")
				}
				if ValidBackend(tt.backend) {
					t.Errorf("ValidBackend(%q) = true", tt.backend)
				}
				return
			}
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			defer kv.Close()
			if !ValidBackend(tt.backend) {
				t.Errorf("ValidBackend(%q) = false", tt.backend)
			}
		})
	}
}

// =============================================================================
// FileStore recovery
// =============================================================================

func TestFileStore_WritesBackupCopy(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}

	store.Put("historyLog", []byte(`{"v":1}`))
	store.Put("historyLog", []byte(`{"v":2}`))

	bak, err := os.ReadFile(store.Path("historyLog") + ".bak")
	if err != nil {
		t.Fatalf("read .bak: %v", err)
	}
	if string(bak) != `{"v":1}` {
		t.Errorf(".bak = %q, want previous value", bak)
	}
}

func TestFileStore_RecoversFromBackup(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	store.Put("currentDayState", []byte(`{"water":3}`))
	store.Put("currentDayState", []byte(`{"water":4}`))

	// Corrupt the live file; the .bak still holds water=3.
	if err := os.WriteFile(store.Path("currentDayState"), []byte(`{"water":`), 0600); err != nil {
		t.Fatal(err)
	}

	got, err := store.Get("currentDayState")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != `{"water":3}` {
		t.Errorf("Get() = %q, want backup value", got)
	}

	// The restored value is now the live file.
	live, _ := os.ReadFile(store.Path("currentDayState"))
	if string(live) != `{"water":3}` {
		t.Errorf("live file = %q after recovery", live)
	}
	assertCorruptCopy(t, store)
}

func TestFileStore_CorruptWithoutBackup(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", "   \n"},
		{"truncated", `{"date":"2025-06-01"`},
		{"not json", "hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := NewFileStore(t.TempDir(), nil)
			if err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(store.Path("historyLog"), []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}

			_, err = store.Get("historyLog")
			if !errors.Is(err, ErrCorrupt) {
				t.Fatalf("Get() error = %v, want ErrCorrupt", err)
			}
			if !strings.Contains(err.Error(), "moved to") {
				t.Errorf("error should say where the file went: %v", err)
			}

			// The broken file was moved aside, so the key now reads as missing.
			if _, err := store.Get("historyLog"); !errors.Is(err, ErrNotFound) {
				t.Errorf("second Get() error = %v, want ErrNotFound", err)
			}
			assertCorruptCopy(t, store)
		})
	}
}

func assertCorruptCopy(t *testing.T, store *FileStore) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(store.DataDir(), "*.corrupt.*"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Errorf("expected one preserved corrupt file, found %v", matches)
	}
}

// =============================================================================
// SQLiteStore
// =============================================================================

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), SQLiteFile)

	store, err := OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Put("historyLog", []byte(`{"2025-06-01":{}}`)); err != nil {
		t.Fatal(err)
	}
	store.Close()

	reopened, err := OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	got, err := reopened.Get("historyLog")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != `{"2025-06-01":{}}` {
		t.Errorf("Get() = %q", got)
	}

	at, err := reopened.UpdatedAt("historyLog")
	if err != nil {
		t.Fatalf("UpdatedAt() error = %v", err)
	}
	if at.IsZero() {
		t.Error("UpdatedAt() is zero")
	}
	if _, err := reopened.UpdatedAt("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdatedAt(missing) error = %v", err)
	}
}
