// Package storage is aura's local key-value persistence facility.
//
// The dashboard keeps two independent blobs (the current day state and the
// history log), each under its own key. Backends store whole values; there
// are no partial updates and no cross-key transactions.
package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"aura/internal/logging"
)

// Errors returned by every backend.
var (
	ErrNotFound = errors.New("key not found")
	ErrCorrupt  = errors.New("stored value is corrupt")
)

// Backend names accepted by Open and the config file.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// SQLiteFile is the database file used by the sqlite backend.
const SQLiteFile = "aura.db"

// KV stores opaque values by key. Values written by aura are JSON documents.
type KV interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(key string) ([]byte, error)
	// Put replaces the value stored under key.
	Put(key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
	// Close releases the backend.
	Close() error
}

// Open returns the backend named by backend rooted at dataDir.
func Open(backend, dataDir string, logger *slog.Logger) (KV, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendJSON:
		return NewFileStore(dataDir, logger)
	case BackendSQLite:
		return OpenSQLite(filepath.Join(dataDir, SQLiteFile))
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q (want %s, %s or %s)",
			backend, BackendJSON, BackendSQLite, BackendMemory)
	}
}

// ValidBackend reports whether name is a backend Open understands.
func ValidBackend(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", BackendJSON, BackendSQLite, BackendMemory:
		return true
	}
	return false
}

func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("key is required")
	}
	if key != filepath.Base(key) || strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return fmt.Errorf("invalid key %q", key)
	}
	return nil
}
