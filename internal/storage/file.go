package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"aura/internal/fsutil"
	"aura/internal/logging"
)

const (
	dataDirPerm  os.FileMode = 0700
	dataFilePerm os.FileMode = 0600
)

// FileStore keeps each key as <dataDir>/<key>.json.
//
// Every write leaves the previous value in <key>.json.bak. A value that is
// empty or not valid JSON on read is replaced from the .bak copy when that
// copy is usable; otherwise the broken file is moved aside and ErrCorrupt is
// returned.
type FileStore struct {
	dataDir string
	logger  *slog.Logger
	now     func() time.Time
}

// NewFileStore creates the data directory if needed and returns a store on it.
func NewFileStore(dataDir string, logger *slog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, dataDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &FileStore{dataDir: dataDir, logger: logger, now: time.Now}, nil
}

// DataDir returns the directory holding the value files.
func (s *FileStore) DataDir() string {
	return s.dataDir
}

// Path returns the file that holds key.
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.dataDir, key+".json")
}

// Get implements KV.
func (s *FileStore) Get(key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	path := s.Path(key)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return s.recover(key, fmt.Errorf("%s is empty", filepath.Base(path)))
	}
	if !json.Valid(data) {
		return s.recover(key, fmt.Errorf("parse %s: invalid JSON", filepath.Base(path)))
	}
	return data, nil
}

// Put implements KV.
func (s *FileStore) Put(key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	path := s.Path(key)
	fsutil.BestEffortBackup(path, dataFilePerm)
	if err := fsutil.WriteFileAtomic(path, value, dataFilePerm); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Delete implements KV. The .bak copy is left in place.
func (s *FileStore) Delete(key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := os.Remove(s.Path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Close implements KV.
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) recover(key string, cause error) ([]byte, error) {
	path := s.Path(key)
	corruptPath := fmt.Sprintf("%s.corrupt.%s", path, s.now().Format("20060102-150405"))

	bak, err := os.ReadFile(path + ".bak")
	if err == nil && len(bytes.TrimSpace(bak)) > 0 && json.Valid(bak) {
		_ = os.Rename(path, corruptPath)
		if err := fsutil.WriteFileAtomic(path, bak, dataFilePerm); err != nil {
			s.logger.Warn("restore from backup copy failed", "key", key, "error", err)
		}
		s.logger.Warn("recovered value from backup copy", "key", key, "cause", cause.Error(), "moved_to", corruptPath)
		return bak, nil
	}

	_ = os.Rename(path, corruptPath)
	s.logger.Error("value unreadable and no usable backup", "key", key, "cause", cause.Error(), "moved_to", corruptPath)
	return nil, fmt.Errorf("%w: %v (original moved to %s)", ErrCorrupt, cause, corruptPath)
}
