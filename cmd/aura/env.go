// This file contains the setup shared by the TUI and the subcommands:
// configuration, the log file, storage and the dashboard.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"aura/internal/config"
	"aura/internal/logging"
	"aura/internal/notify"
	"aura/internal/storage"
	"aura/internal/tracker"
)

// exportsDir is where the TUI writes exports, inside the data directory.
const exportsDir = "exports"

// appEnv holds everything a command needs to work on the user's data.
type appEnv struct {
	cfg     *config.Config
	logger  *slog.Logger
	logFile *os.File
	store   storage.KV
	dash    *tracker.Dashboard
}

// exitf prints an error and exits with status 1.
func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadConfig reads the configuration or exits.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		exitf("loading config: %v", err)
	}
	return cfg
}

// openStoreEnv loads config and opens the log file and storage without
// opening the dashboard. Backup and restore work on the raw keys.
func openStoreEnv() *appEnv {
	cfg := loadConfig()
	env := &appEnv{cfg: cfg}

	logger, logFile, err := logging.OpenFile(cfg.GetDataDir(), cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; logging disabled\n", err)
		logger = logging.Discard()
	}
	env.logger = logger
	env.logFile = logFile

	store, err := storage.Open(cfg.Storage.Backend, cfg.GetDataDir(), logger)
	if err != nil {
		env.Close()
		exitf("initializing storage: %v", err)
	}
	env.store = store
	return env
}

// openEnv opens storage and the dashboard. With notifications set and
// enabled in the config, rollovers and save failures raise desktop
// notifications. Unreadable stored data is reported as a warning; the
// dashboard still starts from defaults.
func openEnv(confirm tracker.Confirmer, notifications bool) *appEnv {
	env := openStoreEnv()
	cfg, store, logger := env.cfg, env.store, env.logger

	var subscribers []func(tracker.Event)
	if notifications && cfg.Notifications.Enabled {
		subscribers = append(subscribers, notify.EventHandler(notify.New(), cfg.Notifications.Sound, logger))
	}

	dash, err := tracker.Open(tracker.Options{
		Store:       store,
		Habits:      cfg.HabitIDs(),
		Confirm:     confirm,
		Logger:      logger,
		Subscribers: subscribers,
	})
	if dash == nil {
		env.Close()
		exitf("opening dashboard: %v", err)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: some saved data could not be read and was reset: %v\n", err)
	}
	env.dash = dash
	return env
}

// Close releases storage and the log file.
func (e *appEnv) Close() {
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			e.logger.Warn("closing storage", "error", err)
		}
	}
	if e.logFile != nil {
		_ = e.logFile.Close()
	}
}

// habitNames maps habit ids to their configured display names.
func habitNames(cfg *config.Config) map[string]string {
	names := make(map[string]string, len(cfg.Habits))
	for _, h := range cfg.Habits {
		names[h.ID] = h.Label()
	}
	return names
}

// exportDir returns the directory the TUI exports into.
func exportDir(cfg *config.Config) string {
	return filepath.Join(cfg.GetDataDir(), exportsDir)
}

// promptConfirmer asks on out and reads y/N from in. yes answers every prompt
// without asking.
func promptConfirmer(in io.Reader, out io.Writer, yes bool) tracker.Confirmer {
	if yes {
		return tracker.AlwaysConfirm
	}
	reader := bufio.NewReader(in)
	return tracker.ConfirmFunc(func(prompt string) bool {
		fmt.Fprintf(out, "%s [y/N] ", prompt)
		response, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false
		}
		response = strings.TrimSpace(strings.ToLower(response))
		return response == "y" || response == "yes"
	})
}
