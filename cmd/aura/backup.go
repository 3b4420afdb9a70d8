// This file contains the backup subcommand handler.

package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"

	"aura/internal/backup"
)

const backupHelpText = `aura backup - Create and manage backups

USAGE:
    aura backup [OPTIONS]

OPTIONS:
    -l, --list     List available backups
    --prune N      Delete all but the N newest backups
    -h, --help     Show this help message

DESCRIPTION:
    Creates a timestamped backup of today's state and the history.
    Backups are stored in ~/.aura/backups/ and can be restored later
    with 'aura restore'.

EXAMPLES:
    # Create a new backup
    aura backup

    # List all available backups
    aura backup --list

    # Keep only the five newest backups
    aura backup --prune 5
`

// runBackup handles the "aura backup" subcommand.
func runBackup(args []string) {
	fs := flag.NewFlagSet("backup", flag.ExitOnError)

	listFlag := fs.Bool("list", false, "list available backups")
	fs.BoolVar(listFlag, "l", false, "list available backups (shorthand)")

	pruneFlag := fs.Int("prune", -1, "delete all but the N newest backups")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, backupHelpText)
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *helpFlag {
		fmt.Print(backupHelpText)
		os.Exit(0)
	}

	env := openStoreEnv()
	defer env.Close()
	manager := backup.NewManager(env.store, env.cfg.GetDataDir(), version)

	var err error
	switch {
	case *listFlag:
		err = listBackups(os.Stdout, manager)
	case *pruneFlag >= 0:
		var removed int
		if removed, err = manager.Prune(*pruneFlag); err == nil {
			fmt.Printf("✓ Removed %d old %s\n", removed, plural(removed, "backup", "backups"))
		}
	default:
		err = createBackup(os.Stdout, manager)
	}
	if err != nil {
		env.Close()
		exitf("%v", err)
	}
}

// createBackup creates a new backup and displays the result.
func createBackup(w io.Writer, manager *backup.Manager) error {
	name, err := manager.Create()
	if err != nil {
		return fmt.Errorf("creating backup: %w", err)
	}
	info, err := manager.GetBackup(name)
	if err != nil {
		return fmt.Errorf("reading backup info: %w", err)
	}

	fmt.Fprintf(w, "✓ Backup created: %s\n", name)
	fmt.Fprintf(w, "  History: %d days, Habits done today: %d\n",
		info.Stats["history_days"], info.Stats["habits_done"])
	fmt.Fprintf(w, "  Location: %s\n", info.Path)
	return nil
}

// listBackups lists all available backups, newest first.
func listBackups(w io.Writer, manager *backup.Manager) error {
	backups, err := manager.List()
	if err != nil {
		return fmt.Errorf("listing backups: %w", err)
	}

	if len(backups) == 0 {
		fmt.Fprintln(w, "No backups available.")
		fmt.Fprintln(w, "Run 'aura backup' to create one.")
		return nil
	}

	fmt.Fprintln(w, "Available backups:")
	for _, b := range backups {
		fmt.Fprintf(w, "  %s  (%s)   History: %d days, Habits done: %d\n",
			b.Name, humanize.Time(b.CreatedAt), b.Stats["history_days"], b.Stats["habits_done"])
	}
	return nil
}
