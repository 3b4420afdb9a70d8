// This file contains the restore subcommand handler.

package main

import (
	"flag"
	"fmt"
	"os"

	"aura/internal/backup"
)

const restoreHelpText = `aura restore - Restore data from a backup

USAGE:
    aura restore [OPTIONS] [BACKUP_NAME]

OPTIONS:
    --latest       Restore from the most recent backup
    --diff         Show what restoring would change, then exit
    --force, -f    Skip confirmation prompt
    -h, --help     Show this help message

ARGUMENTS:
    BACKUP_NAME    Name of the backup to restore (e.g., 2025-06-10_143022_000)
                   Use 'aura backup --list' to see available backups.

DESCRIPTION:
    Restores today's state and the history from a backup.
    A safety backup of the current data is created before restoring.

EXAMPLES:
    # Restore from a specific backup
    aura restore 2025-06-10_143022_000

    # See what the latest backup would change
    aura restore --latest --diff

    # Restore without confirmation prompt
    aura restore --force 2025-06-10_143022_000
`

// runRestore handles the "aura restore" subcommand.
func runRestore(args []string) {
	fs := flag.NewFlagSet("restore", flag.ExitOnError)

	latestFlag := fs.Bool("latest", false, "restore from most recent backup")
	diffFlag := fs.Bool("diff", false, "show changes without restoring")
	forceFlag := fs.Bool("force", false, "skip confirmation prompt")
	fs.BoolVar(forceFlag, "f", false, "skip confirmation prompt (shorthand)")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, restoreHelpText)
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *helpFlag {
		fmt.Print(restoreHelpText)
		os.Exit(0)
	}

	env := openStoreEnv()
	defer env.Close()
	manager := backup.NewManager(env.store, env.cfg.GetDataDir(), version)

	fail := func(format string, args ...any) {
		env.Close()
		exitf(format, args...)
	}

	var backupName string
	switch {
	case *latestFlag:
		backups, err := manager.List()
		if err != nil {
			fail("listing backups: %v", err)
		}
		if len(backups) == 0 {
			fail("no backups available")
		}
		backupName = backups[0].Name
	case fs.NArg() > 0:
		backupName = fs.Arg(0)
	default:
		fmt.Fprintln(os.Stderr, "Error: no backup specified")
		fmt.Fprintln(os.Stderr, "Use 'aura restore BACKUP_NAME' or 'aura restore --latest'")
		fmt.Fprintln(os.Stderr, "Run 'aura backup --list' to see available backups.")
		env.Close()
		os.Exit(1)
	}

	info, err := manager.GetBackup(backupName)
	if err != nil {
		fail("%v", err)
	}

	if *diffFlag {
		diff, err := manager.Diff(backupName)
		if err != nil {
			fail("%v", err)
		}
		if diff == "" {
			fmt.Println("No differences: restoring would change nothing.")
			return
		}
		fmt.Print(diff)
		return
	}

	fmt.Printf("Restoring from backup: %s\n", info.Name)
	fmt.Printf("  Created: %s\n", info.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("  History: %d days, Habits done: %d\n", info.Stats["history_days"], info.Stats["habits_done"])
	fmt.Println()

	if !*forceFlag {
		fmt.Println("⚠ This will overwrite your current data.")
		confirm := promptConfirmer(os.Stdin, os.Stdout, false)
		if !confirm.Confirm("Continue?") {
			fmt.Println("Restore cancelled.")
			return
		}
	}

	fmt.Println("✓ Creating safety backup first...")
	safety, err := manager.Restore(backupName)
	if err != nil {
		fail("restoring backup: %v", err)
	}

	fmt.Printf("✓ Restored successfully from %s\n", backupName)
	fmt.Printf("  Safety backup: %s\n", safety)
}
