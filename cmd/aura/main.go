// Package main is the entry point for the aura application.
// It loads configuration, opens storage and the dashboard, and starts the TUI.
package main

import (
	"flag"
	"fmt"
	"os"

	"aura/internal/tracker"
	"aura/internal/ui"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const helpText = `aura - A daily habit, mood and water dashboard for your terminal

USAGE:
    aura [OPTIONS]
    aura <command> [ARGS]

COMMANDS:
    today            Show today's habits, mood, water and score
    history          List saved days (--days N, --delete DATE, --clear)
    export           Export the history (json, csv or markdown)
    import FILE      Import days from a JSON or CSV export
    backup           Create a backup of all data
    backup --list    List available backups
    restore NAME     Restore from a specific backup
    restore --latest Restore from the most recent backup

OPTIONS:
    -h, --help       Show this help message
    -v, --version    Show version information

DESCRIPTION:
    aura tracks one day at a time: which habits you completed, how you feel
    and how much water you drank. Each day gets a score from 0 to 100.
    When the date changes, the finished day is saved to your history.

SCORE:
    Habits    40 points, shared across your habits
    Mood      30 points, from 6 (terrible) to 30 (amazing)
    Water     30 points, full at 8 glasses

KEYBINDINGS:
    Global:
        Tab          Switch between panes
        1, 2         Jump to Today / History
        Ctrl+D       Toggle dark mode
        Ctrl+R       Reset today
        ?            Show help overlay
        q            Quit

    Today Pane:
        j/k, ↓/↑     Navigate habits
        Space/Enter  Toggle habit
        h/l, ←/→     Worse / better mood
        +/-          Add / remove a glass of water

    History Pane:
        j/k, ↓/↑     Navigate
        f            Cycle filter (all, 7 days, 30 days)
        x            Delete day
        X            Clear history
        e            Export to the data directory

DATA STORAGE:
    Data lives in ~/.aura/ (storage.backend: json or sqlite):
        currentDayState.json  - The day in progress
        historyLog.json       - Saved days
        aura.log              - Application log

CONFIGURATION:
    Optional config file: ~/.config/aura/config.yaml
    Habits, theme colors, keys and notifications can be customized.

EXAMPLES:
    # Start the app
    aura

    # Last week's history
    aura history --days 7

    # Export everything as CSV
    aura export --format csv --output history.csv

    # Restore from a backup
    aura restore --latest
`

func main() {
	// Check for subcommands first (before flag parsing)
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "today":
			runToday(os.Args[2:])
			return
		case "history":
			runHistory(os.Args[2:])
			return
		case "export":
			runExport(os.Args[2:])
			return
		case "import":
			runImport(os.Args[2:])
			return
		case "backup":
			runBackup(os.Args[2:])
			return
		case "restore":
			runRestore(os.Args[2:])
			return
		}
	}

	showVersion := flag.Bool("version", false, "show version information")
	flag.BoolVar(showVersion, "v", false, "show version information (shorthand)")

	showHelp := flag.Bool("help", false, "show help message")
	flag.BoolVar(showHelp, "h", false, "show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, helpText)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("aura version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
		os.Exit(0)
	}

	if *showHelp {
		fmt.Print(helpText)
		os.Exit(0)
	}

	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unknown arguments: %v\n\n", flag.Args())
		flag.Usage()
		os.Exit(1)
	}

	runTUI()
}

// runTUI starts the dashboard. Destructive actions are confirmed in the UI,
// so the dashboard itself never confirms.
func runTUI() {
	env := openEnv(tracker.NeverConfirm, true)
	defer env.Close()

	appCfg := &ui.AppConfig{
		Keys:                  &env.cfg.Keys,
		Theme:                 &env.cfg.Theme,
		Habits:                env.cfg.Habits,
		ConfirmDeletions:      env.cfg.UX.ConfirmDeletions,
		NarrowLayoutThreshold: env.cfg.UX.NarrowLayoutThreshold,
		ExportDir:             exportDir(env.cfg),
	}

	if err := ui.Run(env.dash, appCfg); err != nil {
		env.logger.Error("tui exited", "error", err)
		env.Close()
		exitf("running app: %v", err)
	}
}
