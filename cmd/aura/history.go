// This file contains the history subcommand handler.

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"aura/internal/tracker"

	"github.com/dustin/go-humanize"
)

const historyHelpText = `aura history - List and manage saved days

USAGE:
    aura history [OPTIONS]

OPTIONS:
    -d, --days N       Only show the last N days (default: all)
    --delete DATE      Delete the entry for DATE (YYYY-MM-DD)
    --clear            Delete the whole history
    -y, --yes          Do not ask for confirmation
    -h, --help         Show this help message

EXAMPLES:
    # Last week
    aura history --days 7

    # Remove one day
    aura history --delete 2025-06-01

    # Start over without a prompt
    aura history --clear --yes
`

// runHistory handles the "aura history" subcommand.
func runHistory(args []string) {
	fs := flag.NewFlagSet("history", flag.ExitOnError)

	daysFlag := fs.Int("days", tracker.AllHistory, "only show the last N days")
	fs.IntVar(daysFlag, "d", tracker.AllHistory, "only show the last N days (shorthand)")

	deleteFlag := fs.String("delete", "", "delete the entry for DATE")
	clearFlag := fs.Bool("clear", false, "delete the whole history")

	yesFlag := fs.Bool("yes", false, "do not ask for confirmation")
	fs.BoolVar(yesFlag, "y", false, "do not ask for confirmation (shorthand)")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, historyHelpText)
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *helpFlag {
		fmt.Print(historyHelpText)
		os.Exit(0)
	}
	if *deleteFlag != "" && *clearFlag {
		exitf("--delete and --clear cannot be combined")
	}
	if *deleteFlag != "" {
		if _, err := tracker.ParseDate(*deleteFlag); err != nil {
			exitf("invalid date %q. Use YYYY-MM-DD format.", *deleteFlag)
		}
	}

	env := openEnv(promptConfirmer(os.Stdin, os.Stdout, *yesFlag), false)
	defer env.Close()

	switch {
	case *deleteFlag != "":
		if _, ok := env.dash.History().Get(*deleteFlag); !ok {
			fmt.Printf("No entry for %s.\n", *deleteFlag)
			return
		}
		deleted, err := env.dash.DeleteHistoryEntry(*deleteFlag)
		if err != nil {
			env.Close()
			exitf("deleting %s: %v", *deleteFlag, err)
		}
		if !deleted {
			fmt.Println("Cancelled.")
			return
		}
		fmt.Printf("✓ Deleted %s\n", *deleteFlag)

	case *clearFlag:
		n := env.dash.History().Len()
		if n == 0 {
			fmt.Println("History is already empty.")
			return
		}
		cleared, err := env.dash.ClearHistory()
		if err != nil {
			env.Close()
			exitf("clearing history: %v", err)
		}
		if !cleared {
			fmt.Println("Cancelled.")
			return
		}
		fmt.Printf("✓ Cleared %d %s\n", n, plural(n, "day", "days"))

	default:
		entries, err := env.dash.Query(*daysFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
		printHistory(os.Stdout, entries, time.Now())
	}
}

// printHistory writes one line per entry, newest first, to w.
func printHistory(w io.Writer, entries []tracker.HistoryEntry, now time.Time) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No history yet.")
		return
	}

	fmt.Fprintf(w, "%d %s\n", len(entries), plural(len(entries), "day", "days"))
	for _, e := range entries {
		mood := "  "
		if e.Mood != tracker.MoodUnset {
			mood = e.Mood.Emoji()
		}
		saved := ""
		if !e.Timestamp.IsZero() {
			saved = "  saved " + humanize.RelTime(e.Timestamp, now, "ago", "from now")
		}
		fmt.Fprintf(w, "  %s  habits %d/%d  %s  water %2d  score %3d%% (%s)%s\n",
			e.Date, e.CompletedHabits, e.TotalHabits, mood, e.Water, e.OverallScore, e.Band(), saved)
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
