// This file contains the today subcommand handler.

package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"aura/internal/config"
	"aura/internal/tracker"
)

const todayHelpText = `aura today - Show the current day

USAGE:
    aura today

DESCRIPTION:
    Prints today's habits, mood, water and overall score. If the date has
    changed since aura last ran, the previous day is saved to the history
    first.
`

// runToday handles the "aura today" subcommand.
func runToday(args []string) {
	fs := flag.NewFlagSet("today", flag.ExitOnError)
	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, todayHelpText)
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *helpFlag {
		fmt.Print(todayHelpText)
		os.Exit(0)
	}

	env := openEnv(tracker.NeverConfirm, false)
	defer env.Close()

	printToday(os.Stdout, env.cfg.Habits, env.dash.State(), env.dash.Stats())
}

// printToday writes a summary of the day to w.
func printToday(w io.Writer, habits []config.HabitConfig, state tracker.DayState, stats tracker.Stats) {
	fmt.Fprintf(w, "Today: %s\n", stats.Date)
	fmt.Fprintf(w, "  Habits: %d/%d (%d%%)\n", stats.CompletedHabits, stats.TotalHabits, stats.HabitPercent())
	for _, h := range habits {
		mark := "[ ]"
		if state.Habits[h.ID] {
			mark = "[✓]"
		}
		label := h.Label()
		if h.Icon != "" {
			label = h.Icon + " " + label
		}
		fmt.Fprintf(w, "    %s %s\n", mark, label)
	}

	mood := "not set"
	if info, ok := stats.Mood.Info(); ok {
		mood = info.Emoji + " " + info.Label
	}
	fmt.Fprintf(w, "  Mood:   %s\n", mood)
	fmt.Fprintf(w, "  Water:  %d/%d glasses (%d%%, %s)\n", stats.Water, tracker.WaterGoal, stats.WaterPercent, stats.WaterLevel)
	fmt.Fprintf(w, "  Score:  %d%% (%s)\n", stats.Score, stats.Band)
}
