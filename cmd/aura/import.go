// This file contains the import subcommand handler.

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"aura/internal/importer"
	"aura/internal/tracker"
)

// previewLimit is how many entries a dry run lists.
const previewLimit = 20

const importHelpText = `aura import - Import days from an export

USAGE:
    aura import [OPTIONS] <file>

FORMATS:
    .json    The app's JSON export (an object keyed by date, or an array)
    .csv     The CSV export (aura export --format csv)

OPTIONS:
    --format FMT   Override the format guessed from the file extension
    --dry-run      Preview the import without making changes
    -h, --help     Show this help message

DESCRIPTION:
    Days that are already in your history are left alone. Today and future
    dates are rejected, since the current day belongs to the live tracker.
    Scores are recomputed from each day's habits, mood and water.

EXAMPLES:
    # Import a JSON export
    aura import aura-life-dashboard-logs-2025-06-10.json

    # Preview a CSV import
    aura import --dry-run history.csv
`

// runImport handles the "aura import" subcommand.
func runImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)

	formatFlag := fs.String("format", "", "file format: json or csv")
	dryRunFlag := fs.Bool("dry-run", false, "preview import without making changes")
	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, importHelpText)
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *helpFlag {
		fmt.Print(importHelpText)
		os.Exit(0)
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: missing file\n\n")
		fmt.Fprintf(os.Stderr, "Usage: aura import <file>\n")
		fmt.Fprintf(os.Stderr, "Formats: %s\n", strings.Join(importer.SupportedFormats(), ", "))
		os.Exit(1)
	}
	filePath := fs.Arg(0)

	format := *formatFlag
	if format == "" {
		var err error
		if format, err = importer.FormatFromPath(filePath); err != nil {
			exitf("%v", err)
		}
	}
	imp := importer.GetImporter(format)
	if imp == nil {
		exitf("unknown format %q (supported: %s)", format, strings.Join(importer.SupportedFormats(), ", "))
	}

	file, err := os.Open(filePath)
	if err != nil {
		exitf("%v", err)
	}
	defer file.Close()

	if *dryRunFlag {
		entries, err := imp.Preview(file)
		if err != nil {
			exitf("parsing file: %v", err)
		}
		printPreview(os.Stdout, entries)
		return
	}

	env := openEnv(tracker.NeverConfirm, false)
	defer env.Close()

	result, err := imp.Import(file, env.dash)
	if result == nil {
		env.Close()
		exitf("importing: %v", err)
	}
	printImportResult(os.Stdout, result)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
}

// printPreview lists the first entries a dry run would import.
func printPreview(w io.Writer, entries []tracker.HistoryEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No days found to import.")
		return
	}

	fmt.Fprintf(w, "Preview: %d %s to import\n", len(entries), plural(len(entries), "day", "days"))
	fmt.Fprintln(w, "────────────────────────────")

	for _, e := range entries[:min(len(entries), previewLimit)] {
		details := []string{fmt.Sprintf("habits %d/%d", e.CompletedHabits, e.TotalHabits)}
		if e.Mood != tracker.MoodUnset {
			details = append(details, string(e.Mood))
		}
		details = append(details, fmt.Sprintf("water %d", e.Water), fmt.Sprintf("score %d%%", e.OverallScore))
		fmt.Fprintf(w, "  %s (%s)\n", e.Date, strings.Join(details, ", "))
	}
	if len(entries) > previewLimit {
		fmt.Fprintf(w, "  ... and %d more\n", len(entries)-previewLimit)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run without --dry-run to import.")
}

// printImportResult reports what an import did.
func printImportResult(w io.Writer, result *importer.ImportResult) {
	fmt.Fprintf(w, "Import complete!\n")
	fmt.Fprintf(w, "  Imported: %d %s\n", result.Imported, plural(result.Imported, "day", "days"))
	if result.Skipped > 0 {
		fmt.Fprintf(w, "  Skipped:  %d %s\n", result.Skipped, plural(result.Skipped, "day", "days"))
	}
	if len(result.Errors) > 0 {
		fmt.Fprintf(w, "  Errors:   %d\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Fprintf(w, "    - %s\n", e)
		}
	}
}
