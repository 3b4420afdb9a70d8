// This file contains the export subcommand handler.

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"aura/internal/reports"
	"aura/internal/tracker"
)

const exportHelpText = `aura export - Export the history

USAGE:
    aura export [OPTIONS]

OPTIONS:
    -f, --format FMT   Output format: json (default), csv or markdown
    --days N           Only export the last N days (default: all)
    -o, --output FILE  Write to FILE instead of stdout
    -d, --dir DIR      Write to DIR using the default file name
    -h, --help         Show this help message

DESCRIPTION:
    JSON is the full history keyed by date, the same document the app
    exports. CSV has one row per day and one column per habit. Markdown is
    a readable summary with averages, habit rates and mood counts.

    The default file name is aura-life-dashboard-logs-YYYY-MM-DD.<ext>.

EXAMPLES:
    # Full history as JSON on stdout
    aura export

    # Last 30 days as a Markdown summary
    aura export --days 30 --format markdown

    # CSV into a directory
    aura export -f csv -d ~/Documents
`

// runExport handles the "aura export" subcommand.
func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)

	formatFlag := fs.String("format", "json", "output format: json, csv or markdown")
	fs.StringVar(formatFlag, "f", "json", "output format (shorthand)")

	daysFlag := fs.Int("days", tracker.AllHistory, "only export the last N days")

	outputFlag := fs.String("output", "", "write to file instead of stdout")
	fs.StringVar(outputFlag, "o", "", "write to file (shorthand)")

	dirFlag := fs.String("dir", "", "write to directory with the default file name")
	fs.StringVar(dirFlag, "d", "", "write to directory (shorthand)")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, exportHelpText)
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *helpFlag {
		fmt.Print(exportHelpText)
		os.Exit(0)
	}

	format, err := reports.ParseFormat(*formatFlag)
	if err != nil {
		exitf("%v", err)
	}
	if *outputFlag != "" && *dirFlag != "" {
		exitf("--output and --dir cannot be combined")
	}

	env := openEnv(tracker.NeverConfirm, false)
	defer env.Close()

	report, err := reports.NewGenerator(env.dash, habitNames(env.cfg)).Generate(*daysFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	data, err := reports.Render(format, report)
	if err != nil {
		env.Close()
		exitf("formatting %s: %v", format, err)
	}

	var sink reports.Sink
	var path string
	filename := reports.Filename(format, time.Now())
	switch {
	case *outputFlag != "":
		fileSink := reports.FileSink{Dir: filepath.Dir(*outputFlag)}
		filename = filepath.Base(*outputFlag)
		sink, path = fileSink, fileSink.Path(filename)
	case *dirFlag != "":
		fileSink := reports.FileSink{Dir: *dirFlag}
		sink, path = fileSink, fileSink.Path(filename)
	default:
		sink = reports.WriterSink{W: os.Stdout}
	}

	if err := sink.Deliver(filename, data); err != nil {
		env.Close()
		exitf("%v", err)
	}
	if path != "" {
		fmt.Printf("✓ Exported %d %s to %s\n", len(report.Entries), plural(len(report.Entries), "day", "days"), path)
	}
}
