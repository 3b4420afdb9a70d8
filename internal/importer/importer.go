// Package importer reads previously exported history back into the dashboard.
// Only dates missing from the history are added; existing days are never
// overwritten.
package importer

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"aura/internal/tracker"
)

// ImportResult contains statistics about an import operation.
type ImportResult struct {
	Imported int      // Number of days added to the history
	Skipped  int      // Days already present or rejected
	Errors   []string // Why rejected days were rejected
}

// Importer defines the interface for import implementations.
type Importer interface {
	// Import reads entries from the reader and adds them to the dashboard history.
	Import(reader io.Reader, dash *tracker.Dashboard) (*ImportResult, error)

	// Preview reads entries from the reader without importing.
	Preview(reader io.Reader) ([]tracker.HistoryEntry, error)

	// Name returns the importer name (e.g., "json", "csv").
	Name() string
}

// GetImporter returns the appropriate importer for the given format.
func GetImporter(format string) Importer {
	switch strings.ToLower(format) {
	case "json":
		return &JSONImporter{}
	case "csv":
		return &CSVImporter{}
	default:
		return nil
	}
}

// SupportedFormats returns the list of supported import formats.
func SupportedFormats() []string {
	return []string{"json", "csv"}
}

// FormatFromPath guesses the format from a file extension.
func FormatFromPath(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return "json", nil
	case ".csv":
		return "csv", nil
	default:
		return "", fmt.Errorf("cannot tell format from extension %q (want .json or .csv)", ext)
	}
}

// importEntries merges parsed entries through the dashboard.
func importEntries(entries []tracker.HistoryEntry, dash *tracker.Dashboard) (*ImportResult, error) {
	res, err := dash.ImportHistory(entries)
	result := &ImportResult{
		Imported: len(res.Added),
		Skipped:  len(res.Existing) + len(res.Rejected),
	}
	for _, r := range res.Rejected {
		date := r.Date
		if date == "" {
			date = fmt.Sprintf("entry %d", r.Index+1)
		}
		result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", date, r.Err))
	}
	return result, err
}
