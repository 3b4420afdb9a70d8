package reports

import (
	"encoding/json"

	"aura/internal/tracker"
)

// FormatJSON writes entries as the history export document: an indented JSON
// object keyed by date, the same layout the dashboard persists and import reads.
func FormatJSON(entries []tracker.HistoryEntry) ([]byte, error) {
	doc := make(map[string]tracker.HistoryEntry, len(entries))
	for _, e := range entries {
		doc[e.Date] = e
	}
	return json.MarshalIndent(doc, "", "  ")
}

// FormatReportJSON writes the whole report, summary included.
func FormatReportJSON(r *Report) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
