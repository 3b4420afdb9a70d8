package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"aura/internal/tracker"
)

// JSONImporter reads the JSON export document: an object keyed by date. A
// plain array of entries is accepted too.
type JSONImporter struct{}

// Name returns the importer name.
func (j *JSONImporter) Name() string {
	return "json"
}

// Import reads entries from the export document and adds the missing days.
func (j *JSONImporter) Import(reader io.Reader, dash *tracker.Dashboard) (*ImportResult, error) {
	entries, err := j.Preview(reader)
	if err != nil {
		return nil, err
	}
	return importEntries(entries, dash)
}

// Preview returns the entries in the document, newest first.
func (j *JSONImporter) Preview(reader io.Reader) ([]tracker.HistoryEntry, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON: %w", err)
	}
	data = bytes.TrimSpace(bytes.TrimPrefix(data, []byte("\uFEFF")))

	var entries []tracker.HistoryEntry
	if bytes.HasPrefix(data, []byte("[")) {
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("failed to parse JSON array: %w", err)
		}
	} else {
		var doc map[string]tracker.HistoryEntry
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		for date, e := range doc {
			e.Date = date
			entries = append(entries, e)
		}
	}

	sort.Slice(entries, func(a, b int) bool { return entries[a].Date > entries[b].Date })
	return entries, nil
}
