package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"aura/internal/reports"
	"aura/internal/tracker"
)

// CSVImporter reads the CSV written by "aura export --format csv".
type CSVImporter struct{}

// Name returns the importer name.
func (c *CSVImporter) Name() string {
	return "csv"
}

// Import reads entries from CSV and adds the missing days.
func (c *CSVImporter) Import(reader io.Reader, dash *tracker.Dashboard) (*ImportResult, error) {
	entries, err := c.Preview(reader)
	if err != nil {
		return nil, err
	}
	return importEntries(entries, dash)
}

// Preview returns the entries in file order.
func (c *CSVImporter) Preview(reader io.Reader) ([]tracker.HistoryEntry, error) {
	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1
	csvReader.TrimLeadingSpace = true

	header, err := csvReader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colIndex := make(map[string]int)
	habitCols := make(map[string]int)
	for i, col := range header {
		if i == 0 {
			col = strings.TrimPrefix(col, "\uFEFF") // UTF-8 BOM (spreadsheet exports)
		}
		col = strings.TrimSpace(col)
		if id, ok := strings.CutPrefix(col, reports.HabitColumnPrefix); ok {
			habitCols[id] = i
			continue
		}
		colIndex[col] = i
	}
	if _, ok := colIndex["date"]; !ok {
		return nil, fmt.Errorf("missing required column: date")
	}

	var entries []tracker.HistoryEntry
	for line := 2; ; line++ {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		cell := func(name string) string {
			if idx, ok := colIndex[name]; ok && idx < len(record) {
				return strings.TrimSpace(record[idx])
			}
			return ""
		}

		e := tracker.HistoryEntry{
			Date:   cell("date"),
			Mood:   tracker.Mood(cell("mood")),
			Habits: map[string]bool{},
		}
		if e.Date == "" {
			continue
		}
		if e.Water, err = atoiOrZero(cell("water")); err != nil {
			return nil, fmt.Errorf("line %d: water: %w", line, err)
		}
		if e.TotalHabits, err = atoiOrZero(cell("totalHabits")); err != nil {
			return nil, fmt.Errorf("line %d: totalHabits: %w", line, err)
		}
		if ts := cell("timestamp"); ts != "" {
			if e.Timestamp, err = time.Parse(time.RFC3339, ts); err != nil {
				return nil, fmt.Errorf("line %d: timestamp: %w", line, err)
			}
		}
		for id, idx := range habitCols {
			if idx >= len(record) || strings.TrimSpace(record[idx]) == "" {
				continue
			}
			done, err := strconv.ParseBool(strings.TrimSpace(record[idx]))
			if err != nil {
				return nil, fmt.Errorf("line %d: habit %s: %w", line, id, err)
			}
			e.Habits[id] = done
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func atoiOrZero(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
