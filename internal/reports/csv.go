package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"time"
)

// HabitColumnPrefix prefixes per-habit CSV columns.
const HabitColumnPrefix = "habit:"

// CSVHeader is the fixed part of the CSV header, before the habit columns.
var CSVHeader = []string{"date", "timestamp", "mood", "water", "completedHabits", "totalHabits", "overallScore"}

// FormatCSV writes one row per entry, newest first. Habit columns cover the
// report's habits followed by any other habit found in the entries; a cell is
// "true", "false" or empty when the habit was never toggled that day.
func FormatCSV(r *Report) ([]byte, error) {
	habits := csvHabitColumns(r)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := append([]string(nil), CSVHeader...)
	for _, id := range habits {
		header = append(header, HabitColumnPrefix+id)
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, e := range r.Entries {
		row := []string{
			e.Date,
			e.Timestamp.UTC().Format(time.RFC3339),
			string(e.Mood),
			strconv.Itoa(e.Water),
			strconv.Itoa(e.CompletedHabits),
			strconv.Itoa(e.TotalHabits),
			strconv.Itoa(e.OverallScore),
		}
		for _, id := range habits {
			cell := ""
			if done, ok := e.Habits[id]; ok {
				cell = strconv.FormatBool(done)
			}
			row = append(row, cell)
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row %s: %w", e.Date, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func csvHabitColumns(r *Report) []string {
	seen := make(map[string]bool, len(r.HabitIDs))
	cols := make([]string, 0, len(r.HabitIDs))
	for _, id := range r.HabitIDs {
		seen[id] = true
		cols = append(cols, id)
	}
	var extra []string
	for _, e := range r.Entries {
		for id := range e.Habits {
			if !seen[id] {
				seen[id] = true
				extra = append(extra, id)
			}
		}
	}
	sort.Strings(extra)
	return append(cols, extra...)
}
