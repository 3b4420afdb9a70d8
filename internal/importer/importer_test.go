package importer

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aura/internal/reports"
	"aura/internal/storage"
	"aura/internal/tracker"
)

var testNow = time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

func newDashboard(t *testing.T) *tracker.Dashboard {
	t.Helper()
	d, err := tracker.Open(tracker.Options{
		Store:  storage.NewMemoryStore(),
		Habits: []string{"exercise", "reading"},
		Now:    func() time.Time { return testNow },
	})
	require.NoError(t, err)
	return d
}

// TestJSON_PreviewDateKeyed tests parsing the export document.
func TestJSON_PreviewDateKeyed(t *testing.T) {
	doc := `{
  "2025-06-01": {"habits": {"exercise": true}, "mood": "good", "water": 5, "totalHabits": 2},
  "2025-06-03": {"habits": {}, "mood": null, "water": 0, "totalHabits": 2}
}`
	entries, err := (&JSONImporter{}).Preview(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "2025-06-03", entries[0].Date, "newest first")
	assert.Equal(t, tracker.MoodGood, entries[1].Mood)
	assert.Equal(t, 5, entries[1].Water)
}

// TestJSON_PreviewArray tests the array form.
func TestJSON_PreviewArray(t *testing.T) {
	doc := "\uFEFF" + `[{"date": "2025-06-02", "water": 3, "totalHabits": 2}]`
	entries, err := (&JSONImporter{}).Preview(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2025-06-02", entries[0].Date)
}

// TestJSON_PreviewInvalid tests malformed input.
func TestJSON_PreviewInvalid(t *testing.T) {
	_, err := (&JSONImporter{}).Preview(strings.NewReader("{not json"))
	assert.Error(t, err)
}

// TestJSON_Import tests that only missing past days are added.
func TestJSON_Import(t *testing.T) {
	d := newDashboard(t)
	_, err := d.History().Upsert(tracker.NewDayState("2025-06-01", false), 2)
	require.NoError(t, err)

	doc := `{
  "2025-06-01": {"habits": {"exercise": true}, "mood": "good", "water": 5, "totalHabits": 2},
  "2025-06-02": {"habits": {"exercise": true, "reading": true}, "mood": "amazing", "water": 8, "totalHabits": 2},
  "2025-06-04": {"habits": {}, "mood": "grumpy", "water": 1, "totalHabits": 2},
  "2025-06-10": {"habits": {}, "water": 1, "totalHabits": 2}
}`
	result, err := (&JSONImporter{}).Import(strings.NewReader(doc), d)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 3, result.Skipped)
	require.Len(t, result.Errors, 2)
	// Errors follow the previewed order, newest first.
	assert.True(t, strings.HasPrefix(result.Errors[0], "2025-06-10:"), result.Errors)
	assert.True(t, strings.HasPrefix(result.Errors[1], "2025-06-04:"), result.Errors)

	e, ok := d.History().Get("2025-06-02")
	require.True(t, ok, "imported day missing from history")
	assert.Equal(t, 100, e.OverallScore, "score recomputed from fields")

	old, _ := d.History().Get("2025-06-01")
	assert.Equal(t, tracker.MoodUnset, old.Mood, "existing day must not be overwritten")
}

// TestJSON_ImportReportsEveryRejection tests that rows sharing a date, or
// carrying no usable date, are each reported.
func TestJSON_ImportReportsEveryRejection(t *testing.T) {
	d := newDashboard(t)
	doc := `[
  {"date": "", "water": 1},
  {"date": "", "water": 2},
  {"date": "bad", "water": 1},
  {"date": "2025-06-03", "water": 99},
  {"date": "2025-06-03", "water": -1}
]`
	result, err := (&JSONImporter{}).Import(strings.NewReader(doc), d)
	require.NoError(t, err)
	assert.Zero(t, result.Imported)
	assert.Equal(t, 5, result.Skipped)
	require.Len(t, result.Errors, 5)

	var unnamed, sameDay int
	for _, msg := range result.Errors {
		switch {
		case strings.HasPrefix(msg, "entry "):
			unnamed++
		case strings.HasPrefix(msg, "2025-06-03:"):
			sameDay++
		}
	}
	assert.Equal(t, 2, unnamed, result.Errors)
	assert.Equal(t, 2, sameDay, result.Errors)
	assert.Zero(t, d.History().Len())
}

// TestCSV_Preview tests parsing the CSV export layout.
func TestCSV_Preview(t *testing.T) {
	csv := "\uFEFFdate,timestamp,mood,water,completedHabits,totalHabits,overallScore,habit:exercise,habit:reading\n" +
		"2025-06-02,2025-06-02T21:00:00Z,okay,4,1,2,53,true,\n" +
		",,,,,,,,\n" +
		"2025-06-01,,,0,0,2,0,false,false\n"

	entries, err := (&CSVImporter{}).Preview(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, entries, 2, "blank row skipped")

	first := entries[0]
	assert.Equal(t, tracker.MoodOkay, first.Mood)
	assert.Equal(t, 4, first.Water)
	assert.Equal(t, 2, first.TotalHabits)
	assert.True(t, first.Habits["exercise"])
	_, ok := first.Habits["reading"]
	assert.False(t, ok, "empty habit cell leaves the habit untouched")
	assert.True(t, first.Timestamp.Equal(time.Date(2025, 6, 2, 21, 0, 0, 0, time.UTC)), first.Timestamp)
	assert.Equal(t, tracker.MoodUnset, entries[1].Mood)
}

// TestCSV_Errors tests invalid CSV input.
func TestCSV_Errors(t *testing.T) {
	tests := map[string]string{
		"missing date column": "mood,water\nokay,3\n",
		"bad water":           "date,water\n2025-06-01,lots\n",
		"bad habit cell":      "date,habit:exercise\n2025-06-01,maybe\n",
		"bad timestamp":       "date,timestamp\n2025-06-01,yesterday\n",
		"empty":               "",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := (&CSVImporter{}).Preview(strings.NewReader(input))
			assert.Error(t, err)
		})
	}
}

// TestCSV_RoundTrip tests that a CSV export imports into a fresh dashboard.
func TestCSV_RoundTrip(t *testing.T) {
	src := newDashboard(t)
	s := tracker.NewDayState("2025-06-05", false)
	s.Mood = tracker.MoodGood
	s.Water = 6
	s.Habits["reading"] = true
	_, err := src.History().Upsert(s, 2)
	require.NoError(t, err)

	r, err := reports.NewGenerator(src, nil).Generate(tracker.AllHistory)
	require.NoError(t, err)
	data, err := reports.Render(reports.CSV, r)
	require.NoError(t, err)

	dst := newDashboard(t)
	result, err := (&CSVImporter{}).Import(bytes.NewReader(data), dst)
	require.NoError(t, err)
	require.Equal(t, 1, result.Imported, result.Errors)

	want, _ := src.History().Get("2025-06-05")
	got, _ := dst.History().Get("2025-06-05")
	assert.Equal(t, want.OverallScore, got.OverallScore)
	assert.Equal(t, want.Mood, got.Mood)
	assert.True(t, got.Habits["reading"])
}

// TestGetImporter tests the format registry.
func TestGetImporter(t *testing.T) {
	for _, format := range SupportedFormats() {
		imp := GetImporter(strings.ToUpper(format))
		require.NotNil(t, imp, format)
		assert.Equal(t, format, imp.Name())
	}
	assert.Nil(t, GetImporter("todoist"))
}

// TestFormatFromPath tests extension detection.
func TestFormatFromPath(t *testing.T) {
	tests := map[string]string{
		"logs.json":            "json",
		"/tmp/Export.CSV":      "csv",
		"aura-2025-06-10.json": "json",
	}
	for path, want := range tests {
		got, err := FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
	_, err := FormatFromPath("notes.txt")
	assert.Error(t, err)
}
