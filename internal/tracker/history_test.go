package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aura/internal/storage"
)

func TestLoadHistory_Normalizes(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Put(HistoryKey, []byte(`{
		"2025-05-01": {"date": "1999-01-01", "habits": {"exercise": true, "reading": true, "x": false},
		               "mood": "good", "water": 4, "totalHabits": 4, "overallScore": 3},
		"2025-05-02": {"date": "2025-05-02", "habits": {}, "mood": "weird", "water": 1, "totalHabits": 6},
		"garbage":    {"water": 1, "totalHabits": 6}
	}`)))

	h, err := LoadHistory(store, nil, newClock().Now)
	require.NoError(t, err)
	require.Equal(t, 1, h.Len())

	e, ok := h.Get("2025-05-01")
	require.True(t, ok)
	assert.Equal(t, "2025-05-01", e.Date, "the key is the date")
	assert.Equal(t, 2, e.CompletedHabits)
	assert.Equal(t, 59, e.OverallScore, "stored score is never trusted")
}

func TestLoadHistory_Missing(t *testing.T) {
	h, err := LoadHistory(storage.NewMemoryStore(), nil, nil)
	require.NoError(t, err)
	assert.Zero(t, h.Len())
	assert.NotNil(t, h.Query(AllHistory))
}

func TestUpsertThenQuery_ScoreMatches(t *testing.T) {
	clock := newClock()
	h, err := LoadHistory(storage.NewMemoryStore(), nil, clock.Now)
	require.NoError(t, err)

	moods := []Mood{MoodUnset, MoodTerrible, MoodOkay, MoodAmazing}
	for i := 0; i < 12; i++ {
		s := NewDayState(DateOf(clock.t.AddDate(0, 0, -i)), false)
		for j, id := range DefaultHabitIDs {
			if j < i%7 {
				s.Habits[id] = true
			}
		}
		s.Mood = moods[i%len(moods)]
		s.Water = i
		_, err := h.Upsert(s, len(DefaultHabitIDs))
		require.NoError(t, err)
	}

	got := h.Query(AllHistory)
	require.Len(t, got, 12)
	for i, e := range got {
		if i > 0 {
			assert.Greater(t, got[i-1].Date, e.Date)
		}
		s := DayState{Date: e.Date, Habits: e.Habits, Mood: e.Mood, Water: e.Water}
		assert.Equal(t, ComputeScore(s, len(DefaultHabitIDs)), e.OverallScore, e.Date)
	}
}

func TestUpsert_OverwritesSameDate(t *testing.T) {
	clock := newClock()
	h, _ := LoadHistory(storage.NewMemoryStore(), nil, clock.Now)

	s := NewDayState("2025-06-01", false)
	s.Water = 1
	_, _ = h.Upsert(s, 6)
	clock.t = clock.t.Add(time.Hour)
	s.Water = 2
	e, err := h.Upsert(s, 6)
	require.NoError(t, err)

	assert.Equal(t, 1, h.Len())
	assert.Equal(t, 2, e.Water)
	assert.Equal(t, clock.t, e.Timestamp)
}

func TestHistoryDelete_MissingIsNoop(t *testing.T) {
	store := storage.NewMemoryStore()
	h, _ := LoadHistory(store, nil, newClock().Now)

	deleted, err := h.Delete("2025-01-01")
	require.NoError(t, err)
	assert.False(t, deleted)
	_, err = store.Get(HistoryKey)
	assert.ErrorIs(t, err, storage.ErrNotFound, "nothing written")
}

func TestGet_ReturnsCopy(t *testing.T) {
	h, _ := LoadHistory(storage.NewMemoryStore(), nil, newClock().Now)
	s := NewDayState("2025-06-01", false)
	s.Habits["exercise"] = true
	_, _ = h.Upsert(s, 6)

	e, _ := h.Get("2025-06-01")
	e.Habits["exercise"] = false
	again, _ := h.Get("2025-06-01")
	assert.True(t, again.Habits["exercise"])
}

func TestExportFilename(t *testing.T) {
	at := time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "aura-life-dashboard-logs-2025-12-31.json", ExportFilename(at))
}
