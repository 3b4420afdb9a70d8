package tracker

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore_Examples(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		total     int
		mood      Mood
		water     int
		want      int
	}{
		{"half habits, good mood, half water", 3, 6, MoodGood, 4, 59},
		{"water only rounds 18.75 up", 0, 6, MoodUnset, 5, 19},
		{"nothing", 0, 6, MoodUnset, 0, 0},
		{"everything", 6, 6, MoodAmazing, 8, 100},
		{"water above goal caps", 6, 6, MoodAmazing, 12, 100},
		{"terrible mood only", 0, 6, MoodTerrible, 0, 6},
		{"half rounds up", 1, 16, MoodUnset, 0, 3}, // 2.5
		{"no habits configured", 4, 0, MoodOkay, 8, 48},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.completed, tt.total, tt.mood, tt.water))
		})
	}
}

func TestScore_HabitComponent(t *testing.T) {
	for n := 1; n <= 12; n++ {
		for k := 0; k <= n; k++ {
			want := int(math.Floor(40*float64(k)/float64(n) + 0.5))
			assert.Equalf(t, want, Score(k, n, MoodUnset, 0), "k=%d n=%d", k, n)
		}
	}
}

func TestScore_AlwaysInRange(t *testing.T) {
	moods := []Mood{MoodUnset, MoodTerrible, MoodBad, MoodOkay, MoodGood, MoodAmazing}
	for n := 0; n <= 6; n++ {
		for k := -1; k <= n+1; k++ {
			for _, m := range moods {
				for w := -2; w <= MaxWater+2; w++ {
					got := Score(k, n, m, w)
					if got < 0 || got > 100 {
						t.Fatalf("Score(%d, %d, %q, %d) = %d", k, n, m, w, got)
					}
				}
			}
		}
	}
}

func TestComputeScore(t *testing.T) {
	s := NewDayState("2025-06-01", false)
	s.Habits["exercise"] = true
	s.Habits["reading"] = true
	s.Habits["meditation"] = true
	s.Habits["sleep-early"] = false
	s.Mood = MoodGood
	s.Water = 4

	assert.Equal(t, 59, ComputeScore(s, 6))
}

func TestBands(t *testing.T) {
	assert.Equal(t, BandGreat, BandFor(80))
	assert.Equal(t, BandFair, BandFor(79))
	assert.Equal(t, BandFair, BandFor(60))
	assert.Equal(t, BandLow, BandFor(59))
	assert.Equal(t, "#48bb78", BandGreat.Color())

	assert.Equal(t, WaterLow, WaterLevelFor(3))
	assert.Equal(t, WaterHalf, WaterLevelFor(4))
	assert.Equal(t, WaterFull, WaterLevelFor(8))
	assert.Equal(t, WaterFull, WaterLevelFor(12))
	assert.Equal(t, 100, WaterPercent(12))
	assert.Equal(t, 62, WaterPercent(5))
}

func TestStatsFor(t *testing.T) {
	habits := DefaultHabits()
	s := NewDayState("2025-06-01", true)
	s.Habits["exercise"] = true
	s.Habits["reading"] = true
	s.Mood = MoodAmazing
	s.Water = 8

	st := StatsFor(s, habits)
	assert.Equal(t, 2, st.CompletedHabits)
	assert.Equal(t, 6, st.TotalHabits)
	assert.Equal(t, 33, st.HabitPercent())
	assert.Equal(t, 73, st.Score) // 13.33 + 30 + 30
	assert.Equal(t, BandFair, st.Band)
	assert.Equal(t, WaterFull, st.WaterLevel)
	assert.True(t, st.DarkMode)
}

func TestMood(t *testing.T) {
	m, err := ParseMood(" Good ")
	require.NoError(t, err)
	assert.Equal(t, MoodGood, m)

	_, err = ParseMood("ecstatic")
	require.ErrorIs(t, err, ErrInvalidMood)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "mood", verr.Field)

	info, ok := MoodOkay.Info()
	require.True(t, ok)
	assert.Equal(t, 0.6, info.Weight)
	assert.Equal(t, "Doing okay", info.Label)

	assert.Equal(t, "-", MoodUnset.Emoji())
	assert.Len(t, Moods(), 5)
	for _, info := range Moods() {
		assert.InDelta(t, info.Weight*30, float64(info.Points), 1e-9, info.Mood)
	}
}

func TestMood_JSON(t *testing.T) {
	s := NewDayState("2025-06-01", false)
	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"mood":null`)

	var back DayState
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, MoodUnset, back.Mood)

	require.NoError(t, json.Unmarshal([]byte(`{"date":"2025-06-01","mood":"bad"}`), &back))
	assert.Equal(t, MoodBad, back.Mood)
}

func TestNewHabitSet(t *testing.T) {
	_, err := NewHabitSet(nil)
	assert.Error(t, err)
	_, err = NewHabitSet([]string{"a", " "})
	assert.Error(t, err)
	_, err = NewHabitSet([]string{"a", "a"})
	assert.Error(t, err)

	set, err := NewHabitSet([]string{"walk", "read"})
	require.NoError(t, err)
	assert.Equal(t, []string{"walk", "read"}, set.IDs())
	assert.True(t, set.Contains("read"))
	assert.Equal(t, 1, set.Completed(map[string]bool{"walk": true, "read": false, "swim": true}))
}

func TestDayState_IsEmpty(t *testing.T) {
	s := NewDayState("2025-06-01", true)
	assert.True(t, s.IsEmpty(), "dark mode alone is not daily data")

	s.Habits["exercise"] = false
	assert.False(t, s.IsEmpty(), "a toggled habit counts")

	s = NewDayState("2025-06-01", false)
	s.Mood = MoodBad
	assert.False(t, s.IsEmpty())

	s = NewDayState("2025-06-01", false)
	s.Water = 1
	assert.False(t, s.IsEmpty())
}
