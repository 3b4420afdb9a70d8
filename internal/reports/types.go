// Package reports turns the dashboard history into export documents and
// summaries. Reports aggregate scores, habits, moods and hydration over a window.
package reports

import (
	"time"

	"aura/internal/tracker"
)

// Report is a history window plus its summary.
type Report struct {
	GeneratedAt time.Time              `json:"generated_at"`
	DaysBack    int                    `json:"days_back"` // tracker.AllHistory for everything
	HabitIDs    []string               `json:"habit_ids"`
	HabitNames  map[string]string      `json:"-"`
	Summary     Summary                `json:"summary"`
	Entries     []tracker.HistoryEntry `json:"entries"` // newest first
}

// Summary aggregates a set of history entries.
type Summary struct {
	Days          int         `json:"days"`
	From          string      `json:"from,omitempty"`
	To            string      `json:"to,omitempty"`
	AverageScore  float64     `json:"average_score"`
	AverageWater  float64     `json:"average_water"`
	WaterGoalDays int         `json:"water_goal_days"`
	GreatDays     int         `json:"great_days"`
	FairDays      int         `json:"fair_days"`
	LowDays       int         `json:"low_days"`
	Habits        []HabitRate `json:"habits"`
	Moods         []MoodCount `json:"moods"`
	NoMoodDays    int         `json:"no_mood_days"`
	Best          *DayScore   `json:"best,omitempty"`
	Worst         *DayScore   `json:"worst,omitempty"`
}

// HabitRate is how often a habit was completed within the window.
type HabitRate struct {
	ID        string  `json:"id"`
	Completed int     `json:"completed"`
	Rate      float64 `json:"rate"` // percent of days
}

// MoodCount is how many days had a given mood.
type MoodCount struct {
	Mood  tracker.Mood `json:"mood"`
	Count int          `json:"count"`
}

// DayScore names a day and its overall score.
type DayScore struct {
	Date  string `json:"date"`
	Score int    `json:"score"`
}
