package reports

import (
	"time"

	"aura/internal/tracker"
)

// Generator creates reports from the dashboard history.
type Generator struct {
	dash  *tracker.Dashboard
	names map[string]string
	now   func() time.Time
}

// NewGenerator creates a new report generator. names maps habit ids to display
// names and may be nil.
func NewGenerator(dash *tracker.Dashboard, names map[string]string) *Generator {
	return &Generator{dash: dash, names: names, now: time.Now}
}

// SetNowFunc overrides the clock used for GeneratedAt. Passing nil resets it.
func (g *Generator) SetNowFunc(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	g.now = now
}

// Generate builds a report over the last daysBack days, or over the whole
// history for tracker.AllHistory.
func (g *Generator) Generate(daysBack int) (*Report, error) {
	entries, err := g.dash.Query(daysBack)
	ids := g.dash.Habits().IDs()
	return &Report{
		GeneratedAt: g.now(),
		DaysBack:    daysBack,
		HabitIDs:    ids,
		HabitNames:  g.names,
		Summary:     Summarize(entries, ids),
		Entries:     entries,
	}, err
}

// Summarize aggregates entries. Habit rates are reported for habitIDs, in order.
func Summarize(entries []tracker.HistoryEntry, habitIDs []string) Summary {
	s := Summary{Days: len(entries), Habits: make([]HabitRate, len(habitIDs))}
	for i, id := range habitIDs {
		s.Habits[i].ID = id
	}
	moodCounts := map[tracker.Mood]int{}

	var scoreSum, waterSum int
	for _, e := range entries {
		scoreSum += e.OverallScore
		waterSum += e.Water
		if e.Water >= tracker.WaterGoal {
			s.WaterGoalDays++
		}
		switch e.Band() {
		case tracker.BandGreat:
			s.GreatDays++
		case tracker.BandFair:
			s.FairDays++
		default:
			s.LowDays++
		}
		for i := range s.Habits {
			if e.Habits[s.Habits[i].ID] {
				s.Habits[i].Completed++
			}
		}
		if e.Mood == tracker.MoodUnset {
			s.NoMoodDays++
		} else {
			moodCounts[e.Mood]++
		}

		if s.From == "" || e.Date < s.From {
			s.From = e.Date
		}
		if e.Date > s.To {
			s.To = e.Date
		}
		day := &DayScore{Date: e.Date, Score: e.OverallScore}
		if s.Best == nil || better(day, s.Best) {
			s.Best = day
		}
		if s.Worst == nil || better(s.Worst, day) {
			s.Worst = day
		}
	}

	for _, info := range tracker.Moods() {
		s.Moods = append(s.Moods, MoodCount{Mood: info.Mood, Count: moodCounts[info.Mood]})
	}
	if s.Days == 0 {
		return s
	}
	s.AverageScore = float64(scoreSum) / float64(s.Days)
	s.AverageWater = float64(waterSum) / float64(s.Days)
	for i := range s.Habits {
		s.Habits[i].Rate = float64(s.Habits[i].Completed) * 100 / float64(s.Days)
	}
	return s
}

// better orders days by score, then by recency.
func better(a, b *DayScore) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Date > b.Date
}
