package tracker

// Score weights: habits 40, mood 30, hydration 30.
const (
	habitWeight = 40
	waterWeight = 30
)

// Score returns round(40·completed/total + 30·moodWeight + 30·min(water/8, 1)),
// rounding halves up. It works in integers so that x.5 always rounds the same
// way. completed is clamped to [0, total] and water to [0, WaterGoal]; a zero
// total contributes nothing for habits.
func Score(completed, total int, mood Mood, water int) int {
	completed = clamp(completed, 0, total)
	water = clamp(water, 0, WaterGoal)

	// Everything is scaled by den = WaterGoal·total so each term is whole.
	n := total
	if n <= 0 {
		n = 1
		completed = 0
	}
	den := WaterGoal * n
	num := habitWeight*completed*WaterGoal + mood.points()*den + waterWeight*water*n

	return (2*num + den) / (2 * den)
}

// ComputeScore scores s against a habit set of totalHabits habits.
func ComputeScore(s DayState, totalHabits int) int {
	return Score(completedCount(s.Habits), totalHabits, s.Mood, s.Water)
}

func completedCount(habits map[string]bool) int {
	n := 0
	for _, done := range habits {
		if done {
			n++
		}
	}
	return n
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ScoreBand groups overall scores for display.
type ScoreBand string

const (
	BandGreat ScoreBand = "great"
	BandFair  ScoreBand = "fair"
	BandLow   ScoreBand = "low"
)

// BandFor returns the band a score falls in: 80+ great, 60+ fair, else low.
func BandFor(score int) ScoreBand {
	switch {
	case score >= 80:
		return BandGreat
	case score >= 60:
		return BandFair
	default:
		return BandLow
	}
}

// Color returns the band's display colour.
func (b ScoreBand) Color() string {
	switch b {
	case BandGreat:
		return "#48bb78"
	case BandFair:
		return "#ed8936"
	default:
		return "#e53e3e"
	}
}

// WaterLevel groups hydration progress against the goal.
type WaterLevel string

const (
	WaterFull WaterLevel = "full"
	WaterHalf WaterLevel = "half"
	WaterLow  WaterLevel = "low"
)

// WaterPercent returns water as a percentage of WaterGoal, capped at 100.
func WaterPercent(water int) int {
	return clamp(water, 0, WaterGoal) * 100 / WaterGoal
}

// WaterLevelFor returns the level for water units.
func WaterLevelFor(water int) WaterLevel {
	switch p := WaterPercent(water); {
	case p >= 100:
		return WaterFull
	case p >= 50:
		return WaterHalf
	default:
		return WaterLow
	}
}

// Color returns the level's display colour.
func (l WaterLevel) Color() string {
	switch l {
	case WaterFull:
		return "#48bb78"
	case WaterHalf:
		return "#4299e1"
	default:
		return "#ed8936"
	}
}

// Stats are the derived values the presentation layer renders.
type Stats struct {
	Date            string
	CompletedHabits int
	TotalHabits     int
	Mood            Mood
	Water           int
	WaterPercent    int
	WaterLevel      WaterLevel
	Score           int
	Band            ScoreBand
	DarkMode        bool
}

// StatsFor derives Stats for s against habits.
func StatsFor(s DayState, habits HabitSet) Stats {
	completed := habits.Completed(s.Habits)
	score := Score(completed, habits.Len(), s.Mood, s.Water)
	return Stats{
		Date:            s.Date,
		CompletedHabits: completed,
		TotalHabits:     habits.Len(),
		Mood:            s.Mood,
		Water:           s.Water,
		WaterPercent:    WaterPercent(s.Water),
		WaterLevel:      WaterLevelFor(s.Water),
		Score:           score,
		Band:            BandFor(score),
		DarkMode:        s.DarkMode,
	}
}

// HabitPercent returns completed habits as a whole percentage.
func (s Stats) HabitPercent() int {
	if s.TotalHabits == 0 {
		return 0
	}
	return s.CompletedHabits * 100 / s.TotalHabits
}
