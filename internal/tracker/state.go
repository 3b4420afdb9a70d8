package tracker

import (
	"sort"
	"time"
)

// DateLayout is the calendar date format used for DayState.Date and history keys.
const DateLayout = "2006-01-02"

const (
	// MaxWater is the most hydration units a day can record.
	MaxWater = 12
	// WaterGoal is the daily hydration goal; the water score caps here.
	WaterGoal = 8
)

// DayState is the record of the current calendar day.
type DayState struct {
	Date     string          `json:"date"`
	Habits   map[string]bool `json:"habits"`
	Mood     Mood            `json:"mood"`
	Water    int             `json:"water"`
	DarkMode bool            `json:"darkMode"`
}

// NewDayState returns an empty day for date.
func NewDayState(date string, darkMode bool) DayState {
	return DayState{Date: date, Habits: map[string]bool{}, DarkMode: darkMode}
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, invalid("date", s, ErrInvalidDate)
	}
	return t, nil
}

// Clone returns a deep copy of s.
func (s DayState) Clone() DayState {
	out := s
	out.Habits = make(map[string]bool, len(s.Habits))
	for id, done := range s.Habits {
		out.Habits[id] = done
	}
	return out
}

// IsEmpty reports whether the day holds no daily data. A habit that was toggled
// on and back off still counts as data.
func (s DayState) IsEmpty() bool {
	return len(s.Habits) == 0 && s.Mood == MoodUnset && s.Water <= 0
}

// Validate checks s against habits.
func (s DayState) Validate(habits HabitSet) error {
	if _, err := ParseDate(s.Date); err != nil {
		return err
	}
	if s.Mood != MoodUnset && !s.Mood.Valid() {
		return invalid("mood", s.Mood, ErrInvalidMood)
	}
	if s.Water < 0 || s.Water > MaxWater {
		return invalid("water", s.Water, ErrWaterOutOfRange)
	}
	for id := range s.Habits {
		if !habits.Contains(id) {
			return invalid("habit", id, ErrInvalidHabitID)
		}
	}
	return nil
}

// pruneHabits drops habit ids not in habits and returns them sorted. Used when
// the configured habit set changed since the state was saved.
func (s *DayState) pruneHabits(habits HabitSet) []string {
	if s.Habits == nil {
		s.Habits = map[string]bool{}
		return nil
	}
	var dropped []string
	for id := range s.Habits {
		if !habits.Contains(id) {
			delete(s.Habits, id)
			dropped = append(dropped, id)
		}
	}
	sort.Strings(dropped)
	return dropped
}
