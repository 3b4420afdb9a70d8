package tracker

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Mood is how the day felt. The zero value means no mood was picked.
type Mood string

const (
	MoodUnset    Mood = ""
	MoodTerrible Mood = "terrible"
	MoodBad      Mood = "bad"
	MoodOkay     Mood = "okay"
	MoodGood     Mood = "good"
	MoodAmazing  Mood = "amazing"
)

// MoodInfo is everything the dashboard and its presentation need to know about a
// mood. It is the only place mood attributes are defined.
type MoodInfo struct {
	Mood   Mood
	Weight float64 // share of the mood component, 0.2..1.0
	Points int     // contribution to the overall score (Weight * 30)
	Emoji  string
	Label  string
	Color  string
}

var moodTable = []MoodInfo{
	{MoodTerrible, 0.2, 6, "😫", "Having a tough day", "#e53e3e"},
	{MoodBad, 0.4, 12, "😔", "Not feeling great", "#dd6b20"},
	{MoodOkay, 0.6, 18, "😐", "Doing okay", "#d69e2e"},
	{MoodGood, 0.8, 24, "😊", "Feeling good!", "#38a169"},
	{MoodAmazing, 1.0, 30, "🤩", "Amazing day!", "#3182ce"},
}

// Moods returns the moods from worst to best.
func Moods() []MoodInfo {
	out := make([]MoodInfo, len(moodTable))
	copy(out, moodTable)
	return out
}

// Info returns the attributes of m. ok is false for unset or unknown moods.
func (m Mood) Info() (MoodInfo, bool) {
	for _, info := range moodTable {
		if info.Mood == m {
			return info, true
		}
	}
	return MoodInfo{}, false
}

// Valid reports whether m is one of the five moods.
func (m Mood) Valid() bool {
	_, ok := m.Info()
	return ok
}

// Emoji returns the mood's emoji, or "-" when no mood is set.
func (m Mood) Emoji() string {
	if info, ok := m.Info(); ok {
		return info.Emoji
	}
	return "-"
}

// Label returns the mood's display label, or "" when no mood is set.
func (m Mood) Label() string {
	info, _ := m.Info()
	return info.Label
}

func (m Mood) points() int {
	info, _ := m.Info()
	return info.Points
}

// ParseMood parses a mood name, case-insensitively.
func ParseMood(s string) (Mood, error) {
	m := Mood(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return MoodUnset, invalid("mood", s, ErrInvalidMood)
	}
	return m, nil
}

// MarshalJSON writes an unset mood as null.
func (m Mood) MarshalJSON() ([]byte, error) {
	if m == MoodUnset {
		return []byte("null"), nil
	}
	return json.Marshal(string(m))
}

// UnmarshalJSON accepts null or a string. Unknown strings are kept as-is and
// rejected later by validation.
func (m *Mood) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = MoodUnset
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("mood: %w", err)
	}
	*m = Mood(s)
	return nil
}
