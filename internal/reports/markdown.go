package reports

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"aura/internal/tracker"
)

// FormatMarkdown renders a human-readable report.
func FormatMarkdown(r *Report) string {
	var b strings.Builder
	s := r.Summary

	b.WriteString("# Aura history report\n\n")
	fmt.Fprintf(&b, "Generated %s, %s.\n\n", r.GeneratedAt.Format("2006-01-02 15:04"), windowLabel(r.DaysBack))

	if s.Days == 0 {
		b.WriteString("No history available.\n")
		return b.String()
	}

	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Days logged | %d |\n", s.Days)
	fmt.Fprintf(&b, "| Range | %s to %s |\n", s.From, s.To)
	fmt.Fprintf(&b, "| Average score | %s%% |\n", humanize.FtoaWithDigits(s.AverageScore, 1))
	fmt.Fprintf(&b, "| Average water | %s / %d |\n", humanize.FtoaWithDigits(s.AverageWater, 1), tracker.WaterGoal)
	fmt.Fprintf(&b, "| Water goal met | %d of %d days |\n", s.WaterGoalDays, s.Days)
	fmt.Fprintf(&b, "| Great / fair / low days | %d / %d / %d |\n", s.GreatDays, s.FairDays, s.LowDays)
	if s.Best != nil {
		fmt.Fprintf(&b, "| Best day | %s (%d%%) |\n", s.Best.Date, s.Best.Score)
	}
	if s.Worst != nil {
		fmt.Fprintf(&b, "| Worst day | %s (%d%%) |\n", s.Worst.Date, s.Worst.Score)
	}

	b.WriteString("\n## Habits\n\n| Habit | Done | Rate |\n|---|---|---|\n")
	for _, h := range s.Habits {
		fmt.Fprintf(&b, "| %s | %d | %s%% |\n", r.habitName(h.ID), h.Completed, humanize.FtoaWithDigits(h.Rate, 0))
	}

	b.WriteString("\n## Moods\n\n| Mood | Days |\n|---|---|\n")
	for _, m := range s.Moods {
		fmt.Fprintf(&b, "| %s %s | %d |\n", m.Mood.Emoji(), m.Mood, m.Count)
	}
	if s.NoMoodDays > 0 {
		fmt.Fprintf(&b, "| - not set | %d |\n", s.NoMoodDays)
	}

	b.WriteString("\n## Days\n\n| Date | Habits | Mood | Water | Score |\n|---|---|---|---|---|\n")
	for _, e := range r.Entries {
		fmt.Fprintf(&b, "| %s | %d/%d | %s | %d | %d%% |\n",
			e.Date, e.CompletedHabits, e.TotalHabits, e.Mood.Emoji(), e.Water, e.OverallScore)
	}
	return b.String()
}

func (r *Report) habitName(id string) string {
	if name := r.HabitNames[id]; name != "" {
		return name
	}
	return id
}

func windowLabel(daysBack int) string {
	if daysBack < 0 {
		return "all history"
	}
	return fmt.Sprintf("last %d days", daysBack)
}
