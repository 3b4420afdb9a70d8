package ui

import (
	"fmt"
	"strings"

	"aura/internal/config"
	"aura/internal/tracker"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// todayHeaderRows is the number of lines above the first habit row.
const todayHeaderRows = 4

// TodayPane shows and edits the current day: habits, mood and water, plus
// the overview of derived stats.
type TodayPane struct {
	session *session
	styles  *Styles
	habits  []config.HabitConfig
	state   tracker.DayState
	stats   tracker.Stats
	cursor  int
	focused bool
	width   int
	height  int

	keys TodayKeyMap
}

// NewTodayPane creates the today pane for the given habits.
func NewTodayPane(s *session, styles *Styles, habits []config.HabitConfig, keyCfg *config.KeysConfig) *TodayPane {
	return &TodayPane{
		session: s,
		styles:  styles,
		habits:  habits,
		keys:    NewTodayKeyMap(keyCfg),
	}
}

// SetSize sets the pane dimensions.
func (p *TodayPane) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetFocused sets whether this pane is focused.
func (p *TodayPane) SetFocused(focused bool) {
	p.focused = focused
}

// SetStyles switches the palette.
func (p *TodayPane) SetStyles(styles *Styles) {
	p.styles = styles
}

// Stats returns the last known derived stats.
func (p *TodayPane) Stats() tracker.Stats {
	return p.stats
}

// setDay stores a snapshot of the current day.
func (p *TodayPane) setDay(state tracker.DayState, stats tracker.Stats) {
	p.state = state
	p.stats = stats
}

// Update handles messages for the today pane.
func (p *TodayPane) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case dayMsg:
		p.setDay(msg.state, msg.stats)
		return nil

	case tea.MouseMsg:
		return p.handleMouse(msg)

	case tea.KeyMsg:
		if !p.focused {
			return nil
		}
		switch {
		case key.Matches(msg, p.keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
		case key.Matches(msg, p.keys.Down):
			if p.cursor < len(p.habits)-1 {
				p.cursor++
			}
		case key.Matches(msg, p.keys.Top):
			p.cursor = 0
		case key.Matches(msg, p.keys.Bottom):
			p.cursor = max(0, len(p.habits)-1)
		case key.Matches(msg, p.keys.Toggle):
			return p.toggleSelected()
		case key.Matches(msg, p.keys.MoodNext):
			return setMoodCmd(p.session, stepMood(p.state.Mood, 1))
		case key.Matches(msg, p.keys.MoodPrev):
			return setMoodCmd(p.session, stepMood(p.state.Mood, -1))
		case key.Matches(msg, p.keys.WaterAdd):
			return adjustWaterCmd(p.session, 1)
		case key.Matches(msg, p.keys.WaterRemove):
			return adjustWaterCmd(p.session, -1)
		}
	}
	return nil
}

func (p *TodayPane) toggleSelected() tea.Cmd {
	if p.cursor < 0 || p.cursor >= len(p.habits) {
		return nil
	}
	id := p.habits[p.cursor].ID
	return setHabitCmd(p.session, id, !p.state.Habits[id])
}

// handleMouse moves the cursor with the wheel and toggles a clicked habit.
// Coordinates are relative to the pane content.
func (p *TodayPane) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if p.cursor > 0 {
			p.cursor--
		}
	case tea.MouseButtonWheelDown:
		if p.cursor < len(p.habits)-1 {
			p.cursor++
		}
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return nil
		}
		row := msg.Y - todayHeaderRows
		if row < 0 || row >= len(p.habits) {
			return nil
		}
		p.cursor = row
		return p.toggleSelected()
	}
	return nil
}

// stepMood moves one mood worse (step < 0) or better (step > 0). From an
// unset mood, better starts at the worst mood and worse at the best.
func stepMood(current tracker.Mood, step int) tracker.Mood {
	moods := tracker.Moods()
	idx := -1
	for i, info := range moods {
		if info.Mood == current {
			idx = i
		}
	}
	switch {
	case step > 0:
		idx = min(idx+1, len(moods)-1)
	case idx < 0:
		idx = len(moods) - 1
	default:
		idx = max(idx-1, 0)
	}
	return moods[idx].Mood
}

// View renders the today pane.
func (p *TodayPane) View() string {
	var b strings.Builder

	b.WriteString(p.styles.PaneTitleStyle.Render("🌿 TODAY"))
	b.WriteString("\n")
	b.WriteString(p.styles.StatLabelStyle.Render(p.separator()))
	b.WriteString("\n")

	// Habits
	b.WriteString(p.styles.SectionStyle.Render(fmt.Sprintf("Habits  %d/%d", p.stats.CompletedHabits, p.stats.TotalHabits)))
	b.WriteString("\n")
	for i, h := range p.habits {
		icon := p.styles.HabitUndoneIcon
		label := p.styles.ItemStyle.Render(h.Label())
		if p.state.Habits[h.ID] {
			icon = p.styles.HabitDoneIcon
			label = p.styles.ItemDoneStyle.Render(h.Label())
		}
		prefix := "  "
		if i == p.cursor && p.focused {
			prefix = "▶ "
		}
		line := prefix + icon + " "
		if h.Icon != "" {
			line += h.Icon + " "
		}
		line += label
		if i == p.cursor && p.focused {
			line = p.styles.ItemSelectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	// Mood
	b.WriteString("\n")
	b.WriteString(p.styles.SectionStyle.Render("Mood"))
	b.WriteString("\n")
	b.WriteString("  " + p.renderMoods())
	b.WriteString("\n")
	moodLabel := "How are you feeling?"
	if info, ok := p.state.Mood.Info(); ok {
		moodLabel = info.Label
	}
	b.WriteString("  " + lipgloss.NewStyle().Foreground(p.styles.MoodColor(p.state.Mood)).Render(moodLabel))
	b.WriteString("\n")

	// Water
	b.WriteString("\n")
	b.WriteString(p.styles.SectionStyle.Render(fmt.Sprintf("Water  %d/%d glasses", p.state.Water, tracker.WaterGoal)))
	b.WriteString("\n")
	b.WriteString("  " + p.renderGlasses())
	b.WriteString("\n")

	// Overview
	b.WriteString("\n")
	b.WriteString(p.styles.SectionStyle.Render("Overview"))
	b.WriteString("\n")
	b.WriteString(p.renderOverview())

	style := p.styles.PaneStyle
	if p.focused {
		style = p.styles.PaneFocusedStyle
	}
	return style.Width(p.width).Height(p.height).Render(b.String())
}

func (p *TodayPane) separator() string {
	w := p.width - 4
	if w < 10 {
		w = 30
	}
	return strings.Repeat("─", w)
}

func (p *TodayPane) renderMoods() string {
	var parts []string
	for _, info := range tracker.Moods() {
		if info.Mood == p.state.Mood {
			parts = append(parts, p.styles.MoodSelectedStyle.Render("["+info.Emoji+"]"))
			continue
		}
		parts = append(parts, p.styles.MoodStyle.Render(" "+info.Emoji+" "))
	}
	return strings.Join(parts, " ")
}

// renderGlasses draws one icon per glass up to the goal; glasses beyond the
// goal are counted.
func (p *TodayPane) renderGlasses() string {
	var b strings.Builder
	for i := 0; i < tracker.WaterGoal; i++ {
		if i < p.state.Water {
			b.WriteString(p.styles.WaterFullIcon)
		} else {
			b.WriteString(p.styles.WaterEmptyIcon)
		}
	}
	if extra := p.state.Water - tracker.WaterGoal; extra > 0 {
		b.WriteString(p.styles.StatLabelStyle.Render(fmt.Sprintf(" +%d", extra)))
	}
	return b.String()
}

func (p *TodayPane) renderOverview() string {
	barWidth := max(10, min(30, p.width-24))
	rows := []struct {
		label string
		pct   int
		color string
		value string
	}{
		{"Habits", p.stats.HabitPercent(), string(p.styles.ColorPrimary), fmt.Sprintf("%d%%", p.stats.HabitPercent())},
		{"Water", p.stats.WaterPercent, p.stats.WaterLevel.Color(), fmt.Sprintf("%d%%", p.stats.WaterPercent)},
		{"Score", p.stats.Score, p.stats.Band.Color(), p.styles.BandStyle(p.stats.Band).Render(fmt.Sprintf("%d%% %s", p.stats.Score, p.stats.Band))},
	}

	var b strings.Builder
	for _, r := range rows {
		b.WriteString("  ")
		b.WriteString(p.styles.StatLabelStyle.Render(fmt.Sprintf("%-7s", r.label)))
		b.WriteString(renderBar(r.color, barWidth, r.pct))
		b.WriteString(" ")
		b.WriteString(r.value)
		b.WriteString("\n")
	}
	return b.String()
}

// renderBar draws a static progress bar for pct percent.
func renderBar(color string, width, pct int) string {
	bar := progress.New(
		progress.WithSolidFill(color),
		progress.WithoutPercentage(),
		progress.WithWidth(width),
		progress.WithColorProfile(lipgloss.ColorProfile()),
	)
	return bar.ViewAs(float64(pct) / 100)
}
