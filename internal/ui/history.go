package ui

import (
	"fmt"
	"strings"
	"time"

	"aura/internal/config"
	"aura/internal/tracker"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
)

// historyFilter selects how far back the history pane looks.
type historyFilter int

const (
	filterAll historyFilter = iota
	filterWeek
	filterMonth
)

func (f historyFilter) daysBack() int {
	switch f {
	case filterWeek:
		return 7
	case filterMonth:
		return 30
	default:
		return tracker.AllHistory
	}
}

func (f historyFilter) next() historyFilter {
	return (f + 1) % 3
}

func (f historyFilter) String() string {
	switch f {
	case filterWeek:
		return "Last 7 days"
	case filterMonth:
		return "Last 30 days"
	default:
		return "All"
	}
}

// historyHeaderRows is the number of lines above the first entry row.
const historyHeaderRows = 4

// HistoryPane lists saved days, newest first.
type HistoryPane struct {
	session *session
	styles  *Styles
	entries []tracker.HistoryEntry
	filter  historyFilter
	cursor  int
	offset  int
	focused bool
	width   int
	height  int
	now     func() time.Time

	keys HistoryKeyMap
}

// NewHistoryPane creates the history pane.
func NewHistoryPane(s *session, styles *Styles, keyCfg *config.KeysConfig) *HistoryPane {
	return &HistoryPane{
		session: s,
		styles:  styles,
		now:     time.Now,
		keys:    NewHistoryKeyMap(keyCfg),
	}
}

// SetSize sets the pane dimensions.
func (p *HistoryPane) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.clampCursor()
}

// SetFocused sets whether this pane is focused.
func (p *HistoryPane) SetFocused(focused bool) {
	p.focused = focused
}

// SetStyles switches the palette.
func (p *HistoryPane) SetStyles(styles *Styles) {
	p.styles = styles
}

// LoadCmd returns a command that reloads the entries for the active filter.
func (p *HistoryPane) LoadCmd() tea.Cmd {
	return loadHistoryCmd(p.session, p.filter)
}

// Len returns the number of listed entries.
func (p *HistoryPane) Len() int {
	return len(p.entries)
}

// Selected returns the entry under the cursor.
func (p *HistoryPane) Selected() (tracker.HistoryEntry, bool) {
	if p.cursor < 0 || p.cursor >= len(p.entries) {
		return tracker.HistoryEntry{}, false
	}
	return p.entries[p.cursor], true
}

func (p *HistoryPane) setEntries(filter historyFilter, entries []tracker.HistoryEntry) {
	p.filter = filter
	p.entries = entries
	p.clampCursor()
}

func (p *HistoryPane) visibleRows() int {
	// Header, filter line and footer take the rest of the pane.
	return max(1, p.height-historyHeaderRows-4)
}

func (p *HistoryPane) clampCursor() {
	if p.cursor >= len(p.entries) {
		p.cursor = max(0, len(p.entries)-1)
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
	rows := p.visibleRows()
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+rows {
		p.offset = p.cursor - rows + 1
	}
	if p.offset < 0 {
		p.offset = 0
	}
}

// Update handles messages for the history pane.
func (p *HistoryPane) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case historyMsg:
		if msg.err == nil || msg.entries != nil {
			p.setEntries(msg.filter, msg.entries)
		}
		return nil

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			p.move(-1)
		case tea.MouseButtonWheelDown:
			p.move(1)
		case tea.MouseButtonLeft:
			if msg.Action == tea.MouseActionPress {
				row := msg.Y - historyHeaderRows
				if row >= 0 && p.offset+row < len(p.entries) {
					p.cursor = p.offset + row
				}
			}
		}
		return nil

	case tea.KeyMsg:
		if !p.focused {
			return nil
		}
		switch {
		case key.Matches(msg, p.keys.Up):
			p.move(-1)
		case key.Matches(msg, p.keys.Down):
			p.move(1)
		case key.Matches(msg, p.keys.Top):
			p.cursor = 0
			p.clampCursor()
		case key.Matches(msg, p.keys.Bottom):
			p.cursor = len(p.entries) - 1
			p.clampCursor()
		case key.Matches(msg, p.keys.Filter):
			return loadHistoryCmd(p.session, p.filter.next())
		case key.Matches(msg, p.keys.Export):
			return exportCmd(p.session)
		}
	}
	return nil
}

func (p *HistoryPane) move(delta int) {
	p.cursor += delta
	p.clampCursor()
}

// View renders the history pane.
func (p *HistoryPane) View() string {
	var b strings.Builder

	b.WriteString(p.styles.PaneTitleStyle.Render("📅 HISTORY"))
	b.WriteString("\n")
	sepWidth := p.width - 4
	if sepWidth < 10 {
		sepWidth = 30
	}
	b.WriteString(p.styles.StatLabelStyle.Render(strings.Repeat("─", sepWidth)))
	b.WriteString("\n")
	b.WriteString(p.styles.SectionStyle.Render(fmt.Sprintf("%s  (%d days)", p.filter, len(p.entries))))
	b.WriteString("\n")

	if len(p.entries) == 0 {
		b.WriteString("\n")
		b.WriteString(p.styles.StatLabelStyle.Render("  No history yet."))
		b.WriteString("\n")
		b.WriteString(p.styles.StatLabelStyle.Render("  Days are saved here as you track them."))
		b.WriteString("\n")
	} else {
		end := min(len(p.entries), p.offset+p.visibleRows())
		for i := p.offset; i < end; i++ {
			line := p.renderEntry(p.entries[i])
			if i == p.cursor && p.focused {
				line = p.styles.ItemSelectedStyle.Render("▶ " + line)
			} else {
				line = "  " + line
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		if e, ok := p.Selected(); ok {
			b.WriteString("\n")
			b.WriteString(p.styles.StatLabelStyle.Render(p.describe(e)))
			b.WriteString("\n")
		}
	}

	style := p.styles.PaneStyle
	if p.focused {
		style = p.styles.PaneFocusedStyle
	}
	return style.Width(p.width).Height(p.height).Render(b.String())
}

func (p *HistoryPane) renderEntry(e tracker.HistoryEntry) string {
	score := p.styles.BandStyle(e.Band()).Render(fmt.Sprintf("%3d%%", e.OverallScore))
	return fmt.Sprintf("%s  %d/%d  %s  💧%-2d %s",
		e.Date, e.CompletedHabits, e.TotalHabits, e.Mood.Emoji(), e.Water, score)
}

// describe summarizes the selected entry.
func (p *HistoryPane) describe(e tracker.HistoryEntry) string {
	mood := "no mood"
	if info, ok := e.Mood.Info(); ok {
		mood = info.Label
	}
	saved := "never saved"
	if !e.Timestamp.IsZero() {
		saved = "saved " + humanize.RelTime(e.Timestamp, p.now(), "ago", "from now")
	}
	return fmt.Sprintf("  %s · %s", mood, saved)
}
