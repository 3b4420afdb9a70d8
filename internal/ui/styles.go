package ui

import (
	"aura/internal/config"
	"aura/internal/tracker"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds all application styles for one palette (light or dark).
type Styles struct {
	Dark bool

	// Colors
	ColorPrimary   lipgloss.Color
	ColorAccent    lipgloss.Color
	ColorMuted     lipgloss.Color
	ColorDanger    lipgloss.Color
	ColorWarning   lipgloss.Color
	ColorSuccess   lipgloss.Color
	ColorBg        lipgloss.Color
	ColorBgLight   lipgloss.Color
	ColorText      lipgloss.Color
	ColorTextMuted lipgloss.Color

	// Component styles
	AppStyle         lipgloss.Style
	TitleStyle       lipgloss.Style
	DateStyle        lipgloss.Style
	PaneStyle        lipgloss.Style
	PaneFocusedStyle lipgloss.Style
	PaneTitleStyle   lipgloss.Style
	SectionStyle     lipgloss.Style

	ItemStyle         lipgloss.Style
	ItemDoneStyle     lipgloss.Style
	ItemSelectedStyle lipgloss.Style
	HabitDoneIcon     string
	HabitUndoneIcon   string

	MoodSelectedStyle lipgloss.Style
	MoodStyle         lipgloss.Style
	WaterFullIcon     string
	WaterEmptyIcon    string

	HelpStyle    lipgloss.Style
	HelpKeyStyle lipgloss.Style

	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style

	StatLabelStyle lipgloss.Style
	StatValueStyle lipgloss.Style
}

// NewStyles creates the light palette from the given config.
func NewStyles(cfg *config.Config) *Styles {
	return NewStylesFromTheme(&cfg.Theme, false)
}

// NewStylesFromTheme creates the light or dark palette from a ThemeConfig.
// If a theme color is empty, it uses the appropriate default.
func NewStylesFromTheme(theme *config.ThemeConfig, dark bool) *Styles {
	s := &Styles{Dark: dark}

	s.ColorPrimary = colorOrDefault(theme.Primary, "#667EEA")
	s.ColorAccent = colorOrDefault(theme.Accent, "#48BB78")
	s.ColorMuted = colorOrDefault(theme.Muted, "#718096")

	// Fixed semantic colors (not configurable from theme)
	s.ColorDanger = lipgloss.Color("#E53E3E")
	s.ColorWarning = lipgloss.Color("#ED8936")
	s.ColorSuccess = lipgloss.Color("#48BB78")

	if dark {
		s.ColorBg = colorOrDefault(theme.DarkBackground, "#1A202C")
		s.ColorBgLight = lipgloss.Color("#2D3748")
		s.ColorText = colorOrDefault(theme.DarkText, "#E2E8F0")
		s.ColorTextMuted = lipgloss.Color("#A0AEC0")
	} else {
		s.ColorBg = lipgloss.Color(theme.Background)
		s.ColorBgLight = lipgloss.Color("#EDF2F7")
		s.ColorText = colorOrDefault(theme.Text, "#2D3748")
		s.ColorTextMuted = lipgloss.Color("#718096")
	}

	s.initComponentStyles()
	return s
}

// colorOrDefault returns the lipgloss.Color from hex string, or default if empty.
func colorOrDefault(hex, defaultHex string) lipgloss.Color {
	if hex != "" {
		return lipgloss.Color(hex)
	}
	return lipgloss.Color(defaultHex)
}

// initComponentStyles initializes all component styles based on the color palette.
func (s *Styles) initComponentStyles() {
	// An empty background color leaves the terminal's own.
	s.AppStyle = lipgloss.NewStyle().Foreground(s.ColorText)
	if s.ColorBg != "" {
		s.AppStyle = s.AppStyle.Background(s.ColorBg)
	}

	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(s.ColorPrimary).
		Padding(0, 1)

	s.DateStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	s.PaneStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.ColorMuted).
		Padding(0, 1)

	s.PaneFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.ColorPrimary).
		Padding(0, 1)

	s.PaneTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorPrimary).
		MarginBottom(1)

	s.SectionStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorAccent)

	s.ItemStyle = lipgloss.NewStyle().
		Foreground(s.ColorText)

	s.ItemDoneStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted).
		Strikethrough(true)

	s.ItemSelectedStyle = lipgloss.NewStyle().
		Background(s.ColorBgLight).
		Foreground(s.ColorText).
		Bold(true)

	s.HabitDoneIcon = lipgloss.NewStyle().Foreground(s.ColorSuccess).Render("[✓]")
	s.HabitUndoneIcon = lipgloss.NewStyle().Foreground(s.ColorMuted).Render("[ ]")

	s.MoodStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	s.MoodSelectedStyle = lipgloss.NewStyle().
		Bold(true).
		Underline(true).
		Foreground(s.ColorPrimary)

	s.WaterFullIcon = lipgloss.NewStyle().Foreground(lipgloss.Color(tracker.WaterHalf.Color())).Render("●")
	s.WaterEmptyIcon = lipgloss.NewStyle().Foreground(s.ColorMuted).Render("○")

	s.HelpStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	s.HelpKeyStyle = lipgloss.NewStyle().
		Foreground(s.ColorAccent).
		Bold(true)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(s.ColorSuccess).
		Italic(true)

	s.ErrorStyle = lipgloss.NewStyle().
		Foreground(s.ColorDanger).
		Bold(true)

	s.StatLabelStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	s.StatValueStyle = lipgloss.NewStyle().
		Foreground(s.ColorText).
		Bold(true)
}

// BandStyle colors a score by its band.
func (s *Styles) BandStyle(band tracker.ScoreBand) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(band.Color())).Bold(true)
}

// MoodColor returns the mood's color, or the muted color when unset.
func (s *Styles) MoodColor(m tracker.Mood) lipgloss.Color {
	if info, ok := m.Info(); ok {
		return lipgloss.Color(info.Color)
	}
	return s.ColorMuted
}

// RenderHelp renders help text with key bindings using the given styles.
func (s *Styles) RenderHelp(keys ...string) string {
	var result string
	for i := 0; i+1 < len(keys); i += 2 {
		if i > 0 {
			result += "  "
		}
		result += s.HelpKeyStyle.Render("["+keys[i]+"]") + " " + s.HelpStyle.Render(keys[i+1])
	}
	return result
}
