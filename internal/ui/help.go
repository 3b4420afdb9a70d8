package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// helpSection is one titled group of bindings in the help overlay.
type helpSection struct {
	title    string
	bindings []key.Binding
}

// HelpOverlay renders a help screen
type HelpOverlay struct {
	width    int
	height   int
	styles   *Styles
	sections []helpSection
}

// NewHelpOverlay creates a new help overlay listing the configured keys.
func NewHelpOverlay(styles *Styles, global GlobalKeyMap, today TodayKeyMap, history HistoryKeyMap, dialog DialogKeyMap) *HelpOverlay {
	return &HelpOverlay{
		styles: styles,
		sections: []helpSection{
			{"Global", []key.Binding{global.NextPane, global.Pane1, global.Pane2, global.DarkMode, global.Reset, global.Help, global.Quit}},
			{"Today", []key.Binding{today.Toggle, today.Up, today.Down, today.MoodPrev, today.MoodNext, today.WaterAdd, today.WaterRemove}},
			{"History", []key.Binding{history.Filter, history.Delete, history.Clear, history.Export, history.Up, history.Down}},
			{"Dialogs", []key.Binding{dialog.Confirm, dialog.Cancel}},
		},
	}
}

// SetSize sets the overlay dimensions
func (h *HelpOverlay) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// SetStyles switches the palette.
func (h *HelpOverlay) SetStyles(styles *Styles) {
	h.styles = styles
}

// View renders the help overlay
func (h *HelpOverlay) View() string {
	overlayWidth := 60
	if h.width > 0 {
		overlayWidth = min(60, max(20, h.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(h.styles.ColorPrimary).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(h.styles.ColorPrimary).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(h.styles.ColorAccent)

	keyStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorWarning).
		Width(h.keyColumnWidth())

	descStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorText)

	mutedStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorTextMuted).
		Italic(true)

	var b strings.Builder

	b.WriteString(titleStyle.Render("📖 aura - Keyboard Shortcuts"))
	b.WriteString("\n\n")

	for i, sec := range h.sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, kb := range sec.bindings {
			help := kb.Help()
			b.WriteString(keyStyle.Render(bindingKeys(kb)) + descStyle.Render(help.Desc) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Press ? or Esc to close"))

	return RenderCentered(overlayStyle.Render(b.String()), h.width, h.height)
}

// keyColumnWidth fits the longest key label plus a two-space gap.
func (h *HelpOverlay) keyColumnWidth() int {
	width := 12
	for _, sec := range h.sections {
		for _, kb := range sec.bindings {
			width = max(width, lipgloss.Width(bindingKeys(kb))+2)
		}
	}
	return width
}

// bindingKeys lists up to two of a binding's keys, e.g. "k / up".
func bindingKeys(kb key.Binding) string {
	keys := kb.Keys()
	if len(keys) > 2 {
		keys = keys[:2]
	}
	labels := make([]string, len(keys))
	for i, k := range keys {
		labels[i] = helpKey([]string{k})
	}
	return strings.Join(labels, " / ")
}

// RenderCentered centers content in the terminal
func RenderCentered(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
