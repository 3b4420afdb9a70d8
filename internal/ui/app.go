// Package ui provides the terminal user interface of aura.
// This file contains the main App model which coordinates the panes and
// routes messages using the Bubble Tea architecture.
package ui

import (
	"fmt"
	"strings"
	"time"

	"aura/internal/config"
	"aura/internal/tracker"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PaneID identifies each pane in the application.
type PaneID int

const (
	PaneToday PaneID = iota
	PaneHistory
)

// LayoutMode determines how panes are arranged based on terminal width.
type LayoutMode int

const (
	// LayoutWide shows both panes side-by-side.
	LayoutWide LayoutMode = iota
	// LayoutNarrow shows only the focused pane with a tab bar.
	LayoutNarrow
)

// AppConfig holds user configuration for the app behavior.
type AppConfig struct {
	Keys                  *config.KeysConfig
	Theme                 *config.ThemeConfig
	Habits                []config.HabitConfig
	ConfirmDeletions      bool
	NarrowLayoutThreshold int
	ExportDir             string
}

// App is the main application model that coordinates all panes.
type App struct {
	session     *session
	light       *Styles
	dark        *Styles
	styles      *Styles
	config      *AppConfig
	todayPane   *TodayPane
	historyPane *HistoryPane
	helpOverlay *HelpOverlay
	confirm     *confirmState
	activePane  PaneID
	layoutMode  LayoutMode
	showHelp    bool
	width       int
	height      int
	day         string
	status      string
	statusErr   bool
	statusUntil time.Time
	quitting    bool
	now         func() time.Time

	// Key bindings
	keys       GlobalKeyMap
	helpKeys   HelpKeyMap
	dialogKeys DialogKeyMap

	// Pane positions for mouse click detection (x coordinates)
	todayPaneStart   int
	todayPaneEnd     int
	historyPaneStart int
	historyPaneEnd   int
	contentTop       int // Y coordinate where pane borders start
}

// confirmState is a pending destructive command waiting for y/n.
type confirmState struct {
	title string
	body  string
	cmd   tea.Cmd
}

// NewApp creates a new application. Data loading is deferred to Init()
// to keep the constructor non-blocking.
func NewApp(dash *tracker.Dashboard, cfg *AppConfig) *App {
	if cfg == nil {
		cfg = &AppConfig{ConfirmDeletions: true}
	}
	if cfg.Keys == nil {
		cfg.Keys = &config.KeysConfig{}
	}
	if cfg.Theme == nil {
		cfg.Theme = &config.ThemeConfig{}
	}
	if len(cfg.Habits) == 0 {
		cfg.Habits = habitConfigs(dash.Habits().IDs())
	}
	if cfg.NarrowLayoutThreshold <= 0 {
		cfg.NarrowLayoutThreshold = 90
	}

	light := NewStylesFromTheme(cfg.Theme, false)
	dark := NewStylesFromTheme(cfg.Theme, true)
	s := newSession(dash, cfg.ExportDir)

	keys := NewGlobalKeyMap(cfg.Keys)
	dialogKeys := NewDialogKeyMap(cfg.Keys)
	todayPane := NewTodayPane(s, light, cfg.Habits, cfg.Keys)
	historyPane := NewHistoryPane(s, light, cfg.Keys)

	app := &App{
		session:     s,
		light:       light,
		dark:        dark,
		styles:      light,
		config:      cfg,
		todayPane:   todayPane,
		historyPane: historyPane,
		helpOverlay: NewHelpOverlay(light, keys, todayPane.keys, historyPane.keys, dialogKeys),
		activePane:  PaneToday,
		now:         time.Now,
		keys:        keys,
		helpKeys:    DefaultHelpKeyMap(),
		dialogKeys:  dialogKeys,
	}

	todayPane.SetFocused(true)
	historyPane.SetFocused(false)

	return app
}

// habitConfigs names habits by their ids when no display config is given.
func habitConfigs(ids []string) []config.HabitConfig {
	out := make([]config.HabitConfig, len(ids))
	for i, id := range ids {
		out[i] = config.HabitConfig{ID: id}
	}
	return out
}

// tickMsg is sent periodically for time updates.
type tickMsg time.Time

// tickCmd returns a command that sends a tick every second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init initializes the app and loads all data asynchronously.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		loadDayCmd(a.session),
		a.historyPane.LoadCmd(),
	)
}

// Update handles all messages and routes them appropriately.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Dashboard results are routed regardless of which pane is active.
	switch msg := msg.(type) {
	case dayMsg:
		return a, a.handleDay(msg)

	case rolledOverMsg:
		switch {
		case msg.err != nil:
			a.SetStatus("New day: "+msg.err.Error(), true)
		case msg.archived:
			a.SetStatus("New day started! Yesterday's data was saved to your history.", false)
		default:
			a.SetStatus("New day started!", false)
		}
		return a, tea.Batch(loadDayCmd(a.session), a.historyPane.LoadCmd())

	case historyMsg:
		if msg.err != nil {
			a.SetStatus("History: "+msg.err.Error(), true)
		}
		return a, a.historyPane.Update(msg)

	case historyChangedMsg:
		switch {
		case msg.err != nil:
			a.SetStatus(msg.op+": "+msg.err.Error(), true)
		case msg.changed:
			a.SetStatus(msg.op, false)
		}
		return a, a.historyPane.LoadCmd()

	case exportedMsg:
		if msg.err != nil {
			a.SetStatus("Export: "+msg.err.Error(), true)
		} else {
			a.SetStatus("Exported to "+msg.path, false)
		}
		return a, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		return a, nil

	case tea.MouseMsg:
		return a, a.handleMouse(msg)

	case tickMsg:
		now := a.now()
		if a.status != "" && !a.statusUntil.IsZero() && now.After(a.statusUntil) {
			a.status = ""
			a.statusErr = false
			a.statusUntil = time.Time{}
		}
		cmds := []tea.Cmd{tickCmd()}
		if a.day != "" && tracker.DateOf(now) != a.day {
			cmds = append(cmds, checkRolloverCmd(a.session, now))
		}
		return a, tea.Batch(cmds...)
	}

	return a, nil
}

// handleDay applies a day snapshot and reloads the history when the day's
// entry may have changed.
func (a *App) handleDay(msg dayMsg) tea.Cmd {
	if msg.err != nil {
		a.SetStatus(opLabel(msg.op)+": "+msg.err.Error(), true)
	} else if msg.op == "reset" && msg.changed {
		a.SetStatus("Today's data has been reset", false)
	}

	a.day = msg.state.Date
	a.applyTheme(msg.state.DarkMode)
	a.todayPane.Update(msg)

	if msg.op == "" || msg.op == "dark mode" || !msg.changed {
		return nil
	}
	return a.historyPane.LoadCmd()
}

func opLabel(op string) string {
	if op == "" {
		return "Load"
	}
	return strings.ToUpper(op[:1]) + op[1:]
}

// applyTheme switches every view to the light or dark palette.
func (a *App) applyTheme(dark bool) {
	styles := a.light
	if dark {
		styles = a.dark
	}
	if styles == a.styles {
		return
	}
	a.styles = styles
	a.todayPane.SetStyles(styles)
	a.historyPane.SetStyles(styles)
	a.helpOverlay.SetStyles(styles)
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if a.confirm != nil {
		switch {
		case key.Matches(msg, a.dialogKeys.Confirm):
			cmd := a.confirm.cmd
			a.confirm = nil
			return cmd
		case key.Matches(msg, a.dialogKeys.Cancel):
			a.confirm = nil
			a.SetStatus("Canceled", false)
		}
		return nil
	}

	// Help overlay takes priority
	if a.showHelp {
		if key.Matches(msg, a.helpKeys.Close) {
			a.showHelp = false
		}
		return nil
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		a.quitting = true
		return tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.showHelp = true
		return nil

	case key.Matches(msg, a.keys.NextPane):
		a.switchPane()
		return nil

	case key.Matches(msg, a.keys.Pane1):
		a.setActivePane(PaneToday)
		return nil

	case key.Matches(msg, a.keys.Pane2):
		a.setActivePane(PaneHistory)
		return nil

	case key.Matches(msg, a.keys.DarkMode):
		return toggleDarkModeCmd(a.session)

	case key.Matches(msg, a.keys.Reset):
		stats := a.todayPane.Stats()
		body := fmt.Sprintf("Habits %d/%d · Water %d · Score %d%%", stats.CompletedHabits, stats.TotalHabits, stats.Water, stats.Score)
		return a.ask(tracker.PromptReset, body, resetTodayCmd(a.session))
	}

	if a.activePane == PaneHistory {
		switch {
		case key.Matches(msg, a.historyPane.keys.Delete):
			e, ok := a.historyPane.Selected()
			if !ok {
				a.SetStatus("No day selected", true)
				return nil
			}
			body := fmt.Sprintf("Habits %d/%d · Water %d · Score %d%%", e.CompletedHabits, e.TotalHabits, e.Water, e.OverallScore)
			return a.ask(tracker.DeletePrompt(e.Date), body, deleteEntryCmd(a.session, e.Date))

		case key.Matches(msg, a.historyPane.keys.Clear):
			if a.historyPane.Len() == 0 {
				a.SetStatus("No history to clear", true)
				return nil
			}
			return a.ask(tracker.PromptClear, "", clearHistoryCmd(a.session))
		}
		return a.historyPane.Update(msg)
	}
	return a.todayPane.Update(msg)
}

// ask shows the confirmation dialog for cmd, or returns cmd directly when
// confirmations are turned off.
func (a *App) ask(title, body string, cmd tea.Cmd) tea.Cmd {
	if !a.config.ConfirmDeletions {
		return cmd
	}
	a.confirm = &confirmState{title: title, body: body, cmd: cmd}
	return nil
}

func (a *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if a.confirm != nil {
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			a.confirm = nil
			a.SetStatus("Canceled", false)
		}
		return nil
	}

	// Any click closes help
	if a.showHelp {
		if msg.Action == tea.MouseActionPress {
			a.showHelp = false
		}
		return nil
	}

	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		// In narrow mode, the tab bar sits just above the pane.
		if a.layoutMode == LayoutNarrow && msg.Y == a.contentTop-1 {
			if msg.X < a.width/2 {
				a.setActivePane(PaneToday)
			} else {
				a.setActivePane(PaneHistory)
			}
			return nil
		}
		if pane := a.paneAtPosition(msg.X); pane >= 0 && pane != a.activePane {
			a.setActivePane(pane)
		}
	}

	if msg.Y < a.contentTop && msg.Button != tea.MouseButtonWheelUp && msg.Button != tea.MouseButtonWheelDown {
		return nil
	}

	// Pane coordinates start inside the top border.
	local := msg
	local.Y = msg.Y - a.contentTop - 1
	switch a.activePane {
	case PaneHistory:
		if a.layoutMode == LayoutWide {
			local.X = msg.X - a.historyPaneStart
		}
		return a.historyPane.Update(local)
	default:
		return a.todayPane.Update(local)
	}
}

// switchPane cycles through panes.
func (a *App) switchPane() {
	if a.activePane == PaneToday {
		a.setActivePane(PaneHistory)
	} else {
		a.setActivePane(PaneToday)
	}
}

// setActivePane sets the active pane and updates focus states.
func (a *App) setActivePane(pane PaneID) {
	a.activePane = pane
	a.todayPane.SetFocused(pane == PaneToday)
	a.historyPane.SetFocused(pane == PaneHistory)
}

// paneAtPosition returns which pane is at the given X coordinate.
// Returns -1 if no pane is at that position.
func (a *App) paneAtPosition(x int) PaneID {
	if a.layoutMode == LayoutNarrow {
		return a.activePane
	}
	if x >= a.todayPaneStart && x < a.todayPaneEnd {
		return PaneToday
	}
	if x >= a.historyPaneStart && x < a.historyPaneEnd {
		return PaneHistory
	}
	return -1
}

// updateLayout recalculates pane sizes based on terminal dimensions.
func (a *App) updateLayout() {
	// Leave room for title bar (2) and help bar (1)
	contentHeight := a.height - 4
	if contentHeight < 10 {
		contentHeight = 10
	}

	a.contentTop = 1
	a.helpOverlay.SetSize(a.width, a.height)

	totalWidth := a.width - 4

	if a.width < a.config.NarrowLayoutThreshold {
		a.layoutMode = LayoutNarrow

		narrowHeight := max(8, contentHeight-1)
		paneWidth := max(20, totalWidth)

		a.todayPane.SetSize(paneWidth, narrowHeight)
		a.historyPane.SetSize(paneWidth, narrowHeight)

		a.todayPaneStart = 0
		a.todayPaneEnd = a.width
		a.historyPaneStart = 0
		a.historyPaneEnd = a.width
		// Content starts after tab bar in narrow mode
		a.contentTop = 2
		return
	}

	a.layoutMode = LayoutWide

	todayWidth := (totalWidth * 55) / 100
	if totalWidth >= 120 {
		todayWidth = min(todayWidth, 64)
	}
	historyWidth := totalWidth - todayWidth - 1

	a.todayPane.SetSize(todayWidth, contentHeight)
	a.historyPane.SetSize(historyWidth, contentHeight)

	a.todayPaneStart = 0
	a.todayPaneEnd = todayWidth
	a.historyPaneStart = todayWidth + 1
	a.historyPaneEnd = a.historyPaneStart + historyWidth
}

// View renders the entire app.
func (a *App) View() string {
	if a.quitting {
		return a.renderGoodbye()
	}

	if a.confirm != nil {
		return a.renderConfirm()
	}

	if a.showHelp {
		return a.helpOverlay.View()
	}

	var b strings.Builder

	b.WriteString(a.renderTitleBar())
	b.WriteString("\n")

	switch a.layoutMode {
	case LayoutNarrow:
		b.WriteString(a.renderNarrowContent())
	default:
		b.WriteString(a.renderWideContent())
	}
	b.WriteString("\n")

	b.WriteString(a.renderHelpBar())

	if a.styles.Dark && a.width > 0 {
		return a.styles.AppStyle.Width(a.width).Render(b.String())
	}
	return b.String()
}

func (a *App) renderConfirm() string {
	overlayWidth := 60
	if a.width > 0 {
		overlayWidth = min(60, max(20, a.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(a.styles.ColorDanger).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(a.styles.ColorDanger).
		MarginBottom(1)

	bodyStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorText)

	var b strings.Builder
	b.WriteString(titleStyle.Render(a.confirm.title))
	b.WriteString("\n\n")
	if a.confirm.body != "" {
		b.WriteString(bodyStyle.Render(a.confirm.body))
		b.WriteString("\n\n")
	}
	b.WriteString(a.renderBindings(a.dialogKeys.Confirm, a.dialogKeys.Cancel))

	return RenderCentered(overlayStyle.Render(b.String()), a.width, a.height)
}

// renderWideContent renders both panes side by side.
func (a *App) renderWideContent() string {
	return lipgloss.JoinHorizontal(lipgloss.Top, a.todayPane.View(), " ", a.historyPane.View())
}

// renderNarrowContent renders the focused pane with a tab bar.
func (a *App) renderNarrowContent() string {
	var b strings.Builder

	b.WriteString(a.renderPaneTabs())
	b.WriteString("\n")

	if a.activePane == PaneHistory {
		b.WriteString(a.historyPane.View())
	} else {
		b.WriteString(a.todayPane.View())
	}

	return b.String()
}

// renderPaneTabs renders a tab bar showing available panes.
func (a *App) renderPaneTabs() string {
	tabs := []struct {
		id    PaneID
		label string
	}{
		{PaneToday, "Today"},
		{PaneHistory, "History"},
	}

	activeTabStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorPrimary).
		Bold(true)
	inactiveTabStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorTextMuted)

	var parts []string
	for _, tab := range tabs {
		if tab.id == a.activePane {
			parts = append(parts, activeTabStyle.Render("["+tab.label+"]"))
		} else {
			parts = append(parts, inactiveTabStyle.Render(" "+tab.label+" "))
		}
	}

	tabBar := strings.Join(parts, "  ")
	padding := (a.width - lipgloss.Width(tabBar)) / 2
	if padding > 0 {
		tabBar = strings.Repeat(" ", padding) + tabBar
	}
	return tabBar
}

// renderGoodbye shows an exit message with today's summary.
func (a *App) renderGoodbye() string {
	stats := a.todayPane.Stats()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  See you later!\n")
	b.WriteString("\n")

	if stats.TotalHabits > 0 {
		b.WriteString("  Today's progress:\n")
		b.WriteString(fmt.Sprintf("     Habits: %d/%d (%d%%)\n", stats.CompletedHabits, stats.TotalHabits, stats.HabitPercent()))
		b.WriteString(fmt.Sprintf("     Water:  %d/%d glasses\n", stats.Water, tracker.WaterGoal))
		if info, ok := stats.Mood.Info(); ok {
			b.WriteString(fmt.Sprintf("     Mood:   %s %s\n", info.Emoji, info.Label))
		}
		b.WriteString(fmt.Sprintf("     Score:  %d%% (%s)\n", stats.Score, stats.Band))
		b.WriteString("\n")
	}

	return b.String()
}

// renderTitleBar creates the top title bar with today's stats and the date.
func (a *App) renderTitleBar() string {
	title := a.styles.TitleStyle.Render(" aura ")

	s := a.todayPane.Stats()
	statsItems := []string{
		fmt.Sprintf("Habits: %d/%d", s.CompletedHabits, s.TotalHabits),
		fmt.Sprintf("Water: %d/%d", s.Water, tracker.WaterGoal),
	}
	stats := a.styles.StatLabelStyle.Render(strings.Join(statsItems, "  "))
	score := a.styles.BandStyle(s.Band).Render(fmt.Sprintf("Score %d%%", s.Score))

	dateStr := a.now().Format("Mon Jan 2 · 15:04")
	if a.styles.Dark {
		dateStr = "☾ " + dateStr
	}
	date := a.styles.DateStyle.Render(dateStr)

	usedWidth := lipgloss.Width(title) + lipgloss.Width(stats) + lipgloss.Width(score) + lipgloss.Width(date)
	spacerWidth := max(2, a.width-usedWidth-6)

	leftSpacer := strings.Repeat(" ", spacerWidth/2)
	rightSpacer := strings.Repeat(" ", spacerWidth-spacerWidth/2)

	return title + "  " + stats + leftSpacer + score + rightSpacer + date
}

// renderHelpBar creates the bottom help bar with context-sensitive hints.
func (a *App) renderHelpBar() string {
	if a.status != "" {
		if a.statusErr {
			return a.styles.ErrorStyle.Render(a.status)
		}
		return a.styles.StatusStyle.Render(a.status)
	}

	var bindings []key.Binding
	if a.activePane == PaneHistory {
		bindings = a.historyPane.keys.ShortHelp()
	} else {
		bindings = a.todayPane.keys.ShortHelp()
	}
	bindings = append(bindings, a.keys.NextPane, a.keys.Help)
	return a.renderBindings(bindings...)
}

func (a *App) renderBindings(bindings ...key.Binding) string {
	pairs := make([]string, 0, len(bindings)*2)
	for _, kb := range bindings {
		h := kb.Help()
		pairs = append(pairs, h.Key, h.Desc)
	}
	return a.styles.RenderHelp(pairs...)
}

// SetStatus sets a status message to display to the user.
func (a *App) SetStatus(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
	ttl := 5 * time.Second
	if isErr {
		ttl = 8 * time.Second
	}
	a.statusUntil = a.now().Add(ttl)
}

// Run starts the Bubble Tea program on dash.
func Run(dash *tracker.Dashboard, cfg *AppConfig) error {
	app := NewApp(dash, cfg)
	p := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
