package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/swty/internal/config"
	"github.com/f3rmion/swty/internal/history"
	"github.com/f3rmion/swty/internal/source"
	"github.com/f3rmion/swty/internal/tui/views"
	"github.com/rs/zerolog"
)

// ViewType represents the current active view
type ViewType int

const (
	ViewPractice ViewType = iota
	ViewHistory
	ViewSettings
)

// MenuItem represents a sidebar menu entry
type MenuItem struct {
	Label    string
	View     ViewType
	Shortcut string
}

// ViewSwitchMsg requests a view change
type ViewSwitchMsg struct {
	View ViewType
}

// roundSavedMsg reports the result of recording a finished round
type roundSavedMsg struct {
	round history.Round
	err   error
}

// Store records finished rounds and reads them back.
type Store interface {
	views.RoundStore
	Save(ctx context.Context, r history.Round) (history.Round, error)
}

// AppConfig holds the dependencies of the app model.
type AppConfig struct {
	Source    source.Source
	Config    *config.Config
	ConfigDir string
	Store     Store // nil disables history
	Logger    zerolog.Logger
	Practice  views.PracticeConfig
}

// AppModel is the main TUI model
type AppModel struct {
	config *config.Config
	store  Store
	logger zerolog.Logger

	// Layout state
	width        int
	height       int
	sidebarWidth int
	ready        bool

	// Navigation
	currentView   ViewType
	menuItems     []MenuItem
	selectedMenu  int
	sidebarActive bool

	// Sub-models (views)
	practiceView views.PracticeModel
	historyView  views.HistoryModel
	settingsView views.SettingsModel

	// Help overlay
	showHelp bool
}

// NewApp creates the TUI application.
func NewApp(cfg AppConfig) AppModel {
	if cfg.Config == nil {
		cfg.Config = config.Default()
	}

	practiceCfg := cfg.Practice
	practiceCfg.Source = cfg.Source
	practiceCfg.Logger = cfg.Logger

	menuItems := []MenuItem{
		{Label: "Practice", View: ViewPractice, Shortcut: "1"},
		{Label: "History", View: ViewHistory, Shortcut: "2"},
		{Label: "Settings", View: ViewSettings, Shortcut: "3"},
	}

	var roundStore views.RoundStore
	if cfg.Store != nil {
		roundStore = cfg.Store
	}

	return AppModel{
		config:       cfg.Config,
		store:        cfg.Store,
		logger:       cfg.Logger,
		sidebarWidth: 18,
		currentView:  ViewPractice,
		menuItems:    menuItems,

		practiceView: views.NewPracticeModel(practiceCfg),
		historyView:  views.NewHistoryModel(roundStore),
		settingsView: views.NewSettingsModel(cfg.Config, cfg.ConfigDir),
	}
}

// Init initializes the model
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.practiceView.Init(), m.historyView.Init())
}

// Update handles messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := m.update(msg)
	app := model.(AppModel)
	if focusCmd := app.syncFocus(); focusCmd != nil {
		cmd = tea.Batch(cmd, focusCmd)
	}
	return app, cmd
}

func (m AppModel) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.sidebarActive || m.showHelp {
			return m, nil
		}
		return m.updateActive(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		contentWidth := m.width - m.sidebarWidth - 4
		contentHeight := m.height - 2

		m.practiceView.SetSize(contentWidth, contentHeight)
		m.historyView.SetSize(contentWidth, contentHeight)
		m.settingsView.SetSize(contentWidth, contentHeight)
		return m, nil

	case ViewSwitchMsg:
		m.switchView(msg.View)
		return m, nil

	case views.RoundFinishedMsg:
		return m, m.saveRound(msg)

	case roundSavedMsg:
		if msg.err != nil {
			m.logger.Error().Err(msg.err).Msg("saving round failed")
			return m, nil
		}
		m.logger.Info().
			Str("round", msg.round.ID).
			Float64("wpm", msg.round.WPM).
			Msg("round saved")
		return m, m.historyView.Refresh()
	}

	// Everything else (fetch results, timers, blinks) reaches every view
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.practiceView, cmd = m.practiceView.Update(msg)
	cmds = append(cmds, cmd)
	m.historyView, cmd = m.historyView.Update(msg)
	cmds = append(cmds, cmd)
	m.settingsView, cmd = m.settingsView.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Help overlay - any key closes it
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	// Global keys. None of them can appear in a sentence.
	switch msg.String() {
	case "?":
		m.showHelp = true
		return m, nil
	case "esc":
		// Esc goes back to sidebar or quits
		if m.sidebarActive {
			return m, tea.Quit
		}
		m.sidebarActive = true
		return m, nil
	case "tab":
		m.sidebarActive = !m.sidebarActive
		return m, nil
	case "1":
		m.switchView(ViewPractice)
		return m, nil
	case "2":
		m.switchView(ViewHistory)
		return m, nil
	case "3":
		m.switchView(ViewSettings)
		return m, nil
	}

	if m.sidebarActive {
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "j", "down":
			if m.selectedMenu < len(m.menuItems)-1 {
				m.selectedMenu++
			}
		case "k", "up":
			if m.selectedMenu > 0 {
				m.selectedMenu--
			}
		case "enter", "l", "right":
			m.switchView(m.menuItems[m.selectedMenu].View)
		}
		return m, nil
	}

	return m.updateActive(msg)
}

// updateActive delegates msg to the current view only.
func (m AppModel) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentView {
	case ViewPractice:
		m.practiceView, cmd = m.practiceView.Update(msg)
	case ViewHistory:
		m.historyView, cmd = m.historyView.Update(msg)
	case ViewSettings:
		m.settingsView, cmd = m.settingsView.Update(msg)
	}
	return m, cmd
}

func (m *AppModel) switchView(v ViewType) {
	m.currentView = v
	m.sidebarActive = false
	for i, item := range m.menuItems {
		if item.View == v {
			m.selectedMenu = i
			break
		}
	}
}

// syncFocus keeps the practice input focused exactly while it is on screen
// and receiving keys.
func (m *AppModel) syncFocus() tea.Cmd {
	want := m.currentView == ViewPractice && !m.sidebarActive && !m.showHelp
	if want == m.practiceView.Focused() {
		return nil
	}
	if want {
		return m.practiceView.Focus()
	}
	m.practiceView.Blur()
	return nil
}

func (m AppModel) saveRound(msg views.RoundFinishedMsg) tea.Cmd {
	if m.store == nil {
		return nil
	}
	store := m.store
	round := history.Round{
		StartedAt:  msg.StartedAt,
		FinishedAt: msg.FinishedAt,
		Sentences:  msg.Stats.Sentences,
		Characters: msg.Stats.Characters,
		Keystrokes: msg.Stats.Keystrokes,
		Mistakes:   msg.Stats.Mistakes,
		Duration:   msg.Stats.Elapsed,
		WPM:        msg.Stats.WPM,
		Accuracy:   msg.Stats.Accuracy,
		Source:     msg.Source,
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		saved, err := store.Save(ctx, round)
		return roundSavedMsg{round: saved, err: err}
	}
}

// View renders the UI
func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	sidebar := m.renderSidebar()

	var content string
	switch m.currentView {
	case ViewPractice:
		content = m.practiceView.View()
	case ViewHistory:
		content = m.historyView.View()
	case ViewSettings:
		content = m.settingsView.View()
	}

	contentWidth := m.width - m.sidebarWidth - 4
	mainContent := ContentStyle.
		Width(contentWidth).
		Height(m.height - 2).
		Render(content)

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, mainContent)
}

// renderSidebar renders the sidebar navigation
func (m AppModel) renderSidebar() string {
	var items []string

	items = append(items, SidebarTitleStyle.Render("  swty  "))
	items = append(items, "")

	for i, item := range m.menuItems {
		label := item.Shortcut + ". " + item.Label

		var style lipgloss.Style
		if i == m.selectedMenu {
			if m.sidebarActive {
				style = SidebarItemActiveStyle
			} else {
				// Current view, sidebar not focused
				style = SidebarItemStyle.Bold(true).Foreground(ColorSecondary)
			}
		} else {
			style = SidebarItemStyle
		}

		items = append(items, style.Render(label))
	}

	usedHeight := len(items) + 4
	if m.height > usedHeight {
		for i := 0; i < m.height-usedHeight-2; i++ {
			items = append(items, "")
		}
	}

	help := "? Help  esc Menu"
	if m.sidebarActive {
		help = "? Help  q Quit"
	}
	items = append(items, SidebarHelpStyle.Render(help))

	content := lipgloss.JoinVertical(lipgloss.Left, items...)

	return SidebarStyle.
		Width(m.sidebarWidth).
		Height(m.height - 2).
		Render(content)
}

// renderHelp renders the help overlay
func (m AppModel) renderHelp() string {
	key := func(k, desc string) string {
		return HelpKeyStyle.Render(k) + HelpDescStyle.Render(desc) + "\n"
	}

	helpText := HelpTitleStyle.Render("swty - typing practice") + "\n\n"

	helpText += HelpSectionStyle.Render("Global Keys") + "\n"
	helpText += key("1-3", "Switch views")
	helpText += key("tab", "Toggle sidebar focus")
	helpText += key("esc", "Sidebar, then quit")
	helpText += key("?", "Show this help")
	helpText += key("ctrl+c", "Quit")

	helpText += HelpSectionStyle.Render("Practice") + "\n"
	helpText += key("a-z space", "Type the sentence")
	helpText += key("click", "Refocus the input")
	helpText += key("ctrl+r", "Restart with new sentences")
	helpText += key("enter/r", "Retry or play again")
	helpText += key("y", "Copy result to clipboard")

	helpText += HelpSectionStyle.Render("History") + "\n"
	helpText += key("j/k ↑/↓", "Scroll rounds")
	helpText += key("r", "Reload")

	helpText += HelpSectionStyle.Render("Settings") + "\n"
	helpText += key("←/→", "Switch tabs")

	helpText += "\n" + HelpFooterStyle.Render("Press any key to close")

	helpBox := HelpBoxStyle.Render(helpText)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, helpBox)
}
