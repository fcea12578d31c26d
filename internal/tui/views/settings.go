package views

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/swty/internal/config"
)

// Settings view styles
var (
	settingsTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FF6B6B")).
				MarginBottom(1)

	settingsPathStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Italic(true).
				MarginBottom(1)

	settingsTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#888888")).
				Padding(0, 2)

	settingsTabActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#ffe66d")).
				Background(lipgloss.Color("#2d3436")).
				Padding(0, 2)

	settingsHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#a8dadc"))

	settingsMutedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666"))

	settingsHelpStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				MarginTop(1)
)

var settingsTabs = []string{"Source", "Game", "History"}

// SettingsModel shows the active configuration.
type SettingsModel struct {
	config    *config.Config
	configDir string

	// Tabs: 0=Source, 1=Game, 2=History
	tab int

	width  int
	height int
}

// NewSettingsModel creates a new settings model.
func NewSettingsModel(cfg *config.Config, configDir string) SettingsModel {
	if cfg == nil {
		cfg = config.Default()
	}
	return SettingsModel{
		config:    cfg,
		configDir: configDir,
	}
}

// SetSize updates the view dimensions.
func (m *SettingsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages.
func (m SettingsModel) Update(msg tea.Msg) (SettingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "right", "l":
			m.tab = (m.tab + 1) % len(settingsTabs)
		case "shift+tab", "left", "h":
			m.tab--
			if m.tab < 0 {
				m.tab = len(settingsTabs) - 1
			}
		}
	}
	return m, nil
}

// View renders the settings view.
func (m SettingsModel) View() string {
	var b strings.Builder

	b.WriteString(settingsTitleStyle.Render("swty Configuration"))
	b.WriteString("\n")

	path := config.FileName
	if m.configDir != "" {
		path = filepath.Join(m.configDir, config.FileName)
	}
	b.WriteString(settingsPathStyle.Render("Config: " + path))
	b.WriteString("\n\n")

	var tabViews []string
	for i, t := range settingsTabs {
		style := settingsTabStyle
		if i == m.tab {
			style = settingsTabActiveStyle
		}
		tabViews = append(tabViews, style.Render(t))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabViews...))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#3d5a80")).Render(strings.Repeat("─", dividerWidth(m.width))))
	b.WriteString("\n\n")

	switch m.tab {
	case 0:
		b.WriteString(m.renderSource())
	case 1:
		b.WriteString(m.renderGame())
	case 2:
		b.WriteString(m.renderHistory())
	}

	b.WriteString("\n")
	b.WriteString(settingsHelpStyle.Render("←→/h/l: switch tabs • edit config.yaml to change"))

	return b.String()
}

func (m SettingsModel) renderSource() string {
	var b strings.Builder
	src := m.config.Source

	b.WriteString(settingsHeaderStyle.Render("Sentence source"))
	b.WriteString("\n\n")
	b.WriteString(renderRow("URL", orNone(src.URL)))
	b.WriteString(renderRow("File", orNone(src.File)))
	b.WriteString(renderRow("Timeout", src.Timeout.String()))
	b.WriteString("\n")

	var active string
	switch {
	case src.URL != "":
		active = "HTTP endpoint"
	case src.File != "":
		active = "local file"
	default:
		active = "built-in sentences"
	}
	b.WriteString(settingsMutedStyle.Render("Using " + active))
	b.WriteString("\n")

	return b.String()
}

func (m SettingsModel) renderGame() string {
	var b strings.Builder
	g := m.config.Game

	limit := "all"
	if g.Limit > 0 {
		limit = fmt.Sprintf("%d", g.Limit)
	}

	b.WriteString(settingsHeaderStyle.Render("Round"))
	b.WriteString("\n\n")
	b.WriteString(renderRow("Shuffle", fmt.Sprintf("%t", g.Shuffle)))
	b.WriteString(renderRow("Limit", limit))
	b.WriteString(renderRow("Advance", g.AdvanceDelay.Round(time.Millisecond).String()))

	return b.String()
}

func (m SettingsModel) renderHistory() string {
	var b strings.Builder
	h := m.config.History

	b.WriteString(settingsHeaderStyle.Render("Round history"))
	b.WriteString("\n\n")
	b.WriteString(renderRow("Enabled", fmt.Sprintf("%t", h.Enabled)))
	if h.Enabled {
		b.WriteString(renderRow("Database", m.config.HistoryPath(m.configDir)))
	} else {
		b.WriteString(settingsMutedStyle.Render("Rounds are not recorded"))
		b.WriteString("\n")
	}

	return b.String()
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func dividerWidth(width int) int {
	if width <= 4 {
		return 60
	}
	return min(width-4, 60)
}
