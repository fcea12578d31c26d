package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/swty/internal/history"
	"github.com/mattn/go-runewidth"
)

const historyLimit = 50

// RoundStore is the part of the history store the view reads.
type RoundStore interface {
	Recent(ctx context.Context, limit int) ([]history.Round, error)
	Summary(ctx context.Context) (history.Summary, error)
}

type historyLoadedMsg struct {
	rounds  []history.Round
	summary history.Summary
	err     error
}

// HistoryModel lists finished rounds.
type HistoryModel struct {
	store   RoundStore
	table   table.Model
	rounds  []history.Round
	summary history.Summary
	err     error
	loaded  bool

	width  int
	height int
}

// NewHistoryModel creates the history view. A nil store shows the view as
// disabled.
func NewHistoryModel(store RoundStore) HistoryModel {
	t := table.New(
		table.WithColumns(historyColumns()),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#3d5a80")).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color("#a8dadc"))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#ffe66d")).
		Background(lipgloss.Color("#2d3436")).
		Bold(true)
	t.SetStyles(s)

	return HistoryModel{
		store: store,
		table: t,
	}
}

func historyColumns() []table.Column {
	return []table.Column{
		{Title: "When", Width: 16},
		{Title: "Sentences", Width: 9},
		{Title: "Time", Width: 8},
		{Title: "WPM", Width: 5},
		{Title: "Accuracy", Width: 8},
		{Title: "Source", Width: 24},
	}
}

// SetSize updates the view dimensions.
func (m *HistoryModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	if height > 12 {
		m.table.SetHeight(height - 10)
	}
}

// Init loads the history.
func (m HistoryModel) Init() tea.Cmd {
	return m.Refresh()
}

// Refresh reloads rounds from the store.
func (m HistoryModel) Refresh() tea.Cmd {
	if m.store == nil {
		return nil
	}
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		rounds, err := store.Recent(ctx, historyLimit)
		if err != nil {
			return historyLoadedMsg{err: err}
		}
		summary, err := store.Summary(ctx)
		if err != nil {
			return historyLoadedMsg{err: err}
		}
		return historyLoadedMsg{rounds: rounds, summary: summary}
	}
}

// Update handles messages.
func (m HistoryModel) Update(msg tea.Msg) (HistoryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		m.loaded = true
		m.err = msg.err
		if msg.err == nil {
			m.rounds = msg.rounds
			m.summary = msg.summary
			m.table.SetRows(historyRows(msg.rounds))
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "r" {
			return m, m.Refresh()
		}
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	return m, nil
}

func historyRows(rounds []history.Round) []table.Row {
	rows := make([]table.Row, 0, len(rounds))
	for _, r := range rounds {
		rows = append(rows, table.Row{
			r.FinishedAt.Local().Format("2006-01-02 15:04"),
			fmt.Sprintf("%d", r.Sentences),
			formatElapsed(r.Duration),
			fmt.Sprintf("%.0f", r.WPM),
			fmt.Sprintf("%.1f%%", r.Accuracy),
			runewidth.Truncate(r.Source, 24, "…"),
		})
	}
	return rows
}

// View renders the history view.
func (m HistoryModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("History"))
	b.WriteString("\n\n")

	switch {
	case m.store == nil:
		b.WriteString(helpStyle.Render("History is disabled. Set history.enabled in config.yaml."))
		return b.String()
	case m.err != nil:
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("r: reload"))
		return b.String()
	case !m.loaded:
		b.WriteString(loadingStyle.Render("Loading history..."))
		return b.String()
	case len(m.rounds) == 0:
		b.WriteString(valueStyle.Render("No rounds yet. Finish a round to see it here."))
		return b.String()
	}

	b.WriteString(renderRow("Rounds", fmt.Sprintf("%d", m.summary.Rounds)))
	b.WriteString(renderRow("Best WPM", fmt.Sprintf("%.0f", m.summary.BestWPM)))
	b.WriteString(renderRow("Avg WPM", fmt.Sprintf("%.0f", m.summary.AverageWPM)))
	b.WriteString(renderRow("Accuracy", fmt.Sprintf("%.1f%%", m.summary.AvgAccuracy)))
	b.WriteString(renderRow("Total", m.summary.TotalTime.Round(time.Second).String()))
	b.WriteString("\n")
	b.WriteString(m.table.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("j/k: scroll • r: reload"))

	return b.String()
}
