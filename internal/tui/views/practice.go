package views

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/swty/internal/clipboard"
	"github.com/f3rmion/swty/internal/game"
	"github.com/f3rmion/swty/internal/source"
	"github.com/f3rmion/swty/internal/tui/banner"
	"github.com/rs/zerolog"
)

// Styles shared by the views
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			Background(lipgloss.Color("#1a1a2e")).
			Padding(0, 1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ecdc4"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a8dadc")).
			Bold(true).
			Width(12)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f1faee"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff6b6b")).
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3d5a80")).
			Padding(1, 2)

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffe66d")).
			Bold(true).
			Italic(true)

	copiedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a8e6cf")).
			Bold(true)
)

// Practice view styles
var (
	counterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ecdc4")).
			Bold(true)

	timerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffe66d"))

	charPendingStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666"))

	charCorrectStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#a8e6cf"))

	charIncorrectStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#ff6b6b")).
				Underline(true)

	charCursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1a1a2e")).
			Background(lipgloss.Color("#ffe66d"))

	sentenceBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#ffe66d")).
				Padding(1, 2).
				Margin(1, 0)

	doneTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#a8e6cf"))

	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffe66d")).
			Margin(1, 0)
)

const elapsedTick = 100 * time.Millisecond

// Message types for the practice view
type sentencesMsg struct {
	generation int
	sentences  []string
	err        error
}

type advanceMsg struct {
	generation int
}

type elapsedTickMsg struct {
	generation int
}

type practiceClearCopiedMsg struct{}

// RoundFinishedMsg is sent once when the last sentence of a round is typed.
type RoundFinishedMsg struct {
	Stats      game.Stats
	StartedAt  time.Time
	FinishedAt time.Time
	Source     string
}

// PracticeConfig configures a PracticeModel.
type PracticeConfig struct {
	Source       source.Source
	Logger       zerolog.Logger
	AdvanceDelay time.Duration // Pause between a completed sentence and the next
	FetchTimeout time.Duration
	Session      []game.Option
}

// PracticeModel is the typing game view.
type PracticeModel struct {
	source  source.Source
	session *game.Session
	logger  zerolog.Logger

	input   textinput.Model
	spinner spinner.Model

	advanceDelay time.Duration
	fetchTimeout time.Duration

	// Clicks refocus the input only while the view is focused
	focused bool
	canCopy bool
	copied  bool
	copyErr error

	width  int
	height int
}

// NewPracticeModel creates the practice view. Call Init to start loading.
func NewPracticeModel(cfg PracticeConfig) PracticeModel {
	ti := textinput.New()
	ti.Placeholder = "Start typing..."
	ti.Prompt = "› "
	ti.Width = 60
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ecdc4"))
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f1faee"))

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = loadingStyle

	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 15 * time.Second
	}
	if cfg.Source == nil {
		cfg.Source = source.Embedded{}
	}

	return PracticeModel{
		source:       cfg.Source,
		session:      game.NewSession(cfg.Session...),
		logger:       cfg.Logger,
		input:        ti,
		spinner:      sp,
		advanceDelay: cfg.AdvanceDelay,
		fetchTimeout: cfg.FetchTimeout,
		focused:      true,
		canCopy:      clipboard.Available(),
	}
}

// SetSize updates the view dimensions.
func (m *PracticeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	if width > 10 {
		m.input.Width = width - 6
	}
}

// Focus enables click-to-focus and focuses the input.
func (m *PracticeModel) Focus() tea.Cmd {
	m.focused = true
	return m.input.Focus()
}

// Blur disables click-to-focus and releases the input.
func (m *PracticeModel) Blur() {
	m.focused = false
	m.input.Blur()
}

// Focused reports whether the view reacts to clicks.
func (m PracticeModel) Focused() bool {
	return m.focused
}

// Session exposes the round state.
func (m PracticeModel) Session() *game.Session {
	return m.session
}

// Init starts the first fetch.
func (m PracticeModel) Init() tea.Cmd {
	gen := m.session.BeginLoad()
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.fetch(gen))
}

// Update handles messages.
func (m PracticeModel) Update(msg tea.Msg) (PracticeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case sentencesMsg:
		return m.handleSentences(msg)

	case advanceMsg:
		if msg.generation != m.session.Generation() {
			return m, nil
		}
		if m.session.Advance() && m.session.Status() != game.StatusFinished {
			m.resetInput()
		}
		return m, nil

	case elapsedTickMsg:
		// Re-render while the clock runs
		if msg.generation != m.session.Generation() || !m.session.Running() {
			return m, nil
		}
		return m, m.tick(msg.generation)

	case spinner.TickMsg:
		if m.session.Status() != game.StatusLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case practiceClearCopiedMsg:
		m.copied = false
		return m, nil

	case tea.MouseMsg:
		if m.focused && msg.Action == tea.MouseActionPress {
			return m, m.input.Focus()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m PracticeModel) handleSentences(msg sentencesMsg) (PracticeModel, tea.Cmd) {
	if msg.generation != m.session.Generation() {
		m.logger.Debug().Int("generation", msg.generation).Msg("dropping stale sentence load")
		return m, nil
	}

	if msg.err != nil {
		m.session.Fail(msg.err)
		m.logger.Warn().Err(msg.err).Str("source", m.source.Describe()).Msg("loading sentences failed")
		return m, nil
	}

	m.session.Load(msg.sentences)
	m.resetInput()
	m.logger.Info().
		Str("source", m.source.Describe()).
		Int("fetched", len(msg.sentences)).
		Int("sentences", m.session.Len()).
		Msg("round ready")
	return m, textinput.Blink
}

func (m PracticeModel) handleKey(msg tea.KeyMsg) (PracticeModel, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+r" && m.session.Status() != game.StatusLoading {
		return m.restart()
	}

	switch m.session.Status() {
	case game.StatusError:
		if key == "enter" || key == "r" {
			return m.retry()
		}

	case game.StatusFinished:
		switch key {
		case "enter", "r":
			return m.restart()
		case "y":
			if m.canCopy {
				return m.copyResult()
			}
		}

	case game.StatusReady, game.StatusTyping:
		if m.session.Len() == 0 {
			if key == "enter" || key == "r" {
				return m.restart()
			}
			return m, nil
		}
		return m.handleTyping(msg)
	}

	return m, nil
}

func (m PracticeModel) handleTyping(msg tea.KeyMsg) (PracticeModel, tea.Cmd) {
	wasRunning := m.session.Running()
	gen := m.session.Generation()

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds := []tea.Cmd{cmd}

	switch m.session.Type(m.input.Value()) {
	case game.EventSentenceComplete:
		cmds = append(cmds, m.advanceAfter(gen))
	case game.EventRoundFinished:
		cmds = append(cmds, m.advanceAfter(gen), m.roundFinished())
	}

	if !wasRunning && m.session.Running() {
		cmds = append(cmds, m.tick(gen))
	}

	return m, tea.Batch(cmds...)
}

func (m PracticeModel) retry() (PracticeModel, tea.Cmd) {
	gen := m.session.BeginLoad()
	m.logger.Debug().Int("generation", gen).Msg("retrying sentence load")
	return m, tea.Batch(m.spinner.Tick, m.fetch(gen))
}

func (m PracticeModel) restart() (PracticeModel, tea.Cmd) {
	gen := m.session.Restart()
	m.resetInput()
	m.copied = false
	m.copyErr = nil
	m.logger.Debug().Int("generation", gen).Msg("restarting round")
	return m, tea.Batch(m.spinner.Tick, m.fetch(gen))
}

func (m PracticeModel) copyResult() (PracticeModel, tea.Cmd) {
	if err := clipboard.Write(m.resultSummary()); err != nil {
		m.copyErr = err
		return m, nil
	}
	m.copied = true
	m.copyErr = nil
	return m, tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return practiceClearCopiedMsg{}
	})
}

// resetInput clears the buffer and limits it to the current sentence.
func (m *PracticeModel) resetInput() {
	m.input.Reset()
	m.input.CharLimit = utf8.RuneCountInString(m.session.Current())
	if m.focused {
		m.input.Focus()
	}
}

func (m PracticeModel) fetch(gen int) tea.Cmd {
	src := m.source
	timeout := m.fetchTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		sentences, err := src.Fetch(ctx)
		return sentencesMsg{generation: gen, sentences: sentences, err: err}
	}
}

func (m PracticeModel) advanceAfter(gen int) tea.Cmd {
	return tea.Tick(m.advanceDelay, func(time.Time) tea.Msg {
		return advanceMsg{generation: gen}
	})
}

func (m PracticeModel) tick(gen int) tea.Cmd {
	return tea.Tick(elapsedTick, func(time.Time) tea.Msg {
		return elapsedTickMsg{generation: gen}
	})
}

func (m PracticeModel) roundFinished() tea.Cmd {
	msg := RoundFinishedMsg{
		Stats:      m.session.Stats(),
		StartedAt:  m.session.StartedAt(),
		FinishedAt: m.session.FinishedAt(),
		Source:     m.source.Describe(),
	}
	return func() tea.Msg {
		return msg
	}
}

func (m PracticeModel) resultSummary() string {
	st := m.session.Stats()
	return fmt.Sprintf("swty: %d sentences in %s, %.0f WPM, %.1f%% accuracy",
		st.Sentences, formatElapsed(st.Elapsed), st.WPM, st.Accuracy)
}

// View renders the practice view.
func (m PracticeModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("swty"))
	b.WriteString("  ")
	b.WriteString(subtitleStyle.Render("Typing Practice"))
	b.WriteString("\n\n")

	switch m.session.Status() {
	case game.StatusLoading:
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(loadingStyle.Render("Loading sentences..."))
		b.WriteString("\n")

	case game.StatusError:
		b.WriteString(errorStyle.Render("Error: " + m.session.Err().Error()))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter/r: retry"))

	case game.StatusFinished:
		b.WriteString(m.renderFinished())

	default:
		if m.session.Len() == 0 {
			b.WriteString(valueStyle.Render("No sentences found."))
			b.WriteString("\n\n")
			b.WriteString(helpStyle.Render("r: reload"))
			break
		}
		b.WriteString(m.renderRound())
	}

	return b.String()
}

func (m PracticeModel) renderRound() string {
	var b strings.Builder

	current, total := m.session.Progress()
	b.WriteString(counterStyle.Render(fmt.Sprintf("%d / %d", current, total)))
	b.WriteString("   ")
	b.WriteString(timerStyle.Render(formatElapsed(m.session.Elapsed())))
	b.WriteString("\n")

	width := 60
	if m.width > 0 {
		width = m.width - 8
	}
	sentence := renderSentence(m.session.Input(), m.session.Current(), width)
	b.WriteString(sentenceBoxStyle.Render(sentence))
	b.WriteString("\n")

	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("type the sentence • ctrl+r: restart • tab: menu"))

	return b.String()
}

func (m PracticeModel) renderFinished() string {
	var b strings.Builder
	st := m.session.Stats()

	b.WriteString(doneTitleStyle.Render("Well Done!"))
	b.WriteString("\n")

	if art := banner.Render(formatElapsed(st.Elapsed)); art != "" {
		b.WriteString(bannerStyle.Render(art))
		b.WriteString("\n")
	}

	b.WriteString(renderRow("Sentences", fmt.Sprintf("%d", st.Sentences)))
	b.WriteString(renderRow("Time", formatElapsed(st.Elapsed)))
	b.WriteString(renderRow("WPM", fmt.Sprintf("%.0f", st.WPM)))
	b.WriteString(renderRow("Accuracy", fmt.Sprintf("%.1f%%", st.Accuracy)))

	b.WriteString("\n")
	switch {
	case m.copied:
		b.WriteString(copiedStyle.Render("Copied!"))
		b.WriteString("\n")
	case m.copyErr != nil:
		b.WriteString(errorStyle.Render("Copy failed: " + m.copyErr.Error()))
		b.WriteString("\n")
	}
	help := "enter/r: play again"
	if m.canCopy {
		help += " • y: copy result"
	}
	b.WriteString(helpStyle.Render(help))

	return b.String()
}

// renderRow renders a label-value row.
func renderRow(label, value string) string {
	return labelStyle.Render(label+":") + " " + valueStyle.Render(value) + "\n"
}

// formatElapsed renders d as seconds with one decimal.
func formatElapsed(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}
