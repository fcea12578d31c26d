package views

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/swty/internal/game"
	"github.com/rs/zerolog"
)

type stubSource struct {
	sentences []string
	err       error
}

func (s stubSource) Fetch(ctx context.Context) ([]string, error) {
	return s.sentences, s.err
}

func (s stubSource) Describe() string { return "stub" }

type testClock struct {
	t time.Time
}

func (c *testClock) Now() time.Time { return c.t }

func newTestPractice(src stubSource) (PracticeModel, *testClock) {
	clock := &testClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	m := NewPracticeModel(PracticeConfig{
		Source:       src,
		Logger:       zerolog.Nop(),
		AdvanceDelay: time.Millisecond,
		Session:      []game.Option{game.WithClock(clock.Now)},
	})
	m.Init()
	return m, clock
}

// loaded delivers the stub's result for the current generation.
func loaded(t *testing.T, m PracticeModel, src stubSource) PracticeModel {
	t.Helper()
	m, _ = m.Update(sentencesMsg{
		generation: m.session.Generation(),
		sentences:  src.sentences,
		err:        src.err,
	})
	return m
}

func typeText(m PracticeModel, s string) (PracticeModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, r := range s {
		m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m, cmd
}

func pressKey(m PracticeModel, key string) (PracticeModel, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
}

func TestPractice_LoadingView(t *testing.T) {
	m, _ := newTestPractice(stubSource{})
	if m.session.Status() != game.StatusLoading {
		t.Fatalf("Status %v, want loading", m.session.Status())
	}
	if !strings.Contains(m.View(), "Loading sentences...") {
		t.Errorf("View missing loading text:\n%s", m.View())
	}
}

func TestPractice_Ready(t *testing.T) {
	src := stubSource{sentences: []string{"ab", "cd"}}
	m, _ := newTestPractice(src)
	m = loaded(t, m, src)

	if m.session.Status() != game.StatusReady {
		t.Fatalf("Status %v, want ready", m.session.Status())
	}
	if m.input.CharLimit != 2 {
		t.Errorf("CharLimit %d, want 2", m.input.CharLimit)
	}
	if !m.input.Focused() {
		t.Error("input should be focused once sentences load")
	}

	view := m.View()
	for _, want := range []string{"1 / 2", "0.0s", "ab"} {
		if !strings.Contains(view, want) {
			t.Errorf("View missing %q:\n%s", want, view)
		}
	}
}

func TestPractice_ErrorAndRetry(t *testing.T) {
	src := stubSource{err: errors.New("boom")}
	m, _ := newTestPractice(src)
	failedGen := m.session.Generation()
	m = loaded(t, m, src)

	if m.session.Status() != game.StatusError {
		t.Fatalf("Status %v, want error", m.session.Status())
	}
	if !strings.Contains(m.View(), "Error: boom") {
		t.Errorf("View missing error:\n%s", m.View())
	}

	m, cmd := pressKey(m, "r")
	if cmd == nil {
		t.Fatal("retry should return a fetch command")
	}
	if m.session.Status() != game.StatusLoading {
		t.Fatalf("Status %v, want loading", m.session.Status())
	}

	// The failed request's generation is stale now
	m, _ = m.Update(sentencesMsg{generation: failedGen, sentences: []string{"late"}})
	if m.session.Status() != game.StatusLoading {
		t.Fatalf("stale load applied, Status %v", m.session.Status())
	}

	m = loaded(t, m, stubSource{sentences: []string{"ok"}})
	if m.session.Current() != "ok" {
		t.Errorf("Current %q, want ok", m.session.Current())
	}
}

func TestPractice_NoSentences(t *testing.T) {
	src := stubSource{sentences: []string{}}
	m, _ := newTestPractice(src)
	m = loaded(t, m, src)

	if !strings.Contains(m.View(), "No sentences found.") {
		t.Errorf("View missing empty message:\n%s", m.View())
	}

	m, cmd := pressKey(m, "r")
	if cmd == nil || m.session.Status() != game.StatusLoading {
		t.Errorf("r should reload, Status %v", m.session.Status())
	}
}

func TestPractice_FullRound(t *testing.T) {
	src := stubSource{sentences: []string{"ab", "cd"}}
	m, clock := newTestPractice(src)
	m = loaded(t, m, src)
	gen := m.session.Generation()

	m, _ = typeText(m, "a")
	if m.session.Status() != game.StatusTyping {
		t.Fatalf("Status %v, want typing", m.session.Status())
	}
	clock.t = clock.t.Add(2 * time.Second)

	m, cmd := typeText(m, "b")
	if m.session.Status() != game.StatusComplete {
		t.Fatalf("Status %v, want complete", m.session.Status())
	}
	if cmd == nil {
		t.Fatal("completion should schedule the advance")
	}

	m, _ = m.Update(advanceMsg{generation: gen})
	if cur, _ := m.session.Progress(); cur != 2 {
		t.Fatalf("Progress %d, want 2", cur)
	}
	if m.input.Value() != "" {
		t.Errorf("input %q not cleared on advance", m.input.Value())
	}

	m, _ = typeText(m, "cd")
	clock.t = clock.t.Add(time.Second)
	if m.session.Status() != game.StatusComplete {
		t.Fatalf("Status %v, want complete", m.session.Status())
	}
	if got := m.session.Elapsed(); got != 2*time.Second {
		t.Errorf("Elapsed %v, want frozen at 2s", got)
	}

	msg := m.roundFinished()().(RoundFinishedMsg)
	if msg.Stats.Sentences != 2 || msg.Source != "stub" {
		t.Errorf("RoundFinishedMsg %+v", msg)
	}

	m, _ = m.Update(advanceMsg{generation: gen})
	if m.session.Status() != game.StatusFinished {
		t.Fatalf("Status %v, want finished", m.session.Status())
	}
	view := m.View()
	if !strings.Contains(view, "Well Done!") || !strings.Contains(view, "2.0s") {
		t.Errorf("finished view:\n%s", view)
	}

	m, cmd = pressKey(m, "r")
	if cmd == nil {
		t.Fatal("restart should refetch")
	}
	if m.session.Status() != game.StatusLoading || m.session.Elapsed() != 0 {
		t.Errorf("after restart Status %v Elapsed %v", m.session.Status(), m.session.Elapsed())
	}
}

func TestPractice_StaleAdvanceAfterRestart(t *testing.T) {
	src := stubSource{sentences: []string{"ab", "cd"}}
	m, _ := newTestPractice(src)
	m = loaded(t, m, src)
	oldGen := m.session.Generation()

	m, _ = typeText(m, "ab")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	m = loaded(t, m, src)

	m, _ = m.Update(advanceMsg{generation: oldGen})
	if cur, _ := m.session.Progress(); cur != 1 {
		t.Errorf("stale advance moved to %d", cur)
	}
}

func TestPractice_ElapsedTickStopsWhenIdle(t *testing.T) {
	src := stubSource{sentences: []string{"ab"}}
	m, _ := newTestPractice(src)
	m = loaded(t, m, src)
	gen := m.session.Generation()

	if _, cmd := m.Update(elapsedTickMsg{generation: gen}); cmd != nil {
		t.Error("tick before the first keystroke should stop")
	}

	m, _ = typeText(m, "a")
	if _, cmd := m.Update(elapsedTickMsg{generation: gen}); cmd == nil {
		t.Error("tick should continue while the timer runs")
	}
	if _, cmd := m.Update(elapsedTickMsg{generation: gen - 1}); cmd != nil {
		t.Error("stale tick should stop")
	}
}

func TestPractice_ClickRefocus(t *testing.T) {
	src := stubSource{sentences: []string{"ab"}}
	m, _ := newTestPractice(src)
	m = loaded(t, m, src)
	click := tea.MouseMsg{X: 3, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}

	m.input.Blur()
	m, _ = m.Update(click)
	if !m.input.Focused() {
		t.Error("click should refocus the input")
	}

	m.Blur()
	m, _ = m.Update(click)
	if m.input.Focused() {
		t.Error("click must be ignored after Blur")
	}

	m.Focus()
	if !m.input.Focused() || !m.Focused() {
		t.Error("Focus should restore the input")
	}
}

func TestPractice_IgnoresTypingWhileLoading(t *testing.T) {
	m, _ := newTestPractice(stubSource{})
	m, _ = typeText(m, "abc")
	if m.session.Input() != "" {
		t.Errorf("Input %q, want empty while loading", m.session.Input())
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0.0s"},
		{1500 * time.Millisecond, "1.5s"},
		{61 * time.Second, "61.0s"},
	}
	for _, tt := range tests {
		if got := formatElapsed(tt.d); got != tt.want {
			t.Errorf("formatElapsed(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
