package views

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/swty/internal/history"
)

type stubStore struct {
	rounds []history.Round
	err    error
}

func (s *stubStore) Recent(ctx context.Context, limit int) ([]history.Round, error) {
	return s.rounds, s.err
}

func (s *stubStore) Summary(ctx context.Context) (history.Summary, error) {
	if s.err != nil {
		return history.Summary{}, s.err
	}
	sum := history.Summary{Rounds: len(s.rounds)}
	for _, r := range s.rounds {
		sum.BestWPM = max(sum.BestWPM, r.WPM)
		sum.TotalTime += r.Duration
	}
	return sum, nil
}

func refreshed(t *testing.T, m HistoryModel) HistoryModel {
	t.Helper()
	cmd := m.Refresh()
	if cmd == nil {
		t.Fatal("Refresh returned nil")
	}
	m, _ = m.Update(cmd())
	return m
}

func TestHistory_Disabled(t *testing.T) {
	m := NewHistoryModel(nil)
	if m.Init() != nil {
		t.Error("disabled history should not load")
	}
	if !strings.Contains(m.View(), "History is disabled") {
		t.Errorf("View:\n%s", m.View())
	}
}

func TestHistory_Empty(t *testing.T) {
	m := refreshed(t, NewHistoryModel(&stubStore{}))
	if !strings.Contains(m.View(), "No rounds yet") {
		t.Errorf("View:\n%s", m.View())
	}
}

func TestHistory_Rows(t *testing.T) {
	store := &stubStore{rounds: []history.Round{
		{
			ID:         "r1",
			FinishedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
			Sentences:  5,
			Duration:   42 * time.Second,
			WPM:        61.4,
			Accuracy:   97.25,
			Source:     "builtin",
		},
	}}
	m := refreshed(t, NewHistoryModel(store))

	view := m.View()
	for _, want := range []string{"Best WPM", "61", "42.0s", "97.2%", "builtin"} {
		if !strings.Contains(view, want) {
			t.Errorf("View missing %q:\n%s", want, view)
		}
	}
}

func TestHistory_Error(t *testing.T) {
	m := refreshed(t, NewHistoryModel(&stubStore{err: errors.New("disk gone")}))
	if !strings.Contains(m.View(), "Error: disk gone") {
		t.Errorf("View:\n%s", m.View())
	}
}

func TestHistory_ReloadKey(t *testing.T) {
	m := NewHistoryModel(&stubStore{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if cmd == nil {
		t.Error("r should reload")
	}
}

func TestHistoryRows_TruncatesSource(t *testing.T) {
	rows := historyRows([]history.Round{{Source: "https://example.com/a/very/long/sentence/endpoint"}})
	if len(rows) != 1 {
		t.Fatalf("got %d rows", len(rows))
	}
	if got := rows[0][5]; !strings.HasSuffix(got, "…") || len([]rune(got)) > 24 {
		t.Errorf("source column %q", got)
	}
}
