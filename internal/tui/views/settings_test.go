package views

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/swty/internal/config"
)

func TestSettings_Tabs(t *testing.T) {
	cfg := config.Default()
	cfg.Source.URL = "http://localhost:8080/sentences"
	cfg.Game.Limit = 5
	dir := t.TempDir()

	m := NewSettingsModel(cfg, dir)

	view := m.View()
	for _, want := range []string{filepath.Join(dir, config.FileName), "http://localhost:8080/sentences", "HTTP endpoint"} {
		if !strings.Contains(view, want) {
			t.Errorf("source tab missing %q:\n%s", want, view)
		}
	}

	right := tea.KeyMsg{Type: tea.KeyRight}
	m, _ = m.Update(right)
	view = m.View()
	for _, want := range []string{"Shuffle", "true", "150ms"} {
		if !strings.Contains(view, want) {
			t.Errorf("game tab missing %q:\n%s", want, view)
		}
	}

	m, _ = m.Update(right)
	if !strings.Contains(m.View(), filepath.Join(dir, "history.db")) {
		t.Errorf("history tab missing database path:\n%s", m.View())
	}

	// Wraps back to the first tab
	m, _ = m.Update(right)
	if m.tab != 0 {
		t.Errorf("tab %d, want 0", m.tab)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.tab != 2 {
		t.Errorf("tab %d, want 2", m.tab)
	}
}

func TestSettings_NilConfig(t *testing.T) {
	m := NewSettingsModel(nil, "")
	if !strings.Contains(m.View(), "built-in sentences") {
		t.Errorf("View:\n%s", m.View())
	}
}
