package tui

import (
	"fmt"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/swty/internal/config"
	"github.com/f3rmion/swty/internal/game"
	"github.com/f3rmion/swty/internal/history"
	"github.com/f3rmion/swty/internal/source"
	"github.com/f3rmion/swty/internal/tui/views"
	"github.com/rs/zerolog"
)

// Options configures Run.
type Options struct {
	Source    source.Source
	Config    *config.Config
	ConfigDir string
	Store     *history.Store // nil when history is disabled
	Logger    zerolog.Logger
}

// NewAppFromOptions builds the app model from runtime options.
func NewAppFromOptions(opts Options) AppModel {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	var sessionOpts []game.Option
	if cfg.Game.Shuffle {
		sessionOpts = append(sessionOpts, game.WithShuffle(rand.New(rand.NewSource(time.Now().UnixNano()))))
	}
	if cfg.Game.Limit > 0 {
		sessionOpts = append(sessionOpts, game.WithLimit(cfg.Game.Limit))
	}

	// A nil *history.Store must stay a nil interface
	var store Store
	if opts.Store != nil {
		store = opts.Store
	}

	return NewApp(AppConfig{
		Source:    opts.Source,
		Config:    cfg,
		ConfigDir: opts.ConfigDir,
		Store:     store,
		Logger:    opts.Logger,
		Practice: views.PracticeConfig{
			AdvanceDelay: cfg.Game.AdvanceDelay,
			FetchTimeout: cfg.Source.Timeout + 5*time.Second,
			Session:      sessionOpts,
		},
	})
}

// Run starts the TUI and blocks until the user quits.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewAppFromOptions(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
