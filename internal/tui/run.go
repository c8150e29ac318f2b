package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/javiermolinar/mitplan/internal/catalog"
	"github.com/javiermolinar/mitplan/internal/config"
	"github.com/javiermolinar/mitplan/internal/plan"
)

// Options configures the TUI.
type Options struct {
	Repo    plan.Repository
	Catalog *catalog.Catalog
	Config  *config.Config
	PlanID  string // plan to open; empty starts a new one
	Logger  zerolog.Logger
}

// Run starts the TUI and blocks until the user quits.
func Run(opts Options) error {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Catalog == nil {
		c, err := catalog.Load()
		if err != nil {
			return err
		}
		opts.Catalog = c
	}

	b, p, skipped, err := openBoard(context.Background(), opts)
	if err != nil {
		return err
	}

	m := New(b, p, opts)
	if len(skipped) > 0 {
		m.setStatus("Skipped %d placement(s) the party cannot make", len(skipped))
	}
	m.logger.Info().Str("timeline", b.Timeline.ID).Int("placements", b.Len()).Msg("starting")

	prog := tea.NewProgram(*m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = prog.Run()
	return err
}
