package ui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/mitplan/internal/catalog"
	"github.com/javiermolinar/mitplan/internal/config"
	"github.com/javiermolinar/mitplan/internal/db"
	"github.com/javiermolinar/mitplan/internal/logging"
	"github.com/javiermolinar/mitplan/internal/plan"
	"github.com/javiermolinar/mitplan/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo    plan.Repository
	catalog *catalog.Catalog
	config  *config.Config
	root    *cobra.Command
	logger  zerolog.Logger
	logFile io.Closer
	debug   bool // Enable debug logging
	noColor bool
}

// NewApp creates a new CLI application. A nil repo is opened lazily from
// the configured database path on first use.
func NewApp(repo plan.Repository, c *catalog.Catalog, cfg *config.Config) *App {
	a := &App{repo: repo, catalog: c, config: cfg, logger: zerolog.Nop()}

	a.root = &cobra.Command{
		Use:   "mitplan",
		Short: "Plan raid mitigation cooldowns against a boss timeline",
		Long: `Mitplan places party mitigation abilities on a boss timeline and
refuses placements that would use an ability while it is on cooldown.

Run without arguments to open the interactive board.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setupLogging(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			planID, _ := cmd.Flags().GetString("plan")
			return tui.Run(tui.Options{
				Repo:    a.repo,
				Catalog: a.catalog,
				Config:  a.config,
				PlanID:  planID,
				Logger:  a.logger,
			})
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (TUI writes "+logging.DebugFile+")")
	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable color output")
	a.root.Flags().String("plan", "", "Open a saved plan in the board")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.jobsCmd())
	a.root.AddCommand(a.timelinesCmd())
	a.root.AddCommand(a.zonesCmd())
	a.root.AddCommand(a.checkCmd())
	a.root.AddCommand(a.placeCmd())
	a.root.AddCommand(a.moveCmd())
	a.root.AddCommand(a.removeCmd())
	a.root.AddCommand(a.clearCmd())
	a.root.AddCommand(a.lanesCmd())
	a.root.AddCommand(a.coverageCmd())
	a.root.AddCommand(a.plansCmd())
	a.root.AddCommand(a.suggestCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "mitplan %s (commit: %s)\n", Version, Commit)
		},
	}
}

// setupLogging routes logs to stderr for subcommands. The board owns the
// terminal, so it only logs to a file.
func (a *App) setupLogging(cmd *cobra.Command) error {
	if a.noColor {
		DisableColor()
	}

	opts := logging.Options{
		Level:   a.config.Log.Level,
		File:    a.config.Log.File,
		Console: cmd.ErrOrStderr(),
	}
	if a.debug {
		opts.Level = "debug"
	}
	if cmd == a.root {
		opts.Console = nil
		if a.debug && opts.File == "" {
			opts.File = logging.DebugFile
		}
	}

	logger, closer, err := logging.Setup(opts)
	if err != nil {
		return err
	}
	a.logger = logger
	a.logFile = closer
	return nil
}

// ensureRepo opens the configured database unless a repository was injected.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	path := a.config.Storage.DBPath
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}
	repo, err := db.New(path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.repo = repo
	return nil
}

// SetArgs overrides the command line, mainly for tests.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

// SetOutput redirects command output and errors.
func (a *App) SetOutput(out, errOut io.Writer) {
	a.root.SetOut(out)
	a.root.SetErr(errOut)
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the repository and log file.
func (a *App) Close() error {
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
	if a.repo != nil {
		return a.repo.Close()
	}
	return nil
}
