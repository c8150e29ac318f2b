package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/javiermolinar/mitplan/internal/advisor"
	"github.com/javiermolinar/mitplan/internal/board"
	"github.com/javiermolinar/mitplan/internal/catalog"
	"github.com/javiermolinar/mitplan/internal/config"
	"github.com/javiermolinar/mitplan/internal/plan"
	"github.com/javiermolinar/mitplan/internal/summary"
	"github.com/javiermolinar/mitplan/internal/timefmt"
	"github.com/javiermolinar/mitplan/internal/timeline"
	"github.com/javiermolinar/mitplan/internal/tui/commands"
	"github.com/javiermolinar/mitplan/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModePick        // choosing an ability for the cursor slot
	ModePlace       // positioning a new placement
	ModeMove        // positioning an existing placement
	ModePrompt
	ModeModal
)

// ModalType identifies the type of modal.
type ModalType int

const (
	ModalNone ModalType = iota
	ModalCoverage
	ModalSuggest
	ModalConfirmQuit
	ModalOpen
	ModalHelp
)

// zoomLevels are the selectable seconds per grid column.
var zoomLevels = []int{1, 2, 5, 10}

const (
	rowHeaderWidth = 14
	defaultPlan    = "Untitled"
	statusDuration = 3 * time.Second
)

// Model is the main TUI model.
type Model struct {
	// Dependencies
	repo    plan.Repository
	catalog *catalog.Catalog
	config  *config.Config
	logger  zerolog.Logger

	styles *Styles
	keys   keyMap
	help   help.Model

	// Plan being edited
	board *board.Board
	plan  *plan.Plan
	dirty bool

	// Cursor: row is the slot index, cursor the fight second
	mode   Mode
	row    int
	cursor int
	offset int // first visible second
	zoom   int // index into zoomLevels

	// Pick, place and move
	pickItems []catalog.SlotAbility
	pickIndex int
	pending   catalog.SlotAbility
	movingID  string
	preview   board.Preview

	// Modal state
	modalType     ModalType
	coverage      *summary.Summary
	advisor       *advisor.Advisor
	suggestion    *advisor.Result
	suggestInput  string
	plans         []plan.Summary
	planIndex     int
	quitAfterSave bool
	busy          bool // an LLM request is running

	// Components
	prompt textinput.Model

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg  string
	statusTime time.Time
}

// New creates a TUI model editing p on b. p may be nil for an unsaved plan.
func New(b *board.Board, p *plan.Plan, opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load(theme.DefaultName)
	}

	ti := textinput.New()
	ti.Placeholder = "/suggest cover the raidwides"
	ti.Prompt = ""

	if p == nil {
		p = &plan.Plan{Name: defaultPlan, BossID: b.Timeline.ID, Party: b.Party.Clone()}
	}

	m := &Model{
		repo:    opts.Repo,
		catalog: b.Catalog,
		config:  cfg,
		logger:  opts.Logger.With().Str("component", "tui").Logger(),
		styles:  NewStyles(t),
		keys:    defaultKeyMap(),
		help:    help.New(),
		board:   b,
		plan:    p,
		mode:    ModeNormal,
		zoom:    0,
		prompt:  ti,
	}
	m.applyBoardSettings()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	if m.statusMsg != "" {
		return commands.ClearStatusAfter(time.Until(m.statusTime))
	}
	return nil
}

// applyBoardSettings wires config and logging into a freshly loaded board.
func (m *Model) applyBoardSettings() {
	m.board.Snapper.Threshold = m.config.Planner.SnapThreshold
	m.board.SetLogger(m.logger)
	m.row = min(m.row, len(m.catalog.Slots)-1)
	m.cursor = min(m.cursor, m.board.Timeline.Duration)
}

// slot returns the slot under the cursor.
func (m Model) slot() string {
	return m.catalog.Slots[m.row]
}

func (m Model) secondsPerCol() int {
	return zoomLevels[m.zoom]
}

// setStatus shows msg in the status line and schedules its removal.
func (m *Model) setStatus(format string, args ...any) tea.Cmd {
	m.statusMsg = fmt.Sprintf(format, args...)
	m.statusTime = time.Now().Add(statusDuration)
	return commands.ClearStatusAfter(statusDuration)
}

// loadPlan replaces the board with a saved plan.
func (m *Model) loadPlan(p *plan.Plan) (tea.Cmd, error) {
	tl, err := timeline.Resolve(p.BossID)
	if err != nil {
		return nil, err
	}
	b, skipped := board.FromPlan(m.catalog, tl, p)
	m.board = b
	m.plan = p
	m.dirty = false
	m.advisor = nil
	m.applyBoardSettings()
	for _, s := range skipped {
		m.logger.Warn().Str("plan", p.ID).Str("slot", s.Slot).Str("ability", s.AbilityID).Msg("skipped placement")
	}
	if len(skipped) > 0 {
		return m.setStatus("Opened %s, skipped %d placement(s) the party cannot make", p.Name, len(skipped)), nil
	}
	return m.setStatus("Opened %s (%d placements)", p.Name, b.Len()), nil
}

// snapshot copies the board into the plan and returns an independent copy
// safe to hand to a background save.
func (m *Model) snapshot() *plan.Plan {
	now := time.Now()
	if m.plan.ID == "" {
		m.plan.ID = plan.GeneratePlanID(m.board.Timeline.ID, m.plan.Name, now)
	}
	m.board.Save(m.plan)
	m.plan.LastModified = now

	cp := *m.plan
	cp.Party = catalog.Party(m.plan.Party).Clone()
	cp.Placements = append([]plan.Placement(nil), m.plan.Placements...)
	return &cp
}

// openBoard builds the board for opts: the saved plan when PlanID is set,
// otherwise an empty plan from the configured defaults.
func openBoard(ctx context.Context, opts Options) (*board.Board, *plan.Plan, []plan.Placement, error) {
	if opts.PlanID != "" {
		if opts.Repo == nil {
			return nil, nil, nil, fmt.Errorf("opening %s: no plan store", opts.PlanID)
		}
		p, err := opts.Repo.GetPlan(ctx, opts.PlanID)
		if err != nil {
			return nil, nil, nil, err
		}
		if p == nil {
			return nil, nil, nil, fmt.Errorf("%w: %s", plan.ErrPlanNotFound, opts.PlanID)
		}
		tl, err := timeline.Resolve(p.BossID)
		if err != nil {
			return nil, nil, nil, err
		}
		b, skipped := board.FromPlan(opts.Catalog, tl, p)
		return b, p, skipped, nil
	}

	cfg := opts.Config
	tl, err := timeline.Resolve(cfg.Planner.DefaultTimeline)
	if err != nil {
		return nil, nil, nil, err
	}
	party := catalog.Party(cfg.Planner.Party)
	if err := party.Validate(opts.Catalog); err != nil {
		return nil, nil, nil, fmt.Errorf("party: %w", err)
	}
	return board.New(opts.Catalog, tl, party), nil, nil, nil
}

// describe formats a placement for status messages.
func describe(a catalog.SlotAbility, start int) string {
	return fmt.Sprintf("%s at %s", a.Name, timefmt.Format(start))
}
