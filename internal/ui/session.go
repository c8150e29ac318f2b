package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/javiermolinar/mitplan/internal/board"
	"github.com/javiermolinar/mitplan/internal/catalog"
	"github.com/javiermolinar/mitplan/internal/plan"
	"github.com/javiermolinar/mitplan/internal/timefmt"
	"github.com/javiermolinar/mitplan/internal/timeline"
)

// newPlanID is the --plan value that creates a plan instead of loading one.
const newPlanID = "new"

var errPlanRequired = errors.New("--plan is required")

// session is a board loaded for one command, with the plan it saves into.
type session struct {
	board *board.Board
	plan  *plan.Plan
}

// scratchBoard builds an unsaved board from config defaults. boss and party
// override the configured timeline and party when set.
func (a *App) scratchBoard(boss, party string) (*board.Board, error) {
	if boss == "" {
		boss = a.config.Planner.DefaultTimeline
	}
	tl, err := timeline.Resolve(boss)
	if err != nil {
		return nil, err
	}

	p := catalog.Party(a.config.Planner.Party).Clone()
	if party != "" {
		override, err := catalog.ParseParty(party)
		if err != nil {
			return nil, err
		}
		for slot, job := range override {
			p[slot] = job
		}
	}
	if err := p.Validate(a.catalog); err != nil {
		return nil, fmt.Errorf("party: %w", err)
	}

	b := board.New(a.catalog, tl, p)
	b.Snapper.Threshold = a.config.Planner.SnapThreshold
	b.SetLogger(a.logger)
	return b, nil
}

// openSession loads a saved plan into a board. Placements the party can no
// longer make are reported on errOut and dropped.
func (a *App) openSession(ctx context.Context, planID string, errOut io.Writer) (*session, error) {
	if planID == "" {
		return nil, errPlanRequired
	}
	if err := a.ensureRepo(); err != nil {
		return nil, err
	}

	p, err := a.repo.GetPlan(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("fetching plan: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %s", plan.ErrPlanNotFound, planID)
	}

	tl, err := timeline.Resolve(p.BossID)
	if err != nil {
		return nil, fmt.Errorf("loading timeline: %w", err)
	}

	b, skipped := board.FromPlan(a.catalog, tl, p)
	b.Snapper.Threshold = a.config.Planner.SnapThreshold
	b.SetLogger(a.logger)
	for _, s := range skipped {
		a.logger.Warn().Str("plan", p.ID).Str("slot", s.Slot).Str("ability", s.AbilityID).Msg("dropping placement")
		fmt.Fprintf(errOut, "warning: dropped %s %s at %s (no longer valid for this party)\n",
			s.Slot, s.AbilityID, timefmt.Format(s.Start))
	}

	return &session{board: b, plan: p}, nil
}

// createSession starts a new plan on a scratch board.
func (a *App) createSession(name, boss, party string) (*session, error) {
	if err := a.ensureRepo(); err != nil {
		return nil, err
	}
	b, err := a.scratchBoard(boss, party)
	if err != nil {
		return nil, err
	}
	p, err := plan.New(name, b.Timeline.ID, b.Party, time.Now())
	if err != nil {
		return nil, err
	}
	return &session{board: b, plan: p}, nil
}

// save writes the board back into its plan.
func (a *App) save(ctx context.Context, s *session) error {
	s.board.Save(s.plan)
	if err := a.repo.SavePlan(ctx, s.plan); err != nil {
		return fmt.Errorf("saving plan: %w", err)
	}
	a.logger.Debug().Str("plan", s.plan.ID).Int("placements", len(s.plan.Placements)).Msg("saved plan")
	return nil
}

// boardFor returns the board of a saved plan, or a scratch board when no
// plan is named.
func (a *App) boardFor(ctx context.Context, planID, boss, party string, errOut io.Writer) (*board.Board, error) {
	if planID == "" {
		return a.scratchBoard(boss, party)
	}
	s, err := a.openSession(ctx, planID, errOut)
	if err != nil {
		return nil, err
	}
	return s.board, nil
}
