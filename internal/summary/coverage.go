// Package summary builds plan coverage reports shared by the CLI and TUI.
package summary

import (
	"context"
	"errors"
	"fmt"

	"github.com/javiermolinar/mitplan/internal/board"
	"github.com/javiermolinar/mitplan/internal/catalog"
	"github.com/javiermolinar/mitplan/internal/llm"
	"github.com/javiermolinar/mitplan/internal/plan"
	"github.com/javiermolinar/mitplan/internal/timeline"
)

// ErrPlanNotFound is returned when the requested plan does not exist.
var ErrPlanNotFound = plan.ErrPlanNotFound

// Active is one placement whose effect is up when an attack lands.
type Active struct {
	Slot      string
	AbilityID string
	Name      string
	Start     int
	SweetSpot bool // the attack lands inside the ability's sweet spot
}

// AttackCoverage pairs a boss attack with the mitigation active at that moment.
type AttackCoverage struct {
	Attack timeline.Attack
	Active []Active
}

// Covered reports whether anything is active when the attack lands.
func (c AttackCoverage) Covered() bool {
	return len(c.Active) > 0
}

// SlotUsage counts what one party slot contributes.
type SlotUsage struct {
	Slot          string
	Label         string
	JobID         string
	Uses          int
	ActiveSeconds int
	Covering      int // attacks this slot has something active for
}

// Summary is the coverage report for one board.
type Summary struct {
	TimelineID   string
	TimelineName string
	Duration     int
	Placements   int
	Slots        []SlotUsage
	Attacks      []AttackCoverage
	Uncovered    []timeline.Attack
	Conflicts    []string
	Insight      string
}

// CoveredCount returns how many attacks have mitigation active.
func (s *Summary) CoveredCount() int {
	return len(s.Attacks) - len(s.Uncovered)
}

// Summarize builds the coverage report for a board.
func Summarize(b *board.Board) *Summary {
	s := &Summary{
		TimelineID:   b.Timeline.ID,
		TimelineName: b.Timeline.Name,
		Duration:     b.Timeline.Duration,
		Placements:   b.Len(),
		Conflicts:    b.Conflicts(),
	}

	usage := make(map[string]*SlotUsage, len(b.Catalog.Slots))
	for _, slot := range b.Catalog.Slots {
		s.Slots = append(s.Slots, SlotUsage{
			Slot:  slot,
			Label: b.Catalog.SlotLabel(slot),
			JobID: b.Party[slot],
		})
	}
	for i := range s.Slots {
		usage[s.Slots[i].Slot] = &s.Slots[i]
	}

	for _, e := range b.Entries() {
		u, ok := usage[e.Slot]
		if !ok {
			continue
		}
		u.Uses++
		u.ActiveSeconds += e.Ability.Duration
	}

	for _, atk := range b.Timeline.Attacks {
		cov := AttackCoverage{Attack: atk}
		seen := map[string]bool{}
		for _, slot := range b.Catalog.Slots {
			for _, e := range b.At(slot, atk.Time) {
				cov.Active = append(cov.Active, Active{
					Slot:      e.Slot,
					AbilityID: e.AbilityID,
					Name:      e.Ability.Name,
					Start:     e.Start,
					SweetSpot: e.Ability.SweetSpot > 0 && atk.Time < e.Start+e.Ability.SweetSpot,
				})
				if !seen[slot] {
					seen[slot] = true
					usage[slot].Covering++
				}
			}
		}
		s.Attacks = append(s.Attacks, cov)
		if !cov.Covered() {
			s.Uncovered = append(s.Uncovered, atk)
		}
	}

	return s
}

// BuildOptions configures the repository-backed summary builder.
type BuildOptions struct {
	PlanID         string
	IncludeInsight bool
	Provider       string
	Model          string
	BaseURL        string
}

// Build loads a plan, summarises it and optionally adds an LLM review.
func Build(ctx context.Context, repo plan.Repository, c *catalog.Catalog, opts BuildOptions) (*Summary, error) {
	p, err := repo.GetPlan(ctx, opts.PlanID)
	if err != nil {
		return nil, fmt.Errorf("fetching plan: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrPlanNotFound, opts.PlanID)
	}

	tl, err := timeline.Resolve(p.BossID)
	if err != nil {
		return nil, fmt.Errorf("loading timeline: %w", err)
	}

	b, _ := board.FromPlan(c, tl, p)
	s := Summarize(b)

	if opts.IncludeInsight && s.Placements > 0 {
		if opts.Model == "" {
			return nil, errors.New("model is required for insight")
		}
		client, err := llm.NewClient(opts.Provider, opts.Model, opts.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("creating LLM client: %w", err)
		}
		s.Insight, err = Review(ctx, client, s)
		if err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Review asks the LLM for a short critique of a summary.
func Review(ctx context.Context, client llm.Client, s *Summary) (string, error) {
	req := llm.ReviewRequest{BossName: s.TimelineName}
	for _, c := range s.Attacks {
		line := llm.CoverageLine{Time: c.Attack.Time, Attack: c.Attack.Name, Type: string(c.Attack.Type)}
		for _, a := range c.Active {
			line.Active = append(line.Active, a.Name)
		}
		req.Lines = append(req.Lines, line)
	}
	return llm.NewReviewer(client).Review(ctx, req)
}
