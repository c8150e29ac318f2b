// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/mitplan/internal/advisor"
	"github.com/javiermolinar/mitplan/internal/llm"
	"github.com/javiermolinar/mitplan/internal/plan"
	"github.com/javiermolinar/mitplan/internal/summary"
)

// PlanLoadedMsg is sent when a saved plan has been read.
type PlanLoadedMsg struct {
	Plan *plan.Plan
}

// PlanSavedMsg is sent when the plan has been written.
type PlanSavedMsg struct {
	ID         string
	Placements int
}

// PlansListedMsg carries the saved plans for the open dialog.
type PlansListedMsg struct {
	Plans []plan.Summary
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// SuggestStartedMsg is sent when the advisor starts working.
type SuggestStartedMsg struct{}

// SuggestResultMsg is sent when the advisor has validated a round of suggestions.
type SuggestResultMsg struct {
	Result *advisor.Result
}

// InsightMsg carries the LLM review of the coverage report.
type InsightMsg struct {
	Text string
}

// LoadPlan reads a plan by id.
func LoadPlan(repo plan.Repository, id string) tea.Cmd {
	return func() tea.Msg {
		p, err := repo.GetPlan(context.Background(), id)
		if err != nil {
			return ErrMsg{Err: err}
		}
		if p == nil {
			return ErrMsg{Err: fmt.Errorf("%w: %s", plan.ErrPlanNotFound, id)}
		}
		return PlanLoadedMsg{Plan: p}
	}
}

// SavePlan writes a snapshot of the plan. The caller must not modify p afterwards.
func SavePlan(repo plan.Repository, p *plan.Plan) tea.Cmd {
	return func() tea.Msg {
		if err := repo.SavePlan(context.Background(), p); err != nil {
			return ErrMsg{Err: fmt.Errorf("saving plan: %w", err)}
		}
		return PlanSavedMsg{ID: p.ID, Placements: len(p.Placements)}
	}
}

// ListPlans lists saved plans, newest first.
func ListPlans(repo plan.Repository) tea.Cmd {
	return func() tea.Msg {
		plans, err := repo.ListPlans(context.Background())
		if err != nil {
			return ErrMsg{Err: err}
		}
		return PlansListedMsg{Plans: plans}
	}
}

// Suggest starts a suggestion round, or continues the current one when
// followUp is set.
func Suggest(adv *advisor.Advisor, input string, followUp bool, maxRetries int) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		var (
			result *advisor.Result
			err    error
		)
		if followUp {
			result, err = adv.Continue(ctx, input, maxRetries)
		} else {
			result, err = adv.SuggestWithRetry(ctx, advisor.Request{Input: input}, maxRetries)
		}
		if err != nil {
			return ErrMsg{Err: err}
		}
		return SuggestResultMsg{Result: result}
	}
}

// Review asks the LLM to critique a coverage report.
func Review(client llm.Client, s *summary.Summary) tea.Cmd {
	return func() tea.Msg {
		text, err := summary.Review(context.Background(), client, s)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return InsightMsg{Text: text}
	}
}

// ClearStatusAfter clears the status line once d has passed.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
