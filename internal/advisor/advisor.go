// Package advisor asks an LLM for mitigation placements and keeps only the
// ones the cooldown engine accepts. Both CLI and TUI use it.
package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/javiermolinar/mitplan/internal/board"
	"github.com/javiermolinar/mitplan/internal/llm"
)

// ErrNoSession is returned by Continue before any suggestion round.
var ErrNoSession = errors.New("no active suggestion session")

// Suggestion is one validated placement proposed by the LLM.
type Suggestion struct {
	Slot        string
	AbilityID   string
	AbilityName string
	JobID       string
	Start       int
	Reason      string
}

// Request contains the player's instruction.
type Request struct {
	Input string
}

// Result is the outcome of a suggestion round.
type Result struct {
	Accepted         []Suggestion
	Notes            []string
	ValidationErrors []ValidationError
	Attempts         int
}

// HasValidationErrors returns true if the last response still had rejected placements.
func (r *Result) HasValidationErrors() bool {
	return len(r.ValidationErrors) > 0
}

// Advisor drives the suggest, validate and retry loop for one board.
type Advisor struct {
	client   llm.Client
	provider string
	board    *board.Board
	logger   zerolog.Logger

	messages []llm.Message
}

// New creates an Advisor. provider selects the compact prompt for local models.
func New(client llm.Client, provider string, b *board.Board, logger zerolog.Logger) *Advisor {
	return &Advisor{
		client:   client,
		provider: provider,
		board:    b,
		logger:   logger.With().Str("component", "advisor").Logger(),
	}
}

func useCompactPrompt(provider string) bool {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", llm.ProviderOllama, llm.ProviderLMStudio, "lm-studio":
		return true
	default:
		return false
	}
}

// SuggestWithRetry asks for placements, validates them against the board,
// and feeds validation errors back until the response is clean or
// maxRetries is spent. The result then carries the accepted subset and the
// remaining errors.
func (a *Advisor) SuggestWithRetry(ctx context.Context, req Request, maxRetries int) (*Result, error) {
	suggester := llm.NewSuggester(a.client)
	a.messages = suggester.BuildInitialMessages(a.request(req.Input))
	if input := strings.TrimSpace(req.Input); input != "" {
		a.messages = append(a.messages, llm.Message{Role: "user", Content: input})
	}
	return a.loop(ctx, suggester, maxRetries)
}

// Continue adds an instruction to the current conversation and asks again.
func (a *Advisor) Continue(ctx context.Context, additional string, maxRetries int) (*Result, error) {
	if len(a.messages) == 0 {
		return nil, ErrNoSession
	}
	a.messages = append(a.messages, llm.Message{Role: "user", Content: additional})
	return a.loop(ctx, llm.NewSuggester(a.client), maxRetries)
}

func (a *Advisor) loop(ctx context.Context, suggester *llm.Suggester, maxRetries int) (*Result, error) {
	var (
		resp       *llm.SuggestResponse
		validation ValidationResult
		err        error
	)
	attempt := 0
	for ; attempt <= maxRetries; attempt++ {
		resp, err = suggester.SuggestWithMessages(ctx, a.messages)
		if err != nil {
			return nil, fmt.Errorf("LLM suggestion (attempt %d): %w", attempt+1, err)
		}

		respJSON, _ := json.Marshal(resp)
		a.messages = append(a.messages, llm.Message{Role: "assistant", Content: string(respJSON)})

		validation = Validate(a.board, resp.Placements)
		a.logger.Debug().
			Int("attempt", attempt+1).
			Int("accepted", len(validation.Accepted)).
			Int("rejected", len(validation.Errors)).
			Msg("validated suggestions")

		if validation.Valid {
			break
		}
		if attempt < maxRetries {
			a.messages = append(a.messages, llm.Message{Role: "user", Content: validation.FormatErrors()})
		}
	}

	return &Result{
		Accepted:         validation.Accepted,
		Notes:            resp.Notes,
		ValidationErrors: validation.Errors,
		Attempts:         min(attempt+1, maxRetries+1),
	}, nil
}

// Apply commits accepted suggestions to the board. Suggestions that no
// longer fit, because the board changed since they were validated, are
// skipped and reported.
func (a *Advisor) Apply(result *Result) ([]board.Entry, []error) {
	var (
		placed []board.Entry
		errs   []error
	)
	for _, s := range result.Accepted {
		ability, err := a.board.Ability(s.Slot, s.AbilityID)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		e, err := a.board.Place(ability, s.Start)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		placed = append(placed, e)
	}
	return placed, errs
}

func (a *Advisor) request(input string) llm.SuggestRequest {
	b := a.board
	req := llm.SuggestRequest{
		Input:            input,
		BossName:         b.Timeline.Name,
		Duration:         b.Timeline.Duration,
		UseCompactPrompt: useCompactPrompt(a.provider),
	}
	for _, at := range b.Timeline.Attacks {
		req.Attacks = append(req.Attacks, llm.AttackInfo{Time: at.Time, Name: at.Name, Type: string(at.Type)})
	}
	for _, slot := range b.Catalog.Slots {
		for _, ab := range b.Catalog.AbilitiesForSlot(b.Party, slot) {
			req.Abilities = append(req.Abilities, llm.AbilityInfo{
				Slot:     slot,
				JobID:    ab.JobID,
				ID:       ab.ID,
				Name:     ab.Name,
				Duration: ab.Duration,
				Cooldown: ab.Cooldown,
				Charges:  ab.MaxCharges(),
			})
		}
	}
	for _, e := range b.Entries() {
		req.Existing = append(req.Existing, llm.PlacementInfo{Slot: e.Slot, AbilityID: e.AbilityID, Start: e.Start})
	}
	return req
}
