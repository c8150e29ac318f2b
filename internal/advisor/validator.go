package advisor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/javiermolinar/mitplan/internal/board"
	"github.com/javiermolinar/mitplan/internal/catalog"
	"github.com/javiermolinar/mitplan/internal/llm"
	"github.com/javiermolinar/mitplan/internal/timefmt"
)

// ValidationError represents a single rejected suggestion.
type ValidationError struct {
	Index   int    // Index of the suggestion in the LLM response
	Field   string // "slot", "ability_id", "start" or "cooldown"
	Message string
}

// String returns a formatted error message.
func (e ValidationError) String() string {
	return fmt.Sprintf("Placement %d: %s - %s", e.Index, e.Field, e.Message)
}

// ValidationResult contains the outcome of validating one LLM response.
type ValidationResult struct {
	Valid    bool
	Accepted []Suggestion
	Errors   []ValidationError
}

// FormatErrors returns the feedback sent back to the LLM on retry.
func (r ValidationResult) FormatErrors() string {
	if len(r.Errors) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Your response had these errors:\n")
	for _, e := range r.Errors {
		fmt.Fprintf(&sb, "- %s\n", e.String())
	}
	sb.WriteString("\nPlease correct these issues and respond again with valid JSON.")
	return sb.String()
}

// Validate replays suggestions, in order, onto a copy of b. Each one is
// checked against the board and against the suggestions accepted before it.
func Validate(b *board.Board, suggestions []llm.SuggestedPlacement) ValidationResult {
	sim := b.Clone()
	result := ValidationResult{Valid: true}

	reject := func(i int, field, msg string) {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{Index: i, Field: field, Message: msg})
	}

	for i, s := range suggestions {
		slot := strings.ToLower(strings.TrimSpace(s.Slot))
		if !sim.Catalog.HasSlot(slot) {
			reject(i, "slot", fmt.Sprintf("unknown slot %q (use one of %s)", s.Slot, strings.Join(sim.Catalog.Slots, ", ")))
			continue
		}
		a, err := sim.Ability(slot, strings.TrimSpace(s.AbilityID))
		if err != nil {
			reject(i, "ability_id", fmt.Sprintf("%s has no ability %q", slot, s.AbilityID))
			continue
		}

		entry, err := sim.Place(a, s.Start)
		switch {
		case errors.Is(err, board.ErrOutOfBounds):
			reject(i, "start", fmt.Sprintf("%s at %d does not fit: start must be between 0 and %d",
				a.ID, s.Start, sim.Timeline.Duration-a.Duration))
			continue
		case errors.Is(err, board.ErrCooldownConflict):
			reject(i, "cooldown", fmt.Sprintf("%s on %s is still on cooldown at %d (%s)",
				a.ID, slot, s.Start, timefmt.Format(s.Start)))
			continue
		case err != nil:
			reject(i, "ability_id", err.Error())
			continue
		}

		result.Accepted = append(result.Accepted, newSuggestion(entry.Ability, entry.Start, s.Reason))
	}

	return result
}

func newSuggestion(a catalog.SlotAbility, start int, reason string) Suggestion {
	return Suggestion{
		Slot:        a.Slot,
		AbilityID:   a.ID,
		AbilityName: a.Name,
		JobID:       a.JobID,
		Start:       start,
		Reason:      reason,
	}
}
