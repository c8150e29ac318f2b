package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/javiermolinar/mitplan/internal/timefmt"
)

const suggestPrompt = `You are a raid mitigation planner for an 8-player party.

Boss: %s (fight length %ds)

Boss attacks (second, m:ss, name, damage type):
%s

Party abilities (slot, job, ability id, name, effect seconds, cooldown seconds, charges):
%s

%s

Player request: "%s"

Rules:
1. Only use the ability ids and slots listed above.
2. "start" is the second the ability is pressed; the effect lasts for its effect seconds.
3. An ability must not start before 0 and its effect must end by %d.
4. A single-charge ability cannot be used again until its cooldown has passed since the previous use of the same slot and ability.
5. A multi-charge ability regains one charge per full cooldown.
6. Press mitigation a few seconds before the attack so the effect is active when it lands.
7. Prefer covering magical raidwides with party-wide abilities and tank busters with tank abilities.

Respond ONLY with valid JSON (no markdown, no explanation):
{
  "placements": [
    {"slot": "string", "ability_id": "string", "start": 0, "reason": "string"}
  ],
  "notes": ["string"]
}`

const suggestPromptCompact = `Plan raid mitigation. Return JSON only.

Boss: %s, %ds
Attacks:
%s
Abilities (slot job id name duration cooldown charges):
%s
%s
Request: "%s"

Rules: use listed ids only; 0 <= start and start+duration <= %d; respect cooldowns per slot and ability.

JSON: {"placements":[{"slot":"string","ability_id":"string","start":0,"reason":"string"}],"notes":["string"]}`

// AttackInfo is a boss attack in the prompt.
type AttackInfo struct {
	Time int
	Name string
	Type string
}

// AbilityInfo is a party ability in the prompt.
type AbilityInfo struct {
	Slot     string
	JobID    string
	ID       string
	Name     string
	Duration int
	Cooldown int
	Charges  int
}

// PlacementInfo is an already committed use.
type PlacementInfo struct {
	Slot      string
	AbilityID string
	Start     int
}

// SuggestRequest contains the input for the suggester.
type SuggestRequest struct {
	Input            string
	BossName         string
	Duration         int
	Attacks          []AttackInfo
	Abilities        []AbilityInfo
	Existing         []PlacementInfo
	UseCompactPrompt bool // Use a shorter prompt for local models
}

// SuggestResponse contains the parsed LLM response.
type SuggestResponse struct {
	Placements []SuggestedPlacement `json:"placements"`
	Notes      []string             `json:"notes"`
}

// SuggestedPlacement is one use proposed by the LLM.
type SuggestedPlacement struct {
	Slot      string `json:"slot"`
	AbilityID string `json:"ability_id"`
	Start     int    `json:"start"`
	Reason    string `json:"reason,omitempty"`
}

// Suggester asks an LLM for placements covering a boss timeline.
type Suggester struct {
	client Client
}

// NewSuggester creates a new Suggester with the given LLM client.
func NewSuggester(client Client) *Suggester {
	return &Suggester{client: client}
}

// Suggest returns placements for the request.
func (s *Suggester) Suggest(ctx context.Context, req SuggestRequest) (*SuggestResponse, error) {
	return s.SuggestWithMessages(ctx, s.BuildInitialMessages(req))
}

// SuggestWithMessages sends a pre-built conversation, used when retrying
// with validation feedback appended.
func (s *Suggester) SuggestWithMessages(ctx context.Context, messages []Message) (*SuggestResponse, error) {
	var resp SuggestResponse
	if err := s.client.ChatJSON(ctx, messages, &resp); err != nil {
		return nil, fmt.Errorf("getting suggestions from LLM: %w", err)
	}
	return &resp, nil
}

// BuildInitialMessages creates the message list for a request.
func (s *Suggester) BuildInitialMessages(req SuggestRequest) []Message {
	input := strings.TrimSpace(req.Input)
	if input == "" {
		input = "Cover every attack with sensible mitigation."
	}

	template := suggestPrompt
	if req.UseCompactPrompt {
		template = suggestPromptCompact
	}
	prompt := fmt.Sprintf(template,
		req.BossName,
		req.Duration,
		formatAttacks(req.Attacks),
		formatAbilities(req.Abilities),
		formatExisting(req.Existing),
		input,
		req.Duration,
	)

	return []Message{{Role: "system", Content: prompt}}
}

func formatAttacks(attacks []AttackInfo) string {
	if len(attacks) == 0 {
		return "- none"
	}
	var sb strings.Builder
	for _, a := range attacks {
		fmt.Fprintf(&sb, "- %d (%s) %s [%s]\n", a.Time, timefmt.Format(a.Time), a.Name, a.Type)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatAbilities(abilities []AbilityInfo) string {
	if len(abilities) == 0 {
		return "- none"
	}
	var sb strings.Builder
	for _, a := range abilities {
		charges := a.Charges
		if charges < 1 {
			charges = 1
		}
		fmt.Fprintf(&sb, "- %s %s %s %q %d %d %d\n", a.Slot, a.JobID, a.ID, a.Name, a.Duration, a.Cooldown, charges)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatExisting(existing []PlacementInfo) string {
	if len(existing) == 0 {
		return "Already planned: none"
	}
	var sb strings.Builder
	sb.WriteString("Already planned (keep these, do not repeat them):\n")
	for _, p := range existing {
		fmt.Fprintf(&sb, "- %s %s at %d (%s)\n", p.Slot, p.AbilityID, p.Start, timefmt.Format(p.Start))
	}
	return strings.TrimRight(sb.String(), "\n")
}
