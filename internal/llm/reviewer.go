package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/javiermolinar/mitplan/internal/timefmt"
)

const reviewerSystemPrompt = `You are a terse raid mitigation reviewer. Output ONLY the exact format shown - no markdown, no extra text.`

const reviewPromptTemplate = `Review this mitigation plan for %s and output EXACTLY this format:

VERDICT: [ 2-5 word verdict ]

GAPS: One sentence naming the most dangerous uncovered or thin attack.
WASTE: One sentence about mitigation that covers nothing.

FIX:
> First concrete change (ability, slot, time).
> Second concrete change.

Plan (time, attack, active mitigation):
%s

Rules:
- Keep each line under 70 characters
- Use m:ss times from the data
- If no issue exists for a line, omit it`

// CoverageLine is one boss attack and the mitigation active when it lands.
type CoverageLine struct {
	Time   int
	Attack string
	Type   string
	Active []string
}

// ReviewRequest is the input for a plan review.
type ReviewRequest struct {
	BossName string
	Lines    []CoverageLine
}

// Reviewer asks an LLM for a short critique of a plan.
type Reviewer struct {
	client Client
}

// NewReviewer creates a new Reviewer with the given LLM client.
func NewReviewer(client Client) *Reviewer {
	return &Reviewer{client: client}
}

// Review returns the LLM's plain-text critique.
func (r *Reviewer) Review(ctx context.Context, req ReviewRequest) (string, error) {
	prompt := fmt.Sprintf(reviewPromptTemplate, req.BossName, formatCoverage(req.Lines))
	out, err := r.client.Chat(ctx, []Message{
		{Role: "system", Content: reviewerSystemPrompt},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return "", fmt.Errorf("reviewing plan: %w", err)
	}
	return strings.TrimSpace(out), nil
}

func formatCoverage(lines []CoverageLine) string {
	var sb strings.Builder
	for _, l := range lines {
		active := "NONE"
		if len(l.Active) > 0 {
			active = strings.Join(l.Active, ", ")
		}
		fmt.Fprintf(&sb, "%s  %s [%s]  %s\n", timefmt.Format(l.Time), l.Attack, l.Type, active)
	}
	return sb.String()
}
