package view

import (
	"fmt"

	"github.com/javiermolinar/mitplan/internal/advisor"
	"github.com/javiermolinar/mitplan/internal/timefmt"
)

// BuildSuggestLines builds the body of the suggestion modal.
func BuildSuggestLines(r *advisor.Result, input string) []Line {
	lines := make([]Line, 0, 8+len(r.Accepted)+len(r.ValidationErrors))
	intro := "Suggestions for the whole fight"
	if input != "" {
		intro = fmt.Sprintf("Suggestions for %q", input)
	}
	lines = append(lines, Line{Text: fmt.Sprintf("%s (%d attempt(s))", intro, r.Attempts), Style: LineMeta}, Line{})

	if r.HasValidationErrors() {
		lines = append(lines, Line{Text: "REJECTED", Style: LineSection})
		for _, e := range r.ValidationErrors {
			lines = append(lines, Line{Text: "- " + e.String(), Style: LineWarning})
		}
		lines = append(lines, Line{})
	}

	lines = append(lines, Line{Text: "PLACEMENTS", Style: LineSection})
	if len(r.Accepted) == 0 {
		lines = append(lines, Line{Text: "Nothing new fits the current plan.", Style: LineMeta})
	}
	for _, s := range r.Accepted {
		text := fmt.Sprintf("%5s  %-6s %s (%s)", timefmt.Format(s.Start), s.Slot, s.AbilityName, s.JobID)
		if s.Reason != "" {
			text += " - " + s.Reason
		}
		lines = append(lines, Line{Text: text})
	}

	if len(r.Notes) > 0 {
		lines = append(lines, Line{}, Line{Text: "NOTES", Style: LineSection})
		for _, n := range r.Notes {
			lines = append(lines, Line{Text: "- " + n, Style: LineMeta})
		}
	}
	return lines
}
