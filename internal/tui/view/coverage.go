package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/javiermolinar/mitplan/internal/summary"
	"github.com/javiermolinar/mitplan/internal/timefmt"
	"github.com/javiermolinar/mitplan/internal/timeline"
)

// CoverageStyles groups the cell styles of the coverage table.
type CoverageStyles struct {
	Header    lipgloss.Style
	Cell      lipgloss.Style
	Physical  lipgloss.Style
	Magical   lipgloss.Style
	Uncovered lipgloss.Style
	Border    lipgloss.Style
}

// BuildCoverageLines builds the summary lines shown above the coverage table.
func BuildCoverageLines(s *summary.Summary) []Line {
	lines := make([]Line, 0, 8+len(s.Slots))
	lines = append(lines,
		Line{Text: fmt.Sprintf("%s (%s)", s.TimelineName, timefmt.Format(s.Duration)), Style: LineMeta},
		Line{Text: fmt.Sprintf("Covered %d/%d attacks with %d placement(s)", s.CoveredCount(), len(s.Attacks), s.Placements)},
	)
	if len(s.Conflicts) > 0 {
		lines = append(lines, Line{
			Text:  fmt.Sprintf("%d placement(s) are on cooldown", len(s.Conflicts)),
			Style: LineWarning,
		})
	}

	lines = append(lines, Line{}, Line{Text: "PARTY", Style: LineSection})
	for _, u := range s.Slots {
		if u.Uses == 0 {
			continue
		}
		lines = append(lines, Line{Text: fmt.Sprintf("%-8s %-4s %2d use(s), %3ds active, %d attack(s)",
			u.Label, u.JobID, u.Uses, u.ActiveSeconds, u.Covering)})
	}

	if s.Insight != "" {
		lines = append(lines, Line{}, Line{Text: "INSIGHT", Style: LineSection})
		for _, line := range strings.Split(s.Insight, "\n") {
			lines = append(lines, Line{Text: line})
		}
	}
	return lines
}

// RenderCoverageTable renders one row per attack with the mitigation active
// when it lands. A trailing * marks a sweet spot hit.
func RenderCoverageTable(s *summary.Summary, width int, styles CoverageStyles) string {
	rows := make([][]string, 0, len(s.Attacks))
	for _, c := range s.Attacks {
		names := make([]string, 0, len(c.Active))
		for _, a := range c.Active {
			name := a.Name
			if a.SweetSpot {
				name += "*"
			}
			names = append(names, name)
		}
		active := strings.Join(names, ", ")
		if active == "" {
			active = "none"
		}
		rows = append(rows, []string{timefmt.Format(c.Attack.Time), c.Attack.Name, string(c.Attack.Type), active})
	}

	t := table.New().
		Headers("Time", "Attack", "Type", "Active").
		Border(lipgloss.RoundedBorder()).
		BorderColumn(true).
		BorderRow(false).
		BorderHeader(true).
		BorderStyle(styles.Border).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.Header
			}
			if row < 0 || row >= len(s.Attacks) {
				return styles.Cell
			}
			c := s.Attacks[row]
			switch {
			case col == 2 && c.Attack.Type == timeline.Physical:
				return styles.Physical
			case col == 2 && c.Attack.Type == timeline.Magical:
				return styles.Magical
			case col == 3 && !c.Covered():
				return styles.Uncovered
			}
			return styles.Cell
		})
	if width > 0 {
		t = t.Width(width)
	}
	return t.Render()
}
