package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/javiermolinar/mitplan/internal/board"
	"github.com/javiermolinar/mitplan/internal/catalog"
	"github.com/javiermolinar/mitplan/internal/cooldown"
	"github.com/javiermolinar/mitplan/internal/summary"
	"github.com/javiermolinar/mitplan/internal/timefmt"
)

// PrintEntries prints one row per placement, grouped by slot in party order.
func PrintEntries(w io.Writer, b *board.Board) {
	if b.Len() == 0 {
		fmt.Fprintln(w, formatMuted("  (no placements)"))
		return
	}

	conflicts := make(map[string]bool)
	for _, id := range b.Conflicts() {
		conflicts[id] = true
	}

	nameWidth := 20
	if tw := termWidth(); tw < 80 {
		nameWidth = 12
	}

	for _, slot := range b.Catalog.Slots {
		entries := b.SlotEntries(slot)
		if len(entries) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s %s\n", formatHeader(b.Catalog.SlotLabel(slot)), formatMuted("("+b.Party[slot]+")"))
		for _, e := range entries {
			mark := formatOK("○")
			if conflicts[e.ID] {
				mark = formatBad("✗")
			}
			fmt.Fprintf(w, "  %s %-11s  %-*s  %s\n",
				mark,
				timefmt.FormatSpan(e.Start, e.End()),
				nameWidth, truncate(e.Ability.Name, nameWidth),
				formatMuted(e.ID))
		}
	}
}

// PrintZones prints the legal start ranges for an ability.
func PrintZones(w io.Writer, a catalog.SlotAbility, zones []cooldown.TimeRange) {
	fmt.Fprintf(w, "%s (%s) %s\n",
		formatHeader(a.Name),
		a.JobID,
		formatMuted(fmt.Sprintf("duration %ds, cooldown %ds, charges %d", a.Duration, a.Cooldown, a.MaxCharges())))
	if len(zones) == 0 {
		fmt.Fprintln(w, "  "+formatBad("no legal start times"))
		return
	}
	for _, z := range zones {
		fmt.Fprintf(w, "  %s\n", formatOK(timefmt.FormatSpan(z.Start, z.End)))
	}
}

// PrintAbilities prints a job's abilities as a table.
func PrintAbilities(w io.Writer, abilities []catalog.Ability) {
	fmt.Fprintf(w, "  %-16s %-22s %5s %5s %4s  %s\n", "ID", "NAME", "DUR", "CD", "CHG", "REACH")
	for _, ab := range abilities {
		charges := ab.Charges
		if charges < 1 {
			charges = 1
		}
		fmt.Fprintf(w, "  %-16s %-22s %4ds %4ds %4d  %s\n",
			ab.ID, truncate(ab.Name, 22), ab.Duration, ab.Cooldown, charges, ab.Reach())
	}
}

// PrintSummary prints a coverage report.
func PrintSummary(w io.Writer, s *summary.Summary) {
	fmt.Fprintf(w, "=== %s ===\n", formatHeader(s.TimelineName))
	fmt.Fprintf(w, "Duration %s | Placements %d | Covered %d/%d\n\n",
		timefmt.Format(s.Duration), s.Placements, s.CoveredCount(), len(s.Attacks))

	for _, c := range s.Attacks {
		mark := formatOK("✓")
		if !c.Covered() {
			mark = formatBad("✗")
		}
		names := make([]string, 0, len(c.Active))
		for _, a := range c.Active {
			name := a.Name
			if a.SweetSpot {
				name += "*"
			}
			names = append(names, name)
		}
		active := formatMuted("none")
		if len(names) > 0 {
			active = strings.Join(names, ", ")
		}
		fmt.Fprintf(w, "  %s %6s  %-24s %-8s  %s\n",
			mark, timefmt.Format(c.Attack.Time), truncate(c.Attack.Name, 24),
			formatAttackType(string(c.Attack.Type)), active)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, formatHeader("Party"))
	for _, u := range s.Slots {
		if u.JobID == "" {
			continue
		}
		fmt.Fprintf(w, "  %-10s %-4s uses %2d  active %4ds  covering %d\n",
			u.Label, u.JobID, u.Uses, u.ActiveSeconds, u.Covering)
	}

	if len(s.Conflicts) > 0 {
		fmt.Fprintf(w, "\n%s %s\n", formatBad("Conflicting placements:"), strings.Join(s.Conflicts, ", "))
	}

	if s.Insight != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, formatHeader("Insight"))
		PrintInsightWrapped(w, s.Insight, min(termWidth(), 100))
	}
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width <= 3 {
		return s[:width]
	}
	return s[:width-3] + "..."
}

// PrintInsightWrapped formats and prints insight text preserving structure.
func PrintInsightWrapped(w io.Writer, text string, width int) {
	text = stripMarkdownCodeBlocks(text)

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			fmt.Fprintln(w)
			continue
		}

		prefix, content, contentWidth, header := parseInsightLine(trimmed, width)
		if header {
			fmt.Fprintln(w)
			fmt.Fprintln(w, formatHeader("  "+content))
			continue
		}

		wrapAndPrint(w, content, prefix, contentWidth)
	}
}

// parseInsightLine parses a line and returns formatting info.
// Returns: prefix, content, contentWidth, isHeader
func parseInsightLine(trimmed string, width int) (prefix, content string, contentWidth int, isHeader bool) {
	prefix = "  "
	content = trimmed
	contentWidth = width - 2

	switch {
	case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
		prefix = "    • "
		content = strings.TrimPrefix(strings.TrimPrefix(trimmed, "- "), "* ")
		contentWidth = width - 6

	case strings.HasPrefix(trimmed, "#"):
		content = strings.TrimLeft(trimmed, "# ")
		isHeader = true

	case isNumberedItem(trimmed):
		idx := strings.Index(trimmed, ".")
		prefix = "  " + trimmed[:idx+1] + " "
		content = strings.TrimSpace(trimmed[idx+1:])
		contentWidth = width - len(prefix)
	}

	return prefix, content, contentWidth, isHeader
}

// isNumberedItem checks if a line starts with a number followed by a period.
func isNumberedItem(s string) bool {
	if len(s) < 3 {
		return false
	}
	if s[0] < '1' || s[0] > '9' {
		return false
	}
	if s[1] == '.' {
		return true
	}
	return s[1] >= '0' && s[1] <= '9' && len(s) > 3 && s[2] == '.'
}

// wrapAndPrint wraps text to width and prints with the given prefix.
func wrapAndPrint(w io.Writer, text, prefix string, width int) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return
	}

	continuation := strings.Repeat(" ", len(prefix))
	current := prefix
	line := ""
	for _, word := range words {
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) <= width:
			line += " " + word
		default:
			fmt.Fprintln(w, formatInsight(current+line))
			current = continuation
			line = word
		}
	}
	fmt.Fprintln(w, formatInsight(current+line))
}

// stripMarkdownCodeBlocks removes ```...``` fences from text.
func stripMarkdownCodeBlocks(text string) string {
	var result []string
	inCodeBlock := false
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inCodeBlock = !inCodeBlock
			continue
		}
		if !inCodeBlock {
			result = append(result, line)
		}
	}
	return strings.Join(result, "\n")
}
