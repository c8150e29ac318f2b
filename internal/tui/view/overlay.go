package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PlaceBox positions content inside a w x h box filled with bg.
func PlaceBox(w, h int, vAlign lipgloss.Position, content string, bg lipgloss.Color) string {
	placed := lipgloss.Place(w, h, lipgloss.Left, vAlign, content, lipgloss.WithWhitespaceBackground(bg))
	return FillBackground(placed, w, h, bg)
}

// FillBackground pads each line of content to width with bg and returns
// exactly height lines. Lines already wider than width are kept as they are.
func FillBackground(content string, width, height int, bg lipgloss.Color) string {
	if width <= 0 || height <= 0 {
		return content
	}
	pad := lipgloss.NewStyle().Background(bg)
	lines := strings.Split(content, "\n")
	out := make([]string, height)
	for i := range out {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		if gap := width - lipgloss.Width(line); gap > 0 {
			line += pad.Render(strings.Repeat(" ", gap))
		}
		out[i] = line
	}
	return strings.Join(out, "\n")
}

// overlay splices modal over the centre of base. Modal lines are padded to
// the widest one and keep bg after every reset of their inner styles.
func overlay(base, modal string, width, height int, bg lipgloss.Color) string {
	box := strings.Split(modal, "\n")
	boxW := min(lipgloss.Width(modal), width)
	if boxW == 0 {
		return base
	}
	top := max((height-len(box))/2, 0)
	left := max((width-boxW)/2, 0)
	fill := lipgloss.NewStyle().Background(bg)
	restore := keepBackground(bg)

	rows := strings.Split(FillBackground(base, width, height, ""), "\n")
	for i, line := range box {
		row := top + i
		if row >= len(rows) {
			break
		}
		switch w := lipgloss.Width(line); {
		case w > boxW:
			line = ansi.Cut(line, 0, boxW)
		case w < boxW:
			line += fill.Render(strings.Repeat(" ", boxW-w))
		}
		line = restore.Replace(line) + ansi.ResetStyle
		rows[row] = ansi.Cut(rows[row], 0, left) + line + ansi.Cut(rows[row], left+boxW, width)
	}
	return strings.Join(rows, "\n")
}

// keepBackground returns a replacer that re-applies bg after each sequence
// that would clear it. With no bg it leaves lines untouched.
func keepBackground(bg lipgloss.Color) *strings.Replacer {
	if bg == "" {
		return strings.NewReplacer()
	}
	seq := ansi.Style{}.BackgroundColor(ansi.HexColor(string(bg))).String()
	return strings.NewReplacer(
		ansi.ResetStyle, ansi.ResetStyle+seq,
		"\x1b[0m", "\x1b[0m"+seq,
		"\x1b[49m", "\x1b[49m"+seq,
	)
}
