package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/javiermolinar/mitplan/internal/tui/input"
)

// PromptState captures prompt input state for rendering.
type PromptState struct {
	Value      string
	Cursor     string
	ModePrompt bool
}

// PromptLines builds prompt input and command hint lines for the given width.
func PromptLines(state PromptState, contentWidth int, commands []input.PromptCommand) []string {
	lines := promptInputLines(state, contentWidth)
	lines = append(lines, promptSuggestionLines(state, contentWidth, commands)...)
	return lines
}

// ClampPromptLines clamps prompt lines to maxLines and adds an ellipsis if needed.
func ClampPromptLines(lines []string, maxLines, width int) []string {
	if maxLines <= 0 {
		return nil
	}
	if len(lines) <= maxLines {
		return lines
	}

	clamped := append([]string(nil), lines[:maxLines]...)
	clamped[maxLines-1] = addEllipsis(clamped[maxLines-1], width)
	return clamped
}

// Wrap breaks s into lines at most first cells wide for the first line and
// rest cells for the others. Lines break at spaces, which are dropped at the
// break; a word longer than a whole line is split.
func Wrap(s string, first, rest int) []string {
	if first <= 0 || rest <= 0 {
		return []string{""}
	}

	var (
		lines []string
		cur   strings.Builder
		curW  int
		limit = first
	)
	flush := func() {
		lines = append(lines, cur.String())
		cur.Reset()
		curW, limit = 0, rest
	}

	for i, word := range strings.Split(s, " ") {
		w := runewidth.StringWidth(word)
		if i > 0 {
			if curW+1+w <= limit {
				cur.WriteByte(' ')
				curW++
			} else {
				flush()
			}
		}
		for curW == 0 && w > limit {
			head := runewidth.Truncate(word, limit, "")
			if head == "" {
				head = string([]rune(word)[:1])
			}
			cur.WriteString(head)
			flush()
			word = word[len(head):]
			w = runewidth.StringWidth(word)
		}
		cur.WriteString(word)
		curW += w
	}
	return append(lines, cur.String())
}

// RenderPrompt renders lines inside the prompt box, which spans width cells
// including its frame.
func RenderPrompt(width int, style lipgloss.Style, lines []string) string {
	frameW, _ := style.GetFrameSize()
	if len(lines) == 0 {
		lines = []string{""}
	}
	return style.Width(max(width-frameW, 0)).Render(strings.Join(lines, "\n"))
}

func promptInputLines(state PromptState, contentWidth int) []string {
	value := state.Value + state.Cursor
	return wrapIndented(value, "> ", "  ", contentWidth)
}

func promptSuggestionLines(state PromptState, contentWidth int, commands []input.PromptCommand) []string {
	if !state.ModePrompt {
		return nil
	}

	suggestions := input.PromptMatchingCommands(state.Value, commands)
	lines := make([]string, 0, len(suggestions))
	for _, cmd := range suggestions {
		line := cmd.Name
		if cmd.Args != "" {
			line += " " + cmd.Args
		}
		line += "  " + cmd.Description
		lines = append(lines, wrapIndented(line, "  ", "    ", contentWidth)...)
	}
	return lines
}

// wrapIndented wraps s to width with prefix before the first line and
// indent before the others.
func wrapIndented(s, prefix, indent string, width int) []string {
	if width <= 0 {
		return []string{""}
	}
	lines := Wrap(s, max(width-len(prefix), 0), max(width-len(indent), 0))
	for i := range lines {
		if i == 0 {
			lines[i] = prefix + lines[i]
		} else {
			lines[i] = indent + lines[i]
		}
	}
	return lines
}

func addEllipsis(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if width < 3 {
		return strings.Repeat(".", width)
	}
	if runewidth.StringWidth(s)+3 > width {
		return runewidth.Truncate(s, width-3, "") + "..."
	}
	return s + "..."
}
