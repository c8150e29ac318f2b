package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// LineStyle indicates how a modal line should be styled.
type LineStyle int

const (
	LineBody LineStyle = iota
	LineMeta
	LineSection
	LineWarning
)

// Line is a display-ready modal line.
type Line struct {
	Text  string
	Style LineStyle
}

// LineStyles groups styles for modal line rendering.
type LineStyles struct {
	Body    stringRenderer
	Meta    stringRenderer
	Section stringRenderer
	Warning stringRenderer
}

// RenderLines renders lines into a wrapped modal body.
func RenderLines(lines []Line, styles LineStyles, contentWidth int) string {
	if len(lines) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(lines))
	for _, line := range lines {
		rendered = append(rendered, wrapModalText(styles.pick(line.Style), line.Text, contentWidth)...)
	}
	return strings.Join(rendered, "\n")
}

// LinesText joins lines as plain text, for copying.
func LinesText(lines []Line) string {
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		parts = append(parts, line.Text)
	}
	return strings.Join(parts, "\n")
}

// ModalContentWidth returns the content width for a modal body.
func ModalContentWidth(style lipgloss.Style, fallback int) int {
	width := style.GetWidth()
	if width <= 0 {
		return fallback
	}
	return max(width-4, 10)
}

func (s LineStyles) pick(style LineStyle) stringRenderer {
	var r stringRenderer
	switch style {
	case LineSection:
		r = s.Section
	case LineMeta:
		r = s.Meta
	case LineWarning:
		r = s.Warning
	default:
		r = s.Body
	}
	if r == nil {
		return lipgloss.NewStyle()
	}
	return r
}

func wrapModalText(style stringRenderer, text string, width int) []string {
	if width <= 0 {
		return []string{style.Render("")}
	}
	lines := Wrap(text, width, width)

	wrapped := make([]string, 0, len(lines))
	for _, line := range lines {
		wrapped = append(wrapped, style.Render(line))
	}
	return wrapped
}
