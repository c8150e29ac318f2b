// Package view provides rendering helpers for the TUI.
package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type stringRenderer interface {
	Render(...string) string
}

// ListItem is one selectable row in a list modal.
type ListItem struct {
	Label    string
	Detail   string
	Disabled bool
}

// ListStyles groups styles for list modals.
type ListStyles struct {
	Body     stringRenderer
	Meta     stringRenderer
	Selected stringRenderer
}

// RenderListBody renders items with the selected one highlighted. Only a
// window of maxRows items around the selection is shown.
func RenderListBody(items []ListItem, selected, maxRows int, empty string, styles ListStyles) string {
	if len(items) == 0 {
		return styles.Meta.Render(empty)
	}
	if maxRows <= 0 || maxRows > len(items) {
		maxRows = len(items)
	}

	first := selected - maxRows/2
	first = max(0, min(first, len(items)-maxRows))

	labelW := 0
	for _, it := range items {
		labelW = max(labelW, lipgloss.Width(it.Label))
	}

	lines := make([]string, 0, maxRows)
	for i := first; i < first+maxRows; i++ {
		it := items[i]
		line := fmt.Sprintf(" %-*s  %s ", labelW, it.Label, it.Detail)
		switch {
		case i == selected:
			lines = append(lines, styles.Selected.Render(line))
		case it.Disabled:
			lines = append(lines, styles.Meta.Render(line))
		default:
			lines = append(lines, styles.Body.Render(line))
		}
	}
	return strings.Join(lines, "\n")
}

// RenderConfirmQuitBody renders the body of the unsaved changes modal.
func RenderConfirmQuitBody(planName string, style stringRenderer) string {
	return style.Render(fmt.Sprintf("%q has unsaved changes.\nSave before quitting?", planName))
}
