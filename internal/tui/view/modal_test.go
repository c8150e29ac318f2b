package view

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestRenderModalButtons_UsesBodySeparator(t *testing.T) {
	styles := ModalStyles{
		Body:         lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		Button:       lipgloss.NewStyle(),
		ButtonActive: lipgloss.NewStyle(),
	}

	out := RenderModalButtons(styles, "[Enter] Apply", "[Esc] Cancel")
	if !strings.Contains(out, styles.Body.Render(" ")) {
		t.Fatalf("expected modal button separator to use modal body style")
	}
}

func TestRenderModalFrame_OmitsEmptySections(t *testing.T) {
	out := RenderModalFrame("Coverage", "", "", ModalStyles{})
	if out != "Coverage" {
		t.Fatalf("RenderModalFrame() = %q, want title only", out)
	}

	out = RenderModalFrame("Coverage", "body", "[Esc] Close", ModalStyles{})
	if !strings.Contains(out, "body") || !strings.Contains(out, "[Esc] Close") {
		t.Fatalf("RenderModalFrame() = %q, missing body or footer", out)
	}
}
