package view

import (
	"testing"

	"github.com/javiermolinar/mitplan/internal/tui/input"
)

func TestPromptLinesIncludesSuggestions(t *testing.T) {
	state := PromptState{Value: "/bo", Cursor: "_", ModePrompt: true}
	commands := []input.PromptCommand{
		{Name: "/boss", Args: "<timeline>", Description: "Switch the fight timeline"},
		{Name: "/suggest", Description: "Ask the LLM"},
	}
	lines := PromptLines(state, 60, commands)

	if len(lines) != 2 {
		t.Fatalf("lines = %v, want input plus one suggestion", lines)
	}
	if lines[0] != "> /bo_" {
		t.Errorf("input line = %q", lines[0])
	}
	if lines[1] != "  /boss <timeline>  Switch the fight timeline" {
		t.Errorf("suggestion line = %q", lines[1])
	}
}

func TestPromptLinesHidesSuggestionsOutsidePromptMode(t *testing.T) {
	state := PromptState{Value: "/bo", ModePrompt: false}
	lines := PromptLines(state, 60, input.Commands)
	if len(lines) != 1 {
		t.Fatalf("lines = %v, want input only", lines)
	}
}

func TestClampPromptLinesAddsEllipsis(t *testing.T) {
	lines := []string{"one", "two", "three"}
	clamped := ClampPromptLines(lines, 2, 5)
	if len(clamped) != 2 {
		t.Fatalf("clamped length = %d, want 2", len(clamped))
	}
	if clamped[1] != "tw..." {
		t.Fatalf("expected ellipsis on last line, got %q", clamped[1])
	}
}

func TestWrap(t *testing.T) {
	got := Wrap("cover every raidwide", 8, 10)
	want := []string{"cover", "every", "raidwide"}
	if len(got) != len(want) {
		t.Fatalf("Wrap() = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Wrap() = %q, want %q", got, want)
		}
	}
}
