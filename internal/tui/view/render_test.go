package view

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestRender(t *testing.T) {
	if got := Render(Screen{}); got != "Loading..." {
		t.Fatalf("Render(empty) = %q", got)
	}
	if got := Render(Screen{Placeholder: "wait"}); got != "wait" {
		t.Fatalf("Render(placeholder) = %q", got)
	}
	if got := Render(Screen{Width: 4, Height: 1, Base: "base"}); got != "base" {
		t.Fatalf("Render(no modal) = %q", got)
	}
}

func TestRenderCentersModal(t *testing.T) {
	base := strings.Join([]string{"..........", "..........", ".........."}, "\n")
	out := Render(Screen{Width: 10, Height: 3, Base: base, Modal: "XX"})

	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	if got := ansi.Strip(lines[1]); got != "....XX...." {
		t.Fatalf("middle line = %q, want modal centred", got)
	}
	if got := ansi.Strip(lines[0]); got != ".........." {
		t.Fatalf("top line = %q, want base untouched", got)
	}
}

func TestOverlayKeepsModalBackground(t *testing.T) {
	modal := "a\x1b[0mb"
	out := overlay("....", modal, 4, 1, "#112233")
	seq := ansi.Style{}.BackgroundColor(ansi.HexColor("#112233")).String()
	if !strings.Contains(out, "\x1b[0m"+seq) {
		t.Errorf("overlay(%q) = %q, want the background restored after the reset", modal, out)
	}
	if got := ansi.Strip(out); got != ".ab." {
		t.Errorf("overlay text = %q, want %q", got, ".ab.")
	}
}

func TestFillBackground(t *testing.T) {
	tests := []struct {
		name    string
		content string
		width   int
		height  int
		want    []string
	}{
		{"pads width and height", "ab", 4, 2, []string{"ab  ", "    "}},
		{"truncates extra lines", "a\nb\nc", 1, 2, []string{"a", "b"}},
		{"keeps wide lines", "abcdef", 3, 1, []string{"abcdef"}},
		{"zero size is a no-op", "ab", 0, 0, []string{"ab"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strings.Split(ansi.Strip(FillBackground(tt.content, tt.width, tt.height, "")), "\n")
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("FillBackground() = %q, want %q", got, tt.want)
			}
		})
	}
}
