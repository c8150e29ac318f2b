package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func darkTheme() *Theme {
	t := &Theme{
		Bg:          "#101010",
		BgHighlight: "#202020",
		BgSelection: "#303030",
		Fg:          "#ffffff",
		FgMuted:     "#aaaaaa",
		Accent:      "#ff0000",
		Physical:    "#112233",
		Magical:     "#445566",
		Valid:       "#00ff00",
		Blocked:     "#ff0044",
		Cursor:      "#ffff00",
		Warning:     "#888888",
	}
	t.fillModal()
	return t
}

func TestScale(t *testing.T) {
	tests := []struct {
		name   string
		hex    string
		factor float64
		lo     int
		want   string
	}{
		{"halves", "#a0c0e0", 0.5, 0, "#506070"},
		{"floor applies per channel", "#a00000", 0.5, 40, "#502828"},
		{"invalid input", "red", 0.5, 40, "red"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scale(tt.hex, tt.factor, tt.lo); got != tt.want {
				t.Errorf("scale(%q) = %q, want %q", tt.hex, got, tt.want)
			}
		})
	}
}

func TestBlend(t *testing.T) {
	if got := blend("#000000", "#ffffff", 0); got != "#000000" {
		t.Errorf("blend(0) = %q", got)
	}
	if got := blend("#000000", "#ffffff", 2); got != "#ffffff" {
		t.Errorf("blend(2) = %q, want ratio clamped to 1", got)
	}
	if got := blend("nope", "#ffffff", 0.5); got != "nope" {
		t.Errorf("blend(invalid) = %q", got)
	}
}

func TestNewPalette_ZoneShades(t *testing.T) {
	base := darkTheme()
	p := NewPalette(base)

	if want := lipgloss.Color(scale(base.Valid, 0.30, 30)); p.ValidBg != want {
		t.Errorf("ValidBg = %q, want %q", p.ValidBg, want)
	}
	if want := lipgloss.Color(scale(base.Blocked, 0.30, 30)); p.BlockedBg != want {
		t.Errorf("BlockedBg = %q, want %q", p.BlockedBg, want)
	}
}

func TestPalette_EffectBg(t *testing.T) {
	p := NewPalette(darkTheme())
	job := "#a8d2e6"

	base := p.EffectBg(job, false)
	if want := lipgloss.Color(scale(job, 0.50, 40)); base != want {
		t.Errorf("EffectBg = %q, want %q", base, want)
	}
	alt := p.EffectBg(job, true)
	if alt == base {
		t.Error("alternate shade matches the base shade")
	}
	if luminance(string(alt)) <= luminance(string(base)) {
		t.Errorf("alternate shade %q should be lighter than %q on a dark theme", alt, base)
	}
}

func TestNewPalette_ModalFallbacks(t *testing.T) {
	base := darkTheme()
	p := NewPalette(base)

	if p.Modal.Bg != lipgloss.Color(base.BgHighlight) {
		t.Errorf("Modal.Bg = %q, want %q", p.Modal.Bg, base.BgHighlight)
	}
	if p.Modal.Border.Dark != base.Accent {
		t.Errorf("Modal.Border.Dark = %q, want %q", p.Modal.Border.Dark, base.Accent)
	}
	if p.Modal.Highlight.Dark != base.BgSelection {
		t.Errorf("Modal.Highlight.Dark = %q, want %q", p.Modal.Highlight.Dark, base.BgSelection)
	}
}

func TestNewPalette_LightTheme(t *testing.T) {
	base := &Theme{
		Bg:          "#f5f5f5",
		BgHighlight: "#eeeeee",
		BgSelection: "#e0e0e0",
		Fg:          "#222222",
		FgMuted:     "#555555",
		Accent:      "#2f6feb",
		Physical:    "#bc4c00",
		Magical:     "#8250df",
		Valid:       "#1a7f37",
		Blocked:     "#cf222e",
		Cursor:      "#9a6700",
		Warning:     "#c2410c",
	}
	base.fillModal()

	p := NewPalette(base)
	if luminance(string(p.ValidBg)) <= luminance(base.Valid) {
		t.Errorf("ValidBg %q should be lighter than %q", p.ValidBg, base.Valid)
	}
	if got := p.EffectBg(base.Magical, false); luminance(string(got)) <= luminance(base.Magical) {
		t.Errorf("EffectBg %q should be lighter than %q", got, base.Magical)
	}
}

func TestReadable(t *testing.T) {
	if got := readable("#f0f0f0", "#ffffff", "#111111"); got != "#111111" {
		t.Errorf("readable(light bg) = %q, want dark text", got)
	}
	if got := readable("#101010", "#ffffff", "#111111"); got != "#ffffff" {
		t.Errorf("readable(dark bg) = %q, want light text", got)
	}
}

func TestPalette_TextOn(t *testing.T) {
	p := NewPalette(darkTheme())
	if got := p.TextOn(lipgloss.Color("#202020")); got != lipgloss.Color("#ffffff") {
		t.Errorf("TextOn(dark) = %q, want light text", got)
	}
	if got := p.TextOn(lipgloss.Color("#f0f0f0")); got != lipgloss.Color("#101010") {
		t.Errorf("TextOn(light) = %q, want dark text", got)
	}
}
