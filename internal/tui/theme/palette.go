package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette holds the lipgloss colours derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Physical    lipgloss.Color
	Magical     lipgloss.Color
	Valid       lipgloss.Color
	Blocked     lipgloss.Color
	Cursor      lipgloss.Color
	Warning     lipgloss.Color

	// Zone line shades behind legal and blocked columns.
	ValidBg   lipgloss.Color
	BlockedBg lipgloss.Color

	TextOnCursor  lipgloss.Color
	TextOnValid   lipgloss.Color
	TextOnBlocked lipgloss.Color

	Modal ModalColors

	light  bool
	bg, fg string
}

// ModalColors are the colours of modal frames.
type ModalColors struct {
	Bg          lipgloss.Color
	Border      lipgloss.AdaptiveColor
	Text        lipgloss.AdaptiveColor
	Muted       lipgloss.AdaptiveColor
	Highlight   lipgloss.AdaptiveColor
	Panel       lipgloss.AdaptiveColor
	ReverseText lipgloss.AdaptiveColor
}

// NewPalette derives a Palette from t, or from the default theme when t is nil.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load(DefaultName)
	}
	light := isLight(t.Bg)
	zone := func(hex string) lipgloss.Color {
		if light {
			return lipgloss.Color(blend(hex, t.Bg, 0.88))
		}
		return lipgloss.Color(scale(hex, 0.30, 30))
	}

	return &Palette{
		Bg:          lipgloss.Color(t.Bg),
		BgSelection: lipgloss.Color(t.BgSelection),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Physical:    lipgloss.Color(t.Physical),
		Magical:     lipgloss.Color(t.Magical),
		Valid:       lipgloss.Color(t.Valid),
		Blocked:     lipgloss.Color(t.Blocked),
		Cursor:      lipgloss.Color(t.Cursor),
		Warning:     lipgloss.Color(t.Warning),

		ValidBg:   zone(t.Valid),
		BlockedBg: zone(t.Blocked),

		TextOnCursor:  lipgloss.Color(readable(t.Cursor, t.Bg, t.Fg)),
		TextOnValid:   lipgloss.Color(readable(t.Valid, t.Bg, t.Fg)),
		TextOnBlocked: lipgloss.Color(readable(t.Blocked, t.Bg, t.Fg)),

		Modal: ModalColors{
			Bg:          lipgloss.Color(t.BaseBg),
			Border:      same(t.ModalBorder),
			Text:        same(t.TextPrimary),
			Muted:       same(t.TextMuted),
			Highlight:   same(t.Highlight),
			Panel:       same(coalesce(t.BgSelection, t.BgHighlight, t.Bg)),
			ReverseText: lipgloss.AdaptiveColor{Dark: t.BaseBg, Light: t.TextPrimary},
		},

		light: light,
		bg:    t.Bg,
		fg:    t.Fg,
	}
}

// EffectBg returns the bar background for abilities of a job colour. alt
// gives a second shade so that neighbouring bars stay apart.
func (p *Palette) EffectBg(jobColor string, alt bool) lipgloss.Color {
	hex := scale(jobColor, 0.50, 40)
	if p.light {
		hex = blend(jobColor, p.bg, 0.75)
	}
	if alt {
		if p.light {
			hex = blend(hex, "#000000", 0.10)
		} else {
			hex = blend(hex, "#ffffff", 0.30)
		}
	}
	return lipgloss.Color(hex)
}

// TextOn picks whichever of the theme foreground and background reads
// better on bg.
func (p *Palette) TextOn(bg lipgloss.Color) lipgloss.Color {
	return lipgloss.Color(readable(string(bg), p.fg, p.bg))
}

func same(hex string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: hex, Light: hex}
}

func isLight(bg string) bool {
	return luminance(bg) > 0.55
}

// scale multiplies every channel by factor with a floor of lo/255, so dark
// shades stay visible on dark backgrounds. Invalid input is returned as is.
func scale(hex string, factor float64, lo int) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	floor := float64(lo) / 255
	return colorful.Color{
		R: max(c.R*factor, floor),
		G: max(c.G*factor, floor),
		B: max(c.B*factor, floor),
	}.Hex()
}

// blend mixes a towards b by ratio in RGB space.
func blend(a, b string, ratio float64) string {
	ca, err := colorful.Hex(a)
	if err != nil {
		return a
	}
	cb, err := colorful.Hex(b)
	if err != nil {
		return a
	}
	return ca.BlendRgb(cb, min(max(ratio, 0), 1)).Hex()
}

// readable returns whichever of first and second has the higher WCAG
// contrast against bg, preferring first on a tie.
func readable(bg, first, second string) string {
	if contrast(bg, first) >= contrast(bg, second) {
		return first
	}
	return second
}

func contrast(a, b string) float64 {
	la, lb := luminance(a), luminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

// luminance is the WCAG relative luminance, 0 for invalid input.
func luminance(hex string) float64 {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0
	}
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}
