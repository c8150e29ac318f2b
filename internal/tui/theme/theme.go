// Package theme provides the colour themes of the board TUI.
package theme

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// DefaultName is the theme used when none is configured or the configured
// one does not exist.
const DefaultName = "mocha"

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// Theme is one embedded colour scheme. All values are "#rrggbb".
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`
	BgHighlight string `toml:"bg_highlight"`
	BgSelection string `toml:"bg_selection"` // active slot row
	Fg          string `toml:"fg"`
	FgMuted     string `toml:"fg_muted"` // ruler, help
	Accent      string `toml:"accent"`
	Physical    string `toml:"physical"` // physical attack markers
	Magical     string `toml:"magical"`  // magical attack markers
	Valid       string `toml:"valid"`    // legal start times while placing
	Blocked     string `toml:"blocked"`  // start times on cooldown, conflicts
	Cursor      string `toml:"cursor"`
	Warning     string `toml:"warning"`

	// Modal overrides. Empty values are derived from the colours above.
	BaseBg      string `toml:"base_bg"`
	ModalBorder string `toml:"modal_border"`
	TextPrimary string `toml:"text_primary"`
	TextMuted   string `toml:"text_muted"`
	Highlight   string `toml:"highlight"`
}

// Load returns the named theme. Unknown names fall back to DefaultName.
func Load(name string) (*Theme, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if !IsAvailable(name) {
		name = DefaultName
	}

	data, err := embeddedThemes.ReadFile("embedded/" + name + ".toml")
	if err != nil {
		return nil, fmt.Errorf("loading theme %q: %w", name, err)
	}
	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}
	if t.Name == "" {
		t.Name = name
	}
	t.fillModal()
	return &t, nil
}

func (t *Theme) fillModal() {
	t.BaseBg = coalesce(t.BaseBg, t.BgHighlight, t.Bg)
	t.ModalBorder = coalesce(t.ModalBorder, t.Accent)
	t.TextPrimary = coalesce(t.TextPrimary, t.Fg)
	t.TextMuted = coalesce(t.TextMuted, t.FgMuted)
	t.Highlight = coalesce(t.Highlight, t.BgSelection, t.Accent)
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Available lists the embedded theme names, dark themes first.
func Available() []string {
	entries, _ := fs.ReadDir(embeddedThemes, "embedded")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	slices.SortStableFunc(names, func(a, b string) int {
		return rank(a) - rank(b)
	})
	return names
}

// rank orders the catppuccin flavours from darkest to lightest and puts
// anything else after them.
func rank(name string) int {
	if i := slices.Index([]string{"mocha", "macchiato", "frappe", "latte"}, name); i >= 0 {
		return i
	}
	return 10
}

// IsAvailable reports whether name is an embedded theme, ignoring case.
func IsAvailable(name string) bool {
	return slices.Contains(Available(), strings.ToLower(name))
}
