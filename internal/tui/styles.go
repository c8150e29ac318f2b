// Package tui provides the terminal user interface for mitplan.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/mitplan/internal/tui/theme"
	"github.com/javiermolinar/mitplan/internal/tui/view"
)

// Grid cell styles, indexes into Styles.cells. Job bar styles follow
// numCellStyles and are allocated per render.
const (
	cellEmpty = iota
	cellRuler
	cellCooldown
	cellValid
	cellBlocked
	cellPreview
	cellPreviewBad
	cellCursor
	cellPhysical
	cellMagical
	numCellStyles
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	colorBg lipgloss.Color

	cells []lipgloss.Style

	TitleStyle     lipgloss.Style
	TitleMetaStyle lipgloss.Style
	DirtyStyle     lipgloss.Style
	RowHeaderStyle lipgloss.Style
	RowActiveStyle lipgloss.Style
	InfoStyle      lipgloss.Style
	InfoBadStyle   lipgloss.Style
	StatusStyle    lipgloss.Style
	HelpStyle      lipgloss.Style
	PromptStyle    lipgloss.Style
	AppStyle       lipgloss.Style
	ModalWideStyle lipgloss.Style
	ModalBgColor   lipgloss.Color
	ModalMetaStyle lipgloss.Style
	ModalSection   lipgloss.Style
	ModalSelected  lipgloss.Style
	ModalWarning   lipgloss.Style
	Modal          view.ModalStyles
	Coverage       view.CoverageStyles
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)
	s := &Styles{palette: p, colorBg: p.Bg}

	base := lipgloss.NewStyle().Background(p.Bg).Foreground(p.Fg)

	s.cells = make([]lipgloss.Style, numCellStyles)
	s.cells[cellEmpty] = base
	s.cells[cellRuler] = base.Foreground(p.FgMuted)
	s.cells[cellCooldown] = base.Foreground(p.FgMuted)
	s.cells[cellValid] = lipgloss.NewStyle().Background(p.ValidBg).Foreground(p.Valid)
	s.cells[cellBlocked] = lipgloss.NewStyle().Background(p.BlockedBg).Foreground(p.Blocked)
	s.cells[cellPreview] = lipgloss.NewStyle().Background(p.Valid).Foreground(p.TextOnValid).Bold(true)
	s.cells[cellPreviewBad] = lipgloss.NewStyle().Background(p.Blocked).Foreground(p.TextOnBlocked).Bold(true)
	s.cells[cellCursor] = lipgloss.NewStyle().Background(p.Cursor).Foreground(p.TextOnCursor).Bold(true)
	s.cells[cellPhysical] = base.Foreground(p.Physical).Bold(true)
	s.cells[cellMagical] = base.Foreground(p.Magical).Bold(true)

	s.TitleStyle = base.Bold(true).Foreground(p.Accent)
	s.TitleMetaStyle = base.Foreground(p.FgMuted)
	s.DirtyStyle = base.Foreground(p.Warning).Bold(true)

	s.RowHeaderStyle = base.Width(rowHeaderWidth)
	s.RowActiveStyle = lipgloss.NewStyle().
		Width(rowHeaderWidth).
		Background(p.BgSelection).
		Foreground(p.Accent).
		Bold(true)

	s.InfoStyle = base
	s.InfoBadStyle = base.Foreground(p.Blocked).Bold(true)
	s.StatusStyle = base.Foreground(p.Warning).Bold(true)
	s.HelpStyle = base.Foreground(p.FgMuted)

	s.PromptStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Accent).
		BorderBackground(p.Bg).
		Background(p.BgSelection).
		Foreground(p.Fg).
		Bold(true).
		Padding(0, 1)

	s.AppStyle = lipgloss.NewStyle().
		Background(p.Bg).
		PaddingTop(1).
		PaddingLeft(1).
		PaddingRight(1)

	modal := p.Modal
	s.ModalBgColor = modal.Bg
	s.Modal = view.ModalStyles{
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(modal.Border).
			Background(modal.Bg).
			Foreground(modal.Text).
			Padding(1, 1).
			Width(64).
			Align(lipgloss.Left),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(modal.Text).
			Background(modal.Bg).
			Padding(0, 1),
		Footer: lipgloss.NewStyle().
			Padding(0, 1).
			Background(modal.Bg),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(modal.Text).
			Background(modal.Bg),
		Body: lipgloss.NewStyle().
			Foreground(modal.Text).
			Background(modal.Bg),
		Button: lipgloss.NewStyle().
			Background(modal.Panel).
			Foreground(modal.Text).
			Padding(0, 2),
		ButtonActive: lipgloss.NewStyle().
			Background(modal.Highlight).
			Foreground(modal.ReverseText).
			Padding(0, 2).
			Underline(true),
	}
	s.ModalWideStyle = s.Modal.Frame.Width(88)

	s.ModalMetaStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Background(modal.Bg)
	s.ModalSection = lipgloss.NewStyle().
		Foreground(modal.Text).
		Bold(true).
		Background(modal.Bg)
	s.ModalSelected = lipgloss.NewStyle().
		Background(modal.Highlight).
		Foreground(modal.ReverseText).
		Bold(true)
	s.ModalWarning = lipgloss.NewStyle().
		Foreground(p.Warning).
		Background(modal.Bg)

	cell := s.Modal.Body.Padding(0, 1)
	s.Coverage = view.CoverageStyles{
		Header:    cell.Bold(true),
		Cell:      cell,
		Physical:  cell.Foreground(p.Physical),
		Magical:   cell.Foreground(p.Magical),
		Uncovered: cell.Foreground(p.Warning).Bold(true),
		Border:    lipgloss.NewStyle().Foreground(modal.Border).Background(modal.Bg),
	}

	return s
}

// lineStyles returns the styles for modal line bodies.
func (s *Styles) lineStyles() view.LineStyles {
	return view.LineStyles{
		Body:    s.Modal.Body,
		Meta:    s.ModalMetaStyle,
		Section: s.ModalSection,
		Warning: s.ModalWarning,
	}
}

// listStyles returns the styles for selection lists.
func (s *Styles) listStyles() view.ListStyles {
	return view.ListStyles{
		Body:     s.Modal.Body,
		Meta:     s.ModalMetaStyle,
		Selected: s.ModalSelected,
	}
}

// cellTable returns the grid style table extended with bar styles for the
// given job colors. Each color gets a base and an alternate shade; the
// returned map holds the base index, the alternate is base+1.
func (s *Styles) cellTable(jobColors []string) ([]lipgloss.Style, map[string]int) {
	table := append([]lipgloss.Style(nil), s.cells...)
	index := make(map[string]int, len(jobColors))
	for _, c := range jobColors {
		if _, ok := index[c]; ok {
			continue
		}
		index[c] = len(table)
		for _, alt := range []bool{false, true} {
			bg := s.palette.EffectBg(c, alt)
			table = append(table, lipgloss.NewStyle().Background(bg).Foreground(s.palette.TextOn(bg)))
		}
	}
	return table, index
}
