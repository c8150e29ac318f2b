package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/mitplan/internal/cooldown"
	"github.com/javiermolinar/mitplan/internal/timefmt"
	"github.com/javiermolinar/mitplan/internal/tui/input"
	"github.com/javiermolinar/mitplan/internal/tui/view"
)

const promptMaxLines = 4

// View renders the TUI.
func (m Model) View() string {
	return view.Render(view.Screen{
		Width:   m.width,
		Height:  m.height,
		Base:    m.renderApp(),
		Modal:   m.renderModal(),
		ModalBg: m.styles.ModalBgColor,
	})
}

func (m Model) renderApp() string {
	st := m.styles
	innerW := max(m.width-st.AppStyle.GetHorizontalFrameSize(), 0)
	innerH := max(m.height-st.AppStyle.GetVerticalFrameSize(), 0)
	if innerW <= rowHeaderWidth || innerH < 8 {
		return "Terminal too small"
	}

	title := m.renderTitle(innerW)
	footer := view.RenderFooter(m.footerModel(innerW))
	gridH := max(innerH-lipgloss.Height(title)-lipgloss.Height(footer), 0)
	grid := view.PlaceBox(innerW, gridH, lipgloss.Top, strings.Join(m.renderGrid(m.gridLayout()), "\n"), st.colorBg)

	content := lipgloss.JoinVertical(lipgloss.Left, title, grid, footer)
	app := st.AppStyle.Render(content)
	return view.FillBackground(app, m.width, m.height, st.colorBg)
}

func (m Model) footerModel(innerW int) view.FooterModel {
	st := m.styles
	info, bad := m.infoText()
	infoStyle := st.InfoStyle
	if bad {
		infoStyle = st.InfoBadStyle
	}

	promptWidth := innerW - st.PromptStyle.GetHorizontalFrameSize()
	lines := view.PromptLines(view.PromptState{
		Value:      m.prompt.Value(),
		Cursor:     "_",
		ModePrompt: m.mode == ModePrompt,
	}, promptWidth, input.Commands)

	return view.FooterModel{
		InnerW:      innerW,
		InfoText:    info,
		StatusText:  m.statusText(),
		HelpText:    m.helpText(),
		PromptLines: view.ClampPromptLines(lines, promptMaxLines, promptWidth),
		ShowPrompt:  m.mode == ModePrompt,
		InfoStyle:   infoStyle,
		StatusStyle: st.StatusStyle,
		HelpStyle:   st.HelpStyle,
		PromptStyle: st.PromptStyle,
		Bg:          st.colorBg,
	}
}

// infoText describes the preview while placing, otherwise what is under
// the cursor. bad reports a preview that cannot be committed.
func (m Model) infoText() (text string, bad bool) {
	if m.mode == ModePlace || m.mode == ModeMove {
		p := m.preview
		var b strings.Builder
		fmt.Fprintf(&b, "%s at %s", m.pending.Name, timefmt.FormatSpan(p.Start, p.Start+m.pending.Duration))
		if p.Start != p.Raw {
			fmt.Fprintf(&b, " (snapped from %s)", timefmt.Format(p.Raw))
		}
		switch {
		case !p.InBounds:
			b.WriteString("  past the end of the fight")
		case p.Conflict:
			b.WriteString("  on cooldown")
		default:
			b.WriteString("  ok")
		}
		fmt.Fprintf(&b, "  valid: %s", formatZones(p.Zones))
		return b.String(), !p.Valid()
	}

	slot := m.slot()
	parts := []string{fmt.Sprintf("%s %s", m.catalog.SlotLabel(slot), timefmt.Format(m.cursor))}
	for _, e := range m.board.At(slot, m.cursor) {
		parts = append(parts, fmt.Sprintf("%s %s", e.Ability.Name, timefmt.FormatSpan(e.Start, e.End())))
	}
	for _, a := range m.board.Timeline.AttacksBetween(m.cursor, m.cursor+m.secondsPerCol()) {
		parts = append(parts, fmt.Sprintf("%s (%s)", a.Name, a.Type))
	}
	return strings.Join(parts, "  "), false
}

func formatZones(zones []cooldown.TimeRange) string {
	if len(zones) == 0 {
		return "none"
	}
	parts := make([]string, len(zones))
	for i, z := range zones {
		parts[i] = timefmt.FormatSpan(z.Start, z.End)
	}
	return strings.Join(parts, ", ")
}

func (m Model) statusText() string {
	switch {
	case m.statusMsg != "":
		return m.statusMsg
	case m.busy:
		return "Waiting for the LLM..."
	case m.dirty:
		return "Unsaved changes"
	}
	return ""
}

func (m Model) helpText() string {
	switch m.mode {
	case ModePlace, ModeMove:
		return m.help.View(placeHelp{m.keys})
	case ModePrompt:
		return "enter run • tab complete • esc cancel"
	case ModePick:
		return "j/k select • enter choose • 1-9 quick pick • esc cancel"
	case ModeModal:
		return ""
	}
	return m.help.View(m.keys)
}

// renderModal renders the active modal, or "" when none is open.
func (m Model) renderModal() string {
	st := m.styles
	modal := st.Modal
	width := view.ModalContentWidth(modal.Frame, 60)

	if m.mode == ModePick {
		title := fmt.Sprintf("Add to %s (%s) at %s", m.catalog.SlotLabel(m.slot()), m.board.Party[m.slot()], timefmt.Format(m.cursor))
		body := view.RenderListBody(m.pickListItems(), m.pickIndex, 12, "", st.listStyles())
		return view.RenderModalFrame(title, body, view.ListFooter(modal), modal)
	}
	if m.mode != ModeModal {
		return ""
	}

	switch m.modalType {
	case ModalHelp:
		body := m.help.FullHelpView(m.keys.FullHelp())
		return view.RenderModalFrame("Keys", body, view.RenderModalButtons(modal, "[Esc] Close"), modal)

	case ModalCoverage:
		modal.Frame = st.ModalWideStyle
		width = view.ModalContentWidth(modal.Frame, 80)
		body := view.RenderLines(view.BuildCoverageLines(m.coverage), st.lineStyles(), width) +
			"\n\n" + view.RenderCoverageTable(m.coverage, width, st.Coverage)
		return view.RenderModalFrame("Coverage", body, view.CoverageFooter(m.coverage.Insight != "", modal), modal)

	case ModalSuggest:
		body := view.RenderLines(view.BuildSuggestLines(m.suggestion, m.suggestInput), st.lineStyles(), width)
		return view.RenderModalFrame("Suggestions", body, view.SuggestFooter(len(m.suggestion.Accepted), modal), modal)

	case ModalConfirmQuit:
		body := view.RenderConfirmQuitBody(m.plan.Name, modal.Body)
		return view.RenderModalFrame("Unsaved changes", body, view.ConfirmQuitFooter(modal), modal)

	case ModalOpen:
		items := make([]view.ListItem, len(m.plans))
		for i, p := range m.plans {
			items[i] = view.ListItem{Label: p.Name, Detail: fmt.Sprintf("%s, %d placement(s)", p.BossID, p.Placements)}
		}
		body := view.RenderListBody(items, m.planIndex, 12, "No saved plans.", st.listStyles())
		return view.RenderModalFrame("Open plan", body, view.ListFooter(modal), modal)
	}
	return ""
}

// pickListItems lists the abilities of the cursor slot, marking the ones
// that cannot start at the cursor.
func (m Model) pickListItems() []view.ListItem {
	items := make([]view.ListItem, len(m.pickItems))
	for i, a := range m.pickItems {
		detail := fmt.Sprintf("%3ds / %3ds", a.Duration, a.Cooldown)
		if n := a.MaxCharges(); n > 1 {
			detail += fmt.Sprintf(" x%d", n)
		}
		if r := a.Reach(); r != "party" {
			detail += " " + r
		}
		ready := m.board.Check(a, m.cursor, "") == nil
		if !ready {
			detail += "  not ready"
		}
		label := a.Name
		if i < 9 {
			label = fmt.Sprintf("%d %s", i+1, a.Name)
		}
		items[i] = view.ListItem{Label: label, Detail: detail, Disabled: !ready}
	}
	return items
}
