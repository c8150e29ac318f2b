package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/mitplan/internal/summary"
	"github.com/javiermolinar/mitplan/internal/timefmt"
	"github.com/javiermolinar/mitplan/internal/tui/commands"
	"github.com/javiermolinar/mitplan/internal/tui/input"
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.logger.Debug().Str("key", msg.String()).Int("mode", int(m.mode)).Msg("key")

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.mode {
	case ModePrompt:
		return m.handlePromptKeys(msg)
	case ModePick:
		return m.handlePickKeys(msg)
	case ModePlace, ModeMove:
		return m.handlePlaceKeys(msg)
	case ModeModal:
		return m.handleModalKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	step := m.secondsPerCol()

	switch {
	case key.Matches(msg, k.Quit):
		if m.dirty {
			m.openModal(ModalConfirmQuit)
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, k.Left):
		m.moveCursor(-step)
	case key.Matches(msg, k.Right):
		m.moveCursor(step)
	case key.Matches(msg, k.FarLeft):
		m.moveCursor(-10 * step)
	case key.Matches(msg, k.FarRight):
		m.moveCursor(10 * step)
	case key.Matches(msg, k.Up):
		m.row = max(m.row-1, 0)
	case key.Matches(msg, k.Down):
		m.row = min(m.row+1, len(m.catalog.Slots)-1)
	case key.Matches(msg, k.Next):
		m.nextPlacement()

	case key.Matches(msg, k.ZoomIn):
		m.zoom = max(m.zoom-1, 0)
		m.ensureCursorVisible()
	case key.Matches(msg, k.ZoomOut):
		m.zoom = min(m.zoom+1, len(zoomLevels)-1)
		m.ensureCursorVisible()

	case key.Matches(msg, k.Help):
		m.openModal(ModalHelp)
	case key.Matches(msg, k.Coverage):
		m.coverage = summary.Summarize(m.board)
		m.openModal(ModalCoverage)
	case key.Matches(msg, k.Prompt):
		m.mode = ModePrompt
		m.prompt.SetValue("")
		return m, m.prompt.Focus()

	case key.Matches(msg, k.Save):
		return m.save()
	case key.Matches(msg, k.Open):
		return m.openPlans("")

	case key.Matches(msg, k.Add):
		return m.startPick()
	case key.Matches(msg, k.Move):
		return m.startMove()
	case key.Matches(msg, k.Delete):
		return m.deleteUnderCursor()
	}
	return m, nil
}

// handlePickKeys handles the ability picker.
func (m Model) handlePickKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch s := msg.String(); {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = ModeNormal
	case key.Matches(msg, m.keys.Up):
		m.pickIndex = max(m.pickIndex-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.pickIndex = min(m.pickIndex+1, len(m.pickItems)-1)
	case key.Matches(msg, m.keys.Confirm):
		m.beginPlace(m.pickIndex)
	case len(s) == 1 && s[0] >= '1' && s[0] <= '9':
		if i := int(s[0] - '1'); i < len(m.pickItems) {
			m.beginPlace(i)
		}
	}
	return m, nil
}

// handlePlaceKeys handles keys while a placement or move is previewed.
func (m Model) handlePlaceKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	step := m.secondsPerCol()

	switch {
	case key.Matches(msg, k.Cancel):
		m.endPlace()
		return m, nil
	case key.Matches(msg, k.Confirm):
		return m.commit()
	case key.Matches(msg, k.Left):
		m.moveCursor(-step)
	case key.Matches(msg, k.Right):
		m.moveCursor(step)
	case key.Matches(msg, k.FarLeft):
		m.moveCursor(-10 * step)
	case key.Matches(msg, k.FarRight):
		m.moveCursor(10 * step)
	default:
		return m, nil
	}
	m.updatePreview(m.cursor)
	return m, nil
}

// handlePromptKeys handles keys in the command prompt.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePrompt()
		return m, nil
	case "enter":
		line := m.prompt.Value()
		m.closePrompt()
		return m.runPrompt(line)
	case "tab":
		if v, ok := input.PromptAutocomplete(m.prompt.Value(), input.Commands); ok {
			m.prompt.SetValue(v)
			m.prompt.CursorEnd()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// handleModalKeys handles keys while a modal is open.
func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := msg.String()
	switch m.modalType {
	case ModalHelp:
		if s == "esc" || s == "?" || s == "q" {
			m.closeModal()
		}

	case ModalCoverage:
		switch s {
		case "esc", "q", "c":
			m.closeModal()
		case "r":
			if m.coverage.Insight == "" {
				return m.review()
			}
		}

	case ModalSuggest:
		switch s {
		case "enter", "a":
			if len(m.suggestion.Accepted) > 0 {
				return m.applySuggestion()
			}
		case "m":
			m.closeModal()
			m.mode = ModePrompt
			m.prompt.SetValue("/more ")
			m.prompt.CursorEnd()
			return m, m.prompt.Focus()
		case "esc", "c":
			m.suggestion = nil
			m.closeModal()
		}

	case ModalConfirmQuit:
		switch s {
		case "s":
			m.quitAfterSave = true
			m.closeModal()
			return m.save()
		case "y":
			return m, tea.Quit
		case "n", "esc":
			m.closeModal()
		}

	case ModalOpen:
		switch {
		case key.Matches(msg, m.keys.Cancel):
			m.closeModal()
		case key.Matches(msg, m.keys.Up):
			m.planIndex = max(m.planIndex-1, 0)
		case key.Matches(msg, m.keys.Down):
			m.planIndex = min(m.planIndex+1, len(m.plans)-1)
		case key.Matches(msg, m.keys.Confirm):
			if len(m.plans) > 0 {
				return m, commands.LoadPlan(m.repo, m.plans[m.planIndex].ID)
			}
		}
	}
	return m, nil
}

func (m *Model) closePrompt() {
	m.prompt.Blur()
	m.prompt.SetValue("")
	m.mode = ModeNormal
}

// moveCursor shifts the time cursor, staying on the fight.
func (m *Model) moveCursor(delta int) {
	m.cursor = max(0, min(m.cursor+delta, m.board.Timeline.Duration))
	m.ensureCursorVisible()
}

// nextPlacement jumps to the next placement of the cursor slot, wrapping
// around to the first.
func (m *Model) nextPlacement() {
	entries := m.board.SlotEntries(m.slot())
	if len(entries) == 0 {
		return
	}
	next := entries[0]
	for _, e := range entries {
		if e.Start > m.cursor {
			next = e
			break
		}
	}
	m.cursor = next.Start
	m.ensureCursorVisible()
}

// ensureCursorVisible scrolls so that the cursor column is on screen.
func (m *Model) ensureCursorVisible() {
	step := m.secondsPerCol()
	span := m.gridCols() * step
	if span <= 0 {
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+span {
		m.offset = m.cursor - span + step
	}
	m.offset = max(0, m.offset/step*step)
}

func (m Model) save() (tea.Model, tea.Cmd) {
	if m.repo == nil {
		m.quitAfterSave = false
		return m, m.setStatus("No plan store configured")
	}
	return m, commands.SavePlan(m.repo, m.snapshot())
}

func (m Model) openPlans(id string) (tea.Model, tea.Cmd) {
	if m.repo == nil {
		return m, m.setStatus("No plan store configured")
	}
	if m.busy {
		return m, m.setStatus("Waiting for the LLM")
	}
	if id != "" {
		return m, commands.LoadPlan(m.repo, id)
	}
	return m, commands.ListPlans(m.repo)
}

func (m Model) startPick() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, m.setStatus("Waiting for the LLM")
	}
	m.pickItems = m.catalog.AbilitiesForSlot(m.board.Party, m.slot())
	if len(m.pickItems) == 0 {
		return m, m.setStatus("No job in %s", m.catalog.SlotLabel(m.slot()))
	}
	m.pickIndex = 0
	m.mode = ModePick
	return m, nil
}

func (m *Model) beginPlace(i int) {
	m.pending = m.pickItems[i]
	m.movingID = ""
	m.mode = ModePlace
	m.updatePreview(m.cursor)
}

func (m Model) startMove() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, m.setStatus("Waiting for the LLM")
	}
	entries := m.board.At(m.slot(), m.cursor)
	if len(entries) == 0 {
		return m, m.setStatus("Nothing to move at %s", timefmt.Format(m.cursor))
	}
	e := entries[0]
	m.pending = e.Ability
	m.movingID = e.ID
	m.cursor = e.Start
	m.mode = ModeMove
	m.updatePreview(m.cursor)
	return m, nil
}

func (m *Model) updatePreview(raw int) {
	m.preview = m.board.Preview(m.pending, raw, m.movingID)
}

func (m *Model) endPlace() {
	m.mode = ModeNormal
	m.movingID = ""
}

// commit places or moves the pending ability at the previewed start.
func (m Model) commit() (tea.Model, tea.Cmd) {
	p := m.preview
	switch {
	case !p.InBounds:
		return m, m.setStatus("%s does not fit before the end of the fight", m.pending.Name)
	case p.Conflict:
		return m, m.setStatus("%s is on cooldown at %s", m.pending.Name, timefmt.Format(p.Start))
	}

	verb := "Placed"
	var err error
	if m.movingID != "" {
		verb = "Moved"
		_, err = m.board.Move(m.movingID, p.Start)
	} else {
		_, err = m.board.Place(m.pending, p.Start)
	}
	if err != nil {
		return m, m.setStatus("Error: %v", err)
	}

	m.dirty = true
	m.cursor = p.Start
	m.endPlace()
	return m, m.setStatus("%s %s", verb, describe(m.pending, p.Start))
}

func (m Model) deleteUnderCursor() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, m.setStatus("Waiting for the LLM")
	}
	entries := m.board.At(m.slot(), m.cursor)
	if len(entries) == 0 {
		return m, m.setStatus("Nothing to delete at %s", timefmt.Format(m.cursor))
	}
	e := entries[0]
	if err := m.board.Remove(e.ID); err != nil {
		return m, m.setStatus("Error: %v", err)
	}
	m.dirty = true
	return m, m.setStatus("Removed %s", describe(e.Ability, e.Start))
}

func (m Model) applySuggestion() (tea.Model, tea.Cmd) {
	placed, errs := m.advisor.Apply(m.suggestion)
	for _, err := range errs {
		m.logger.Warn().Err(err).Msg("suggestion no longer fits")
	}
	if len(placed) > 0 {
		m.dirty = true
	}
	m.suggestion = nil
	m.closeModal()
	if len(errs) > 0 {
		return m, m.setStatus("Applied %d suggestion(s), %d no longer fit", len(placed), len(errs))
	}
	return m, m.setStatus("Applied %d suggestion(s)", len(placed))
}
