package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/mitplan/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ensureCursorVisible()
		return m, nil

	case commands.PlanLoadedMsg:
		cmd, err := m.loadPlan(msg.Plan)
		if err != nil {
			return m, m.setStatus("Error: %v", err)
		}
		m.closeModal()
		m.ensureCursorVisible()
		return m, cmd

	case commands.PlansListedMsg:
		m.plans = msg.Plans
		m.planIndex = 0
		m.openModal(ModalOpen)
		return m, nil

	case commands.PlanSavedMsg:
		m.dirty = false
		if m.quitAfterSave {
			return m, tea.Quit
		}
		return m, m.setStatus("Saved %s (%d placements)", msg.ID, msg.Placements)

	case commands.SuggestResultMsg:
		m.busy = false
		m.suggestion = msg.Result
		m.openModal(ModalSuggest)
		m.statusMsg = ""
		return m, nil

	case commands.InsightMsg:
		m.busy = false
		if m.coverage != nil {
			m.coverage.Insight = msg.Text
		}
		m.openModal(ModalCoverage)
		m.statusMsg = ""
		return m, nil

	case commands.ErrMsg:
		m.busy = false
		m.quitAfterSave = false
		m.logger.Error().Err(msg.Err).Msg("command failed")
		m.statusMsg = "Error: " + msg.Err.Error()
		m.statusTime = time.Now().Add(5 * time.Second)
		return m, commands.ClearStatusAfter(5 * time.Second)

	case commands.StatusMsgCmd:
		return m, m.setStatus("%s", msg.Msg)

	case commands.ClearStatusMsg:
		if !time.Now().Before(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil
	}

	if m.mode == ModePrompt {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) openModal(t ModalType) {
	m.mode = ModeModal
	m.modalType = t
}

func (m *Model) closeModal() {
	m.mode = ModeNormal
	m.modalType = ModalNone
}
