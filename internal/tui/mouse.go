package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/mitplan/internal/board"
)

// handleMouseMsg moves the cursor on click. While placing or moving, the
// preview follows the pointer with the effect centred on it and a click
// commits.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != ModeNormal && m.mode != ModePlace && m.mode != ModeMove {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.moveCursor(-5 * m.secondsPerCol())
		m.refreshPreview()
		return m, nil
	case tea.MouseButtonWheelDown:
		m.moveCursor(5 * m.secondsPerCol())
		m.refreshPreview()
		return m, nil
	}

	row, second, ok := m.hit(msg.X, msg.Y)
	if !ok {
		return m, nil
	}

	placing := m.mode == ModePlace || m.mode == ModeMove
	switch {
	case placing && msg.Action == tea.MouseActionMotion:
		m.cursor = second
		m.updatePreview(board.Centered(second, m.pending))
	case placing && msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.cursor = second
		m.updatePreview(board.Centered(second, m.pending))
		return m.commit()
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.row = row
		m.cursor = second
	}
	return m, nil
}

// refreshPreview recomputes the preview from the cursor while placing.
func (m *Model) refreshPreview() {
	if m.mode == ModePlace || m.mode == ModeMove {
		m.updatePreview(m.cursor)
	}
}
