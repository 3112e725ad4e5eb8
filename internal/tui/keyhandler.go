package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/taskroster/internal/task"
)

func (m Model) handleNormalKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		m.scrollToCursor()

	case "down", "j":
		if m.cursor < m.ctrl.Len()-1 {
			m.cursor++
		}
		m.scrollToCursor()

	case "g", "home":
		m.cursor = 0
		m.scrollToCursor()

	case "G", "end":
		m.cursor = max(m.ctrl.Len()-1, 0)
		m.scrollToCursor()

	case "e", "enter":
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		s, err := m.ctrl.BeginEdit(t)
		if err != nil {
			return m, nil
		}
		return m, m.openDialog(s)

	case "d":
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.pending++
		return m, executeCmd(m.ctx, m.ctrl, m.ctrl.DeleteRequest(t.ID))
	}

	return m, nil
}

func (m Model) handleEditingKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "esc":
		m.ctrl.CancelEdit()
		m.blurInputs()
		return m, nil

	case "tab", "down":
		return m, m.setFocus((m.focus + 1) % len(m.inputs))

	case "shift+tab", "up":
		return m, m.setFocus((m.focus + len(m.inputs) - 1) % len(m.inputs))

	case "enter":
		req, err := m.ctrl.SubmitRequest()
		if err != nil {
			return m, nil
		}
		m.pending++
		return m, executeCmd(m.ctx, m.ctrl, req)
	}

	// Everything else is typing into the focused field.
	before := m.inputs[m.focus].Value()
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if after := m.inputs[m.focus].Value(); after != before {
		_, _ = m.ctrl.UpdateField(task.Fields()[m.focus], after)
	}
	return m, cmd
}
