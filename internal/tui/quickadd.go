package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vladelaina/NekoTick-sub003/internal/mutate"
)

// handleInputKey drives the one active text input. Esc abandons, enter
// (ctrl+s for the notes textarea) commits; nothing touches the snapshot
// until then.
func (m appModel) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.inputMode == inputNotes {
		return m.handleNotesKey(msg)
	}

	switch msg.String() {
	case "esc":
		(&m).closeInput()
		return m, nil
	case "enter":
		(&m).commitInput()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) handleNotesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		(&m).closeInput()
		return m, nil
	case "ctrl+s":
		now := time.Now().UTC()
		res, err := mutate.SetTaskNotes(m.db, m.inputFor, m.notes.Value(), now)
		if err != nil {
			m.status = err.Error()
		} else {
			(&m).commit(res.Changed, "task.notes", m.inputFor, res.EventPayload)
		}
		(&m).closeInput()
		return m, nil
	}

	var cmd tea.Cmd
	m.notes, cmd = m.notes.Update(msg)
	return m, cmd
}

func (m *appModel) closeInput() {
	m.inputMode = inputNone
	m.inputFor = ""
	m.input.Blur()
	m.notes.Blur()
}

func (m *appModel) commitInput() {
	value := strings.TrimSpace(m.input.Value())
	mode, forID := m.inputMode, m.inputFor
	m.closeInput()
	if value == "" {
		return
	}
	now := time.Now().UTC()

	switch mode {
	case inputNewTask:
		res, err := mutate.CreateTask(m.db, m.groupID, nil, value, now)
		if err != nil {
			m.status = err.Error()
			return
		}
		if res.Task != nil {
			m.commit(res.Changed, "task.create", res.Task.ID, res.EventPayload)
			m.selectTask(res.Task.ID)
		}

	case inputNewChild:
		parent := forID
		res, err := mutate.CreateTask(m.db, m.groupID, &parent, value, now)
		if err != nil {
			m.status = err.Error()
			return
		}
		if res.Task != nil {
			m.commit(res.Changed, "task.create", res.Task.ID, res.EventPayload)
			m.selectTask(res.Task.ID)
		}

	case inputEditTitle:
		res, err := mutate.SetTaskContent(m.db, forID, value, now)
		if err != nil {
			m.status = err.Error()
			return
		}
		m.commit(res.Changed, "task.content", forID, res.EventPayload)

	case inputNewGroup:
		res, err := mutate.CreateGroup(m.db, value, "", now)
		if err != nil {
			m.status = err.Error()
			return
		}
		if res.Group != nil {
			m.commit(res.Changed, "group.create", "", res.EventPayload)
			m.groupID = res.Group.ID
			if sres, err := mutate.SetCurrentGroup(m.db, res.Group.ID); err == nil {
				m.commit(sres.Changed, "group.current", "", sres.EventPayload)
			}
			m.view = viewBoard
			m.rebuild()
		}
	}
}
