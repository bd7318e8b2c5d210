package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vladelaina/NekoTick-sub003/internal/mutate"
	"github.com/vladelaina/NekoTick-sub003/internal/section"
)

func (m appModel) viewDetail() string {
	t, ok := m.db.FindTask(m.openTaskID)
	if !ok {
		return styleMuted().Render(" task no longer exists - esc to go back")
	}

	width := m.width
	if width > 96 {
		width = 96
	}

	sec := section.Of(*t)
	title := lipgloss.NewStyle().Bold(true).Render(trimContent(t.Content))
	badge := lipgloss.NewStyle().Foreground(sectionColor(sec)).Render(sectionGlyph(sec) + " " + sectionTitle(sec))

	var meta []string
	if g, ok := m.db.FindGroup(t.GroupID); ok {
		meta = append(meta, "group: "+g.Name)
	}
	if t.StartDate != nil {
		when := t.StartDate.Local().Format("Mon Jan 02 15:04")
		if t.EndDate != nil {
			when += "-" + t.EndDate.Local().Format("15:04")
		}
		meta = append(meta, "scheduled: "+when)
	}
	if t.Color != "" {
		meta = append(meta, "color: "+t.Color)
	}
	meta = append(meta, "updated: "+t.UpdatedAt.Local().Format("2006-01-02 15:04"))

	lines := []string{
		badge + "  " + title,
		styleMuted().Render(strings.Join(meta, "   ")),
		"",
	}

	if m.inputMode == inputNotes {
		lines = append(lines, m.notes.View(), "", styleMuted().Render("ctrl+s save · esc cancel"))
		return strings.Join(lines, "\n")
	}
	if m.inputMode == inputEditTitle {
		lines = append(lines, m.inputPrompt()+m.input.View())
		return strings.Join(lines, "\n")
	}

	if strings.TrimSpace(t.Notes) == "" {
		lines = append(lines, styleMuted().Render(" no notes - press n to write some"))
	} else {
		lines = append(lines, renderMarkdown(t.Notes, width-2))
	}
	return strings.Join(lines, "\n")
}

func (m appModel) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	now := time.Now().UTC()
	t, ok := m.db.FindTask(m.openTaskID)
	if !ok {
		m.view = viewBoard
		return m, nil
	}

	switch {
	case key.Matches(msg, k.Back):
		m.view = viewBoard
		(&m).selectTask(t.ID)
	case key.Matches(msg, k.Edit):
		m.inputMode = inputEditTitle
		m.inputFor = t.ID
		m.input.SetValue(t.Content)
		m.input.CursorEnd()
		m.input.Focus()
		return m, textinput.Blink
	case key.Matches(msg, k.Complete):
		res, err := mutate.CompleteTask(m.db, t.ID, !t.Completed, now)
		if err != nil {
			m.status = err.Error()
			break
		}
		(&m).commit(res.Changed, "task.complete", t.ID, res.EventPayload)
	default:
		if msg.String() == "n" {
			m.inputMode = inputNotes
			m.inputFor = t.ID
			m.notes.SetValue(t.Notes)
			m.notes.SetWidth(minInt(m.width-4, 92))
			m.notes.SetHeight(maxInt(m.contentHeight()-6, 3))
			m.notes.Focus()
			return m, textarea.Blink
		}
	}
	return m, nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
