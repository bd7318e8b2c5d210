package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vladelaina/NekoTick-sub003/internal/model"
	"github.com/vladelaina/NekoTick-sub003/internal/mutate"
)

type groupItem struct {
	group model.Group
	count int
}

func (i groupItem) FilterValue() string { return i.group.Name }

func (i groupItem) Title() string {
	name := i.group.Name
	if i.group.Icon != "" {
		name = i.group.Icon + " " + name
	}
	return name
}

func (i groupItem) Description() string {
	switch i.count {
	case 1:
		return "1 task"
	default:
		return fmt.Sprintf("%d tasks", i.count)
	}
}

func newGroupList() list.Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Groups"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return l
}

func (m *appModel) openGroupPicker() {
	counts := map[string]int{}
	for _, t := range m.db.Tasks {
		counts[t.GroupID]++
	}
	items := make([]list.Item, 0, len(m.db.Groups))
	for _, g := range m.db.Groups {
		if g.Archived {
			continue
		}
		items = append(items, groupItem{group: g, count: counts[g.ID]})
	}
	m.groupList.SetItems(items)
	m.groupList.SetSize(m.width, m.contentHeight())
	if m.groupPickFor == "" {
		m.groupList.Title = "Groups"
	} else {
		m.groupList.Title = "Move task to group"
	}
	m.view = viewGroups
}

func (m appModel) handleGroupsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.view = viewBoard
		return m, nil
	case key.Matches(msg, m.keys.Open):
		it, ok := m.groupList.SelectedItem().(groupItem)
		if !ok {
			return m, nil
		}
		(&m).pickGroup(it.group.ID)
		return m, nil
	}

	if msg.String() == "n" && !m.groupList.SettingFilter() {
		m.inputMode = inputNewGroup
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.groupList, cmd = m.groupList.Update(msg)
	return m, cmd
}

func (m *appModel) pickGroup(groupID string) {
	now := time.Now().UTC()
	if m.groupPickFor != "" {
		res, err := mutate.MoveTaskToGroup(m.db, m.groupPickFor, groupID, now)
		if err != nil {
			m.status = err.Error()
		} else {
			m.commit(res.Changed, "task.move_group", m.groupPickFor, res.EventPayload)
		}
		m.groupPickFor = ""
		m.view = viewBoard
		m.rebuild()
		return
	}

	m.groupID = groupID
	if res, err := mutate.SetCurrentGroup(m.db, groupID); err == nil {
		m.commit(res.Changed, "group.current", "", res.EventPayload)
	}
	m.view = viewBoard
	m.cursor, m.scroll = 0, 0
	m.rebuild()
}
