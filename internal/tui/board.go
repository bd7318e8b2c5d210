package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vladelaina/NekoTick-sub003/internal/drag"
	"github.com/vladelaina/NekoTick-sub003/internal/model"
	"github.com/vladelaina/NekoTick-sub003/internal/mutate"
	"github.com/vladelaina/NekoTick-sub003/internal/section"
	"github.com/vladelaina/NekoTick-sub003/internal/store"
	"github.com/vladelaina/NekoTick-sub003/internal/tree"
)

type rowKind int

const (
	rowDivider rowKind = iota
	rowTask
)

// boardRow is one rendered line of the board. Divider rows carry the
// section identity so a drop on one resolves the same transition as a
// drop on a row of that section.
type boardRow struct {
	kind    rowKind
	section section.Section
	row     tree.Row
	count   int // divider rows: tasks in the section
}

var boardSections = []section.Section{section.Todo, section.Scheduled, section.Completed}

// buildBoardRows lays the group out as three sections. A task surfaces
// under the section of its subtree root; subtrees ride whole so nesting
// survives a parent being scheduled or completed.
func buildBoardRows(db *store.DB, groupID string) []boardRow {
	var out []boardRow
	for _, sec := range boardSections {
		sec := sec
		rows := tree.FlattenRoots(db.Tasks, groupID, true, func(t model.Task) bool {
			return section.Of(t) == sec
		})
		out = append(out, boardRow{kind: rowDivider, section: sec, count: len(rows)})
		for _, r := range rows {
			out = append(out, boardRow{kind: rowTask, section: sec, row: r})
		}
	}
	return out
}

func sectionColor(s section.Section) lipgloss.AdaptiveColor {
	switch s {
	case section.Scheduled:
		return colorScheduled
	case section.Completed:
		return colorCompleted
	default:
		return colorTodo
	}
}

func sectionGlyph(s section.Section) string {
	switch s {
	case section.Completed:
		return "✔"
	case section.Scheduled:
		return "◷"
	default:
		return "●"
	}
}

func sectionTitle(s section.Section) string {
	n := string(s)
	if n == "" {
		return n
	}
	return strings.ToUpper(n[:1]) + n[1:]
}

func (m appModel) viewBoard() string {
	boardW := m.boardWidth()
	board := m.renderBoardPane(boardW)
	if !m.gridVisible() {
		return board
	}
	lay, _ := m.weekLayout()
	grid := m.renderWeekPane(lay)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		normalizePane(board, boardW, m.contentHeight()),
		normalizePane(" ", 1, m.contentHeight()),
		grid,
	)
}

func (m appModel) renderBoardPane(width int) string {
	visible := m.contentHeight()
	var b strings.Builder
	for i := m.scroll; i < len(m.rows) && i-m.scroll < visible; i++ {
		if i > m.scroll {
			b.WriteString("\n")
		}
		b.WriteString(m.renderBoardRow(i, width))
	}
	if len(m.rows) == 0 {
		b.WriteString(styleMuted().Render(" no tasks - press a to add one"))
	}
	return b.String()
}

func (m appModel) renderBoardRow(i, width int) string {
	r := m.rows[i]
	hovered := m.drag != nil && m.drag.started && !m.drag.overGrid && m.drag.hoverIndex == i

	if r.kind == rowDivider {
		label := styleDivider().Foreground(sectionColor(r.section)).Render(sectionTitle(r.section))
		count := styleMuted().Render(fmt.Sprintf(" · %d", r.count))
		line := label + count
		if hovered {
			line = lipgloss.NewStyle().Background(colorDragBg).Render(sectionTitle(r.section) + fmt.Sprintf(" · %d", r.count))
		}
		return fitWidth(line, width)
	}

	t := r.row.Task
	sec := section.Of(t)

	fold := " "
	if r.row.HasChildren {
		fold = "▾"
		if t.Collapsed {
			fold = "▸"
		}
	}

	glyph := lipgloss.NewStyle().Foreground(sectionColor(sec)).Render(sectionGlyph(sec))
	content := trimContent(t.Content)
	if sec == section.Completed {
		content = lipgloss.NewStyle().Strikethrough(true).Render(content)
	}

	when := ""
	if t.StartDate != nil {
		when = "  " + styleMuted().Render(t.StartDate.Local().Format("Jan 02 15:04"))
	}

	line := strings.Repeat("  ", r.row.Depth) + fold + " " + glyph + " " + content + when

	dragged := m.drag != nil && m.drag.started && m.drag.taskID == t.ID
	switch {
	case dragged:
		line = faintIfDark(lipgloss.NewStyle()).Render(fitWidth(line, width))
	case hovered:
		marker := ""
		if m.drag.indent() >= m.dragCfg().IndentThreshold {
			marker = " ↳"
		}
		line = lipgloss.NewStyle().Background(colorDragBg).Render(fitWidth(line+marker, width))
	case i == m.cursor && m.view == viewBoard:
		line = styleSelected().Render(fitWidth(line, width))
	default:
		line = fitWidth(line, width)
	}
	return line
}

// boardRowAt maps a screen cell to a board row index.
func (m appModel) boardRowAt(x, y int) (int, bool) {
	if m.view != viewBoard || x >= m.boardWidth() {
		return 0, false
	}
	idx := y - headerLines + m.scroll
	if y < headerLines || idx < 0 || idx >= len(m.rows) {
		return 0, false
	}
	return idx, true
}

func (m appModel) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	now := time.Now().UTC()

	switch {
	case key.Matches(msg, k.Down):
		(&m).moveCursor(1)
	case key.Matches(msg, k.Up):
		(&m).moveCursor(-1)

	case key.Matches(msg, k.MoveDown):
		(&m).reorderSelected(1, now)
	case key.Matches(msg, k.MoveUp):
		(&m).reorderSelected(-1, now)

	case key.Matches(msg, k.Indent):
		(&m).indentSelected(now)
	case key.Matches(msg, k.Outdent):
		(&m).outdentSelected(now)

	case key.Matches(msg, k.Add):
		m.inputMode = inputNewTask
		m.inputFor = ""
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink
	case key.Matches(msg, k.AddChild):
		if t, ok := m.selectedTask(); ok {
			m.inputMode = inputNewChild
			m.inputFor = t.ID
			m.input.SetValue("")
			m.input.Focus()
			return m, textinput.Blink
		}
	case key.Matches(msg, k.Edit):
		if t, ok := m.selectedTask(); ok {
			m.inputMode = inputEditTitle
			m.inputFor = t.ID
			m.input.SetValue(t.Content)
			m.input.CursorEnd()
			m.input.Focus()
			return m, textinput.Blink
		}
	case key.Matches(msg, k.Delete):
		if t, ok := m.selectedTask(); ok {
			res, err := mutate.DeleteTask(m.db, t.ID, now)
			if err != nil {
				m.status = err.Error()
				break
			}
			(&m).commit(res.Changed, "task.delete", t.ID, res.EventPayload)
		}

	case key.Matches(msg, k.Complete):
		if t, ok := m.selectedTask(); ok {
			res, err := mutate.CompleteTask(m.db, t.ID, !t.Completed, now)
			if err != nil {
				m.status = err.Error()
				break
			}
			(&m).commit(res.Changed, "task.complete", t.ID, res.EventPayload)
			(&m).selectTask(t.ID)
		}
	case key.Matches(msg, k.Schedule):
		(&m).toggleSchedule(now)
	case key.Matches(msg, k.Collapse):
		if t, ok := m.selectedTask(); ok {
			res, err := mutate.SetTaskCollapsed(m.db, t.ID, !t.Collapsed, now)
			if err != nil {
				m.status = err.Error()
				break
			}
			(&m).commit(res.Changed, "task.collapse", t.ID, res.EventPayload)
			(&m).selectTask(t.ID)
		}

	case key.Matches(msg, k.Open):
		if t, ok := m.selectedTask(); ok {
			m.openTaskID = t.ID
			m.view = viewDetail
		}
	case key.Matches(msg, k.ToggleView):
		m.view = viewWeek
	case key.Matches(msg, k.Groups):
		m.groupPickFor = ""
		(&m).openGroupPicker()
	case key.Matches(msg, k.Move):
		if t, ok := m.selectedTask(); ok {
			m.groupPickFor = t.ID
			(&m).openGroupPicker()
		}
	}
	return m, nil
}

func (m *appModel) moveCursor(delta int) {
	next := m.cursor
	for {
		next += delta
		if next < 0 || next >= len(m.rows) {
			return
		}
		if m.rows[next].kind == rowTask {
			break
		}
	}
	m.cursor = next
	m.clampScroll()
}

// reorderSelected moves the selected task one slot within its sibling
// run. The edges are rejected drops, not wraps.
func (m *appModel) reorderSelected(delta int, now time.Time) {
	t, ok := m.selectedTask()
	if !ok {
		return
	}
	sibs := tree.Children(m.db.Tasks, t.ParentID, t.GroupID)
	idx := -1
	for i := range sibs {
		if sibs[i].ID == t.ID {
			idx = i
			break
		}
	}
	if idx < 0 || idx+delta < 0 || idx+delta >= len(sibs) {
		return
	}
	res, err := mutate.ReorderTask(m.db, t.ID, idx+delta, now)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.commit(res.Changed, "task.reorder", t.ID, res.EventPayload)
	m.selectTask(t.ID)
}

// indentSelected nests the selected task under its previous sibling.
func (m *appModel) indentSelected(now time.Time) {
	t, ok := m.selectedTask()
	if !ok {
		return
	}
	sibs := tree.Children(m.db.Tasks, t.ParentID, t.GroupID)
	var prev *model.Task
	for i := range sibs {
		if sibs[i].ID == t.ID {
			break
		}
		prev = &sibs[i]
	}
	if prev == nil {
		return
	}
	res, err := mutate.NestTask(m.db, t.ID, prev.ID, now)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.commit(res.Changed, "task.set_parent", t.ID, res.EventPayload)
	m.selectTask(t.ID)
}

// outdentSelected lifts the selected task to its grandparent's level.
func (m *appModel) outdentSelected(now time.Time) {
	t, ok := m.selectedTask()
	if !ok || t.ParentID == nil {
		return
	}
	parent, ok := m.db.FindTask(*t.ParentID)
	if !ok {
		return
	}
	grand := ""
	if parent.ParentID != nil {
		grand = *parent.ParentID
	}
	res, err := mutate.NestTask(m.db, t.ID, grand, now)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.commit(res.Changed, "task.set_parent", t.ID, res.EventPayload)
	m.selectTask(t.ID)
}

// toggleSchedule flips the selected task between Todo and Scheduled, the
// keyboard twin of dragging across the section divider.
func (m *appModel) toggleSchedule(now time.Time) {
	t, ok := m.selectedTask()
	if !ok {
		return
	}
	to := section.Scheduled
	if section.Of(*t) == section.Scheduled {
		to = section.Todo
	}
	res, err := mutate.TransitionSection(m.db, t.ID, to, now, drag.DefaultDuration)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.commit(res.Changed, "task.section", t.ID, res.EventPayload)
	m.selectTask(t.ID)
}
