package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vladelaina/NekoTick-sub003/internal/drag"
	"github.com/vladelaina/NekoTick-sub003/internal/model"
	"github.com/vladelaina/NekoTick-sub003/internal/mutate"
	"github.com/vladelaina/NekoTick-sub003/internal/store"
)

type view int

const (
	viewBoard view = iota
	viewWeek
	viewDetail
	viewGroups
)

type inputMode int

const (
	inputNone inputMode = iota
	inputNewTask
	inputNewChild
	inputEditTitle
	inputNewGroup
	inputNotes
)

type changeMsg struct{ change store.Change }

type reloadTickMsg struct{}

const (
	headerLines = 2
	footerLines = 2
	minSplitW   = 96
	gutterW     = 6
)

type appModel struct {
	store    store.Store
	db       *store.DB
	saver    *store.Saver
	notifier *store.Notifier
	changes  <-chan store.Change

	width  int
	height int

	keys     keyMap
	help     help.Model
	showHelp bool

	view    view
	groupID string

	rows   []boardRow
	cursor int
	scroll int

	weekAnchor  time.Time
	gridMode    drag.Mode
	gridScroll  int
	rowsPerHour int

	drag *dragState

	input     textinput.Model
	notes     textarea.Model
	inputMode inputMode
	inputFor  string // task being edited, or parent of the new subtask

	groupList    list.Model
	groupPickFor string // task to move; "" means switch group

	openTaskID string

	status  string
	lastMod time.Time
}

func newAppModel(s store.Store, db *store.DB, saver *store.Saver, notifier *store.Notifier, changes <-chan store.Change) appModel {
	m := appModel{
		store:       s,
		db:          db,
		saver:       saver,
		notifier:    notifier,
		changes:     changes,
		keys:        newKeyMap(),
		help:        help.New(),
		view:        viewBoard,
		weekAnchor:  time.Now(),
		gridMode:    drag.ModeWeek,
		rowsPerHour: 2,
	}

	m.input = textinput.New()
	m.input.CharLimit = 0
	m.notes = textarea.New()
	m.notes.Placeholder = "Notes (markdown)"
	m.groupList = newGroupList()

	(&m).ensureGroup()
	m.groupID = db.CurrentGroupID
	if _, ok := db.FindGroup(m.groupID); !ok && len(db.Groups) > 0 {
		m.groupID = db.Groups[0].ID
	}
	(&m).rebuild()
	(&m).captureModTime()

	// Start scrolled to the working hours.
	m.gridScroll = 8 * m.rowsPerHour
	return m
}

// ensureGroup seeds the Inbox group on a fresh vault so the board always
// has a place to put tasks.
func (m *appModel) ensureGroup() {
	if len(m.db.Groups) > 0 {
		return
	}
	res, err := mutate.CreateGroup(m.db, "Inbox", "", time.Now().UTC())
	if err != nil || !res.Changed {
		return
	}
	m.commit(true, "group.create", "", res.EventPayload)
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(waitChange(m.changes), tickReload())
}

func waitChange(ch <-chan store.Change) tea.Cmd {
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return nil
		}
		return changeMsg{change: c}
	}
}

func tickReload() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg { return reloadTickMsg{} })
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.groupList.SetSize(msg.Width, m.contentHeight())
		(&m).clampScroll()
		return m, nil

	case changeMsg:
		if msg.change.Kind == "reload" {
			(&m).reloadFromDisk()
		} else {
			(&m).rebuild()
		}
		return m, waitChange(m.changes)

	case reloadTickMsg:
		if m.storeChangedOnDisk() {
			(&m).reloadFromDisk()
		}
		return m, tickReload()

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if m.inputMode != inputNone {
			return m.handleInputKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil
	case key.Matches(msg, k.Reload):
		(&m).reloadFromDisk()
		return m, nil
	}

	switch m.view {
	case viewBoard:
		return m.handleBoardKey(msg)
	case viewWeek:
		return m.handleWeekKey(msg)
	case viewDetail:
		return m.handleDetailKey(msg)
	case viewGroups:
		return m.handleGroupsKey(msg)
	}
	return m, nil
}

func (m appModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	header := m.viewHeader()
	var body string
	switch m.view {
	case viewBoard:
		body = m.viewBoard()
	case viewWeek:
		body = m.viewWeekFull()
	case viewDetail:
		body = m.viewDetail()
	case viewGroups:
		body = m.groupList.View()
	}
	footer := m.viewFooter()

	body = normalizePane(body, m.width, m.contentHeight())
	return header + "\n" + body + "\n" + footer
}

func (m appModel) viewHeader() string {
	g, _ := m.db.FindGroup(m.groupID)
	name := "-"
	if g != nil {
		name = g.Name
		if g.Icon != "" {
			name = g.Icon + " " + name
		}
	}
	title := lipgloss.NewStyle().Bold(true).Render("NekoTick")
	where := styleMuted().Render(fmt.Sprintf("  %s  ·  %s", name, m.store.Dir))
	return fitWidth(title+where, m.width) + "\n" + fitWidth("", m.width)
}

func (m appModel) viewFooter() string {
	status := m.status
	if m.drag != nil && m.drag.started {
		status = m.dragFeedback()
	}
	if m.inputMode != inputNone && m.inputMode != inputNotes {
		status = m.inputPrompt() + m.input.View()
	}
	return fitWidth(styleMuted().Render(status), m.width) + "\n" + fitWidth(m.help.View(m.keys), m.width)
}

func (m appModel) inputPrompt() string {
	switch m.inputMode {
	case inputNewTask:
		return "new task: "
	case inputNewChild:
		return "new subtask: "
	case inputEditTitle:
		return "edit: "
	case inputNewGroup:
		return "new group: "
	}
	return ""
}

func (m appModel) contentHeight() int {
	h := m.height - headerLines - footerLines
	if h < 1 {
		h = 1
	}
	return h
}

// boardWidth is the columns given to the task list; the rest of the line
// belongs to the calendar grid when the split fits.
func (m appModel) boardWidth() int {
	if m.view != viewBoard {
		return m.width
	}
	if m.width < minSplitW {
		return m.width
	}
	return m.width * 2 / 5
}

func (m appModel) gridVisible() bool {
	if m.view == viewWeek {
		return true
	}
	return m.view == viewBoard && m.width >= minSplitW
}

// rebuild recomputes the board rows from the snapshot and keeps the
// cursor inside the list.
func (m *appModel) rebuild() {
	m.rows = buildBoardRows(m.db, m.groupID)
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.clampScroll()
}

func (m *appModel) clampScroll() {
	visible := m.contentHeight()
	if m.cursor < m.scroll {
		m.scroll = m.cursor
	}
	if m.cursor >= m.scroll+visible {
		m.scroll = m.cursor - visible + 1
	}
	if m.scroll < 0 {
		m.scroll = 0
	}

	total := 24 * m.rowsPerHour
	maxScroll := total - m.contentHeight()
	if maxScroll < 0 {
		maxScroll = 0
	}
	if m.gridScroll > maxScroll {
		m.gridScroll = maxScroll
	}
	if m.gridScroll < 0 {
		m.gridScroll = 0
	}
}

// commit persists one applied mutation: audit event, debounced save,
// listener notification, row rebuild. No-op results never reach here.
func (m *appModel) commit(changed bool, event, taskID string, payload map[string]any) {
	if !changed {
		return
	}
	if event != "" {
		if err := m.store.AppendEvent(event, taskID, payload); err != nil {
			m.status = "event log: " + err.Error()
		}
	}
	m.saver.Notify(m.db)
	if m.notifier != nil {
		m.notifier.Notify(store.Change{Kind: "task", TaskID: taskID})
	}
	m.rebuild()
}

func (m *appModel) reloadFromDisk() {
	if m.saver.Dirty() {
		// Our own edits are still on their way to disk; reloading now
		// would resurrect the previous snapshot.
		return
	}
	db, err := m.store.Load()
	if err != nil {
		m.status = "reload: " + err.Error()
		return
	}
	selected := m.selectedTaskID()
	m.db = db
	if _, ok := db.FindGroup(m.groupID); !ok {
		m.groupID = db.CurrentGroupID
		if _, ok := db.FindGroup(m.groupID); !ok && len(db.Groups) > 0 {
			m.groupID = db.Groups[0].ID
		}
	}
	m.rebuild()
	m.selectTask(selected)
	m.captureModTime()
}

func (m *appModel) captureModTime() {
	if st, err := os.Stat(m.store.StatePath()); err == nil {
		m.lastMod = st.ModTime()
	}
}

func (m appModel) storeChangedOnDisk() bool {
	st, err := os.Stat(m.store.StatePath())
	if err != nil {
		return false
	}
	return !st.ModTime().Equal(m.lastMod)
}

func (m appModel) selectedTask() (*model.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil, false
	}
	r := m.rows[m.cursor]
	if r.kind != rowTask {
		return nil, false
	}
	return m.db.FindTask(r.row.Task.ID)
}

func (m appModel) selectedTaskID() string {
	if t, ok := m.selectedTask(); ok {
		return t.ID
	}
	return ""
}

func (m *appModel) selectTask(id string) {
	if id == "" {
		return
	}
	for i, r := range m.rows {
		if r.kind == rowTask && r.row.Task.ID == id {
			m.cursor = i
			m.clampScroll()
			return
		}
	}
}

func trimContent(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
}
