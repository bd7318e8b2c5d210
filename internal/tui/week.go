package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vladelaina/NekoTick-sub003/internal/drag"
	"github.com/vladelaina/NekoTick-sub003/internal/model"
	"github.com/vladelaina/NekoTick-sub003/internal/section"
	"github.com/vladelaina/NekoTick-sub003/internal/store"
)

// gridLayout is the viewport geometry provider for the calendar grid: it
// pins down where the grid sits on screen and how it is scrolled and
// zoomed, and hands that to the drop resolver as plain numbers. One cell
// is the unit, where the resolver's pixel would be.
type gridLayout struct {
	left, top     int // screen cell of the grid's top-left corner
	width, height int
	gutter        int // hour-label strip on the left edge
	scrollRows    int // rows scrolled off the top
	rowsPerHour   int
	view          drag.View
}

func (g gridLayout) grid() drag.Grid {
	return drag.Grid{
		Left:       float64(g.left),
		Top:        float64(g.top),
		Width:      float64(g.width),
		Height:     float64(g.height),
		Gutter:     float64(g.gutter),
		ScrollY:    float64(g.scrollRows),
		HourHeight: float64(g.rowsPerHour),
	}
}

func (g gridLayout) days() int {
	if g.view.Mode == drag.ModeDay {
		return 1
	}
	return 7
}

func (g gridLayout) dayDate(k int) time.Time {
	if g.view.Mode == drag.ModeDay {
		y, mo, d := g.view.Anchor.Date()
		return time.Date(y, mo, d, 0, 0, 0, 0, g.view.Anchor.Location())
	}
	return drag.WeekStart(g.view.Anchor).AddDate(0, 0, k)
}

// colBounds returns day column k's cell offsets within the grid,
// matching the resolver's floor((x-gutter)/dayWidth) arithmetic so a
// rendered cell and its resolved day never disagree.
func (g gridLayout) colBounds(k int) (start, end int) {
	w := g.width - g.gutter
	d := g.days()
	ceil := func(n int) int { return (n + d - 1) / d }
	return g.gutter + ceil(k*w), g.gutter + ceil((k+1)*w)
}

// weekLayout computes the grid geometry for the current frame. ok is
// false when no grid is on screen (narrow board view), which the drop
// resolver reads as "nothing to schedule on".
func (m appModel) weekLayout() (gridLayout, bool) {
	if !m.gridVisible() {
		return gridLayout{}, false
	}
	lay := gridLayout{
		top:         headerLines + 1, // one line of day headers above the grid
		height:      m.contentHeight() - 1,
		gutter:      gutterW,
		scrollRows:  m.gridScroll,
		rowsPerHour: m.rowsPerHour,
		view:        drag.View{Mode: m.gridMode, Anchor: m.weekAnchor},
	}
	if m.view == viewWeek {
		lay.left = 0
		lay.width = m.width
	} else {
		lay.left = m.boardWidth() + 1
		lay.width = m.width - lay.left
	}
	if lay.height < 1 || lay.width <= lay.gutter {
		return gridLayout{}, false
	}
	return lay, true
}

// block is one scheduled task's occupancy on one day column.
type block struct {
	task     model.Task
	startRow int // absolute grid row (unscrolled)
	endRow   int
}

// dayBlocks collects the scheduled tasks intersecting one day, earliest
// first.
func dayBlocks(db *store.DB, day time.Time, rowsPerHour int) []block {
	dayEnd := day.AddDate(0, 0, 1)
	var out []block
	for _, t := range db.Tasks {
		if t.StartDate == nil {
			continue
		}
		start := t.StartDate.Local()
		end := start.Add(drag.DefaultDuration)
		if t.EndDate != nil {
			end = t.EndDate.Local()
		}
		if !start.Before(dayEnd) || !end.After(day) {
			continue
		}
		startMin, endMin := 0, 24*60
		if !start.Before(day) {
			startMin = start.Hour()*60 + start.Minute()
		}
		if !end.After(dayEnd) {
			endMin = end.Hour()*60 + end.Minute()
		}
		if endMin <= startMin {
			endMin = startMin + 60/rowsPerHour
		}
		b := block{
			task:     t,
			startRow: startMin * rowsPerHour / 60,
			endRow:   (endMin*rowsPerHour + 59) / 60,
		}
		if b.endRow <= b.startRow {
			b.endRow = b.startRow + 1
		}
		out = append(out, b)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].startRow < out[j-1].startRow; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func blockColor(t model.Task) lipgloss.TerminalColor {
	if t.Color != "" {
		return lipgloss.Color(t.Color)
	}
	if t.Completed {
		return sectionColor(section.Completed)
	}
	return sectionColor(section.Scheduled)
}

func (m appModel) viewWeekFull() string {
	lay, ok := m.weekLayout()
	if !ok {
		return styleMuted().Render(" terminal too small for the calendar grid")
	}
	return m.renderWeekPane(lay)
}

// renderWeekPane draws the day-header line plus the hour grid. Cell
// coordinates here must line up with gridLayout.grid(); hit testing and
// drop resolution read the same numbers.
func (m appModel) renderWeekPane(lay gridLayout) string {
	var lines []string
	lines = append(lines, m.renderDayHeader(lay))

	type cell struct {
		blocks []block
		date   time.Time
	}
	days := make([]cell, lay.days())
	for k := range days {
		days[k].date = lay.dayDate(k)
		days[k].blocks = dayBlocks(m.db, days[k].date, lay.rowsPerHour)
	}

	hoverDay, hoverRow := m.dropHighlight(lay)

	totalRows := 24 * lay.rowsPerHour
	for r := 0; r < lay.height; r++ {
		abs := lay.scrollRows + r
		var b strings.Builder
		b.WriteString(m.renderGutter(lay, abs))
		for k := range days {
			start, end := lay.colBounds(k)
			w := end - start
			if w <= 0 {
				continue
			}
			b.WriteString(m.renderGridCell(days[k].blocks, abs, totalRows, w, k == hoverDay && abs == hoverRow))
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

func (m appModel) renderDayHeader(lay gridLayout) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", lay.gutter))
	today := time.Now()
	for k := 0; k < lay.days(); k++ {
		start, end := lay.colBounds(k)
		w := end - start
		if w <= 0 {
			continue
		}
		d := lay.dayDate(k)
		label := d.Format("Mon 02")
		st := lipgloss.NewStyle().Bold(true)
		if sameDay(d, today) {
			st = st.Foreground(colorTodayFg)
		}
		b.WriteString(st.Render(fitWidth(" "+label, w)))
	}
	return b.String()
}

func (m appModel) renderGutter(lay gridLayout, absRow int) string {
	if absRow < 0 || absRow >= 24*lay.rowsPerHour || absRow%lay.rowsPerHour != 0 {
		return strings.Repeat(" ", lay.gutter)
	}
	return styleMuted().Render(fitWidth(fmt.Sprintf("%02d:00", absRow/lay.rowsPerHour), lay.gutter))
}

func (m appModel) renderGridCell(blocks []block, absRow, totalRows, w int, hovered bool) string {
	if hovered {
		return lipgloss.NewStyle().Background(colorDragBg).Render(fitWidth(" ◆", w))
	}
	if absRow >= totalRows {
		return strings.Repeat(" ", w)
	}
	for _, bl := range blocks {
		if absRow < bl.startRow || absRow >= bl.endRow {
			continue
		}
		st := lipgloss.NewStyle().Background(blockColor(bl.task)).Foreground(ac("255", "235"))
		if m.drag != nil && m.drag.started && m.drag.taskID == bl.task.ID {
			st = st.Faint(true)
		}
		if absRow == bl.startRow {
			label := " " + trimContent(bl.task.Content)
			if bl.task.StartDate != nil {
				label = " " + bl.task.StartDate.Local().Format("15:04") + label
			}
			return st.Render(fitWidth(label, w))
		}
		return st.Render(fitWidth("", w))
	}
	if absRow%m.rowsPerHour == 0 {
		return faintIfDark(lipgloss.NewStyle().Foreground(colorGridLine)).Render(strings.Repeat("╌", w))
	}
	return strings.Repeat(" ", w)
}

// dropHighlight is the cell the in-flight drag would schedule into.
func (m appModel) dropHighlight(lay gridLayout) (day, row int) {
	day, row = -1, -1
	if m.drag == nil || !m.drag.started || !m.drag.overGrid {
		return day, row
	}
	p := drag.Point{X: float64(m.drag.x), Y: float64(m.drag.y)}
	slot, ok := drag.ResolveSlot(p, lay.grid(), lay.view, m.dragCfg())
	if !ok {
		return day, row
	}
	for k := 0; k < lay.days(); k++ {
		if sameDay(slot.Start, lay.dayDate(k)) {
			day = k
			break
		}
	}
	row = (slot.Start.Hour()*60 + slot.Start.Minute()) * lay.rowsPerHour / 60
	return day, row
}

// taskAtCell finds the scheduled task rendered at a grid cell, for
// picking a block up with the mouse.
func taskAtCell(db *store.DB, lay gridLayout, x, y int) (string, bool) {
	if x < lay.left+lay.gutter || x >= lay.left+lay.width {
		return "", false
	}
	if y < lay.top || y >= lay.top+lay.height {
		return "", false
	}
	rel := x - lay.left - lay.gutter
	w := lay.width - lay.gutter
	k := rel * lay.days() / w
	if k < 0 || k >= lay.days() {
		return "", false
	}
	abs := y - lay.top + lay.scrollRows
	for _, bl := range dayBlocks(db, lay.dayDate(k), lay.rowsPerHour) {
		if abs >= bl.startRow && abs < bl.endRow {
			return bl.task.ID, true
		}
	}
	return "", false
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func (m appModel) handleWeekKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	step := 7
	if m.gridMode == drag.ModeDay {
		step = 1
	}
	switch {
	case key.Matches(msg, k.Back), key.Matches(msg, k.ToggleView):
		m.view = viewBoard
	case key.Matches(msg, k.Down):
		m.gridScroll++
		(&m).clampScroll()
	case key.Matches(msg, k.Up):
		m.gridScroll--
		(&m).clampScroll()
	case key.Matches(msg, k.PrevPeriod):
		m.weekAnchor = m.weekAnchor.AddDate(0, 0, -step)
	case key.Matches(msg, k.NextPeriod):
		m.weekAnchor = m.weekAnchor.AddDate(0, 0, step)
	case key.Matches(msg, k.Today):
		m.weekAnchor = time.Now()
	default:
		switch msg.String() {
		case "d":
			m.gridMode = drag.ModeDay
		case "w":
			m.gridMode = drag.ModeWeek
		case "+", "=":
			(&m).setZoom(m.rowsPerHour * 2)
		case "-":
			(&m).setZoom(m.rowsPerHour / 2)
		}
	}
	return m, nil
}

// setZoom changes rows-per-hour, keeping the top of the visible window
// on the same hour.
func (m *appModel) setZoom(rowsPerHour int) {
	if rowsPerHour < 1 {
		rowsPerHour = 1
	}
	if rowsPerHour > 4 {
		rowsPerHour = 4
	}
	if rowsPerHour == m.rowsPerHour {
		return
	}
	topHour := m.gridScroll / m.rowsPerHour
	m.rowsPerHour = rowsPerHour
	m.gridScroll = topHour * rowsPerHour
	m.clampScroll()
}
