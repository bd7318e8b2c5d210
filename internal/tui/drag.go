package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vladelaina/NekoTick-sub003/internal/drag"
	"github.com/vladelaina/NekoTick-sub003/internal/mutate"
	"github.com/vladelaina/NekoTick-sub003/internal/section"
)

// dragState is the transient feedback of a drag in flight. Nothing in
// here touches the snapshot; only the release handler commits, so an
// aborted gesture leaves task state exactly as it was.
type dragState struct {
	taskID           string
	originX, originY int
	x, y             int
	started          bool
	overGrid         bool
	hoverIndex       int // board row under the pointer, -1 when none
}

func (d *dragState) indent() float64 {
	return float64(d.x - d.originX)
}

// cellSnapMinutes maps grid zoom (terminal rows per hour) to the snap
// granularity: the taller an hour renders, the finer a drop snaps.
func cellSnapMinutes(hourHeight float64) int {
	switch {
	case hourHeight >= 4:
		return 15
	case hourHeight >= 2:
		return 30
	default:
		return 60
	}
}

func (m appModel) dragCfg() drag.Config {
	return drag.Config{
		SnapMinutes:     cellSnapMinutes,
		DefaultDuration: drag.DefaultDuration,
		// A terminal cell is far wider than a pixel; four columns reads
		// as a deliberate indent.
		IndentThreshold: 4,
	}
}

func (m appModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.view != viewBoard && m.view != viewWeek {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		(&m).wheel(msg.X, -1)
		return m, nil
	case tea.MouseButtonWheelDown:
		(&m).wheel(msg.X, 1)
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if idx, ok := m.boardRowAt(msg.X, msg.Y); ok {
			if m.rows[idx].kind == rowTask {
				m.cursor = idx
				(&m).clampScroll()
				m.drag = &dragState{
					taskID:  m.rows[idx].row.Task.ID,
					originX: msg.X, originY: msg.Y,
					x: msg.X, y: msg.Y,
					hoverIndex: idx,
				}
			}
			return m, nil
		}
		if lay, ok := m.weekLayout(); ok {
			if id, hit := taskAtCell(m.db, lay, msg.X, msg.Y); hit {
				m.drag = &dragState{
					taskID:  id,
					originX: msg.X, originY: msg.Y,
					x: msg.X, y: msg.Y,
					overGrid:   true,
					hoverIndex: -1,
				}
			}
		}
		return m, nil

	case tea.MouseActionMotion:
		if m.drag == nil {
			return m, nil
		}
		d := m.drag
		d.x, d.y = msg.X, msg.Y
		if !d.started && (d.x != d.originX || d.y != d.originY) {
			d.started = true
		}
		d.overGrid = false
		if lay, ok := m.weekLayout(); ok {
			d.overGrid = lay.grid().Contains(drag.Point{X: float64(d.x), Y: float64(d.y)})
		}
		d.hoverIndex = -1
		if idx, ok := m.boardRowAt(d.x, d.y); ok {
			d.hoverIndex = idx
		}
		return m, nil

	case tea.MouseActionRelease:
		if m.drag == nil {
			return m, nil
		}
		d := *m.drag
		m.drag = nil
		if !d.started {
			return m, nil
		}
		(&m).commitDrop(m.buildDrop(d))
		return m, nil
	}
	return m, nil
}

func (m *appModel) wheel(x, delta int) {
	overGrid := false
	if lay, ok := m.weekLayout(); ok {
		overGrid = x >= lay.left
	}
	if overGrid || m.view == viewWeek {
		m.gridScroll += delta
		m.clampScroll()
		return
	}
	m.moveCursor(delta)
}

// buildDrop snapshots one finished (or in-flight, for feedback) gesture
// into the pure drop context the resolver takes.
func (m appModel) buildDrop(d dragState) drag.Drop {
	var from section.Section
	if t, ok := m.db.FindTask(d.taskID); ok {
		from = section.Of(*t)
	}

	var target drag.Target
	if !d.overGrid && d.hoverIndex >= 0 && d.hoverIndex < len(m.rows) {
		r := m.rows[d.hoverIndex]
		if r.kind == rowDivider {
			target = drag.Target{Section: r.section, IsDivider: true}
		} else {
			target = drag.Target{RowID: r.row.Task.ID, Section: section.Of(r.row.Task)}
		}
	}

	var g drag.Grid
	var v drag.View
	if lay, ok := m.weekLayout(); ok {
		g = lay.grid()
		v = lay.view
	}

	return drag.Drop{
		TaskID:  d.taskID,
		From:    from,
		Point:   drag.Point{X: float64(d.x), Y: float64(d.y)},
		IndentX: d.indent(),
		Grid:    g,
		View:    v,
		Target:  target,
	}
}

// commitDrop applies the single mutation the drop resolves to.
func (m *appModel) commitDrop(d drag.Drop) {
	res, err := mutate.ApplyDrop(m.db, d, m.dragCfg(), time.Now().UTC())
	if err != nil {
		m.status = err.Error()
		return
	}
	if !res.Changed {
		return
	}
	m.commit(true, res.Event, d.TaskID, res.EventPayload)
	m.selectTask(d.TaskID)
}

// dragFeedback previews what releasing right now would do, using the
// same resolver the release handler commits through.
func (m appModel) dragFeedback() string {
	if m.drag == nil {
		return ""
	}
	act := drag.Resolve(m.buildDrop(*m.drag), m.dragCfg())
	switch act.Kind {
	case drag.KindSchedule:
		return fmt.Sprintf("→ schedule %s", act.Start.Format("Mon Jan 02 15:04"))
	case drag.KindSectionChange:
		return fmt.Sprintf("→ move to %s", sectionTitle(act.To))
	case drag.KindReorder:
		if act.MakeChild {
			return "→ nest under hovered task"
		}
		return "→ reorder before hovered task"
	default:
		return "release over a row, divider or the calendar"
	}
}
