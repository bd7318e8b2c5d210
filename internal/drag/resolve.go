package drag

import (
	"time"

	"github.com/vladelaina/NekoTick-sub003/internal/section"
)

// Kind tags the outcome of a drop.
type Kind string

const (
	KindNone          Kind = "none"
	KindSchedule      Kind = "schedule"
	KindReorder       Kind = "reorder"
	KindSectionChange Kind = "section-change"
)

// Action is the single mutation a finished drag resolves to. Only the
// fields for its Kind are set; KindNone carries nothing and means the
// drop was rejected.
type Action struct {
	Kind Kind

	// KindSchedule
	Start time.Time
	End   time.Time

	// KindReorder
	TargetID  string
	MakeChild bool

	// KindSectionChange
	To section.Section
}

// Target describes what the pointer is over in the task list at drop
// time, as reported by the rendering layer.
type Target struct {
	RowID     string          // hovered task row, "" when over none
	Section   section.Section // section owning the hovered row or divider
	IsDivider bool            // the hovered row is a section divider
}

// Drop is the complete context of a finished drag gesture.
type Drop struct {
	TaskID  string          // dragged task
	From    section.Section // dragged task's section at drag start
	Point   Point
	IndentX float64 // horizontal distance dragged from the gesture origin
	Grid    Grid
	View    View
	Target  Target
}

// Resolve classifies a finished drag. The calendar grid wins when the
// pointer lands on it; otherwise the hovered list target decides between
// a section change, a nest, and a reorder. Anything unresolvable is
// KindNone: dropping a task onto itself, onto no target, or with broken
// geometry never mutates state.
func Resolve(d Drop, cfg Config) Action {
	cfg = cfg.withDefaults()
	if d.TaskID == "" {
		return Action{Kind: KindNone}
	}
	if slot, ok := ResolveSlot(d.Point, d.Grid, d.View, cfg); ok {
		return Action{Kind: KindSchedule, Start: slot.Start, End: slot.End}
	}
	t := d.Target
	if t.IsDivider {
		if section.Valid(t.Section) && t.Section != d.From {
			return Action{Kind: KindSectionChange, To: t.Section}
		}
		return Action{Kind: KindNone}
	}
	if t.RowID == "" || t.RowID == d.TaskID {
		return Action{Kind: KindNone}
	}
	if section.Valid(t.Section) && t.Section != d.From {
		return Action{Kind: KindSectionChange, To: t.Section}
	}
	if d.IndentX >= cfg.IndentThreshold {
		return Action{Kind: KindReorder, TargetID: t.RowID, MakeChild: true}
	}
	return Action{Kind: KindReorder, TargetID: t.RowID}
}
