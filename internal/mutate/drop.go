package mutate

import (
	"time"

	"github.com/vladelaina/NekoTick-sub003/internal/drag"
	"github.com/vladelaina/NekoTick-sub003/internal/model"
	"github.com/vladelaina/NekoTick-sub003/internal/store"
)

type DropResult struct {
	Action       drag.Action
	Task         *model.Task
	Changed      bool
	Event        string
	EventPayload map[string]any
}

// ApplyDrop resolves a finished drag gesture and commits the one
// mutation it stands for: a calendar drop schedules, a divider or
// cross-section row drop transitions, a same-section row drop reorders
// or nests. A rejected drop (KindNone) leaves the snapshot untouched.
//
// Callers are responsible for saving db and appending res.Event when
// res.Changed is set.
func ApplyDrop(db *store.DB, d drag.Drop, cfg drag.Config, now time.Time) (DropResult, error) {
	act := drag.Resolve(d, cfg)
	out := DropResult{Action: act}

	switch act.Kind {
	case drag.KindSchedule:
		res, err := ScheduleTask(db, d.TaskID, act.Start, act.End, now)
		if err != nil {
			return DropResult{}, err
		}
		out.Task, out.Changed = res.Task, res.Changed
		out.Event, out.EventPayload = "task.schedule", res.EventPayload

	case drag.KindSectionChange:
		dur := cfg.DefaultDuration
		if dur <= 0 {
			dur = drag.DefaultDuration
		}
		res, err := TransitionSection(db, d.TaskID, act.To, now, dur)
		if err != nil {
			return DropResult{}, err
		}
		out.Task, out.Changed = res.Task, res.Changed
		out.Event, out.EventPayload = "task.section", res.EventPayload

	case drag.KindReorder:
		if act.MakeChild {
			res, err := NestTask(db, d.TaskID, act.TargetID, now)
			if err != nil {
				return DropResult{}, err
			}
			out.Task, out.Changed = res.Task, res.Changed
			out.Event, out.EventPayload = "task.set_parent", res.EventPayload
			break
		}
		res, err := ReorderTaskRelative(db, d.TaskID, act.TargetID, false, now)
		if err != nil {
			return DropResult{}, err
		}
		out.Task, out.Changed = res.Task, res.Changed
		out.Event, out.EventPayload = "task.reorder", res.EventPayload
	}

	return out, nil
}
