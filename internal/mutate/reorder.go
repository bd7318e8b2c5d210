package mutate

import (
	"errors"
	"strings"
	"time"

	"github.com/vladelaina/NekoTick-sub003/internal/model"
	"github.com/vladelaina/NekoTick-sub003/internal/store"
	"github.com/vladelaina/NekoTick-sub003/internal/tree"
)

var (
	ErrSelfParent       = errors.New("task cannot be its own parent")
	ErrCrossGroupParent = errors.New("target task is in a different group")
)

type ReorderResult struct {
	Task         *model.Task
	Changed      bool
	EventPayload map[string]any
}

// ReorderTask moves a task to insertAt within its own sibling run and
// renumbers the run to contiguous 0..n-1. An out-of-range insertAt is a
// rejected drop: the run is left untouched and Changed is false.
//
// Callers are responsible for saving db and appending the task.reorder event.
func ReorderTask(db *store.DB, taskID string, insertAt int, now time.Time) (ReorderResult, error) {
	taskID = strings.TrimSpace(taskID)
	if db == nil || taskID == "" {
		return ReorderResult{}, nil
	}

	t, ok := db.FindTask(taskID)
	if !ok {
		return ReorderResult{}, NotFoundError{Kind: "task", ID: taskID}
	}

	sibs := tree.Children(db.Tasks, t.ParentID, t.GroupID)
	oldIdx := indexOfTask(sibs, t.ID)
	if oldIdx < 0 || insertAt < 0 || insertAt >= len(sibs) {
		return ReorderResult{Task: t, Changed: false}, nil
	}

	next := tree.ReorderSiblings(sibs, oldIdx, insertAt)
	changed := applySiblingOrders(db, next, now)
	return ReorderResult{
		Task:         t,
		Changed:      changed,
		EventPayload: map[string]any{"index": insertAt},
	}, nil
}

// ReorderTaskRelative places a task directly before (or after) another
// task. When the target lives under a different parent the task adopts
// the target's parent first, so a drop onto any visible row lands the
// task next to that row. Both runs are renumbered.
//
// Callers are responsible for saving db and appending the task.reorder event.
func ReorderTaskRelative(db *store.DB, taskID, targetID string, after bool, now time.Time) (ReorderResult, error) {
	taskID = strings.TrimSpace(taskID)
	targetID = strings.TrimSpace(targetID)
	if db == nil || taskID == "" || targetID == "" {
		return ReorderResult{}, nil
	}

	t, ok := db.FindTask(taskID)
	if !ok {
		return ReorderResult{}, NotFoundError{Kind: "task", ID: taskID}
	}
	if taskID == targetID {
		return ReorderResult{Task: t, Changed: false}, nil
	}
	target, ok := db.FindTask(targetID)
	if !ok {
		return ReorderResult{}, NotFoundError{Kind: "task", ID: targetID}
	}
	if t.GroupID != target.GroupID {
		return ReorderResult{}, ErrCrossGroupParent
	}
	if target.ParentID != nil {
		pid := strings.TrimSpace(*target.ParentID)
		if pid == t.ID || tree.IsAncestor(db.Tasks, t.ID, pid) {
			return ReorderResult{}, CycleError{TaskID: t.ID, ParentID: pid}
		}
	}

	changed := false
	if !tree.SameParent(t.ParentID, target.ParentID) {
		oldParent := t.ParentID
		if target.ParentID == nil {
			t.ParentID = nil
		} else {
			tmp := *target.ParentID
			t.ParentID = &tmp
		}
		t.UpdatedAt = now
		changed = true
		db.ResetIndexes()
		renumberSiblings(db, oldParent, t.GroupID, now)
	}

	sibs := tree.Children(db.Tasks, target.ParentID, target.GroupID)
	oldIdx := indexOfTask(sibs, t.ID)
	tgtIdx := indexOfTask(sibs, target.ID)
	if oldIdx < 0 || tgtIdx < 0 {
		return ReorderResult{Task: t, Changed: changed}, nil
	}
	// Index of the target once the moved task is pulled out of the run.
	newIdx := tgtIdx
	if oldIdx < tgtIdx {
		newIdx--
	}
	if after {
		newIdx++
	}
	if applySiblingOrders(db, tree.ReorderSiblings(sibs, oldIdx, newIdx), now) {
		changed = true
	}
	return ReorderResult{
		Task:         t,
		Changed:      changed,
		EventPayload: map[string]any{"targetId": target.ID, "after": after},
	}, nil
}

type NestResult struct {
	Task         *model.Task
	Changed      bool
	EventPayload map[string]any
}

// NestTask makes a task the last child of parentID, or a top-level task
// when parentID is empty. Nesting under the task's own subtree is
// refused.
//
// Callers are responsible for saving db and appending the task.set_parent event.
func NestTask(db *store.DB, taskID, parentID string, now time.Time) (NestResult, error) {
	taskID = strings.TrimSpace(taskID)
	parentID = strings.TrimSpace(parentID)
	if db == nil || taskID == "" {
		return NestResult{}, nil
	}

	t, ok := db.FindTask(taskID)
	if !ok {
		return NestResult{}, NotFoundError{Kind: "task", ID: taskID}
	}
	if parentID == t.ID {
		return NestResult{}, ErrSelfParent
	}

	var newParent *string
	if parentID != "" {
		p, ok := db.FindTask(parentID)
		if !ok {
			return NestResult{}, NotFoundError{Kind: "task", ID: parentID}
		}
		if p.GroupID != t.GroupID {
			return NestResult{}, ErrCrossGroupParent
		}
		if tree.IsAncestor(db.Tasks, t.ID, p.ID) {
			return NestResult{}, CycleError{TaskID: t.ID, ParentID: p.ID}
		}
		tmp := p.ID
		newParent = &tmp
	}

	if tree.SameParent(t.ParentID, newParent) {
		return NestResult{Task: t, Changed: false}, nil
	}

	oldParent := t.ParentID
	t.Order = len(tree.Children(db.Tasks, newParent, t.GroupID))
	t.ParentID = newParent
	t.UpdatedAt = now
	db.ResetIndexes()
	renumberSiblings(db, oldParent, t.GroupID, now)

	payload := map[string]any{"parentId": nil}
	if newParent != nil {
		payload["parentId"] = *newParent
	}
	return NestResult{Task: t, Changed: true, EventPayload: payload}, nil
}

func indexOfTask(tasks []model.Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}
