package mutate

import (
	"strings"
	"time"

	"github.com/vladelaina/NekoTick-sub003/internal/model"
	"github.com/vladelaina/NekoTick-sub003/internal/store"
	"github.com/vladelaina/NekoTick-sub003/internal/tree"
)

type MoveGroupResult struct {
	Task         *model.Task
	Changed      bool
	EventPayload map[string]any
}

// MoveTaskToGroup moves a task and its whole subtree into another group.
// The root lands at the end of the destination's top level; the sibling
// run it left is renumbered. Moving within the same group just lifts a
// nested task to the top level.
//
// Callers are responsible for saving db and appending the task.move_group event.
func MoveTaskToGroup(db *store.DB, taskID, toGroupID string, now time.Time) (MoveGroupResult, error) {
	taskID = strings.TrimSpace(taskID)
	toGroupID = strings.TrimSpace(toGroupID)
	if db == nil || taskID == "" || toGroupID == "" {
		return MoveGroupResult{}, nil
	}

	t, ok := db.FindTask(taskID)
	if !ok {
		return MoveGroupResult{}, NotFoundError{Kind: "task", ID: taskID}
	}
	g, ok := db.FindGroup(toGroupID)
	if !ok || g.Archived {
		return MoveGroupResult{}, NotFoundError{Kind: "group", ID: toGroupID}
	}

	// Already a top-level task of the destination: nothing to do.
	if t.GroupID == g.ID && t.ParentID == nil {
		return MoveGroupResult{Task: t, Changed: false}, nil
	}

	oldParent := t.ParentID
	oldGroup := t.GroupID
	ids := collectSubtreeTaskIDs(db, t.ID)

	nextOrder := len(tree.Children(db.Tasks, nil, g.ID))
	for _, id := range ids {
		x, ok := db.FindTask(id)
		if !ok {
			continue
		}
		x.GroupID = g.ID
		x.UpdatedAt = now
	}
	t.ParentID = nil
	t.Order = nextOrder
	db.ResetIndexes()

	renumberSiblings(db, oldParent, oldGroup, now)

	return MoveGroupResult{
		Task:         t,
		Changed:      true,
		EventPayload: map[string]any{"to": g.ID, "moved": len(ids)},
	}, nil
}
