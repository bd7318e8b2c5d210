package mutate

import (
	"strings"
	"time"

	"github.com/vladelaina/NekoTick-sub003/internal/model"
	"github.com/vladelaina/NekoTick-sub003/internal/store"
	"github.com/vladelaina/NekoTick-sub003/internal/tree"
)

type DeleteTaskResult struct {
	DeletedIDs   []string
	Changed      bool
	EventPayload map[string]any
}

// DeleteTask removes a task and its whole subtree, then renumbers the
// sibling run the root left behind.
//
// Callers are responsible for saving db and appending the task.delete event.
func DeleteTask(db *store.DB, taskID string, now time.Time) (DeleteTaskResult, error) {
	taskID = strings.TrimSpace(taskID)
	if db == nil || taskID == "" {
		return DeleteTaskResult{}, nil
	}

	t, ok := db.FindTask(taskID)
	if !ok {
		return DeleteTaskResult{}, NotFoundError{Kind: "task", ID: taskID}
	}
	groupID := t.GroupID
	parentID := t.ParentID

	ids := collectSubtreeTaskIDs(db, t.ID)
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	kept := db.Tasks[:0]
	for _, x := range db.Tasks {
		if drop[x.ID] {
			continue
		}
		kept = append(kept, x)
	}
	db.Tasks = kept
	db.ResetIndexes()

	renumberSiblings(db, parentID, groupID, now)

	return DeleteTaskResult{
		DeletedIDs:   ids,
		Changed:      true,
		EventPayload: map[string]any{"deleted": len(ids)},
	}, nil
}

// collectSubtreeTaskIDs returns rootID plus every descendant id, parents
// before children.
func collectSubtreeTaskIDs(db *store.DB, rootID string) []string {
	rootID = strings.TrimSpace(rootID)
	if db == nil || rootID == "" {
		return nil
	}
	out := []string{}
	seen := map[string]bool{}
	var walk func(id string)
	walk = func(id string) {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			return
		}
		seen[id] = true
		out = append(out, id)
		for _, ch := range db.ChildrenOf(id) {
			walk(ch.ID)
		}
	}
	walk(rootID)
	return out
}

// renumberSiblings rewrites the orders of one sibling run back to
// contiguous 0..n-1, preserving relative order. Reports whether any
// order cell moved.
func renumberSiblings(db *store.DB, parentID *string, groupID string, now time.Time) bool {
	sibs := tree.Children(db.Tasks, parentID, groupID)
	return applySiblingOrders(db, tree.Normalize(sibs), now)
}

// applySiblingOrders copies the orders of a resolved sibling slice back
// onto the snapshot by id.
func applySiblingOrders(db *store.DB, ordered []model.Task, now time.Time) bool {
	changed := false
	for _, want := range ordered {
		t, ok := db.FindTask(want.ID)
		if !ok {
			continue
		}
		if t.Order != want.Order {
			t.Order = want.Order
			t.UpdatedAt = now
			changed = true
		}
	}
	if changed {
		db.ResetIndexes()
	}
	return changed
}
