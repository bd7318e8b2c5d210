// Package tree holds the pure sibling and descendant resolvers for the
// task outline. Functions here never mutate their inputs; they return
// fresh slices the caller commits back to the store.
package tree

import (
	"sort"

	"github.com/vladelaina/NekoTick-sub003/internal/model"
)

// SameParent reports whether two parent references select the same
// sibling list.
func SameParent(a, b *string) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

// Children returns the direct children of (parentID, groupID) sorted
// ascending by Order. A nil parentID selects the group's top-level tasks.
func Children(tasks []model.Task, parentID *string, groupID string) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if t.GroupID != groupID {
			continue
		}
		if !SameParent(t.ParentID, parentID) {
			continue
		}
		out = append(out, t)
	}
	SortSiblings(out)
	return out
}

// SortSiblings sorts a sibling list in place: Order ascending, then
// CreatedAt, then ID when stored orders are duplicated.
func SortSiblings(tasks []model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return compareSiblings(tasks[i], tasks[j]) < 0
	})
}

func compareSiblings(a, b model.Task) int {
	if a.Order != b.Order {
		if a.Order < b.Order {
			return -1
		}
		return 1
	}
	if a.CreatedAt.Before(b.CreatedAt) {
		return -1
	}
	if a.CreatedAt.After(b.CreatedAt) {
		return 1
	}
	if a.ID < b.ID {
		return -1
	}
	if a.ID > b.ID {
		return 1
	}
	return 0
}

// ReorderSiblings removes the element at oldIndex, reinserts it at
// newIndex, and assigns every element a fresh Order equal to its
// positional index, so orders are contiguous 0..n-1 afterwards. The
// relative order of untouched elements is preserved. Out-of-range
// indexes return a copy of the input unchanged.
func ReorderSiblings(siblings []model.Task, oldIndex, newIndex int) []model.Task {
	out := append([]model.Task(nil), siblings...)
	if oldIndex < 0 || oldIndex >= len(out) || newIndex < 0 || newIndex >= len(out) {
		return out
	}
	moved := out[oldIndex]
	rest := make([]model.Task, 0, len(out)-1)
	rest = append(rest, out[:oldIndex]...)
	rest = append(rest, out[oldIndex+1:]...)

	out = out[:0]
	out = append(out, rest[:newIndex]...)
	out = append(out, moved)
	out = append(out, rest[newIndex:]...)
	for i := range out {
		out[i].Order = i
	}
	return out
}

// Normalize sorts a sibling list and assigns contiguous orders 0..n-1.
// Used to repair gapped or duplicated orders on load.
func Normalize(siblings []model.Task) []model.Task {
	out := append([]model.Task(nil), siblings...)
	SortSiblings(out)
	for i := range out {
		out[i].Order = i
	}
	return out
}

// DescendantIDs returns the set of ids reachable from rootID by child
// edges, in set semantics. The root itself is not included. Malformed
// parent cycles are tolerated; each id is visited once.
func DescendantIDs(tasks []model.Task, rootID string) map[string]struct{} {
	childrenOf := make(map[string][]string, len(tasks))
	for _, t := range tasks {
		if t.ParentID == nil {
			continue
		}
		childrenOf[*t.ParentID] = append(childrenOf[*t.ParentID], t.ID)
	}
	out := map[string]struct{}{}
	queue := []string{rootID}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, id := range childrenOf[cur] {
			if _, seen := out[id]; seen {
				continue
			}
			out[id] = struct{}{}
			queue = append(queue, id)
		}
	}
	return out
}

// IsAncestor reports whether ancestorID lies on taskID's parent chain.
func IsAncestor(tasks []model.Task, ancestorID, taskID string) bool {
	byID := make(map[string]model.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}
	seen := map[string]bool{}
	cur := taskID
	for {
		t, ok := byID[cur]
		if !ok || t.ParentID == nil {
			return false
		}
		if *t.ParentID == ancestorID {
			return true
		}
		cur = *t.ParentID
		if seen[cur] {
			return false
		}
		seen[cur] = true
	}
}
