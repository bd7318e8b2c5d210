package tree

import "github.com/vladelaina/NekoTick-sub003/internal/model"

// Row is one line of a depth-first rendering of a group's task tree.
type Row struct {
	Task        model.Task `json:"task"`
	Depth       int        `json:"depth"`
	HasChildren bool       `json:"hasChildren"`
}

// Flatten walks a group's tasks depth-first in sibling order and returns
// render rows. When honorCollapsed is set a collapsed task keeps its
// subtree out of the result. A task whose parent is missing surfaces as
// a root so a broken edge never hides a subtree.
func Flatten(tasks []model.Task, groupID string, honorCollapsed bool) []Row {
	return FlattenRoots(tasks, groupID, honorCollapsed, nil)
}

// FlattenRoots is Flatten restricted to the top-level tasks keep returns
// true for; their subtrees are carried whole. A nil keep admits every
// root.
func FlattenRoots(tasks []model.Task, groupID string, honorCollapsed bool, keep func(model.Task) bool) []Row {
	present := map[string]bool{}
	for _, t := range tasks {
		if t.GroupID == groupID {
			present[t.ID] = true
		}
	}

	children := map[string][]model.Task{}
	var roots []model.Task
	for _, t := range tasks {
		if t.GroupID != groupID {
			continue
		}
		if t.ParentID == nil || !present[*t.ParentID] {
			roots = append(roots, t)
			continue
		}
		children[*t.ParentID] = append(children[*t.ParentID], t)
	}
	SortSiblings(roots)
	for pid := range children {
		kids := children[pid]
		SortSiblings(kids)
		children[pid] = kids
	}

	var out []Row
	var walk func(t model.Task, depth int)
	walk = func(t model.Task, depth int) {
		kids := children[t.ID]
		out = append(out, Row{Task: t, Depth: depth, HasChildren: len(kids) > 0})
		if honorCollapsed && t.Collapsed {
			return
		}
		for _, ch := range kids {
			walk(ch, depth+1)
		}
	}
	for _, r := range roots {
		if keep != nil && !keep(r) {
			continue
		}
		walk(r, 0)
	}
	return out
}
