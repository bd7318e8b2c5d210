package tree

import (
	"testing"
	"time"

	"github.com/vladelaina/NekoTick-sub003/internal/model"
)

func strp(s string) *string { return &s }

func TestChildrenFiltersAndSorts(t *testing.T) {
	tasks := []model.Task{
		{ID: "task-c", GroupID: "grp-1", Order: 2},
		{ID: "task-a", GroupID: "grp-1", Order: 0},
		{ID: "task-x", GroupID: "grp-2", Order: 0},
		{ID: "task-b", GroupID: "grp-1", Order: 1},
		{ID: "task-n", GroupID: "grp-1", ParentID: strp("task-a"), Order: 0},
	}
	got := Children(tasks, nil, "grp-1")
	want := []string{"task-a", "task-b", "task-c"}
	if len(got) != len(want) {
		t.Fatalf("expected %d children, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
		if i > 0 && got[i-1].Order >= got[i].Order {
			t.Fatalf("orders not strictly ascending at %d: %d then %d", i, got[i-1].Order, got[i].Order)
		}
	}

	kids := Children(tasks, strp("task-a"), "grp-1")
	if len(kids) != 1 || kids[0].ID != "task-n" {
		t.Fatalf("expected [task-n], got %v", kids)
	}
}

func TestChildrenDuplicateOrderTieBreak(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		{ID: "task-b", GroupID: "grp-1", Order: 0, CreatedAt: t0.Add(time.Hour)},
		{ID: "task-a", GroupID: "grp-1", Order: 0, CreatedAt: t0},
	}
	got := Children(tasks, nil, "grp-1")
	if got[0].ID != "task-a" || got[1].ID != "task-b" {
		t.Fatalf("expected creation-time tie break, got %s, %s", got[0].ID, got[1].ID)
	}
}

func TestReorderSiblings(t *testing.T) {
	siblings := []model.Task{
		{ID: "A", Order: 0},
		{ID: "B", Order: 1},
		{ID: "C", Order: 2},
	}
	got := ReorderSiblings(siblings, 0, 2)
	want := []string{"B", "C", "A"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
		if got[i].Order != i {
			t.Fatalf("position %d: expected order %d, got %d", i, i, got[i].Order)
		}
	}
	// Input slice untouched.
	if siblings[0].ID != "A" || siblings[0].Order != 0 {
		t.Fatalf("input mutated: %v", siblings)
	}
}

func TestReorderSiblingsNoMove(t *testing.T) {
	siblings := []model.Task{
		{ID: "A", Order: 0},
		{ID: "B", Order: 1},
		{ID: "C", Order: 2},
	}
	got := ReorderSiblings(siblings, 1, 1)
	for i, id := range []string{"A", "B", "C"} {
		if got[i].ID != id || got[i].Order != i {
			t.Fatalf("position %d: expected %s/%d, got %s/%d", i, id, i, got[i].ID, got[i].Order)
		}
	}
}

func TestReorderSiblingsOutOfRange(t *testing.T) {
	siblings := []model.Task{
		{ID: "A", Order: 0},
		{ID: "B", Order: 1},
	}
	cases := []struct{ oldIdx, newIdx int }{
		{-1, 0},
		{0, -1},
		{2, 0},
		{0, 2},
	}
	for _, tc := range cases {
		got := ReorderSiblings(siblings, tc.oldIdx, tc.newIdx)
		for i, id := range []string{"A", "B"} {
			if got[i].ID != id || got[i].Order != i {
				t.Fatalf("(%d,%d): expected unchanged list, got %v", tc.oldIdx, tc.newIdx, got)
			}
		}
	}
}

func TestReorderSiblingsContiguousFromGaps(t *testing.T) {
	siblings := []model.Task{
		{ID: "A", Order: 3},
		{ID: "B", Order: 7},
		{ID: "C", Order: 9},
	}
	got := ReorderSiblings(siblings, 2, 0)
	want := []string{"C", "A", "B"}
	for i, id := range want {
		if got[i].ID != id || got[i].Order != i {
			t.Fatalf("position %d: expected %s/%d, got %s/%d", i, id, i, got[i].ID, got[i].Order)
		}
	}
}

func TestNormalize(t *testing.T) {
	siblings := []model.Task{
		{ID: "B", Order: 5},
		{ID: "A", Order: 2},
		{ID: "C", Order: 5, CreatedAt: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)},
	}
	got := Normalize(siblings)
	want := []string{"A", "B", "C"}
	for i, id := range want {
		if got[i].ID != id || got[i].Order != i {
			t.Fatalf("position %d: expected %s/%d, got %s/%d", i, id, i, got[i].ID, got[i].Order)
		}
	}
}

func TestDescendantIDs(t *testing.T) {
	tasks := []model.Task{
		{ID: "root"},
		{ID: "a", ParentID: strp("root")},
		{ID: "b", ParentID: strp("root")},
		{ID: "a1", ParentID: strp("a")},
		{ID: "a1x", ParentID: strp("a1")},
		{ID: "other"},
		{ID: "other-kid", ParentID: strp("other")},
	}
	got := DescendantIDs(tasks, "root")
	want := []string{"a", "b", "a1", "a1x"}
	if len(got) != len(want) {
		t.Fatalf("expected %d descendants, got %d: %v", len(want), len(got), got)
	}
	for _, id := range want {
		if _, ok := got[id]; !ok {
			t.Fatalf("expected %s in descendants", id)
		}
	}
	if _, ok := got["root"]; ok {
		t.Fatalf("root must not be its own descendant")
	}
	if _, ok := got["other-kid"]; ok {
		t.Fatalf("unrelated subtree leaked into descendants")
	}
}

func TestDescendantIDsCycleSafe(t *testing.T) {
	tasks := []model.Task{
		{ID: "a", ParentID: strp("b")},
		{ID: "b", ParentID: strp("a")},
	}
	got := DescendantIDs(tasks, "a")
	if _, ok := got["b"]; !ok {
		t.Fatalf("expected b reachable from a")
	}
}

func TestIsAncestor(t *testing.T) {
	tasks := []model.Task{
		{ID: "root"},
		{ID: "mid", ParentID: strp("root")},
		{ID: "leaf", ParentID: strp("mid")},
	}
	if !IsAncestor(tasks, "root", "leaf") {
		t.Fatalf("expected root ancestor of leaf")
	}
	if IsAncestor(tasks, "leaf", "root") {
		t.Fatalf("leaf must not be ancestor of root")
	}
	if IsAncestor(tasks, "missing", "leaf") {
		t.Fatalf("unknown id must not be ancestor")
	}
}
