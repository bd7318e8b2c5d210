package mutate

import (
	"testing"
	"time"

	"github.com/vladelaina/NekoTick-sub003/internal/model"
	"github.com/vladelaina/NekoTick-sub003/internal/store"
)

// seedSiblings builds a group with top-level tasks a, b, c and a child
// a1 under a.
func seedSiblings(now time.Time) *store.DB {
	return &store.DB{
		Version: 1,
		Groups:  []model.Group{{ID: "grp-a", Name: "Inbox", CreatedAt: now}},
		Tasks: []model.Task{
			{ID: "task-a", GroupID: "grp-a", Order: 0, Content: "A", CreatedAt: now, UpdatedAt: now},
			{ID: "task-b", GroupID: "grp-a", Order: 1, Content: "B", CreatedAt: now.Add(time.Second), UpdatedAt: now},
			{ID: "task-c", GroupID: "grp-a", Order: 2, Content: "C", CreatedAt: now.Add(2 * time.Second), UpdatedAt: now},
			{ID: "task-a1", GroupID: "grp-a", ParentID: strPtr("task-a"), Order: 0, Content: "A1", CreatedAt: now.Add(3 * time.Second), UpdatedAt: now},
		},
	}
}

func orderOf(t *testing.T, db *store.DB, id string) int {
	t.Helper()
	x, ok := db.FindTask(id)
	if !ok {
		t.Fatalf("task %s missing", id)
	}
	return x.Order
}

func TestReorderTaskMovesAndRenumbers(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	db := seedSiblings(now)

	res, err := ReorderTask(db, "task-a", 2, now)
	if err != nil {
		t.Fatalf("ReorderTask error: %v", err)
	}
	if !res.Changed {
		t.Fatalf("expected changed=true")
	}
	if got := orderOf(t, db, "task-b"); got != 0 {
		t.Fatalf("expected b at 0; got %d", got)
	}
	if got := orderOf(t, db, "task-c"); got != 1 {
		t.Fatalf("expected c at 1; got %d", got)
	}
	if got := orderOf(t, db, "task-a"); got != 2 {
		t.Fatalf("expected a at 2; got %d", got)
	}
}

func TestReorderTaskOutOfRangeIsRejected(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	for _, insertAt := range []int{-1, 3, 99} {
		db := seedSiblings(now)
		res, err := ReorderTask(db, "task-a", insertAt, now)
		if err != nil {
			t.Fatalf("insertAt %d: unexpected error: %v", insertAt, err)
		}
		if res.Changed {
			t.Fatalf("insertAt %d: expected rejected drop", insertAt)
		}
		if got := orderOf(t, db, "task-a"); got != 0 {
			t.Fatalf("insertAt %d: expected a untouched at 0; got %d", insertAt, got)
		}
	}
}

func TestReorderTaskRelativeBefore(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	db := seedSiblings(now)

	res, err := ReorderTaskRelative(db, "task-c", "task-a", false, now)
	if err != nil {
		t.Fatalf("ReorderTaskRelative error: %v", err)
	}
	if !res.Changed {
		t.Fatalf("expected changed=true")
	}
	if got := orderOf(t, db, "task-c"); got != 0 {
		t.Fatalf("expected c at 0; got %d", got)
	}
	if got := orderOf(t, db, "task-a"); got != 1 {
		t.Fatalf("expected a at 1; got %d", got)
	}
	if got := orderOf(t, db, "task-b"); got != 2 {
		t.Fatalf("expected b at 2; got %d", got)
	}
}

func TestReorderTaskRelativeAfter(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	db := seedSiblings(now)

	res, err := ReorderTaskRelative(db, "task-a", "task-c", true, now)
	if err != nil {
		t.Fatalf("ReorderTaskRelative error: %v", err)
	}
	if !res.Changed {
		t.Fatalf("expected changed=true")
	}
	if got := orderOf(t, db, "task-b"); got != 0 {
		t.Fatalf("expected b at 0; got %d", got)
	}
	if got := orderOf(t, db, "task-c"); got != 1 {
		t.Fatalf("expected c at 1; got %d", got)
	}
	if got := orderOf(t, db, "task-a"); got != 2 {
		t.Fatalf("expected a at 2; got %d", got)
	}
}

func TestReorderTaskRelativeNoopWhenAlreadyThere(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	db := seedSiblings(now)

	res, err := ReorderTaskRelative(db, "task-b", "task-c", false, now)
	if err != nil {
		t.Fatalf("ReorderTaskRelative error: %v", err)
	}
	if res.Changed {
		t.Fatalf("b is already directly before c; expected no-op")
	}
}

func TestReorderTaskRelativeAdoptsTargetParent(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	db := seedSiblings(now)

	res, err := ReorderTaskRelative(db, "task-b", "task-a1", false, now)
	if err != nil {
		t.Fatalf("ReorderTaskRelative error: %v", err)
	}
	if !res.Changed {
		t.Fatalf("expected changed=true")
	}
	b, _ := db.FindTask("task-b")
	if b.ParentID == nil || *b.ParentID != "task-a" {
		t.Fatalf("expected b to adopt a1's parent; got %v", b.ParentID)
	}
	if b.Order != 0 {
		t.Fatalf("expected b before a1; got order %d", b.Order)
	}
	if got := orderOf(t, db, "task-a1"); got != 1 {
		t.Fatalf("expected a1 pushed to 1; got %d", got)
	}
	// The run b left is renumbered.
	if got := orderOf(t, db, "task-a"); got != 0 {
		t.Fatalf("expected a at 0; got %d", got)
	}
	if got := orderOf(t, db, "task-c"); got != 1 {
		t.Fatalf("expected c at 1; got %d", got)
	}
}

func TestReorderTaskRelativeRejectsCycle(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	db := seedSiblings(now)

	// Placing a beside its own child would make a its own descendant.
	_, err := ReorderTaskRelative(db, "task-a", "task-a1", false, now)
	if err == nil {
		t.Fatalf("expected cycle error")
	}
	if _, ok := err.(CycleError); !ok {
		t.Fatalf("expected CycleError; got %v", err)
	}
}

func TestReorderTaskRelativeRejectsCrossGroup(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	db := seedSiblings(now)
	db.Groups = append(db.Groups, model.Group{ID: "grp-b", Name: "Work", CreatedAt: now})
	db.Tasks = append(db.Tasks, model.Task{ID: "task-x", GroupID: "grp-b", Order: 0, Content: "X", CreatedAt: now, UpdatedAt: now})
	db.ResetIndexes()

	if _, err := ReorderTaskRelative(db, "task-a", "task-x", false, now); err != ErrCrossGroupParent {
		t.Fatalf("expected ErrCrossGroupParent; got %v", err)
	}
}

func TestNestTaskAppendsAtEndOfChildren(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	db := seedSiblings(now)

	res, err := NestTask(db, "task-c", "task-a", now)
	if err != nil {
		t.Fatalf("NestTask error: %v", err)
	}
	if !res.Changed {
		t.Fatalf("expected changed=true")
	}
	c, _ := db.FindTask("task-c")
	if c.ParentID == nil || *c.ParentID != "task-a" {
		t.Fatalf("expected c nested under a; got %v", c.ParentID)
	}
	if c.Order != 1 {
		t.Fatalf("expected c after existing child a1; got order %d", c.Order)
	}
	// The top-level run closes the gap.
	if got := orderOf(t, db, "task-a"); got != 0 {
		t.Fatalf("expected a at 0; got %d", got)
	}
	if got := orderOf(t, db, "task-b"); got != 1 {
		t.Fatalf("expected b at 1; got %d", got)
	}
}

func TestNestTaskRejectsDescendantParent(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	db := seedSiblings(now)

	_, err := NestTask(db, "task-a", "task-a1", now)
	if err == nil {
		t.Fatalf("expected cycle error")
	}
	if _, ok := err.(CycleError); !ok {
		t.Fatalf("expected CycleError; got %v", err)
	}
}

func TestNestTaskRejectsSelf(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	db := seedSiblings(now)

	if _, err := NestTask(db, "task-a", "task-a", now); err != ErrSelfParent {
		t.Fatalf("expected ErrSelfParent; got %v", err)
	}
}

func TestNestTaskEmptyParentLiftsToTopLevel(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	db := seedSiblings(now)

	res, err := NestTask(db, "task-a1", "", now)
	if err != nil {
		t.Fatalf("NestTask error: %v", err)
	}
	if !res.Changed {
		t.Fatalf("expected changed=true")
	}
	a1, _ := db.FindTask("task-a1")
	if a1.ParentID != nil {
		t.Fatalf("expected a1 at top level; got %v", a1.ParentID)
	}
	if a1.Order != 3 {
		t.Fatalf("expected a1 appended after a, b, c; got order %d", a1.Order)
	}
}

func TestNestTaskNoopForSameParent(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	db := seedSiblings(now)

	res, err := NestTask(db, "task-a1", "task-a", now)
	if err != nil {
		t.Fatalf("NestTask error: %v", err)
	}
	if res.Changed {
		t.Fatalf("expected no-op nesting under current parent")
	}
}
