package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/vladelaina/NekoTick-sub003/internal/model"
)

func TestSaverNotifySnapshotsState(t *testing.T) {
	dir := t.TempDir()
	s := Store{Dir: dir}
	sv := NewSaver(s, time.Hour, nil)

	now := time.Now().UTC()
	db := &DB{
		Version: 1,
		Groups:  []model.Group{{ID: "grp-a", Name: "Inbox", CreatedAt: now}},
		Tasks: []model.Task{
			{ID: "task-a", GroupID: "grp-a", Order: 0, Content: "as notified", CreatedAt: now, UpdatedAt: now},
		},
	}
	sv.Notify(db)

	// Edits after Notify must not leak into the queued write.
	db.Tasks[0].Content = "mutated after notify"
	db.Tasks = append(db.Tasks, model.Task{ID: "task-b", GroupID: "grp-a", Order: 1, Content: "late", CreatedAt: now, UpdatedAt: now})

	if err := sv.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Tasks) != 1 {
		t.Fatalf("expected the notified snapshot (1 task), got %d", len(got.Tasks))
	}
	if got.Tasks[0].Content != "as notified" {
		t.Fatalf("content = %q, want the state at notify time", got.Tasks[0].Content)
	}
}

// The autosave timer writes on its own goroutine while the UI keeps
// editing the live snapshot; Notify's copy is what keeps the two apart.
// Run with -race.
func TestSaverConcurrentEditsWhileSaving(t *testing.T) {
	dir := t.TempDir()
	s := Store{Dir: dir}
	sv := NewSaver(s, time.Millisecond, nil)

	now := time.Now().UTC()
	db := &DB{Version: 1, Groups: []model.Group{{ID: "grp-a", Name: "Inbox", CreatedAt: now}}}

	const total = 150
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < total; i++ {
			db.Tasks = append(db.Tasks, model.Task{
				ID: fmt.Sprintf("task-%03d", i), GroupID: "grp-a",
				Content: "x", CreatedAt: now, UpdatedAt: now,
			})
			for j := range db.Tasks {
				db.Tasks[j].Order = j
			}
			sv.Notify(db)
		}
	}()
	<-done

	deadline := time.Now().Add(10 * time.Second)
	for sv.Dirty() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if sv.Dirty() {
		t.Fatal("saver still dirty after deadline")
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Tasks) != total {
		t.Fatalf("expected %d tasks in the final write, got %d", total, len(got.Tasks))
	}
	// A torn write shows up as a duplicated or dropped sibling order.
	seen := make([]bool, total)
	for _, tk := range got.Tasks {
		if tk.Order < 0 || tk.Order >= total || seen[tk.Order] {
			t.Fatalf("order %d duplicated or out of range", tk.Order)
		}
		seen[tk.Order] = true
	}
}

func TestDBCloneIsDetached(t *testing.T) {
	now := time.Now().UTC()
	parent := "task-a"
	start := now.Add(time.Hour)
	db := &DB{
		Version:        1,
		CurrentGroupID: "grp-a",
		Groups:         []model.Group{{ID: "grp-a", Name: "Inbox", CreatedAt: now}},
		Tasks: []model.Task{
			{ID: "task-a", GroupID: "grp-a", Order: 0, Content: "root", CreatedAt: now, UpdatedAt: now},
			{ID: "task-b", GroupID: "grp-a", ParentID: &parent, Order: 0, Content: "child", StartDate: &start, CreatedAt: now, UpdatedAt: now},
		},
	}

	cp := db.Clone()
	db.Tasks[0].Content = "edited"
	*db.Tasks[1].ParentID = "task-z"
	*db.Tasks[1].StartDate = now.Add(48 * time.Hour)
	db.Tasks = db.Tasks[:1]
	db.Groups[0].Name = "renamed"

	if cp.Tasks[0].Content != "root" {
		t.Fatalf("clone content = %q, want %q", cp.Tasks[0].Content, "root")
	}
	if len(cp.Tasks) != 2 {
		t.Fatalf("clone lost a task: %d", len(cp.Tasks))
	}
	if *cp.Tasks[1].ParentID != "task-a" {
		t.Fatalf("clone parent = %q, shares pointer with source", *cp.Tasks[1].ParentID)
	}
	if !cp.Tasks[1].StartDate.Equal(start) {
		t.Fatalf("clone start = %v, shares pointer with source", cp.Tasks[1].StartDate)
	}
	if cp.Groups[0].Name != "Inbox" {
		t.Fatalf("clone group = %q, want Inbox", cp.Groups[0].Name)
	}
}
