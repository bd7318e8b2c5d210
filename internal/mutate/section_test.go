package mutate

import (
	"testing"
	"time"

	"github.com/vladelaina/NekoTick-sub003/internal/model"
	"github.com/vladelaina/NekoTick-sub003/internal/section"
	"github.com/vladelaina/NekoTick-sub003/internal/store"
)

func TestTransitionSectionSchedulesAtNow(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	db := &store.DB{
		Version: 1,
		Groups:  []model.Group{{ID: "grp-a", Name: "Inbox", CreatedAt: now}},
		Tasks: []model.Task{
			{ID: "task-a", GroupID: "grp-a", Order: 0, Content: "A", CreatedAt: now, UpdatedAt: now},
		},
	}

	res, err := TransitionSection(db, "task-a", section.Scheduled, now, 30*time.Minute)
	if err != nil {
		t.Fatalf("TransitionSection error: %v", err)
	}
	if !res.Changed {
		t.Fatalf("expected changed=true")
	}
	if res.Task.StartDate == nil || !res.Task.StartDate.Equal(now) {
		t.Fatalf("expected start at now; got %v", res.Task.StartDate)
	}
	if res.Task.EndDate == nil || !res.Task.EndDate.Equal(now.Add(30*time.Minute)) {
		t.Fatalf("expected end after default duration; got %v", res.Task.EndDate)
	}
	if got := section.Of(*res.Task); got != section.Scheduled {
		t.Fatalf("expected scheduled; got %v", got)
	}
	if res.EventPayload["from"] != "todo" || res.EventPayload["to"] != "scheduled" {
		t.Fatalf("unexpected payload: %v", res.EventPayload)
	}
}

func TestTransitionSectionCompletedClearsSchedule(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	start := now.Add(time.Hour)
	end := start.Add(30 * time.Minute)
	db := &store.DB{
		Version: 1,
		Groups:  []model.Group{{ID: "grp-a", Name: "Inbox", CreatedAt: now}},
		Tasks: []model.Task{
			{ID: "task-a", GroupID: "grp-a", Order: 0, Content: "A", StartDate: &start, EndDate: &end, CreatedAt: now, UpdatedAt: now},
		},
	}

	res, err := TransitionSection(db, "task-a", section.Completed, now, 30*time.Minute)
	if err != nil {
		t.Fatalf("TransitionSection error: %v", err)
	}
	if !res.Task.Completed {
		t.Fatalf("expected completed")
	}
	if res.Task.StartDate != nil || res.Task.EndDate != nil {
		t.Fatalf("drop to completed must clear the schedule; got %v %v", res.Task.StartDate, res.Task.EndDate)
	}
}

func TestTransitionSectionSameIsNoop(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	db := &store.DB{
		Version: 1,
		Groups:  []model.Group{{ID: "grp-a", Name: "Inbox", CreatedAt: now}},
		Tasks: []model.Task{
			{ID: "task-a", GroupID: "grp-a", Order: 0, Content: "A", CreatedAt: now, UpdatedAt: now},
		},
	}

	res, err := TransitionSection(db, "task-a", section.Todo, now, 30*time.Minute)
	if err != nil {
		t.Fatalf("TransitionSection error: %v", err)
	}
	if res.Changed {
		t.Fatalf("same-section drop must be a no-op")
	}
}

func TestTransitionSectionUnknownSection(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	db := &store.DB{
		Version: 1,
		Groups:  []model.Group{{ID: "grp-a", Name: "Inbox", CreatedAt: now}},
		Tasks: []model.Task{
			{ID: "task-a", GroupID: "grp-a", Order: 0, Content: "A", CreatedAt: now, UpdatedAt: now},
		},
	}

	if _, err := TransitionSection(db, "task-a", section.Section("doing"), now, 30*time.Minute); err != ErrInvalidSection {
		t.Fatalf("expected ErrInvalidSection; got %v", err)
	}
}
