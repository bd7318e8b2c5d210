package store

import (
	"testing"
)

func TestEventLogAppendAndTail(t *testing.T) {
	dir := t.TempDir()
	s := Store{Dir: dir}

	if err := s.AppendEvent("task.create", "task-a", map[string]any{"content": "x"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.AppendEvent("task.schedule", "task-a", map[string]any{"start": "2025-03-10T09:00:00Z"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.AppendEvent("task.create", "task-b", nil); err != nil {
		t.Fatalf("append: %v", err)
	}

	evs, err := ReadEventsTail(dir, 0)
	if err != nil {
		t.Fatalf("read tail: %v", err)
	}
	if len(evs) != 3 {
		t.Fatalf("expected 3 events, got %d", len(evs))
	}
	if evs[0].Type != "task.create" || evs[0].TaskID != "task-a" {
		t.Fatalf("expected oldest first, got %+v", evs[0])
	}

	evs, err = ReadEventsTail(dir, 2)
	if err != nil {
		t.Fatalf("read tail limit: %v", err)
	}
	if len(evs) != 2 || evs[1].TaskID != "task-b" {
		t.Fatalf("expected newest two in order, got %+v", evs)
	}

	evs, err = ReadEventsForTask(dir, "task-a", 0)
	if err != nil {
		t.Fatalf("read for task: %v", err)
	}
	if len(evs) != 2 || evs[1].Type != "task.schedule" {
		t.Fatalf("expected task-a history, got %+v", evs)
	}

	if evs, err := ReadEventsForTask(dir, "", 0); err != nil || len(evs) != 0 {
		t.Fatalf("expected empty for blank id, got %v %v", evs, err)
	}
}

func TestEventLogRejectsEmptyType(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	if err := s.AppendEvent("  ", "task-a", nil); err == nil {
		t.Fatalf("expected error for empty type")
	}
}

func TestEventLogSurvivesStateSaves(t *testing.T) {
	dir := t.TempDir()
	s := Store{Dir: dir}
	if err := s.AppendEvent("task.create", "task-a", nil); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.Save(&DB{Version: 1}); err != nil {
		t.Fatalf("save: %v", err)
	}
	evs, err := ReadEventsTail(dir, 0)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(evs) != 1 {
		t.Fatalf("state save must not clear the event log; got %d events", len(evs))
	}
}
