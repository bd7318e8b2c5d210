package mutate

import (
	"errors"
	"strings"
	"time"

	"github.com/vladelaina/NekoTick-sub003/internal/model"
	"github.com/vladelaina/NekoTick-sub003/internal/store"
)

var ErrInvalidRange = errors.New("end must be after start")

type ScheduleResult struct {
	Task         *model.Task
	Changed      bool
	EventPayload map[string]any
}

// ScheduleTask pins a task to a calendar block. Only the dates move; a
// completed task stays completed, so scheduling never flips the checkbox.
//
// Callers are responsible for saving db and appending the task.schedule event.
func ScheduleTask(db *store.DB, taskID string, start, end time.Time, now time.Time) (ScheduleResult, error) {
	taskID = strings.TrimSpace(taskID)
	if db == nil || taskID == "" {
		return ScheduleResult{}, nil
	}
	if !end.After(start) {
		return ScheduleResult{}, ErrInvalidRange
	}

	t, ok := db.FindTask(taskID)
	if !ok {
		return ScheduleResult{}, NotFoundError{Kind: "task", ID: taskID}
	}
	if t.StartDate != nil && t.StartDate.Equal(start) && t.EndDate != nil && t.EndDate.Equal(end) {
		return ScheduleResult{Task: t, Changed: false}, nil
	}

	s, e := start, end
	t.StartDate = &s
	t.EndDate = &e
	t.UpdatedAt = now
	db.ResetIndexes()
	return ScheduleResult{
		Task:    t,
		Changed: true,
		EventPayload: map[string]any{
			"start": start.UTC().Format(time.RFC3339),
			"end":   end.UTC().Format(time.RFC3339),
		},
	}, nil
}

// UnscheduleTask clears a task's calendar block, dropping it back to the
// Todo section unless it is completed.
//
// Callers are responsible for saving db and appending the task.unschedule event.
func UnscheduleTask(db *store.DB, taskID string, now time.Time) (ScheduleResult, error) {
	taskID = strings.TrimSpace(taskID)
	if db == nil || taskID == "" {
		return ScheduleResult{}, nil
	}

	t, ok := db.FindTask(taskID)
	if !ok {
		return ScheduleResult{}, NotFoundError{Kind: "task", ID: taskID}
	}
	if t.StartDate == nil && t.EndDate == nil {
		return ScheduleResult{Task: t, Changed: false}, nil
	}

	t.StartDate = nil
	t.EndDate = nil
	t.UpdatedAt = now
	db.ResetIndexes()
	return ScheduleResult{
		Task:         t,
		Changed:      true,
		EventPayload: map[string]any{"start": nil, "end": nil},
	}, nil
}
