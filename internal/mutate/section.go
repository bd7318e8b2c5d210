package mutate

import (
	"errors"
	"strings"
	"time"

	"github.com/vladelaina/NekoTick-sub003/internal/model"
	"github.com/vladelaina/NekoTick-sub003/internal/section"
	"github.com/vladelaina/NekoTick-sub003/internal/store"
)

var ErrInvalidSection = errors.New("unknown section; use todo, scheduled or completed")

type TransitionResult struct {
	Task         *model.Task
	Changed      bool
	EventPayload map[string]any
}

// TransitionSection applies a cross-section drop to a task. Dropping a
// task into the section it is already in is a no-op, not an error; the
// caller treats it as a reorder instead.
//
// Callers are responsible for saving db and appending the task.section event.
func TransitionSection(db *store.DB, taskID string, to section.Section, now time.Time, defaultDuration time.Duration) (TransitionResult, error) {
	taskID = strings.TrimSpace(taskID)
	if db == nil || taskID == "" {
		return TransitionResult{}, nil
	}
	if !section.Valid(to) {
		return TransitionResult{}, ErrInvalidSection
	}

	t, ok := db.FindTask(taskID)
	if !ok {
		return TransitionResult{}, NotFoundError{Kind: "task", ID: taskID}
	}

	from := section.Of(*t)
	change, ok := section.Transition(*t, to, now, defaultDuration)
	if !ok {
		return TransitionResult{Task: t, Changed: false}, nil
	}

	*t = section.Apply(*t, change)
	t.UpdatedAt = now
	db.ResetIndexes()
	return TransitionResult{
		Task:    t,
		Changed: true,
		EventPayload: map[string]any{
			"from": string(from),
			"to":   string(to),
		},
	}, nil
}
