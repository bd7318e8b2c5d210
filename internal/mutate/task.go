package mutate

import (
	"errors"
	"strings"
	"time"

	"github.com/vladelaina/NekoTick-sub003/internal/model"
	"github.com/vladelaina/NekoTick-sub003/internal/store"
	"github.com/vladelaina/NekoTick-sub003/internal/tree"
)

var ErrInvalidColor = errors.New("invalid color; use #rgb or #rrggbb hex")

type CreateTaskResult struct {
	Task         *model.Task
	Changed      bool
	EventPayload map[string]any
}

// CreateTask appends a new task at the end of the sibling run under
// parentID (nil for the group's top level), with the next contiguous order.
//
// Callers are responsible for saving db and appending the task.create event.
func CreateTask(db *store.DB, groupID string, parentID *string, content string, now time.Time) (CreateTaskResult, error) {
	groupID = strings.TrimSpace(groupID)
	content = strings.TrimSpace(content)
	if db == nil || groupID == "" || content == "" {
		return CreateTaskResult{}, nil
	}

	g, ok := db.FindGroup(groupID)
	if !ok || g.Archived {
		return CreateTaskResult{}, NotFoundError{Kind: "group", ID: groupID}
	}
	if parentID != nil {
		pid := strings.TrimSpace(*parentID)
		if pid == "" {
			parentID = nil
		} else {
			p, ok := db.FindTask(pid)
			if !ok {
				return CreateTaskResult{}, NotFoundError{Kind: "task", ID: pid}
			}
			if p.GroupID != g.ID {
				return CreateTaskResult{}, ErrCrossGroupParent
			}
			tmp := p.ID
			parentID = &tmp
		}
	}

	t := model.Task{
		ID:        store.NextID(db, "task"),
		GroupID:   g.ID,
		ParentID:  parentID,
		Order:     len(tree.Children(db.Tasks, parentID, g.ID)),
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	db.Tasks = append(db.Tasks, t)
	db.ResetIndexes()

	created, _ := db.FindTask(t.ID)
	return CreateTaskResult{
		Task:         created,
		Changed:      true,
		EventPayload: map[string]any{"groupId": g.ID, "content": t.Content},
	}, nil
}

type UpdateTaskResult struct {
	Task         *model.Task
	Changed      bool
	EventPayload map[string]any
}

// SetTaskContent replaces the task's one-line content. Blank content is
// ignored rather than erasing the task's text.
//
// Callers are responsible for saving db and appending the task.set_content event.
func SetTaskContent(db *store.DB, taskID, content string, now time.Time) (UpdateTaskResult, error) {
	taskID = strings.TrimSpace(taskID)
	content = strings.TrimSpace(content)
	if db == nil || taskID == "" || content == "" {
		return UpdateTaskResult{}, nil
	}

	t, ok := db.FindTask(taskID)
	if !ok {
		return UpdateTaskResult{}, NotFoundError{Kind: "task", ID: taskID}
	}
	if t.Content == content {
		return UpdateTaskResult{Task: t, Changed: false}, nil
	}

	t.Content = content
	t.UpdatedAt = now
	db.ResetIndexes()
	return UpdateTaskResult{
		Task:         t,
		Changed:      true,
		EventPayload: map[string]any{"content": t.Content},
	}, nil
}

// SetTaskNotes sets (or clears, with "") the task's markdown notes.
//
// Callers are responsible for saving db and appending the task.set_notes event.
func SetTaskNotes(db *store.DB, taskID, notes string, now time.Time) (UpdateTaskResult, error) {
	taskID = strings.TrimSpace(taskID)
	notes = strings.TrimSpace(notes)
	if db == nil || taskID == "" {
		return UpdateTaskResult{}, nil
	}

	t, ok := db.FindTask(taskID)
	if !ok {
		return UpdateTaskResult{}, NotFoundError{Kind: "task", ID: taskID}
	}
	if t.Notes == notes {
		return UpdateTaskResult{Task: t, Changed: false}, nil
	}

	t.Notes = notes
	t.UpdatedAt = now
	db.ResetIndexes()
	return UpdateTaskResult{
		Task:         t,
		Changed:      true,
		EventPayload: map[string]any{"chars": len(t.Notes)},
	}, nil
}

func normalizeColor(color string) (string, error) {
	c := strings.ToLower(strings.TrimSpace(color))
	if c == "" {
		return "", nil
	}
	if len(c) != 4 && len(c) != 7 {
		return "", ErrInvalidColor
	}
	if c[0] != '#' {
		return "", ErrInvalidColor
	}
	for _, r := range c[1:] {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		default:
			return "", ErrInvalidColor
		}
	}
	return c, nil
}

// SetTaskColor sets (or clears, with "") the task's accent color.
//
// Callers are responsible for saving db and appending the task.set_color event.
func SetTaskColor(db *store.DB, taskID, color string, now time.Time) (UpdateTaskResult, error) {
	taskID = strings.TrimSpace(taskID)
	if db == nil || taskID == "" {
		return UpdateTaskResult{}, nil
	}

	t, ok := db.FindTask(taskID)
	if !ok {
		return UpdateTaskResult{}, NotFoundError{Kind: "task", ID: taskID}
	}
	next, err := normalizeColor(color)
	if err != nil {
		return UpdateTaskResult{}, err
	}
	if t.Color == next {
		return UpdateTaskResult{Task: t, Changed: false}, nil
	}

	t.Color = next
	t.UpdatedAt = now
	db.ResetIndexes()
	return UpdateTaskResult{
		Task:         t,
		Changed:      true,
		EventPayload: map[string]any{"color": t.Color},
	}, nil
}

// SetTaskCollapsed folds or unfolds the task's subtree in list views.
//
// Callers are responsible for saving db and appending the task.set_collapsed event.
func SetTaskCollapsed(db *store.DB, taskID string, collapsed bool, now time.Time) (UpdateTaskResult, error) {
	taskID = strings.TrimSpace(taskID)
	if db == nil || taskID == "" {
		return UpdateTaskResult{}, nil
	}

	t, ok := db.FindTask(taskID)
	if !ok {
		return UpdateTaskResult{}, NotFoundError{Kind: "task", ID: taskID}
	}
	if t.Collapsed == collapsed {
		return UpdateTaskResult{Task: t, Changed: false}, nil
	}

	t.Collapsed = collapsed
	t.UpdatedAt = now
	db.ResetIndexes()
	return UpdateTaskResult{
		Task:         t,
		Changed:      true,
		EventPayload: map[string]any{"collapsed": t.Collapsed},
	}, nil
}

// CompleteTask toggles the checkbox completion flag. A schedule on the
// task is kept, so uncompleting a scheduled task puts it back in the
// Scheduled section instead of Todo.
//
// Callers are responsible for saving db and appending the task.complete event.
func CompleteTask(db *store.DB, taskID string, completed bool, now time.Time) (UpdateTaskResult, error) {
	taskID = strings.TrimSpace(taskID)
	if db == nil || taskID == "" {
		return UpdateTaskResult{}, nil
	}

	t, ok := db.FindTask(taskID)
	if !ok {
		return UpdateTaskResult{}, NotFoundError{Kind: "task", ID: taskID}
	}
	if t.Completed == completed {
		return UpdateTaskResult{Task: t, Changed: false}, nil
	}

	t.Completed = completed
	t.UpdatedAt = now
	db.ResetIndexes()
	return UpdateTaskResult{
		Task:         t,
		Changed:      true,
		EventPayload: map[string]any{"completed": t.Completed},
	}, nil
}
