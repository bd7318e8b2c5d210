package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/vladelaina/NekoTick-sub003/internal/model"
	"github.com/vladelaina/NekoTick-sub003/internal/store"
)

func TestTasksMoveBefore(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	seedBoard(t, dir)

	stdout, stderr, err := runCLI(t, []string{"--dir", dir, "tasks", "move", "task-c", "--before", "task-a"})
	if err != nil {
		t.Fatalf("tasks move: %v\nstderr:\n%s", err, string(stderr))
	}

	var env struct {
		Data model.Task `json:"data"`
	}
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal: %v\nstdout:\n%s", err, string(stdout))
	}
	if env.Data.ID != "task-c" || env.Data.Order != 0 {
		t.Fatalf("expected task-c at order 0; got %s order %d", env.Data.ID, env.Data.Order)
	}

	db, err := (store.Store{Dir: dir}).Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	for id, want := range map[string]int{"task-c": 0, "task-a": 1, "task-b": 2} {
		task, ok := db.FindTask(id)
		if !ok {
			t.Fatalf("missing %s after reload", id)
		}
		if task.Order != want {
			t.Fatalf("expected %s at order %d; got %d", id, want, task.Order)
		}
	}
}

func TestTasksMoveToIndex(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	seedBoard(t, dir)

	stdout, stderr, err := runCLI(t, []string{"--dir", dir, "tasks", "move", "task-a", "--to-index", "2"})
	if err != nil {
		t.Fatalf("tasks move: %v\nstderr:\n%s", err, string(stderr))
	}

	var env struct {
		Data model.Task `json:"data"`
	}
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal: %v\nstdout:\n%s", err, string(stdout))
	}
	if env.Data.Order != 2 {
		t.Fatalf("expected task-a moved to order 2; got %d", env.Data.Order)
	}
}

func TestTasksMoveRequiresExactlyOneAnchor(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	seedBoard(t, dir)

	_, stderr, err := runCLI(t, []string{"--dir", dir, "tasks", "move", "task-a"})
	if err == nil {
		t.Fatalf("expected error without an anchor flag")
	}
	if !strings.Contains(string(stderr), "exactly one of") {
		t.Fatalf("expected anchor-flag message on stderr; got: %s", string(stderr))
	}

	_, stderr, err = runCLI(t, []string{"--dir", dir, "tasks", "move", "task-a", "--before", "task-b", "--after", "task-c"})
	if err == nil {
		t.Fatalf("expected error with two anchor flags")
	}
	if !strings.Contains(string(stderr), "exactly one of") {
		t.Fatalf("expected anchor-flag message on stderr; got: %s", string(stderr))
	}
}

func TestTasksSetParentNests(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	seedBoard(t, dir)

	stdout, stderr, err := runCLI(t, []string{"--dir", dir, "tasks", "set-parent", "task-b", "--parent", "task-a"})
	if err != nil {
		t.Fatalf("tasks set-parent: %v\nstderr:\n%s", err, string(stderr))
	}

	var env struct {
		Data model.Task `json:"data"`
	}
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal: %v\nstdout:\n%s", err, string(stdout))
	}
	if env.Data.ParentID == nil || *env.Data.ParentID != "task-a" {
		t.Fatalf("expected task-b under task-a; got %v", env.Data.ParentID)
	}
	if env.Data.Order != 1 {
		t.Fatalf("expected task-b appended after task-a1 at order 1; got %d", env.Data.Order)
	}

	// show lists the children in order.
	showOut, showErr, err := runCLI(t, []string{"--dir", dir, "tasks", "show", "task-a"})
	if err != nil {
		t.Fatalf("tasks show: %v\nstderr:\n%s", err, string(showErr))
	}
	var show struct {
		Data struct {
			Children []string `json:"children"`
		} `json:"data"`
	}
	if err := json.Unmarshal(showOut, &show); err != nil {
		t.Fatalf("unmarshal show: %v\nstdout:\n%s", err, string(showOut))
	}
	if len(show.Data.Children) != 2 || show.Data.Children[0] != "task-a1" || show.Data.Children[1] != "task-b" {
		t.Fatalf("expected children [task-a1 task-b]; got %v", show.Data.Children)
	}
}

func TestTasksSetParentRefusesCycle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	seedBoard(t, dir)

	_, stderr, err := runCLI(t, []string{"--dir", dir, "tasks", "set-parent", "task-a", "--parent", "task-a1"})
	if err == nil {
		t.Fatalf("expected cycle error")
	}
	if !strings.Contains(string(stderr), "cycle") {
		t.Fatalf("expected cycle message on stderr; got: %s", string(stderr))
	}
}

func TestTasksSetParentNoneLifts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	seedBoard(t, dir)

	stdout, stderr, err := runCLI(t, []string{"--dir", dir, "tasks", "set-parent", "task-a1"})
	if err != nil {
		t.Fatalf("tasks set-parent: %v\nstderr:\n%s", err, string(stderr))
	}

	var env struct {
		Data model.Task `json:"data"`
	}
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal: %v\nstdout:\n%s", err, string(stdout))
	}
	if env.Data.ParentID != nil {
		t.Fatalf("expected task-a1 at top level; got parent %v", *env.Data.ParentID)
	}
	if env.Data.Order != 3 {
		t.Fatalf("expected task-a1 appended at order 3; got %d", env.Data.Order)
	}
}

func TestTasksMoveGroup(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	seedBoard(t, dir)

	if _, stderr, err := runCLI(t, []string{"--dir", dir, "groups", "create", "--name", "Work"}); err != nil {
		t.Fatalf("groups create: %v\nstderr:\n%s", err, string(stderr))
	}
	db, err := (store.Store{Dir: dir}).Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	var workID string
	for _, g := range db.Groups {
		if g.Name == "Work" {
			workID = g.ID
		}
	}
	if workID == "" {
		t.Fatalf("expected Work group after create")
	}

	stdout, stderr, err := runCLI(t, []string{"--dir", dir, "tasks", "move-group", "task-a", "--to", workID})
	if err != nil {
		t.Fatalf("tasks move-group: %v\nstderr:\n%s", err, string(stderr))
	}
	var env struct {
		Data model.Task `json:"data"`
	}
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal: %v\nstdout:\n%s", err, string(stdout))
	}
	if env.Data.GroupID != workID {
		t.Fatalf("expected task-a in %s; got %s", workID, env.Data.GroupID)
	}

	// The child rode along.
	db, err = (store.Store{Dir: dir}).Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	child, ok := db.FindTask("task-a1")
	if !ok {
		t.Fatalf("missing task-a1 after move")
	}
	if child.GroupID != workID {
		t.Fatalf("expected task-a1 carried to %s; got %s", workID, child.GroupID)
	}
}
