package cli

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vladelaina/NekoTick-sub003/internal/model"
	"github.com/vladelaina/NekoTick-sub003/internal/mutate"
	"github.com/vladelaina/NekoTick-sub003/internal/section"
	"github.com/vladelaina/NekoTick-sub003/internal/store"
	"github.com/vladelaina/NekoTick-sub003/internal/tree"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Task commands",
	}

	cmd.AddCommand(newTasksAddCmd(app))
	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksTreeCmd(app))
	cmd.AddCommand(newTasksShowCmd(app))
	cmd.AddCommand(newTasksSetContentCmd(app))
	cmd.AddCommand(newTasksSetNotesCmd(app))
	cmd.AddCommand(newTasksSetColorCmd(app))
	cmd.AddCommand(newTasksCompleteCmd(app))
	cmd.AddCommand(newTasksUncompleteCmd(app))
	cmd.AddCommand(newTasksCollapseCmd(app))
	cmd.AddCommand(newTasksScheduleCmd(app))
	cmd.AddCommand(newTasksUnscheduleCmd(app))
	cmd.AddCommand(newTasksMoveCmd(app))
	cmd.AddCommand(newTasksSetParentCmd(app))
	cmd.AddCommand(newTasksMoveGroupCmd(app))
	cmd.AddCommand(newTasksDeleteCmd(app))

	return cmd
}

// resolveGroup picks the group list commands operate on: the explicit
// flag, the current group, or the only active group when there is
// exactly one.
func resolveGroup(db *store.DB, flag string) (string, error) {
	gid := strings.TrimSpace(flag)
	if gid != "" {
		if _, ok := db.FindGroup(gid); !ok {
			return "", errNotFound("group", gid)
		}
		return gid, nil
	}
	if cur := strings.TrimSpace(db.CurrentGroupID); cur != "" {
		return cur, nil
	}
	var active []model.Group
	for _, g := range db.Groups {
		if !g.Archived {
			active = append(active, g)
		}
	}
	if len(active) == 1 {
		return active[0].ID, nil
	}
	return "", errors.New("missing --group (or select one with `nekotick groups use <group-id>`)")
}

func newTasksAddCmd(app *App) *cobra.Command {
	var groupID string
	var parentID string
	var content string
	var notes string
	var colorHex string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			gid, err := resolveGroup(db, groupID)
			if err != nil {
				return writeErr(cmd, err)
			}
			var pid *string
			if p := strings.TrimSpace(parentID); p != "" {
				pid = &p
			}

			now := time.Now().UTC()
			res, err := mutate.CreateTask(db, gid, pid, content, now)
			if err != nil {
				return writeErr(cmd, err)
			}
			if res.Task == nil {
				return writeErr(cmd, errors.New("task content is empty"))
			}
			// Optional fields ride on the creating commit.
			if strings.TrimSpace(notes) != "" {
				if _, err := mutate.SetTaskNotes(db, res.Task.ID, notes, now); err != nil {
					return writeErr(cmd, err)
				}
			}
			if strings.TrimSpace(colorHex) != "" {
				if _, err := mutate.SetTaskColor(db, res.Task.ID, colorHex, now); err != nil {
					return writeErr(cmd, err)
				}
			}

			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent("task.create", res.Task.ID, res.EventPayload)
			return writeOut(cmd, app, map[string]any{"data": res.Task})
		},
	}
	cmd.Flags().StringVar(&groupID, "group", "", "Group id (optional if a current group is set)")
	cmd.Flags().StringVar(&parentID, "parent", "", "Parent task id (nest under it)")
	cmd.Flags().StringVar(&content, "content", "", "Task content")
	cmd.Flags().StringVar(&notes, "notes", "", "Markdown notes (optional)")
	cmd.Flags().StringVar(&colorHex, "color", "", "Accent color, #rgb or #rrggbb (optional)")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}

func newTasksListCmd(app *App) *cobra.Command {
	var groupID string
	var sectionName string
	var showIDs bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks grouped by section",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			gid, err := resolveGroup(db, groupID)
			if err != nil {
				return writeErr(cmd, err)
			}

			sections := []section.Section{section.Todo, section.Scheduled, section.Completed}
			if v := strings.ToLower(strings.TrimSpace(sectionName)); v != "" {
				sec := section.Section(v)
				if !section.Valid(sec) {
					return writeErr(cmd, mutate.ErrInvalidSection)
				}
				sections = []section.Section{sec}
			}

			if app.Output == outputTable {
				p := tablePrinter(cmd, showIDs)
				for _, sec := range sections {
					rows := sectionRows(db.Tasks, gid, sec)
					p.SectionTitle(sec, len(rows))
					p.Tasks(rows)
				}
				return nil
			}

			out := make([]model.Task, 0)
			for _, sec := range sections {
				for _, r := range sectionRows(db.Tasks, gid, sec) {
					out = append(out, r.Task)
				}
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
	cmd.Flags().StringVar(&groupID, "group", "", "Group id (default: current group)")
	cmd.Flags().StringVar(&sectionName, "section", "", "Only one section (todo|scheduled|completed)")
	cmd.Flags().BoolVar(&showIDs, "ids", false, "Show task ids in table output")
	return cmd
}

// sectionRows flattens the group's tree keeping the top-level tasks in
// one section; subtrees ride with their root so nesting survives the
// section split.
func sectionRows(tasks []model.Task, groupID string, sec section.Section) []tree.Row {
	return tree.FlattenRoots(tasks, groupID, false, func(t model.Task) bool {
		return section.Of(t) == sec
	})
}

func newTasksTreeCmd(app *App) *cobra.Command {
	var groupID string
	var showIDs bool

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show the group's full task tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			gid, err := resolveGroup(db, groupID)
			if err != nil {
				return writeErr(cmd, err)
			}

			rows := tree.Flatten(db.Tasks, gid, false)
			if app.Output == outputTable {
				tablePrinter(cmd, showIDs).Tasks(rows)
				return nil
			}
			return writeOut(cmd, app, map[string]any{"data": rows})
		},
	}
	cmd.Flags().StringVar(&groupID, "group", "", "Group id (default: current group)")
	cmd.Flags().BoolVar(&showIDs, "ids", false, "Show task ids in table output")
	return cmd
}

func newTasksShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, ok := db.FindTask(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("task", args[0]))
			}

			children := db.ChildrenOf(t.ID)
			childIDs := make([]string, 0, len(children))
			for _, c := range children {
				childIDs = append(childIDs, c.ID)
			}

			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"task":     t,
					"section":  section.Of(*t),
					"children": childIDs,
				},
			})
		},
	}
	return cmd
}

func newTasksDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task and its subtree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.DeleteTask(db, args[0], time.Now().UTC())
			if err != nil {
				return writeErr(cmd, err)
			}
			if res.Changed {
				if err := s.Save(db); err != nil {
					return writeErr(cmd, err)
				}
				_ = s.AppendEvent("task.delete", args[0], res.EventPayload)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deletedIds": res.DeletedIDs}})
		},
	}
	return cmd
}
