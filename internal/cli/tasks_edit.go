package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vladelaina/NekoTick-sub003/internal/mutate"
)

func newTasksSetContentCmd(app *App) *cobra.Command {
	var content string

	cmd := &cobra.Command{
		Use:   "set-content <task-id>",
		Short: "Replace a task's content line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.SetTaskContent(db, args[0], content, time.Now().UTC())
			if err != nil {
				return writeErr(cmd, err)
			}
			if res.Changed {
				if err := s.Save(db); err != nil {
					return writeErr(cmd, err)
				}
				_ = s.AppendEvent("task.set_content", args[0], res.EventPayload)
			}
			return writeOut(cmd, app, map[string]any{"data": res.Task})
		},
	}
	cmd.Flags().StringVar(&content, "content", "", "New content")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}

func newTasksSetNotesCmd(app *App) *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "set-notes <task-id>",
		Short: "Set a task's markdown notes (empty clears)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.SetTaskNotes(db, args[0], notes, time.Now().UTC())
			if err != nil {
				return writeErr(cmd, err)
			}
			if res.Changed {
				if err := s.Save(db); err != nil {
					return writeErr(cmd, err)
				}
				_ = s.AppendEvent("task.set_notes", args[0], res.EventPayload)
			}
			return writeOut(cmd, app, map[string]any{"data": res.Task})
		},
	}
	cmd.Flags().StringVar(&notes, "notes", "", "Markdown notes")
	return cmd
}

func newTasksSetColorCmd(app *App) *cobra.Command {
	var colorHex string

	cmd := &cobra.Command{
		Use:   "set-color <task-id>",
		Short: "Set a task's accent color (empty clears)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.SetTaskColor(db, args[0], colorHex, time.Now().UTC())
			if err != nil {
				return writeErr(cmd, err)
			}
			if res.Changed {
				if err := s.Save(db); err != nil {
					return writeErr(cmd, err)
				}
				_ = s.AppendEvent("task.set_color", args[0], res.EventPayload)
			}
			return writeOut(cmd, app, map[string]any{"data": res.Task})
		},
	}
	cmd.Flags().StringVar(&colorHex, "color", "", "Accent color, #rgb or #rrggbb")
	return cmd
}

func newTasksCompleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "complete <task-id>",
		Short: "Check a task off",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setCompleted(cmd, app, args[0], true)
		},
	}
	return cmd
}

func newTasksUncompleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uncomplete <task-id>",
		Short: "Uncheck a completed task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setCompleted(cmd, app, args[0], false)
		},
	}
	return cmd
}

func setCompleted(cmd *cobra.Command, app *App, taskID string, completed bool) error {
	db, s, err := loadDB(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	res, err := mutate.CompleteTask(db, taskID, completed, time.Now().UTC())
	if err != nil {
		return writeErr(cmd, err)
	}
	if res.Changed {
		if err := s.Save(db); err != nil {
			return writeErr(cmd, err)
		}
		_ = s.AppendEvent("task.complete", taskID, res.EventPayload)
	}
	return writeOut(cmd, app, map[string]any{"data": res.Task})
}

func newTasksCollapseCmd(app *App) *cobra.Command {
	var expand bool

	cmd := &cobra.Command{
		Use:   "collapse <task-id>",
		Short: "Fold a task's subtree in list views (unfold with --expand)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.SetTaskCollapsed(db, args[0], !expand, time.Now().UTC())
			if err != nil {
				return writeErr(cmd, err)
			}
			if res.Changed {
				if err := s.Save(db); err != nil {
					return writeErr(cmd, err)
				}
				_ = s.AppendEvent("task.set_collapsed", args[0], res.EventPayload)
			}
			return writeOut(cmd, app, map[string]any{"data": res.Task})
		},
	}
	cmd.Flags().BoolVar(&expand, "expand", false, "Unfold instead of folding")
	return cmd
}
