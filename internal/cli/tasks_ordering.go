package cli

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vladelaina/NekoTick-sub003/internal/mutate"
)

func newTasksMoveCmd(app *App) *cobra.Command {
	var before string
	var after string
	var toIndex int

	cmd := &cobra.Command{
		Use:   "move <task-id>",
		Short: "Reorder a task (same parent with --to-index, any row with --before/--after)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := args[0]

			set := 0
			if before != "" {
				set++
			}
			if after != "" {
				set++
			}
			if cmd.Flags().Changed("to-index") {
				set++
			}
			if set != 1 {
				return writeErr(cmd, errors.New("provide exactly one of --before, --after or --to-index"))
			}

			now := time.Now().UTC()
			var res mutate.ReorderResult
			switch {
			case before != "":
				res, err = mutate.ReorderTaskRelative(db, id, before, false, now)
			case after != "":
				res, err = mutate.ReorderTaskRelative(db, id, after, true, now)
			default:
				res, err = mutate.ReorderTask(db, id, toIndex, now)
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			if res.Changed {
				if err := s.Save(db); err != nil {
					return writeErr(cmd, err)
				}
				_ = s.AppendEvent("task.reorder", id, res.EventPayload)
			}
			return writeOut(cmd, app, map[string]any{"data": res.Task})
		},
	}
	cmd.Flags().StringVar(&before, "before", "", "Move before this task id")
	cmd.Flags().StringVar(&after, "after", "", "Move after this task id")
	cmd.Flags().IntVar(&toIndex, "to-index", 0, "Move to this position among current siblings (0-based)")
	return cmd
}

func newTasksSetParentCmd(app *App) *cobra.Command {
	var parent string

	cmd := &cobra.Command{
		Use:   "set-parent <task-id>",
		Short: "Nest a task under a parent (or 'none' for top level)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			pid := strings.TrimSpace(parent)
			if strings.EqualFold(pid, "none") {
				pid = ""
			}

			res, err := mutate.NestTask(db, args[0], pid, time.Now().UTC())
			if err != nil {
				return writeErr(cmd, err)
			}
			if res.Changed {
				if err := s.Save(db); err != nil {
					return writeErr(cmd, err)
				}
				_ = s.AppendEvent("task.set_parent", args[0], res.EventPayload)
			}
			return writeOut(cmd, app, map[string]any{"data": res.Task})
		},
	}
	cmd.Flags().StringVar(&parent, "parent", "none", "New parent task id (or 'none' for top level)")
	return cmd
}

func newTasksMoveGroupCmd(app *App) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "move-group <task-id>",
		Short: "Move a task and its subtree to another group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.MoveTaskToGroup(db, args[0], to, time.Now().UTC())
			if err != nil {
				return writeErr(cmd, err)
			}
			if res.Changed {
				if err := s.Save(db); err != nil {
					return writeErr(cmd, err)
				}
				_ = s.AppendEvent("task.move_group", args[0], res.EventPayload)
			}
			return writeOut(cmd, app, map[string]any{"data": res.Task})
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "Destination group id")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
