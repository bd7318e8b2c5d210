package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vladelaina/NekoTick-sub003/internal/drag"
	"github.com/vladelaina/NekoTick-sub003/internal/mutate"
)

func newTasksScheduleCmd(app *App) *cobra.Command {
	var startStr string
	var endStr string
	var durationStr string

	cmd := &cobra.Command{
		Use:   "schedule <task-id>",
		Short: "Pin a task to a calendar block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			start, err := parseTimestamp(startStr)
			if err != nil {
				return writeErr(cmd, err)
			}
			var end time.Time
			if strings.TrimSpace(endStr) != "" {
				end, err = parseTimestamp(endStr)
				if err != nil {
					return writeErr(cmd, err)
				}
			} else {
				d := drag.DefaultDuration
				if strings.TrimSpace(durationStr) != "" {
					d, err = time.ParseDuration(durationStr)
					if err != nil {
						return writeErr(cmd, err)
					}
				}
				end = start.Add(d)
			}

			res, err := mutate.ScheduleTask(db, args[0], start, end, time.Now().UTC())
			if err != nil {
				return writeErr(cmd, err)
			}
			if res.Changed {
				if err := s.Save(db); err != nil {
					return writeErr(cmd, err)
				}
				_ = s.AppendEvent("task.schedule", args[0], res.EventPayload)
			}
			return writeOut(cmd, app, map[string]any{"data": res.Task})
		},
	}
	cmd.Flags().StringVar(&startStr, "start", "", "Start (YYYY-MM-DD, YYYY-MM-DD HH:MM, or RFC3339)")
	cmd.Flags().StringVar(&endStr, "end", "", "End (same formats; default: start + --duration)")
	cmd.Flags().StringVar(&durationStr, "duration", "", "Block length when --end is omitted (default 30m)")
	_ = cmd.MarkFlagRequired("start")
	return cmd
}

func newTasksUnscheduleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unschedule <task-id>",
		Short: "Clear a task's calendar block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.UnscheduleTask(db, args[0], time.Now().UTC())
			if err != nil {
				return writeErr(cmd, err)
			}
			if res.Changed {
				if err := s.Save(db); err != nil {
					return writeErr(cmd, err)
				}
				_ = s.AppendEvent("task.unschedule", args[0], res.EventPayload)
			}
			return writeOut(cmd, app, map[string]any{"data": res.Task})
		},
	}
	return cmd
}
