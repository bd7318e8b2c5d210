package cli

import (
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vladelaina/NekoTick-sub003/internal/drag"
	"github.com/vladelaina/NekoTick-sub003/internal/model"
)

func newWeekCmd(app *App) *cobra.Command {
	var dateStr string
	var groupID string

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show one week's scheduled tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			anchor := time.Now()
			if strings.TrimSpace(dateStr) != "" {
				anchor, err = parseTimestamp(dateStr)
				if err != nil {
					return writeErr(cmd, err)
				}
			}

			gid := strings.TrimSpace(groupID)
			if gid != "" {
				if _, ok := db.FindGroup(gid); !ok {
					return writeErr(cmd, errNotFound("group", gid))
				}
			}

			start := drag.WeekStart(anchor)
			end := start.AddDate(0, 0, 7)
			tasks := make([]model.Task, 0)
			for _, t := range db.Tasks {
				if gid != "" && t.GroupID != gid {
					continue
				}
				if t.StartDate == nil {
					continue
				}
				if t.StartDate.Before(start) || !t.StartDate.Before(end) {
					continue
				}
				tasks = append(tasks, t)
			}
			sort.SliceStable(tasks, func(a, b int) bool {
				return tasks[a].StartDate.Before(*tasks[b].StartDate)
			})

			if app.Output == outputTable {
				tablePrinter(cmd, false).Week(anchor, tasks)
				return nil
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"weekStart": start,
					"tasks":     tasks,
				},
			})
		},
	}
	cmd.Flags().StringVar(&dateStr, "date", "", "Any date inside the week to show (default: today)")
	cmd.Flags().StringVar(&groupID, "group", "", "Limit to one group (default: all groups)")
	return cmd
}
