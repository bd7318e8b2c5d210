package cli

import (
	"github.com/spf13/cobra"

	"github.com/vladelaina/NekoTick-sub003/internal/section"
	"github.com/vladelaina/NekoTick-sub003/internal/store"
)

func newStatusCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show vault status",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			counts := map[section.Section]int{}
			for _, t := range db.Tasks {
				counts[section.Of(t)]++
			}
			evs, err := store.ReadEventsTail(s.Dir, 0)
			if err != nil {
				return writeErr(cmd, err)
			}

			if app.Output == outputTable {
				tablePrinter(cmd, false).Status(s.Dir, counts)
				return nil
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"dir":            s.Dir,
					"currentGroupId": db.CurrentGroupID,
					"groups":         len(db.Groups),
					"tasks":          len(db.Tasks),
					"todo":           counts[section.Todo],
					"scheduled":      counts[section.Scheduled],
					"completed":      counts[section.Completed],
					"events":         len(evs),
				},
			})
		},
	}
	return cmd
}
