package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/vladelaina/NekoTick-sub003/internal/model"
	"github.com/vladelaina/NekoTick-sub003/internal/store"
)

func newEventsCmd(app *App) *cobra.Command {
	var taskID string
	var limit int

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Show the event log tail (oldest first)",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			var evs []model.Event
			if id := strings.TrimSpace(taskID); id != "" {
				evs, err = store.ReadEventsForTask(s.Dir, id, limit)
			} else {
				evs, err = store.ReadEventsTail(s.Dir, limit)
			}
			if err != nil {
				return writeErr(cmd, err)
			}

			if app.Output == outputTable {
				tablePrinter(cmd, false).Events(evs)
				return nil
			}
			return writeOut(cmd, app, map[string]any{"data": evs})
		},
	}
	cmd.Flags().StringVar(&taskID, "task", "", "Only events for this task id")
	cmd.Flags().IntVar(&limit, "limit", 200, "Max events to return (0 = all)")
	return cmd
}
