package cli

import (
	"github.com/spf13/cobra"

	"github.com/vladelaina/NekoTick-sub003/internal/store"
)

func newInitCmd(app *App) *cobra.Command {
	var use bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a vault",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}

			if use {
				cfg, err := store.LoadConfig()
				if err != nil {
					return writeErr(cmd, err)
				}
				cfg.CurrentVault = app.Dir
				if err := store.SaveConfig(cfg); err != nil {
					return writeErr(cmd, err)
				}
			}

			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"dir":        app.Dir,
					"sqlitePath": s.StatePath(),
				},
			})
		},
	}
	cmd.Flags().BoolVar(&use, "use", false, "Record this vault as the default in ~/.nekotick/config.json")
	return cmd
}
