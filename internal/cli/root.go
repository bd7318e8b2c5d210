package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vladelaina/NekoTick-sub003/internal/format"
	"github.com/vladelaina/NekoTick-sub003/internal/store"
	"github.com/vladelaina/NekoTick-sub003/internal/tui"
)

const (
	outputJSON  = "json"
	outputTable = "table"
)

type App struct {
	Dir        string
	Vault      string
	Output     string
	PrettyJSON bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "nekotick",
		Short:        "NekoTick (local-first) task board CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive board
  nekotick

  # Scriptable commands
  nekotick tasks add --content "Water the cat"
  nekotick tasks list --output table

  # This week's schedule
  nekotick week --output table
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("NEKOTICK_DIR", ""), "Path to vault dir (overrides vault resolution; use for fixtures/tests)")
	cmd.PersistentFlags().StringVar(&app.Vault, "vault", envOr("NEKOTICK_VAULT", ""), "Vault name from config (or a path)")
	cmd.PersistentFlags().StringVar(&app.Output, "output", envOr("NEKOTICK_OUTPUT", outputJSON), "Output format (json|table)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newStatusCmd(app))
	cmd.AddCommand(newGroupsCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newWeekCmd(app))
	cmd.AddCommand(newEventsCmd(app))

	return cmd
}

func runTUI(app *App) error {
	db, s, err := loadDB(app)
	if err != nil {
		return err
	}
	return tui.Run(s, db)
}

// loadDB resolves the vault directory and loads its snapshot.
//
// Resolution order:
// 1) --dir
// 2) --vault (registered name in config, else a path)
// 3) discovery: .nekotick above the working dir, the configured current
//    vault, .nekotick under the working dir
func loadDB(app *App) (*store.DB, store.Store, error) {
	dir := app.Dir
	if dir == "" && strings.TrimSpace(app.Vault) != "" {
		cfg, err := store.LoadConfig()
		if err != nil {
			return nil, store.Store{}, err
		}
		d, err := store.ResolveVault(cfg, app.Vault)
		if err != nil {
			return nil, store.Store{}, err
		}
		dir = d
	}
	if dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return nil, store.Store{}, err
		}
		dir = d
	}
	app.Dir = dir

	s := store.Store{Dir: dir}
	db, err := s.Load()
	if err != nil {
		return nil, s, err
	}
	return db, s, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	f := app.Output
	// Payloads without a table form fall back to the JSON envelope.
	if f == outputTable {
		f = outputJSON
	}
	return format.Write(cmd.OutOrStdout(), v, f, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}

func tablePrinter(cmd *cobra.Command, showID bool) format.TablePrinter {
	return format.TablePrinter{Out: cmd.OutOrStdout(), ShowID: showID}
}
