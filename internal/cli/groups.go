package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/vladelaina/NekoTick-sub003/internal/model"
	"github.com/vladelaina/NekoTick-sub003/internal/mutate"
)

func newGroupsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Group commands",
	}
	cmd.AddCommand(newGroupsCreateCmd(app))
	cmd.AddCommand(newGroupsListCmd(app))
	cmd.AddCommand(newGroupsRenameCmd(app))
	cmd.AddCommand(newGroupsArchiveCmd(app))
	cmd.AddCommand(newGroupsUseCmd(app))
	return cmd
}

func newGroupsCreateCmd(app *App) *cobra.Command {
	var name string
	var icon string
	var use bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a group",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.CreateGroup(db, name, icon, time.Now().UTC())
			if err != nil {
				return writeErr(cmd, err)
			}
			if res.Group == nil {
				return writeErr(cmd, errors.New("group name is empty"))
			}
			if use {
				if _, err := mutate.SetCurrentGroup(db, res.Group.ID); err != nil {
					return writeErr(cmd, err)
				}
			}
			if res.Changed {
				if err := s.Save(db); err != nil {
					return writeErr(cmd, err)
				}
				_ = s.AppendEvent("group.create", res.Group.ID, res.EventPayload)
			}
			return writeOut(cmd, app, map[string]any{"data": res.Group})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Group name")
	cmd.Flags().StringVar(&icon, "icon", "", "Icon shown in front of the name (optional)")
	cmd.Flags().BoolVar(&use, "use", false, "Select the new group as current")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newGroupsListCmd(app *App) *cobra.Command {
	var includeArchived bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			groups := make([]model.Group, 0, len(db.Groups))
			for _, g := range db.Groups {
				if g.Archived && !includeArchived {
					continue
				}
				groups = append(groups, g)
			}

			if app.Output == outputTable {
				counts := map[string]int{}
				for _, t := range db.Tasks {
					counts[t.GroupID]++
				}
				tablePrinter(cmd, false).Groups(groups, counts, db.CurrentGroupID)
				return nil
			}
			return writeOut(cmd, app, map[string]any{"data": groups})
		},
	}
	cmd.Flags().BoolVar(&includeArchived, "all", false, "Include archived groups")
	return cmd
}

func newGroupsRenameCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "rename <group-id>",
		Short: "Rename a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.RenameGroup(db, args[0], name, time.Now().UTC())
			if err != nil {
				return writeErr(cmd, err)
			}
			if res.Group == nil {
				return writeErr(cmd, errors.New("group name is empty"))
			}
			if res.Changed {
				if err := s.Save(db); err != nil {
					return writeErr(cmd, err)
				}
				_ = s.AppendEvent("group.rename", args[0], res.EventPayload)
			}
			return writeOut(cmd, app, map[string]any{"data": res.Group})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New group name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newGroupsArchiveCmd(app *App) *cobra.Command {
	var restore bool

	cmd := &cobra.Command{
		Use:   "archive <group-id>",
		Short: "Archive a group (restore with --restore)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.SetGroupArchived(db, args[0], !restore, time.Now().UTC())
			if err != nil {
				return writeErr(cmd, err)
			}
			if res.Changed {
				if err := s.Save(db); err != nil {
					return writeErr(cmd, err)
				}
				_ = s.AppendEvent("group.archive", args[0], res.EventPayload)
			}
			return writeOut(cmd, app, map[string]any{"data": res.Group})
		},
	}
	cmd.Flags().BoolVar(&restore, "restore", false, "Unarchive instead of archiving")
	return cmd
}

func newGroupsUseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use <group-id>",
		Short: "Select the current group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.SetCurrentGroup(db, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if res.Changed {
				if err := s.Save(db); err != nil {
					return writeErr(cmd, err)
				}
				_ = s.AppendEvent("group.select", args[0], res.EventPayload)
			}
			return writeOut(cmd, app, map[string]any{"data": res.Group})
		},
	}
	return cmd
}
