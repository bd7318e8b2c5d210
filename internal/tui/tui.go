// Package tui is the interactive NekoTick board: a task list grouped into
// Todo / Scheduled / Completed sections next to a week calendar grid.
// Tasks are dragged with the mouse between sections, within a sibling
// list, and onto the grid; every gesture commits through the same
// planners the CLI uses.
package tui

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vladelaina/NekoTick-sub003/internal/store"
)

// Run starts the TUI on an already-loaded vault snapshot and blocks until
// the user quits. Pending autosaves are flushed before returning.
func Run(s store.Store, db *store.DB) error {
	applyColorProfilePreference()
	applyThemePreference()

	saver := store.NewSaver(s, 2*time.Second, func(err error) {
		fmt.Fprintf(os.Stderr, "autosave: %v\n", err)
	})

	notifier := &store.Notifier{}
	changes := make(chan store.Change, 16)
	unsub := notifier.Subscribe(func(c store.Change) {
		select {
		case changes <- c:
		default:
			// A queued change already forces a refresh.
		}
	})
	defer unsub()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if ch, err := s.Watch(ctx); err == nil {
		go func() {
			for range ch {
				notifier.Notify(store.Change{Kind: "reload"})
			}
		}()
	} else {
		fmt.Fprintf(os.Stderr, "watch: %v\n", err)
	}

	m := newAppModel(s, db, saver, notifier, changes)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()

	if ferr := saver.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	return err
}
