package store

import (
	"sync"
	"time"
)

// Saver coalesces bursts of mutations into one SQLite write after a quiet
// period. The TUI notifies it on every committed change so typing-speed
// edits don't hit disk one by one.
type Saver struct {
	store    Store
	debounce time.Duration
	onError  func(error)

	mu      sync.Mutex
	timer   *time.Timer
	pending bool
	running bool
	db      *DB
}

func NewSaver(s Store, debounce time.Duration, onError func(error)) *Saver {
	if debounce <= 0 {
		debounce = 2 * time.Second
	}
	return &Saver{store: s, debounce: debounce, onError: onError}
}

// Notify copies the snapshot and (re)arms the write timer. The copy is
// taken on the caller's goroutine: the caller keeps mutating db after
// Notify returns, and the timer goroutine must never read live state.
func (sv *Saver) Notify(db *DB) {
	if sv == nil || db == nil {
		return
	}
	snap := db.Clone()
	sv.mu.Lock()
	sv.pending = true
	sv.db = snap
	if sv.timer == nil {
		sv.timer = time.AfterFunc(sv.debounce, sv.onTimer)
		sv.mu.Unlock()
		return
	}
	sv.timer.Reset(sv.debounce)
	sv.mu.Unlock()
}

func (sv *Saver) onTimer() {
	sv.mu.Lock()
	if sv.running {
		// A write is in flight; run again afterwards to pick up the
		// pending snapshot.
		if sv.timer != nil {
			sv.timer.Reset(sv.debounce)
		}
		sv.mu.Unlock()
		return
	}
	if !sv.pending {
		sv.mu.Unlock()
		return
	}
	sv.pending = false
	sv.running = true
	db := sv.db
	sv.mu.Unlock()

	err := sv.store.Save(db)

	sv.mu.Lock()
	sv.running = false
	if sv.pending && sv.timer != nil {
		sv.timer.Reset(sv.debounce)
	}
	sv.mu.Unlock()

	if err != nil && sv.onError != nil {
		sv.onError(err)
	}
}

// Dirty reports whether a write is queued or in flight. Consumers that
// reload from disk on external changes must skip the reload while the
// saver is dirty or they would read back a stale snapshot.
func (sv *Saver) Dirty() bool {
	if sv == nil {
		return false
	}
	sv.mu.Lock()
	defer sv.mu.Unlock()
	return sv.pending || sv.running
}

// Flush writes any pending snapshot immediately. Call on shutdown.
func (sv *Saver) Flush() error {
	if sv == nil {
		return nil
	}
	sv.mu.Lock()
	if sv.timer != nil {
		sv.timer.Stop()
	}
	if !sv.pending {
		sv.mu.Unlock()
		return nil
	}
	sv.pending = false
	db := sv.db
	sv.mu.Unlock()
	return sv.store.Save(db)
}
