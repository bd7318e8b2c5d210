package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch emits a signal whenever the vault's database changes on disk,
// coalescing write bursts so a consumer redraws once per burst instead of
// once per write. External writers (a second instance, a sync client)
// surface through here. The channel closes when ctx ends.
func (s Store) Watch(ctx context.Context) (<-chan struct{}, error) {
	if err := s.Ensure(); err != nil {
		return nil, fmt.Errorf("watch: ensure vault: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Clean(s.Dir)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", s.Dir, err)
	}

	ch := make(chan struct{}, 1)

	go func() {
		defer close(ch)
		defer func() {
			if err := watcher.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "watch: close: %v\n", err)
			}
		}()

		send := func() {
			select {
			case ch <- struct{}{}:
			default:
				// Consumer not ready; a later refresh picks the change
				// up anyway.
			}
		}

		throttle := newSignalThrottle(250 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				throttle.Enqueue(send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				// WAL puts writes in the -wal sidecar, so match on prefix.
				base := filepath.Base(evt.Name)
				if !strings.HasPrefix(base, sqliteFileName) {
					continue
				}
				if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				throttle.Enqueue(send)
			}
		}
	}()

	return ch, nil
}

// signalThrottle coalesces rapid notifications into one per delay window.
type signalThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending bool
	delay   time.Duration
}

func newSignalThrottle(delay time.Duration) *signalThrottle {
	return &signalThrottle{delay: delay}
}

func (t *signalThrottle) Enqueue(send func()) {
	t.mu.Lock()
	t.pending = true
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *signalThrottle) flush(send func()) {
	t.mu.Lock()
	fire := t.pending
	t.pending = false
	t.timer = nil
	t.mu.Unlock()
	if fire {
		send()
	}
}

func (t *signalThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
