package store

import "sync"

// Change describes one committed mutation for listeners.
type Change struct {
	Kind   string // "task", "group", "reload"
	TaskID string
}

// Notifier holds the store's change listeners. Dispatch is synchronous on
// the notifying goroutine: one change is fully observed before the next
// mutation runs, matching the single update queue the UI drives.
type Notifier struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]func(Change)
}

// Subscribe registers a listener and returns its cancel func.
func (n *Notifier) Subscribe(fn func(Change)) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.listeners == nil {
		n.listeners = map[int]func(Change){}
	}
	id := n.nextID
	n.nextID++
	n.listeners[id] = fn
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.listeners, id)
	}
}

// Notify calls every listener with the change.
func (n *Notifier) Notify(c Change) {
	n.mu.Lock()
	fns := make([]func(Change), 0, len(n.listeners))
	for _, fn := range n.listeners {
		fns = append(fns, fn)
	}
	n.mu.Unlock()
	for _, fn := range fns {
		fn(c)
	}
}
