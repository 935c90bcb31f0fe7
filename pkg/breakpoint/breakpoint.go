// Package breakpoint exposes the viewport tier (narrow or wide) as a
// subscribable signal, the terminal equivalent of a max-width media query.
package breakpoint

import "sync"

// DefaultNarrowWidth is the first width, in columns, considered wide.
// Anything below it is narrow.
const DefaultNarrowWidth = 100

// Tier is a viewport size class.
type Tier int

const (
	Wide Tier = iota
	Narrow
)

func (t Tier) String() string {
	if t == Narrow {
		return "narrow"
	}
	return "wide"
}

// Subscription is returned by Subscribe; Unsubscribe must be called on
// teardown.
type Subscription interface {
	Unsubscribe()
}

// Signal reports whether the viewport is below the threshold and notifies
// subscribers when that changes.
type Signal interface {
	Narrow() bool
	Subscribe(fn func(narrow bool)) Subscription
}

// Watcher is a Signal fed with viewport widths.
type Watcher struct {
	mu        sync.Mutex
	threshold int
	width     int
	narrow    bool
	nextID    int
	listeners map[int]func(bool)
}

// NewWatcher returns a watcher that treats widths below threshold as
// narrow. A non-positive threshold uses DefaultNarrowWidth. Until the first
// Observe the viewport is considered wide.
func NewWatcher(threshold int) *Watcher {
	if threshold <= 0 {
		threshold = DefaultNarrowWidth
	}
	return &Watcher{
		threshold: threshold,
		listeners: make(map[int]func(bool)),
	}
}

// Observe records a new viewport width and notifies subscribers if the tier
// changed.
func (w *Watcher) Observe(width int) {
	w.mu.Lock()
	w.width = width
	narrow := width < w.threshold
	if narrow == w.narrow {
		w.mu.Unlock()
		return
	}
	w.narrow = narrow
	fns := make([]func(bool), 0, len(w.listeners))
	for id := 0; id < w.nextID; id++ {
		if fn, ok := w.listeners[id]; ok {
			fns = append(fns, fn)
		}
	}
	w.mu.Unlock()

	for _, fn := range fns {
		fn(narrow)
	}
}

// Narrow reports the current tier.
func (w *Watcher) Narrow() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.narrow
}

// Tier returns the current tier.
func (w *Watcher) Tier() Tier {
	if w.Narrow() {
		return Narrow
	}
	return Wide
}

// Width returns the last observed width.
func (w *Watcher) Width() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width
}

// Subscribe registers fn for tier changes. Listeners are called in
// subscription order.
func (w *Watcher) Subscribe(fn func(narrow bool)) Subscription {
	w.mu.Lock()
	defer w.mu.Unlock()
	id := w.nextID
	w.nextID++
	w.listeners[id] = fn
	return &subscription{watcher: w, id: id}
}

// Listeners returns the number of active subscriptions.
func (w *Watcher) Listeners() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.listeners)
}

type subscription struct {
	watcher *Watcher
	id      int
	once    sync.Once
}

func (s *subscription) Unsubscribe() {
	s.once.Do(func() {
		s.watcher.mu.Lock()
		delete(s.watcher.listeners, s.id)
		s.watcher.mu.Unlock()
	})
}
