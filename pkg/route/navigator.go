package route

import "sync"

// History stores visited locations.
type History interface {
	Push(path string)
	// Pop drops the current location and returns the one before it.
	Pop() (string, bool)
	Current() string
	Len() int
}

// MemoryHistory is an in-memory History stack.
type MemoryHistory struct {
	stack []string
}

// NewMemoryHistory starts a history at start.
func NewMemoryHistory(start string) *MemoryHistory {
	return &MemoryHistory{stack: []string{start}}
}

func (h *MemoryHistory) Push(path string) { h.stack = append(h.stack, path) }

func (h *MemoryHistory) Pop() (string, bool) {
	if len(h.stack) < 2 {
		return h.Current(), false
	}
	h.stack = h.stack[:len(h.stack)-1]
	return h.Current(), true
}

func (h *MemoryHistory) Current() string {
	if len(h.stack) == 0 {
		return PathHome
	}
	return h.stack[len(h.stack)-1]
}

func (h *MemoryHistory) Len() int { return len(h.stack) }

// Subscription is a registered route listener. Unsubscribe is idempotent.
type Subscription interface {
	Unsubscribe()
}

type listener struct {
	id int
	fn func(Match)
}

// Navigator is the navigation surface: it owns the current location and
// notifies listeners after each navigation settles.
type Navigator struct {
	table     *Table
	history   History
	current   Match
	listeners []listener
	nextID    int
}

// NewNavigator resolves the history's current location. A nil history
// starts a MemoryHistory at "/".
func NewNavigator(table *Table, history History) *Navigator {
	if history == nil {
		history = NewMemoryHistory(PathHome)
	}
	n := &Navigator{table: table, history: history}
	n.current = table.Resolve(history.Current())
	return n
}

// Table returns the route table.
func (n *Navigator) Table() *Table {
	return n.table
}

// Current returns the current match.
func (n *Navigator) Current() Match {
	return n.current
}

// Navigate moves to path and notifies listeners once. Navigating to the
// current path does nothing and reports false.
func (n *Navigator) Navigate(path string) bool {
	if path == n.current.Path {
		return false
	}
	n.history.Push(path)
	n.settle(path)
	return true
}

// Back returns to the previous location, if any.
func (n *Navigator) Back() bool {
	path, ok := n.history.Pop()
	if !ok {
		return false
	}
	n.settle(path)
	return true
}

// CanGoBack reports whether Back would move.
func (n *Navigator) CanGoBack() bool {
	return n.history.Len() > 1
}

func (n *Navigator) settle(path string) {
	n.current = n.table.Resolve(path)
	// Snapshot so listeners may unsubscribe while being notified.
	ls := append([]listener(nil), n.listeners...)
	for _, l := range ls {
		l.fn(n.current)
	}
}

// Subscribe registers fn for route changes.
func (n *Navigator) Subscribe(fn func(Match)) Subscription {
	n.nextID++
	id := n.nextID
	n.listeners = append(n.listeners, listener{id: id, fn: fn})
	return &subscription{unsubscribe: func() { n.remove(id) }}
}

// Listeners returns the number of registered listeners.
func (n *Navigator) Listeners() int {
	return len(n.listeners)
}

func (n *Navigator) remove(id int) {
	for i, l := range n.listeners {
		if l.id == id {
			n.listeners = append(n.listeners[:i], n.listeners[i+1:]...)
			return
		}
	}
}

type subscription struct {
	once        sync.Once
	unsubscribe func()
}

func (s *subscription) Unsubscribe() {
	s.once.Do(s.unsubscribe)
}
