package timer

import (
	"sort"
	"sync"
	"time"
)

// Manual is a deterministic Clock. Time only moves when Advance is called,
// and due callbacks run synchronously on the caller's goroutine.
type Manual struct {
	mu      sync.Mutex
	now     time.Duration
	seq     uint64
	pending []*manualTimer
}

type manualTimer struct {
	clock    *Manual
	deadline time.Duration
	seq      uint64
	fn       func()
	done     bool
}

// NewManual returns a manual clock at offset zero.
func NewManual() *Manual {
	return &Manual{}
}

// AfterFunc schedules fn to run once Advance moves past d from now.
func (m *Manual) AfterFunc(d time.Duration, fn func()) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTimer{clock: m, deadline: m.now + d, seq: m.seq, fn: fn}
	m.pending = append(m.pending, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	if t.done {
		return false
	}
	t.done = true
	t.clock.remove(t)
	return true
}

func (m *Manual) remove(t *manualTimer) {
	for i, p := range m.pending {
		if p == t {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			return
		}
	}
}

// Advance moves the clock forward by d, running every callback whose
// deadline is reached, in deadline order. Callbacks scheduled while
// advancing run too if they fall inside the window.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.nextDue(target)
		if next == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.now = next.deadline
		next.done = true
		m.remove(next)
		m.mu.Unlock()

		next.fn()
	}
}

func (m *Manual) nextDue(target time.Duration) *manualTimer {
	if len(m.pending) == 0 {
		return nil
	}
	sort.SliceStable(m.pending, func(i, j int) bool {
		if m.pending[i].deadline == m.pending[j].deadline {
			return m.pending[i].seq < m.pending[j].seq
		}
		return m.pending[i].deadline < m.pending[j].deadline
	})
	if m.pending[0].deadline > target {
		return nil
	}
	return m.pending[0]
}

// Pending returns the number of scheduled callbacks that have not run.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// Elapsed returns how far the clock has been advanced.
func (m *Manual) Elapsed() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}
