// Package timer provides cancellable one-shot timers behind a Clock
// capability so widget controllers can be driven by real time in the TUI and
// by a manual clock in tests.
//
// Every controller that needs a recurring or delayed transition owns one
// Slot per timer kind. Scheduling into a Slot always stops the previous
// handle first, so a slot never has more than one pending callback.
package timer

import (
	"sync"
	"sync/atomic"
	"time"
)

// Handle is a scheduled callback.
type Handle interface {
	// Stop prevents the callback from running. It reports whether the call
	// stopped the callback (false if it already ran or was stopped).
	Stop() bool
}

// Clock schedules callbacks.
type Clock interface {
	AfterFunc(d time.Duration, fn func()) Handle
}

// Real returns a Clock backed by time.AfterFunc.
func Real() Clock {
	return realClock{}
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, fn func()) Handle {
	return time.AfterFunc(d, fn)
}

// Dispatcher runs fn on the owner's event loop.
type Dispatcher func(fn func())

// Dispatched wraps clock so callbacks are handed to dispatch instead of
// running on the timer goroutine. A handle stopped after its timer fired but
// before the dispatched callback ran still suppresses the callback.
func Dispatched(clock Clock, dispatch Dispatcher) Clock {
	return dispatchedClock{clock: clock, dispatch: dispatch}
}

type dispatchedClock struct {
	clock    Clock
	dispatch Dispatcher
}

type dispatchedHandle struct {
	inner   Handle
	stopped atomic.Bool
	ran     atomic.Bool
}

func (h *dispatchedHandle) Stop() bool {
	if h.ran.Load() {
		return false
	}
	if h.stopped.Swap(true) {
		return false
	}
	h.inner.Stop()
	return true
}

func (c dispatchedClock) AfterFunc(d time.Duration, fn func()) Handle {
	h := &dispatchedHandle{}
	h.inner = c.clock.AfterFunc(d, func() {
		c.dispatch(func() {
			if h.stopped.Load() {
				return
			}
			h.ran.Store(true)
			fn()
		})
	})
	return h
}

// Slot holds at most one pending handle.
type Slot struct {
	clock Clock

	mu     sync.Mutex
	handle Handle
	gen    uint64
}

// NewSlot returns an empty slot scheduling on clock.
func NewSlot(clock Clock) *Slot {
	return &Slot{clock: clock}
}

// Schedule cancels any pending callback and schedules fn after d.
func (s *Slot) Schedule(d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handle != nil {
		s.handle.Stop()
	}
	s.gen++
	gen := s.gen
	s.handle = s.clock.AfterFunc(d, func() {
		s.mu.Lock()
		if s.gen != gen {
			s.mu.Unlock()
			return
		}
		s.handle = nil
		s.mu.Unlock()
		fn()
	})
}

// Cancel stops the pending callback, if any.
func (s *Slot) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handle != nil {
		s.handle.Stop()
		s.handle = nil
	}
	s.gen++
}

// Pending reports whether a callback is scheduled and has not run.
func (s *Slot) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handle != nil
}
