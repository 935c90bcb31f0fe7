package watcher

import (
	"time"

	"github.com/vanderheijden86/mahar/pkg/timer"
)

// DefaultDebounceDuration is how long the watcher waits for a burst of
// writes to settle before reporting a change.
const DefaultDebounceDuration = 200 * time.Millisecond

// Debouncer coalesces rapid triggers into one call after a quiet period.
type Debouncer struct {
	duration time.Duration
	slot     *timer.Slot
}

// NewDebouncer returns a debouncer on the real clock. A non-positive
// duration uses DefaultDebounceDuration.
func NewDebouncer(d time.Duration) *Debouncer {
	return NewDebouncerWithClock(d, timer.Real())
}

// NewDebouncerWithClock returns a debouncer scheduling on clock.
func NewDebouncerWithClock(d time.Duration, clock timer.Clock) *Debouncer {
	if d <= 0 {
		d = DefaultDebounceDuration
	}
	return &Debouncer{duration: d, slot: timer.NewSlot(clock)}
}

// Trigger restarts the quiet period; fn runs once it elapses without
// another trigger.
func (d *Debouncer) Trigger(fn func()) {
	d.slot.Schedule(d.duration, fn)
}

// Cancel drops a pending call.
func (d *Debouncer) Cancel() {
	d.slot.Cancel()
}

// Pending reports whether a call is waiting.
func (d *Debouncer) Pending() bool {
	return d.slot.Pending()
}

// Duration returns the quiet period.
func (d *Debouncer) Duration() time.Duration {
	return d.duration
}
