package timer

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestManualFiresInDeadlineOrder(t *testing.T) {
	clock := NewManual()
	var order []string

	clock.AfterFunc(30*time.Millisecond, func() { order = append(order, "c") })
	clock.AfterFunc(10*time.Millisecond, func() { order = append(order, "a") })
	clock.AfterFunc(20*time.Millisecond, func() { order = append(order, "b") })

	clock.Advance(15 * time.Millisecond)
	assert.Equal(t, []string{"a"}, order)

	clock.Advance(15 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, 0, clock.Pending())
	assert.Equal(t, 30*time.Millisecond, clock.Elapsed())
}

func TestManualRunsCallbacksScheduledDuringAdvance(t *testing.T) {
	clock := NewManual()
	var fired int

	var reschedule func()
	reschedule = func() {
		fired++
		clock.AfterFunc(time.Second, reschedule)
	}
	clock.AfterFunc(time.Second, reschedule)

	clock.Advance(3500 * time.Millisecond)
	assert.Equal(t, 3, fired)
	assert.Equal(t, 1, clock.Pending())
}

func TestManualStop(t *testing.T) {
	clock := NewManual()
	var called bool
	h := clock.AfterFunc(time.Second, func() { called = true })

	require.True(t, h.Stop())
	require.False(t, h.Stop(), "second stop reports nothing stopped")

	clock.Advance(2 * time.Second)
	assert.False(t, called)
}

func TestSlotReplacesPendingCallback(t *testing.T) {
	clock := NewManual()
	slot := NewSlot(clock)
	var first, second int

	slot.Schedule(3*time.Second, func() { first++ })
	clock.Advance(2 * time.Second)
	slot.Schedule(3*time.Second, func() { second++ })

	clock.Advance(1500 * time.Millisecond)
	assert.Equal(t, 0, first, "replaced callback must never run")
	assert.Equal(t, 0, second)
	assert.True(t, slot.Pending())

	clock.Advance(2 * time.Second)
	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
	assert.False(t, slot.Pending())
	assert.Equal(t, 0, clock.Pending())
}

func TestSlotCancel(t *testing.T) {
	clock := NewManual()
	slot := NewSlot(clock)
	var called bool

	slot.Schedule(time.Second, func() { called = true })
	slot.Cancel()

	clock.Advance(time.Minute)
	assert.False(t, called)
	assert.False(t, slot.Pending())
}

func TestSlotRescheduleFromCallback(t *testing.T) {
	clock := NewManual()
	slot := NewSlot(clock)
	var ticks int

	var tick func()
	tick = func() {
		ticks++
		slot.Schedule(time.Second, tick)
	}
	slot.Schedule(time.Second, tick)

	clock.Advance(5 * time.Second)
	assert.Equal(t, 5, ticks)
	assert.Equal(t, 1, clock.Pending(), "only one tick is ever pending")
}

func TestDispatchedRoutesThroughDispatcher(t *testing.T) {
	clock := NewManual()
	var queue []func()
	dispatched := Dispatched(clock, func(fn func()) { queue = append(queue, fn) })

	var called bool
	dispatched.AfterFunc(time.Second, func() { called = true })
	clock.Advance(time.Second)

	require.Len(t, queue, 1)
	assert.False(t, called, "callback waits for the event loop")
	queue[0]()
	assert.True(t, called)
}

func TestDispatchedStopSuppressesQueuedCallback(t *testing.T) {
	clock := NewManual()
	var queue []func()
	dispatched := Dispatched(clock, func(fn func()) { queue = append(queue, fn) })

	var called bool
	h := dispatched.AfterFunc(time.Second, func() { called = true })
	clock.Advance(time.Second)
	require.Len(t, queue, 1)

	assert.True(t, h.Stop())
	queue[0]()
	assert.False(t, called)
}

func TestRealClockFires(t *testing.T) {
	var wg sync.WaitGroup
	var fired atomic.Bool
	wg.Add(1)

	Real().AfterFunc(5*time.Millisecond, func() {
		fired.Store(true)
		wg.Done()
	})
	wg.Wait()
	assert.True(t, fired.Load())
}

func TestRealSlotCancelLeavesNoGoroutines(t *testing.T) {
	slot := NewSlot(Real())
	var called atomic.Bool
	for i := 0; i < 20; i++ {
		slot.Schedule(time.Hour, func() { called.Store(true) })
	}
	slot.Cancel()
	assert.False(t, slot.Pending())
	assert.False(t, called.Load())
}
