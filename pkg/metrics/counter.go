package metrics

import "sync/atomic"

// Counter counts events such as content reloads.
type Counter struct {
	name string
	n    atomic.Int64
}

func newCounter(name string) *Counter {
	return &Counter{name: name}
}

// Inc adds one.
func (c *Counter) Inc() {
	if !enabled {
		return
	}
	c.n.Add(1)
}

// Name returns the counter name.
func (c *Counter) Name() string { return c.name }

// Value returns the current count.
func (c *Counter) Value() int64 { return c.n.Load() }

// Reset sets the count to zero.
func (c *Counter) Reset() { c.n.Store(0) }

// Counters.
var (
	ContentReloads = newCounter("content_reloads")
	FormPosts      = newCounter("form_posts")
	FormFailures   = newCounter("form_failures")
)

// AllCounters returns every counter.
func AllCounters() []*Counter {
	return []*Counter{ContentReloads, FormPosts, FormFailures}
}

// CounterStats is a counter snapshot.
type CounterStats struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// AllCounterStats returns the counters that are non-zero.
func AllCounterStats() []CounterStats {
	var out []CounterStats
	for _, c := range AllCounters() {
		if v := c.Value(); v > 0 {
			out = append(out, CounterStats{Name: c.name, Value: v})
		}
	}
	return out
}
