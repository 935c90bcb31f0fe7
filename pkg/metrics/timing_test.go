package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimingMetricRecord(t *testing.T) {
	SetEnabled(true)
	m := newTimingMetric("test")
	m.Record(2 * time.Millisecond)
	m.Record(4 * time.Millisecond)

	s := m.Stats()
	assert.Equal(t, int64(2), s.Count)
	assert.InDelta(t, 3.0, s.AvgMs, 0.001)
	assert.InDelta(t, 4.0, s.MaxMs, 0.001)
	assert.InDelta(t, 2.0, s.MinMs, 0.001)

	m.Reset()
	assert.Equal(t, int64(0), m.Count())
	assert.Equal(t, int64(0), m.AvgNs())
}

func TestRecordConcurrent(t *testing.T) {
	SetEnabled(true)
	m := newTimingMetric("concurrent")
	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(d time.Duration) {
			defer wg.Done()
			m.Record(d)
		}(time.Duration(i) * time.Microsecond)
	}
	wg.Wait()

	assert.Equal(t, int64(50), m.Count())
	assert.Equal(t, int64(50_000), m.MaxNs())
	assert.Equal(t, int64(1_000), m.MinNs())
}

func TestDisabledSkipsRecording(t *testing.T) {
	SetEnabled(false)
	defer SetEnabled(true)

	m := newTimingMetric("off")
	Timer(m)()
	m.Record(time.Second)
	ContentReloads.Inc()
	assert.Equal(t, int64(0), m.Count())
}

func TestAllStatsSkipsEmpty(t *testing.T) {
	SetEnabled(true)
	ResetAll()
	defer ResetAll()

	ContentLoad.Record(time.Millisecond)
	FormPosts.Inc()

	stats := AllTimingStats()
	if assert.Len(t, stats, 1) {
		assert.Equal(t, "content_load", stats[0].Name)
	}
	assert.Equal(t, []CounterStats{{Name: "form_posts", Value: 1}}, AllCounterStats())
}

func TestTimerWithCallback(t *testing.T) {
	SetEnabled(true)
	m := newTimingMetric("cb")
	var got time.Duration
	TimerWithCallback(m, func(d time.Duration) { got = d })()
	assert.Equal(t, int64(1), m.Count())
	assert.GreaterOrEqual(t, got, time.Duration(0))
}
