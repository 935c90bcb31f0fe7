package carousel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/vanderheijden86/mahar/pkg/timer"
)

func images(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = string(rune('a' + i))
	}
	return out
}

func TestTickAdvancesAndWraps(t *testing.T) {
	clock := timer.NewManual()
	g := New(images(3), clock)
	g.Start()
	defer g.Stop()

	clock.Advance(DefaultInterval)
	assert.Equal(t, 1, g.Index())
	clock.Advance(DefaultInterval)
	assert.Equal(t, 2, g.Index())
	clock.Advance(DefaultInterval)
	assert.Equal(t, 0, g.Index(), "tick wraps to the first image")
	assert.Equal(t, 1, clock.Pending(), "exactly one tick timer is pending")
}

func TestNextWrapsAfterNSteps(t *testing.T) {
	g := New(images(5), timer.NewManual())
	for i := 0; i < 5; i++ {
		g.Next()
	}
	assert.Equal(t, 0, g.Index())
}

func TestPreviousFromFirstGoesToLast(t *testing.T) {
	g := New(images(4), timer.NewManual())
	g.Previous()
	assert.Equal(t, 3, g.Index())
}

func TestGoToPausesUntilCooldown(t *testing.T) {
	clock := timer.NewManual()
	g := New(images(6), clock)
	g.Start()
	defer g.Stop()

	g.GoTo(4)
	require.True(t, g.Paused())
	assert.Equal(t, 4, g.Index())

	clock.Advance(DefaultCooldown - time.Millisecond)
	assert.True(t, g.Paused())

	clock.Advance(time.Millisecond)
	assert.False(t, g.Paused())
	assert.Equal(t, 4, g.Index(), "resume restarts the interval instead of advancing")

	clock.Advance(DefaultInterval)
	assert.Equal(t, 5, g.Index())
}

func TestPausedGalleryDoesNotTick(t *testing.T) {
	clock := timer.NewManual()
	g := New(images(3), clock, WithCooldown(10*time.Second))
	g.Start()
	defer g.Stop()

	g.Next()
	clock.Advance(9 * time.Second)
	assert.Equal(t, 1, g.Index(), "no auto-advance while paused")
}

func TestRapidManualNavigationKeepsOneCooldown(t *testing.T) {
	clock := timer.NewManual()
	g := New(images(4), clock)
	g.Start()
	defer g.Stop()

	g.Next()
	clock.Advance(2 * time.Second)
	g.Next()
	clock.Advance(2 * time.Second)
	assert.True(t, g.Paused(), "second navigation re-armed the cooldown")
	assert.Equal(t, 1, clock.Pending(), "only the latest cooldown is pending")

	clock.Advance(time.Second)
	assert.False(t, g.Paused())
}

func TestGoToWrapsOutOfRange(t *testing.T) {
	g := New(images(3), timer.NewManual())
	g.GoTo(7)
	assert.Equal(t, 1, g.Index())
	g.GoTo(-1)
	assert.Equal(t, 2, g.Index())
}

func TestEmptyGalleryIsInert(t *testing.T) {
	clock := timer.NewManual()
	g := New(nil, clock)
	g.Start()
	g.Next()
	g.Previous()
	g.GoTo(3)

	assert.True(t, g.Inert())
	assert.Equal(t, 0, clock.Pending())
	assert.False(t, g.Paused())
	_, ok := g.Current()
	assert.False(t, ok)
}

func TestStopCancelsEverything(t *testing.T) {
	clock := timer.NewManual()
	g := New(images(3), clock)
	g.Start()
	g.Next()
	g.Stop()

	assert.Equal(t, 0, clock.Pending())
	clock.Advance(time.Minute)
	assert.Equal(t, 1, g.Index())
}

func TestRestartAfterStopWhilePaused(t *testing.T) {
	clock := timer.NewManual()
	g := New(images(3), clock)
	g.Start()
	g.Next()
	g.Stop()

	g.Start()
	clock.Advance(DefaultCooldown)
	assert.False(t, g.Paused())
	clock.Advance(DefaultInterval)
	assert.Equal(t, 2, g.Index())
	g.Stop()
}

func TestOnChangeReportsTransitions(t *testing.T) {
	clock := timer.NewManual()
	var states []State
	g := New(images(2), clock, WithInterval(time.Second), WithOnChange(func(s State) {
		states = append(states, s)
	}))
	g.Start()
	defer g.Stop()

	clock.Advance(time.Second)
	g.GoTo(0)

	require.Len(t, states, 2)
	assert.Equal(t, State{Index: 1, Total: 2}, states[0])
	assert.Equal(t, State{Index: 0, Total: 2, Paused: true}, states[1])
}

func TestNavigationPropertyIndexInRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 12).Draw(t, "n")
		clock := timer.NewManual()
		g := New(images(n), clock)
		g.Start()
		defer g.Stop()

		ops := rapid.SliceOf(rapid.IntRange(0, 3)).Draw(t, "ops")
		for _, op := range ops {
			switch op {
			case 0:
				g.Next()
			case 1:
				g.Previous()
			case 2:
				g.GoTo(rapid.IntRange(-50, 50).Draw(t, "target"))
			case 3:
				clock.Advance(time.Duration(rapid.IntRange(0, 8000).Draw(t, "ms")) * time.Millisecond)
			}
			if g.Index() < 0 || g.Index() >= n {
				t.Fatalf("index %d out of range [0,%d)", g.Index(), n)
			}
			if clock.Pending() > 1 {
				t.Fatalf("expected at most one pending timer, got %d", clock.Pending())
			}
		}
	})
}

func TestNextThenPreviousIsIdentity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 20).Draw(t, "n")
		start := rapid.IntRange(0, n-1).Draw(t, "start")
		g := New(images(n), timer.NewManual())
		g.GoTo(start)
		g.Next()
		g.Previous()
		if g.Index() != start {
			t.Fatalf("expected %d, got %d", start, g.Index())
		}
	})
}
