package accordion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestStartsCollapsed(t *testing.T) {
	a := New(6, None)
	_, ok := a.Open()
	assert.False(t, ok)
}

func TestToggleIsSingleOpen(t *testing.T) {
	a := New(6, None)
	a.Toggle(2)
	a.Toggle(5)

	assert.Equal(t, 5, a.OpenIndex())
	assert.False(t, a.IsOpen(2))
	assert.True(t, a.IsOpen(5))
}

func TestToggleSelfCloses(t *testing.T) {
	a := New(6, None)
	a.Toggle(3)
	a.Toggle(3)
	assert.Equal(t, None, a.OpenIndex())
}

func TestSetOpenBypassesToggle(t *testing.T) {
	a := New(4, 1)
	assert.Equal(t, 1, a.OpenIndex())

	a.SetOpen(1)
	assert.Equal(t, 1, a.OpenIndex(), "SetOpen never closes the item it targets")

	a.SetOpen(None)
	assert.Equal(t, None, a.OpenIndex())
}

func TestOutOfRange(t *testing.T) {
	a := New(3, 0)
	a.Toggle(9)
	assert.Equal(t, 0, a.OpenIndex(), "toggle outside the list is ignored")

	a.SetOpen(7)
	assert.Equal(t, None, a.OpenIndex())

	empty := New(0, 0)
	empty.Toggle(0)
	assert.Equal(t, None, empty.OpenIndex())
	assert.False(t, empty.IsOpen(None))
}

func TestAtMostOneOpen(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 10).Draw(t, "n")
		a := New(n, None)
		for _, i := range rapid.SliceOf(rapid.IntRange(-2, 12)).Draw(t, "toggles") {
			a.Toggle(i)
			open := 0
			for j := 0; j < n; j++ {
				if a.IsOpen(j) {
					open++
				}
			}
			if open > 1 {
				t.Fatalf("%d items open", open)
			}
		}
	})
}
