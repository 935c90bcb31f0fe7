package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavigateNotifiesOncePerNavigation(t *testing.T) {
	n := NewNavigator(DefaultTable(), nil)
	require.Equal(t, Home, n.Current().View)

	var seen []View
	sub := n.Subscribe(func(m Match) { seen = append(seen, m.View) })
	defer sub.Unsubscribe()

	assert.True(t, n.Navigate("/articles/3"))
	assert.False(t, n.Navigate("/articles/3"))
	assert.True(t, n.Navigate("/faq"))

	assert.Equal(t, []View{ArticleDetail, FAQ}, seen)
	assert.Equal(t, "/faq", n.Current().Path)
}

func TestListenerSeesSettledLocation(t *testing.T) {
	n := NewNavigator(DefaultTable(), nil)
	n.Subscribe(func(m Match) {
		assert.Equal(t, m, n.Current())
	})
	n.Navigate("/team")
}

func TestBackWalksHistory(t *testing.T) {
	n := NewNavigator(DefaultTable(), NewMemoryHistory("/faq"))
	assert.False(t, n.CanGoBack())
	assert.False(t, n.Back())

	n.Navigate("/team")
	n.Navigate("/missing")
	assert.Equal(t, NotFound, n.Current().View)

	var seen []string
	n.Subscribe(func(m Match) { seen = append(seen, m.Path) })

	require.True(t, n.Back())
	require.True(t, n.Back())
	assert.False(t, n.Back())
	assert.Equal(t, []string{"/team", "/faq"}, seen)
}

func TestUnsubscribe(t *testing.T) {
	n := NewNavigator(DefaultTable(), nil)
	calls := 0
	sub := n.Subscribe(func(Match) { calls++ })
	other := n.Subscribe(func(Match) {})
	require.Equal(t, 2, n.Listeners())

	n.Navigate("/team")
	sub.Unsubscribe()
	sub.Unsubscribe()
	n.Navigate("/faq")

	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, n.Listeners())
	other.Unsubscribe()
	assert.Equal(t, 0, n.Listeners())
}

func TestUnsubscribeDuringNotify(t *testing.T) {
	n := NewNavigator(DefaultTable(), nil)
	var sub Subscription
	calls := 0
	sub = n.Subscribe(func(Match) {
		calls++
		sub.Unsubscribe()
	})
	second := 0
	n.Subscribe(func(Match) { second++ })

	n.Navigate("/team")
	n.Navigate("/faq")
	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, second)
}

func TestMemoryHistory(t *testing.T) {
	h := NewMemoryHistory("/")
	h.Push("/a")
	assert.Equal(t, 2, h.Len())
	p, ok := h.Pop()
	assert.True(t, ok)
	assert.Equal(t, "/", p)
	_, ok = h.Pop()
	assert.False(t, ok)
	assert.Equal(t, "/", h.Current())
}
