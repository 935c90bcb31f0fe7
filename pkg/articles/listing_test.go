package articles

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/vanderheijden86/mahar/pkg/model"
	"github.com/vanderheijden86/mahar/pkg/testutil"
)

func makeArticles(n int) []model.Article {
	out := make([]model.Article, n)
	for i := range out {
		out[i] = model.Article{
			ID:       fmt.Sprintf("%d", i+1),
			Title:    fmt.Sprintf("Article %d", i+1),
			Category: "training",
			Tags:     []string{"training"},
		}
	}
	return out
}

func ids(items []model.Article) []string {
	out := make([]string, len(items))
	for i, a := range items {
		out[i] = a.ID
	}
	return out
}

func TestNineArticlesAllFilter(t *testing.T) {
	items := makeArticles(9)
	l := NewListing(items)

	featured, ok := l.Featured()
	require.True(t, ok)
	assert.Equal(t, "1", featured.ID)
	assert.Equal(t, []string{"2", "3"}, ids(l.Sidebar()))
	assert.Equal(t, []string{"4", "5", "6", "7", "8", "9"}, ids(l.Grid()))
	assert.Equal(t, 1, l.TotalPages())
	assert.Equal(t, 1, l.PageIndex())
	assert.Len(t, l.Page(), 6)
}

func TestTagMatchingTwoArticles(t *testing.T) {
	items := makeArticles(9)
	items[2].Tags = append(items[2].Tags, "sleep")
	items[6].Category = "sleep"

	l := NewListing(items)
	l.SetFilter("sleep")

	require.Len(t, l.Filtered(), 2)
	featured, ok := l.Featured()
	require.True(t, ok)
	assert.Equal(t, "3", featured.ID)
	assert.Equal(t, []string{"7"}, ids(l.Sidebar()))
	assert.Empty(t, l.Grid())
	assert.Equal(t, 1, l.TotalPages())
}

func TestNoMatchesDegradesToEmpty(t *testing.T) {
	l := NewListing(makeArticles(5))
	l.SetFilter("unknown")

	_, ok := l.Featured()
	assert.False(t, ok)
	assert.Empty(t, l.Sidebar())
	assert.Empty(t, l.Grid())
	assert.Empty(t, l.Page())
	assert.Equal(t, 1, l.TotalPages())

	from, to, total := l.Range()
	assert.Equal(t, [3]int{0, 0, 0}, [3]int{from, to, total})
}

func TestNilCollection(t *testing.T) {
	l := NewListing(nil)
	assert.Equal(t, All, l.Filter())
	assert.Empty(t, l.Filtered())
	assert.Equal(t, 1, l.TotalPages())
	l.NextPage()
	assert.Equal(t, 1, l.PageIndex())
}

func TestSetFilterAlwaysResetsPage(t *testing.T) {
	l := NewListing(makeArticles(3 + 2*PageSize + 1))
	require.Equal(t, 3, l.TotalPages())

	l.NextPage()
	l.NextPage()
	require.Equal(t, 3, l.PageIndex())

	l.SetFilter(All)
	assert.Equal(t, 1, l.PageIndex())
}

func TestPaginationClamps(t *testing.T) {
	l := NewListing(makeArticles(3 + PageSize + 4))
	assert.Equal(t, 2, l.TotalPages())

	l.PreviousPage()
	assert.Equal(t, 1, l.PageIndex())
	assert.False(t, l.CanPrevious())

	l.NextPage()
	l.NextPage()
	assert.Equal(t, 2, l.PageIndex())
	assert.False(t, l.CanNext())
	assert.Len(t, l.Page(), 4)

	from, to, total := l.Range()
	assert.Equal(t, 10, from)
	assert.Equal(t, 13, to)
	assert.Equal(t, 13, total)
}

func TestTagsFromFirstSeenOrder(t *testing.T) {
	items := []model.Article{
		{Category: "b", Tags: []string{"b", "c"}},
		{Category: "a", Tags: []string{"c", ""}},
	}
	assert.Equal(t, []string{All, "b", "c", "a"}, TagsFrom(items))
}

func TestChipList(t *testing.T) {
	assert.Equal(t, []string{All, "x", "y"}, ChipList([]string{All, "x", "y"}, nil))
	assert.Equal(t, []string{All, "training"}, ChipList(nil, makeArticles(2)))
	assert.Equal(t, All, Tags[0])
}

func TestFindAndHomeSelection(t *testing.T) {
	items := makeArticles(5)
	a, ok := Find(items, "4")
	require.True(t, ok)
	assert.Equal(t, "Article 4", a.Title)
	_, ok = Find(items, "42")
	assert.False(t, ok)

	assert.Equal(t, []string{"5", "2"}, ids(HomeSelection(items, []string{"5", "missing", "2"})))
	assert.Equal(t, []string{"1", "2", "3"}, ids(HomeSelection(items, nil)))
	assert.Empty(t, HomeSelection(nil, nil))
}

func TestPartitionCoversFiltered(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 40).Draw(t, "n")
		items := makeArticles(n)
		for i := range items {
			if rapid.Bool().Draw(t, "tagged") {
				items[i].Tags = append(items[i].Tags, "x")
			}
		}
		l := NewListing(items)
		if rapid.Bool().Draw(t, "filter") {
			l.SetFilter("x")
		}
		for _, op := range rapid.SliceOf(rapid.Bool()).Draw(t, "ops") {
			if op {
				l.NextPage()
			} else {
				l.PreviousPage()
			}
		}

		featured := 0
		if _, ok := l.Featured(); ok {
			featured = 1
		}
		if got := featured + len(l.Sidebar()) + len(l.Grid()); got != len(l.Filtered()) {
			t.Fatalf("partition covers %d of %d", got, len(l.Filtered()))
		}
		if l.PageIndex() < 1 || l.PageIndex() > l.TotalPages() {
			t.Fatalf("page %d outside [1,%d]", l.PageIndex(), l.TotalPages())
		}
		if len(l.Page()) > PageSize {
			t.Fatalf("page holds %d articles", len(l.Page()))
		}
	})
}

func TestGeneratedArticlesFilterByTag(t *testing.T) {
	items := testutil.NewDefault().Articles(12)
	cfg := testutil.DefaultConfig()
	cfg.IDPrefix = "s"
	items = append(items, testutil.New(cfg).Tagged(5, "שינה")...)

	l := NewListing(items)
	testutil.AssertArticleCount(t, l.Filtered(), 17)

	l.SetFilter("שינה")
	testutil.AssertArticleIDs(t, l.Filtered(), "s1", "s2", "s3", "s4", "s5")
	testutil.AssertAllMatch(t, l.Filtered(), "שינה")

	for _, cat := range testutil.DefaultCategories {
		l.SetFilter(cat)
		testutil.AssertAllMatch(t, l.Filtered(), cat)
	}
}
