// Package articles implements the filter and paginate pipeline behind the
// articles page.
//
// The filtered list is split by position: the first item is featured, the
// next two fill the sidebar and the rest form a grid paginated at PageSize.
// The split is positional whatever the filter, so a filter matching two
// articles yields a featured article, one sidebar article and an empty grid.
package articles

import (
	"github.com/vanderheijden86/mahar/pkg/model"
)

// All is the pass-through filter.
const All = "הכל"

// PageSize is the number of grid articles per page.
const PageSize = 9

const sidebarSize = 2

// Tags is the default filter chip list, All first.
var Tags = []string{All, "כושר קרבי", "מנטלי", "תזונה", "גיבושים", "אימונים", "בריאות", "ציוד", "רפואה", "פיקוד", "ראיונות"}

// Listing is the filter and paginate controller.
type Listing struct {
	items    []model.Article
	filter   string
	page     int
	filtered []model.Article
}

// NewListing creates a listing over items with the All filter on page 1. A
// nil collection behaves as empty.
func NewListing(items []model.Article) *Listing {
	l := &Listing{items: items}
	l.SetFilter(All)
	return l
}

// SetFilter applies tag and resets to the first page, even when tag is
// already active.
func (l *Listing) SetFilter(tag string) {
	l.filter = tag
	l.page = 1
	l.filtered = filter(l.items, tag)
}

// Filter returns the active filter.
func (l *Listing) Filter() string {
	return l.filter
}

// Matches reports whether a passes the tag filter.
func Matches(a model.Article, tag string) bool {
	return tag == All || a.Category == tag || a.HasTag(tag)
}

func filter(items []model.Article, tag string) []model.Article {
	if tag == All {
		return items
	}
	var out []model.Article
	for _, a := range items {
		if Matches(a, tag) {
			out = append(out, a)
		}
	}
	return out
}

// Filtered returns every article matching the active filter.
func (l *Listing) Filtered() []model.Article {
	return l.filtered
}

// Featured returns the first filtered article.
func (l *Listing) Featured() (model.Article, bool) {
	if len(l.filtered) == 0 {
		return model.Article{}, false
	}
	return l.filtered[0], true
}

// Sidebar returns filtered positions 1 and 2, fewer if the list is short.
func (l *Listing) Sidebar() []model.Article {
	return window(l.filtered, 1, 1+sidebarSize)
}

// Grid returns filtered positions 3 onwards.
func (l *Listing) Grid() []model.Article {
	return window(l.filtered, 1+sidebarSize, len(l.filtered))
}

// TotalPages is never below one, so an empty grid still reads as page 1 of 1.
func (l *Listing) TotalPages() int {
	return max(1, (len(l.Grid())+PageSize-1)/PageSize)
}

// PageIndex returns the 1-based grid page.
func (l *Listing) PageIndex() int {
	return l.page
}

// Page returns the grid articles on the current page.
func (l *Listing) Page() []model.Article {
	start := (l.page - 1) * PageSize
	return window(l.Grid(), start, start+PageSize)
}

// NextPage advances, stopping at the last page.
func (l *Listing) NextPage() {
	l.page = min(l.page+1, l.TotalPages())
}

// PreviousPage goes back, stopping at page 1.
func (l *Listing) PreviousPage() {
	l.page = max(l.page-1, 1)
}

// CanNext reports whether NextPage would move.
func (l *Listing) CanNext() bool {
	return l.page < l.TotalPages()
}

// CanPrevious reports whether PreviousPage would move.
func (l *Listing) CanPrevious() bool {
	return l.page > 1
}

// Range returns the 1-based grid window shown on the current page and the
// grid size. From is 0 when the grid is empty.
func (l *Listing) Range() (from, to, total int) {
	total = len(l.Grid())
	if total == 0 {
		return 0, 0, 0
	}
	from = (l.page-1)*PageSize + 1
	to = min(l.page*PageSize, total)
	return from, to, total
}

func window(items []model.Article, from, to int) []model.Article {
	from = max(0, from)
	to = min(len(items), to)
	if from >= to {
		return nil
	}
	return items[from:to]
}

// TagsFrom derives a chip list from content: All, then every category and
// tag in first-seen order.
func TagsFrom(items []model.Article) []string {
	seen := map[string]bool{All: true}
	out := []string{All}
	add := func(t string) {
		if t != "" && !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	for _, a := range items {
		add(a.Category)
		for _, t := range a.Tags {
			add(t)
		}
	}
	return out
}

// ChipList returns configured chips, falling back to TagsFrom(items) when
// none are configured. All is always first.
func ChipList(configured []string, items []model.Article) []string {
	if len(configured) == 0 {
		return TagsFrom(items)
	}
	out := []string{All}
	for _, t := range configured {
		if t != All {
			out = append(out, t)
		}
	}
	return out
}

// Find returns the article with id.
func Find(items []model.Article, id string) (model.Article, bool) {
	for _, a := range items {
		if a.ID == id {
			return a, true
		}
	}
	return model.Article{}, false
}

// HomeSelection picks the home page teaser articles. Unknown ids are
// skipped; with no ids the first three articles are used.
func HomeSelection(items []model.Article, ids []string) []model.Article {
	if len(ids) == 0 {
		return window(items, 0, 3)
	}
	var out []model.Article
	for _, id := range ids {
		if a, ok := Find(items, id); ok {
			out = append(out, a)
		}
	}
	return out
}
