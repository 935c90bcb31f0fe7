package datasource

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/vanderheijden86/mahar/pkg/model"
)

// CountChange records a collection whose size changed between two loads
type CountChange struct {
	Collection string `json:"collection"`
	Before     int    `json:"before"`
	After      int    `json:"after"`
}

// ContentDiff represents differences between two loads of the content
type ContentDiff struct {
	// Added contains article IDs present only in the new content
	Added []string `json:"added,omitempty"`
	// Removed contains article IDs present only in the old content
	Removed []string `json:"removed,omitempty"`
	// Changed contains article IDs whose fields differ
	Changed []string `json:"changed,omitempty"`
	// Counts lists the non-article collections that grew or shrank
	Counts []CountChange `json:"counts,omitempty"`
	// SiteChanged is set when site metadata differs
	SiteChanged bool `json:"site_changed"`
}

// HasChanges returns true if the two loads differ at all
func (d ContentDiff) HasChanges() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0 || len(d.Changed) > 0 ||
		len(d.Counts) > 0 || d.SiteChanged
}

// Summary returns a one-line description for the status bar
func (d ContentDiff) Summary() string {
	if !d.HasChanges() {
		return "content unchanged"
	}
	var parts []string
	if n := len(d.Added); n > 0 {
		parts = append(parts, fmt.Sprintf("+%d %s", n, plural(n, "article")))
	}
	if n := len(d.Removed); n > 0 {
		parts = append(parts, fmt.Sprintf("-%d %s", n, plural(n, "article")))
	}
	if n := len(d.Changed); n > 0 {
		parts = append(parts, fmt.Sprintf("%d changed", n))
	}
	for _, c := range d.Counts {
		parts = append(parts, fmt.Sprintf("%s %d→%d", c.Collection, c.Before, c.After))
	}
	if d.SiteChanged {
		parts = append(parts, "site updated")
	}
	return "content reloaded: " + strings.Join(parts, ", ")
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// Diff compares two content bundles. Either side may be nil.
func Diff(old, next *model.Content) ContentDiff {
	if old == nil {
		old = &model.Content{}
	}
	if next == nil {
		next = &model.Content{}
	}

	var d ContentDiff
	before := make(map[string]model.Article, len(old.Articles))
	for _, a := range old.Articles {
		before[a.ID] = a
	}
	after := make(map[string]model.Article, len(next.Articles))
	for _, a := range next.Articles {
		after[a.ID] = a
	}

	for id, a := range before {
		b, ok := after[id]
		switch {
		case !ok:
			d.Removed = append(d.Removed, id)
		case !sameArticle(a, b):
			d.Changed = append(d.Changed, id)
		}
	}
	for id := range after {
		if _, ok := before[id]; !ok {
			d.Added = append(d.Added, id)
		}
	}
	sort.Strings(d.Added)
	sort.Strings(d.Removed)
	sort.Strings(d.Changed)

	bs, as := old.Stats(), next.Stats()
	for _, c := range []CountChange{
		{"gallery", bs.Gallery, as.Gallery},
		{"testimonials", bs.Testimonials, as.Testimonials},
		{"faqs", bs.FAQs, as.FAQs},
		{"team", bs.Team, as.Team},
		{"features", bs.Features, as.Features},
		{"pillars", bs.Pillars, as.Pillars},
	} {
		if c.Before != c.After {
			d.Counts = append(d.Counts, c)
		}
	}

	d.SiteChanged = !sameSite(old.Site, next.Site)
	return d
}

func sameArticle(a, b model.Article) bool {
	return a.Title == b.Title &&
		a.Description == b.Description &&
		a.Category == b.Category &&
		a.Date == b.Date &&
		a.ReadTime == b.ReadTime &&
		a.Image == b.Image &&
		a.Body == b.Body &&
		slices.Equal(a.Tags, b.Tags)
}

func sameSite(a, b model.Site) bool {
	return a.Name == b.Name &&
		a.Description == b.Description &&
		a.Contact == b.Contact &&
		a.Social == b.Social &&
		a.NextCycleDate == b.NextCycleDate &&
		a.BaseURL == b.BaseURL &&
		a.FormEndpoint == b.FormEndpoint &&
		slices.Equal(a.FilterTags, b.FilterTags) &&
		slices.Equal(a.HomeArticles, b.HomeArticles)
}
