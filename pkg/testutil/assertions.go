package testutil

import (
	"slices"
	"strings"
	"testing"

	"github.com/vanderheijden86/mahar/pkg/model"
)

// IDs returns the ids of articles in order.
func IDs(articles []model.Article) []string {
	out := make([]string, len(articles))
	for i, a := range articles {
		out[i] = a.ID
	}
	return out
}

// AssertArticleCount verifies the expected number of articles.
func AssertArticleCount(t *testing.T, articles []model.Article, expected int) {
	t.Helper()
	if len(articles) != expected {
		t.Errorf("expected %d articles, got %d", expected, len(articles))
	}
}

// AssertArticleIDs verifies the articles have exactly the given ids, in order.
func AssertArticleIDs(t *testing.T, articles []model.Article, ids ...string) {
	t.Helper()
	if got := IDs(articles); !slices.Equal(got, ids) {
		t.Errorf("expected ids %v, got %v", ids, got)
	}
}

// AssertNoDuplicateIDs verifies all article IDs are unique.
func AssertNoDuplicateIDs(t *testing.T, articles []model.Article) {
	t.Helper()
	seen := make(map[string]bool)
	for _, a := range articles {
		if seen[a.ID] {
			t.Errorf("duplicate article ID: %s", a.ID)
		}
		seen[a.ID] = true
	}
}

// AssertAllValid verifies all articles pass validation.
func AssertAllValid(t *testing.T, articles []model.Article) {
	t.Helper()
	for i, a := range articles {
		if err := a.Validate(); err != nil {
			t.Errorf("article %d (%s) invalid: %v", i, a.ID, err)
		}
	}
}

// AssertAllMatch verifies every article carries tag as a tag or category.
func AssertAllMatch(t *testing.T, articles []model.Article, tag string) {
	t.Helper()
	for _, a := range articles {
		if a.Category != tag && !a.HasTag(tag) {
			t.Errorf("article %s does not match %q", a.ID, tag)
		}
	}
}

// AssertContains verifies a rendered frame contains every substring.
func AssertContains(t *testing.T, frame string, parts ...string) {
	t.Helper()
	for _, p := range parts {
		if !strings.Contains(frame, p) {
			t.Errorf("expected output to contain %q\n--- output ---\n%s", p, frame)
		}
	}
}

// AssertNotContains verifies a rendered frame contains none of the substrings.
func AssertNotContains(t *testing.T, frame string, parts ...string) {
	t.Helper()
	for _, p := range parts {
		if strings.Contains(frame, p) {
			t.Errorf("expected output not to contain %q", p)
		}
	}
}
