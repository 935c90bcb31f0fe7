// Package route maps site paths to page views.
//
// A table is an ordered list of patterns checked in declaration order. A
// pattern is either static, matched by exact string equality, or ends in
// one {name} segment that binds a single non-empty trailing path segment.
// Anything else, malformed paths included, resolves to the fallback view.
package route

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPattern reports an invalid route pattern.
var ErrPattern = errors.New("invalid route pattern")

// View identifies a page.
type View string

const (
	Home          View = "home"
	Team          View = "team"
	Method        View = "method"
	Articles      View = "articles"
	ArticleDetail View = "article-detail"
	Contact       View = "contact"
	FAQ           View = "faq"
	Terms         View = "terms"
	Privacy       View = "privacy"
	Accessibility View = "accessibility"
	NotFound      View = "not-found"
)

// Paths of the site pages.
const (
	PathHome          = "/"
	PathTeam          = "/team"
	PathMethod        = "/method"
	PathArticles      = "/articles"
	PathArticleDetail = "/articles/{id}"
	PathContact       = "/contact"
	PathFAQ           = "/faq"
	PathTerms         = "/terms"
	PathPrivacy       = "/privacy"
	PathAccessibility = "/accessibility"
)

// Route pairs a pattern with a view.
type Route struct {
	Pattern string
	View    View
}

// Match is the result of resolving a path.
type Match struct {
	Path   string
	View   View
	Params map[string]string
}

// Param returns a captured parameter.
func (m Match) Param(name string) string {
	return m.Params[name]
}

type compiled struct {
	Route
	prefix string // static part, or the whole pattern when param is empty
	param  string
}

// Table is an ordered route table with a fallback view.
type Table struct {
	routes   []compiled
	fallback View
}

// NewTable compiles routes in order. A pattern must be absolute and may hold
// at most one parameter, which must be its last segment.
func NewTable(fallback View, routes ...Route) (*Table, error) {
	t := &Table{fallback: fallback}
	for _, r := range routes {
		c, err := compile(r)
		if err != nil {
			return nil, err
		}
		t.routes = append(t.routes, c)
	}
	return t, nil
}

func compile(r Route) (compiled, error) {
	p := r.Pattern
	if !strings.HasPrefix(p, "/") {
		return compiled{}, fmt.Errorf("%w: %q must start with '/'", ErrPattern, p)
	}
	if p != "/" && (strings.HasSuffix(p, "/") || strings.Contains(p, "//")) {
		return compiled{}, fmt.Errorf("%w: %q has empty segments", ErrPattern, p)
	}
	segs := strings.Split(p[1:], "/")
	c := compiled{Route: r, prefix: p}
	for i, seg := range segs {
		hasOpen, hasClose := strings.Contains(seg, "{"), strings.Contains(seg, "}")
		if !hasOpen && !hasClose {
			continue
		}
		if !strings.HasPrefix(seg, "{") || !strings.HasSuffix(seg, "}") || len(seg) < 3 {
			return compiled{}, fmt.Errorf("%w: %q has a malformed parameter", ErrPattern, p)
		}
		if i != len(segs)-1 {
			return compiled{}, fmt.Errorf("%w: %q parameter must be the last segment", ErrPattern, p)
		}
		c.param = seg[1 : len(seg)-1]
		c.prefix = p[:len(p)-len(seg)]
	}
	return c, nil
}

// DefaultTable returns the site routes. The article detail pattern is
// declared before the article list.
func DefaultTable() *Table {
	t, err := NewTable(NotFound,
		Route{PathHome, Home},
		Route{PathTeam, Team},
		Route{PathMethod, Method},
		Route{PathArticleDetail, ArticleDetail},
		Route{PathArticles, Articles},
		Route{PathContact, Contact},
		Route{PathFAQ, FAQ},
		Route{PathTerms, Terms},
		Route{PathPrivacy, Privacy},
		Route{PathAccessibility, Accessibility},
	)
	if err != nil {
		panic(err)
	}
	return t
}

// Routes returns the table in declaration order.
func (t *Table) Routes() []Route {
	out := make([]Route, len(t.routes))
	for i, c := range t.routes {
		out[i] = c.Route
	}
	return out
}

// Fallback returns the view used when nothing matches.
func (t *Table) Fallback() View {
	return t.fallback
}

// Resolve maps path to a view. It never fails.
func (t *Table) Resolve(path string) Match {
	for _, c := range t.routes {
		if c.param == "" {
			if path == c.prefix {
				return Match{Path: path, View: c.View}
			}
			continue
		}
		rest, ok := strings.CutPrefix(path, c.prefix)
		if !ok || rest == "" || strings.Contains(rest, "/") {
			continue
		}
		return Match{Path: path, View: c.View, Params: map[string]string{c.param: rest}}
	}
	return Match{Path: path, View: t.fallback}
}

// Build fills a pattern's parameter, e.g. Build(PathArticleDetail, "4").
func Build(pattern, value string) string {
	i := strings.LastIndex(pattern, "/{")
	if i < 0 || !strings.HasSuffix(pattern, "}") {
		return pattern
	}
	return pattern[:i+1] + value
}

// IsActive reports whether a navigation link to target should be
// highlighted for the current path.
func IsActive(current, target string) bool {
	return current == target
}

// ParseLocation turns a location as found in a shared link into a router
// path. Hash links ("#/team", "https://host/#/articles/4") use the fragment;
// other URLs use their path. Query strings are dropped.
func ParseLocation(raw string) string {
	s := strings.TrimSpace(raw)
	if i := strings.Index(s, "#"); i >= 0 {
		s = s[i+1:]
	} else if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
		if j := strings.Index(s, "/"); j >= 0 {
			s = s[j:]
		} else {
			s = "/"
		}
	}
	if i := strings.IndexAny(s, "?"); i >= 0 {
		s = s[:i]
	}
	if s == "" {
		return PathHome
	}
	if !strings.HasPrefix(s, "/") {
		s = "/" + s
	}
	return s
}
