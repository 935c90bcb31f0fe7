// Package validate checks contact form input and content bundles.
package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vanderheijden86/mahar/pkg/articles"
	"github.com/vanderheijden86/mahar/pkg/format"
	"github.com/vanderheijden86/mahar/pkg/model"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email reports whether s looks like an email address.
func Email(s string) bool {
	return s != "" && emailRe.MatchString(s)
}

// Phone accepts local numbers of 9 or 10 digits, ignoring punctuation.
func Phone(s string) bool {
	n := len(format.Digits(s))
	return n >= 9 && n <= 10
}

// Required reports whether s has non-space content.
func Required(s string) bool {
	return strings.TrimSpace(s) != ""
}

// Severity grades a content issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one content problem.
type Issue struct {
	Severity Severity `json:"severity"`
	Where    string   `json:"where"`
	Message  string   `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s", i.Severity, i.Where, i.Message)
}

// Report collects content issues.
type Report struct {
	Issues []Issue `json:"issues"`
}

// OK reports whether the report has no errors. Warnings are allowed.
func (r *Report) OK() bool {
	return r.Count(SeverityError) == 0
}

// Count returns the number of issues of severity s.
func (r *Report) Count(s Severity) int {
	n := 0
	for _, i := range r.Issues {
		if i.Severity == s {
			n++
		}
	}
	return n
}

func (r *Report) add(s Severity, where, msg string, args ...any) {
	r.Issues = append(r.Issues, Issue{Severity: s, Where: where, Message: fmt.Sprintf(msg, args...)})
}

// Content checks record-level validity plus cross references: duplicate
// article ids, home article ids that point nowhere, filter chips no article
// can match, and site contact details.
func Content(c *model.Content) *Report {
	r := &Report{}
	seen := make(map[string]int)
	known := make(map[string]bool)
	for i := range c.Articles {
		a := &c.Articles[i]
		where := fmt.Sprintf("articles[%d]", i)
		if err := a.Validate(); err != nil {
			r.add(SeverityError, where, "%v", err)
		}
		if prev, dup := seen[a.ID]; dup && a.ID != "" {
			r.add(SeverityError, where, "duplicate id %q (first at articles[%d])", a.ID, prev)
		} else {
			seen[a.ID] = i
		}
		known[a.Category] = true
		for _, t := range a.Tags {
			known[t] = true
		}
		if a.Body == "" {
			r.add(SeverityWarning, where, "article %q has no body", a.ID)
		}
	}
	for _, id := range c.Site.HomeArticles {
		if _, ok := seen[id]; !ok {
			r.add(SeverityError, "site.home_articles", "unknown article id %q", id)
		}
	}
	for _, tag := range c.Site.FilterTags {
		if tag != "" && !known[tag] && tag != articles.All {
			r.add(SeverityWarning, "site.filter_tags", "tag %q matches no article", tag)
		}
	}
	for i := range c.FAQs {
		if err := c.FAQs[i].Validate(); err != nil {
			r.add(SeverityError, fmt.Sprintf("faqs[%d]", i), "%v", err)
		}
	}
	for i, t := range c.Testimonials {
		if !Required(t.Quote) {
			r.add(SeverityError, fmt.Sprintf("testimonials[%d]", i), "quote cannot be empty")
		}
	}
	for i, img := range c.Gallery {
		if !Required(img) {
			r.add(SeverityError, fmt.Sprintf("gallery[%d]", i), "image cannot be empty")
		}
	}
	if !Required(c.Site.Name) {
		r.add(SeverityWarning, "site.name", "site name is empty")
	}
	if p := c.Site.Contact.Phone; p != "" && !Phone(p) {
		r.add(SeverityWarning, "site.contact.phone", "%q is not a valid phone number", p)
	}
	if e := c.Site.Contact.Email; e != "" && !Email(e) {
		r.add(SeverityWarning, "site.contact.email", "%q is not a valid email", e)
	}
	return r
}
