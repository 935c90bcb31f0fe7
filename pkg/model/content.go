// Package model holds the content records the site is built from. Records
// are read-only once loaded; controllers receive them as plain slices.
package model

import (
	"errors"
	"fmt"
)

// Content is the full content bundle for one site.
type Content struct {
	Site         Site
	Articles     []Article
	Gallery      []string
	Testimonials []Testimonial
	FAQs         []QA
	Team         []TeamMember
	Features     []Feature
	Pillars      []Pillar
}

// Stats counts each collection.
type Stats struct {
	Articles     int `json:"articles"`
	Gallery      int `json:"gallery"`
	Testimonials int `json:"testimonials"`
	FAQs         int `json:"faqs"`
	Team         int `json:"team"`
	Features     int `json:"features"`
	Pillars      int `json:"pillars"`
}

// Stats returns collection sizes.
func (c *Content) Stats() Stats {
	return Stats{
		Articles:     len(c.Articles),
		Gallery:      len(c.Gallery),
		Testimonials: len(c.Testimonials),
		FAQs:         len(c.FAQs),
		Team:         len(c.Team),
		Features:     len(c.Features),
		Pillars:      len(c.Pillars),
	}
}

// Empty reports whether the bundle has no content at all.
func (c *Content) Empty() bool {
	return c.Stats() == Stats{} && c.Site.Name == ""
}

// ArticleByID returns the article with the given id.
func (c *Content) ArticleByID(id string) (Article, bool) {
	for _, a := range c.Articles {
		if a.ID == id {
			return a, true
		}
	}
	return Article{}, false
}

// Validate checks every record and reports all problems at once.
func (c *Content) Validate() error {
	var errs []error
	for i := range c.Articles {
		if err := c.Articles[i].Validate(); err != nil {
			errs = append(errs, fmt.Errorf("articles[%d]: %w", i, err))
		}
	}
	for i := range c.FAQs {
		if err := c.FAQs[i].Validate(); err != nil {
			errs = append(errs, fmt.Errorf("faqs[%d]: %w", i, err))
		}
	}
	for i, t := range c.Testimonials {
		if t.Quote == "" {
			errs = append(errs, fmt.Errorf("testimonials[%d]: quote cannot be empty", i))
		}
	}
	for i, img := range c.Gallery {
		if img == "" {
			errs = append(errs, fmt.Errorf("gallery[%d]: image cannot be empty", i))
		}
	}
	return errors.Join(errs...)
}
