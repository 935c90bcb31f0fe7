package model

import (
	"errors"
	"fmt"
	"strings"
)

// Article is one entry of the articles section. Body holds the HTML article
// text shown on the detail page.
type Article struct {
	ID          string   `json:"id" yaml:"id" toml:"id"`
	Title       string   `json:"title" yaml:"title" toml:"title"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Category    string   `json:"category" yaml:"category" toml:"category"`
	Date        string   `json:"date,omitempty" yaml:"date,omitempty" toml:"date,omitempty"`
	ReadTime    string   `json:"read_time,omitempty" yaml:"read_time,omitempty" toml:"read_time,omitempty"`
	Image       string   `json:"image,omitempty" yaml:"image,omitempty" toml:"image,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty" toml:"tags,omitempty"`
	Body        string   `json:"body,omitempty" yaml:"body,omitempty" toml:"body,omitempty"`
}

// Validate checks that the article can be routed to and listed.
func (a *Article) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return errors.New("article ID cannot be empty")
	}
	if strings.Contains(a.ID, "/") {
		return fmt.Errorf("article %q: ID cannot contain '/'", a.ID)
	}
	if strings.TrimSpace(a.Title) == "" {
		return fmt.Errorf("article %q: title cannot be empty", a.ID)
	}
	return nil
}

// HasTag reports whether tag is one of the article's tags.
func (a *Article) HasTag(tag string) bool {
	for _, t := range a.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Byline returns the date, falling back to the read time.
func (a *Article) Byline() string {
	if a.Date != "" {
		return a.Date
	}
	return a.ReadTime
}

// OtherTags returns up to limit tags that differ from the category.
func (a *Article) OtherTags(limit int) []string {
	var out []string
	for _, t := range a.Tags {
		if len(out) >= limit {
			break
		}
		if t != a.Category {
			out = append(out, t)
		}
	}
	return out
}

// Testimonial is a graduate quote shown on the home page.
type Testimonial struct {
	Name  string `json:"name" yaml:"name" toml:"name"`
	Unit  string `json:"unit,omitempty" yaml:"unit,omitempty" toml:"unit,omitempty"`
	Image string `json:"image,omitempty" yaml:"image,omitempty" toml:"image,omitempty"`
	Quote string `json:"quote" yaml:"quote" toml:"quote"`
}

// QA is one FAQ entry.
type QA struct {
	Question string `json:"question" yaml:"question" toml:"question"`
	Answer   string `json:"answer" yaml:"answer" toml:"answer"`
}

// Validate requires both halves of the pair.
func (q *QA) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return errors.New("question cannot be empty")
	}
	if strings.TrimSpace(q.Answer) == "" {
		return fmt.Errorf("question %q: answer cannot be empty", q.Question)
	}
	return nil
}

// TeamMember is a coach profile on the team page.
type TeamMember struct {
	Name   string   `json:"name" yaml:"name" toml:"name"`
	Role   string   `json:"role,omitempty" yaml:"role,omitempty" toml:"role,omitempty"`
	Unit   string   `json:"unit,omitempty" yaml:"unit,omitempty" toml:"unit,omitempty"`
	Icon   string   `json:"icon,omitempty" yaml:"icon,omitempty" toml:"icon,omitempty"`
	Image  string   `json:"image,omitempty" yaml:"image,omitempty" toml:"image,omitempty"`
	Bio    string   `json:"bio,omitempty" yaml:"bio,omitempty" toml:"bio,omitempty"`
	Badges []string `json:"badges,omitempty" yaml:"badges,omitempty" toml:"badges,omitempty"`
}

// Feature is a home page highlight.
type Feature struct {
	Icon        string `json:"icon,omitempty" yaml:"icon,omitempty" toml:"icon,omitempty"`
	Title       string `json:"title" yaml:"title" toml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
}

// Pillar is one section of the training method page.
type Pillar struct {
	Number      string   `json:"number" yaml:"number" toml:"number"`
	Icon        string   `json:"icon,omitempty" yaml:"icon,omitempty" toml:"icon,omitempty"`
	Title       string   `json:"title" yaml:"title" toml:"title"`
	Subtitle    string   `json:"subtitle,omitempty" yaml:"subtitle,omitempty" toml:"subtitle,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Items       []string `json:"items,omitempty" yaml:"items,omitempty" toml:"items,omitempty"`
}

// Contact holds the ways to reach the business.
type Contact struct {
	Phone    string `json:"phone,omitempty" yaml:"phone,omitempty" toml:"phone,omitempty"`
	Email    string `json:"email,omitempty" yaml:"email,omitempty" toml:"email,omitempty"`
	WhatsApp string `json:"whatsapp,omitempty" yaml:"whatsapp,omitempty" toml:"whatsapp,omitempty"`
}

// Social holds social network links.
type Social struct {
	Facebook  string `json:"facebook,omitempty" yaml:"facebook,omitempty" toml:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty" yaml:"instagram,omitempty" toml:"instagram,omitempty"`
}

// Site is the site-wide metadata.
type Site struct {
	Name          string   `json:"name" yaml:"name" toml:"name"`
	Description   string   `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Contact       Contact  `json:"contact" yaml:"contact" toml:"contact"`
	Social        Social   `json:"social" yaml:"social" toml:"social"`
	NextCycleDate string   `json:"next_cycle_date,omitempty" yaml:"next_cycle_date,omitempty" toml:"next_cycle_date,omitempty"`
	BaseURL       string   `json:"base_url,omitempty" yaml:"base_url,omitempty" toml:"base_url,omitempty"`
	FormEndpoint  string   `json:"form_endpoint,omitempty" yaml:"form_endpoint,omitempty" toml:"form_endpoint,omitempty"`
	FilterTags    []string `json:"filter_tags,omitempty" yaml:"filter_tags,omitempty" toml:"filter_tags,omitempty"`
	HomeArticles  []string `json:"home_articles,omitempty" yaml:"home_articles,omitempty" toml:"home_articles,omitempty"`
}
