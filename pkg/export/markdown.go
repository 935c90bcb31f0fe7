// Package export writes site content out of the browser: a Markdown digest
// of the articles and FAQ, and a build manifest of the content files.
package export

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/vanderheijden86/mahar/pkg/markup"
	"github.com/vanderheijden86/mahar/pkg/model"
)

// Package-level compiled regex for slug creation (avoids recompilation per call)
var slugSeparatorRegex = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// GenerateMarkdown renders the content as one Markdown document: a summary
// table, category counts, a table of contents, one section per article and
// the FAQ.
func GenerateMarkdown(c *model.Content, title string, generated time.Time) (string, error) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", title))
	if c.Site.Description != "" {
		sb.WriteString(c.Site.Description + "\n\n")
	}
	sb.WriteString(fmt.Sprintf("*Generated: %s*\n\n", generated.Format(time.RFC1123)))

	s := c.Stats()
	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Collection | Count |\n|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Articles | %d |\n", s.Articles))
	sb.WriteString(fmt.Sprintf("| Gallery | %d |\n", s.Gallery))
	sb.WriteString(fmt.Sprintf("| Testimonials | %d |\n", s.Testimonials))
	sb.WriteString(fmt.Sprintf("| FAQs | %d |\n", s.FAQs))
	sb.WriteString(fmt.Sprintf("| Team | %d |\n\n", s.Team))

	if cats := categoryCounts(c.Articles); len(cats) > 0 {
		sb.WriteString("## Categories\n\n")
		sb.WriteString("| Category | Articles |\n|--------|-------|\n")
		for _, cc := range cats {
			sb.WriteString(fmt.Sprintf("| %s | %d |\n", cc.name, cc.n))
		}
		sb.WriteString("\n")
	}

	// Precompute stable, unique slugs for TOC anchors and headings.
	slugCounts := make(map[string]int, len(c.Articles))
	slugs := make([]string, len(c.Articles))
	for i, a := range c.Articles {
		slugs[i] = uniqueSlug(createSlug(a.Title), slugCounts)
	}

	if len(c.Articles) > 0 {
		sb.WriteString("## Table of Contents\n\n")
		for i, a := range c.Articles {
			sb.WriteString(fmt.Sprintf("- [%s](#%s)\n", a.Title, slugs[i]))
		}
		sb.WriteString("\n---\n\n")
	}

	for i, a := range c.Articles {
		body, err := articleMarkdown(a)
		if err != nil {
			return "", err
		}
		sb.WriteString(fmt.Sprintf("<a id=\"%s\"></a>\n\n", slugs[i]))
		sb.WriteString(fmt.Sprintf("## %s\n\n", a.Title))
		sb.WriteString(body)
		sb.WriteString("\n\n---\n\n")
	}

	if len(c.FAQs) > 0 {
		sb.WriteString("## שאלות נפוצות\n\n")
		for _, qa := range c.FAQs {
			sb.WriteString(fmt.Sprintf("### %s\n\n%s\n\n", qa.Question, qa.Answer))
		}
	}

	return strings.TrimRight(sb.String(), "\n") + "\n", nil
}

func articleMarkdown(a model.Article) (string, error) {
	var sb strings.Builder

	var meta []string
	if a.Category != "" {
		meta = append(meta, "**"+a.Category+"**")
	}
	if a.Date != "" {
		meta = append(meta, a.Date)
	}
	if a.ReadTime != "" {
		meta = append(meta, a.ReadTime)
	}
	if len(meta) > 0 {
		sb.WriteString(strings.Join(meta, " · ") + "\n\n")
	}
	if len(a.Tags) > 0 {
		tags := make([]string, len(a.Tags))
		for i, t := range a.Tags {
			tags[i] = "`" + t + "`"
		}
		sb.WriteString(strings.Join(tags, " ") + "\n\n")
	}
	if a.Description != "" {
		sb.WriteString("> " + a.Description + "\n\n")
	}

	body, err := markup.ToMarkdown(a.Body)
	if err != nil {
		return "", fmt.Errorf("article %s: %w", a.ID, err)
	}
	sb.WriteString(body)
	return strings.TrimRight(sb.String(), "\n"), nil
}

type categoryCount struct {
	name string
	n    int
}

// categoryCounts orders categories by article count, then name.
func categoryCounts(articles []model.Article) []categoryCount {
	counts := make(map[string]int)
	for _, a := range articles {
		if a.Category != "" {
			counts[a.Category]++
		}
	}
	out := make([]categoryCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, categoryCount{name, n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].n != out[j].n {
			return out[i].n > out[j].n
		}
		return out[i].name < out[j].name
	})
	return out
}

func uniqueSlug(base string, counts map[string]int) string {
	if base == "" {
		base = "section"
	}
	if count, ok := counts[base]; ok {
		count++
		counts[base] = count
		return fmt.Sprintf("%s-%d", base, count)
	}
	counts[base] = 0
	return base
}

// createSlug creates an anchor slug from heading text. Letters of any
// script are kept.
func createSlug(text string) string {
	slug := strings.ToLower(text)
	slug = slugSeparatorRegex.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// SaveMarkdownToFile writes the generated markdown to a file.
func SaveMarkdownToFile(c *model.Content, title, filename string) error {
	out, err := GenerateMarkdown(c, title, time.Now())
	if err != nil {
		return err
	}
	return os.WriteFile(filename, []byte(out), 0o644)
}
