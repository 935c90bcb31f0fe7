// Package testutil provides content fixture generators and assertions.
// All generators produce deterministic output for reproducible tests.
package testutil

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/mahar/pkg/model"
)

// GeneratorConfig controls content generation.
type GeneratorConfig struct {
	Seed       int64     // Random seed for determinism (0 = use current time)
	IDPrefix   string    // Prefix for article IDs (default: none, ids are 1..n)
	BaseDate   time.Time // Date of the newest article (default: fixed date)
	Categories []string  // Category pool (default: DefaultCategories)
	Tags       []string  // Tag pool (default: DefaultTags)
	MaxTags    int       // Upper bound of extra tags per article (default: 2)
	WithBody   bool      // Generate HTML bodies
}

// DefaultCategories is the category pool used when none is configured.
var DefaultCategories = []string{"גיבושים", "תזונה", "מנטלי", "כושר קרבי"}

// DefaultTags is the extra tag pool used when none is configured.
var DefaultTags = []string{"בריאות", "ציוד", "אימונים", "פיקוד", "ראיונות"}

// DefaultConfig returns a config suitable for most tests.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:       42, // Deterministic
		BaseDate:   time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
		Categories: DefaultCategories,
		Tags:       DefaultTags,
		MaxTags:    2,
		WithBody:   true,
	}
}

// Generator creates content fixtures.
type Generator struct {
	cfg GeneratorConfig
	rng *rand.Rand
}

// New creates a Generator with the given config.
func New(cfg GeneratorConfig) *Generator {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if cfg.BaseDate.IsZero() {
		cfg.BaseDate = time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	}
	if len(cfg.Categories) == 0 {
		cfg.Categories = DefaultCategories
	}
	if len(cfg.Tags) == 0 {
		cfg.Tags = DefaultTags
	}
	if cfg.MaxTags < 0 {
		cfg.MaxTags = 0
	}
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// NewDefault creates a Generator with default config.
func NewDefault() *Generator {
	return New(DefaultConfig())
}

// Article builds one article. Its category is always among its tags, the
// way the site content is written.
func (g *Generator) Article(i int) model.Article {
	category := g.cfg.Categories[g.rng.Intn(len(g.cfg.Categories))]
	tags := []string{category}
	if g.cfg.MaxTags > 0 {
		for _, idx := range g.rng.Perm(len(g.cfg.Tags))[:g.rng.Intn(min(g.cfg.MaxTags, len(g.cfg.Tags))+1)] {
			tags = append(tags, g.cfg.Tags[idx])
		}
	}
	id := fmt.Sprintf("%s%d", g.cfg.IDPrefix, i+1)
	a := model.Article{
		ID:          id,
		Title:       fmt.Sprintf("Article %s", id),
		Description: fmt.Sprintf("Description of article %s", id),
		Category:    category,
		Date:        g.cfg.BaseDate.AddDate(0, 0, -i).Format("02.01.06"),
		ReadTime:    fmt.Sprintf("%d דק' קריאה", 3+g.rng.Intn(8)),
		Image:       fmt.Sprintf("images/article-%s.jpg", id),
		Tags:        tags,
	}
	if g.cfg.WithBody {
		a.Body = fmt.Sprintf("<p>Body of <strong>%s</strong>.</p><h2>Section</h2><ul><li>one</li><li>two</li></ul>", id)
	}
	return a
}

// Articles builds n articles with ids 1..n (after the prefix).
func (g *Generator) Articles(n int) []model.Article {
	out := make([]model.Article, n)
	for i := range out {
		out[i] = g.Article(i)
	}
	return out
}

// Tagged builds n articles that all carry tag, plus their generated tags.
func (g *Generator) Tagged(n int, tag string) []model.Article {
	out := g.Articles(n)
	for i := range out {
		out[i].Tags = append(out[i].Tags, tag)
	}
	return out
}

// Content builds a full bundle around n articles.
func (g *Generator) Content(n int) *model.Content {
	c := &model.Content{
		Site: model.Site{
			Name:        "Test Site",
			Description: "fixture",
			Contact: model.Contact{
				Phone: "0501234567",
				Email: "info@example.com",
			},
			FormEndpoint: "https://forms.example.com/f/test",
		},
		Articles: g.Articles(n),
	}
	for i := 0; i < 4; i++ {
		c.Gallery = append(c.Gallery, fmt.Sprintf("images/gallery-%d.jpg", i+1))
	}
	for i := 0; i < 5; i++ {
		c.Testimonials = append(c.Testimonials, model.Testimonial{
			Name:  fmt.Sprintf("Person %d", i+1),
			Unit:  "יחידה",
			Quote: fmt.Sprintf("Quote %d", i+1),
		})
	}
	for i := 0; i < 3; i++ {
		c.FAQs = append(c.FAQs, model.QA{
			Question: fmt.Sprintf("Question %d?", i+1),
			Answer:   fmt.Sprintf("Answer %d.", i+1),
		})
	}
	c.Team = []model.TeamMember{{Name: "Coach", Role: "מאמן ראשי"}}
	return c
}

// WriteDir writes c into dir as YAML content files, one per non-empty
// collection.
func WriteDir(t *testing.T, dir string, c *model.Content) {
	t.Helper()
	files := map[string]any{"site": c.Site}
	if len(c.Articles) > 0 {
		files["articles"] = c.Articles
	}
	if len(c.Gallery) > 0 {
		files["gallery"] = c.Gallery
	}
	if len(c.Testimonials) > 0 {
		files["testimonials"] = c.Testimonials
	}
	if len(c.FAQs) > 0 {
		files["faqs"] = c.FAQs
	}
	if len(c.Team) > 0 {
		files["team"] = c.Team
	}
	if len(c.Features) > 0 {
		files["features"] = c.Features
	}
	if len(c.Pillars) > 0 {
		files["pillars"] = c.Pillars
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("creating %s: %v", dir, err)
	}
	for name, v := range files {
		data, err := yaml.Marshal(v)
		if err != nil {
			t.Fatalf("marshaling %s: %v", name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, name+".yaml"), data, 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
}
