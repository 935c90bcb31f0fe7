package content

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanderheijden86/mahar/pkg/validate"
)

func TestEmbeddedSample(t *testing.T) {
	c, err := Embedded()
	require.NoError(t, err)

	assert.Equal(t, "מחר מלחמה", c.Site.Name)
	assert.Len(t, c.Articles, 16)
	assert.Len(t, c.Gallery, 6)
	assert.Len(t, c.Testimonials, 5)
	assert.Len(t, c.FAQs, 6)
	assert.Len(t, c.Team, 4)
	assert.Len(t, c.Features, 3, "features come from JSON")
	assert.Len(t, c.Pillars, 3, "pillars come from TOML")
	assert.Equal(t, "02", c.Pillars[1].Number)
	assert.NotEmpty(t, c.Articles[0].Body)

	report := validate.Content(c)
	assert.True(t, report.OK(), "%v", report.Issues)
}

func TestLoadFSMixedFormats(t *testing.T) {
	fsys := fstest.MapFS{
		"site.toml": {Data: []byte(`
name = "Test Site"
home_articles = ["b"]

[contact]
phone = "0501234567"
`)},
		"articles.json": {Data: []byte(`[
  {"id": "a", "title": "First", "category": "x", "tags": ["y"]},
  {"id": "b", "title": "Second", "category": "y"}
]`)},
		"gallery.toml": {Data: []byte(`gallery = ["one.jpg", "two.jpg"]`)},
		"faqs.yml":     {Data: []byte("- question: q\n  answer: a\n")},
	}

	c, err := LoadFS(context.Background(), fsys)
	require.NoError(t, err)

	assert.Equal(t, "Test Site", c.Site.Name)
	assert.Equal(t, "0501234567", c.Site.Contact.Phone)
	assert.Equal(t, []string{"b"}, c.Site.HomeArticles)
	require.Len(t, c.Articles, 2)
	assert.Equal(t, []string{"y"}, c.Articles[0].Tags)
	assert.Equal(t, []string{"one.jpg", "two.jpg"}, c.Gallery)
	assert.Len(t, c.FAQs, 1)
	assert.Empty(t, c.Team, "missing files are empty collections")
	assert.Empty(t, c.Testimonials)
}

func TestLoadFSEmpty(t *testing.T) {
	c, err := LoadFS(context.Background(), fstest.MapFS{})
	require.NoError(t, err)
	assert.True(t, c.Empty())
}

func TestLoadFSMalformed(t *testing.T) {
	for name, data := range map[string]string{
		"articles.yaml": "- id: [unclosed",
		"faqs.json":     `[{"question": }]`,
		"team.toml":     "[[team]\nname=",
		"site.yaml":     "- just\n- a list\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFS(context.Background(), fstest.MapFS{name: {Data: []byte(data)}})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformed))
			assert.Contains(t, err.Error(), name)
		})
	}
}

func TestLoadFSCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := LoadFS(ctx, SampleFS())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtensionPriority(t *testing.T) {
	fsys := fstest.MapFS{
		"gallery.json": {Data: []byte(`["from-json"]`)},
		"gallery.yaml": {Data: []byte("- from-yaml\n")},
		"faqs.toml":    {Data: []byte("")},
		"notes.txt":    {Data: []byte("ignored")},
	}
	c, err := LoadFS(context.Background(), fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"from-yaml"}, c.Gallery)
	assert.Equal(t, []string{"gallery.yaml", "faqs.toml"}, Files(fsys))
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gallery.yaml"), []byte("- a.jpg\n"), 0o644))

	c, err := Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg"}, c.Gallery)

	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "gallery.yaml"), old, old))
	assert.WithinDuration(t, old, ModTime(os.DirFS(dir)), time.Second)

	_, err = Load(context.Background(), filepath.Join(dir, "missing"))
	assert.Error(t, err)
	_, err = Load(context.Background(), filepath.Join(dir, "gallery.yaml"))
	assert.Error(t, err)
}

func TestResolveDir(t *testing.T) {
	t.Setenv(EnvDir, "")
	assert.Equal(t, "/explicit", ResolveDir("/explicit"))
	assert.Equal(t, DefaultDir, ResolveDir(""))

	t.Setenv(EnvDir, "/from/env")
	assert.Equal(t, "/from/env", ResolveDir(""))
	assert.Equal(t, "/explicit", ResolveDir("/explicit"))
}
