package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanderheijden86/mahar/pkg/model"
	"github.com/vanderheijden86/mahar/pkg/validate"
)

func sampleContent() *model.Content {
	return &model.Content{
		Site: model.Site{Name: "מחר מלחמה", Description: "הכנה לגיבושים"},
		Articles: []model.Article{
			{ID: "1", Title: "יומן גיבוש", Category: "גיבושים", Date: "26.10.25", Tags: []string{"שייטת 13"},
				Description: "יומן יומי", Body: "<p>יום <strong>ראשון</strong></p><ul><li>ריצה</li><li>שחייה</li></ul>"},
			{ID: "2", Title: "תזונה", Category: "תזונה", ReadTime: "6 דק' קריאה", Body: "<p>לאכול נכון</p>"},
			{ID: "3", Title: "יומן גיבוש", Category: "גיבושים", Body: "<p>שוב</p>"},
		},
		FAQs: []model.QA{{Question: "מתי מתחילים?", Answer: "בכל חודש."}},
	}
}

func TestCreateSlug(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello World", "hello-world"},
		{"יומן גיבוש", "יומן-גיבוש"},
		{"  Trim -- me!  ", "trim-me"},
		{"שייטת 13: אוקטובר", "שייטת-13-אוקטובר"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		if got := createSlug(tt.input); got != tt.expected {
			t.Errorf("createSlug(%q) = %q; want %q", tt.input, got, tt.expected)
		}
	}
}

func TestUniqueSlug(t *testing.T) {
	counts := map[string]int{}
	got := []string{
		uniqueSlug("a", counts),
		uniqueSlug("a", counts),
		uniqueSlug("", counts),
		uniqueSlug("a", counts),
	}
	want := []string{"a", "a-1", "section", "a-2"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("slug %d = %q; want %q", i, got[i], want[i])
		}
	}
}

func TestGenerateMarkdown(t *testing.T) {
	at := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	out, err := GenerateMarkdown(sampleContent(), "מחר מלחמה", at)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "# מחר מלחמה\n"))
	assert.Contains(t, out, "| Articles | 3 |")
	assert.Contains(t, out, "| גיבושים | 2 |", "categories are counted")
	assert.Less(t, strings.Index(out, "| גיבושים | 2 |"), strings.Index(out, "| תזונה | 1 |"), "larger categories first")
	assert.Contains(t, out, "- [יומן גיבוש](#יומן-גיבוש)")
	assert.Contains(t, out, "- [יומן גיבוש](#יומן-גיבוש-1)", "duplicate titles get distinct anchors")
	assert.Contains(t, out, "**גיבושים** · 26.10.25")
	assert.Contains(t, out, "`שייטת 13`")
	assert.Contains(t, out, "> יומן יומי")
	assert.Contains(t, out, "**ראשון**", "bodies are converted to markdown")
	assert.Contains(t, out, "- ריצה")
	assert.Contains(t, out, "### מתי מתחילים?\n\nבכל חודש.")
	assert.NotContains(t, out, "<p>")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestGenerateMarkdownEmpty(t *testing.T) {
	out, err := GenerateMarkdown(&model.Content{}, "ריק", time.Now())
	require.NoError(t, err)
	assert.Contains(t, out, "| Articles | 0 |")
	assert.NotContains(t, out, "Table of Contents")
	assert.NotContains(t, out, "Categories")
}

func TestSaveMarkdownToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.md")
	require.NoError(t, SaveMarkdownToFile(sampleContent(), "digest", path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# digest\n"))
}

func TestBuildManifest(t *testing.T) {
	mod := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	fsys := fstest.MapFS{
		"site.yaml":     {Data: []byte("name: x\n"), ModTime: mod},
		"articles.json": {Data: []byte("[]"), ModTime: mod},
		"notes.txt":     {Data: []byte("ignored")},
	}
	report := &validate.Report{Issues: []validate.Issue{
		{Severity: validate.SeverityWarning, Where: "site", Message: "no phone"},
	}}
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	m, err := BuildManifest(fsys, "/srv/content", report, now)
	require.NoError(t, err)

	assert.Equal(t, now, m.Timestamp)
	assert.Equal(t, "/srv/content", m.Source)
	require.Len(t, m.Files, 2, "only content collections are listed")
	assert.Equal(t, "site.yaml", m.Files[0].Path, "files follow collection order")
	assert.Equal(t, int64(8), m.Files[0].Size)
	require.NotNil(t, m.Files[0].Modified)
	assert.Equal(t, mod, *m.Files[0].Modified)
	assert.Equal(t, ManifestChecks{Passed: true, Errors: 0, Warnings: 1}, m.Checks)
}

func TestSaveManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "build-manifest.json")
	m := Manifest{
		Timestamp: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Source:    "<embedded>",
		Files:     []ManifestFile{{Path: "site.yaml", Size: 10}},
		Checks:    ManifestChecks{Passed: true},
	}
	require.NoError(t, SaveManifest(m, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "modified", "unknown mod times are left out")

	var back Manifest
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, m.Source, back.Source)
	assert.True(t, back.Checks.Passed)
}
