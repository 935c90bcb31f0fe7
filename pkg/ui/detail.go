package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/mahar/pkg/articles"
	"github.com/vanderheijden86/mahar/pkg/route"
)

// ArticleLink returns the shareable web link for an article path. Without
// a base URL the hash location alone is returned.
func ArticleLink(baseURL, path string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	return base + "/#" + path
}

func (m *Model) handleDetailKey(k string) (bool, tea.Cmd) {
	if k != "c" {
		return false, nil
	}
	a, ok := articles.Find(m.content.Articles, m.detailID)
	if !ok {
		return true, nil
	}
	link := ArticleLink(m.content.Site.BaseURL, route.Build(route.PathArticleDetail, a.ID))
	clip := m.clipboard
	return true, func() tea.Msg {
		return copyResultMsg{link: link, err: clip(link)}
	}
}

func (m Model) renderDetail() string {
	t := m.theme
	a, ok := articles.Find(m.content.Articles, m.detailID)
	if !ok {
		return t.Title.Render("מאמר לא נמצא") + "\n" +
			t.MutedText.Render("חזרה לבלוג: 4")
	}

	var b strings.Builder
	b.WriteString(t.MutedText.Render("→ חזרה לבלוג (4)"))
	b.WriteString("\n\n")
	b.WriteString(t.Title.Render(a.Title))
	b.WriteString("\n")

	var meta []string
	for _, s := range []string{a.Date, a.ReadTime} {
		if s != "" {
			meta = append(meta, s)
		}
	}
	if len(meta) > 0 {
		b.WriteString(t.MutedText.Render(strings.Join(meta, " · ")))
		b.WriteString("\n")
	}

	tags := []string{}
	if a.Category != "" {
		tags = append(tags, a.Category)
	}
	tags = append(tags, a.OtherTags(3)...)
	if len(tags) > 0 {
		b.WriteString(t.chips(tags, a.Category, -1, false))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case a.Body != "":
		b.WriteString(m.md.RenderHTML(a.Body))
	case a.Description != "":
		b.WriteString(a.Description)
	}
	b.WriteString("\n\n")
	b.WriteString(t.MutedText.Render("c: העתקת קישור למאמר"))
	return b.String()
}
