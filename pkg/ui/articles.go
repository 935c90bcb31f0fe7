package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/mahar/pkg/format"
	"github.com/vanderheijden86/mahar/pkg/model"
	"github.com/vanderheijden86/mahar/pkg/route"
)

// visibleArticles lists the selectable articles in display order: the
// featured article, the sidebar, then the current grid page.
func (m Model) visibleArticles() []model.Article {
	var out []model.Article
	if f, ok := m.listing.Featured(); ok {
		out = append(out, f)
	}
	out = append(out, m.listing.Sidebar()...)
	return append(out, m.listing.Page()...)
}

// handleArticlesKey moves focus with the key family used: h/l work on the
// filter chips, j/k on the article list. enter applies the chip under the
// cursor or opens the selected article.
func (m *Model) handleArticlesKey(k string) (bool, tea.Cmd) {
	switch k {
	case "h", "left":
		m.focus = focusChips
		m.chipCursor = max(0, m.chipCursor-1)
	case "l", "right":
		m.focus = focusChips
		m.chipCursor = min(len(m.chips)-1, m.chipCursor+1)
	case "j", "down":
		m.focus = focusMain
		m.articleCursor = min(len(m.visibleArticles())-1, m.articleCursor+1)
		m.articleCursor = max(0, m.articleCursor)
	case "k", "up":
		m.focus = focusMain
		m.articleCursor = max(0, m.articleCursor-1)
	case "n":
		m.listing.NextPage()
		m.clampArticleCursor()
	case "N":
		m.listing.PreviousPage()
		m.clampArticleCursor()
	case "enter":
		if m.focus == focusChips {
			if m.chipCursor < len(m.chips) {
				m.listing.SetFilter(m.chips[m.chipCursor])
				m.articleCursor = 0
			}
			m.focus = focusMain
			return true, nil
		}
		visible := m.visibleArticles()
		if m.articleCursor < len(visible) {
			return true, m.navigate(route.Build(route.PathArticleDetail, visible[m.articleCursor].ID))
		}
	default:
		return false, nil
	}
	return true, nil
}

func (m *Model) clampArticleCursor() {
	m.articleCursor = max(0, min(m.articleCursor, len(m.visibleArticles())-1))
}

func (m Model) renderArticles() string {
	t := m.theme
	w := m.contentWidth()
	var b strings.Builder

	b.WriteString(t.Title.Render("מאמרים"))
	b.WriteString("\n")
	b.WriteString(t.chips(m.chips, m.listing.Filter(), m.chipCursor, m.focus == focusChips))
	b.WriteString("\n\n")

	if len(m.listing.Filtered()) == 0 {
		b.WriteString(t.MutedText.Render("לא נמצאו מאמרים בקטגוריה זו."))
		return b.String()
	}

	cursor := 0
	line := func(a model.Article, wide bool) {
		text := a.Title
		meta := strings.TrimSpace(a.Category + " · " + a.Byline())
		if wide && a.Description != "" {
			text += "\n" + format.Truncate(a.Description, w-4, "…")
		}
		text += "\n" + t.MutedText.Render(meta)
		if m.focus == focusMain && cursor == m.articleCursor {
			b.WriteString(t.Selected.Render(text))
		} else {
			b.WriteString("  " + strings.ReplaceAll(text, "\n", "\n  "))
		}
		b.WriteString("\n")
		cursor++
	}

	if f, ok := m.listing.Featured(); ok {
		b.WriteString(t.Heading.Render("מאמר מוביל"))
		b.WriteString("\n")
		line(f, true)
		b.WriteString("\n")
	}
	if side := m.listing.Sidebar(); len(side) > 0 {
		b.WriteString(t.Heading.Render("עוד מאמרים"))
		b.WriteString("\n")
		for _, a := range side {
			line(a, false)
		}
		b.WriteString("\n")
	}

	from, to, total := m.listing.Range()
	if total > 0 {
		b.WriteString(t.rule(min(w, 40)))
		b.WriteString("\n")
		for _, a := range m.listing.Page() {
			line(a, false)
		}
		b.WriteString("\n")
	}
	b.WriteString(t.MutedText.Render(fmt.Sprintf("מציג %d-%d מתוך %d", from, to, total)))
	if m.listing.TotalPages() > 1 {
		b.WriteString(t.MutedText.Render(fmt.Sprintf("  ·  עמוד %d/%d (n/N)", m.listing.PageIndex(), m.listing.TotalPages())))
	}
	return b.String()
}
