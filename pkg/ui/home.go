package ui

import (
	"fmt"
	"path"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/mahar/pkg/format"
	"github.com/vanderheijden86/mahar/pkg/model"
	"github.com/vanderheijden86/mahar/pkg/route"
)

func (m *Model) handleHomeKey(k string) bool {
	switch k {
	case "left":
		m.gallery.Previous()
	case "right":
		m.gallery.Next()
	case "g":
		m.gotoPending = !m.gallery.Inert()
	case "[":
		m.testimonials.PreviousPage()
	case "]":
		m.testimonials.NextPage()
	default:
		return false
	}
	return true
}

func (m Model) renderHome() string {
	t := m.theme
	site := m.content.Site
	w := m.contentWidth()
	var b strings.Builder

	name := site.Name
	if name == "" {
		name = "מחר מלחמה"
	}
	b.WriteString(t.Title.Render(name))
	b.WriteString("\n")
	if site.Description != "" {
		b.WriteString(site.Description + "\n")
	}
	if site.NextCycleDate != "" {
		b.WriteString(t.Heading.Render("המחזור הבא נפתח ב-" + site.NextCycleDate))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(m.content.Features) > 0 {
		cards := make([]string, 0, len(m.content.Features))
		cw := m.columnWidth(len(m.content.Features))
		for _, f := range m.content.Features {
			body := t.Heading.Render(f.Title) + "\n" + format.Truncate(f.Description, cw*3, "…")
			cards = append(cards, t.Card.Width(cw).Render(body))
		}
		b.WriteString(m.layoutCards(cards))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderGallery())
	b.WriteString("\n\n")
	b.WriteString(m.renderTestimonials())

	if len(m.home) > 0 {
		b.WriteString("\n\n")
		b.WriteString(t.Heading.Render("מהבלוג"))
		b.WriteString("\n")
		for _, a := range m.home {
			b.WriteString(fmt.Sprintf("• %s  %s\n", a.Title, t.MutedText.Render(route.Build(route.PathArticleDetail, a.ID))))
			if a.Description != "" {
				b.WriteString("  " + format.Truncate(a.Description, w-2, "…") + "\n")
			}
		}
	}
	return b.String()
}

func (m Model) renderGallery() string {
	t := m.theme
	s := m.gallery.State()
	if s.Total == 0 {
		return t.MutedText.Render("אין תמונות בגלריה")
	}
	img, _ := m.gallery.Current()
	status := fmt.Sprintf("%d / %d", s.Index+1, s.Total)
	if s.Paused {
		status += "  (מושהה)"
	}
	frame := t.Card.Width(min(60, m.contentWidth())).Render(
		t.Heading.Render("גלריה") + "\n" + path.Base(img) + "\n" + t.MutedText.Render(status),
	)
	return frame + "\n" + t.dots(s.Index, s.Total)
}

func (m Model) renderTestimonials() string {
	t := m.theme
	if m.testimonials.Len() == 0 {
		return ""
	}
	slots := m.testimonials.Slots()
	cw := m.columnWidth(len(slots))
	cards := make([]string, 0, len(slots))
	for _, s := range slots {
		if s.Empty {
			cards = append(cards, lipgloss.NewStyle().Width(cw+2).Render(""))
			continue
		}
		cards = append(cards, t.Card.Width(cw).Render(testimonialCard(t, s.Item, cw-2)))
	}
	nav := fmt.Sprintf("עמוד %d מתוך %d", m.testimonials.PageIndex()+1, m.testimonials.MaxPageIndex()+1)
	prev, next := "[ הקודם", "הבא ]"
	if !m.testimonials.CanPrevious() {
		prev = t.MutedText.Render(prev)
	}
	if !m.testimonials.CanNext() {
		next = t.MutedText.Render(next)
	}
	return t.Heading.Render("מה אומרים עלינו") + "\n" +
		m.layoutCards(cards) + "\n" +
		prev + "  " + nav + "  " + next
}

func testimonialCard(t Theme, q model.Testimonial, width int) string {
	head := q.Name
	if q.Unit != "" {
		head += " · " + q.Unit
	}
	return t.Quote.Width(width).Render("\""+q.Quote+"\"") + "\n" + t.MutedText.Render(head)
}

// columnWidth divides the content width between n cards, falling back to a
// single column on narrow terminals.
func (m Model) columnWidth(n int) int {
	w := m.contentWidth()
	if m.bp.Narrow() || n <= 1 {
		return max(10, w-4)
	}
	return max(10, w/n-4)
}

func (m Model) layoutCards(cards []string) string {
	if m.bp.Narrow() {
		return lipgloss.JoinVertical(lipgloss.Left, cards...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}
