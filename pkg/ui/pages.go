package ui

import (
	"strings"

	"github.com/vanderheijden86/mahar/pkg/model"
)

func (m Model) renderTeam() string {
	t := m.theme
	var b strings.Builder
	b.WriteString(t.Title.Render("הצוות"))
	b.WriteString("\n")
	if len(m.content.Team) == 0 {
		b.WriteString(t.MutedText.Render("פרטי הצוות יעודכנו בקרוב."))
		return b.String()
	}
	cw := m.columnWidth(2)
	cards := make([]string, 0, len(m.content.Team))
	for _, p := range m.content.Team {
		cards = append(cards, t.Card.Width(cw).Render(teamCard(t, p, cw-2)))
	}
	b.WriteString(m.layoutGrid(cards, 2))
	return b.String()
}

func teamCard(t Theme, p model.TeamMember, width int) string {
	var lines []string
	lines = append(lines, t.Heading.Render(p.Name))
	role := p.Role
	if p.Unit != "" {
		role = strings.TrimSpace(role + " · " + p.Unit)
	}
	if role != "" {
		lines = append(lines, t.MutedText.Render(role))
	}
	if p.Bio != "" {
		lines = append(lines, t.Base.Width(width).Render(p.Bio))
	}
	if len(p.Badges) > 0 {
		lines = append(lines, t.chips(p.Badges, "", -1, false))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderMethod() string {
	t := m.theme
	var b strings.Builder
	b.WriteString(t.Title.Render("השיטה"))
	b.WriteString("\n")
	if len(m.content.Pillars) == 0 {
		b.WriteString(t.MutedText.Render("תיאור השיטה יעודכן בקרוב."))
		return b.String()
	}
	w := max(10, m.contentWidth()-4)
	for _, p := range m.content.Pillars {
		head := p.Title
		if p.Number != "" {
			head = p.Number + "  " + head
		}
		b.WriteString(t.Heading.Render(head))
		b.WriteString("\n")
		if p.Subtitle != "" {
			b.WriteString(t.MutedText.Render(p.Subtitle) + "\n")
		}
		if p.Description != "" {
			b.WriteString(t.Base.Width(w).Render(p.Description) + "\n")
		}
		for _, it := range p.Items {
			b.WriteString("  • " + it + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderLegal(name string) string {
	return m.md.Render(legalPage(name, m.content.Site))
}

func (m Model) renderNotFound() string {
	t := m.theme
	return t.Title.Render("404") + "\n" +
		t.Heading.Render("הדף לא נמצא") + "\n" +
		"הדף שחיפשת לא קיים או הוזז.\n\n" +
		t.MutedText.Render("1: חזרה לדף הבית")
}

// layoutGrid lays cards out in rows of perRow, one per row when narrow.
func (m Model) layoutGrid(cards []string, perRow int) string {
	if m.bp.Narrow() {
		return m.layoutCards(cards)
	}
	var rows []string
	for i := 0; i < len(cards); i += perRow {
		rows = append(rows, m.layoutCards(cards[i:min(len(cards), i+perRow)]))
	}
	return strings.Join(rows, "\n")
}
