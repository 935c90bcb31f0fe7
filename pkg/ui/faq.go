package ui

import (
	"strings"
)

func (m *Model) handleFAQKey(k string) bool {
	n := len(m.content.FAQs)
	switch k {
	case "j", "down":
		m.faqCursor = max(0, min(n-1, m.faqCursor+1))
	case "k", "up":
		m.faqCursor = max(0, m.faqCursor-1)
	case "enter", " ":
		m.faq.Toggle(m.faqCursor)
	default:
		return false
	}
	return true
}

func (m Model) renderFAQ() string {
	t := m.theme
	var b strings.Builder
	b.WriteString(t.Title.Render("שאלות נפוצות"))
	b.WriteString("\n")
	if len(m.content.FAQs) == 0 {
		b.WriteString(t.MutedText.Render("אין שאלות להצגה."))
		return b.String()
	}
	for i, qa := range m.content.FAQs {
		marker := "+"
		if m.faq.IsOpen(i) {
			marker = "−"
		}
		q := marker + " " + qa.Question
		if i == m.faqCursor && m.focus == focusMain {
			b.WriteString(t.Selected.Render(q))
		} else {
			b.WriteString("  " + q)
		}
		b.WriteString("\n")
		if m.faq.IsOpen(i) {
			answer := t.Base.Width(max(10, m.contentWidth()-4)).Render(qa.Answer)
			b.WriteString("    " + strings.ReplaceAll(answer, "\n", "\n    "))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}
