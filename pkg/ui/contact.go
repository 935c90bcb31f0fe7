package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/vanderheijden86/mahar/pkg/format"
	"github.com/vanderheijden86/mahar/pkg/validate"
)

func requiredField(s string) error {
	if !validate.Required(s) {
		return errors.New("שדה חובה")
	}
	return nil
}

func phoneField(s string) error {
	if !validate.Phone(s) {
		return errors.New("מספר טלפון לא תקין")
	}
	return nil
}

func optionalEmail(s string) error {
	if strings.TrimSpace(s) != "" && !validate.Email(s) {
		return errors.New("כתובת אימייל לא תקינה")
	}
	return nil
}

func newContactForm(d *contactDraft, width int) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("שם מלא").
				Value(&d.Name).
				Validate(requiredField),
			huh.NewInput().
				Key("phone").
				Title("טלפון").
				Placeholder("050-0000000").
				Value(&d.Phone).
				Validate(phoneField),
			huh.NewInput().
				Key("email").
				Title("אימייל").
				Value(&d.Email).
				Validate(optionalEmail),
			huh.NewText().
				Key("message").
				Title("הודעה").
				Lines(4).
				Value(&d.Message),
		),
	).WithTheme(huh.ThemeDracula()).WithShowHelp(true).WithWidth(width)
}

func (m Model) renderContact() string {
	t := m.theme
	site := m.content.Site
	var b strings.Builder

	b.WriteString(t.Title.Render("צור קשר"))
	b.WriteString("\n")
	b.WriteString("רוצים להתחיל? השאירו פרטים ונחזור אליכם.\n\n")
	if site.Contact.Phone != "" {
		b.WriteString("טלפון: " + format.Phone(site.Contact.Phone) + "\n")
	}
	if site.Contact.Email != "" {
		b.WriteString("אימייל: " + site.Contact.Email + "\n")
	}
	if site.Contact.WhatsApp != "" {
		b.WriteString("WhatsApp: " + site.Contact.WhatsApp + "\n")
	}
	b.WriteString("\n")

	switch {
	case m.submitting:
		b.WriteString(t.MutedText.Render("שולח..."))
	case m.form != nil:
		b.WriteString(m.form.View())
		if m.focus != focusMain {
			b.WriteString("\n" + t.MutedText.Render("tab: חזרה לטופס"))
		} else {
			b.WriteString("\n" + t.MutedText.Render("esc: יציאה מהטופס"))
		}
	}
	return b.String()
}
