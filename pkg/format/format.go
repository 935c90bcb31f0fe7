// Package format renders contact details, dates and short texts for display.
package format

import (
	"strings"
	"time"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// DefaultDateLayout is the day.month.year layout used across the site.
const DefaultDateLayout = "DD.MM.YY"

// Phone formats a 10-digit number as XXX-XXX-XXXX. Anything else is
// returned unchanged.
func Phone(phone string) string {
	digits := Digits(phone)
	if len(digits) != 10 {
		return phone
	}
	return digits[:3] + "-" + digits[3:6] + "-" + digits[6:]
}

// Digits strips everything but ASCII digits.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

var inputLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04",
	"02.01.2006",
	"2.1.2006",
}

// Date reformats date using a layout made of DD, MM, YY and YYYY tokens.
// Dates that cannot be parsed are returned unchanged.
func Date(date, layout string) string {
	if date == "" {
		return ""
	}
	if layout == "" {
		layout = DefaultDateLayout
	}
	for _, in := range inputLayouts {
		t, err := time.Parse(in, strings.TrimSpace(date))
		if err == nil {
			return DateOf(t, layout)
		}
	}
	return date
}

// DateOf renders t with the token layout.
func DateOf(t time.Time, layout string) string {
	r := strings.NewReplacer(
		"YYYY", t.Format("2006"),
		"DD", t.Format("02"),
		"MM", t.Format("01"),
		"YY", t.Format("06"),
	)
	return r.Replace(layout)
}

// Truncate shortens text to at most width display cells, ending in suffix.
func Truncate(text string, width int, suffix string) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) <= width {
		return text
	}
	sw := runewidth.StringWidth(suffix)
	if sw >= width {
		return runewidth.Truncate(suffix, width, "")
	}
	return strings.TrimRightFunc(runewidth.Truncate(text, width-sw, ""), unicode.IsSpace) + suffix
}
