package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SpaceSM is the horizontal page margin (in characters).
const SpaceSM = 2

// Adaptive palette for light and dark terminals.
var (
	ColorText    = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#F8F8F2"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}
	ColorDanger  = lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"}
)

// dots renders a slide indicator, e.g. "○ ● ○ ○".
func (t Theme) dots(current, total int) string {
	parts := make([]string, total)
	for i := range parts {
		if i == current {
			parts[i] = t.DotOn.Render("●")
		} else {
			parts[i] = t.Dot.Render("○")
		}
	}
	return strings.Join(parts, " ")
}

// chips renders a row of filter chips with the active one highlighted and
// the cursor one underlined.
func (t Theme) chips(labels []string, active string, cursor int, focused bool) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		s := t.Chip
		if l == active {
			s = t.ChipOn
		}
		if focused && i == cursor {
			s = s.Underline(true)
		}
		parts[i] = s.Render(l)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// rule is a horizontal separator of width w.
func (t Theme) rule(w int) string {
	return t.MutedText.Render(strings.Repeat("─", max(1, w)))
}
