package ui

import (
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
)

// TermProfile holds the detected terminal color profile. Computed once at
// package init so every style helper can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// ThemeBg returns the given hex color for TrueColor terminals and
// lipgloss.NoColor{} otherwise, so 16/256-color terminals keep their own
// background.
func ThemeBg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.TrueColor {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(hex)
}

// ThemeFg returns the given hex color for ANSI256+ terminals and ANSI white
// (color 7) for 16-color or lower terminals.
func ThemeFg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.ANSI256 {
		return lipgloss.ANSIColor(7)
	}
	return lipgloss.Color(hex)
}

// Theme is the set of styles the site browser renders with.
type Theme struct {
	Renderer *lipgloss.Renderer

	Primary lipgloss.AdaptiveColor // Brand olive
	Accent  lipgloss.AdaptiveColor // Call to action
	Subtext lipgloss.AdaptiveColor
	Border  lipgloss.AdaptiveColor
	Muted   lipgloss.AdaptiveColor

	Base      lipgloss.Style
	Brand     lipgloss.Style // Site name in the navbar
	NavItem   lipgloss.Style
	NavActive lipgloss.Style
	NavCursor lipgloss.Style // Nav item under the cursor while the navbar has focus
	Title     lipgloss.Style // Page heading
	Heading   lipgloss.Style // Section heading
	Chip      lipgloss.Style
	ChipOn    lipgloss.Style
	Selected  lipgloss.Style
	Card      lipgloss.Style
	Quote     lipgloss.Style
	MutedText lipgloss.Style
	Footer    lipgloss.Style
	Status    lipgloss.Style
	StatusErr lipgloss.Style
	Dot       lipgloss.Style
	DotOn     lipgloss.Style
}

// DefaultTheme returns the adaptive site theme.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,

		Primary: lipgloss.AdaptiveColor{Light: "#4B5320", Dark: "#A3B46C"},
		Accent:  lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"},
		Subtext: lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BFBFBF"},
		Border:  lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#44475A"},
		Muted:   lipgloss.AdaptiveColor{Light: "#666666", Dark: "#6272A4"},
	}

	t.Base = r.NewStyle().Foreground(ColorText)
	t.Brand = r.NewStyle().Foreground(t.Primary).Bold(true).Padding(0, 1)
	t.NavItem = r.NewStyle().Foreground(t.Subtext).Padding(0, 1)
	t.NavActive = r.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1F29"}).
		Background(t.Primary).
		Bold(true).
		Padding(0, 1)
	t.NavCursor = t.NavItem.Underline(true).Foreground(t.Accent)
	t.Title = r.NewStyle().Foreground(t.Primary).Bold(true).MarginBottom(1)
	t.Heading = r.NewStyle().Foreground(t.Accent).Bold(true)
	t.Chip = r.NewStyle().Foreground(t.Subtext).Padding(0, 1)
	t.ChipOn = r.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1F29"}).
		Background(t.Accent).
		Padding(0, 1)
	t.Selected = r.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(t.Accent).
		PaddingLeft(1).
		Bold(true)
	t.Card = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)
	t.Quote = r.NewStyle().Italic(true).Foreground(ColorText)
	t.MutedText = r.NewStyle().Foreground(t.Muted)
	t.Footer = r.NewStyle().Foreground(t.Subtext).
		Border(lipgloss.NormalBorder(), true, false, false, false).
		BorderForeground(t.Border)
	t.Status = r.NewStyle().Foreground(ColorSuccess)
	t.StatusErr = r.NewStyle().Foreground(ColorDanger).Bold(true)
	t.Dot = r.NewStyle().Foreground(t.Muted)
	t.DotOn = r.NewStyle().Foreground(t.Accent).Bold(true)
	return t
}

// TestTheme returns a theme suitable for use in tests.
func TestTheme() Theme {
	return DefaultTheme(lipgloss.NewRenderer(os.Stdout))
}
