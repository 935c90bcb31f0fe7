package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/vanderheijden86/mahar/pkg/route"
)

// keyMap lists the bindings shown in the help overlay. Update dispatches on
// msg.String(); the bindings here document those keys.
type keyMap struct {
	Pages    key.Binding
	Legal    key.Binding
	Back     key.Binding
	Focus    key.Binding
	Help     key.Binding
	Quit     key.Binding
	Slides   key.Binding
	GoTo     key.Binding
	Quotes   key.Binding
	Chips    key.Binding
	Select   key.Binding
	Open     key.Binding
	Paginate key.Binding
	Copy     key.Binding
	Toggle   key.Binding
}

var keys = keyMap{
	Pages:    key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6"), key.WithHelp("1-6", "pages")),
	Legal:    key.NewBinding(key.WithKeys("t", "p", "a"), key.WithHelp("t/p/a", "terms/privacy/accessibility")),
	Back:     key.NewBinding(key.WithKeys("b", "backspace"), key.WithHelp("b", "back")),
	Focus:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Slides:   key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "gallery")),
	GoTo:     key.NewBinding(key.WithKeys("g"), key.WithHelp("g 1-9", "go to slide")),
	Quotes:   key.NewBinding(key.WithKeys("[", "]"), key.WithHelp("[/]", "testimonials")),
	Chips:    key.NewBinding(key.WithKeys("h", "l"), key.WithHelp("h/l", "filter")),
	Select:   key.NewBinding(key.WithKeys("j", "k", "up", "down"), key.WithHelp("j/k", "select")),
	Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Paginate: key.NewBinding(key.WithKeys("n", "N"), key.WithHelp("n/N", "page")),
	Copy:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy link")),
	Toggle:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "toggle")),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pages, k.Back, k.Focus, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pages, k.Legal, k.Back, k.Focus, k.Help, k.Quit},
		{k.Slides, k.GoTo, k.Quotes},
		{k.Chips, k.Select, k.Open, k.Paginate, k.Copy, k.Toggle},
	}
}

// navItem is one navbar entry.
type navItem struct {
	Label string
	Path  string
}

var navItems = []navItem{
	{"דף הבית", route.PathHome},
	{"הצוות", route.PathTeam},
	{"השיטה", route.PathMethod},
	{"מאמרים", route.PathArticles},
	{"צור קשר", route.PathContact},
	{"שאלות נפוצות", route.PathFAQ},
}

var legalItems = []navItem{
	{"תקנון", route.PathTerms},
	{"פרטיות", route.PathPrivacy},
	{"נגישות", route.PathAccessibility},
}

var legalPaths = map[string]string{
	"t": route.PathTerms,
	"p": route.PathPrivacy,
	"a": route.PathAccessibility,
}
