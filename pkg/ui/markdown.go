package ui

import (
	"bytes"
	"embed"
	"strings"
	"text/template"

	"github.com/charmbracelet/glamour"

	"github.com/vanderheijden86/mahar/pkg/debug"
	"github.com/vanderheijden86/mahar/pkg/format"
	"github.com/vanderheijden86/mahar/pkg/markup"
	"github.com/vanderheijden86/mahar/pkg/model"
)

//go:embed pages/*.md
var pageFS embed.FS

var pageTemplates = template.Must(template.ParseFS(pageFS, "pages/*.md"))

// MarkdownRenderer renders Markdown with glamour at a fixed word wrap,
// rebuilding the glamour renderer when the width changes.
type MarkdownRenderer struct {
	style string
	width int
	tr    *glamour.TermRenderer
}

// NewMarkdownRenderer returns a renderer. An empty style detects the
// terminal background.
func NewMarkdownRenderer(style string, width int) *MarkdownRenderer {
	r := &MarkdownRenderer{style: style}
	r.SetWidth(width)
	return r
}

// SetWidth changes the word wrap width.
func (r *MarkdownRenderer) SetWidth(width int) {
	width = max(20, width)
	if r.tr != nil && width == r.width {
		return
	}
	styleOpt := glamour.WithAutoStyle()
	if r.style != "" {
		styleOpt = glamour.WithStandardStyle(r.style)
	}
	tr, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		debug.Warn("ui: glamour renderer: %v", err)
		tr = nil
	}
	r.tr = tr
	r.width = width
}

// Render renders md, falling back to the raw text on error.
func (r *MarkdownRenderer) Render(md string) string {
	if r.tr == nil {
		return md
	}
	out, err := r.tr.Render(md)
	if err != nil {
		debug.Warn("ui: rendering markdown: %v", err)
		return md
	}
	return strings.Trim(out, "\n")
}

// RenderHTML converts an HTML article body and renders it.
func (r *MarkdownRenderer) RenderHTML(body string) string {
	md, err := markup.ToMarkdown(body)
	if err != nil {
		debug.Warn("ui: converting article body: %v", err)
		return markup.Plain(body)
	}
	return r.Render(md)
}

type pageData struct {
	Name  string
	Email string
	Phone string
}

// legalPage renders one of the embedded legal pages with the site's contact
// details filled in.
func legalPage(name string, site model.Site) string {
	data := pageData{
		Name:  site.Name,
		Email: site.Contact.Email,
		Phone: format.Phone(site.Contact.Phone),
	}
	if data.Name == "" {
		data.Name = "מחר מלחמה"
	}
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name+".md", data); err != nil {
		debug.Warn("ui: page %s: %v", name, err)
		return ""
	}
	return buf.String()
}
