// Package markup converts the HTML article bodies into Markdown for the
// terminal renderer, and into plain text for summaries.
package markup

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/vanderheijden86/mahar/pkg/metrics"
)

// ToMarkdown converts an HTML fragment to Markdown. Inline styles and
// unknown elements are dropped; their text is kept.
func ToMarkdown(src string) (string, error) {
	defer metrics.Timer(metrics.MarkupConvert)()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return "", fmt.Errorf("parse article body: %w", err)
	}
	var blocks []string
	collectBlocks(doc.Find("body").Contents(), &blocks)
	return strings.Join(blocks, "\n\n"), nil
}

// Plain returns the text of an HTML fragment with whitespace collapsed.
func Plain(src string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return collapse(src)
	}
	return collapse(doc.Text())
}

func collectBlocks(sel *goquery.Selection, out *[]string) {
	sel.Each(func(_ int, n *goquery.Selection) {
		switch name := goquery.NodeName(n); name {
		case "p":
			appendBlock(out, inline(n))
		case "h1", "h2", "h3", "h4", "h5", "h6":
			level := int(name[1] - '0')
			appendBlock(out, strings.Repeat("#", level)+" "+inline(n))
		case "ul", "ol":
			appendBlock(out, list(n, name == "ol"))
		case "blockquote":
			var inner []string
			collectBlocks(n.Contents(), &inner)
			if len(inner) == 0 {
				return
			}
			lines := strings.Split(strings.Join(inner, "\n\n"), "\n")
			for i, l := range lines {
				lines[i] = strings.TrimRight("> "+l, " ")
			}
			*out = append(*out, strings.Join(lines, "\n"))
		case "hr":
			*out = append(*out, "---")
		case "div", "section", "article", "main", "header", "footer":
			collectBlocks(n.Contents(), out)
		case "#text":
			appendBlock(out, collapse(n.Text()))
		case "script", "style", "#comment":
		default:
			appendBlock(out, inline(n))
		}
	})
}

func appendBlock(out *[]string, s string) {
	s = strings.TrimSpace(s)
	if strings.Trim(s, "# ") == "" {
		return
	}
	*out = append(*out, s)
}

func list(n *goquery.Selection, ordered bool) string {
	var items []string
	n.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		text := strings.TrimSpace(inline(li))
		if text == "" {
			return
		}
		marker := "- "
		if ordered {
			marker = fmt.Sprintf("%d. ", len(items)+1)
		}
		items = append(items, marker+text)
	})
	return strings.Join(items, "\n")
}

func inline(sel *goquery.Selection) string {
	var b strings.Builder
	sel.Contents().Each(func(_ int, n *goquery.Selection) {
		switch goquery.NodeName(n) {
		case "#text":
			b.WriteString(collapseKeepEdges(n.Text()))
		case "strong", "b":
			b.WriteString(wrap(inline(n), "**"))
		case "em", "i":
			b.WriteString(wrap(inline(n), "_"))
		case "code":
			b.WriteString(wrap(n.Text(), "`"))
		case "a":
			text := strings.TrimSpace(inline(n))
			href, ok := n.Attr("href")
			if !ok || href == "" || href == "#" {
				b.WriteString(text)
				return
			}
			if text == "" {
				text = href
			}
			b.WriteString("[" + text + "](" + href + ")")
		case "br":
			b.WriteString("  \n")
		case "img", "script", "style", "#comment":
		default:
			b.WriteString(inline(n))
		}
	})
	return b.String()
}

// wrap surrounds the trimmed text with marker, keeping outer spaces outside
// so the Markdown emphasis stays valid.
func wrap(s, marker string) string {
	t := strings.TrimSpace(s)
	if t == "" {
		return s
	}
	lead := s[:strings.Index(s, t)]
	trail := s[len(lead)+len(t):]
	return lead + marker + t + marker + trail
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// collapseKeepEdges collapses inner whitespace but keeps a single space at
// either edge so adjacent inline elements stay separated.
func collapseKeepEdges(s string) string {
	if strings.TrimSpace(s) == "" {
		if s == "" {
			return ""
		}
		return " "
	}
	out := collapse(s)
	if strings.TrimLeft(s, " \t\r\n") != s {
		out = " " + out
	}
	if strings.TrimRight(s, " \t\r\n") != s {
		out += " "
	}
	return out
}
