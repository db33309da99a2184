// Package textconv renders job description HTML fragments as markdown or
// plain text. Adapters treat it as a black box: HTML in, text out.
package textconv

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"jobscout/internal/domain"
)

// Render converts an HTML fragment per the requested format. HTML format is
// a pass-through. Conversion failures fall back to the raw input.
func Render(fragment string, format domain.DescriptionFormat) string {
	switch format {
	case domain.FormatPlain:
		return ToPlain(fragment)
	case domain.FormatMarkdown:
		return ToMarkdown(fragment)
	default:
		return fragment
	}
}

// ToPlain strips tags and collapses whitespace, keeping block boundaries as
// newlines.
func ToPlain(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}
	var b strings.Builder
	walkPlain(doc.Selection.Nodes, &b)
	return tidy(b.String())
}

func walkPlain(nodes []*html.Node, b *strings.Builder) {
	for _, n := range nodes {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
		case html.ElementNode:
			if isBlock(n.Data) {
				b.WriteString("\n")
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walkPlain([]*html.Node{c}, b)
			}
			if isBlock(n.Data) {
				b.WriteString("\n")
			}
		default:
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walkPlain([]*html.Node{c}, b)
			}
		}
	}
}

// ToMarkdown does a minimal structural conversion: headings, lists, bold
// and links. Everything else degrades to plain text.
func ToMarkdown(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}
	var b strings.Builder
	walkMarkdown(doc.Selection.Nodes, &b)
	return tidy(b.String())
}

func walkMarkdown(nodes []*html.Node, b *strings.Builder) {
	for _, n := range nodes {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
		case html.ElementNode:
			switch n.Data {
			case "h1", "h2", "h3", "h4", "h5", "h6":
				b.WriteString("\n\n" + strings.Repeat("#", int(n.Data[1]-'0')) + " ")
				walkChildren(n, b)
				b.WriteString("\n\n")
			case "li":
				b.WriteString("\n- ")
				walkChildren(n, b)
			case "strong", "b":
				b.WriteString("**")
				walkChildren(n, b)
				b.WriteString("**")
			case "em", "i":
				b.WriteString("*")
				walkChildren(n, b)
				b.WriteString("*")
			case "a":
				href := attr(n, "href")
				if href == "" {
					walkChildren(n, b)
					break
				}
				b.WriteString("[")
				walkChildren(n, b)
				b.WriteString("](" + href + ")")
			case "br":
				b.WriteString("\n")
			case "p", "div", "ul", "ol", "section", "table", "tr":
				b.WriteString("\n")
				walkChildren(n, b)
				b.WriteString("\n")
			case "script", "style":
				// skip
			default:
				walkChildren(n, b)
			}
		default:
			walkChildren(n, b)
		}
	}
}

func walkChildren(n *html.Node, b *strings.Builder) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkMarkdown([]*html.Node{c}, b)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func isBlock(tag string) bool {
	switch tag {
	case "p", "div", "br", "li", "ul", "ol", "h1", "h2", "h3", "h4", "h5", "h6", "section", "tr", "table":
		return true
	}
	return false
}

func tidy(s string) string {
	lines := strings.Split(s, "\n")
	var out []string
	blank := 0
	for _, ln := range lines {
		ln = strings.TrimRight(strings.Join(strings.Fields(ln), " "), " ")
		if ln == "" {
			blank++
			if blank > 1 {
				continue
			}
		} else {
			blank = 0
		}
		out = append(out, ln)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
