package lifecycle

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// domSnapshot is a cleaned rendering of a page's DOM.
type domSnapshot struct {
	Title     string
	Body      string
	Truncated bool
}

var (
	// dropped elements are removed with their subtree
	dropped = map[string]bool{
		"script": true, "style": true, "noscript": true, "template": true,
		"iframe": true, "embed": true, "object": true, "svg": true,
	}

	// blocks start on their own indented line
	blocks = map[string]bool{
		"html": true, "head": true, "body": true,
		"div": true, "p": true, "section": true, "article": true, "header": true,
		"footer": true, "nav": true, "main": true, "aside": true,
		"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
		"ul": true, "ol": true, "li": true, "table": true, "tr": true, "td": true,
		"th": true, "form": true, "fieldset": true, "label": true,
	}

	voids = map[string]bool{
		"area": true, "base": true, "br": true, "col": true, "embed": true,
		"hr": true, "img": true, "input": true, "link": true, "meta": true,
		"param": true, "source": true, "track": true, "wbr": true,
	}

	// locatorAttrs are the attributes page-object selectors are written against
	locatorAttrs = map[string]bool{
		"id": true, "class": true, "name": true, "type": true, "role": true,
		"href": true, "placeholder": true, "value": true, "for": true,
		"aria-label": true, "title": true, "alt": true, "action": true,
	}
)

// cleanDOM parses raw HTML and renders it back without noise, stopping after
// limit characters.
func cleanDOM(raw string, limit int) (*domSnapshot, error) {
	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page content: %w", err)
	}

	w := &domWriter{limit: limit}
	w.walk(doc, 0)
	return &domSnapshot{
		Title:     findTitle(doc),
		Body:      strings.TrimSpace(w.b.String()),
		Truncated: w.truncated,
	}, nil
}

type domWriter struct {
	b         strings.Builder
	limit     int
	truncated bool
}

// write appends markup whole or not at all, so a tag is never cut.
func (w *domWriter) write(s string) {
	if w.truncated {
		return
	}
	if w.b.Len()+len(s) > w.limit {
		w.truncated = true
		return
	}
	w.b.WriteString(s)
}

// writeText escapes and appends text, cutting between characters when it
// does not fit. Entities are never split.
func (w *domWriter) writeText(text string) {
	if w.truncated {
		return
	}
	for _, r := range text {
		escaped := html.EscapeString(string(r))
		if w.b.Len()+len(escaped) > w.limit {
			w.truncated = true
			return
		}
		w.b.WriteString(escaped)
	}
}

func (w *domWriter) walk(n *html.Node, depth int) {
	if w.truncated {
		return
	}

	switch n.Type {
	case html.CommentNode, html.DoctypeNode:
		return
	case html.TextNode:
		if text := strings.TrimSpace(n.Data); text != "" {
			w.writeText(text)
		}
		return
	case html.ElementNode:
		w.element(n, depth)
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c, depth)
	}
}

func (w *domWriter) element(n *html.Node, depth int) {
	tag := strings.ToLower(n.Data)
	if dropped[tag] {
		return
	}

	indent := "\n" + strings.Repeat("  ", depth)
	if blocks[tag] {
		w.write(indent)
	}

	w.write("<" + tag)
	for _, attr := range n.Attr {
		key := strings.ToLower(attr.Key)
		if locatorAttrs[key] || strings.HasPrefix(key, "data-") {
			w.write(fmt.Sprintf(` %s="%s"`, key, html.EscapeString(attr.Val)))
		}
	}
	w.write(">")

	if voids[tag] {
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c, depth+1)
	}

	if blocks[tag] {
		w.write(indent)
	}
	w.write("</" + tag + ">")
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
			return strings.TrimSpace(n.FirstChild.Data)
		}
		return ""
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if title := findTitle(c); title != "" {
			return title
		}
	}
	return ""
}
