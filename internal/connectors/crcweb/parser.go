package crcweb

import (
	"fmt"
	"io"
	"net/url"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/custodia-labs/crc-harvest/internal/core/domain"
)

const reportClass = "report2"

// Table schemas, keyed by the labels of a table's first row.
var (
	intervalLabels    = []string{"Min Depth", "Max Depth", "Age", "Formation"}
	thinSectionLabels = []string{"Sequence", "Min Depth", "Max Depth", "View"}
)

// Anchor titles marking downloadable content.
const (
	photoTitle    = "see photo"
	documentTitle = "download analysis document"
)

// Parse extracts the detail page contents. Relative links are resolved
// against pageURL.
func Parse(r io.Reader, pageURL string) (*domain.DetailPage, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse page url: %w", err)
	}

	page := &domain.DetailPage{}
	p := parser{base: base}

	walk(doc, func(n *html.Node) bool {
		if !hasClass(n, reportClass) {
			return true
		}
		switch n.DataAtom {
		case atom.Table:
			p.table(n, page)
		case atom.Div:
			p.links(n, page)
		}
		return true
	})

	return page, nil
}

type parser struct {
	base      *url.URL
	seenLinks map[string]bool
}

// table reads one report table into the page when its labels match a schema.
func (p *parser) table(t *html.Node, page *domain.DetailPage) {
	rows := tableRows(t)
	if len(rows) == 0 {
		return
	}

	var labels []string
	for _, cell := range children(rows[0], atom.Td) {
		if hasClass(cell, "label") {
			labels = append(labels, strings.TrimSpace(textContent(cell)))
		}
	}

	var target *[]map[string]string
	switch {
	case slices.Equal(labels, intervalLabels):
		target = &page.Intervals
	case slices.Equal(labels, thinSectionLabels):
		target = &page.ThinSections
	default:
		return
	}

	for _, row := range rows[1:] {
		entry := make(map[string]string, len(labels))
		for i, cell := range children(row, atom.Td) {
			if i >= len(labels) {
				break
			}
			entry[labels[i]] = p.cellValue(cell)
		}
		if len(entry) > 0 {
			*target = append(*target, entry)
		}
	}
}

// cellValue is the cell's first link target, or its trimmed text.
func (p *parser) cellValue(cell *html.Node) string {
	if a := find(cell, atom.A); a != nil {
		return p.resolve(attr(a, "href"))
	}
	return strings.TrimSpace(textContent(cell))
}

// links collects photo and document anchors, de-duplicated in page order.
func (p *parser) links(div *html.Node, page *domain.DetailPage) {
	walk(div, func(n *html.Node) bool {
		if n.DataAtom != atom.A {
			return true
		}
		href := attr(n, "href")
		if href == "" {
			return false
		}
		var target *[]string
		switch strings.TrimSpace(attr(n, "title")) {
		case photoTitle:
			target = &page.Photos
		case documentTitle:
			target = &page.Documents
		default:
			return false
		}
		link := p.resolve(href)
		if p.seenLinks == nil {
			p.seenLinks = map[string]bool{}
		}
		if !p.seenLinks[link] {
			p.seenLinks[link] = true
			*target = append(*target, link)
		}
		return false
	})
}

func (p *parser) resolve(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return p.base.ResolveReference(ref).String()
}

// walk visits n and its descendants depth first. Returning false from
// visit skips the node's children.
func walk(n *html.Node, visit func(*html.Node) bool) {
	if n.Type == html.ElementNode && !visit(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

// tableRows returns the rows of t, excluding rows of nested tables.
func tableRows(t *html.Node) []*html.Node {
	var rows []*html.Node
	for c := t.FirstChild; c != nil; c = c.NextSibling {
		walk(c, func(n *html.Node) bool {
			switch n.DataAtom {
			case atom.Table:
				return false
			case atom.Tr:
				rows = append(rows, n)
				return false
			}
			return true
		})
	}
	return rows
}

// children returns the direct element children of n with atom a.
func children(n *html.Node, a atom.Atom) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == a {
			out = append(out, c)
		}
	}
	return out
}

// find returns the first descendant element with atom a.
func find(n *html.Node, a atom.Atom) *html.Node {
	var found *html.Node
	for c := n.FirstChild; c != nil && found == nil; c = c.NextSibling {
		walk(c, func(d *html.Node) bool {
			if found != nil {
				return false
			}
			if d.DataAtom == a {
				found = d
				return false
			}
			return true
		})
	}
	return found
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	return slices.Contains(strings.Fields(attr(n, "class")), class)
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return b.String()
}
