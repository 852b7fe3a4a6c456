// Package goquery implements ddexmap.Extractor using goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/musictechlab/ddexmap"
	"golang.org/x/net/html"
)

// TextSelector lists the elements whose text feeds the scoring corpus.
const TextSelector = "title,h1,h2,h3,code,strong,em,p,li"

// MaxFragmentLength is the number of characters kept from each element.
const MaxFragmentLength = 300

// Ensure Extractor implements ddexmap.Extractor at compile time.
var _ ddexmap.Extractor = (*Extractor)(nil)

// Extractor collects allow-listed links and a condensed text corpus from
// documentation pages.
type Extractor struct {
	allowed ddexmap.DomainSet
}

// NewExtractor creates an Extractor that keeps links within allowed.
func NewExtractor(allowed ddexmap.DomainSet) *Extractor {
	return &Extractor{allowed: allowed}
}

// Extract parses html and returns its outbound links and scoring text.
// Links are normalized against baseURL; duplicates are kept in document order.
func (e *Extractor) Extract(baseURL string, html string) (*ddexmap.Extraction, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, ddexmap.Errorf(ddexmap.EINVALID, "failed to parse HTML: %v", err)
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		u := ddexmap.NormalizeURL(baseURL, href)
		if u == "" || !e.allowed.Allows(u) {
			return
		}
		links = append(links, u)
	})

	var parts []string
	doc.Find(TextSelector).Each(func(_ int, sel *goquery.Selection) {
		txt := selectionText(sel)
		if txt == "" {
			return
		}
		parts = append(parts, truncate(txt, MaxFragmentLength))
	})

	return &ddexmap.Extraction{
		Links: links,
		Text:  strings.Join(parts, "\n"),
	}, nil
}

// selectionText joins the trimmed text nodes under sel with single spaces,
// skipping empty nodes, comments and script content.
func selectionText(sel *goquery.Selection) string {
	var words []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if s := strings.TrimSpace(n.Data); s != "" {
				words = append(words, s)
			}
			return
		case html.ElementNode:
			switch n.Data {
			case "script", "style", "template":
				return
			}
		case html.CommentNode:
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.Join(words, " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
