package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

// Scraper pulls roadmap and whitepaper content off the project website so
// the matching Discord channels stay in sync with the dev team's pages.
type Scraper struct {
	siteURL string
	http    *http.Client
	policy  *bluemonday.Policy
}

func New(siteURL string) *Scraper {
	return &Scraper{
		siteURL: strings.TrimRight(siteURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		policy:  bluemonday.StrictPolicy(),
	}
}

func (sc *Scraper) SiteURL() string { return sc.siteURL }

// Fetch retrieves and parses a page under the site root.
func (sc *Scraper) Fetch(ctx context.Context, path string) (*html.Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sc.siteURL+path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := sc.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("fetch %s: status %d", path, resp.StatusCode)
	}
	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

// RoadmapItems extracts the roadmap list entries that carry a status marker.
func (sc *Scraper) RoadmapItems(doc *html.Node) []string {
	var items []string
	for _, li := range findAll(doc, "li") {
		text := sc.clean(nodeText(li))
		if strings.Contains(text, "✅") || strings.Contains(text, "⏳") || strings.Contains(text, "🔄") {
			items = append(items, text)
		}
	}
	return items
}

// Section is one whitepaper heading with its leading prose.
type Section struct {
	Title string
	Body  string
}

// WhitepaperSections summarizes the whitepaper page as heading → first
// meaningful paragraphs, capped at six sections.
func (sc *Scraper) WhitepaperSections(doc *html.Node) []Section {
	var sections []Section
	for _, header := range findAll(doc, "h2", "h3") {
		title := sc.clean(nodeText(header))
		if len(title) < 3 || strings.Contains(title, "Menu") {
			continue
		}

		var body strings.Builder
		for node := header.NextSibling; node != nil; node = node.NextSibling {
			if node.Type != html.ElementNode {
				continue
			}
			if node.Data == "h2" || node.Data == "h3" {
				break
			}
			if node.Data == "p" {
				text := sc.clean(nodeText(node))
				if len(text) > 30 {
					body.WriteString(text)
					body.WriteString("\n\n")
					if body.Len() > 300 {
						break
					}
				}
			}
		}

		if body.Len() > 0 {
			sections = append(sections, Section{Title: title, Body: body.String()})
			if len(sections) >= 6 {
				break
			}
		}
	}
	return sections
}

// clean strips any markup that survived text extraction.
func (sc *Scraper) clean(s string) string {
	return strings.TrimSpace(sc.policy.Sanitize(s))
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

// findAll returns elements with any of the given tag names in document order.
func findAll(doc *html.Node, tags ...string) []*html.Node {
	want := make(map[string]bool, len(tags))
	for _, t := range tags {
		want[t] = true
	}

	var out []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && want[node.Data] {
			out = append(out, node)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return out
}
