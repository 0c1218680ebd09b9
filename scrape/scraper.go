// Package scrape fetches webpages and extracts their title and text
// sections. It is thin I/O glue in front of the scoring pipeline: the
// output is an ordered sequence of raw text sections, one per content
// element, in document order.
package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/poiesic/pagesim/core"
)

// defaultTimeout bounds the whole fetch including connection setup.
const defaultTimeout = 30 * time.Second

// sectionTags are the HTML elements whose text becomes a section.
var sectionTags = map[string]bool{
	"p": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "div": true, "section": true,
	"article": true, "li": true,
}

// Scraper retrieves webpages over HTTP and extracts text content.
type Scraper struct {
	client *http.Client
	logger *slog.Logger
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithHTTPClient replaces the default HTTP client.
// Useful for tests and for callers that need custom transport settings.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Scraper) {
		if client != nil {
			s.client = client
		}
	}
}

// NewScraper creates a scraper with a 30-second request timeout.
func NewScraper(opts ...Option) *Scraper {
	s := &Scraper{
		client: &http.Client{Timeout: defaultTimeout},
		logger: slog.Default().With("component", "scraper"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scrape fetches the webpage at url and extracts its title and text
// sections. A fetch failure or a page with no extractable content yields
// (nil, err); a nil Page is the explicit absence signal downstream.
func (s *Scraper) Scrape(ctx context.Context, url string) (*core.Page, error) {
	s.logger.Info("scraping webpage", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error("error fetching webpage", "url", url, "err", err)
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		s.logger.Error("bad response status", "url", url, "status", resp.StatusCode)
		return nil, fmt.Errorf("fetching %s: status %s", url, resp.Status)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", url, err)
	}

	page := extract(doc)
	if len(page.Sections) == 0 {
		s.logger.Warn("no content found", "url", url)
		return nil, fmt.Errorf("%s: %w", url, core.ErrNoContent)
	}

	return page, nil
}

// extract walks the parsed document collecting the title and one section
// per content element, in document order.
func extract(doc *html.Node) *core.Page {
	page := &core.Page{Title: "No Title"}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch {
			case n.Data == "title":
				if title := innerText(n); title != "" {
					page.Title = title
				}
			case sectionTags[n.Data]:
				if text := innerText(n); text != "" {
					page.Sections = append(page.Sections, text)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return page
}

// innerText concatenates the text of all descendants, skipping script and
// style content, with whitespace collapsed and trimmed.
func innerText(n *html.Node) string {
	var b strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return strings.Join(strings.Fields(b.String()), " ")
}
