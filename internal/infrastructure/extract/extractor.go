// Package extract downloads linked article pages and pulls the main text
// plus publisher metadata.
package extract

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"NewsClipper/internal/ports"
)

// Extractor fetches and parses article pages. Callers treat any error as a
// degraded record, never a pipeline failure.
type Extractor struct {
	client *http.Client
}

var _ ports.Extractor = (*Extractor)(nil)

// New wires an HTTP client; a nil client gets a 15s timeout default so a
// hung page cannot stall the enrichment pool indefinitely.
func New(client *http.Client) *Extractor {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Extractor{client: client}
}

// Extract downloads the page and returns its main text, site name, and
// author metadata.
func (e *Extractor) Extract(ctx context.Context, link string) (ports.Content, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return ports.Content{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "NewsClipper/1.0")

	resp, err := e.client.Do(req)
	if err != nil {
		return ports.Content{}, fmt.Errorf("request page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ports.Content{}, fmt.Errorf("page returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return ports.Content{}, fmt.Errorf("parse page: %w", err)
	}

	return ports.Content{
		Text:     mainText(doc),
		SiteName: metaContent(doc, `meta[property="og:site_name"]`),
		Author:   authorOf(doc),
	}, nil
}

// mainText prefers paragraphs inside an <article> element and falls back
// to every paragraph on the page.
func mainText(doc *goquery.Document) string {
	paragraphs := doc.Find("article p")
	if paragraphs.Length() == 0 {
		paragraphs = doc.Find("p")
	}

	var parts []string
	paragraphs.Each(func(_ int, p *goquery.Selection) {
		if text := strings.TrimSpace(p.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, "\n")
}

func authorOf(doc *goquery.Document) string {
	if author := metaContent(doc, `meta[name="author"]`); author != "" {
		return author
	}
	return metaContent(doc, `meta[property="article:author"]`)
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}
