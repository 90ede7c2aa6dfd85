// Package rss implements ports.NewsSource on top of Google News search
// feeds, one domestic (KR) and one overseas (US) region per keyword.
package rss

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"

	"NewsClipper/internal/domain"
	"NewsClipper/internal/ports"
)

// dateSentinel marks entries whose date no known layout could parse.
const dateSentinel = "날짜 없음"

// dateLayouts are tried in order against feed date strings that gofeed
// could not parse on its own.
var dateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
}

// Fetcher pulls keyword search feeds from Google News.
type Fetcher struct {
	parser      *gofeed.Parser
	translator  ports.Translator
	domesticURL string
	overseasURL string
	logger      *slog.Logger
}

var _ ports.NewsSource = (*Fetcher)(nil)

// NewFetcher builds the feed source. translator may be nil; overseas
// lookups then reuse the original keyword.
func NewFetcher(translator ports.Translator, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		parser:      gofeed.NewParser(),
		translator:  translator,
		domesticURL: "https://news.google.com/rss/search?hl=ko&gl=KR&ceid=KR:ko&q=%s",
		overseasURL: "https://news.google.com/rss/search?hl=en&gl=US&ceid=US:en&q=%s",
		logger:      logger,
	}
}

// Search collects entries from both regional feeds. Korean keywords are
// translated to English for the overseas feed. A failing region is logged
// and skipped; the other region still contributes.
func (f *Fetcher) Search(ctx context.Context, q ports.Query) ([]domain.Record, error) {
	days := q.Days
	if days <= 0 {
		days = 1
	}
	window := fmt.Sprintf("when:%dh", days*24)

	overseas := q.Keyword
	if isKorean(q.Keyword) && f.translator != nil {
		translated, err := f.translator.Translate(ctx, q.Keyword)
		if err != nil {
			f.warn("keyword translation failed", "keyword", q.Keyword, "error", err)
		} else if translated != "" {
			overseas = translated
		}
	}

	feeds := []struct {
		region  string
		feedURL string
	}{
		{"국내", fmt.Sprintf(f.domesticURL, url.QueryEscape(q.Keyword)+"+"+window)},
		{"국외", fmt.Sprintf(f.overseasURL, url.QueryEscape(overseas)+"+"+window)},
	}

	var records []domain.Record
	for _, src := range feeds {
		feed, err := f.parser.ParseURLWithContext(src.feedURL, ctx)
		if err != nil {
			f.warn("feed fetch failed", "region", src.region, "error", err)
			continue
		}

		for _, entry := range feed.Items {
			records = append(records, domain.Record{
				Title:       entry.Title,
				Link:        entry.Link,
				Description: entry.Description,
				PubDate:     entryDate(entry),
				Source:      "",
				Tier:        domain.TierUnset,
			})
		}
	}

	return records, nil
}

// entryDate normalizes a feed entry date to the canonical KST layout,
// trying gofeed's parsed value first and a list of layouts after.
func entryDate(entry *gofeed.Item) string {
	if entry.PublishedParsed != nil {
		return entry.PublishedParsed.In(domain.KST).Format(domain.PubDateLayout)
	}
	if entry.UpdatedParsed != nil {
		return entry.UpdatedParsed.In(domain.KST).Format(domain.PubDateLayout)
	}

	for _, raw := range []string{entry.Published, entry.Updated} {
		if raw == "" {
			continue
		}
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, raw); err == nil {
				return parsed.In(domain.KST).Format(domain.PubDateLayout)
			}
		}
	}

	return dateSentinel
}

func isKorean(s string) bool {
	for _, r := range s {
		if r >= 0xAC00 && r <= 0xD7A3 {
			return true
		}
	}
	return false
}

func (f *Fetcher) warn(msg string, args ...any) {
	if f.logger != nil {
		f.logger.Warn(msg, args...)
	}
}
